package service

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/AlexandrePereon/ELECTIVE-WEB-RESTAURANT/internal/domain"
	"github.com/AlexandrePereon/ELECTIVE-WEB-RESTAURANT/internal/queue"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// In-memory repositories mirroring the mongo implementations, unique-index
// behavior included, so service tests exercise the same error surface.

type fakeRestaurantRepo struct {
	mu    sync.Mutex
	items map[primitive.ObjectID]*domain.Restaurant
}

func newFakeRestaurantRepo() *fakeRestaurantRepo {
	return &fakeRestaurantRepo{items: make(map[primitive.ObjectID]*domain.Restaurant)}
}

func (r *fakeRestaurantRepo) Create(_ context.Context, restaurant *domain.Restaurant) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.items {
		if existing.CreatorID == restaurant.CreatorID {
			return domain.ErrRestaurantExists
		}
		if existing.Name == restaurant.Name {
			return domain.ErrNameTaken
		}
	}

	if restaurant.ID.IsZero() {
		restaurant.ID = primitive.NewObjectID()
	}
	clone := *restaurant
	r.items[restaurant.ID] = &clone

	return nil
}

func (r *fakeRestaurantRepo) GetByID(_ context.Context, id primitive.ObjectID) (*domain.Restaurant, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	restaurant, ok := r.items[id]
	if !ok {
		return nil, fmt.Errorf("restaurant: %w", domain.ErrNotFound)
	}
	clone := *restaurant
	return &clone, nil
}

func (r *fakeRestaurantRepo) GetByCreatorID(_ context.Context, creatorID string) (*domain.Restaurant, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, restaurant := range r.items {
		if restaurant.CreatorID == creatorID {
			clone := *restaurant
			return &clone, nil
		}
	}
	return nil, fmt.Errorf("restaurant for creator %s: %w", creatorID, domain.ErrNotFound)
}

func (r *fakeRestaurantRepo) GetByName(_ context.Context, name string) (*domain.Restaurant, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, restaurant := range r.items {
		if restaurant.Name == name {
			clone := *restaurant
			return &clone, nil
		}
	}
	return nil, fmt.Errorf("restaurant %q: %w", name, domain.ErrNotFound)
}

func (r *fakeRestaurantRepo) Update(_ context.Context, restaurant *domain.Restaurant) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[restaurant.ID]; !ok {
		return fmt.Errorf("restaurant: %w", domain.ErrNotFound)
	}
	for id, existing := range r.items {
		if id != restaurant.ID && existing.Name == restaurant.Name {
			return domain.ErrNameTaken
		}
	}
	clone := *restaurant
	r.items[restaurant.ID] = &clone
	return nil
}

func (r *fakeRestaurantRepo) Delete(_ context.Context, id primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[id]; !ok {
		return fmt.Errorf("restaurant: %w", domain.ErrNotFound)
	}
	delete(r.items, id)
	return nil
}

func (r *fakeRestaurantRepo) List(_ context.Context, skip, limit int64) ([]domain.Restaurant, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	all := make([]domain.Restaurant, 0, len(r.items))
	for _, restaurant := range r.items {
		all = append(all, *restaurant)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Name < all[j].Name })

	return window(all, skip, limit), nil
}

func (r *fakeRestaurantRepo) Count(_ context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.items)), nil
}

type fakeArticleRepo struct {
	mu    sync.Mutex
	items map[primitive.ObjectID]*domain.Article
}

func newFakeArticleRepo() *fakeArticleRepo {
	return &fakeArticleRepo{items: make(map[primitive.ObjectID]*domain.Article)}
}

func (r *fakeArticleRepo) Create(_ context.Context, article *domain.Article) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.items {
		if existing.RestaurantID == article.RestaurantID && existing.Name == article.Name {
			return domain.ErrNameTaken
		}
	}

	if article.ID.IsZero() {
		article.ID = primitive.NewObjectID()
	}
	clone := *article
	r.items[article.ID] = &clone
	return nil
}

func (r *fakeArticleRepo) GetByID(_ context.Context, id primitive.ObjectID) (*domain.Article, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	article, ok := r.items[id]
	if !ok {
		return nil, fmt.Errorf("article: %w", domain.ErrNotFound)
	}
	clone := *article
	return &clone, nil
}

func (r *fakeArticleRepo) GetByName(_ context.Context, restaurantID primitive.ObjectID, name string) (*domain.Article, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, article := range r.items {
		if article.RestaurantID == restaurantID && article.Name == name {
			clone := *article
			return &clone, nil
		}
	}
	return nil, fmt.Errorf("article %q: %w", name, domain.ErrNotFound)
}

func (r *fakeArticleRepo) Update(_ context.Context, article *domain.Article) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[article.ID]; !ok {
		return fmt.Errorf("article: %w", domain.ErrNotFound)
	}
	clone := *article
	r.items[article.ID] = &clone
	return nil
}

func (r *fakeArticleRepo) Delete(_ context.Context, id primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[id]; !ok {
		return fmt.Errorf("article: %w", domain.ErrNotFound)
	}
	delete(r.items, id)
	return nil
}

func (r *fakeArticleRepo) ListByRestaurantID(_ context.Context, restaurantID primitive.ObjectID, skip, limit int64) ([]domain.Article, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	all := []domain.Article{}
	for _, article := range r.items {
		if article.RestaurantID == restaurantID {
			all = append(all, *article)
		}
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Name < all[j].Name })

	return window(all, skip, limit), nil
}

func (r *fakeArticleRepo) CountByRestaurantID(_ context.Context, restaurantID primitive.ObjectID) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var count int64
	for _, article := range r.items {
		if article.RestaurantID == restaurantID {
			count++
		}
	}
	return count, nil
}

func (r *fakeArticleRepo) DeleteByRestaurantID(_ context.Context, restaurantID primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for id, article := range r.items {
		if article.RestaurantID == restaurantID {
			delete(r.items, id)
		}
	}
	return nil
}

type fakeMenuRepo struct {
	mu    sync.Mutex
	items map[primitive.ObjectID]*domain.Menu
}

func newFakeMenuRepo() *fakeMenuRepo {
	return &fakeMenuRepo{items: make(map[primitive.ObjectID]*domain.Menu)}
}

func (r *fakeMenuRepo) Create(_ context.Context, menu *domain.Menu) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.items {
		if existing.RestaurantID == menu.RestaurantID && existing.Name == menu.Name {
			return domain.ErrNameTaken
		}
	}

	if menu.ID.IsZero() {
		menu.ID = primitive.NewObjectID()
	}
	clone := *menu
	r.items[menu.ID] = &clone
	return nil
}

func (r *fakeMenuRepo) GetByID(_ context.Context, id primitive.ObjectID) (*domain.Menu, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	menu, ok := r.items[id]
	if !ok {
		return nil, fmt.Errorf("menu: %w", domain.ErrNotFound)
	}
	clone := *menu
	return &clone, nil
}

func (r *fakeMenuRepo) GetByName(_ context.Context, restaurantID primitive.ObjectID, name string) (*domain.Menu, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, menu := range r.items {
		if menu.RestaurantID == restaurantID && menu.Name == name {
			clone := *menu
			return &clone, nil
		}
	}
	return nil, fmt.Errorf("menu %q: %w", name, domain.ErrNotFound)
}

func (r *fakeMenuRepo) Update(_ context.Context, menu *domain.Menu) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[menu.ID]; !ok {
		return fmt.Errorf("menu: %w", domain.ErrNotFound)
	}
	clone := *menu
	r.items[menu.ID] = &clone
	return nil
}

func (r *fakeMenuRepo) Delete(_ context.Context, id primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[id]; !ok {
		return fmt.Errorf("menu: %w", domain.ErrNotFound)
	}
	delete(r.items, id)
	return nil
}

func (r *fakeMenuRepo) ListByRestaurantID(_ context.Context, restaurantID primitive.ObjectID, skip, limit int64) ([]domain.Menu, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	all := []domain.Menu{}
	for _, menu := range r.items {
		if menu.RestaurantID == restaurantID {
			all = append(all, *menu)
		}
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Name < all[j].Name })

	return window(all, skip, limit), nil
}

func (r *fakeMenuRepo) CountByRestaurantID(_ context.Context, restaurantID primitive.ObjectID) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var count int64
	for _, menu := range r.items {
		if menu.RestaurantID == restaurantID {
			count++
		}
	}
	return count, nil
}

func (r *fakeMenuRepo) CountByArticleID(_ context.Context, articleID primitive.ObjectID) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var count int64
	for _, menu := range r.items {
		for _, ref := range menu.Articles {
			if ref == articleID {
				count++
				break
			}
		}
	}
	return count, nil
}

func (r *fakeMenuRepo) DeleteByRestaurantID(_ context.Context, restaurantID primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for id, menu := range r.items {
		if menu.RestaurantID == restaurantID {
			delete(r.items, id)
		}
	}
	return nil
}

type fakeTransactor struct{}

func (fakeTransactor) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeBroker struct {
	mu        sync.Mutex
	published map[string][][]byte
	failNext  bool
}

func newFakeBroker() *fakeBroker {
	return &fakeBroker{published: make(map[string][][]byte)}
}

func (b *fakeBroker) Publish(_ context.Context, queueName string, message []byte) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.failNext {
		b.failNext = false
		return fmt.Errorf("broker down")
	}
	b.published[queueName] = append(b.published[queueName], message)
	return nil
}

func (b *fakeBroker) Subscribe(context.Context, string, queue.MessageHandler) error {
	return nil
}

func (b *fakeBroker) Close() error { return nil }

func window[T any](all []T, skip, limit int64) []T {
	if skip >= int64(len(all)) {
		return []T{}
	}
	end := skip + limit
	if end > int64(len(all)) {
		end = int64(len(all))
	}
	return all[skip:end]
}
