package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/AlexandrePereon/ELECTIVE-WEB-RESTAURANT/internal/domain"
	"github.com/AlexandrePereon/ELECTIVE-WEB-RESTAURANT/internal/media"
	"github.com/AlexandrePereon/ELECTIVE-WEB-RESTAURANT/internal/pagination"
	"github.com/AlexandrePereon/ELECTIVE-WEB-RESTAURANT/internal/repo"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// MenuService owns the menu lifecycle. A menu needs at least two distinct
// articles, all belonging to the menu's restaurant; the price is either
// caller-supplied or derived as the sum of the member article prices.
type MenuService struct {
	menus     repo.MenuRepository
	articles  repo.ArticleRepository
	converter *media.Converter
	logger    *zap.SugaredLogger
}

func NewMenuService(
	menus repo.MenuRepository,
	articles repo.ArticleRepository,
	converter *media.Converter,
	logger *zap.SugaredLogger,
) *MenuService {
	return &MenuService{
		menus:     menus,
		articles:  articles,
		converter: converter,
		logger:    logger,
	}
}

type CreateMenuInput struct {
	Name        string
	Description string
	Image       string
	ArticleIDs  []string
	Price       *float64
}

// MenuPatch applies merge-patch semantics. A non-nil ArticleIDs replaces the
// whole composition and re-runs the validation done at creation; when it is
// replaced without an explicit price, the price is re-derived from the new
// articles.
type MenuPatch struct {
	Name        string
	Description string
	Image       string
	ArticleIDs  []string
	Price       *float64
}

type MenuList struct {
	Items   []domain.Menu `json:"items"`
	Count   int64         `json:"count"`
	MaxPage int           `json:"max_page"`
}

// resolveComposition validates the article list for a menu owned by
// restaurantID and returns the resolved references with the summed price.
// The check and the later persist are not atomic against concurrent article
// deletion; the composition is best-effort validated at this point in time.
func (s *MenuService) resolveComposition(ctx context.Context, restaurantID primitive.ObjectID, articleIDs []string) ([]primitive.ObjectID, float64, error) {
	if len(articleIDs) < 2 {
		return nil, 0, domain.ErrNotEnoughArticles
	}

	seen := make(map[primitive.ObjectID]struct{}, len(articleIDs))
	refs := make([]primitive.ObjectID, 0, len(articleIDs))
	var total float64

	for _, raw := range articleIDs {
		id, err := primitive.ObjectIDFromHex(raw)
		if err != nil {
			return nil, 0, domain.ErrInvalidID
		}

		if _, dup := seen[id]; dup {
			return nil, 0, fmt.Errorf("duplicate article %s: %w", raw, domain.ErrNotEnoughArticles)
		}
		seen[id] = struct{}{}

		article, err := s.articles.GetByID(ctx, id)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil, 0, fmt.Errorf("article %s: %w", raw, domain.ErrArticleNotFound)
			}
			return nil, 0, err
		}

		if article.RestaurantID != restaurantID {
			return nil, 0, fmt.Errorf("article %s: %w", raw, domain.ErrArticleWrongRestaurant)
		}

		refs = append(refs, id)
		total += article.Price
	}

	return refs, total, nil
}

func (s *MenuService) Create(ctx context.Context, restaurantID primitive.ObjectID, in CreateMenuInput) (primitive.ObjectID, error) {
	refs, total, err := s.resolveComposition(ctx, restaurantID, in.ArticleIDs)
	if err != nil {
		return primitive.NilObjectID, err
	}

	if _, err := s.menus.GetByName(ctx, restaurantID, in.Name); err == nil {
		return primitive.NilObjectID, fmt.Errorf("menu name: %w", domain.ErrNameTaken)
	} else if !errors.Is(err, domain.ErrNotFound) {
		return primitive.NilObjectID, err
	}

	price := total
	if in.Price != nil {
		price = *in.Price
	}

	image, err := s.converter.Convert(in.Image, media.ProfileArticle)
	if err != nil {
		return primitive.NilObjectID, err
	}

	menu := &domain.Menu{
		Name:         in.Name,
		Image:        image,
		Description:  in.Description,
		Price:        price,
		Articles:     refs,
		RestaurantID: restaurantID,
	}

	if err := s.menus.Create(ctx, menu); err != nil {
		return primitive.NilObjectID, err
	}

	s.logger.Infow("menu created", "menu_id", menu.ID.Hex(),
		"restaurant_id", restaurantID.Hex(), "articles", len(refs), "price", price)

	return menu.ID, nil
}

// Get returns the menu with its article references resolved. A dangling
// reference is skipped with a warning rather than failing the whole read.
func (s *MenuService) Get(ctx context.Context, id string) (*domain.MenuWithArticles, error) {
	menuID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrInvalidID
	}

	menu, err := s.menus.GetByID(ctx, menuID)
	if err != nil {
		return nil, err
	}

	articles := make([]domain.Article, 0, len(menu.Articles))
	for _, articleID := range menu.Articles {
		article, err := s.articles.GetByID(ctx, articleID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				s.logger.Warnw("menu references a missing article",
					"menu_id", menuID.Hex(), "article_id", articleID.Hex())
				continue
			}
			return nil, err
		}
		articles = append(articles, *article)
	}

	return &domain.MenuWithArticles{
		ID:           menu.ID,
		Name:         menu.Name,
		Image:        menu.Image,
		Description:  menu.Description,
		Price:        menu.Price,
		Articles:     articles,
		RestaurantID: menu.RestaurantID,
	}, nil
}

func (s *MenuService) Update(ctx context.Context, restaurantID primitive.ObjectID, id string, patch MenuPatch) (*domain.Menu, error) {
	menuID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrInvalidID
	}

	menu, err := s.menus.GetByID(ctx, menuID)
	if err != nil {
		return nil, err
	}

	if menu.RestaurantID != restaurantID {
		return nil, domain.ErrForbidden
	}

	if patch.Name != "" && patch.Name != menu.Name {
		if _, err := s.menus.GetByName(ctx, restaurantID, patch.Name); err == nil {
			return nil, fmt.Errorf("menu name: %w", domain.ErrNameTaken)
		} else if !errors.Is(err, domain.ErrNotFound) {
			return nil, err
		}
		menu.Name = patch.Name
	}

	if patch.ArticleIDs != nil {
		refs, total, err := s.resolveComposition(ctx, restaurantID, patch.ArticleIDs)
		if err != nil {
			return nil, err
		}
		menu.Articles = refs
		if patch.Price == nil {
			menu.Price = total
		}
	}

	if patch.Price != nil {
		menu.Price = *patch.Price
	}

	if patch.Description != "" {
		menu.Description = patch.Description
	}

	if patch.Image != "" {
		image, err := s.converter.Convert(patch.Image, media.ProfileArticle)
		if err != nil {
			return nil, err
		}
		menu.Image = image
	}

	if err := s.menus.Update(ctx, menu); err != nil {
		return nil, err
	}

	return menu, nil
}

func (s *MenuService) Delete(ctx context.Context, restaurantID primitive.ObjectID, id string) error {
	menuID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrInvalidID
	}

	menu, err := s.menus.GetByID(ctx, menuID)
	if err != nil {
		return err
	}

	if menu.RestaurantID != restaurantID {
		return domain.ErrForbidden
	}

	if err := s.menus.Delete(ctx, menuID); err != nil {
		return err
	}

	s.logger.Infow("menu deleted", "menu_id", menuID.Hex(), "restaurant_id", restaurantID.Hex())

	return nil
}

func (s *MenuService) ListByRestaurant(ctx context.Context, restaurantID string, page int) (*MenuList, error) {
	id, err := primitive.ObjectIDFromHex(restaurantID)
	if err != nil {
		return nil, domain.ErrInvalidID
	}

	count, err := s.menus.CountByRestaurantID(ctx, id)
	if err != nil {
		return nil, err
	}

	if count == 0 {
		return nil, fmt.Errorf("no menus found for this restaurant: %w", domain.ErrNotFound)
	}

	skip, maxPage, err := pagination.Paginate(count, page)
	if err != nil {
		return nil, err
	}

	items, err := s.menus.ListByRestaurantID(ctx, id, skip, pagination.PageSize)
	if err != nil {
		return nil, err
	}

	return &MenuList{Items: items, Count: count, MaxPage: maxPage}, nil
}
