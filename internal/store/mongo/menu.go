package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/AlexandrePereon/ELECTIVE-WEB-RESTAURANT/internal/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type MenuRepository struct {
	collection *mongo.Collection
}

func NewMenuRepository(db *mongo.Database) *MenuRepository {
	return &MenuRepository{
		collection: db.Collection(CollectionMenus),
	}
}

func (r *MenuRepository) Create(ctx context.Context, menu *domain.Menu) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if menu.ID.IsZero() {
		menu.ID = primitive.NewObjectID()
	}
	menu.CreatedAt = time.Now()
	menu.UpdatedAt = time.Now()

	_, err := r.collection.InsertOne(ctx, menu)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrNameTaken
		}
		return fmt.Errorf("failed to create menu: %w", err)
	}

	return nil
}

func (r *MenuRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Menu, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var menu domain.Menu
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&menu)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("menu: %w", domain.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get menu: %w", err)
	}

	return &menu, nil
}

func (r *MenuRepository) GetByName(ctx context.Context, restaurantID primitive.ObjectID, name string) (*domain.Menu, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var menu domain.Menu
	err := r.collection.FindOne(ctx, bson.M{"restaurant_id": restaurantID, "name": name}).Decode(&menu)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("menu %q: %w", name, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get menu by name: %w", err)
	}

	return &menu, nil
}

func (r *MenuRepository) Update(ctx context.Context, menu *domain.Menu) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	menu.UpdatedAt = time.Now()

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": menu.ID}, bson.M{"$set": menu})
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrNameTaken
		}
		return fmt.Errorf("failed to update menu: %w", err)
	}

	if result.MatchedCount == 0 {
		return fmt.Errorf("menu: %w", domain.ErrNotFound)
	}

	return nil
}

func (r *MenuRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete menu: %w", err)
	}

	if result.DeletedCount == 0 {
		return fmt.Errorf("menu: %w", domain.ErrNotFound)
	}

	return nil
}

func (r *MenuRepository) ListByRestaurantID(ctx context.Context, restaurantID primitive.ObjectID, skip, limit int64) ([]domain.Menu, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	opts := options.Find().
		SetSort(bson.D{{Key: "name", Value: 1}}).
		SetSkip(skip).
		SetLimit(limit)

	cursor, err := r.collection.Find(ctx, bson.M{"restaurant_id": restaurantID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list menus: %w", err)
	}
	defer cursor.Close(ctx)

	menus := []domain.Menu{}
	if err := cursor.All(ctx, &menus); err != nil {
		return nil, fmt.Errorf("failed to decode menus: %w", err)
	}

	return menus, nil
}

func (r *MenuRepository) CountByRestaurantID(ctx context.Context, restaurantID primitive.ObjectID) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	count, err := r.collection.CountDocuments(ctx, bson.M{"restaurant_id": restaurantID})
	if err != nil {
		return 0, fmt.Errorf("failed to count menus: %w", err)
	}

	return count, nil
}

// CountByArticleID reports how many menus still reference an article. Article
// deletion is refused while this is non-zero.
func (r *MenuRepository) CountByArticleID(ctx context.Context, articleID primitive.ObjectID) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	count, err := r.collection.CountDocuments(ctx, bson.M{"articles": articleID})
	if err != nil {
		return 0, fmt.Errorf("failed to count menus by article: %w", err)
	}

	return count, nil
}

func (r *MenuRepository) DeleteByRestaurantID(ctx context.Context, restaurantID primitive.ObjectID) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	_, err := r.collection.DeleteMany(ctx, bson.M{"restaurant_id": restaurantID})
	if err != nil {
		return fmt.Errorf("failed to delete restaurant menus: %w", err)
	}

	return nil
}
