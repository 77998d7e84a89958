package repo

import (
	"context"

	"github.com/AlexandrePereon/ELECTIVE-WEB-RESTAURANT/internal/domain"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type MenuRepository interface {
	Create(ctx context.Context, menu *domain.Menu) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Menu, error)
	GetByName(ctx context.Context, restaurantID primitive.ObjectID, name string) (*domain.Menu, error)
	Update(ctx context.Context, menu *domain.Menu) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	ListByRestaurantID(ctx context.Context, restaurantID primitive.ObjectID, skip, limit int64) ([]domain.Menu, error)
	CountByRestaurantID(ctx context.Context, restaurantID primitive.ObjectID) (int64, error)
	CountByArticleID(ctx context.Context, articleID primitive.ObjectID) (int64, error)
	DeleteByRestaurantID(ctx context.Context, restaurantID primitive.ObjectID) error
}
