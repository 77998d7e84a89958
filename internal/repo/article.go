package repo

import (
	"context"

	"github.com/AlexandrePereon/ELECTIVE-WEB-RESTAURANT/internal/domain"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type ArticleRepository interface {
	Create(ctx context.Context, article *domain.Article) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Article, error)
	GetByName(ctx context.Context, restaurantID primitive.ObjectID, name string) (*domain.Article, error)
	Update(ctx context.Context, article *domain.Article) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	ListByRestaurantID(ctx context.Context, restaurantID primitive.ObjectID, skip, limit int64) ([]domain.Article, error)
	CountByRestaurantID(ctx context.Context, restaurantID primitive.ObjectID) (int64, error)
	DeleteByRestaurantID(ctx context.Context, restaurantID primitive.ObjectID) error
}
