package repo

import (
	"context"

	"github.com/AlexandrePereon/ELECTIVE-WEB-RESTAURANT/internal/domain"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type RestaurantRepository interface {
	Create(ctx context.Context, restaurant *domain.Restaurant) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Restaurant, error)
	GetByCreatorID(ctx context.Context, creatorID string) (*domain.Restaurant, error)
	GetByName(ctx context.Context, name string) (*domain.Restaurant, error)
	Update(ctx context.Context, restaurant *domain.Restaurant) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	List(ctx context.Context, skip, limit int64) ([]domain.Restaurant, error)
	Count(ctx context.Context) (int64, error)
}

// Transactor runs fn inside a single store transaction. The delete cascade
// relies on it to make the multi-collection purge all-or-nothing.
type Transactor interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
