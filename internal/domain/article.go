package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Article is a single menu item. Its name is unique within the owning
// restaurant, not globally.
type Article struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name         string             `bson:"name" json:"name"`
	Image        string             `bson:"image" json:"image"`
	Description  string             `bson:"description" json:"description"`
	Price        float64            `bson:"price" json:"price"`
	RestaurantID primitive.ObjectID `bson:"restaurant_id" json:"restaurant_id"`
	CreatedAt    time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt    time.Time          `bson:"updated_at" json:"updated_at"`
}
