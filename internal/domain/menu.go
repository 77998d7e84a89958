package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Menu bundles at least two articles of the same restaurant. Articles holds
// non-owning references; the price is either caller-supplied or the sum of
// the member article prices at creation time.
type Menu struct {
	ID           primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	Name         string               `bson:"name" json:"name"`
	Image        string               `bson:"image" json:"image"`
	Description  string               `bson:"description" json:"description"`
	Price        float64              `bson:"price" json:"price"`
	Articles     []primitive.ObjectID `bson:"articles" json:"articles"`
	RestaurantID primitive.ObjectID   `bson:"restaurant_id" json:"restaurant_id"`
	CreatedAt    time.Time            `bson:"created_at" json:"created_at"`
	UpdatedAt    time.Time            `bson:"updated_at" json:"updated_at"`
}

// MenuWithArticles is the read view of a menu with its article references
// resolved.
type MenuWithArticles struct {
	ID           primitive.ObjectID `json:"id"`
	Name         string             `json:"name"`
	Image        string             `json:"image"`
	Description  string             `json:"description"`
	Price        float64            `json:"price"`
	Articles     []Article          `json:"articles"`
	RestaurantID primitive.ObjectID `json:"restaurant_id"`
}
