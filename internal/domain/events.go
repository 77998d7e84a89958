package domain

import "time"

// RestaurantDeletedEvent is published after the delete cascade commits.
// The identity service is notified from a worker consuming this event, so
// the HTTP call never blocks or rolls back the cascade.
type RestaurantDeletedEvent struct {
	EventType    string    `json:"event_type"`
	RestaurantID string    `json:"restaurant_id"`
	CreatorID    string    `json:"creator_id"`
	Timestamp    time.Time `json:"timestamp"`
}

const (
	EventRestaurantDeleted = "restaurant.deleted"
)
