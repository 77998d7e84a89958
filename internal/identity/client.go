package identity

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/AlexandrePereon/ELECTIVE-WEB-RESTAURANT/internal/domain"
	"go.uber.org/zap"
)

// Client talks to the external identity service. The only outbound call is
// the restaurant-deleted notification, which detaches the "restaurant" claim
// from the creator's account.
type Client struct {
	baseURL string
	http    *http.Client
	logger  *zap.SugaredLogger
}

func NewClient(baseURL string, logger *zap.SugaredLogger) *Client {
	return &Client{
		baseURL: baseURL,
		http: &http.Client{
			Timeout: 10 * time.Second,
		},
		logger: logger,
	}
}

// NotifyRestaurantDeleted tells the identity service that creatorID no longer
// owns a restaurant. Callers treat failures as retryable; the delete cascade
// itself is never rolled back on account of this call.
func (c *Client) NotifyRestaurantDeleted(ctx context.Context, creatorID string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, c.baseURL+"/auth/delete/restaurant", nil)
	if err != nil {
		return fmt.Errorf("failed to build identity request: %w", err)
	}

	claim, err := json.Marshal(domain.Identity{ID: creatorID, Role: domain.RoleRestaurant})
	if err != nil {
		return fmt.Errorf("failed to marshal identity claim: %w", err)
	}
	req.Header.Set("X-User", string(claim))

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("identity service unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("identity service returned status %d", resp.StatusCode)
	}

	c.logger.Infow("identity service notified of restaurant deletion", "creator_id", creatorID)

	return nil
}
