package worker

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/AlexandrePereon/ELECTIVE-WEB-RESTAURANT/internal/domain"
	"github.com/AlexandrePereon/ELECTIVE-WEB-RESTAURANT/internal/identity"
	"github.com/AlexandrePereon/ELECTIVE-WEB-RESTAURANT/internal/queue"
	"go.uber.org/zap"
)

// IdentityNotifyWorker consumes restaurant-deleted events and performs the
// best-effort notification to the identity service. Failures are retried by
// the broker and eventually parked on the DLQ; they never affect the
// already-committed delete cascade.
type IdentityNotifyWorker struct {
	client *identity.Client
	broker queue.Broker
	logger *zap.SugaredLogger
	ctx    context.Context
	cancel context.CancelFunc
}

func NewIdentityNotifyWorker(
	client *identity.Client,
	broker queue.Broker,
	logger *zap.SugaredLogger,
) *IdentityNotifyWorker {
	ctx, cancel := context.WithCancel(context.Background())

	return &IdentityNotifyWorker{
		client: client,
		broker: broker,
		logger: logger,
		ctx:    ctx,
		cancel: cancel,
	}
}

func (w *IdentityNotifyWorker) Start() error {
	w.logger.Info("starting identity notify worker")

	return w.broker.Subscribe(w.ctx, queue.QueueRestaurantDeleted, w.handleMessage)
}

func (w *IdentityNotifyWorker) Stop() {
	w.logger.Info("stopping identity notify worker")
	w.cancel()
}

func (w *IdentityNotifyWorker) handleMessage(ctx context.Context, message []byte) error {
	var event domain.RestaurantDeletedEvent
	if err := json.Unmarshal(message, &event); err != nil {
		w.logger.Errorw("failed to unmarshal event", "error", err)
		return fmt.Errorf("failed to unmarshal event: %w", err)
	}

	w.logger.Infow("processing restaurant deleted event",
		"restaurant_id", event.RestaurantID, "creator_id", event.CreatorID)

	if err := w.client.NotifyRestaurantDeleted(ctx, event.CreatorID); err != nil {
		w.logger.Errorw("failed to notify identity service",
			"creator_id", event.CreatorID, "error", err)
		return err
	}

	return nil
}
