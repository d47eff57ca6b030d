package service

import (
	"context"
	"encoding/json"

	"go.uber.org/zap"

	"github.com/spec-kit/employee-service/internal/config"
	"github.com/spec-kit/employee-service/internal/events"
)

// Publisher sends a payload on a pub/sub channel.
type Publisher interface {
	Publish(ctx context.Context, channel string, payload []byte) (int64, error)
}

// NotificationService forwards employee events to the configured pub/sub channel.
type NotificationService struct {
	dispatcher events.Dispatcher
	publisher  Publisher
	logger     *zap.Logger
	cfg        config.EventsConfig
}

// NewNotificationService creates the service.
func NewNotificationService(dispatcher events.Dispatcher, publisher Publisher, logger *zap.Logger, cfg config.EventsConfig) *NotificationService {
	return &NotificationService{
		dispatcher: dispatcher,
		publisher:  publisher,
		logger:     logger,
		cfg:        cfg,
	}
}

// RegisterHandlers subscribes to events.
func (n *NotificationService) RegisterHandlers() {
	if n.dispatcher == nil || !n.cfg.Enabled {
		return
	}
	for _, eventType := range events.AllEmployeeEvents {
		n.dispatcher.Subscribe(eventType, n.handleEmployeeEvent)
	}
}

func (n *NotificationService) handleEmployeeEvent(ctx context.Context, event events.Event) error {
	n.logger.Info("EmployeeEvent",
		zap.String("event_type", string(event.Type)),
		zap.String("employee_id", event.EmployeeID))

	if n.publisher == nil {
		return nil
	}
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}
	// runs inside the write request; a slow broker must not delay the response
	pubCtx, cancel := context.WithTimeout(ctx, n.cfg.PublishTimeout())
	defer cancel()
	receivers, err := n.publisher.Publish(pubCtx, n.cfg.Channel, payload)
	if err != nil {
		return err
	}
	n.logger.Debug("event published",
		zap.String("channel", n.cfg.Channel),
		zap.String("event_id", event.ID),
		zap.Int64("receivers", receivers))
	return nil
}
