package broker

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"sales-service/internal/models"
	"sales-service/internal/util"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// EventPublisher handles publishing dataset events
type EventPublisher struct {
	producer *Producer
}

// NewEventPublisher creates a new event publisher
func NewEventPublisher(producer *Producer) *EventPublisher {
	return &EventPublisher{producer: producer}
}

// NewDatasetReloadedEvent builds an event for a freshly loaded dataset
func NewDatasetReloadedEvent(source string, rowCount int) *models.DatasetReloadedEvent {
	return &models.DatasetReloadedEvent{
		BaseEvent: models.BaseEvent{
			EventID:   uuid.New().String(),
			EventType: models.EventTypeDatasetReloaded,
			Timestamp: time.Now().UTC(),
		},
		Source:   source,
		RowCount: rowCount,
	}
}

// PublishDatasetReloaded publishes DatasetReloaded event
func (ep *EventPublisher) PublishDatasetReloaded(ctx context.Context, event *models.DatasetReloadedEvent) error {
	key := fmt.Sprintf("dataset-%s", event.Source)
	return ep.producer.PublishEvent(ctx, key, event)
}

// EventHandler handles incoming events
type EventHandler struct {
	onDatasetReloaded func(context.Context, *models.DatasetReloadedEvent) error
	logger            *zap.Logger
}

// NewEventHandler creates a new event handler
func NewEventHandler() *EventHandler {
	return &EventHandler{logger: util.GetLogger()}
}

// OnDatasetReloaded registers a handler for DatasetReloaded events
func (eh *EventHandler) OnDatasetReloaded(handler func(context.Context, *models.DatasetReloadedEvent) error) {
	eh.onDatasetReloaded = handler
}

// HandleMessage routes messages to appropriate handlers
func (eh *EventHandler) HandleMessage(ctx context.Context, msg kafka.Message) error {
	var baseEvent models.BaseEvent
	if err := json.Unmarshal(msg.Value, &baseEvent); err != nil {
		return fmt.Errorf("failed to unmarshal base event: %w", err)
	}

	eh.logger.Info("Handling event",
		zap.String("event_type", baseEvent.EventType),
		zap.String("event_id", baseEvent.EventID))

	switch baseEvent.EventType {
	case models.EventTypeDatasetReloaded:
		if eh.onDatasetReloaded != nil {
			var event models.DatasetReloadedEvent
			if err := json.Unmarshal(msg.Value, &event); err != nil {
				return fmt.Errorf("failed to unmarshal DatasetReloaded event: %w", err)
			}
			return eh.onDatasetReloaded(ctx, &event)
		}

	default:
		eh.logger.Warn("Unhandled event type", zap.String("event_type", baseEvent.EventType))
	}

	return nil
}
