package worker

import (
	"context"
	"encoding/json"
	"fmt"

	"crm-service/internal/broker"
	"crm-service/internal/models"
	"crm-service/internal/util"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// EventLogWorker consumes the entity-events topic and writes an audit
// trail of every published event.
type EventLogWorker struct {
	consumer *broker.Consumer
	logger   *zap.Logger
}

// NewEventLogWorker creates a new event log worker
func NewEventLogWorker(consumer *broker.Consumer) *EventLogWorker {
	return &EventLogWorker{
		consumer: consumer,
		logger:   util.GetLogger(),
	}
}

// Start starts the worker
func (w *EventLogWorker) Start(ctx context.Context) error {
	w.logger.Info("Starting event log worker")
	return w.consumer.StartConsuming(ctx, w.handleMessage)
}

// Stop stops the worker
func (w *EventLogWorker) Stop() error {
	w.logger.Info("Stopping event log worker")
	return w.consumer.Close()
}

func (w *EventLogWorker) handleMessage(ctx context.Context, msg kafka.Message) error {
	var event models.BaseEvent
	if err := json.Unmarshal(msg.Value, &event); err != nil {
		return fmt.Errorf("failed to unmarshal event: %w", err)
	}

	util.EventsConsumedTotal.WithLabelValues(event.EventType).Inc()
	w.logger.Info("Entity event",
		zap.String("event_type", event.EventType),
		zap.String("event_id", event.EventID),
		zap.Time("timestamp", event.Timestamp),
		zap.ByteString("payload", msg.Value))
	return nil
}
