package broker

import (
	"context"
	"fmt"

	"crm-service/internal/models"
	"crm-service/internal/util"
)

// EventPublisher handles publishing entity lifecycle events
type EventPublisher struct {
	producer *Producer
}

// NewEventPublisher creates a new event publisher
func NewEventPublisher(producer *Producer) *EventPublisher {
	return &EventPublisher{producer: producer}
}

// PublishCustomerCreated publishes CustomerCreated event
func (ep *EventPublisher) PublishCustomerCreated(ctx context.Context, event *models.CustomerCreatedEvent) error {
	key := fmt.Sprintf("customer-%d", event.CustomerID)
	util.EventsPublishedTotal.WithLabelValues(event.EventType).Inc()
	return ep.producer.PublishEvent(ctx, key, event)
}

// PublishProductCreated publishes ProductCreated event
func (ep *EventPublisher) PublishProductCreated(ctx context.Context, event *models.ProductCreatedEvent) error {
	key := fmt.Sprintf("product-%d", event.ProductID)
	util.EventsPublishedTotal.WithLabelValues(event.EventType).Inc()
	return ep.producer.PublishEvent(ctx, key, event)
}

// PublishOrderCreated publishes OrderCreated event
func (ep *EventPublisher) PublishOrderCreated(ctx context.Context, event *models.OrderCreatedEvent) error {
	key := fmt.Sprintf("order-%d", event.OrderID)
	util.EventsPublishedTotal.WithLabelValues(event.EventType).Inc()
	return ep.producer.PublishEvent(ctx, key, event)
}

// PublishProductsRestocked publishes ProductsRestocked event
func (ep *EventPublisher) PublishProductsRestocked(ctx context.Context, event *models.ProductsRestockedEvent) error {
	util.EventsPublishedTotal.WithLabelValues(event.EventType).Inc()
	return ep.producer.PublishEvent(ctx, "restock", event)
}
