package service

import (
	"context"
	"fmt"
	"time"

	"crm-service/internal/broker"
	"crm-service/internal/errs"
	"crm-service/internal/models"
	"crm-service/internal/util"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// OrderStore is the persistence surface the order service needs.
type OrderStore interface {
	GetCustomerByID(ctx context.Context, id int64) (*models.Customer, error)
	GetProductsByIDs(ctx context.Context, ids []int64) ([]models.Product, error)
	CreateOrder(ctx context.Context, order *models.Order, products []models.Product) error
	ListOrders(ctx context.Context, filter *models.OrderFilter) ([]models.Order, error)
	CountOrders(ctx context.Context) (int64, error)
	TotalRevenue(ctx context.Context) (decimal.Decimal, error)
}

// OrderService handles order business logic
type OrderService struct {
	store  OrderStore
	events *broker.EventPublisher
	logger *zap.Logger
}

// NewOrderService creates a new order service
func NewOrderService(store OrderStore, events *broker.EventPublisher) *OrderService {
	return &OrderService{
		store:  store,
		events: events,
		logger: util.GetLogger(),
	}
}

// OrderInput carries the fields of an order to create. A nil OrderDate
// defaults to the creation time.
type OrderInput struct {
	CustomerID int64
	ProductIDs []int64
	OrderDate  *time.Time
}

// CreateOrder resolves the customer and products, then persists the
// order with its derived total. Product ids that match nothing are
// silently dropped; the order fails only when none remain.
func (s *OrderService) CreateOrder(ctx context.Context, input OrderInput) (*models.Order, error) {
	ctx, span := util.StartSpan(ctx, "OrderService.CreateOrder")
	defer span.End()

	customer, err := s.store.GetCustomerByID(ctx, input.CustomerID)
	if err != nil {
		if errs.IsNotFound(err) {
			util.OrdersFailedTotal.WithLabelValues("customer_not_found").Inc()
			return nil, err
		}
		return nil, fmt.Errorf("failed to look up customer: %w", err)
	}

	products, err := s.store.GetProductsByIDs(ctx, input.ProductIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to look up products: %w", err)
	}
	if len(products) == 0 {
		util.OrdersFailedTotal.WithLabelValues("no_valid_products").Inc()
		return nil, &errs.EmptySelectionError{Message: "At least one valid product must be selected"}
	}

	orderDate := time.Now()
	if input.OrderDate != nil {
		orderDate = *input.OrderDate
	}

	order := &models.Order{
		CustomerID:  customer.ID,
		TotalAmount: orderTotal(products),
		OrderDate:   orderDate,
	}

	if err := s.store.CreateOrder(ctx, order, products); err != nil {
		util.OrdersFailedTotal.WithLabelValues("db_error").Inc()
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	order.Customer = customer
	order.Products = products

	util.OrdersCreatedTotal.Inc()
	s.logger.Info("Order created",
		zap.Int64("order_id", order.ID),
		zap.Int64("customer_id", customer.ID),
		zap.String("total_amount", order.TotalAmount.String()))

	if s.events != nil {
		productIDs := make([]int64, len(products))
		for i, p := range products {
			productIDs[i] = p.ID
		}
		event := &models.OrderCreatedEvent{
			BaseEvent: models.BaseEvent{
				EventID:   uuid.New().String(),
				EventType: models.EventTypeOrderCreated,
				Timestamp: time.Now(),
			},
			OrderID:     order.ID,
			CustomerID:  order.CustomerID,
			TotalAmount: order.TotalAmount,
			ProductIDs:  productIDs,
			OrderDate:   order.OrderDate,
		}
		if err := s.events.PublishOrderCreated(ctx, event); err != nil {
			s.logger.Error("Failed to publish OrderCreated event", zap.Error(err))
		}
	}

	return order, nil
}

// orderTotal sums the prices of the products associated at creation time.
func orderTotal(products []models.Product) decimal.Decimal {
	total := decimal.Zero
	for _, product := range products {
		total = total.Add(product.Price)
	}
	return total
}

// ListOrders retrieves orders matching the filter
func (s *OrderService) ListOrders(ctx context.Context, filter *models.OrderFilter) ([]models.Order, error) {
	return s.store.ListOrders(ctx, filter)
}

// CountOrders returns the total number of orders
func (s *OrderService) CountOrders(ctx context.Context) (int64, error) {
	return s.store.CountOrders(ctx)
}

// TotalRevenue returns the sum of all order totals
func (s *OrderService) TotalRevenue(ctx context.Context) (decimal.Decimal, error) {
	return s.store.TotalRevenue(ctx)
}
