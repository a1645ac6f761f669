package service

import (
	"context"
	"time"

	"crm-service/internal/broker"
	"crm-service/internal/models"
	"crm-service/internal/util"
	"crm-service/internal/validate"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// ProductStore is the persistence surface the product service needs.
type ProductStore interface {
	CreateProduct(ctx context.Context, product *models.Product) error
	ListProducts(ctx context.Context, filter *models.ProductFilter) ([]models.Product, error)
	RestockLowStockProducts(ctx context.Context, threshold, increment int) ([]models.Product, error)
}

// ProductService handles product business logic
type ProductService struct {
	store             ProductStore
	events            *broker.EventPublisher
	lowStockThreshold int
	restockAmount     int
	logger            *zap.Logger
}

// NewProductService creates a new product service
func NewProductService(store ProductStore, events *broker.EventPublisher, lowStockThreshold, restockAmount int) *ProductService {
	return &ProductService{
		store:             store,
		events:            events,
		lowStockThreshold: lowStockThreshold,
		restockAmount:     restockAmount,
		logger:            util.GetLogger(),
	}
}

// ProductInput carries the fields of a product to create. A nil Stock
// defaults to 0.
type ProductInput struct {
	Name  string
	Price decimal.Decimal
	Stock *int
}

// CreateProduct validates the input, persists the product and returns it.
func (s *ProductService) CreateProduct(ctx context.Context, input ProductInput) (*models.Product, error) {
	ctx, span := util.StartSpan(ctx, "ProductService.CreateProduct")
	defer span.End()

	stock := 0
	if input.Stock != nil {
		stock = *input.Stock
	}

	product := &models.Product{
		Name:  input.Name,
		Price: input.Price,
		Stock: stock,
	}
	if err := validate.Product(product); err != nil {
		return nil, err
	}

	if err := s.store.CreateProduct(ctx, product); err != nil {
		return nil, err
	}

	util.ProductsCreatedTotal.Inc()
	s.logger.Info("Product created", zap.Int64("product_id", product.ID))

	if s.events != nil {
		event := &models.ProductCreatedEvent{
			BaseEvent: models.BaseEvent{
				EventID:   uuid.New().String(),
				EventType: models.EventTypeProductCreated,
				Timestamp: time.Now(),
			},
			ProductID: product.ID,
			Name:      product.Name,
			Price:     product.Price,
			Stock:     product.Stock,
		}
		if err := s.events.PublishProductCreated(ctx, event); err != nil {
			s.logger.Error("Failed to publish ProductCreated event", zap.Error(err))
		}
	}

	return product, nil
}

// UpdateLowStockProducts restocks every product whose stock is below the
// configured threshold and returns the updated products with a summary
// message.
func (s *ProductService) UpdateLowStockProducts(ctx context.Context) ([]models.Product, string, error) {
	ctx, span := util.StartSpan(ctx, "ProductService.UpdateLowStockProducts")
	defer span.End()

	products, err := s.store.RestockLowStockProducts(ctx, s.lowStockThreshold, s.restockAmount)
	if err != nil {
		return nil, "", err
	}

	util.ProductsRestockedTotal.Add(float64(len(products)))
	s.logger.Info("Low stock products restocked", zap.Int("count", len(products)))

	if s.events != nil && len(products) > 0 {
		productIDs := make([]int64, len(products))
		for i, p := range products {
			productIDs[i] = p.ID
		}
		event := &models.ProductsRestockedEvent{
			BaseEvent: models.BaseEvent{
				EventID:   uuid.New().String(),
				EventType: models.EventTypeProductsRestocked,
				Timestamp: time.Now(),
			},
			ProductIDs: productIDs,
			Threshold:  s.lowStockThreshold,
			Increment:  s.restockAmount,
		}
		if err := s.events.PublishProductsRestocked(ctx, event); err != nil {
			s.logger.Error("Failed to publish ProductsRestocked event", zap.Error(err))
		}
	}

	return products, "Low stock products updated successfully", nil
}

// ListProducts retrieves products matching the filter
func (s *ProductService) ListProducts(ctx context.Context, filter *models.ProductFilter) ([]models.Product, error) {
	return s.store.ListProducts(ctx, filter)
}
