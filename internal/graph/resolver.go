// Package graph exposes the CRM operations as a single GraphQL schema
// served over HTTP.
package graph

import (
	"context"

	"crm-service/internal/models"
	"crm-service/internal/service"

	"github.com/shopspring/decimal"
)

// CustomerService is the customer surface the resolvers call.
// *service.CustomerService satisfies it.
type CustomerService interface {
	CreateCustomer(ctx context.Context, input service.CustomerInput) (*models.Customer, error)
	BulkCreateCustomers(ctx context.Context, inputs []service.CustomerInput) ([]models.Customer, []string)
	ListCustomers(ctx context.Context, filter *models.CustomerFilter) ([]models.Customer, error)
	CountCustomers(ctx context.Context) (int64, error)
}

// ProductService is the product surface the resolvers call.
type ProductService interface {
	CreateProduct(ctx context.Context, input service.ProductInput) (*models.Product, error)
	UpdateLowStockProducts(ctx context.Context) ([]models.Product, string, error)
	ListProducts(ctx context.Context, filter *models.ProductFilter) ([]models.Product, error)
}

// OrderService is the order surface the resolvers call.
type OrderService interface {
	CreateOrder(ctx context.Context, input service.OrderInput) (*models.Order, error)
	ListOrders(ctx context.Context, filter *models.OrderFilter) ([]models.Order, error)
	CountOrders(ctx context.Context) (int64, error)
	TotalRevenue(ctx context.Context) (decimal.Decimal, error)
}

// Resolver holds the services the schema resolves against.
type Resolver struct {
	Customers CustomerService
	Products  ProductService
	Orders    OrderService
}
