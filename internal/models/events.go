package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Event types
const (
	EventTypeCustomerCreated   = "CUSTOMER_CREATED"
	EventTypeProductCreated    = "PRODUCT_CREATED"
	EventTypeOrderCreated      = "ORDER_CREATED"
	EventTypeProductsRestocked = "PRODUCTS_RESTOCKED"
)

// BaseEvent contains common fields for all events
type BaseEvent struct {
	EventID   string    `json:"event_id"`
	EventType string    `json:"event_type"`
	Timestamp time.Time `json:"timestamp"`
}

// CustomerCreatedEvent published when a customer is created
type CustomerCreatedEvent struct {
	BaseEvent
	CustomerID int64  `json:"customer_id"`
	Name       string `json:"name"`
	Email      string `json:"email"`
}

// ProductCreatedEvent published when a product is created
type ProductCreatedEvent struct {
	BaseEvent
	ProductID int64           `json:"product_id"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Stock     int             `json:"stock"`
}

// OrderCreatedEvent published when an order is created
type OrderCreatedEvent struct {
	BaseEvent
	OrderID     int64           `json:"order_id"`
	CustomerID  int64           `json:"customer_id"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	ProductIDs  []int64         `json:"product_ids"`
	OrderDate   time.Time       `json:"order_date"`
}

// ProductsRestockedEvent published when the low-stock restock runs
type ProductsRestockedEvent struct {
	BaseEvent
	ProductIDs []int64 `json:"product_ids"`
	Threshold  int     `json:"threshold"`
	Increment  int     `json:"increment"`
}
