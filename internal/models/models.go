package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Customer represents a CRM customer. Customers are immutable after
// creation; there is no update or delete path.
type Customer struct {
	ID        int64     `db:"id" json:"id"`
	Name      string    `db:"name" json:"name" validate:"required,max=100"`
	Email     string    `db:"email" json:"email" validate:"required,email,max=254"`
	Phone     string    `db:"phone" json:"phone,omitempty"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// Product represents a product in the catalog.
type Product struct {
	ID        int64           `db:"id" json:"id"`
	Name      string          `db:"name" json:"name" validate:"required,max=100"`
	Price     decimal.Decimal `db:"price" json:"price"`
	Stock     int             `db:"stock" json:"stock" validate:"min=0"`
	CreatedAt time.Time       `db:"created_at" json:"created_at"`
}

// Order represents a customer order. TotalAmount is derived from the
// associated products' prices at creation time and is never recomputed
// when prices change later.
type Order struct {
	ID          int64           `db:"id" json:"id"`
	CustomerID  int64           `db:"customer_id" json:"customer_id"`
	TotalAmount decimal.Decimal `db:"total_amount" json:"total_amount"`
	OrderDate   time.Time       `db:"order_date" json:"order_date"`
	CreatedAt   time.Time       `db:"created_at" json:"created_at"`

	Customer *Customer `db:"-" json:"customer,omitempty"`
	Products []Product `db:"-" json:"products,omitempty"`
}

// CustomerFilter narrows customer listings. Zero values mean
// "no constraint"; set fields combine with AND.
type CustomerFilter struct {
	NameContains  string
	EmailContains string
	CreatedAfter  *time.Time
	PhonePattern  string
}

// ProductFilter narrows product listings.
type ProductFilter struct {
	NameContains string
	PriceGte     *decimal.Decimal
	PriceLte     *decimal.Decimal
	StockGte     *int
	StockLte     *int
	LowStock     *int // stock strictly below this threshold
}

// OrderFilter narrows order listings. CustomerName and ProductName match
// against related rows, ProductID against the association table.
type OrderFilter struct {
	OrderDateGte   *time.Time
	OrderDateLte   *time.Time
	TotalAmountGte *decimal.Decimal
	TotalAmountLte *decimal.Decimal
	CustomerName   string
	ProductName    string
	ProductID      *int64
}
