package store

import (
	"testing"
	"time"

	"crm-service/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCustomerPredicatesEmpty(t *testing.T) {
	assert.Equal(t, "", customerPredicates(nil).where())
	assert.Equal(t, "", customerPredicates(&models.CustomerFilter{}).where())
}

func TestCustomerPredicates(t *testing.T) {
	after := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	f := &models.CustomerFilter{
		NameContains:  "ali",
		EmailContains: "example.com",
		CreatedAfter:  &after,
		PhonePattern:  "+1",
	}

	p := customerPredicates(f)
	require.Len(t, p.clauses, 4)
	assert.Equal(t, "name ILIKE ?", p.clauses[0])
	assert.Equal(t, "email ILIKE ?", p.clauses[1])
	assert.Equal(t, "created_at >= ?", p.clauses[2])
	assert.Equal(t, "phone LIKE ?", p.clauses[3])
	assert.Equal(t, []interface{}{"%ali%", "%example.com%", after, "+1%"}, p.args)

	assert.Equal(t,
		" WHERE name ILIKE ? AND email ILIKE ? AND created_at >= ? AND phone LIKE ?",
		p.where())
}

func TestProductPredicatesPriceRange(t *testing.T) {
	gte := decimal.NewFromInt(10)
	lte := decimal.NewFromInt(20)
	f := &models.ProductFilter{PriceGte: &gte, PriceLte: &lte}

	p := productPredicates(f)
	assert.Equal(t, []string{"price >= ?", "price <= ?"}, p.clauses)
	assert.Equal(t, []interface{}{gte, lte}, p.args)
}

func TestProductPredicatesLowStock(t *testing.T) {
	threshold := 10
	p := productPredicates(&models.ProductFilter{LowStock: &threshold})

	assert.Equal(t, []string{"stock < ?"}, p.clauses)
	assert.Equal(t, []interface{}{10}, p.args)
}

func TestOrderPredicatesRelatedLookups(t *testing.T) {
	productID := int64(7)
	f := &models.OrderFilter{
		CustomerName: "Alice",
		ProductName:  "Lamp",
		ProductID:    &productID,
	}

	p := orderPredicates(f)
	require.Len(t, p.clauses, 3)
	assert.Contains(t, p.clauses[0], "FROM customers c")
	assert.Contains(t, p.clauses[0], "c.name ILIKE ?")
	assert.Contains(t, p.clauses[1], "JOIN products p")
	assert.Contains(t, p.clauses[2], "op.product_id = ?")
	assert.Equal(t, []interface{}{"%Alice%", "%Lamp%", int64(7)}, p.args)
}

func TestOrderPredicatesDateAndTotalRanges(t *testing.T) {
	from := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 1, 0)
	gte := decimal.NewFromInt(100)
	f := &models.OrderFilter{
		OrderDateGte:   &from,
		OrderDateLte:   &to,
		TotalAmountGte: &gte,
	}

	p := orderPredicates(f)
	assert.Equal(t,
		[]string{"order_date >= ?", "order_date <= ?", "total_amount >= ?"},
		p.clauses)
	assert.Equal(t, []interface{}{from, to, gte}, p.args)
}
