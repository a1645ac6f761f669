package store

import (
	"strings"

	"crm-service/internal/models"
)

// predicates accumulates WHERE clauses with ? placeholders; callers
// rebind to the driver's placeholder style before executing.
type predicates struct {
	clauses []string
	args    []interface{}
}

func (p *predicates) add(clause string, args ...interface{}) {
	p.clauses = append(p.clauses, clause)
	p.args = append(p.args, args...)
}

// where renders the accumulated clauses as an AND-combined WHERE
// fragment, or an empty string when nothing was added.
func (p *predicates) where() string {
	if len(p.clauses) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(p.clauses, " AND ")
}

func contains(s string) string {
	return "%" + s + "%"
}

func customerPredicates(f *models.CustomerFilter) *predicates {
	p := &predicates{}
	if f == nil {
		return p
	}
	if f.NameContains != "" {
		p.add("name ILIKE ?", contains(f.NameContains))
	}
	if f.EmailContains != "" {
		p.add("email ILIKE ?", contains(f.EmailContains))
	}
	if f.CreatedAfter != nil {
		p.add("created_at >= ?", *f.CreatedAfter)
	}
	if f.PhonePattern != "" {
		p.add("phone LIKE ?", f.PhonePattern+"%")
	}
	return p
}

func productPredicates(f *models.ProductFilter) *predicates {
	p := &predicates{}
	if f == nil {
		return p
	}
	if f.NameContains != "" {
		p.add("name ILIKE ?", contains(f.NameContains))
	}
	if f.PriceGte != nil {
		p.add("price >= ?", *f.PriceGte)
	}
	if f.PriceLte != nil {
		p.add("price <= ?", *f.PriceLte)
	}
	if f.StockGte != nil {
		p.add("stock >= ?", *f.StockGte)
	}
	if f.StockLte != nil {
		p.add("stock <= ?", *f.StockLte)
	}
	if f.LowStock != nil {
		p.add("stock < ?", *f.LowStock)
	}
	return p
}

func orderPredicates(f *models.OrderFilter) *predicates {
	p := &predicates{}
	if f == nil {
		return p
	}
	if f.OrderDateGte != nil {
		p.add("order_date >= ?", *f.OrderDateGte)
	}
	if f.OrderDateLte != nil {
		p.add("order_date <= ?", *f.OrderDateLte)
	}
	if f.TotalAmountGte != nil {
		p.add("total_amount >= ?", *f.TotalAmountGte)
	}
	if f.TotalAmountLte != nil {
		p.add("total_amount <= ?", *f.TotalAmountLte)
	}
	if f.CustomerName != "" {
		p.add("EXISTS (SELECT 1 FROM customers c WHERE c.id = orders.customer_id AND c.name ILIKE ?)",
			contains(f.CustomerName))
	}
	if f.ProductName != "" {
		p.add("EXISTS (SELECT 1 FROM order_products op JOIN products p ON p.id = op.product_id WHERE op.order_id = orders.id AND p.name ILIKE ?)",
			contains(f.ProductName))
	}
	if f.ProductID != nil {
		p.add("EXISTS (SELECT 1 FROM order_products op WHERE op.order_id = orders.id AND op.product_id = ?)",
			*f.ProductID)
	}
	return p
}
