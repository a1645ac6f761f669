package store

import (
	"context"
	"database/sql"

	"crm-service/internal/errs"
	"crm-service/internal/models"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
)

// CreateOrder persists an order and its product associations in one
// transaction: insert the order row, attach the products once the row
// has an id, then write the derived total.
func (s *Store) CreateOrder(ctx context.Context, order *models.Order, products []models.Product) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	query := `
		INSERT INTO orders (customer_id, total_amount, order_date)
		VALUES ($1, 0, $2)
		RETURNING id, created_at`

	if err := tx.GetContext(ctx, order, query, order.CustomerID, order.OrderDate); err != nil {
		return err
	}

	for _, product := range products {
		_, err := tx.ExecContext(ctx,
			"INSERT INTO order_products (order_id, product_id) VALUES ($1, $2)",
			order.ID, product.ID)
		if err != nil {
			return err
		}
	}

	_, err = tx.ExecContext(ctx,
		"UPDATE orders SET total_amount = $1 WHERE id = $2",
		order.TotalAmount, order.ID)
	if err != nil {
		return err
	}

	return tx.Commit()
}

// GetOrderByID retrieves an order with its customer and products.
func (s *Store) GetOrderByID(ctx context.Context, id int64) (*models.Order, error) {
	var order models.Order
	err := s.db.GetContext(ctx, &order, "SELECT * FROM orders WHERE id = $1", id)
	if err == sql.ErrNoRows {
		return nil, &errs.NotFoundError{Entity: "order", Message: "Order does not exist"}
	}
	if err != nil {
		return nil, err
	}

	orders := []models.Order{order}
	if err := s.hydrateOrders(ctx, orders); err != nil {
		return nil, err
	}
	return &orders[0], nil
}

// ListOrders retrieves orders matching the filter, all orders when the
// filter is nil, with customers and products populated.
func (s *Store) ListOrders(ctx context.Context, filter *models.OrderFilter) ([]models.Order, error) {
	p := orderPredicates(filter)
	query := s.db.Rebind("SELECT * FROM orders" + p.where() + " ORDER BY id")

	orders := []models.Order{}
	if err := s.db.SelectContext(ctx, &orders, query, p.args...); err != nil {
		return nil, err
	}
	if err := s.hydrateOrders(ctx, orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// CountOrders returns the total number of orders
func (s *Store) CountOrders(ctx context.Context) (int64, error) {
	var count int64
	err := s.db.GetContext(ctx, &count, "SELECT COUNT(*) FROM orders")
	return count, err
}

// TotalRevenue returns the sum of all order totals
func (s *Store) TotalRevenue(ctx context.Context) (decimal.Decimal, error) {
	var revenue decimal.Decimal
	err := s.db.GetContext(ctx, &revenue, "SELECT COALESCE(SUM(total_amount), 0) FROM orders")
	return revenue, err
}

type orderProductRow struct {
	OrderID int64 `db:"order_id"`
	models.Product
}

// hydrateOrders batch-loads the customers and products referenced by the
// given orders and attaches them in place.
func (s *Store) hydrateOrders(ctx context.Context, orders []models.Order) error {
	if len(orders) == 0 {
		return nil
	}

	orderIDs := make([]int64, len(orders))
	customerIDs := make([]int64, len(orders))
	for i := range orders {
		orderIDs[i] = orders[i].ID
		customerIDs[i] = orders[i].CustomerID
	}

	query, args, err := sqlx.In("SELECT * FROM customers WHERE id IN (?)", customerIDs)
	if err != nil {
		return err
	}
	customers := []models.Customer{}
	if err := s.db.SelectContext(ctx, &customers, s.db.Rebind(query), args...); err != nil {
		return err
	}
	customersByID := make(map[int64]*models.Customer, len(customers))
	for i := range customers {
		customersByID[customers[i].ID] = &customers[i]
	}

	query, args, err = sqlx.In(`
		SELECT op.order_id, p.id, p.name, p.price, p.stock, p.created_at
		FROM order_products op
		JOIN products p ON p.id = op.product_id
		WHERE op.order_id IN (?)
		ORDER BY p.id`, orderIDs)
	if err != nil {
		return err
	}
	rows := []orderProductRow{}
	if err := s.db.SelectContext(ctx, &rows, s.db.Rebind(query), args...); err != nil {
		return err
	}
	productsByOrder := make(map[int64][]models.Product, len(orders))
	for _, row := range rows {
		productsByOrder[row.OrderID] = append(productsByOrder[row.OrderID], row.Product)
	}

	for i := range orders {
		orders[i].Customer = customersByID[orders[i].CustomerID]
		orders[i].Products = productsByOrder[orders[i].ID]
	}
	return nil
}
