package store

import (
	"context"
	"database/sql"

	"crm-service/internal/errs"
	"crm-service/internal/models"

	"github.com/jmoiron/sqlx"
)

// CreateProduct inserts a new product
func (s *Store) CreateProduct(ctx context.Context, product *models.Product) error {
	query := `
		INSERT INTO products (name, price, stock)
		VALUES ($1, $2, $3)
		RETURNING id, created_at`

	return s.db.GetContext(ctx, product, query,
		product.Name, product.Price, product.Stock)
}

// GetProductByID retrieves a product by ID
func (s *Store) GetProductByID(ctx context.Context, id int64) (*models.Product, error) {
	var product models.Product
	err := s.db.GetContext(ctx, &product, "SELECT * FROM products WHERE id = $1", id)
	if err == sql.ErrNoRows {
		return nil, &errs.NotFoundError{Entity: "product", Message: "Product does not exist"}
	}
	if err != nil {
		return nil, err
	}
	return &product, nil
}

// GetProductsByIDs retrieves the products whose ids are in ids. Unknown
// ids are simply absent from the result, not an error.
func (s *Store) GetProductsByIDs(ctx context.Context, ids []int64) ([]models.Product, error) {
	if len(ids) == 0 {
		return []models.Product{}, nil
	}

	query, args, err := sqlx.In("SELECT * FROM products WHERE id IN (?) ORDER BY id", ids)
	if err != nil {
		return nil, err
	}
	query = s.db.Rebind(query)

	products := []models.Product{}
	err = s.db.SelectContext(ctx, &products, query, args...)
	return products, err
}

// ListProducts retrieves products matching the filter, all products when
// the filter is nil.
func (s *Store) ListProducts(ctx context.Context, filter *models.ProductFilter) ([]models.Product, error) {
	p := productPredicates(filter)
	query := s.db.Rebind("SELECT * FROM products" + p.where() + " ORDER BY id")

	products := []models.Product{}
	err := s.db.SelectContext(ctx, &products, query, p.args...)
	return products, err
}

// RestockLowStockProducts increments stock for every product below the
// threshold and returns the updated rows.
func (s *Store) RestockLowStockProducts(ctx context.Context, threshold, increment int) ([]models.Product, error) {
	query := `
		UPDATE products
		SET stock = stock + $1
		WHERE stock < $2
		RETURNING id, name, price, stock, created_at`

	products := []models.Product{}
	err := s.db.SelectContext(ctx, &products, query, increment, threshold)
	return products, err
}
