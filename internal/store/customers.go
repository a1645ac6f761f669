package store

import (
	"context"
	"database/sql"

	"crm-service/internal/errs"
	"crm-service/internal/models"
)

// CreateCustomer inserts a new customer. A duplicate email surfaces as a
// UniquenessError rather than a raw driver error.
func (s *Store) CreateCustomer(ctx context.Context, customer *models.Customer) error {
	query := `
		INSERT INTO customers (name, email, phone)
		VALUES ($1, $2, $3)
		RETURNING id, created_at`

	err := s.db.GetContext(ctx, customer, query,
		customer.Name, customer.Email, customer.Phone)
	if isUniqueViolation(err) {
		return &errs.UniquenessError{
			Field:   "email",
			Message: "customer with this email already exists",
		}
	}
	return err
}

// GetCustomerByID retrieves a customer by ID
func (s *Store) GetCustomerByID(ctx context.Context, id int64) (*models.Customer, error) {
	var customer models.Customer
	err := s.db.GetContext(ctx, &customer, "SELECT * FROM customers WHERE id = $1", id)
	if err == sql.ErrNoRows {
		return nil, &errs.NotFoundError{Entity: "customer", Message: "Customer does not exist"}
	}
	if err != nil {
		return nil, err
	}
	return &customer, nil
}

// ListCustomers retrieves customers matching the filter, all customers
// when the filter is nil.
func (s *Store) ListCustomers(ctx context.Context, filter *models.CustomerFilter) ([]models.Customer, error) {
	p := customerPredicates(filter)
	query := s.db.Rebind("SELECT * FROM customers" + p.where() + " ORDER BY id")

	customers := []models.Customer{}
	err := s.db.SelectContext(ctx, &customers, query, p.args...)
	return customers, err
}

// CountCustomers returns the total number of customers
func (s *Store) CountCustomers(ctx context.Context) (int64, error) {
	var count int64
	err := s.db.GetContext(ctx, &count, "SELECT COUNT(*) FROM customers")
	return count, err
}
