package service

import (
	"context"
	"testing"
	"time"

	"crm-service/internal/errs"
	"crm-service/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCustomerStore struct {
	customers []models.Customer
	nextID    int64
}

func (f *fakeCustomerStore) CreateCustomer(ctx context.Context, customer *models.Customer) error {
	for _, existing := range f.customers {
		if existing.Email == customer.Email {
			return &errs.UniquenessError{
				Field:   "email",
				Message: "customer with this email already exists",
			}
		}
	}
	f.nextID++
	customer.ID = f.nextID
	customer.CreatedAt = time.Now()
	f.customers = append(f.customers, *customer)
	return nil
}

func (f *fakeCustomerStore) ListCustomers(ctx context.Context, filter *models.CustomerFilter) ([]models.Customer, error) {
	return f.customers, nil
}

func (f *fakeCustomerStore) CountCustomers(ctx context.Context) (int64, error) {
	return int64(len(f.customers)), nil
}

func TestCreateCustomer(t *testing.T) {
	store := &fakeCustomerStore{}
	svc := NewCustomerService(store, nil)

	customer, err := svc.CreateCustomer(context.Background(), CustomerInput{
		Name:  "Alice Anderson",
		Email: "alice@example.com",
		Phone: "+1234567890",
	})

	require.NoError(t, err)
	assert.Equal(t, int64(1), customer.ID)
	assert.Equal(t, "Alice Anderson", customer.Name)
	assert.Equal(t, "alice@example.com", customer.Email)
	assert.Equal(t, "+1234567890", customer.Phone)
	assert.Len(t, store.customers, 1)
}

func TestCreateCustomerDuplicateEmail(t *testing.T) {
	store := &fakeCustomerStore{}
	svc := NewCustomerService(store, nil)

	_, err := svc.CreateCustomer(context.Background(), CustomerInput{
		Name: "Alice", Email: "alice@example.com",
	})
	require.NoError(t, err)

	_, err = svc.CreateCustomer(context.Background(), CustomerInput{
		Name: "Another Alice", Email: "alice@example.com",
	})
	require.Error(t, err)
	assert.True(t, errs.IsUniqueness(err))
	assert.Contains(t, err.Error(), "already exists")
	assert.Len(t, store.customers, 1)
}

func TestCreateCustomerInvalidPhone(t *testing.T) {
	store := &fakeCustomerStore{}
	svc := NewCustomerService(store, nil)

	_, err := svc.CreateCustomer(context.Background(), CustomerInput{
		Name: "Alice", Email: "alice@example.com", Phone: "123abc",
	})

	require.Error(t, err)
	assert.True(t, errs.IsValidation(err))
	assert.Contains(t, err.Error(), "Invalid phone format")
	assert.Empty(t, store.customers)
}

func TestCreateCustomerInvalidEmail(t *testing.T) {
	store := &fakeCustomerStore{}
	svc := NewCustomerService(store, nil)

	_, err := svc.CreateCustomer(context.Background(), CustomerInput{
		Name: "Alice", Email: "not-an-email",
	})

	require.Error(t, err)
	assert.True(t, errs.IsValidation(err))
	assert.Empty(t, store.customers)
}

func TestBulkCreateCustomersPartialSuccess(t *testing.T) {
	store := &fakeCustomerStore{}
	svc := NewCustomerService(store, nil)

	created, rowErrors := svc.BulkCreateCustomers(context.Background(), []CustomerInput{
		{Name: "Alice", Email: "alice@example.com"},
		{Name: "Bob", Email: "not-an-email"},
		{Name: "Carol", Email: "carol@example.com"},
	})

	assert.Len(t, created, 2)
	assert.Equal(t, "Alice", created[0].Name)
	assert.Equal(t, "Carol", created[1].Name)

	require.Len(t, rowErrors, 1)
	assert.Contains(t, rowErrors[0], "Row 2")
	assert.Len(t, store.customers, 2)
}

func TestBulkCreateCustomersDuplicateWithinBatch(t *testing.T) {
	store := &fakeCustomerStore{}
	svc := NewCustomerService(store, nil)

	created, rowErrors := svc.BulkCreateCustomers(context.Background(), []CustomerInput{
		{Name: "Alice", Email: "alice@example.com"},
		{Name: "Alice Again", Email: "alice@example.com"},
	})

	assert.Len(t, created, 1)
	require.Len(t, rowErrors, 1)
	assert.Contains(t, rowErrors[0], "Row 2")
	assert.Contains(t, rowErrors[0], "already exists")
}

func TestBulkCreateCustomersAllValid(t *testing.T) {
	store := &fakeCustomerStore{}
	svc := NewCustomerService(store, nil)

	created, rowErrors := svc.BulkCreateCustomers(context.Background(), []CustomerInput{
		{Name: "Alice", Email: "alice@example.com"},
		{Name: "Bob", Email: "bob@example.com"},
	})

	assert.Len(t, created, 2)
	assert.Empty(t, rowErrors)
}
