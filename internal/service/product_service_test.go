package service

import (
	"context"
	"testing"
	"time"

	"crm-service/internal/errs"
	"crm-service/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeProductStore struct {
	products []models.Product
	nextID   int64
}

func (f *fakeProductStore) CreateProduct(ctx context.Context, product *models.Product) error {
	f.nextID++
	product.ID = f.nextID
	product.CreatedAt = time.Now()
	f.products = append(f.products, *product)
	return nil
}

func (f *fakeProductStore) ListProducts(ctx context.Context, filter *models.ProductFilter) ([]models.Product, error) {
	return f.products, nil
}

func (f *fakeProductStore) RestockLowStockProducts(ctx context.Context, threshold, increment int) ([]models.Product, error) {
	updated := []models.Product{}
	for i := range f.products {
		if f.products[i].Stock < threshold {
			f.products[i].Stock += increment
			updated = append(updated, f.products[i])
		}
	}
	return updated, nil
}

func newProductService(store *fakeProductStore) *ProductService {
	return NewProductService(store, nil, 10, 10)
}

func TestCreateProduct(t *testing.T) {
	store := &fakeProductStore{}
	svc := newProductService(store)

	stock := 25
	product, err := svc.CreateProduct(context.Background(), ProductInput{
		Name:  "Desk Lamp",
		Price: decimal.NewFromFloat(19.99),
		Stock: &stock,
	})

	require.NoError(t, err)
	assert.Equal(t, int64(1), product.ID)
	assert.Equal(t, 25, product.Stock)
	assert.True(t, product.Price.Equal(decimal.NewFromFloat(19.99)))
}

func TestCreateProductDefaultStock(t *testing.T) {
	store := &fakeProductStore{}
	svc := newProductService(store)

	product, err := svc.CreateProduct(context.Background(), ProductInput{
		Name:  "Desk Lamp",
		Price: decimal.NewFromInt(10),
	})

	require.NoError(t, err)
	assert.Equal(t, 0, product.Stock)
}

func TestCreateProductNegativePrice(t *testing.T) {
	store := &fakeProductStore{}
	svc := newProductService(store)

	_, err := svc.CreateProduct(context.Background(), ProductInput{
		Name:  "Desk Lamp",
		Price: decimal.NewFromInt(-5),
	})

	require.Error(t, err)
	assert.True(t, errs.IsValidation(err))
	assert.Empty(t, store.products)
}

func TestCreateProductMissingName(t *testing.T) {
	store := &fakeProductStore{}
	svc := newProductService(store)

	_, err := svc.CreateProduct(context.Background(), ProductInput{
		Price: decimal.NewFromInt(5),
	})

	require.Error(t, err)
	assert.True(t, errs.IsValidation(err))
}

func TestUpdateLowStockProducts(t *testing.T) {
	store := &fakeProductStore{}
	svc := newProductService(store)

	low := 3
	high := 50
	_, err := svc.CreateProduct(context.Background(), ProductInput{
		Name: "Low", Price: decimal.NewFromInt(1), Stock: &low,
	})
	require.NoError(t, err)
	_, err = svc.CreateProduct(context.Background(), ProductInput{
		Name: "High", Price: decimal.NewFromInt(1), Stock: &high,
	})
	require.NoError(t, err)

	updated, message, err := svc.UpdateLowStockProducts(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "Low stock products updated successfully", message)
	require.Len(t, updated, 1)
	assert.Equal(t, "Low", updated[0].Name)
	assert.Equal(t, 13, updated[0].Stock)

	// Second pass finds nothing below threshold.
	updated, _, err = svc.UpdateLowStockProducts(context.Background())
	require.NoError(t, err)
	assert.Empty(t, updated)
}
