package validate

import (
	"strings"
	"testing"

	"crm-service/internal/errs"
	"crm-service/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmail(t *testing.T) {
	assert.NoError(t, Email("alice@example.com"))
	assert.NoError(t, Email("bob.smith+tag@mail.example.co"))

	assert.Error(t, Email(""))
	assert.Error(t, Email("not-an-email"))
	assert.Error(t, Email("missing@domain"))
	assert.Error(t, Email("@example.com"))
}

func TestPhone(t *testing.T) {
	assert.NoError(t, Phone(""))
	assert.NoError(t, Phone("+1234567890"))
	assert.NoError(t, Phone("123-456-7890"))
	assert.NoError(t, Phone("+1 234 567 890"))

	assert.Error(t, Phone("123abc"))
	assert.Error(t, Phone("(123) 456-7890"))
	assert.Error(t, Phone("12+34"))
}

func TestCustomerAggregatesFieldErrors(t *testing.T) {
	customer := &models.Customer{
		Name:  "",
		Email: "not-an-email",
		Phone: "abc",
	}

	err := Customer(customer)
	require.Error(t, err)

	var ve *errs.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Len(t, ve.Fields, 3)

	fields := map[string]bool{}
	for _, fe := range ve.Fields {
		fields[fe.Field] = true
	}
	assert.True(t, fields["name"])
	assert.True(t, fields["email"])
	assert.True(t, fields["phone"])
}

func TestCustomerNameTooLong(t *testing.T) {
	customer := &models.Customer{
		Name:  strings.Repeat("x", 101),
		Email: "alice@example.com",
	}

	err := Customer(customer)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "at most 100")
}

func TestCustomerValid(t *testing.T) {
	customer := &models.Customer{
		Name:  "Alice Anderson",
		Email: "alice@example.com",
		Phone: "+1234567890",
	}
	assert.NoError(t, Customer(customer))
}

func TestProduct(t *testing.T) {
	valid := &models.Product{Name: "Desk Lamp", Price: decimal.NewFromFloat(19.99), Stock: 5}
	assert.NoError(t, Product(valid))

	negativePrice := &models.Product{Name: "Desk Lamp", Price: decimal.NewFromInt(-1)}
	err := Product(negativePrice)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "price")

	unnamed := &models.Product{Price: decimal.NewFromInt(10)}
	assert.Error(t, Product(unnamed))
}
