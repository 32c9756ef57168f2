package kit

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testAddress struct {
	Street string `json:"street" validate:"required"`
	City   string `json:"city" validate:"required"`
}

type testOrder struct {
	ShippingAddress testAddress `json:"shippingAddress" validate:"required"`
	PaymentMethod   string      `json:"paymentMethod" validate:"required"`
}

type testProduct struct {
	Name  string  `json:"name" validate:"required,min=3,max=100"`
	Price float64 `json:"price" validate:"required,gt=0"`
	Image string  `json:"image" validate:"omitempty,url"`
	Stock int     `json:"stock" validate:"gte=0"`
}

func TestValidateStruct_Valid(t *testing.T) {
	v := testProduct{Name: "Desk Lamp", Price: 39.99, Stock: 5}
	assert.Nil(t, ValidateStruct(v))

	v.Image = "https://example.com/lamp.jpg"
	assert.Nil(t, ValidateStruct(v))
}

func TestValidateStruct_ReportsJSONFieldNames(t *testing.T) {
	violations := ValidateStruct(testProduct{Name: "ab", Price: -1, Stock: -1})
	require.Len(t, violations, 3)

	byField := map[string]FieldViolation{}
	for _, fv := range violations {
		byField[fv.Field] = fv
	}

	require.Contains(t, byField, "name")
	assert.Equal(t, "min", byField["name"].Rule)
	assert.Equal(t, "3", byField["name"].Param)

	require.Contains(t, byField, "price")
	assert.Equal(t, "gt", byField["price"].Rule)

	require.Contains(t, byField, "stock")
	assert.Equal(t, "gte", byField["stock"].Rule)
}

func TestValidateStruct_OptionalURL(t *testing.T) {
	violations := ValidateStruct(testProduct{Name: "Desk Lamp", Price: 1, Image: "not a url"})
	require.Len(t, violations, 1)
	assert.Equal(t, "image", violations[0].Field)
	assert.Equal(t, "url", violations[0].Rule)
}

func TestValidateStruct_NestedFieldPath(t *testing.T) {
	violations := ValidateStruct(testOrder{
		ShippingAddress: testAddress{Street: "1 Main St"},
		PaymentMethod:   "card",
	})
	require.Len(t, violations, 1)
	assert.Equal(t, "shippingAddress.city", violations[0].Field)
	assert.Equal(t, "required", violations[0].Rule)
}
