package schemas

import (
	"github.com/shopspring/decimal"

	"productsapi/internal/models"
)

// ProductCreate is the body accepted by POST /products. Every field is required;
// pointers distinguish an absent field from its zero value.
//
// Prices must round to at most 99999999.99 to fit the decimal(10,2) column,
// so the bound is checked against the unrounded value at 99999999.995.
type ProductCreate struct {
	Name     *string  `json:"name" validate:"required,min=1,max=255"`
	Price    *float64 `json:"price" validate:"required,gte=0,lt=99999999.995"`
	Quantity *int     `json:"quantity" validate:"required,gte=0"`
}

// ProductUpdate is the body accepted by PUT /products/:id. Absent (or null)
// fields keep their stored value.
type ProductUpdate struct {
	Name     *string  `json:"name" validate:"omitempty,min=1,max=255"`
	Price    *float64 `json:"price" validate:"omitempty,gte=0,lt=99999999.995"`
	Quantity *int     `json:"quantity" validate:"omitempty,gte=0"`
}

// ProductRead is the outward representation of a stored product.
type ProductRead struct {
	ID       int     `json:"id"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
}

// ProductPath holds the :id route parameter.
type ProductPath struct {
	ID int `json:"product_id" validate:"gte=1"`
}

// ToModel builds a new record from a validated create payload.
func (in ProductCreate) ToModel() *models.Product {
	return &models.Product{
		Name:     *in.Name,
		Price:    RoundPrice(*in.Price),
		Quantity: *in.Quantity,
	}
}

// Apply overwrites only the fields present in the payload.
func (in ProductUpdate) Apply(p *models.Product) {
	if in.Name != nil {
		p.Name = *in.Name
	}
	if in.Price != nil {
		p.Price = RoundPrice(*in.Price)
	}
	if in.Quantity != nil {
		p.Quantity = *in.Quantity
	}
}

// NewProductRead converts a stored record to its read shape.
func NewProductRead(p *models.Product) ProductRead {
	return ProductRead{
		ID:       p.ID,
		Name:     p.Name,
		Price:    p.Price.InexactFloat64(),
		Quantity: p.Quantity,
	}
}

// NewProductReadList converts records to read shapes. A nil input yields an
// empty, non-nil slice so it encodes as [].
func NewProductReadList(products []models.Product) []ProductRead {
	out := make([]ProductRead, 0, len(products))
	for i := range products {
		out = append(out, NewProductRead(&products[i]))
	}
	return out
}

// RoundPrice converts a price to a two-digit decimal.
func RoundPrice(v float64) decimal.Decimal {
	return decimal.NewFromFloat(v).Round(2)
}
