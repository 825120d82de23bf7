package models

import "github.com/shopspring/decimal"

// Product represents a product row in the store.
type Product struct {
	ID       int             `gorm:"primaryKey;autoIncrement"`
	Name     string          `gorm:"type:varchar(255);not null;index"`
	Price    decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	Quantity int             `gorm:"not null"`
}

// TableName returns the table name for Product.
func (Product) TableName() string {
	return "products"
}
