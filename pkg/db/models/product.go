package models

import (
	"github.com/shopspring/decimal"
)

// Product is the catalog row. The cart core treats it as read-only reference
// data: stock is compared against cart quantities but never mutated here.
type Product struct {
	ID          int64           `gorm:"column:id;primaryKey"`
	Name        string          `gorm:"column:name;not null"`
	Description string          `gorm:"column:description;not null;default:''"`
	Category    string          `gorm:"column:category;not null;default:''"`
	Size        string          `gorm:"column:size;not null;default:''"`
	Color       string          `gorm:"column:color;not null;default:''"`
	Stock       int             `gorm:"column:stock;not null;default:0"`
	Available   bool            `gorm:"column:available;not null;default:true"`
	Price50     decimal.Decimal `gorm:"column:price_50;type:numeric(10,2);not null"`
	Price100    decimal.Decimal `gorm:"column:price_100;type:numeric(10,2);not null"`
	Price200    decimal.Decimal `gorm:"column:price_200;type:numeric(10,2);not null"`
}
