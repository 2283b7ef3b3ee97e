package catalog

import (
	"github.com/ncastellanos/tiendita-backend/pkg/db/models"
	"github.com/shopspring/decimal"
)

// ProductDTO is the wire shape of a catalog row.
type ProductDTO struct {
	ID          int64           `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Category    string          `json:"category"`
	Size        string          `json:"size"`
	Color       string          `json:"color"`
	Stock       int             `json:"stock"`
	Available   bool            `json:"available"`
	Price50     decimal.Decimal `json:"price_50"`
	Price100    decimal.Decimal `json:"price_100"`
	Price200    decimal.Decimal `json:"price_200"`
}

func toDTO(p *models.Product) *ProductDTO {
	return &ProductDTO{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Category:    p.Category,
		Size:        p.Size,
		Color:       p.Color,
		Stock:       p.Stock,
		Available:   p.Available,
		Price50:     p.Price50,
		Price100:    p.Price100,
		Price200:    p.Price200,
	}
}
