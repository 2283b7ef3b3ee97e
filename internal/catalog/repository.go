// Package catalog serves read paths over the product table: the search
// listing and the single-product detail lookup.
package catalog

import (
	"context"
	"strings"

	"github.com/ncastellanos/tiendita-backend/pkg/db/models"
	"gorm.io/gorm"
)

// ListQuery carries the already-normalized listing parameters.
type ListQuery struct {
	Search string
	Limit  int
	Offset int
}

// Repository wires together product read persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// FindByID loads a product by id, available or not.
func (r *Repository) FindByID(ctx context.Context, id int64) (*models.Product, error) {
	var product models.Product
	if err := r.db.WithContext(ctx).First(&product, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

// ListAvailable returns available products ordered by id, optionally
// filtered by a substring match on name, description, or category.
func (r *Repository) ListAvailable(ctx context.Context, query ListQuery) ([]models.Product, error) {
	qb := r.db.WithContext(ctx).
		Model(&models.Product{}).
		Where("available = ?", true)

	if search := strings.TrimSpace(query.Search); search != "" {
		pattern := "%" + search + "%"
		qb = qb.Where("(name LIKE ? OR description LIKE ? OR category LIKE ?)", pattern, pattern, pattern)
	}

	var rows []models.Product
	err := qb.
		Order("id").
		Limit(query.Limit).
		Offset(query.Offset).
		Find(&rows).
		Error
	return rows, err
}
