package catalog

import (
	"testing"

	"github.com/google/uuid"
	"github.com/ncastellanos/tiendita-backend/pkg/db/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupCatalogTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := "file:" + uuid.NewString() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	products := `
CREATE TABLE IF NOT EXISTS products (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  name TEXT NOT NULL,
  description TEXT NOT NULL DEFAULT '',
  category TEXT NOT NULL DEFAULT '',
  size TEXT NOT NULL DEFAULT '',
  color TEXT NOT NULL DEFAULT '',
  stock INTEGER NOT NULL DEFAULT 0,
  available INTEGER NOT NULL DEFAULT 1,
  price_50 NUMERIC NOT NULL,
  price_100 NUMERIC NOT NULL,
  price_200 NUMERIC NOT NULL
);`
	require.NoError(t, db.Exec(products).Error)
	return db
}

func mustCreateProduct(t *testing.T, db *gorm.DB, name, category string, stock int, available bool) *models.Product {
	t.Helper()

	product := &models.Product{
		Name:        name,
		Description: name + " descripcion",
		Category:    category,
		Size:        "M",
		Color:       "blanco",
		Stock:       stock,
		Available:   available,
		Price50:     decimal.RequireFromString("58.00"),
		Price100:    decimal.RequireFromString("52.00"),
		Price200:    decimal.RequireFromString("47.00"),
	}
	require.NoError(t, db.Create(product).Error)
	return product
}
