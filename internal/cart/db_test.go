package cart

import (
	"context"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/ncastellanos/tiendita-backend/pkg/db/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupCartTestDB(t *testing.T) *gorm.DB {
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
	carts := `
CREATE TABLE IF NOT EXISTS carts (
  id TEXT PRIMARY KEY,
  conversation_id TEXT NOT NULL UNIQUE,
  created_at DATETIME
);`
	cartItems := `
CREATE TABLE IF NOT EXISTS cart_items (
  id TEXT PRIMARY KEY,
  cart_id TEXT NOT NULL,
  product_id INTEGER NOT NULL,
  qty INTEGER NOT NULL,
  unit_price NUMERIC NOT NULL,
  created_at DATETIME,
  updated_at DATETIME,
  UNIQUE (cart_id, product_id)
);`
	require.NoError(t, db.Exec(products).Error)
	require.NoError(t, db.Exec(carts).Error)
	require.NoError(t, db.Exec(cartItems).Error)
	return db
}

func mustCreateProduct(t *testing.T, db *gorm.DB, name string, stock int, available bool, p50, p100, p200 string) *models.Product {
	t.Helper()

	product := &models.Product{
		Name:      name,
		Category:  "playeras",
		Size:      "M",
		Color:     "blanco",
		Stock:     stock,
		Available: available,
		Price50:   decimal.RequireFromString(p50),
		Price100:  decimal.RequireFromString(p100),
		Price200:  decimal.RequireFromString(p200),
	}
	require.NoError(t, db.Create(product).Error)
	return product
}

// fakeTagger records tagging calls and can be made to fail.
type fakeTagger struct {
	mu    sync.Mutex
	calls []taggerCall
	err   error
}

type taggerCall struct {
	conversationID string
	labels         []string
}

func (f *fakeTagger) TagConversation(_ context.Context, conversationID string, labels []string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, taggerCall{conversationID: conversationID, labels: labels})
	return f.err
}

func (f *fakeTagger) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}
