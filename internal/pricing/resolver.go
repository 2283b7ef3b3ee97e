// Package pricing resolves the per-unit price for a product at a
// given order quantity using the three wholesale tiers.
package pricing

import (
	"github.com/ncastellanos/tiendita-backend/pkg/db/models"
	"github.com/shopspring/decimal"
)

// Tier breakpoints. Quantities at or above a breakpoint take that
// tier's price; anything below TierMid takes the base tier.
const (
	TierMid = 100
	TierTop = 200
)

// UnitPrice returns the unit price the given quantity qualifies for.
// The quantity used is the one requested in the current operation,
// not any quantity already accumulated elsewhere.
func UnitPrice(p *models.Product, qty int) decimal.Decimal {
	switch {
	case qty >= TierTop:
		return p.Price200
	case qty >= TierMid:
		return p.Price100
	default:
		return p.Price50
	}
}
