package pricing

import (
	"testing"

	"github.com/ncastellanos/tiendita-backend/pkg/db/models"
	"github.com/shopspring/decimal"
)

func TestUnitPriceTierBoundaries(t *testing.T) {
	p := &models.Product{
		Price50:  decimal.RequireFromString("58.00"),
		Price100: decimal.RequireFromString("52.00"),
		Price200: decimal.RequireFromString("47.00"),
	}

	cases := []struct {
		qty  int
		want decimal.Decimal
	}{
		{1, p.Price50},
		{49, p.Price50},
		{50, p.Price50},
		{99, p.Price50},
		{100, p.Price100},
		{101, p.Price100},
		{199, p.Price100},
		{200, p.Price200},
		{201, p.Price200},
		{5000, p.Price200},
	}

	for _, tc := range cases {
		got := UnitPrice(p, tc.qty)
		if !got.Equal(tc.want) {
			t.Errorf("qty=%d: got %s, want %s", tc.qty, got, tc.want)
		}
	}
}
