package cart

import (
	"github.com/shopspring/decimal"
)

// CartItemView is one line of the cart as returned to callers.
type CartItemView struct {
	ProductID int64           `json:"product_id"`
	Qty       int             `json:"qty"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Name      string          `json:"name"`
}

// CartView is the full cart payload: items ordered by product id plus
// the running total.
type CartView struct {
	CartID string          `json:"cart_id"`
	Items  []CartItemView  `json:"items"`
	Total  decimal.Decimal `json:"total"`
}
