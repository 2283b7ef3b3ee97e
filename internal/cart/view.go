package cart

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Viewer builds the read model for a cart.
type Viewer struct {
	db *gorm.DB
}

// NewViewer builds a viewer tied to the provided GORM DB.
func NewViewer(db *gorm.DB) *Viewer {
	return &Viewer{db: db}
}

type cartItemRecord struct {
	ProductID int64
	Qty       int
	UnitPrice decimal.Decimal
	Name      string
}

// View loads the cart's items joined with product names, ordered by
// product id, and computes the total. A cart with no rows yields an empty
// item list and a zero total rather than an error.
func (v *Viewer) View(ctx context.Context, cartID uuid.UUID) (*CartView, error) {
	var records []cartItemRecord
	err := v.db.WithContext(ctx).
		Table("cart_items ci").
		Select("ci.product_id, ci.qty, ci.unit_price, p.name").
		Joins("JOIN products p ON p.id = ci.product_id").
		Where("ci.cart_id = ?", cartID).
		Order("p.id").
		Scan(&records).
		Error
	if err != nil {
		return nil, err
	}

	items := make([]CartItemView, 0, len(records))
	total := decimal.Zero
	for _, rec := range records {
		items = append(items, CartItemView{
			ProductID: rec.ProductID,
			Qty:       rec.Qty,
			UnitPrice: rec.UnitPrice,
			Name:      rec.Name,
		})
		total = total.Add(rec.UnitPrice.Mul(decimal.NewFromInt(int64(rec.Qty))))
	}

	return &CartView{
		CartID: cartID.String(),
		Items:  items,
		Total:  total,
	}, nil
}
