package cart

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/ncastellanos/tiendita-backend/pkg/db"
	"github.com/ncastellanos/tiendita-backend/pkg/db/models"
	pkgerrors "github.com/ncastellanos/tiendita-backend/pkg/errors"
	"github.com/sethvargo/go-retry"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	mergeRetryAttempts = 3
	mergeRetryBackoff  = 25 * time.Millisecond
)

// Ledger persists cart line items. One row per (cart, product); repeated
// adds merge quantities into the existing row.
type Ledger struct {
	db *gorm.DB
}

// NewLedger builds a ledger tied to the provided GORM DB.
func NewLedger(db *gorm.DB) *Ledger {
	return &Ledger{db: db}
}

// AddItem records qty units of the product in the cart. When a row for the
// product already exists the quantities merge, the merged quantity is
// re-checked against stock, and the unit price snapshot is replaced with
// the one resolved for this add.
//
// The merge is a compare-and-swap: the update is conditioned on the
// quantity observed in the read, so a concurrent add makes it match zero
// rows and the whole read-merge-write cycle retries. The insert path
// likewise retries as a merge when a concurrent insert claims the
// (cart_id, product_id) slot first.
func (l *Ledger) AddItem(ctx context.Context, cartID uuid.UUID, product *models.Product, qty int, unitPrice decimal.Decimal) error {
	backoff := retry.WithMaxRetries(mergeRetryAttempts, retry.NewConstant(mergeRetryBackoff))

	return retry.Do(ctx, backoff, func(ctx context.Context) error {
		var existing models.CartItem
		err := l.db.WithContext(ctx).
			First(&existing, "cart_id = ? AND product_id = ?", cartID, product.ID).
			Error

		switch {
		case err == nil:
			return l.merge(ctx, &existing, product, qty, unitPrice)
		case errors.Is(err, gorm.ErrRecordNotFound):
			return l.insert(ctx, cartID, product.ID, qty, unitPrice)
		default:
			return err
		}
	})
}

func (l *Ledger) insert(ctx context.Context, cartID uuid.UUID, productID int64, qty int, unitPrice decimal.Decimal) error {
	item := &models.CartItem{
		ID:        uuid.New(),
		CartID:    cartID,
		ProductID: productID,
		Qty:       qty,
		UnitPrice: unitPrice,
	}
	if err := l.db.WithContext(ctx).Create(item).Error; err != nil {
		if db.IsUniqueViolation(err) {
			// a concurrent add claimed the slot; redo as a merge
			return retry.RetryableError(err)
		}
		return err
	}
	return nil
}

func (l *Ledger) merge(ctx context.Context, existing *models.CartItem, product *models.Product, qty int, unitPrice decimal.Decimal) error {
	merged := existing.Qty + qty
	if product.Stock < merged {
		return pkgerrors.New(pkgerrors.CodeInsufficientStock,
			fmt.Sprintf("product %d: merged qty %d exceeds stock %d", product.ID, merged, product.Stock)).
			WithDetails(map[string]any{"stock": product.Stock})
	}

	res := l.db.WithContext(ctx).
		Model(&models.CartItem{}).
		Where("id = ? AND qty = ?", existing.ID, existing.Qty).
		Updates(map[string]any{
			"qty":        merged,
			"unit_price": unitPrice,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		// lost the swap to a concurrent add
		return retry.RetryableError(fmt.Errorf("cart item %s changed underneath merge", existing.ID))
	}
	return nil
}
