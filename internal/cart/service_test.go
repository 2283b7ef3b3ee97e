package cart

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/ncastellanos/tiendita-backend/internal/catalog"
	pkgerrors "github.com/ncastellanos/tiendita-backend/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type cartFixture struct {
	db      *gorm.DB
	service Service
	tagger  *fakeTagger
}

func newCartFixture(t *testing.T) *cartFixture {
	t.Helper()

	db := setupCartTestDB(t)
	tagger := &fakeTagger{}

	svc, err := NewService(
		NewStore(db),
		NewLedger(db),
		NewViewer(db),
		catalog.NewRepository(db),
		tagger,
		nil,
	)
	require.NoError(t, err)

	return &cartFixture{db: db, service: svc, tagger: tagger}
}

func (f *cartFixture) mustCreateCart(t *testing.T, conversationID string) string {
	t.Helper()
	cartID, err := f.service.CreateCart(context.Background(), conversationID)
	require.NoError(t, err)
	return cartID
}

func requireCode(t *testing.T, err error, code pkgerrors.Code) *pkgerrors.Error {
	t.Helper()
	require.Error(t, err)
	appErr := pkgerrors.As(err)
	require.NotNil(t, appErr, "expected app error, got %v", err)
	require.Equal(t, code, appErr.Code())
	return appErr
}

func TestCreateCart_idempotentPerConversation(t *testing.T) {
	f := newCartFixture(t)

	first := f.mustCreateCart(t, "conv-77")
	second := f.mustCreateCart(t, "conv-77")
	assert.Equal(t, first, second)

	other := f.mustCreateCart(t, "conv-78")
	assert.NotEqual(t, first, other)
}

func TestAddToCart_productMissingOrUnavailable(t *testing.T) {
	f := newCartFixture(t)
	cartID := f.mustCreateCart(t, "conv-1")

	_, err := f.service.AddToCart(context.Background(), AddToCartInput{
		CartID: cartID, ProductID: 999, Qty: 1,
	})
	requireCode(t, err, pkgerrors.CodeProductNotFound)

	hidden := mustCreateProduct(t, f.db, "Oculto", 50, false, "58.00", "52.00", "47.00")
	_, err = f.service.AddToCart(context.Background(), AddToCartInput{
		CartID: cartID, ProductID: hidden.ID, Qty: 1,
	})
	requireCode(t, err, pkgerrors.CodeProductNotFound)
}

func TestAddToCart_invalidQty(t *testing.T) {
	f := newCartFixture(t)
	cartID := f.mustCreateCart(t, "conv-1")
	product := mustCreateProduct(t, f.db, "Playera", 50, true, "58.00", "52.00", "47.00")

	for _, qty := range []int{0, -4} {
		_, err := f.service.AddToCart(context.Background(), AddToCartInput{
			CartID: cartID, ProductID: product.ID, Qty: qty,
		})
		requireCode(t, err, pkgerrors.CodeInvalidQty)
	}
}

func TestAddToCart_productCheckPrecedesQtyCheck(t *testing.T) {
	f := newCartFixture(t)
	cartID := f.mustCreateCart(t, "conv-1")

	// missing product with an invalid qty still reports the product
	_, err := f.service.AddToCart(context.Background(), AddToCartInput{
		CartID: cartID, ProductID: 999, Qty: 0,
	})
	requireCode(t, err, pkgerrors.CodeProductNotFound)
}

func TestAddToCart_insufficientStockCarriesStock(t *testing.T) {
	f := newCartFixture(t)
	cartID := f.mustCreateCart(t, "conv-1")
	product := mustCreateProduct(t, f.db, "Playera", 10, true, "58.00", "52.00", "47.00")

	_, err := f.service.AddToCart(context.Background(), AddToCartInput{
		CartID: cartID, ProductID: product.ID, Qty: 11,
	})
	appErr := requireCode(t, err, pkgerrors.CodeInsufficientStock)

	details, ok := appErr.Details().(map[string]any)
	require.True(t, ok)
	assert.Equal(t, 10, details["stock"])
}

func TestAddToCart_qtyEqualToStockSucceeds(t *testing.T) {
	f := newCartFixture(t)
	cartID := f.mustCreateCart(t, "conv-1")
	product := mustCreateProduct(t, f.db, "Playera", 10, true, "58.00", "52.00", "47.00")

	// taking the full stock is allowed
	view, err := f.service.AddToCart(context.Background(), AddToCartInput{
		CartID: cartID, ProductID: product.ID, Qty: 10,
	})
	require.NoError(t, err)
	require.Len(t, view.Items, 1)
	assert.Equal(t, 10, view.Items[0].Qty)

	// one more unit is not
	_, err = f.service.AddToCart(context.Background(), AddToCartInput{
		CartID: cartID, ProductID: product.ID, Qty: 1,
	})
	appErr := requireCode(t, err, pkgerrors.CodeInsufficientStock)
	details, ok := appErr.Details().(map[string]any)
	require.True(t, ok)
	assert.Equal(t, 10, details["stock"])
}

func TestAddToCart_tierPricingFromRequestedQty(t *testing.T) {
	f := newCartFixture(t)
	cartID := f.mustCreateCart(t, "conv-1")
	product := mustCreateProduct(t, f.db, "Playera", 1000, true, "58.00", "52.00", "47.00")

	view, err := f.service.AddToCart(context.Background(), AddToCartInput{
		CartID: cartID, ProductID: product.ID, Qty: 60,
	})
	require.NoError(t, err)
	require.Len(t, view.Items, 1)
	assert.True(t, view.Items[0].UnitPrice.Equal(decimal.RequireFromString("58.00")))

	view, err = f.service.AddToCart(context.Background(), AddToCartInput{
		CartID: cartID, ProductID: product.ID, Qty: 150,
	})
	require.NoError(t, err)
	require.Len(t, view.Items, 1)
	// merged row: quantity accumulates, unit price snapshots this add's tier
	assert.Equal(t, 210, view.Items[0].Qty)
	assert.True(t, view.Items[0].UnitPrice.Equal(decimal.RequireFromString("52.00")))
}

func TestAddToCart_mergeRechecksStock(t *testing.T) {
	f := newCartFixture(t)
	cartID := f.mustCreateCart(t, "conv-1")
	product := mustCreateProduct(t, f.db, "Playera", 10, true, "58.00", "52.00", "47.00")

	_, err := f.service.AddToCart(context.Background(), AddToCartInput{
		CartID: cartID, ProductID: product.ID, Qty: 7,
	})
	require.NoError(t, err)

	// 7 + 6 exceeds stock even though 6 alone does not
	_, err = f.service.AddToCart(context.Background(), AddToCartInput{
		CartID: cartID, ProductID: product.ID, Qty: 6,
	})
	appErr := requireCode(t, err, pkgerrors.CodeInsufficientStock)
	details, ok := appErr.Details().(map[string]any)
	require.True(t, ok)
	assert.Equal(t, 10, details["stock"])

	// the failed merge leaves the row untouched
	view, err := f.service.GetCart(context.Background(), cartID)
	require.NoError(t, err)
	require.Len(t, view.Items, 1)
	assert.Equal(t, 7, view.Items[0].Qty)
}

func TestAddToCart_malformedCartID(t *testing.T) {
	f := newCartFixture(t)
	product := mustCreateProduct(t, f.db, "Playera", 10, true, "58.00", "52.00", "47.00")

	_, err := f.service.AddToCart(context.Background(), AddToCartInput{
		CartID: "not-a-uuid", ProductID: product.ID, Qty: 1,
	})
	requireCode(t, err, pkgerrors.CodeValidation)
}

func TestAddToCart_tagsConversationWhenProvided(t *testing.T) {
	f := newCartFixture(t)
	cartID := f.mustCreateCart(t, "conv-55")
	product := mustCreateProduct(t, f.db, "Playera", 100, true, "58.00", "52.00", "47.00")

	_, err := f.service.AddToCart(context.Background(), AddToCartInput{
		CartID: cartID, ProductID: product.ID, Qty: 2, ConversationID: "conv-55",
	})
	require.NoError(t, err)

	require.Equal(t, 1, f.tagger.callCount())
	call := f.tagger.calls[0]
	assert.Equal(t, "conv-55", call.conversationID)
	assert.Contains(t, call.labels, "intent:purchase")
	assert.Contains(t, call.labels, "cart:"+cartID)
	assert.Contains(t, call.labels, fmt.Sprintf("product:%d", product.ID))
}

func TestAddToCart_noTaggingWithoutConversation(t *testing.T) {
	f := newCartFixture(t)
	cartID := f.mustCreateCart(t, "conv-55")
	product := mustCreateProduct(t, f.db, "Playera", 100, true, "58.00", "52.00", "47.00")

	_, err := f.service.AddToCart(context.Background(), AddToCartInput{
		CartID: cartID, ProductID: product.ID, Qty: 2,
	})
	require.NoError(t, err)
	assert.Equal(t, 0, f.tagger.callCount())
}

func TestAddToCart_taggingFailureDoesNotFailSale(t *testing.T) {
	f := newCartFixture(t)
	f.tagger.err = errors.New("chatwoot down")

	cartID := f.mustCreateCart(t, "conv-55")
	product := mustCreateProduct(t, f.db, "Playera", 100, true, "58.00", "52.00", "47.00")

	view, err := f.service.AddToCart(context.Background(), AddToCartInput{
		CartID: cartID, ProductID: product.ID, Qty: 2, ConversationID: "conv-55",
	})
	require.NoError(t, err)
	require.Len(t, view.Items, 1)
	assert.Equal(t, 1, f.tagger.callCount())
}

func TestGetCart_viewOrderingAndTotal(t *testing.T) {
	f := newCartFixture(t)
	cartID := f.mustCreateCart(t, "conv-1")

	first := mustCreateProduct(t, f.db, "Playera", 100, true, "3.00", "2.50", "2.00")
	second := mustCreateProduct(t, f.db, "Gorra", 100, true, "5.00", "4.50", "4.00")

	// add in reverse id order; the view still sorts by product id
	_, err := f.service.AddToCart(context.Background(), AddToCartInput{
		CartID: cartID, ProductID: second.ID, Qty: 2,
	})
	require.NoError(t, err)
	_, err = f.service.AddToCart(context.Background(), AddToCartInput{
		CartID: cartID, ProductID: first.ID, Qty: 1,
	})
	require.NoError(t, err)

	view, err := f.service.GetCart(context.Background(), cartID)
	require.NoError(t, err)
	require.Len(t, view.Items, 2)
	assert.Equal(t, first.ID, view.Items[0].ProductID)
	assert.Equal(t, "Playera", view.Items[0].Name)
	assert.Equal(t, second.ID, view.Items[1].ProductID)
	assert.Equal(t, "Gorra", view.Items[1].Name)

	// 1*3.00 + 2*5.00
	assert.True(t, view.Total.Equal(decimal.RequireFromString("13.00")), "total = %s", view.Total)
}

func TestGetCart_unknownOrMalformedYieldsEmptyView(t *testing.T) {
	f := newCartFixture(t)

	unknown, err := f.service.GetCart(context.Background(), "6f1c9640-90cc-4ab1-b8a4-111111111111")
	require.NoError(t, err)
	assert.Empty(t, unknown.Items)
	assert.True(t, unknown.Total.IsZero())

	malformed, err := f.service.GetCart(context.Background(), "nope")
	require.NoError(t, err)
	assert.Equal(t, "nope", malformed.CartID)
	assert.Empty(t, malformed.Items)
	assert.True(t, malformed.Total.IsZero())
}
