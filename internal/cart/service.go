package cart

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/ncastellanos/tiendita-backend/internal/pricing"
	"github.com/ncastellanos/tiendita-backend/pkg/chatwoot"
	"github.com/ncastellanos/tiendita-backend/pkg/db/models"
	pkgerrors "github.com/ncastellanos/tiendita-backend/pkg/errors"
	"github.com/ncastellanos/tiendita-backend/pkg/logger"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// AddToCartInput holds the validated payload for an add operation.
// ConversationID is optional and only drives conversation tagging.
type AddToCartInput struct {
	CartID         string
	ProductID      int64
	Qty            int
	ConversationID string
}

// Service exposes the cart operations.
type Service interface {
	CreateCart(ctx context.Context, conversationID string) (string, error)
	AddToCart(ctx context.Context, input AddToCartInput) (*CartView, error)
	GetCart(ctx context.Context, cartID string) (*CartView, error)
}

type productLoader interface {
	FindByID(ctx context.Context, id int64) (*models.Product, error)
}

type service struct {
	store  *Store
	ledger *Ledger
	viewer *Viewer

	products productLoader
	tagger   chatwoot.Tagger
	log      *logger.Logger
}

// NewService constructs the cart service.
func NewService(store *Store, ledger *Ledger, viewer *Viewer, products productLoader, tagger chatwoot.Tagger, log *logger.Logger) (Service, error) {
	if store == nil {
		return nil, fmt.Errorf("cart store required")
	}
	if ledger == nil {
		return nil, fmt.Errorf("cart ledger required")
	}
	if viewer == nil {
		return nil, fmt.Errorf("cart viewer required")
	}
	if products == nil {
		return nil, fmt.Errorf("product loader required")
	}
	return &service{
		store:    store,
		ledger:   ledger,
		viewer:   viewer,
		products: products,
		tagger:   tagger,
		log:      log,
	}, nil
}

// CreateCart returns the cart id bound to the conversation, creating the
// cart on first call. Repeated calls with the same conversation id always
// return the same id.
func (s *service) CreateCart(ctx context.Context, conversationID string) (string, error) {
	cart, err := s.store.GetOrCreate(ctx, conversationID)
	if err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeDependency, err, "get or create cart")
	}
	return cart.ID.String(), nil
}

// AddToCart validates the product and quantity, records the item, tags the
// conversation when one is supplied, and returns the refreshed cart view.
//
// Validation order is fixed: missing or unavailable product, then
// non-positive quantity, then the requested quantity against stock. The
// unit price tier is resolved from the quantity of this request alone,
// even when it merges into an existing row.
func (s *service) AddToCart(ctx context.Context, input AddToCartInput) (*CartView, error) {
	cartID, err := uuid.Parse(input.CartID)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cart_id must be a UUID")
	}

	product, err := s.products.FindByID(ctx, input.ProductID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeProductNotFound,
				fmt.Sprintf("product %d not found", input.ProductID))
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
	}
	if !product.Available {
		return nil, pkgerrors.New(pkgerrors.CodeProductNotFound,
			fmt.Sprintf("product %d not available", input.ProductID))
	}

	if input.Qty < 1 {
		return nil, pkgerrors.New(pkgerrors.CodeInvalidQty,
			fmt.Sprintf("qty %d is not a positive integer", input.Qty))
	}

	if product.Stock < input.Qty {
		return nil, pkgerrors.New(pkgerrors.CodeInsufficientStock,
			fmt.Sprintf("product %d: qty %d exceeds stock %d", product.ID, input.Qty, product.Stock)).
			WithDetails(map[string]any{"stock": product.Stock})
	}

	unitPrice := pricing.UnitPrice(product, input.Qty)

	if err := s.ledger.AddItem(ctx, cartID, product, input.Qty, unitPrice); err != nil {
		if appErr := pkgerrors.As(err); appErr != nil {
			return nil, appErr
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "add cart item")
	}

	s.tagConversation(ctx, input.ConversationID, cartID, product.ID)

	view, err := s.viewer.View(ctx, cartID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load cart view")
	}
	return view, nil
}

// GetCart returns the cart's items and total. An unknown or malformed cart
// id yields an empty view, never an error.
func (s *service) GetCart(ctx context.Context, cartID string) (*CartView, error) {
	parsed, err := uuid.Parse(cartID)
	if err != nil {
		return &CartView{CartID: cartID, Items: []CartItemView{}, Total: decimal.Zero}, nil
	}

	view, err := s.viewer.View(ctx, parsed)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load cart view")
	}
	view.CartID = cartID
	return view, nil
}

// tagConversation is fail-soft: a Chatwoot outage must never fail a sale.
func (s *service) tagConversation(ctx context.Context, conversationID string, cartID uuid.UUID, productID int64) {
	if conversationID == "" || s.tagger == nil {
		return
	}

	labels := []string{
		"intent:purchase",
		fmt.Sprintf("cart:%s", cartID),
		fmt.Sprintf("product:%d", productID),
	}

	if err := s.tagger.TagConversation(ctx, conversationID, labels); err != nil && s.log != nil {
		s.log.Warn(s.log.WithConversationID(ctx, conversationID),
			fmt.Sprintf("chatwoot tagging failed: %v", err))
	}
}
