package controllers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/ncastellanos/tiendita-backend/api/responses"
	"github.com/ncastellanos/tiendita-backend/api/validators"
	"github.com/ncastellanos/tiendita-backend/internal/cart"
	"github.com/ncastellanos/tiendita-backend/internal/catalog"
	pkgerrors "github.com/ncastellanos/tiendita-backend/pkg/errors"
	"github.com/ncastellanos/tiendita-backend/pkg/logger"
	"github.com/ncastellanos/tiendita-backend/pkg/metrics"
)

// callRequest is the tool invocation envelope. A request body that fails
// to parse is treated as an empty envelope, which then fails tool
// resolution rather than body validation.
type callRequest struct {
	Name      string          `json:"name"`
	Arguments json.RawMessage `json:"arguments"`
}

type listProductsArgs struct {
	Query  string `json:"query"`
	Limit  *int   `json:"limit"`
	Offset *int   `json:"offset"`
}

type getProductArgs struct {
	ProductID int64 `json:"product_id"`
}

type createCartArgs struct {
	ConversationID string `json:"conversation_id"`
}

type addToCartArgs struct {
	CartID         string `json:"cart_id"`
	ProductID      int64  `json:"product_id"`
	Qty            int    `json:"qty"`
	ConversationID string `json:"conversation_id"`
}

type getCartArgs struct {
	CartID string `json:"cart_id"`
}

// ToolCall dispatches POST /call to the named tool.
func ToolCall(catalogSvc catalog.Service, cartSvc cart.Service, toolMetrics *metrics.ToolCallMetrics, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req callRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			req = callRequest{}
		}

		ctx := r.Context()
		if logg != nil {
			ctx = logg.WithTool(ctx, req.Name)
		}
		r = r.WithContext(ctx)

		start := time.Now()
		err := dispatch(w, r, req, catalogSvc, cartSvc, logg)

		code := "ok"
		if err != nil {
			code = errorCode(err)
			toolMetrics.IncFailure(req.Name)
			responses.WriteError(ctx, logg, w, normalizeWireError(err))
		}
		toolMetrics.IncCall(req.Name, code)
		toolMetrics.ObserveDuration(req.Name, time.Since(start))
	}
}

func dispatch(w http.ResponseWriter, r *http.Request, req callRequest, catalogSvc catalog.Service, cartSvc cart.Service, logg *logger.Logger) error {
	ctx := r.Context()

	switch req.Name {
	case "list_products":
		var args listProductsArgs
		if err := validators.DecodeArgs(req.Arguments, &args); err != nil {
			return err
		}
		products, err := catalogSvc.ListProducts(ctx, catalog.ListInput{
			Query:  args.Query,
			Limit:  args.Limit,
			Offset: args.Offset,
		})
		if err != nil {
			return err
		}
		responses.WriteSuccess(w, map[string]any{"products": products})
		return nil

	case "get_product":
		var args getProductArgs
		if err := validators.DecodeArgs(req.Arguments, &args); err != nil {
			return err
		}
		product, err := catalogSvc.GetProduct(ctx, args.ProductID)
		if err != nil {
			return err
		}
		responses.WriteSuccess(w, map[string]any{"product": product})
		return nil

	case "create_cart":
		var args createCartArgs
		if err := validators.DecodeArgs(req.Arguments, &args); err != nil {
			return err
		}
		if args.ConversationID == "" {
			return pkgerrors.New(pkgerrors.CodeValidation, "conversation_id is required")
		}
		cartID, err := cartSvc.CreateCart(ctx, args.ConversationID)
		if err != nil {
			return err
		}
		responses.WriteSuccess(w, map[string]any{"cart_id": cartID})
		return nil

	case "add_to_cart":
		var args addToCartArgs
		if err := validators.DecodeArgs(req.Arguments, &args); err != nil {
			return err
		}
		if args.CartID == "" {
			return pkgerrors.New(pkgerrors.CodeValidation, "cart_id is required")
		}
		view, err := cartSvc.AddToCart(ctx, cart.AddToCartInput{
			CartID:         args.CartID,
			ProductID:      args.ProductID,
			Qty:            args.Qty,
			ConversationID: args.ConversationID,
		})
		if err != nil {
			return err
		}
		responses.WriteSuccess(w, view)
		return nil

	case "get_cart":
		var args getCartArgs
		if err := validators.DecodeArgs(req.Arguments, &args); err != nil {
			return err
		}
		if args.CartID == "" {
			return pkgerrors.New(pkgerrors.CodeValidation, "cart_id is required")
		}
		view, err := cartSvc.GetCart(ctx, args.CartID)
		if err != nil {
			return err
		}
		responses.WriteSuccess(w, view)
		return nil
	}

	return pkgerrors.New(pkgerrors.CodeUnknownTool,
		fmt.Sprintf("tool %q is not known", req.Name)).
		WithDetails(map[string]any{"name": req.Name})
}

func errorCode(err error) string {
	if typed := pkgerrors.As(err); typed != nil {
		return string(typed.Code())
	}
	return string(pkgerrors.CodeInternal)
}

// normalizeWireError keeps infrastructure failures behind the tool
// surface's INTERNAL_ERROR contract while leaving domain codes intact.
func normalizeWireError(err error) error {
	typed := pkgerrors.As(err)
	if typed == nil {
		return err
	}
	if typed.Code() == pkgerrors.CodeDependency {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, typed, typed.Message())
	}
	return err
}
