package controllers

import (
	"net/http"

	"github.com/ncastellanos/tiendita-backend/api/responses"
)

// toolDescriptor advertises one callable tool and its JSON schema.
type toolDescriptor struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	InputSchema map[string]any `json:"inputSchema"`
}

var toolCatalog = []toolDescriptor{
	{
		Name:        "list_products",
		Description: "List products with optional search by name/description/category.",
		InputSchema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"query":  map[string]any{"type": "string"},
				"limit":  map[string]any{"type": "integer", "minimum": 1, "maximum": 50, "default": 10},
				"offset": map[string]any{"type": "integer", "minimum": 0, "default": 0},
			},
			"additionalProperties": false,
		},
	},
	{
		Name:        "get_product",
		Description: "Get detailed information for a product by id.",
		InputSchema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"product_id": map[string]any{"type": "integer"},
			},
			"required":             []string{"product_id"},
			"additionalProperties": false,
		},
	},
	{
		Name:        "create_cart",
		Description: "Create (or return) a cart for the given conversation_id (idempotent).",
		InputSchema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"conversation_id": map[string]any{"type": "string"},
			},
			"required":             []string{"conversation_id"},
			"additionalProperties": false,
		},
	},
	{
		Name:        "add_to_cart",
		Description: "Add product to cart with qty, validates stock and returns updated cart.",
		InputSchema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"cart_id":         map[string]any{"type": "string"},
				"product_id":      map[string]any{"type": "integer"},
				"qty":             map[string]any{"type": "integer", "minimum": 1},
				"conversation_id": map[string]any{"type": "string", "description": "Optional: for Chatwoot labels"},
			},
			"required":             []string{"cart_id", "product_id", "qty"},
			"additionalProperties": false,
		},
	},
	{
		Name:        "get_cart",
		Description: "Get cart items and totals.",
		InputSchema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"cart_id": map[string]any{"type": "string"},
			},
			"required":             []string{"cart_id"},
			"additionalProperties": false,
		},
	},
}

// ToolsIndex lists the tool catalog for discovery by callers.
func ToolsIndex() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responses.WriteSuccess(w, map[string]any{"tools": toolCatalog})
	}
}
