package models

import "github.com/shopspring/decimal"

// Prices travel as JSON numbers on the tool-call wire, not quoted strings.
func init() {
	decimal.MarshalJSONWithoutQuotes = true
}
