package model

import "github.com/shopspring/decimal"

func init() {
	// Amounts go over the wire as JSON numbers.
	decimal.MarshalJSONWithoutQuotes = true
}
