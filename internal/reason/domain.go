// Package reason holds the static loss-reason reference data. Reasons are
// seeded once and never mutated by the pipelines; each export file is keyed by
// one reason code.
package reason

import "errors"

// Reason is a categorical cause for an inventory-loss entry.
type Reason struct {
	ID          int64  `json:"id"`
	Code        string `json:"code"` // two digits, e.g. "01"
	Description string `json:"description"`
}

// ErrNotFound indicates an unknown reason id.
var ErrNotFound = errors.New("reason: not found")

// Defaults are the reasons seeded on first start.
var Defaults = []Reason{
	{Code: "01", Description: "Vencido"},
	{Code: "02", Description: "Avariado"},
	{Code: "03", Description: "Furto"},
	{Code: "04", Description: "Consumo interno"},
	{Code: "05", Description: "Quebra operacional"},
}
