// Package entry records individual inventory-loss events. Entries accumulate
// until the export pipeline consolidates and flushes them.
package entry

import (
	"errors"
	"time"
)

// Entry is one recorded loss event. ProductName is a denormalized snapshot
// taken at recording time so exports stay meaningful after catalog updates.
type Entry struct {
	ID          int64     `json:"id"`
	ProductCode string    `json:"product_code"`
	ProductName string    `json:"product_name"`
	Quantity    float64   `json:"quantity"`
	ReasonID    int64     `json:"reason_id"`
	EntryDate   time.Time `json:"entry_date"`
	Flushed     bool      `json:"flushed"`
	CreatedAt   time.Time `json:"created_at"`
}

// ErrInvalidQuantity indicates a negative quantity.
var ErrInvalidQuantity = errors.New("entry: quantity must be >= 0")

// ListFilters narrows entry listings.
type ListFilters struct {
	ReasonID int64
	Flushed  *bool
	Limit    int
}
