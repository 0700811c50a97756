package product

import (
	"errors"
	"regexp"
	"strings"
	"time"
)

// UnitType says how quantities of a product are counted.
type UnitType string

const (
	// UnitTypeWeight is sold by weight; export quantities keep fractions.
	UnitTypeWeight UnitType = "WEIGHT"
	// UnitTypeUnit is sold by piece; export quantities are whole numbers.
	UnitTypeUnit UnitType = "UNIT"
)

// Lifecycle marks whether a product is visible to the pipelines.
type Lifecycle string

const (
	LifecycleActive  Lifecycle = "ACTIVE"
	LifecycleDeleted Lifecycle = "DELETED"
)

// Product is one catalog record keyed by its 13-digit code.
type Product struct {
	ID           int64      `json:"id"`
	Code         string     `json:"code"`
	Name         string     `json:"name"`
	RegularPrice float64    `json:"regular_price"`
	ClubPrice    float64    `json:"club_price"`
	UnitType     UnitType   `json:"unit_type"`
	DeletedAt    *time.Time `json:"deleted_at,omitempty"`
	RestoredAt   *time.Time `json:"restored_at,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// Lifecycle derives the state from the soft-delete markers.
func (p Product) Lifecycle() Lifecycle {
	if p.DeletedAt != nil {
		return LifecycleDeleted
	}
	return LifecycleActive
}

// CodePattern is the invariant every stored product code satisfies.
var CodePattern = regexp.MustCompile(`^\d{13}$`)

// UnitTypeForName infers the unit type from the product name: a case-folded
// "KG" anywhere in the name means the product is sold by weight. This is a
// naming-convention heuristic inherited from the POS catalog, not a hard rule.
func UnitTypeForName(name string) UnitType {
	if strings.Contains(strings.ToUpper(name), "KG") {
		return UnitTypeWeight
	}
	return UnitTypeUnit
}

// ErrNotFound indicates no active product matches the code.
var ErrNotFound = errors.New("product: not found")

// ListFilters narrows product listings.
type ListFilters struct {
	Search         string
	IncludeDeleted bool
	Page           int
	Limit          int
}
