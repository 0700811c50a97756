package importer

import (
	"errors"
	"math"
	"strings"

	"github.com/codimuz/Nova-pasta-sub000/internal/fixedwidth"
	"github.com/codimuz/Nova-pasta-sub000/internal/product"
)

// Field-level rejection reasons, in the order they are checked.
var (
	ErrInvalidCode   = errors.New("invalid code format")
	ErrEmptyName     = errors.New("empty name")
	ErrInvalidPrice  = errors.New("invalid or non-positive price")
	ErrDuplicateCode = errors.New("duplicate code in file")
)

// ValidateLine checks one decoded record against the field rules and the
// batch's running set of already-seen codes. The first failing rule wins.
// Ownership of the seen set stays with the pipeline; the validator only
// consults it.
func ValidateLine(rec fixedwidth.ProductLine, seen map[string]struct{}) error {
	if !product.CodePattern.MatchString(rec.Code) {
		return ErrInvalidCode
	}
	if strings.TrimSpace(rec.Name) == "" {
		return ErrEmptyName
	}
	price, err := fixedwidth.ParsePrice(rec.Price)
	if err != nil || math.IsNaN(price) || math.IsInf(price, 0) || price <= 0 {
		return ErrInvalidPrice
	}
	if _, ok := seen[rec.Code]; ok {
		return ErrDuplicateCode
	}
	return nil
}
