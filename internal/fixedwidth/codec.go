// Package fixedwidth implements the two flat-file formats spoken by the legacy
// POS system: the 40-byte product catalog record consumed by the import
// pipeline and the "Inventario" line emitted by the export pipeline.
package fixedwidth

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Field layout of a product record, byte offsets, half-open ranges.
const (
	LineLength = 40
	codeEnd    = 13
	nameEnd    = 33
)

// ProductLine is one decoded catalog record. Price keeps the raw field with the
// decimal separator normalized to "."; parsing it is the validator's job.
type ProductLine struct {
	Code  string
	Name  string
	Price string
}

// LineLengthError reports a structurally broken record.
type LineLengthError struct {
	Length int
}

func (e *LineLengthError) Error() string {
	return fmt.Sprintf("fixedwidth: line must be %d characters, got %d", LineLength, e.Length)
}

// DecodeProductLine splits a raw catalog line into its fields. The line must be
// exactly LineLength bytes. Names are NFC-normalized, trimmed and run through
// the legacy "000" suffix sanitizer. The price separator may be "," or "." and
// is normalized to ".".
func DecodeProductLine(line string) (ProductLine, error) {
	if len(line) != LineLength {
		return ProductLine{}, &LineLengthError{Length: len(line)}
	}
	name := strings.TrimSpace(norm.NFC.String(line[codeEnd:nameEnd]))
	return ProductLine{
		Code:  line[:codeEnd],
		Name:  sanitizeName(name),
		Price: strings.TrimSpace(strings.ReplaceAll(line[nameEnd:], ",", ".")),
	}, nil
}

// sanitizeName strips the trailing "000" padding artifact the old POS appends
// to some names. The suffix is only stripped when the character before it is
// not a digit: "ARROZ 5000" is a legitimate product name and stays intact,
// "PRESUNTO HACIENDA000" becomes "PRESUNTO HACIENDA".
func sanitizeName(name string) string {
	if !strings.HasSuffix(name, "000") {
		return name
	}
	if prefix := name[:len(name)-3]; prefix != "" {
		if c := prefix[len(prefix)-1]; c >= '0' && c <= '9' {
			return name
		}
	}
	return strings.TrimSpace(name[:len(name)-3])
}

// ParsePrice converts a decoded price field to a value in the store's currency.
// Fields carrying an explicit decimal separator are parsed as-is; bare digit
// runs are the legacy integer-cents rendering and are divided by 100, so
// "002599" and "0025.99" both mean 25.99.
func ParsePrice(s string) (float64, error) {
	if s == "" {
		return 0, fmt.Errorf("fixedwidth: empty price field")
	}
	if strings.Contains(s, ".") {
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, fmt.Errorf("fixedwidth: parse price %q: %w", s, err)
		}
		return v, nil
	}
	cents, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("fixedwidth: parse price %q: %w", s, err)
	}
	return float64(cents) / 100, nil
}

// EncodeInventoryLine renders one export line:
//
//	Inventario <13-digit zero-padded code> <quantity with exactly 3 decimals>
//
// Whole-unit products cannot have fractional quantities, so the quantity is
// floored to an integer first when wholeUnits is set; weight products keep
// full precision.
func EncodeInventoryLine(code string, quantity float64, wholeUnits bool) string {
	if wholeUnits {
		quantity = math.Floor(quantity)
	}
	return fmt.Sprintf("Inventario %s %.3f", padCode(code), quantity)
}

func padCode(code string) string {
	if len(code) >= codeEnd {
		return code
	}
	return strings.Repeat("0", codeEnd-len(code)) + code
}
