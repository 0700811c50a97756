package fixedwidth

import (
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDecodeProductLine(t *testing.T) {
	line := "7890000000001ARROZ 5KG            002599"
	require.Len(t, line, LineLength)

	rec, err := DecodeProductLine(line)
	require.NoError(t, err)
	require.Equal(t, "7890000000001", rec.Code)
	require.Equal(t, "ARROZ 5KG", rec.Name)
	require.Equal(t, "002599", rec.Price)

	price, err := ParsePrice(rec.Price)
	require.NoError(t, err)
	require.InDelta(t, 25.99, price, 1e-9)
}

func TestParsePrice(t *testing.T) {
	cases := []struct {
		in   string
		want float64
	}{
		{"002599", 25.99},
		{"0025.99", 25.99},
		{"0000001", 0.01},
		{"0012.50", 12.5},
	}
	for _, tc := range cases {
		got, err := ParsePrice(tc.in)
		require.NoError(t, err, "input %q", tc.in)
		require.InDelta(t, tc.want, got, 1e-9, "input %q", tc.in)
	}

	for _, bad := range []string{"", "abc.def", "12x45.0", "--1"} {
		_, err := ParsePrice(bad)
		require.Error(t, err, "input %q", bad)
	}
}

func TestDecodeProductLineCommaSeparator(t *testing.T) {
	line := "7890000000002PRESUNTO FATIADO    0025,99"
	require.Len(t, line, LineLength)

	rec, err := DecodeProductLine(line)
	require.NoError(t, err)
	require.Equal(t, "0025.99", rec.Price)

	price, err := strconv.ParseFloat(rec.Price, 64)
	require.NoError(t, err)
	require.InDelta(t, 25.99, price, 1e-9)
}

func TestDecodeProductLineLength(t *testing.T) {
	for _, n := range []int{0, 1, 39, 41, 80} {
		line := strings.Repeat("x", n)
		_, err := DecodeProductLine(line)
		var lengthErr *LineLengthError
		require.ErrorAs(t, err, &lengthErr, "length %d", n)
		require.Equal(t, n, lengthErr.Length)
	}
}

func TestSanitizeName(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"ARROZ 5000", "ARROZ 5000"},
		{"PRESUNTO HACIENDA000", "PRESUNTO HACIENDA"},
		{"000", ""},
		{"QUEIJO MINAS", "QUEIJO MINAS"},
		{"MORTADELA 000", "MORTADELA"},
	}
	for _, tc := range cases {
		require.Equal(t, tc.want, sanitizeName(tc.in), "input %q", tc.in)
	}
}

func TestDecodeSanitizesPaddedName(t *testing.T) {
	line := "7890000000003PRESUNTO HACIEN000  0012.50"
	require.Len(t, line, LineLength)

	rec, err := DecodeProductLine(line)
	require.NoError(t, err)
	require.Equal(t, "PRESUNTO HACIEN", rec.Name)
}

func TestEncodeInventoryLine(t *testing.T) {
	require.Equal(t, "Inventario 7890000000001 1.500", EncodeInventoryLine("7890000000001", 1.5, false))
	require.Equal(t, "Inventario 7890000000001 1.000", EncodeInventoryLine("7890000000001", 1.9, true))
	require.Equal(t, "Inventario 0000000000042 3.000", EncodeInventoryLine("42", 3, true))
}

func TestEncodeInventoryLineRoundTrip(t *testing.T) {
	// Weight quantities survive the 3-decimal rendering; unit quantities
	// always come back with a .000 fraction.
	line := EncodeInventoryLine("7890000000001", 12.345, false)
	fields := strings.Fields(line)
	require.Len(t, fields, 3)
	qty, err := strconv.ParseFloat(fields[2], 64)
	require.NoError(t, err)
	require.InDelta(t, 12.345, qty, 1e-9)

	line = EncodeInventoryLine("7890000000001", 12.345, true)
	fields = strings.Fields(line)
	require.True(t, strings.HasSuffix(fields[2], ".000"))
}
