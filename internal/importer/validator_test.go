package importer

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/codimuz/Nova-pasta-sub000/internal/fixedwidth"
)

func TestValidateLineRuleOrder(t *testing.T) {
	seen := map[string]struct{}{"7890000000009": {}}

	cases := []struct {
		name string
		rec  fixedwidth.ProductLine
		want error
	}{
		{
			name: "bad code wins over empty name",
			rec:  fixedwidth.ProductLine{Code: "78900000000x1", Name: "", Price: "002599"},
			want: ErrInvalidCode,
		},
		{
			name: "short code",
			rec:  fixedwidth.ProductLine{Code: "123", Name: "ARROZ", Price: "002599"},
			want: ErrInvalidCode,
		},
		{
			name: "empty name",
			rec:  fixedwidth.ProductLine{Code: "7890000000001", Name: "   ", Price: "002599"},
			want: ErrEmptyName,
		},
		{
			name: "zero price",
			rec:  fixedwidth.ProductLine{Code: "7890000000001", Name: "ARROZ", Price: "0000000"},
			want: ErrInvalidPrice,
		},
		{
			name: "garbage price",
			rec:  fixedwidth.ProductLine{Code: "7890000000001", Name: "ARROZ", Price: "00.a.00"},
			want: ErrInvalidPrice,
		},
		{
			name: "duplicate in batch",
			rec:  fixedwidth.ProductLine{Code: "7890000000009", Name: "ARROZ", Price: "002599"},
			want: ErrDuplicateCode,
		},
		{
			name: "valid",
			rec:  fixedwidth.ProductLine{Code: "7890000000001", Name: "ARROZ", Price: "002599"},
			want: nil,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateLine(tc.rec, seen)
			if tc.want == nil {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, tc.want)
		})
	}
}

func TestValidateLineDoesNotMutateSeen(t *testing.T) {
	seen := map[string]struct{}{}
	rec := fixedwidth.ProductLine{Code: "7890000000001", Name: "ARROZ", Price: "002599"}

	require.NoError(t, ValidateLine(rec, seen))
	// The pipeline owns the seen set; validating must not insert into it.
	require.Empty(t, seen)
}
