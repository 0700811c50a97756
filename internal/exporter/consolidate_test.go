package exporter

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/codimuz/Nova-pasta-sub000/internal/entry"
)

func TestConsolidateSumsAndKeepsFirstAppearanceOrder(t *testing.T) {
	entries := []entry.Entry{
		{ID: 1, ProductCode: "7890000000001", ProductName: "ARROZ 5KG", Quantity: 1.5},
		{ID: 2, ProductCode: "7890000000002", ProductName: "PRESUNTO", Quantity: 2},
		{ID: 3, ProductCode: "7890000000001", ProductName: "ARROZ 5KG", Quantity: 0.75},
		{ID: 4, ProductCode: "7890000000002", ProductName: "PRESUNTO", Quantity: 1},
		{ID: 5, ProductCode: "7890000000003", ProductName: "LEITE", Quantity: 6},
	}

	groups := Consolidate(entries)
	require.Len(t, groups, 3)

	require.Equal(t, "7890000000001", groups[0].ProductCode)
	require.InDelta(t, 2.25, groups[0].Quantity, 1e-9)
	require.Equal(t, []int64{1, 3}, groups[0].EntryIDs)

	require.Equal(t, "7890000000002", groups[1].ProductCode)
	require.InDelta(t, 3, groups[1].Quantity, 1e-9)
	require.Equal(t, []int64{2, 4}, groups[1].EntryIDs)

	require.Equal(t, "7890000000003", groups[2].ProductCode)
	require.Equal(t, []int64{5}, groups[2].EntryIDs)
}

func TestConsolidateEmpty(t *testing.T) {
	require.Empty(t, Consolidate(nil))
}
