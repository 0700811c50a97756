package exporter

import "github.com/codimuz/Nova-pasta-sub000/internal/entry"

// Consolidate merges entries of the same product into one group, summing
// quantities. Groups come out in first-appearance order, so the export file
// mirrors the order losses were recorded in. Pure function, no I/O.
func Consolidate(entries []entry.Entry) []ConsolidatedGroup {
	byCode := make(map[string]int, len(entries))
	groups := make([]ConsolidatedGroup, 0, len(entries))

	for _, e := range entries {
		idx, ok := byCode[e.ProductCode]
		if !ok {
			byCode[e.ProductCode] = len(groups)
			groups = append(groups, ConsolidatedGroup{
				ProductCode: e.ProductCode,
				ProductName: e.ProductName,
			})
			idx = len(groups) - 1
		}
		groups[idx].Quantity += e.Quantity
		groups[idx].EntryIDs = append(groups[idx].EntryIDs, e.ID)
	}
	return groups
}
