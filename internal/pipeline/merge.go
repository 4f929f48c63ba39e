package pipeline

import (
	"sort"

	"prodmaster/internal"
)

// Merge concatenates the record sets of the successful sources in
// parser-declared order, sorts ascending by date and drops exact
// duplicates. Dates are compared as text: ISO strings order correctly,
// while the occasional value that resisted standardization lands wherever
// lexicographic order puts it. Returns the master table and the number of
// duplicates removed.
func Merge(results []internal.SourceResult) ([]internal.Record, int) {
	var merged []internal.Record
	for _, res := range results {
		if !res.OK() {
			continue
		}
		merged = append(merged, res.Records...)
	}

	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].Date < merged[j].Date
	})

	seen := make(map[internal.Record]struct{}, len(merged))
	master := make([]internal.Record, 0, len(merged))
	for _, rec := range merged {
		if _, dup := seen[rec]; dup {
			continue
		}
		seen[rec] = struct{}{}
		master = append(master, rec)
	}

	return master, len(merged) - len(master)
}
