package pipeline

import (
	"sort"

	"prodmaster/internal"
)

// GroupTotal is one row of a grouped production summary.
type GroupTotal struct {
	Key   string
	Total int
	Count int
	Mean  float64
}

// MonthTotal is one month of the top operator's breakdown.
type MonthTotal struct {
	Month string
	Total int
	Count int
}

// groupTotals accumulates per-key totals in first-encountered record
// order, then sorts by total descending. The sort is stable, so groups
// with equal totals keep their first-encountered relative order; that is
// the documented tie-break for every ranking built on top of this.
func groupTotals(records []internal.Record, key func(internal.Record) string) []GroupTotal {
	index := make(map[string]int)
	var groups []GroupTotal
	for _, rec := range records {
		k := key(rec)
		i, ok := index[k]
		if !ok {
			i = len(groups)
			index[k] = i
			groups = append(groups, GroupTotal{Key: k})
		}
		groups[i].Total += rec.Quantity
		groups[i].Count++
	}
	for i := range groups {
		groups[i].Mean = float64(groups[i].Total) / float64(groups[i].Count)
	}
	sort.SliceStable(groups, func(i, j int) bool {
		return groups[i].Total > groups[j].Total
	})
	return groups
}

// GroupByMachine sums production per machine, largest total first.
func GroupByMachine(records []internal.Record) []GroupTotal {
	return groupTotals(records, func(r internal.Record) string { return r.Machine })
}

// GroupByOperator sums production per operator, largest total first. The
// first entry is the most productive operator.
func GroupByOperator(records []internal.Record) []GroupTotal {
	return groupTotals(records, func(r internal.Record) string { return r.Operator })
}

// MonthlyBreakdown sums one operator's production per origin month, in
// fixed chronological order. Months with no records for the operator are
// omitted.
func MonthlyBreakdown(records []internal.Record, operator string) []MonthTotal {
	totals := make(map[string]MonthTotal, len(internal.MonthOrder))
	for _, rec := range records {
		if rec.Operator != operator {
			continue
		}
		mt := totals[rec.Origin]
		mt.Month = rec.Origin
		mt.Total += rec.Quantity
		mt.Count++
		totals[rec.Origin] = mt
	}

	out := make([]MonthTotal, 0, len(totals))
	for _, month := range internal.MonthOrder {
		if mt, ok := totals[month]; ok {
			out = append(out, mt)
		}
	}
	return out
}

// FavoriteMachine returns the machine with the highest total among one
// operator's records, with its total. Ties go to the machine encountered
// first in record order. ok is false when the operator has no records.
func FavoriteMachine(records []internal.Record, operator string) (machine string, total int, ok bool) {
	var own []internal.Record
	for _, rec := range records {
		if rec.Operator == operator {
			own = append(own, rec)
		}
	}
	machines := GroupByMachine(own)
	if len(machines) == 0 {
		return "", 0, false
	}
	return machines[0].Key, machines[0].Total, true
}

// GrandTotal sums the quantity of every record.
func GrandTotal(records []internal.Record) int {
	total := 0
	for _, rec := range records {
		total += rec.Quantity
	}
	return total
}
