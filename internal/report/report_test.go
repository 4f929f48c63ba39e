package report

import (
	"strings"
	"testing"

	"prodmaster/internal"
)

func TestBar(t *testing.T) {
	cases := []struct {
		name     string
		total    int
		maxTotal int
		want     int // filled cells
	}{
		{name: "full", total: 300, maxTotal: 300, want: 30},
		{name: "half", total: 150, maxTotal: 300, want: 15},
		{name: "negative total empties", total: -20, maxTotal: 100, want: 0},
		{name: "all totals negative", total: -20, maxTotal: -5, want: 0},
		{name: "zero max", total: 0, maxTotal: 0, want: 0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := bar(tc.total, tc.maxTotal)
			if n := len([]rune(got)); n != barWidth {
				t.Fatalf("bar is %d cells, want %d", n, barWidth)
			}
			if filled := strings.Count(got, "█"); filled != tc.want {
				t.Fatalf("bar(%d, %d) has %d filled cells, want %d", tc.total, tc.maxTotal, filled, tc.want)
			}
		})
	}
}

// A machine whose rejects exceed its approvals carries a net-negative
// total into the analytics; rendering must complete anyway.
func TestAnalyticsNegativeMachineTotal(t *testing.T) {
	master := []internal.Record{
		{Date: "2026-03-03", Product: "Buje Bronce", Quantity: 100, Machine: "CNC-01", Operator: "Ana", Origin: internal.MonthMarzo},
		{Date: "2026-03-04", Product: "Placa Base", Quantity: -20, Machine: "CNC-02", Operator: "Marco", Origin: internal.MonthMarzo},
	}

	Analytics(master)
}
