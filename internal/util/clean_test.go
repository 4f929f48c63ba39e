package util

import "testing"

func TestCleanQuantity(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  int
	}{
		{name: "plain number", input: "120", want: 120},
		{name: "unit suffix", input: "100 pzas", want: 100},
		{name: "padded unit suffix", input: "  250   und ", want: 250},
		{name: "short unit", input: "75 pz", want: 75},
		{name: "accented unit", input: "30 unidades más", want: 30},
		{name: "empty", input: "", want: 0},
		{name: "whitespace only", input: "   ", want: 0},
		{name: "pure text", input: "pendiente", want: 0},
		{name: "decimal truncates", input: "99.9", want: 99},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := CleanQuantity(tc.input); got != tc.want {
				t.Fatalf("CleanQuantity(%q) = %d, want %d", tc.input, got, tc.want)
			}
		})
	}
}

func TestStandardizeDate(t *testing.T) {
	// The same calendar day in every supported layout.
	cases := []struct {
		name  string
		input string
	}{
		{name: "iso", input: "2026-01-15"},
		{name: "day first slash", input: "15/01/2026"},
		{name: "month first slash", input: "01/15/2026"},
		{name: "day first dash", input: "15-01-2026"},
		{name: "year first slash", input: "2026/01/15"},
		{name: "dotted", input: "15.01.2026"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := StandardizeDate(tc.input, "")
			if !ok {
				t.Fatalf("StandardizeDate(%q) reported absent", tc.input)
			}
			if got != "2026-01-15" {
				t.Fatalf("StandardizeDate(%q) = %q, want 2026-01-15", tc.input, got)
			}
		})
	}
}

func TestStandardizeDateIdempotent(t *testing.T) {
	first, ok := StandardizeDate("15/01/2026", "")
	if !ok {
		t.Fatalf("unexpected absent")
	}
	second, ok := StandardizeDate(first, "")
	if !ok || second != first {
		t.Fatalf("not idempotent: %q → %q", first, second)
	}
}

func TestStandardizeDateHint(t *testing.T) {
	got, ok := StandardizeDate("05/02/2026", "02/01/2006")
	if !ok || got != "2026-02-05" {
		t.Fatalf("got %q, want 2026-02-05", got)
	}
}

func TestStandardizeDateUnknownPassesThrough(t *testing.T) {
	got, ok := StandardizeDate("martes 15", "")
	if !ok {
		t.Fatalf("unexpected absent")
	}
	if got != "martes 15" {
		t.Fatalf("got %q, want original text back", got)
	}
}

func TestStandardizeDateBlank(t *testing.T) {
	if _, ok := StandardizeDate("   ", ""); ok {
		t.Fatalf("blank input should report absent")
	}
}

func TestCleanProduct(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  string
	}{
		{name: "uppercase", input: "BUJE BRONCE", want: "Buje Bronce"},
		{name: "lowercase connective", input: "eje del motor", want: "Eje del Motor"},
		{name: "connective de", input: "soporte de banda", want: "Soporte de Banda"},
		{name: "embedded quotes", input: `"Tornillo Hex"`, want: "Tornillo Hex"},
		{name: "padded", input: "  placa base  ", want: "Placa Base"},
		{name: "blank passthrough", input: "", want: ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := CleanProduct(tc.input); got != tc.want {
				t.Fatalf("CleanProduct(%q) = %q, want %q", tc.input, got, tc.want)
			}
		})
	}
}

func TestCleanMachine(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  string
	}{
		{name: "name and number", input: "CNC 01", want: "CNC-01"},
		{name: "name and letter", input: "Fresadora B", want: "Fresadora-B"},
		{name: "already hyphenated", input: "Ya-Tiene-Guion", want: "Ya-Tiene-Guion"},
		{name: "padded", input: "  Torno 12 ", want: "Torno-12"},
		{name: "blank passthrough", input: "", want: ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := CleanMachine(tc.input); got != tc.want {
				t.Fatalf("CleanMachine(%q) = %q, want %q", tc.input, got, tc.want)
			}
		})
	}
}
