package util

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var (
	qtyNoisePattern      = regexp.MustCompile(`[a-záéíóúñ\s/]+`)
	machineDigitPattern  = regexp.MustCompile(`(\D)\s+(\d)`)
	machineLetterPattern = regexp.MustCompile(`(\w)\s+([A-Z])$`)
)

// dateLayouts are tried in priority order when no hint layout is given.
var dateLayouts = []string{
	"2006-01-02", // 2026-01-15
	"02/01/2006", // 15/01/2026
	"01/02/2006", // 01/15/2026
	"02-01-2006", // 15-01-2026
	"2006/01/02", // 2026/01/15
	"02.01.2006", // 15.01.2026
}

// CleanQuantity strips unit suffixes like "pzas", "pz" or "und" from a raw
// quantity cell and parses the remainder. Missing, blank or unparseable
// values become 0; it never fails.
func CleanQuantity(raw string) int {
	text := strings.ToLower(strings.TrimSpace(raw))
	if text == "" {
		return 0
	}
	text = qtyNoisePattern.ReplaceAllString(text, "")
	parsed, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return 0
	}
	return int(parsed)
}

// StandardizeDate converts a raw date cell to YYYY-MM-DD. The hint layout,
// when non-empty, is tried before the known layouts. A value matching no
// layout is returned unchanged so the row survives with its original text.
// ok is false only for blank input.
func StandardizeDate(raw, hint string) (value string, ok bool) {
	text := strings.TrimSpace(raw)
	if text == "" {
		return "", false
	}

	layouts := dateLayouts
	if hint != "" {
		layouts = append([]string{hint}, dateLayouts...)
	}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, text); err == nil {
			return t.Format("2006-01-02"), true
		}
	}

	return text, true
}

// CleanProduct normalizes product names to title case, with the Spanish
// connectives "de" and "del" lowered afterwards. The connective fix is an
// exact substring replace, so words at the start or end of the name keep
// their title casing. Blank input passes through unchanged.
func CleanProduct(raw string) string {
	if strings.TrimSpace(raw) == "" {
		return raw
	}
	name := strings.ReplaceAll(strings.TrimSpace(raw), `"`, "")
	name = cases.Title(language.Spanish).String(name)
	name = strings.ReplaceAll(name, " De ", " de ")
	name = strings.ReplaceAll(name, " Del ", " del ")
	return name
}

// CleanMachine hyphenates machine names: "CNC 01" → "CNC-01",
// "Fresadora B" → "Fresadora-B". Names already hyphenated are untouched.
// Blank input passes through unchanged.
func CleanMachine(raw string) string {
	if strings.TrimSpace(raw) == "" {
		return raw
	}
	name := strings.TrimSpace(raw)
	name = machineDigitPattern.ReplaceAllString(name, "${1}-${2}")
	name = machineLetterPattern.ReplaceAllString(name, "${1}-${2}")
	return name
}
