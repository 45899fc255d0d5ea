package scheduler

import (
	"strings"
	"time"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var weekdayNames = [...]string{
	"domingo", "lunes", "martes", "miércoles", "jueves", "viernes", "sábado",
}

// WeekdayName returns the Spanish name for d, as shown to callers in
// rejection messages and availability listings.
func WeekdayName(d time.Weekday) string {
	return weekdayNames[int(d)]
}

var accentStripper = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// NormalizeDay lower-cases s and strips diacritics so stored working
// days match regardless of accents or casing ("Miércoles" == "miercoles").
func NormalizeDay(s string) string {
	out, _, err := transform.String(accentStripper, s)
	if err != nil {
		out = s
	}
	return strings.ToLower(strings.TrimSpace(out))
}

// normalizedDaySet builds a lookup set from a doctor's working-day list.
func normalizedDaySet(days []string) map[string]bool {
	set := make(map[string]bool, len(days))
	for _, d := range days {
		set[NormalizeDay(d)] = true
	}
	return set
}
