package series

import (
	"strconv"
	"strings"
)

// YearField is the field name every feed uses for the time axis.
const YearField = "year"

// CountryAll is the sentinel select value meaning "no country constraint".
const CountryAll = "all"

// Entry is a single year's observation for one country: the year value plus
// whatever metric fields the feed carries (cases, deaths, prevalence, ...).
// Values arrive from JSON as string or float64 and are kept exactly as supplied.
type Entry map[string]any

// CountryRecord groups one country's time series as delivered by a data endpoint.
// Uniqueness of Country across a snapshot is assumed, not enforced.
type CountryRecord struct {
	Country string  `json:"country"`
	Data    []Entry `json:"data"`
}

// Year returns the entry's year value as supplied by the feed.
func (e Entry) Year() any {
	return e[YearField]
}

// Int parses the named field as an integer with parseInt semantics: an optional
// sign followed by a leading digit prefix. Missing or malformed values return
// ok=false (the not-a-number sentinel) and never an error.
func (e Entry) Int(field string) (int, bool) {
	return parseIntPrefix(e[field])
}

// Float parses the named field as a float64, accepting numeric strings.
// Rate metrics (e.g. prevalence) use this; ok=false marks missing/malformed.
func (e Entry) Float(field string) (float64, bool) {
	return scalarFloat(e[field])
}

func parseIntPrefix(v any) (int, bool) {
	switch t := v.(type) {
	case float64:
		return int(t), true
	case int:
		return t, true
	case string:
		s := strings.TrimSpace(t)
		i := 0
		if i < len(s) && (s[i] == '+' || s[i] == '-') {
			i++
		}
		j := i
		for j < len(s) && s[j] >= '0' && s[j] <= '9' {
			j++
		}
		if j == i {
			return 0, false
		}
		n, err := strconv.Atoi(s[:j])
		if err != nil {
			return 0, false
		}
		return n, true
	default:
		return 0, false
	}
}

// CompareScalars orders two feed scalars: numerically when both sides parse as
// numbers, lexically otherwise. Feed values are compared as supplied, not
// normalized, so a mixed feed falls back to string order.
func CompareScalars(a, b any) int {
	af, aok := scalarFloat(a)
	bf, bok := scalarFloat(b)
	if aok && bok {
		switch {
		case af < bf:
			return -1
		case af > bf:
			return 1
		default:
			return 0
		}
	}
	return strings.Compare(ScalarString(a), ScalarString(b))
}

func scalarFloat(v any) (float64, bool) {
	switch t := v.(type) {
	case float64:
		return t, true
	case int:
		return float64(t), true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

// ScalarString renders a feed scalar for display and deduplication.
// Whole-number floats print without a trailing ".0" so that a numeric feed and
// a string feed agree on the same year label.
func ScalarString(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(t)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case int:
		return strconv.Itoa(t)
	default:
		return ""
	}
}
