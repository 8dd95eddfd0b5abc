package series

// Spec is one dashboard's active filter. Zero-value fields are inactive: an
// empty (or "all") country, empty year bounds, and a nil MinValue each make
// their stage a no-op.
type Spec struct {
	Country   string
	StartYear string
	EndYear   string
	// Metric names the field the minimum-value stage parses; MinValue is the
	// inclusive lower bound. The stage is active only when both are set.
	Metric   string
	MinValue *int
}

// IsZero reports whether no constraint is active.
func (s Spec) IsZero() bool {
	return !s.constrainsCountry() && s.StartYear == "" && s.EndYear == "" && !s.constrainsMetric()
}

func (s Spec) constrainsCountry() bool {
	return s.Country != "" && s.Country != CountryAll
}

func (s Spec) constrainsMetric() bool {
	return s.Metric != "" && s.MinValue != nil
}

// matches applies the per-entry stages (start-year, end-year, minimum-metric)
// as one conjunctive predicate. Entries whose metric is missing or malformed
// fail the minimum-metric stage rather than raising.
func (s Spec) matches(e Entry) bool {
	year := e.Year()
	if s.StartYear != "" && CompareScalars(year, s.StartYear) < 0 {
		return false
	}
	if s.EndYear != "" && CompareScalars(year, s.EndYear) > 0 {
		return false
	}
	if s.constrainsMetric() {
		n, ok := e.Int(s.Metric)
		if !ok || n < *s.MinValue {
			return false
		}
	}
	return true
}

// Apply returns the subset of records matching every active constraint in spec.
// The input is never mutated: the result holds fresh record and entry slices,
// and any country whose data becomes empty after filtering is dropped.
func Apply(records []CountryRecord, spec Spec) []CountryRecord {
	out := make([]CountryRecord, 0, len(records))
	for _, rec := range records {
		if spec.constrainsCountry() && rec.Country != spec.Country {
			continue
		}
		kept := make([]Entry, 0, len(rec.Data))
		for _, e := range rec.Data {
			if spec.matches(e) {
				kept = append(kept, e)
			}
		}
		if len(kept) == 0 {
			continue
		}
		out = append(out, CountryRecord{Country: rec.Country, Data: kept})
	}
	return out
}
