package series

import "sort"

// Countries returns the distinct country names in records, lexically sorted
// ascending. An empty input yields an empty slice, not an error.
func Countries(records []CountryRecord) []string {
	seen := make(map[string]bool, len(records))
	out := make([]string, 0, len(records))
	for _, rec := range records {
		if seen[rec.Country] {
			continue
		}
		seen[rec.Country] = true
		out = append(out, rec.Country)
	}
	sort.Strings(out)
	return out
}

// Years returns the distinct year values pooled across all countries' entries,
// sorted ascending by natural scalar order (numeric when the feed is numeric).
func Years(records []CountryRecord) []any {
	seen := make(map[string]bool)
	out := make([]any, 0)
	for _, rec := range records {
		for _, e := range rec.Data {
			y := e.Year()
			key := ScalarString(y)
			if key == "" || seen[key] {
				continue
			}
			seen[key] = true
			out = append(out, y)
		}
	}
	sort.Slice(out, func(i, j int) bool { return CompareScalars(out[i], out[j]) < 0 })
	return out
}
