package series

// Option is used to generate options for the filter selects in the views.
type Option struct {
	Name  string
	Value string
}

// CountryOptions returns select options for the country filter, with the
// "all countries" sentinel first.
func CountryOptions(records []CountryRecord) []Option {
	countries := Countries(records)
	options := make([]Option, 0, len(countries)+1)
	options = append(options, Option{Name: "All Countries", Value: CountryAll})
	for _, c := range countries {
		options = append(options, Option{Name: c, Value: c})
	}
	return options
}

// YearOptions returns select options for the year-bound filters.
func YearOptions(records []CountryRecord) []Option {
	years := Years(records)
	options := make([]Option, 0, len(years))
	for _, y := range years {
		s := ScalarString(y)
		options = append(options, Option{Name: s, Value: s})
	}
	return options
}
