package series

import (
	"reflect"
	"testing"
)

func sampleRecords() []CountryRecord {
	return []CountryRecord{
		{Country: "Zimbabwe", Data: []Entry{
			{"year": "2000", "cases": "120"},
			{"year": "2001", "cases": "95"},
		}},
		{Country: "Angola", Data: []Entry{
			{"year": "1999", "cases": "40"},
			{"year": "2001", "cases": "55"},
		}},
		{Country: "Brazil", Data: []Entry{
			{"year": "2000", "cases": "7"},
		}},
	}
}

// TestCountriesSorted tests that each distinct country appears exactly once,
// lexically sorted ascending.
func TestCountriesSorted(t *testing.T) {
	got := Countries(sampleRecords())
	want := []string{"Angola", "Brazil", "Zimbabwe"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Countries() = %v, want %v", got, want)
	}
}

// TestCountriesDuplicates tests that a repeated country name is not emitted twice.
func TestCountriesDuplicates(t *testing.T) {
	records := []CountryRecord{
		{Country: "Chad"},
		{Country: "Chad"},
		{Country: "Benin"},
	}
	got := Countries(records)
	want := []string{"Benin", "Chad"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Countries() = %v, want %v", got, want)
	}
}

// TestYearsPooled tests that years are pooled across all countries, distinct,
// and sorted ascending.
func TestYearsPooled(t *testing.T) {
	got := Years(sampleRecords())
	want := []any{"1999", "2000", "2001"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Years() = %v, want %v", got, want)
	}
}

// TestYearsNumericFeed tests ascending order on a numeric feed, where lexical
// order would put 997 after 1998.
func TestYearsNumericFeed(t *testing.T) {
	records := []CountryRecord{
		{Country: "X", Data: []Entry{
			{"year": float64(1998)},
			{"year": float64(997)},
			{"year": float64(2020)},
		}},
	}
	got := Years(records)
	want := []any{float64(997), float64(1998), float64(2020)}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Years() = %v, want %v", got, want)
	}
}

// TestEmptyInput tests that an empty record sequence yields empty derivations,
// not an error.
func TestEmptyInput(t *testing.T) {
	if got := Countries(nil); len(got) != 0 {
		t.Errorf("Countries(nil) = %v, want empty", got)
	}
	if got := Years(nil); len(got) != 0 {
		t.Errorf("Years(nil) = %v, want empty", got)
	}
	if got := Apply(nil, Spec{Country: "Y"}); len(got) != 0 {
		t.Errorf("Apply(nil, spec) = %v, want empty", got)
	}
}

func TestCountryOptionsSentinelFirst(t *testing.T) {
	opts := CountryOptions(sampleRecords())
	if len(opts) != 4 {
		t.Fatalf("expected 4 options, got %d", len(opts))
	}
	if opts[0].Value != CountryAll {
		t.Errorf("first option value = %q, want %q", opts[0].Value, CountryAll)
	}
	if opts[1].Name != "Angola" || opts[3].Name != "Zimbabwe" {
		t.Errorf("country options not sorted: %v", opts)
	}
}

func TestYearOptionsRenderScalars(t *testing.T) {
	records := []CountryRecord{
		{Country: "X", Data: []Entry{{"year": float64(2004)}, {"year": float64(2003)}}},
	}
	opts := YearOptions(records)
	if len(opts) != 2 || opts[0].Value != "2003" || opts[1].Value != "2004" {
		t.Errorf("unexpected year options: %v", opts)
	}
}
