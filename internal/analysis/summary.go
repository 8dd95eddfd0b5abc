// Package analysis derives the headline figures the dashboards show beside
// the chart images: pooled per-year series, top countries, and a linear trend
// over the global series. All derivations are pure recomputations from the
// current snapshot.
package analysis

import (
	"sort"

	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/stat"

	"epiview/domain/series"
)

// Aggregate selects how per-year values pool across countries.
type Aggregate int

const (
	// AggregateSum totals counts (cases, deaths) across countries.
	AggregateSum Aggregate = iota
	// AggregateMean averages rates (prevalence, incidence) across countries.
	AggregateMean
)

// YearValue is one point of a pooled global series.
type YearValue struct {
	Year  string  `json:"year"`
	Value float64 `json:"value"`
}

// CountryValue ranks one country by a metric.
type CountryValue struct {
	Country string  `json:"country"`
	Value   float64 `json:"value"`
}

// Summary holds the headline figures for one dashboard metric.
type Summary struct {
	Countries   int         `json:"countries"`
	Years       int         `json:"years"`
	LatestYear  string      `json:"latest_year"`
	LatestValue float64     `json:"latest_value"`
	PeakYear    string      `json:"peak_year"`
	PeakValue   float64     `json:"peak_value"`
	Slope       float64     `json:"slope"`
	Series      []YearValue `json:"series"`
}

// GlobalSeries pools the metric per year across all countries, sum or mean
// depending on agg, sorted ascending by year. Entries whose metric is missing
// or malformed are skipped.
func GlobalSeries(records []series.CountryRecord, field string, agg Aggregate) []YearValue {
	type group struct {
		year   any
		values []float64
	}
	groups := make(map[string]*group)
	for _, rec := range records {
		for _, e := range rec.Data {
			v, ok := e.Float(field)
			if !ok {
				continue
			}
			key := series.ScalarString(e.Year())
			if key == "" {
				continue
			}
			g, exists := groups[key]
			if !exists {
				g = &group{year: e.Year()}
				groups[key] = g
			}
			g.values = append(g.values, v)
		}
	}

	ordered := make([]*group, 0, len(groups))
	for _, g := range groups {
		ordered = append(ordered, g)
	}
	sort.Slice(ordered, func(i, j int) bool {
		return series.CompareScalars(ordered[i].year, ordered[j].year) < 0
	})

	out := make([]YearValue, 0, len(ordered))
	for _, g := range ordered {
		var pooled float64
		switch agg {
		case AggregateMean:
			pooled, _ = stats.Mean(g.values)
		default:
			pooled, _ = stats.Sum(g.values)
		}
		out = append(out, YearValue{Year: series.ScalarString(g.year), Value: pooled})
	}
	return out
}

// TopCountriesLatest ranks countries by the metric in the latest year present
// in the snapshot, descending, at most n entries.
func TopCountriesLatest(records []series.CountryRecord, field string, n int) []CountryValue {
	latest := latestYear(records)
	if latest == nil {
		return nil
	}
	latestKey := series.ScalarString(latest)

	out := make([]CountryValue, 0, len(records))
	for _, rec := range records {
		for _, e := range rec.Data {
			if series.ScalarString(e.Year()) != latestKey {
				continue
			}
			if v, ok := e.Float(field); ok {
				out = append(out, CountryValue{Country: rec.Country, Value: v})
			}
			break
		}
	}
	return topN(out, n)
}

// TopCountriesTotal ranks countries by the metric summed over every year,
// descending, at most n entries.
func TopCountriesTotal(records []series.CountryRecord, field string, n int) []CountryValue {
	out := make([]CountryValue, 0, len(records))
	for _, rec := range records {
		values := make([]float64, 0, len(rec.Data))
		for _, e := range rec.Data {
			if v, ok := e.Float(field); ok {
				values = append(values, v)
			}
		}
		if len(values) == 0 {
			continue
		}
		total, _ := stats.Sum(values)
		out = append(out, CountryValue{Country: rec.Country, Value: total})
	}
	return topN(out, n)
}

// Overview computes the summary block for one metric from the (possibly
// already filtered) snapshot.
func Overview(records []series.CountryRecord, field string, agg Aggregate) Summary {
	global := GlobalSeries(records, field, agg)
	summary := Summary{
		Countries: len(series.Countries(records)),
		Years:     len(global),
		Series:    global,
	}
	if len(global) == 0 {
		return summary
	}

	last := global[len(global)-1]
	summary.LatestYear = last.Year
	summary.LatestValue = last.Value

	peak := global[0]
	for _, p := range global[1:] {
		if p.Value > peak.Value {
			peak = p
		}
	}
	summary.PeakYear = peak.Year
	summary.PeakValue = peak.Value

	if len(global) >= 2 {
		xs := make([]float64, len(global))
		ys := make([]float64, len(global))
		for i, p := range global {
			xs[i] = float64(i)
			ys[i] = p.Value
		}
		_, slope := stat.LinearRegression(xs, ys, nil, false)
		summary.Slope = slope
	}
	return summary
}

func latestYear(records []series.CountryRecord) any {
	var latest any
	for _, rec := range records {
		for _, e := range rec.Data {
			y := e.Year()
			if series.ScalarString(y) == "" {
				continue
			}
			if latest == nil || series.CompareScalars(y, latest) > 0 {
				latest = y
			}
		}
	}
	return latest
}

func topN(values []CountryValue, n int) []CountryValue {
	sort.SliceStable(values, func(i, j int) bool { return values[i].Value > values[j].Value })
	if n > 0 && len(values) > n {
		values = values[:n]
	}
	return values
}
