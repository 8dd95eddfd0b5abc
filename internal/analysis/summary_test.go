package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"epiview/domain/series"
)

func testRecords() []series.CountryRecord {
	return []series.CountryRecord{
		{Country: "Kenya", Data: []series.Entry{
			{"year": "2000", "cases": "100", "prevalence": "0.04"},
			{"year": "2001", "cases": "150", "prevalence": "0.05"},
			{"year": "2002", "cases": "200", "prevalence": "0.06"},
		}},
		{Country: "Peru", Data: []series.Entry{
			{"year": "2000", "cases": "10", "prevalence": "0.02"},
			{"year": "2002", "cases": "30", "prevalence": "0.02"},
		}},
		{Country: "Nauru", Data: []series.Entry{
			{"year": "2002", "cases": "No data"},
		}},
	}
}

func TestGlobalSeriesSum(t *testing.T) {
	got := GlobalSeries(testRecords(), "cases", AggregateSum)
	require.Len(t, got, 3)
	assert.Equal(t, YearValue{Year: "2000", Value: 110}, got[0])
	assert.Equal(t, YearValue{Year: "2001", Value: 150}, got[1])
	assert.Equal(t, YearValue{Year: "2002", Value: 230}, got[2])
}

func TestGlobalSeriesMean(t *testing.T) {
	got := GlobalSeries(testRecords(), "prevalence", AggregateMean)
	require.Len(t, got, 3)
	assert.InDelta(t, 0.03, got[0].Value, 1e-9)
	assert.InDelta(t, 0.05, got[1].Value, 1e-9)
	assert.InDelta(t, 0.04, got[2].Value, 1e-9)
}

func TestTopCountriesLatest(t *testing.T) {
	got := TopCountriesLatest(testRecords(), "cases", 10)
	require.Len(t, got, 2, "Nauru has no parsable metric in the latest year")
	assert.Equal(t, CountryValue{Country: "Kenya", Value: 200}, got[0])
	assert.Equal(t, CountryValue{Country: "Peru", Value: 30}, got[1])
}

func TestTopCountriesTotalTruncates(t *testing.T) {
	got := TopCountriesTotal(testRecords(), "cases", 1)
	require.Len(t, got, 1)
	assert.Equal(t, CountryValue{Country: "Kenya", Value: 450}, got[0])
}

func TestOverview(t *testing.T) {
	s := Overview(testRecords(), "cases", AggregateSum)
	assert.Equal(t, 3, s.Countries)
	assert.Equal(t, 3, s.Years)
	assert.Equal(t, "2002", s.LatestYear)
	assert.Equal(t, 230.0, s.LatestValue)
	assert.Equal(t, "2002", s.PeakYear)
	assert.Equal(t, 230.0, s.PeakValue)
	assert.InDelta(t, 60.0, s.Slope, 1e-9) // 110 -> 150 -> 230 rises ~60/year
}

func TestOverviewEmpty(t *testing.T) {
	s := Overview(nil, "cases", AggregateSum)
	assert.Zero(t, s.Years)
	assert.Empty(t, s.Series)
	assert.Zero(t, s.Slope)
}
