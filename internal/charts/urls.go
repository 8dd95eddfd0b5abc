// Package charts builds URLs for the remote chart-image endpoints. The images
// are opaque: nothing here ever parses a response body, it only composes the
// src attributes the views embed.
package charts

import (
	"net/url"
	"strings"
)

// ProfileStyle selects how a chart server addresses a single country profile.
type ProfileStyle int

const (
	// ProfileQueryParam appends ?country=<name>, as the measles and malaria
	// chart servers expect.
	ProfileQueryParam ProfileStyle = iota
	// ProfilePathParam appends /country_profile/<name>, as the AIDS chart
	// server expects.
	ProfilePathParam
)

// Builder composes image URLs under one chart server's base URL.
type Builder struct {
	Base    string
	Profile ProfileStyle
}

// Image returns the URL of a fixed chart endpoint such as "global_cases".
func (b Builder) Image(endpoint string) string {
	return b.join(endpoint)
}

// CountryProfile returns the URL of the per-country profile chart. The country
// name is URL-escaped; it may contain spaces and punctuation as supplied by
// the dataset.
func (b Builder) CountryProfile(country string) string {
	if b.Profile == ProfilePathParam {
		return b.join("country_profile") + "/" + url.PathEscape(country)
	}
	return b.join("country_profile") + "?country=" + url.QueryEscape(country)
}

// CompareCountries returns the URL of the multi-country comparison chart.
// Country names are joined with commas into a single query parameter, matching
// the chart server's contract.
func (b Builder) CompareCountries(countries []string) string {
	escaped := make([]string, 0, len(countries))
	for _, c := range countries {
		c = strings.TrimSpace(c)
		if c == "" {
			continue
		}
		escaped = append(escaped, url.QueryEscape(c))
	}
	return b.join("compare_countries") + "?countries=" + strings.Join(escaped, ",")
}

func (b Builder) join(endpoint string) string {
	return strings.TrimRight(b.Base, "/") + "/" + endpoint
}

// Ref names one fixed chart a dashboard displays.
type Ref struct {
	Endpoint string
	Title    string
}
