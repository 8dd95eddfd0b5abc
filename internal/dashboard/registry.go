// Package dashboard binds the three disease dashboards together: their remote
// endpoints, the metric each one filters on, the chart images each one embeds,
// and the per-dashboard dataset view. Each dashboard owns its own view; there
// is no shared cache between them.
package dashboard

import (
	"context"
	"strconv"
	"strings"

	"golang.org/x/sync/errgroup"

	"epiview/domain/series"
	"epiview/internal/analysis"
	"epiview/internal/charts"
	"epiview/internal/config"
	"epiview/internal/errors"
	"epiview/internal/fetch"
)

// Column maps one entry field to its table heading.
type Column struct {
	Field string
	Label string
}

// Dashboard describes one disease view and owns its dataset.
type Dashboard struct {
	Slug        string
	Title       string
	Description string // markdown, rendered by the UI

	// MetricField is the designated field of the minimum-value filter stage;
	// MetricLabel is its human form.
	MetricField string
	MetricLabel string
	Aggregate   analysis.Aggregate

	Columns []Column
	Charts  []charts.Ref
	URLs    charts.Builder

	view *fetch.View
}

// Registry holds the dashboards in display order.
type Registry struct {
	order  []*Dashboard
	bySlug map[string]*Dashboard
}

// NewRegistry wires the three dashboards from configuration. The metric
// fields and chart endpoints mirror what the remote feed servers publish.
func NewRegistry(cfg *config.Config, client *fetch.Client) *Registry {
	dashboards := []*Dashboard{
		{
			Slug:        "measles",
			Title:       "Measles",
			Description: measlesDescription,
			MetricField: "cases",
			MetricLabel: "Reported cases",
			Aggregate:   analysis.AggregateSum,
			Columns: []Column{
				{Field: "year", Label: "Year"},
				{Field: "cases", Label: "Reported cases"},
			},
			Charts: []charts.Ref{
				{Endpoint: "global_cases", Title: "Global measles cases over time"},
				{Endpoint: "top_countries", Title: "Top countries by total cases"},
			},
			URLs: charts.Builder{Base: cfg.Dashboards.Measles.ChartsBaseURL, Profile: charts.ProfileQueryParam},
			view: fetch.NewView("measles", cfg.Dashboards.Measles.DataURL, client),
		},
		{
			Slug:        "hiv",
			Title:       "HIV / AIDS",
			Description: hivDescription,
			MetricField: "aids_related_deaths_all_ages",
			MetricLabel: "AIDS-related deaths",
			Aggregate:   analysis.AggregateSum,
			Columns: []Column{
				{Field: "year", Label: "Year"},
				{Field: "aids_related_deaths_all_ages", Label: "AIDS-related deaths"},
				{Field: "new_hiv_infections_all_ages", Label: "New HIV infections"},
				{Field: "people_living_with_hiv_total", Label: "People living with HIV"},
			},
			Charts: []charts.Ref{
				{Endpoint: "deaths_global", Title: "Global AIDS-related deaths"},
				{Endpoint: "infections_global", Title: "Global new HIV infections"},
				{Endpoint: "plhiv_global", Title: "People living with HIV"},
				{Endpoint: "top_deaths", Title: "Top countries by AIDS-related deaths"},
			},
			URLs: charts.Builder{Base: cfg.Dashboards.AIDS.ChartsBaseURL, Profile: charts.ProfilePathParam},
			view: fetch.NewView("hiv", cfg.Dashboards.AIDS.DataURL, client),
		},
		{
			Slug:        "malaria",
			Title:       "Malaria",
			Description: malariaDescription,
			MetricField: "cases",
			MetricLabel: "Deaths",
			Aggregate:   analysis.AggregateSum,
			Columns: []Column{
				{Field: "year", Label: "Year"},
				{Field: "cases", Label: "Deaths"},
			},
			Charts: []charts.Ref{
				{Endpoint: "global_deaths", Title: "Global malaria deaths over time"},
				{Endpoint: "top_countries", Title: "Top countries by total deaths"},
			},
			URLs: charts.Builder{Base: cfg.Dashboards.Malaria.ChartsBaseURL, Profile: charts.ProfileQueryParam},
			view: fetch.NewView("malaria", cfg.Dashboards.Malaria.DataURL, client),
		},
	}

	reg := &Registry{bySlug: make(map[string]*Dashboard, len(dashboards))}
	for _, d := range dashboards {
		reg.order = append(reg.order, d)
		reg.bySlug[d.Slug] = d
	}
	return reg
}

// All returns the dashboards in display order.
func (r *Registry) All() []*Dashboard {
	return r.order
}

// Get looks a dashboard up by slug.
func (r *Registry) Get(slug string) (*Dashboard, error) {
	d, ok := r.bySlug[strings.ToLower(slug)]
	if !ok {
		return nil, errors.NotFound("dashboard " + slug)
	}
	return d, nil
}

// WarmUp activates every dashboard's view concurrently. A view that lands in
// the error state reports it, but the views stay independent: one failing
// feed never blocks the others.
func (r *Registry) WarmUp(ctx context.Context) error {
	// Deliberately not errgroup.WithContext: one failing feed must not cancel
	// the sibling fetches.
	var g errgroup.Group
	for _, d := range r.order {
		d := d
		g.Go(func() error {
			d.Activate(ctx)
			if snap := d.Snapshot(); snap.Status == fetch.StatusError {
				return errors.New(errors.CodeFetchFailed, d.Slug+": "+snap.Message)
			}
			return nil
		})
	}
	return g.Wait()
}

// Activate triggers this dashboard's single dataset fetch if not yet started.
func (d *Dashboard) Activate(ctx context.Context) {
	d.view.Activate(ctx)
}

// Snapshot returns the current loading/error/ready state.
func (d *Dashboard) Snapshot() fetch.Snapshot {
	return d.view.Snapshot()
}

// Reset starts a new activation of the dashboard's view.
func (d *Dashboard) Reset() {
	d.view.Reset()
}

// ParseSpec builds a filter spec from the raw query values of the view's
// filter controls. min must be a plain integer when present.
func (d *Dashboard) ParseSpec(country, startYear, endYear, min string) (series.Spec, error) {
	spec := series.Spec{
		Country:   strings.TrimSpace(country),
		StartYear: strings.TrimSpace(startYear),
		EndYear:   strings.TrimSpace(endYear),
		Metric:    d.MetricField,
	}
	if m := strings.TrimSpace(min); m != "" {
		n, err := strconv.Atoi(m)
		if err != nil {
			return series.Spec{}, errors.InvalidInput("minimum " + d.MetricLabel + " must be a whole number")
		}
		spec.MinValue = &n
	}
	return spec, nil
}

// Filtered applies spec to the ready snapshot. Outside the ready state it
// returns nil: the views never render derived data while loading or in error.
func (d *Dashboard) Filtered(spec series.Spec) []series.CountryRecord {
	snap := d.Snapshot()
	if snap.Status != fetch.StatusReady {
		return nil
	}
	return series.Apply(snap.Records, spec)
}

// Summary computes the headline figures over the given (filtered) records.
func (d *Dashboard) Summary(records []series.CountryRecord) analysis.Summary {
	return analysis.Overview(records, d.MetricField, d.Aggregate)
}

// Table flattens records into one header row plus one row per country/year
// pair, in the dashboard's column order. Missing fields render empty.
func (d *Dashboard) Table(records []series.CountryRecord) ([]string, [][]string) {
	headers := make([]string, 0, len(d.Columns)+1)
	headers = append(headers, "Country")
	for _, col := range d.Columns {
		headers = append(headers, col.Label)
	}

	rows := make([][]string, 0)
	for _, rec := range records {
		for _, e := range rec.Data {
			row := make([]string, 0, len(headers))
			row = append(row, rec.Country)
			for _, col := range d.Columns {
				row = append(row, series.ScalarString(e[col.Field]))
			}
			rows = append(rows, row)
		}
	}
	return headers, rows
}
