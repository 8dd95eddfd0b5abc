package ui

import (
	"fmt"
	"html/template"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"epiview/domain/series"
	"epiview/internal/analysis"
	"epiview/internal/dashboard"
	"epiview/internal/export"
	"epiview/internal/fetch"
)

type chartImage struct {
	Title string
	URL   string
}

type filterState struct {
	Country   string
	StartYear string
	EndYear   string
	Min       string
}

// dashboardPage is the template model of one dashboard view. Derived fields
// are populated only in the ready state.
type dashboardPage struct {
	Title           string
	Slug            string
	DescriptionHTML template.HTML
	MetricLabel     string

	Status       string
	ErrorMessage string
	FilterError  string

	Countries []series.Option
	Years     []series.Option
	Filter    filterState

	Charts     []chartImage
	ProfileURL string
	CompareURL string

	Summary   analysis.Summary
	Headers   []string
	Rows      [][]string
	NoMatches bool
}

type indexCard struct {
	Title           string
	Slug            string
	DescriptionHTML template.HTML
	Status          string
}

func (s *Server) handleIndex(c *gin.Context) {
	cards := make([]indexCard, 0, len(s.registry.All()))
	for _, d := range s.registry.All() {
		cards = append(cards, indexCard{
			Title:           d.Title,
			Slug:            d.Slug,
			DescriptionHTML: renderMarkdown(d.Description),
			Status:          d.Snapshot().Status.String(),
		})
	}
	s.renderTemplate(c, "index.html", gin.H{"Cards": cards})
}

func (s *Server) handleDashboard(c *gin.Context) {
	d, err := s.registry.Get(c.Param("slug"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown dashboard"})
		return
	}

	d.Activate(c.Request.Context())
	snap := d.Snapshot()

	page := dashboardPage{
		Title:           d.Title,
		Slug:            d.Slug,
		DescriptionHTML: renderMarkdown(d.Description),
		MetricLabel:     d.MetricLabel,
		Status:          snap.Status.String(),
		Filter: filterState{
			Country:   c.Query("country"),
			StartYear: c.Query("from"),
			EndYear:   c.Query("to"),
			Min:       c.Query("min"),
		},
	}

	switch snap.Status {
	case fetch.StatusLoading:
		// Nothing derived is rendered while loading.
	case fetch.StatusError:
		page.ErrorMessage = snap.Message
	case fetch.StatusReady:
		s.populateReadyPage(&page, d, snap)
	}

	s.renderTemplate(c, "dashboard.html", page)
}

func (s *Server) populateReadyPage(page *dashboardPage, d *dashboard.Dashboard, snap fetch.Snapshot) {
	spec, err := d.ParseSpec(page.Filter.Country, page.Filter.StartYear, page.Filter.EndYear, page.Filter.Min)
	if err != nil {
		// A malformed minimum is reported but does not blank the view; the
		// remaining stages still apply.
		page.FilterError = err.Error()
		spec, _ = d.ParseSpec(page.Filter.Country, page.Filter.StartYear, page.Filter.EndYear, "")
	}

	filtered := series.Apply(snap.Records, spec)

	// Option lists always derive from the raw snapshot, not the filtered view.
	page.Countries = series.CountryOptions(snap.Records)
	page.Years = series.YearOptions(snap.Records)

	page.Summary = d.Summary(filtered)
	page.Headers, page.Rows = d.Table(filtered)
	page.NoMatches = len(page.Rows) == 0

	for _, ref := range d.Charts {
		page.Charts = append(page.Charts, chartImage{Title: ref.Title, URL: d.URLs.Image(ref.Endpoint)})
	}
	if spec.Country != "" && spec.Country != series.CountryAll {
		page.ProfileURL = d.URLs.CountryProfile(spec.Country)
	} else if top := analysis.TopCountriesLatest(filtered, d.MetricField, 5); len(top) >= 2 {
		names := make([]string, 0, len(top))
		for _, t := range top {
			names = append(names, t.Country)
		}
		page.CompareURL = d.URLs.CompareCountries(names)
	}
}

func (s *Server) handleExport(c *gin.Context) {
	d, err := s.registry.Get(c.Param("slug"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown dashboard"})
		return
	}

	d.Activate(c.Request.Context())
	snap := d.Snapshot()
	if snap.Status != fetch.StatusReady {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "dataset is not ready", "status": snap.Status.String()})
		return
	}

	spec, err := d.ParseSpec(c.Query("country"), c.Query("from"), c.Query("to"), c.Query("min"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	headers, rows := d.Table(series.Apply(snap.Records, spec))

	format := c.DefaultQuery("format", "csv")
	switch format {
	case "csv":
		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", d.Slug+"_table.csv"))
		c.Header("Content-Type", "text/csv; charset=utf-8")
		if err := export.WriteCSV(c.Writer, headers, rows); err != nil {
			log.Printf("[ui] CSV export for %s failed: %v", d.Slug, err)
		}
	case "xlsx":
		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", d.Slug+"_table.xlsx"))
		c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		if err := export.WriteXLSX(c.Writer, headers, rows); err != nil {
			log.Printf("[ui] XLSX export for %s failed: %v", d.Slug, err)
		}
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "format must be csv or xlsx"})
	}
}

func (s *Server) handleHealth(c *gin.Context) {
	views := make(map[string]string, len(s.registry.All()))
	for _, d := range s.registry.All() {
		views[d.Slug] = d.Snapshot().Status.String()
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok", "dashboards": views})
}
