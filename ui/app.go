package ui

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"epiview/domain/series"
	"epiview/internal/dashboard"
	"epiview/internal/export"
	"epiview/internal/fetch"
)

// App is the headless JSON API over the same dashboard registry the HTML
// server renders, for programmatic consumers.
type App struct {
	router   *chi.Mux
	registry *dashboard.Registry
}

// NewApp creates the API application.
func NewApp(registry *dashboard.Registry) *App {
	app := &App{
		router:   chi.NewRouter(),
		registry: registry,
	}
	app.setupMiddleware()
	app.setupRoutes()
	return app
}

func (a *App) setupMiddleware() {
	a.router.Use(middleware.RequestID)
	a.router.Use(middleware.Logger)
	a.router.Use(middleware.Recoverer)
	a.router.Use(middleware.Compress(5))
}

func (a *App) setupRoutes() {
	a.router.Get("/healthz", a.handleHealth)
	a.router.Get("/api/dashboards", a.handleListDashboards)
	a.router.Get("/api/dashboards/{slug}/data", a.handleData)
	a.router.Get("/api/dashboards/{slug}/options", a.handleOptions)
	a.router.Get("/api/dashboards/{slug}/summary", a.handleSummary)
	a.router.Get("/api/dashboards/{slug}/export", a.handleAPIExport)
	a.router.Post("/api/dashboards/{slug}/refresh", a.handleRefresh)
}

// Handler returns the root handler, for mounting and for tests.
func (a *App) Handler() http.Handler {
	return a.router
}

// Start serves the API on the given port.
func (a *App) Start(port string) error {
	log.Printf("[api] listening on :%s", port)
	return http.ListenAndServe(":"+port, a.router)
}

func (a *App) handleHealth(w http.ResponseWriter, r *http.Request) {
	views := make(map[string]string, len(a.registry.All()))
	for _, d := range a.registry.All() {
		views[d.Slug] = d.Snapshot().Status.String()
	}
	writeJSON(w, http.StatusOK, map[string]any{"status": "ok", "dashboards": views})
}

func (a *App) handleListDashboards(w http.ResponseWriter, r *http.Request) {
	type item struct {
		Slug   string `json:"slug"`
		Title  string `json:"title"`
		Metric string `json:"metric"`
		Status string `json:"status"`
	}
	items := make([]item, 0, len(a.registry.All()))
	for _, d := range a.registry.All() {
		items = append(items, item{
			Slug:   d.Slug,
			Title:  d.Title,
			Metric: d.MetricField,
			Status: d.Snapshot().Status.String(),
		})
	}
	writeJSON(w, http.StatusOK, map[string]any{"dashboards": items})
}

func (a *App) handleData(w http.ResponseWriter, r *http.Request) {
	d, snap, ok := a.readyDashboard(w, r)
	if !ok {
		return
	}

	q := r.URL.Query()
	spec, err := d.ParseSpec(q.Get("country"), q.Get("from"), q.Get("to"), q.Get("min"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"error": err.Error()})
		return
	}

	filtered := series.Apply(snap.Records, spec)
	writeJSON(w, http.StatusOK, map[string]any{
		"dashboard": d.Slug,
		"count":     len(filtered),
		"records":   filtered,
	})
}

func (a *App) handleOptions(w http.ResponseWriter, r *http.Request) {
	_, snap, ok := a.readyDashboard(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"countries": series.Countries(snap.Records),
		"years":     series.Years(snap.Records),
	})
}

func (a *App) handleSummary(w http.ResponseWriter, r *http.Request) {
	d, snap, ok := a.readyDashboard(w, r)
	if !ok {
		return
	}

	q := r.URL.Query()
	spec, err := d.ParseSpec(q.Get("country"), q.Get("from"), q.Get("to"), q.Get("min"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"error": err.Error()})
		return
	}
	summary := d.Summary(series.Apply(snap.Records, spec))
	writeJSON(w, http.StatusOK, summary)
}

func (a *App) handleAPIExport(w http.ResponseWriter, r *http.Request) {
	d, snap, ok := a.readyDashboard(w, r)
	if !ok {
		return
	}

	q := r.URL.Query()
	spec, err := d.ParseSpec(q.Get("country"), q.Get("from"), q.Get("to"), q.Get("min"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"error": err.Error()})
		return
	}
	headers, rows := d.Table(series.Apply(snap.Records, spec))

	format := q.Get("format")
	if format == "" {
		format = "csv"
	}
	switch format {
	case "csv":
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", d.Slug+"_table.csv"))
		w.Header().Set("Content-Type", "text/csv; charset=utf-8")
		if err := export.WriteCSV(w, headers, rows); err != nil {
			log.Printf("[api] CSV export for %s failed: %v", d.Slug, err)
		}
	case "xlsx":
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", d.Slug+"_table.xlsx"))
		w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		if err := export.WriteXLSX(w, headers, rows); err != nil {
			log.Printf("[api] XLSX export for %s failed: %v", d.Slug, err)
		}
	default:
		writeJSON(w, http.StatusBadRequest, map[string]any{"error": "format must be csv or xlsx"})
	}
}

func (a *App) handleRefresh(w http.ResponseWriter, r *http.Request) {
	d, err := a.registry.Get(chi.URLParam(r, "slug"))
	if err != nil {
		writeJSON(w, http.StatusNotFound, map[string]any{"error": "unknown dashboard"})
		return
	}

	// A refresh is a new activation: state returns to loading, one fetch runs.
	d.Reset()
	d.Activate(r.Context())
	snap := d.Snapshot()
	writeJSON(w, http.StatusOK, map[string]any{"status": snap.Status.String(), "error": snap.Message})
}

// readyDashboard resolves the slug and enforces the state contract: derived
// data is only served from a ready snapshot. Loading and error map to 503
// with the state attached so callers can distinguish them.
func (a *App) readyDashboard(w http.ResponseWriter, r *http.Request) (*dashboard.Dashboard, fetch.Snapshot, bool) {
	d, err := a.registry.Get(chi.URLParam(r, "slug"))
	if err != nil {
		writeJSON(w, http.StatusNotFound, map[string]any{"error": "unknown dashboard"})
		return nil, fetch.Snapshot{}, false
	}

	d.Activate(r.Context())
	snap := d.Snapshot()
	if snap.Status != fetch.StatusReady {
		writeJSON(w, http.StatusServiceUnavailable, map[string]any{
			"status": snap.Status.String(),
			"error":  snap.Message,
		})
		return nil, fetch.Snapshot{}, false
	}
	return d, snap, true
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf("[api] error encoding response: %v", err)
	}
}
