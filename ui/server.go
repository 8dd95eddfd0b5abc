package ui

import (
	"embed"
	"html/template"
	"strings"

	"github.com/gin-gonic/gin"

	"epiview/internal/dashboard"
	"epiview/internal/errors"
)

//go:embed templates/* static/*
var embeddedFiles embed.FS

// Server renders the HTML dashboards with Gin.
type Server struct {
	router    *gin.Engine
	registry  *dashboard.Registry
	templates *template.Template
}

// NewServer creates the web server over the dashboard registry.
func NewServer(registry *dashboard.Registry, ginMode string) (*Server, error) {
	if ginMode != "" {
		gin.SetMode(ginMode)
	}

	funcMap := template.FuncMap{
		"upper": strings.ToUpper,
		"add":   func(a, b int) int { return a + b },
		"fmtValue": func(v float64) string {
			return formatValue(v)
		},
	}
	templates, err := template.New("").Funcs(funcMap).ParseFS(embeddedFiles,
		"templates/*.html", "templates/fragments/*.html")
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse templates")
	}

	s := &Server{
		router:    gin.Default(),
		registry:  registry,
		templates: templates,
	}
	s.setupRoutes()
	return s, nil
}

func (s *Server) setupRoutes() {
	s.router.Use(RequestID())

	s.router.GET("/", s.handleIndex)
	s.router.GET("/dashboards/:slug", s.handleDashboard)
	s.router.GET("/dashboards/:slug/export", s.handleExport)
	s.router.GET("/healthz", s.handleHealth)

	s.router.StaticFS("/static", staticFS())
}

// Run starts the server on the given port.
func (s *Server) Run(port string) error {
	return s.router.Run(":" + port)
}

// Router exposes the underlying engine, for tests.
func (s *Server) Router() *gin.Engine {
	return s.router
}
