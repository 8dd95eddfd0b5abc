package ui

import (
	"bytes"
	"io/fs"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// renderTemplate executes a template into a buffer first so a template error
// becomes a 500 instead of a half-written page.
func (s *Server) renderTemplate(c *gin.Context, templateName string, data interface{}) {
	var buf bytes.Buffer
	if err := s.templates.ExecuteTemplate(&buf, templateName, data); err != nil {
		log.Printf("[ui] template error for %s: %v", templateName, err)
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "template rendering failed"})
		return
	}

	c.Header("Content-Type", "text/html; charset=utf-8")
	c.Writer.WriteHeader(http.StatusOK)
	if _, err := buf.WriteTo(c.Writer); err != nil {
		log.Printf("[ui] error writing template response: %v", err)
	}
}

// formatValue renders a summary figure: whole numbers without decimals, rates
// with a short mantissa.
func formatValue(v float64) string {
	if v == float64(int64(v)) {
		return strconv.FormatInt(int64(v), 10)
	}
	return strconv.FormatFloat(v, 'f', 3, 64)
}

func staticFS() http.FileSystem {
	sub, err := fs.Sub(embeddedFiles, "static")
	if err != nil {
		// The static tree is embedded at build time; a failure here is a
		// packaging bug, not a runtime condition.
		log.Fatalf("[ui] embedded static tree missing: %v", err)
	}
	return http.FS(sub)
}
