package web

import (
	"embed"
	"html/template"
	"io"
	"net/url"
	"strings"
	"time"

	"gphotos-admin/internal/dashboard"
	"gphotos-admin/internal/errors"

	"github.com/dustin/go-humanize"
	"github.com/labstack/echo/v4"
)

//go:embed templates/*.html
var templateFS embed.FS

// Renderer executes the embedded templates for echo
type Renderer struct {
	tmpl *template.Template
}

var templateFuncs = template.FuncMap{
	"ago":      humanize.Time,
	"comma":    func(n int) string { return humanize.Comma(int64(n)) },
	"ms":       func(d time.Duration) int64 { return d.Milliseconds() },
	"query":    url.QueryEscape,
	"seg":      pathSeg,
	"lower":    strings.ToLower,
	"level":    func(l dashboard.Level) string { return l.String() },
	"logClass": logClass,
	"timeOnly": func(t time.Time) string { return t.Local().Format(time.TimeOnly) },
}

// NewRenderer parses every embedded template
func NewRenderer() (*Renderer, error) {
	tmpl, err := template.New("web").Funcs(templateFuncs).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, errors.InternalError("failed to parse templates", err)
	}
	return &Renderer{tmpl: tmpl}, nil
}

// Render implements echo.Renderer
func (r *Renderer) Render(w io.Writer, name string, data interface{}, _ echo.Context) error {
	return r.tmpl.ExecuteTemplate(w, name, data)
}

func logClass(l dashboard.LogLine) string {
	if !l.Structured {
		return "plain"
	}
	switch l.Level {
	case "ERROR", "FATAL", "CRITICAL":
		return "error"
	case "WARN", "WARNING":
		return "warning"
	case "DEBUG", "TRACE":
		return "debug"
	}
	return "info"
}
