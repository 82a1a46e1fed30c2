package web

import (
	"bytes"
	"embed"
	"html/template"
	"net/http"
	"time"

	"go.uber.org/zap"

	"apartment-manager/internal/leasing"
)

//go:embed templates/*.html
var templateFS embed.FS

// page is the data every template receives.
type page struct {
	Title      string
	Error      string
	Form       map[string]string
	Tenants    []leasing.Tenant
	Apartments []leasing.Apartment
	Leases     []leasing.Lease
}

type Views struct {
	templates *template.Template
	logger    *zap.Logger
}

func LoadViews(logger *zap.Logger) (*Views, error) {
	t, err := template.New("views").
		Funcs(template.FuncMap{"date": formatDate}).
		ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, err
	}
	return &Views{templates: t, logger: logger}, nil
}

// Render executes the named template into a buffer first so that a template
// error can still become a 500. A failed write to the client is only logged.
func (v *Views) Render(w http.ResponseWriter, status int, name string, data page) error {
	if data.Form == nil {
		data.Form = map[string]string{}
	}

	var buf bytes.Buffer
	if err := v.templates.ExecuteTemplate(&buf, name, data); err != nil {
		return err
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if _, err := buf.WriteTo(w); err != nil {
		v.logger.Debug("failed to write page", zap.String("template", name), zap.Error(err))
	}
	return nil
}

func formatDate(v any) string {
	switch d := v.(type) {
	case time.Time:
		return leasing.FormatDate(&d)
	case *time.Time:
		return leasing.FormatDate(d)
	default:
		return ""
	}
}
