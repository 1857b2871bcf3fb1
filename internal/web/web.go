// Package web holds the portal's embedded HTML templates.
package web

import (
	"embed"
	"html/template"
	"io/fs"

	"github.com/noah-isme/library-portal/internal/models"
	"github.com/noah-isme/library-portal/internal/service"
)

// Page template names.
const (
	ListingPage   = "listing.html"
	DetailPage    = "detail.html"
	DashboardPage = "dashboard.html"
	ErrorPage     = "error.html"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static/*
var staticFS embed.FS

// Templates parses every page and partial into one set for gin's HTML renderer.
func Templates() (*template.Template, error) {
	return template.New("portal").Funcs(Funcs()).ParseFS(templateFS, "templates/*.html")
}

// Static exposes the stylesheet and live listing script.
func Static() fs.FS {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	return sub
}

// Funcs are the helpers available to every template.
func Funcs() template.FuncMap {
	return template.FuncMap{
		"listingURL": service.ListingURL,
		"detailURL":  service.DetailURL,
		"isLink": func(f models.RenderedField) bool {
			return f.Kind == models.RenderExternalLink
		},
		"isBadge": func(f models.RenderedField) bool {
			return f.Kind == models.RenderStatusBadge
		},
		"badgeText": func(f models.RenderedField) string {
			if f.Value == "" {
				return models.FallbackText
			}
			return f.Value
		},
	}
}
