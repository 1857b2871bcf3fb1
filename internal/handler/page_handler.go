package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/library-portal/internal/models"
	"github.com/noah-isme/library-portal/internal/service"
	"github.com/noah-isme/library-portal/internal/web"
)

// PageOptions toggles optional parts of the listing page.
type PageOptions struct {
	ExportEnabled bool
	LiveEnabled   bool
}

// PageHandler renders the server-side listing and detail pages. Each request
// drives its own page controller, bounded by the request context.
type PageHandler struct {
	catalog *service.CatalogService
	options PageOptions
}

// NewPageHandler constructs the handler.
func NewPageHandler(catalog *service.CatalogService, options PageOptions) *PageHandler {
	return &PageHandler{catalog: catalog, options: options}
}

// Listing renders GET /resources/:type. Query parameters named after schema
// fields set the initial filter state.
func (h *PageHandler) Listing(c *gin.Context) {
	resourceType := c.Param("type")
	controller := service.NewPageController(h.catalog)
	defer controller.Close()

	filters := filtersFromRequest(c, h.catalog.Schema(resourceType))
	state, _ := controller.Navigate(c.Request.Context(), models.PageParams{Type: resourceType, Filters: filters})
	listing := state.Listing

	data := gin.H{
		"Title":       listing.Title,
		"Listing":     listing,
		"Cards":       listing.CardViews(),
		"Session":     sessionFromContext(c),
		"LiveEnabled": h.options.LiveEnabled,
	}
	if h.options.ExportEnabled && len(listing.Schema) > 0 {
		data["Exports"] = newExportLinks(resourceType, listing.Filters)
	}
	c.HTML(pageStatus(state), web.ListingPage, data)
}

type exportLinks struct {
	CSV string
	PDF string
}

func newExportLinks(resourceType string, filters models.FilterState) exportLinks {
	query := encodeFilters(filters)
	if query != "" {
		query = "?" + query
	}
	base := service.ListingURL(resourceType)
	return exportLinks{CSV: base + "/export.csv" + query, PDF: base + "/export.pdf" + query}
}

// Detail renders GET /resources/:type/:id.
func (h *PageHandler) Detail(c *gin.Context) {
	controller := service.NewPageController(h.catalog)
	defer controller.Close()

	state, _ := controller.Navigate(c.Request.Context(), models.PageParams{Type: c.Param("type"), ID: c.Param("id")})
	detail := state.Detail

	data := gin.H{
		"Title":   detail.Title,
		"Detail":  detail,
		"Session": sessionFromContext(c),
	}
	if detail.Card != nil {
		card := detail.Card.Wire()
		data["Card"] = &card
	}
	c.HTML(pageStatus(state), web.DetailPage, data)
}

func pageStatus(state models.PageState) int {
	if state.Phase() == models.PhaseError {
		return http.StatusBadGateway
	}
	return http.StatusOK
}
