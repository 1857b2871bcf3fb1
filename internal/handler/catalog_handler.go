package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/library-portal/internal/dto"
	"github.com/noah-isme/library-portal/internal/middleware"
	"github.com/noah-isme/library-portal/internal/service"
	"github.com/noah-isme/library-portal/pkg/response"
)

// CatalogHandler exposes the listing and detail pages as JSON.
type CatalogHandler struct {
	catalog *service.CatalogService
}

// NewCatalogHandler constructs the handler.
func NewCatalogHandler(catalog *service.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalog: catalog}
}

// Types godoc
// @Summary List resource types
// @Tags Catalog
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /catalog/types [get]
func (h *CatalogHandler) Types(c *gin.Context) {
	registry := h.catalog.Schemas()
	types := registry.Types()
	out := make([]dto.CatalogTypeResponse, 0, len(types))
	for _, t := range types {
		out = append(out, dto.CatalogTypeResponse{
			Type:       t,
			Title:      service.PageTitle(t),
			ListingURL: service.ListingURL(t),
			Fields:     registry.Fields(t),
		})
	}
	response.JSON(c, http.StatusOK, out)
}

// List godoc
// @Summary Filtered listing of a resource type
// @Description Query parameters named after schema fields filter the listing. Unknown types yield cards without fields.
// @Tags Catalog
// @Produce json
// @Param type path string true "Resource type"
// @Success 200 {object} response.Envelope
// @Failure 502 {object} response.Envelope
// @Router /catalog/{type} [get]
func (h *CatalogHandler) List(c *gin.Context) {
	resourceType := c.Param("type")
	records, err := h.catalog.Collection(c.Request.Context(), resourceType)
	if err != nil {
		response.Error(c, err)
		return
	}
	schema := h.catalog.Schema(resourceType)
	view := h.catalog.ListingFromRecords(resourceType, records, filtersFromRequest(c, schema))

	middleware.SetMeta(c, "total", view.Total)
	middleware.SetMeta(c, "visible", len(view.Cards))
	response.JSON(c, http.StatusOK, dto.NewListingResponse(view), middleware.ExtractMeta(c))
}

// Get godoc
// @Summary Resource detail
// @Tags Catalog
// @Produce json
// @Param type path string true "Resource type"
// @Param id path string true "Resource ID"
// @Success 200 {object} response.Envelope
// @Failure 502 {object} response.Envelope
// @Router /catalog/{type}/{id} [get]
func (h *CatalogHandler) Get(c *gin.Context) {
	resourceType, id := c.Param("type"), c.Param("id")
	record, err := h.catalog.Item(c.Request.Context(), resourceType, id)
	if err != nil {
		response.Error(c, err)
		return
	}
	view := h.catalog.DetailFromRecord(resourceType, id, record)
	response.JSON(c, http.StatusOK, dto.NewDetailResponse(view))
}
