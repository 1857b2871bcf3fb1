package handler

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/library-portal/internal/middleware"
	"github.com/noah-isme/library-portal/internal/models"
	"github.com/noah-isme/library-portal/internal/service"
)

type listingExporter interface {
	Export(ctx context.Context, resourceType string, filters models.FilterState, format string) (*service.ExportFile, error)
}

// ExportHandler serves downloadable renditions of a filtered listing.
type ExportHandler struct {
	exports listingExporter
	schemas *service.SchemaRegistry
}

// NewExportHandler constructs the handler.
func NewExportHandler(exports listingExporter, schemas *service.SchemaRegistry) *ExportHandler {
	return &ExportHandler{exports: exports, schemas: schemas}
}

// Export godoc
// @Summary Export a filtered listing
// @Description Served as /resources/{type}/export.csv and /resources/{type}/export.pdf; query parameters filter like the listing page.
// @Tags Catalog
// @Produce text/csv
// @Produce application/pdf
// @Param type path string true "Resource type"
// @Success 200 {file} file
// @Router /resources/{type}/export.csv [get]
func (h *ExportHandler) Export(format string) gin.HandlerFunc {
	return func(c *gin.Context) {
		resourceType := c.Param("type")
		filters := filtersFromRequest(c, h.schemas.Fields(resourceType))

		file, err := h.exports.Export(c.Request.Context(), resourceType, filters, format)
		if err != nil {
			middleware.Deny(c, err)
			return
		}

		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", file.Filename))
		c.Data(http.StatusOK, file.ContentType, file.Body)
	}
}
