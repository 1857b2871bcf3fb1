package handler

import (
	"net/url"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/library-portal/internal/middleware"
	"github.com/noah-isme/library-portal/internal/models"
	"github.com/noah-isme/library-portal/internal/service"
)

func sessionFromContext(c *gin.Context) *models.Session {
	return middleware.SessionFromContext(c)
}

// filtersFromRequest reads the listing filter state of resourceType from the query string.
func filtersFromRequest(c *gin.Context, schema models.ResourceTypeSchema) models.FilterState {
	return service.FiltersFromQuery(schema, c.Query)
}

// encodeFilters renders the active filters back into a query string.
func encodeFilters(filters models.FilterState) string {
	values := url.Values{}
	for name, value := range filters {
		if value != "" {
			values.Set(name, value)
		}
	}
	return values.Encode()
}
