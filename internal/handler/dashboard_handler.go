package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/noah-isme/library-portal/internal/middleware"
	"github.com/noah-isme/library-portal/internal/service"
	"github.com/noah-isme/library-portal/internal/web"
	appErrors "github.com/noah-isme/library-portal/pkg/errors"
)

type sessionEnder interface {
	End(ctx context.Context, id string) error
}

type dashboardType struct {
	Type   string
	Title  string
	URL    string
	Fields int
}

// DashboardHandler renders the signed-in landing pages and handles logout.
type DashboardHandler struct {
	schemas    *service.SchemaRegistry
	sessions   sessionEnder
	metrics    *service.MetricsService
	cookieName string
	loginURL   string
	logger     *zap.Logger
}

// NewDashboardHandler constructs the handler.
func NewDashboardHandler(schemas *service.SchemaRegistry, sessions sessionEnder, metrics *service.MetricsService, cookieName, loginURL string, logger *zap.Logger) *DashboardHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DashboardHandler{
		schemas:    schemas,
		sessions:   sessions,
		metrics:    metrics,
		cookieName: cookieName,
		loginURL:   loginURL,
		logger:     logger,
	}
}

// Admin renders GET /admin/dashboard.
func (h *DashboardHandler) Admin(c *gin.Context) {
	snapshot := h.metrics.Snapshot()
	c.HTML(http.StatusOK, web.DashboardPage, gin.H{
		"Title":   "Admin Dashboard",
		"Session": sessionFromContext(c),
		"Types":   h.types(),
		"Metrics": &snapshot,
	})
}

// User renders GET /user/dashboard.
func (h *DashboardHandler) User(c *gin.Context) {
	c.HTML(http.StatusOK, web.DashboardPage, gin.H{
		"Title":   "Dashboard",
		"Session": sessionFromContext(c),
		"Types":   h.types(),
	})
}

// Logout handles POST /logout: the stored session is deleted and the cookie
// cleared before redirecting to the login page.
func (h *DashboardHandler) Logout(c *gin.Context) {
	if id, err := c.Cookie(h.cookieName); err == nil && id != "" && h.sessions != nil {
		if err := h.sessions.End(c.Request.Context(), id); err != nil {
			middleware.Deny(c, appErrors.FromError(err))
			return
		}
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.cookieName, "", -1, "/", "", c.Request.TLS != nil, true)
	c.Redirect(http.StatusSeeOther, h.loginURL)
}

func (h *DashboardHandler) types() []dashboardType {
	types := h.schemas.Types()
	out := make([]dashboardType, 0, len(types))
	for _, t := range types {
		out = append(out, dashboardType{
			Type:   t,
			Title:  service.PageTitle(t),
			URL:    service.ListingURL(t),
			Fields: len(h.schemas.Fields(t)),
		})
	}
	return out
}
