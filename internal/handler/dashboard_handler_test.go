package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/library-portal/internal/middleware"
	"github.com/noah-isme/library-portal/internal/models"
	"github.com/noah-isme/library-portal/internal/service"
)

type fakeSessions struct {
	sessions map[string]*models.Session
	ended    []string
	endErr   error
}

func (f *fakeSessions) Resolve(ctx context.Context, id string) (*models.Session, error) {
	s, ok := f.sessions[id]
	if !ok {
		return nil, errors.New("no session")
	}
	return s, nil
}

func (f *fakeSessions) End(ctx context.Context, id string) error {
	f.ended = append(f.ended, id)
	return f.endErr
}

func newDashboardRouter(t *testing.T, sessions *fakeSessions) *gin.Engine {
	r := newHTMLRouter(t)
	h := NewDashboardHandler(service.DefaultSchemaRegistry(), sessions, service.NewMetricsService(), "portal_session", "/login", nil)
	requireSession := middleware.RequireSession(sessions, "portal_session", "/login")
	r.GET("/admin/dashboard", requireSession, middleware.RequireRoles(models.RoleAdmin), h.Admin)
	r.GET("/user/dashboard", requireSession, h.User)
	r.POST("/logout", h.Logout)
	return r
}

func dashboardSessions() *fakeSessions {
	return &fakeSessions{sessions: map[string]*models.Session{
		"admin": {ID: "admin", User: models.SessionUser{ID: "u1", FullName: "Grace Admin", Role: models.RoleAdmin}},
		"user":  {ID: "user", User: models.SessionUser{ID: "u2", Email: "reader@example.edu", Role: models.RoleUser}},
	}}
}

func browserRequest(method, target, cookie string) *http.Request {
	req := httptest.NewRequest(method, target, nil)
	req.Header.Set("Accept", "text/html")
	if cookie != "" {
		req.AddCookie(&http.Cookie{Name: "portal_session", Value: cookie})
	}
	return req
}

func TestAdminDashboardRendersForAdmin(t *testing.T) {
	r := newDashboardRouter(t, dashboardSessions())

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, browserRequest(http.MethodGet, "/admin/dashboard", "admin"))

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "Admin Dashboard")
	assert.Contains(t, body, "Grace Admin")
	assert.Contains(t, body, `href="/resources/research-papers"`)
	assert.Contains(t, body, "Backend calls")
}

func TestAdminDashboardForbiddenForUser(t *testing.T) {
	r := newDashboardRouter(t, dashboardSessions())

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, browserRequest(http.MethodGet, "/admin/dashboard", "user"))

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Contains(t, rec.Body.String(), "forbidden")
}

func TestDashboardRedirectsWithoutSession(t *testing.T) {
	r := newDashboardRouter(t, dashboardSessions())

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, browserRequest(http.MethodGet, "/user/dashboard", ""))

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/login", rec.Header().Get("Location"))
}

func TestUserDashboard(t *testing.T) {
	r := newDashboardRouter(t, dashboardSessions())

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, browserRequest(http.MethodGet, "/user/dashboard", "user"))

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "reader@example.edu")
	assert.NotContains(t, body, "Backend calls")
}

func TestLogoutEndsSessionAndClearsCookie(t *testing.T) {
	sessions := dashboardSessions()
	r := newDashboardRouter(t, sessions)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, browserRequest(http.MethodPost, "/logout", "user"))

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/login", rec.Header().Get("Location"))
	assert.Equal(t, []string{"user"}, sessions.ended)
	assert.Contains(t, rec.Header().Get("Set-Cookie"), "portal_session=;")
	assert.Contains(t, rec.Header().Get("Set-Cookie"), "Max-Age=0")
}
