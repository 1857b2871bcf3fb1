package middleware

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/library-portal/internal/models"
	"github.com/noah-isme/library-portal/internal/web"
	appErrors "github.com/noah-isme/library-portal/pkg/errors"
	"github.com/noah-isme/library-portal/pkg/logger"
	"github.com/noah-isme/library-portal/pkg/response"
)

// ContextSessionKey is the gin context key storing the resolved *models.Session.
const ContextSessionKey = "currentSession"

// SessionResolver turns a session cookie value into a verified session.
type SessionResolver interface {
	Resolve(ctx context.Context, id string) (*models.Session, error)
}

// RequireSession protects routes by requiring a valid session cookie. Browser
// requests without one are redirected to loginURL when it is set.
func RequireSession(resolver SessionResolver, cookieName, loginURL string) gin.HandlerFunc {
	return func(c *gin.Context) {
		session, err := resolveSession(c, resolver, cookieName)
		if err != nil {
			if loginURL != "" && wantsHTML(c) {
				c.Redirect(http.StatusSeeOther, loginURL)
				c.Abort()
				return
			}
			if errors.Is(err, appErrors.ErrSessionNotFound) {
				err = appErrors.ErrUnauthorized
			}
			Deny(c, err)
			return
		}
		attachSession(c, session)
		c.Next()
	}
}

// OptionalSession attaches the session when present but does not block.
func OptionalSession(resolver SessionResolver, cookieName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if session, err := resolveSession(c, resolver, cookieName); err == nil {
			attachSession(c, session)
		}
		c.Next()
	}
}

// SessionFromContext returns the session attached by the session middleware.
func SessionFromContext(c *gin.Context) *models.Session {
	value, exists := c.Get(ContextSessionKey)
	if !exists {
		return nil
	}
	session, _ := value.(*models.Session)
	return session
}

// Deny aborts the request with err, as an error page for browsers and as the
// JSON envelope otherwise.
func Deny(c *gin.Context, err error) {
	appErr := appErrors.FromError(err)
	if wantsHTML(c) {
		c.HTML(appErr.Status, web.ErrorPage, gin.H{
			"Title":   http.StatusText(appErr.Status),
			"Message": appErr.Message,
			"Session": SessionFromContext(c),
		})
	} else {
		response.Error(c, appErr)
	}
	c.Abort()
}

func resolveSession(c *gin.Context, resolver SessionResolver, cookieName string) (*models.Session, error) {
	if resolver == nil {
		return nil, appErrors.ErrSessionNotFound
	}
	id, err := c.Cookie(cookieName)
	if err != nil || id == "" {
		return nil, appErrors.ErrSessionNotFound
	}
	return resolver.Resolve(c.Request.Context(), id)
}

func attachSession(c *gin.Context, session *models.Session) {
	c.Set(ContextSessionKey, session)
	c.Set(logger.SessionUserKey, session.User.ID)
	c.Request = c.Request.WithContext(models.ContextWithSession(c.Request.Context(), session))
}

func wantsHTML(c *gin.Context) bool {
	return c.NegotiateFormat(gin.MIMEJSON, gin.MIMEHTML) == gin.MIMEHTML
}
