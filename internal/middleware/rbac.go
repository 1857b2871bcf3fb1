package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/noah-isme/library-portal/internal/models"
	appErrors "github.com/noah-isme/library-portal/pkg/errors"
)

// RequireRoles enforces that the session user holds one of roles. It must run
// after RequireSession.
func RequireRoles(roles ...models.UserRole) gin.HandlerFunc {
	allowed := make(map[models.UserRole]struct{}, len(roles))
	for _, r := range roles {
		allowed[r] = struct{}{}
	}
	return func(c *gin.Context) {
		session := SessionFromContext(c)
		if session == nil {
			Deny(c, appErrors.ErrUnauthorized)
			return
		}
		if _, ok := allowed[session.User.Role]; !ok {
			Deny(c, appErrors.ErrForbidden)
			return
		}
		c.Next()
	}
}
