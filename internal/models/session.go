package models

import (
	"context"

	"github.com/golang-jwt/jwt/v5"
)

// UserRole represents the portal roles.
type UserRole string

const (
	RoleAdmin UserRole = "ADMIN"
	RoleUser  UserRole = "USER"
)

// SessionUser is the display identity stored alongside the session token.
type SessionUser struct {
	ID       string   `json:"id" validate:"required"`
	Email    string   `json:"email" validate:"omitempty,email"`
	FullName string   `json:"full_name"`
	Role     UserRole `json:"role" validate:"required,oneof=ADMIN USER"`
}

// SessionBlob is the JSON document the login service writes to the session store.
type SessionBlob struct {
	Token string      `json:"token" validate:"required"`
	User  SessionUser `json:"user"`
}

// Session is the explicit client identity handed to page controllers.
type Session struct {
	ID    string
	Token string
	User  SessionUser
}

// IsAdmin reports whether the session belongs to an administrator.
func (s *Session) IsAdmin() bool {
	return s != nil && s.User.Role == RoleAdmin
}

// SessionClaims is the payload of the session token.
type SessionClaims struct {
	UserID string   `json:"user_id"`
	Role   UserRole `json:"role"`
	Email  string   `json:"email"`
	jwt.RegisteredClaims
}

type sessionContextKey struct{}

// ContextWithSession attaches the session to a request context so that
// downstream calls can forward its token.
func ContextWithSession(ctx context.Context, s *Session) context.Context {
	if s == nil {
		return ctx
	}
	return context.WithValue(ctx, sessionContextKey{}, s)
}

// SessionFromContext returns the session attached to ctx, if any.
func SessionFromContext(ctx context.Context) *Session {
	s, _ := ctx.Value(sessionContextKey{}).(*Session)
	return s
}
