package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	"github.com/noah-isme/library-portal/internal/models"
	appErrors "github.com/noah-isme/library-portal/pkg/errors"
)

type sessionStore interface {
	Get(ctx context.Context, id string) (*models.SessionBlob, error)
	Delete(ctx context.Context, id string) error
}

// SessionService turns a session cookie into a typed, verified Session.
type SessionService struct {
	store     sessionStore
	validator *validator.Validate
	secret    []byte
	logger    *zap.Logger
}

// NewSessionService constructs a session service verifying tokens with secret.
func NewSessionService(store sessionStore, validate *validator.Validate, secret string, logger *zap.Logger) *SessionService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SessionService{store: store, validator: validate, secret: []byte(secret), logger: logger}
}

// Resolve loads the session blob for id, validates its shape and verifies
// that its token was issued for the stored user.
func (s *SessionService) Resolve(ctx context.Context, id string) (*models.Session, error) {
	if id == "" {
		return nil, appErrors.ErrSessionNotFound
	}

	blob, err := s.store.Get(ctx, id)
	if err != nil {
		if errors.Is(err, appErrors.ErrSessionNotFound) {
			return nil, err
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load session")
	}

	if err := s.validator.Struct(blob); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrUnauthorized.Code, appErrors.ErrUnauthorized.Status, "invalid session")
	}

	claims, err := s.ValidateToken(blob.Token)
	if err != nil {
		return nil, err
	}
	if claims.UserID != blob.User.ID {
		s.logger.Warn("session token does not match stored user", zap.String("session_id", id))
		return nil, appErrors.Clone(appErrors.ErrUnauthorized, "session token mismatch")
	}

	user := blob.User
	if claims.Role != "" {
		user.Role = claims.Role
	}
	return &models.Session{ID: id, Token: blob.Token, User: user}, nil
}

// ValidateToken parses an HS256 session token.
func (s *SessionService) ValidateToken(tokenString string) (*models.SessionClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &models.SessionClaims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrUnauthorized.Code, appErrors.ErrUnauthorized.Status, "invalid token")
	}

	claims, ok := token.Claims.(*models.SessionClaims)
	if !ok || !token.Valid {
		return nil, appErrors.Clone(appErrors.ErrUnauthorized, "invalid token claims")
	}
	return claims, nil
}

// End deletes the stored session.
func (s *SessionService) End(ctx context.Context, id string) error {
	if err := s.store.Delete(ctx, id); err != nil {
		s.logger.Warn("failed to delete session", zap.String("session_id", id), zap.Error(err))
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to end session")
	}
	return nil
}
