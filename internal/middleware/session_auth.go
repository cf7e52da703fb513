package middleware

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/shiptrain/portal/internal/models"
	"github.com/shiptrain/portal/pkg/jwt"
	"github.com/shiptrain/portal/pkg/logger"
)

// SessionContextKey is the key used to store the session in the gin context
const SessionContextKey = "portal_session"

const (
	msgNotLoggedIn     = "not logged in or session expired"
	msgInvalidSession  = "session is invalid or has expired"
	msgSessionExpired  = "session expired, please log in again"
	msgAccessForbidden = "access denied"
)

// SessionResolver turns a presented credential into a session
type SessionResolver interface {
	ValidateSession(ctx context.Context, sessionID string) (*models.Session, error)
	ValidateToken(ctx context.Context, token string) (*models.Session, error)
}

// SessionIDAuth requires a live server-side session id in header
func SessionIDAuth(resolver SessionResolver, header string) gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID := c.GetHeader(header)
		if sessionID == "" {
			unauthorized(c, fmt.Errorf("missing %s header", header), msgNotLoggedIn)
			return
		}

		session, err := resolver.ValidateSession(c.Request.Context(), sessionID)
		if err != nil {
			unauthorized(c, err, msgInvalidSession)
			return
		}

		c.Set(SessionContextKey, session)
		c.Next()
	}
}

// BearerAuth requires a valid bearer token in the Authorization header
func BearerAuth(resolver SessionResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c.GetHeader("Authorization"))
		if !ok {
			unauthorized(c, fmt.Errorf("missing bearer token"), msgNotLoggedIn)
			return
		}

		session, err := resolver.ValidateToken(c.Request.Context(), token)
		if err != nil {
			if errors.Is(err, jwt.ErrExpiredToken) {
				unauthorized(c, err, msgSessionExpired)
			} else {
				unauthorized(c, err, msgInvalidSession)
			}
			return
		}

		c.Set(SessionContextKey, session)
		c.Next()
	}
}

// RequireRole admits only sessions whose role is one of roles. It must run after
// SessionIDAuth or BearerAuth.
func RequireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		session, ok := GetSession(c)
		if !ok {
			_ = c.Error(fmt.Errorf("no session in context")) //nolint:errcheck
			abortWithEnvelope(c, http.StatusForbidden, msgAccessForbidden)
			return
		}

		for _, role := range roles {
			if session.Role == role {
				c.Next()
				return
			}
		}

		logger.Warn("Role not permitted",
			zap.String("path", c.Request.URL.Path),
			zap.String("role", session.Role),
			zap.Strings("allowed", roles))
		_ = c.Error(fmt.Errorf("role %q not permitted", session.Role)) //nolint:errcheck
		abortWithEnvelope(c, http.StatusForbidden, msgAccessForbidden)
	}
}

// GetSession retrieves the session set by the auth middleware
func GetSession(c *gin.Context) (*models.Session, bool) {
	v, exists := c.Get(SessionContextKey)
	if !exists {
		return nil, false
	}
	session, ok := v.(*models.Session)
	return session, ok && session != nil
}

func bearerToken(header string) (string, bool) {
	const prefix = "Bearer "
	if len(header) <= len(prefix) || !strings.EqualFold(header[:len(prefix)], prefix) {
		return "", false
	}
	token := strings.TrimSpace(header[len(prefix):])
	return token, token != ""
}

func unauthorized(c *gin.Context, err error, message string) {
	logger.Warn("Unauthenticated request",
		zap.String("path", c.Request.URL.Path),
		zap.String("client_ip", c.ClientIP()),
		zap.Error(err))
	_ = c.Error(err) //nolint:errcheck
	abortWithEnvelope(c, http.StatusUnauthorized, message)
}

// abortWithEnvelope ends the chain with HTTP status and the same code in the envelope
func abortWithEnvelope(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, gin.H{
		"code":    status,
		"message": message,
		"data":    nil,
	})
}
