package middleware

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/javanauta/user-directory/internal/domain/user"
	"github.com/javanauta/user-directory/internal/infrastructure/persistence/redis"
	apperrors "github.com/javanauta/user-directory/pkg/errors"
	"github.com/javanauta/user-directory/pkg/jwt"
	"github.com/javanauta/user-directory/pkg/response"
)

const (
	ctxUserIDKey = "user_id"
	ctxEmailKey  = "email"
	ctxRoleKey   = "role"
)

// AuthMiddleware authenticates requests from the Authorization header and
// makes authorization decisions before any handler reaches the core. The
// principal travels in the request context, never in ambient state.
type AuthMiddleware struct {
	jwtManager   *jwt.Manager
	sessionStore *redis.SessionStore
}

// NewAuthMiddleware creates the middleware.
func NewAuthMiddleware(jwtManager *jwt.Manager, sessionStore *redis.SessionStore) *AuthMiddleware {
	return &AuthMiddleware{
		jwtManager:   jwtManager,
		sessionStore: sessionStore,
	}
}

// RequireAuth rejects requests without a valid, non-revoked bearer token and
// injects the principal's identity into the context.
func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := m.authenticate(c)
		if !ok {
			return
		}

		c.Set(ctxUserIDKey, claims.UserID)
		c.Set(ctxEmailKey, claims.Email)
		c.Set(ctxRoleKey, claims.Role)

		c.Next()
	}
}

// RequireAdminOrOwnerEmail guards endpoints addressed by the email query
// parameter: only an administrator or the owner of that email may proceed.
func (m *AuthMiddleware) RequireAdminOrOwnerEmail() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := m.authenticate(c)
		if !ok {
			return
		}

		email := c.Query("email")
		if claims.Role != string(user.RoleAdministrator) && claims.Email != email {
			response.Error(c, apperrors.ErrForbidden)
			c.Abort()
			return
		}

		c.Set(ctxUserIDKey, claims.UserID)
		c.Set(ctxEmailKey, claims.Email)
		c.Set(ctxRoleKey, claims.Role)

		c.Next()
	}
}

// RequireAdminOrOwnerID guards endpoints addressed by the id path
// parameter: only an administrator or the user with that id may proceed.
// An unparseable id falls through to the handler, which reports the 400.
func (m *AuthMiddleware) RequireAdminOrOwnerID() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := m.authenticate(c)
		if !ok {
			return
		}

		if id, err := strconv.ParseUint(c.Param("id"), 10, 64); err == nil {
			if claims.Role != string(user.RoleAdministrator) && claims.UserID != uint(id) {
				response.Error(c, apperrors.ErrForbidden)
				c.Abort()
				return
			}
		}

		c.Set(ctxUserIDKey, claims.UserID)
		c.Set(ctxEmailKey, claims.Email)
		c.Set(ctxRoleKey, claims.Role)

		c.Next()
	}
}

// authenticate extracts and verifies the bearer token, checking the
// blacklist so logged-out tokens are refused. On failure it writes the
// response and aborts.
func (m *AuthMiddleware) authenticate(c *gin.Context) (*jwt.Claims, bool) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		response.Error(c, apperrors.ErrUnauthorized)
		c.Abort()
		return nil, false
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" {
		response.Error(c, apperrors.ErrInvalidToken)
		c.Abort()
		return nil, false
	}

	tokenString := parts[1]

	isBlacklisted, err := m.sessionStore.IsInBlacklist(c.Request.Context(), tokenString)
	if err != nil {
		response.Error(c, err)
		c.Abort()
		return nil, false
	}
	if isBlacklisted {
		response.Error(c, apperrors.ErrTokenExpired)
		c.Abort()
		return nil, false
	}

	claims, err := m.jwtManager.ParseToken(tokenString)
	if err != nil {
		response.Error(c, err)
		c.Abort()
		return nil, false
	}

	return claims, true
}

// GetUserID returns the authenticated principal's id from the context.
func GetUserID(c *gin.Context) uint {
	if v, ok := c.Get(ctxUserIDKey); ok {
		if id, ok := v.(uint); ok {
			return id
		}
	}
	return 0
}

// GetEmail returns the authenticated principal's email from the context.
func GetEmail(c *gin.Context) string {
	return c.GetString(ctxEmailKey)
}

// GetRole returns the authenticated principal's role from the context.
func GetRole(c *gin.Context) string {
	return c.GetString(ctxRoleKey)
}

// GetAccessToken returns the raw bearer token from the request header.
func GetAccessToken(c *gin.Context) string {
	parts := strings.SplitN(c.GetHeader("Authorization"), " ", 2)
	if len(parts) != 2 {
		return ""
	}
	return parts[1]
}
