package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	"booking-board/internal/domain/requester"
	"booking-board/internal/pkg/cookie"
	"booking-board/internal/usecase"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type AuthMiddleware struct {
	tokenValidator usecase.TokenValidator
}

const (
	ctxRequesterIDKey = "requester_id"
	ctxRoleKey        = "requester_role"
)

func NewAuthMiddleware(tokenValidator usecase.TokenValidator) *AuthMiddleware {
	return &AuthMiddleware{
		tokenValidator: tokenValidator,
	}
}

func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		var token string

		token = cookie.GetAccessToken(c)

		if token == "" {
			authHeader := c.GetHeader("Authorization")
			if authHeader != "" && strings.HasPrefix(authHeader, "Bearer ") {
				token = strings.TrimSpace(authHeader[len("Bearer "):])
			}
		}

		if token == "" {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "Access token required",
			})
			c.Abort()
			return
		}

		requesterID, role, err := m.tokenValidator.ValidateToken(token)
		if err != nil {
			slog.Warn("Token validation failed in auth middleware", "error", err.Error())
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "Invalid or expired token",
			})
			c.Abort()
			return
		}

		c.Set(ctxRequesterIDKey, requesterID)
		c.Set(ctxRoleKey, role)
		c.Set("jwt_claims", map[string]any{
			"requester_id": requesterID.String(),
			"role":         string(role),
		})
		c.Next()
	}
}

func GetRequesterID(c *gin.Context) (uuid.UUID, bool) {
	requesterID, exists := c.Get(ctxRequesterIDKey)
	if !exists {
		return uuid.Nil, false
	}

	id, ok := requesterID.(uuid.UUID)
	return id, ok
}

// IsPrivileged derives the override flag from the validated role. Handlers
// thread it into every engine call as an explicit parameter.
func IsPrivileged(c *gin.Context) bool {
	role, exists := c.Get(ctxRoleKey)
	if !exists {
		return false
	}

	r, ok := role.(requester.Role)
	return ok && r.IsPrivileged()
}
