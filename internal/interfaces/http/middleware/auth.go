package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"lineup/internal/infrastructure/auth"
	"lineup/internal/shared/logger"
	"lineup/internal/shared/utils"
)

const (
	ContextKeyStaffID   = "staff_id"
	ContextKeyStaffRole = "staff_role"
)

// AuthMiddleware guards the staff-side queue operations. Holder-facing
// endpoints (issue, status, cancel own ticket) stay open.
type AuthMiddleware struct {
	jwtService *auth.JWTService
	logger     logger.Interface
}

func NewAuthMiddleware(jwtService *auth.JWTService, logger logger.Interface) *AuthMiddleware {
	return &AuthMiddleware{
		jwtService: jwtService,
		logger:     logger,
	}
}

func (m *AuthMiddleware) RequireStaff() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			utils.ErrorResponse(c, http.StatusUnauthorized, "missing authorization token")
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			utils.ErrorResponse(c, http.StatusUnauthorized, "invalid authorization header format")
			c.Abort()
			return
		}

		claims, err := m.jwtService.Verify(parts[1])
		if err != nil {
			m.logger.Warnw("failed to verify token", "error", err)
			utils.ErrorResponse(c, http.StatusUnauthorized, "invalid or expired token")
			c.Abort()
			return
		}

		if claims.TokenType != auth.TokenTypeAccess {
			utils.ErrorResponse(c, http.StatusUnauthorized, "invalid token type")
			c.Abort()
			return
		}

		c.Set(ContextKeyStaffID, claims.StaffID)
		c.Set(ContextKeyStaffRole, string(claims.Role))

		c.Next()
	}
}

// OptionalStaff parses the Authorization header when present but never
// rejects the request. Used on holder-facing endpoints where a staff token
// only enriches the audit trail.
func (m *AuthMiddleware) OptionalStaff() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.Next()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.Next()
			return
		}

		claims, err := m.jwtService.Verify(parts[1])
		if err != nil || claims.TokenType != auth.TokenTypeAccess {
			c.Next()
			return
		}

		c.Set(ContextKeyStaffID, claims.StaffID)
		c.Set(ContextKeyStaffRole, string(claims.Role))

		c.Next()
	}
}

// StaffID returns the authenticated staff ID from the request context.
func StaffID(c *gin.Context) (uint, bool) {
	v, ok := c.Get(ContextKeyStaffID)
	if !ok {
		return 0, false
	}
	id, ok := v.(uint)
	return id, ok
}
