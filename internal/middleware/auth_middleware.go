package middleware

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/ikkim/catalog-backend/pkg/util"
)

// MemberIDKey holds the authenticated member id in the gin context
const MemberIDKey = "member_id"

// RevocationChecker reports whether a token was revoked before it expired.
type RevocationChecker func(ctx context.Context, token string) (bool, error)

type AuthMiddleware struct {
	jwtSecret string
	isRevoked RevocationChecker
}

// NewAuthMiddleware builds the member identity middleware. isRevoked may be
// nil when no revocation store is configured.
func NewAuthMiddleware(jwtSecret string, isRevoked RevocationChecker) *AuthMiddleware {
	return &AuthMiddleware{
		jwtSecret: jwtSecret,
		isRevoked: isRevoked,
	}
}

// OptionalAuthenticate validates JWT token if present (optional)
// - If token is present, valid and not revoked: sets member info in context
// - Otherwise: continues without member info
func (m *AuthMiddleware) OptionalAuthenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		log := GetLoggerFromContext(c)

		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.Next()
			return
		}

		// Extract token from "Bearer <token>"
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" || m.jwtSecret == "" {
			log.Debug("Invalid authorization header format - continuing as guest", map[string]interface{}{
				"path": c.Request.URL.Path,
			})
			c.Next()
			return
		}

		token := parts[1]
		claims, err := util.ValidateToken(token, m.jwtSecret)
		if err != nil {
			log.Debug("Token validation failed - continuing as guest", map[string]interface{}{
				"path":  c.Request.URL.Path,
				"error": err.Error(),
			})
			c.Next()
			return
		}

		if m.isRevoked != nil {
			revoked, err := m.isRevoked(c.Request.Context(), token)
			if err != nil {
				log.Warn("Token revocation check failed - continuing as guest", map[string]interface{}{
					"member_id": claims.UserID,
					"error":     err.Error(),
				})
				c.Next()
				return
			}
			if revoked {
				log.Info("Revoked token presented - continuing as guest", map[string]interface{}{
					"member_id": claims.UserID,
				})
				c.Next()
				return
			}
		}

		c.Set(MemberIDKey, claims.UserID)

		log.Debug("Member authenticated successfully (optional)", map[string]interface{}{
			"member_id": claims.UserID,
			"role":      claims.Role,
		})

		c.Next()
	}
}

// GetMemberID extracts member ID from context
func GetMemberID(c *gin.Context) (uint, bool) {
	memberID, exists := c.Get(MemberIDKey)
	if !exists {
		return 0, false
	}
	id, ok := memberID.(uint)
	return id, ok
}
