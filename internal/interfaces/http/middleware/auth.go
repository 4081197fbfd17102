package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"talentika/internal/infrastructure/auth"
	"talentika/internal/shared/authorization"
	"talentika/internal/shared/constants"
	"talentika/internal/shared/logger"
	"talentika/internal/shared/utils"
)

type tokenVerifier interface {
	Verify(token string) (*auth.Claims, error)
}

// AuthMiddleware accepts bearer access tokens issued by the identity provider.
type AuthMiddleware struct {
	verifier tokenVerifier
	logger   logger.Interface
}

func NewAuthMiddleware(verifier tokenVerifier, logger logger.Interface) *AuthMiddleware {
	return &AuthMiddleware{
		verifier: verifier,
		logger:   logger,
	}
}

// RejectFunc writes the response for a request a middleware refuses. Endpoints with
// their own response contract pass one in place of the standard envelope.
type RejectFunc func(c *gin.Context, status int, message string)

func rejectWithEnvelope(c *gin.Context, status int, message string) {
	utils.ErrorResponse(c, status, message)
}

func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return m.RequireAuthWith(rejectWithEnvelope)
}

func (m *AuthMiddleware) RequireAuthWith(reject RejectFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader(constants.HeaderAuthorization)
		if authHeader == "" {
			reject(c, http.StatusUnauthorized, "missing authorization token")
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
			reject(c, http.StatusUnauthorized, "invalid authorization header format")
			c.Abort()
			return
		}

		claims, err := m.verifier.Verify(parts[1])
		if err != nil {
			m.logger.Warnw("failed to verify token", "error", err)
			reject(c, http.StatusUnauthorized, "invalid or expired token")
			c.Abort()
			return
		}

		c.Set(constants.ContextKeyUserID, claims.Subject)
		c.Set(constants.ContextKeyUserRole, string(claims.UserRole()))

		c.Next()
	}
}

// GetUserID returns the authenticated subject set by RequireAuth.
func GetUserID(c *gin.Context) (string, bool) {
	v, ok := c.Get(constants.ContextKeyUserID)
	if !ok {
		return "", false
	}
	userID, ok := v.(string)
	return userID, ok && userID != ""
}

func GetUserRole(c *gin.Context) authorization.UserRole {
	return authorization.ParseUserRole(c.GetString(constants.ContextKeyUserRole))
}
