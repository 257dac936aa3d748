package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/kazihub-inc/kazihub/internal/infrastructure/auth"
	"github.com/kazihub-inc/kazihub/internal/shared/constants"
	"github.com/kazihub-inc/kazihub/internal/shared/logger"
	"github.com/kazihub-inc/kazihub/internal/shared/utils"
)

type AuthMiddleware struct {
	verifier *auth.JWTVerifier
	logger   logger.Interface
}

func NewAuthMiddleware(verifier *auth.JWTVerifier, logger logger.Interface) *AuthMiddleware {
	return &AuthMiddleware{
		verifier: verifier,
		logger:   logger,
	}
}

func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
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

		claims, err := m.verifier.Verify(parts[1])
		if err != nil {
			m.logger.Warnw("failed to verify token", "error", err)
			utils.ErrorResponse(c, http.StatusUnauthorized, "invalid or expired token")
			c.Abort()
			return
		}

		c.Set(constants.ContextKeyAccountEmail, claims.Email)

		c.Next()
	}
}

// AccountEmail extracts the authenticated account email from the context.
// Returns an empty string when the request was not authenticated.
func AccountEmail(c *gin.Context) string {
	email, _ := c.Get(constants.ContextKeyAccountEmail)
	s, _ := email.(string)
	return s
}
