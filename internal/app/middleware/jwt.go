package middleware

import (
	"strings"

	"census-otp-service/internal/domain/services"
	"census-otp-service/internal/error/code"
	"census-otp-service/internal/error/response"

	"github.com/gin-gonic/gin"
)

// Context keys set by AuthenticateAccount.
const (
	ContextUserID = "userID"
	ContextClaims = "claims"
)

// extractToken strips an optional "Bearer " prefix
func extractToken(authHeader string) string {
	if len(authHeader) > 7 && strings.EqualFold(authHeader[:7], "Bearer ") {
		return authHeader[7:]
	}
	return authHeader
}

// AuthenticateAccount requires a valid login token
func AuthenticateAccount(jwtService services.InterfaceJWTService) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.AbortWithMessage(c, code.ErrTokenInvalid, "Authorization header is required")
			return
		}

		claims, err := jwtService.ExtractClaims(extractToken(authHeader))
		if err != nil {
			response.AbortWithMessage(c, code.ErrTokenInvalid, "Invalid token")
			return
		}
		if claims.Role != services.RoleAccount {
			response.AbortWithMessage(c, code.ErrTokenInvalid, "Insufficient permissions")
			return
		}

		c.Set(ContextUserID, claims.UserID)
		c.Set(ContextClaims, claims)
		c.Next()
	}
}
