package middleware

import (
	"context"
	"strings"

	"account-service/internal/services"
	"account-service/pkg/logger"

	"github.com/gin-gonic/gin"
)

// AuthMiddleware requires a valid bearer token and stores its claims in the request context.
func AuthMiddleware(issuer *services.TokenIssuer) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractBearer(c)
		claims, err := issuer.ParseToken(token)
		if err != nil {
			abortWithError(c, err, "unauthorized")
			return
		}

		ctx := services.WithClaimsContext(c.Request.Context(), claims)
		ctx = context.WithValue(ctx, logger.UserIdKey, claims.TokenModel.ID)
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

func extractBearer(c *gin.Context) string {
	value := c.GetHeader("Authorization")
	parts := strings.SplitN(value, " ", 2)
	if len(parts) != 2 {
		return ""
	}
	if !strings.EqualFold(parts[0], strings.TrimSpace(services.BearerPrefix)) {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
