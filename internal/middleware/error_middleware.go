package middleware

import (
	"net/http"

	"account-service/internal/services"
	"account-service/internal/transport/httpdto"
	"account-service/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Recovery turns a panic into the generic 500 envelope.
func Recovery(l *logger.Logger) gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		if l != nil {
			l.ErrorCtx(c.Request.Context(), "panic recovered", zap.Any("panic", recovered), zap.String("path", c.Request.URL.Path))
		}
		c.AbortWithStatusJSON(http.StatusInternalServerError,
			httpdto.NewErrorResponse(http.StatusText(http.StatusInternalServerError)))
	})
}

// abortWithError stops the chain with the status err maps to.
func abortWithError(c *gin.Context, err error, message string) {
	c.AbortWithStatusJSON(services.HTTPStatus(err), httpdto.NewErrorResponse(message))
}
