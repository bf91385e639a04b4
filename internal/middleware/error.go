package middleware

import (
	"errors"

	"github.com/gin-gonic/gin"

	apperrors "fundsync/internal/errors"
	"fundsync/internal/logger"
)

// ErrorHandler returns a Gin middleware that converts errors set on the Gin
// context into the {error:{code,message}} body every route uses. Errors that
// are not AppErrors are logged and reported as INTERNAL_ERROR.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}

		// Last error wins
		err := c.Errors.Last().Err

		var appErr *apperrors.AppError
		if !errors.As(err, &appErr) {
			logger.Get().Errorw("unexpected error",
				"error", err.Error(),
				"path", c.Request.URL.Path,
				"method", c.Request.Method,
			)
			writeAppError(c, apperrors.ErrInternalServer)
			return
		}

		if appErr.Internal != nil {
			logger.Get().Errorw("app error",
				"code", appErr.Code,
				"internal", appErr.Internal.Error(),
				"path", c.Request.URL.Path,
			)
		}
		writeAppError(c, appErr)
	}
}

func writeAppError(c *gin.Context, appErr *apperrors.AppError) {
	c.JSON(appErr.StatusCode, errorBody(appErr))
}

func abortWithAppError(c *gin.Context, appErr *apperrors.AppError) {
	c.AbortWithStatusJSON(appErr.StatusCode, errorBody(appErr))
}

func errorBody(appErr *apperrors.AppError) gin.H {
	return gin.H{"error": gin.H{"code": appErr.Code, "message": appErr.Message}}
}
