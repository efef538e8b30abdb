package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/guttosm/salesclean/internal/domain/dto"
	"github.com/guttosm/salesclean/internal/logger"
)

// ErrorHandler turns errors attached with c.Error into a JSON response.
//
// Behavior:
//   - Runs after the handler chain.
//   - Does nothing when no error was attached or a body was already written.
//   - A dto.ErrorResponse keeps its message; anything else is reported as an
//     internal error with the error text in error_details.
//
// Usage:
//
//	router.Use(middleware.ErrorHandler)
//	...
//	if err != nil {
//	    _ = c.Error(err)
//	    return
//	}
func ErrorHandler(c *gin.Context) {
	c.Next()

	if len(c.Errors) == 0 || c.Writer.Written() {
		return
	}

	err := c.Errors.Last().Err
	rid, _ := c.Get(RequestIDKey)
	logger.L().Error().
		Str("request_id", toString(rid)).
		Str("path", c.Request.URL.Path).
		Err(err).
		Msg("request failed")

	var resp dto.ErrorResponse
	if !errors.As(err, &resp) {
		resp = dto.NewErrorResponse("Internal server error", err)
	}
	c.AbortWithStatusJSON(http.StatusInternalServerError, resp)
}

// AbortWithError stops the chain and writes a dto.ErrorResponse with status.
func AbortWithError(c *gin.Context, status int, message string, err error) {
	c.AbortWithStatusJSON(status, dto.NewErrorResponse(message, err))
}
