package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/guttosm/stockdash/internal/domain/dto"
)

// ErrorHandler writes a 500 dto.ErrorResponse when a handler recorded errors
// with c.Error but did not write a response itself.
func ErrorHandler(c *gin.Context) {
	c.Next()

	if len(c.Errors) == 0 || c.Writer.Written() {
		return
	}
	c.JSON(http.StatusInternalServerError, dto.NewErrorResponse("Internal server error", c.Errors.Last().Err))
}

// AbortWithError records err on the context, aborts the chain and answers
// with status and a dto.ErrorResponse built from message and err.
func AbortWithError(c *gin.Context, status int, message string, err error) {
	if err != nil {
		_ = c.Error(err)
	}
	c.AbortWithStatusJSON(status, dto.NewErrorResponse(message, err))
}
