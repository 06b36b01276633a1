package response

import (
	"go-hrms/internal/shared/apperror"

	"github.com/gin-gonic/gin"
)

// ValidationError writes a binding or validator failure as a 400 envelope.
func ValidationError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(apperror.MapValidationError(err))
	Error(c, httpErr.Status, apperror.CodeValidation, httpErr.Message, httpErr.Details)
}
