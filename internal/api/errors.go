package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/wavegram/wavegram/internal/service"
	"github.com/wavegram/wavegram/pkg/logging"
)

// ErrorResponse is the uniform error envelope
type ErrorResponse struct {
	Status  string       `json:"status"`
	Message string       `json:"message"`
	Errors  []FieldError `json:"errors,omitempty"`
}

// FieldError describes a single schema violation
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ErrorHandler is the centralized boundary that maps errors raised during
// request handling to their status code and the uniform envelope.
// Unrecognized errors become a 500 with a generic message; stack traces
// never reach the client.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		err := c.Errors.Last().Err
		logging.WithRequest(c.Request.Method, c.Request.URL.Path).
			Error("request failed", zap.Error(err))

		status, response := mapError(err)
		c.JSON(status, response)
	}
}

// mapError translates an error into its status code and envelope
func mapError(err error) (int, ErrorResponse) {
	// Schema violations surface the full list of field-level errors
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		fields := make([]FieldError, 0, len(validationErrs))
		for _, fe := range validationErrs {
			fields = append(fields, FieldError{
				Field:   fe.Field(),
				Message: fmt.Sprintf("failed on the '%s' rule", fe.Tag()),
			})
		}
		return http.StatusBadRequest, ErrorResponse{
			Status:  "error",
			Message: "Validation failed",
			Errors:  fields,
		}
	}

	var serviceErr *service.Error
	if errors.As(err, &serviceErr) {
		return serviceErr.Code, ErrorResponse{
			Status:  "error",
			Message: serviceErr.Message,
		}
	}

	return http.StatusInternalServerError, ErrorResponse{
		Status:  "error",
		Message: "Something went wrong",
	}
}

// abortWithError writes the envelope immediately. Used by middleware
// that must stop the chain before handlers run.
func abortWithError(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, ErrorResponse{
		Status:  "error",
		Message: message,
	})
}
