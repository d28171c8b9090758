package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/wavegram/wavegram/internal/service"
)

// SuccessResponse is the uniform success envelope
type SuccessResponse struct {
	Status  string      `json:"status"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Meta    interface{} `json:"meta,omitempty"`
}

// ListMeta accompanies list responses
type ListMeta struct {
	Timestamp string      `json:"timestamp"`
	Version   string      `json:"version"`
	Filters   ListFilters `json:"filters"`
}

// ListFilters echoes the applied query filters
type ListFilters struct {
	Search    *string `json:"search"`
	SortBy    string  `json:"sortBy"`
	SortOrder string  `json:"sortOrder"`
}

func newListMeta(opts service.PostQueryOptions) ListMeta {
	var search *string
	if opts.Search != "" {
		search = &opts.Search
	}
	return ListMeta{
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Version:   "1.0",
		Filters: ListFilters{
			Search:    search,
			SortBy:    opts.SortBy,
			SortOrder: opts.SortOrder,
		},
	}
}

func respondOK(c *gin.Context, message string, data interface{}) {
	c.JSON(http.StatusOK, SuccessResponse{
		Status:  "success",
		Message: message,
		Data:    data,
	})
}

func respondList(c *gin.Context, message string, data interface{}, meta ListMeta) {
	c.JSON(http.StatusOK, SuccessResponse{
		Status:  "success",
		Message: message,
		Data:    data,
		Meta:    meta,
	})
}

func respondCreated(c *gin.Context, message string, data interface{}) {
	c.JSON(http.StatusCreated, SuccessResponse{
		Status:  "success",
		Message: message,
		Data:    data,
	})
}

// bindError normalizes a binding failure: schema violations keep their
// field details for the envelope, anything else (malformed JSON or
// multipart) becomes a plain 400.
func bindError(err error) error {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		return err
	}
	return service.NewBadRequest("Invalid request body")
}
