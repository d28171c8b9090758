package service

import (
	"strconv"
	"strings"
)

// Defaults and bounds for post list queries
const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100
)

// sortColumns whitelists the sortable fields and maps them to columns.
// Sorting is never interpolated from raw client input.
var sortColumns = map[string]string{
	"createdAt": "created_at",
	"updatedAt": "updated_at",
	"title":     "title",
}

// PostQueryOptions are the validated options for post list queries
type PostQueryOptions struct {
	Page      int
	Limit     int
	SortBy    string
	SortOrder string
	Search    string
}

// SortColumn returns the database column for the validated SortBy field
func (o PostQueryOptions) SortColumn() string {
	return sortColumns[o.SortBy]
}

// ParsePostQueryOptions validates raw query parameters and applies
// defaults. Any violation fails with a 400 error.
func ParsePostQueryOptions(page, limit, sortBy, sortOrder, search string) (PostQueryOptions, error) {
	opts := PostQueryOptions{
		Page:      DefaultPage,
		Limit:     DefaultLimit,
		SortBy:    "createdAt",
		SortOrder: "DESC",
		Search:    search,
	}

	if page != "" {
		n, err := strconv.Atoi(page)
		if err != nil || n < 1 {
			return opts, NewBadRequest("page must be a positive integer")
		}
		opts.Page = n
	}

	if limit != "" {
		n, err := strconv.Atoi(limit)
		if err != nil || n < 1 || n > MaxLimit {
			return opts, NewBadRequest("limit must be an integer between 1 and 100")
		}
		opts.Limit = n
	}

	if sortBy != "" {
		if _, ok := sortColumns[sortBy]; !ok {
			return opts, NewBadRequest("sortBy must be one of createdAt, updatedAt, title")
		}
		opts.SortBy = sortBy
	}

	if sortOrder != "" {
		upper := strings.ToUpper(sortOrder)
		if upper != "ASC" && upper != "DESC" {
			return opts, NewBadRequest("sortOrder must be ASC or DESC")
		}
		opts.SortOrder = upper
	}

	return opts, nil
}
