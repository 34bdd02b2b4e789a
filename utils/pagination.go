package utils

import (
	"net/http"
	"strconv"
)

const DefaultPageSize = 5

// ParsePagination reads the page/limit query params used by recipe and
// subscription listings.
func ParsePagination(r *http.Request) (page, limit int) {
	page, err := strconv.Atoi(r.URL.Query().Get("page"))
	if err != nil || page < 1 {
		page = 1
	}
	limit, err = strconv.Atoi(r.URL.Query().Get("limit"))
	if err != nil || limit < 1 {
		limit = DefaultPageSize
	}
	return page, limit
}
