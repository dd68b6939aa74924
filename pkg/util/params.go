// Package util contains any functions used across the application that don't match
// any other package
package util

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

// PageParams reads the skip/limit pagination query parameters, falling
// back to the first 100 records.
func PageParams(c *gin.Context) (skip, limit int) {
	skip, err := strconv.Atoi(c.DefaultQuery("skip", "0"))
	if err != nil || skip < 0 {
		skip = 0
	}

	limit, err = strconv.Atoi(c.DefaultQuery("limit", "100"))
	if err != nil || limit <= 0 {
		limit = 100
	}

	return skip, limit
}

// IDParam parses an integer path parameter, returning ok=false when it
// is missing or not a number.
func IDParam(c *gin.Context, name string) (int, bool) {
	id, err := strconv.Atoi(c.Param(name))
	if err != nil {
		return 0, false
	}

	return id, true
}
