// Package handler wires HTTP verbs to the service layer. Handlers parse
// and validate input, consult permission predicates, and translate
// service sentinel errors into status codes.
package handler

import (
	"errors"
	"strconv"

	"reviewhub/internal/validator"

	"github.com/gin-gonic/gin"
)

// pageParams reads ?page= and ?page_size= with the usual bounds.
func pageParams(c *gin.Context) (page, pageSize int) {
	page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ = strconv.Atoi(c.DefaultQuery("page_size", "20"))

	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}
	return page, pageSize
}

// limitOffsetParams reads ?limit= and ?offset= for the user collection.
func limitOffsetParams(c *gin.Context) (limit, offset int) {
	limit, _ = strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ = strconv.Atoi(c.DefaultQuery("offset", "0"))

	if limit < 1 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}

// isValidationError reports whether err is a domain validation failure
// that should surface as a 400 with its message.
func isValidationError(err error) bool {
	return errors.Is(err, validator.ErrUsernameMe) ||
		errors.Is(err, validator.ErrUsernameChars) ||
		errors.Is(err, validator.ErrFutureYear) ||
		errors.Is(err, validator.ErrEmptyGenre)
}
