// file: internals/helpers/pagination.go
package helper

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
)

const (
	DefaultPage    = 1
	DefaultPerPage = 10
)

// ParsePage reads a 1-indexed page number. Absent or non-numeric input gives
// DefaultPage, and so does anything below 1.
func ParsePage(raw string) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n < 1 {
		return DefaultPage
	}
	return n
}

// ResolvePage reads ?page= from the request.
func ResolvePage(c *fiber.Ctx) int {
	return ParsePage(c.Query("page"))
}

// Offset of a page for a fixed page size.
func Offset(page, perPage int) int {
	if page < 1 {
		page = DefaultPage
	}
	return (page - 1) * perPage
}
