package helper

import (
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
)

// Sort keys shared by every list endpoint.
const (
	SortLatest = "LATEST"
	SortOldest = "OLDEST"
	SortType   = "TYPE"
)

const (
	DefaultPage = 0
	DefaultSize = 15
	MaxSize     = 200
)

type PageRequest struct {
	Page   int
	Size   int
	SortBy string
}

func (p PageRequest) Offset() int { return p.Page * p.Size }
func (p PageRequest) Limit() int  { return p.Size }

// ParsePageRequest reads ?page= &size= &sortBy= with safe defaults
// (page is zero-based). The sort key is validated by the repository so an
// unknown key fails before any data is fetched.
func ParsePageRequest(c *fiber.Ctx) PageRequest {
	page := atoiDefault(c.Query("page"), DefaultPage)
	if page < 0 {
		page = DefaultPage
	}
	size := atoiDefault(c.Query("size"), DefaultSize)
	if size < 1 {
		size = DefaultSize
	}
	if size > MaxSize {
		size = MaxSize
	}
	sortBy := strings.TrimSpace(c.Query("sortBy", SortLatest))

	return PageRequest{Page: page, Size: size, SortBy: sortBy}
}

func TotalPages(total int64, size int) int {
	if size <= 0 {
		return 0
	}
	return int((total + int64(size) - 1) / int64(size))
}

// QueryInt64 returns nil when the parameter is absent or blank.
func QueryInt64(c *fiber.Ctx, name string) (*int64, error) {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil, ErrInvalidRequest
	}
	return &v, nil
}

func QueryBool(c *fiber.Ctx, name string) (*bool, error) {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return nil, ErrInvalidRequest
	}
	return &v, nil
}

// QueryDate parses yyyy-MM-dd filter params.
func QueryDate(c *fiber.Ctx, name string) (*time.Time, error) {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return nil, ErrInvalidRequest
	}
	return &t, nil
}

func atoiDefault(s string, def int) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return n
}
