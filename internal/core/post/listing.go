package post

import (
	"math"
	"strconv"
	"strings"

	"blogify/internal/core/apperror"
)

const (
	DefaultPage  = 1
	DefaultLimit = 10

	// MaxPageValue bounds page and limit so Offset and the pagination
	// arithmetic cannot overflow.
	MaxPageValue = math.MaxInt32
)

type Sort string

const (
	SortNewest    Sort = "newest"
	SortOldest    Sort = "oldest"
	SortMostLiked Sort = "mostLiked"
)

// ParseSort falls back to newest for empty or unknown values.
func ParseSort(raw string) Sort {
	switch Sort(strings.TrimSpace(raw)) {
	case SortOldest:
		return SortOldest
	case SortMostLiked:
		return SortMostLiked
	default:
		return SortNewest
	}
}

// Page is a validated page/limit pair.
type Page struct {
	Number int
	Limit  int
}

func NewPage(number, limit int) (Page, error) {
	if number < 1 || number > MaxPageValue {
		return Page{}, apperror.Validation("page must be a positive integer up to %d", MaxPageValue)
	}
	if limit < 1 || limit > MaxPageValue {
		return Page{}, apperror.Validation("limit must be a positive integer up to %d", MaxPageValue)
	}
	return Page{Number: number, Limit: limit}, nil
}

// ParsePage reads page and limit as they arrive in a query string. Empty
// values take the defaults.
func ParsePage(rawPage, rawLimit string) (Page, error) {
	number, err := parsePositive(rawPage, DefaultPage, "page")
	if err != nil {
		return Page{}, err
	}
	limit, err := parsePositive(rawLimit, DefaultLimit, "limit")
	if err != nil {
		return Page{}, err
	}
	return NewPage(number, limit)
}

func parsePositive(raw string, def int, name string) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return def, nil
	}
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || n < 1 || n > MaxPageValue {
		return 0, apperror.Validation("%s must be a positive integer up to %d", name, MaxPageValue)
	}
	return int(n), nil
}

func (p Page) Offset() int {
	return (p.Number - 1) * p.Limit
}

type Pagination struct {
	CurrentPage int   `json:"currentPage"`
	TotalPages  int   `json:"totalPages"`
	TotalPosts  int64 `json:"totalPosts"`
	HasNext     bool  `json:"hasNext"`
	HasPrev     bool  `json:"hasPrev"`
}

// Paginate computes the envelope for a page over total matching posts.
func Paginate(p Page, total int64) Pagination {
	limit := int64(p.Limit)
	return Pagination{
		CurrentPage: p.Number,
		TotalPages:  int((total + limit - 1) / limit),
		TotalPosts:  total,
		HasNext:     int64(p.Number)*limit < total,
		HasPrev:     p.Number > 1,
	}
}
