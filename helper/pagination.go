package helper

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"docman/models"
)

const (
	DefaultLimit = 100
	DefaultOrder = "id asc"
)

var (
	nonDigit    = regexp.MustCompile(`[^0-9]`)
	nonAlphaNum = regexp.MustCompile(`[^a-zA-Z0-9]`)
)

// PageParams is the limit/offset window of a list query.
type PageParams struct {
	Limit  int
	Offset int
	Order  string
	// Page is the page number asked for, 0 when absent.
	Page int
}

// PageMeta describes where a page sits in the full result set.
type PageMeta struct {
	CurrentPage  int   `json:"currentPage"`
	TotalPages   int   `json:"totalPages"`
	TotalRecords int64 `json:"totalRecords"`
	PerPage      int   `json:"perPage"`
}

// IsBadPageQuery reports whether any of the values contains something other
// than digits. Empty values are fine.
func IsBadPageQuery(values ...string) bool {
	for _, v := range values {
		if nonDigit.MatchString(v) {
			return true
		}
	}
	return false
}

// DerivePageParams turns the page, limit and offset query values into a
// window. page wins over offset: offset = limit * (page - 1).
func DerivePageParams(page, limit, offset string) (PageParams, error) {
	if IsBadPageQuery(page, limit, offset) {
		return PageParams{}, models.ErrBadPageQuery
	}

	p := PageParams{Limit: DefaultLimit, Order: DefaultOrder}

	n, err := atoi(limit)
	if err != nil {
		return PageParams{}, models.ErrBadPageQuery
	}
	if n > 0 {
		p.Limit = n
	}

	if p.Offset, err = atoi(offset); err != nil {
		return PageParams{}, models.ErrBadPageQuery
	}

	if page != "" {
		if p.Page, err = atoi(page); err != nil {
			return PageParams{}, models.ErrBadPageQuery
		}
		if p.Page < 1 {
			p.Page = 1
		}
		if p.Page-1 > math.MaxInt/p.Limit {
			return PageParams{}, models.ErrBadPageQuery
		}
		p.Offset = p.Limit * (p.Page - 1)
	}

	return p, nil
}

func atoi(s string) (int, error) {
	if s == "" {
		return 0, nil
	}
	return strconv.Atoi(s)
}

// DeriveMeta computes the page position of a list result of count rows.
func DeriveMeta(count int64, p PageParams) PageMeta {
	limit := p.Limit
	if limit <= 0 {
		limit = DefaultLimit
	}

	meta := PageMeta{
		TotalPages:   int(math.Ceil(float64(count) / float64(limit))),
		TotalRecords: count,
		PerPage:      limit,
	}

	switch {
	case p.Offset > 0:
		meta.CurrentPage = p.Offset/limit + 1
	case p.Page > 0:
		meta.CurrentPage = p.Page
	default:
		meta.CurrentPage = 1
	}
	return meta
}

// CleanSearchTerm drops every character that is not an ASCII letter or digit.
func CleanSearchTerm(term string) string {
	return nonAlphaNum.ReplaceAllString(term, "")
}

// LikePattern builds a lower-cased substring pattern for LOWER(col) LIKE ?.
// The term must already be cleaned so it cannot carry LIKE wildcards.
func LikePattern(term string) string {
	return "%" + strings.ToLower(term) + "%"
}
