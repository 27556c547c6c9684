package listing

import (
	"math"
	"strconv"
)

const (
	DefaultLimit = 10
	MaxLimit     = 100
)

// Page is a 1-based page request.
type Page struct {
	Number int
	Limit  int
}

// ParsePage reads page and limit query values. Missing or invalid values fall
// back to page 1 and defaultLimit; limit is capped at MaxLimit. The page number
// is capped so that Offset cannot overflow; such a page is past any real data
// and comes back empty.
func ParsePage(page, limit string, defaultLimit int) Page {
	if defaultLimit <= 0 {
		defaultLimit = DefaultLimit
	}
	p := Page{Number: 1, Limit: defaultLimit}
	if n, err := strconv.Atoi(page); err == nil && n >= 1 {
		p.Number = n
	}
	if n, err := strconv.Atoi(limit); err == nil && n >= 1 {
		p.Limit = min(n, MaxLimit)
	}
	p.Number = min(p.Number, maxPage(p.Limit))
	return p
}

// maxPage is the largest page number whose offset fits in an int.
func maxPage(limit int) int {
	return math.MaxInt/limit + 1
}

// Offset is the number of items before this page.
func (p Page) Offset() int {
	return (p.Number - 1) * p.Limit
}

// TotalPages is ceil(total / limit).
func (p Page) TotalPages(total int64) int {
	if total <= 0 || p.Limit <= 0 {
		return 0
	}
	return int((total + int64(p.Limit) - 1) / int64(p.Limit))
}

// Slice returns the items of page p from an already ordered list. A page past
// the end is empty, not an error.
func Slice[T any](items []T, p Page) []T {
	start := p.Offset()
	if start < 0 || start >= len(items) {
		return []T{}
	}
	end := min(start+p.Limit, len(items))
	return items[start:end]
}

// Result is one page of decorated job offers.
type Result struct {
	JobOffers   []Summary `json:"job_offers"`
	TotalPages  int       `json:"total_pages"`
	CurrentPage int       `json:"current_page"`
}

// EmptyResult is the answer for a query known to match nothing.
func EmptyResult(p Page) Result {
	return Result{JobOffers: []Summary{}, TotalPages: 0, CurrentPage: p.Number}
}
