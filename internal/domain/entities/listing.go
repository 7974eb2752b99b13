package entities

import "strings"

// PageSize is the fixed number of rows requested per listing page.
const PageSize = 50

// ListingQuery is the input of a "sisalist" fetch.
//
// Only Page and SearchTerm change over the lifetime of a listing.
type ListingQuery struct {
	Page       int
	PageSize   int
	SearchTerm string
}

func NewListingQuery() ListingQuery {
	return ListingQuery{Page: 1, PageSize: PageSize}
}

// WithSearch returns the query for a new search term. The term is trimmed and
// the page goes back to 1.
func (q ListingQuery) WithSearch(term string) ListingQuery {
	q.SearchTerm = strings.TrimSpace(term)
	q.Page = 1
	return q
}

// WithPage returns the query moved to page n. No clamping: the view disables
// the controls at the boundaries.
func (q ListingQuery) WithPage(n int) ListingQuery {
	q.Page = n
	return q
}

// ListingResult is the payload of the "sisalist" operation.
type ListingResult struct {
	Total int             `json:"total"`
	Page  int             `json:"page"`
	Limit int             `json:"limit"`
	Data  []AccountRecord `json:"data"`
}

// TotalPages is ceil(Total / Limit). A missing limit falls back to PageSize.
func (r ListingResult) TotalPages() int {
	limit := r.Limit
	if limit <= 0 {
		limit = PageSize
	}
	if r.Total <= 0 {
		return 0
	}
	return (r.Total + limit - 1) / limit
}

// CanGoPrev reports whether the "previous" control is enabled on page.
func CanGoPrev(page int) bool {
	return page > 1
}

// CanGoNext reports whether the "next" control is enabled on page.
func CanGoNext(page, totalPages int) bool {
	return page < totalPages
}
