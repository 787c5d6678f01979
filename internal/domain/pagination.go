package domain

import "math"

// PaginationParams holds offset-based pagination parameters for list queries.
type PaginationParams struct {
	Page     int
	PageSize int
}

// Offset returns the row offset for the current page (0-based).
// Formula: (Page - 1) * Limit(), saturating at math.MaxInt so a huge page
// yields an empty result instead of a negative offset.
func (p PaginationParams) Offset() int {
	if p.Page < 1 {
		return 0
	}
	limit := p.Limit()
	if p.Page-1 > math.MaxInt/limit {
		return math.MaxInt
	}
	return (p.Page - 1) * limit
}

// Limit returns the page size, falling back to 20 when unset.
func (p PaginationParams) Limit() int {
	if p.PageSize < 1 {
		return 20
	}
	return p.PageSize
}
