package domain

// Trip list paging bounds.
const (
	DefaultPageLimit = 50
	MaxPageLimit     = 100
)

// PaginationParams is one page request for a user's trip list. Page is
// 1-indexed.
type PaginationParams struct {
	Page  int
	Limit int
}

// NewPaginationParams builds a PaginationParams from optional query values.
// Absent or non-positive values use page 1 and DefaultPageLimit; a larger
// limit is clamped to MaxPageLimit.
func NewPaginationParams(page, limit *int) PaginationParams {
	p := PaginationParams{Page: 1, Limit: DefaultPageLimit}
	if page != nil && *page > 0 {
		p.Page = *page
	}
	if limit != nil && *limit > 0 {
		p.Limit = min(*limit, MaxPageLimit)
	}
	return p
}

// Offset is the number of rows to skip before this page.
func (p PaginationParams) Offset() int {
	return (p.Page - 1) * p.Limit
}

// Pages is how many pages of this size total rows fill.
func (p PaginationParams) Pages(total int64) int {
	if total <= 0 || p.Limit <= 0 {
		return 0
	}
	return int((total + int64(p.Limit) - 1) / int64(p.Limit))
}
