// Package pagination implements the shared page/limit contract used by all
// list endpoints.
package pagination

const (
	// DefaultLimit is applied when no limit is requested.
	DefaultLimit = 20
	// MaxLimit caps requested page sizes. Requests above it silently fall
	// back to DefaultLimit rather than erroring.
	MaxLimit = 100
)

// Limit normalizes a requested page size. A nil or oversized request yields
// DefaultLimit.
func Limit(requested *int) int {
	if requested == nil {
		return DefaultLimit
	}
	if *requested > MaxLimit || *requested < 1 {
		return DefaultLimit
	}
	return *requested
}

// Offset returns the row offset for a 1-indexed page.
func Offset(page, limit int) int {
	if page > 1 {
		return (page - 1) * limit
	}
	return 0
}

// ProbeOffset is the offset of the first row beyond the current page; a
// single-row existence probe there decides whether a next page exists.
func ProbeOffset(page, limit int) int {
	if page < 1 {
		page = 1
	}
	return page * limit
}

// Next returns the next page number, or 0 when hasMore is false.
func Next(page int, hasMore bool) int {
	if !hasMore {
		return 0
	}
	if page < 1 {
		page = 1
	}
	return page + 1
}
