// Package pagination derives limit/offset windows from caller-supplied page
// numbers and computes the nextPage hint returned in list envelopes.
package pagination

import "strconv"

const (
	// PostPageSize is the page size for every post feed.
	PostPageSize = 12
	// UserPageSize is the page size for user listings.
	UserPageSize = 15
)

// Window is the transient paging state for one request.
type Window struct {
	Page   int
	Limit  int
	Offset int
}

// Normalize parses a raw page query parameter against a fixed limit. Absent or
// non-numeric input defaults to page 1, values below 1 are clamped to 1.
func Normalize(rawPage string, limit int) Window {
	page, err := strconv.Atoi(rawPage)
	if err != nil || page < 1 {
		page = 1
	}
	return Window{
		Page:   page,
		Limit:  limit,
		Offset: (page - 1) * limit,
	}
}

// Next returns the follow-up page number for a result of resultLen items, or
// nil when the page came back short. A full page only means more *may* exist,
// so callers can see one extra empty fetch at the end of the stream.
func Next(w Window, resultLen int) *int {
	if resultLen < w.Limit {
		return nil
	}
	next := w.Page + 1
	return &next
}
