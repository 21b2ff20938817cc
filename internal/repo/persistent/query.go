package persistent

import (
	"strconv"
	"strings"

	"gorm.io/gorm"
)

// PostFilter is the structured filter for the filtered-posts feed. Only the
// enumerated fields are recognized; handlers drop unknown query keys instead
// of reflecting them into predicates.
type PostFilter struct {
	CarName string
	City    string
	Year    string
}

// Empty reports whether no recognized filter key carries a value.
func (f PostFilter) Empty() bool {
	return f.CarName == "" && f.City == "" && f.Year == ""
}

// apply adds one equality predicate per populated field. Text fields match
// case-insensitively; a non-numeric year is ignored.
func (f PostFilter) apply(q *gorm.DB) *gorm.DB {
	if f.CarName != "" {
		q = q.Where("LOWER(posts.car_name) = ?", strings.ToLower(f.CarName))
	}
	if f.City != "" {
		q = q.Where("LOWER(posts.city) = ?", strings.ToLower(f.City))
	}
	if f.Year != "" {
		if year, err := strconv.Atoi(f.Year); err == nil {
			q = q.Where("posts.year = ?", year)
		}
	}
	return q
}

// likePattern builds the parameter for a case-insensitive substring match
// against a LOWER(column) LIKE ? predicate. The term is passed as a bind
// parameter, never spliced into SQL.
func likePattern(term string) string {
	return "%" + strings.ToLower(term) + "%"
}
