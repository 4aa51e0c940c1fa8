package grantkit

import "time"

// TaskFilter provides options for filtering task queries.
type TaskFilter struct {
	// Filter by owner
	Owner string

	// Filter by a case-insensitive title substring
	TitleContains string

	// Filter by creation time
	Since time.Time

	// Pagination
	Limit  int
	Offset int
}

// NewTaskFilter creates a new TaskFilter with default values.
func NewTaskFilter() TaskFilter {
	return TaskFilter{
		Limit: 100,
	}
}

// WithOwner sets the owner filter.
func (f TaskFilter) WithOwner(owner string) TaskFilter {
	f.Owner = owner
	return f
}

// WithTitle sets the title substring filter.
func (f TaskFilter) WithTitle(substring string) TaskFilter {
	f.TitleContains = substring
	return f
}

// WithSince sets the creation time filter.
func (f TaskFilter) WithSince(since time.Time) TaskFilter {
	f.Since = since
	return f
}

// WithPagination sets limit and offset.
func (f TaskFilter) WithPagination(limit, offset int) TaskFilter {
	f.Limit = limit
	f.Offset = offset
	return f
}
