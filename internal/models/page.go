package models

// Default and maximum page sizes.
const (
	DefaultPageSize = 10
	MaxPageSize     = 100
)

// PageQuery is a 1-indexed page request with an optional name filter.
type PageQuery struct {
	Page     int
	PageSize int
	Name     string
}

// Normalize clamps page and size into their valid ranges.
func (q PageQuery) Normalize() PageQuery {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.PageSize < 1 {
		q.PageSize = DefaultPageSize
	}
	if q.PageSize > MaxPageSize {
		q.PageSize = MaxPageSize
	}
	return q
}

// Offset returns the number of rows to skip.
func (q PageQuery) Offset() int {
	return (q.Page - 1) * q.PageSize
}

// Page is one page of records.
type Page[T any] struct {
	Records []T   `json:"records"`
	Total   int64 `json:"total"`
	Size    int   `json:"size"`
	Current int   `json:"current"`
	Pages   int64 `json:"pages"`
}

// NewPage builds a page, computing the page count from total and size.
func NewPage[T any](records []T, total int64, q PageQuery) Page[T] {
	if records == nil {
		records = []T{}
	}
	var pages int64
	if q.PageSize > 0 {
		pages = (total + int64(q.PageSize) - 1) / int64(q.PageSize)
	}
	return Page[T]{
		Records: records,
		Total:   total,
		Size:    q.PageSize,
		Current: q.Page,
		Pages:   pages,
	}
}
