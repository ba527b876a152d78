// Package paging computes page metadata for collection responses and rebuilds
// the query strings that navigate between pages of the same filtered,
// sorted and shaped view.
package paging

import (
	"math"
	"net/url"
	"strconv"
)

// Query parameter names shared by every paged collection.
const (
	ParamPageNumber = "pageNumber"
	ParamPageSize   = "pageSize"
	ParamOrderBy    = "orderBy"
	ParamFields     = "fields"
)

// MaxPageNumber caps the page number so offsets and next-page numbers stay
// within int range.
const MaxPageNumber = math.MaxInt32

// Limits bounds the page size a client may request.
type Limits struct {
	DefaultPageSize int
	MaxPageSize     int
}

// DefaultLimits returns the limits used when none are configured.
func DefaultLimits() Limits {
	return Limits{DefaultPageSize: 5, MaxPageSize: 20}
}

// Direction selects which page a navigation query points at.
type Direction int

const (
	Current Direction = iota
	Next
	Previous
)

func (d Direction) String() string {
	switch d {
	case Next:
		return "next"
	case Previous:
		return "previous"
	default:
		return "current"
	}
}

// Request carries the paging, sorting, shaping and filter parameters of a
// collection request. Filters are opaque to this package and round-trip
// unchanged into navigation queries.
type Request struct {
	PageNumber int
	PageSize   int

	OrderBy string
	// OrderByParam is the query parameter name the sort key arrived under.
	// Empty means ParamOrderBy.
	OrderByParam string

	Fields  string
	Filters url.Values
}

// NewRequest builds a request with page number and size clamped into range.
// Page numbers below 1 become 1 and above MaxPageNumber become MaxPageNumber;
// page sizes below 1 become the default and sizes above the maximum become
// the maximum.
func NewRequest(pageNumber, pageSize int, limits Limits) Request {
	if limits.MaxPageSize < 1 {
		limits = DefaultLimits()
	}
	if limits.DefaultPageSize < 1 || limits.DefaultPageSize > limits.MaxPageSize {
		limits.DefaultPageSize = limits.MaxPageSize
	}

	switch {
	case pageNumber < 1:
		pageNumber = 1
	case pageNumber > MaxPageNumber:
		pageNumber = MaxPageNumber
	}
	switch {
	case pageSize < 1:
		pageSize = limits.DefaultPageSize
	case pageSize > limits.MaxPageSize:
		pageSize = limits.MaxPageSize
	}

	return Request{
		PageNumber: pageNumber,
		PageSize:   pageSize,
		Filters:    url.Values{},
	}
}

// Offset returns the number of items preceding the requested page.
func (r Request) Offset() int {
	return (r.PageNumber - 1) * r.PageSize
}

// Query rebuilds the full query of this request with the page number moved
// by one in the given direction. Every filter, the sort key, the field list
// and the page size are carried over; empty values are left out.
func (r Request) Query(direction Direction) url.Values {
	q := url.Values{}
	for key, values := range r.Filters {
		for _, v := range values {
			if v != "" {
				q.Add(key, v)
			}
		}
	}

	if r.OrderBy != "" {
		param := r.OrderByParam
		if param == "" {
			param = ParamOrderBy
		}
		q.Set(param, r.OrderBy)
	}
	if r.Fields != "" {
		q.Set(ParamFields, r.Fields)
	}

	page := r.PageNumber
	switch direction {
	case Next:
		page++
	case Previous:
		page--
	}
	q.Set(ParamPageNumber, strconv.Itoa(page))
	q.Set(ParamPageSize, strconv.Itoa(r.PageSize))

	return q
}

// Metadata describes one page of a collection.
type Metadata struct {
	TotalCount  int64
	PageSize    int
	CurrentPage int
	TotalPages  int
	HasNext     bool
	HasPrevious bool
}

// Paginate computes metadata for pageNumber given the total number of
// matching items. TotalPages is zero when there are no items.
func Paginate(totalCount int64, pageNumber, pageSize int) Metadata {
	totalPages := 0
	if pageSize > 0 && totalCount > 0 {
		totalPages = int((totalCount + int64(pageSize) - 1) / int64(pageSize))
	}

	return Metadata{
		TotalCount:  totalCount,
		PageSize:    pageSize,
		CurrentPage: pageNumber,
		TotalPages:  totalPages,
		HasNext:     pageNumber < totalPages,
		HasPrevious: pageNumber > 1,
	}
}

// Page is one page of a collection together with its metadata.
type Page[T any] struct {
	Items []T
	Metadata
}

// NewPage wraps items returned for r with metadata for totalCount.
func NewPage[T any](items []T, totalCount int64, r Request) Page[T] {
	return Page[T]{
		Items:    items,
		Metadata: Paginate(totalCount, r.PageNumber, r.PageSize),
	}
}

// Map converts the items of a page, keeping its metadata.
func Map[T, U any](p Page[T], fn func(T) U) Page[U] {
	items := make([]U, len(p.Items))
	for i, item := range p.Items {
		items[i] = fn(item)
	}
	return Page[U]{Items: items, Metadata: p.Metadata}
}
