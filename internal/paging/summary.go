package paging

import (
	"bytes"
	"encoding/json"
)

// HeaderName is the response header carrying the pagination summary.
const HeaderName = "X-Pagination"

// Summary is the pagination payload sent in the X-Pagination header.
type Summary struct {
	TotalCount  int64 `json:"totalCount"`
	PageSize    int   `json:"pageSize"`
	CurrentPage int   `json:"currentPage"`
	TotalPages  int   `json:"totalPages"`
}

// LinkedSummary is a Summary that also carries page navigation links.
// Absent links serialize as null.
type LinkedSummary struct {
	Summary
	PreviousPageLink *string `json:"previousPageLink"`
	NextPageLink     *string `json:"nextPageLink"`
}

// NewSummary builds the header payload for m.
func NewSummary(m Metadata) Summary {
	return Summary{
		TotalCount:  m.TotalCount,
		PageSize:    m.PageSize,
		CurrentPage: m.CurrentPage,
		TotalPages:  m.TotalPages,
	}
}

// WithLinks attaches navigation links; empty strings become null.
func (s Summary) WithLinks(previous, next string) LinkedSummary {
	ls := LinkedSummary{Summary: s}
	if previous != "" {
		ls.PreviousPageLink = &previous
	}
	if next != "" {
		ls.NextPageLink = &next
	}
	return ls
}

// Header serializes the summary for the X-Pagination header.
func (s Summary) Header() (string, error) {
	return encodeHeader(s)
}

// Header serializes the summary for the X-Pagination header.
func (s LinkedSummary) Header() (string, error) {
	return encodeHeader(s)
}

// encodeHeader marshals v without HTML escaping so query strings inside links
// stay readable.
func encodeHeader(v any) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return "", err
	}
	return string(bytes.TrimRight(buf.Bytes(), "\n")), nil
}
