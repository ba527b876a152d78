package links

import (
	"encoding/json"
	"strings"

	"github.com/mrlokans/library/internal/shaping"
)

// DefaultMediaType is the vendor media type that asks for hypermedia responses.
const DefaultMediaType = "application/vnd.excentric.hateoas+json"

// Mode is the response format chosen for a request.
type Mode int

const (
	// ModePlain returns bare resources; navigation goes into headers.
	ModePlain Mode = iota
	// ModeHypermedia wraps resources with links.
	ModeHypermedia
)

func (m Mode) String() string {
	if m == ModeHypermedia {
		return "hypermedia"
	}
	return "plain"
}

// Negotiate picks the mode for an Accept header value. Only an exact
// (case-insensitive) match on mediaType selects hypermedia.
func Negotiate(accept, mediaType string) Mode {
	if mediaType == "" {
		mediaType = DefaultMediaType
	}
	if strings.EqualFold(strings.TrimSpace(accept), mediaType) {
		return ModeHypermedia
	}
	return ModePlain
}

// LinkedRecord is a shaped record with its links appended under "links".
type LinkedRecord struct {
	Record shaping.Record
	Links  []Link
}

func (lr LinkedRecord) MarshalJSON() ([]byte, error) {
	out := lr.Record.Clone()
	linkList := lr.Links
	if linkList == nil {
		linkList = []Link{}
	}
	out.Set("links", linkList)
	return json.Marshal(out)
}

// Collection is the hypermedia envelope for a list of records.
type Collection struct {
	Value []LinkedRecord `json:"value"`
	Links []Link         `json:"links"`
}

// NewCollection builds an envelope, never serializing nil slices as null.
func NewCollection(value []LinkedRecord, links []Link) Collection {
	if value == nil {
		value = []LinkedRecord{}
	}
	if links == nil {
		links = []Link{}
	}
	return Collection{Value: value, Links: links}
}
