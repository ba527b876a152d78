package http

import (
	"net/url"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/library/internal/links"
)

// Route names used to build links.
const (
	RouteGetRoot                      = "GetRoot"
	RouteGetAuthors                   = "GetAuthors"
	RouteGetAuthor                    = "GetAuthor"
	RouteCreateAuthor                 = "CreateAuthor"
	RouteDeleteAuthor                 = "DeleteAuthor"
	RouteGetBooksForAuthor            = "GetBooksForAuthor"
	RouteGetBookForAuthor             = "GetBookForAuthor"
	RouteCreateBookForAuthor          = "CreateBookForAuthor"
	RouteDeleteBookForAuthor          = "DeleteBookForAuthor"
	RouteUpdateBookForAuthor          = "UpdateBookForAuthor"
	RoutePartiallyUpdateBookForAuthor = "PartiallyUpdateBookForAuthor"
	RouteGetAuthorCollection          = "GetAuthorCollection"
	RouteCreateAuthorCollection       = "CreateAuthorCollection"
)

// linkedRoutes must exist before the server starts.
var linkedRoutes = []string{
	RouteGetRoot,
	RouteGetAuthors,
	RouteGetAuthor,
	RouteCreateAuthor,
	RouteDeleteAuthor,
	RouteGetBooksForAuthor,
	RouteGetBookForAuthor,
	RouteCreateBookForAuthor,
	RouteDeleteBookForAuthor,
	RouteUpdateBookForAuthor,
	RoutePartiallyUpdateBookForAuthor,
	RouteGetAuthorCollection,
}

// Hypermedia negotiates the response mode of a request and builds its links.
type Hypermedia struct {
	routes    *links.Routes
	baseURL   string
	mediaType string
}

// NewHypermedia creates a Hypermedia over the named route table.
func NewHypermedia(routes *links.Routes, baseURL, mediaType string) *Hypermedia {
	return &Hypermedia{routes: routes, baseURL: baseURL, mediaType: mediaType}
}

// Mode returns the response mode the client asked for.
func (h *Hypermedia) Mode(c *gin.Context) links.Mode {
	return links.Negotiate(c.GetHeader("Accept"), h.mediaType)
}

// Builder returns a link builder rooted at the request's base URL.
func (h *Hypermedia) Builder(c *gin.Context) *links.Builder {
	return links.NewBuilder(h.routes, links.BaseURL(h.baseURL, c.Request))
}

// authorLinks returns the per-author links. The self link repeats fields
// only when the client shaped the response.
func authorLinks(b *links.Builder, id, fields string) ([]links.Link, error) {
	self := map[string]string{"id": id}
	if fields != "" {
		self["fields"] = fields
	}
	author := map[string]string{"id": id}

	set := linkSet{builder: b}
	set.add(RouteGetAuthor, "self", self)
	set.add(RouteDeleteAuthor, "delete_author", author)
	set.add(RouteCreateBookForAuthor, "create_book_for_author", author)
	set.add(RouteGetBooksForAuthor, "books", author)
	return set.links, set.err
}

// bookLinks returns the per-book links.
func bookLinks(b *links.Builder, authorID, bookID string) ([]links.Link, error) {
	params := map[string]string{"id": authorID, "bookId": bookID}

	set := linkSet{builder: b}
	set.add(RouteGetBookForAuthor, "self", params)
	set.add(RouteDeleteBookForAuthor, "delete_book", params)
	set.add(RouteUpdateBookForAuthor, "update_book", params)
	set.add(RoutePartiallyUpdateBookForAuthor, "partially_update_book", params)
	return set.links, set.err
}

// linkSet accumulates links and keeps the first build error.
type linkSet struct {
	builder *links.Builder
	links   []links.Link
	err     error
}

func (s *linkSet) add(route, rel string, params map[string]string) {
	if s.err != nil {
		return
	}
	link, err := s.builder.Link(route, rel, params)
	if err != nil {
		s.err = err
		return
	}
	s.links = append(s.links, link)
}

// addQuery adds a link whose query string is prebuilt.
func (s *linkSet) addQuery(route, rel string, query url.Values) {
	if s.err != nil {
		return
	}
	link, err := s.builder.LinkQuery(route, rel, nil, query)
	if err != nil {
		s.err = err
		return
	}
	s.links = append(s.links, link)
}
