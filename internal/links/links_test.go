package links

import (
	"crypto/tls"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/library/internal/shaping"
)

func testRoutes(t *testing.T) *Routes {
	t.Helper()
	routes := NewRoutes()
	require.NoError(t, routes.Add("GetAuthors", http.MethodGet, "/api/authors"))
	require.NoError(t, routes.Add("GetAuthor", http.MethodGet, "/api/authors/:id"))
	require.NoError(t, routes.Add("DeleteAuthor", http.MethodDelete, "/api/authors/:id"))
	require.NoError(t, routes.Add("GetBookForAuthor", http.MethodGet, "/api/authors/:id/books/:bookId"))
	require.NoError(t, routes.Add("GetAuthorCollection", http.MethodGet, "/api/authorcollections/:ids"))
	return routes
}

func TestRoutes(t *testing.T) {
	routes := testRoutes(t)

	t.Run("duplicate name", func(t *testing.T) {
		assert.Error(t, routes.Add("GetAuthor", http.MethodGet, "/other"))
	})

	t.Run("empty name", func(t *testing.T) {
		assert.Error(t, routes.Add("", http.MethodGet, "/other"))
	})

	t.Run("require registered", func(t *testing.T) {
		assert.NoError(t, routes.Require("GetAuthors", "GetAuthor"))
	})

	t.Run("require missing", func(t *testing.T) {
		err := routes.Require("GetAuthor", "CreateBookForAuthor", "UpdateBook")
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrMissingRoute))
		assert.Contains(t, err.Error(), "CreateBookForAuthor, UpdateBook")
	})

	t.Run("names", func(t *testing.T) {
		assert.Equal(t, []string{"DeleteAuthor", "GetAuthor", "GetAuthorCollection", "GetAuthors", "GetBookForAuthor"}, routes.Names())
	})
}

func TestBuilder_Href(t *testing.T) {
	b := NewBuilder(testRoutes(t), "http://localhost:8080/")

	t.Run("path parameter", func(t *testing.T) {
		href, err := b.Href("GetAuthor", map[string]string{"id": "25320c5e-f58a-4b1f-b63a-8ee07a840bdf"})
		require.NoError(t, err)
		assert.Equal(t, "http://localhost:8080/api/authors/25320c5e-f58a-4b1f-b63a-8ee07a840bdf", href)
	})

	t.Run("remaining params become sorted query", func(t *testing.T) {
		href, err := b.Href("GetAuthor", map[string]string{"id": "1", "fields": "id,name", "empty": ""})
		require.NoError(t, err)
		assert.Equal(t, "http://localhost:8080/api/authors/1?fields=id%2Cname", href)
	})

	t.Run("multiple path parameters", func(t *testing.T) {
		href, err := b.Href("GetBookForAuthor", map[string]string{"id": "a", "bookId": "b"})
		require.NoError(t, err)
		assert.Equal(t, "http://localhost:8080/api/authors/a/books/b", href)
	})

	t.Run("composite key keeps delimiters", func(t *testing.T) {
		href, err := b.Href("GetAuthorCollection", map[string]string{"ids": "(a,b)"})
		require.NoError(t, err)
		assert.Equal(t, "http://localhost:8080/api/authorcollections/(a,b)", href)
	})

	t.Run("path values are escaped", func(t *testing.T) {
		href, err := b.Href("GetAuthor", map[string]string{"id": "a b/c"})
		require.NoError(t, err)
		assert.Equal(t, "http://localhost:8080/api/authors/a%20b%2Fc", href)
	})

	t.Run("missing path parameter", func(t *testing.T) {
		_, err := b.Href("GetAuthor", nil)
		assert.Error(t, err)
	})

	t.Run("unknown route", func(t *testing.T) {
		_, err := b.Href("Nope", nil)
		assert.True(t, errors.Is(err, ErrMissingRoute))
	})

	t.Run("prebuilt query", func(t *testing.T) {
		q := url.Values{}
		q.Set("pageNumber", "1")
		q.Set("genre", "Fantasy")
		href, err := b.HrefQuery("GetAuthors", nil, q)
		require.NoError(t, err)
		assert.Equal(t, "http://localhost:8080/api/authors?genre=Fantasy&pageNumber=1", href)
	})
}

func TestBuilder_Link(t *testing.T) {
	b := NewBuilder(testRoutes(t), "http://host")

	link, err := b.Link("DeleteAuthor", "delete_author", map[string]string{"id": "1"})
	require.NoError(t, err)
	assert.Equal(t, Link{Href: "http://host/api/authors/1", Rel: "delete_author", Method: "DELETE"}, link)

	data, err := json.Marshal(link)
	require.NoError(t, err)
	assert.JSONEq(t, `{"href":"http://host/api/authors/1","rel":"delete_author","method":"DELETE"}`, string(data))
}

func TestBaseURL(t *testing.T) {
	t.Run("configured wins", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "http://example.com/api", nil)
		assert.Equal(t, "https://api.example.org", BaseURL("https://api.example.org/", req))
	})

	t.Run("request host", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "http://example.com/api", nil)
		assert.Equal(t, "http://example.com", BaseURL("", req))
	})

	t.Run("tls", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "http://example.com/api", nil)
		req.TLS = &tls.ConnectionState{}
		assert.Equal(t, "https://example.com", BaseURL("", req))
	})

	t.Run("forwarded proto", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "http://example.com/api", nil)
		req.Header.Set("X-Forwarded-Proto", "https")
		assert.Equal(t, "https://example.com", BaseURL("", req))
	})

	t.Run("unknown forwarded proto is ignored", func(t *testing.T) {
		for _, proto := range []string{"javascript", "ftp", "https://evil.example"} {
			req := httptest.NewRequest(http.MethodGet, "http://example.com/api", nil)
			req.Header.Set("X-Forwarded-Proto", proto)
			assert.Equal(t, "http://example.com", BaseURL("", req), proto)
		}
	})
}

func TestNegotiate(t *testing.T) {
	tests := []struct {
		accept   string
		expected Mode
	}{
		{"application/vnd.excentric.hateoas+json", ModeHypermedia},
		{"Application/VND.Excentric.Hateoas+JSON", ModeHypermedia},
		{" application/vnd.excentric.hateoas+json ", ModeHypermedia},
		{"application/json", ModePlain},
		{"", ModePlain},
		{"*/*", ModePlain},
	}

	for _, tt := range tests {
		t.Run(tt.accept, func(t *testing.T) {
			assert.Equal(t, tt.expected, Negotiate(tt.accept, DefaultMediaType))
		})
	}

	t.Run("empty media type uses default", func(t *testing.T) {
		assert.Equal(t, ModeHypermedia, Negotiate(DefaultMediaType, ""))
	})

	t.Run("custom media type", func(t *testing.T) {
		assert.Equal(t, ModeHypermedia, Negotiate("application/vnd.acme+json", "application/vnd.acme+json"))
		assert.Equal(t, ModePlain, Negotiate(DefaultMediaType, "application/vnd.acme+json"))
	})
}

func TestLinkedRecord_MarshalJSON(t *testing.T) {
	r := shaping.NewRecord("id")
	r.Set("id", "1")
	r.Set("name", "Stephen King")

	t.Run("links appended last", func(t *testing.T) {
		lr := LinkedRecord{Record: r, Links: []Link{{Href: "http://h/api/authors/1", Rel: "self", Method: "GET"}}}
		data, err := json.Marshal(lr)
		require.NoError(t, err)
		assert.Equal(t, `{"id":"1","name":"Stephen King","links":[{"href":"http://h/api/authors/1","rel":"self","method":"GET"}]}`, string(data))
		assert.Equal(t, 2, r.Len())
	})

	t.Run("no links serialize as empty list", func(t *testing.T) {
		data, err := json.Marshal(LinkedRecord{Record: r})
		require.NoError(t, err)
		assert.Equal(t, `{"id":"1","name":"Stephen King","links":[]}`, string(data))
	})
}

func TestNewCollection(t *testing.T) {
	data, err := json.Marshal(NewCollection(nil, nil))
	require.NoError(t, err)
	assert.JSONEq(t, `{"value":[],"links":[]}`, string(data))
}

func TestMode_String(t *testing.T) {
	assert.Equal(t, "plain", ModePlain.String())
	assert.Equal(t, "hypermedia", ModeHypermedia.String())
}
