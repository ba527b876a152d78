package links

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"
)

// Link is a hypermedia link attached to a response.
type Link struct {
	Href   string `json:"href"`
	Rel    string `json:"rel"`
	Method string `json:"method"`
}

// Builder produces absolute URLs for named routes. Create one per request.
type Builder struct {
	routes *Routes
	base   string
}

// NewBuilder creates a builder rooted at base, e.g. "http://localhost:8080".
func NewBuilder(routes *Routes, base string) *Builder {
	return &Builder{routes: routes, base: strings.TrimRight(base, "/")}
}

// BaseURL returns configured when set, otherwise the scheme and host the
// request arrived on. X-Forwarded-Proto is honoured only for http and https.
func BaseURL(configured string, r *http.Request) string {
	if configured != "" {
		return strings.TrimRight(configured, "/")
	}

	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	switch proto := strings.ToLower(r.Header.Get("X-Forwarded-Proto")); proto {
	case "http", "https":
		scheme = proto
	}
	return scheme + "://" + r.Host
}

// segmentEscaper keeps the sub-delimiters used by composite keys readable.
var segmentEscaper = strings.NewReplacer("%28", "(", "%29", ")", "%2C", ",")

// Href renders the route name with params. Params matching a ":name" path
// segment are substituted; the remaining non-empty params form the query
// string, sorted by key.
func (b *Builder) Href(name string, params map[string]string) (string, error) {
	route, ok := b.routes.Get(name)
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrMissingRoute, name)
	}

	used := make(map[string]bool)
	segments := strings.Split(route.Path, "/")
	for i, segment := range segments {
		if !strings.HasPrefix(segment, ":") {
			continue
		}
		key := segment[1:]
		value, ok := params[key]
		if !ok || value == "" {
			return "", fmt.Errorf("route %s: missing path parameter %q", name, key)
		}
		segments[i] = segmentEscaper.Replace(url.PathEscape(value))
		used[key] = true
	}

	href := b.base + strings.Join(segments, "/")

	query := url.Values{}
	for key, value := range params {
		if used[key] || value == "" {
			continue
		}
		query.Set(key, value)
	}
	if len(query) > 0 {
		href += "?" + query.Encode()
	}
	return href, nil
}

// HrefQuery renders the route with path params and a prebuilt query.
func (b *Builder) HrefQuery(name string, params map[string]string, query url.Values) (string, error) {
	href, err := b.Href(name, params)
	if err != nil {
		return "", err
	}
	if encoded := query.Encode(); encoded != "" {
		sep := "?"
		if strings.Contains(href, "?") {
			sep = "&"
		}
		href += sep + encoded
	}
	return href, nil
}

// Link renders the route as a link with the given rel. The method is the
// route's own.
func (b *Builder) Link(name, rel string, params map[string]string) (Link, error) {
	href, err := b.Href(name, params)
	if err != nil {
		return Link{}, err
	}
	route, _ := b.routes.Get(name)
	return Link{Href: href, Rel: rel, Method: route.Method}, nil
}

// LinkQuery is Link with a prebuilt query.
func (b *Builder) LinkQuery(name, rel string, params map[string]string, query url.Values) (Link, error) {
	href, err := b.HrefQuery(name, params, query)
	if err != nil {
		return Link{}, err
	}
	route, _ := b.routes.Get(name)
	return Link{Href: href, Rel: rel, Method: route.Method}, nil
}
