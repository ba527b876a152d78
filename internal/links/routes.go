// Package links builds hypermedia links that point back into the API and
// decides per request whether a response carries them.
//
// Routes are looked up by name. The table is filled while routes are
// registered on the router and is read-only once the server starts.
package links

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrMissingRoute is returned when a link names a route that was never registered.
var ErrMissingRoute = errors.New("route not registered")

// Route is a named method + path template pair. Path parameters use the
// router's ":name" syntax.
type Route struct {
	Name   string
	Method string
	Path   string
}

// Routes is the named route table.
type Routes struct {
	byName map[string]Route
}

// NewRoutes creates an empty route table.
func NewRoutes() *Routes {
	return &Routes{byName: make(map[string]Route)}
}

// Add registers a named route. Names are unique.
func (r *Routes) Add(name, method, path string) error {
	if name == "" {
		return errors.New("route name is empty")
	}
	if _, exists := r.byName[name]; exists {
		return fmt.Errorf("route %q already registered", name)
	}
	r.byName[name] = Route{Name: name, Method: method, Path: path}
	return nil
}

// Get returns the route registered under name.
func (r *Routes) Get(name string) (Route, bool) {
	route, ok := r.byName[name]
	return route, ok
}

// Require checks that every name is registered.
func (r *Routes) Require(names ...string) error {
	var missing []string
	for _, name := range names {
		if _, ok := r.byName[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return fmt.Errorf("%w: %s", ErrMissingRoute, strings.Join(missing, ", "))
	}
	return nil
}

// Names returns every registered route name, sorted.
func (r *Routes) Names() []string {
	names := make([]string, 0, len(r.byName))
	for name := range r.byName {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
