package guard

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"sync"
)

var (
	ErrNoRoute       = errors.New("no route")
	ErrInvalidRoute  = errors.New("invalid route pattern")
	ErrDuplicateName = errors.New("duplicate route name")
)

// Route binds a path pattern such as "/events/{id}/signup" to a requirement.
type Route struct {
	Name        string
	Pattern     string
	Requirement Requirement

	segments []string
}

// Match is a resolved navigation target.
type Match struct {
	Route  *Route
	Path   string
	Params map[string]string
	Query  url.Values
}

// Location returns the path and query the match was made from.
func (m Match) Location() string {
	if len(m.Query) == 0 {
		return m.Path
	}
	return m.Path + "?" + m.Query.Encode()
}

// Router is safe for concurrent use.
type Router struct {
	mu       sync.Mutex
	routes   []*Route
	names    map[string]struct{}
	returnTo string
}

func NewRouter() *Router {
	return &Router{names: make(map[string]struct{})}
}

// Handle registers a route. Routes are matched in registration order.
func (r *Router) Handle(name, pattern string, req Requirement) error {
	if !strings.HasPrefix(pattern, "/") {
		return fmt.Errorf("%w %q: must start with /", ErrInvalidRoute, pattern)
	}
	segs := splitPath(pattern)
	for _, s := range segs {
		if strings.HasPrefix(s, "{") != strings.HasSuffix(s, "}") || s == "{}" {
			return fmt.Errorf("%w %q: bad segment %q", ErrInvalidRoute, pattern, s)
		}
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.names[name]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateName, name)
	}
	r.names[name] = struct{}{}
	r.routes = append(r.routes, &Route{Name: name, Pattern: pattern, Requirement: req, segments: segs})
	return nil
}

// Routes returns the registered routes in order.
func (r *Router) Routes() []*Route {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]*Route(nil), r.routes...)
}

// Match resolves location ("/events/42?x=1") to a route and its parameters.
func (r *Router) Match(location string) (Match, bool) {
	u, err := url.Parse(location)
	if err != nil || u.Scheme != "" || u.Host != "" {
		return Match{}, false
	}
	segs := splitPath(u.EscapedPath())

	r.mu.Lock()
	defer r.mu.Unlock()
	for _, rt := range r.routes {
		if params, ok := matchSegments(rt.segments, segs); ok {
			return Match{Route: rt, Path: u.Path, Params: params, Query: u.Query()}, true
		}
	}
	return Match{}, false
}

// Navigate matches location and asks the guard whether it may render. A
// redirect to login remembers the location for TakeReturnPath.
func (r *Router) Navigate(s Snapshot, location string) (Match, Decision, error) {
	m, ok := r.Match(location)
	if !ok {
		return Match{}, Decision{}, fmt.Errorf("%w for %q", ErrNoRoute, location)
	}

	d := Decide(s, m.Route.Requirement, m.Location())
	if d.Outcome == OutcomeRedirectLogin {
		r.mu.Lock()
		r.returnTo = d.From
		r.mu.Unlock()
	}
	return m, d, nil
}

// TakeReturnPath hands back the remembered origin once, sanitised, and
// forgets it. Without one it returns DefaultPath.
func (r *Router) TakeReturnPath() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	p := ResolveReturnPath(r.returnTo)
	r.returnTo = ""
	return p
}

func splitPath(p string) []string {
	p = strings.Trim(p, "/")
	if p == "" {
		return nil
	}
	return strings.Split(p, "/")
}

func matchSegments(pattern, path []string) (map[string]string, bool) {
	if len(pattern) != len(path) {
		return nil, false
	}
	params := make(map[string]string)
	for i, seg := range pattern {
		if strings.HasPrefix(seg, "{") {
			if path[i] == "" {
				return nil, false
			}
			v, err := url.PathUnescape(path[i])
			if err != nil {
				return nil, false
			}
			params[seg[1:len(seg)-1]] = v
			continue
		}
		if seg != path[i] {
			return nil, false
		}
	}
	return params, true
}
