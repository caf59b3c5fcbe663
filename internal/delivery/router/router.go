// Package router maps an HTTP method and a normalized path onto a handler,
// extracting digit-only placeholders as integer parameters.
//
// Patterns are literal paths with `{name}` placeholders. Each placeholder
// matches one or more ASCII digits; the pattern must match the whole path.
// Patterns for a method are tried in registration order and the first match
// wins.
package router

import (
	"net/http"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-json"
)

const notFoundMessage = "endpoint not found or method not allowed"

var placeholder = regexp.MustCompile(`\{(\w+)\}`)

// Handler receives the path parameters in left-to-right order.
type Handler func(w http.ResponseWriter, r *http.Request, params []int)

type route struct {
	pattern string
	re      *regexp.Regexp
	handler Handler
}

// Route describes one registered (method, pattern) pair.
type Route struct {
	Method  string
	Pattern string
}

type Router struct {
	tables   map[string][]*route
	order    []Route
	basePath string
	notFound http.Handler
}

type Option func(*Router)

// WithBasePath strips prefix from incoming paths before matching.
func WithBasePath(prefix string) Option {
	return func(rt *Router) {
		rt.basePath = "/" + strings.Trim(prefix, "/")
		if rt.basePath == "/" {
			rt.basePath = ""
		}
	}
}

// WithNotFound replaces the default JSON 404 response.
func WithNotFound(h http.Handler) Option {
	return func(rt *Router) {
		rt.notFound = h
	}
}

func New(opts ...Option) *Router {
	rt := &Router{
		tables:   make(map[string][]*route),
		notFound: NotFoundHandler(),
	}
	for _, opt := range opts {
		opt(rt)
	}
	return rt
}

func (rt *Router) Get(pattern string, h Handler)    { rt.Handle(http.MethodGet, pattern, h) }
func (rt *Router) Post(pattern string, h Handler)   { rt.Handle(http.MethodPost, pattern, h) }
func (rt *Router) Put(pattern string, h Handler)    { rt.Handle(http.MethodPut, pattern, h) }
func (rt *Router) Delete(pattern string, h Handler) { rt.Handle(http.MethodDelete, pattern, h) }

// Handle registers h for method and pattern. Registering the same literal
// pattern twice keeps the first position and the last handler.
func (rt *Router) Handle(method, pattern string, h Handler) {
	method = strings.ToUpper(method)

	for _, existing := range rt.tables[method] {
		if existing.pattern == pattern {
			existing.handler = h
			return
		}
	}

	rt.tables[method] = append(rt.tables[method], &route{
		pattern: pattern,
		re:      compile(pattern),
		handler: h,
	})
	rt.order = append(rt.order, Route{Method: method, Pattern: pattern})
}

// Resolve returns the first handler registered for method whose pattern
// matches path, along with the extracted parameters.
func (rt *Router) Resolve(method, path string) (Handler, []int, bool) {
	for _, rte := range rt.tables[strings.ToUpper(method)] {
		m := rte.re.FindStringSubmatch(path)
		if m == nil {
			continue
		}

		params, ok := toInts(m[1:])
		if !ok {
			continue
		}
		return rte.handler, params, true
	}
	return nil, nil, false
}

// Routes lists registrations in the order they were first made.
func (rt *Router) Routes() []Route {
	out := make([]Route, len(rt.order))
	copy(out, rt.order)
	return out
}

func (rt *Router) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	path := NormalizePath(rt.stripBase(r.URL.Path))

	h, params, ok := rt.Resolve(r.Method, path)
	if !ok {
		rt.notFound.ServeHTTP(w, r)
		return
	}
	h(w, r, params)
}

func (rt *Router) stripBase(p string) string {
	if rt.basePath == "" {
		return p
	}
	if p == rt.basePath || strings.HasPrefix(p, rt.basePath+"/") {
		return p[len(rt.basePath):]
	}
	return p
}

// NormalizePath drops any query string and collapses leading and trailing
// slashes so that the result starts with exactly one "/" and has no
// trailing "/" unless it is the root.
func NormalizePath(p string) string {
	if i := strings.IndexByte(p, '?'); i >= 0 {
		p = p[:i]
	}
	p = strings.Trim(p, "/")
	return "/" + p
}

func compile(pattern string) *regexp.Regexp {
	var sb strings.Builder
	sb.WriteString("^")

	last := 0
	for _, loc := range placeholder.FindAllStringIndex(pattern, -1) {
		sb.WriteString(regexp.QuoteMeta(pattern[last:loc[0]]))
		sb.WriteString("([0-9]+)")
		last = loc[1]
	}
	sb.WriteString(regexp.QuoteMeta(pattern[last:]))
	sb.WriteString("$")

	return regexp.MustCompile(sb.String())
}

func toInts(groups []string) ([]int, bool) {
	params := make([]int, 0, len(groups))
	for _, g := range groups {
		n, err := strconv.Atoi(g)
		if err != nil {
			// digit run too large for int
			return nil, false
		}
		params = append(params, n)
	}
	return params, true
}

func defaultNotFound(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusNotFound)
	_ = json.NewEncoder(w).Encode(map[string]string{
		"error": notFoundMessage,
	})
}

// NotFoundHandler returns the default JSON 404 handler so callers can wrap it.
func NotFoundHandler() http.Handler {
	return http.HandlerFunc(defaultNotFound)
}
