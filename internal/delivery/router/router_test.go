package router

import (
	"net/http"
	"net/http/httptest"
	"reflect"
	"strings"
	"testing"
)

func record(name string, hits *[]string, got *[]int) Handler {
	return func(w http.ResponseWriter, r *http.Request, params []int) {
		*hits = append(*hits, name)
		*got = params
		w.WriteHeader(http.StatusOK)
	}
}

func TestResolveExtractsParamsInOrder(t *testing.T) {
	var hits []string
	var params []int

	rt := New()
	rt.Get("/authors", record("list", &hits, &params))
	rt.Get("/authors/{id}", record("get", &hits, &params))
	rt.Get("/contents/{content}/authors/{author}", record("nested", &hits, &params))

	cases := []struct {
		path   string
		name   string
		params []int
	}{
		{"/authors", "list", []int{}},
		{"/authors/5", "get", []int{5}},
		{"/authors/0012", "get", []int{12}},
		{"/contents/7/authors/3", "nested", []int{7, 3}},
	}

	for _, tc := range cases {
		h, p, ok := rt.Resolve(http.MethodGet, tc.path)
		if !ok {
			t.Fatalf("%s: expected match", tc.path)
		}
		h(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, tc.path, nil), p)

		if hits[len(hits)-1] != tc.name {
			t.Fatalf("%s: expected handler %q, got %q", tc.path, tc.name, hits[len(hits)-1])
		}
		if !reflect.DeepEqual(params, tc.params) {
			t.Fatalf("%s: expected params %v, got %v", tc.path, tc.params, params)
		}
	}
}

func TestResolveRejectsNonDigitSegments(t *testing.T) {
	called := false
	rt := New()
	rt.Get("/authors/{id}", func(http.ResponseWriter, *http.Request, []int) { called = true })

	for _, p := range []string{"/authors/new", "/authors/5a", "/authors/-1", "/authors/1.5", "/authors/", "/authors/5/extra", "/xauthors/5"} {
		if _, _, ok := rt.Resolve(http.MethodGet, p); ok {
			t.Fatalf("%s: expected no match", p)
		}
	}

	if called {
		t.Fatal("handler must not be invoked")
	}
}

func TestResolveOverflowFallsThrough(t *testing.T) {
	rt := New()
	rt.Get("/authors/{id}", func(http.ResponseWriter, *http.Request, []int) {})

	if _, _, ok := rt.Resolve(http.MethodGet, "/authors/99999999999999999999999999"); ok {
		t.Fatal("expected overflowing id to miss")
	}
}

func TestMethodTablesAreIndependent(t *testing.T) {
	rt := New()
	rt.Get("/authors/{id}", func(http.ResponseWriter, *http.Request, []int) {})

	if _, _, ok := rt.Resolve(http.MethodDelete, "/authors/1"); ok {
		t.Fatal("DELETE must not resolve a GET-only route")
	}
	if _, _, ok := rt.Resolve("PATCH", "/authors/1"); ok {
		t.Fatal("unknown method must not resolve")
	}
	if _, _, ok := rt.Resolve("get", "/authors/1"); !ok {
		t.Fatal("method lookup should be case-insensitive")
	}
}

func TestFirstMatchWins(t *testing.T) {
	var hits []string
	var params []int

	rt := New()
	rt.Get("/items/{a}", record("first", &hits, &params))
	rt.Get("/items/{b}", record("second", &hits, &params))

	h, p, ok := rt.Resolve(http.MethodGet, "/items/4")
	if !ok {
		t.Fatal("expected match")
	}
	h(httptest.NewRecorder(), nil, p)

	if hits[0] != "first" {
		t.Fatalf("expected first registered pattern, got %s", hits[0])
	}
}

func TestLastRegistrationWinsForIdenticalPattern(t *testing.T) {
	var hits []string
	var params []int

	rt := New()
	rt.Get("/items", record("old", &hits, &params))
	rt.Get("/items/{id}", record("byid", &hits, &params))
	rt.Get("/items", record("new", &hits, &params))

	h, p, _ := rt.Resolve(http.MethodGet, "/items")
	h(httptest.NewRecorder(), nil, p)

	if hits[0] != "new" {
		t.Fatalf("expected replacement handler, got %s", hits[0])
	}

	routes := rt.Routes()
	want := []Route{{"GET", "/items"}, {"GET", "/items/{id}"}}
	if !reflect.DeepEqual(routes, want) {
		t.Fatalf("expected %v, got %v", want, routes)
	}
}

func TestPatternLiteralsAreQuoted(t *testing.T) {
	rt := New()
	rt.Get("/files/v1.0/{id}", func(http.ResponseWriter, *http.Request, []int) {})

	if _, _, ok := rt.Resolve(http.MethodGet, "/files/v1x0/1"); ok {
		t.Fatal("dot in pattern must match literally")
	}
	if _, _, ok := rt.Resolve(http.MethodGet, "/files/v1.0/1"); !ok {
		t.Fatal("expected literal match")
	}
}

func TestNormalizePath(t *testing.T) {
	cases := map[string]string{
		"":              "/",
		"/":             "/",
		"//":            "/",
		"/authors/":     "/authors",
		"authors":       "/authors",
		"//authors//1/": "/authors//1",
		"/authors?x=1":  "/authors",
	}
	for in, want := range cases {
		if got := NormalizePath(in); got != want {
			t.Fatalf("NormalizePath(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestServeHTTP(t *testing.T) {
	rt := New(WithBasePath("/voci-api/public/"))
	rt.Get("/authors/{id}", func(w http.ResponseWriter, r *http.Request, params []int) {
		if params[0] != 42 {
			t.Errorf("expected 42, got %v", params)
		}
		w.WriteHeader(http.StatusTeapot)
	})

	rec := httptest.NewRecorder()
	rt.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/voci-api/public/authors/42/", nil))
	if rec.Code != http.StatusTeapot {
		t.Fatalf("expected handler status, got %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	rt.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/authors/42", nil))
	if rec.Code != http.StatusTeapot {
		t.Fatalf("expected match without base path, got %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	rt.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/authors/42", nil))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"error"`) {
		t.Fatalf("expected error envelope, got %s", rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Fatalf("expected json content type, got %q", ct)
	}
}

func TestServeHTTPWritesNotFoundOnlyOnMiss(t *testing.T) {
	misses := 0
	rt := New(WithNotFound(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		misses++
		w.WriteHeader(http.StatusNotFound)
	})))
	rt.Get("/", func(w http.ResponseWriter, r *http.Request, _ []int) {
		w.WriteHeader(http.StatusOK)
	})

	rec := httptest.NewRecorder()
	rt.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if rec.Code != http.StatusOK || misses != 0 {
		t.Fatalf("expected hit without not-found, got code=%d misses=%d", rec.Code, misses)
	}

	rec = httptest.NewRecorder()
	rt.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/nothing", nil))
	if rec.Code != http.StatusNotFound || misses != 1 {
		t.Fatalf("expected single not-found, got code=%d misses=%d", rec.Code, misses)
	}
}
