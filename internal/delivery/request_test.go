package delivery

import (
	"errors"
	"math"
	"net/http"
	"net/http/httptest"
	"reflect"
	"strings"
	"testing"
)

func TestDecodeBodySkipsReadMethods(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/authors", strings.NewReader(`{"name":"x"}`))

	p, err := decodeBody(req)
	if err != nil || len(p) != 0 {
		t.Fatalf("expected empty payload, got %v %v", p, err)
	}
}

func TestDecodeBodyEmpty(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/authors", strings.NewReader("  "))

	p, err := decodeBody(req)
	if err != nil || len(p) != 0 {
		t.Fatalf("expected empty payload, got %v %v", p, err)
	}
}

func TestDecodeBodyRepeatedFormKeys(t *testing.T) {
	req := httptest.NewRequest(http.MethodPut, "/contents/1", strings.NewReader("author_ids=3&author_ids=4&name=x"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	p, err := decodeBody(req)
	if err != nil {
		t.Fatal(err)
	}
	ids, err := p.IDList("author_ids")
	if err != nil || !reflect.DeepEqual(ids, []int{3, 4}) {
		t.Errorf("expected [3 4], got %v %v", ids, err)
	}
	if p.String("name") != "x" {
		t.Errorf("expected name x, got %q", p.String("name"))
	}
}

func TestDecodeBodyMultipart(t *testing.T) {
	body := "--b\r\nContent-Disposition: form-data; name=\"name\"\r\n\r\nBook\r\n--b--\r\n"
	req := httptest.NewRequest(http.MethodPost, "/media-types", strings.NewReader(body))
	req.Header.Set("Content-Type", "multipart/form-data; boundary=b")

	p, err := decodeBody(req)
	if err != nil {
		t.Fatal(err)
	}
	if p.String("name") != "Book" {
		t.Errorf("expected Book, got %q", p.String("name"))
	}
}

func TestPayloadID(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(
		`{"a":3,"b":"7","c":2.0,"d":-1,"e":"x","f":true,"g":99999999999999999999}`))

	p, err := decodeBody(req)
	if err != nil {
		t.Fatal(err)
	}

	for key, want := range map[string]int{"a": 3, "b": 7, "c": 2} {
		if got, err := p.ID(key); err != nil || got != want {
			t.Errorf("%s: expected %d, got %d %v", key, want, got, err)
		}
	}
	for _, key := range []string{"d", "e", "f", "g"} {
		if _, err := p.ID(key); !errors.Is(err, errNotAnID) {
			t.Errorf("%s: expected errNotAnID, got %v", key, err)
		}
	}
	if got, err := p.ID("missing"); got != 0 || err != nil {
		t.Errorf("missing: expected 0, nil; got %d %v", got, err)
	}
}

func TestPayloadIDList(t *testing.T) {
	p := Payload{"ok": []any{"1", 2.0}, "scalar": "1", "null": nil}

	if ids, err := p.IDList("ok"); err != nil || !reflect.DeepEqual(ids, []int{1, 2}) {
		t.Errorf("expected [1 2], got %v %v", ids, err)
	}
	if _, err := p.IDList("scalar"); !errors.Is(err, errNotAList) {
		t.Errorf("expected errNotAList, got %v", err)
	}
	for _, key := range []string{"null", "absent"} {
		if ids, err := p.IDList(key); err != nil || ids == nil || len(ids) != 0 {
			t.Errorf("%s: expected empty list, got %v %v", key, ids, err)
		}
	}
}

func TestLeadingInt(t *testing.T) {
	cases := map[string]int{
		"7":                       7,
		"5abc":                    5,
		"  12 ":                   12,
		"+3":                      3,
		"-4x":                     -4,
		"abc":                     0,
		"":                        0,
		"-":                       0,
		"1.9":                     1,
		"99999999999999999999999": math.MaxInt,
	}

	for in, want := range cases {
		if got := leadingInt(in); got != want {
			t.Errorf("leadingInt(%q) = %d, want %d", in, got, want)
		}
	}
}
