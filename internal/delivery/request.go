package delivery

import (
	"bytes"
	"errors"
	"io"
	"math"
	"mime"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/goccy/go-json"
)

const maxBodyBytes = 1 << 20

var (
	errInvalidBody = errors.New("request body must be a JSON object or a form")
	errNotAnID     = errors.New("not a positive integer")
	errNotAList    = errors.New("not a list")
)

// Payload is a decoded POST/PUT body. JSON numbers stay json.Number so ids
// can be checked for integrality.
type Payload map[string]any

// decodeBody reads the body as JSON and falls back to form encoding when it
// is not valid JSON. Methods other than POST and PUT get an empty payload.
func decodeBody(r *http.Request) (Payload, error) {
	if r.Method != http.MethodPost && r.Method != http.MethodPut {
		return Payload{}, nil
	}
	if r.Body == nil {
		return Payload{}, nil
	}

	raw, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		return nil, err
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		return Payload{}, nil
	}

	var v any
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	if err := dec.Decode(&v); err == nil {
		obj, ok := v.(map[string]any)
		if !ok {
			return nil, errInvalidBody
		}
		return Payload(obj), nil
	}

	form, err := parseForm(r, raw)
	if err != nil {
		return nil, errInvalidBody
	}
	return formPayload(form), nil
}

func parseForm(r *http.Request, raw []byte) (url.Values, error) {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType != "multipart/form-data" {
		return url.ParseQuery(string(raw))
	}

	r.Body = io.NopCloser(bytes.NewReader(raw))
	if err := r.ParseMultipartForm(maxBodyBytes); err != nil {
		return nil, err
	}
	return r.MultipartForm.Value, nil
}

// formPayload flattens form values. `key[]` and repeated keys become lists.
func formPayload(form url.Values) Payload {
	p := Payload{}
	for key, values := range form {
		name, isList := strings.CutSuffix(key, "[]")
		if !isList && len(values) == 1 {
			p[name] = values[0]
			continue
		}

		list, _ := p[name].([]any)
		for _, v := range values {
			list = append(list, v)
		}
		p[name] = list
	}
	return p
}

// String returns the value under key when it is a string, trimmed.
func (p Payload) String(key string) string {
	s, _ := p[key].(string)
	return strings.TrimSpace(s)
}

// ID returns 0 when key is absent and errNotAnID when it is present but not
// a positive integer.
func (p Payload) ID(key string) (int, error) {
	v, ok := p[key]
	if !ok || v == nil {
		return 0, nil
	}
	return toID(v)
}

// IDList returns an empty list when key is absent.
func (p Payload) IDList(key string) ([]int, error) {
	v, ok := p[key]
	if !ok || v == nil {
		return []int{}, nil
	}

	items, ok := v.([]any)
	if !ok {
		return nil, errNotAList
	}

	out := make([]int, 0, len(items))
	for _, item := range items {
		id, err := toID(item)
		if err != nil {
			return nil, err
		}
		out = append(out, id)
	}
	return out, nil
}

func toID(v any) (int, error) {
	switch t := v.(type) {
	case json.Number:
		if n, err := t.Int64(); err == nil {
			return positive(n)
		}
		f, err := t.Float64()
		if err != nil || f != float64(int64(f)) {
			return 0, errNotAnID
		}
		return positive(int64(f))
	case float64:
		if t != float64(int64(t)) {
			return 0, errNotAnID
		}
		return positive(int64(t))
	case string:
		return parseID(t)
	default:
		return 0, errNotAnID
	}
}

// parseID accepts an optionally signed decimal string and requires it to be
// greater than zero.
func parseID(s string) (int, error) {
	n, err := strconv.ParseInt(strings.TrimSpace(s), 10, strconv.IntSize)
	if err != nil {
		return 0, errNotAnID
	}
	return positive(n)
}

// leadingInt reads the optional sign and digits at the start of s, the way a
// loose integer cast does: "5abc" is 5, "abc" and "" are 0. Values past the
// int range saturate.
func leadingInt(s string) int {
	s = strings.TrimLeft(s, " \t\n\r\v\f")

	neg := false
	if s != "" && (s[0] == '-' || s[0] == '+') {
		neg = s[0] == '-'
		s = s[1:]
	}

	end := 0
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == 0 {
		return 0
	}

	n, err := strconv.Atoi(s[:end])
	if err != nil {
		// only range errors remain
		n = math.MaxInt
	}
	if neg {
		return -n
	}
	return n
}

func positive(n int64) (int, error) {
	if n <= 0 || n > int64(^uint(0)>>1) {
		return 0, errNotAnID
	}
	return int(n), nil
}
