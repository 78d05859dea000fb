package validate

import (
	"net/url"
	"strconv"
	"strings"
)

type ErrField struct {
	Field string `json:"field"`
	Msg   string `json:"msg"`
}

type Errs []ErrField

func (e Errs) Error() string { // error interface
	var b strings.Builder
	for i, ef := range e {
		if i > 0 {
			b.WriteString("; ")
		}
		b.WriteString(ef.Field + ": " + ef.Msg)
	}
	return b.String()
}

// Query reads optional numeric/enum query parameters, collecting every
// problem instead of stopping at the first.
type Query struct {
	v    url.Values
	Errs Errs
}

func NewQuery(v url.Values) *Query { return &Query{v: v} }

// Int returns def when the parameter is absent; out-of-range values are errors.
func (q *Query) Int(field string, def, min, max int) int {
	raw := strings.TrimSpace(q.v.Get(field))
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		q.Errs = append(q.Errs, ErrField{Field: field, Msg: "must be an integer"})
		return def
	}
	if n < min || n > max {
		q.Errs = append(q.Errs, ErrField{Field: field, Msg: "must be between " + strconv.Itoa(min) + " and " + strconv.Itoa(max)})
		return def
	}
	return n
}

func (q *Query) Uint64(field string, def uint64) uint64 {
	raw := strings.TrimSpace(q.v.Get(field))
	if raw == "" {
		return def
	}
	n, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		q.Errs = append(q.Errs, ErrField{Field: field, Msg: "must be a non-negative integer"})
		return def
	}
	return n
}

func (q *Query) OneOf(field, def string, allowed ...string) string {
	raw := strings.ToLower(strings.TrimSpace(q.v.Get(field)))
	if raw == "" {
		return def
	}
	for _, a := range allowed {
		if raw == a {
			return raw
		}
	}
	q.Errs = append(q.Errs, ErrField{Field: field, Msg: "must be one of " + strings.Join(allowed, ", ")})
	return def
}

// Err returns nil when every parameter was valid.
func (q *Query) Err() error {
	if len(q.Errs) == 0 {
		return nil
	}
	return q.Errs
}
