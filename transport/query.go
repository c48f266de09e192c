package transport

import (
	"fmt"
	"net/url"
	"reflect"
	"strings"
)

// Param is one query-string key/value pair. Values may be strings, numbers,
// booleans or pointers to those; nil pointers, nil values and empty strings
// are omitted entirely when encoding.
type Param struct {
	Key   string
	Value any
}

// Query is an ordered set of parameters. Encoding order is insertion order,
// which keeps request URLs deterministic.
type Query []Param

// Set appends a parameter, replacing an existing one with the same key
// in place.
func (q Query) Set(key string, value any) Query {
	for i := range q {
		if q[i].Key == key {
			q[i].Value = value
			return q
		}
	}
	return append(q, Param{Key: key, Value: value})
}

// Encode renders the query string without a leading "?". Parameters whose
// value is nil, a nil pointer or an empty string are skipped.
func (q Query) Encode() string {
	var sb strings.Builder
	for _, p := range q {
		s, ok := stringifyParam(p.Value)
		if !ok {
			continue
		}
		if sb.Len() > 0 {
			sb.WriteByte('&')
		}
		sb.WriteString(url.QueryEscape(p.Key))
		sb.WriteByte('=')
		sb.WriteString(url.QueryEscape(s))
	}
	return sb.String()
}

// BuildQuery encodes params into a query string prefixed with "?", or
// returns "" when every parameter was omitted.
func BuildQuery(params ...Param) string {
	encoded := Query(params).Encode()
	if encoded == "" {
		return ""
	}
	return "?" + encoded
}

func stringifyParam(v any) (string, bool) {
	if v == nil {
		return "", false
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return "", false
		}
		rv = rv.Elem()
		v = rv.Interface()
	}
	if s, ok := v.(string); ok {
		if s == "" {
			return "", false
		}
		return s, true
	}
	return fmt.Sprintf("%v", v), true
}
