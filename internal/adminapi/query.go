package adminapi

import (
	"net/url"
	"strconv"
	"strings"
)

// Query is an ordered query string. Keys are emitted in insertion order so the
// same filter always produces the same URL.
type Query struct {
	keys []string
	vals []string
}

func (q *Query) Set(key, value string) {
	for i, k := range q.keys {
		if k == key {
			q.vals[i] = value
			return
		}
	}
	q.keys = append(q.keys, key)
	q.vals = append(q.vals, value)
}

// SetNonEmpty sets key only when value is not blank.
func (q *Query) SetNonEmpty(key, value string) {
	if strings.TrimSpace(value) != "" {
		q.Set(key, value)
	}
}

// SetPositive sets key only when n > 0.
func (q *Query) SetPositive(key string, n int) {
	if n > 0 {
		q.Set(key, strconv.Itoa(n))
	}
}

func (q Query) Get(key string) string {
	for i, k := range q.keys {
		if k == key {
			return q.vals[i]
		}
	}
	return ""
}

func (q Query) Len() int { return len(q.keys) }

func (q Query) Encode() string {
	if len(q.keys) == 0 {
		return ""
	}

	var b strings.Builder
	for i, k := range q.keys {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(url.QueryEscape(k))
		b.WriteByte('=')
		b.WriteString(url.QueryEscape(q.vals[i]))
	}
	return b.String()
}

func joinIDs[K int64 | string](ids []K) string {
	parts := make([]string, 0, len(ids))
	for _, id := range ids {
		switch v := any(id).(type) {
		case int64:
			parts = append(parts, strconv.FormatInt(v, 10))
		case string:
			parts = append(parts, v)
		}
	}
	return strings.Join(parts, ",")
}
