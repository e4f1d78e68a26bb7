package reluri

import (
	"iter"
	"net/url"
	"slices"
	"strings"

	"github.com/ghettovoice/reluri/internal/util"
)

// Pair is a decoded key-value pair of a form-encoded query.
type Pair struct {
	Key, Value string
}

// QueryPairs is a mutable view of URI query pairs, see [URI.WithQueryPairs].
// Pairs keep their order and duplicate keys are allowed. Keys are case-sensitive.
type QueryPairs struct {
	pairs []Pair
}

// Len returns the number of pairs.
func (q *QueryPairs) Len() int { return len(q.pairs) }

// All returns an iterator over keys and values.
func (q *QueryPairs) All() iter.Seq2[string, string] {
	return func(yield func(string, string) bool) {
		for _, p := range q.pairs {
			if !yield(p.Key, p.Value) {
				return
			}
		}
	}
}

// Get returns the first value associated with the key.
func (q *QueryPairs) Get(key string) (string, bool) {
	if i := q.index(key); i >= 0 {
		return q.pairs[i].Value, true
	}
	return "", false
}

// GetAll returns all values associated with the key.
func (q *QueryPairs) GetAll(key string) []string {
	var vals []string
	for _, p := range q.pairs {
		if p.Key == key {
			vals = append(vals, p.Value)
		}
	}
	return vals
}

// Has checks whether the key is present.
func (q *QueryPairs) Has(key string) bool { return q.index(key) >= 0 }

// Append appends a pair.
func (q *QueryPairs) Append(key, value string) *QueryPairs {
	q.pairs = append(q.pairs, Pair{key, value})
	return q
}

// Extend appends pairs.
func (q *QueryPairs) Extend(pairs ...Pair) *QueryPairs {
	q.pairs = append(q.pairs, pairs...)
	return q
}

// Set replaces the value of the first pair with the key and drops the other pairs with the key.
// The pair is appended if the key is missing.
func (q *QueryPairs) Set(key, value string) *QueryPairs {
	i := q.index(key)
	if i < 0 {
		return q.Append(key, value)
	}
	q.pairs[i].Value = value
	tail := slices.DeleteFunc(q.pairs[i+1:], func(p Pair) bool { return p.Key == key })
	q.pairs = q.pairs[:i+1+len(tail)]
	return q
}

// Del removes all pairs with the key.
func (q *QueryPairs) Del(key string) *QueryPairs {
	q.pairs = slices.DeleteFunc(q.pairs, func(p Pair) bool { return p.Key == key })
	return q
}

// Clear removes all pairs.
func (q *QueryPairs) Clear() *QueryPairs {
	q.pairs = q.pairs[:0]
	return q
}

func (q *QueryPairs) index(key string) int {
	return slices.IndexFunc(q.pairs, func(p Pair) bool { return p.Key == key })
}

// parsePairs parses an application/x-www-form-urlencoded query into ordered pairs.
// Empty parts are skipped, a part without "=" has an empty value.
func parsePairs(raw string) []Pair {
	if raw == "" {
		return nil
	}
	var pairs []Pair
	for part := range strings.SplitSeq(raw, "&") {
		if part == "" {
			continue
		}
		k, v, _ := strings.Cut(part, "=")
		pairs = append(pairs, Pair{unescapeForm(k), unescapeForm(v)})
	}
	return pairs
}

func encodePairs(pairs []Pair) string {
	sb := util.GetStringBuilder()
	defer util.FreeStringBuilder(sb)

	for i, p := range pairs {
		if i > 0 {
			sb.WriteByte('&')
		}
		sb.WriteString(url.QueryEscape(p.Key))
		sb.WriteByte('=')
		sb.WriteString(url.QueryEscape(p.Value))
	}
	return sb.String()
}

func unescapeForm(s string) string {
	if v, err := url.QueryUnescape(s); err == nil {
		return v
	}
	return s
}
