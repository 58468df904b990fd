package domain

import (
	"iter"
	"net/url"
	"strings"
)

// QueryParameters is an ordered view of a URL query string. Keys keep the
// position of their first occurrence; a repeated key takes the last value.
type QueryParameters struct {
	entries orderedMap[string]
}

func NewQueryParameters(pairs ...[2]string) QueryParameters {
	var q QueryParameters
	for _, pair := range pairs {
		q.Set(pair[0], pair[1])
	}
	return q
}

func (q *QueryParameters) Set(key, value string) {
	q.entries.set(key, value)
}

func (q QueryParameters) Get(key string) (string, bool) {
	return q.entries.get(key)
}

func (q QueryParameters) Len() int {
	return q.entries.len()
}

func (q QueryParameters) Keys() []string {
	return q.entries.keyList()
}

func (q QueryParameters) All() iter.Seq2[string, string] {
	return q.entries.all()
}

func (q QueryParameters) Map() map[string]string {
	return q.entries.toMap()
}

func (q QueryParameters) Clone() QueryParameters {
	return QueryParameters{entries: q.entries.clone()}
}

func (q QueryParameters) MarshalJSON() ([]byte, error) {
	return q.entries.marshalJSON()
}

// parseQuery splits a raw query on '&' and percent-decodes each key and value
// once. Pairs that fail to decode or have an empty key are skipped.
func parseQuery(rawQuery string) QueryParameters {
	var q QueryParameters
	for _, pair := range strings.Split(rawQuery, "&") {
		if pair == "" {
			continue
		}

		rawKey, rawValue, _ := strings.Cut(pair, "=")
		key, err := url.QueryUnescape(rawKey)
		if err != nil || key == "" {
			continue
		}
		value, err := url.QueryUnescape(rawValue)
		if err != nil {
			continue
		}

		q.Set(key, value)
	}
	return q
}
