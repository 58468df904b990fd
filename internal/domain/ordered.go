package domain

import (
	"bytes"
	"encoding/json"
	"iter"
)

// orderedMap keeps keys in first-insertion order. Setting an existing key
// replaces its value in place.
type orderedMap[V any] struct {
	keys   []string
	values map[string]V
}

func (m *orderedMap[V]) set(key string, value V) {
	if m.values == nil {
		m.values = map[string]V{}
	}
	if _, ok := m.values[key]; !ok {
		m.keys = append(m.keys, key)
	}
	m.values[key] = value
}

func (m orderedMap[V]) get(key string) (V, bool) {
	value, ok := m.values[key]
	return value, ok
}

func (m orderedMap[V]) len() int {
	return len(m.keys)
}

func (m orderedMap[V]) keyList() []string {
	keys := make([]string, len(m.keys))
	copy(keys, m.keys)
	return keys
}

func (m orderedMap[V]) all() iter.Seq2[string, V] {
	return func(yield func(string, V) bool) {
		for _, key := range m.keys {
			if !yield(key, m.values[key]) {
				return
			}
		}
	}
}

func (m orderedMap[V]) clone() orderedMap[V] {
	cloned := orderedMap[V]{keys: m.keyList(), values: make(map[string]V, len(m.values))}
	for key, value := range m.values {
		cloned.values[key] = value
	}
	return cloned
}

func (m orderedMap[V]) toMap() map[string]V {
	result := make(map[string]V, len(m.values))
	for key, value := range m.values {
		result[key] = value
	}
	return result
}

func (m orderedMap[V]) marshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, key := range m.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		encodedKey, err := json.Marshal(key)
		if err != nil {
			return nil, err
		}
		encodedValue, err := json.Marshal(m.values[key])
		if err != nil {
			return nil, err
		}
		buf.Write(encodedKey)
		buf.WriteByte(':')
		buf.Write(encodedValue)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
