package scanner

import (
	"bytes"
	"encoding/json"
	"fmt"
	"iter"
	"slices"

	"github.com/tidwall/gjson"
)

// Ordered is a string-keyed map that remembers insertion order. The backend
// owns the key set, so platforms and thresholds are kept in the order they
// arrived rather than in a fixed struct.
//
// The zero value is an empty map. Ordered values are immutable once built:
// With and Without return reconstructed copies and never touch the receiver.
type Ordered[V comparable] struct {
	keys   []string
	values map[string]V
}

// Toggles maps platform names to their enabled flag.
type Toggles = Ordered[bool]

// Thresholds maps normalized search terms to a maximum price.
type Thresholds = Ordered[int]

// Len returns the number of entries.
func (o Ordered[V]) Len() int {
	return len(o.keys)
}

// Keys returns the keys in insertion order.
func (o Ordered[V]) Keys() []string {
	return slices.Clone(o.keys)
}

// Get returns the value stored under key.
func (o Ordered[V]) Get(key string) (V, bool) {
	v, ok := o.values[key]
	return v, ok
}

// Has reports whether key is present.
func (o Ordered[V]) Has(key string) bool {
	_, ok := o.values[key]
	return ok
}

// All iterates entries in insertion order.
func (o Ordered[V]) All() iter.Seq2[string, V] {
	return func(yield func(string, V) bool) {
		for _, k := range o.keys {
			if !yield(k, o.values[k]) {
				return
			}
		}
	}
}

// With returns a copy with key set to value. An existing key keeps its
// position; a new key is appended.
func (o Ordered[V]) With(key string, value V) Ordered[V] {
	out := o.clone(1)
	out.put(key, value)
	return out
}

// Without returns a copy with key removed. Removing an absent key returns an
// equal copy.
func (o Ordered[V]) Without(key string) Ordered[V] {
	out := Ordered[V]{
		keys:   make([]string, 0, len(o.keys)),
		values: make(map[string]V, len(o.keys)),
	}
	for _, k := range o.keys {
		if k == key {
			continue
		}
		out.keys = append(out.keys, k)
		out.values[k] = o.values[k]
	}
	return out
}

// Equal reports whether both maps hold the same entries in the same order.
func (o Ordered[V]) Equal(other Ordered[V]) bool {
	if !slices.Equal(o.keys, other.keys) {
		return false
	}
	for _, k := range o.keys {
		if o.values[k] != other.values[k] {
			return false
		}
	}
	return true
}

// MarshalJSON encodes the map as a JSON object with keys in stored order.
func (o Ordered[V]) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range o.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		kb, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		vb, err := json.Marshal(o.values[k])
		if err != nil {
			return nil, fmt.Errorf("encode %q: %w", k, err)
		}
		buf.Write(kb)
		buf.WriteByte(':')
		buf.Write(vb)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes a JSON object, preserving document key order. null
// leaves the receiver untouched. A duplicated key keeps its first position and
// its last value.
func (o *Ordered[V]) UnmarshalJSON(data []byte) error {
	if !gjson.ValidBytes(data) {
		return fmt.Errorf("invalid json object")
	}
	res := gjson.ParseBytes(data)
	if res.Type == gjson.Null {
		return nil
	}
	if !res.IsObject() {
		return fmt.Errorf("expected json object, got %s", res.Type)
	}

	var (
		out  Ordered[V]
		fail error
	)
	res.ForEach(func(key, value gjson.Result) bool {
		var v V
		if err := json.Unmarshal([]byte(value.Raw), &v); err != nil {
			fail = fmt.Errorf("decode %q: %w", key.String(), err)
			return false
		}
		out.put(key.String(), v)
		return true
	})
	if fail != nil {
		return fail
	}
	*o = out
	return nil
}

func (o Ordered[V]) clone(extra int) Ordered[V] {
	out := Ordered[V]{
		keys:   make([]string, len(o.keys), len(o.keys)+extra),
		values: make(map[string]V, len(o.keys)+extra),
	}
	copy(out.keys, o.keys)
	for k, v := range o.values {
		out.values[k] = v
	}
	return out
}

// put mutates in place and is only used on freshly built maps.
func (o *Ordered[V]) put(key string, value V) {
	if o.values == nil {
		o.values = make(map[string]V)
	}
	if _, ok := o.values[key]; !ok {
		o.keys = append(o.keys, key)
	}
	o.values[key] = value
}
