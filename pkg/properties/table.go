// Package properties holds the flattened property table of a project and
// resolves ${name} version references against it.
package properties

import (
	"iter"
	"strings"
)

// Table is an insertion-ordered map from property key to raw value.
// The zero value is an empty table ready to use.
type Table struct {
	keys   []string
	values map[string]string
}

// NewTable creates a table from alternating key, value pairs.
func NewTable(pairs ...string) *Table {
	t := &Table{}
	for i := 0; i+1 < len(pairs); i += 2 {
		t.Set(pairs[i], pairs[i+1])
	}
	return t
}

// Set stores value under key. A repeated key keeps its original position.
func (t *Table) Set(key, value string) {
	if t.values == nil {
		t.values = make(map[string]string)
	}
	if _, ok := t.values[key]; !ok {
		t.keys = append(t.keys, key)
	}
	t.values[key] = value
}

// Get returns the raw value for key.
func (t *Table) Get(key string) (string, bool) {
	if t == nil {
		return "", false
	}
	v, ok := t.values[key]
	return v, ok
}

// Len returns the number of keys.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.keys)
}

// Keys returns the keys in insertion order.
func (t *Table) Keys() []string {
	if t == nil {
		return nil
	}
	return append([]string(nil), t.keys...)
}

// All iterates key, value pairs in insertion order.
func (t *Table) All() iter.Seq2[string, string] {
	return func(yield func(string, string) bool) {
		if t == nil {
			return
		}
		for _, k := range t.keys {
			if !yield(k, t.values[k]) {
				return
			}
		}
	}
}

// Merge copies every entry of other into t. Keys from other overwrite
// existing values, so later fragments win.
func (t *Table) Merge(other *Table) {
	for k, v := range other.All() {
		t.Set(k, v)
	}
}

// Merged flattens fragments in the given order into a new table.
func Merged(fragments ...*Table) *Table {
	out := &Table{}
	for _, f := range fragments {
		out.Merge(f)
	}
	return out
}

// Resolve returns the version raw refers to. A raw value of the form
// ${key} is looked up in table exactly once; anything else is returned
// unchanged. ok is false when the referenced key is not defined.
func Resolve(table *Table, raw string) (version string, ok bool) {
	key, isRef := Reference(raw)
	if !isRef {
		return raw, true
	}
	return table.Get(key)
}

// Reference reports whether raw is a ${key} reference and returns the key.
func Reference(raw string) (string, bool) {
	if len(raw) < 3 || !strings.HasPrefix(raw, "${") || !strings.HasSuffix(raw, "}") {
		return "", false
	}
	return raw[2 : len(raw)-1], true
}
