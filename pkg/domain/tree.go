package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"iter"
)

// Tree is an ordered mapping of NodeId to Element.
// Insertion order is the sibling (display) order. The zero value is an empty tree.
type Tree struct {
	keys  []string
	items map[string]*Element
}

// NewTree builds a tree keyed by each element's link id, in the given order.
func NewTree(elements ...*Element) Tree {
	var t Tree
	for _, el := range elements {
		t.Set(el.Link.ID, el)
	}
	return t
}

// Len returns the number of entries.
func (t Tree) Len() int {
	return len(t.keys)
}

// IsEmpty reports whether the tree has no entries.
func (t Tree) IsEmpty() bool {
	return len(t.keys) == 0
}

// Set stores el under key. Existing keys keep their position.
func (t *Tree) Set(key string, el *Element) {
	if t.items == nil {
		t.items = make(map[string]*Element)
	}
	if _, ok := t.items[key]; !ok {
		t.keys = append(t.keys, key)
	}
	t.items[key] = el
}

// Get returns the element stored under key.
func (t Tree) Get(key string) (*Element, bool) {
	el, ok := t.items[key]
	return el, ok
}

// Delete removes key, preserving the order of the remaining entries.
func (t *Tree) Delete(key string) {
	if _, ok := t.items[key]; !ok {
		return
	}
	delete(t.items, key)
	for i, k := range t.keys {
		if k == key {
			t.keys = append(t.keys[:i:i], t.keys[i+1:]...)
			return
		}
	}
}

// Keys returns a copy of the keys in order.
func (t Tree) Keys() []string {
	out := make([]string, len(t.keys))
	copy(out, t.keys)
	return out
}

// Elements returns the elements in order.
func (t Tree) Elements() []*Element {
	out := make([]*Element, 0, len(t.keys))
	for _, k := range t.keys {
		out = append(out, t.items[k])
	}
	return out
}

// All iterates the entries in sibling order.
func (t Tree) All() iter.Seq2[string, *Element] {
	return func(yield func(string, *Element) bool) {
		for _, k := range t.keys {
			if !yield(k, t.items[k]) {
				return
			}
		}
	}
}

// Backward iterates the entries in reverse sibling order.
func (t Tree) Backward() iter.Seq2[string, *Element] {
	return func(yield func(string, *Element) bool) {
		for i := len(t.keys) - 1; i >= 0; i-- {
			if !yield(t.keys[i], t.items[t.keys[i]]) {
				return
			}
		}
	}
}

// Find scans the tree in order for the element whose link plugin id is id.
// It returns the position of the element, or -1 when it is absent.
func (t Tree) Find(id string) (int, *Element) {
	for i, k := range t.keys {
		if el := t.items[k]; el != nil && el.Link.PluginID() == id {
			return i, el
		}
	}
	return -1, nil
}

// Clone returns a deep copy of the tree.
func (t Tree) Clone() Tree {
	var c Tree
	for k, el := range t.All() {
		c.Set(k, el.Clone())
	}
	return c
}

// MarshalJSON encodes the tree as a JSON object whose keys keep sibling order.
func (t Tree) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range t.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(t.items[k])
		if err != nil {
			return nil, fmt.Errorf("failed to marshal element %s: %w", k, err)
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes a JSON object, keeping the key order of the document.
func (t *Tree) UnmarshalJSON(data []byte) error {
	*t = Tree{}
	if string(bytes.TrimSpace(data)) == "null" {
		return nil
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("tree: expected object, got %v", tok)
	}

	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := tok.(string)
		if !ok {
			return fmt.Errorf("tree: expected string key, got %v", tok)
		}
		var el Element
		if err := dec.Decode(&el); err != nil {
			return fmt.Errorf("tree: element %s: %w", key, err)
		}
		t.Set(key, &el)
	}

	_, err = dec.Token()
	return err
}
