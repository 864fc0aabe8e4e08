package loader

import (
	"bytes"
	"math"
	"sort"
	"strconv"

	json "github.com/goccy/go-json"
)

// Document is a parsed glTF JSON tree.
// It offers key lookup, array iteration and scalar coercion without binding to a schema,
// so unknown or extension properties never fail a decode.
type Document struct {
	root Node
}

// Node is one value inside a Document. The zero Node is absent.
type Node struct {
	v       any
	present bool
}

// ParseDocument parses glTF JSON text.
// Numbers are kept as json.Number so integer fields are read exactly.
//
// Parameters:
//   - data: UTF-8 JSON text
//
// Returns:
//   - *Document: the parsed document
//   - error: a KindInvalidDocument error if data is not a JSON object
func ParseDocument(data []byte) (*Document, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, newError(KindInvalidDocument).withCause(err)
	}
	if _, ok := v.(map[string]any); !ok {
		return nil, newError(KindInvalidDocument).withDetail("top-level value is not an object")
	}

	return &Document{root: Node{v: v, present: true}}, nil
}

// Root returns the top-level object.
func (d *Document) Root() Node {
	return d.root
}

// Get is shorthand for d.Root().Get(key).
func (d *Document) Get(key string) Node {
	return d.root.Get(key)
}

// Exists reports whether the node is present in the document (a JSON null counts as present).
func (n Node) Exists() bool {
	return n.present
}

// IsNull reports whether the node holds a JSON null.
func (n Node) IsNull() bool {
	return n.present && n.v == nil
}

// Get looks up key in an object node. Missing keys and non-object nodes yield an absent Node.
func (n Node) Get(key string) Node {
	obj, ok := n.v.(map[string]any)
	if !ok {
		return Node{}
	}
	v, ok := obj[key]
	if !ok {
		return Node{}
	}
	return Node{v: v, present: true}
}

// Has reports whether an object node carries key.
func (n Node) Has(key string) bool {
	return n.Get(key).present
}

// Index returns the i-th element of an array node, or an absent Node.
func (n Node) Index(i int) Node {
	arr, ok := n.v.([]any)
	if !ok || i < 0 || i >= len(arr) {
		return Node{}
	}
	return Node{v: arr[i], present: true}
}

// Len returns the element count of an array node or the key count of an object node, 0 otherwise.
func (n Node) Len() int {
	switch v := n.v.(type) {
	case []any:
		return len(v)
	case map[string]any:
		return len(v)
	default:
		return 0
	}
}

// IsArray reports whether the node holds a JSON array.
func (n Node) IsArray() bool {
	_, ok := n.v.([]any)
	return ok
}

// IsObject reports whether the node holds a JSON object.
func (n Node) IsObject() bool {
	_, ok := n.v.(map[string]any)
	return ok
}

// Keys returns the keys of an object node in ascending byte order.
func (n Node) Keys() []string {
	obj, ok := n.v.(map[string]any)
	if !ok {
		return nil
	}
	keys := make([]string, 0, len(obj))
	for k := range obj {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Int coerces a numeric node to int. Integral floats such as 3.0 are accepted.
//
// Returns:
//   - int: the value
//   - bool: false if the node is not an integral number that fits in int
func (n Node) Int() (int, bool) {
	num, ok := n.v.(json.Number)
	if !ok {
		return 0, false
	}
	if i, err := strconv.ParseInt(string(num), 10, 0); err == nil {
		return int(i), true
	}
	f, err := strconv.ParseFloat(string(num), 64)
	if err != nil || f != math.Trunc(f) || f > math.MaxInt || f < math.MinInt {
		return 0, false
	}
	return int(f), true
}

// String returns the value of a string node.
func (n Node) String() (string, bool) {
	s, ok := n.v.(string)
	return s, ok
}
