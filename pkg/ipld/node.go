/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package ipld implements a schemaless tree value (the IPLD data model) with
// DAG-CBOR and DAG-JSON encodings.
package ipld

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/ipfs/go-cid"

	"github.com/trustbloc/dag-jose-go/pkg/codec/dagcbor"
	"github.com/trustbloc/dag-jose-go/pkg/codec/dagjson"
)

// Kind identifies the kind of value a Node holds.
type Kind int

// Node kinds.
const (
	KindNull Kind = iota
	KindBool
	KindInt
	KindFloat
	KindString
	KindBytes
	KindList
	KindMap
	KindLink
)

var kindNames = map[Kind]string{
	KindNull:   "null",
	KindBool:   "bool",
	KindInt:    "int",
	KindFloat:  "float",
	KindString: "string",
	KindBytes:  "bytes",
	KindList:   "list",
	KindMap:    "map",
	KindLink:   "link",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}

	return fmt.Sprintf("Kind(%d)", int(k))
}

// Node is a tree value. The zero Node is null.
type Node struct {
	kind Kind
	b    bool
	i    int64
	f    float64
	s    string
	raw  []byte
	list []Node
	m    map[string]Node
	link cid.Cid
}

// Null returns the null node.
func Null() Node { return Node{} }

// Bool returns a boolean node.
func Bool(v bool) Node { return Node{kind: KindBool, b: v} }

// Int returns an integer node.
func Int(v int64) Node { return Node{kind: KindInt, i: v} }

// Float returns a float node.
func Float(v float64) Node { return Node{kind: KindFloat, f: v} }

// String returns a text node.
func String(v string) Node { return Node{kind: KindString, s: v} }

// Bytes returns a byte string node holding a copy of v.
func Bytes(v []byte) Node {
	raw := make([]byte, len(v))
	copy(raw, v)

	return Node{kind: KindBytes, raw: raw}
}

// List returns a list node.
func List(items ...Node) Node {
	list := make([]Node, len(items))
	copy(list, items)

	return Node{kind: KindList, list: list}
}

// Map returns a map node holding a copy of entries.
func Map(entries map[string]Node) Node {
	m := make(map[string]Node, len(entries))
	for k, v := range entries {
		m[k] = v
	}

	return Node{kind: KindMap, m: m}
}

// Link returns a link node.
func Link(c cid.Cid) Node { return Node{kind: KindLink, link: c} }

// Kind returns the kind of n.
func (n Node) Kind() Kind { return n.kind }

// IsNull reports whether n is null.
func (n Node) IsNull() bool { return n.kind == KindNull }

// AsBool returns the boolean value of n.
func (n Node) AsBool() (bool, bool) { return n.b, n.kind == KindBool }

// AsInt returns the integer value of n.
func (n Node) AsInt() (int64, bool) { return n.i, n.kind == KindInt }

// AsFloat returns the float value of n.
func (n Node) AsFloat() (float64, bool) { return n.f, n.kind == KindFloat }

// AsString returns the text value of n.
func (n Node) AsString() (string, bool) { return n.s, n.kind == KindString }

// AsBytes returns the byte string value of n.
func (n Node) AsBytes() ([]byte, bool) { return n.raw, n.kind == KindBytes }

// AsList returns the items of a list node.
func (n Node) AsList() ([]Node, bool) { return n.list, n.kind == KindList }

// AsMap returns the entries of a map node.
func (n Node) AsMap() (map[string]Node, bool) { return n.m, n.kind == KindMap }

// AsLink returns the CID of a link node.
func (n Node) AsLink() (cid.Cid, bool) { return n.link, n.kind == KindLink }

// Lookup returns the entry under key in a map node.
func (n Node) Lookup(key string) (Node, bool) {
	if n.kind != KindMap {
		return Node{}, false
	}

	v, ok := n.m[key]

	return v, ok
}

// Links returns every link in n, depth first, map entries in canonical key order.
func (n Node) Links() []cid.Cid {
	var links []cid.Cid

	n.walkLinks(&links)

	return links
}

func (n Node) walkLinks(links *[]cid.Cid) {
	switch n.kind {
	case KindLink:
		*links = append(*links, n.link)
	case KindList:
		for _, item := range n.list {
			item.walkLinks(links)
		}
	case KindMap:
		for _, k := range sortedKeys(n.m) {
			n.m[k].walkLinks(links)
		}
	}
}

func sortedKeys(m map[string]Node) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}

	dagcbor.SortKeys(keys)

	return keys
}

// FromValue converts a plain Go value into a Node. Supported values are nil,
// bool, signed and unsigned integers, float32/64, dagjson.Number, string,
// []byte, cid.Cid, Node, []interface{} and map[string]interface{}.
func FromValue(v interface{}) (Node, error) {
	switch val := v.(type) {
	case nil:
		return Null(), nil
	case Node:
		return val, nil
	case bool:
		return Bool(val), nil
	case int:
		return Int(int64(val)), nil
	case int8:
		return Int(int64(val)), nil
	case int16:
		return Int(int64(val)), nil
	case int32:
		return Int(int64(val)), nil
	case int64:
		return Int(val), nil
	case uint8:
		return Int(int64(val)), nil
	case uint16:
		return Int(int64(val)), nil
	case uint32:
		return Int(int64(val)), nil
	case uint:
		return fromUint(uint64(val))
	case uint64:
		return fromUint(val)
	case float32:
		return fromFloat(float64(val))
	case float64:
		return fromFloat(val)
	case dagjson.Number:
		return fromNumber(val)
	case string:
		return String(val), nil
	case []byte:
		return Bytes(val), nil
	case cid.Cid:
		return Link(val), nil
	case []interface{}:
		list := make([]Node, len(val))

		for i, item := range val {
			n, err := FromValue(item)
			if err != nil {
				return Node{}, err
			}

			list[i] = n
		}

		return Node{kind: KindList, list: list}, nil
	case map[string]interface{}:
		m := make(map[string]Node, len(val))

		for k, item := range val {
			n, err := FromValue(item)
			if err != nil {
				return Node{}, err
			}

			m[k] = n
		}

		return Node{kind: KindMap, m: m}, nil
	default:
		return Node{}, fmt.Errorf("unsupported value type %T", v)
	}
}

func fromUint(v uint64) (Node, error) {
	if v > math.MaxInt64 {
		return Node{}, fmt.Errorf("integer %d overflows int64", v)
	}

	return Int(int64(v)), nil
}

func fromFloat(v float64) (Node, error) {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return Node{}, fmt.Errorf("float %v is not representable", v)
	}

	return Float(v), nil
}

func fromNumber(num dagjson.Number) (Node, error) {
	s := num.String()

	if strings.ContainsAny(s, ".eE") {
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return Node{}, fmt.Errorf("invalid float %s: %w", s, err)
		}

		return fromFloat(f)
	}

	i, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return Node{}, fmt.Errorf("invalid integer %s: %w", s, err)
	}

	return Int(i), nil
}
