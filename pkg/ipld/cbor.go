/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package ipld

import (
	"fmt"
	"math"

	"github.com/fxamacker/cbor/v2"

	"github.com/trustbloc/dag-jose-go/pkg/codec/dagcbor"
)

// MarshalCBOR encodes n as DAG-CBOR.
func (n Node) MarshalCBOR() ([]byte, error) {
	v, err := n.cborValue()
	if err != nil {
		return nil, err
	}

	return dagcbor.Marshal(v)
}

// UnmarshalCBOR decodes a DAG-CBOR data item into n.
func (n *Node) UnmarshalCBOR(data []byte) error {
	var v interface{}
	if err := dagcbor.Unmarshal(data, &v); err != nil {
		return err
	}

	decoded, err := fromCBORValue(v)
	if err != nil {
		return err
	}

	*n = decoded

	return nil
}

func (n Node) cborValue() (interface{}, error) {
	switch n.kind {
	case KindNull:
		return nil, nil
	case KindBool:
		return n.b, nil
	case KindInt:
		return n.i, nil
	case KindFloat:
		if math.IsNaN(n.f) || math.IsInf(n.f, 0) {
			return nil, fmt.Errorf("float %v is not representable", n.f)
		}

		return n.f, nil
	case KindString:
		return n.s, nil
	case KindBytes:
		return n.raw, nil
	case KindList:
		list := make([]interface{}, len(n.list))

		for i, item := range n.list {
			v, err := item.cborValue()
			if err != nil {
				return nil, err
			}

			list[i] = v
		}

		return list, nil
	case KindMap:
		m := make(map[string]interface{}, len(n.m))

		for k, item := range n.m {
			v, err := item.cborValue()
			if err != nil {
				return nil, err
			}

			m[k] = v
		}

		return m, nil
	case KindLink:
		if !n.link.Defined() {
			return nil, fmt.Errorf("undefined link")
		}

		return dagcbor.EncodeLink(n.link), nil
	default:
		return nil, fmt.Errorf("unknown node kind %s", n.kind)
	}
}

func fromCBORValue(v interface{}) (Node, error) {
	switch val := v.(type) {
	case cbor.Tag:
		if val.Number != dagcbor.LinkTag {
			return Node{}, fmt.Errorf("unsupported tag %d", val.Number)
		}

		c, err := dagcbor.DecodeLink(val)
		if err != nil {
			return Node{}, fmt.Errorf("invalid link: %w", err)
		}

		return Link(c), nil
	case []interface{}:
		list := make([]Node, len(val))

		for i, item := range val {
			n, err := fromCBORValue(item)
			if err != nil {
				return Node{}, err
			}

			list[i] = n
		}

		return Node{kind: KindList, list: list}, nil
	case map[string]interface{}:
		m := make(map[string]Node, len(val))

		for k, item := range val {
			n, err := fromCBORValue(item)
			if err != nil {
				return Node{}, err
			}

			m[k] = n
		}

		return Node{kind: KindMap, m: m}, nil
	case nil, bool, int64, uint64, float64, string, []byte:
		return FromValue(val)
	default:
		return Node{}, fmt.Errorf("unsupported CBOR value of type %T", v)
	}
}
