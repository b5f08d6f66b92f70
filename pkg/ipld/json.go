/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package ipld

import (
	"bytes"
	"fmt"
	"math"

	ipldjson "github.com/ipld/go-ipld-prime/codec/dagjson"
	"github.com/ipld/go-ipld-prime/datamodel"
	cidlink "github.com/ipld/go-ipld-prime/linking/cid"
	"github.com/ipld/go-ipld-prime/node/basicnode"
)

// MarshalJSON encodes n as DAG-JSON: map keys sorted bytewise, bytes as
// {"/":{"bytes":"..."}} and links as {"/":"<cid>"}.
func (n Node) MarshalJSON() ([]byte, error) {
	pn, err := n.toDataModel()
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer

	if err := ipldjson.Encode(pn, &buf); err != nil {
		return nil, fmt.Errorf("encode DAG-JSON: %w", err)
	}

	return buf.Bytes(), nil
}

// UnmarshalJSON decodes DAG-JSON into n.
func (n *Node) UnmarshalJSON(data []byte) error {
	nb := basicnode.Prototype.Any.NewBuilder()

	if err := ipldjson.Decode(nb, bytes.NewReader(data)); err != nil {
		return fmt.Errorf("decode DAG-JSON: %w", err)
	}

	decoded, err := fromDataModel(nb.Build())
	if err != nil {
		return err
	}

	*n = decoded

	return nil
}

func (n Node) toDataModel() (datamodel.Node, error) {
	nb := basicnode.Prototype.Any.NewBuilder()

	if err := n.assemble(nb); err != nil {
		return nil, err
	}

	return nb.Build(), nil
}

func (n Node) assemble(na datamodel.NodeAssembler) error {
	switch n.kind {
	case KindNull:
		return na.AssignNull()
	case KindBool:
		return na.AssignBool(n.b)
	case KindInt:
		return na.AssignInt(n.i)
	case KindFloat:
		if math.IsNaN(n.f) || math.IsInf(n.f, 0) {
			return fmt.Errorf("float %v is not representable", n.f)
		}

		return na.AssignFloat(n.f)
	case KindString:
		return na.AssignString(n.s)
	case KindBytes:
		return na.AssignBytes(n.raw)
	case KindList:
		la, err := na.BeginList(int64(len(n.list)))
		if err != nil {
			return err
		}

		for _, item := range n.list {
			if err := item.assemble(la.AssembleValue()); err != nil {
				return err
			}
		}

		return la.Finish()
	case KindMap:
		ma, err := na.BeginMap(int64(len(n.m)))
		if err != nil {
			return err
		}

		for _, k := range sortedKeys(n.m) {
			if err := ma.AssembleKey().AssignString(k); err != nil {
				return err
			}

			if err := n.m[k].assemble(ma.AssembleValue()); err != nil {
				return err
			}
		}

		return ma.Finish()
	case KindLink:
		if !n.link.Defined() {
			return fmt.Errorf("undefined link")
		}

		return na.AssignLink(cidlink.Link{Cid: n.link})
	default:
		return fmt.Errorf("unknown node kind %s", n.kind)
	}
}

func fromDataModel(pn datamodel.Node) (Node, error) { //nolint:gocyclo
	switch pn.Kind() {
	case datamodel.Kind_Null:
		return Null(), nil
	case datamodel.Kind_Bool:
		v, err := pn.AsBool()

		return Bool(v), err
	case datamodel.Kind_Int:
		v, err := pn.AsInt()

		return Int(v), err
	case datamodel.Kind_Float:
		v, err := pn.AsFloat()
		if err != nil {
			return Node{}, err
		}

		return fromFloat(v)
	case datamodel.Kind_String:
		v, err := pn.AsString()

		return String(v), err
	case datamodel.Kind_Bytes:
		v, err := pn.AsBytes()

		return Bytes(v), err
	case datamodel.Kind_List:
		list := make([]Node, 0, pn.Length())

		for it := pn.ListIterator(); !it.Done(); {
			_, v, err := it.Next()
			if err != nil {
				return Node{}, err
			}

			item, err := fromDataModel(v)
			if err != nil {
				return Node{}, err
			}

			list = append(list, item)
		}

		return Node{kind: KindList, list: list}, nil
	case datamodel.Kind_Map:
		m := make(map[string]Node, pn.Length())

		for it := pn.MapIterator(); !it.Done(); {
			k, v, err := it.Next()
			if err != nil {
				return Node{}, err
			}

			key, err := k.AsString()
			if err != nil {
				return Node{}, err
			}

			entry, err := fromDataModel(v)
			if err != nil {
				return Node{}, err
			}

			m[key] = entry
		}

		return Node{kind: KindMap, m: m}, nil
	case datamodel.Kind_Link:
		l, err := pn.AsLink()
		if err != nil {
			return Node{}, err
		}

		cl, ok := l.(cidlink.Link)
		if !ok {
			return Node{}, fmt.Errorf("unsupported link type %T", l)
		}

		return Link(cl.Cid), nil
	default:
		return Node{}, fmt.Errorf("unsupported data model kind %s", pn.Kind())
	}
}
