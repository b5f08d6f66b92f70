/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package dagjose implements the DAG-JOSE codec: JOSE values (JWS and JWE)
// stored as canonical DAG-CBOR blocks.
package dagjose

import (
	"bytes"
	"io"

	"github.com/ipfs/go-cid"
	"github.com/trustbloc/logutil-go/pkg/log"

	"github.com/trustbloc/dag-jose-go/pkg/cidutil"
	"github.com/trustbloc/dag-jose-go/pkg/codec/dagcbor"
	logfields "github.com/trustbloc/dag-jose-go/pkg/internal/log"
	"github.com/trustbloc/dag-jose-go/pkg/ipld"
)

// Code is the DAG-JOSE multicodec.
const Code = cidutil.DagJOSE

var logger = log.New("dag-jose")

// Encode writes value to w as a DAG-JOSE block.
func Encode(w io.Writer, value Jose) error {
	data, err := Marshal(value)
	if err != nil {
		return err
	}

	if _, err := w.Write(data); err != nil {
		return wrapError(KindCodec, "write block", err)
	}

	return nil
}

// Marshal returns the DAG-JOSE encoding of value.
func Marshal(value Jose) ([]byte, error) {
	e, err := toEncoded(value)
	if err != nil {
		return nil, err
	}

	data, err := dagcbor.Marshal(e)
	if err != nil {
		return nil, wrapError(KindCodec, "encode DAG-CBOR", err)
	}

	logger.Debug("encoded JOSE value", logfields.WithCodec(Code),
		logfields.WithVariant(value.variant()), logfields.WithSize(len(data)))

	return data, nil
}

// Decode reads a DAG-JOSE block from r. The result is either a
// *JSONWebSignature or a *JSONWebEncryption.
func Decode(r io.Reader) (Jose, error) {
	data, err := readAll(r)
	if err != nil {
		return nil, err
	}

	return Unmarshal(data)
}

// Unmarshal decodes a DAG-JOSE block.
func Unmarshal(data []byte) (Jose, error) {
	e, err := unmarshalEncoded(data)
	if err != nil {
		return nil, err
	}

	value, err := toJose(e)
	if err != nil {
		return nil, err
	}

	logger.Debug("decoded JOSE value", logfields.WithCodec(Code),
		logfields.WithVariant(value.variant()), logfields.WithSize(len(data)))

	return value, nil
}

// EncodeJWS writes s to w as a DAG-JOSE block.
func EncodeJWS(w io.Writer, s *JSONWebSignature) error {
	return Encode(w, s)
}

// MarshalJWS returns the DAG-JOSE encoding of s.
func MarshalJWS(s *JSONWebSignature) ([]byte, error) {
	return Marshal(s)
}

// DecodeJWS reads a block from r that must hold a JWS.
func DecodeJWS(r io.Reader) (*JSONWebSignature, error) {
	data, err := readAll(r)
	if err != nil {
		return nil, err
	}

	return UnmarshalJWS(data)
}

// UnmarshalJWS decodes a block that must hold a JWS. Anything else fails
// with KindNotJWS.
func UnmarshalJWS(data []byte) (*JSONWebSignature, error) {
	e, err := unmarshalEncoded(data)
	if err != nil {
		return nil, err
	}

	return toJWS(e)
}

// EncodeJWE writes e to w as a DAG-JOSE block.
func EncodeJWE(w io.Writer, e *JSONWebEncryption) error {
	return Encode(w, e)
}

// MarshalJWE returns the DAG-JOSE encoding of e.
func MarshalJWE(e *JSONWebEncryption) ([]byte, error) {
	return Marshal(e)
}

// DecodeJWE reads a block from r that must hold a JWE.
func DecodeJWE(r io.Reader) (*JSONWebEncryption, error) {
	data, err := readAll(r)
	if err != nil {
		return nil, err
	}

	return UnmarshalJWE(data)
}

// UnmarshalJWE decodes a block that must hold a JWE. Anything else fails
// with KindNotJWE.
func UnmarshalJWE(data []byte) (*JSONWebEncryption, error) {
	e, err := unmarshalEncoded(data)
	if err != nil {
		return nil, err
	}

	return toJWE(e)
}

// EncodeNode writes an arbitrary tree value to w as canonical DAG-CBOR.
// No JOSE structure is enforced.
func EncodeNode(w io.Writer, n ipld.Node) error {
	data, err := MarshalNode(n)
	if err != nil {
		return err
	}

	if _, err := w.Write(data); err != nil {
		return wrapError(KindCodec, "write block", err)
	}

	return nil
}

// MarshalNode returns the canonical DAG-CBOR encoding of n.
func MarshalNode(n ipld.Node) ([]byte, error) {
	data, err := dagcbor.Marshal(n)
	if err != nil {
		return nil, wrapError(KindCodec, "encode DAG-CBOR", err)
	}

	return data, nil
}

// DecodeNode reads a block from r as a generic tree value.
func DecodeNode(r io.Reader) (ipld.Node, error) {
	data, err := readAll(r)
	if err != nil {
		return ipld.Null(), err
	}

	return UnmarshalNode(data)
}

// UnmarshalNode decodes a block as a generic tree value.
func UnmarshalNode(data []byte) (ipld.Node, error) {
	var n ipld.Node
	if err := dagcbor.Unmarshal(data, &n); err != nil {
		return ipld.Null(), wrapError(KindCodec, "decode DAG-CBOR", err)
	}

	return n, nil
}

// Links returns the CIDs a block references without decoding it into the
// domain model. The payload CID comes first when the payload bytes hold one,
// followed by every tag-42 link in canonical order.
func Links(data []byte) ([]cid.Cid, error) {
	var top interface{}
	if err := dagcbor.Unmarshal(data, &top); err != nil {
		return nil, wrapError(KindCodec, "decode DAG-CBOR", err)
	}

	var links []cid.Cid

	if m, ok := top.(map[string]interface{}); ok {
		if payload, ok := m["payload"].([]byte); ok {
			if c, err := cidutil.Cast(payload); err == nil {
				links = append(links, c)
			}
		}
	}

	tagged, err := dagcbor.Links(data)
	if err != nil {
		return nil, wrapError(KindCodec, "collect links", err)
	}

	links = append(links, tagged...)

	logger.Debug("collected links", logfields.WithTotal(len(links)))

	return links, nil
}

// CID returns the identity of a DAG-JOSE block: CIDv1, codec 0x85, sha2-256.
func CID(data []byte) (cid.Cid, error) {
	c, err := cidutil.Sum(Code, data)
	if err != nil {
		return cid.Undef, wrapError(KindCodec, "hash block", err)
	}

	return c, nil
}

func unmarshalEncoded(data []byte) (*encoded, error) {
	e := &encoded{}
	if err := dagcbor.Unmarshal(data, e); err != nil {
		return nil, wrapError(KindCodec, "decode DAG-CBOR", err)
	}

	return e, nil
}

func readAll(r io.Reader) ([]byte, error) {
	var buf bytes.Buffer
	if _, err := buf.ReadFrom(r); err != nil {
		return nil, wrapError(KindCodec, "read block", err)
	}

	return buf.Bytes(), nil
}
