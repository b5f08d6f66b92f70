/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package dagcbor configures CBOR for the DAG-CBOR canonical form: map keys
// ordered by length and then bytewise, 64-bit floats, definite lengths only,
// and CIDs carried as tag 42.
package dagcbor

import (
	"fmt"
	"io"
	"reflect"
	"sort"

	"github.com/fxamacker/cbor/v2"
	"github.com/ipfs/go-cid"

	"github.com/trustbloc/dag-jose-go/pkg/cidutil"
)

// Code is the DAG-CBOR multicodec.
const Code = cidutil.DagCBOR

// LinkTag is the CBOR tag that marks a CID.
const LinkTag = 42

var (
	encMode cbor.EncMode
	decMode cbor.DecMode
)

func init() {
	var err error

	encOptions := cbor.CanonicalEncOptions()
	encOptions.ShortestFloat = cbor.ShortestFloatNone
	encOptions.NaNConvert = cbor.NaNConvertReject
	encOptions.InfConvert = cbor.InfConvertReject
	encOptions.NilContainers = cbor.NilContainerAsEmpty

	encMode, err = encOptions.EncMode()
	if err != nil {
		panic("dagcbor: encoder initialization failed: " + err.Error())
	}

	decMode, err = cbor.DecOptions{
		DupMapKey:         cbor.DupMapKeyEnforcedAPF,
		IndefLength:       cbor.IndefLengthForbidden,
		TagsMd:            cbor.TagsAllowed,
		DefaultMapType:    reflect.TypeOf(map[string]any(nil)),
		FieldNameMatching: cbor.FieldNameMatchingCaseSensitive,
	}.DecMode()
	if err != nil {
		panic("dagcbor: decoder initialization failed: " + err.Error())
	}
}

// Marshal encodes v in canonical form.
func Marshal(v any) ([]byte, error) {
	return encMode.Marshal(v)
}

// Unmarshal decodes a single CBOR data item into v. Trailing bytes are an error.
func Unmarshal(data []byte, v any) error {
	return decMode.Unmarshal(data, v)
}

// NewEncoder returns a canonical encoder writing to w.
func NewEncoder(w io.Writer) *cbor.Encoder {
	return encMode.NewEncoder(w)
}

// NewDecoder returns a decoder reading from r.
func NewDecoder(r io.Reader) *cbor.Decoder {
	return decMode.NewDecoder(r)
}

// Diagnose returns the diagnostic notation (RFC 8949 §8) of data.
func Diagnose(data []byte) (string, error) {
	return cbor.Diagnose(data)
}

// KeyLess reports whether map key a sorts before b: shorter keys first,
// equal lengths compared bytewise.
func KeyLess(a, b string) bool {
	if len(a) != len(b) {
		return len(a) < len(b)
	}

	return a < b
}

// SortKeys sorts keys in canonical order.
func SortKeys(keys []string) {
	sort.Slice(keys, func(i, j int) bool { return KeyLess(keys[i], keys[j]) })
}

// EncodeLink returns the tag 42 form of c. The content is the binary CID
// prefixed with the multibase identity byte 0x00.
func EncodeLink(c cid.Cid) cbor.Tag {
	b := c.Bytes()
	content := make([]byte, 0, len(b)+1)
	content = append(content, 0x00)
	content = append(content, b...)

	return cbor.Tag{Number: LinkTag, Content: content}
}

// DecodeLink parses a tag 42 value.
func DecodeLink(tag cbor.Tag) (cid.Cid, error) {
	if tag.Number != LinkTag {
		return cid.Undef, fmt.Errorf("unexpected tag %d", tag.Number)
	}

	b, ok := tag.Content.([]byte)
	if !ok {
		return cid.Undef, fmt.Errorf("link content is %T, not a byte string", tag.Content)
	}

	if len(b) == 0 || b[0] != 0x00 {
		return cid.Undef, fmt.Errorf("link is missing the multibase identity prefix")
	}

	return cidutil.Cast(b[1:])
}
