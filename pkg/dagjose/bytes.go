/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package dagjose

import (
	"fmt"

	"github.com/trustbloc/dag-jose-go/pkg/codec/dagcbor"
	"github.com/trustbloc/dag-jose-go/pkg/encoder"
)

const majorTypeByteString = 2

// Bytes is a raw byte sequence. It always encodes as a CBOR byte string and
// only decodes from one, never from text.
type Bytes []byte

// Base64URL returns b as unpadded base64url text.
func (b Bytes) Base64URL() string {
	return encoder.EncodeToString(b)
}

// MarshalCBOR encodes b as a byte string.
func (b Bytes) MarshalCBOR() ([]byte, error) {
	return dagcbor.Marshal([]byte(b))
}

// UnmarshalCBOR decodes a byte string into b.
func (b *Bytes) UnmarshalCBOR(data []byte) error {
	if len(data) == 0 || data[0]>>5 != majorTypeByteString {
		return fmt.Errorf("expected a CBOR byte string")
	}

	var raw []byte
	if err := dagcbor.Unmarshal(data, &raw); err != nil {
		return err
	}

	*b = raw

	return nil
}

func bytesFromBase64URL(field, value string) (Bytes, error) {
	raw, err := encoder.DecodeString(value)
	if err != nil {
		return nil, wrapError(KindInvalidBase64URL, fmt.Sprintf("invalid base64 url data in %s", field), err)
	}

	return raw, nil
}

func checkBase64URL(field, value string) error {
	_, err := bytesFromBase64URL(field, value)

	return err
}

func checkOptionalBase64URL(field string, value *string) error {
	if value == nil {
		return nil
	}

	return checkBase64URL(field, *value)
}

func optionalBytesFromBase64URL(field string, value *string) (*Bytes, error) {
	if value == nil {
		return nil, nil
	}

	b, err := bytesFromBase64URL(field, *value)
	if err != nil {
		return nil, err
	}

	return &b, nil
}

func requiredBytesFromBase64URL(field, value string) (*Bytes, error) {
	b, err := bytesFromBase64URL(field, value)
	if err != nil {
		return nil, err
	}

	return &b, nil
}

func optionalBase64URL(b *Bytes) *string {
	if b == nil {
		return nil
	}

	s := b.Base64URL()

	return &s
}
