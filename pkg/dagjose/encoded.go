/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package dagjose

import (
	"github.com/trustbloc/dag-jose-go/pkg/ipld"
)

// encoded is the wire form: the union of JWS and JWE fields as raw bytes.
// Exactly one group is populated.
//
// Field order is part of the format. Within each group, fields are declared
// in DAG-CBOR key order (length first, then bytewise); TestEncodedFieldOrder
// checks this.
type encoded struct {
	// JWS
	Payload    *Bytes             `cbor:"payload,omitempty"`
	Signatures []encodedSignature `cbor:"signatures,omitempty"`

	// JWE
	IV          *Bytes               `cbor:"iv,omitempty"`
	AAD         *Bytes               `cbor:"aad,omitempty"`
	Tag         *Bytes               `cbor:"tag,omitempty"`
	Protected   *Bytes               `cbor:"protected,omitempty"`
	Ciphertext  *Bytes               `cbor:"ciphertext,omitempty"`
	Recipients  []encodedRecipient   `cbor:"recipients,omitempty"`
	Unprotected map[string]ipld.Node `cbor:"unprotected,omitempty"`
}

type encodedSignature struct {
	Header    map[string]ipld.Node `cbor:"header,omitempty"`
	Protected *Bytes               `cbor:"protected,omitempty"`
	Signature *Bytes               `cbor:"signature"`
}

type encodedRecipient struct {
	Header       map[string]ipld.Node `cbor:"header,omitempty"`
	EncryptedKey *Bytes               `cbor:"encrypted_key,omitempty"`
}

func (e *encoded) hasJWS() bool {
	return e.Payload != nil || e.Signatures != nil
}

func (e *encoded) hasJWE() bool {
	return e.IV != nil || e.AAD != nil || e.Tag != nil || e.Protected != nil ||
		e.Ciphertext != nil || e.Recipients != nil || e.Unprotected != nil
}
