/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package jws

import (
	"fmt"

	"github.com/trustbloc/dag-jose-go/pkg/codec/dagjson"
	"github.com/trustbloc/dag-jose-go/pkg/encoder"
)

// IANA registered JOSE headers (https://tools.ietf.org/html/rfc7515#section-4.1)
const (
	// HeaderAlgorithm identifies the cryptographic algorithm used to secure the JWS.
	HeaderAlgorithm = "alg"

	// HeaderKeyID is a hint indicating which key was used.
	HeaderKeyID = "kid"

	// HeaderType declares the media type of the complete JWS.
	HeaderType = "typ"

	// HeaderContentType declares the media type of the secured content (the payload).
	HeaderContentType = "cty"

	// HeaderEncryption identifies the content encryption algorithm of a JWE.
	HeaderEncryption = "enc"

	// HeaderCritical lists extensions that must be understood.
	HeaderCritical = "crit"
)

// Headers represents JOSE headers.
type Headers map[string]interface{}

// Algorithm gets Algorithm from JOSE headers.
func (h Headers) Algorithm() (string, bool) {
	return h.stringValue(HeaderAlgorithm)
}

// KeyID gets Key ID from JOSE headers.
func (h Headers) KeyID() (string, bool) {
	return h.stringValue(HeaderKeyID)
}

// Type gets the typ header.
func (h Headers) Type() (string, bool) {
	return h.stringValue(HeaderType)
}

// ContentType gets the cty header.
func (h Headers) ContentType() (string, bool) {
	return h.stringValue(HeaderContentType)
}

// Encryption gets the enc header.
func (h Headers) Encryption() (string, bool) {
	return h.stringValue(HeaderEncryption)
}

func (h Headers) stringValue(key string) (string, bool) {
	raw, ok := h[key]
	if !ok {
		return "", false
	}

	str, ok := raw.(string)

	return str, ok
}

// ParseProtected decodes a base64url protected header into Headers.
// Numbers are kept as dagjson.Number.
func ParseProtected(protected string) (Headers, error) {
	headerBytes, err := encoder.DecodeString(protected)
	if err != nil {
		return nil, fmt.Errorf("decode base64 header: %w", err)
	}

	v, err := dagjson.DecodeValue(headerBytes)
	if err != nil {
		return nil, fmt.Errorf("unmarshal JSON headers: %w", err)
	}

	headers, ok := v.(map[string]interface{})
	if !ok {
		return nil, fmt.Errorf("protected header is not a JSON object")
	}

	return headers, nil
}
