/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package dagjose

import (
	"fmt"
	"strings"

	"github.com/trustbloc/dag-jose-go/pkg/ipld"
)

const (
	jwsPartsCount    = 3
	jwsHeaderPart    = 0
	jwsPayloadPart   = 1
	jwsSignaturePart = 2

	jwePartsCount       = 5
	jweHeaderPart       = 0
	jweEncryptedKeyPart = 1
	jweIVPart           = 2
	jweCiphertextPart   = 3
	jweTagPart          = 4
)

// ParseCompact parses a JWS (RFC 7515 section 7.1) or JWE (RFC 7516
// section 7.1) compact serialization.
func ParseCompact(compact string) (Jose, error) {
	parts := strings.Split(compact, ".")

	switch len(parts) {
	case jwsPartsCount:
		return parseCompactJWS(parts)
	case jwePartsCount:
		return parseCompactJWE(parts)
	default:
		return nil, newError(KindCodec, fmt.Sprintf("invalid compact format: %d parts", len(parts)))
	}
}

func parseCompactJWS(parts []string) (*JSONWebSignature, error) {
	protected := parts[jwsHeaderPart]

	s := &JSONWebSignature{
		Payload: parts[jwsPayloadPart],
		Signatures: []Signature{{
			Protected: &protected,
			Signature: parts[jwsSignaturePart],
		}},
	}

	if err := s.validate(); err != nil {
		return nil, err
	}

	return s, nil
}

func parseCompactJWE(parts []string) (*JSONWebEncryption, error) {
	e := &JSONWebEncryption{
		Protected:  parts[jweHeaderPart],
		IV:         parts[jweIVPart],
		Ciphertext: parts[jweCiphertextPart],
		Tag:        parts[jweTagPart],
	}

	if key := parts[jweEncryptedKeyPart]; key != "" {
		e.Recipients = []Recipient{{EncryptedKey: &key}}
	}

	if err := e.validate(); err != nil {
		return nil, err
	}

	return e, nil
}

// Compact returns the compact serialization of s. Only a JWS with exactly one
// signature, a protected header and no unprotected header has one.
func (s *JSONWebSignature) Compact() (string, error) {
	if err := s.validate(); err != nil {
		return "", err
	}

	if len(s.Signatures) != 1 {
		return "", newError(KindCodec,
			fmt.Sprintf("compact serialization needs exactly one signature, have %d", len(s.Signatures)))
	}

	sig := s.Signatures[0]

	if sig.Protected == nil {
		return "", newError(KindCodec, "compact serialization needs a protected header")
	}

	if len(sig.Header) > 0 {
		return "", newError(KindCodec, "compact serialization cannot carry an unprotected header")
	}

	return strings.Join([]string{*sig.Protected, s.Payload, sig.Signature}, "."), nil
}

// Compact returns the compact serialization of e. Only a JWE with at most one
// recipient, no AAD and no unprotected headers has one.
func (e *JSONWebEncryption) Compact() (string, error) {
	if err := e.validate(); err != nil {
		return "", err
	}

	if e.AAD != nil {
		return "", newError(KindCodec, "compact serialization cannot carry AAD")
	}

	if len(e.Unprotected) > 0 {
		return "", newError(KindCodec, "compact serialization cannot carry an unprotected header")
	}

	if len(e.Recipients) > 1 {
		return "", newError(KindCodec,
			fmt.Sprintf("compact serialization allows one recipient, have %d", len(e.Recipients)))
	}

	var key string

	if len(e.Recipients) == 1 {
		r := e.Recipients[0]

		if len(r.Header) > 0 {
			return "", newError(KindCodec, "compact serialization cannot carry a recipient header")
		}

		if r.EncryptedKey != nil {
			key = *r.EncryptedKey
		}
	}

	return strings.Join([]string{e.Protected, key, e.IV, e.Ciphertext, e.Tag}, "."), nil
}

// ParseGeneral parses a JWS or JWE in general or flattened JSON
// serialization (RFC 7515 section 7.2, RFC 7516 section 7.2).
func ParseGeneral(data []byte) (Jose, error) {
	m, err := unmarshalNodeJSON(data)
	if err != nil {
		return nil, err
	}

	if _, ok := m[fieldPayload]; ok {
		if _, flattened := m[fieldSignature]; flattened {
			return parseFlattenedJWS(m)
		}

		return jwsFromFields(m)
	}

	_, hasKey := m[fieldEncryptedKey]
	_, hasHeader := m[fieldHeader]

	if hasKey || hasHeader {
		return parseFlattenedJWE(m)
	}

	return jweFromFields(m)
}

func parseFlattenedJWS(m map[string]ipld.Node) (*JSONWebSignature, error) {
	sigFields := make(map[string]ipld.Node)
	rest := make(map[string]ipld.Node)

	for k, v := range m {
		switch k {
		case fieldHeader, fieldProtected, fieldSignature:
			sigFields[k] = v
		default:
			rest[k] = v
		}
	}

	if _, ok := rest[fieldSignatures]; ok {
		return nil, notJWS("flattened JWS must not carry signatures")
	}

	s, err := jwsFromFields(rest)
	if err != nil {
		return nil, err
	}

	sig, err := signatureFromNode(0, ipld.Map(sigFields))
	if err != nil {
		return nil, err
	}

	s.Signatures = []Signature{sig}

	if err := s.validate(); err != nil {
		return nil, err
	}

	return s, nil
}

func parseFlattenedJWE(m map[string]ipld.Node) (*JSONWebEncryption, error) {
	if _, ok := m[fieldRecipients]; ok {
		return nil, notJWE("flattened JWE must not carry recipients")
	}

	rest := make(map[string]ipld.Node)

	for k, v := range m {
		if k != fieldHeader && k != fieldEncryptedKey {
			rest[k] = v
		}
	}

	e, err := jweFromFields(rest)
	if err != nil {
		return nil, err
	}

	key, err := stringField(m, fieldEncryptedKey)
	if err != nil {
		return nil, err
	}

	header, err := headerField(m, fieldHeader)
	if err != nil {
		return nil, err
	}

	e.Recipients = []Recipient{{EncryptedKey: key, Header: header}}

	if err := e.validate(); err != nil {
		return nil, err
	}

	return e, nil
}

// GeneralJSON returns the general JSON serialization of value. Unlike
// DAG-JSON it carries no link.
func GeneralJSON(value Jose) ([]byte, error) {
	var (
		n   ipld.Node
		err error
	)

	switch v := value.(type) {
	case *JSONWebSignature:
		if v == nil {
			return nil, newError(KindCodec, "nil JWS value")
		}

		n, err = v.node(false)
	case *JSONWebEncryption:
		if v == nil {
			return nil, newError(KindCodec, "nil JWE value")
		}

		n, err = v.node()
	default:
		return nil, newError(KindCodec, fmt.Sprintf("unsupported JOSE value %T", value))
	}

	if err != nil {
		return nil, err
	}

	return marshalNodeJSON(n)
}
