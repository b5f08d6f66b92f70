/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package dagjose

import (
	"github.com/ipfs/go-cid"

	"github.com/trustbloc/dag-jose-go/pkg/cidutil"
	"github.com/trustbloc/dag-jose-go/pkg/ipld"
	"github.com/trustbloc/dag-jose-go/pkg/jws"
)

// Header is an unprotected JOSE header. A nil Header and an empty one are
// equivalent; neither is written to the wire.
type Header map[string]ipld.Node

// Jose is a JOSE value: either *JSONWebSignature or *JSONWebEncryption.
type Jose interface {
	variant() string
}

const (
	variantJWS = "jws"
	variantJWE = "jwe"
)

// JSONWebSignature is a JWS (RFC 7515) whose payload is a CID.
type JSONWebSignature struct {
	// Payload is the base64url encoded binary CID of the signed content.
	Payload string

	// Signatures holds one entry per signer.
	Signatures []Signature
}

func (*JSONWebSignature) variant() string { return variantJWS }

// Link returns the CID that the payload encodes.
func (s *JSONWebSignature) Link() (cid.Cid, error) {
	raw, err := bytesFromBase64URL(fieldPayload, s.Payload)
	if err != nil {
		return cid.Undef, err
	}

	return linkFromPayload(raw)
}

// validate checks the base64url text of every field and that the payload is
// a CID.
func (s *JSONWebSignature) validate() error {
	if s == nil {
		return newError(KindCodec, "nil JWS value")
	}

	if _, err := s.Link(); err != nil {
		return err
	}

	for i := range s.Signatures {
		sig := &s.Signatures[i]

		if err := checkOptionalBase64URL(fieldProtected, sig.Protected); err != nil {
			return err
		}

		if err := checkBase64URL(fieldSignature, sig.Signature); err != nil {
			return err
		}
	}

	return nil
}

func linkFromPayload(payload []byte) (cid.Cid, error) {
	c, err := cidutil.Cast(payload)
	if err != nil {
		return cid.Undef, wrapError(KindInvalidCID, ErrInvalidCID.Message, err)
	}

	return c, nil
}

// Signature is one signature of a JWS.
type Signature struct {
	// Header is the unprotected header.
	Header Header

	// Protected is the base64url encoded protected header, if any.
	Protected *string

	// Signature is the base64url encoded signature.
	Signature string
}

// ProtectedHeaders decodes the protected header. A signature without a
// protected header yields empty headers.
func (s *Signature) ProtectedHeaders() (jws.Headers, error) {
	if s.Protected == nil {
		return jws.Headers{}, nil
	}

	headers, err := jws.ParseProtected(*s.Protected)
	if err != nil {
		return nil, wrapError(KindInvalidBase64URL, "invalid protected header", err)
	}

	return headers, nil
}

// JSONWebEncryption is a JWE (RFC 7516).
type JSONWebEncryption struct {
	// AAD is the base64url encoded additional authenticated data, if any.
	AAD *string

	// Ciphertext is the base64url encoded ciphertext.
	Ciphertext string

	// IV is the base64url encoded initialization vector. An empty IV is
	// carried as a zero-length byte string.
	IV string

	// Protected is the base64url encoded protected header.
	Protected string

	// Recipients holds per-recipient keys and headers.
	Recipients []Recipient

	// Tag is the base64url encoded authentication tag.
	Tag string

	// Unprotected is the shared unprotected header.
	Unprotected Header
}

func (*JSONWebEncryption) variant() string { return variantJWE }

// ProtectedHeaders decodes the protected header.
func (e *JSONWebEncryption) ProtectedHeaders() (jws.Headers, error) {
	headers, err := jws.ParseProtected(e.Protected)
	if err != nil {
		return nil, wrapError(KindInvalidBase64URL, "invalid protected header", err)
	}

	return headers, nil
}

func (e *JSONWebEncryption) validate() error {
	if e == nil {
		return newError(KindCodec, "nil JWE value")
	}

	if err := checkOptionalBase64URL(fieldAAD, e.AAD); err != nil {
		return err
	}

	for _, f := range []struct{ name, value string }{
		{fieldCiphertext, e.Ciphertext},
		{fieldIV, e.IV},
		{fieldProtected, e.Protected},
		{fieldTag, e.Tag},
	} {
		if err := checkBase64URL(f.name, f.value); err != nil {
			return err
		}
	}

	for i := range e.Recipients {
		if err := checkOptionalBase64URL(fieldEncryptedKey, e.Recipients[i].EncryptedKey); err != nil {
			return err
		}
	}

	return nil
}

// Recipient is one recipient of a JWE.
type Recipient struct {
	// EncryptedKey is the base64url encoded encrypted content key, if any.
	EncryptedKey *string

	// Header is the per-recipient unprotected header.
	Header Header
}
