/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package dagjose

import (
	"fmt"

	"github.com/trustbloc/dag-jose-go/pkg/ipld"
)

func notJWS(format string, args ...interface{}) error {
	return wrapError(KindNotJWS, ErrNotJWS.Message, fmt.Errorf(format, args...))
}

func notJWE(format string, args ...interface{}) error {
	return wrapError(KindNotJWE, ErrNotJWE.Message, fmt.Errorf(format, args...))
}

// toEncoded converts a domain value into its wire form.
func toEncoded(value Jose) (*encoded, error) {
	switch v := value.(type) {
	case *JSONWebSignature:
		if v == nil {
			return nil, newError(KindCodec, "nil JWS value")
		}

		return fromJWS(v)
	case *JSONWebEncryption:
		if v == nil {
			return nil, newError(KindCodec, "nil JWE value")
		}

		return fromJWE(v)
	default:
		return nil, newError(KindCodec, fmt.Sprintf("unsupported JOSE value %T", value))
	}
}

func fromJWS(s *JSONWebSignature) (*encoded, error) {
	payload, err := requiredBytesFromBase64URL("payload", s.Payload)
	if err != nil {
		return nil, err
	}

	if _, err := linkFromPayload(*payload); err != nil {
		return nil, err
	}

	e := &encoded{Payload: payload}

	for i := range s.Signatures {
		sig, err := fromSignature(&s.Signatures[i])
		if err != nil {
			return nil, err
		}

		e.Signatures = append(e.Signatures, sig)
	}

	return e, nil
}

func fromSignature(s *Signature) (encodedSignature, error) {
	protected, err := optionalBytesFromBase64URL("protected", s.Protected)
	if err != nil {
		return encodedSignature{}, err
	}

	signature, err := requiredBytesFromBase64URL("signature", s.Signature)
	if err != nil {
		return encodedSignature{}, err
	}

	return encodedSignature{
		Header:    fromHeader(s.Header),
		Protected: protected,
		Signature: signature,
	}, nil
}

func fromJWE(e *JSONWebEncryption) (*encoded, error) {
	aad, err := optionalBytesFromBase64URL("aad", e.AAD)
	if err != nil {
		return nil, err
	}

	ciphertext, err := requiredBytesFromBase64URL("ciphertext", e.Ciphertext)
	if err != nil {
		return nil, err
	}

	iv, err := requiredBytesFromBase64URL("iv", e.IV)
	if err != nil {
		return nil, err
	}

	protected, err := requiredBytesFromBase64URL("protected", e.Protected)
	if err != nil {
		return nil, err
	}

	tag, err := requiredBytesFromBase64URL("tag", e.Tag)
	if err != nil {
		return nil, err
	}

	out := &encoded{
		AAD:         aad,
		Ciphertext:  ciphertext,
		IV:          iv,
		Protected:   protected,
		Tag:         tag,
		Unprotected: fromHeader(e.Unprotected),
	}

	for i := range e.Recipients {
		r := &e.Recipients[i]

		key, err := optionalBytesFromBase64URL("encrypted_key", r.EncryptedKey)
		if err != nil {
			return nil, err
		}

		out.Recipients = append(out.Recipients, encodedRecipient{
			Header:       fromHeader(r.Header),
			EncryptedKey: key,
		})
	}

	return out, nil
}

// fromHeader drops empty headers so they are not written.
func fromHeader(h Header) map[string]ipld.Node {
	if len(h) == 0 {
		return nil
	}

	return h
}

func toHeader(m map[string]ipld.Node) Header {
	if len(m) == 0 {
		return nil
	}

	return m
}

// toJose converts a wire value into the domain model. Values carrying any JWS
// field are treated as signatures.
func toJose(e *encoded) (Jose, error) {
	if e.hasJWS() {
		return toJWS(e)
	}

	return toJWE(e)
}

func toJWS(e *encoded) (*JSONWebSignature, error) {
	if e.Payload == nil {
		return nil, notJWS("missing payload")
	}

	if e.hasJWE() {
		return nil, notJWS("JWS fields mixed with JWE fields")
	}

	if _, err := linkFromPayload(*e.Payload); err != nil {
		return nil, err
	}

	s := &JSONWebSignature{Payload: e.Payload.Base64URL()}

	for i, sig := range e.Signatures {
		if sig.Signature == nil {
			return nil, notJWS("signature %d has no signature bytes", i)
		}

		s.Signatures = append(s.Signatures, Signature{
			Header:    toHeader(sig.Header),
			Protected: optionalBase64URL(sig.Protected),
			Signature: sig.Signature.Base64URL(),
		})
	}

	return s, nil
}

func toJWE(e *encoded) (*JSONWebEncryption, error) {
	if e.hasJWS() {
		return nil, notJWE("JWE fields mixed with JWS fields")
	}

	required := []struct {
		name  string
		value *Bytes
	}{
		{"ciphertext", e.Ciphertext},
		{"iv", e.IV},
		{"protected", e.Protected},
		{"tag", e.Tag},
	}

	for _, field := range required {
		if field.value == nil {
			return nil, notJWE("missing %s", field.name)
		}
	}

	out := &JSONWebEncryption{
		AAD:         optionalBase64URL(e.AAD),
		Ciphertext:  e.Ciphertext.Base64URL(),
		IV:          e.IV.Base64URL(),
		Protected:   e.Protected.Base64URL(),
		Tag:         e.Tag.Base64URL(),
		Unprotected: toHeader(e.Unprotected),
	}

	for _, r := range e.Recipients {
		out.Recipients = append(out.Recipients, Recipient{
			EncryptedKey: optionalBase64URL(r.EncryptedKey),
			Header:       toHeader(r.Header),
		})
	}

	return out, nil
}
