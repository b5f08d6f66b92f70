/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package dagjose

import (
	"fmt"
	"io"

	"github.com/trustbloc/dag-jose-go/pkg/codec/dagjson"
	logfields "github.com/trustbloc/dag-jose-go/pkg/internal/log"
	"github.com/trustbloc/dag-jose-go/pkg/ipld"
)

// DAG-JSON field names.
const (
	fieldLink         = "link"
	fieldPayload      = "payload"
	fieldSignatures   = "signatures"
	fieldHeader       = "header"
	fieldProtected    = "protected"
	fieldSignature    = "signature"
	fieldAAD          = "aad"
	fieldCiphertext   = "ciphertext"
	fieldIV           = "iv"
	fieldRecipients   = "recipients"
	fieldTag          = "tag"
	fieldUnprotected  = "unprotected"
	fieldEncryptedKey = "encrypted_key"
)

var (
	jwsFields = []string{fieldPayload, fieldSignatures, fieldLink}
	jweFields = []string{fieldAAD, fieldCiphertext, fieldIV, fieldProtected, fieldRecipients, fieldTag, fieldUnprotected}
)

// MarshalJSON encodes s as DAG-JSON. The derived link is included.
func (s JSONWebSignature) MarshalJSON() ([]byte, error) {
	n, err := s.node(true)
	if err != nil {
		return nil, err
	}

	return marshalNodeJSON(n)
}

func (s *JSONWebSignature) node(withLink bool) (ipld.Node, error) {
	if err := s.validate(); err != nil {
		return ipld.Null(), err
	}

	signatures := make([]ipld.Node, 0, len(s.Signatures))

	for _, sig := range s.Signatures {
		m := map[string]ipld.Node{fieldSignature: ipld.String(sig.Signature)}

		if len(sig.Header) > 0 {
			m[fieldHeader] = ipld.Map(sig.Header)
		}

		if sig.Protected != nil {
			m[fieldProtected] = ipld.String(*sig.Protected)
		}

		signatures = append(signatures, ipld.Map(m))
	}

	m := map[string]ipld.Node{
		fieldPayload:    ipld.String(s.Payload),
		fieldSignatures: ipld.List(signatures...),
	}

	if withLink {
		link, err := s.Link()
		if err != nil {
			return ipld.Null(), err
		}

		m[fieldLink] = ipld.Link(link)
	}

	return ipld.Map(m), nil
}

// MarshalJSON encodes e as DAG-JSON.
func (e JSONWebEncryption) MarshalJSON() ([]byte, error) {
	n, err := e.node()
	if err != nil {
		return nil, err
	}

	return marshalNodeJSON(n)
}

func (e *JSONWebEncryption) node() (ipld.Node, error) {
	if err := e.validate(); err != nil {
		return ipld.Null(), err
	}

	m := map[string]ipld.Node{
		fieldCiphertext: ipld.String(e.Ciphertext),
		fieldIV:         ipld.String(e.IV),
		fieldProtected:  ipld.String(e.Protected),
		fieldTag:        ipld.String(e.Tag),
	}

	if e.AAD != nil {
		m[fieldAAD] = ipld.String(*e.AAD)
	}

	if len(e.Unprotected) > 0 {
		m[fieldUnprotected] = ipld.Map(e.Unprotected)
	}

	if len(e.Recipients) > 0 {
		recipients := make([]ipld.Node, 0, len(e.Recipients))

		for _, r := range e.Recipients {
			rm := map[string]ipld.Node{}

			if r.EncryptedKey != nil {
				rm[fieldEncryptedKey] = ipld.String(*r.EncryptedKey)
			}

			if len(r.Header) > 0 {
				rm[fieldHeader] = ipld.Map(r.Header)
			}

			recipients = append(recipients, ipld.Map(rm))
		}

		m[fieldRecipients] = ipld.List(recipients...)
	}

	return ipld.Map(m), nil
}

// UnmarshalJSON decodes DAG-JSON into s.
func (s *JSONWebSignature) UnmarshalJSON(data []byte) error {
	m, err := unmarshalNodeJSON(data)
	if err != nil {
		return err
	}

	decoded, err := jwsFromFields(m)
	if err != nil {
		return err
	}

	*s = *decoded

	return nil
}

// UnmarshalJSON decodes DAG-JSON into e.
func (e *JSONWebEncryption) UnmarshalJSON(data []byte) error {
	m, err := unmarshalNodeJSON(data)
	if err != nil {
		return err
	}

	decoded, err := jweFromFields(m)
	if err != nil {
		return err
	}

	*e = *decoded

	return nil
}

// EncodeJSON writes value to w as DAG-JSON.
func EncodeJSON(w io.Writer, value Jose) error {
	data, err := MarshalJSON(value)
	if err != nil {
		return err
	}

	if _, err := w.Write(data); err != nil {
		return wrapError(KindCodec, "write DAG-JSON", err)
	}

	return nil
}

// MarshalJSON returns the DAG-JSON encoding of value.
func MarshalJSON(value Jose) ([]byte, error) {
	switch v := value.(type) {
	case *JSONWebSignature:
		if v != nil {
			return v.MarshalJSON()
		}
	case *JSONWebEncryption:
		if v != nil {
			return v.MarshalJSON()
		}
	}

	return nil, newError(KindCodec, fmt.Sprintf("unsupported JOSE value %T", value))
}

// DecodeJSON reads a DAG-JSON JOSE value from r. Objects carrying any JWS
// field decode as *JSONWebSignature, all others as *JSONWebEncryption.
func DecodeJSON(r io.Reader) (Jose, error) {
	data, err := readAll(r)
	if err != nil {
		return nil, err
	}

	return UnmarshalJSON(data)
}

// UnmarshalJSON decodes a DAG-JSON JOSE value.
func UnmarshalJSON(data []byte) (Jose, error) {
	m, err := unmarshalNodeJSON(data)
	if err != nil {
		return nil, err
	}

	var value Jose

	if hasAny(m, jwsFields) {
		value, err = jwsFromFields(m)
	} else {
		value, err = jweFromFields(m)
	}

	if err != nil {
		return nil, err
	}

	logger.Debug("decoded DAG-JSON value", logfields.WithCodec(dagjson.Code),
		logfields.WithVariant(value.variant()), logfields.WithSize(len(data)))

	return value, nil
}

// DecodeJSONJWS reads DAG-JSON from r that must hold a JWS.
func DecodeJSONJWS(r io.Reader) (*JSONWebSignature, error) {
	data, err := readAll(r)
	if err != nil {
		return nil, err
	}

	m, err := unmarshalNodeJSON(data)
	if err != nil {
		return nil, err
	}

	return jwsFromFields(m)
}

// DecodeJSONJWE reads DAG-JSON from r that must hold a JWE.
func DecodeJSONJWE(r io.Reader) (*JSONWebEncryption, error) {
	data, err := readAll(r)
	if err != nil {
		return nil, err
	}

	m, err := unmarshalNodeJSON(data)
	if err != nil {
		return nil, err
	}

	return jweFromFields(m)
}

func marshalNodeJSON(n ipld.Node) ([]byte, error) {
	data, err := n.MarshalJSON()
	if err != nil {
		return nil, wrapError(KindCodec, "encode DAG-JSON", err)
	}

	return data, nil
}

func unmarshalNodeJSON(data []byte) (map[string]ipld.Node, error) {
	var n ipld.Node
	if err := n.UnmarshalJSON(data); err != nil {
		return nil, wrapError(KindCodec, "decode DAG-JSON", err)
	}

	m, ok := n.AsMap()
	if !ok {
		return nil, newError(KindCodec, fmt.Sprintf("DAG-JSON value is a %s, not a map", n.Kind()))
	}

	return m, nil
}

func jwsFromFields(m map[string]ipld.Node) (*JSONWebSignature, error) {
	if hasAny(m, jweFields) {
		return nil, notJWS("JWS fields mixed with JWE fields")
	}

	payload, err := stringField(m, fieldPayload)
	if err != nil {
		return nil, err
	}

	if payload == nil {
		return nil, notJWS("missing payload")
	}

	s := &JSONWebSignature{Payload: *payload}

	if n, ok := m[fieldSignatures]; ok {
		items, ok := n.AsList()
		if !ok {
			return nil, newError(KindCodec, "signatures is not a list")
		}

		for i, item := range items {
			sig, err := signatureFromNode(i, item)
			if err != nil {
				return nil, err
			}

			s.Signatures = append(s.Signatures, sig)
		}
	}

	if err := s.validate(); err != nil {
		return nil, err
	}

	if n, ok := m[fieldLink]; ok {
		if err := checkLink(s, n); err != nil {
			return nil, err
		}
	}

	return s, nil
}

func checkLink(s *JSONWebSignature, n ipld.Node) error {
	given, ok := n.AsLink()
	if !ok {
		return newError(KindInvalidCID, "link is not a CID")
	}

	derived, err := s.Link()
	if err != nil {
		return err
	}

	if !given.Equals(derived) {
		return newError(KindInvalidCID, fmt.Sprintf("link %s does not match payload CID %s", given, derived))
	}

	return nil
}

func signatureFromNode(i int, n ipld.Node) (Signature, error) {
	m, ok := n.AsMap()
	if !ok {
		return Signature{}, newError(KindCodec, fmt.Sprintf("signature %d is not a map", i))
	}

	header, err := headerField(m, fieldHeader)
	if err != nil {
		return Signature{}, err
	}

	protected, err := stringField(m, fieldProtected)
	if err != nil {
		return Signature{}, err
	}

	signature, err := stringField(m, fieldSignature)
	if err != nil {
		return Signature{}, err
	}

	if signature == nil {
		return Signature{}, notJWS("signature %d has no signature", i)
	}

	return Signature{Header: header, Protected: protected, Signature: *signature}, nil
}

func jweFromFields(m map[string]ipld.Node) (*JSONWebEncryption, error) {
	if hasAny(m, jwsFields) {
		return nil, notJWE("JWE fields mixed with JWS fields")
	}

	values := make(map[string]string)

	for _, name := range []string{fieldCiphertext, fieldIV, fieldProtected, fieldTag} {
		v, err := stringField(m, name)
		if err != nil {
			return nil, err
		}

		if v == nil {
			return nil, notJWE("missing %s", name)
		}

		values[name] = *v
	}

	aad, err := stringField(m, fieldAAD)
	if err != nil {
		return nil, err
	}

	unprotected, err := headerField(m, fieldUnprotected)
	if err != nil {
		return nil, err
	}

	e := &JSONWebEncryption{
		AAD:         aad,
		Ciphertext:  values[fieldCiphertext],
		IV:          values[fieldIV],
		Protected:   values[fieldProtected],
		Tag:         values[fieldTag],
		Unprotected: unprotected,
	}

	if n, ok := m[fieldRecipients]; ok {
		items, ok := n.AsList()
		if !ok {
			return nil, newError(KindCodec, "recipients is not a list")
		}

		for i, item := range items {
			rm, ok := item.AsMap()
			if !ok {
				return nil, newError(KindCodec, fmt.Sprintf("recipient %d is not a map", i))
			}

			key, err := stringField(rm, fieldEncryptedKey)
			if err != nil {
				return nil, err
			}

			header, err := headerField(rm, fieldHeader)
			if err != nil {
				return nil, err
			}

			e.Recipients = append(e.Recipients, Recipient{EncryptedKey: key, Header: header})
		}
	}

	if err := e.validate(); err != nil {
		return nil, err
	}

	return e, nil
}

func stringField(m map[string]ipld.Node, name string) (*string, error) {
	n, ok := m[name]
	if !ok {
		return nil, nil
	}

	s, ok := n.AsString()
	if !ok {
		return nil, newError(KindCodec, fmt.Sprintf("%s is a %s, not a string", name, n.Kind()))
	}

	return &s, nil
}

func headerField(m map[string]ipld.Node, name string) (Header, error) {
	n, ok := m[name]
	if !ok {
		return nil, nil
	}

	h, ok := n.AsMap()
	if !ok {
		return nil, newError(KindCodec, fmt.Sprintf("%s is a %s, not a map", name, n.Kind()))
	}

	return toHeader(h), nil
}

func hasAny(m map[string]ipld.Node, names []string) bool {
	for _, name := range names {
		if _, ok := m[name]; ok {
			return true
		}
	}

	return false
}
