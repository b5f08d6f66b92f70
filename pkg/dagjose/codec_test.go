/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package dagjose

import (
	"bytes"
	"errors"
	"math"
	"reflect"
	"strings"
	"testing"

	"github.com/ipfs/go-cid"
	"github.com/stretchr/testify/require"

	"github.com/trustbloc/dag-jose-go/pkg/cidutil"
	"github.com/trustbloc/dag-jose-go/pkg/codec/dagcbor"
	"github.com/trustbloc/dag-jose-go/pkg/encoder"
	"github.com/trustbloc/dag-jose-go/pkg/ipld"
)

func TestEncodedFieldOrder(t *testing.T) {
	check := func(t *testing.T, typ reflect.Type, from, to int) {
		t.Helper()

		var prev string

		for i := from; i < to; i++ {
			name := strings.Split(typ.Field(i).Tag.Get("cbor"), ",")[0]
			if prev != "" {
				require.True(t, dagcbor.KeyLess(prev, name), "%s must precede %s", prev, name)
			}

			prev = name
		}
	}

	typ := reflect.TypeOf(encoded{})

	t.Run("JWS group", func(t *testing.T) {
		check(t, typ, 0, 2)
	})

	t.Run("JWE group", func(t *testing.T) {
		check(t, typ, 2, typ.NumField())
	})

	t.Run("signature", func(t *testing.T) {
		sig := reflect.TypeOf(encodedSignature{})
		check(t, sig, 0, sig.NumField())
	})

	t.Run("recipient", func(t *testing.T) {
		r := reflect.TypeOf(encodedRecipient{})
		check(t, r, 0, r.NumField())
	})
}

func TestJWSRoundTrip(t *testing.T) {
	t.Run("fixture", func(t *testing.T) {
		data, err := Marshal(fixtureJWS())
		require.NoError(t, err)
		require.Equal(t, fromHex(t, jwsBlockHex), data)

		value, err := Unmarshal(data)
		require.NoError(t, err)
		require.Equal(t, fixtureJWS(), value)

		s, err := UnmarshalJWS(data)
		require.NoError(t, err)
		require.Equal(t, fixtureJWS(), s)

		link, err := s.Link()
		require.NoError(t, err)
		require.Equal(t, jwsLink, link.String())
	})

	t.Run("with header", func(t *testing.T) {
		data, err := MarshalJWS(fixtureJWSWithHeader())
		require.NoError(t, err)
		require.Equal(t, fromHex(t, jwsWithHeaderBlockHex), data)

		s, err := UnmarshalJWS(data)
		require.NoError(t, err)
		require.Equal(t, fixtureJWSWithHeader(), s)
	})

	t.Run("empty header is omitted", func(t *testing.T) {
		s := fixtureJWS()
		s.Signatures[0].Header = Header{}

		data, err := Marshal(s)
		require.NoError(t, err)
		require.Equal(t, fromHex(t, jwsBlockHex), data)
	})

	t.Run("no signatures", func(t *testing.T) {
		s := &JSONWebSignature{Payload: jwsPayload}

		data, err := Marshal(s)
		require.NoError(t, err)

		n, err := UnmarshalNode(data)
		require.NoError(t, err)

		_, ok := n.Lookup("signatures")
		require.False(t, ok)

		decoded, err := UnmarshalJWS(data)
		require.NoError(t, err)
		require.Equal(t, s, decoded)
	})

	t.Run("reader and writer", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, EncodeJWS(&buf, fixtureJWS()))

		s, err := DecodeJWS(bytes.NewReader(buf.Bytes()))
		require.NoError(t, err)
		require.Equal(t, fixtureJWS(), s)

		value, err := Decode(&buf)
		require.NoError(t, err)
		require.Equal(t, fixtureJWS(), value)
	})
}

func TestJWERoundTrip(t *testing.T) {
	t.Run("fixture", func(t *testing.T) {
		data, err := MarshalJWE(fixtureJWE())
		require.NoError(t, err)
		require.Equal(t, fromHex(t, jweBlockHex), data)

		value, err := Unmarshal(data)
		require.NoError(t, err)
		require.Equal(t, fixtureJWE(), value)
	})

	t.Run("empty recipients and unprotected are omitted", func(t *testing.T) {
		e := fixtureJWE()
		e.Recipients = []Recipient{}
		e.Unprotected = Header{}

		data, err := Marshal(e)
		require.NoError(t, err)
		require.Equal(t, fromHex(t, jweBlockHex), data)
	})

	t.Run("all fields", func(t *testing.T) {
		e := fixtureJWE()
		e.AAD = strPtr("YWFk")
		e.Unprotected = Header{"enc": ipld.String("A128GCM")}
		e.Recipients = []Recipient{
			{EncryptedKey: strPtr("a2V5"), Header: Header{"kid": ipld.String("k1")}},
			{Header: Header{"alg": ipld.String("ECDH-ES")}},
		}

		var buf bytes.Buffer
		require.NoError(t, EncodeJWE(&buf, e))

		decoded, err := DecodeJWE(&buf)
		require.NoError(t, err)
		require.Equal(t, e, decoded)
	})

	t.Run("empty iv", func(t *testing.T) {
		e := fixtureJWE()
		e.IV = ""

		data, err := Marshal(e)
		require.NoError(t, err)
		require.True(t, bytes.Contains(data, []byte{0x62, 'i', 'v', 0x40}))

		decoded, err := UnmarshalJWE(data)
		require.NoError(t, err)
		require.Equal(t, "", decoded.IV)
		require.Equal(t, e, decoded)
	})
}

func TestDeterminism(t *testing.T) {
	s := fixtureJWS()
	s.Signatures[0].Header = Header{
		"zz":  ipld.Int(1),
		"a":   ipld.List(ipld.Bool(true), ipld.Null()),
		"kid": ipld.String("did:example:123#key-1"),
		"b":   ipld.Map(map[string]ipld.Node{"y": ipld.Float(0.5), "x": ipld.Int(-2)}),
	}

	first, err := Marshal(s)
	require.NoError(t, err)

	for i := 0; i < 10; i++ {
		again, err := Marshal(s)
		require.NoError(t, err)
		require.Equal(t, first, again)
	}

	decoded, err := Unmarshal(first)
	require.NoError(t, err)

	reencoded, err := Marshal(decoded)
	require.NoError(t, err)
	require.Equal(t, first, reencoded)
}

func TestNodeEquivalence(t *testing.T) {
	t.Run("JWS", func(t *testing.T) {
		n := ipld.Map(map[string]ipld.Node{
			"payload": rawField(t, jwsPayload),
			"signatures": ipld.List(ipld.Map(map[string]ipld.Node{
				"header": ipld.Map(map[string]ipld.Node{
					"k0": ipld.String("v0"),
					"k1": ipld.Int(1),
				}),
				"protected": rawField(t, jwsProtected),
				"signature": rawField(t, jwsSignature),
			})),
		})

		fromNode, err := MarshalNode(n)
		require.NoError(t, err)

		fromJose, err := Marshal(fixtureJWSWithHeader())
		require.NoError(t, err)
		require.Equal(t, fromJose, fromNode)

		decoded, err := UnmarshalNode(fromJose)
		require.NoError(t, err)
		require.Equal(t, n, decoded)
	})

	t.Run("JWE", func(t *testing.T) {
		n := ipld.Map(map[string]ipld.Node{
			"ciphertext": rawField(t, jweCiphertext),
			"iv":         rawField(t, jweIV),
			"protected":  rawField(t, jweProtected),
			"tag":        rawField(t, jweTag),
		})

		var buf bytes.Buffer
		require.NoError(t, EncodeNode(&buf, n))
		require.Equal(t, fromHex(t, jweBlockHex), buf.Bytes())

		decoded, err := DecodeNode(&buf)
		require.NoError(t, err)
		require.Equal(t, n, decoded)
	})

	t.Run("generic tree", func(t *testing.T) {
		n := ipld.Map(map[string]ipld.Node{
			"list":  ipld.List(ipld.Int(-1), ipld.Float(1.5), ipld.String("x")),
			"link":  ipld.Link(mustCID(t, jwsLink)),
			"bytes": ipld.Bytes([]byte{0, 1}),
			"null":  ipld.Null(),
		})

		data, err := MarshalNode(n)
		require.NoError(t, err)

		decoded, err := UnmarshalNode(data)
		require.NoError(t, err)
		require.Equal(t, n, decoded)

		again, err := MarshalNode(decoded)
		require.NoError(t, err)
		require.Equal(t, data, again)
	})

	t.Run("malformed", func(t *testing.T) {
		_, err := UnmarshalNode([]byte{0xa1})
		require.True(t, IsKind(err, KindCodec))
	})
}

func TestVariantErrors(t *testing.T) {
	jwsData, err := Marshal(fixtureJWS())
	require.NoError(t, err)

	jweData, err := Marshal(fixtureJWE())
	require.NoError(t, err)

	t.Run("JWE is not a JWS", func(t *testing.T) {
		_, err := UnmarshalJWS(jweData)
		require.True(t, errors.Is(err, ErrNotJWS))
		require.Contains(t, err.Error(), "data not a JWS value")
	})

	t.Run("JWS is not a JWE", func(t *testing.T) {
		_, err := UnmarshalJWE(jwsData)
		require.True(t, errors.Is(err, ErrNotJWE))
		require.Contains(t, err.Error(), "data not a JWE value")
	})

	t.Run("mixed groups", func(t *testing.T) {
		data, err := MarshalNode(ipld.Map(map[string]ipld.Node{
			"payload": rawField(t, jwsPayload),
			"iv":      rawField(t, jweIV),
		}))
		require.NoError(t, err)

		_, err = Unmarshal(data)
		require.True(t, IsKind(err, KindNotJWS))

		_, err = UnmarshalJWE(data)
		require.True(t, IsKind(err, KindNotJWE))
	})

	t.Run("neither group", func(t *testing.T) {
		data, err := MarshalNode(ipld.Map(map[string]ipld.Node{}))
		require.NoError(t, err)

		_, err = Unmarshal(data)
		require.True(t, IsKind(err, KindNotJWE))

		_, err = UnmarshalJWS(data)
		require.True(t, IsKind(err, KindNotJWS))
	})

	t.Run("missing JWE field", func(t *testing.T) {
		data, err := MarshalNode(ipld.Map(map[string]ipld.Node{
			"ciphertext": rawField(t, jweCiphertext),
			"iv":         rawField(t, jweIV),
			"protected":  rawField(t, jweProtected),
		}))
		require.NoError(t, err)

		_, err = Unmarshal(data)
		require.True(t, IsKind(err, KindNotJWE))
		require.Contains(t, err.Error(), "missing tag")
	})

	t.Run("signature without signature bytes", func(t *testing.T) {
		data, err := MarshalNode(ipld.Map(map[string]ipld.Node{
			"payload": rawField(t, jwsPayload),
			"signatures": ipld.List(ipld.Map(map[string]ipld.Node{
				"protected": rawField(t, jwsProtected),
			})),
		}))
		require.NoError(t, err)

		_, err = UnmarshalJWS(data)
		require.True(t, IsKind(err, KindNotJWS))
	})

	t.Run("unknown top-level keys are ignored", func(t *testing.T) {
		data, err := MarshalNode(ipld.Map(map[string]ipld.Node{
			"payload": rawField(t, jwsPayload),
			"extra":   ipld.String("ignored"),
		}))
		require.NoError(t, err)

		s, err := UnmarshalJWS(data)
		require.NoError(t, err)
		require.Equal(t, jwsPayload, s.Payload)
	})
}

func TestInvalidCID(t *testing.T) {
	notCID := encoder.EncodeToString([]byte("hello"))

	t.Run("link", func(t *testing.T) {
		_, err := (&JSONWebSignature{Payload: notCID}).Link()
		require.True(t, errors.Is(err, ErrInvalidCID))
		require.Contains(t, err.Error(), "invalid CID data in payload")
	})

	t.Run("encode", func(t *testing.T) {
		_, err := Marshal(&JSONWebSignature{Payload: notCID})
		require.True(t, IsKind(err, KindInvalidCID))
	})

	t.Run("decode", func(t *testing.T) {
		data, err := MarshalNode(ipld.Map(map[string]ipld.Node{
			"payload": ipld.Bytes([]byte("hello")),
		}))
		require.NoError(t, err)

		_, err = Unmarshal(data)
		require.True(t, IsKind(err, KindInvalidCID))
	})
}

func TestInvalidBase64URL(t *testing.T) {
	tests := []struct {
		name  string
		value Jose
	}{
		{"payload", &JSONWebSignature{Payload: jwsPayload + "="}},
		{"signature", &JSONWebSignature{Payload: jwsPayload, Signatures: []Signature{{Signature: "a+b/"}}}},
		{"protected", &JSONWebSignature{
			Payload:    jwsPayload,
			Signatures: []Signature{{Protected: strPtr("!"), Signature: jwsSignature}},
		}},
		{"ciphertext", &JSONWebEncryption{Ciphertext: "a\nb", IV: jweIV, Protected: jweProtected, Tag: jweTag}},
		{"aad", &JSONWebEncryption{
			AAD: strPtr("%%"), Ciphertext: jweCiphertext, IV: jweIV, Protected: jweProtected, Tag: jweTag,
		}},
		{"encrypted_key", &JSONWebEncryption{
			Ciphertext: jweCiphertext, IV: jweIV, Protected: jweProtected, Tag: jweTag,
			Recipients: []Recipient{{EncryptedKey: strPtr("a b")}},
		}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Marshal(tc.value)
			require.True(t, errors.Is(err, ErrInvalidBase64URL))
			require.Contains(t, err.Error(), "invalid base64 url data in "+tc.name)
		})
	}
}

func TestCodecErrors(t *testing.T) {
	t.Run("nil value", func(t *testing.T) {
		_, err := Marshal(nil)
		require.True(t, IsKind(err, KindCodec))

		_, err = Marshal((*JSONWebSignature)(nil))
		require.True(t, IsKind(err, KindCodec))

		_, err = Marshal((*JSONWebEncryption)(nil))
		require.True(t, IsKind(err, KindCodec))
	})

	t.Run("malformed CBOR", func(t *testing.T) {
		_, err := Unmarshal([]byte{0xff})
		require.True(t, errors.Is(err, ErrCodec))
		require.NotNil(t, errors.Unwrap(err))
	})

	t.Run("trailing data", func(t *testing.T) {
		data := append(fromHex(t, jwsBlockHex), 0x00)

		_, err := Unmarshal(data)
		require.True(t, IsKind(err, KindCodec))
	})

	t.Run("text where bytes are expected", func(t *testing.T) {
		data, err := MarshalNode(ipld.Map(map[string]ipld.Node{
			"payload": ipld.String(jwsPayload),
		}))
		require.NoError(t, err)

		_, err = Unmarshal(data)
		require.True(t, IsKind(err, KindCodec))
	})

	t.Run("top level is not a map", func(t *testing.T) {
		data, err := MarshalNode(ipld.List(ipld.Int(1)))
		require.NoError(t, err)

		_, err = Unmarshal(data)
		require.True(t, IsKind(err, KindCodec))
	})

	t.Run("write failure", func(t *testing.T) {
		err := Encode(failingWriter{}, fixtureJWS())
		require.True(t, IsKind(err, KindCodec))
	})

	t.Run("integer above int64 range", func(t *testing.T) {
		data, err := dagcbor.Marshal(map[string]interface{}{
			"payload": []byte{0x01},
			"header":  uint64(math.MaxUint64),
		})
		require.NoError(t, err)

		_, err = Unmarshal(data)
		require.True(t, IsKind(err, KindCodec))
		require.Contains(t, err.Error(), "overflows int64")

		_, err = UnmarshalJSON([]byte(`{"payload":"AQ","signatures":[{"header":{"exp":18446744073709551615},` +
			`"signature":"` + jwsSignature + `"}]}`))
		require.True(t, IsKind(err, KindCodec))
		require.Contains(t, err.Error(), "decode DAG-JSON")
	})
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) {
	return 0, errors.New("closed")
}

func TestLinks(t *testing.T) {
	payloadCID := mustCID(t, jwsLink)

	t.Run("payload", func(t *testing.T) {
		links, err := Links(fromHex(t, jwsBlockHex))
		require.NoError(t, err)
		require.Equal(t, []cid.Cid{payloadCID}, links)
	})

	t.Run("payload then header links", func(t *testing.T) {
		other, err := cidutil.Sum(cidutil.Raw, []byte("key"))
		require.NoError(t, err)

		s := fixtureJWS()
		s.Signatures[0].Header = Header{"ref": ipld.Link(other)}

		data, err := Marshal(s)
		require.NoError(t, err)

		links, err := Links(data)
		require.NoError(t, err)
		require.Len(t, links, 2)
		require.True(t, links[0].Equals(payloadCID))
		require.True(t, links[1].Equals(other))
	})

	t.Run("JWE", func(t *testing.T) {
		links, err := Links(fromHex(t, jweBlockHex))
		require.NoError(t, err)
		require.Empty(t, links)
	})

	t.Run("malformed", func(t *testing.T) {
		_, err := Links([]byte{0xa1, 0x61})
		require.True(t, IsKind(err, KindCodec))
	})
}

func TestCID(t *testing.T) {
	data := fromHex(t, jwsBlockHex)

	c, err := CID(data)
	require.NoError(t, err)
	require.Equal(t, uint64(1), c.Version())
	require.Equal(t, Code, c.Type())

	again, err := CID(data)
	require.NoError(t, err)
	require.True(t, c.Equals(again))
}

func TestProtectedHeaders(t *testing.T) {
	s := fixtureJWS()

	headers, err := s.Signatures[0].ProtectedHeaders()
	require.NoError(t, err)

	alg, ok := headers.Algorithm()
	require.True(t, ok)
	require.Equal(t, "EdDSA", alg)

	headers, err = (&Signature{Signature: jwsSignature}).ProtectedHeaders()
	require.NoError(t, err)
	require.Empty(t, headers)

	headers, err = fixtureJWE().ProtectedHeaders()
	require.NoError(t, err)

	enc, ok := headers.Encryption()
	require.True(t, ok)
	require.Equal(t, "A128GCM", enc)

	_, err = (&Signature{Protected: strPtr("***")}).ProtectedHeaders()
	require.True(t, IsKind(err, KindInvalidBase64URL))
}

func mustCID(t *testing.T, s string) cid.Cid {
	t.Helper()

	c, err := cid.Decode(s)
	require.NoError(t, err)

	return c
}
