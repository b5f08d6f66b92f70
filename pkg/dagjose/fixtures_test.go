/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package dagjose

import (
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/trustbloc/dag-jose-go/pkg/encoder"
	"github.com/trustbloc/dag-jose-go/pkg/ipld"
)

const (
	jwsPayload   = "AXESIIlVZVHDkmZ5zFLHLhgqVhkFakcnQJ7pOibQWtcnyhH0"
	jwsProtected = "eyJhbGciOiJFZERTQSJ9"
	jwsSignature = "-_9J5OZcl5lVuRlgI1NJEzc0FqEb6_2yVskUaQPducRQ4oe-N5ynCl57wDm4SPtm1L1bltrphpQeBOeWjVW1BQ"
	jwsLink      = "bafyreiejkvsvdq4smz44yuwhfymcuvqzavveoj2at3utujwqlllspsqr6q"

	jwsBlockHex = "a2677061796c6f616458240171122089556551c3926679cc52c72e182a5619056a4727409ee93a26d05ad727ca" +
		"11f46a7369676e61747572657381a26970726f7465637465644f7b22616c67223a224564445341227d69736967" +
		"6e61747572655840fbff49e4e65c979955b9196023534913373416a11bebfdb256c9146903ddb9c450e287be37" +
		"9ca70a5e7bc039b848fb66d4bd5b96dae986941e04e7968d55b505"

	jwsWithHeaderBlockHex = "a2677061796c6f616458240171122089556551c3926679cc52c72e182a5619056a4727409ee93a26d0" +
		"5ad727ca11f46a7369676e61747572657381a366686561646572a2626b30627630626b31016970726f7465637465" +
		"644f7b22616c67223a224564445341227d697369676e61747572655840fbff49e4e65c979955b9196023534913" +
		"373416a11bebfdb256c9146903ddb9c450e287be379ca70a5e7bc039b848fb66d4bd5b96dae986941e04e7968d" +
		"55b505"

	jwsDAGJSON = `{"link":{"/":"` + jwsLink + `"},"payload":"` + jwsPayload +
		`","signatures":[{"protected":"` + jwsProtected + `","signature":"` + jwsSignature + `"}]}`

	jweCiphertext = "3XqLW28NHP-raqW8vMfIHOzko4N3IRaR"
	jweIV         = "PSWIuAyO8CpevzCL"
	jweProtected  = "eyJhbGciOiJkaXIiLCJlbmMiOiJBMTI4R0NNIn0"
	jweTag        = "WZAMBblhzDCsQWOAKdlkSA"

	jweBlockHex = "a46269764c3d2588b80c8ef02a5ebf308b637461675059900c05b961cc30ac41638029d964486970726f746563" +
		"746564581d7b22616c67223a22646972222c22656e63223a224131323847434d227d6a636970686572746578745818" +
		"dd7a8b5b6f0d1cffab6aa5bcbcc7c81cece4a38377211691"

	jweDAGJSON = `{"ciphertext":"` + jweCiphertext + `","iv":"` + jweIV + `","protected":"` + jweProtected +
		`","tag":"` + jweTag + `"}`
)

func strPtr(s string) *string {
	return &s
}

func fixtureJWS() *JSONWebSignature {
	return &JSONWebSignature{
		Payload: jwsPayload,
		Signatures: []Signature{{
			Protected: strPtr(jwsProtected),
			Signature: jwsSignature,
		}},
	}
}

func fixtureJWSWithHeader() *JSONWebSignature {
	s := fixtureJWS()
	s.Signatures[0].Header = Header{
		"k0": ipld.String("v0"),
		"k1": ipld.Int(1),
	}

	return s
}

func fixtureJWE() *JSONWebEncryption {
	return &JSONWebEncryption{
		Ciphertext: jweCiphertext,
		IV:         jweIV,
		Protected:  jweProtected,
		Tag:        jweTag,
	}
}

func fromHex(t *testing.T, s string) []byte {
	t.Helper()

	b, err := hex.DecodeString(s)
	require.NoError(t, err)

	return b
}

func rawField(t *testing.T, s string) ipld.Node {
	t.Helper()

	b, err := encoder.DecodeString(s)
	require.NoError(t, err)

	return ipld.Bytes(b)
}
