/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package encoder

import "encoding/base64"

// urlEncoding is the unpadded URL-safe alphabet. Strict mode rejects
// encodings whose unused trailing bits are not zero, so every byte
// sequence has exactly one accepted text form.
var urlEncoding = base64.RawURLEncoding.Strict()

// EncodeToString encodes the bytes to base64url text without padding.
func EncodeToString(data []byte) string {
	return urlEncoding.EncodeToString(data)
}

// DecodeString decodes base64url text without padding. Padding characters,
// the standard alphabet and embedded newlines are rejected.
func DecodeString(encodedContent string) ([]byte, error) {
	for i := 0; i < len(encodedContent); i++ {
		if encodedContent[i] == '\r' || encodedContent[i] == '\n' {
			return nil, base64.CorruptInputError(i)
		}
	}

	return urlEncoding.DecodeString(encodedContent)
}
