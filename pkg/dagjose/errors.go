/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package dagjose

import "errors"

// Kind is a stable error category. Branch on Kind (or use errors.Is with the
// Err* sentinels) rather than matching error strings.
type Kind string

// Error kinds.
const (
	// KindNotJWS means the value lacks the JWS field group or mixes in JWE fields.
	KindNotJWS Kind = "NotJWS"
	// KindNotJWE means the value lacks a required JWE field or mixes in JWS fields.
	KindNotJWE Kind = "NotJWE"
	// KindInvalidCID means the payload bytes are not a CID.
	KindInvalidCID Kind = "InvalidCID"
	// KindInvalidBase64URL means a text field is not unpadded base64url.
	KindInvalidBase64URL Kind = "InvalidBase64URL"
	// KindCodec means the underlying CBOR or JSON codec failed.
	KindCodec Kind = "Codec"
)

// Sentinels for errors.Is. They match any *Error of the same Kind.
var (
	ErrNotJWS           = &Error{Kind: KindNotJWS, Message: "data not a JWS value"}
	ErrNotJWE           = &Error{Kind: KindNotJWE, Message: "data not a JWE value"}
	ErrInvalidCID       = &Error{Kind: KindInvalidCID, Message: "invalid CID data in payload"}
	ErrInvalidBase64URL = &Error{Kind: KindInvalidBase64URL, Message: "invalid base64 url data"}
	ErrCodec            = &Error{Kind: KindCodec, Message: "codec failure"}
)

// Error is the error type returned by every operation in this package.
type Error struct {
	Kind    Kind
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}

	if e.Cause == nil {
		return e.Message
	}

	return e.Message + ": " + e.Cause.Error()
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}

	return e.Cause
}

// Is reports whether target is an *Error of the same Kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok || e == nil || t == nil {
		return false
	}

	return e.Kind == t.Kind
}

// IsKind reports whether err is (or wraps) an *Error with the given Kind.
func IsKind(err error, kind Kind) bool {
	var e *Error
	if !errors.As(err, &e) {
		return false
	}

	return e.Kind == kind
}

func newError(kind Kind, msg string) error {
	return &Error{Kind: kind, Message: msg}
}

func wrapError(kind Kind, msg string, cause error) error {
	return &Error{Kind: kind, Message: msg, Cause: cause}
}
