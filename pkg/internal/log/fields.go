/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package log

import (
	"fmt"

	"github.com/ipfs/go-cid"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Log Fields.
const (
	FieldURI     = "uri"
	FieldCodec   = "codec"
	FieldCID     = "cid"
	FieldSize    = "size"
	FieldVariant = "variant"
	FieldTotal   = "total"
	FieldLinks   = "links"
	FieldView    = "view"
	FieldKind    = "kind"
)

// WithURIString sets the uri field.
func WithURIString(value string) zap.Field {
	return zap.String(FieldURI, value)
}

// WithCodec sets the codec field to the hex form of a multicodec code.
func WithCodec(value uint64) zap.Field {
	return zap.String(FieldCodec, fmt.Sprintf("0x%x", value))
}

// WithCID sets the cid field.
func WithCID(value cid.Cid) zap.Field {
	return zap.String(FieldCID, value.String())
}

// WithSize sets the size field.
func WithSize(value int) zap.Field {
	return zap.Int(FieldSize, value)
}

// WithVariant sets the variant field.
func WithVariant(value string) zap.Field {
	return zap.String(FieldVariant, value)
}

// WithTotal sets the total field.
func WithTotal(value int) zap.Field {
	return zap.Int(FieldTotal, value)
}

// WithLinks sets the links field.
func WithLinks(values ...cid.Cid) zap.Field {
	strs := make([]string, len(values))
	for i, c := range values {
		strs[i] = c.String()
	}

	return zap.Array(FieldLinks, NewStringArrayMarshaller(strs))
}

// WithView sets the view field.
func WithView(value string) zap.Field {
	return zap.String(FieldView, value)
}

// WithKind sets the kind field, typically an error kind.
func WithKind(value string) zap.Field {
	return zap.String(FieldKind, value)
}

// StringArrayMarshaller marshals an array of strings into a log field.
type StringArrayMarshaller struct {
	values []string
}

// NewStringArrayMarshaller returns a new StringArrayMarshaller.
func NewStringArrayMarshaller(values []string) *StringArrayMarshaller {
	return &StringArrayMarshaller{values: values}
}

// MarshalLogArray marshals the array.
func (m *StringArrayMarshaller) MarshalLogArray(e zapcore.ArrayEncoder) error {
	for _, v := range m.values {
		e.AppendString(v)
	}

	return nil
}
