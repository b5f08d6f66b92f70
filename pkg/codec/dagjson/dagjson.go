/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package dagjson holds the JSON primitives used by the DAG-JSON text codec.
package dagjson

import (
	"bytes"
	"errors"
	"io"

	"github.com/square/go-jose/v3/json"

	"github.com/trustbloc/dag-jose-go/pkg/cidutil"
)

// Code is the DAG-JSON multicodec.
const Code = cidutil.DagJSON

// Number is a JSON number literal kept as text.
type Number = json.Number

// Marshal returns the JSON encoding of v.
func Marshal(v interface{}) ([]byte, error) {
	return json.Marshal(v)
}

// Unmarshal parses JSON data into v.
func Unmarshal(data []byte, v interface{}) error {
	return json.Unmarshal(data, v)
}

// DecodeValue parses a single JSON value into maps, slices, strings, bools,
// nil and Number. Anything after the value other than whitespace is an error.
func DecodeValue(data []byte) (interface{}, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var v interface{}
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}

	var extra interface{}
	if err := dec.Decode(&extra); !errors.Is(err, io.EOF) {
		return nil, errors.New("unexpected data after top-level value")
	}

	return v, nil
}
