/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package gzip

import (
	"bytes"
	"compress/gzip"
	"fmt"
	"io"
	"strings"
)

// Coding is the HTTP content coding handled by this algorithm.
const Coding = "gzip"

// legacyCoding is the alias RFC 9110 asks recipients to accept.
const legacyCoding = "x-gzip"

// Option configures an Algorithm.
type Option func(a *Algorithm)

// WithMaxSize caps the decompressed size. Zero means no limit.
func WithMaxSize(n int64) Option {
	return func(a *Algorithm) {
		a.maxSize = n
	}
}

// Algorithm implements gzip compression/decompression.
type Algorithm struct {
	maxSize int64
}

// New creates new gzip algorithm instance.
func New(opts ...Option) *Algorithm {
	a := &Algorithm{}

	for _, opt := range opts {
		opt(a)
	}

	return a
}

// Compress will compress data using gzip.
func (a *Algorithm) Compress(data []byte) ([]byte, error) {
	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)

	if _, err := zw.Write(data); err != nil {
		return nil, fmt.Errorf("write data: %w", err)
	}

	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("close writer: %w", err)
	}

	return buf.Bytes(), nil
}

// Decompress will decompress compressed data.
func (a *Algorithm) Decompress(data []byte) ([]byte, error) {
	zr, err := gzip.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("create reader: %w", err)
	}

	defer zr.Close() //nolint:errcheck

	var r io.Reader = zr
	if a.maxSize > 0 {
		r = io.LimitReader(zr, a.maxSize+1)
	}

	out, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read compressed data: %w", err)
	}

	if a.maxSize > 0 && int64(len(out)) > a.maxSize {
		return nil, fmt.Errorf("decompressed data exceeds %d bytes", a.maxSize)
	}

	return out, nil
}

// Accept reports whether coding names gzip.
func (a *Algorithm) Accept(coding string) bool {
	coding = strings.TrimSpace(coding)

	return strings.EqualFold(coding, Coding) || strings.EqualFold(coding, legacyCoding)
}
