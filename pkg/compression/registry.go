/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package compression resolves HTTP content codings (e.g. gzip) to
// compression algorithms.
package compression

import (
	"fmt"
	"strings"

	"github.com/trustbloc/dag-jose-go/pkg/compression/gzip"
)

// Identity is the content coding for uncompressed data.
const Identity = "identity"

// Option is a registry instance option
type Option func(opts *Registry)

// Registry contains compression algorithms
type Registry struct {
	algorithms []Algorithm
}

// Algorithm defines compression/decompression algorithm functionality
type Algorithm interface {
	Compress(value []byte) ([]byte, error)
	Decompress(value []byte) ([]byte, error)
	Accept(coding string) bool
}

// New return new instance of compression algorithm registry
func New(opts ...Option) *Registry {
	registry := &Registry{}

	for _, opt := range opts {
		opt(registry)
	}

	return registry
}

// Supports reports whether coding can be decoded. Identity and the empty
// coding are always supported.
func (r *Registry) Supports(coding string) bool {
	if isIdentity(coding) {
		return true
	}

	_, err := r.resolveAlgorithm(coding)

	return err == nil
}

// Compress encodes data with the given content coding.
func (r *Registry) Compress(coding string, data []byte) ([]byte, error) {
	if isIdentity(coding) {
		return data, nil
	}

	algorithm, err := r.resolveAlgorithm(coding)
	if err != nil {
		return nil, err
	}

	result, err := algorithm.Compress(data)
	if err != nil {
		return nil, fmt.Errorf("compression failed for coding[%s]: %w", coding, err)
	}

	return result, nil
}

// Decompress decodes data with the given content coding.
func (r *Registry) Decompress(coding string, data []byte) ([]byte, error) {
	if isIdentity(coding) {
		return data, nil
	}

	algorithm, err := r.resolveAlgorithm(coding)
	if err != nil {
		return nil, err
	}

	result, err := algorithm.Decompress(data)
	if err != nil {
		return nil, fmt.Errorf("decompression failed for coding[%s]: %w", coding, err)
	}

	return result, nil
}

func (r *Registry) resolveAlgorithm(coding string) (Algorithm, error) {
	for _, v := range r.algorithms {
		if v.Accept(coding) {
			return v, nil
		}
	}

	return nil, fmt.Errorf("content coding '%s' not supported", coding)
}

func isIdentity(coding string) bool {
	coding = strings.TrimSpace(coding)

	return coding == "" || strings.EqualFold(coding, Identity)
}

// WithAlgorithm adds compression algorithm to the list of available algorithms
func WithAlgorithm(alg Algorithm) Option {
	return func(opts *Registry) {
		opts.algorithms = append(opts.algorithms, alg)
	}
}

// WithDefaultAlgorithms adds gzip, limiting decompressed output to maxSize
// bytes (0 means no limit).
func WithDefaultAlgorithms(maxSize int64) Option {
	return func(opts *Registry) {
		opts.algorithms = append(opts.algorithms, gzip.New(gzip.WithMaxSize(maxSize)))
	}
}
