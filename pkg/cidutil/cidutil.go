/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package cidutil derives, parses and renders content identifiers.
package cidutil

import (
	"fmt"

	"github.com/ipfs/go-cid"
	"github.com/multiformats/go-multibase"
	"github.com/multiformats/go-multihash"
)

// Multicodec codes used by this module.
const (
	Raw     uint64 = 0x55
	DagCBOR uint64 = 0x71
	DagJOSE uint64 = 0x85
	DagJSON uint64 = 0x0129
)

// Sum returns a CIDv1 for data with the given multicodec and a sha2-256 multihash.
func Sum(codec uint64, data []byte) (cid.Cid, error) {
	mh, err := multihash.Sum(data, multihash.SHA2_256, -1)
	if err != nil {
		return cid.Undef, fmt.Errorf("compute multihash: %w", err)
	}

	return cid.NewCidV1(codec, mh), nil
}

// Cast parses the binary form of a CID. The whole slice must be consumed.
func Cast(b []byte) (cid.Cid, error) {
	n, c, err := cid.CidFromBytes(b)
	if err != nil {
		return cid.Undef, err
	}

	if n != len(b) {
		return cid.Undef, fmt.Errorf("%d trailing bytes after CID", len(b)-n)
	}

	return c, nil
}

// Format renders c in the multibase named by base (e.g. "base58btc").
// An empty base selects the CID's default string form.
func Format(c cid.Cid, base string) (string, error) {
	if base == "" {
		return c.String(), nil
	}

	enc, err := multibase.EncoderByName(base)
	if err != nil {
		return "", fmt.Errorf("multibase '%s': %w", base, err)
	}

	return c.StringOfBase(enc.Encoding())
}
