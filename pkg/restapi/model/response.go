/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package model

// EncodeResponse describes an encoded block
// swagger:model encodeResponse
type EncodeResponse struct {
	// CID of the block
	CID string `json:"cid"`

	// block bytes, base64url encoded
	Block string `json:"block"`

	// block size in bytes
	Size int `json:"size"`
}

// LinksResponse lists the links of a block
// swagger:model linksResponse
type LinksResponse struct {
	// CID of the block
	CID string `json:"cid"`

	// referenced CIDs in document order
	Links []string `json:"links"`
}
