/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package dagcbor

import (
	"fmt"

	"github.com/fxamacker/cbor/v2"
	"github.com/ipfs/go-cid"
)

// Links decodes data without a schema and returns every tag 42 link in
// document order. Values that are not links are not interpreted.
func Links(data []byte) ([]cid.Cid, error) {
	var v any
	if err := Unmarshal(data, &v); err != nil {
		return nil, err
	}

	var links []cid.Cid

	if err := collectLinks(v, &links); err != nil {
		return nil, err
	}

	return links, nil
}

func collectLinks(v any, links *[]cid.Cid) error {
	switch val := v.(type) {
	case cbor.Tag:
		if val.Number != LinkTag {
			return collectLinks(val.Content, links)
		}

		c, err := DecodeLink(val)
		if err != nil {
			return fmt.Errorf("invalid link: %w", err)
		}

		*links = append(*links, c)
	case []any:
		for _, e := range val {
			if err := collectLinks(e, links); err != nil {
				return err
			}
		}
	case map[string]any:
		keys := make([]string, 0, len(val))
		for k := range val {
			keys = append(keys, k)
		}

		SortKeys(keys)

		for _, k := range keys {
			if err := collectLinks(val[k], links); err != nil {
				return err
			}
		}
	}

	return nil
}
