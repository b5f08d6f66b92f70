/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package dagjosehandler

import (
	"fmt"
	"net/http"

	"github.com/pkg/errors"

	"github.com/trustbloc/dag-jose-go/pkg/dagjose"
	"github.com/trustbloc/dag-jose-go/pkg/encoder"
	logfields "github.com/trustbloc/dag-jose-go/pkg/internal/log"
	"github.com/trustbloc/dag-jose-go/pkg/restapi/common"
	"github.com/trustbloc/dag-jose-go/pkg/restapi/model"
)

// Input formats accepted by the encode handler.
const (
	FromDAGJSON = "dag-json"
	FromCompact = "compact"
	FromGeneral = "general"
)

// Output formats of the encode handler.
const (
	FormatBlock = "block"
	FormatJSON  = "json"
)

// EncodeHandler turns a JOSE value into a DAG-JOSE block.
type EncodeHandler struct {
	*handler
}

// NewEncodeHandler returns a handler for POST {basePath}/encode.
//
// The body is DAG-JSON unless the "from" query parameter says compact or
// general. The block is returned as-is, or described as JSON when
// "format=json".
func NewEncodeHandler(basePath string) *EncodeHandler {
	h := &EncodeHandler{}
	h.handler = newHandler(basePath+"/encode", http.MethodPost, h.encode)

	return h
}

func (h *EncodeHandler) encode(rw http.ResponseWriter, req *http.Request) {
	body, err := readBody(rw, req)
	if err != nil {
		writeError(rw, err)

		return
	}

	value, err := ParseJose(req.URL.Query().Get("from"), body)
	if err != nil {
		writeError(rw, err)

		return
	}

	block, err := dagjose.Marshal(value)
	if err != nil {
		writeError(rw, errors.Wrap(err, "encode block"))

		return
	}

	c, err := dagjose.CID(block)
	if err != nil {
		writeError(rw, errors.Wrap(err, "compute block CID"))

		return
	}

	logger.Debug("encoded block", logfields.WithCID(c), logfields.WithSize(len(block)))

	switch format := req.URL.Query().Get("format"); format {
	case "", FormatBlock:
		common.WriteBlock(rw, c, block)
	case FormatJSON:
		rw.Header().Set(common.BlockCIDHeader, c.String())
		common.WriteResponse(rw, http.StatusOK, &model.EncodeResponse{
			CID:   c.String(),
			Block: encoder.EncodeToString(block),
			Size:  len(block),
		})
	default:
		writeError(rw, common.NewHTTPError(http.StatusBadRequest, fmt.Errorf("unsupported format [%s]", format)))
	}
}

// ParseJose parses a JOSE value in the given input format. An empty format
// means DAG-JSON.
func ParseJose(from string, data []byte) (dagjose.Jose, error) {
	switch from {
	case "", FromDAGJSON:
		return dagjose.UnmarshalJSON(data)
	case FromCompact:
		return dagjose.ParseCompact(string(data))
	case FromGeneral:
		return dagjose.ParseGeneral(data)
	default:
		return nil, common.NewHTTPError(http.StatusBadRequest, fmt.Errorf("unsupported input format [%s]", from))
	}
}
