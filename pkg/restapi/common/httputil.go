/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package common

import (
	"net/http"
	"strconv"

	"github.com/ipfs/go-cid"
	"github.com/trustbloc/logutil-go/pkg/log"

	"github.com/trustbloc/dag-jose-go/pkg/codec/dagjson"
	logfields "github.com/trustbloc/dag-jose-go/pkg/internal/log"
	"github.com/trustbloc/dag-jose-go/pkg/restapi/model"
)

// Content types.
const (
	ContentTypeJSON    = "application/json"
	ContentTypeDAGJSON = "application/vnd.ipld.dag-json"
	ContentTypeBlock   = "application/vnd.ipld.raw"
	ContentTypeText    = "text/plain"
)

// BlockCIDHeader carries the CID of a returned block.
const BlockCIDHeader = "X-Block-CID"

// WriteResponse writes a response to the response writer
func WriteResponse(rw http.ResponseWriter, status int, v interface{}) {
	data, err := dagjson.Marshal(v)
	if err != nil {
		logger.Error("Unable to marshal response", log.WithError(err))
		WriteError(rw, http.StatusInternalServerError, err)

		return
	}

	write(rw, status, ContentTypeJSON, append(data, '\n'))
}

// WriteRaw writes pre-encoded content with the given content type.
func WriteRaw(rw http.ResponseWriter, status int, contentType string, data []byte) {
	write(rw, status, contentType, data)
}

// WriteBlock writes an encoded block together with its CID.
func WriteBlock(rw http.ResponseWriter, c cid.Cid, data []byte) {
	rw.Header().Set(BlockCIDHeader, c.String())
	rw.Header().Set("Content-Length", strconv.Itoa(len(data)))

	write(rw, http.StatusOK, ContentTypeBlock, data)
}

// WriteError writes an error to the response writer
func WriteError(rw http.ResponseWriter, status int, err error) {
	if status >= http.StatusInternalServerError {
		logger.Error("Request failed", log.WithError(err), logfields.WithKind(KindOf(err)))
	}

	data, e := dagjson.Marshal(&model.Error{Message: err.Error(), Kind: KindOf(err)})
	if e != nil {
		logger.Error("Unable to marshal error", log.WithError(e))

		return
	}

	write(rw, status, ContentTypeJSON, append(data, '\n'))
}

func write(rw http.ResponseWriter, status int, contentType string, data []byte) {
	rw.Header().Set("Content-Type", contentType)
	rw.WriteHeader(status)

	if _, err := rw.Write(data); err != nil {
		log.WriteResponseBodyError(logger, err)
	}
}
