/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package dagjosehandler exposes the DAG-JOSE codec over HTTP.
package dagjosehandler

import (
	"io"
	"net/http"

	"github.com/pkg/errors"
	"github.com/trustbloc/logutil-go/pkg/log"

	"github.com/trustbloc/dag-jose-go/pkg/compression"
	logfields "github.com/trustbloc/dag-jose-go/pkg/internal/log"
	"github.com/trustbloc/dag-jose-go/pkg/restapi/common"
)

var logger = log.New("dag-jose-restapi")

// MaxBodySize is the largest request body accepted by the handlers.
const MaxBodySize = 4 << 20

// codings decodes Content-Encoding: gzip bodies. The decompressed size is
// bounded by MaxBodySize as well.
var codings = compression.New(compression.WithDefaultAlgorithms(MaxBodySize))

type handler struct {
	path       string
	method     string
	reqHandler common.HTTPRequestHandler
}

func newHandler(path, method string, reqHandler common.HTTPRequestHandler) *handler {
	return &handler{
		path:       path,
		method:     method,
		reqHandler: reqHandler,
	}
}

// Path returns the context path
func (h *handler) Path() string {
	return h.path
}

// Method returns the HTTP method
func (h *handler) Method() string {
	return h.method
}

// Handler returns the handler
func (h *handler) Handler() common.HTTPRequestHandler {
	return h.reqHandler
}

// Handlers returns every dag-jose handler rooted at basePath.
func Handlers(basePath string) []common.HTTPHandler {
	return []common.HTTPHandler{
		NewEncodeHandler(basePath),
		NewDecodeHandler(basePath),
		NewLinksHandler(basePath),
	}
}

func readBody(rw http.ResponseWriter, req *http.Request) ([]byte, error) {
	body, err := io.ReadAll(http.MaxBytesReader(rw, req.Body, MaxBodySize))
	if err != nil {
		return nil, common.NewHTTPError(http.StatusBadRequest, errors.Wrap(err, "read request body"))
	}

	coding := req.Header.Get("Content-Encoding")
	if !codings.Supports(coding) {
		return nil, common.NewHTTPError(http.StatusUnsupportedMediaType,
			errors.Errorf("content encoding '%s' not supported", coding))
	}

	if len(body) > 0 {
		body, err = codings.Decompress(coding, body)
		if err != nil {
			return nil, common.NewHTTPError(http.StatusBadRequest, errors.Wrap(err, "decode request body"))
		}
	}

	if len(body) == 0 {
		return nil, common.NewHTTPError(http.StatusBadRequest, errors.New("empty request body"))
	}

	return body, nil
}

func writeError(rw http.ResponseWriter, err error) {
	status := common.StatusOf(err)

	if status < http.StatusInternalServerError {
		logger.Debug("rejected request", logfields.WithKind(common.KindOf(err)))
	}

	common.WriteError(rw, status, err)
}
