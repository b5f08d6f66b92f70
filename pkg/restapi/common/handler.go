/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package common

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/trustbloc/logutil-go/pkg/log"

	logfields "github.com/trustbloc/dag-jose-go/pkg/internal/log"
)

var logger = log.New("dag-jose-restapi-common")

// HTTPRequestHandler is an HTTP handler
type HTTPRequestHandler func(http.ResponseWriter, *http.Request)

// HTTPHandler is a HTTP handler descriptor containing the context path, method, and request handler
type HTTPHandler interface {
	Path() string
	Method() string
	Handler() HTTPRequestHandler
}

// NewRouter registers handlers on a new gorilla/mux router.
func NewRouter(handlers ...HTTPHandler) *mux.Router {
	router := mux.NewRouter()

	for _, handler := range handlers {
		logger.Debug("registering handler", logfields.WithURIString(handler.Path()))

		router.HandleFunc(handler.Path(), handler.Handler()).Methods(handler.Method())
	}

	return router
}
