/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package dagjosehandler

import (
	"fmt"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"

	"github.com/trustbloc/dag-jose-go/pkg/dagjose"
	logfields "github.com/trustbloc/dag-jose-go/pkg/internal/log"
	"github.com/trustbloc/dag-jose-go/pkg/restapi/common"
)

// Views supported by the decode handler.
const (
	ViewJose    = "jose"
	ViewNode    = "node"
	ViewGeneral = "general"
	ViewCompact = "compact"
)

// DecodeHandler renders a DAG-JOSE block in a requested view.
type DecodeHandler struct {
	*handler
}

// NewDecodeHandler returns a handler for POST {basePath}/decode/{view}.
func NewDecodeHandler(basePath string) *DecodeHandler {
	h := &DecodeHandler{}
	h.handler = newHandler(basePath+"/decode/{view}", http.MethodPost, h.decode)

	return h
}

func (h *DecodeHandler) decode(rw http.ResponseWriter, req *http.Request) {
	view := getView(req)

	body, err := readBody(rw, req)
	if err != nil {
		writeError(rw, err)

		return
	}

	contentType, data, err := Render(view, body)
	if err != nil {
		writeError(rw, err)

		return
	}

	logger.Debug("decoded block", logfields.WithView(view), logfields.WithSize(len(body)))

	common.WriteRaw(rw, http.StatusOK, contentType, data)
}

// Render decodes block and renders it in view. It returns the content type of
// the rendering.
func Render(view string, block []byte) (string, []byte, error) {
	if view == ViewNode {
		n, err := dagjose.UnmarshalNode(block)
		if err != nil {
			return "", nil, errors.Wrap(err, "decode block")
		}

		data, err := n.MarshalJSON()
		if err != nil {
			return "", nil, errors.Wrap(err, "render node")
		}

		return common.ContentTypeDAGJSON, data, nil
	}

	value, err := dagjose.Unmarshal(block)
	if err != nil {
		return "", nil, errors.Wrap(err, "decode block")
	}

	switch view {
	case ViewJose:
		data, err := dagjose.MarshalJSON(value)
		if err != nil {
			return "", nil, errors.Wrap(err, "render DAG-JSON")
		}

		return common.ContentTypeDAGJSON, data, nil
	case ViewGeneral:
		data, err := dagjose.GeneralJSON(value)
		if err != nil {
			return "", nil, errors.Wrap(err, "render general JSON")
		}

		return common.ContentTypeJSON, data, nil
	case ViewCompact:
		compact, err := compactOf(value)
		if err != nil {
			return "", nil, common.NewHTTPError(http.StatusBadRequest, errors.Wrap(err, "render compact"))
		}

		return common.ContentTypeText, []byte(compact), nil
	default:
		return "", nil, common.NewHTTPError(http.StatusBadRequest, fmt.Errorf("unsupported view [%s]", view))
	}
}

func compactOf(value dagjose.Jose) (string, error) {
	switch v := value.(type) {
	case *dagjose.JSONWebSignature:
		return v.Compact()
	case *dagjose.JSONWebEncryption:
		return v.Compact()
	default:
		return "", fmt.Errorf("unsupported JOSE value %T", value)
	}
}

var getView = func(req *http.Request) string {
	return mux.Vars(req)["view"]
}
