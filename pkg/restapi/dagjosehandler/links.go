/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package dagjosehandler

import (
	"net/http"

	"github.com/pkg/errors"

	"github.com/trustbloc/dag-jose-go/pkg/cidutil"
	"github.com/trustbloc/dag-jose-go/pkg/dagjose"
	logfields "github.com/trustbloc/dag-jose-go/pkg/internal/log"
	"github.com/trustbloc/dag-jose-go/pkg/restapi/common"
	"github.com/trustbloc/dag-jose-go/pkg/restapi/model"
)

// LinksHandler lists the CIDs a block references.
type LinksHandler struct {
	*handler
}

// NewLinksHandler returns a handler for POST {basePath}/links. The optional
// "base" query parameter names the multibase used to render CIDs.
func NewLinksHandler(basePath string) *LinksHandler {
	h := &LinksHandler{}
	h.handler = newHandler(basePath+"/links", http.MethodPost, h.links)

	return h
}

func (h *LinksHandler) links(rw http.ResponseWriter, req *http.Request) {
	body, err := readBody(rw, req)
	if err != nil {
		writeError(rw, err)

		return
	}

	response, err := Links(body, req.URL.Query().Get("base"))
	if err != nil {
		writeError(rw, err)

		return
	}

	common.WriteResponse(rw, http.StatusOK, response)
}

// Links collects the links of block and renders them, and the block CID, in
// the named multibase.
func Links(block []byte, base string) (*model.LinksResponse, error) {
	links, err := dagjose.Links(block)
	if err != nil {
		return nil, errors.Wrap(err, "collect links")
	}

	c, err := dagjose.CID(block)
	if err != nil {
		return nil, errors.Wrap(err, "compute block CID")
	}

	blockCID, err := cidutil.Format(c, base)
	if err != nil {
		return nil, common.NewHTTPError(http.StatusBadRequest, errors.Wrapf(err, "unsupported base [%s]", base))
	}

	response := &model.LinksResponse{CID: blockCID, Links: make([]string, 0, len(links))}

	for _, link := range links {
		s, err := cidutil.Format(link, base)
		if err != nil {
			return nil, errors.Wrapf(err, "format link %s", link)
		}

		response.Links = append(response.Links, s)
	}

	logger.Debug("collected links", logfields.WithCID(c), logfields.WithLinks(links...))

	return response, nil
}
