/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package common

import (
	"errors"
	"net/http"
	"testing"

	pkgerrors "github.com/pkg/errors"
	"github.com/stretchr/testify/require"

	"github.com/trustbloc/dag-jose-go/pkg/dagjose"
)

func TestNewHTTPError(t *testing.T) {
	errExpected := errors.New("expected error")
	err := NewHTTPError(http.StatusBadRequest, errExpected)
	require.NotNil(t, err)
	require.Equal(t, http.StatusBadRequest, err.Status())
	require.Equal(t, errExpected.Error(), err.Error())
	require.True(t, errors.Is(err, errExpected))
}

func TestStatusOf(t *testing.T) {
	_, codecErr := dagjose.Unmarshal([]byte{0xff})
	require.Error(t, codecErr)

	require.Equal(t, http.StatusBadRequest, StatusOf(codecErr))
	require.Equal(t, http.StatusBadRequest, StatusOf(pkgerrors.Wrap(codecErr, "decode block")))
	require.Equal(t, http.StatusNotFound, StatusOf(NewHTTPError(http.StatusNotFound, errors.New("no route"))))
	require.Equal(t, http.StatusInternalServerError, StatusOf(errors.New("boom")))

	require.Equal(t, "Codec", KindOf(codecErr))
	require.Empty(t, KindOf(errors.New("boom")))
}
