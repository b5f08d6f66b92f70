/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package common

import (
	"errors"
	"net/http"

	"github.com/trustbloc/dag-jose-go/pkg/dagjose"
)

// HTTPError holds an error and an HTTP status code
type HTTPError struct {
	err    error
	status int
}

// NewHTTPError returns a new HTTPError
func NewHTTPError(status int, err error) *HTTPError {
	return &HTTPError{
		err:    err,
		status: status,
	}
}

// Error returns the error string
func (e *HTTPError) Error() string {
	return e.err.Error()
}

// Unwrap returns the wrapped error
func (e *HTTPError) Unwrap() error {
	return e.err
}

// Status returns the status code
func (e *HTTPError) Status() int {
	return e.status
}

// StatusOf returns the HTTP status for err. Codec errors are the caller's
// fault and map to 400; anything unrecognised is a 500.
func StatusOf(err error) int {
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.Status()
	}

	var codecErr *dagjose.Error
	if errors.As(err, &codecErr) {
		return http.StatusBadRequest
	}

	return http.StatusInternalServerError
}

// KindOf returns the dag-jose error kind carried by err, if any.
func KindOf(err error) string {
	var codecErr *dagjose.Error
	if errors.As(err, &codecErr) {
		return string(codecErr.Kind)
	}

	return ""
}
