// Package v1 implements the v1 API of Coinkeep.
package v1

import (
	"errors"
	"net/http"

	"github.com/coinkeep/backend/internal/httputil"
	"github.com/coinkeep/backend/internal/models"
)

type httpError struct {
	Error string `json:"error" example:"there is no transaction matching your query"`
}

// status returns the appropriate HTTP status for an error.
func status(err error) int {
	if errors.Is(err, models.ErrGeneral) {
		return http.StatusInternalServerError
	}

	if errors.Is(err, models.ErrResourceNotFound) {
		return http.StatusNotFound
	}

	return http.StatusBadRequest
}

var errInvalidUUID = httputil.ErrInvalidUUID
