package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/m-mizutani/goerr/v2"
	"github.com/riskledger/riskledger/pkg/usecase"
	"github.com/riskledger/riskledger/pkg/utils/errutil"
)

// statusFor maps use case errors to HTTP status codes. Anything not
// explicitly classified is treated as a server fault.
func statusFor(err error) int {
	switch {
	case errors.Is(err, usecase.ErrPermissionDenied):
		return http.StatusForbidden
	case errors.Is(err, usecase.ErrRiskNotFound),
		errors.Is(err, usecase.ErrControlNotFound),
		errors.Is(err, usecase.ErrDepartmentNotFound),
		errors.Is(err, usecase.ErrUserNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func handleError(w http.ResponseWriter, r *http.Request, err error) {
	errutil.HandleHTTP(r.Context(), w, err, statusFor(err))
}

func badRequest(w http.ResponseWriter, r *http.Request, err error) {
	errutil.HandleHTTP(r.Context(), w, err, http.StatusBadRequest)
}

func decodeJSON(r *http.Request, v interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return goerr.Wrap(err, "failed to decode request body")
	}
	return nil
}
