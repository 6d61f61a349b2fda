package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/riskledger/riskledger/pkg/domain/model/auth"
	"github.com/riskledger/riskledger/pkg/domain/types"
	"github.com/riskledger/riskledger/pkg/usecase"
)

type setRoleRequest struct {
	Role string `json:"role"`
}

func listUsersHandler(uc *usecase.UserUseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		users, err := uc.List(r.Context())
		if err != nil {
			handleError(w, r, err)
			return
		}
		writeJSON(r.Context(), w, http.StatusOK, users)
	}
}

func getUserHandler(uc *usecase.UserUseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := types.UserID(chi.URLParam(r, "userID"))

		user, err := uc.Get(r.Context(), id)
		if err != nil {
			handleError(w, r, err)
			return
		}
		writeJSON(r.Context(), w, http.StatusOK, user)
	}
}

func setRoleHandler(uc *usecase.UserUseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := types.UserID(chi.URLParam(r, "userID"))

		var req setRoleRequest
		if err := decodeJSON(r, &req); err != nil {
			badRequest(w, r, err)
			return
		}

		user, err := uc.SetRole(r.Context(), id, types.Role(req.Role))
		if err != nil {
			handleError(w, r, err)
			return
		}
		writeJSON(r.Context(), w, http.StatusOK, user)
	}
}

// permissionsMeHandler exposes the effective permission snapshot of the
// caller. A caller whose permissions could not be loaded sees the same shape
// with everything denied, not an error.
func permissionsMeHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		perms := auth.PermissionsFromContext(r.Context())
		if perms == nil {
			perms = &auth.Permissions{
				DepartmentIDs:   []types.DepartmentID{},
				DepartmentNames: []string{},
			}
		}
		writeJSON(r.Context(), w, http.StatusOK, perms)
	}
}
