package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/riskledger/riskledger/pkg/domain/types"
	"github.com/riskledger/riskledger/pkg/usecase"
)

type departmentRequest struct {
	Name string `json:"name"`
}

type assignMemberRequest struct {
	UserID string `json:"user_id"`
}

func listDepartmentsHandler(uc *usecase.DepartmentUseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		departments, err := uc.List(r.Context())
		if err != nil {
			handleError(w, r, err)
			return
		}
		writeJSON(r.Context(), w, http.StatusOK, departments)
	}
}

func createDepartmentHandler(uc *usecase.DepartmentUseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req departmentRequest
		if err := decodeJSON(r, &req); err != nil {
			badRequest(w, r, err)
			return
		}

		dept, err := uc.Create(r.Context(), req.Name)
		if err != nil {
			handleError(w, r, err)
			return
		}
		writeJSON(r.Context(), w, http.StatusCreated, dept)
	}
}

func getDepartmentHandler(uc *usecase.DepartmentUseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := types.DepartmentID(chi.URLParam(r, "departmentID"))

		dept, err := uc.Get(r.Context(), id)
		if err != nil {
			handleError(w, r, err)
			return
		}
		writeJSON(r.Context(), w, http.StatusOK, dept)
	}
}

func renameDepartmentHandler(uc *usecase.DepartmentUseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := types.DepartmentID(chi.URLParam(r, "departmentID"))

		var req departmentRequest
		if err := decodeJSON(r, &req); err != nil {
			badRequest(w, r, err)
			return
		}

		dept, err := uc.Rename(r.Context(), id, req.Name)
		if err != nil {
			handleError(w, r, err)
			return
		}
		writeJSON(r.Context(), w, http.StatusOK, dept)
	}
}

func deleteDepartmentHandler(uc *usecase.DepartmentUseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := types.DepartmentID(chi.URLParam(r, "departmentID"))

		if err := uc.Delete(r.Context(), id); err != nil {
			handleError(w, r, err)
			return
		}
		writeJSON(r.Context(), w, http.StatusOK, successResponse{Success: true})
	}
}

func assignMemberHandler(uc *usecase.DepartmentUseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		deptID := types.DepartmentID(chi.URLParam(r, "departmentID"))

		var req assignMemberRequest
		if err := decodeJSON(r, &req); err != nil {
			badRequest(w, r, err)
			return
		}

		if err := uc.Assign(r.Context(), types.UserID(req.UserID), deptID); err != nil {
			handleError(w, r, err)
			return
		}
		writeJSON(r.Context(), w, http.StatusOK, successResponse{Success: true})
	}
}

func unassignMemberHandler(uc *usecase.DepartmentUseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		deptID := types.DepartmentID(chi.URLParam(r, "departmentID"))
		userID := types.UserID(chi.URLParam(r, "userID"))

		if err := uc.Unassign(r.Context(), userID, deptID); err != nil {
			handleError(w, r, err)
			return
		}
		writeJSON(r.Context(), w, http.StatusOK, successResponse{Success: true})
	}
}
