package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/riskledger/riskledger/pkg/domain/model"
	"github.com/riskledger/riskledger/pkg/domain/types"
	"github.com/riskledger/riskledger/pkg/usecase"
)

type riskRequest struct {
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	DepartmentID string   `json:"department_id"`
	Likelihood   int      `json:"likelihood"`
	Impact       int      `json:"impact"`
	Status       string   `json:"status"`
	OwnerID      string   `json:"owner_id"`
	Tags         []string `json:"tags"`
}

// riskResponse adds the derived score and priority band to the stored fields
type riskResponse struct {
	*model.Risk
	Score int             `json:"score"`
	Level types.RiskLevel `json:"level"`
}

func toRiskResponse(r *model.Risk) riskResponse {
	return riskResponse{Risk: r, Score: r.Score(), Level: r.Level()}
}

func toRiskResponses(risks []*model.Risk) []riskResponse {
	out := make([]riskResponse, 0, len(risks))
	for _, r := range risks {
		out = append(out, toRiskResponse(r))
	}
	return out
}

func (req *riskRequest) input() *usecase.RiskInput {
	return &usecase.RiskInput{
		Title:        req.Title,
		Description:  req.Description,
		DepartmentID: types.DepartmentID(req.DepartmentID),
		Likelihood:   types.Likelihood(req.Likelihood),
		Impact:       types.Impact(req.Impact),
		Status:       types.RiskStatus(req.Status),
		OwnerID:      types.UserID(req.OwnerID),
		Tags:         req.Tags,
	}
}

func listRisksHandler(uc *usecase.RiskUseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		risks, err := uc.ListVisible(r.Context())
		if err != nil {
			handleError(w, r, err)
			return
		}
		writeJSON(r.Context(), w, http.StatusOK, toRiskResponses(risks))
	}
}

func createRiskHandler(uc *usecase.RiskUseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req riskRequest
		if err := decodeJSON(r, &req); err != nil {
			badRequest(w, r, err)
			return
		}

		risk, err := uc.Create(r.Context(), req.input())
		if err != nil {
			handleError(w, r, err)
			return
		}
		writeJSON(r.Context(), w, http.StatusCreated, toRiskResponse(risk))
	}
}

func getRiskHandler(uc *usecase.RiskUseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := types.RiskID(chi.URLParam(r, "riskID"))

		risk, err := uc.Get(r.Context(), id)
		if err != nil {
			handleError(w, r, err)
			return
		}
		writeJSON(r.Context(), w, http.StatusOK, toRiskResponse(risk))
	}
}

func updateRiskHandler(uc *usecase.RiskUseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := types.RiskID(chi.URLParam(r, "riskID"))

		var req riskRequest
		if err := decodeJSON(r, &req); err != nil {
			badRequest(w, r, err)
			return
		}

		risk, err := uc.Update(r.Context(), id, req.input())
		if err != nil {
			handleError(w, r, err)
			return
		}
		writeJSON(r.Context(), w, http.StatusOK, toRiskResponse(risk))
	}
}

func deleteRiskHandler(uc *usecase.RiskUseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := types.RiskID(chi.URLParam(r, "riskID"))

		if err := uc.Delete(r.Context(), id); err != nil {
			handleError(w, r, err)
			return
		}
		writeJSON(r.Context(), w, http.StatusOK, successResponse{Success: true})
	}
}
