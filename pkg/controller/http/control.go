package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/m-mizutani/goerr/v2"
	"github.com/riskledger/riskledger/pkg/domain/types"
	"github.com/riskledger/riskledger/pkg/usecase"
)

// evidence uploads larger than this are rejected before hitting storage
const maxEvidenceSize = 32 << 20 // 32 MiB

type controlRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Type        string `json:"type"`
	Status      string `json:"status"`
}

func (req *controlRequest) input() *usecase.ControlInput {
	return &usecase.ControlInput{
		Title:       req.Title,
		Description: req.Description,
		Type:        types.ControlType(req.Type),
		Status:      types.ControlStatus(req.Status),
	}
}

type evidenceURLResponse struct {
	URL string `json:"url"`
}

func listControlsHandler(uc *usecase.ControlUseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		riskID := types.RiskID(chi.URLParam(r, "riskID"))

		controls, err := uc.ListByRisk(r.Context(), riskID)
		if err != nil {
			handleError(w, r, err)
			return
		}
		writeJSON(r.Context(), w, http.StatusOK, controls)
	}
}

func createControlHandler(uc *usecase.ControlUseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		riskID := types.RiskID(chi.URLParam(r, "riskID"))

		var req controlRequest
		if err := decodeJSON(r, &req); err != nil {
			badRequest(w, r, err)
			return
		}

		control, err := uc.Create(r.Context(), riskID, req.input())
		if err != nil {
			handleError(w, r, err)
			return
		}
		writeJSON(r.Context(), w, http.StatusCreated, control)
	}
}

func getControlHandler(uc *usecase.ControlUseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := types.ControlID(chi.URLParam(r, "controlID"))

		control, err := uc.Get(r.Context(), id)
		if err != nil {
			handleError(w, r, err)
			return
		}
		writeJSON(r.Context(), w, http.StatusOK, control)
	}
}

func updateControlHandler(uc *usecase.ControlUseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := types.ControlID(chi.URLParam(r, "controlID"))

		var req controlRequest
		if err := decodeJSON(r, &req); err != nil {
			badRequest(w, r, err)
			return
		}

		control, err := uc.Update(r.Context(), id, req.input())
		if err != nil {
			handleError(w, r, err)
			return
		}
		writeJSON(r.Context(), w, http.StatusOK, control)
	}
}

func deleteControlHandler(uc *usecase.ControlUseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := types.ControlID(chi.URLParam(r, "controlID"))

		if err := uc.Delete(r.Context(), id); err != nil {
			handleError(w, r, err)
			return
		}
		writeJSON(r.Context(), w, http.StatusOK, successResponse{Success: true})
	}
}

// attachEvidenceHandler accepts a multipart upload with a single "file" part
// and stores it as the control's evidence.
func attachEvidenceHandler(uc *usecase.ControlUseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := types.ControlID(chi.URLParam(r, "controlID"))

		if err := r.ParseMultipartForm(maxEvidenceSize); err != nil {
			badRequest(w, r, goerr.Wrap(err, "failed to parse multipart form"))
			return
		}

		file, header, err := r.FormFile("file")
		if err != nil {
			badRequest(w, r, goerr.Wrap(err, "missing evidence file"))
			return
		}
		defer file.Close()

		contentType := header.Header.Get("Content-Type")
		if contentType == "" {
			contentType = "application/octet-stream"
		}

		control, err := uc.AttachEvidence(r.Context(), id, header.Filename, contentType, file)
		if err != nil {
			handleError(w, r, err)
			return
		}
		writeJSON(r.Context(), w, http.StatusOK, control)
	}
}

func evidenceURLHandler(uc *usecase.ControlUseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := types.ControlID(chi.URLParam(r, "controlID"))

		url, err := uc.EvidenceURL(r.Context(), id)
		if err != nil {
			handleError(w, r, err)
			return
		}
		writeJSON(r.Context(), w, http.StatusOK, evidenceURLResponse{URL: url})
	}
}
