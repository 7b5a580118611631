package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"github.com/sells-group/csat-sync/internal/survey"
)

// HeaderSubmissionID carries the submission's correlation ID back to the caller.
const HeaderSubmissionID = "X-Submission-ID"

const maxBodyBytes = 64 << 10

// SurveyService is the part of survey.Service the handler uses.
type SurveyService interface {
	Retrieve(ctx context.Context, phone string) (survey.Retrieval, error)
	Submit(ctx context.Context, resp survey.Response) (survey.Outcome, error)
}

type surveyRequest struct {
	Phone     string `json:"phone"`
	Status    string `json:"status"`
	Feedback  string `json:"feedback"`
	Action    string `json:"action"`
	FirstName string `json:"firstName"`
}

type errorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

type handler struct {
	svc SurveyService
}

func (h *handler) survey(w http.ResponseWriter, r *http.Request) {
	var req surveyRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", "")
		return
	}

	if req.Action == survey.ActionRetrieve {
		out, err := h.svc.Retrieve(r.Context(), req.Phone)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, out)
		return
	}

	out, err := h.svc.Submit(r.Context(), survey.Response{
		Phone:     req.Phone,
		Status:    survey.Status(req.Status),
		Feedback:  req.Feedback,
		FirstName: req.FirstName,
	})
	if out.SubmissionID != "" {
		w.Header().Set(HeaderSubmissionID, out.SubmissionID)
	}
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func writeServiceError(w http.ResponseWriter, err error) {
	var ve *survey.ValidationError
	var se *survey.SinkError
	switch {
	case errors.As(err, &ve):
		writeError(w, http.StatusBadRequest, ve.Message, "")
	case errors.As(err, &se):
		writeError(w, http.StatusInternalServerError, "Failed to store response in Google Sheets", se.Detail)
	default:
		zap.L().Error("api: unexpected error", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "Internal server error", err.Error())
	}
}

func writeError(w http.ResponseWriter, status int, msg, details string) {
	writeJSON(w, status, errorResponse{Error: msg, Details: details})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		zap.L().Warn("api: encode response", zap.Error(err))
	}
}

func panicDetail(rec any) string {
	if err, ok := rec.(error); ok {
		return err.Error()
	}
	return fmt.Sprint(rec)
}
