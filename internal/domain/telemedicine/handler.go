package telemedicine

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/sessions", func(sr chi.Router) {
		sr.Post("/", createHandler(svc))
		sr.Get("/", listHandler(svc))
		sr.Get("/{id}", getHandler(svc))
		sr.Patch("/{id}/start", startHandler(svc))
		sr.Patch("/{id}/end", endHandler(svc))
	})
}

type createSessionRequest struct {
	PatientID      string    `json:"patientId" validate:"required"`
	VeterinarianID string    `json:"veterinarianId" validate:"required"`
	ScheduledAt    time.Time `json:"scheduledAt" validate:"required"`
	MeetingURL     string    `json:"meetingUrl" validate:"omitempty,url"`
}

type endSessionRequest struct {
	Notes *string `json:"notes"`
}

type sessionResponse struct {
	ID             string     `json:"id"`
	PatientID      string     `json:"patientId"`
	VeterinarianID string     `json:"veterinarianId"`
	ScheduledAt    time.Time  `json:"scheduledAt"`
	StartedAt      *time.Time `json:"startedAt,omitempty"`
	EndedAt        *time.Time `json:"endedAt,omitempty"`
	Status         string     `json:"status"`
	MeetingURL     string     `json:"meetingUrl,omitempty"`
	Notes          string     `json:"notes,omitempty"`
	CreatedAt      time.Time  `json:"createdAt"`
	UpdatedAt      time.Time  `json:"updatedAt"`
}

func createHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createSessionRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid json")
			return
		}
		if err := validate.Struct(req); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}

		sess, err := svc.Create(r.Context(), CreateInput{
			PatientID:      req.PatientID,
			VeterinarianID: req.VeterinarianID,
			ScheduledAt:    req.ScheduledAt,
			MeetingURL:     req.MeetingURL,
		})
		if err != nil {
			writeServiceError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, toResponse(sess))
	}
}

func listHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		filter := ListFilter{
			VeterinarianID: strings.TrimSpace(r.URL.Query().Get("veterinarianId")),
		}
		if raw := strings.TrimSpace(r.URL.Query().Get("status")); raw != "" {
			filter.Status = Status(strings.ToUpper(raw))
		}

		items, err := svc.List(r.Context(), filter)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}

		out := make([]sessionResponse, 0, len(items))
		for _, sess := range items {
			out = append(out, toResponse(sess))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func getHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, err := svc.GetByID(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toResponse(sess))
	}
}

func startHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, err := svc.Start(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toResponse(sess))
	}
}

func endHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		// Body opcional: terminar sin notas no toca las existentes.
		var req endSessionRequest
		if r.Body != nil {
			_ = json.NewDecoder(r.Body).Decode(&req)
		}

		sess, err := svc.End(r.Context(), chi.URLParam(r, "id"), req.Notes)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toResponse(sess))
	}
}

func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, ErrInvalidInput):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, ErrNotScheduled), errors.Is(err, ErrNotInProgress):
		writeError(w, http.StatusConflict, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

func toResponse(s Session) sessionResponse {
	return sessionResponse{
		ID:             s.ID,
		PatientID:      s.PatientID,
		VeterinarianID: s.VeterinarianID,
		ScheduledAt:    s.ScheduledAt,
		StartedAt:      s.StartedAt,
		EndedAt:        s.EndedAt,
		Status:         string(s.Status),
		MeetingURL:     s.MeetingURL,
		Notes:          s.Notes,
		CreatedAt:      s.CreatedAt,
		UpdatedAt:      s.UpdatedAt,
	}
}

// Duplicado por módulo a propósito; ver nota en veterinarians/handler.go.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
