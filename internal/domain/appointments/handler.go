package appointments

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
	r.Route("/appointments", func(ar chi.Router) {
		ar.Post("/", createHandler(svc))
		ar.Get("/", listHandler(svc))
		ar.Get("/{id}", getHandler(svc))
		ar.Put("/{id}/status", updateStatusHandler(svc))
		ar.Patch("/{id}/cancel", cancelHandler(svc))
	})
}

type createAppointmentRequest struct {
	PatientID      string    `json:"patientId" validate:"required"`
	VeterinarianID string    `json:"veterinarianId" validate:"required"`
	ScheduledAt    time.Time `json:"scheduledAt" validate:"required"`
}

type updateStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

type cancelRequest struct {
	Reason string `json:"reason"`
}

type appointmentResponse struct {
	ID             string    `json:"id"`
	PatientID      string    `json:"patientId"`
	VeterinarianID string    `json:"veterinarianId"`
	ScheduledAt    time.Time `json:"scheduledAt"`
	Status         string    `json:"status"`
	CancelReason   string    `json:"cancelReason,omitempty"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

func createHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createAppointmentRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid json")
			return
		}
		if err := validate.Struct(req); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}

		a, err := svc.Create(r.Context(), CreateInput{
			PatientID:      req.PatientID,
			VeterinarianID: req.VeterinarianID,
			ScheduledAt:    req.ScheduledAt,
		})
		if err != nil {
			writeServiceError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, toResponse(a))
	}
}

func listHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var (
			items []Appointment
			err   error
		)
		if vetID := strings.TrimSpace(r.URL.Query().Get("veterinarianId")); vetID != "" {
			items, err = svc.ListByVeterinarian(r.Context(), vetID)
		} else {
			items, err = svc.List(r.Context())
		}
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}

		out := make([]appointmentResponse, 0, len(items))
		for _, a := range items {
			out = append(out, toResponse(a))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func getHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		a, err := svc.GetByID(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toResponse(a))
	}
}

func updateStatusHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req updateStatusRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid json")
			return
		}
		if err := validate.Struct(req); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}

		target, err := ParseStatus(req.Status)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}

		a, err := svc.UpdateStatus(r.Context(), chi.URLParam(r, "id"), target)
		if err != nil {
			writeServiceError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, toResponse(a))
	}
}

func cancelHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		// Body opcional: cancelar sin motivo es válido.
		var req cancelRequest
		if r.Body != nil {
			_ = json.NewDecoder(r.Body).Decode(&req)
		}

		a, err := svc.Cancel(r.Context(), chi.URLParam(r, "id"), req.Reason)
		if err != nil {
			writeServiceError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, toResponse(a))
	}
}

func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, ErrVeterinarianNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, ErrInvalidInput):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, ErrVeterinarianInactive),
		errors.Is(err, ErrInvalidTransition),
		errors.Is(err, ErrAlreadyCanceled),
		errors.Is(err, ErrAlreadyCompleted):
		writeError(w, http.StatusConflict, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

func toResponse(a Appointment) appointmentResponse {
	return appointmentResponse{
		ID:             a.ID,
		PatientID:      a.PatientID,
		VeterinarianID: a.VeterinarianID,
		ScheduledAt:    a.ScheduledAt,
		Status:         string(a.Status),
		CancelReason:   a.CancelReason,
		CreatedAt:      a.CreatedAt,
		UpdatedAt:      a.UpdatedAt,
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
