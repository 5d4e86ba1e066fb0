package veterinarians

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/veterinarians", func(vr chi.Router) {
		vr.Post("/", createHandler(svc))
		vr.Get("/", listHandler(svc))
		vr.Get("/{id}", getHandler(svc))
		vr.Get("/email/{email}", getByEmailHandler(svc))
		vr.Get("/license/{licenseNumber}", getByLicenseHandler(svc))
		vr.Put("/{id}", updateHandler(svc))
		vr.Patch("/{id}/deactivate", deactivateHandler(svc))
		vr.Delete("/{id}", deleteHandler(svc))
	})
}

type createVeterinarianRequest struct {
	FirstName      string `json:"firstName" validate:"required"`
	LastName       string `json:"lastName" validate:"required"`
	Email          string `json:"email" validate:"required,email"`
	PhoneNumber    string `json:"phoneNumber"`
	LicenseNumber  string `json:"licenseNumber" validate:"required"`
	Specialization string `json:"specialization"`
	Active         *bool  `json:"active"`
}

type updateVeterinarianRequest struct {
	FirstName      *string `json:"firstName"`
	LastName       *string `json:"lastName"`
	Email          *string `json:"email" validate:"omitempty,email"`
	PhoneNumber    *string `json:"phoneNumber"`
	LicenseNumber  *string `json:"licenseNumber"`
	Specialization *string `json:"specialization"`
	Active         *bool   `json:"active"`
}

type veterinarianResponse struct {
	ID             string    `json:"id"`
	FirstName      string    `json:"firstName"`
	LastName       string    `json:"lastName"`
	Email          string    `json:"email"`
	PhoneNumber    string    `json:"phoneNumber,omitempty"`
	LicenseNumber  string    `json:"licenseNumber"`
	Specialization string    `json:"specialization,omitempty"`
	Active         bool      `json:"active"`
	FullName       string    `json:"fullName"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

func createHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createVeterinarianRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid json")
			return
		}
		if err := validate.Struct(req); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}

		v, err := svc.Create(r.Context(), CreateInput{
			FirstName:      req.FirstName,
			LastName:       req.LastName,
			Email:          req.Email,
			PhoneNumber:    req.PhoneNumber,
			LicenseNumber:  req.LicenseNumber,
			Specialization: req.Specialization,
			Active:         req.Active,
		})
		if err != nil {
			writeServiceError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, toResponse(v))
	}
}

func listHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		onlyActive := r.URL.Query().Get("onlyActive") == "true"

		items, err := svc.List(r.Context(), onlyActive)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}

		out := make([]veterinarianResponse, 0, len(items))
		for _, v := range items {
			out = append(out, toResponse(v))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func getHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		v, err := svc.GetByID(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toResponse(v))
	}
}

func getByEmailHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		v, err := svc.GetByEmail(r.Context(), chi.URLParam(r, "email"))
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toResponse(v))
	}
}

func getByLicenseHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		v, err := svc.GetByLicenseNumber(r.Context(), chi.URLParam(r, "licenseNumber"))
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toResponse(v))
	}
}

func updateHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req updateVeterinarianRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid json")
			return
		}
		if err := validate.Struct(req); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}

		v, err := svc.Update(r.Context(), chi.URLParam(r, "id"), UpdateInput{
			FirstName:      req.FirstName,
			LastName:       req.LastName,
			Email:          req.Email,
			PhoneNumber:    req.PhoneNumber,
			LicenseNumber:  req.LicenseNumber,
			Specialization: req.Specialization,
			Active:         req.Active,
		})
		if err != nil {
			writeServiceError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, toResponse(v))
	}
}

func deactivateHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		v, err := svc.Deactivate(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toResponse(v))
	}
}

func deleteHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := svc.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
			writeServiceError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, ErrInvalidInput):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, ErrDuplicateEmail), errors.Is(err, ErrDuplicateLicense):
		writeError(w, http.StatusConflict, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

func toResponse(v Veterinarian) veterinarianResponse {
	return veterinarianResponse{
		ID:             v.ID,
		FirstName:      v.FirstName,
		LastName:       v.LastName,
		Email:          v.Email,
		PhoneNumber:    v.PhoneNumber,
		LicenseNumber:  v.LicenseNumber,
		Specialization: v.Specialization,
		Active:         v.Active,
		FullName:       v.FullName(),
		CreatedAt:      v.CreatedAt,
		UpdatedAt:      v.UpdatedAt,
	}
}

// writeJSON/writeError se duplican por módulo a propósito (ver handlers de
// otros dominios): cada servicio era un deployable independiente y queremos
// poder separarlos sin crear helpers compartidos.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
