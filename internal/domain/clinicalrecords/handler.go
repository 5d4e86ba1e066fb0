package clinicalrecords

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
	r.Route("/records", func(rr chi.Router) {
		rr.Post("/", createHandler(svc))
		rr.Get("/", listHandler(svc))
		rr.Get("/{id}", getHandler(svc))
		rr.Get("/veterinarian/{veterinarianId}", listByVeterinarianHandler(svc))
		rr.Put("/{id}", updateHandler(svc))
		rr.Delete("/{id}", deleteHandler(svc))
	})
}

type createRecordRequest struct {
	PatientID      string     `json:"patientId" validate:"required"`
	VeterinarianID string     `json:"veterinarianId" validate:"required"`
	Diagnosis      string     `json:"diagnosis" validate:"required"`
	Procedures     string     `json:"procedures"`
	Attachments    string     `json:"attachments"`
	MedicalOrders  string     `json:"medicalOrders"`
	Prescription   string     `json:"prescription"`
	FollowUpDate   *time.Time `json:"followUpDate"`
	Status         string     `json:"status"`
}

type updateRecordRequest struct {
	Diagnosis     string     `json:"diagnosis" validate:"required"`
	Procedures    string     `json:"procedures"`
	Attachments   string     `json:"attachments"`
	MedicalOrders string     `json:"medicalOrders"`
	Prescription  string     `json:"prescription"`
	FollowUpDate  *time.Time `json:"followUpDate"`
	Status        string     `json:"status"`
}

type recordResponse struct {
	ID             string     `json:"id"`
	PatientID      string     `json:"patientId"`
	VeterinarianID string     `json:"veterinarianId"`
	Diagnosis      string     `json:"diagnosis"`
	Procedures     string     `json:"procedures,omitempty"`
	Attachments    string     `json:"attachments,omitempty"`
	MedicalOrders  string     `json:"medicalOrders,omitempty"`
	Prescription   string     `json:"prescription,omitempty"`
	FollowUpDate   *time.Time `json:"followUpDate,omitempty"`
	Status         Status     `json:"status"`
	CreatedAt      time.Time  `json:"createdAt"`
}

func createHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createRecordRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid json")
			return
		}
		if err := validate.Struct(req); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}

		rec, err := svc.Create(r.Context(), CreateInput{
			PatientID:      req.PatientID,
			VeterinarianID: req.VeterinarianID,
			Diagnosis:      req.Diagnosis,
			Procedures:     req.Procedures,
			Attachments:    req.Attachments,
			MedicalOrders:  req.MedicalOrders,
			Prescription:   req.Prescription,
			FollowUpDate:   req.FollowUpDate,
			Status:         req.Status,
		})
		if err != nil {
			writeServiceError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, toResponse(rec))
	}
}

func listHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		items, err := svc.List(r.Context(), q.Get("patientId"), q.Get("status"))
		if err != nil {
			writeServiceError(w, err)
			return
		}

		out := make([]recordResponse, 0, len(items))
		for _, rec := range items {
			out = append(out, toResponse(rec))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func getHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rec, err := svc.GetByID(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toResponse(rec))
	}
}

func listByVeterinarianHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.ListByVeterinarian(r.Context(), chi.URLParam(r, "veterinarianId"))
		if err != nil {
			writeServiceError(w, err)
			return
		}

		out := make([]recordResponse, 0, len(items))
		for _, rec := range items {
			out = append(out, toResponse(rec))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func updateHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req updateRecordRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid json")
			return
		}
		if err := validate.Struct(req); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}

		rec, err := svc.Update(r.Context(), chi.URLParam(r, "id"), UpdateInput{
			Diagnosis:     req.Diagnosis,
			Procedures:    req.Procedures,
			Attachments:   req.Attachments,
			MedicalOrders: req.MedicalOrders,
			Prescription:  req.Prescription,
			FollowUpDate:  req.FollowUpDate,
			Status:        req.Status,
		})
		if err != nil {
			writeServiceError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, toResponse(rec))
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
	case errors.Is(err, ErrInvalidInput), errors.Is(err, ErrInvalidStatus):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

func toResponse(rec ClinicalRecord) recordResponse {
	return recordResponse{
		ID:             rec.ID,
		PatientID:      rec.PatientID,
		VeterinarianID: rec.VeterinarianID,
		Diagnosis:      rec.Diagnosis,
		Procedures:     rec.Procedures,
		Attachments:    rec.Attachments,
		MedicalOrders:  rec.MedicalOrders,
		Prescription:   rec.Prescription,
		FollowUpDate:   rec.FollowUpDate,
		Status:         rec.Status,
		CreatedAt:      rec.CreatedAt,
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
