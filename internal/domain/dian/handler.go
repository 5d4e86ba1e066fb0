package dian

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
	r.Route("/dian", func(dr chi.Router) {
		dr.Post("/invoices", submitHandler(svc))
		dr.Get("/status/{invoiceId}", statusHandler(svc))
	})
}

type submitInvoiceRequest struct {
	InvoiceID  string `json:"invoiceId" validate:"required"`
	XMLPayload string `json:"xmlPayload" validate:"required"`
}

type submissionResponse struct {
	ID        string    `json:"id"`
	InvoiceID string    `json:"invoiceId"`
	Status    Status    `json:"status"`
	DianCode  string    `json:"dianCode,omitempty"`
	Message   string    `json:"message,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func submitHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req submitInvoiceRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid json")
			return
		}
		if err := validate.Struct(req); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}

		rec, err := svc.Submit(r.Context(), SubmitInput{
			InvoiceID:  req.InvoiceID,
			XMLPayload: req.XMLPayload,
		})
		if err != nil {
			writeServiceError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, toResponse(rec))
	}
}

func statusHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rec, err := svc.StatusByInvoiceID(r.Context(), chi.URLParam(r, "invoiceId"))
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toResponse(rec))
	}
}

func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, ErrInvalidInput):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, ErrDuplicateInvoice):
		writeError(w, http.StatusConflict, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

func toResponse(rec SubmissionRecord) submissionResponse {
	return submissionResponse{
		ID:        rec.ID,
		InvoiceID: rec.InvoiceID,
		Status:    rec.Status,
		DianCode:  rec.DianCode,
		Message:   rec.Message,
		CreatedAt: rec.CreatedAt,
		UpdatedAt: rec.UpdatedAt,
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
