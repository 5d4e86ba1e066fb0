package invoices

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

var validate = validator.New()

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/invoices", func(ir chi.Router) {
		ir.Post("/", createHandler(svc))
		ir.Get("/", listHandler(svc))
		ir.Get("/{id}", getHandler(svc))
		ir.Put("/{id}", updateHandler(svc))
		ir.Delete("/{id}", deleteHandler(svc))
	})
}

type createInvoiceRequest struct {
	PatientID string          `json:"patientId" validate:"required"`
	Total     decimal.Decimal `json:"total"`
	Items     string          `json:"items"`
}

type updateInvoiceRequest struct {
	Total  *decimal.Decimal `json:"total"`
	Status *string          `json:"status"`
	Items  *string          `json:"items"`
}

type invoiceResponse struct {
	ID        string          `json:"id"`
	PatientID string          `json:"patientId"`
	Date      time.Time       `json:"date"`
	Total     decimal.Decimal `json:"total"`
	Status    Status          `json:"status"`
	Items     string          `json:"items,omitempty"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

func createHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createInvoiceRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid json")
			return
		}
		if err := validate.Struct(req); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}

		inv, err := svc.Create(r.Context(), CreateInput{
			PatientID: req.PatientID,
			Total:     req.Total,
			Items:     req.Items,
		})
		if err != nil {
			writeServiceError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, toResponse(inv))
	}
}

func listHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.List(r.Context())
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}

		out := make([]invoiceResponse, 0, len(items))
		for _, inv := range items {
			out = append(out, toResponse(inv))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func getHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		inv, err := svc.GetByID(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toResponse(inv))
	}
}

func updateHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req updateInvoiceRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid json")
			return
		}

		inv, err := svc.Update(r.Context(), chi.URLParam(r, "id"), UpdateInput{
			Total:  req.Total,
			Status: req.Status,
			Items:  req.Items,
		})
		if err != nil {
			writeServiceError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, toResponse(inv))
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

func toResponse(inv Invoice) invoiceResponse {
	return invoiceResponse{
		ID:        inv.ID,
		PatientID: inv.PatientID,
		Date:      inv.Date,
		Total:     inv.Total,
		Status:    inv.Status,
		Items:     inv.Items,
		CreatedAt: inv.CreatedAt,
		UpdatedAt: inv.UpdatedAt,
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
