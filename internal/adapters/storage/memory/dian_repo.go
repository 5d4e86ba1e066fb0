package memory

import (
	"context"
	"errors"
	"strings"
	"sync"

	"riavet-api/internal/domain/dian"
)

type dianRepo struct {
	mu          sync.RWMutex
	byInvoiceID map[string]dian.SubmissionRecord
}

func NewDianRepo() dian.Repository {
	return &dianRepo{
		byInvoiceID: make(map[string]dian.SubmissionRecord),
	}
}

func (r *dianRepo) Create(ctx context.Context, rec dian.SubmissionRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(rec.InvoiceID) == "" {
		return errors.New("invoice id required")
	}
	if _, exists := r.byInvoiceID[rec.InvoiceID]; exists {
		return errors.New("submission already exists")
	}
	r.byInvoiceID[rec.InvoiceID] = rec
	return nil
}

func (r *dianRepo) Update(ctx context.Context, rec dian.SubmissionRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byInvoiceID[rec.InvoiceID]; !exists {
		return dian.ErrNotFound
	}
	r.byInvoiceID[rec.InvoiceID] = rec
	return nil
}

func (r *dianRepo) GetByInvoiceID(ctx context.Context, invoiceID string) (dian.SubmissionRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rec, ok := r.byInvoiceID[invoiceID]
	if !ok {
		return dian.SubmissionRecord{}, dian.ErrNotFound
	}
	return rec, nil
}

func (r *dianRepo) ExistsByInvoiceID(ctx context.Context, invoiceID string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.byInvoiceID[invoiceID]
	return ok, nil
}
