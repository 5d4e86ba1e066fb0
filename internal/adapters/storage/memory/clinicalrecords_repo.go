package memory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"riavet-api/internal/domain/clinicalrecords"
)

type clinicalRecordsRepo struct {
	mu   sync.RWMutex
	byID map[string]clinicalrecords.ClinicalRecord
}

func NewClinicalRecordsRepo() clinicalrecords.Repository {
	return &clinicalRecordsRepo{
		byID: make(map[string]clinicalrecords.ClinicalRecord),
	}
}

func (r *clinicalRecordsRepo) Create(ctx context.Context, rec clinicalrecords.ClinicalRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(rec.ID) == "" {
		return errors.New("record id required")
	}
	if _, exists := r.byID[rec.ID]; exists {
		return errors.New("record already exists")
	}
	r.byID[rec.ID] = rec
	return nil
}

func (r *clinicalRecordsRepo) Update(ctx context.Context, rec clinicalrecords.ClinicalRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[rec.ID]; !exists {
		return clinicalrecords.ErrNotFound
	}
	r.byID[rec.ID] = rec
	return nil
}

func (r *clinicalRecordsRepo) GetByID(ctx context.Context, id string) (clinicalrecords.ClinicalRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rec, ok := r.byID[id]
	if !ok {
		return clinicalrecords.ClinicalRecord{}, clinicalrecords.ErrNotFound
	}
	return rec, nil
}

func (r *clinicalRecordsRepo) List(ctx context.Context, filter clinicalrecords.ListFilter) ([]clinicalrecords.ClinicalRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]clinicalrecords.ClinicalRecord, 0)
	for _, rec := range r.byID {
		if filter.PatientID != "" && rec.PatientID != filter.PatientID {
			continue
		}
		if filter.Status != "" && rec.Status != filter.Status {
			continue
		}
		out = append(out, rec)
	}
	sortRecords(out)
	return out, nil
}

func (r *clinicalRecordsRepo) ListByVeterinarian(ctx context.Context, veterinarianID string) ([]clinicalrecords.ClinicalRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]clinicalrecords.ClinicalRecord, 0)
	for _, rec := range r.byID {
		if rec.VeterinarianID == veterinarianID {
			out = append(out, rec)
		}
	}
	sortRecords(out)
	return out, nil
}

func (r *clinicalRecordsRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[id]; !exists {
		return clinicalrecords.ErrNotFound
	}
	delete(r.byID, id)
	return nil
}

func sortRecords(items []clinicalrecords.ClinicalRecord) {
	sort.Slice(items, func(i, j int) bool {
		return items[i].CreatedAt.Before(items[j].CreatedAt)
	})
}
