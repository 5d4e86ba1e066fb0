package clinicalrecords

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("clinical record not found")

// ListFilter combina filtros opcionales; los campos vacíos no filtran.
type ListFilter struct {
	PatientID string
	Status    Status
}

type Repository interface {
	Create(ctx context.Context, rec ClinicalRecord) error
	Update(ctx context.Context, rec ClinicalRecord) error
	GetByID(ctx context.Context, id string) (ClinicalRecord, error)
	List(ctx context.Context, filter ListFilter) ([]ClinicalRecord, error)
	ListByVeterinarian(ctx context.Context, veterinarianID string) ([]ClinicalRecord, error)
	Delete(ctx context.Context, id string) error
}
