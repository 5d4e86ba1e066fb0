package appointments

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("appointment not found")

type Repository interface {
	Create(ctx context.Context, a Appointment) error
	Update(ctx context.Context, a Appointment) error
	GetByID(ctx context.Context, id string) (Appointment, error)
	List(ctx context.Context) ([]Appointment, error)
	ListByVeterinarian(ctx context.Context, veterinarianID string) ([]Appointment, error)
}
