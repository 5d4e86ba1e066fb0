package telemedicine

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("telemedicine session not found")

// ListFilter combina los filtros opcionales del listado.
type ListFilter struct {
	Status         Status // vacío = todos
	VeterinarianID string // vacío = todos
}

type Repository interface {
	Create(ctx context.Context, s Session) error
	Update(ctx context.Context, s Session) error
	GetByID(ctx context.Context, id string) (Session, error)
	List(ctx context.Context, filter ListFilter) ([]Session, error)
}
