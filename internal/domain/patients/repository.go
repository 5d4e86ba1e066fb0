package patients

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("patient not found")

type Repository interface {
	Create(ctx context.Context, p Patient) error
	Update(ctx context.Context, p Patient) error

	// GetByID devuelve el paciente aunque esté inactivo; el filtro de
	// activos lo aplica el servicio (el merge necesita leer al duplicado
	// ya desactivado).
	GetByID(ctx context.Context, id string) (Patient, error)

	// List devuelve solo activos; con término busca sobre name/species
	// (case-insensitive).
	List(ctx context.Context, search string) ([]Patient, error)
}
