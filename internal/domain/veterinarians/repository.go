package veterinarians

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("veterinarian not found")

type Repository interface {
	Create(ctx context.Context, v Veterinarian) error
	Update(ctx context.Context, v Veterinarian) error
	GetByID(ctx context.Context, id string) (Veterinarian, error)
	GetByEmail(ctx context.Context, email string) (Veterinarian, error)
	GetByLicenseNumber(ctx context.Context, licenseNumber string) (Veterinarian, error)
	List(ctx context.Context, onlyActive bool) ([]Veterinarian, error)

	// ExistsByEmail / ExistsByLicenseNumber ignoran el registro excludeID
	// (vacío en create, el propio id en update).
	ExistsByEmail(ctx context.Context, email, excludeID string) (bool, error)
	ExistsByLicenseNumber(ctx context.Context, licenseNumber, excludeID string) (bool, error)

	Delete(ctx context.Context, id string) error
}
