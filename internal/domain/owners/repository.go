package owners

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("owner not found")

type Repository interface {
	Create(ctx context.Context, o Owner) error
	Update(ctx context.Context, o Owner) error
	GetByID(ctx context.Context, id string) (Owner, error)

	// List con search vacío devuelve todos; con término busca sobre
	// fullName/email/phone (case-insensitive).
	List(ctx context.Context, search string) ([]Owner, error)

	ExistsByEmail(ctx context.Context, email, excludeID string) (bool, error)
	Delete(ctx context.Context, id string) error
}
