package invoices

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("invoice not found")

type Repository interface {
	Create(ctx context.Context, inv Invoice) error
	Update(ctx context.Context, inv Invoice) error
	GetByID(ctx context.Context, id string) (Invoice, error)
	List(ctx context.Context) ([]Invoice, error)
	Delete(ctx context.Context, id string) error
}
