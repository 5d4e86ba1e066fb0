package memory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"riavet-api/internal/domain/invoices"
)

type invoicesRepo struct {
	mu   sync.RWMutex
	byID map[string]invoices.Invoice
}

func NewInvoicesRepo() invoices.Repository {
	return &invoicesRepo{
		byID: make(map[string]invoices.Invoice),
	}
}

func (r *invoicesRepo) Create(ctx context.Context, inv invoices.Invoice) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(inv.ID) == "" {
		return errors.New("invoice id required")
	}
	if _, exists := r.byID[inv.ID]; exists {
		return errors.New("invoice already exists")
	}
	r.byID[inv.ID] = inv
	return nil
}

func (r *invoicesRepo) Update(ctx context.Context, inv invoices.Invoice) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[inv.ID]; !exists {
		return invoices.ErrNotFound
	}
	r.byID[inv.ID] = inv
	return nil
}

func (r *invoicesRepo) GetByID(ctx context.Context, id string) (invoices.Invoice, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	inv, ok := r.byID[id]
	if !ok {
		return invoices.Invoice{}, invoices.ErrNotFound
	}
	return inv, nil
}

func (r *invoicesRepo) List(ctx context.Context) ([]invoices.Invoice, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]invoices.Invoice, 0, len(r.byID))
	for _, inv := range r.byID {
		out = append(out, inv)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

func (r *invoicesRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[id]; !exists {
		return invoices.ErrNotFound
	}
	delete(r.byID, id)
	return nil
}
