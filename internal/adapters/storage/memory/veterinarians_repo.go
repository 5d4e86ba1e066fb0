// Package memory implementa los repositorios en memoria para desarrollo
// local sin Postgres ni Mongo. No persiste nada entre reinicios.
package memory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"riavet-api/internal/domain/veterinarians"
)

type veterinariansRepo struct {
	mu   sync.RWMutex
	byID map[string]veterinarians.Veterinarian
}

func NewVeterinariansRepo() veterinarians.Repository {
	return &veterinariansRepo{
		byID: make(map[string]veterinarians.Veterinarian),
	}
}

func (r *veterinariansRepo) Create(ctx context.Context, v veterinarians.Veterinarian) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(v.ID) == "" {
		return errors.New("veterinarian id required")
	}
	if _, exists := r.byID[v.ID]; exists {
		return errors.New("veterinarian already exists")
	}
	r.byID[v.ID] = v
	return nil
}

func (r *veterinariansRepo) Update(ctx context.Context, v veterinarians.Veterinarian) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[v.ID]; !exists {
		return veterinarians.ErrNotFound
	}
	r.byID[v.ID] = v
	return nil
}

func (r *veterinariansRepo) GetByID(ctx context.Context, id string) (veterinarians.Veterinarian, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	v, ok := r.byID[id]
	if !ok {
		return veterinarians.Veterinarian{}, veterinarians.ErrNotFound
	}
	return v, nil
}

func (r *veterinariansRepo) GetByEmail(ctx context.Context, email string) (veterinarians.Veterinarian, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, v := range r.byID {
		if strings.EqualFold(v.Email, email) {
			return v, nil
		}
	}
	return veterinarians.Veterinarian{}, veterinarians.ErrNotFound
}

func (r *veterinariansRepo) GetByLicenseNumber(ctx context.Context, licenseNumber string) (veterinarians.Veterinarian, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, v := range r.byID {
		if v.LicenseNumber == licenseNumber {
			return v, nil
		}
	}
	return veterinarians.Veterinarian{}, veterinarians.ErrNotFound
}

func (r *veterinariansRepo) List(ctx context.Context, onlyActive bool) ([]veterinarians.Veterinarian, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]veterinarians.Veterinarian, 0, len(r.byID))
	for _, v := range r.byID {
		if onlyActive && !v.Active {
			continue
		}
		out = append(out, v)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

func (r *veterinariansRepo) ExistsByEmail(ctx context.Context, email, excludeID string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, v := range r.byID {
		if v.ID == excludeID {
			continue
		}
		if strings.EqualFold(v.Email, email) {
			return true, nil
		}
	}
	return false, nil
}

func (r *veterinariansRepo) ExistsByLicenseNumber(ctx context.Context, licenseNumber, excludeID string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, v := range r.byID {
		if v.ID == excludeID {
			continue
		}
		if v.LicenseNumber == licenseNumber {
			return true, nil
		}
	}
	return false, nil
}

func (r *veterinariansRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[id]; !exists {
		return veterinarians.ErrNotFound
	}
	delete(r.byID, id)
	return nil
}
