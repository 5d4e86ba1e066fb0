package memory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"riavet-api/internal/domain/owners"
)

type ownersRepo struct {
	mu   sync.RWMutex
	byID map[string]owners.Owner
}

func NewOwnersRepo() owners.Repository {
	return &ownersRepo{
		byID: make(map[string]owners.Owner),
	}
}

func (r *ownersRepo) Create(ctx context.Context, o owners.Owner) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(o.ID) == "" {
		return errors.New("owner id required")
	}
	if _, exists := r.byID[o.ID]; exists {
		return errors.New("owner already exists")
	}
	r.byID[o.ID] = o
	return nil
}

func (r *ownersRepo) Update(ctx context.Context, o owners.Owner) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[o.ID]; !exists {
		return owners.ErrNotFound
	}
	r.byID[o.ID] = o
	return nil
}

func (r *ownersRepo) GetByID(ctx context.Context, id string) (owners.Owner, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	o, ok := r.byID[id]
	if !ok {
		return owners.Owner{}, owners.ErrNotFound
	}
	return o, nil
}

func (r *ownersRepo) List(ctx context.Context, search string) ([]owners.Owner, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	term := strings.ToLower(search)
	out := make([]owners.Owner, 0, len(r.byID))
	for _, o := range r.byID {
		if term != "" &&
			!strings.Contains(strings.ToLower(o.FullName), term) &&
			!strings.Contains(strings.ToLower(o.Email), term) &&
			!strings.Contains(o.Phone, term) {
			continue
		}
		out = append(out, o)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

func (r *ownersRepo) ExistsByEmail(ctx context.Context, email, excludeID string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, o := range r.byID {
		if o.ID == excludeID || o.Email == "" {
			continue
		}
		if strings.EqualFold(o.Email, email) {
			return true, nil
		}
	}
	return false, nil
}

func (r *ownersRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[id]; !exists {
		return owners.ErrNotFound
	}
	delete(r.byID, id)
	return nil
}
