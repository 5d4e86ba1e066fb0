package memory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"riavet-api/internal/domain/telemedicine"
)

type sessionsRepo struct {
	mu   sync.RWMutex
	byID map[string]telemedicine.Session
}

func NewSessionsRepo() telemedicine.Repository {
	return &sessionsRepo{
		byID: make(map[string]telemedicine.Session),
	}
}

func (r *sessionsRepo) Create(ctx context.Context, s telemedicine.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(s.ID) == "" {
		return errors.New("session id required")
	}
	if _, exists := r.byID[s.ID]; exists {
		return errors.New("session already exists")
	}
	r.byID[s.ID] = s
	return nil
}

func (r *sessionsRepo) Update(ctx context.Context, s telemedicine.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[s.ID]; !exists {
		return telemedicine.ErrNotFound
	}
	r.byID[s.ID] = s
	return nil
}

func (r *sessionsRepo) GetByID(ctx context.Context, id string) (telemedicine.Session, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.byID[id]
	if !ok {
		return telemedicine.Session{}, telemedicine.ErrNotFound
	}
	return s, nil
}

func (r *sessionsRepo) List(ctx context.Context, filter telemedicine.ListFilter) ([]telemedicine.Session, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]telemedicine.Session, 0)
	for _, s := range r.byID {
		if filter.Status != "" && s.Status != filter.Status {
			continue
		}
		if filter.VeterinarianID != "" && s.VeterinarianID != filter.VeterinarianID {
			continue
		}
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}
