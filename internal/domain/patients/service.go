package patients

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrSelfMerge    = errors.New("a patient cannot be merged with itself")
)

type Service struct {
	repo Repository
	log  *zap.Logger
	now  func() time.Time
}

func NewService(repo Repository, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{
		repo: repo,
		log:  log,
		now:  time.Now,
	}
}

type CreateInput struct {
	Name      string
	Species   string
	Breed     string
	BirthDate *time.Time
	OwnerID   string
}

func (s *Service) Create(ctx context.Context, in CreateInput) (Patient, error) {
	name := strings.TrimSpace(in.Name)
	species := strings.TrimSpace(in.Species)
	if name == "" || species == "" {
		return Patient{}, ErrInvalidInput
	}

	now := s.now().UTC()
	p := Patient{
		ID:        uuid.NewString(),
		Name:      name,
		Species:   species,
		Breed:     strings.TrimSpace(in.Breed),
		BirthDate: in.BirthDate,
		OwnerID:   strings.TrimSpace(in.OwnerID),
		Active:    true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return Patient{}, err
	}

	s.log.Info("patient created", zap.String("id", p.ID), zap.String("species", p.Species))
	return p, nil
}

// GetByID solo expone pacientes activos; los desactivados por merge se
// comportan como inexistentes.
func (s *Service) GetByID(ctx context.Context, id string) (Patient, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Patient{}, ErrInvalidInput
	}
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Patient{}, err
	}
	if !p.Active {
		return Patient{}, ErrNotFound
	}
	return p, nil
}

func (s *Service) List(ctx context.Context, search string) ([]Patient, error) {
	return s.repo.List(ctx, strings.TrimSpace(search))
}

type UpdateInput struct {
	Name      *string
	Species   *string
	Breed     *string
	BirthDate *time.Time
	OwnerID   *string
}

func (s *Service) Update(ctx context.Context, id string, in UpdateInput) (Patient, error) {
	p, err := s.GetByID(ctx, id)
	if err != nil {
		return Patient{}, err
	}

	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return Patient{}, ErrInvalidInput
		}
		p.Name = name
	}
	if in.Species != nil {
		species := strings.TrimSpace(*in.Species)
		if species == "" {
			return Patient{}, ErrInvalidInput
		}
		p.Species = species
	}
	if in.Breed != nil {
		p.Breed = strings.TrimSpace(*in.Breed)
	}
	if in.BirthDate != nil {
		p.BirthDate = in.BirthDate
	}
	if in.OwnerID != nil {
		p.OwnerID = strings.TrimSpace(*in.OwnerID)
	}

	p.UpdatedAt = s.now().UTC()
	if err := s.repo.Update(ctx, p); err != nil {
		return Patient{}, err
	}
	return p, nil
}

// Merge fusiona un duplicado en el paciente principal: copia los campos no
// vacíos del duplicado que falten en el principal y desactiva el duplicado.
func (s *Service) Merge(ctx context.Context, mainID, duplicateID string) (Patient, error) {
	mainID = strings.TrimSpace(mainID)
	duplicateID = strings.TrimSpace(duplicateID)
	if mainID == "" || duplicateID == "" {
		return Patient{}, ErrInvalidInput
	}
	if mainID == duplicateID {
		return Patient{}, ErrSelfMerge
	}

	main, err := s.GetByID(ctx, mainID)
	if err != nil {
		return Patient{}, err
	}
	dup, err := s.GetByID(ctx, duplicateID)
	if err != nil {
		return Patient{}, err
	}

	if main.Breed == "" && dup.Breed != "" {
		main.Breed = dup.Breed
	}
	if main.BirthDate == nil && dup.BirthDate != nil {
		main.BirthDate = dup.BirthDate
	}
	if main.OwnerID == "" && dup.OwnerID != "" {
		main.OwnerID = dup.OwnerID
	}

	now := s.now().UTC()
	main.UpdatedAt = now
	if err := s.repo.Update(ctx, main); err != nil {
		return Patient{}, err
	}

	dup.Active = false
	dup.UpdatedAt = now
	if err := s.repo.Update(ctx, dup); err != nil {
		return Patient{}, err
	}

	s.log.Info("patients merged",
		zap.String("main_id", main.ID),
		zap.String("duplicate_id", dup.ID),
	)
	return main, nil
}
