package appointments

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"riavet-api/internal/domain/lifecycle"
	"riavet-api/internal/domain/veterinarians"
)

var (
	ErrInvalidInput         = errors.New("invalid input")
	ErrVeterinarianNotFound = errors.New("veterinarian not found")
	ErrVeterinarianInactive = errors.New("veterinarian is inactive")
	ErrInvalidTransition    = errors.New("invalid status transition")
	ErrAlreadyCanceled      = errors.New("appointment is already canceled")
	ErrAlreadyCompleted     = errors.New("cannot cancel a completed appointment")
)

// VeterinarianDirectory resuelve el veterinario referenciado al crear una
// cita. Lo satisface *veterinarians.Service.
type VeterinarianDirectory interface {
	GetByID(ctx context.Context, id string) (veterinarians.Veterinarian, error)
}

type Service struct {
	repo Repository
	vets VeterinarianDirectory
	log  *zap.Logger

	// transiciones serializadas por id: dos cambios de estado concurrentes
	// sobre la misma cita nunca validan contra un snapshot viejo.
	locks lifecycle.KeyedLock

	now func() time.Time
}

func NewService(repo Repository, vets VeterinarianDirectory, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{
		repo: repo,
		vets: vets,
		log:  log,
		now:  time.Now,
	}
}

type CreateInput struct {
	PatientID      string
	VeterinarianID string
	ScheduledAt    time.Time
}

// Create valida que el veterinario exista y esté activo, y persiste la cita
// en PENDING. Las transiciones posteriores ya no re-validan al veterinario.
func (s *Service) Create(ctx context.Context, in CreateInput) (Appointment, error) {
	patientID := strings.TrimSpace(in.PatientID)
	vetID := strings.TrimSpace(in.VeterinarianID)

	if patientID == "" || vetID == "" || in.ScheduledAt.IsZero() {
		return Appointment{}, ErrInvalidInput
	}

	vet, err := s.vets.GetByID(ctx, vetID)
	if err != nil {
		if errors.Is(err, veterinarians.ErrNotFound) {
			return Appointment{}, fmt.Errorf("%w: %s", ErrVeterinarianNotFound, vetID)
		}
		return Appointment{}, err
	}
	if !vet.Active {
		return Appointment{}, fmt.Errorf("%w: %s", ErrVeterinarianInactive, vetID)
	}

	now := s.now()
	a := Appointment{
		ID:             uuid.NewString(),
		PatientID:      patientID,
		VeterinarianID: vetID,
		ScheduledAt:    in.ScheduledAt,
		Status:         StatusPending,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := s.repo.Create(ctx, a); err != nil {
		return Appointment{}, err
	}

	s.log.Info("appointment created",
		zap.String("id", a.ID),
		zap.String("patient_id", a.PatientID),
		zap.String("veterinarian_id", a.VeterinarianID),
	)
	return a, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (Appointment, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Appointment{}, ErrNotFound
	}
	return s.repo.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]Appointment, error) {
	return s.repo.List(ctx)
}

func (s *Service) ListByVeterinarian(ctx context.Context, veterinarianID string) ([]Appointment, error) {
	return s.repo.ListByVeterinarian(ctx, veterinarianID)
}

// UpdateStatus aplica una transición arbitraria validada contra la tabla:
// PENDING -> CONFIRMED|CANCELED, CONFIRMED -> COMPLETED|CANCELED, nada más.
// El rechazo no escribe: la cita queda igual y el caller puede reintentar.
func (s *Service) UpdateStatus(ctx context.Context, id string, target Status) (Appointment, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Appointment{}, ErrNotFound
	}

	unlock := s.locks.Lock(id)
	defer unlock()

	a, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Appointment{}, err
	}

	if !statusTable.Allowed(a.Status, target) {
		return Appointment{}, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, a.Status, target)
	}

	a.Status = target
	a.UpdatedAt = s.now()

	if err := s.repo.Update(ctx, a); err != nil {
		return Appointment{}, err
	}

	s.log.Info("appointment status updated",
		zap.String("id", a.ID),
		zap.String("status", string(a.Status)),
	)
	return a, nil
}

// Cancel cancela desde PENDING o CONFIRMED, con pre-chequeos propios:
// distingue "ya cancelada" de "ya completada" en lugar de un rechazo
// genérico de transición. El motivo se guarda tal cual llega.
func (s *Service) Cancel(ctx context.Context, id, reason string) (Appointment, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Appointment{}, ErrNotFound
	}

	unlock := s.locks.Lock(id)
	defer unlock()

	a, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Appointment{}, err
	}

	switch a.Status {
	case StatusCanceled:
		return Appointment{}, ErrAlreadyCanceled
	case StatusCompleted:
		return Appointment{}, ErrAlreadyCompleted
	}

	a.Status = StatusCanceled
	a.CancelReason = strings.TrimSpace(reason)
	a.UpdatedAt = s.now()

	if err := s.repo.Update(ctx, a); err != nil {
		return Appointment{}, err
	}

	s.log.Info("appointment canceled",
		zap.String("id", a.ID),
		zap.String("reason", a.CancelReason),
	)
	return a, nil
}
