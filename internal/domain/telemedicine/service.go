package telemedicine

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"riavet-api/internal/domain/lifecycle"
)

var (
	ErrInvalidInput  = errors.New("invalid input")
	ErrNotScheduled  = errors.New("only scheduled sessions can be started")
	ErrNotInProgress = errors.New("only in-progress sessions can be ended")
)

type Service struct {
	repo Repository
	log  *zap.Logger

	// start/end serializados por sesión; ver appointments.Service.
	locks lifecycle.KeyedLock

	now func() time.Time
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
	PatientID      string
	VeterinarianID string
	ScheduledAt    time.Time
	MeetingURL     string
}

func (s *Service) Create(ctx context.Context, in CreateInput) (Session, error) {
	patientID := strings.TrimSpace(in.PatientID)
	vetID := strings.TrimSpace(in.VeterinarianID)

	if patientID == "" || vetID == "" || in.ScheduledAt.IsZero() {
		return Session{}, ErrInvalidInput
	}

	now := s.now()
	sess := Session{
		ID:             uuid.NewString(),
		PatientID:      patientID,
		VeterinarianID: vetID,
		ScheduledAt:    in.ScheduledAt,
		Status:         StatusScheduled,
		MeetingURL:     strings.TrimSpace(in.MeetingURL),
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := s.repo.Create(ctx, sess); err != nil {
		return Session{}, err
	}

	s.log.Info("telemedicine session created",
		zap.String("id", sess.ID),
		zap.String("patient_id", sess.PatientID),
		zap.String("veterinarian_id", sess.VeterinarianID),
	)
	return sess, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (Session, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Session{}, ErrNotFound
	}
	return s.repo.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context, filter ListFilter) ([]Session, error) {
	return s.repo.List(ctx, filter)
}

// Start mueve SCHEDULED -> IN_PROGRESS y sella StartedAt. Un segundo Start
// sobre la misma sesión falla sin tocar el timestamp ya escrito.
func (s *Service) Start(ctx context.Context, id string) (Session, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Session{}, ErrNotFound
	}

	unlock := s.locks.Lock(id)
	defer unlock()

	sess, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Session{}, err
	}

	if !statusTable.Allowed(sess.Status, StatusInProgress) {
		return Session{}, fmt.Errorf("%w: current status %s", ErrNotScheduled, sess.Status)
	}

	now := s.now()
	sess.Status = StatusInProgress
	sess.StartedAt = &now
	sess.UpdatedAt = now

	if err := s.repo.Update(ctx, sess); err != nil {
		return Session{}, err
	}

	s.log.Info("telemedicine session started", zap.String("id", sess.ID))
	return sess, nil
}

// End mueve IN_PROGRESS -> COMPLETED y sella EndedAt.
// notes nil deja las notas existentes; un puntero (incluso a vacío) las
// reemplaza.
func (s *Service) End(ctx context.Context, id string, notes *string) (Session, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Session{}, ErrNotFound
	}

	unlock := s.locks.Lock(id)
	defer unlock()

	sess, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Session{}, err
	}

	if !statusTable.Allowed(sess.Status, StatusCompleted) {
		return Session{}, fmt.Errorf("%w: current status %s", ErrNotInProgress, sess.Status)
	}

	now := s.now()
	sess.Status = StatusCompleted
	sess.EndedAt = &now
	sess.UpdatedAt = now
	if notes != nil {
		sess.Notes = *notes
	}

	if err := s.repo.Update(ctx, sess); err != nil {
		return Session{}, err
	}

	s.log.Info("telemedicine session ended", zap.String("id", sess.ID))
	return sess, nil
}
