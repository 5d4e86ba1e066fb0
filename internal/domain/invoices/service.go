package invoices

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

var (
	ErrInvalidInput  = errors.New("invalid input")
	ErrInvalidStatus = errors.New("invalid invoice status")
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
	PatientID string
	Total     decimal.Decimal
	Items     string
}

func (s *Service) Create(ctx context.Context, in CreateInput) (Invoice, error) {
	patientID := strings.TrimSpace(in.PatientID)
	if patientID == "" {
		return Invoice{}, ErrInvalidInput
	}
	if in.Total.IsNegative() {
		return Invoice{}, ErrInvalidInput
	}

	now := s.now().UTC()
	inv := Invoice{
		ID:        uuid.NewString(),
		PatientID: patientID,
		Date:      now,
		Total:     in.Total,
		Status:    StatusDraft,
		Items:     strings.TrimSpace(in.Items),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repo.Create(ctx, inv); err != nil {
		return Invoice{}, err
	}

	s.log.Info("invoice created",
		zap.String("id", inv.ID),
		zap.String("patient_id", inv.PatientID),
		zap.String("total", inv.Total.String()),
	)
	return inv, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (Invoice, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Invoice{}, ErrInvalidInput
	}
	return s.repo.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]Invoice, error) {
	return s.repo.List(ctx)
}

type UpdateInput struct {
	Total  *decimal.Decimal
	Status *string
	Items  *string
}

func (s *Service) Update(ctx context.Context, id string, in UpdateInput) (Invoice, error) {
	inv, err := s.GetByID(ctx, id)
	if err != nil {
		return Invoice{}, err
	}

	if in.Total != nil {
		if in.Total.IsNegative() {
			return Invoice{}, ErrInvalidInput
		}
		inv.Total = *in.Total
	}
	if in.Status != nil {
		status, err := ParseStatus(*in.Status)
		if err != nil {
			return Invoice{}, errors.Join(ErrInvalidStatus, err)
		}
		inv.Status = status
	}
	if in.Items != nil {
		inv.Items = strings.TrimSpace(*in.Items)
	}

	inv.UpdatedAt = s.now().UTC()
	if err := s.repo.Update(ctx, inv); err != nil {
		return Invoice{}, err
	}
	return inv, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return ErrInvalidInput
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.log.Info("invoice deleted", zap.String("id", id))
	return nil
}
