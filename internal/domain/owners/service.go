package owners

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	ErrInvalidInput   = errors.New("invalid input")
	ErrDuplicateEmail = errors.New("email already in use")
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
	FullName string
	Phone    string
	Email    string
}

func (s *Service) Create(ctx context.Context, in CreateInput) (Owner, error) {
	fullName := strings.TrimSpace(in.FullName)
	if fullName == "" {
		return Owner{}, ErrInvalidInput
	}

	email := normalizeEmail(in.Email)
	if email != "" {
		taken, err := s.repo.ExistsByEmail(ctx, email, "")
		if err != nil {
			return Owner{}, err
		}
		if taken {
			return Owner{}, ErrDuplicateEmail
		}
	}

	now := s.now()
	o := Owner{
		ID:        uuid.NewString(),
		FullName:  fullName,
		Phone:     strings.TrimSpace(in.Phone),
		Email:     email,
		Active:    true,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.Create(ctx, o); err != nil {
		return Owner{}, err
	}

	s.log.Info("owner created", zap.String("id", o.ID))
	return o, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (Owner, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Owner{}, ErrNotFound
	}
	return s.repo.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context, search string) ([]Owner, error) {
	return s.repo.List(ctx, strings.TrimSpace(search))
}

type UpdateInput struct {
	// Punteros: nil = no tocar.
	FullName *string
	Phone    *string
	Email    *string
}

func (s *Service) Update(ctx context.Context, id string, in UpdateInput) (Owner, error) {
	o, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Owner{}, err
	}

	if in.Email != nil {
		email := normalizeEmail(*in.Email)
		// Solo se re-chequea unicidad si el email realmente cambia.
		if email != "" && email != o.Email {
			taken, err := s.repo.ExistsByEmail(ctx, email, o.ID)
			if err != nil {
				return Owner{}, err
			}
			if taken {
				return Owner{}, ErrDuplicateEmail
			}
		}
		o.Email = email
	}
	if in.FullName != nil {
		if strings.TrimSpace(*in.FullName) == "" {
			return Owner{}, ErrInvalidInput
		}
		o.FullName = strings.TrimSpace(*in.FullName)
	}
	if in.Phone != nil {
		o.Phone = strings.TrimSpace(*in.Phone)
	}
	o.UpdatedAt = s.now()

	if err := s.repo.Update(ctx, o); err != nil {
		return Owner{}, err
	}

	s.log.Info("owner updated", zap.String("id", o.ID))
	return o, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return ErrNotFound
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.log.Info("owner deleted", zap.String("id", id))
	return nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
