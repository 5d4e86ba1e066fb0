package veterinarians

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	ErrInvalidInput     = errors.New("invalid input")
	ErrDuplicateEmail   = errors.New("email already in use")
	ErrDuplicateLicense = errors.New("license number already in use")
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
	FirstName      string
	LastName       string
	Email          string
	PhoneNumber    string
	LicenseNumber  string
	Specialization string
	Active         *bool // nil => true
}

func (s *Service) Create(ctx context.Context, in CreateInput) (Veterinarian, error) {
	firstName := strings.TrimSpace(in.FirstName)
	lastName := strings.TrimSpace(in.LastName)
	email := normalizeEmail(in.Email)
	license := strings.TrimSpace(in.LicenseNumber)

	if firstName == "" || lastName == "" || email == "" || license == "" {
		return Veterinarian{}, ErrInvalidInput
	}

	if err := s.checkUnique(ctx, email, license, ""); err != nil {
		return Veterinarian{}, err
	}

	active := true
	if in.Active != nil {
		active = *in.Active
	}

	now := s.now()
	v := Veterinarian{
		ID:             uuid.NewString(),
		FirstName:      firstName,
		LastName:       lastName,
		Email:          email,
		PhoneNumber:    strings.TrimSpace(in.PhoneNumber),
		LicenseNumber:  license,
		Specialization: strings.TrimSpace(in.Specialization),
		Active:         active,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := s.repo.Create(ctx, v); err != nil {
		return Veterinarian{}, err
	}

	s.log.Info("veterinarian created", zap.String("id", v.ID), zap.String("email", v.Email))
	return v, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (Veterinarian, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Veterinarian{}, ErrNotFound
	}
	return s.repo.GetByID(ctx, id)
}

func (s *Service) GetByEmail(ctx context.Context, email string) (Veterinarian, error) {
	email = normalizeEmail(email)
	if email == "" {
		return Veterinarian{}, ErrNotFound
	}
	return s.repo.GetByEmail(ctx, email)
}

func (s *Service) GetByLicenseNumber(ctx context.Context, licenseNumber string) (Veterinarian, error) {
	licenseNumber = strings.TrimSpace(licenseNumber)
	if licenseNumber == "" {
		return Veterinarian{}, ErrNotFound
	}
	return s.repo.GetByLicenseNumber(ctx, licenseNumber)
}

func (s *Service) List(ctx context.Context, onlyActive bool) ([]Veterinarian, error) {
	return s.repo.List(ctx, onlyActive)
}

type UpdateInput struct {
	// Punteros: nil = no tocar.
	FirstName      *string
	LastName       *string
	Email          *string
	PhoneNumber    *string
	LicenseNumber  *string
	Specialization *string
	Active         *bool
}

func (s *Service) Update(ctx context.Context, id string, in UpdateInput) (Veterinarian, error) {
	v, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Veterinarian{}, err
	}

	email := v.Email
	if in.Email != nil {
		email = normalizeEmail(*in.Email)
		if email == "" {
			return Veterinarian{}, ErrInvalidInput
		}
	}
	license := v.LicenseNumber
	if in.LicenseNumber != nil {
		license = strings.TrimSpace(*in.LicenseNumber)
		if license == "" {
			return Veterinarian{}, ErrInvalidInput
		}
	}

	// Unicidad excluyendo el propio registro: mover un email liberado por
	// otro veterinario a este sí es válido.
	if err := s.checkUnique(ctx, email, license, v.ID); err != nil {
		return Veterinarian{}, err
	}

	if in.FirstName != nil {
		if strings.TrimSpace(*in.FirstName) == "" {
			return Veterinarian{}, ErrInvalidInput
		}
		v.FirstName = strings.TrimSpace(*in.FirstName)
	}
	if in.LastName != nil {
		if strings.TrimSpace(*in.LastName) == "" {
			return Veterinarian{}, ErrInvalidInput
		}
		v.LastName = strings.TrimSpace(*in.LastName)
	}
	v.Email = email
	v.LicenseNumber = license
	if in.PhoneNumber != nil {
		v.PhoneNumber = strings.TrimSpace(*in.PhoneNumber)
	}
	if in.Specialization != nil {
		v.Specialization = strings.TrimSpace(*in.Specialization)
	}
	if in.Active != nil {
		v.Active = *in.Active
	}
	v.UpdatedAt = s.now()

	if err := s.repo.Update(ctx, v); err != nil {
		return Veterinarian{}, err
	}

	s.log.Info("veterinarian updated", zap.String("id", v.ID))
	return v, nil
}

// Deactivate marca el veterinario como inactivo; las citas nuevas contra él
// fallan desde ese momento, las existentes no se tocan.
func (s *Service) Deactivate(ctx context.Context, id string) (Veterinarian, error) {
	v, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Veterinarian{}, err
	}

	v.Active = false
	v.UpdatedAt = s.now()
	if err := s.repo.Update(ctx, v); err != nil {
		return Veterinarian{}, err
	}

	s.log.Info("veterinarian deactivated", zap.String("id", v.ID))
	return v, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return ErrNotFound
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.log.Info("veterinarian deleted", zap.String("id", id))
	return nil
}

func (s *Service) checkUnique(ctx context.Context, email, license, excludeID string) error {
	taken, err := s.repo.ExistsByEmail(ctx, email, excludeID)
	if err != nil {
		return err
	}
	if taken {
		return ErrDuplicateEmail
	}

	taken, err = s.repo.ExistsByLicenseNumber(ctx, license, excludeID)
	if err != nil {
		return err
	}
	if taken {
		return ErrDuplicateLicense
	}
	return nil
}

// El email se guarda normalizado; los repos comparan el valor ya en
// minúsculas, así la unicidad queda case-insensitive.
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
