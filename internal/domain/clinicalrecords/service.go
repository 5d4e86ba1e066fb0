package clinicalrecords

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	ErrInvalidInput  = errors.New("invalid input")
	ErrInvalidStatus = errors.New("invalid record status")
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
	PatientID      string
	VeterinarianID string
	Diagnosis      string
	Procedures     string
	Attachments    string
	MedicalOrders  string
	Prescription   string
	FollowUpDate   *time.Time
	Status         string // vacío => ACTIVE
}

func (s *Service) Create(ctx context.Context, in CreateInput) (ClinicalRecord, error) {
	patientID := strings.TrimSpace(in.PatientID)
	vetID := strings.TrimSpace(in.VeterinarianID)
	diagnosis := strings.TrimSpace(in.Diagnosis)
	if patientID == "" || vetID == "" || diagnosis == "" {
		return ClinicalRecord{}, ErrInvalidInput
	}

	status := StatusActive
	if strings.TrimSpace(in.Status) != "" {
		parsed, err := ParseStatus(in.Status)
		if err != nil {
			return ClinicalRecord{}, errors.Join(ErrInvalidStatus, err)
		}
		status = parsed
	}

	rec := ClinicalRecord{
		ID:             uuid.NewString(),
		PatientID:      patientID,
		VeterinarianID: vetID,
		Diagnosis:      diagnosis,
		Procedures:     strings.TrimSpace(in.Procedures),
		Attachments:    strings.TrimSpace(in.Attachments),
		MedicalOrders:  strings.TrimSpace(in.MedicalOrders),
		Prescription:   strings.TrimSpace(in.Prescription),
		FollowUpDate:   in.FollowUpDate,
		Status:         status,
		CreatedAt:      s.now().UTC(),
	}
	if err := s.repo.Create(ctx, rec); err != nil {
		return ClinicalRecord{}, err
	}

	s.log.Info("clinical record created",
		zap.String("id", rec.ID),
		zap.String("patient_id", rec.PatientID),
	)
	return rec, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (ClinicalRecord, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return ClinicalRecord{}, ErrInvalidInput
	}
	return s.repo.GetByID(ctx, id)
}

// List filtra por paciente y/o estado; ambos filtros son combinables.
func (s *Service) List(ctx context.Context, patientID, status string) ([]ClinicalRecord, error) {
	filter := ListFilter{PatientID: strings.TrimSpace(patientID)}
	if strings.TrimSpace(status) != "" {
		parsed, err := ParseStatus(status)
		if err != nil {
			return nil, errors.Join(ErrInvalidStatus, err)
		}
		filter.Status = parsed
	}
	return s.repo.List(ctx, filter)
}

func (s *Service) ListByVeterinarian(ctx context.Context, veterinarianID string) ([]ClinicalRecord, error) {
	veterinarianID = strings.TrimSpace(veterinarianID)
	if veterinarianID == "" {
		return nil, ErrInvalidInput
	}
	return s.repo.ListByVeterinarian(ctx, veterinarianID)
}

type UpdateInput struct {
	Diagnosis     string
	Procedures    string
	Attachments   string
	MedicalOrders string
	Prescription  string
	FollowUpDate  *time.Time
	Status        string
}

// Update reemplaza todos los campos mutables del registro; es una escritura
// completa, no un patch campo a campo.
func (s *Service) Update(ctx context.Context, id string, in UpdateInput) (ClinicalRecord, error) {
	rec, err := s.GetByID(ctx, id)
	if err != nil {
		return ClinicalRecord{}, err
	}

	diagnosis := strings.TrimSpace(in.Diagnosis)
	if diagnosis == "" {
		return ClinicalRecord{}, ErrInvalidInput
	}
	status := rec.Status
	if strings.TrimSpace(in.Status) != "" {
		parsed, err := ParseStatus(in.Status)
		if err != nil {
			return ClinicalRecord{}, errors.Join(ErrInvalidStatus, err)
		}
		status = parsed
	}

	rec.Diagnosis = diagnosis
	rec.Procedures = strings.TrimSpace(in.Procedures)
	rec.Attachments = strings.TrimSpace(in.Attachments)
	rec.MedicalOrders = strings.TrimSpace(in.MedicalOrders)
	rec.Prescription = strings.TrimSpace(in.Prescription)
	rec.FollowUpDate = in.FollowUpDate
	rec.Status = status

	if err := s.repo.Update(ctx, rec); err != nil {
		return ClinicalRecord{}, err
	}
	return rec, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return ErrInvalidInput
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.log.Info("clinical record deleted", zap.String("id", id))
	return nil
}
