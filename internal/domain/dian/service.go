package dian

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	dianport "riavet-api/internal/ports/dian"
)

var (
	ErrInvalidInput     = errors.New("invalid input")
	ErrDuplicateInvoice = errors.New("invoice already submitted")
)

type Service struct {
	repo   Repository
	client dianport.Client
	log    *zap.Logger
	now    func() time.Time
}

func NewService(repo Repository, client dianport.Client, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{
		repo:   repo,
		client: client,
		log:    log,
		now:    time.Now,
	}
}

type SubmitInput struct {
	InvoiceID  string
	XMLPayload string
}

// Submit radica una factura ante la autoridad. La deduplicación por invoiceId
// ocurre ANTES de cualquier llamada externa: una factura ya radicada nunca
// vuelve a salir hacia la DIAN. El registro se persiste en PENDING antes de
// llamar, y un fallo del cliente se guarda como REJECTED con el mensaje de
// error; la operación igual retorna el registro resultante.
func (s *Service) Submit(ctx context.Context, in SubmitInput) (SubmissionRecord, error) {
	invoiceID := strings.TrimSpace(in.InvoiceID)
	payload := strings.TrimSpace(in.XMLPayload)
	if invoiceID == "" || payload == "" {
		return SubmissionRecord{}, ErrInvalidInput
	}

	exists, err := s.repo.ExistsByInvoiceID(ctx, invoiceID)
	if err != nil {
		return SubmissionRecord{}, err
	}
	if exists {
		return SubmissionRecord{}, ErrDuplicateInvoice
	}

	now := s.now().UTC()
	rec := SubmissionRecord{
		ID:         uuid.NewString(),
		InvoiceID:  invoiceID,
		XMLPayload: payload,
		Status:     StatusPending,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := s.repo.Create(ctx, rec); err != nil {
		return SubmissionRecord{}, err
	}

	s.log.Info("submitting invoice to dian", zap.String("invoice_id", invoiceID))

	result, err := s.client.Submit(ctx, dianport.Submission{
		InvoiceID:  invoiceID,
		XMLPayload: payload,
	})
	if err != nil {
		s.log.Error("dian client failed",
			zap.String("invoice_id", invoiceID),
			zap.Error(err),
		)
		rec.Status = StatusRejected
		rec.Message = "error interno: " + err.Error()
	} else {
		if result.Accepted {
			rec.Status = StatusAccepted
		} else {
			rec.Status = StatusRejected
		}
		rec.DianCode = result.DianCode
		rec.Message = result.Message
	}

	rec.UpdatedAt = s.now().UTC()
	if err := s.repo.Update(ctx, rec); err != nil {
		return SubmissionRecord{}, err
	}

	s.log.Info("invoice processed",
		zap.String("invoice_id", rec.InvoiceID),
		zap.String("status", string(rec.Status)),
		zap.String("dian_code", rec.DianCode),
	)
	return rec, nil
}

func (s *Service) StatusByInvoiceID(ctx context.Context, invoiceID string) (SubmissionRecord, error) {
	invoiceID = strings.TrimSpace(invoiceID)
	if invoiceID == "" {
		return SubmissionRecord{}, ErrInvalidInput
	}
	return s.repo.GetByInvoiceID(ctx, invoiceID)
}
