package dian

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("dian submission not found")

type Repository interface {
	Create(ctx context.Context, rec SubmissionRecord) error
	Update(ctx context.Context, rec SubmissionRecord) error
	GetByInvoiceID(ctx context.Context, invoiceID string) (SubmissionRecord, error)
	ExistsByInvoiceID(ctx context.Context, invoiceID string) (bool, error)
}
