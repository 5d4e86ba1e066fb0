package postgres

import (
	"context"
	"database/sql"
	"errors"

	"riavet-api/internal/domain/dian"
)

type DianRepo struct {
	db *sql.DB
}

func NewDianRepo(db *sql.DB) *DianRepo {
	return &DianRepo{db: db}
}

func (r *DianRepo) Create(ctx context.Context, rec dian.SubmissionRecord) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO dian_submissions (
			id, invoice_id, xml_payload, status, dian_code, message,
			created_at, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
	`,
		rec.ID,
		rec.InvoiceID,
		rec.XMLPayload,
		string(rec.Status),
		rec.DianCode,
		rec.Message,
		rec.CreatedAt,
		rec.UpdatedAt,
	)
	return err
}

func (r *DianRepo) Update(ctx context.Context, rec dian.SubmissionRecord) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE dian_submissions
		SET
			status = $2,
			dian_code = $3,
			message = $4,
			updated_at = $5
		WHERE id = $1
	`,
		rec.ID,
		string(rec.Status),
		rec.DianCode,
		rec.Message,
		rec.UpdatedAt,
	)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return dian.ErrNotFound
	}
	return nil
}

func (r *DianRepo) GetByInvoiceID(ctx context.Context, invoiceID string) (dian.SubmissionRecord, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, invoice_id, xml_payload, status, dian_code, message,
		       created_at, updated_at
		FROM dian_submissions
		WHERE invoice_id = $1
	`, invoiceID)

	var rec dian.SubmissionRecord
	var status string
	if err := row.Scan(
		&rec.ID,
		&rec.InvoiceID,
		&rec.XMLPayload,
		&status,
		&rec.DianCode,
		&rec.Message,
		&rec.CreatedAt,
		&rec.UpdatedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return dian.SubmissionRecord{}, dian.ErrNotFound
		}
		return dian.SubmissionRecord{}, err
	}
	rec.Status = dian.Status(status)
	return rec, nil
}

func (r *DianRepo) ExistsByInvoiceID(ctx context.Context, invoiceID string) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx, `
		SELECT EXISTS (SELECT 1 FROM dian_submissions WHERE invoice_id = $1)
	`, invoiceID).Scan(&exists)
	return exists, err
}
