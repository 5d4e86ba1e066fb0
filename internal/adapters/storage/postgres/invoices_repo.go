package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/shopspring/decimal"

	"riavet-api/internal/domain/invoices"
)

type InvoicesRepo struct {
	db *sql.DB
}

func NewInvoicesRepo(db *sql.DB) *InvoicesRepo {
	return &InvoicesRepo{db: db}
}

func (r *InvoicesRepo) Create(ctx context.Context, inv invoices.Invoice) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO invoices (
			id, patient_id, date, total, status, items,
			created_at, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
	`,
		inv.ID,
		inv.PatientID,
		inv.Date,
		inv.Total.String(),
		string(inv.Status),
		inv.Items,
		inv.CreatedAt,
		inv.UpdatedAt,
	)
	return err
}

func (r *InvoicesRepo) Update(ctx context.Context, inv invoices.Invoice) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE invoices
		SET
			total = $2,
			status = $3,
			items = $4,
			updated_at = $5
		WHERE id = $1
	`,
		inv.ID,
		inv.Total.String(),
		string(inv.Status),
		inv.Items,
		inv.UpdatedAt,
	)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return invoices.ErrNotFound
	}
	return nil
}

func (r *InvoicesRepo) GetByID(ctx context.Context, id string) (invoices.Invoice, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, patient_id, date, total, status, items, created_at, updated_at
		FROM invoices
		WHERE id = $1
	`, id)

	inv, err := scanInvoice(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return invoices.Invoice{}, invoices.ErrNotFound
		}
		return invoices.Invoice{}, err
	}
	return inv, nil
}

func (r *InvoicesRepo) List(ctx context.Context) ([]invoices.Invoice, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, patient_id, date, total, status, items, created_at, updated_at
		FROM invoices
		ORDER BY created_at ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]invoices.Invoice, 0)
	for rows.Next() {
		inv, err := scanInvoice(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, inv)
	}
	return out, rows.Err()
}

func (r *InvoicesRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM invoices WHERE id = $1`, id)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return invoices.ErrNotFound
	}
	return nil
}

// total es NUMERIC; viaja como string para no perder precisión.
func scanInvoice(scan func(dest ...any) error) (invoices.Invoice, error) {
	var inv invoices.Invoice
	var total, status string
	if err := scan(
		&inv.ID,
		&inv.PatientID,
		&inv.Date,
		&total,
		&status,
		&inv.Items,
		&inv.CreatedAt,
		&inv.UpdatedAt,
	); err != nil {
		return invoices.Invoice{}, err
	}

	parsed, err := decimal.NewFromString(total)
	if err != nil {
		return invoices.Invoice{}, err
	}
	inv.Total = parsed
	inv.Status = invoices.Status(status)
	return inv, nil
}
