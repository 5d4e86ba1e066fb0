package postgres

import (
	"context"
	"database/sql"
	"errors"

	"riavet-api/internal/domain/appointments"
)

type AppointmentsRepo struct {
	db *sql.DB
}

func NewAppointmentsRepo(db *sql.DB) *AppointmentsRepo {
	return &AppointmentsRepo{db: db}
}

func (r *AppointmentsRepo) Create(ctx context.Context, a appointments.Appointment) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO appointments (
			id, patient_id, veterinarian_id,
			scheduled_at, status, cancel_reason,
			created_at, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
	`,
		a.ID,
		a.PatientID,
		a.VeterinarianID,
		a.ScheduledAt,
		string(a.Status),
		a.CancelReason,
		a.CreatedAt,
		a.UpdatedAt,
	)
	return err
}

func (r *AppointmentsRepo) Update(ctx context.Context, a appointments.Appointment) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE appointments
		SET
			scheduled_at = $2,
			status = $3,
			cancel_reason = $4,
			updated_at = $5
		WHERE id = $1
	`,
		a.ID,
		a.ScheduledAt,
		string(a.Status),
		a.CancelReason,
		a.UpdatedAt,
	)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return appointments.ErrNotFound
	}
	return nil
}

func (r *AppointmentsRepo) GetByID(ctx context.Context, id string) (appointments.Appointment, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT
			id, patient_id, veterinarian_id,
			scheduled_at, status, cancel_reason,
			created_at, updated_at
		FROM appointments
		WHERE id = $1
	`, id)

	var a appointments.Appointment
	var status string
	if err := row.Scan(
		&a.ID,
		&a.PatientID,
		&a.VeterinarianID,
		&a.ScheduledAt,
		&status,
		&a.CancelReason,
		&a.CreatedAt,
		&a.UpdatedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appointments.Appointment{}, appointments.ErrNotFound
		}
		return appointments.Appointment{}, err
	}
	a.Status = appointments.Status(status)
	return a, nil
}

func (r *AppointmentsRepo) List(ctx context.Context) ([]appointments.Appointment, error) {
	return r.list(ctx, `
		SELECT
			id, patient_id, veterinarian_id,
			scheduled_at, status, cancel_reason,
			created_at, updated_at
		FROM appointments
		ORDER BY created_at ASC
	`)
}

func (r *AppointmentsRepo) ListByVeterinarian(ctx context.Context, veterinarianID string) ([]appointments.Appointment, error) {
	return r.list(ctx, `
		SELECT
			id, patient_id, veterinarian_id,
			scheduled_at, status, cancel_reason,
			created_at, updated_at
		FROM appointments
		WHERE veterinarian_id = $1
		ORDER BY created_at ASC
	`, veterinarianID)
}

func (r *AppointmentsRepo) list(ctx context.Context, query string, args ...any) ([]appointments.Appointment, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]appointments.Appointment, 0)
	for rows.Next() {
		var a appointments.Appointment
		var status string
		if err := rows.Scan(
			&a.ID,
			&a.PatientID,
			&a.VeterinarianID,
			&a.ScheduledAt,
			&status,
			&a.CancelReason,
			&a.CreatedAt,
			&a.UpdatedAt,
		); err != nil {
			return nil, err
		}
		a.Status = appointments.Status(status)
		out = append(out, a)
	}
	return out, rows.Err()
}
