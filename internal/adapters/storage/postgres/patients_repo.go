package postgres

import (
	"context"
	"database/sql"
	"errors"

	"riavet-api/internal/domain/patients"
)

type PatientsRepo struct {
	db *sql.DB
}

func NewPatientsRepo(db *sql.DB) *PatientsRepo {
	return &PatientsRepo{db: db}
}

func (r *PatientsRepo) Create(ctx context.Context, p patients.Patient) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO patients (
			id, name, species, breed, birth_date,
			owner_id, active, created_at, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
	`,
		p.ID,
		p.Name,
		p.Species,
		p.Breed,
		toNullTime(p.BirthDate),
		p.OwnerID,
		p.Active,
		p.CreatedAt,
		p.UpdatedAt,
	)
	return err
}

func (r *PatientsRepo) Update(ctx context.Context, p patients.Patient) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE patients
		SET
			name = $2,
			species = $3,
			breed = $4,
			birth_date = $5,
			owner_id = $6,
			active = $7,
			updated_at = $8
		WHERE id = $1
	`,
		p.ID,
		p.Name,
		p.Species,
		p.Breed,
		toNullTime(p.BirthDate),
		p.OwnerID,
		p.Active,
		p.UpdatedAt,
	)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return patients.ErrNotFound
	}
	return nil
}

func (r *PatientsRepo) GetByID(ctx context.Context, id string) (patients.Patient, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT
			id, name, species, breed, birth_date,
			owner_id, active, created_at, updated_at
		FROM patients
		WHERE id = $1
	`, id)

	var p patients.Patient
	var bd sql.NullTime
	if err := row.Scan(
		&p.ID,
		&p.Name,
		&p.Species,
		&p.Breed,
		&bd,
		&p.OwnerID,
		&p.Active,
		&p.CreatedAt,
		&p.UpdatedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return patients.Patient{}, patients.ErrNotFound
		}
		return patients.Patient{}, err
	}
	p.BirthDate = fromNullTime(bd)
	return p, nil
}

func (r *PatientsRepo) List(ctx context.Context, search string) ([]patients.Patient, error) {
	query := `
		SELECT
			id, name, species, breed, birth_date,
			owner_id, active, created_at, updated_at
		FROM patients
		WHERE active
		ORDER BY created_at ASC
	`
	args := []any{}
	if search != "" {
		query = `
			SELECT
				id, name, species, breed, birth_date,
				owner_id, active, created_at, updated_at
			FROM patients
			WHERE active
			  AND (name ILIKE '%' || $1 || '%' OR species ILIKE '%' || $1 || '%')
			ORDER BY created_at ASC
		`
		args = append(args, search)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]patients.Patient, 0)
	for rows.Next() {
		var p patients.Patient
		var bd sql.NullTime
		if err := rows.Scan(
			&p.ID,
			&p.Name,
			&p.Species,
			&p.Breed,
			&bd,
			&p.OwnerID,
			&p.Active,
			&p.CreatedAt,
			&p.UpdatedAt,
		); err != nil {
			return nil, err
		}
		p.BirthDate = fromNullTime(bd)
		out = append(out, p)
	}
	return out, rows.Err()
}
