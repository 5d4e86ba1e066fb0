package postgres

import (
	"context"
	"database/sql"
	"errors"

	"riavet-api/internal/domain/veterinarians"
)

type VeterinariansRepo struct {
	db *sql.DB
}

func NewVeterinariansRepo(db *sql.DB) *VeterinariansRepo {
	return &VeterinariansRepo{db: db}
}

const vetColumns = `
	id, first_name, last_name, email, phone_number,
	license_number, specialization, active,
	created_at, updated_at
`

func (r *VeterinariansRepo) Create(ctx context.Context, v veterinarians.Veterinarian) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO veterinarians (
			id, first_name, last_name, email, phone_number,
			license_number, specialization, active,
			created_at, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
	`,
		v.ID,
		v.FirstName,
		v.LastName,
		v.Email,
		v.PhoneNumber,
		v.LicenseNumber,
		v.Specialization,
		v.Active,
		v.CreatedAt,
		v.UpdatedAt,
	)
	return err
}

func (r *VeterinariansRepo) Update(ctx context.Context, v veterinarians.Veterinarian) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE veterinarians
		SET
			first_name = $2,
			last_name = $3,
			email = $4,
			phone_number = $5,
			license_number = $6,
			specialization = $7,
			active = $8,
			updated_at = $9
		WHERE id = $1
	`,
		v.ID,
		v.FirstName,
		v.LastName,
		v.Email,
		v.PhoneNumber,
		v.LicenseNumber,
		v.Specialization,
		v.Active,
		v.UpdatedAt,
	)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return veterinarians.ErrNotFound
	}
	return nil
}

func (r *VeterinariansRepo) GetByID(ctx context.Context, id string) (veterinarians.Veterinarian, error) {
	return r.getOne(ctx, `SELECT `+vetColumns+` FROM veterinarians WHERE id = $1`, id)
}

func (r *VeterinariansRepo) GetByEmail(ctx context.Context, email string) (veterinarians.Veterinarian, error) {
	return r.getOne(ctx, `SELECT `+vetColumns+` FROM veterinarians WHERE lower(email) = lower($1)`, email)
}

func (r *VeterinariansRepo) GetByLicenseNumber(ctx context.Context, licenseNumber string) (veterinarians.Veterinarian, error) {
	return r.getOne(ctx, `SELECT `+vetColumns+` FROM veterinarians WHERE license_number = $1`, licenseNumber)
}

func (r *VeterinariansRepo) getOne(ctx context.Context, query string, arg any) (veterinarians.Veterinarian, error) {
	row := r.db.QueryRowContext(ctx, query, arg)

	var v veterinarians.Veterinarian
	if err := row.Scan(
		&v.ID,
		&v.FirstName,
		&v.LastName,
		&v.Email,
		&v.PhoneNumber,
		&v.LicenseNumber,
		&v.Specialization,
		&v.Active,
		&v.CreatedAt,
		&v.UpdatedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return veterinarians.Veterinarian{}, veterinarians.ErrNotFound
		}
		return veterinarians.Veterinarian{}, err
	}
	return v, nil
}

func (r *VeterinariansRepo) List(ctx context.Context, onlyActive bool) ([]veterinarians.Veterinarian, error) {
	query := `SELECT ` + vetColumns + ` FROM veterinarians ORDER BY created_at ASC`
	if onlyActive {
		query = `SELECT ` + vetColumns + ` FROM veterinarians WHERE active ORDER BY created_at ASC`
	}

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]veterinarians.Veterinarian, 0)
	for rows.Next() {
		var v veterinarians.Veterinarian
		if err := rows.Scan(
			&v.ID,
			&v.FirstName,
			&v.LastName,
			&v.Email,
			&v.PhoneNumber,
			&v.LicenseNumber,
			&v.Specialization,
			&v.Active,
			&v.CreatedAt,
			&v.UpdatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

func (r *VeterinariansRepo) ExistsByEmail(ctx context.Context, email, excludeID string) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM veterinarians
			WHERE lower(email) = lower($1) AND id <> $2
		)
	`, email, excludeID).Scan(&exists)
	return exists, err
}

func (r *VeterinariansRepo) ExistsByLicenseNumber(ctx context.Context, licenseNumber, excludeID string) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM veterinarians
			WHERE license_number = $1 AND id <> $2
		)
	`, licenseNumber, excludeID).Scan(&exists)
	return exists, err
}

func (r *VeterinariansRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM veterinarians WHERE id = $1`, id)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return veterinarians.ErrNotFound
	}
	return nil
}
