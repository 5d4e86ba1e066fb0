package postgres

import (
	"context"
	"database/sql"
	"errors"

	"riavet-api/internal/domain/owners"
)

type OwnersRepo struct {
	db *sql.DB
}

func NewOwnersRepo(db *sql.DB) *OwnersRepo {
	return &OwnersRepo{db: db}
}

func (r *OwnersRepo) Create(ctx context.Context, o owners.Owner) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO owners (
			id, full_name, phone, email, active,
			created_at, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7)
	`,
		o.ID,
		o.FullName,
		o.Phone,
		o.Email,
		o.Active,
		o.CreatedAt,
		o.UpdatedAt,
	)
	return err
}

func (r *OwnersRepo) Update(ctx context.Context, o owners.Owner) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE owners
		SET
			full_name = $2,
			phone = $3,
			email = $4,
			active = $5,
			updated_at = $6
		WHERE id = $1
	`,
		o.ID,
		o.FullName,
		o.Phone,
		o.Email,
		o.Active,
		o.UpdatedAt,
	)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return owners.ErrNotFound
	}
	return nil
}

func (r *OwnersRepo) GetByID(ctx context.Context, id string) (owners.Owner, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, full_name, phone, email, active, created_at, updated_at
		FROM owners
		WHERE id = $1
	`, id)

	var o owners.Owner
	if err := row.Scan(
		&o.ID,
		&o.FullName,
		&o.Phone,
		&o.Email,
		&o.Active,
		&o.CreatedAt,
		&o.UpdatedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return owners.Owner{}, owners.ErrNotFound
		}
		return owners.Owner{}, err
	}
	return o, nil
}

func (r *OwnersRepo) List(ctx context.Context, search string) ([]owners.Owner, error) {
	query := `
		SELECT id, full_name, phone, email, active, created_at, updated_at
		FROM owners
		ORDER BY created_at ASC
	`
	args := []any{}
	if search != "" {
		query = `
			SELECT id, full_name, phone, email, active, created_at, updated_at
			FROM owners
			WHERE full_name ILIKE '%' || $1 || '%'
			   OR email ILIKE '%' || $1 || '%'
			   OR phone LIKE '%' || $1 || '%'
			ORDER BY created_at ASC
		`
		args = append(args, search)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]owners.Owner, 0)
	for rows.Next() {
		var o owners.Owner
		if err := rows.Scan(
			&o.ID,
			&o.FullName,
			&o.Phone,
			&o.Email,
			&o.Active,
			&o.CreatedAt,
			&o.UpdatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	return out, rows.Err()
}

func (r *OwnersRepo) ExistsByEmail(ctx context.Context, email, excludeID string) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM owners
			WHERE email <> '' AND lower(email) = lower($1) AND id <> $2
		)
	`, email, excludeID).Scan(&exists)
	return exists, err
}

func (r *OwnersRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM owners WHERE id = $1`, id)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return owners.ErrNotFound
	}
	return nil
}
