package account

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/clinicware/clinic-api/internal/token"
)

type PgRepository struct {
	pool *pgxpool.Pool
}

func NewPgRepository(pool *pgxpool.Pool) *PgRepository {
	return &PgRepository{pool: pool}
}

// Helpers

func scanAdmin(row pgx.Row) (*Admin, error) {
	var a Admin

	err := row.Scan(
		&a.ID,
		&a.Username,
		&a.PasswordHash,
		&a.CreatedAt,
		&a.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrAdminNotFound
		}
		return nil, err
	}

	return &a, nil
}

func scanDoctor(row pgx.Row) (*Doctor, error) {
	var d Doctor

	err := row.Scan(
		&d.ID,
		&d.Name,
		&d.Email,
		&d.PasswordHash,
		&d.Specialty,
		&d.AvailableTimes,
		&d.CreatedAt,
		&d.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrDoctorNotFound
		}
		return nil, err
	}

	return &d, nil
}

func scanPatient(row pgx.Row) (*Patient, error) {
	var p Patient

	err := row.Scan(
		&p.ID,
		&p.Name,
		&p.Email,
		&p.PasswordHash,
		&p.Phone,
		&p.Address,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrPatientNotFound
		}
		return nil, err
	}

	return &p, nil
}

const doctorColumns = `id, name, email, password_hash, specialty, available_times, created_at, updated_at`

func (r *PgRepository) collectDoctors(ctx context.Context, query string, args ...any) ([]Doctor, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []Doctor
	for rows.Next() {
		d, err := scanDoctor(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *d)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return result, nil
}

// Interface methods

func (r *PgRepository) GetAdminByUsername(ctx context.Context, username string) (*Admin, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT id, username, password_hash, created_at, updated_at
		FROM admins
		WHERE username = $1
	`, username)
	return scanAdmin(row)
}

func (r *PgRepository) GetDoctorByID(ctx context.Context, id uuid.UUID) (*Doctor, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT `+doctorColumns+`
		FROM doctors
		WHERE id = $1
	`, id)
	return scanDoctor(row)
}

func (r *PgRepository) GetDoctorByEmail(ctx context.Context, email string) (*Doctor, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT `+doctorColumns+`
		FROM doctors
		WHERE email = $1
	`, email)
	return scanDoctor(row)
}

func (r *PgRepository) ListDoctors(ctx context.Context) ([]Doctor, error) {
	return r.collectDoctors(ctx, `
		SELECT `+doctorColumns+`
		FROM doctors
		ORDER BY name
	`)
}

func (r *PgRepository) FindDoctorsByName(ctx context.Context, name string) ([]Doctor, error) {
	return r.collectDoctors(ctx, `
		SELECT `+doctorColumns+`
		FROM doctors
		WHERE name ILIKE '%' || $1 || '%'
		ORDER BY name
	`, name)
}

func (r *PgRepository) FindDoctorsBySpecialty(ctx context.Context, specialty string) ([]Doctor, error) {
	return r.collectDoctors(ctx, `
		SELECT `+doctorColumns+`
		FROM doctors
		WHERE lower(specialty) = lower($1)
		ORDER BY name
	`, specialty)
}

func (r *PgRepository) FindDoctorsByNameAndSpecialty(ctx context.Context, name, specialty string) ([]Doctor, error) {
	return r.collectDoctors(ctx, `
		SELECT `+doctorColumns+`
		FROM doctors
		WHERE name ILIKE '%' || $1 || '%'
		  AND lower(specialty) = lower($2)
		ORDER BY name
	`, name, specialty)
}

func (r *PgRepository) CreateDoctor(ctx context.Context, d *Doctor) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO doctors (id, name, email, password_hash, specialty, available_times, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, now(), now())
	`, d.ID, d.Name, d.Email, d.PasswordHash, d.Specialty, d.AvailableTimes)
	if err != nil {
		return fmt.Errorf("insert doctor: %w", err)
	}
	return nil
}

func (r *PgRepository) UpdateDoctor(ctx context.Context, d *Doctor) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE doctors
		SET name = $2,
		    email = $3,
		    specialty = $4,
		    available_times = $5,
		    updated_at = now()
		WHERE id = $1
	`, d.ID, d.Name, d.Email, d.Specialty, d.AvailableTimes)
	if err != nil {
		return fmt.Errorf("update doctor: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrDoctorNotFound
	}
	return nil
}

func (r *PgRepository) DeleteDoctor(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `
		DELETE FROM doctors
		WHERE id = $1
	`, id)
	if err != nil {
		return fmt.Errorf("delete doctor: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrDoctorNotFound
	}
	return nil
}

func (r *PgRepository) GetPatientByID(ctx context.Context, id uuid.UUID) (*Patient, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT id, name, email, password_hash, phone, address, created_at, updated_at
		FROM patients
		WHERE id = $1
	`, id)
	return scanPatient(row)
}

func (r *PgRepository) GetPatientByEmail(ctx context.Context, email string) (*Patient, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT id, name, email, password_hash, phone, address, created_at, updated_at
		FROM patients
		WHERE email = $1
	`, email)
	return scanPatient(row)
}

func (r *PgRepository) FindPatientByEmailOrPhone(ctx context.Context, email, phone string) (*Patient, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT id, name, email, password_hash, phone, address, created_at, updated_at
		FROM patients
		WHERE email = $1 OR phone = $2
		LIMIT 1
	`, email, phone)
	return scanPatient(row)
}

func (r *PgRepository) CreatePatient(ctx context.Context, p *Patient) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO patients (id, name, email, password_hash, phone, address, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, now(), now())
	`, p.ID, p.Name, p.Email, p.PasswordHash, p.Phone, p.Address)
	if err != nil {
		return fmt.Errorf("insert patient: %w", err)
	}
	return nil
}

func (r *PgRepository) ExistsWithRole(ctx context.Context, identity string, role token.Role) (bool, error) {
	var query string
	switch role {
	case token.RoleAdmin:
		query = `SELECT EXISTS(SELECT 1 FROM admins WHERE username = $1)`
	case token.RoleDoctor:
		query = `SELECT EXISTS(SELECT 1 FROM doctors WHERE email = $1)`
	case token.RolePatient:
		query = `SELECT EXISTS(SELECT 1 FROM patients WHERE email = $1)`
	default:
		return false, fmt.Errorf("unknown role %q", role)
	}

	var exists bool
	if err := r.pool.QueryRow(ctx, query, identity).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}
