package appointment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgRepository struct {
	pool *pgxpool.Pool
}

func NewPgRepository(pool *pgxpool.Pool) *PgRepository {
	return &PgRepository{pool: pool}
}

// Helpers

func scanAppointment(row pgx.Row) (*Appointment, error) {
	var a Appointment

	err := row.Scan(
		&a.ID,
		&a.DoctorID,
		&a.PatientID,
		&a.Time,
		&a.Status,
		&a.CreatedAt,
		&a.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return &a, nil
}

func scanDetail(row pgx.Row) (*Detail, error) {
	var d Detail

	err := row.Scan(
		&d.ID,
		&d.DoctorID,
		&d.PatientID,
		&d.Time,
		&d.Status,
		&d.CreatedAt,
		&d.UpdatedAt,
		&d.DoctorName,
		&d.PatientName,
		&d.PatientEmail,
		&d.PatientPhone,
		&d.PatientAddress,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return &d, nil
}

const detailQuery = `
	SELECT a.id, a.doctor_id, a.patient_id, a.appointment_time, a.status,
	       a.created_at, a.updated_at,
	       d.name, p.name, p.email, p.phone, p.address
	FROM appointments a
	JOIN doctors d ON d.id = a.doctor_id
	JOIN patients p ON p.id = a.patient_id
`

func (r *PgRepository) collectDetails(ctx context.Context, query string, args ...any) ([]Detail, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []Detail
	for rows.Next() {
		d, err := scanDetail(rows)
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

func (r *PgRepository) GetByID(ctx context.Context, id uuid.UUID) (*Appointment, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT id, doctor_id, patient_id, appointment_time, status, created_at, updated_at
		FROM appointments
		WHERE id = $1
	`, id)
	return scanAppointment(row)
}

func (r *PgRepository) Create(ctx context.Context, a *Appointment) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO appointments (id, doctor_id, patient_id, appointment_time, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, now(), now())
	`, a.ID, a.DoctorID, a.PatientID, a.Time, a.Status)
	if err != nil {
		return fmt.Errorf("insert appointment: %w", err)
	}
	return nil
}

func (r *PgRepository) Update(ctx context.Context, a *Appointment) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE appointments
		SET appointment_time = $2,
		    doctor_id = $3,
		    status = $4,
		    updated_at = now()
		WHERE id = $1
	`, a.ID, a.Time, a.DoctorID, a.Status)
	if err != nil {
		return fmt.Errorf("update appointment: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PgRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status Status) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE appointments
		SET status = $2,
		    updated_at = now()
		WHERE id = $1
	`, id, status)
	if err != nil {
		return fmt.Errorf("update appointment status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PgRepository) HasOverlap(ctx context.Context, doctorID uuid.UUID, at time.Time, excludeID uuid.UUID) (bool, error) {
	q := `SELECT EXISTS(
		SELECT 1 FROM appointments
		WHERE doctor_id = $1
		  AND status <> $2
		  AND appointment_time BETWEEN $3 AND $4`

	args := []any{doctorID, StatusCancelled, at.Add(-OverlapWindow), at.Add(OverlapWindow)}

	if excludeID != uuid.Nil {
		q += ` AND id <> $5`
		args = append(args, excludeID)
	}
	q += `)`

	var exists bool
	err := r.pool.QueryRow(ctx, q, args...).Scan(&exists)
	return exists, err
}

func (r *PgRepository) ListForDoctorBetween(ctx context.Context, doctorID uuid.UUID, from, to time.Time, patientName string) ([]Detail, error) {
	q := detailQuery + `
		WHERE a.doctor_id = $1
		  AND a.status <> $2
		  AND a.appointment_time BETWEEN $3 AND $4`

	args := []any{doctorID, StatusCancelled, from, to}

	if patientName != "" {
		q += `
		  AND p.name ILIKE '%' || $5 || '%'`
		args = append(args, patientName)
	}
	q += `
		ORDER BY a.appointment_time`

	return r.collectDetails(ctx, q, args...)
}

func (r *PgRepository) ListForPatient(ctx context.Context, patientID uuid.UUID, status *Status, doctorName string) ([]Detail, error) {
	q := detailQuery + `
		WHERE a.patient_id = $1
		  AND a.status <> $2`

	args := []any{patientID, StatusCancelled}

	if status != nil {
		q += fmt.Sprintf(`
		  AND a.status = $%d`, len(args)+1)
		args = append(args, *status)
	}
	if doctorName != "" {
		q += fmt.Sprintf(`
		  AND d.name ILIKE '%%' || $%d || '%%'`, len(args)+1)
		args = append(args, doctorName)
	}
	q += `
		ORDER BY a.appointment_time`

	return r.collectDetails(ctx, q, args...)
}

func (r *PgRepository) CompletePast(ctx context.Context, now time.Time) (int64, error) {
	tag, err := r.pool.Exec(ctx, `
		UPDATE appointments
		SET status = $1,
		    updated_at = now()
		WHERE status = $2
		  AND appointment_time < $3
	`, StatusCompleted, StatusScheduled, now)
	if err != nil {
		return 0, fmt.Errorf("complete past appointments: %w", err)
	}
	return tag.RowsAffected(), nil
}
