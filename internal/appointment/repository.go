package appointment

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/clinicware/clinic-api/internal/account"
)

var ErrNotFound = errors.New("appointment not found")

// Repository contains all DB interactions needed by the service. Cancelled
// appointments count as gone: lookups skip them and overlap checks ignore
// them.
type Repository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*Appointment, error)

	Create(ctx context.Context, a *Appointment) error
	// Update overwrites time, doctor and status. The patient link is
	// immutable.
	Update(ctx context.Context, a *Appointment) error
	UpdateStatus(ctx context.Context, id uuid.UUID, status Status) error

	// HasOverlap reports whether any live appointment for the doctor falls
	// within the overlap window around at. excludeID, when non-nil, names a
	// record that does not count against itself.
	HasOverlap(ctx context.Context, doctorID uuid.UUID, at time.Time, excludeID uuid.UUID) (bool, error)

	// ListForDoctorBetween returns the doctor's live appointments in
	// [from, to], ordered by time, optionally filtered by a case-insensitive
	// patient-name substring.
	ListForDoctorBetween(ctx context.Context, doctorID uuid.UUID, from, to time.Time, patientName string) ([]Detail, error)

	// ListForPatient returns the patient's appointments ordered by time,
	// optionally restricted to one status and/or a doctor-name substring.
	ListForPatient(ctx context.Context, patientID uuid.UUID, status *Status, doctorName string) ([]Detail, error)

	// CompletePast flips scheduled appointments older than now to completed
	// and returns how many changed.
	CompletePast(ctx context.Context, now time.Time) (int64, error)
}

// DoctorDirectory is the slice of the account store the scheduling logic
// needs. Satisfied by account.PgRepository.
type DoctorDirectory interface {
	GetDoctorByID(ctx context.Context, id uuid.UUID) (*account.Doctor, error)
}
