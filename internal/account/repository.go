package account

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/clinicware/clinic-api/internal/token"
)

var (
	ErrAdminNotFound   = errors.New("admin not found")
	ErrDoctorNotFound  = errors.New("doctor not found")
	ErrPatientNotFound = errors.New("patient not found")
)

// Repository contains all DB interactions needed by the account service.
type Repository interface {
	GetAdminByUsername(ctx context.Context, username string) (*Admin, error)

	GetDoctorByID(ctx context.Context, id uuid.UUID) (*Doctor, error)
	GetDoctorByEmail(ctx context.Context, email string) (*Doctor, error)
	ListDoctors(ctx context.Context) ([]Doctor, error)
	FindDoctorsByName(ctx context.Context, name string) ([]Doctor, error)
	FindDoctorsBySpecialty(ctx context.Context, specialty string) ([]Doctor, error)
	FindDoctorsByNameAndSpecialty(ctx context.Context, name, specialty string) ([]Doctor, error)
	CreateDoctor(ctx context.Context, d *Doctor) error
	UpdateDoctor(ctx context.Context, d *Doctor) error
	// DeleteDoctor removes the doctor; dependent appointments go with it
	// (ON DELETE CASCADE).
	DeleteDoctor(ctx context.Context, id uuid.UUID) error

	GetPatientByID(ctx context.Context, id uuid.UUID) (*Patient, error)
	GetPatientByEmail(ctx context.Context, email string) (*Patient, error)
	// FindPatientByEmailOrPhone backs the duplicate-registration check.
	FindPatientByEmailOrPhone(ctx context.Context, email, phone string) (*Patient, error)
	CreatePatient(ctx context.Context, p *Patient) error

	// ExistsWithRole satisfies token.AccountLookup. Admin identities are
	// usernames; doctor and patient identities are emails.
	ExistsWithRole(ctx context.Context, identity string, role token.Role) (bool, error)
}
