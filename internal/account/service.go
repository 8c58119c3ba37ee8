package account

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/clinicware/clinic-api/internal/token"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrDuplicateAccount   = errors.New("account already exists")
)

type Service struct {
	repo   Repository
	tokens *token.Service
}

func NewService(repo Repository, tokens *token.Service) *Service {
	return &Service{
		repo:   repo,
		tokens: tokens,
	}
}

func HashPassword(pw string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(pw), bcrypt.DefaultCost)
	return string(b), err
}

func CheckPassword(hash, pw string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(pw)) == nil
}

// Logins. A wrong identity and a wrong password both come back as
// ErrInvalidCredentials; callers cannot tell which accounts exist.

func (s *Service) AdminLogin(ctx context.Context, username, password string) (string, error) {
	admin, err := s.repo.GetAdminByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, ErrAdminNotFound) {
			return "", ErrInvalidCredentials
		}
		return "", fmt.Errorf("load admin: %w", err)
	}
	if !CheckPassword(admin.PasswordHash, password) {
		return "", ErrInvalidCredentials
	}
	return s.tokens.Issue(admin.Username)
}

func (s *Service) DoctorLogin(ctx context.Context, email, password string) (string, error) {
	doctor, err := s.repo.GetDoctorByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrDoctorNotFound) {
			return "", ErrInvalidCredentials
		}
		return "", fmt.Errorf("load doctor: %w", err)
	}
	if !CheckPassword(doctor.PasswordHash, password) {
		return "", ErrInvalidCredentials
	}
	return s.tokens.Issue(doctor.Email)
}

func (s *Service) PatientLogin(ctx context.Context, email, password string) (string, error) {
	patient, err := s.repo.GetPatientByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrPatientNotFound) {
			return "", ErrInvalidCredentials
		}
		return "", fmt.Errorf("load patient: %w", err)
	}
	if !CheckPassword(patient.PasswordHash, password) {
		return "", ErrInvalidCredentials
	}
	return s.tokens.Issue(patient.Email)
}

// RegisterPatient creates a patient account unless one with the same email
// or phone already exists.
func (s *Service) RegisterPatient(ctx context.Context, name, email, password, phone, address string) (*Patient, error) {
	existing, err := s.repo.FindPatientByEmailOrPhone(ctx, email, phone)
	if err != nil && !errors.Is(err, ErrPatientNotFound) {
		return nil, fmt.Errorf("check existing patient: %w", err)
	}
	if existing != nil {
		return nil, ErrDuplicateAccount
	}

	hash, err := HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	p := &Patient{
		ID:           uuid.New(),
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Phone:        phone,
		Address:      address,
	}
	if err := s.repo.CreatePatient(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// Doctor management, admin-gated at the API layer.

func (s *Service) CreateDoctor(ctx context.Context, name, email, password, specialty string, availableTimes []string) (*Doctor, error) {
	existing, err := s.repo.GetDoctorByEmail(ctx, email)
	if err != nil && !errors.Is(err, ErrDoctorNotFound) {
		return nil, fmt.Errorf("check existing doctor: %w", err)
	}
	if existing != nil {
		return nil, ErrDuplicateAccount
	}

	hash, err := HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	d := &Doctor{
		ID:             uuid.New(),
		Name:           name,
		Email:          email,
		PasswordHash:   hash,
		Specialty:      specialty,
		AvailableTimes: availableTimes,
	}
	if err := s.repo.CreateDoctor(ctx, d); err != nil {
		return nil, err
	}
	return d, nil
}

func (s *Service) UpdateDoctor(ctx context.Context, id uuid.UUID, name, email, specialty string, availableTimes []string) (*Doctor, error) {
	existing, err := s.repo.GetDoctorByID(ctx, id)
	if err != nil {
		return nil, err
	}

	existing.Name = name
	existing.Email = email
	existing.Specialty = specialty
	existing.AvailableTimes = availableTimes

	if err := s.repo.UpdateDoctor(ctx, existing); err != nil {
		return nil, err
	}
	return existing, nil
}

func (s *Service) DeleteDoctor(ctx context.Context, id uuid.UUID) error {
	return s.repo.DeleteDoctor(ctx, id)
}

func (s *Service) Doctors(ctx context.Context) ([]Doctor, error) {
	return s.repo.ListDoctors(ctx)
}

func (s *Service) DoctorByID(ctx context.Context, id uuid.UUID) (*Doctor, error) {
	return s.repo.GetDoctorByID(ctx, id)
}

func (s *Service) PatientByEmail(ctx context.Context, email string) (*Patient, error) {
	return s.repo.GetPatientByEmail(ctx, email)
}

// Token identities are emails (or the admin username); downstream ownership
// checks need primary keys.

func (s *Service) DoctorIDByEmail(ctx context.Context, email string) (uuid.UUID, error) {
	d, err := s.repo.GetDoctorByEmail(ctx, email)
	if err != nil {
		return uuid.Nil, err
	}
	return d.ID, nil
}

func (s *Service) PatientIDByEmail(ctx context.Context, email string) (uuid.UUID, error) {
	p, err := s.repo.GetPatientByEmail(ctx, email)
	if err != nil {
		return uuid.Nil, err
	}
	return p.ID, nil
}
