package account_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/clinicware/clinic-api/internal/account"
	"github.com/clinicware/clinic-api/internal/token"
)

type fakeRepo struct {
	admins   map[string]*account.Admin
	doctors  map[uuid.UUID]*account.Doctor
	patients map[uuid.UUID]*account.Patient
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		admins:   make(map[string]*account.Admin),
		doctors:  make(map[uuid.UUID]*account.Doctor),
		patients: make(map[uuid.UUID]*account.Patient),
	}
}

func (f *fakeRepo) GetAdminByUsername(_ context.Context, username string) (*account.Admin, error) {
	if a, ok := f.admins[username]; ok {
		return a, nil
	}
	return nil, account.ErrAdminNotFound
}

func (f *fakeRepo) GetDoctorByID(_ context.Context, id uuid.UUID) (*account.Doctor, error) {
	if d, ok := f.doctors[id]; ok {
		return d, nil
	}
	return nil, account.ErrDoctorNotFound
}

func (f *fakeRepo) GetDoctorByEmail(_ context.Context, email string) (*account.Doctor, error) {
	for _, d := range f.doctors {
		if d.Email == email {
			return d, nil
		}
	}
	return nil, account.ErrDoctorNotFound
}

func (f *fakeRepo) ListDoctors(_ context.Context) ([]account.Doctor, error) {
	var out []account.Doctor
	for _, d := range f.doctors {
		out = append(out, *d)
	}
	return out, nil
}

func (f *fakeRepo) FindDoctorsByName(_ context.Context, name string) ([]account.Doctor, error) {
	var out []account.Doctor
	for _, d := range f.doctors {
		if strings.Contains(strings.ToLower(d.Name), strings.ToLower(name)) {
			out = append(out, *d)
		}
	}
	return out, nil
}

func (f *fakeRepo) FindDoctorsBySpecialty(_ context.Context, specialty string) ([]account.Doctor, error) {
	var out []account.Doctor
	for _, d := range f.doctors {
		if strings.EqualFold(d.Specialty, specialty) {
			out = append(out, *d)
		}
	}
	return out, nil
}

func (f *fakeRepo) FindDoctorsByNameAndSpecialty(ctx context.Context, name, specialty string) ([]account.Doctor, error) {
	byName, _ := f.FindDoctorsByName(ctx, name)
	var out []account.Doctor
	for _, d := range byName {
		if strings.EqualFold(d.Specialty, specialty) {
			out = append(out, d)
		}
	}
	return out, nil
}

func (f *fakeRepo) CreateDoctor(_ context.Context, d *account.Doctor) error {
	f.doctors[d.ID] = d
	return nil
}

func (f *fakeRepo) UpdateDoctor(_ context.Context, d *account.Doctor) error {
	if _, ok := f.doctors[d.ID]; !ok {
		return account.ErrDoctorNotFound
	}
	f.doctors[d.ID] = d
	return nil
}

func (f *fakeRepo) DeleteDoctor(_ context.Context, id uuid.UUID) error {
	if _, ok := f.doctors[id]; !ok {
		return account.ErrDoctorNotFound
	}
	delete(f.doctors, id)
	return nil
}

func (f *fakeRepo) GetPatientByID(_ context.Context, id uuid.UUID) (*account.Patient, error) {
	if p, ok := f.patients[id]; ok {
		return p, nil
	}
	return nil, account.ErrPatientNotFound
}

func (f *fakeRepo) GetPatientByEmail(_ context.Context, email string) (*account.Patient, error) {
	for _, p := range f.patients {
		if p.Email == email {
			return p, nil
		}
	}
	return nil, account.ErrPatientNotFound
}

func (f *fakeRepo) FindPatientByEmailOrPhone(_ context.Context, email, phone string) (*account.Patient, error) {
	for _, p := range f.patients {
		if p.Email == email || p.Phone == phone {
			return p, nil
		}
	}
	return nil, account.ErrPatientNotFound
}

func (f *fakeRepo) CreatePatient(_ context.Context, p *account.Patient) error {
	f.patients[p.ID] = p
	return nil
}

func (f *fakeRepo) ExistsWithRole(ctx context.Context, identity string, role token.Role) (bool, error) {
	switch role {
	case token.RoleAdmin:
		_, ok := f.admins[identity]
		return ok, nil
	case token.RoleDoctor:
		_, err := f.GetDoctorByEmail(ctx, identity)
		return err == nil, nil
	case token.RolePatient:
		_, err := f.GetPatientByEmail(ctx, identity)
		return err == nil, nil
	}
	return false, nil
}

func newTestService(t *testing.T) (*account.Service, *fakeRepo) {
	t.Helper()
	repo := newFakeRepo()
	tokens := token.NewService("test-secret", time.Hour, repo)
	return account.NewService(repo, tokens), repo
}

func addDoctor(t *testing.T, repo *fakeRepo, name, specialty string, times ...string) *account.Doctor {
	t.Helper()
	hash, err := account.HashPassword("doctorpass123")
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	d := &account.Doctor{
		ID:             uuid.New(),
		Name:           name,
		Email:          strings.ToLower(strings.ReplaceAll(name, " ", ".")) + "@clinic.test",
		PasswordHash:   hash,
		Specialty:      specialty,
		AvailableTimes: times,
	}
	repo.doctors[d.ID] = d
	return d
}

func TestRegisterPatient(t *testing.T) {
	svc, _ := newTestService(t)

	p, err := svc.RegisterPatient(context.Background(), "Ada Park", "ada@clinic.test", "patientpass", "555-0101", "12 Elm St")
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if p.ID == uuid.Nil {
		t.Fatal("empty patient id")
	}
	if p.PasswordHash == "patientpass" {
		t.Fatal("password stored in plain text")
	}
}

func TestRegisterPatientDuplicate(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	if _, err := svc.RegisterPatient(ctx, "Ada Park", "ada@clinic.test", "patientpass", "555-0101", ""); err != nil {
		t.Fatalf("register: %v", err)
	}

	// same email
	if _, err := svc.RegisterPatient(ctx, "Other", "ada@clinic.test", "patientpass", "555-0999", ""); !errors.Is(err, account.ErrDuplicateAccount) {
		t.Fatalf("expected ErrDuplicateAccount, got %v", err)
	}
	// same phone
	if _, err := svc.RegisterPatient(ctx, "Other", "other@clinic.test", "patientpass", "555-0101", ""); !errors.Is(err, account.ErrDuplicateAccount) {
		t.Fatalf("expected ErrDuplicateAccount, got %v", err)
	}
}

func TestPatientLogin(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	if _, err := svc.RegisterPatient(ctx, "Ada Park", "ada@clinic.test", "patientpass", "555-0101", ""); err != nil {
		t.Fatalf("register: %v", err)
	}

	tok, err := svc.PatientLogin(ctx, "ada@clinic.test", "patientpass")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if tok == "" {
		t.Fatal("empty token")
	}

	if _, err := svc.PatientLogin(ctx, "ada@clinic.test", "wrongpass"); !errors.Is(err, account.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if _, err := svc.PatientLogin(ctx, "nobody@clinic.test", "patientpass"); !errors.Is(err, account.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestCreateDoctorDuplicateEmail(t *testing.T) {
	svc, repo := newTestService(t)
	ctx := context.Background()

	existing := addDoctor(t, repo, "Grace Smith", "Cardiology", "08:00")

	_, err := svc.CreateDoctor(ctx, "Another Smith", existing.Email, "doctorpass123", "Neurology", nil)
	if !errors.Is(err, account.ErrDuplicateAccount) {
		t.Fatalf("expected ErrDuplicateAccount, got %v", err)
	}
}

func TestUpdateDoctorNotFound(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.UpdateDoctor(context.Background(), uuid.New(), "X", "x@clinic.test", "ENT", nil)
	if !errors.Is(err, account.ErrDoctorNotFound) {
		t.Fatalf("expected ErrDoctorNotFound, got %v", err)
	}
}

func TestIdentityResolution(t *testing.T) {
	svc, repo := newTestService(t)
	ctx := context.Background()

	d := addDoctor(t, repo, "Grace Smith", "Cardiology", "08:00")

	id, err := svc.DoctorIDByEmail(ctx, d.Email)
	if err != nil {
		t.Fatalf("doctor id by email: %v", err)
	}
	if id != d.ID {
		t.Fatalf("got %s, want %s", id, d.ID)
	}

	if _, err := svc.PatientIDByEmail(ctx, "nobody@clinic.test"); !errors.Is(err, account.ErrPatientNotFound) {
		t.Fatalf("expected ErrPatientNotFound, got %v", err)
	}
}
