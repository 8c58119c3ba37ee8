package prescription_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/clinicware/clinic-api/internal/appointment"
	"github.com/clinicware/clinic-api/internal/prescription"
	redisclient "github.com/clinicware/clinic-api/internal/redis"
)

type fakeDocs struct {
	docs map[string][]byte
}

func (f *fakeDocs) Put(_ context.Context, key string, doc []byte) error {
	f.docs[key] = doc
	return nil
}

func (f *fakeDocs) Get(_ context.Context, key string) ([]byte, error) {
	doc, ok := f.docs[key]
	if !ok {
		return nil, redisclient.ErrDocumentNotFound
	}
	return doc, nil
}

type fakeStatusSetter struct {
	statuses map[uuid.UUID]appointment.Status
	err      error
}

func (f *fakeStatusSetter) SetStatus(_ context.Context, apptID uuid.UUID, status appointment.Status) error {
	if f.err != nil {
		return f.err
	}
	f.statuses[apptID] = status
	return nil
}

func setup() (*prescription.Service, *fakeDocs, *fakeStatusSetter) {
	docs := &fakeDocs{docs: make(map[string][]byte)}
	setter := &fakeStatusSetter{statuses: make(map[uuid.UUID]appointment.Status)}
	return prescription.NewService(docs, setter), docs, setter
}

func TestSaveAndLoad(t *testing.T) {
	svc, _, setter := setup()
	apptID := uuid.New()

	in := prescription.Prescription{
		AppointmentID: apptID,
		PatientName:   "Ada Park",
		Medication:    "Amoxicillin",
		Dosage:        "500mg twice daily",
		DoctorNotes:   "take with food",
	}
	if err := svc.Save(context.Background(), in); err != nil {
		t.Fatalf("save: %v", err)
	}

	if setter.statuses[apptID] != appointment.StatusCompleted {
		t.Fatalf("appointment status = %v, want completed", setter.statuses[apptID])
	}

	got, err := svc.ByAppointment(context.Background(), apptID)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if *got != in {
		t.Fatalf("got %+v, want %+v", *got, in)
	}
}

func TestSaveMissingAppointmentID(t *testing.T) {
	svc, docs, setter := setup()

	err := svc.Save(context.Background(), prescription.Prescription{Medication: "Ibuprofen"})
	if !errors.Is(err, prescription.ErrMissingAppointmentID) {
		t.Fatalf("expected ErrMissingAppointmentID, got %v", err)
	}
	if len(docs.docs) != 0 || len(setter.statuses) != 0 {
		t.Fatal("save without appointment id had side effects")
	}
}

func TestSaveUnknownAppointment(t *testing.T) {
	svc, docs, setter := setup()
	setter.err = appointment.ErrNotFound

	err := svc.Save(context.Background(), prescription.Prescription{AppointmentID: uuid.New()})
	if !errors.Is(err, appointment.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if len(docs.docs) != 0 {
		t.Fatal("document stored for unknown appointment")
	}
}

func TestByAppointmentNotFound(t *testing.T) {
	svc, _, _ := setup()

	_, err := svc.ByAppointment(context.Background(), uuid.New())
	if !errors.Is(err, prescription.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
