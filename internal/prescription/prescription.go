// Package prescription stores prescriptions as opaque JSON documents in the
// document store, keyed by appointment ID. The core enforces no schema on
// them beyond the key.
package prescription

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/clinicware/clinic-api/internal/appointment"
	redisclient "github.com/clinicware/clinic-api/internal/redis"
)

var (
	ErrNotFound             = errors.New("prescription not found")
	ErrMissingAppointmentID = errors.New("appointment id is required")
)

type Prescription struct {
	AppointmentID uuid.UUID `json:"appointment_id"`
	PatientName   string    `json:"patient_name"`
	Medication    string    `json:"medication"`
	Dosage        string    `json:"dosage"`
	DoctorNotes   string    `json:"doctor_notes,omitempty"`
}

// StatusSetter is the slice of the appointment service the prescription flow
// needs: recording a prescription completes the appointment.
type StatusSetter interface {
	SetStatus(ctx context.Context, apptID uuid.UUID, status appointment.Status) error
}

type Service struct {
	docs         redisclient.DocumentStore
	appointments StatusSetter
}

func NewService(docs redisclient.DocumentStore, appointments StatusSetter) *Service {
	return &Service{
		docs:         docs,
		appointments: appointments,
	}
}

func docKey(apptID uuid.UUID) string {
	return "prescription:" + apptID.String()
}

// Save writes the prescription and marks its appointment completed. The
// caller must have authorized the doctor already; no ownership check happens
// here.
func (s *Service) Save(ctx context.Context, p Prescription) error {
	if p.AppointmentID == uuid.Nil {
		return ErrMissingAppointmentID
	}

	if err := s.appointments.SetStatus(ctx, p.AppointmentID, appointment.StatusCompleted); err != nil {
		return fmt.Errorf("complete appointment: %w", err)
	}

	doc, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("encode prescription: %w", err)
	}
	return s.docs.Put(ctx, docKey(p.AppointmentID), doc)
}

func (s *Service) ByAppointment(ctx context.Context, apptID uuid.UUID) (*Prescription, error) {
	doc, err := s.docs.Get(ctx, docKey(apptID))
	if err != nil {
		if errors.Is(err, redisclient.ErrDocumentNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	var p Prescription
	if err := json.Unmarshal(doc, &p); err != nil {
		return nil, fmt.Errorf("decode prescription: %w", err)
	}
	return &p, nil
}
