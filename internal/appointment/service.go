package appointment

import (
	"context"
	"errors"
	"fmt"
	"log"
	"slices"
	"time"

	"github.com/google/uuid"

	redisclient "github.com/clinicware/clinic-api/internal/redis"
)

var (
	ErrOwnershipMismatch = errors.New("appointment belongs to another patient")
	ErrSlotUnavailable   = errors.New("requested time slot is not available")
	ErrSlotConflict      = errors.New("doctor is not available at this time")
	ErrSlotBeingBooked   = errors.New("slot is currently being booked, please retry")
	ErrInvalidCondition  = errors.New("condition must be past or future")
)

type Service struct {
	repo    Repository
	doctors DoctorDirectory
	locker  redisclient.Locker
}

func NewService(repo Repository, doctors DoctorDirectory, locker redisclient.Locker) *Service {
	return &Service{
		repo:    repo,
		doctors: doctors,
		locker:  locker,
	}
}

// Availability computes the doctor's free slots on a date: the daily template
// restricted to the doctor's configured times, minus the times of day already
// booked that date. Template order is preserved.
func (s *Service) Availability(ctx context.Context, doctorID uuid.UUID, date time.Time) ([]string, error) {
	doctor, err := s.doctors.GetDoctorByID(ctx, doctorID)
	if err != nil {
		return nil, err
	}

	from, to := dayBounds(date)
	booked, err := s.repo.ListForDoctorBetween(ctx, doctorID, from, to, "")
	if err != nil {
		return nil, fmt.Errorf("load booked appointments: %w", err)
	}

	taken := make(map[string]bool, len(booked))
	for _, b := range booked {
		taken[b.Time.Format(SlotFormat)] = true
	}

	free := make([]string, 0, len(DailyTemplate))
	for _, slot := range DailyTemplate {
		if slices.Contains(doctor.AvailableTimes, slot) && !taken[slot] {
			free = append(free, slot)
		}
	}
	return free, nil
}

// ValidateBooking checks the proposed instant against the doctor's configured
// available times. It checks configuration membership only; the overlap check
// against live bookings happens inside Book and Update.
func (s *Service) ValidateBooking(ctx context.Context, doctorID uuid.UUID, at time.Time) error {
	doctor, err := s.doctors.GetDoctorByID(ctx, doctorID)
	if err != nil {
		return err
	}
	if !slices.Contains(doctor.AvailableTimes, at.Format(SlotFormat)) {
		return ErrSlotUnavailable
	}
	return nil
}

// Book inserts a scheduled appointment. The per doctor+instant lock and the
// overlap re-check inside it keep two concurrent requests for the same slot
// from both committing; a partial unique index on (doctor_id,
// appointment_time) backstops the lock.
func (s *Service) Book(ctx context.Context, doctorID, patientID uuid.UUID, at time.Time) (*Appointment, error) {
	if err := s.ValidateBooking(ctx, doctorID, at); err != nil {
		return nil, err
	}

	var created *Appointment

	err := s.locker.WithBookingLock(ctx, doctorID, at, func(lockCtx context.Context) error {
		taken, err := s.repo.HasOverlap(lockCtx, doctorID, at, uuid.Nil)
		if err != nil {
			return fmt.Errorf("check overlap: %w", err)
		}
		if taken {
			return ErrSlotConflict
		}

		a := &Appointment{
			ID:        uuid.New(),
			DoctorID:  doctorID,
			PatientID: patientID,
			Time:      at,
			Status:    StatusScheduled,
		}
		if err := s.repo.Create(lockCtx, a); err != nil {
			return err
		}
		created = a
		return nil
	})
	if err != nil {
		if errors.Is(err, redisclient.ErrLockNotAcquired) {
			return nil, ErrSlotBeingBooked
		}
		return nil, err
	}

	return created, nil
}

// Update moves an appointment to a new doctor, time and status. Only the
// owning patient may update, and the new instant must clear the overlap
// window against the doctor's other appointments; the record under update
// does not count against itself.
func (s *Service) Update(ctx context.Context, apptID, requestingPatientID, newDoctorID uuid.UUID, newTime time.Time, newStatus Status) (*Appointment, error) {
	existing, err := s.repo.GetByID(ctx, apptID)
	if err != nil {
		return nil, err
	}
	if existing.PatientID != requestingPatientID {
		return nil, ErrOwnershipMismatch
	}

	if _, err := s.doctors.GetDoctorByID(ctx, newDoctorID); err != nil {
		return nil, err
	}

	err = s.locker.WithBookingLock(ctx, newDoctorID, newTime, func(lockCtx context.Context) error {
		taken, err := s.repo.HasOverlap(lockCtx, newDoctorID, newTime, apptID)
		if err != nil {
			return fmt.Errorf("check overlap: %w", err)
		}
		if taken {
			return ErrSlotConflict
		}

		existing.Time = newTime
		existing.DoctorID = newDoctorID
		existing.Status = newStatus
		return s.repo.Update(lockCtx, existing)
	})
	if err != nil {
		if errors.Is(err, redisclient.ErrLockNotAcquired) {
			return nil, ErrSlotBeingBooked
		}
		return nil, err
	}

	return existing, nil
}

// Cancel is an ownership-checked soft delete: the appointment keeps its row
// but stops counting toward availability, overlap and listings.
func (s *Service) Cancel(ctx context.Context, apptID, requestingPatientID uuid.UUID) error {
	existing, err := s.repo.GetByID(ctx, apptID)
	if err != nil {
		return err
	}
	if existing.PatientID != requestingPatientID {
		return ErrOwnershipMismatch
	}
	if existing.Status == StatusCancelled {
		return ErrNotFound
	}
	return s.repo.UpdateStatus(ctx, apptID, StatusCancelled)
}

// ListForDoctor returns the doctor's appointments on a day, optionally
// filtered by patient-name substring.
func (s *Service) ListForDoctor(ctx context.Context, doctorID uuid.UUID, day time.Time, patientName string) ([]Detail, error) {
	from, to := dayBounds(day)
	return s.repo.ListForDoctorBetween(ctx, doctorID, from, to, patientName)
}

// ListForPatient returns the patient's appointment history. condition is
// "future" (scheduled), "past" (completed) or empty; doctorName is an
// optional substring filter.
func (s *Service) ListForPatient(ctx context.Context, patientID uuid.UUID, condition, doctorName string) ([]Detail, error) {
	var status *Status
	switch condition {
	case "":
	case "future":
		st := StatusScheduled
		status = &st
	case "past":
		st := StatusCompleted
		status = &st
	default:
		return nil, fmt.Errorf("%w: got %q", ErrInvalidCondition, condition)
	}
	return s.repo.ListForPatient(ctx, patientID, status, doctorName)
}

// SetStatus overwrites the status without ownership checks. Callers must have
// authorized the actor already; the prescription flow uses this to mark an
// appointment completed.
func (s *Service) SetStatus(ctx context.Context, apptID uuid.UUID, status Status) error {
	return s.repo.UpdateStatus(ctx, apptID, status)
}

// CompletePastAppointments is intended to be called by the worker
// periodically.
func (s *Service) CompletePastAppointments(ctx context.Context, now time.Time) error {
	n, err := s.repo.CompletePast(ctx, now)
	if err != nil {
		return err
	}
	if n > 0 {
		log.Printf("marked %d past appointments completed", n)
	}
	return nil
}

func dayBounds(date time.Time) (time.Time, time.Time) {
	y, m, d := date.Date()
	start := time.Date(y, m, d, 0, 0, 0, 0, date.Location())
	end := time.Date(y, m, d, 23, 59, 59, 0, date.Location())
	return start, end
}
