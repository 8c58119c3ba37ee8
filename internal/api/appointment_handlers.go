package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/clinicware/clinic-api/internal/account"
	"github.com/clinicware/clinic-api/internal/appointment"
)

// callerPatientID resolves the authorized identity to the patient primary
// key for ownership checks.
func callerPatientID(w http.ResponseWriter, r *http.Request, accounts *account.Service) (uuid.UUID, bool) {
	patientID, err := accounts.PatientIDByEmail(r.Context(), Identity(r.Context()))
	if err != nil {
		if errors.Is(err, account.ErrPatientNotFound) {
			writeMessage(w, http.StatusUnauthorized, "no patient account for token identity")
			return uuid.Nil, false
		}
		writeInternal(w, err)
		return uuid.Nil, false
	}
	return patientID, true
}

func callerDoctorID(w http.ResponseWriter, r *http.Request, accounts *account.Service) (uuid.UUID, bool) {
	doctorID, err := accounts.DoctorIDByEmail(r.Context(), Identity(r.Context()))
	if err != nil {
		if errors.Is(err, account.ErrDoctorNotFound) {
			writeMessage(w, http.StatusUnauthorized, "no doctor account for token identity")
			return uuid.Nil, false
		}
		writeInternal(w, err)
		return uuid.Nil, false
	}
	return doctorID, true
}

func bookAppointmentHandler(appts *appointment.Service, accounts *account.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req BookAppointmentRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeMessage(w, http.StatusBadRequest, "could not parse JSON")
			return
		}
		doctorID, err := uuid.Parse(req.DoctorID)
		if err != nil {
			writeMessage(w, http.StatusBadRequest, "doctor_id must be a valid UUID")
			return
		}
		if req.Time.IsZero() {
			writeMessage(w, http.StatusBadRequest, "time is required")
			return
		}

		patientID, ok := callerPatientID(w, r, accounts)
		if !ok {
			return
		}

		a, err := appts.Book(r.Context(), doctorID, patientID, req.Time)
		if err != nil {
			handleBookingError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, toAppointmentResponse(*a))
	}
}

func updateAppointmentHandler(appts *appointment.Service, accounts *account.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		apptID, err := uuid.Parse(chi.URLParam(r, "id"))
		if err != nil {
			writeMessage(w, http.StatusBadRequest, "appointment id must be a valid UUID")
			return
		}
		var req UpdateAppointmentRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeMessage(w, http.StatusBadRequest, "could not parse JSON")
			return
		}
		doctorID, err := uuid.Parse(req.DoctorID)
		if err != nil {
			writeMessage(w, http.StatusBadRequest, "doctor_id must be a valid UUID")
			return
		}
		if req.Time.IsZero() {
			writeMessage(w, http.StatusBadRequest, "time is required")
			return
		}
		status := appointment.Status(req.Status)
		switch status {
		case appointment.StatusScheduled, appointment.StatusCompleted, appointment.StatusCancelled:
		default:
			writeMessage(w, http.StatusBadRequest, "invalid status")
			return
		}

		patientID, ok := callerPatientID(w, r, accounts)
		if !ok {
			return
		}

		a, err := appts.Update(r.Context(), apptID, patientID, doctorID, req.Time, status)
		if err != nil {
			handleBookingError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toAppointmentResponse(*a))
	}
}

func cancelAppointmentHandler(appts *appointment.Service, accounts *account.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		apptID, err := uuid.Parse(chi.URLParam(r, "id"))
		if err != nil {
			writeMessage(w, http.StatusBadRequest, "appointment id must be a valid UUID")
			return
		}

		patientID, ok := callerPatientID(w, r, accounts)
		if !ok {
			return
		}

		if err := appts.Cancel(r.Context(), apptID, patientID); err != nil {
			handleBookingError(w, err)
			return
		}
		writeMessage(w, http.StatusOK, "appointment cancelled")
	}
}

func doctorAppointmentsHandler(appts *appointment.Service, accounts *account.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		date, err := time.Parse("2006-01-02", r.URL.Query().Get("date"))
		if err != nil {
			writeMessage(w, http.StatusBadRequest, "invalid date format, use YYYY-MM-DD")
			return
		}
		patientName := r.URL.Query().Get("patientName")

		doctorID, ok := callerDoctorID(w, r, accounts)
		if !ok {
			return
		}

		details, err := appts.ListForDoctor(r.Context(), doctorID, date, patientName)
		if err != nil {
			writeInternal(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toAppointmentListResponse(details))
	}
}

func patientAppointmentsHandler(appts *appointment.Service, accounts *account.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		condition := r.URL.Query().Get("condition")
		doctorName := r.URL.Query().Get("doctor")

		patientID, ok := callerPatientID(w, r, accounts)
		if !ok {
			return
		}

		details, err := appts.ListForPatient(r.Context(), patientID, condition, doctorName)
		if err != nil {
			if errors.Is(err, appointment.ErrInvalidCondition) {
				writeMessage(w, http.StatusBadRequest, err.Error())
				return
			}
			writeInternal(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toAppointmentListResponse(details))
	}
}

func patientDetailsHandler(accounts *account.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, err := accounts.PatientByEmail(r.Context(), Identity(r.Context()))
		if err != nil {
			if errors.Is(err, account.ErrPatientNotFound) {
				writeMessage(w, http.StatusNotFound, "patient not found")
				return
			}
			writeInternal(w, err)
			return
		}
		writeJSON(w, http.StatusOK, PatientResponse{
			ID:      p.ID,
			Name:    p.Name,
			Email:   p.Email,
			Phone:   p.Phone,
			Address: p.Address,
		})
	}
}

func handleBookingError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, account.ErrDoctorNotFound):
		writeMessage(w, http.StatusBadRequest, "invalid doctor id")
	case errors.Is(err, appointment.ErrNotFound):
		writeMessage(w, http.StatusNotFound, "appointment not found")
	case errors.Is(err, appointment.ErrOwnershipMismatch):
		writeMessage(w, http.StatusUnauthorized, "appointment belongs to another patient")
	case errors.Is(err, appointment.ErrSlotUnavailable):
		writeMessage(w, http.StatusConflict, "requested time slot is not available")
	case errors.Is(err, appointment.ErrSlotConflict):
		writeMessage(w, http.StatusConflict, "doctor is not available at this time")
	case errors.Is(err, appointment.ErrSlotBeingBooked):
		writeMessage(w, http.StatusConflict, "slot is currently being booked, please retry shortly")
	default:
		writeInternal(w, err)
	}
}
