package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/clinicware/clinic-api/internal/appointment"
	"github.com/clinicware/clinic-api/internal/prescription"
)

func savePrescriptionHandler(prescriptions *prescription.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var p prescription.Prescription
		if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
			writeMessage(w, http.StatusBadRequest, "could not parse JSON")
			return
		}
		if p.AppointmentID == uuid.Nil {
			writeMessage(w, http.StatusBadRequest, "appointment_id is required")
			return
		}

		if err := prescriptions.Save(r.Context(), p); err != nil {
			if errors.Is(err, appointment.ErrNotFound) {
				writeMessage(w, http.StatusNotFound, "appointment not found")
				return
			}
			writeInternal(w, err)
			return
		}
		writeMessage(w, http.StatusCreated, "prescription saved")
	}
}

func getPrescriptionHandler(prescriptions *prescription.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		apptID, err := uuid.Parse(chi.URLParam(r, "appointmentID"))
		if err != nil {
			writeMessage(w, http.StatusBadRequest, "appointment id must be a valid UUID")
			return
		}

		p, err := prescriptions.ByAppointment(r.Context(), apptID)
		if err != nil {
			if errors.Is(err, prescription.ErrNotFound) {
				writeMessage(w, http.StatusNotFound, "prescription not found")
				return
			}
			writeInternal(w, err)
			return
		}
		writeJSON(w, http.StatusOK, p)
	}
}
