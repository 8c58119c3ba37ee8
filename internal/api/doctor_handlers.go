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

func listDoctorsHandler(accounts *account.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		doctors, err := accounts.Doctors(r.Context())
		if err != nil {
			writeInternal(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toDoctorListResponse(doctors))
	}
}

func filterDoctorsHandler(accounts *account.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		name := optionalParam(q.Get("name"))
		specialty := optionalParam(q.Get("specialty"))
		period := optionalParam(q.Get("time"))

		doctors, err := accounts.FilterDoctors(r.Context(), name, specialty, period)
		if err != nil {
			if errors.Is(err, account.ErrInvalidTimePeriod) {
				writeMessage(w, http.StatusBadRequest, err.Error())
				return
			}
			writeInternal(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toDoctorListResponse(doctors))
	}
}

func doctorAvailabilityHandler(appts *appointment.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		doctorID, err := uuid.Parse(chi.URLParam(r, "id"))
		if err != nil {
			writeMessage(w, http.StatusBadRequest, "doctor id must be a valid UUID")
			return
		}
		date, err := time.Parse("2006-01-02", r.URL.Query().Get("date"))
		if err != nil {
			writeMessage(w, http.StatusBadRequest, "invalid date format, use YYYY-MM-DD")
			return
		}

		free, err := appts.Availability(r.Context(), doctorID, date)
		if err != nil {
			if errors.Is(err, account.ErrDoctorNotFound) {
				writeMessage(w, http.StatusNotFound, "doctor not found")
				return
			}
			writeInternal(w, err)
			return
		}

		writeJSON(w, http.StatusOK, AvailabilityResponse{
			DoctorID:       doctorID,
			Date:           date.Format("2006-01-02"),
			AvailableTimes: free,
		})
	}
}

func createDoctorHandler(accounts *account.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req DoctorRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeMessage(w, http.StatusBadRequest, "could not parse JSON")
			return
		}
		if req.Name == "" || req.Email == "" {
			writeMessage(w, http.StatusBadRequest, "name and email are required")
			return
		}
		if len(req.Password) < 8 {
			writeMessage(w, http.StatusBadRequest, "password must be at least 8 characters")
			return
		}
		if err := validateSlots(req.AvailableTimes); err != nil {
			writeMessage(w, http.StatusBadRequest, err.Error())
			return
		}

		d, err := accounts.CreateDoctor(r.Context(), req.Name, req.Email, req.Password, req.Specialty, req.AvailableTimes)
		if err != nil {
			if errors.Is(err, account.ErrDuplicateAccount) {
				writeMessage(w, http.StatusConflict, "a doctor with this email already exists")
				return
			}
			writeInternal(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, toDoctorResponse(*d))
	}
}

func updateDoctorHandler(accounts *account.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := uuid.Parse(chi.URLParam(r, "id"))
		if err != nil {
			writeMessage(w, http.StatusBadRequest, "doctor id must be a valid UUID")
			return
		}
		var req DoctorRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeMessage(w, http.StatusBadRequest, "could not parse JSON")
			return
		}
		if err := validateSlots(req.AvailableTimes); err != nil {
			writeMessage(w, http.StatusBadRequest, err.Error())
			return
		}

		d, err := accounts.UpdateDoctor(r.Context(), id, req.Name, req.Email, req.Specialty, req.AvailableTimes)
		if err != nil {
			if errors.Is(err, account.ErrDoctorNotFound) {
				writeMessage(w, http.StatusNotFound, "doctor not found")
				return
			}
			writeInternal(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toDoctorResponse(*d))
	}
}

func deleteDoctorHandler(accounts *account.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := uuid.Parse(chi.URLParam(r, "id"))
		if err != nil {
			writeMessage(w, http.StatusBadRequest, "doctor id must be a valid UUID")
			return
		}

		if err := accounts.DeleteDoctor(r.Context(), id); err != nil {
			if errors.Is(err, account.ErrDoctorNotFound) {
				writeMessage(w, http.StatusNotFound, "doctor not found")
				return
			}
			writeInternal(w, err)
			return
		}
		writeMessage(w, http.StatusOK, "doctor deleted")
	}
}

func optionalParam(v string) *string {
	if v == "" {
		return nil
	}
	return &v
}

// validateSlots requires every configured time to be one of the daily
// template slots.
func validateSlots(slots []string) error {
	for _, s := range slots {
		ok := false
		for _, t := range appointment.DailyTemplate {
			if s == t {
				ok = true
				break
			}
		}
		if !ok {
			return errors.New("available time " + s + " is not a valid slot")
		}
	}
	return nil
}
