package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/clinicware/clinic-api/internal/account"
)

func adminLoginHandler(accounts *account.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req AdminLoginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeMessage(w, http.StatusBadRequest, "could not parse JSON")
			return
		}
		if req.Username == "" || req.Password == "" {
			writeMessage(w, http.StatusBadRequest, "username and password are required")
			return
		}

		tok, err := accounts.AdminLogin(r.Context(), req.Username, req.Password)
		if err != nil {
			handleLoginError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, TokenResponse{Token: tok})
	}
}

func doctorLoginHandler(accounts *account.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req LoginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeMessage(w, http.StatusBadRequest, "could not parse JSON")
			return
		}
		if req.Email == "" || req.Password == "" {
			writeMessage(w, http.StatusBadRequest, "email and password are required")
			return
		}

		tok, err := accounts.DoctorLogin(r.Context(), req.Email, req.Password)
		if err != nil {
			handleLoginError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, TokenResponse{Token: tok})
	}
}

func patientLoginHandler(accounts *account.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req LoginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeMessage(w, http.StatusBadRequest, "could not parse JSON")
			return
		}
		if req.Email == "" || req.Password == "" {
			writeMessage(w, http.StatusBadRequest, "email and password are required")
			return
		}

		tok, err := accounts.PatientLogin(r.Context(), req.Email, req.Password)
		if err != nil {
			handleLoginError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, TokenResponse{Token: tok})
	}
}

func registerPatientHandler(accounts *account.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req RegisterPatientRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeMessage(w, http.StatusBadRequest, "could not parse JSON")
			return
		}
		if req.Name == "" || req.Email == "" || req.Phone == "" {
			writeMessage(w, http.StatusBadRequest, "name, email and phone are required")
			return
		}
		if len(req.Password) < 8 {
			writeMessage(w, http.StatusBadRequest, "password must be at least 8 characters")
			return
		}

		p, err := accounts.RegisterPatient(r.Context(), req.Name, req.Email, req.Password, req.Phone, req.Address)
		if err != nil {
			if errors.Is(err, account.ErrDuplicateAccount) {
				writeMessage(w, http.StatusConflict, "a patient with this email or phone already exists")
				return
			}
			writeInternal(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, PatientResponse{
			ID:      p.ID,
			Name:    p.Name,
			Email:   p.Email,
			Phone:   p.Phone,
			Address: p.Address,
		})
	}
}

func handleLoginError(w http.ResponseWriter, err error) {
	if errors.Is(err, account.ErrInvalidCredentials) {
		writeMessage(w, http.StatusUnauthorized, "invalid credentials")
		return
	}
	writeInternal(w, err)
}
