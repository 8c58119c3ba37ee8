package api

import (
	"time"

	"github.com/google/uuid"

	"github.com/clinicware/clinic-api/internal/account"
	"github.com/clinicware/clinic-api/internal/appointment"
)

type AdminLoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type TokenResponse struct {
	Token string `json:"token"`
}

type RegisterPatientRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
}

type DoctorRequest struct {
	Name           string   `json:"name"`
	Email          string   `json:"email"`
	Password       string   `json:"password,omitempty"`
	Specialty      string   `json:"specialty"`
	AvailableTimes []string `json:"available_times"`
}

type DoctorResponse struct {
	ID             uuid.UUID `json:"id"`
	Name           string    `json:"name"`
	Email          string    `json:"email"`
	Specialty      string    `json:"specialty"`
	AvailableTimes []string  `json:"available_times"`
}

func toDoctorResponse(d account.Doctor) DoctorResponse {
	return DoctorResponse{
		ID:             d.ID,
		Name:           d.Name,
		Email:          d.Email,
		Specialty:      d.Specialty,
		AvailableTimes: d.AvailableTimes,
	}
}

type DoctorListResponse struct {
	Doctors []DoctorResponse `json:"doctors"`
}

func toDoctorListResponse(doctors []account.Doctor) DoctorListResponse {
	out := DoctorListResponse{Doctors: make([]DoctorResponse, 0, len(doctors))}
	for _, d := range doctors {
		out.Doctors = append(out.Doctors, toDoctorResponse(d))
	}
	return out
}

type AvailabilityResponse struct {
	DoctorID       uuid.UUID `json:"doctor_id"`
	Date           string    `json:"date"`
	AvailableTimes []string  `json:"available_times"`
}

type BookAppointmentRequest struct {
	DoctorID string    `json:"doctor_id"`
	Time     time.Time `json:"time"`
}

type UpdateAppointmentRequest struct {
	DoctorID string    `json:"doctor_id"`
	Time     time.Time `json:"time"`
	Status   int       `json:"status"`
}

type AppointmentResponse struct {
	ID          uuid.UUID `json:"id"`
	DoctorID    uuid.UUID `json:"doctor_id"`
	PatientID   uuid.UUID `json:"patient_id"`
	Time        time.Time `json:"time"`
	Status      string    `json:"status"`
	DoctorName  string    `json:"doctor_name,omitempty"`
	PatientName string    `json:"patient_name,omitempty"`
}

func toAppointmentResponse(a appointment.Appointment) AppointmentResponse {
	return AppointmentResponse{
		ID:        a.ID,
		DoctorID:  a.DoctorID,
		PatientID: a.PatientID,
		Time:      a.Time,
		Status:    a.Status.String(),
	}
}

func toDetailResponse(d appointment.Detail) AppointmentResponse {
	resp := toAppointmentResponse(d.Appointment)
	resp.DoctorName = d.DoctorName
	resp.PatientName = d.PatientName
	return resp
}

type AppointmentListResponse struct {
	Appointments []AppointmentResponse `json:"appointments"`
}

func toAppointmentListResponse(details []appointment.Detail) AppointmentListResponse {
	out := AppointmentListResponse{Appointments: make([]AppointmentResponse, 0, len(details))}
	for _, d := range details {
		out.Appointments = append(out.Appointments, toDetailResponse(d))
	}
	return out
}

type PatientResponse struct {
	ID      uuid.UUID `json:"id"`
	Name    string    `json:"name"`
	Email   string    `json:"email"`
	Phone   string    `json:"phone"`
	Address string    `json:"address"`
}
