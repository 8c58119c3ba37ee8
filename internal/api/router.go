package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/clinicware/clinic-api/internal/account"
	"github.com/clinicware/clinic-api/internal/appointment"
	"github.com/clinicware/clinic-api/internal/prescription"
	"github.com/clinicware/clinic-api/internal/token"
)

type RouterConfig struct {
	Accounts      *account.Service
	Appointments  *appointment.Service
	Prescriptions *prescription.Service
	Tokens        *token.Service
	LoginLimiter  *RateLimiter
	PgPool        *pgxpool.Pool
	Redis         *redis.Client
	Env           string
	Version       string
}

func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	r.Use(RequestIDMiddleware)
	r.Use(LoggingMiddleware)

	// Health endpoints
	health := NewHealthHandler(cfg.PgPool, cfg.Redis, cfg.Env, cfg.Version)
	r.Get("/health/live", health.Liveness)
	r.Get("/health/ready", health.Readiness)

	// Open endpoints: logins and registration, rate limited per client
	r.Group(func(r chi.Router) {
		r.Use(RateLimit(cfg.LoginLimiter))
		r.Post("/admin/login", adminLoginHandler(cfg.Accounts))
		r.Post("/doctor/login", doctorLoginHandler(cfg.Accounts))
		r.Post("/patient/login", patientLoginHandler(cfg.Accounts))
		r.Post("/patient/register", registerPatientHandler(cfg.Accounts))
	})

	// Open doctor directory
	r.Get("/doctors", listDoctorsHandler(cfg.Accounts))
	r.Get("/doctors/filter", filterDoctorsHandler(cfg.Accounts))

	// Any authenticated role may read availability
	r.Group(func(r chi.Router) {
		r.Use(RequireAnyRole(cfg.Tokens, token.RolePatient, token.RoleDoctor, token.RoleAdmin))
		r.Get("/doctors/{id}/availability", doctorAvailabilityHandler(cfg.Appointments))
	})

	// Admin: doctor management
	r.Group(func(r chi.Router) {
		r.Use(RequireRole(cfg.Tokens, token.RoleAdmin))
		r.Post("/doctors", createDoctorHandler(cfg.Accounts))
		r.Put("/doctors/{id}", updateDoctorHandler(cfg.Accounts))
		r.Delete("/doctors/{id}", deleteDoctorHandler(cfg.Accounts))
	})

	// Doctor: day schedule and prescriptions
	r.Group(func(r chi.Router) {
		r.Use(RequireRole(cfg.Tokens, token.RoleDoctor))
		r.Get("/appointments", doctorAppointmentsHandler(cfg.Appointments, cfg.Accounts))
		r.Post("/prescriptions", savePrescriptionHandler(cfg.Prescriptions))
		r.Get("/prescriptions/{appointmentID}", getPrescriptionHandler(cfg.Prescriptions))
	})

	// Patient: booking lifecycle and own records
	r.Group(func(r chi.Router) {
		r.Use(RequireRole(cfg.Tokens, token.RolePatient))
		r.Post("/appointments", bookAppointmentHandler(cfg.Appointments, cfg.Accounts))
		r.Put("/appointments/{id}", updateAppointmentHandler(cfg.Appointments, cfg.Accounts))
		r.Delete("/appointments/{id}", cancelAppointmentHandler(cfg.Appointments, cfg.Accounts))
		r.Get("/patient/appointments", patientAppointmentsHandler(cfg.Appointments, cfg.Accounts))
		r.Get("/patient/me", patientDetailsHandler(cfg.Accounts))
	})

	return r
}
