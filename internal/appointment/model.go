package appointment

import (
	"time"

	"github.com/google/uuid"
)

type Status int

const (
	StatusScheduled Status = 0
	StatusCompleted Status = 1
	StatusCancelled Status = 2
)

func (s Status) String() string {
	switch s {
	case StatusScheduled:
		return "scheduled"
	case StatusCompleted:
		return "completed"
	case StatusCancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

const (
	// Duration is the implicit length of every appointment.
	Duration = time.Hour
	// OverlapWindow is the buffer on each side of an instant inside which no
	// other appointment for the same doctor may exist.
	OverlapWindow = 30 * time.Minute
)

// DailyTemplate is the fixed set of bookable times of day, hourly from 08:00
// with a midday gap. Template order is the order availability results come
// back in.
var DailyTemplate = []string{
	"08:00",
	"09:00",
	"10:00",
	"11:00",
	"13:00",
	"14:00",
	"15:00",
	"16:00",
}

// SlotFormat renders an instant as a template slot.
const SlotFormat = "15:04"

type Appointment struct {
	ID        uuid.UUID
	DoctorID  uuid.UUID
	PatientID uuid.UUID
	Time      time.Time
	Status    Status
	CreatedAt time.Time
	UpdatedAt time.Time
}

// End is the appointment's end instant under the fixed duration.
func (a Appointment) End() time.Time {
	return a.Time.Add(Duration)
}

// Detail is an appointment hydrated with the names callers render.
type Detail struct {
	Appointment
	DoctorName     string
	PatientName    string
	PatientEmail   string
	PatientPhone   string
	PatientAddress string
}
