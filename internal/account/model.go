package account

import (
	"time"

	"github.com/google/uuid"
)

type Admin struct {
	ID           uuid.UUID
	Username     string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Doctor carries its configured bookable times of day as "HH:MM" strings,
// ordered. The daily template in the appointment package bounds what a
// configured time can be on any given date.
type Doctor struct {
	ID             uuid.UUID
	Name           string
	Email          string
	PasswordHash   string
	Specialty      string
	AvailableTimes []string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

type Patient struct {
	ID           uuid.UUID
	Name         string
	Email        string
	PasswordHash string
	Phone        string
	Address      string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
