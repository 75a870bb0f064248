package model

import (
	"time"

	"github.com/google/uuid"
)

// Reservation holds an asset for an employee or a department. Reservations are
// independent of checkouts and leases; several may exist for one asset. The
// asset status flips to Reserved on the first active reservation and back to
// Available only when the last one is removed.
const (
	ReservationTypeEmployee   = "Employee"
	ReservationTypeDepartment = "Department"
)

type Reservation struct {
	ID              uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	AssetID         uuid.UUID  `gorm:"type:uuid;not null;index"`
	ReservationType string     `gorm:"type:varchar(20);not null"`
	EmployeeID      *uuid.UUID `gorm:"type:uuid"`
	Department      *string
	ReservationDate time.Time `gorm:"not null"`
	Notes           *string
	CreatedAt       time.Time

	Employee *Employee `gorm:"foreignKey:EmployeeID"`
}
