package model

import (
	"time"

	"github.com/google/uuid"
)

// Checkout links an asset to an employee. A checkout is "active" while no
// Checkin row references it and its EmployeeID is non-null. The engine — not
// the database — enforces that at most one active checkout exists per asset.
type Checkout struct {
	ID                 uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	AssetID            uuid.UUID  `gorm:"type:uuid;not null;index"`
	EmployeeID         *uuid.UUID `gorm:"type:uuid;index"`
	CheckoutDate       time.Time  `gorm:"not null;index"`
	ExpectedReturnDate *time.Time
	Notes              *string
	CreatedAt          time.Time

	Asset    *Asset    `gorm:"foreignKey:AssetID"`
	Employee *Employee `gorm:"foreignKey:EmployeeID"`
	Checkin  *Checkin  `gorm:"foreignKey:CheckoutID"`
}

// Checkin closes exactly one Checkout. Created once per active checkout being
// closed; disposal synthesizes one with a disposal note.
type Checkin struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CheckoutID  uuid.UUID `gorm:"type:uuid;uniqueIndex;not null"`
	AssetID     uuid.UUID `gorm:"type:uuid;not null;index"`
	CheckinDate time.Time `gorm:"not null"`
	Condition   *string
	Notes       *string
	CreatedAt   time.Time
}
