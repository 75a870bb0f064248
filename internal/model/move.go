package model

import (
	"time"

	"github.com/google/uuid"
)

// Move types. A move is an immutable audit record of a reassignment — it does
// not hold current state, only records that a transition happened. One row is
// always created per Move call, even when no field actually changed.
const (
	MoveTypeLocation   = "LocationTransfer"
	MoveTypeEmployee   = "EmployeeAssignment"
	MoveTypeDepartment = "DepartmentTransfer"
)

type Move struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	AssetID   uuid.UUID `gorm:"type:uuid;not null;index"`
	MoveType  string    `gorm:"type:varchar(30);not null"`
	MoveDate  time.Time `gorm:"not null"`
	FromValue string    `gorm:"not null;default:''"`
	ToValue   string    `gorm:"not null;default:''"`
	Notes     *string
	CreatedAt time.Time
}
