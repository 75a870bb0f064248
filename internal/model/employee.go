package model

import (
	"time"

	"github.com/google/uuid"
)

// Employee is a person assets get checked out to. Not a system user — system
// users live in the users table and authenticate; employees are directory
// entries referenced by checkouts and reservations.
type Employee struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name       string    `gorm:"not null;index"`
	Email      *string
	Title      *string
	Department *string
	Active     bool `gorm:"not null;default:true"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
