package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Maintenance statuses.
const (
	MaintenanceScheduled = "scheduled"
	MaintenanceCompleted = "completed"
)

// Schedule frequencies for recurring maintenance.
const (
	FrequencyDaily     = "daily"
	FrequencyWeekly    = "weekly"
	FrequencyMonthly   = "monthly"
	FrequencyQuarterly = "quarterly"
	FrequencyYearly    = "yearly"
)

// Maintenance is one service event for an asset, either created directly or
// spawned by a recurring schedule.
type Maintenance struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	AssetID       uuid.UUID `gorm:"type:uuid;not null;index"`
	ScheduleID    *uuid.UUID `gorm:"type:uuid;index"`
	Title         string    `gorm:"not null"`
	Details       *string
	Status        string    `gorm:"type:varchar(20);not null;default:'scheduled'"`
	DueDate       time.Time `gorm:"not null;index"`
	CompletedDate *time.Time
	Cost          *decimal.Decimal `gorm:"type:decimal(12,2)"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// MaintenanceSchedule generates Maintenance rows on a recurrence. NextRunAt is
// advanced by the cron worker each time a row is spawned.
type MaintenanceSchedule struct {
	ID      uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	AssetID uuid.UUID `gorm:"type:uuid;not null;index"`
	Title   string    `gorm:"not null"`
	Details *string

	Frequency string `gorm:"type:varchar(20);not null"`
	// DayOfWeek: 0=Sunday..6=Saturday, weekly only.
	DayOfWeek *int
	// DayOfMonth: 1..31, monthly/quarterly/yearly; clamped to month length.
	DayOfMonth *int
	// MonthOfYear: 1..12, yearly only.
	MonthOfYear *int

	NextRunAt   time.Time `gorm:"not null;index"`
	NotifyEmail *string
	Active      bool `gorm:"not null;default:true"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
