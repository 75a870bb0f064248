package model

import (
	"time"

	"github.com/google/uuid"
)

// History event types.
const (
	EventCheckout    = "checkout"
	EventCheckin     = "check-in"
	EventMove        = "move"
	EventReserve     = "reserve"
	EventUnreserve   = "reservation removed"
	EventDispose     = "dispose"
	EventAssetUpdate = "update"
)

// History field names.
const (
	FieldStatus           = "status"
	FieldLocation         = "location"
	FieldDepartment       = "department"
	FieldSite             = "site"
	FieldAssignedEmployee = "assignedEmployee"
)

// HistoryLog is the append-only audit trail: one row per changed field, never
// for unchanged fields. Rows are never mutated or deleted by the lifecycle
// engine — pruning is an administrative operation outside this codebase.
type HistoryLog struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	AssetID    uuid.UUID `gorm:"type:uuid;not null;index"`
	EventType  string    `gorm:"type:varchar(30);not null"`
	Field      string    `gorm:"type:varchar(30);not null"`
	ChangeFrom string    `gorm:"not null;default:''"`
	ChangeTo   string    `gorm:"not null;default:''"`
	ActionBy   string    `gorm:"not null"`
	EventDate  time.Time `gorm:"not null;index"`
	CreatedAt  time.Time
}

// TableName overrides GORM's pluralization (history_logs, not historylogs).
func (HistoryLog) TableName() string { return "history_logs" }
