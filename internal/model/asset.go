package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Asset statuses form a closed enum. The five disposal reasons double as
// terminal statuses: once an asset is disposed its status is the reason string
// and no further lifecycle transition is defined.
const (
	StatusAvailable   = "Available"
	StatusCheckedOut  = "Checked out"
	StatusReserved    = "Reserved"
	StatusLeased      = "Leased"
	StatusSold        = "Sold"
	StatusDonated     = "Donated"
	StatusScrapped    = "Scrapped"
	StatusLostMissing = "Lost/Missing"
	StatusDestroyed   = "Destroyed"
)

// DisposeReasons lists the valid arguments to Dispose, in display order.
var DisposeReasons = []string{
	StatusSold,
	StatusDonated,
	StatusScrapped,
	StatusLostMissing,
	StatusDestroyed,
}

// IsTerminalStatus reports whether s is a disposal outcome.
func IsTerminalStatus(s string) bool {
	for _, r := range DisposeReasons {
		if s == r {
			return true
		}
	}
	return false
}

// IsDisposeReason reports whether s is a valid disposal reason.
func IsDisposeReason(s string) bool { return IsTerminalStatus(s) }

// Asset is the single row per physical item. Status, Location, Department and
// Site are mutated only through lifecycle transitions; descriptive fields are
// mutated through the asset update endpoint. Location/Department/Site/Category
// hold display names — the lookup tables are the directory, the asset row is
// the source of truth for current placement (same pattern as a denormalized
// category column on a product).
type Asset struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Tag         string    `gorm:"uniqueIndex;not null"`
	Description string    `gorm:"not null"`
	Status      string    `gorm:"type:varchar(20);not null;default:'Available';index"`

	Location   string `gorm:"not null;default:''"`
	Department string `gorm:"not null;default:''"`
	Site       string `gorm:"not null;default:''"`
	Category   string `gorm:"not null;default:'';index"`

	SerialNo     *string
	Brand        *string
	ModelName    *string `gorm:"column:model_name"`
	PurchaseDate *time.Time
	Cost         *decimal.Decimal `gorm:"type:decimal(12,2)"`

	Active    bool `gorm:"not null;default:true"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
