package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Disposal is the terminal record for an asset. Disposing sets the asset
// status to the disposal reason string and clears location/department/site.
// There is no reverse transition.
type Disposal struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	AssetID     uuid.UUID `gorm:"type:uuid;not null;index"`
	DisposeDate time.Time `gorm:"not null"`
	Reason      string    `gorm:"type:varchar(20);not null"`
	ReasonText  *string
	// Value is the sale value when Reason is Sold.
	Value     *decimal.Decimal `gorm:"type:decimal(12,2)"`
	Notes     *string
	CreatedAt time.Time
}
