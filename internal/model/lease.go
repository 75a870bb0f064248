package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Lease links an asset to an external lessee. A lease is "active" while no
// LeaseReturn references it and (LeaseEndDate is null or >= the reference
// date). At most one active lease per asset.
type Lease struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	AssetID        uuid.UUID `gorm:"type:uuid;not null;index"`
	Lessee         string    `gorm:"not null"`
	LeaseStartDate time.Time `gorm:"not null;index"`
	LeaseEndDate   *time.Time
	Rate           *decimal.Decimal `gorm:"type:decimal(12,2)"`
	Notes          *string
	CreatedAt      time.Time

	Return *LeaseReturn `gorm:"foreignKey:LeaseID"`
}

// LeaseReturn closes exactly one Lease.
type LeaseReturn struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	LeaseID    uuid.UUID `gorm:"type:uuid;uniqueIndex;not null"`
	AssetID    uuid.UUID `gorm:"type:uuid;not null;index"`
	ReturnDate time.Time `gorm:"not null"`
	Notes      *string
	CreatedAt  time.Time
}
