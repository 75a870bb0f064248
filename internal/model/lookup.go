package model

import (
	"time"

	"github.com/google/uuid"
)

// Lookup tables are the directories for the denormalized name columns on
// Asset. They share one shape, so they share one struct via embedding.

type lookupBase struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name        string    `gorm:"uniqueIndex;not null"`
	Description *string
	Active      bool `gorm:"not null;default:true"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Accessors promoted to all lookup types so the generic service layer can
// operate on them without reflection.
func (b *lookupBase) GetID() uuid.UUID         { return b.ID }
func (b *lookupBase) GetName() string          { return b.Name }
func (b *lookupBase) GetDescription() *string  { return b.Description }
func (b *lookupBase) IsActive() bool           { return b.Active }
func (b *lookupBase) SetName(name string)      { b.Name = name }
func (b *lookupBase) SetDescription(d *string) { b.Description = d }
func (b *lookupBase) SetActive(active bool)    { b.Active = active }

type Site struct{ lookupBase }

type Location struct {
	lookupBase
	SiteID *uuid.UUID `gorm:"type:uuid;index"`
}

type Department struct{ lookupBase }

type Category struct{ lookupBase }

func (Category) TableName() string { return "categories" }
