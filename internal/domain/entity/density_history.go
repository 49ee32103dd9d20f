package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DensityHistory is one entry in the append-only density timeline of a
// material. At most one entry per material has EffectiveTo = nil; changing
// the density closes the open entry and opens a new one.
type DensityHistory struct {
	ID            uuid.UUID  `gorm:"type:uuid;primary_key" json:"id"`
	MaterialID    uuid.UUID  `gorm:"type:uuid;not null;index" json:"material_id"`
	Density       float64    `gorm:"type:decimal(10,4);not null" json:"density"`
	EffectiveFrom time.Time  `gorm:"not null;index" json:"effective_from"`
	EffectiveTo   *time.Time `gorm:"index" json:"effective_to,omitempty"`
	Reason        string     `gorm:"type:text" json:"reason"`
	CreatedBy     string     `gorm:"size:255" json:"created_by,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`

	// Relationships
	Material Material `gorm:"foreignKey:MaterialID" json:"-"`
}

// BeforeCreate generates a UUID before creating a new history entry
func (d *DensityHistory) BeforeCreate(tx *gorm.DB) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the DensityHistory model
func (DensityHistory) TableName() string {
	return "density_history"
}

// Open reports whether this entry is the currently effective one
func (d *DensityHistory) Open() bool {
	return d.EffectiveTo == nil
}

// Covers reports whether asOf falls inside [EffectiveFrom, EffectiveTo)
func (d *DensityHistory) Covers(asOf time.Time) bool {
	if asOf.Before(d.EffectiveFrom) {
		return false
	}
	return d.EffectiveTo == nil || asOf.Before(*d.EffectiveTo)
}
