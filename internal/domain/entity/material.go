package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Material represents a construction material in the registry.
// CurrentDensity is a denormalized cache of the open density-history entry;
// the two are only ever updated together (see MaterialService.UpdateDensity).
type Material struct {
	ID             uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	CategoryID     *uuid.UUID     `gorm:"type:uuid;index" json:"category_id,omitempty"`
	Code           string         `gorm:"size:100;unique;not null" json:"code"`
	Name           string         `gorm:"size:255;not null" json:"name"`
	PrimaryUnit    string         `gorm:"size:50;not null" json:"primary_unit"`
	SecondaryUnit  string         `gorm:"size:50;not null" json:"secondary_unit"`
	CurrentDensity float64        `gorm:"type:decimal(10,4);not null" json:"current_density"`
	Notes          *string        `gorm:"type:text" json:"notes,omitempty"`
	CreatedBy      string         `gorm:"size:255" json:"created_by,omitempty"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Category       *MaterialCategory `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	DensityHistory []DensityHistory  `gorm:"foreignKey:MaterialID" json:"-"`
}

// BeforeCreate generates a UUID before creating a new material
func (m *Material) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Material model
func (Material) TableName() string {
	return "materials"
}

// MaterialCategory represents a material category
type MaterialCategory struct {
	ID        uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	Name      string         `gorm:"size:255;unique;not null" json:"name"`
	Slug      string         `gorm:"size:255;unique;not null" json:"slug"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Materials []Material `gorm:"foreignKey:CategoryID" json:"-"`
}

// BeforeCreate generates a UUID before creating a new category
func (c *MaterialCategory) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the MaterialCategory model
func (MaterialCategory) TableName() string {
	return "material_categories"
}

// Unit represents a unit of measurement (e.g. Tấn, m³)
type Unit struct {
	ID        uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	Name      string         `gorm:"size:255;unique;not null" json:"name"`
	ShortCode string         `gorm:"size:50" json:"short_code"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// BeforeCreate generates a UUID before creating a new unit
func (u *Unit) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Unit model
func (Unit) TableName() string {
	return "units"
}
