package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Warehouse represents a storage location for materials
type Warehouse struct {
	ID        uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	Code      string         `gorm:"size:100;unique;not null" json:"code"`
	Name      string         `gorm:"size:255;not null" json:"name"`
	Address   *string        `gorm:"type:text" json:"address,omitempty"`
	Manager   *string        `gorm:"size:255" json:"manager,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Receipts []Receipt `gorm:"foreignKey:WarehouseID" json:"-"`
}

// BeforeCreate generates a UUID before creating a new warehouse
func (w *Warehouse) BeforeCreate(tx *gorm.DB) error {
	if w.ID == uuid.Nil {
		w.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Warehouse model
func (Warehouse) TableName() string {
	return "warehouses"
}

// Project represents a construction project that exports are billed against
type Project struct {
	ID        uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	Code      string         `gorm:"size:100;unique;not null" json:"code"`
	Name      string         `gorm:"size:255;not null" json:"name"`
	Address   *string        `gorm:"type:text" json:"address,omitempty"`
	Notes     *string        `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Receipts []Receipt `gorm:"foreignKey:ProjectID" json:"-"`
}

// BeforeCreate generates a UUID before creating a new project
func (p *Project) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Project model
func (Project) TableName() string {
	return "projects"
}

// Customer represents a buyer on export receipts
type Customer struct {
	ID        uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	Name      string         `gorm:"size:255;not null" json:"name"`
	Phone     *string        `gorm:"size:50" json:"phone,omitempty"`
	Email     *string        `gorm:"size:255" json:"email,omitempty"`
	TaxCode   *string        `gorm:"size:50" json:"tax_code,omitempty"`
	Address   *string        `gorm:"type:text" json:"address,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Receipts []Receipt `gorm:"foreignKey:CustomerID" json:"-"`
}

// BeforeCreate generates a UUID before creating a new customer
func (c *Customer) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Customer model
func (Customer) TableName() string {
	return "customers"
}
