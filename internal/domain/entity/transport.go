package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Vehicle represents a transport unit (truck) used for deliveries
type Vehicle struct {
	ID          uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	PlateNumber string         `gorm:"size:50;unique;not null" json:"plate_number"`
	DriverName  *string        `gorm:"size:255" json:"driver_name,omitempty"`
	Capacity    *float64       `gorm:"type:decimal(10,2)" json:"capacity,omitempty"`
	Notes       *string        `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

// BeforeCreate generates a UUID before creating a new vehicle
func (v *Vehicle) BeforeCreate(tx *gorm.DB) error {
	if v.ID == uuid.Nil {
		v.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Vehicle model
func (Vehicle) TableName() string {
	return "vehicles"
}

// TransportRecord associates a receipt with a vehicle trip. It carries its own
// quantity, price and fee for logistics costing; it never feeds inventory.
// The unique index on ReceiptID enforces at most one record per receipt.
type TransportRecord struct {
	ID        uuid.UUID  `gorm:"type:uuid;primary_key" json:"id"`
	ReceiptID uuid.UUID  `gorm:"type:uuid;uniqueIndex;not null" json:"receipt_id"`
	VehicleID *uuid.UUID `gorm:"type:uuid;index" json:"vehicle_id,omitempty"`
	Quantity  float64    `gorm:"type:decimal(15,3);default:0" json:"quantity"`
	UnitPrice float64    `gorm:"type:decimal(18,2);default:0" json:"unit_price"`
	Fee       float64    `gorm:"type:decimal(18,2);default:0" json:"fee"`
	Notes     *string    `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`

	// Relationships
	Receipt Receipt  `gorm:"foreignKey:ReceiptID" json:"-"`
	Vehicle *Vehicle `gorm:"foreignKey:VehicleID" json:"vehicle,omitempty"`
}

// BeforeCreate generates a UUID before creating a new transport record
func (t *TransportRecord) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the TransportRecord model
func (TransportRecord) TableName() string {
	return "transport_records"
}
