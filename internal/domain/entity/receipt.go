package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/vlxsoft/materials-api/internal/domain/enum"
	"gorm.io/gorm"
)

// Receipt is the header of a purchase or export movement. TotalAmount and the
// two quantity totals are cached sums over the line items; they are recomputed
// and overwritten whenever the items change, never patched incrementally.
type Receipt struct {
	ID          uuid.UUID        `gorm:"type:uuid;primary_key" json:"id"`
	Type        enum.ReceiptType `gorm:"not null;index" json:"type"`
	ReceiptNo   string           `gorm:"size:100;unique;not null" json:"receipt_no"`
	ReceiptDate time.Time        `gorm:"type:date;not null;index" json:"receipt_date"`
	WarehouseID uuid.UUID        `gorm:"type:uuid;not null;index" json:"warehouse_id"`
	ProjectID   *uuid.UUID       `gorm:"type:uuid;index" json:"project_id,omitempty"`
	CustomerID  *uuid.UUID       `gorm:"type:uuid;index" json:"customer_id,omitempty"`
	Notes       *string          `gorm:"type:text" json:"notes,omitempty"`
	CreatedBy   string           `gorm:"size:255" json:"created_by,omitempty"`

	TotalAmount            float64 `gorm:"type:decimal(18,2);default:0" json:"total_amount"`
	TotalQuantityPrimary   float64 `gorm:"type:decimal(15,3);default:0" json:"total_quantity_primary"`
	TotalQuantitySecondary float64 `gorm:"type:decimal(15,3);default:0" json:"total_quantity_secondary"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Warehouse Warehouse        `gorm:"foreignKey:WarehouseID" json:"warehouse,omitempty"`
	Project   *Project         `gorm:"foreignKey:ProjectID" json:"project,omitempty"`
	Customer  *Customer        `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
	Items     []ReceiptItem    `gorm:"foreignKey:ReceiptID" json:"items,omitempty"`
	Transport *TransportRecord `gorm:"foreignKey:ReceiptID" json:"transport,omitempty"`
}

// BeforeCreate generates a UUID before creating a new receipt
func (r *Receipt) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Receipt model
func (Receipt) TableName() string {
	return "receipts"
}

// ReceiptItem is a single material movement within a receipt. DensityUsed is
// the density in effect at the receipt date, frozen at creation; the derived
// quantity is never recomputed when the material's current density changes.
type ReceiptItem struct {
	ID                uuid.UUID        `gorm:"type:uuid;primary_key" json:"id"`
	ReceiptID         uuid.UUID        `gorm:"type:uuid;not null;index" json:"receipt_id"`
	MaterialID        uuid.UUID        `gorm:"type:uuid;not null;index" json:"material_id"`
	EnteredUnit       enum.EnteredUnit `gorm:"not null" json:"entered_unit"`
	QuantityPrimary   float64          `gorm:"type:decimal(15,3);not null" json:"quantity_primary"`
	QuantitySecondary float64          `gorm:"type:decimal(15,3);not null" json:"quantity_secondary"`
	UnitPrice         float64          `gorm:"type:decimal(18,2);not null" json:"unit_price"`
	DensityUsed       float64          `gorm:"type:decimal(10,4);not null" json:"density_used"`
	DensityDefaulted  bool             `gorm:"default:false" json:"density_defaulted"`
	TotalAmount       float64          `gorm:"type:decimal(18,2);not null" json:"total_amount"`
	CreatedAt         time.Time        `json:"created_at"`
	UpdatedAt         time.Time        `json:"updated_at"`
	DeletedAt         gorm.DeletedAt   `gorm:"index" json:"-"`

	// Relationships
	Receipt  Receipt  `gorm:"foreignKey:ReceiptID" json:"-"`
	Material Material `gorm:"foreignKey:MaterialID" json:"material,omitempty"`
}

// BeforeCreate generates a UUID before creating a new receipt item
func (i *ReceiptItem) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the ReceiptItem model
func (ReceiptItem) TableName() string {
	return "receipt_items"
}

// EnteredQuantity returns the quantity in the unit the user typed it in
func (i *ReceiptItem) EnteredQuantity() float64 {
	if i.EnteredUnit == enum.EnteredUnitSecondary {
		return i.QuantitySecondary
	}
	return i.QuantityPrimary
}
