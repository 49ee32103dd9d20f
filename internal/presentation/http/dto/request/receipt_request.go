package request

import (
	"encoding/json"

	"github.com/google/uuid"
)

// ReceiptItemRequest is one line item in a receipt payload. Quantity and
// unit price are in the unit named by entered_unit ("primary" or "secondary").
type ReceiptItemRequest struct {
	MaterialID  uuid.UUID `json:"material_id" binding:"required"`
	EnteredUnit string    `json:"entered_unit" binding:"omitempty,oneof=primary secondary"`
	Quantity    float64   `json:"quantity" binding:"required,gt=0"`
	UnitPrice   float64   `json:"unit_price" binding:"min=0"`
}

// TransportRequest is the optional transport record in a receipt payload
type TransportRequest struct {
	VehicleID *uuid.UUID `json:"vehicle_id"`
	Quantity  float64    `json:"quantity" binding:"min=0"`
	UnitPrice float64    `json:"unit_price" binding:"min=0"`
	Fee       float64    `json:"fee" binding:"min=0"`
	Notes     *string    `json:"notes"`
}

// TransportField accepts either a single transport object or an array of
// them. Some clients historically sent transport as a one-element array; only
// the first element is used since a receipt carries at most one record.
type TransportField struct {
	Record *TransportRequest
}

func (t *TransportField) UnmarshalJSON(data []byte) error {
	var single TransportRequest
	if err := json.Unmarshal(data, &single); err == nil {
		t.Record = &single
		return nil
	}

	var many []TransportRequest
	if err := json.Unmarshal(data, &many); err != nil {
		return err
	}
	if len(many) > 0 {
		t.Record = &many[0]
	}
	return nil
}

// CreateReceiptRequest represents a receipt creation request
type CreateReceiptRequest struct {
	ReceiptDate string               `json:"receipt_date" binding:"required"`
	WarehouseID uuid.UUID            `json:"warehouse_id" binding:"required"`
	ProjectID   *uuid.UUID           `json:"project_id"`
	CustomerID  *uuid.UUID           `json:"customer_id"`
	Notes       *string              `json:"notes"`
	Items       []ReceiptItemRequest `json:"items" binding:"required,min=1,dive"`
	Transport   *TransportField      `json:"transport"`
}

// UpdateReceiptRequest represents a receipt update request. Items, when
// present, replace the existing line items.
type UpdateReceiptRequest struct {
	ReceiptDate *string              `json:"receipt_date"`
	WarehouseID *uuid.UUID           `json:"warehouse_id"`
	ProjectID   *uuid.UUID           `json:"project_id"`
	CustomerID  *uuid.UUID           `json:"customer_id"`
	Notes       *string              `json:"notes"`
	Items       []ReceiptItemRequest `json:"items" binding:"omitempty,min=1,dive"`
}
