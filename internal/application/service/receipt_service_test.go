package service

import (
	"context"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/vlxsoft/materials-api/internal/domain/entity"
	"github.com/vlxsoft/materials-api/internal/domain/enum"
	"github.com/vlxsoft/materials-api/pkg/apperror"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestCreateReceiptConvertsUnits(t *testing.T) {
	store := newFakeStore()
	materialSvc, receiptSvc, _, _ := newTestServices(store)
	ctx := context.Background()

	warehouse := store.addWarehouse("Main")
	materialID := createMaterial(t, materialSvc, "CAT-01", 1.5)

	// 15 Tấn of sand at density 1.5 is 10 m³.
	receipt, err := receiptSvc.CreateReceipt(ctx, &CreateReceiptInput{
		Type:        enum.ReceiptTypePurchase,
		ReceiptDate: time.Now().UTC(),
		WarehouseID: warehouse.ID,
		Items: []ReceiptItemInput{
			{MaterialID: materialID, EnteredUnit: enum.EnteredUnitPrimary, Quantity: 15, UnitPrice: 200000},
		},
	})
	if err != nil {
		t.Fatalf("CreateReceipt failed: %v", err)
	}

	if len(receipt.Items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(receipt.Items))
	}
	item := receipt.Items[0]
	if !almostEqual(item.QuantityPrimary, 15) {
		t.Errorf("quantity primary = %v, want 15", item.QuantityPrimary)
	}
	if !almostEqual(item.QuantitySecondary, 10) {
		t.Errorf("quantity secondary = %v, want 10", item.QuantitySecondary)
	}
	if !almostEqual(item.DensityUsed, 1.5) {
		t.Errorf("density used = %v, want 1.5", item.DensityUsed)
	}
	if item.DensityDefaulted {
		t.Error("density should not be flagged as defaulted")
	}
	if !almostEqual(item.TotalAmount, 3000000) {
		t.Errorf("line total = %v, want 3000000", item.TotalAmount)
	}
	if !almostEqual(receipt.TotalAmount, 3000000) {
		t.Errorf("header total = %v, want 3000000", receipt.TotalAmount)
	}
	if !almostEqual(receipt.TotalQuantityPrimary, 15) || !almostEqual(receipt.TotalQuantitySecondary, 10) {
		t.Errorf("header quantities = %v/%v, want 15/10",
			receipt.TotalQuantityPrimary, receipt.TotalQuantitySecondary)
	}
}

func TestCreateReceiptSecondaryEntry(t *testing.T) {
	store := newFakeStore()
	materialSvc, receiptSvc, _, _ := newTestServices(store)
	ctx := context.Background()

	warehouse := store.addWarehouse("Main")
	materialID := createMaterial(t, materialSvc, "CAT-01", 1.5)

	// 4 m³ entered in the secondary unit is 6 Tấn.
	receipt, err := receiptSvc.CreateReceipt(ctx, &CreateReceiptInput{
		Type:        enum.ReceiptTypeExport,
		ReceiptDate: time.Now().UTC(),
		WarehouseID: warehouse.ID,
		Items: []ReceiptItemInput{
			{MaterialID: materialID, EnteredUnit: enum.EnteredUnitSecondary, Quantity: 4, UnitPrice: 300000},
		},
	})
	if err != nil {
		t.Fatalf("CreateReceipt failed: %v", err)
	}

	item := receipt.Items[0]
	if !almostEqual(item.QuantitySecondary, 4) {
		t.Errorf("quantity secondary = %v, want 4", item.QuantitySecondary)
	}
	if !almostEqual(item.QuantityPrimary, 6) {
		t.Errorf("quantity primary = %v, want 6", item.QuantityPrimary)
	}
	// Line total is entered quantity times unit price.
	if !almostEqual(item.TotalAmount, 1200000) {
		t.Errorf("line total = %v, want 1200000", item.TotalAmount)
	}
}

func TestReceiptNumbering(t *testing.T) {
	store := newFakeStore()
	materialSvc, receiptSvc, _, _ := newTestServices(store)
	ctx := context.Background()

	warehouse := store.addWarehouse("Main")
	materialID := createMaterial(t, materialSvc, "CAT-01", 1.5)
	date := time.Date(2026, 8, 30, 0, 0, 0, 0, time.UTC)

	items := []ReceiptItemInput{
		{MaterialID: materialID, EnteredUnit: enum.EnteredUnitPrimary, Quantity: 1, UnitPrice: 100},
	}

	first, err := receiptSvc.CreateReceipt(ctx, &CreateReceiptInput{
		Type: enum.ReceiptTypePurchase, ReceiptDate: date, WarehouseID: warehouse.ID, Items: items,
	})
	if err != nil {
		t.Fatalf("first CreateReceipt failed: %v", err)
	}
	if first.ReceiptNo != "PN260830001" {
		t.Errorf("first purchase number = %s, want PN260830001", first.ReceiptNo)
	}

	second, err := receiptSvc.CreateReceipt(ctx, &CreateReceiptInput{
		Type: enum.ReceiptTypePurchase, ReceiptDate: date, WarehouseID: warehouse.ID, Items: items,
	})
	if err != nil {
		t.Fatalf("second CreateReceipt failed: %v", err)
	}
	if second.ReceiptNo != "PN260830002" {
		t.Errorf("second purchase number = %s, want PN260830002", second.ReceiptNo)
	}

	export, err := receiptSvc.CreateReceipt(ctx, &CreateReceiptInput{
		Type: enum.ReceiptTypeExport, ReceiptDate: date, WarehouseID: warehouse.ID, Items: items,
	})
	if err != nil {
		t.Fatalf("export CreateReceipt failed: %v", err)
	}
	// Export counters are independent of purchase counters.
	if export.ReceiptNo != "PX260830001" {
		t.Errorf("export number = %s, want PX260830001", export.ReceiptNo)
	}
}

func TestCreateReceiptRetriesOnDuplicateNumber(t *testing.T) {
	store := newFakeStore()
	materialSvc, receiptSvc, _, _ := newTestServices(store)
	ctx := context.Background()

	warehouse := store.addWarehouse("Main")
	materialID := createMaterial(t, materialSvc, "CAT-01", 1.5)

	store.failNextCreate = true

	receipt, err := receiptSvc.CreateReceipt(ctx, &CreateReceiptInput{
		Type:        enum.ReceiptTypePurchase,
		ReceiptDate: time.Now().UTC(),
		WarehouseID: warehouse.ID,
		Items: []ReceiptItemInput{
			{MaterialID: materialID, EnteredUnit: enum.EnteredUnitPrimary, Quantity: 1, UnitPrice: 100},
		},
	})
	if err != nil {
		t.Fatalf("CreateReceipt should survive one duplicate-key failure: %v", err)
	}
	// The retry fetched a fresh number, so the counter advanced twice.
	if !strings.HasSuffix(receipt.ReceiptNo, "002") {
		t.Errorf("receipt number = %s, want sequence 002 after retry", receipt.ReceiptNo)
	}
}

func TestReceiptDensitySnapshotIsFrozen(t *testing.T) {
	store := newFakeStore()
	materialSvc, receiptSvc, _, _ := newTestServices(store)
	ctx := context.Background()

	warehouse := store.addWarehouse("Main")
	materialID := createMaterial(t, materialSvc, "CAT-01", 1.5)

	receipt, err := receiptSvc.CreateReceipt(ctx, &CreateReceiptInput{
		Type:        enum.ReceiptTypePurchase,
		ReceiptDate: time.Now().UTC(),
		WarehouseID: warehouse.ID,
		Items: []ReceiptItemInput{
			{MaterialID: materialID, EnteredUnit: enum.EnteredUnitPrimary, Quantity: 15, UnitPrice: 100},
		},
	})
	if err != nil {
		t.Fatalf("CreateReceipt failed: %v", err)
	}

	if _, err := materialSvc.UpdateDensity(ctx, materialID, &UpdateDensityInput{Density: 2.0}); err != nil {
		t.Fatalf("UpdateDensity failed: %v", err)
	}

	reloaded, err := receiptSvc.GetReceipt(ctx, receipt.ID)
	if err != nil {
		t.Fatalf("GetReceipt failed: %v", err)
	}
	item := reloaded.Items[0]
	if !almostEqual(item.DensityUsed, 1.5) {
		t.Errorf("frozen density changed to %v after material update", item.DensityUsed)
	}
	if !almostEqual(item.QuantitySecondary, 10) {
		t.Errorf("derived quantity changed to %v after material update", item.QuantitySecondary)
	}
}

func TestCreateReceiptDefaultsDensityWithoutHistory(t *testing.T) {
	store := newFakeStore()
	_, receiptSvc, _, _ := newTestServices(store)
	ctx := context.Background()

	warehouse := store.addWarehouse("Main")

	// Material inserted directly with no density history at all.
	materialID := uuid.New()
	store.materials[materialID] = &entity.Material{
		ID: materialID, Code: "UNKNOWN-01", Name: "Unknown",
		PrimaryUnit: "Tấn", SecondaryUnit: "m³",
	}

	receipt, err := receiptSvc.CreateReceipt(ctx, &CreateReceiptInput{
		Type:        enum.ReceiptTypePurchase,
		ReceiptDate: time.Now().UTC(),
		WarehouseID: warehouse.ID,
		Items: []ReceiptItemInput{
			{MaterialID: materialID, EnteredUnit: enum.EnteredUnitPrimary, Quantity: 5, UnitPrice: 100},
		},
	})
	if err != nil {
		t.Fatalf("CreateReceipt failed: %v", err)
	}

	item := receipt.Items[0]
	if !item.DensityDefaulted {
		t.Error("expected density_defaulted=true for history-less material")
	}
	if !almostEqual(item.DensityUsed, DefaultDensity) {
		t.Errorf("density used = %v, want %v", item.DensityUsed, DefaultDensity)
	}
	if !almostEqual(item.QuantitySecondary, 5) {
		t.Errorf("quantity secondary = %v, want 5 at default density", item.QuantitySecondary)
	}
}

func TestCreateReceiptValidation(t *testing.T) {
	store := newFakeStore()
	materialSvc, receiptSvc, _, _ := newTestServices(store)
	ctx := context.Background()

	warehouse := store.addWarehouse("Main")
	materialID := createMaterial(t, materialSvc, "CAT-01", 1.5)

	tests := []struct {
		name     string
		input    *CreateReceiptInput
		wantCode int
	}{
		{
			name: "no items",
			input: &CreateReceiptInput{
				Type: enum.ReceiptTypePurchase, ReceiptDate: time.Now(), WarehouseID: warehouse.ID,
			},
			wantCode: 422,
		},
		{
			name: "unknown warehouse",
			input: &CreateReceiptInput{
				Type: enum.ReceiptTypePurchase, ReceiptDate: time.Now(), WarehouseID: uuid.New(),
				Items: []ReceiptItemInput{{MaterialID: materialID, Quantity: 1, UnitPrice: 1}},
			},
			wantCode: 404,
		},
		{
			name: "unknown material",
			input: &CreateReceiptInput{
				Type: enum.ReceiptTypePurchase, ReceiptDate: time.Now(), WarehouseID: warehouse.ID,
				Items: []ReceiptItemInput{{MaterialID: uuid.New(), Quantity: 1, UnitPrice: 1}},
			},
			wantCode: 404,
		},
		{
			name: "zero quantity",
			input: &CreateReceiptInput{
				Type: enum.ReceiptTypePurchase, ReceiptDate: time.Now(), WarehouseID: warehouse.ID,
				Items: []ReceiptItemInput{{MaterialID: materialID, Quantity: 0, UnitPrice: 1}},
			},
			wantCode: 422,
		},
		{
			name: "negative price",
			input: &CreateReceiptInput{
				Type: enum.ReceiptTypePurchase, ReceiptDate: time.Now(), WarehouseID: warehouse.ID,
				Items: []ReceiptItemInput{{MaterialID: materialID, Quantity: 1, UnitPrice: -5}},
			},
			wantCode: 422,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := receiptSvc.CreateReceipt(ctx, tt.input)
			if err == nil {
				t.Fatal("expected error")
			}
			if appErr := apperror.GetAppError(err); appErr.Code != tt.wantCode {
				t.Errorf("status = %d, want %d", appErr.Code, tt.wantCode)
			}
		})
	}
}

func TestDeleteReceiptIsIdempotent(t *testing.T) {
	store := newFakeStore()
	materialSvc, receiptSvc, _, _ := newTestServices(store)
	ctx := context.Background()

	warehouse := store.addWarehouse("Main")
	materialID := createMaterial(t, materialSvc, "CAT-01", 1.5)

	receipt, err := receiptSvc.CreateReceipt(ctx, &CreateReceiptInput{
		Type:        enum.ReceiptTypePurchase,
		ReceiptDate: time.Now().UTC(),
		WarehouseID: warehouse.ID,
		Items: []ReceiptItemInput{
			{MaterialID: materialID, EnteredUnit: enum.EnteredUnitPrimary, Quantity: 1, UnitPrice: 100},
		},
	})
	if err != nil {
		t.Fatalf("CreateReceipt failed: %v", err)
	}

	if err := receiptSvc.DeleteReceipt(ctx, receipt.ID); err != nil {
		t.Fatalf("first delete failed: %v", err)
	}
	if err := receiptSvc.DeleteReceipt(ctx, receipt.ID); err != nil {
		t.Fatalf("second delete should be a no-op, got: %v", err)
	}

	if _, err := receiptSvc.GetReceipt(ctx, receipt.ID); err == nil {
		t.Error("deleted receipt should not be readable through the scoped lookup")
	}
}

func TestTransportAtMostOnePerReceipt(t *testing.T) {
	store := newFakeStore()
	materialSvc, receiptSvc, _, _ := newTestServices(store)
	ctx := context.Background()

	warehouse := store.addWarehouse("Main")
	vehicle := store.addVehicle("51C-12345")
	materialID := createMaterial(t, materialSvc, "CAT-01", 1.5)

	receipt, err := receiptSvc.CreateReceipt(ctx, &CreateReceiptInput{
		Type:        enum.ReceiptTypeExport,
		ReceiptDate: time.Now().UTC(),
		WarehouseID: warehouse.ID,
		Items: []ReceiptItemInput{
			{MaterialID: materialID, EnteredUnit: enum.EnteredUnitPrimary, Quantity: 6, UnitPrice: 100},
		},
	})
	if err != nil {
		t.Fatalf("CreateReceipt failed: %v", err)
	}

	if _, err := receiptSvc.AddTransport(ctx, receipt.ID, &TransportInput{
		VehicleID: &vehicle.ID, Quantity: 6, Fee: 500000,
	}); err != nil {
		t.Fatalf("AddTransport failed: %v", err)
	}

	_, err = receiptSvc.AddTransport(ctx, receipt.ID, &TransportInput{Quantity: 1})
	if err == nil {
		t.Fatal("second AddTransport should conflict")
	}
	if appErr := apperror.GetAppError(err); appErr.Code != 409 {
		t.Errorf("status = %d, want 409", appErr.Code)
	}
}

func TestUpdateReceiptReplacesItems(t *testing.T) {
	store := newFakeStore()
	materialSvc, receiptSvc, _, _ := newTestServices(store)
	ctx := context.Background()

	warehouse := store.addWarehouse("Main")
	materialID := createMaterial(t, materialSvc, "CAT-01", 1.5)

	receipt, err := receiptSvc.CreateReceipt(ctx, &CreateReceiptInput{
		Type:        enum.ReceiptTypePurchase,
		ReceiptDate: time.Now().UTC(),
		WarehouseID: warehouse.ID,
		Items: []ReceiptItemInput{
			{MaterialID: materialID, EnteredUnit: enum.EnteredUnitPrimary, Quantity: 15, UnitPrice: 100},
		},
	})
	if err != nil {
		t.Fatalf("CreateReceipt failed: %v", err)
	}
	originalNo := receipt.ReceiptNo

	updated, err := receiptSvc.UpdateReceipt(ctx, receipt.ID, &UpdateReceiptInput{
		Items: []ReceiptItemInput{
			{MaterialID: materialID, EnteredUnit: enum.EnteredUnitPrimary, Quantity: 9, UnitPrice: 200},
		},
	})
	if err != nil {
		t.Fatalf("UpdateReceipt failed: %v", err)
	}

	if updated.ReceiptNo != originalNo {
		t.Errorf("receipt number changed on update: %s -> %s", originalNo, updated.ReceiptNo)
	}
	if len(updated.Items) != 1 {
		t.Fatalf("expected 1 item after replace, got %d", len(updated.Items))
	}
	if !almostEqual(updated.Items[0].QuantityPrimary, 9) {
		t.Errorf("replaced quantity = %v, want 9", updated.Items[0].QuantityPrimary)
	}
	if !almostEqual(updated.TotalAmount, 1800) {
		t.Errorf("header total = %v, want 1800", updated.TotalAmount)
	}
	if !almostEqual(updated.TotalQuantitySecondary, 6) {
		t.Errorf("header secondary total = %v, want 6", updated.TotalQuantitySecondary)
	}
}
