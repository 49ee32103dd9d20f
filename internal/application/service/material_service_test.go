package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/vlxsoft/materials-api/pkg/apperror"
)

func createMaterial(t *testing.T, svc *MaterialService, code string, density float64) uuid.UUID {
	t.Helper()
	material, err := svc.CreateMaterial(context.Background(), &CreateMaterialInput{
		Code:          code,
		Name:          "Sand " + code,
		PrimaryUnit:   "Tấn",
		SecondaryUnit: "m³",
		Density:       density,
	})
	if err != nil {
		t.Fatalf("CreateMaterial(%s) failed: %v", code, err)
	}
	return material.ID
}

func TestCreateMaterialRecordsInitialDensity(t *testing.T) {
	store := newFakeStore()
	svc, _, _, _ := newTestServices(store)

	id := createMaterial(t, svc, "cat-01", 1.45)

	material, err := svc.GetMaterial(context.Background(), id)
	if err != nil {
		t.Fatalf("GetMaterial failed: %v", err)
	}
	if material.Code != "CAT-01" {
		t.Errorf("expected normalized code CAT-01, got %s", material.Code)
	}
	if material.CurrentDensity != 1.45 {
		t.Errorf("expected current density 1.45, got %v", material.CurrentDensity)
	}

	history, _, err := (&fakeDensityRepo{store}).ListByMaterial(context.Background(), id, nil)
	if err != nil {
		t.Fatalf("ListByMaterial failed: %v", err)
	}
	if len(history) != 1 {
		t.Fatalf("expected 1 history entry, got %d", len(history))
	}
	if !history[0].Open() {
		t.Error("initial history entry should be open")
	}
	if history[0].Density != 1.45 {
		t.Errorf("expected history density 1.45, got %v", history[0].Density)
	}
}

func TestCreateMaterialAtomicWithHistory(t *testing.T) {
	store := newFakeStore()
	svc, _, _, _ := newTestServices(store)
	ctx := context.Background()

	store.failNextHistoryCreate = true

	_, err := svc.CreateMaterial(ctx, &CreateMaterialInput{
		Code:          "CAT-01",
		Name:          "Sand",
		PrimaryUnit:   "Tấn",
		SecondaryUnit: "m³",
		Density:       1.45,
	})
	if err == nil {
		t.Fatal("expected error when the history insert fails")
	}

	// Rollback: neither the material nor a dangling history entry may persist.
	material, err := (&fakeMaterialRepo{store}).GetByCode(ctx, "CAT-01")
	if err != nil {
		t.Fatalf("GetByCode failed: %v", err)
	}
	if material != nil {
		t.Error("material row should not survive a failed history insert")
	}
	if len(store.density) != 0 {
		t.Errorf("expected no history entries, got %d", len(store.density))
	}

	// The same input succeeds once the insert no longer fails.
	if id := createMaterial(t, svc, "CAT-01", 1.45); id == uuid.Nil {
		t.Fatal("expected material to be created on retry")
	}
}

func TestCreateMaterialRejectsDuplicateCode(t *testing.T) {
	store := newFakeStore()
	svc, _, _, _ := newTestServices(store)

	createMaterial(t, svc, "CAT-01", 1.5)

	_, err := svc.CreateMaterial(context.Background(), &CreateMaterialInput{
		Code:          "cat-01",
		Name:          "Duplicate",
		PrimaryUnit:   "Tấn",
		SecondaryUnit: "m³",
		Density:       1.5,
	})
	if err == nil {
		t.Fatal("expected duplicate code error")
	}
	if appErr := apperror.GetAppError(err); appErr.Code != 409 {
		t.Errorf("expected status 409, got %d", appErr.Code)
	}
}

func TestCreateMaterialRejectsNonPositiveDensity(t *testing.T) {
	store := newFakeStore()
	svc, _, _, _ := newTestServices(store)

	for _, density := range []float64{0, -1.2} {
		_, err := svc.CreateMaterial(context.Background(), &CreateMaterialInput{
			Code:          "CAT-02",
			Name:          "Sand",
			PrimaryUnit:   "Tấn",
			SecondaryUnit: "m³",
			Density:       density,
		})
		if err == nil {
			t.Fatalf("expected validation error for density %v", density)
		}
		if appErr := apperror.GetAppError(err); appErr.Code != 422 {
			t.Errorf("density %v: expected status 422, got %d", density, appErr.Code)
		}
	}
}

func TestUpdateDensityKeepsSingleOpenEntry(t *testing.T) {
	store := newFakeStore()
	svc, _, _, _ := newTestServices(store)
	ctx := context.Background()

	id := createMaterial(t, svc, "CAT-01", 1.4)

	material, err := svc.UpdateDensity(ctx, id, &UpdateDensityInput{
		Density: 1.5,
		Reason:  "Wet season correction",
	})
	if err != nil {
		t.Fatalf("UpdateDensity failed: %v", err)
	}
	if material.CurrentDensity != 1.5 {
		t.Errorf("cached density not synced: got %v, want 1.5", material.CurrentDensity)
	}

	history, _, err := (&fakeDensityRepo{store}).ListByMaterial(ctx, id, nil)
	if err != nil {
		t.Fatalf("ListByMaterial failed: %v", err)
	}
	if len(history) != 2 {
		t.Fatalf("expected 2 history entries, got %d", len(history))
	}

	open := 0
	for _, e := range history {
		if e.Open() {
			open++
			if e.Density != 1.5 {
				t.Errorf("open entry density = %v, want 1.5", e.Density)
			}
		}
	}
	if open != 1 {
		t.Errorf("expected exactly 1 open entry, got %d", open)
	}
}

func TestDensityAtResolution(t *testing.T) {
	store := newFakeStore()
	svc, _, _, _ := newTestServices(store)
	ctx := context.Background()

	id := createMaterial(t, svc, "CAT-01", 1.4)

	// Close the initial entry at a known boundary so the intervals are
	// deterministic: 1.4 until cutover, 1.6 after.
	cutover := time.Now().UTC().Add(24 * time.Hour)
	if _, err := svc.UpdateDensity(ctx, id, &UpdateDensityInput{
		Density:       1.6,
		EffectiveFrom: &cutover,
	}); err != nil {
		t.Fatalf("UpdateDensity failed: %v", err)
	}

	tests := []struct {
		name        string
		asOf        time.Time
		wantDensity float64
	}{
		{"inside first interval", time.Now().UTC(), 1.4},
		{"after cutover", cutover.Add(time.Hour), 1.6},
		{"exactly at cutover", cutover, 1.6},
		{"before any history falls back to earliest", time.Now().UTC().AddDate(-1, 0, 0), 1.4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			density, defaulted, err := svc.DensityAt(ctx, id, tt.asOf)
			if err != nil {
				t.Fatalf("DensityAt failed: %v", err)
			}
			if defaulted {
				t.Error("defaulted should be false when history exists")
			}
			if density != tt.wantDensity {
				t.Errorf("density = %v, want %v", density, tt.wantDensity)
			}
		})
	}
}

func TestDensityAtDefaultsWithoutHistory(t *testing.T) {
	store := newFakeStore()
	svc, _, _, _ := newTestServices(store)

	density, defaulted, err := svc.DensityAt(context.Background(), uuid.New(), time.Now())
	if err != nil {
		t.Fatalf("DensityAt failed: %v", err)
	}
	if !defaulted {
		t.Error("expected defaulted=true for material with no history")
	}
	if density != DefaultDensity {
		t.Errorf("density = %v, want %v", density, DefaultDensity)
	}
}
