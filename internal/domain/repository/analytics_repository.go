package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// StockRow is the net movement for one (warehouse, material) pair.
// Net quantities may be negative: over-export is reported, not clamped.
type StockRow struct {
	WarehouseID       uuid.UUID
	WarehouseName     string
	MaterialID        uuid.UUID
	MaterialCode      string
	MaterialName      string
	PrimaryUnit       string
	SecondaryUnit     string
	QuantityPrimary   float64
	QuantitySecondary float64
}

// DailyTotalsRow is revenue/cost for one calendar day with activity.
// Days without activity are absent; the service densifies the series.
type DailyTotalsRow struct {
	Date    time.Time
	Revenue float64
	Cost    float64
}

// ProjectTotalsRow is revenue/cost grouped by project
type ProjectTotalsRow struct {
	ProjectID   uuid.UUID
	ProjectCode string
	ProjectName string
	Revenue     float64
	Cost        float64
}

// AnalyticsRepository defines the read-side aggregation queries over the
// receipt ledger. All queries exclude soft-deleted receipts and items.
type AnalyticsRepository interface {
	// SumStock returns net (purchase minus export) quantities per
	// (warehouse, material), optionally filtered by either key.
	SumStock(ctx context.Context, warehouseID, materialID *uuid.UUID) ([]StockRow, error)

	// DailyTotals returns per-day revenue (exports) and cost (purchases)
	// for days in [from, to] that have activity.
	DailyTotals(ctx context.Context, from, to time.Time) ([]DailyTotalsRow, error)

	// ProjectTotals returns revenue/cost grouped by project over [from, to],
	// optionally restricted to one project.
	ProjectTotals(ctx context.Context, from, to time.Time, projectID *uuid.UUID) ([]ProjectTotalsRow, error)
}
