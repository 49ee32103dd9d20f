package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/vlxsoft/materials-api/internal/domain/enum"
	domainRepo "github.com/vlxsoft/materials-api/internal/domain/repository"
	"gorm.io/gorm"
)

type analyticsRepository struct {
	db *gorm.DB
}

// NewAnalyticsRepository creates a new analytics repository
func NewAnalyticsRepository(db *gorm.DB) domainRepo.AnalyticsRepository {
	return &analyticsRepository{db: db}
}

// SumStock nets purchase line items against export line items per
// (warehouse, material). Soft-deleted receipts and items are excluded;
// negative nets are returned as-is.
func (r *analyticsRepository) SumStock(ctx context.Context, warehouseID, materialID *uuid.UUID) ([]domainRepo.StockRow, error) {
	var rows []domainRepo.StockRow

	query := r.db.WithContext(ctx).
		Table("receipt_items ri").
		Select(`
			w.id AS warehouse_id,
			w.name AS warehouse_name,
			m.id AS material_id,
			m.code AS material_code,
			m.name AS material_name,
			m.primary_unit AS primary_unit,
			m.secondary_unit AS secondary_unit,
			COALESCE(SUM(CASE WHEN r.type = ? THEN ri.quantity_primary ELSE -ri.quantity_primary END), 0) AS quantity_primary,
			COALESCE(SUM(CASE WHEN r.type = ? THEN ri.quantity_secondary ELSE -ri.quantity_secondary END), 0) AS quantity_secondary`,
			int(enum.ReceiptTypePurchase), int(enum.ReceiptTypePurchase)).
		Joins("JOIN receipts r ON r.id = ri.receipt_id AND r.deleted_at IS NULL").
		Joins("JOIN warehouses w ON w.id = r.warehouse_id").
		Joins("JOIN materials m ON m.id = ri.material_id").
		Where("ri.deleted_at IS NULL")

	if warehouseID != nil {
		query = query.Where("r.warehouse_id = ?", *warehouseID)
	}
	if materialID != nil {
		query = query.Where("ri.material_id = ?", *materialID)
	}

	err := query.
		Group("w.id, w.name, m.id, m.code, m.name, m.primary_unit, m.secondary_unit").
		Order("w.name, m.name").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	return rows, nil
}

func (r *analyticsRepository) DailyTotals(ctx context.Context, from, to time.Time) ([]domainRepo.DailyTotalsRow, error) {
	var rows []domainRepo.DailyTotalsRow

	err := r.db.WithContext(ctx).Raw(`
		SELECT
			r.receipt_date AS date,
			COALESCE(SUM(CASE WHEN r.type = ? THEN r.total_amount ELSE 0 END), 0) AS revenue,
			COALESCE(SUM(CASE WHEN r.type = ? THEN r.total_amount ELSE 0 END), 0) AS cost
		FROM receipts r
		WHERE r.deleted_at IS NULL
		  AND r.receipt_date >= ? AND r.receipt_date <= ?
		GROUP BY r.receipt_date
		ORDER BY r.receipt_date
	`, int(enum.ReceiptTypeExport), int(enum.ReceiptTypePurchase), from, to).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	return rows, nil
}

func (r *analyticsRepository) ProjectTotals(ctx context.Context, from, to time.Time, projectID *uuid.UUID) ([]domainRepo.ProjectTotalsRow, error) {
	var rows []domainRepo.ProjectTotalsRow

	query := r.db.WithContext(ctx).
		Table("receipts r").
		Select(`
			p.id AS project_id,
			p.code AS project_code,
			p.name AS project_name,
			COALESCE(SUM(CASE WHEN r.type = ? THEN r.total_amount ELSE 0 END), 0) AS revenue,
			COALESCE(SUM(CASE WHEN r.type = ? THEN r.total_amount ELSE 0 END), 0) AS cost`,
			int(enum.ReceiptTypeExport), int(enum.ReceiptTypePurchase)).
		Joins("JOIN projects p ON p.id = r.project_id").
		Where("r.deleted_at IS NULL").
		Where("r.receipt_date >= ? AND r.receipt_date <= ?", from, to)

	if projectID != nil {
		query = query.Where("r.project_id = ?", *projectID)
	}

	err := query.
		Group("p.id, p.code, p.name").
		Order("p.name").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	return rows, nil
}
