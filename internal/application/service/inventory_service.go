package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/vlxsoft/materials-api/internal/domain/repository"
	"github.com/vlxsoft/materials-api/pkg/unitconv"
)

// InventoryService derives current stock levels from the receipt ledger.
// Stock is never stored; it is always the net of purchases minus exports
// over non-deleted receipts.
type InventoryService struct {
	analyticsRepo repository.AnalyticsRepository
}

// NewInventoryService creates a new inventory service
func NewInventoryService(analyticsRepo repository.AnalyticsRepository) *InventoryService {
	return &InventoryService{analyticsRepo: analyticsRepo}
}

// StockFilter restricts a stock query to one warehouse and/or one material
type StockFilter struct {
	WarehouseID *uuid.UUID
	MaterialID  *uuid.UUID
}

// GetStock returns net stock per (warehouse, material). Pairs whose net
// quantity is zero in both units are dropped; negative nets are kept so that
// over-exported stock is visible rather than silently clamped.
func (s *InventoryService) GetStock(ctx context.Context, filter *StockFilter) ([]repository.StockRow, error) {
	var warehouseID, materialID *uuid.UUID
	if filter != nil {
		warehouseID = filter.WarehouseID
		materialID = filter.MaterialID
	}

	rows, err := s.analyticsRepo.SumStock(ctx, warehouseID, materialID)
	if err != nil {
		return nil, err
	}

	result := make([]repository.StockRow, 0, len(rows))
	for _, row := range rows {
		row.QuantityPrimary = unitconv.RoundQuantity(row.QuantityPrimary)
		row.QuantitySecondary = unitconv.RoundQuantity(row.QuantitySecondary)
		if row.QuantityPrimary == 0 && row.QuantitySecondary == 0 {
			continue
		}
		result = append(result, row)
	}
	return result, nil
}

// MaterialStock is the aggregate position of one material across warehouses
type MaterialStock struct {
	MaterialID        uuid.UUID             `json:"material_id"`
	MaterialCode      string                `json:"material_code"`
	MaterialName      string                `json:"material_name"`
	PrimaryUnit       string                `json:"primary_unit"`
	SecondaryUnit     string                `json:"secondary_unit"`
	QuantityPrimary   float64               `json:"quantity_primary"`
	QuantitySecondary float64               `json:"quantity_secondary"`
	Warehouses        []repository.StockRow `json:"warehouses"`
}

// GetMaterialStock returns one material's stock broken down by warehouse,
// with a cross-warehouse total.
func (s *InventoryService) GetMaterialStock(ctx context.Context, materialID uuid.UUID) (*MaterialStock, error) {
	rows, err := s.GetStock(ctx, &StockFilter{MaterialID: &materialID})
	if err != nil {
		return nil, err
	}

	stock := &MaterialStock{
		MaterialID: materialID,
		Warehouses: rows,
	}
	for _, row := range rows {
		stock.MaterialCode = row.MaterialCode
		stock.MaterialName = row.MaterialName
		stock.PrimaryUnit = row.PrimaryUnit
		stock.SecondaryUnit = row.SecondaryUnit
		stock.QuantityPrimary = unitconv.RoundQuantity(stock.QuantityPrimary + row.QuantityPrimary)
		stock.QuantitySecondary = unitconv.RoundQuantity(stock.QuantitySecondary + row.QuantitySecondary)
	}
	return stock, nil
}
