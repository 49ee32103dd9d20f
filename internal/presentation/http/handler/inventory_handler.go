package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/vlxsoft/materials-api/internal/application/service"
	"github.com/vlxsoft/materials-api/internal/presentation/http/dto/response"
)

// InventoryHandler handles stock-level HTTP requests
type InventoryHandler struct {
	inventoryService *service.InventoryService
}

// NewInventoryHandler creates a new inventory handler
func NewInventoryHandler(inventoryService *service.InventoryService) *InventoryHandler {
	return &InventoryHandler{inventoryService: inventoryService}
}

// GetStock handles listing net stock per (warehouse, material)
func (h *InventoryHandler) GetStock(c *gin.Context) {
	warehouseID, ok := GetUUIDQuery(c, "warehouse_id")
	if !ok {
		response.BadRequest(c, "Invalid warehouse ID")
		return
	}
	materialID, ok := GetUUIDQuery(c, "material_id")
	if !ok {
		response.BadRequest(c, "Invalid material ID")
		return
	}

	rows, err := h.inventoryService.GetStock(c.Request.Context(), &service.StockFilter{
		WarehouseID: warehouseID,
		MaterialID:  materialID,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Stock retrieved successfully", rows)
}

// GetMaterialStock handles one material's stock broken down by warehouse
func (h *InventoryHandler) GetMaterialStock(c *gin.Context) {
	materialID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid material ID")
		return
	}

	stock, err := h.inventoryService.GetMaterialStock(c.Request.Context(), materialID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Material stock retrieved successfully", stock)
}
