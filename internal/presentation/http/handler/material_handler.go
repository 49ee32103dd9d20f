package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/vlxsoft/materials-api/internal/application/service"
	"github.com/vlxsoft/materials-api/internal/domain/repository"
	"github.com/vlxsoft/materials-api/internal/presentation/http/dto/request"
	"github.com/vlxsoft/materials-api/internal/presentation/http/dto/response"
)

// MaterialHandler handles material-related HTTP requests
type MaterialHandler struct {
	materialService *service.MaterialService
}

// NewMaterialHandler creates a new material handler
func NewMaterialHandler(materialService *service.MaterialService) *MaterialHandler {
	return &MaterialHandler{materialService: materialService}
}

// List handles listing materials
func (h *MaterialHandler) List(c *gin.Context) {
	categoryID, ok := GetUUIDQuery(c, "category_id")
	if !ok {
		response.BadRequest(c, "Invalid category ID")
		return
	}

	params := &repository.MaterialFilterParams{
		Pagination: GetPaginationParams(c),
		Search:     c.Query("search"),
		CategoryID: categoryID,
		SortBy:     c.Query("sort_by"),
		SortOrder:  c.Query("sort_order"),
	}

	result, err := h.materialService.ListMaterials(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Materials retrieved successfully", result)
}

// Create handles creating a material
func (h *MaterialHandler) Create(c *gin.Context) {
	var req request.CreateMaterialRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	material, err := h.materialService.CreateMaterial(c.Request.Context(), &service.CreateMaterialInput{
		CategoryID:    req.CategoryID,
		Code:          req.Code,
		Name:          req.Name,
		PrimaryUnit:   req.PrimaryUnit,
		SecondaryUnit: req.SecondaryUnit,
		Density:       req.Density,
		Notes:         req.Notes,
		CreatedBy:     GetActor(c),
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Material created successfully", material)
}

// Get handles getting a single material
func (h *MaterialHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid material ID")
		return
	}

	material, err := h.materialService.GetMaterial(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Material retrieved successfully", material)
}

// Update handles updating a material's descriptive fields
func (h *MaterialHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid material ID")
		return
	}

	var req request.UpdateMaterialRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	material, err := h.materialService.UpdateMaterial(c.Request.Context(), id, &service.UpdateMaterialInput{
		CategoryID:    req.CategoryID,
		Name:          req.Name,
		PrimaryUnit:   req.PrimaryUnit,
		SecondaryUnit: req.SecondaryUnit,
		Notes:         req.Notes,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Material updated successfully", material)
}

// Delete handles deleting a material
func (h *MaterialHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid material ID")
		return
	}

	if err := h.materialService.DeleteMaterial(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}

// UpdateDensity handles recording a density change
func (h *MaterialHandler) UpdateDensity(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid material ID")
		return
	}

	var req request.UpdateDensityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	input := &service.UpdateDensityInput{
		Density:   req.Density,
		Reason:    req.Reason,
		CreatedBy: GetActor(c),
	}
	if req.EffectiveFrom != nil {
		effectiveFrom, err := time.Parse(time.RFC3339, *req.EffectiveFrom)
		if err != nil {
			response.BadRequest(c, "Invalid effective_from, expected RFC 3339")
			return
		}
		input.EffectiveFrom = &effectiveFrom
	}

	material, err := h.materialService.UpdateDensity(c.Request.Context(), id, input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Density updated successfully", material)
}

// DensityHistory handles listing a material's density timeline
func (h *MaterialHandler) DensityHistory(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid material ID")
		return
	}

	result, err := h.materialService.ListDensityHistory(c.Request.Context(), id, GetPaginationParams(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Density history retrieved successfully", result)
}

// DensityAt handles resolving the density in effect at a given date
func (h *MaterialHandler) DensityAt(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid material ID")
		return
	}

	asOf := time.Now().UTC()
	if date, ok := GetDateQuery(c, "date"); !ok {
		response.BadRequest(c, "Invalid date, expected YYYY-MM-DD")
		return
	} else if date != nil {
		asOf = *date
	}

	// Confirm the material exists before resolving
	if _, err := h.materialService.GetMaterial(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	density, defaulted, err := h.materialService.DensityAt(c.Request.Context(), id, asOf)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Density resolved successfully", gin.H{
		"material_id": id,
		"as_of":       asOf.Format("2006-01-02"),
		"density":     density,
		"defaulted":   defaulted,
	})
}
