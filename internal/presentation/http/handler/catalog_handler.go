package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/vlxsoft/materials-api/internal/application/service"
	"github.com/vlxsoft/materials-api/internal/presentation/http/dto/response"
)

// CatalogHandler handles category and unit HTTP requests
type CatalogHandler struct {
	catalogService *service.CatalogService
}

// NewCatalogHandler creates a new catalog handler
func NewCatalogHandler(catalogService *service.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalogService: catalogService}
}

// ListCategories handles listing categories
func (h *CatalogHandler) ListCategories(c *gin.Context) {
	categories, err := h.catalogService.ListCategories(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Categories retrieved successfully", categories)
}

// CreateCategory handles creating a category
func (h *CatalogHandler) CreateCategory(c *gin.Context) {
	var req struct {
		Name string `json:"name" binding:"required,min=2,max=255"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	category, err := h.catalogService.CreateCategory(c.Request.Context(), req.Name)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, "Category created successfully", category)
}

// GetCategory handles getting a single category
func (h *CatalogHandler) GetCategory(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid category ID")
		return
	}

	category, err := h.catalogService.GetCategory(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Category retrieved successfully", category)
}

// UpdateCategory handles renaming a category
func (h *CatalogHandler) UpdateCategory(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid category ID")
		return
	}

	var req struct {
		Name string `json:"name" binding:"required,min=2,max=255"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	category, err := h.catalogService.UpdateCategory(c.Request.Context(), id, req.Name)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Category updated successfully", category)
}

// DeleteCategory handles deleting a category
func (h *CatalogHandler) DeleteCategory(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid category ID")
		return
	}

	if err := h.catalogService.DeleteCategory(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// ListUnits handles listing units
func (h *CatalogHandler) ListUnits(c *gin.Context) {
	units, err := h.catalogService.ListUnits(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Units retrieved successfully", units)
}

// CreateUnit handles creating a unit
func (h *CatalogHandler) CreateUnit(c *gin.Context) {
	var req struct {
		Name      string `json:"name" binding:"required,min=1,max=255"`
		ShortCode string `json:"short_code" binding:"omitempty,max=50"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	unit, err := h.catalogService.CreateUnit(c.Request.Context(), req.Name, req.ShortCode)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, "Unit created successfully", unit)
}

// UpdateUnit handles updating a unit
func (h *CatalogHandler) UpdateUnit(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid unit ID")
		return
	}

	var req struct {
		Name      string `json:"name" binding:"required,min=1,max=255"`
		ShortCode string `json:"short_code" binding:"omitempty,max=50"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	unit, err := h.catalogService.UpdateUnit(c.Request.Context(), id, req.Name, req.ShortCode)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Unit updated successfully", unit)
}

// DeleteUnit handles deleting a unit
func (h *CatalogHandler) DeleteUnit(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid unit ID")
		return
	}

	if err := h.catalogService.DeleteUnit(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
