package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/vlxsoft/materials-api/internal/application/service"
	"github.com/vlxsoft/materials-api/internal/presentation/http/dto/response"
)

// PartnerHandler handles warehouse, project, customer and vehicle HTTP requests
type PartnerHandler struct {
	partnerService *service.PartnerService
}

// NewPartnerHandler creates a new partner handler
func NewPartnerHandler(partnerService *service.PartnerService) *PartnerHandler {
	return &PartnerHandler{partnerService: partnerService}
}

// ListWarehouses handles listing warehouses
func (h *PartnerHandler) ListWarehouses(c *gin.Context) {
	result, err := h.partnerService.ListWarehouses(c.Request.Context(), GetPaginationParams(c), c.Query("search"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.SuccessWithPagination(c, 200, "Warehouses retrieved successfully", result)
}

// CreateWarehouse handles creating a warehouse
func (h *PartnerHandler) CreateWarehouse(c *gin.Context) {
	var req struct {
		Code    string  `json:"code" binding:"required,max=100"`
		Name    string  `json:"name" binding:"required,min=2,max=255"`
		Address *string `json:"address"`
		Manager *string `json:"manager"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	warehouse, err := h.partnerService.CreateWarehouse(c.Request.Context(), &service.CreateWarehouseInput{
		Code:    req.Code,
		Name:    req.Name,
		Address: req.Address,
		Manager: req.Manager,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, "Warehouse created successfully", warehouse)
}

// GetWarehouse handles getting a single warehouse
func (h *PartnerHandler) GetWarehouse(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid warehouse ID")
		return
	}

	warehouse, err := h.partnerService.GetWarehouse(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Warehouse retrieved successfully", warehouse)
}

// UpdateWarehouse handles updating a warehouse
func (h *PartnerHandler) UpdateWarehouse(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid warehouse ID")
		return
	}

	var req struct {
		Name    *string `json:"name" binding:"omitempty,min=2,max=255"`
		Address *string `json:"address"`
		Manager *string `json:"manager"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	warehouse, err := h.partnerService.UpdateWarehouse(c.Request.Context(), id, &service.UpdateWarehouseInput{
		Name:    req.Name,
		Address: req.Address,
		Manager: req.Manager,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Warehouse updated successfully", warehouse)
}

// DeleteWarehouse handles deleting a warehouse
func (h *PartnerHandler) DeleteWarehouse(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid warehouse ID")
		return
	}

	if err := h.partnerService.DeleteWarehouse(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// ListProjects handles listing projects
func (h *PartnerHandler) ListProjects(c *gin.Context) {
	result, err := h.partnerService.ListProjects(c.Request.Context(), GetPaginationParams(c), c.Query("search"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.SuccessWithPagination(c, 200, "Projects retrieved successfully", result)
}

// CreateProject handles creating a project
func (h *PartnerHandler) CreateProject(c *gin.Context) {
	var req struct {
		Code    string  `json:"code" binding:"required,max=100"`
		Name    string  `json:"name" binding:"required,min=2,max=255"`
		Address *string `json:"address"`
		Notes   *string `json:"notes"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	project, err := h.partnerService.CreateProject(c.Request.Context(), &service.CreateProjectInput{
		Code:    req.Code,
		Name:    req.Name,
		Address: req.Address,
		Notes:   req.Notes,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, "Project created successfully", project)
}

// GetProject handles getting a single project
func (h *PartnerHandler) GetProject(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid project ID")
		return
	}

	project, err := h.partnerService.GetProject(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Project retrieved successfully", project)
}

// UpdateProject handles updating a project
func (h *PartnerHandler) UpdateProject(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid project ID")
		return
	}

	var req struct {
		Name    *string `json:"name" binding:"omitempty,min=2,max=255"`
		Address *string `json:"address"`
		Notes   *string `json:"notes"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	project, err := h.partnerService.UpdateProject(c.Request.Context(), id, &service.UpdateProjectInput{
		Name:    req.Name,
		Address: req.Address,
		Notes:   req.Notes,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Project updated successfully", project)
}

// DeleteProject handles deleting a project
func (h *PartnerHandler) DeleteProject(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid project ID")
		return
	}

	if err := h.partnerService.DeleteProject(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// ListCustomers handles listing customers
func (h *PartnerHandler) ListCustomers(c *gin.Context) {
	result, err := h.partnerService.ListCustomers(c.Request.Context(), GetPaginationParams(c), c.Query("search"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.SuccessWithPagination(c, 200, "Customers retrieved successfully", result)
}

// CreateCustomer handles creating a customer
func (h *PartnerHandler) CreateCustomer(c *gin.Context) {
	var req struct {
		Name    string  `json:"name" binding:"required,min=2,max=255"`
		Phone   *string `json:"phone"`
		Email   *string `json:"email" binding:"omitempty,email"`
		TaxCode *string `json:"tax_code"`
		Address *string `json:"address"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	customer, err := h.partnerService.CreateCustomer(c.Request.Context(), &service.CreateCustomerInput{
		Name:    req.Name,
		Phone:   req.Phone,
		Email:   req.Email,
		TaxCode: req.TaxCode,
		Address: req.Address,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, "Customer created successfully", customer)
}

// GetCustomer handles getting a single customer
func (h *PartnerHandler) GetCustomer(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid customer ID")
		return
	}

	customer, err := h.partnerService.GetCustomer(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Customer retrieved successfully", customer)
}

// UpdateCustomer handles updating a customer
func (h *PartnerHandler) UpdateCustomer(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid customer ID")
		return
	}

	var req struct {
		Name    *string `json:"name" binding:"omitempty,min=2,max=255"`
		Phone   *string `json:"phone"`
		Email   *string `json:"email" binding:"omitempty,email"`
		TaxCode *string `json:"tax_code"`
		Address *string `json:"address"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	customer, err := h.partnerService.UpdateCustomer(c.Request.Context(), id, &service.UpdateCustomerInput{
		Name:    req.Name,
		Phone:   req.Phone,
		Email:   req.Email,
		TaxCode: req.TaxCode,
		Address: req.Address,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Customer updated successfully", customer)
}

// DeleteCustomer handles deleting a customer
func (h *PartnerHandler) DeleteCustomer(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid customer ID")
		return
	}

	if err := h.partnerService.DeleteCustomer(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// ListVehicles handles listing vehicles
func (h *PartnerHandler) ListVehicles(c *gin.Context) {
	result, err := h.partnerService.ListVehicles(c.Request.Context(), GetPaginationParams(c), c.Query("search"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.SuccessWithPagination(c, 200, "Vehicles retrieved successfully", result)
}

// CreateVehicle handles creating a vehicle
func (h *PartnerHandler) CreateVehicle(c *gin.Context) {
	var req struct {
		PlateNumber string   `json:"plate_number" binding:"required,max=50"`
		DriverName  *string  `json:"driver_name"`
		Capacity    *float64 `json:"capacity" binding:"omitempty,gt=0"`
		Notes       *string  `json:"notes"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	vehicle, err := h.partnerService.CreateVehicle(c.Request.Context(), &service.CreateVehicleInput{
		PlateNumber: req.PlateNumber,
		DriverName:  req.DriverName,
		Capacity:    req.Capacity,
		Notes:       req.Notes,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, "Vehicle created successfully", vehicle)
}

// GetVehicle handles getting a single vehicle
func (h *PartnerHandler) GetVehicle(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid vehicle ID")
		return
	}

	vehicle, err := h.partnerService.GetVehicle(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Vehicle retrieved successfully", vehicle)
}

// UpdateVehicle handles updating a vehicle
func (h *PartnerHandler) UpdateVehicle(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid vehicle ID")
		return
	}

	var req struct {
		DriverName *string  `json:"driver_name"`
		Capacity   *float64 `json:"capacity" binding:"omitempty,gt=0"`
		Notes      *string  `json:"notes"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	vehicle, err := h.partnerService.UpdateVehicle(c.Request.Context(), id, &service.UpdateVehicleInput{
		DriverName: req.DriverName,
		Capacity:   req.Capacity,
		Notes:      req.Notes,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Vehicle updated successfully", vehicle)
}

// DeleteVehicle handles deleting a vehicle
func (h *PartnerHandler) DeleteVehicle(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid vehicle ID")
		return
	}

	if err := h.partnerService.DeleteVehicle(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
