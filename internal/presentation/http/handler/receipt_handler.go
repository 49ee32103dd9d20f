package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/vlxsoft/materials-api/internal/application/service"
	"github.com/vlxsoft/materials-api/internal/domain/enum"
	"github.com/vlxsoft/materials-api/internal/domain/repository"
	"github.com/vlxsoft/materials-api/internal/presentation/http/dto/request"
	"github.com/vlxsoft/materials-api/internal/presentation/http/dto/response"
)

// ReceiptHandler handles receipt and transport HTTP requests. Purchase and
// export receipts share the implementation; the receipt type comes from the
// route the handler is mounted on.
type ReceiptHandler struct {
	receiptService *service.ReceiptService
	receiptType    enum.ReceiptType
}

// NewReceiptHandler creates a receipt handler bound to one receipt type
func NewReceiptHandler(receiptService *service.ReceiptService, receiptType enum.ReceiptType) *ReceiptHandler {
	return &ReceiptHandler{
		receiptService: receiptService,
		receiptType:    receiptType,
	}
}

// List handles listing receipts of this handler's type
func (h *ReceiptHandler) List(c *gin.Context) {
	warehouseID, ok := GetUUIDQuery(c, "warehouse_id")
	if !ok {
		response.BadRequest(c, "Invalid warehouse ID")
		return
	}
	projectID, ok := GetUUIDQuery(c, "project_id")
	if !ok {
		response.BadRequest(c, "Invalid project ID")
		return
	}
	customerID, ok := GetUUIDQuery(c, "customer_id")
	if !ok {
		response.BadRequest(c, "Invalid customer ID")
		return
	}
	materialID, ok := GetUUIDQuery(c, "material_id")
	if !ok {
		response.BadRequest(c, "Invalid material ID")
		return
	}
	startDate, ok := GetDateQuery(c, "start_date")
	if !ok {
		response.BadRequest(c, "Invalid start date, expected YYYY-MM-DD")
		return
	}
	endDate, ok := GetDateQuery(c, "end_date")
	if !ok {
		response.BadRequest(c, "Invalid end date, expected YYYY-MM-DD")
		return
	}

	receiptType := h.receiptType
	params := &repository.ReceiptFilterParams{
		Pagination:  GetPaginationParams(c),
		Type:        &receiptType,
		Search:      c.Query("search"),
		WarehouseID: warehouseID,
		ProjectID:   projectID,
		CustomerID:  customerID,
		MaterialID:  materialID,
		StartDate:   startDate,
		EndDate:     endDate,
		SortBy:      c.Query("sort_by"),
		SortOrder:   c.Query("sort_order"),
	}

	result, err := h.receiptService.ListReceipts(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Receipts retrieved successfully", result)
}

// Create handles creating a receipt
func (h *ReceiptHandler) Create(c *gin.Context) {
	var req request.CreateReceiptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	receiptDate, err := time.Parse("2006-01-02", req.ReceiptDate)
	if err != nil {
		response.BadRequest(c, "Invalid receipt date, expected YYYY-MM-DD")
		return
	}

	items, err := toItemInputs(req.Items)
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	input := &service.CreateReceiptInput{
		Type:        h.receiptType,
		ReceiptDate: receiptDate,
		WarehouseID: req.WarehouseID,
		ProjectID:   req.ProjectID,
		CustomerID:  req.CustomerID,
		Notes:       req.Notes,
		CreatedBy:   GetActor(c),
		Items:       items,
	}
	if req.Transport != nil && req.Transport.Record != nil {
		input.Transport = toTransportInput(req.Transport.Record)
	}

	receipt, err := h.receiptService.CreateReceipt(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Receipt created successfully", receipt)
}

// Get handles getting a single receipt with its items and transport
func (h *ReceiptHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid receipt ID")
		return
	}

	receipt, err := h.receiptService.GetReceipt(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Receipt retrieved successfully", receipt)
}

// GetByNumber handles looking a receipt up by its receipt number
func (h *ReceiptHandler) GetByNumber(c *gin.Context) {
	receipt, err := h.receiptService.GetReceiptByNumber(c.Request.Context(), c.Param("number"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Receipt retrieved successfully", receipt)
}

// Update handles updating a receipt
func (h *ReceiptHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid receipt ID")
		return
	}

	var req request.UpdateReceiptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	input := &service.UpdateReceiptInput{
		WarehouseID: req.WarehouseID,
		ProjectID:   req.ProjectID,
		CustomerID:  req.CustomerID,
		Notes:       req.Notes,
	}
	if req.ReceiptDate != nil {
		receiptDate, err := time.Parse("2006-01-02", *req.ReceiptDate)
		if err != nil {
			response.BadRequest(c, "Invalid receipt date, expected YYYY-MM-DD")
			return
		}
		input.ReceiptDate = &receiptDate
	}
	if req.Items != nil {
		items, err := toItemInputs(req.Items)
		if err != nil {
			response.BadRequest(c, err.Error())
			return
		}
		input.Items = items
	}

	receipt, err := h.receiptService.UpdateReceipt(c.Request.Context(), id, input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Receipt updated successfully", receipt)
}

// Delete handles soft-deleting a receipt
func (h *ReceiptHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid receipt ID")
		return
	}

	if err := h.receiptService.DeleteReceipt(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}

// AddTransport handles attaching a transport record to a receipt
func (h *ReceiptHandler) AddTransport(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid receipt ID")
		return
	}

	var req request.TransportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	record, err := h.receiptService.AddTransport(c.Request.Context(), id, toTransportInput(&req))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Transport record created successfully", record)
}

// GetTransport handles getting the transport record of a receipt
func (h *ReceiptHandler) GetTransport(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid receipt ID")
		return
	}

	record, err := h.receiptService.GetTransport(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Transport record retrieved successfully", record)
}

// UpdateTransport handles updating the transport record of a receipt
func (h *ReceiptHandler) UpdateTransport(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid receipt ID")
		return
	}

	var req request.TransportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	record, err := h.receiptService.UpdateTransport(c.Request.Context(), id, toTransportInput(&req))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Transport record updated successfully", record)
}

// DeleteTransport handles removing the transport record of a receipt
func (h *ReceiptHandler) DeleteTransport(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid receipt ID")
		return
	}

	if err := h.receiptService.RemoveTransport(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}

// TransportHandler handles cross-receipt transport listing
type TransportHandler struct {
	receiptService *service.ReceiptService
}

// NewTransportHandler creates a new transport handler
func NewTransportHandler(receiptService *service.ReceiptService) *TransportHandler {
	return &TransportHandler{receiptService: receiptService}
}

// List handles listing transport records across receipts
func (h *TransportHandler) List(c *gin.Context) {
	vehicleID, ok := GetUUIDQuery(c, "vehicle_id")
	if !ok {
		response.BadRequest(c, "Invalid vehicle ID")
		return
	}
	startDate, ok := GetDateQuery(c, "start_date")
	if !ok {
		response.BadRequest(c, "Invalid start date, expected YYYY-MM-DD")
		return
	}
	endDate, ok := GetDateQuery(c, "end_date")
	if !ok {
		response.BadRequest(c, "Invalid end date, expected YYYY-MM-DD")
		return
	}

	params := &repository.TransportFilterParams{
		Pagination: GetPaginationParams(c),
		VehicleID:  vehicleID,
		StartDate:  startDate,
		EndDate:    endDate,
	}

	result, err := h.receiptService.ListTransport(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Transport records retrieved successfully", result)
}

func toItemInputs(reqs []request.ReceiptItemRequest) ([]service.ReceiptItemInput, error) {
	items := make([]service.ReceiptItemInput, 0, len(reqs))
	for _, r := range reqs {
		enteredUnit := enum.EnteredUnitPrimary
		if r.EnteredUnit != "" {
			parsed, err := enum.ParseEnteredUnit(r.EnteredUnit)
			if err != nil {
				return nil, err
			}
			enteredUnit = parsed
		}
		items = append(items, service.ReceiptItemInput{
			MaterialID:  r.MaterialID,
			EnteredUnit: enteredUnit,
			Quantity:    r.Quantity,
			UnitPrice:   r.UnitPrice,
		})
	}
	return items, nil
}

func toTransportInput(r *request.TransportRequest) *service.TransportInput {
	return &service.TransportInput{
		VehicleID: r.VehicleID,
		Quantity:  r.Quantity,
		UnitPrice: r.UnitPrice,
		Fee:       r.Fee,
		Notes:     r.Notes,
	}
}
