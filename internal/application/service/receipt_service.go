package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/vlxsoft/materials-api/internal/domain/entity"
	"github.com/vlxsoft/materials-api/internal/domain/enum"
	"github.com/vlxsoft/materials-api/internal/domain/repository"
	"github.com/vlxsoft/materials-api/pkg/apperror"
	"github.com/vlxsoft/materials-api/pkg/pagination"
	"github.com/vlxsoft/materials-api/pkg/unitconv"
	"gorm.io/gorm"
)

// ReceiptService handles the purchase/export receipt ledger
type ReceiptService struct {
	receiptRepo   repository.ReceiptRepository
	transportRepo repository.TransportRecordRepository
	materialRepo  repository.MaterialRepository
	warehouseRepo repository.WarehouseRepository
	projectRepo   repository.ProjectRepository
	customerRepo  repository.CustomerRepository
	vehicleRepo   repository.VehicleRepository
	materialSvc   *MaterialService
}

// NewReceiptService creates a new receipt service
func NewReceiptService(
	receiptRepo repository.ReceiptRepository,
	transportRepo repository.TransportRecordRepository,
	materialRepo repository.MaterialRepository,
	warehouseRepo repository.WarehouseRepository,
	projectRepo repository.ProjectRepository,
	customerRepo repository.CustomerRepository,
	vehicleRepo repository.VehicleRepository,
	materialSvc *MaterialService,
) *ReceiptService {
	return &ReceiptService{
		receiptRepo:   receiptRepo,
		transportRepo: transportRepo,
		materialRepo:  materialRepo,
		warehouseRepo: warehouseRepo,
		projectRepo:   projectRepo,
		customerRepo:  customerRepo,
		vehicleRepo:   vehicleRepo,
		materialSvc:   materialSvc,
	}
}

// ReceiptItemInput is one line item as entered by the user. Quantity and
// UnitPrice are in the unit named by EnteredUnit; the other unit's quantity
// is derived from the density in effect at the receipt date.
type ReceiptItemInput struct {
	MaterialID  uuid.UUID
	EnteredUnit enum.EnteredUnit
	Quantity    float64
	UnitPrice   float64
}

// TransportInput describes the optional transport record attached to a receipt
type TransportInput struct {
	VehicleID *uuid.UUID
	Quantity  float64
	UnitPrice float64
	Fee       float64
	Notes     *string
}

// CreateReceiptInput represents the create receipt input
type CreateReceiptInput struct {
	Type        enum.ReceiptType
	ReceiptDate time.Time
	WarehouseID uuid.UUID
	ProjectID   *uuid.UUID
	CustomerID  *uuid.UUID
	Notes       *string
	CreatedBy   string
	Items       []ReceiptItemInput
	Transport   *TransportInput
}

// CreateReceipt validates the input, freezes a density per line item, derives
// both unit quantities, assigns the next receipt number for (type, date) and
// persists the header with its items atomically. A duplicate receipt number
// (lost race with a concurrent creation) is retried once with a fresh number.
func (s *ReceiptService) CreateReceipt(ctx context.Context, input *CreateReceiptInput) (*entity.Receipt, error) {
	if len(input.Items) == 0 {
		return nil, apperror.NewValidationError([]apperror.FieldError{
			{Field: "items", Message: "At least one line item is required"},
		})
	}

	if err := s.validateReferences(ctx, input.WarehouseID, input.ProjectID, input.CustomerID); err != nil {
		return nil, err
	}

	items, totals, err := s.buildItems(ctx, input.ReceiptDate, input.Items)
	if err != nil {
		return nil, err
	}

	receipt := &entity.Receipt{
		Type:                   input.Type,
		ReceiptDate:            input.ReceiptDate,
		WarehouseID:            input.WarehouseID,
		ProjectID:              input.ProjectID,
		CustomerID:             input.CustomerID,
		Notes:                  input.Notes,
		CreatedBy:              input.CreatedBy,
		TotalAmount:            totals.amount,
		TotalQuantityPrimary:   totals.primary,
		TotalQuantitySecondary: totals.secondary,
		Items:                  items,
	}

	if err := s.createNumbered(ctx, receipt); err != nil {
		return nil, err
	}

	if input.Transport != nil {
		if _, err := s.AddTransport(ctx, receipt.ID, input.Transport); err != nil {
			return nil, err
		}
	}

	return s.receiptRepo.GetWithDetails(ctx, receipt.ID)
}

// createNumbered assigns a receipt number and persists the receipt, retrying
// once when the unique index rejects the number.
func (s *ReceiptService) createNumbered(ctx context.Context, receipt *entity.Receipt) error {
	for attempt := 0; attempt < 2; attempt++ {
		number, err := s.receiptRepo.NextReceiptNo(ctx, receipt.Type.Prefix(), receipt.ReceiptDate)
		if err != nil {
			return err
		}
		receipt.ReceiptNo = number

		err = s.receiptRepo.CreateWithItems(ctx, receipt)
		if err == nil {
			return nil
		}
		if !errors.Is(err, gorm.ErrDuplicatedKey) {
			return err
		}
	}
	return apperror.NewConflictError("Receipt number collision, please retry")
}

type receiptTotals struct {
	amount    float64
	primary   float64
	secondary float64
}

// buildItems converts each input line into a persisted item with both unit
// quantities and a frozen density, and sums the header totals.
func (s *ReceiptService) buildItems(ctx context.Context, receiptDate time.Time, inputs []ReceiptItemInput) ([]entity.ReceiptItem, receiptTotals, error) {
	var totals receiptTotals
	items := make([]entity.ReceiptItem, 0, len(inputs))

	for i, in := range inputs {
		if in.Quantity <= 0 {
			return nil, totals, apperror.NewValidationError([]apperror.FieldError{
				{Field: fmt.Sprintf("items[%d].quantity", i), Message: "Quantity must be greater than zero"},
			})
		}
		if in.UnitPrice < 0 {
			return nil, totals, apperror.NewValidationError([]apperror.FieldError{
				{Field: fmt.Sprintf("items[%d].unit_price", i), Message: "Unit price cannot be negative"},
			})
		}

		material, err := s.materialRepo.GetByID(ctx, in.MaterialID)
		if err != nil {
			return nil, totals, err
		}
		if material == nil {
			return nil, totals, apperror.NewNotFoundError("Material")
		}

		density, defaulted, err := s.materialSvc.DensityAt(ctx, in.MaterialID, receiptDate)
		if err != nil {
			return nil, totals, err
		}

		item := entity.ReceiptItem{
			MaterialID:       in.MaterialID,
			EnteredUnit:      in.EnteredUnit,
			UnitPrice:        in.UnitPrice,
			DensityUsed:      density,
			DensityDefaulted: defaulted,
			TotalAmount:      unitconv.LineTotal(in.Quantity, in.UnitPrice),
		}
		if in.EnteredUnit == enum.EnteredUnitSecondary {
			item.QuantitySecondary = unitconv.RoundQuantity(in.Quantity)
			item.QuantityPrimary = unitconv.ToPrimary(in.Quantity, density)
		} else {
			item.QuantityPrimary = unitconv.RoundQuantity(in.Quantity)
			item.QuantitySecondary = unitconv.ToSecondary(in.Quantity, density)
		}

		totals.amount = unitconv.RoundMoney(totals.amount + item.TotalAmount)
		totals.primary = unitconv.RoundQuantity(totals.primary + item.QuantityPrimary)
		totals.secondary = unitconv.RoundQuantity(totals.secondary + item.QuantitySecondary)

		items = append(items, item)
	}

	return items, totals, nil
}

func (s *ReceiptService) validateReferences(ctx context.Context, warehouseID uuid.UUID, projectID, customerID *uuid.UUID) error {
	warehouse, err := s.warehouseRepo.GetByID(ctx, warehouseID)
	if err != nil {
		return err
	}
	if warehouse == nil {
		return apperror.NewNotFoundError("Warehouse")
	}

	if projectID != nil {
		project, err := s.projectRepo.GetByID(ctx, *projectID)
		if err != nil {
			return err
		}
		if project == nil {
			return apperror.NewNotFoundError("Project")
		}
	}

	if customerID != nil {
		customer, err := s.customerRepo.GetByID(ctx, *customerID)
		if err != nil {
			return err
		}
		if customer == nil {
			return apperror.NewNotFoundError("Customer")
		}
	}

	return nil
}

// GetReceipt retrieves a receipt with all its associations
func (s *ReceiptService) GetReceipt(ctx context.Context, id uuid.UUID) (*entity.Receipt, error) {
	receipt, err := s.receiptRepo.GetWithDetails(ctx, id)
	if err != nil {
		return nil, err
	}
	if receipt == nil {
		return nil, apperror.NewNotFoundError("Receipt")
	}
	return receipt, nil
}

// GetReceiptByNumber retrieves a receipt by its receipt number
func (s *ReceiptService) GetReceiptByNumber(ctx context.Context, receiptNo string) (*entity.Receipt, error) {
	receipt, err := s.receiptRepo.GetByReceiptNo(ctx, receiptNo)
	if err != nil {
		return nil, err
	}
	if receipt == nil {
		return nil, apperror.NewNotFoundError("Receipt")
	}
	return s.receiptRepo.GetWithDetails(ctx, receipt.ID)
}

// ListReceipts lists receipts with filtering
func (s *ReceiptService) ListReceipts(ctx context.Context, params *repository.ReceiptFilterParams) (*pagination.PaginatedResult[entity.Receipt], error) {
	receipts, total, err := s.receiptRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(receipts, pag), nil
}

// UpdateReceiptInput represents the update receipt input. Items, when
// present, replace the existing line items wholesale.
type UpdateReceiptInput struct {
	ReceiptDate *time.Time
	WarehouseID *uuid.UUID
	ProjectID   *uuid.UUID
	CustomerID  *uuid.UUID
	Notes       *string
	Items       []ReceiptItemInput
}

// UpdateReceipt updates a receipt header and, when items are supplied,
// replaces the line items. Replaced items get a density re-frozen at the
// receipt date; items of other receipts are untouched. The receipt number
// never changes, even when the date does.
func (s *ReceiptService) UpdateReceipt(ctx context.Context, id uuid.UUID, input *UpdateReceiptInput) (*entity.Receipt, error) {
	receipt, err := s.receiptRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if receipt == nil {
		return nil, apperror.NewNotFoundError("Receipt")
	}

	if input.ReceiptDate != nil {
		receipt.ReceiptDate = *input.ReceiptDate
	}
	if input.WarehouseID != nil {
		receipt.WarehouseID = *input.WarehouseID
	}
	if input.ProjectID != nil {
		receipt.ProjectID = input.ProjectID
	}
	if input.CustomerID != nil {
		receipt.CustomerID = input.CustomerID
	}
	if input.Notes != nil {
		receipt.Notes = input.Notes
	}

	if err := s.validateReferences(ctx, receipt.WarehouseID, receipt.ProjectID, receipt.CustomerID); err != nil {
		return nil, err
	}

	if input.Items != nil {
		if len(input.Items) == 0 {
			return nil, apperror.NewValidationError([]apperror.FieldError{
				{Field: "items", Message: "At least one line item is required"},
			})
		}
		items, totals, err := s.buildItems(ctx, receipt.ReceiptDate, input.Items)
		if err != nil {
			return nil, err
		}
		receipt.TotalAmount = totals.amount
		receipt.TotalQuantityPrimary = totals.primary
		receipt.TotalQuantitySecondary = totals.secondary
		if err := s.receiptRepo.ReplaceItems(ctx, receipt, items); err != nil {
			return nil, err
		}
	} else {
		if err := s.receiptRepo.Update(ctx, receipt); err != nil {
			return nil, err
		}
	}

	return s.receiptRepo.GetWithDetails(ctx, id)
}

// DeleteReceipt soft-deletes a receipt. Deleting an already-deleted receipt
// succeeds as a no-op. Once deleted, the receipt stops contributing to stock
// and report aggregations.
func (s *ReceiptService) DeleteReceipt(ctx context.Context, id uuid.UUID) error {
	receipt, err := s.receiptRepo.GetByIDUnscoped(ctx, id)
	if err != nil {
		return err
	}
	if receipt == nil {
		return apperror.NewNotFoundError("Receipt")
	}
	return s.receiptRepo.SoftDelete(ctx, id)
}

// AddTransport attaches a transport record to a receipt. A receipt can carry
// at most one record; a second attach is a conflict.
func (s *ReceiptService) AddTransport(ctx context.Context, receiptID uuid.UUID, input *TransportInput) (*entity.TransportRecord, error) {
	receipt, err := s.receiptRepo.GetByID(ctx, receiptID)
	if err != nil {
		return nil, err
	}
	if receipt == nil {
		return nil, apperror.NewNotFoundError("Receipt")
	}

	existing, err := s.transportRepo.GetByReceiptID(ctx, receiptID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.NewConflictError("Receipt already has a transport record")
	}

	if input.VehicleID != nil {
		vehicle, err := s.vehicleRepo.GetByID(ctx, *input.VehicleID)
		if err != nil {
			return nil, err
		}
		if vehicle == nil {
			return nil, apperror.NewNotFoundError("Vehicle")
		}
	}

	record := &entity.TransportRecord{
		ReceiptID: receiptID,
		VehicleID: input.VehicleID,
		Quantity:  unitconv.RoundQuantity(input.Quantity),
		UnitPrice: unitconv.RoundMoney(input.UnitPrice),
		Fee:       unitconv.RoundMoney(input.Fee),
		Notes:     input.Notes,
	}
	if err := s.transportRepo.Create(ctx, record); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperror.NewConflictError("Receipt already has a transport record")
		}
		return nil, err
	}
	return record, nil
}

// GetTransport retrieves the transport record of a receipt
func (s *ReceiptService) GetTransport(ctx context.Context, receiptID uuid.UUID) (*entity.TransportRecord, error) {
	record, err := s.transportRepo.GetByReceiptID(ctx, receiptID)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, apperror.NewNotFoundError("Transport record")
	}
	return record, nil
}

// UpdateTransport updates the transport record of a receipt
func (s *ReceiptService) UpdateTransport(ctx context.Context, receiptID uuid.UUID, input *TransportInput) (*entity.TransportRecord, error) {
	record, err := s.transportRepo.GetByReceiptID(ctx, receiptID)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, apperror.NewNotFoundError("Transport record")
	}

	if input.VehicleID != nil {
		vehicle, err := s.vehicleRepo.GetByID(ctx, *input.VehicleID)
		if err != nil {
			return nil, err
		}
		if vehicle == nil {
			return nil, apperror.NewNotFoundError("Vehicle")
		}
	}

	record.VehicleID = input.VehicleID
	record.Quantity = unitconv.RoundQuantity(input.Quantity)
	record.UnitPrice = unitconv.RoundMoney(input.UnitPrice)
	record.Fee = unitconv.RoundMoney(input.Fee)
	if input.Notes != nil {
		record.Notes = input.Notes
	}

	if err := s.transportRepo.Update(ctx, record); err != nil {
		return nil, err
	}
	return record, nil
}

// RemoveTransport deletes the transport record of a receipt
func (s *ReceiptService) RemoveTransport(ctx context.Context, receiptID uuid.UUID) error {
	record, err := s.transportRepo.GetByReceiptID(ctx, receiptID)
	if err != nil {
		return err
	}
	if record == nil {
		return apperror.NewNotFoundError("Transport record")
	}
	return s.transportRepo.Delete(ctx, record.ID)
}

// ListTransport lists transport records with filtering
func (s *ReceiptService) ListTransport(ctx context.Context, params *repository.TransportFilterParams) (*pagination.PaginatedResult[entity.TransportRecord], error) {
	records, total, err := s.transportRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(records, pag), nil
}
