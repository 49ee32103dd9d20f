package repository

import (
	"context"
	"errors"

	"time"

	"github.com/google/uuid"
	"github.com/vlxsoft/materials-api/internal/domain/entity"
	"github.com/vlxsoft/materials-api/internal/domain/enum"
	domainRepo "github.com/vlxsoft/materials-api/internal/domain/repository"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type receiptRepository struct {
	db *gorm.DB
}

// NewReceiptRepository creates a new receipt repository
func NewReceiptRepository(db *gorm.DB) domainRepo.ReceiptRepository {
	return &receiptRepository{db: db}
}

// CreateWithItems inserts the header and its line items in one transaction so
// a partial failure never leaves an empty header behind.
func (r *receiptRepository) CreateWithItems(ctx context.Context, receipt *entity.Receipt) error {
	items := receipt.Items
	receipt.Items = nil
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(receipt).Error; err != nil {
			return err
		}
		for i := range items {
			items[i].ReceiptID = receipt.ID
		}
		if err := tx.Omit(clause.Associations).Create(&items).Error; err != nil {
			return err
		}
		receipt.Items = items
		return nil
	})
}

func (r *receiptRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Receipt, error) {
	var receipt entity.Receipt
	err := r.db.WithContext(ctx).First(&receipt, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &receipt, err
}

// GetByIDUnscoped returns the receipt even when soft-deleted, for audit reads.
func (r *receiptRepository) GetByIDUnscoped(ctx context.Context, id uuid.UUID) (*entity.Receipt, error) {
	var receipt entity.Receipt
	err := r.db.WithContext(ctx).Unscoped().
		Preload("Warehouse").
		Preload("Project").
		Preload("Customer").
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Unscoped() }).
		Preload("Items.Material").
		First(&receipt, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &receipt, err
}

func (r *receiptRepository) GetByReceiptNo(ctx context.Context, receiptNo string) (*entity.Receipt, error) {
	var receipt entity.Receipt
	err := r.db.WithContext(ctx).First(&receipt, "receipt_no = ?", receiptNo).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &receipt, err
}

func (r *receiptRepository) GetWithDetails(ctx context.Context, id uuid.UUID) (*entity.Receipt, error) {
	var receipt entity.Receipt
	err := r.db.WithContext(ctx).
		Preload("Warehouse").
		Preload("Project").
		Preload("Customer").
		Preload("Items.Material").
		Preload("Transport.Vehicle").
		First(&receipt, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &receipt, err
}

func (r *receiptRepository) Update(ctx context.Context, receipt *entity.Receipt) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(receipt).Error
}

// ReplaceItems soft-deletes the existing items, inserts the replacements and
// overwrites the cached header totals, all in one transaction.
func (r *receiptRepository) ReplaceItems(ctx context.Context, receipt *entity.Receipt, items []entity.ReceiptItem) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&entity.ReceiptItem{}, "receipt_id = ?", receipt.ID).Error; err != nil {
			return err
		}
		for i := range items {
			items[i].ReceiptID = receipt.ID
		}
		if err := tx.Omit(clause.Associations).Create(&items).Error; err != nil {
			return err
		}
		receipt.Items = items
		return tx.Omit(clause.Associations).Save(receipt).Error
	})
}

// SoftDelete marks the receipt deleted. Deleting an already-deleted receipt
// matches zero rows, which keeps the operation idempotent.
func (r *receiptRepository) SoftDelete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&entity.Receipt{}, "id = ?", id).Error
}

func (r *receiptRepository) List(ctx context.Context, params *domainRepo.ReceiptFilterParams) ([]entity.Receipt, int64, error) {
	var receipts []entity.Receipt
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.Receipt{})

	if params.Type != nil {
		query = query.Where("receipts.type = ?", *params.Type)
	}

	if params.Search != "" {
		query = query.Where("receipts.receipt_no ILIKE ?", "%"+params.Search+"%")
	}

	if params.WarehouseID != nil {
		query = query.Where("receipts.warehouse_id = ?", *params.WarehouseID)
	}

	if params.ProjectID != nil {
		query = query.Where("receipts.project_id = ?", *params.ProjectID)
	}

	if params.CustomerID != nil {
		query = query.Where("receipts.customer_id = ?", *params.CustomerID)
	}

	if params.MaterialID != nil {
		query = query.
			Joins("JOIN receipt_items ri ON ri.receipt_id = receipts.id AND ri.deleted_at IS NULL").
			Where("ri.material_id = ?", *params.MaterialID).
			Distinct("receipts.*")
	}

	if params.StartDate != nil {
		query = query.Where("receipts.receipt_date >= ?", *params.StartDate)
	}

	if params.EndDate != nil {
		query = query.Where("receipts.receipt_date <= ?", *params.EndDate)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	sortBy := "receipts.receipt_date"
	sortOrder := "DESC"
	if params.SortBy != "" {
		sortBy = params.SortBy
	}
	if params.SortOrder == "ASC" || params.SortOrder == "asc" {
		sortOrder = "ASC"
	}

	params.Pagination.Validate()
	err := query.Offset(params.Pagination.Offset()).Limit(params.Pagination.PerPage).
		Preload("Warehouse").
		Preload("Project").
		Preload("Customer").
		Order(sortBy + " " + sortOrder).
		Find(&receipts).Error

	return receipts, total, err
}

func (r *receiptRepository) ListRecent(ctx context.Context, receiptType enum.ReceiptType, limit int) ([]entity.Receipt, error) {
	var receipts []entity.Receipt
	err := r.db.WithContext(ctx).
		Where("type = ?", receiptType).
		Preload("Warehouse").
		Preload("Project").
		Preload("Customer").
		Order("created_at DESC").
		Limit(limit).
		Find(&receipts).Error
	return receipts, err
}

// NextReceiptNo delegates to the generate_receipt_number SQL function, which
// serializes the per-(prefix, day) counter row so concurrent callers always
// receive distinct numbers.
func (r *receiptRepository) NextReceiptNo(ctx context.Context, prefix string, date time.Time) (string, error) {
	var receiptNo string
	err := r.db.WithContext(ctx).
		Raw("SELECT generate_receipt_number(?, ?)", prefix, date.Format("2006-01-02")).
		Scan(&receiptNo).Error
	return receiptNo, err
}

type transportRecordRepository struct {
	db *gorm.DB
}

// NewTransportRecordRepository creates a new transport record repository
func NewTransportRecordRepository(db *gorm.DB) domainRepo.TransportRecordRepository {
	return &transportRecordRepository{db: db}
}

func (r *transportRecordRepository) Create(ctx context.Context, record *entity.TransportRecord) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(record).Error
}

func (r *transportRecordRepository) GetByReceiptID(ctx context.Context, receiptID uuid.UUID) (*entity.TransportRecord, error) {
	var record entity.TransportRecord
	err := r.db.WithContext(ctx).
		Preload("Vehicle").
		First(&record, "receipt_id = ?", receiptID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &record, err
}

func (r *transportRecordRepository) Update(ctx context.Context, record *entity.TransportRecord) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(record).Error
}

func (r *transportRecordRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&entity.TransportRecord{}, "id = ?", id).Error
}

func (r *transportRecordRepository) List(ctx context.Context, params *domainRepo.TransportFilterParams) ([]entity.TransportRecord, int64, error) {
	var records []entity.TransportRecord
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.TransportRecord{}).
		Joins("JOIN receipts ON receipts.id = transport_records.receipt_id AND receipts.deleted_at IS NULL")

	if params.VehicleID != nil {
		query = query.Where("transport_records.vehicle_id = ?", *params.VehicleID)
	}

	if params.StartDate != nil {
		query = query.Where("receipts.receipt_date >= ?", *params.StartDate)
	}

	if params.EndDate != nil {
		query = query.Where("receipts.receipt_date <= ?", *params.EndDate)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Pagination.Validate()
	err := query.Offset(params.Pagination.Offset()).Limit(params.Pagination.PerPage).
		Preload("Vehicle").
		Preload("Receipt").
		Order("transport_records.created_at DESC").
		Find(&records).Error

	return records, total, err
}
