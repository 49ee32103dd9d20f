package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/vlxsoft/materials-api/internal/domain/entity"
	"github.com/vlxsoft/materials-api/internal/domain/enum"
	"github.com/vlxsoft/materials-api/pkg/pagination"
)

// ReceiptRepository defines the interface for receipt data operations
type ReceiptRepository interface {
	// CreateWithItems persists the header and its line items atomically.
	CreateWithItems(ctx context.Context, receipt *entity.Receipt) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Receipt, error)
	// GetByIDUnscoped also returns soft-deleted receipts, for audit lookups.
	GetByIDUnscoped(ctx context.Context, id uuid.UUID) (*entity.Receipt, error)
	GetByReceiptNo(ctx context.Context, receiptNo string) (*entity.Receipt, error)
	GetWithDetails(ctx context.Context, id uuid.UUID) (*entity.Receipt, error)
	Update(ctx context.Context, receipt *entity.Receipt) error
	// ReplaceItems deletes all existing items, inserts the new ones and
	// overwrites the header totals, in one transaction.
	ReplaceItems(ctx context.Context, receipt *entity.Receipt, items []entity.ReceiptItem) error
	// SoftDelete marks the receipt deleted; deleting an already-deleted
	// receipt is a no-op.
	SoftDelete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, params *ReceiptFilterParams) ([]entity.Receipt, int64, error)
	// ListRecent returns the most recently created receipts of one type.
	ListRecent(ctx context.Context, receiptType enum.ReceiptType, limit int) ([]entity.Receipt, error)
	// NextReceiptNo calls the database-side generator, which serializes the
	// per-(prefix, day) sequence so concurrent creations get distinct numbers.
	NextReceiptNo(ctx context.Context, prefix string, date time.Time) (string, error)
}

// ReceiptFilterParams contains filtering parameters for receipt queries
type ReceiptFilterParams struct {
	Pagination  *pagination.PaginationParams
	Type        *enum.ReceiptType
	Search      string
	WarehouseID *uuid.UUID
	ProjectID   *uuid.UUID
	CustomerID  *uuid.UUID
	MaterialID  *uuid.UUID
	StartDate   *time.Time
	EndDate     *time.Time
	SortBy      string
	SortOrder   string
}

// TransportRecordRepository defines the interface for transport record operations
type TransportRecordRepository interface {
	Create(ctx context.Context, record *entity.TransportRecord) error
	GetByReceiptID(ctx context.Context, receiptID uuid.UUID) (*entity.TransportRecord, error)
	Update(ctx context.Context, record *entity.TransportRecord) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, params *TransportFilterParams) ([]entity.TransportRecord, int64, error)
}

// TransportFilterParams contains filtering parameters for transport queries
type TransportFilterParams struct {
	Pagination *pagination.PaginationParams
	VehicleID  *uuid.UUID
	StartDate  *time.Time
	EndDate    *time.Time
}
