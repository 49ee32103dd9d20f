package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/vlxsoft/materials-api/internal/domain/entity"
	"github.com/vlxsoft/materials-api/pkg/pagination"
)

// MaterialRepository defines the interface for material data operations
type MaterialRepository interface {
	// CreateWithHistory creates a material together with its first density
	// history entry in one transaction, so a material can never exist with a
	// cached density that the timeline does not back.
	CreateWithHistory(ctx context.Context, material *entity.Material, entry *entity.DensityHistory) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Material, error)
	GetByCode(ctx context.Context, code string) (*entity.Material, error)
	GetByIDs(ctx context.Context, ids []uuid.UUID) ([]entity.Material, error)
	Update(ctx context.Context, material *entity.Material) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, params *MaterialFilterParams) ([]entity.Material, int64, error)
	// UpdateDensity closes the open history entry, inserts a new open entry
	// and updates the material's cached current_density, all in one transaction.
	UpdateDensity(ctx context.Context, materialID uuid.UUID, newEntry *entity.DensityHistory) error
}

// MaterialFilterParams contains filtering parameters for material queries
type MaterialFilterParams struct {
	Pagination *pagination.PaginationParams
	Search     string
	CategoryID *uuid.UUID
	SortBy     string
	SortOrder  string
}

// DensityHistoryRepository defines the interface for density history queries.
// Writes go through MaterialRepository so the cached density and the timeline
// can never diverge.
type DensityHistoryRepository interface {
	ListByMaterial(ctx context.Context, materialID uuid.UUID, params *pagination.PaginationParams) ([]entity.DensityHistory, int64, error)
	// GetAt returns the entry whose [effective_from, effective_to) interval
	// contains asOf, or nil when the material has no covering entry.
	GetAt(ctx context.Context, materialID uuid.UUID, asOf time.Time) (*entity.DensityHistory, error)
	// GetEarliest returns the oldest entry for the material, or nil.
	GetEarliest(ctx context.Context, materialID uuid.UUID) (*entity.DensityHistory, error)
}

// MaterialCategoryRepository defines the interface for category data operations
type MaterialCategoryRepository interface {
	Create(ctx context.Context, category *entity.MaterialCategory) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.MaterialCategory, error)
	GetByName(ctx context.Context, name string) (*entity.MaterialCategory, error)
	Update(ctx context.Context, category *entity.MaterialCategory) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context) ([]entity.MaterialCategory, error)
}

// UnitRepository defines the interface for unit data operations
type UnitRepository interface {
	Create(ctx context.Context, unit *entity.Unit) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Unit, error)
	GetByName(ctx context.Context, name string) (*entity.Unit, error)
	Update(ctx context.Context, unit *entity.Unit) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context) ([]entity.Unit, error)
}
