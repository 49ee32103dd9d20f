package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/vlxsoft/materials-api/internal/domain/entity"
	domainRepo "github.com/vlxsoft/materials-api/internal/domain/repository"
	"github.com/vlxsoft/materials-api/pkg/pagination"
	"gorm.io/gorm"
)

type materialRepository struct {
	db *gorm.DB
}

// NewMaterialRepository creates a new material repository
func NewMaterialRepository(db *gorm.DB) domainRepo.MaterialRepository {
	return &materialRepository{db: db}
}

// CreateWithHistory creates the material and its first density history entry
// in one transaction. Failure of either insert rolls back both.
func (r *materialRepository) CreateWithHistory(ctx context.Context, material *entity.Material, entry *entity.DensityHistory) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(material).Error; err != nil {
			return err
		}
		entry.MaterialID = material.ID
		return tx.Create(entry).Error
	})
}

func (r *materialRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Material, error) {
	var material entity.Material
	err := r.db.WithContext(ctx).
		Preload("Category").
		First(&material, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &material, err
}

func (r *materialRepository) GetByCode(ctx context.Context, code string) (*entity.Material, error) {
	var material entity.Material
	err := r.db.WithContext(ctx).First(&material, "code = ?", code).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &material, err
}

func (r *materialRepository) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]entity.Material, error) {
	var materials []entity.Material
	err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&materials).Error
	return materials, err
}

func (r *materialRepository) Update(ctx context.Context, material *entity.Material) error {
	return r.db.WithContext(ctx).Save(material).Error
}

func (r *materialRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&entity.Material{}, "id = ?", id).Error
}

func (r *materialRepository) List(ctx context.Context, params *domainRepo.MaterialFilterParams) ([]entity.Material, int64, error) {
	var materials []entity.Material
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.Material{})

	if params.Search != "" {
		query = query.Where("code ILIKE ? OR name ILIKE ?",
			"%"+params.Search+"%", "%"+params.Search+"%")
	}

	if params.CategoryID != nil {
		query = query.Where("category_id = ?", *params.CategoryID)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	sortBy := "name"
	sortOrder := "ASC"
	if params.SortBy != "" {
		sortBy = params.SortBy
	}
	if params.SortOrder == "DESC" || params.SortOrder == "desc" {
		sortOrder = "DESC"
	}

	params.Pagination.Validate()
	err := query.Offset(params.Pagination.Offset()).Limit(params.Pagination.PerPage).
		Preload("Category").
		Order(sortBy + " " + sortOrder).
		Find(&materials).Error

	return materials, total, err
}

// UpdateDensity closes the open history entry, appends the new one and syncs
// the material's cached current_density in a single transaction.
func (r *materialRepository) UpdateDensity(ctx context.Context, materialID uuid.UUID, newEntry *entity.DensityHistory) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&entity.DensityHistory{}).
			Where("material_id = ? AND effective_to IS NULL", materialID).
			Update("effective_to", newEntry.EffectiveFrom).Error; err != nil {
			return err
		}
		if err := tx.Create(newEntry).Error; err != nil {
			return err
		}
		return tx.Model(&entity.Material{}).
			Where("id = ?", materialID).
			Update("current_density", newEntry.Density).Error
	})
}

type densityHistoryRepository struct {
	db *gorm.DB
}

// NewDensityHistoryRepository creates a new density history repository
func NewDensityHistoryRepository(db *gorm.DB) domainRepo.DensityHistoryRepository {
	return &densityHistoryRepository{db: db}
}

func (r *densityHistoryRepository) ListByMaterial(ctx context.Context, materialID uuid.UUID, params *pagination.PaginationParams) ([]entity.DensityHistory, int64, error) {
	var entries []entity.DensityHistory
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.DensityHistory{}).
		Where("material_id = ?", materialID)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Validate()
	err := query.Offset(params.Offset()).Limit(params.PerPage).
		Order("effective_from DESC").
		Find(&entries).Error

	return entries, total, err
}

func (r *densityHistoryRepository) GetAt(ctx context.Context, materialID uuid.UUID, asOf time.Time) (*entity.DensityHistory, error) {
	var entry entity.DensityHistory
	err := r.db.WithContext(ctx).
		Where("material_id = ? AND effective_from <= ? AND (effective_to IS NULL OR effective_to > ?)",
			materialID, asOf, asOf).
		Order("effective_from DESC").
		First(&entry).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &entry, err
}

func (r *densityHistoryRepository) GetEarliest(ctx context.Context, materialID uuid.UUID) (*entity.DensityHistory, error) {
	var entry entity.DensityHistory
	err := r.db.WithContext(ctx).
		Where("material_id = ?", materialID).
		Order("effective_from ASC").
		First(&entry).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &entry, err
}
