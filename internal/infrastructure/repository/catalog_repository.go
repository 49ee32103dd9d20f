package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/vlxsoft/materials-api/internal/domain/entity"
	domainRepo "github.com/vlxsoft/materials-api/internal/domain/repository"
	"gorm.io/gorm"
)

type materialCategoryRepository struct {
	db *gorm.DB
}

// NewMaterialCategoryRepository creates a new material category repository
func NewMaterialCategoryRepository(db *gorm.DB) domainRepo.MaterialCategoryRepository {
	return &materialCategoryRepository{db: db}
}

func (r *materialCategoryRepository) Create(ctx context.Context, category *entity.MaterialCategory) error {
	return r.db.WithContext(ctx).Create(category).Error
}

func (r *materialCategoryRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.MaterialCategory, error) {
	var category entity.MaterialCategory
	err := r.db.WithContext(ctx).First(&category, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &category, err
}

func (r *materialCategoryRepository) GetByName(ctx context.Context, name string) (*entity.MaterialCategory, error) {
	var category entity.MaterialCategory
	err := r.db.WithContext(ctx).First(&category, "name = ?", name).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &category, err
}

func (r *materialCategoryRepository) Update(ctx context.Context, category *entity.MaterialCategory) error {
	return r.db.WithContext(ctx).Save(category).Error
}

func (r *materialCategoryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&entity.MaterialCategory{}, "id = ?", id).Error
}

func (r *materialCategoryRepository) List(ctx context.Context) ([]entity.MaterialCategory, error) {
	var categories []entity.MaterialCategory
	err := r.db.WithContext(ctx).Order("name ASC").Find(&categories).Error
	return categories, err
}

type unitRepository struct {
	db *gorm.DB
}

// NewUnitRepository creates a new unit repository
func NewUnitRepository(db *gorm.DB) domainRepo.UnitRepository {
	return &unitRepository{db: db}
}

func (r *unitRepository) Create(ctx context.Context, unit *entity.Unit) error {
	return r.db.WithContext(ctx).Create(unit).Error
}

func (r *unitRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Unit, error) {
	var unit entity.Unit
	err := r.db.WithContext(ctx).First(&unit, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &unit, err
}

func (r *unitRepository) GetByName(ctx context.Context, name string) (*entity.Unit, error) {
	var unit entity.Unit
	err := r.db.WithContext(ctx).First(&unit, "name = ?", name).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &unit, err
}

func (r *unitRepository) Update(ctx context.Context, unit *entity.Unit) error {
	return r.db.WithContext(ctx).Save(unit).Error
}

func (r *unitRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&entity.Unit{}, "id = ?", id).Error
}

func (r *unitRepository) List(ctx context.Context) ([]entity.Unit, error) {
	var units []entity.Unit
	err := r.db.WithContext(ctx).Order("name ASC").Find(&units).Error
	return units, err
}
