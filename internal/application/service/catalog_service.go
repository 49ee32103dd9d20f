package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/vlxsoft/materials-api/internal/domain/entity"
	"github.com/vlxsoft/materials-api/internal/domain/repository"
	"github.com/vlxsoft/materials-api/pkg/apperror"
	"github.com/vlxsoft/materials-api/pkg/utils"
)

// CatalogService handles material categories and measurement units
type CatalogService struct {
	categoryRepo repository.MaterialCategoryRepository
	unitRepo     repository.UnitRepository
}

// NewCatalogService creates a new catalog service
func NewCatalogService(
	categoryRepo repository.MaterialCategoryRepository,
	unitRepo repository.UnitRepository,
) *CatalogService {
	return &CatalogService{
		categoryRepo: categoryRepo,
		unitRepo:     unitRepo,
	}
}

// CreateCategory creates a new material category
func (s *CatalogService) CreateCategory(ctx context.Context, name string) (*entity.MaterialCategory, error) {
	existing, err := s.categoryRepo.GetByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.NewDuplicateError("Category")
	}

	category := &entity.MaterialCategory{
		Name: name,
		Slug: utils.Slugify(name),
	}
	if err := s.categoryRepo.Create(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

// GetCategory retrieves a category by ID
func (s *CatalogService) GetCategory(ctx context.Context, id uuid.UUID) (*entity.MaterialCategory, error) {
	category, err := s.categoryRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, apperror.NewNotFoundError("Category")
	}
	return category, nil
}

// ListCategories lists all categories
func (s *CatalogService) ListCategories(ctx context.Context) ([]entity.MaterialCategory, error) {
	return s.categoryRepo.List(ctx)
}

// UpdateCategory renames a category
func (s *CatalogService) UpdateCategory(ctx context.Context, id uuid.UUID, name string) (*entity.MaterialCategory, error) {
	category, err := s.categoryRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, apperror.NewNotFoundError("Category")
	}

	if name != category.Name {
		existing, err := s.categoryRepo.GetByName(ctx, name)
		if err != nil {
			return nil, err
		}
		if existing != nil && existing.ID != id {
			return nil, apperror.NewDuplicateError("Category")
		}
		category.Name = name
		category.Slug = utils.Slugify(name)
	}

	if err := s.categoryRepo.Update(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

// DeleteCategory soft-deletes a category
func (s *CatalogService) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	category, err := s.categoryRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if category == nil {
		return apperror.NewNotFoundError("Category")
	}
	return s.categoryRepo.Delete(ctx, id)
}

// CreateUnit creates a new measurement unit
func (s *CatalogService) CreateUnit(ctx context.Context, name, shortCode string) (*entity.Unit, error) {
	existing, err := s.unitRepo.GetByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.NewDuplicateError("Unit")
	}

	unit := &entity.Unit{
		Name:      name,
		ShortCode: shortCode,
	}
	if err := s.unitRepo.Create(ctx, unit); err != nil {
		return nil, err
	}
	return unit, nil
}

// GetUnit retrieves a unit by ID
func (s *CatalogService) GetUnit(ctx context.Context, id uuid.UUID) (*entity.Unit, error) {
	unit, err := s.unitRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if unit == nil {
		return nil, apperror.NewNotFoundError("Unit")
	}
	return unit, nil
}

// ListUnits lists all units
func (s *CatalogService) ListUnits(ctx context.Context) ([]entity.Unit, error) {
	return s.unitRepo.List(ctx)
}

// UpdateUnit updates a unit
func (s *CatalogService) UpdateUnit(ctx context.Context, id uuid.UUID, name, shortCode string) (*entity.Unit, error) {
	unit, err := s.unitRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if unit == nil {
		return nil, apperror.NewNotFoundError("Unit")
	}

	if name != unit.Name {
		existing, err := s.unitRepo.GetByName(ctx, name)
		if err != nil {
			return nil, err
		}
		if existing != nil && existing.ID != id {
			return nil, apperror.NewDuplicateError("Unit")
		}
		unit.Name = name
	}
	unit.ShortCode = shortCode

	if err := s.unitRepo.Update(ctx, unit); err != nil {
		return nil, err
	}
	return unit, nil
}

// DeleteUnit soft-deletes a unit
func (s *CatalogService) DeleteUnit(ctx context.Context, id uuid.UUID) error {
	unit, err := s.unitRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if unit == nil {
		return apperror.NewNotFoundError("Unit")
	}
	return s.unitRepo.Delete(ctx, id)
}
