package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/vlxsoft/materials-api/internal/domain/entity"
	"github.com/vlxsoft/materials-api/internal/domain/repository"
	"github.com/vlxsoft/materials-api/pkg/apperror"
	"github.com/vlxsoft/materials-api/pkg/pagination"
	"github.com/vlxsoft/materials-api/pkg/utils"
)

// DefaultDensity is used when a material has no density history at all.
// Callers that fall back to it get a defaulted=true flag so the line item
// can record that the conversion was not backed by a real coefficient.
const DefaultDensity = 1.0

// MaterialService handles material registry and density timeline operations
type MaterialService struct {
	materialRepo repository.MaterialRepository
	densityRepo  repository.DensityHistoryRepository
	categoryRepo repository.MaterialCategoryRepository
}

// NewMaterialService creates a new material service
func NewMaterialService(
	materialRepo repository.MaterialRepository,
	densityRepo repository.DensityHistoryRepository,
	categoryRepo repository.MaterialCategoryRepository,
) *MaterialService {
	return &MaterialService{
		materialRepo: materialRepo,
		densityRepo:  densityRepo,
		categoryRepo: categoryRepo,
	}
}

// CreateMaterialInput represents the create material input
type CreateMaterialInput struct {
	CategoryID    *uuid.UUID
	Code          string
	Name          string
	PrimaryUnit   string
	SecondaryUnit string
	Density       float64
	Notes         *string
	CreatedBy     string
}

// CreateMaterial creates a material together with its first density history
// entry, open from the creation instant.
func (s *MaterialService) CreateMaterial(ctx context.Context, input *CreateMaterialInput) (*entity.Material, error) {
	code := utils.NormalizeCode(input.Code)
	if code == "" {
		return nil, apperror.NewBadRequestError("Material code is required")
	}
	if input.Density <= 0 {
		return nil, apperror.NewValidationError([]apperror.FieldError{
			{Field: "density", Message: "Density must be greater than zero"},
		})
	}

	existing, err := s.materialRepo.GetByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.NewDuplicateError("Material code")
	}

	if input.CategoryID != nil {
		category, err := s.categoryRepo.GetByID(ctx, *input.CategoryID)
		if err != nil {
			return nil, err
		}
		if category == nil {
			return nil, apperror.NewNotFoundError("Category")
		}
	}

	material := &entity.Material{
		CategoryID:     input.CategoryID,
		Code:           code,
		Name:           input.Name,
		PrimaryUnit:    input.PrimaryUnit,
		SecondaryUnit:  input.SecondaryUnit,
		CurrentDensity: input.Density,
		Notes:          input.Notes,
		CreatedBy:      input.CreatedBy,
	}
	entry := &entity.DensityHistory{
		Density:       input.Density,
		EffectiveFrom: time.Now().UTC(),
		Reason:        "Initial density",
		CreatedBy:     input.CreatedBy,
	}
	if err := s.materialRepo.CreateWithHistory(ctx, material, entry); err != nil {
		return nil, err
	}

	return s.materialRepo.GetByID(ctx, material.ID)
}

// GetMaterial retrieves a material by ID
func (s *MaterialService) GetMaterial(ctx context.Context, id uuid.UUID) (*entity.Material, error) {
	material, err := s.materialRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if material == nil {
		return nil, apperror.NewNotFoundError("Material")
	}
	return material, nil
}

// ListMaterials lists materials with filtering
func (s *MaterialService) ListMaterials(ctx context.Context, params *repository.MaterialFilterParams) (*pagination.PaginatedResult[entity.Material], error) {
	materials, total, err := s.materialRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(materials, pag), nil
}

// UpdateMaterialInput represents the update material input. Density is not
// part of it: density changes go through UpdateDensity so the history stays
// append-only.
type UpdateMaterialInput struct {
	CategoryID    *uuid.UUID
	Name          *string
	PrimaryUnit   *string
	SecondaryUnit *string
	Notes         *string
}

// UpdateMaterial updates the descriptive fields of a material
func (s *MaterialService) UpdateMaterial(ctx context.Context, id uuid.UUID, input *UpdateMaterialInput) (*entity.Material, error) {
	material, err := s.materialRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if material == nil {
		return nil, apperror.NewNotFoundError("Material")
	}

	if input.CategoryID != nil {
		category, err := s.categoryRepo.GetByID(ctx, *input.CategoryID)
		if err != nil {
			return nil, err
		}
		if category == nil {
			return nil, apperror.NewNotFoundError("Category")
		}
		material.CategoryID = input.CategoryID
	}
	if input.Name != nil {
		material.Name = *input.Name
	}
	if input.PrimaryUnit != nil {
		material.PrimaryUnit = *input.PrimaryUnit
	}
	if input.SecondaryUnit != nil {
		material.SecondaryUnit = *input.SecondaryUnit
	}
	if input.Notes != nil {
		material.Notes = input.Notes
	}

	if err := s.materialRepo.Update(ctx, material); err != nil {
		return nil, err
	}

	return s.materialRepo.GetByID(ctx, material.ID)
}

// DeleteMaterial soft-deletes a material. Existing receipt items keep their
// frozen density and remain readable through unscoped lookups.
func (s *MaterialService) DeleteMaterial(ctx context.Context, id uuid.UUID) error {
	material, err := s.materialRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if material == nil {
		return apperror.NewNotFoundError("Material")
	}
	return s.materialRepo.Delete(ctx, id)
}

// UpdateDensityInput represents a density change request
type UpdateDensityInput struct {
	Density       float64
	EffectiveFrom *time.Time
	Reason        string
	CreatedBy     string
}

// UpdateDensity records a density change: the open history entry is closed at
// the effective instant, a new open entry is appended and the cached current
// density on the material is synced, all in one transaction.
func (s *MaterialService) UpdateDensity(ctx context.Context, materialID uuid.UUID, input *UpdateDensityInput) (*entity.Material, error) {
	if input.Density <= 0 {
		return nil, apperror.NewValidationError([]apperror.FieldError{
			{Field: "density", Message: "Density must be greater than zero"},
		})
	}

	material, err := s.materialRepo.GetByID(ctx, materialID)
	if err != nil {
		return nil, err
	}
	if material == nil {
		return nil, apperror.NewNotFoundError("Material")
	}

	effectiveFrom := time.Now().UTC()
	if input.EffectiveFrom != nil {
		effectiveFrom = input.EffectiveFrom.UTC()
	}

	entry := &entity.DensityHistory{
		MaterialID:    materialID,
		Density:       input.Density,
		EffectiveFrom: effectiveFrom,
		Reason:        input.Reason,
		CreatedBy:     input.CreatedBy,
	}
	if err := s.materialRepo.UpdateDensity(ctx, materialID, entry); err != nil {
		return nil, err
	}

	return s.materialRepo.GetByID(ctx, materialID)
}

// ListDensityHistory returns the density timeline of a material, newest first
func (s *MaterialService) ListDensityHistory(ctx context.Context, materialID uuid.UUID, params *pagination.PaginationParams) (*pagination.PaginatedResult[entity.DensityHistory], error) {
	material, err := s.materialRepo.GetByID(ctx, materialID)
	if err != nil {
		return nil, err
	}
	if material == nil {
		return nil, apperror.NewNotFoundError("Material")
	}

	entries, total, err := s.densityRepo.ListByMaterial(ctx, materialID, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Page, params.PerPage, total)
	return pagination.NewPaginatedResult(entries, pag), nil
}

// DensityAt resolves the density in effect for a material at a point in time.
// Resolution order: the history entry covering asOf, then the earliest entry
// (for dates before any history), then DefaultDensity with defaulted=true.
func (s *MaterialService) DensityAt(ctx context.Context, materialID uuid.UUID, asOf time.Time) (density float64, defaulted bool, err error) {
	entry, err := s.densityRepo.GetAt(ctx, materialID, asOf)
	if err != nil {
		return 0, false, err
	}
	if entry != nil {
		return entry.Density, false, nil
	}

	earliest, err := s.densityRepo.GetEarliest(ctx, materialID)
	if err != nil {
		return 0, false, err
	}
	if earliest != nil {
		return earliest.Density, false, nil
	}

	return DefaultDensity, true, nil
}
