package request

import "github.com/google/uuid"

// CreateMaterialRequest represents a material creation request
type CreateMaterialRequest struct {
	CategoryID    *uuid.UUID `json:"category_id"`
	Code          string     `json:"code" binding:"required,max=100"`
	Name          string     `json:"name" binding:"required,min=2,max=255"`
	PrimaryUnit   string     `json:"primary_unit" binding:"required,max=50"`
	SecondaryUnit string     `json:"secondary_unit" binding:"required,max=50"`
	Density       float64    `json:"density" binding:"required,gt=0"`
	Notes         *string    `json:"notes"`
}

// UpdateMaterialRequest represents a material update request. Density is
// deliberately absent: density changes go through the density endpoint so
// the history stays intact.
type UpdateMaterialRequest struct {
	CategoryID    *uuid.UUID `json:"category_id"`
	Name          *string    `json:"name" binding:"omitempty,min=2,max=255"`
	PrimaryUnit   *string    `json:"primary_unit" binding:"omitempty,max=50"`
	SecondaryUnit *string    `json:"secondary_unit" binding:"omitempty,max=50"`
	Notes         *string    `json:"notes"`
}

// UpdateDensityRequest represents a density change request
type UpdateDensityRequest struct {
	Density       float64 `json:"density" binding:"required,gt=0"`
	EffectiveFrom *string `json:"effective_from"`
	Reason        string  `json:"reason" binding:"omitempty,max=1000"`
}
