package service

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/vlxsoft/materials-api/internal/domain/entity"
	"github.com/vlxsoft/materials-api/internal/domain/repository"
	"github.com/vlxsoft/materials-api/pkg/apperror"
	"github.com/vlxsoft/materials-api/pkg/pagination"
	"github.com/vlxsoft/materials-api/pkg/utils"
)

// PartnerService handles the supporting registries receipts reference:
// warehouses, projects, customers and vehicles.
type PartnerService struct {
	warehouseRepo repository.WarehouseRepository
	projectRepo   repository.ProjectRepository
	customerRepo  repository.CustomerRepository
	vehicleRepo   repository.VehicleRepository
}

// NewPartnerService creates a new partner service
func NewPartnerService(
	warehouseRepo repository.WarehouseRepository,
	projectRepo repository.ProjectRepository,
	customerRepo repository.CustomerRepository,
	vehicleRepo repository.VehicleRepository,
) *PartnerService {
	return &PartnerService{
		warehouseRepo: warehouseRepo,
		projectRepo:   projectRepo,
		customerRepo:  customerRepo,
		vehicleRepo:   vehicleRepo,
	}
}

// CreateWarehouseInput represents the create warehouse input
type CreateWarehouseInput struct {
	Code    string
	Name    string
	Address *string
	Manager *string
}

// CreateWarehouse creates a new warehouse
func (s *PartnerService) CreateWarehouse(ctx context.Context, input *CreateWarehouseInput) (*entity.Warehouse, error) {
	code := utils.NormalizeCode(input.Code)
	if code == "" {
		return nil, apperror.NewBadRequestError("Warehouse code is required")
	}

	existing, err := s.warehouseRepo.GetByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.NewDuplicateError("Warehouse code")
	}

	warehouse := &entity.Warehouse{
		Code:    code,
		Name:    input.Name,
		Address: input.Address,
		Manager: input.Manager,
	}
	if err := s.warehouseRepo.Create(ctx, warehouse); err != nil {
		return nil, err
	}
	return warehouse, nil
}

// GetWarehouse retrieves a warehouse by ID
func (s *PartnerService) GetWarehouse(ctx context.Context, id uuid.UUID) (*entity.Warehouse, error) {
	warehouse, err := s.warehouseRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if warehouse == nil {
		return nil, apperror.NewNotFoundError("Warehouse")
	}
	return warehouse, nil
}

// ListWarehouses lists warehouses
func (s *PartnerService) ListWarehouses(ctx context.Context, params *pagination.PaginationParams, search string) (*pagination.PaginatedResult[entity.Warehouse], error) {
	warehouses, total, err := s.warehouseRepo.List(ctx, params, search)
	if err != nil {
		return nil, err
	}
	pag := pagination.NewPagination(params.Page, params.PerPage, total)
	return pagination.NewPaginatedResult(warehouses, pag), nil
}

// UpdateWarehouseInput represents the update warehouse input
type UpdateWarehouseInput struct {
	Name    *string
	Address *string
	Manager *string
}

// UpdateWarehouse updates a warehouse
func (s *PartnerService) UpdateWarehouse(ctx context.Context, id uuid.UUID, input *UpdateWarehouseInput) (*entity.Warehouse, error) {
	warehouse, err := s.warehouseRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if warehouse == nil {
		return nil, apperror.NewNotFoundError("Warehouse")
	}

	if input.Name != nil {
		warehouse.Name = *input.Name
	}
	if input.Address != nil {
		warehouse.Address = input.Address
	}
	if input.Manager != nil {
		warehouse.Manager = input.Manager
	}

	if err := s.warehouseRepo.Update(ctx, warehouse); err != nil {
		return nil, err
	}
	return warehouse, nil
}

// DeleteWarehouse soft-deletes a warehouse
func (s *PartnerService) DeleteWarehouse(ctx context.Context, id uuid.UUID) error {
	warehouse, err := s.warehouseRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if warehouse == nil {
		return apperror.NewNotFoundError("Warehouse")
	}
	return s.warehouseRepo.Delete(ctx, id)
}

// CreateProjectInput represents the create project input
type CreateProjectInput struct {
	Code    string
	Name    string
	Address *string
	Notes   *string
}

// CreateProject creates a new project
func (s *PartnerService) CreateProject(ctx context.Context, input *CreateProjectInput) (*entity.Project, error) {
	code := utils.NormalizeCode(input.Code)
	if code == "" {
		return nil, apperror.NewBadRequestError("Project code is required")
	}

	existing, err := s.projectRepo.GetByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.NewDuplicateError("Project code")
	}

	project := &entity.Project{
		Code:    code,
		Name:    input.Name,
		Address: input.Address,
		Notes:   input.Notes,
	}
	if err := s.projectRepo.Create(ctx, project); err != nil {
		return nil, err
	}
	return project, nil
}

// GetProject retrieves a project by ID
func (s *PartnerService) GetProject(ctx context.Context, id uuid.UUID) (*entity.Project, error) {
	project, err := s.projectRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if project == nil {
		return nil, apperror.NewNotFoundError("Project")
	}
	return project, nil
}

// ListProjects lists projects
func (s *PartnerService) ListProjects(ctx context.Context, params *pagination.PaginationParams, search string) (*pagination.PaginatedResult[entity.Project], error) {
	projects, total, err := s.projectRepo.List(ctx, params, search)
	if err != nil {
		return nil, err
	}
	pag := pagination.NewPagination(params.Page, params.PerPage, total)
	return pagination.NewPaginatedResult(projects, pag), nil
}

// UpdateProjectInput represents the update project input
type UpdateProjectInput struct {
	Name    *string
	Address *string
	Notes   *string
}

// UpdateProject updates a project
func (s *PartnerService) UpdateProject(ctx context.Context, id uuid.UUID, input *UpdateProjectInput) (*entity.Project, error) {
	project, err := s.projectRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if project == nil {
		return nil, apperror.NewNotFoundError("Project")
	}

	if input.Name != nil {
		project.Name = *input.Name
	}
	if input.Address != nil {
		project.Address = input.Address
	}
	if input.Notes != nil {
		project.Notes = input.Notes
	}

	if err := s.projectRepo.Update(ctx, project); err != nil {
		return nil, err
	}
	return project, nil
}

// DeleteProject soft-deletes a project
func (s *PartnerService) DeleteProject(ctx context.Context, id uuid.UUID) error {
	project, err := s.projectRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if project == nil {
		return apperror.NewNotFoundError("Project")
	}
	return s.projectRepo.Delete(ctx, id)
}

// CreateCustomerInput represents the create customer input
type CreateCustomerInput struct {
	Name    string
	Phone   *string
	Email   *string
	TaxCode *string
	Address *string
}

// CreateCustomer creates a new customer
func (s *PartnerService) CreateCustomer(ctx context.Context, input *CreateCustomerInput) (*entity.Customer, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, apperror.NewBadRequestError("Customer name is required")
	}

	customer := &entity.Customer{
		Name:    strings.TrimSpace(input.Name),
		Phone:   input.Phone,
		Email:   input.Email,
		TaxCode: input.TaxCode,
		Address: input.Address,
	}
	if err := s.customerRepo.Create(ctx, customer); err != nil {
		return nil, err
	}
	return customer, nil
}

// GetCustomer retrieves a customer by ID
func (s *PartnerService) GetCustomer(ctx context.Context, id uuid.UUID) (*entity.Customer, error) {
	customer, err := s.customerRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, apperror.NewNotFoundError("Customer")
	}
	return customer, nil
}

// ListCustomers lists customers
func (s *PartnerService) ListCustomers(ctx context.Context, params *pagination.PaginationParams, search string) (*pagination.PaginatedResult[entity.Customer], error) {
	customers, total, err := s.customerRepo.List(ctx, params, search)
	if err != nil {
		return nil, err
	}
	pag := pagination.NewPagination(params.Page, params.PerPage, total)
	return pagination.NewPaginatedResult(customers, pag), nil
}

// UpdateCustomerInput represents the update customer input
type UpdateCustomerInput struct {
	Name    *string
	Phone   *string
	Email   *string
	TaxCode *string
	Address *string
}

// UpdateCustomer updates a customer
func (s *PartnerService) UpdateCustomer(ctx context.Context, id uuid.UUID, input *UpdateCustomerInput) (*entity.Customer, error) {
	customer, err := s.customerRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, apperror.NewNotFoundError("Customer")
	}

	if input.Name != nil {
		customer.Name = strings.TrimSpace(*input.Name)
	}
	if input.Phone != nil {
		customer.Phone = input.Phone
	}
	if input.Email != nil {
		customer.Email = input.Email
	}
	if input.TaxCode != nil {
		customer.TaxCode = input.TaxCode
	}
	if input.Address != nil {
		customer.Address = input.Address
	}

	if err := s.customerRepo.Update(ctx, customer); err != nil {
		return nil, err
	}
	return customer, nil
}

// DeleteCustomer soft-deletes a customer
func (s *PartnerService) DeleteCustomer(ctx context.Context, id uuid.UUID) error {
	customer, err := s.customerRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if customer == nil {
		return apperror.NewNotFoundError("Customer")
	}
	return s.customerRepo.Delete(ctx, id)
}

// CreateVehicleInput represents the create vehicle input
type CreateVehicleInput struct {
	PlateNumber string
	DriverName  *string
	Capacity    *float64
	Notes       *string
}

// CreateVehicle creates a new vehicle
func (s *PartnerService) CreateVehicle(ctx context.Context, input *CreateVehicleInput) (*entity.Vehicle, error) {
	plate := utils.NormalizeCode(input.PlateNumber)
	if plate == "" {
		return nil, apperror.NewBadRequestError("Plate number is required")
	}

	existing, err := s.vehicleRepo.GetByPlateNumber(ctx, plate)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.NewDuplicateError("Vehicle plate number")
	}

	vehicle := &entity.Vehicle{
		PlateNumber: plate,
		DriverName:  input.DriverName,
		Capacity:    input.Capacity,
		Notes:       input.Notes,
	}
	if err := s.vehicleRepo.Create(ctx, vehicle); err != nil {
		return nil, err
	}
	return vehicle, nil
}

// GetVehicle retrieves a vehicle by ID
func (s *PartnerService) GetVehicle(ctx context.Context, id uuid.UUID) (*entity.Vehicle, error) {
	vehicle, err := s.vehicleRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if vehicle == nil {
		return nil, apperror.NewNotFoundError("Vehicle")
	}
	return vehicle, nil
}

// ListVehicles lists vehicles
func (s *PartnerService) ListVehicles(ctx context.Context, params *pagination.PaginationParams, search string) (*pagination.PaginatedResult[entity.Vehicle], error) {
	vehicles, total, err := s.vehicleRepo.List(ctx, params, search)
	if err != nil {
		return nil, err
	}
	pag := pagination.NewPagination(params.Page, params.PerPage, total)
	return pagination.NewPaginatedResult(vehicles, pag), nil
}

// UpdateVehicleInput represents the update vehicle input
type UpdateVehicleInput struct {
	DriverName *string
	Capacity   *float64
	Notes      *string
}

// UpdateVehicle updates a vehicle
func (s *PartnerService) UpdateVehicle(ctx context.Context, id uuid.UUID, input *UpdateVehicleInput) (*entity.Vehicle, error) {
	vehicle, err := s.vehicleRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if vehicle == nil {
		return nil, apperror.NewNotFoundError("Vehicle")
	}

	if input.DriverName != nil {
		vehicle.DriverName = input.DriverName
	}
	if input.Capacity != nil {
		vehicle.Capacity = input.Capacity
	}
	if input.Notes != nil {
		vehicle.Notes = input.Notes
	}

	if err := s.vehicleRepo.Update(ctx, vehicle); err != nil {
		return nil, err
	}
	return vehicle, nil
}

// DeleteVehicle soft-deletes a vehicle
func (s *PartnerService) DeleteVehicle(ctx context.Context, id uuid.UUID) error {
	vehicle, err := s.vehicleRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if vehicle == nil {
		return apperror.NewNotFoundError("Vehicle")
	}
	return s.vehicleRepo.Delete(ctx, id)
}
