package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/vlxsoft/materials-api/internal/domain/entity"
	"github.com/vlxsoft/materials-api/internal/domain/enum"
	"github.com/vlxsoft/materials-api/internal/domain/repository"
	"github.com/vlxsoft/materials-api/pkg/pagination"
	"gorm.io/gorm"
)

// In-memory repository fakes. They mirror the persistence semantics the gorm
// implementations rely on: soft deletes hide rows from scoped reads, the
// receipt number counter is per (prefix, day), and the analytics queries sum
// only non-deleted receipts and items.

type fakeStore struct {
	materials  map[uuid.UUID]*entity.Material
	density    []entity.DensityHistory
	categories map[uuid.UUID]*entity.MaterialCategory
	units      map[uuid.UUID]*entity.Unit
	warehouses map[uuid.UUID]*entity.Warehouse
	projects   map[uuid.UUID]*entity.Project
	customers  map[uuid.UUID]*entity.Customer
	vehicles   map[uuid.UUID]*entity.Vehicle
	receipts   map[uuid.UUID]*entity.Receipt
	transport  map[uuid.UUID]*entity.TransportRecord
	counters   map[string]int

	// when true, the next CreateWithItems fails with a duplicate-key error
	failNextCreate bool
	// when true, the next CreateWithHistory fails its history insert and
	// rolls back, like the transactional gorm implementation
	failNextHistoryCreate bool
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		materials:  make(map[uuid.UUID]*entity.Material),
		categories: make(map[uuid.UUID]*entity.MaterialCategory),
		units:      make(map[uuid.UUID]*entity.Unit),
		warehouses: make(map[uuid.UUID]*entity.Warehouse),
		projects:   make(map[uuid.UUID]*entity.Project),
		customers:  make(map[uuid.UUID]*entity.Customer),
		vehicles:   make(map[uuid.UUID]*entity.Vehicle),
		receipts:   make(map[uuid.UUID]*entity.Receipt),
		transport:  make(map[uuid.UUID]*entity.TransportRecord),
		counters:   make(map[string]int),
	}
}

func (s *fakeStore) addWarehouse(name string) *entity.Warehouse {
	w := &entity.Warehouse{ID: uuid.New(), Code: "WH-" + name, Name: name}
	s.warehouses[w.ID] = w
	return w
}

func (s *fakeStore) addProject(name string) *entity.Project {
	p := &entity.Project{ID: uuid.New(), Code: "PRJ-" + name, Name: name}
	s.projects[p.ID] = p
	return p
}

func (s *fakeStore) addCustomer(name string) *entity.Customer {
	c := &entity.Customer{ID: uuid.New(), Name: name}
	s.customers[c.ID] = c
	return c
}

func (s *fakeStore) addVehicle(plate string) *entity.Vehicle {
	v := &entity.Vehicle{ID: uuid.New(), PlateNumber: plate}
	s.vehicles[v.ID] = v
	return v
}

// material repository

type fakeMaterialRepo struct{ s *fakeStore }

func (r *fakeMaterialRepo) CreateWithHistory(_ context.Context, m *entity.Material, entry *entity.DensityHistory) error {
	if r.s.failNextHistoryCreate {
		r.s.failNextHistoryCreate = false
		return gorm.ErrInvalidData
	}
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	m.CreatedAt = time.Now()
	r.s.materials[m.ID] = m
	if entry.ID == uuid.Nil {
		entry.ID = uuid.New()
	}
	entry.MaterialID = m.ID
	r.s.density = append(r.s.density, *entry)
	return nil
}

func (r *fakeMaterialRepo) GetByID(_ context.Context, id uuid.UUID) (*entity.Material, error) {
	m, ok := r.s.materials[id]
	if !ok || m.DeletedAt.Valid {
		return nil, nil
	}
	return m, nil
}

func (r *fakeMaterialRepo) GetByCode(_ context.Context, code string) (*entity.Material, error) {
	for _, m := range r.s.materials {
		if m.Code == code && !m.DeletedAt.Valid {
			return m, nil
		}
	}
	return nil, nil
}

func (r *fakeMaterialRepo) GetByIDs(_ context.Context, ids []uuid.UUID) ([]entity.Material, error) {
	var out []entity.Material
	for _, id := range ids {
		if m, ok := r.s.materials[id]; ok && !m.DeletedAt.Valid {
			out = append(out, *m)
		}
	}
	return out, nil
}

func (r *fakeMaterialRepo) Update(_ context.Context, m *entity.Material) error {
	r.s.materials[m.ID] = m
	return nil
}

func (r *fakeMaterialRepo) Delete(_ context.Context, id uuid.UUID) error {
	if m, ok := r.s.materials[id]; ok {
		m.DeletedAt = gorm.DeletedAt{Time: time.Now(), Valid: true}
	}
	return nil
}

func (r *fakeMaterialRepo) List(_ context.Context, _ *repository.MaterialFilterParams) ([]entity.Material, int64, error) {
	var out []entity.Material
	for _, m := range r.s.materials {
		if !m.DeletedAt.Valid {
			out = append(out, *m)
		}
	}
	return out, int64(len(out)), nil
}

func (r *fakeMaterialRepo) UpdateDensity(_ context.Context, materialID uuid.UUID, newEntry *entity.DensityHistory) error {
	m, ok := r.s.materials[materialID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	for i := range r.s.density {
		e := &r.s.density[i]
		if e.MaterialID == materialID && e.EffectiveTo == nil {
			to := newEntry.EffectiveFrom
			e.EffectiveTo = &to
		}
	}
	if newEntry.ID == uuid.Nil {
		newEntry.ID = uuid.New()
	}
	r.s.density = append(r.s.density, *newEntry)
	m.CurrentDensity = newEntry.Density
	return nil
}

// density history repository

type fakeDensityRepo struct{ s *fakeStore }

func (r *fakeDensityRepo) ListByMaterial(_ context.Context, materialID uuid.UUID, _ *pagination.PaginationParams) ([]entity.DensityHistory, int64, error) {
	var out []entity.DensityHistory
	for _, e := range r.s.density {
		if e.MaterialID == materialID {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].EffectiveFrom.After(out[j].EffectiveFrom) })
	return out, int64(len(out)), nil
}

func (r *fakeDensityRepo) GetAt(_ context.Context, materialID uuid.UUID, asOf time.Time) (*entity.DensityHistory, error) {
	var best *entity.DensityHistory
	for i := range r.s.density {
		e := r.s.density[i]
		if e.MaterialID != materialID || !e.Covers(asOf) {
			continue
		}
		if best == nil || e.EffectiveFrom.After(best.EffectiveFrom) {
			best = &e
		}
	}
	return best, nil
}

func (r *fakeDensityRepo) GetEarliest(_ context.Context, materialID uuid.UUID) (*entity.DensityHistory, error) {
	var best *entity.DensityHistory
	for i := range r.s.density {
		e := r.s.density[i]
		if e.MaterialID != materialID {
			continue
		}
		if best == nil || e.EffectiveFrom.Before(best.EffectiveFrom) {
			best = &e
		}
	}
	return best, nil
}

// category repository

type fakeCategoryRepo struct{ s *fakeStore }

func (r *fakeCategoryRepo) Create(_ context.Context, c *entity.MaterialCategory) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	r.s.categories[c.ID] = c
	return nil
}

func (r *fakeCategoryRepo) GetByID(_ context.Context, id uuid.UUID) (*entity.MaterialCategory, error) {
	c, ok := r.s.categories[id]
	if !ok || c.DeletedAt.Valid {
		return nil, nil
	}
	return c, nil
}

func (r *fakeCategoryRepo) GetByName(_ context.Context, name string) (*entity.MaterialCategory, error) {
	for _, c := range r.s.categories {
		if c.Name == name && !c.DeletedAt.Valid {
			return c, nil
		}
	}
	return nil, nil
}

func (r *fakeCategoryRepo) Update(_ context.Context, c *entity.MaterialCategory) error {
	r.s.categories[c.ID] = c
	return nil
}

func (r *fakeCategoryRepo) Delete(_ context.Context, id uuid.UUID) error {
	if c, ok := r.s.categories[id]; ok {
		c.DeletedAt = gorm.DeletedAt{Time: time.Now(), Valid: true}
	}
	return nil
}

func (r *fakeCategoryRepo) List(_ context.Context) ([]entity.MaterialCategory, error) {
	var out []entity.MaterialCategory
	for _, c := range r.s.categories {
		if !c.DeletedAt.Valid {
			out = append(out, *c)
		}
	}
	return out, nil
}

// unit repository

type fakeUnitRepo struct{ s *fakeStore }

func (r *fakeUnitRepo) Create(_ context.Context, u *entity.Unit) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	r.s.units[u.ID] = u
	return nil
}

func (r *fakeUnitRepo) GetByID(_ context.Context, id uuid.UUID) (*entity.Unit, error) {
	u, ok := r.s.units[id]
	if !ok || u.DeletedAt.Valid {
		return nil, nil
	}
	return u, nil
}

func (r *fakeUnitRepo) GetByName(_ context.Context, name string) (*entity.Unit, error) {
	for _, u := range r.s.units {
		if u.Name == name && !u.DeletedAt.Valid {
			return u, nil
		}
	}
	return nil, nil
}

func (r *fakeUnitRepo) Update(_ context.Context, u *entity.Unit) error {
	r.s.units[u.ID] = u
	return nil
}

func (r *fakeUnitRepo) Delete(_ context.Context, id uuid.UUID) error {
	if u, ok := r.s.units[id]; ok {
		u.DeletedAt = gorm.DeletedAt{Time: time.Now(), Valid: true}
	}
	return nil
}

func (r *fakeUnitRepo) List(_ context.Context) ([]entity.Unit, error) {
	var out []entity.Unit
	for _, u := range r.s.units {
		if !u.DeletedAt.Valid {
			out = append(out, *u)
		}
	}
	return out, nil
}

// receipt repository

type fakeReceiptRepo struct{ s *fakeStore }

func (r *fakeReceiptRepo) CreateWithItems(_ context.Context, receipt *entity.Receipt) error {
	if r.s.failNextCreate {
		r.s.failNextCreate = false
		return gorm.ErrDuplicatedKey
	}
	for _, existing := range r.s.receipts {
		if existing.ReceiptNo == receipt.ReceiptNo {
			return gorm.ErrDuplicatedKey
		}
	}
	if receipt.ID == uuid.Nil {
		receipt.ID = uuid.New()
	}
	receipt.CreatedAt = time.Now()
	for i := range receipt.Items {
		if receipt.Items[i].ID == uuid.Nil {
			receipt.Items[i].ID = uuid.New()
		}
		receipt.Items[i].ReceiptID = receipt.ID
	}
	r.s.receipts[receipt.ID] = receipt
	return nil
}

func (r *fakeReceiptRepo) GetByID(_ context.Context, id uuid.UUID) (*entity.Receipt, error) {
	rec, ok := r.s.receipts[id]
	if !ok || rec.DeletedAt.Valid {
		return nil, nil
	}
	return rec, nil
}

func (r *fakeReceiptRepo) GetByIDUnscoped(_ context.Context, id uuid.UUID) (*entity.Receipt, error) {
	rec, ok := r.s.receipts[id]
	if !ok {
		return nil, nil
	}
	return rec, nil
}

func (r *fakeReceiptRepo) GetByReceiptNo(_ context.Context, receiptNo string) (*entity.Receipt, error) {
	for _, rec := range r.s.receipts {
		if rec.ReceiptNo == receiptNo && !rec.DeletedAt.Valid {
			return rec, nil
		}
	}
	return nil, nil
}

func (r *fakeReceiptRepo) GetWithDetails(ctx context.Context, id uuid.UUID) (*entity.Receipt, error) {
	return r.GetByID(ctx, id)
}

func (r *fakeReceiptRepo) Update(_ context.Context, receipt *entity.Receipt) error {
	r.s.receipts[receipt.ID] = receipt
	return nil
}

func (r *fakeReceiptRepo) ReplaceItems(_ context.Context, receipt *entity.Receipt, items []entity.ReceiptItem) error {
	for i := range items {
		if items[i].ID == uuid.Nil {
			items[i].ID = uuid.New()
		}
		items[i].ReceiptID = receipt.ID
	}
	receipt.Items = items
	r.s.receipts[receipt.ID] = receipt
	return nil
}

func (r *fakeReceiptRepo) SoftDelete(_ context.Context, id uuid.UUID) error {
	if rec, ok := r.s.receipts[id]; ok && !rec.DeletedAt.Valid {
		rec.DeletedAt = gorm.DeletedAt{Time: time.Now(), Valid: true}
	}
	return nil
}

func (r *fakeReceiptRepo) List(_ context.Context, params *repository.ReceiptFilterParams) ([]entity.Receipt, int64, error) {
	var out []entity.Receipt
	for _, rec := range r.s.receipts {
		if rec.DeletedAt.Valid {
			continue
		}
		if params.Type != nil && rec.Type != *params.Type {
			continue
		}
		out = append(out, *rec)
	}
	return out, int64(len(out)), nil
}

func (r *fakeReceiptRepo) ListRecent(_ context.Context, receiptType enum.ReceiptType, limit int) ([]entity.Receipt, error) {
	var out []entity.Receipt
	for _, rec := range r.s.receipts {
		if rec.DeletedAt.Valid || rec.Type != receiptType {
			continue
		}
		out = append(out, *rec)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *fakeReceiptRepo) NextReceiptNo(_ context.Context, prefix string, date time.Time) (string, error) {
	key := prefix + date.Format("060102")
	r.s.counters[key]++
	return fmt.Sprintf("%s%s%03d", prefix, date.Format("060102"), r.s.counters[key]), nil
}

// transport repository

type fakeTransportRepo struct{ s *fakeStore }

func (r *fakeTransportRepo) Create(_ context.Context, record *entity.TransportRecord) error {
	for _, existing := range r.s.transport {
		if existing.ReceiptID == record.ReceiptID {
			return gorm.ErrDuplicatedKey
		}
	}
	if record.ID == uuid.Nil {
		record.ID = uuid.New()
	}
	r.s.transport[record.ID] = record
	return nil
}

func (r *fakeTransportRepo) GetByReceiptID(_ context.Context, receiptID uuid.UUID) (*entity.TransportRecord, error) {
	for _, record := range r.s.transport {
		if record.ReceiptID == receiptID {
			return record, nil
		}
	}
	return nil, nil
}

func (r *fakeTransportRepo) Update(_ context.Context, record *entity.TransportRecord) error {
	r.s.transport[record.ID] = record
	return nil
}

func (r *fakeTransportRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.s.transport, id)
	return nil
}

func (r *fakeTransportRepo) List(_ context.Context, _ *repository.TransportFilterParams) ([]entity.TransportRecord, int64, error) {
	var out []entity.TransportRecord
	for _, record := range r.s.transport {
		out = append(out, *record)
	}
	return out, int64(len(out)), nil
}

// partner repositories

type fakeWarehouseRepo struct{ s *fakeStore }

func (r *fakeWarehouseRepo) Create(_ context.Context, w *entity.Warehouse) error {
	if w.ID == uuid.Nil {
		w.ID = uuid.New()
	}
	r.s.warehouses[w.ID] = w
	return nil
}

func (r *fakeWarehouseRepo) GetByID(_ context.Context, id uuid.UUID) (*entity.Warehouse, error) {
	w, ok := r.s.warehouses[id]
	if !ok || w.DeletedAt.Valid {
		return nil, nil
	}
	return w, nil
}

func (r *fakeWarehouseRepo) GetByCode(_ context.Context, code string) (*entity.Warehouse, error) {
	for _, w := range r.s.warehouses {
		if w.Code == code && !w.DeletedAt.Valid {
			return w, nil
		}
	}
	return nil, nil
}

func (r *fakeWarehouseRepo) Update(_ context.Context, w *entity.Warehouse) error {
	r.s.warehouses[w.ID] = w
	return nil
}

func (r *fakeWarehouseRepo) Delete(_ context.Context, id uuid.UUID) error {
	if w, ok := r.s.warehouses[id]; ok {
		w.DeletedAt = gorm.DeletedAt{Time: time.Now(), Valid: true}
	}
	return nil
}

func (r *fakeWarehouseRepo) List(_ context.Context, _ *pagination.PaginationParams, _ string) ([]entity.Warehouse, int64, error) {
	var out []entity.Warehouse
	for _, w := range r.s.warehouses {
		if !w.DeletedAt.Valid {
			out = append(out, *w)
		}
	}
	return out, int64(len(out)), nil
}

type fakeProjectRepo struct{ s *fakeStore }

func (r *fakeProjectRepo) Create(_ context.Context, p *entity.Project) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	r.s.projects[p.ID] = p
	return nil
}

func (r *fakeProjectRepo) GetByID(_ context.Context, id uuid.UUID) (*entity.Project, error) {
	p, ok := r.s.projects[id]
	if !ok || p.DeletedAt.Valid {
		return nil, nil
	}
	return p, nil
}

func (r *fakeProjectRepo) GetByCode(_ context.Context, code string) (*entity.Project, error) {
	for _, p := range r.s.projects {
		if p.Code == code && !p.DeletedAt.Valid {
			return p, nil
		}
	}
	return nil, nil
}

func (r *fakeProjectRepo) Update(_ context.Context, p *entity.Project) error {
	r.s.projects[p.ID] = p
	return nil
}

func (r *fakeProjectRepo) Delete(_ context.Context, id uuid.UUID) error {
	if p, ok := r.s.projects[id]; ok {
		p.DeletedAt = gorm.DeletedAt{Time: time.Now(), Valid: true}
	}
	return nil
}

func (r *fakeProjectRepo) List(_ context.Context, _ *pagination.PaginationParams, _ string) ([]entity.Project, int64, error) {
	var out []entity.Project
	for _, p := range r.s.projects {
		if !p.DeletedAt.Valid {
			out = append(out, *p)
		}
	}
	return out, int64(len(out)), nil
}

type fakeCustomerRepo struct{ s *fakeStore }

func (r *fakeCustomerRepo) Create(_ context.Context, c *entity.Customer) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	r.s.customers[c.ID] = c
	return nil
}

func (r *fakeCustomerRepo) GetByID(_ context.Context, id uuid.UUID) (*entity.Customer, error) {
	c, ok := r.s.customers[id]
	if !ok || c.DeletedAt.Valid {
		return nil, nil
	}
	return c, nil
}

func (r *fakeCustomerRepo) Update(_ context.Context, c *entity.Customer) error {
	r.s.customers[c.ID] = c
	return nil
}

func (r *fakeCustomerRepo) Delete(_ context.Context, id uuid.UUID) error {
	if c, ok := r.s.customers[id]; ok {
		c.DeletedAt = gorm.DeletedAt{Time: time.Now(), Valid: true}
	}
	return nil
}

func (r *fakeCustomerRepo) List(_ context.Context, _ *pagination.PaginationParams, _ string) ([]entity.Customer, int64, error) {
	var out []entity.Customer
	for _, c := range r.s.customers {
		if !c.DeletedAt.Valid {
			out = append(out, *c)
		}
	}
	return out, int64(len(out)), nil
}

type fakeVehicleRepo struct{ s *fakeStore }

func (r *fakeVehicleRepo) Create(_ context.Context, v *entity.Vehicle) error {
	if v.ID == uuid.Nil {
		v.ID = uuid.New()
	}
	r.s.vehicles[v.ID] = v
	return nil
}

func (r *fakeVehicleRepo) GetByID(_ context.Context, id uuid.UUID) (*entity.Vehicle, error) {
	v, ok := r.s.vehicles[id]
	if !ok || v.DeletedAt.Valid {
		return nil, nil
	}
	return v, nil
}

func (r *fakeVehicleRepo) GetByPlateNumber(_ context.Context, plate string) (*entity.Vehicle, error) {
	for _, v := range r.s.vehicles {
		if v.PlateNumber == plate && !v.DeletedAt.Valid {
			return v, nil
		}
	}
	return nil, nil
}

func (r *fakeVehicleRepo) Update(_ context.Context, v *entity.Vehicle) error {
	r.s.vehicles[v.ID] = v
	return nil
}

func (r *fakeVehicleRepo) Delete(_ context.Context, id uuid.UUID) error {
	if v, ok := r.s.vehicles[id]; ok {
		v.DeletedAt = gorm.DeletedAt{Time: time.Now(), Valid: true}
	}
	return nil
}

func (r *fakeVehicleRepo) List(_ context.Context, _ *pagination.PaginationParams, _ string) ([]entity.Vehicle, int64, error) {
	var out []entity.Vehicle
	for _, v := range r.s.vehicles {
		if !v.DeletedAt.Valid {
			out = append(out, *v)
		}
	}
	return out, int64(len(out)), nil
}

// analytics repository, computed over the in-memory ledger the same way the
// SQL implementation sums the tables

type fakeAnalyticsRepo struct{ s *fakeStore }

func (r *fakeAnalyticsRepo) SumStock(_ context.Context, warehouseID, materialID *uuid.UUID) ([]repository.StockRow, error) {
	type key struct{ warehouse, material uuid.UUID }
	sums := make(map[key]*repository.StockRow)

	for _, rec := range r.s.receipts {
		if rec.DeletedAt.Valid {
			continue
		}
		if warehouseID != nil && rec.WarehouseID != *warehouseID {
			continue
		}
		sign := 1.0
		if rec.Type == enum.ReceiptTypeExport {
			sign = -1.0
		}
		for _, item := range rec.Items {
			if item.DeletedAt.Valid {
				continue
			}
			if materialID != nil && item.MaterialID != *materialID {
				continue
			}
			k := key{rec.WarehouseID, item.MaterialID}
			row, ok := sums[k]
			if !ok {
				row = &repository.StockRow{WarehouseID: rec.WarehouseID, MaterialID: item.MaterialID}
				if w := r.s.warehouses[rec.WarehouseID]; w != nil {
					row.WarehouseName = w.Name
				}
				if m := r.s.materials[item.MaterialID]; m != nil {
					row.MaterialCode = m.Code
					row.MaterialName = m.Name
					row.PrimaryUnit = m.PrimaryUnit
					row.SecondaryUnit = m.SecondaryUnit
				}
				sums[k] = row
			}
			row.QuantityPrimary += sign * item.QuantityPrimary
			row.QuantitySecondary += sign * item.QuantitySecondary
		}
	}

	out := make([]repository.StockRow, 0, len(sums))
	for _, row := range sums {
		out = append(out, *row)
	}
	return out, nil
}

func (r *fakeAnalyticsRepo) DailyTotals(_ context.Context, from, to time.Time) ([]repository.DailyTotalsRow, error) {
	byDay := make(map[string]*repository.DailyTotalsRow)
	for _, rec := range r.s.receipts {
		if rec.DeletedAt.Valid {
			continue
		}
		day := rec.ReceiptDate
		if day.Before(from) || day.After(to) {
			continue
		}
		key := day.Format("2006-01-02")
		row, ok := byDay[key]
		if !ok {
			row = &repository.DailyTotalsRow{Date: day}
			byDay[key] = row
		}
		if rec.Type == enum.ReceiptTypeExport {
			row.Revenue += rec.TotalAmount
		} else {
			row.Cost += rec.TotalAmount
		}
	}

	out := make([]repository.DailyTotalsRow, 0, len(byDay))
	for _, row := range byDay {
		out = append(out, *row)
	}
	return out, nil
}

func (r *fakeAnalyticsRepo) ProjectTotals(_ context.Context, from, to time.Time, projectID *uuid.UUID) ([]repository.ProjectTotalsRow, error) {
	byProject := make(map[uuid.UUID]*repository.ProjectTotalsRow)
	for _, rec := range r.s.receipts {
		if rec.DeletedAt.Valid || rec.ProjectID == nil {
			continue
		}
		if projectID != nil && *rec.ProjectID != *projectID {
			continue
		}
		if rec.ReceiptDate.Before(from) || rec.ReceiptDate.After(to) {
			continue
		}
		row, ok := byProject[*rec.ProjectID]
		if !ok {
			row = &repository.ProjectTotalsRow{ProjectID: *rec.ProjectID}
			if p := r.s.projects[*rec.ProjectID]; p != nil {
				row.ProjectCode = p.Code
				row.ProjectName = p.Name
			}
			byProject[*rec.ProjectID] = row
		}
		if rec.Type == enum.ReceiptTypeExport {
			row.Revenue += rec.TotalAmount
		} else {
			row.Cost += rec.TotalAmount
		}
	}

	out := make([]repository.ProjectTotalsRow, 0, len(byProject))
	for _, row := range byProject {
		out = append(out, *row)
	}
	return out, nil
}

// newTestServices wires the full service graph over one shared fake store
func newTestServices(s *fakeStore) (*MaterialService, *ReceiptService, *InventoryService, *ReportService) {
	materialRepo := &fakeMaterialRepo{s}
	densityRepo := &fakeDensityRepo{s}
	categoryRepo := &fakeCategoryRepo{s}
	receiptRepo := &fakeReceiptRepo{s}
	transportRepo := &fakeTransportRepo{s}
	warehouseRepo := &fakeWarehouseRepo{s}
	projectRepo := &fakeProjectRepo{s}
	customerRepo := &fakeCustomerRepo{s}
	vehicleRepo := &fakeVehicleRepo{s}
	analyticsRepo := &fakeAnalyticsRepo{s}

	materialSvc := NewMaterialService(materialRepo, densityRepo, categoryRepo)
	receiptSvc := NewReceiptService(
		receiptRepo, transportRepo, materialRepo,
		warehouseRepo, projectRepo, customerRepo, vehicleRepo,
		materialSvc,
	)
	inventorySvc := NewInventoryService(analyticsRepo)
	reportSvc := NewReportService(analyticsRepo, receiptRepo)
	return materialSvc, receiptSvc, inventorySvc, reportSvc
}
