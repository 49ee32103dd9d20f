package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/vlxsoft/materials-api/internal/domain/entity"
	"github.com/vlxsoft/materials-api/internal/domain/enum"
	"github.com/vlxsoft/materials-api/internal/domain/repository"
	"github.com/vlxsoft/materials-api/pkg/apperror"
	"github.com/vlxsoft/materials-api/pkg/unitconv"
)

// ReportService aggregates the receipt ledger into financial reports.
// Revenue comes from export receipts, cost from purchase receipts.
type ReportService struct {
	analyticsRepo repository.AnalyticsRepository
	receiptRepo   repository.ReceiptRepository
}

// NewReportService creates a new report service
func NewReportService(
	analyticsRepo repository.AnalyticsRepository,
	receiptRepo repository.ReceiptRepository,
) *ReportService {
	return &ReportService{
		analyticsRepo: analyticsRepo,
		receiptRepo:   receiptRepo,
	}
}

// DailyPoint is one day in a revenue/cost series
type DailyPoint struct {
	Date    string  `json:"date"`
	Revenue float64 `json:"revenue"`
	Cost    float64 `json:"cost"`
	Profit  float64 `json:"profit"`
}

// DailyReport is a dense day-by-day series with period totals
type DailyReport struct {
	From         string       `json:"from"`
	To           string       `json:"to"`
	Days         []DailyPoint `json:"days"`
	TotalRevenue float64      `json:"total_revenue"`
	TotalCost    float64      `json:"total_cost"`
	TotalProfit  float64      `json:"total_profit"`
}

const dateLayout = "2006-01-02"

// DailySeries returns one point per calendar day in [from, to], inclusive.
// Days without activity appear with zero values so chart consumers never
// have to fill gaps themselves.
func (s *ReportService) DailySeries(ctx context.Context, from, to time.Time) (*DailyReport, error) {
	from = truncateToDay(from)
	to = truncateToDay(to)
	if to.Before(from) {
		return nil, apperror.NewBadRequestError("End date must not be before start date")
	}

	rows, err := s.analyticsRepo.DailyTotals(ctx, from, to)
	if err != nil {
		return nil, err
	}

	byDay := make(map[string]repository.DailyTotalsRow, len(rows))
	for _, row := range rows {
		byDay[row.Date.Format(dateLayout)] = row
	}

	report := &DailyReport{
		From: from.Format(dateLayout),
		To:   to.Format(dateLayout),
		Days: make([]DailyPoint, 0, int(to.Sub(from).Hours()/24)+1),
	}
	for day := from; !day.After(to); day = day.AddDate(0, 0, 1) {
		key := day.Format(dateLayout)
		row := byDay[key]
		point := DailyPoint{
			Date:    key,
			Revenue: unitconv.RoundMoney(row.Revenue),
			Cost:    unitconv.RoundMoney(row.Cost),
		}
		point.Profit = unitconv.RoundMoney(point.Revenue - point.Cost)
		report.Days = append(report.Days, point)

		report.TotalRevenue = unitconv.RoundMoney(report.TotalRevenue + point.Revenue)
		report.TotalCost = unitconv.RoundMoney(report.TotalCost + point.Cost)
	}
	report.TotalProfit = unitconv.RoundMoney(report.TotalRevenue - report.TotalCost)

	return report, nil
}

// ProjectProfitRow is the profitability of one project over a period
type ProjectProfitRow struct {
	ProjectID   uuid.UUID `json:"project_id"`
	ProjectCode string    `json:"project_code"`
	ProjectName string    `json:"project_name"`
	Revenue     float64   `json:"revenue"`
	Cost        float64   `json:"cost"`
	Profit      float64   `json:"profit"`
	Margin      float64   `json:"margin"`
}

// ProjectProfit returns per-project revenue, cost, profit and margin over
// [from, to]. Margin is profit/revenue as a percentage; a project with zero
// revenue reports a margin of 0 rather than dividing by zero.
func (s *ReportService) ProjectProfit(ctx context.Context, from, to time.Time, projectID *uuid.UUID) ([]ProjectProfitRow, error) {
	from = truncateToDay(from)
	to = truncateToDay(to)
	if to.Before(from) {
		return nil, apperror.NewBadRequestError("End date must not be before start date")
	}

	rows, err := s.analyticsRepo.ProjectTotals(ctx, from, to, projectID)
	if err != nil {
		return nil, err
	}

	result := make([]ProjectProfitRow, 0, len(rows))
	for _, row := range rows {
		out := ProjectProfitRow{
			ProjectID:   row.ProjectID,
			ProjectCode: row.ProjectCode,
			ProjectName: row.ProjectName,
			Revenue:     unitconv.RoundMoney(row.Revenue),
			Cost:        unitconv.RoundMoney(row.Cost),
		}
		out.Profit = unitconv.RoundMoney(out.Revenue - out.Cost)
		if out.Revenue != 0 {
			out.Margin = out.Profit / out.Revenue * 100
		}
		result = append(result, out)
	}
	return result, nil
}

// PeriodTotals is an aggregate over one time window
type PeriodTotals struct {
	Revenue float64 `json:"revenue"`
	Cost    float64 `json:"cost"`
	Profit  float64 `json:"profit"`
}

// DashboardSnapshot is the landing-page aggregate
type DashboardSnapshot struct {
	Today           PeriodTotals     `json:"today"`
	MonthToDate     PeriodTotals     `json:"month_to_date"`
	Last7Days       []DailyPoint     `json:"last_7_days"`
	RecentPurchases []entity.Receipt `json:"recent_purchases"`
	RecentExports   []entity.Receipt `json:"recent_exports"`
}

// GetDashboard assembles today's totals, month-to-date totals, a 7-day
// series and the five most recent receipts of each type.
func (s *ReportService) GetDashboard(ctx context.Context) (*DashboardSnapshot, error) {
	now := time.Now().UTC()
	today := truncateToDay(now)
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)

	monthReport, err := s.DailySeries(ctx, monthStart, today)
	if err != nil {
		return nil, err
	}

	weekReport, err := s.DailySeries(ctx, today.AddDate(0, 0, -6), today)
	if err != nil {
		return nil, err
	}

	snapshot := &DashboardSnapshot{
		MonthToDate: PeriodTotals{
			Revenue: monthReport.TotalRevenue,
			Cost:    monthReport.TotalCost,
			Profit:  monthReport.TotalProfit,
		},
		Last7Days: weekReport.Days,
	}

	todayKey := today.Format(dateLayout)
	for _, point := range weekReport.Days {
		if point.Date == todayKey {
			snapshot.Today = PeriodTotals{Revenue: point.Revenue, Cost: point.Cost, Profit: point.Profit}
			break
		}
	}

	purchases, err := s.receiptRepo.ListRecent(ctx, enum.ReceiptTypePurchase, 5)
	if err != nil {
		return nil, err
	}
	exports, err := s.receiptRepo.ListRecent(ctx, enum.ReceiptTypeExport, 5)
	if err != nil {
		return nil, err
	}
	snapshot.RecentPurchases = purchases
	snapshot.RecentExports = exports

	return snapshot, nil
}

func truncateToDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
