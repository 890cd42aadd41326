package services

import (
	"errors"
	"fmt"
	"time"

	"shoptrack/internal/domain"
	"shoptrack/internal/repos"

	"github.com/shopspring/decimal"
)

var ErrInvalidTimeframe = errors.New("invalid timeframe")

const (
	TimeframeDaily   = "daily"
	TimeframeWeekly  = "weekly"
	TimeframeMonthly = "monthly"
)

// Window is a closed [Start, End] day range. Bounds() widens it to full-day
// storage-layout timestamps for SQL filtering.
type Window struct {
	Start time.Time
	End   time.Time
}

func (w Window) Bounds() (from, to string) {
	from = w.Start.Format("2006-01-02") + " 00:00:00"
	to = w.End.Format("2006-01-02") + " 23:59:59"
	return from, to
}

func (w Window) String() string {
	return fmt.Sprintf("%s to %s", w.Start.Format("2006-01-02"), w.End.Format("2006-01-02"))
}

// ResolveWindow maps a symbolic timeframe to concrete dates around today.
// Weeks are ISO (Monday-start); months end on their true last day.
func ResolveWindow(timeframe string, today time.Time) (Window, error) {
	day := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, today.Location())

	switch timeframe {
	case TimeframeDaily:
		return Window{Start: day, End: day}, nil
	case TimeframeWeekly:
		// Go weekdays are Sunday=0; shift so Monday=0.
		offset := (int(day.Weekday()) + 6) % 7
		monday := day.AddDate(0, 0, -offset)
		return Window{Start: monday, End: monday.AddDate(0, 0, 6)}, nil
	case TimeframeMonthly:
		first := time.Date(day.Year(), day.Month(), 1, 0, 0, 0, 0, day.Location())
		last := first.AddDate(0, 1, -1)
		return Window{Start: first, End: last}, nil
	default:
		return Window{}, ErrInvalidTimeframe
	}
}

// SalesReport is the filtered list plus aggregate the report pages render.
type SalesReport struct {
	Timeframe   string
	Window      Window
	Sales       []domain.Sale
	TotalProfit decimal.Decimal
}

// RepairReport mirrors SalesReport for collected repair tickets.
type RepairReport struct {
	Timeframe    string
	Window       Window
	Repairs      []domain.Repair
	TotalCharges decimal.Decimal
}

type ReportService struct {
	Sales   *repos.SaleRepo
	Repairs *repos.RepairRepo
}

func NewReportService(sales *repos.SaleRepo, repairs *repos.RepairRepo) *ReportService {
	return &ReportService{Sales: sales, Repairs: repairs}
}

func (s *ReportService) SalesReport(timeframe string, today time.Time) (SalesReport, error) {
	w, err := ResolveWindow(timeframe, today)
	if err != nil {
		return SalesReport{}, err
	}
	from, to := w.Bounds()
	sales, err := s.Sales.Between(from, to)
	if err != nil {
		return SalesReport{}, err
	}
	total := decimal.Zero
	for _, sale := range sales {
		total = total.Add(sale.Profit())
	}
	return SalesReport{Timeframe: timeframe, Window: w, Sales: sales, TotalProfit: total}, nil
}

func (s *ReportService) RepairReport(timeframe string, today time.Time) (RepairReport, error) {
	w, err := ResolveWindow(timeframe, today)
	if err != nil {
		return RepairReport{}, err
	}
	from, to := w.Bounds()
	repairs, err := s.Repairs.CollectedBetween(from, to)
	if err != nil {
		return RepairReport{}, err
	}
	total := decimal.Zero
	for _, rep := range repairs {
		total = total.Add(rep.Charges)
	}
	return RepairReport{Timeframe: timeframe, Window: w, Repairs: repairs, TotalCharges: total}, nil
}
