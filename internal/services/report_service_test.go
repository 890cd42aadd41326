package services_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite" // pure-Go SQLite driver

	"shoptrack/internal/domain"
	"shoptrack/internal/repos"
	"shoptrack/internal/services"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestResolveWindowDaily(t *testing.T) {
	w, err := services.ResolveWindow(services.TimeframeDaily, date(2024, time.March, 10))
	require.NoError(t, err)
	assert.Equal(t, date(2024, time.March, 10), w.Start)
	assert.Equal(t, date(2024, time.March, 10), w.End)
}

func TestResolveWindowWeeklySpansMondayToSunday(t *testing.T) {
	// 2024-03-04 is a Monday; every day of that week must resolve to the
	// same Monday..Sunday window.
	monday := date(2024, time.March, 4)
	for i := 0; i < 7; i++ {
		today := monday.AddDate(0, 0, i)
		w, err := services.ResolveWindow(services.TimeframeWeekly, today)
		require.NoError(t, err, "weekday offset %d", i)
		assert.Equal(t, monday, w.Start, "start for %s", today.Weekday())
		assert.Equal(t, monday.AddDate(0, 0, 6), w.End, "end for %s", today.Weekday())
		assert.Equal(t, time.Monday, w.Start.Weekday())
		assert.Equal(t, time.Sunday, w.End.Weekday())
	}
}

func TestResolveWindowMonthlyEndsOnTrueLastDay(t *testing.T) {
	cases := []struct {
		today time.Time
		last  int
	}{
		{date(2024, time.February, 10), 29}, // leap year
		{date(2023, time.February, 10), 28},
		{date(2024, time.April, 1), 30},
		{date(2024, time.December, 31), 31},
	}
	for _, tc := range cases {
		w, err := services.ResolveWindow(services.TimeframeMonthly, tc.today)
		require.NoError(t, err)
		assert.Equal(t, 1, w.Start.Day())
		assert.Equal(t, tc.last, w.End.Day(), "month %s", tc.today.Month())
		assert.Equal(t, tc.today.Month(), w.End.Month())
	}
}

func TestResolveWindowRejectsUnknownTimeframe(t *testing.T) {
	for _, tf := range []string{"yearly", "", "DAILY", "fortnightly"} {
		_, err := services.ResolveWindow(tf, date(2024, time.March, 10))
		assert.ErrorIs(t, err, services.ErrInvalidTimeframe, "timeframe %q", tf)
	}
}

func TestSalesReportFiltersAndTotals(t *testing.T) {
	db := memdb(t)
	insertItem(t, db, "itm-r1", 100, 5, "4.00", "10.00")
	svc := services.NewReportService(repos.NewSaleRepo(db), repos.NewRepairRepo(db))

	today := date(2024, time.March, 10) // a Sunday
	insertSale := func(id, soldAt string, qty int) {
		_, err := db.Exec(`
		  INSERT INTO sales(id,item_id,quantity_sold,selling_price,buying_price,sold_at)
		  VALUES(?, 'itm-r1', ?, '10.00', '4.00', ?)
		`, id, qty, soldAt)
		require.NoError(t, err)
	}
	insertSale("s-in-early", "2024-03-10 00:00:00", 1)
	insertSale("s-in-late", "2024-03-10 23:59:59", 2)
	insertSale("s-out-prev", "2024-03-09 23:59:59", 4)
	insertSale("s-out-next", "2024-03-11 00:00:00", 4)

	rep, err := svc.SalesReport(services.TimeframeDaily, today)
	require.NoError(t, err)
	assert.Len(t, rep.Sales, 2)
	// profit 6.00 per unit, 3 units inside the day
	assert.True(t, rep.TotalProfit.Equal(decimal.RequireFromString("18.00")),
		"got total %s", rep.TotalProfit)

	// the weekly window (Mon 03-04 .. Sun 03-10) picks up the previous day too
	week, err := svc.SalesReport(services.TimeframeWeekly, today)
	require.NoError(t, err)
	assert.Len(t, week.Sales, 3)

	_, err = svc.SalesReport("yearly", today)
	assert.ErrorIs(t, err, services.ErrInvalidTimeframe)
}

func TestRepairReportAggregatesCollectedCharges(t *testing.T) {
	db := memdb(t)
	repairs := newRepairs(db)
	svc := services.NewReportService(repos.NewSaleRepo(db), repos.NewRepairRepo(db))

	collected := newTicket("50.00")
	pending := newTicket("99.00")
	require.NoError(t, repairs.Create(&collected))
	require.NoError(t, repairs.Create(&pending))
	collected.Status = domain.RepairCollected
	require.NoError(t, repairs.Update(&collected))

	rep, err := svc.RepairReport(services.TimeframeDaily, time.Now().UTC())
	require.NoError(t, err)
	require.Len(t, rep.Repairs, 1)
	assert.Equal(t, collected.ID, rep.Repairs[0].ID)
	assert.True(t, rep.TotalCharges.Equal(decimal.RequireFromString("50.00")),
		"got total %s", rep.TotalCharges)
}
