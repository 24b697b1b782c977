package dashboard

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/link-financer/backend/internal/domain/entity"
)

type categoryTotalsCall struct {
	start time.Time
	end   time.Time
}

type fakeDashboardRepository struct {
	transactions   []*entity.Transaction
	totalsByPeriod map[time.Time][]RawCategoryTotal
	dateRange      *DateRange
	userIDs        []uuid.UUID
	err            error

	chartCalls  int
	totalsCalls []categoryTotalsCall
	lastStart   *time.Time
	lastEnd     *time.Time

	// onChartFetch runs inside FindTransactionsForChart, before rows are returned.
	onChartFetch func()
}

func (f *fakeDashboardRepository) GetDateRange(_ context.Context, _ uuid.UUID) (*DateRange, error) {
	if f.err != nil {
		return nil, f.err
	}
	if f.dateRange == nil {
		return &DateRange{}, nil
	}
	return f.dateRange, nil
}

func (f *fakeDashboardRepository) FindTransactionsForChart(
	_ context.Context,
	userID uuid.UUID,
	startDate, endDate *time.Time,
) ([]*entity.Transaction, error) {
	f.chartCalls++
	f.lastStart, f.lastEnd = startDate, endDate
	if f.onChartFetch != nil {
		f.onChartFetch()
	}
	if f.err != nil {
		return nil, f.err
	}

	var out []*entity.Transaction
	for _, txn := range f.transactions {
		if txn.UserID != userID {
			continue
		}
		if startDate != nil && txn.Date.Before(*startDate) {
			continue
		}
		if endDate != nil && txn.Date.After(*endDate) {
			continue
		}
		out = append(out, txn)
	}
	return out, nil
}

func (f *fakeDashboardRepository) GetCategoryTotals(
	_ context.Context,
	_ uuid.UUID,
	startDate, endDate time.Time,
) ([]RawCategoryTotal, error) {
	f.totalsCalls = append(f.totalsCalls, categoryTotalsCall{start: startDate, end: endDate})
	if f.err != nil {
		return nil, f.err
	}
	return f.totalsByPeriod[startDate], nil
}

func (f *fakeDashboardRepository) ListUserIDsWithTransactions(_ context.Context) ([]uuid.UUID, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.userIDs, nil
}

type fakeChartCache struct {
	mu          sync.Mutex
	charts      map[uuid.UUID]map[string]*MonthlyChart
	generations map[uuid.UUID]int64
	getErr      error
	setErr      error
	invalidated []uuid.UUID
}

func newFakeChartCache() *fakeChartCache {
	return &fakeChartCache{
		charts:      make(map[uuid.UUID]map[string]*MonthlyChart),
		generations: make(map[uuid.UUID]int64),
	}
}

func (f *fakeChartCache) Get(_ context.Context, userID uuid.UUID, key string) (*MonthlyChart, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.getErr != nil {
		return nil, false, f.getErr
	}
	chart, ok := f.charts[userID][key]
	return chart, ok, nil
}

func (f *fakeChartCache) Generation(_ context.Context, userID uuid.UUID) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.generations[userID], nil
}

func (f *fakeChartCache) Set(_ context.Context, userID uuid.UUID, generation int64, key string, chart *MonthlyChart) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.setErr != nil {
		return f.setErr
	}
	if f.generations[userID] != generation {
		return nil
	}
	if f.charts[userID] == nil {
		f.charts[userID] = make(map[string]*MonthlyChart)
	}
	f.charts[userID][key] = chart
	return nil
}

func (f *fakeChartCache) Invalidate(_ context.Context, userID uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.invalidated = append(f.invalidated, userID)
	f.generations[userID]++
	delete(f.charts, userID)
	return nil
}

type fakeExporter struct {
	format ExportFormat
	err    error
	last   ChartReport
}

func (f *fakeExporter) Format() ExportFormat { return f.format }

func (f *fakeExporter) ContentType() string { return "application/octet-stream" }

func (f *fakeExporter) Render(report ChartReport) ([]byte, error) {
	f.last = report
	if f.err != nil {
		return nil, f.err
	}
	return []byte(string(f.format)), nil
}

var errRepository = errors.New("database unavailable")
