package service

import (
	"context"
	"math"
	"testing"
	"time"

	"trading-journal/internal/entity"
	"trading-journal/internal/journal/dto"
	"trading-journal/pkg/apperror"
	"trading-journal/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dated(id, date, symbol, method string, pl float64) entity.TradeRecord {
	r := trade(id, symbol, pl)
	r.EntryDate = date
	r.Method = method
	return r
}

func TestCalculateMetrics(t *testing.T) {
	assert.Equal(t, dto.Metrics{}, CalculateMetrics(nil))

	m := CalculateMetrics([]entity.TradeRecord{
		trade("TRX-1", "BBCA", 3000),
		trade("TRX-2", "BBCA", -1000),
		trade("TRX-3", "BBRI", 0),
		trade("TRX-4", "BBRI", math.NaN()),
	})
	assert.Equal(t, 2000.0, m.TotalPL)
	assert.Equal(t, 4, m.TotalTrades)
	assert.Equal(t, 25.0, m.WinRate)
	assert.Equal(t, 500.0, m.AvgProfit)
	assert.Equal(t, 3000.0, m.MaxProfit)
	assert.Equal(t, -1000.0, m.MaxLoss)
}

func TestCalculateMetricsAllLosses(t *testing.T) {
	m := CalculateMetrics([]entity.TradeRecord{trade("TRX-1", "BBCA", -10)})
	assert.Zero(t, m.MaxProfit)
	assert.Zero(t, m.WinRate)
}

func TestFilterByDateRange(t *testing.T) {
	records := []entity.TradeRecord{
		dated("A", "2024-01-01", "BBCA", "", 1),
		dated("B", "2024-01-15", "BBCA", "", 1),
		dated("C", "2024-01-31", "BBCA", "", 1),
		dated("D", "2024-02-01", "BBCA", "", 1),
	}

	assert.Equal(t, []string{"B", "C"}, ids(FilterByDateRange(records, "2024-01-15", "2024-01-31")))
	assert.Equal(t, []string{"C", "D"}, ids(FilterByDateRange(records, "2024-01-20", "")))
	assert.Equal(t, []string{"A"}, ids(FilterByDateRange(records, "", "2024-01-01")))
	assert.Len(t, FilterByDateRange(records, "", ""), 4)
}

func TestQuickFilterRange(t *testing.T) {
	now := time.Date(2024, 3, 15, 14, 30, 0, 0, time.UTC)

	tests := []struct {
		name     string
		from, to string
	}{
		{RangeLast7Days, "2024-03-08", "2024-03-15"},
		{RangeLast30Days, "2024-02-14", "2024-03-15"},
		{RangeThisMonth, "2024-03-01", "2024-03-15"},
		{RangeLastMonth, "2024-02-01", "2024-02-29"},
		{RangeThisYear, "2024-01-01", "2024-03-15"},
		{RangeAll, "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			from, to, err := QuickFilterRange(tt.name, now)
			require.NoError(t, err)
			assert.Equal(t, tt.from, from)
			assert.Equal(t, tt.to, to)
		})
	}

	t.Run("last month across a year boundary", func(t *testing.T) {
		from, to, err := QuickFilterRange(RangeLastMonth, time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC))
		require.NoError(t, err)
		assert.Equal(t, "2023-12-01", from)
		assert.Equal(t, "2023-12-31", to)
	})

	t.Run("unknown", func(t *testing.T) {
		_, _, err := QuickFilterRange("fortnight", now)
		assert.True(t, apperror.IsValidation(err))
	})
}

func TestAnalyzeBySymbol(t *testing.T) {
	got := AnalyzeBySymbol([]entity.TradeRecord{
		dated("1", "2024-01-01", "bbca", "", 100),
		dated("2", "2024-01-02", "BBCA", "", -40),
		dated("3", "2024-01-03", "TLKM", "", 500),
		dated("4", "2024-01-04", "", "", -5),
	})

	require.Len(t, got, 3)
	assert.Equal(t, "TLKM", got[0].Key)
	assert.Equal(t, dto.GroupPerformance{
		Key: "BBCA", Trades: 2, Wins: 1, Losses: 1, TotalPL: 60,
		WinRate: 50, AvgPL: 30, BestTrade: 100, WorstTrade: -40,
	}, got[1])
	assert.Equal(t, "UNKNOWN", got[2].Key)
	assert.Equal(t, -5.0, got[2].BestTrade)
}

func TestAnalyzeByMethod(t *testing.T) {
	got := AnalyzeByMethod([]entity.TradeRecord{
		dated("1", "2024-01-01", "BBCA", "Swing", 100),
		dated("2", "2024-01-02", "BBRI", "Swing", 100),
		dated("3", "2024-01-03", "TLKM", "Scalping", 200),
	})
	require.Len(t, got, 2)
	assert.Equal(t, "Scalping", got[0].Key)
	assert.Equal(t, "Swing", got[1].Key, "ties break on key")
	assert.Equal(t, 2, got[1].Trades)
	assert.Equal(t, 100.0, got[1].WinRate)
}

func TestMetricsServiceCompute(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)
	svc := NewMetricsService(logger.NewNop(), func() time.Time { return now })
	records := []entity.TradeRecord{
		dated("1", "2024-03-10", "BBCA", "Swing", 100),
		dated("2", "2024-01-05", "BBRI", "Swing", -50),
	}

	resp, err := svc.Compute(ctx, records, dto.MetricsQuery{Range: RangeThisMonth})
	require.NoError(t, err)
	assert.Equal(t, "2024-03-01", resp.From)
	assert.Equal(t, 1, resp.Metrics.TotalTrades)
	require.Len(t, resp.BySymbol, 1)
	assert.Equal(t, "BBCA", resp.BySymbol[0].Key)

	resp, err = svc.Compute(ctx, records, dto.MetricsQuery{Range: RangeThisMonth, From: "2024-01-01", To: "2024-01-31"})
	require.NoError(t, err)
	assert.Equal(t, -50.0, resp.Metrics.TotalPL, "explicit bounds win over the named range")

	resp, err = svc.Compute(ctx, records, dto.MetricsQuery{})
	require.NoError(t, err)
	assert.Equal(t, 2, resp.Metrics.TotalTrades)

	_, err = svc.Compute(ctx, records, dto.MetricsQuery{From: "2024-02-01", To: "2024-01-01"})
	assert.True(t, apperror.IsValidation(err))
}
