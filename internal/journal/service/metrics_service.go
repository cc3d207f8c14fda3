package service

import (
	"context"
	"math"
	"sort"
	"strings"
	"time"

	"trading-journal/internal/entity"
	"trading-journal/internal/journal/dto"
	"trading-journal/pkg/apperror"
	"trading-journal/pkg/logger"
	"trading-journal/pkg/utils"
)

// Quick filter names accepted by QuickFilterRange.
const (
	RangeLast7Days  = "7days"
	RangeLast30Days = "30days"
	RangeThisMonth  = "thismonth"
	RangeLastMonth  = "lastmonth"
	RangeThisYear   = "thisyear"
	RangeAll        = "all"
)

const unknownGroup = "UNKNOWN"

func profitLossOf(r entity.TradeRecord) float64 {
	if math.IsNaN(r.ProfitLoss) || math.IsInf(r.ProfitLoss, 0) {
		return 0
	}
	return r.ProfitLoss
}

// CalculateMetrics returns the headline statistics of records. MaxProfit and
// MaxLoss are bounded by zero.
func CalculateMetrics(records []entity.TradeRecord) dto.Metrics {
	var m dto.Metrics
	if len(records) == 0 {
		return m
	}

	wins := 0
	for _, r := range records {
		pl := profitLossOf(r)
		m.TotalPL += pl
		if pl > 0 {
			wins++
		}
		if pl > m.MaxProfit {
			m.MaxProfit = pl
		}
		if pl < m.MaxLoss {
			m.MaxLoss = pl
		}
	}
	m.TotalTrades = len(records)
	m.WinRate = float64(wins) / float64(m.TotalTrades) * 100
	m.AvgProfit = m.TotalPL / float64(m.TotalTrades)
	return m
}

// FilterByDateRange keeps records whose entry date falls within [from, to].
// An empty bound is open.
func FilterByDateRange(records []entity.TradeRecord, from, to string) []entity.TradeRecord {
	from, to = utils.NormalizeDate(from), utils.NormalizeDate(to)
	out := make([]entity.TradeRecord, 0, len(records))
	for _, r := range records {
		d := utils.NormalizeDate(r.EntryDate)
		if from != "" && d < from {
			continue
		}
		if to != "" && d > to {
			continue
		}
		out = append(out, r)
	}
	return out
}

// QuickFilterRange resolves a named range relative to now. RangeAll yields
// empty bounds.
func QuickFilterRange(name string, now time.Time) (from, to string, err error) {
	y, m, d := now.Date()
	loc := now.Location()
	today := time.Date(y, m, d, 0, 0, 0, 0, loc)

	switch strings.ToLower(strings.TrimSpace(name)) {
	case RangeLast7Days:
		return today.AddDate(0, 0, -7).Format(utils.DateLayout), today.Format(utils.DateLayout), nil
	case RangeLast30Days:
		return today.AddDate(0, 0, -30).Format(utils.DateLayout), today.Format(utils.DateLayout), nil
	case RangeThisMonth:
		return time.Date(y, m, 1, 0, 0, 0, 0, loc).Format(utils.DateLayout), today.Format(utils.DateLayout), nil
	case RangeLastMonth:
		first := time.Date(y, m-1, 1, 0, 0, 0, 0, loc)
		last := time.Date(y, m, 0, 0, 0, 0, 0, loc)
		return first.Format(utils.DateLayout), last.Format(utils.DateLayout), nil
	case RangeThisYear:
		return time.Date(y, time.January, 1, 0, 0, 0, 0, loc).Format(utils.DateLayout), today.Format(utils.DateLayout), nil
	case RangeAll, "":
		return "", "", nil
	default:
		return "", "", apperror.NewValidationError("range", "unknown range "+name)
	}
}

type groupAccumulator struct {
	perf  dto.GroupPerformance
	first bool
}

func analyzeBy(records []entity.TradeRecord, key func(entity.TradeRecord) string) []dto.GroupPerformance {
	groups := make(map[string]*groupAccumulator)
	for _, r := range records {
		k := strings.TrimSpace(key(r))
		if k == "" {
			k = unknownGroup
		}
		acc, ok := groups[k]
		if !ok {
			acc = &groupAccumulator{perf: dto.GroupPerformance{Key: k}, first: true}
			groups[k] = acc
		}

		pl := profitLossOf(r)
		p := &acc.perf
		p.Trades++
		p.TotalPL += pl
		switch {
		case pl > 0:
			p.Wins++
		case pl < 0:
			p.Losses++
		}
		if acc.first || pl > p.BestTrade {
			p.BestTrade = pl
		}
		if acc.first || pl < p.WorstTrade {
			p.WorstTrade = pl
		}
		acc.first = false
	}

	out := make([]dto.GroupPerformance, 0, len(groups))
	for _, acc := range groups {
		p := acc.perf
		p.WinRate = float64(p.Wins) / float64(p.Trades) * 100
		p.AvgPL = p.TotalPL / float64(p.Trades)
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].TotalPL != out[j].TotalPL {
			return out[i].TotalPL > out[j].TotalPL
		}
		return out[i].Key < out[j].Key
	})
	return out
}

// AnalyzeBySymbol groups records by stock symbol, best total P/L first.
func AnalyzeBySymbol(records []entity.TradeRecord) []dto.GroupPerformance {
	return analyzeBy(records, func(r entity.TradeRecord) string { return strings.ToUpper(r.Symbol) })
}

// AnalyzeByMethod groups records by trading method, best total P/L first.
func AnalyzeByMethod(records []entity.TradeRecord) []dto.GroupPerformance {
	return analyzeBy(records, func(r entity.TradeRecord) string { return r.Method })
}

// MetricsService computes dashboard statistics over the transaction log.
type MetricsService interface {
	Compute(ctx context.Context, records []entity.TradeRecord, query dto.MetricsQuery) (dto.MetricsResponse, error)
}

type metricsService struct {
	logger *logger.Logger
	now    func() time.Time
}

// NewMetricsService creates a MetricsService. now defaults to the WIB clock.
func NewMetricsService(log *logger.Logger, now func() time.Time) MetricsService {
	if now == nil {
		now = utils.TimeNowWIB
	}
	return &metricsService{logger: log, now: now}
}

// Compute applies an explicit from/to window, or else the named range.
func (s *metricsService) Compute(ctx context.Context, records []entity.TradeRecord, query dto.MetricsQuery) (dto.MetricsResponse, error) {
	from, to := query.From, query.To
	if from == "" && to == "" {
		var err error
		if from, to, err = QuickFilterRange(query.Range, s.now()); err != nil {
			return dto.MetricsResponse{}, err
		}
	} else if from != "" && to != "" && utils.NormalizeDate(to) < utils.NormalizeDate(from) {
		return dto.MetricsResponse{}, apperror.NewValidationError("to", "to must not be before from")
	}

	filtered := FilterByDateRange(records, from, to)
	s.logger.DebugContext(ctx, "Computing metrics",
		logger.StringField("from", from), logger.StringField("to", to), logger.IntField("records", len(filtered)))

	return dto.MetricsResponse{
		From:     from,
		To:       to,
		Metrics:  CalculateMetrics(filtered),
		BySymbol: AnalyzeBySymbol(filtered),
		ByMethod: AnalyzeByMethod(filtered),
	}, nil
}
