package service

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"strings"
	"sync"
	"time"

	"trading-journal/internal/entity"
	"trading-journal/internal/journal/dto"
	"trading-journal/internal/journal/repository"
	"trading-journal/pkg/apperror"
	"trading-journal/pkg/common"
	"trading-journal/pkg/logger"
	"trading-journal/pkg/utils"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// DefaultSmartSyncThreshold is the minimum P/L change that triggers a summary push.
const DefaultSmartSyncThreshold = 100

// SumProfitLoss totals the P/L of records. NaN and infinite values are
// skipped and counted in invalid.
func SumProfitLoss(records []entity.TradeRecord) (total float64, invalid int) {
	for _, r := range records {
		if math.IsNaN(r.ProfitLoss) || math.IsInf(r.ProfitLoss, 0) {
			invalid++
			continue
		}
		total += r.ProfitLoss
	}
	return total, invalid
}

// CashFlowTotals sums top-ups and withdrawals.
func CashFlowTotals(flows []entity.PortfolioTransaction) (topUp, withdraw int64) {
	for _, f := range flows {
		switch f.Type {
		case entity.PortfolioTransactionTopUp:
			topUp += f.Amount
		case entity.PortfolioTransactionWithdraw:
			withdraw += f.Amount
		}
	}
	return topUp, withdraw
}

// RecomputeSummary derives the portfolio summary from the transaction log and
// the external cash flows.
func RecomputeSummary(records []entity.TradeRecord, flows []entity.PortfolioTransaction, now time.Time) entity.PortfolioSummary {
	topUp, withdraw := CashFlowTotals(flows)
	pl, _ := SumProfitLoss(records)
	return summaryFromTotals(topUp, withdraw, pl, now)
}

func summaryFromTotals(topUp, withdraw int64, pl float64, now time.Time) entity.PortfolioSummary {
	net := topUp - withdraw
	plDec := decimal.NewFromFloat(pl)
	equity := roundHalfUp(decimal.NewFromInt(net).Add(plDec)).IntPart()

	growth := 0.0
	if net > 0 {
		growth, _ = plDec.Div(decimal.NewFromInt(net)).Mul(decimal.NewFromInt(100)).Float64()
	}
	return entity.PortfolioSummary{
		TotalTopUp:    topUp,
		TotalWithdraw: withdraw,
		TotalPL:       roundHalfUp(plDec).IntPart(),
		TotalEquity:   equity,
		AvailableCash: equity,
		GrowthPercent: growth,
		LastUpdated:   now,
	}
}

// PortfolioService keeps the cached portfolio summary and the cash-flow list.
type PortfolioService interface {
	Load(ctx context.Context) error
	Summary() entity.PortfolioSummary
	Transactions() []entity.PortfolioTransaction
	Recompute(ctx context.Context, records []entity.TradeRecord) entity.PortfolioSummary
	SmartSync(ctx context.Context, records []entity.TradeRecord) (bool, error)
	SaveSummary(ctx context.Context, summary entity.PortfolioSummary) (bool, error)
	ProcessPendingPortfolioSync(ctx context.Context) (bool, error)
	PendingCount(ctx context.Context) int
	AddTransaction(ctx context.Context, req dto.PortfolioTransactionRequest) (entity.PortfolioTransaction, error)
	DeleteTransaction(ctx context.Context, id string) error
}

// PortfolioOptions tunes the portfolio service.
type PortfolioOptions struct {
	SmartSyncThreshold float64
	Timeout            time.Duration
	Now                func() time.Time
}

type portfolioService struct {
	store    PortfolioStore
	pending  repository.PendingQueueRepository
	conn     ConnectivityChecker
	notifier Notifier
	logger   *logger.Logger
	opts     PortfolioOptions

	mu           sync.RWMutex
	summary      entity.PortfolioSummary
	transactions []entity.PortfolioTransaction
	flowsLoaded  bool
	// lastSyncedPL is the P/L last pushed or queued; smart sync measures drift from it.
	lastSyncedPL int64
}

// NewPortfolioService creates a PortfolioService.
func NewPortfolioService(
	store PortfolioStore,
	pending repository.PendingQueueRepository,
	conn ConnectivityChecker,
	notifier Notifier,
	log *logger.Logger,
	opts PortfolioOptions,
) PortfolioService {
	if opts.SmartSyncThreshold <= 0 {
		opts.SmartSyncThreshold = DefaultSmartSyncThreshold
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 10 * time.Second
	}
	if opts.Now == nil {
		opts.Now = utils.TimeNowWIB
	}
	if notifier == nil {
		notifier = NopNotifier{}
	}
	return &portfolioService{
		store:    store,
		pending:  pending,
		conn:     conn,
		notifier: notifier,
		logger:   log,
		opts:     opts,
	}
}

// Load fetches the remote summary and the cash flows concurrently.
func (s *portfolioService) Load(ctx context.Context) error {
	if !s.conn.IsOnline(ctx) {
		s.logger.InfoContext(ctx, "Offline, keeping cached portfolio")
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, s.opts.Timeout)
	defer cancel()

	var (
		wg         sync.WaitGroup
		summary    *entity.PortfolioSummary
		flows      []entity.PortfolioTransaction
		summaryErr error
		flowsErr   error
	)
	wg.Add(2)
	utils.GoSafe(func() {
		defer wg.Done()
		summary, summaryErr = s.store.GetSummary(ctx)
	})
	utils.GoSafe(func() {
		defer wg.Done()
		flows, flowsErr = s.store.ListTransactions(ctx)
	})
	wg.Wait()

	s.mu.Lock()
	defer s.mu.Unlock()
	if summaryErr == nil && summary != nil {
		s.summary = *summary
		s.lastSyncedPL = summary.TotalPL
	}
	if flowsErr == nil {
		s.transactions = flows
		s.flowsLoaded = true
	}

	if summaryErr != nil {
		s.logger.ErrorContext(ctx, "Failed to load portfolio summary", logger.ErrorField(summaryErr))
		return fmt.Errorf("load portfolio summary: %w", summaryErr)
	}
	if flowsErr != nil {
		s.logger.ErrorContext(ctx, "Failed to load portfolio transactions", logger.ErrorField(flowsErr))
		return fmt.Errorf("load portfolio transactions: %w", flowsErr)
	}
	s.logger.InfoContext(ctx, "Portfolio loaded", logger.IntField("transactions", len(flows)))
	return nil
}

func (s *portfolioService) Summary() entity.PortfolioSummary {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.summary
}

func (s *portfolioService) Transactions() []entity.PortfolioTransaction {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]entity.PortfolioTransaction(nil), s.transactions...)
}

// Recompute refreshes the cached summary from the transaction log. Cash totals
// come from the loaded cash flows, or from the cached summary before they load.
func (s *portfolioService) Recompute(ctx context.Context, records []entity.TradeRecord) entity.PortfolioSummary {
	pl, invalid := SumProfitLoss(records)
	if invalid > 0 {
		s.logger.WarnContext(ctx, "Invalid profit/loss values excluded from portfolio",
			logger.IntField("invalid", invalid), logger.IntField("records", len(records)))
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.summary = s.summaryLocked(pl)
	return s.summary
}

func (s *portfolioService) summaryLocked(pl float64) entity.PortfolioSummary {
	topUp, withdraw := s.summary.TotalTopUp, s.summary.TotalWithdraw
	if s.flowsLoaded {
		topUp, withdraw = CashFlowTotals(s.transactions)
	}
	return summaryFromTotals(topUp, withdraw, pl, s.opts.Now())
}

// SmartSync recomputes the summary and pushes it unless the P/L moved by less
// than the threshold from a non-zero last synced value. Skipped changes
// accumulate until they cross the threshold.
func (s *portfolioService) SmartSync(ctx context.Context, records []entity.TradeRecord) (bool, error) {
	s.mu.RLock()
	previous := s.lastSyncedPL
	s.mu.RUnlock()
	summary := s.Recompute(ctx, records)

	if math.Abs(float64(summary.TotalPL-previous)) < s.opts.SmartSyncThreshold && previous != 0 {
		s.logger.DebugContext(ctx, "No significant P/L change, skipping portfolio sync",
			logger.Field("previous_pl", previous), logger.Field("total_pl", summary.TotalPL))
		return false, nil
	}
	if _, err := s.SaveSummary(ctx, summary); err != nil {
		return false, err
	}
	return true, nil
}

// SaveSummary pushes the summary, or queues it when offline or when the push
// fails. It reports whether the summary was queued.
func (s *portfolioService) SaveSummary(ctx context.Context, summary entity.PortfolioSummary) (bool, error) {
	if !s.conn.IsOnline(ctx) {
		return s.queueSummary(ctx, summary, nil)
	}

	if err := s.push(ctx, summary); err != nil {
		s.logger.ErrorContext(ctx, "Failed to push portfolio summary", logger.ErrorField(err))
		return s.queueSummary(ctx, summary, err)
	}
	s.markSynced(summary)
	if err := s.pending.Clear(ctx); err != nil {
		s.logger.ErrorContext(ctx, "Failed to clear portfolio pending queue", logger.ErrorField(err))
	}
	s.logger.InfoContext(ctx, "Portfolio summary synced",
		logger.Field("total_pl", summary.TotalPL), logger.Field("total_equity", summary.TotalEquity))
	return false, nil
}

func (s *portfolioService) queueSummary(ctx context.Context, summary entity.PortfolioSummary, cause error) (bool, error) {
	pid, err := s.pending.Enqueue(ctx, summary)
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to queue portfolio summary", logger.ErrorField(err))
		s.notifier.Notify(ctx, Notification{
			Level:   NotificationError,
			Title:   "Penyimpanan lokal penuh",
			Message: err.Error(),
			Sticky:  true,
		})
		return false, err
	}
	s.markSynced(summary)
	fields := []zap.Field{logger.StringField("pending_id", pid)}
	if cause != nil {
		fields = append(fields, logger.ErrorField(cause))
	}
	s.logger.InfoContext(ctx, "Portfolio summary queued", fields...)
	return true, nil
}

// ProcessPendingPortfolioSync pushes the latest queued summary and clears the queue.
func (s *portfolioService) ProcessPendingPortfolioSync(ctx context.Context) (bool, error) {
	queued, err := s.pending.PeekAll(ctx)
	if err != nil {
		return false, err
	}
	if len(queued) == 0 {
		return false, nil
	}
	if !s.conn.IsOnline(ctx) {
		return false, apperror.ErrOffline
	}
	if err := s.pending.MarkSyncAttempt(ctx); err != nil {
		s.logger.ErrorContext(ctx, "Failed to mark portfolio sync attempt", logger.ErrorField(err))
	}

	latest := queued[len(queued)-1]
	var summary entity.PortfolioSummary
	if err := json.Unmarshal(latest.Data, &summary); err != nil {
		s.logger.WarnContext(ctx, "Dropping undecodable portfolio update",
			logger.StringField("pending_id", latest.ID), logger.ErrorField(err))
		return false, s.pending.Clear(ctx)
	}

	if err := s.push(ctx, summary); err != nil {
		s.logger.ErrorContext(ctx, "Pending portfolio sync failed",
			logger.ErrorField(err), logger.IntField("pending_count", len(queued)))
		return false, err
	}
	s.markSynced(summary)
	if err := s.pending.Clear(ctx); err != nil {
		return true, err
	}
	s.logger.InfoContext(ctx, "Pending portfolio updates synced", logger.IntField("pending_count", len(queued)))
	return true, nil
}

func (s *portfolioService) markSynced(summary entity.PortfolioSummary) {
	s.mu.Lock()
	s.lastSyncedPL = summary.TotalPL
	s.mu.Unlock()
}

func (s *portfolioService) PendingCount(ctx context.Context) int {
	n, err := s.pending.Count(ctx)
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to read portfolio pending queue", logger.ErrorField(err))
	}
	return n
}

// AddTransaction records a top-up or withdrawal on the remote store.
func (s *portfolioService) AddTransaction(ctx context.Context, req dto.PortfolioTransactionRequest) (entity.PortfolioTransaction, error) {
	txType := entity.PortfolioTransactionType(strings.ToUpper(strings.TrimSpace(req.Type)))
	if txType != entity.PortfolioTransactionTopUp && txType != entity.PortfolioTransactionWithdraw {
		return entity.PortfolioTransaction{}, apperror.NewValidationError("type", "type must be TOP_UP or WITHDRAW")
	}
	if req.Amount <= 0 {
		return entity.PortfolioTransaction{}, apperror.NewValidationError("amount", "amount must be greater than 0")
	}
	if !s.conn.IsOnline(ctx) {
		return entity.PortfolioTransaction{}, apperror.ErrOffline
	}

	method := strings.TrimSpace(req.Method)
	if method == "" {
		method = common.DefaultPaymentMethod
	}
	tx := entity.PortfolioTransaction{
		Type:      txType,
		Amount:    req.Amount,
		Method:    method,
		Notes:     strings.TrimSpace(req.Notes),
		Timestamp: s.opts.Now(),
	}

	tctx, cancel := context.WithTimeout(ctx, s.opts.Timeout)
	saved, err := s.store.AddTransaction(tctx, tx)
	cancel()
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to add portfolio transaction", logger.ErrorField(err))
		return entity.PortfolioTransaction{}, err
	}

	s.mu.Lock()
	if s.flowsLoaded {
		s.transactions = append(s.transactions, saved)
	} else {
		// The full list is unknown; fold the flow into the cached totals.
		switch saved.Type {
		case entity.PortfolioTransactionTopUp:
			s.summary.TotalTopUp += saved.Amount
		case entity.PortfolioTransactionWithdraw:
			s.summary.TotalWithdraw += saved.Amount
		}
	}
	s.summary = s.summaryLocked(float64(s.summary.TotalPL))
	s.mu.Unlock()

	s.notifier.Notify(ctx, Notification{
		Level:   NotificationSuccess,
		Title:   "Transaksi portfolio tersimpan",
		Message: fmt.Sprintf("%s %s", saved.Type, utils.FormatRupiah(saved.Amount)),
	})
	s.logger.InfoContext(ctx, "Portfolio transaction added",
		logger.StringField("transaction_id", saved.ID), logger.StringField("type", string(saved.Type)))
	return saved, nil
}

// DeleteTransaction removes a cash flow from the remote store.
func (s *portfolioService) DeleteTransaction(ctx context.Context, id string) error {
	if strings.TrimSpace(id) == "" {
		return apperror.NewValidationError("id", "id is required")
	}
	if !s.conn.IsOnline(ctx) {
		return apperror.ErrOffline
	}

	tctx, cancel := context.WithTimeout(ctx, s.opts.Timeout)
	err := s.store.DeleteTransaction(tctx, id)
	cancel()
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to delete portfolio transaction",
			logger.StringField("transaction_id", id), logger.ErrorField(err))
		return err
	}

	s.mu.Lock()
	for i, tx := range s.transactions {
		if tx.ID == id {
			s.transactions = append(s.transactions[:i], s.transactions[i+1:]...)
			break
		}
	}
	s.summary = s.summaryLocked(float64(s.summary.TotalPL))
	s.mu.Unlock()

	s.logger.InfoContext(ctx, "Portfolio transaction deleted", logger.StringField("transaction_id", id))
	return nil
}

func (s *portfolioService) push(ctx context.Context, summary entity.PortfolioSummary) error {
	ctx, cancel := context.WithTimeout(ctx, s.opts.Timeout)
	defer cancel()
	return s.store.UpdateSummary(ctx, summary)
}
