package service

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"trading-journal/internal/entity"
	"trading-journal/internal/journal/dto"
	"trading-journal/pkg/apperror"
	"trading-journal/pkg/logger"
	"trading-journal/pkg/utils"

	"github.com/shopspring/decimal"
)

// JournalService is the entry point for trade and position operations.
type JournalService interface {
	AddTrade(ctx context.Context, req dto.TradeRequest) (SaveOutcome, error)
	EditTrade(ctx context.Context, id string, req dto.TradeRequest) (entity.TradeRecord, error)
	DeleteTrade(ctx context.Context, id string) error
	ListTrades(ctx context.Context, filter dto.TradeFilter) []entity.TradeRecord
	GetTrade(ctx context.Context, id string) (entity.TradeRecord, error)

	Positions(ctx context.Context, status entity.PositionStatus) []*entity.Position
	GetPosition(ctx context.Context, id string) (*entity.Position, error)
	OpenPosition(ctx context.Context, req dto.OpenPositionRequest) (SaveOutcome, error)
	AddToPosition(ctx context.Context, positionID string, req dto.AddToPositionRequest) (SaveOutcome, error)
	ClosePosition(ctx context.Context, positionID string, req dto.ExitPositionRequest) (SaveOutcome, error)
	PartialExit(ctx context.Context, positionID string, req dto.ExitPositionRequest) (SaveOutcome, error)
	PreviewExit(ctx context.Context, positionID string, req dto.ExitPreviewRequest) (dto.ExitPreviewResponse, error)
}

type journalService struct {
	sync       SyncService
	portfolio  PortfolioService
	reconciler *PositionReconciler
	logger     *logger.Logger

	mu        sync.RWMutex
	positions map[string]*entity.Position
}

// NewJournalService creates a JournalService and subscribes it to log changes
// so positions and the portfolio follow every mutation.
func NewJournalService(
	syncService SyncService,
	portfolio PortfolioService,
	reconciler *PositionReconciler,
	log *logger.Logger,
) JournalService {
	s := &journalService{
		sync:       syncService,
		portfolio:  portfolio,
		reconciler: reconciler,
		logger:     log,
		positions:  make(map[string]*entity.Position),
	}
	syncService.OnLogChanged(s.recompute)
	return s
}

func (s *journalService) recompute(ctx context.Context, records []entity.TradeRecord) {
	positions := s.reconciler.Rebuild(records)
	s.mu.Lock()
	s.positions = positions
	s.mu.Unlock()

	if s.portfolio == nil {
		return
	}
	if _, err := s.portfolio.SmartSync(ctx, records); err != nil {
		s.logger.ErrorContext(ctx, "Portfolio sync after log change failed", logger.ErrorField(err))
	}
}

func (s *journalService) AddTrade(ctx context.Context, req dto.TradeRequest) (SaveOutcome, error) {
	record, err := buildTradeRecord(req)
	if err != nil {
		return SaveOutcome{}, err
	}
	record.ID = entity.NewRecordID()

	s.logger.DebugContext(ctx, "Adding trade", logger.StringField("record_id", record.ID), logger.StringField("symbol", record.Symbol))
	return s.sync.Save(ctx, record)
}

// EditTrade replaces the editable fields of a trade. Position data is kept.
func (s *journalService) EditTrade(ctx context.Context, id string, req dto.TradeRequest) (entity.TradeRecord, error) {
	record, err := buildTradeRecord(req)
	if err != nil {
		return entity.TradeRecord{}, err
	}
	record.ID = id

	err = s.sync.Mutate(ctx, func(l *TradeLog) (func(), error) {
		current, err := l.Find(id)
		if err != nil {
			return nil, err
		}
		record.PositionData = current.PositionData
		previous, err := l.Update(record)
		if err != nil {
			return nil, err
		}
		return func() { _, _ = l.Update(previous) }, nil
	})
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to edit trade", logger.StringField("record_id", id), logger.ErrorField(err))
		return entity.TradeRecord{}, err
	}
	s.logger.InfoContext(ctx, "Trade edited", logger.StringField("record_id", id))
	return record, nil
}

func (s *journalService) DeleteTrade(ctx context.Context, id string) error {
	err := s.sync.Mutate(ctx, func(l *TradeLog) (func(), error) {
		removed, index, err := l.Remove(id)
		if err != nil {
			return nil, err
		}
		return func() { l.Insert(index, removed) }, nil
	})
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to delete trade", logger.StringField("record_id", id), logger.ErrorField(err))
		return err
	}
	s.logger.InfoContext(ctx, "Trade deleted", logger.StringField("record_id", id))
	return nil
}

func (s *journalService) ListTrades(ctx context.Context, filter dto.TradeFilter) []entity.TradeRecord {
	records := FilterByDateRange(s.sync.Records(), filter.From, filter.To)
	symbol := strings.ToUpper(strings.TrimSpace(filter.Symbol))
	if symbol == "" {
		return records
	}
	out := records[:0]
	for _, r := range records {
		if strings.EqualFold(r.Symbol, symbol) {
			out = append(out, r)
		}
	}
	return out
}

func (s *journalService) GetTrade(ctx context.Context, id string) (entity.TradeRecord, error) {
	return s.sync.FindRecord(id)
}

// Positions lists positions with the given status, or all when status is empty.
func (s *journalService) Positions(ctx context.Context, status entity.PositionStatus) []*entity.Position {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return SortPositions(s.positions, status)
}

func (s *journalService) GetPosition(ctx context.Context, id string) (*entity.Position, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.positions[id]
	if !ok {
		return nil, apperror.NewNotFoundError("position", id)
	}
	return p, nil
}

func (s *journalService) openPosition(ctx context.Context, id string) (*entity.Position, error) {
	p, err := s.GetPosition(ctx, id)
	if err != nil {
		return nil, err
	}
	if !p.IsOpen() {
		return nil, apperror.NewValidationError("position", fmt.Sprintf("position %s is already closed", id))
	}
	return p, nil
}

func (s *journalService) OpenPosition(ctx context.Context, req dto.OpenPositionRequest) (SaveOutcome, error) {
	entryDate, err := validateEntryDate(req.EntryDate)
	if err != nil {
		return SaveOutcome{}, err
	}
	symbol := strings.ToUpper(strings.TrimSpace(req.Symbol))
	if symbol == "" {
		return SaveOutcome{}, apperror.NewValidationError("symbol", "symbol is required")
	}
	if err := validateLeg(req.EntryPrice, req.Lot, "entry_price"); err != nil {
		return SaveOutcome{}, err
	}

	buyFee := req.BuyFee
	if buyFee == 0 {
		buyFee = ComputeBuyFee(req.EntryPrice, req.Lot)
	}
	positionID := entity.NewPositionID(symbol)
	record := entity.TradeRecord{
		ID:         entity.NewRecordID(),
		EntryDate:  entryDate,
		Symbol:     symbol,
		EntryPrice: req.EntryPrice,
		Lot:        req.Lot,
		BuyFee:     buyFee,
		TotalFee:   buyFee,
		Method:     strings.TrimSpace(req.Method),
		Notes:      defaultNotes(req.Notes, "Buat posisi baru - "+symbol),
		PositionData: &entity.PositionData{
			PositionID:      positionID,
			TransactionType: entity.TransactionTypeEntry,
			EntryType:       entity.EntryTypeInitial,
			CurrentAvgPrice: req.EntryPrice,
			CurrentTotalLot: req.Lot,
		},
	}

	s.logger.InfoContext(ctx, "Opening position", logger.StringField("position_id", positionID), logger.StringField("symbol", symbol))
	return s.sync.Save(ctx, record)
}

// AddToPosition buys more lots into an open position (average down).
func (s *journalService) AddToPosition(ctx context.Context, positionID string, req dto.AddToPositionRequest) (SaveOutcome, error) {
	p, err := s.openPosition(ctx, positionID)
	if err != nil {
		return SaveOutcome{}, err
	}
	entryDate, err := validateEntryDate(req.EntryDate)
	if err != nil {
		return SaveOutcome{}, err
	}
	if err := validateLeg(req.EntryPrice, req.Lot, "entry_price"); err != nil {
		return SaveOutcome{}, err
	}

	buyFee := req.BuyFee
	if buyFee == 0 {
		buyFee = ComputeBuyFee(req.EntryPrice, req.Lot)
	}
	record := entity.TradeRecord{
		ID:         entity.NewRecordID(),
		EntryDate:  entryDate,
		Symbol:     p.Symbol,
		EntryPrice: req.EntryPrice,
		Lot:        req.Lot,
		BuyFee:     buyFee,
		TotalFee:   buyFee,
		Method:     strings.TrimSpace(req.Method),
		Notes:      defaultNotes(req.Notes, "Average down - "+p.Symbol),
		PositionData: &entity.PositionData{
			PositionID:      p.ID,
			TransactionType: entity.TransactionTypeEntry,
			EntryType:       entity.EntryTypeAverageDown,
			CurrentAvgPrice: ComputeAverageDown(p, req.Lot, req.EntryPrice),
			CurrentTotalLot: p.TotalLot + req.Lot,
			ParentPosition:  p.ID,
		},
	}

	s.logger.InfoContext(ctx, "Adding to position", logger.StringField("position_id", p.ID), logger.IntField("lot", req.Lot))
	return s.sync.Save(ctx, record)
}

// ClosePosition sells every remaining lot of a position.
func (s *journalService) ClosePosition(ctx context.Context, positionID string, req dto.ExitPositionRequest) (SaveOutcome, error) {
	p, err := s.openPosition(ctx, positionID)
	if err != nil {
		return SaveOutcome{}, err
	}
	return s.exit(ctx, p, entity.ExitTypeFull, p.RemainingLot, req)
}

// PartialExit sells part of a position's remaining lots.
func (s *journalService) PartialExit(ctx context.Context, positionID string, req dto.ExitPositionRequest) (SaveOutcome, error) {
	p, err := s.openPosition(ctx, positionID)
	if err != nil {
		return SaveOutcome{}, err
	}
	if req.Lot < 1 {
		return SaveOutcome{}, apperror.NewValidationError("lot", "lot must be at least 1")
	}
	if req.Lot > p.RemainingLot {
		return SaveOutcome{}, apperror.NewValidationError("lot",
			fmt.Sprintf("exit lot (%d) exceeds remaining lot (%d)", req.Lot, p.RemainingLot))
	}
	return s.exit(ctx, p, entity.ExitTypePartial, req.Lot, req)
}

func (s *journalService) exit(ctx context.Context, p *entity.Position, exitType entity.ExitType, lot int, req dto.ExitPositionRequest) (SaveOutcome, error) {
	entryDate := p.FirstEntryDate()
	exitDate, err := validateExitDate(entryDate, req.ExitDate, true)
	if err != nil {
		return SaveOutcome{}, err
	}
	if req.ExitPrice <= 0 {
		return SaveOutcome{}, apperror.NewValidationError("exit_price", "exit price must be greater than 0")
	}

	result := ComputePositionExitResultWithFee(p, req.ExitPrice, lot, req.SellFee)
	buyFee := roundHalfUp(decimal.NewFromFloat(result.AllocatedBuyFee)).InexactFloat64()
	remaining := p.RemainingLot - lot

	notes := fmt.Sprintf("Tutup posisi - %s", p.Symbol)
	if exitType == entity.ExitTypePartial {
		notes = fmt.Sprintf("Partial exit %d lot - %s", lot, p.Symbol)
	}
	record := entity.TradeRecord{
		ID:         entity.NewRecordID(),
		EntryDate:  entryDate,
		ExitDate:   exitDate,
		Symbol:     p.Symbol,
		EntryPrice: p.AveragePrice,
		ExitPrice:  req.ExitPrice,
		Lot:        lot,
		BuyFee:     buyFee,
		SellFee:    result.EstimatedSellFee,
		TotalFee:   buyFee + result.EstimatedSellFee,
		ProfitLoss: result.ProfitLoss,
		Method:     strings.TrimSpace(req.Method),
		Notes:      defaultNotes(req.Notes, notes),
		PositionData: &entity.PositionData{
			PositionID:      p.ID,
			TransactionType: entity.TransactionTypeExit,
			ExitType:        exitType,
			AvgPrice:        p.AveragePrice,
			TotalLot:        lot,
			RemainingLot:    utils.ToPointer(remaining),
			ParentPosition:  p.ID,
		},
	}

	s.logger.InfoContext(ctx, "Exiting position",
		logger.StringField("position_id", p.ID),
		logger.StringField("exit_type", string(exitType)),
		logger.IntField("lot", lot),
		logger.IntField("remaining_lot", remaining))
	return s.sync.Save(ctx, record)
}

// PreviewExit estimates an exit without saving it. A zero lot previews
// selling every remaining lot.
func (s *journalService) PreviewExit(ctx context.Context, positionID string, req dto.ExitPreviewRequest) (dto.ExitPreviewResponse, error) {
	p, err := s.openPosition(ctx, positionID)
	if err != nil {
		return dto.ExitPreviewResponse{}, err
	}
	if req.ExitPrice <= 0 {
		return dto.ExitPreviewResponse{}, apperror.NewValidationError("exit_price", "exit price must be greater than 0")
	}
	lot := req.Lot
	if lot == 0 {
		lot = p.RemainingLot
	}
	if lot < 0 || lot > p.RemainingLot {
		return dto.ExitPreviewResponse{}, apperror.NewValidationError("lot",
			fmt.Sprintf("exit lot (%d) exceeds remaining lot (%d)", lot, p.RemainingLot))
	}

	result := ComputePositionExitResult(p, req.ExitPrice, lot)
	return dto.ExitPreviewResponse{
		PositionID:       p.ID,
		Lot:              lot,
		ExitPrice:        req.ExitPrice,
		AllocatedBuyFee:  result.AllocatedBuyFee,
		EstimatedSellFee: result.EstimatedSellFee,
		ProfitLoss:       result.ProfitLoss,
	}, nil
}

func buildTradeRecord(req dto.TradeRequest) (entity.TradeRecord, error) {
	entryDate, err := validateEntryDate(req.EntryDate)
	if err != nil {
		return entity.TradeRecord{}, err
	}
	symbol := strings.ToUpper(strings.TrimSpace(req.Symbol))
	if symbol == "" {
		return entity.TradeRecord{}, apperror.NewValidationError("symbol", "symbol is required")
	}
	if err := validateLeg(req.EntryPrice, req.Lot, "entry_price"); err != nil {
		return entity.TradeRecord{}, err
	}
	exitDate, err := validateExitDate(entryDate, req.ExitDate, false)
	if err != nil {
		return entity.TradeRecord{}, err
	}

	result := ComputeTradeResult(req.EntryPrice, req.ExitPrice, req.Lot, req.BuyFee, req.SellFee)
	return entity.TradeRecord{
		EntryDate:  entryDate,
		ExitDate:   exitDate,
		Symbol:     symbol,
		EntryPrice: req.EntryPrice,
		ExitPrice:  req.ExitPrice,
		Lot:        req.Lot,
		BuyFee:     result.BuyFee,
		SellFee:    result.SellFee,
		TotalFee:   result.TotalFee,
		ProfitLoss: result.ProfitLoss,
		Method:     strings.TrimSpace(req.Method),
		Notes:      strings.TrimSpace(req.Notes),
	}, nil
}

func validateEntryDate(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", apperror.NewValidationError("entry_date", "entry date is required")
	}
	date := utils.NormalizeDate(raw)
	if _, err := utils.ParseDate(date); err != nil {
		return "", apperror.NewValidationError("entry_date", "entry date must be YYYY-MM-DD")
	}
	return date, nil
}

func validateExitDate(entryDate, raw string, required bool) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		if required {
			return "", apperror.NewValidationError("exit_date", "exit date is required")
		}
		return "", nil
	}
	date := utils.NormalizeDate(raw)
	if _, err := utils.ParseDate(date); err != nil {
		return "", apperror.NewValidationError("exit_date", "exit date must be YYYY-MM-DD")
	}
	if entryDate != "" && date < entryDate {
		return "", apperror.NewValidationError("exit_date", "exit date must not be before entry date")
	}
	return date, nil
}

func validateLeg(price float64, lot int, priceField string) error {
	if price <= 0 {
		return apperror.NewValidationError(priceField, "price must be greater than 0")
	}
	if lot < 1 {
		return apperror.NewValidationError("lot", "lot must be at least 1")
	}
	return nil
}

func defaultNotes(notes, fallback string) string {
	if n := strings.TrimSpace(notes); n != "" {
		return n
	}
	return fallback
}
