package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"trading-journal/internal/entity"
	"trading-journal/pkg/apperror"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// tradeRecordRow is the trade_records table layout. Seq keeps log order.
type tradeRecordRow struct {
	Seq          int    `gorm:"primaryKey;autoIncrement:false"`
	ID           string `gorm:"column:id;uniqueIndex;not null"`
	EntryDate    string `gorm:"not null"`
	ExitDate     string
	Symbol       string  `gorm:"not null;index"`
	EntryPrice   float64 `gorm:"not null"`
	ExitPrice    float64 `gorm:"not null"`
	Lot          int     `gorm:"not null"`
	BuyFee       float64 `gorm:"not null"`
	SellFee      float64 `gorm:"not null"`
	TotalFee     float64 `gorm:"not null"`
	ProfitLoss   float64 `gorm:"not null"`
	Method       string
	Notes        string
	PositionData datatypes.JSON `gorm:"type:jsonb"`
	UpdatedAt    time.Time      `gorm:"autoUpdateTime"`
}

func (tradeRecordRow) TableName() string {
	return "trade_records"
}

func toTradeRecordRow(seq int, r entity.TradeRecord) (tradeRecordRow, error) {
	row := tradeRecordRow{
		Seq:        seq,
		ID:         r.ID,
		EntryDate:  r.EntryDate,
		ExitDate:   r.ExitDate,
		Symbol:     r.Symbol,
		EntryPrice: r.EntryPrice,
		ExitPrice:  r.ExitPrice,
		Lot:        r.Lot,
		BuyFee:     r.BuyFee,
		SellFee:    r.SellFee,
		TotalFee:   r.TotalFee,
		ProfitLoss: r.ProfitLoss,
		Method:     r.Method,
		Notes:      r.Notes,
	}
	if r.PositionData != nil {
		b, err := json.Marshal(r.PositionData)
		if err != nil {
			return row, err
		}
		row.PositionData = datatypes.JSON(b)
	}
	return row, nil
}

func (row tradeRecordRow) toEntity() entity.TradeRecord {
	r := entity.TradeRecord{
		ID:         row.ID,
		EntryDate:  row.EntryDate,
		ExitDate:   row.ExitDate,
		Symbol:     row.Symbol,
		EntryPrice: row.EntryPrice,
		ExitPrice:  row.ExitPrice,
		Lot:        row.Lot,
		BuyFee:     row.BuyFee,
		SellFee:    row.SellFee,
		TotalFee:   row.TotalFee,
		ProfitLoss: row.ProfitLoss,
		Method:     row.Method,
		Notes:      row.Notes,
	}
	if len(row.PositionData) > 0 {
		if pd, err := entity.ParsePositionData(string(row.PositionData)); err == nil {
			r.PositionData = pd
		}
	}
	return r
}

// PostgresStoreRepository persists the journal in PostgreSQL. It honours the
// same full-log overwrite contract as the spreadsheet.
type PostgresStoreRepository interface {
	LoadAll(ctx context.Context) ([]entity.TradeRecord, error)
	SaveAll(ctx context.Context, records []entity.TradeRecord) error
	GetSummary(ctx context.Context) (*entity.PortfolioSummary, error)
	UpdateSummary(ctx context.Context, summary entity.PortfolioSummary) error
	ListTransactions(ctx context.Context) ([]entity.PortfolioTransaction, error)
	AddTransaction(ctx context.Context, tx entity.PortfolioTransaction) (entity.PortfolioTransaction, error)
	DeleteTransaction(ctx context.Context, id string) error
}

type postgresStoreRepository struct {
	db  *gorm.DB
	now func() time.Time
}

// NewPostgresStoreRepository creates a GORM-based journal store.
func NewPostgresStoreRepository(db *gorm.DB) PostgresStoreRepository {
	return &postgresStoreRepository{db: db, now: time.Now}
}

const summaryRowID = 1

// LoadAll returns every trade record in log order.
func (r *postgresStoreRepository) LoadAll(ctx context.Context) ([]entity.TradeRecord, error) {
	var rows []tradeRecordRow
	if err := r.db.WithContext(ctx).Order("seq ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	records := make([]entity.TradeRecord, 0, len(rows))
	for _, row := range rows {
		records = append(records, row.toEntity())
	}
	return records, nil
}

// SaveAll replaces the whole log within a transaction.
func (r *postgresStoreRepository) SaveAll(ctx context.Context, records []entity.TradeRecord) error {
	rows := make([]tradeRecordRow, 0, len(records))
	for i, rec := range records {
		row, err := toTradeRecordRow(i+1, rec)
		if err != nil {
			return fmt.Errorf("encode trade record %s: %w", rec.ID, err)
		}
		rows = append(rows, row)
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&tradeRecordRow{}).Error; err != nil {
			return err
		}
		if len(rows) == 0 {
			return nil
		}
		return tx.CreateInBatches(rows, 200).Error
	})
}

// GetSummary returns the cached portfolio summary, or nil if none was stored yet.
func (r *postgresStoreRepository) GetSummary(ctx context.Context) (*entity.PortfolioSummary, error) {
	var s entity.PortfolioSummary
	err := r.db.WithContext(ctx).First(&s, summaryRowID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// UpdateSummary upserts the single summary row.
func (r *postgresStoreRepository) UpdateSummary(ctx context.Context, summary entity.PortfolioSummary) error {
	summary.ID = summaryRowID
	return r.db.WithContext(ctx).Save(&summary).Error
}

// ListTransactions returns cash flows, newest first.
func (r *postgresStoreRepository) ListTransactions(ctx context.Context) ([]entity.PortfolioTransaction, error) {
	var txs []entity.PortfolioTransaction
	if err := r.db.WithContext(ctx).Order("timestamp DESC").Find(&txs).Error; err != nil {
		return nil, err
	}
	return txs, nil
}

// AddTransaction stores a new cash flow.
func (r *postgresStoreRepository) AddTransaction(ctx context.Context, tx entity.PortfolioTransaction) (entity.PortfolioTransaction, error) {
	if tx.ID == "" {
		tx.ID = "PTX-" + uuid.NewString()
	}
	if tx.Timestamp.IsZero() {
		tx.Timestamp = r.now()
	}
	if err := r.db.WithContext(ctx).Create(&tx).Error; err != nil {
		return entity.PortfolioTransaction{}, err
	}
	return tx, nil
}

// DeleteTransaction removes a cash flow by id.
func (r *postgresStoreRepository) DeleteTransaction(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&entity.PortfolioTransaction{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperror.NewNotFoundError("portfolio transaction", id)
	}
	return nil
}
