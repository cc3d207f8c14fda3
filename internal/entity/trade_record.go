package entity

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// SharesPerLot is the number of shares in one IDX lot.
const SharesPerLot = 100

// TradeRecord is one row of the transaction log.
type TradeRecord struct {
	ID           string        `json:"id"`
	EntryDate    string        `json:"entry_date"`
	ExitDate     string        `json:"exit_date,omitempty"`
	Symbol       string        `json:"symbol"`
	EntryPrice   float64       `json:"entry_price"`
	ExitPrice    float64       `json:"exit_price"`
	Lot          int           `json:"lot"`
	BuyFee       float64       `json:"buy_fee"`
	SellFee      float64       `json:"sell_fee"`
	TotalFee     float64       `json:"total_fee"`
	ProfitLoss   float64       `json:"profit_loss"`
	Method       string        `json:"method,omitempty"`
	Notes        string        `json:"notes,omitempty"`
	PositionData *PositionData `json:"position_data,omitempty"`
}

// HasExit reports whether the record carries an exit price.
func (r TradeRecord) HasExit() bool {
	return r.ExitPrice > 0
}

// Shares returns the number of shares traded.
func (r TradeRecord) Shares() int {
	return r.Lot * SharesPerLot
}

// Clone returns a deep copy of the record.
func (r TradeRecord) Clone() TradeRecord {
	if r.PositionData != nil {
		pd := r.PositionData.Clone()
		r.PositionData = &pd
	}
	return r
}

// NewRecordID returns a unique trade record id.
func NewRecordID() string {
	return "TRX-" + uuid.NewString()
}

// NewPositionID returns a unique position id for the given symbol.
func NewPositionID(symbol string) string {
	return fmt.Sprintf("POS-%s-%s", strings.ToUpper(symbol), strings.ReplaceAll(uuid.NewString(), "-", "")[:12])
}

// CloneRecords deep-copies a slice of records.
func CloneRecords(records []TradeRecord) []TradeRecord {
	if records == nil {
		return nil
	}
	out := make([]TradeRecord, len(records))
	for i, r := range records {
		out[i] = r.Clone()
	}
	return out
}
