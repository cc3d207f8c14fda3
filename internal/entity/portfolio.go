package entity

import "time"

type PortfolioTransactionType string

const (
	PortfolioTransactionTopUp    PortfolioTransactionType = "TOP_UP"
	PortfolioTransactionWithdraw PortfolioTransactionType = "WITHDRAW"
)

// PortfolioSummary is the cached cash state of the journal.
type PortfolioSummary struct {
	ID            uint      `gorm:"primaryKey" json:"-"`
	TotalTopUp    int64     `gorm:"not null" json:"total_top_up"`
	TotalWithdraw int64     `gorm:"not null" json:"total_withdraw"`
	TotalPL       int64     `gorm:"column:total_pl;not null" json:"total_pl"`
	TotalEquity   int64     `gorm:"not null" json:"total_equity"`
	AvailableCash int64     `gorm:"not null" json:"available_cash"`
	GrowthPercent float64   `gorm:"not null" json:"growth_percent"`
	LastUpdated   time.Time `gorm:"not null" json:"last_updated"`
}

func (PortfolioSummary) TableName() string {
	return "portfolio_summary"
}

// NetDeposit is top-ups minus withdrawals.
func (s PortfolioSummary) NetDeposit() int64 {
	return s.TotalTopUp - s.TotalWithdraw
}

// PortfolioTransaction is an external cash movement.
type PortfolioTransaction struct {
	ID        string                   `gorm:"primaryKey" json:"id"`
	Type      PortfolioTransactionType `gorm:"not null" json:"type"`
	Amount    int64                    `gorm:"not null" json:"amount"`
	Method    string                   `json:"method"`
	Notes     string                   `json:"notes"`
	Timestamp time.Time                `gorm:"not null" json:"timestamp"`
}

func (PortfolioTransaction) TableName() string {
	return "portfolio_transactions"
}
