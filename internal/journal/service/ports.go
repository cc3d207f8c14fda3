package service

import (
	"context"
	"sync/atomic"

	"trading-journal/internal/entity"
)

// TradeStore persists the whole transaction log. SaveAll overwrites the remote log.
type TradeStore interface {
	LoadAll(ctx context.Context) ([]entity.TradeRecord, error)
	SaveAll(ctx context.Context, records []entity.TradeRecord) error
}

// PortfolioStore persists the portfolio summary and the cash-flow transactions.
type PortfolioStore interface {
	GetSummary(ctx context.Context) (*entity.PortfolioSummary, error)
	UpdateSummary(ctx context.Context, summary entity.PortfolioSummary) error
	ListTransactions(ctx context.Context) ([]entity.PortfolioTransaction, error)
	AddTransaction(ctx context.Context, tx entity.PortfolioTransaction) (entity.PortfolioTransaction, error)
	DeleteTransaction(ctx context.Context, id string) error
}

// ConnectivityChecker reports whether the remote store is reachable.
type ConnectivityChecker interface {
	IsOnline(ctx context.Context) bool
}

// StaticConnectivity is a ConnectivityChecker driven by SetOnline.
type StaticConnectivity struct {
	online atomic.Bool
}

// NewStaticConnectivity creates a StaticConnectivity in the given state.
func NewStaticConnectivity(online bool) *StaticConnectivity {
	c := &StaticConnectivity{}
	c.online.Store(online)
	return c
}

func (c *StaticConnectivity) IsOnline(context.Context) bool {
	return c.online.Load()
}

func (c *StaticConnectivity) SetOnline(online bool) {
	c.online.Store(online)
}
