package service

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"trading-journal/internal/entity"
	"trading-journal/internal/journal/repository"
	"trading-journal/pkg/apperror"
	"trading-journal/pkg/common"
	"trading-journal/pkg/localstore"

	"github.com/stretchr/testify/require"
)

type fakeTradeStore struct {
	mu      sync.Mutex
	remote  []entity.TradeRecord
	loadErr error
	saveErr error
	loads   int
	saves   [][]entity.TradeRecord
}

func (f *fakeTradeStore) LoadAll(ctx context.Context) ([]entity.TradeRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.loads++
	if f.loadErr != nil {
		return nil, f.loadErr
	}
	return entity.CloneRecords(f.remote), nil
}

func (f *fakeTradeStore) SaveAll(ctx context.Context, records []entity.TradeRecord) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.saveErr != nil {
		return f.saveErr
	}
	f.saves = append(f.saves, entity.CloneRecords(records))
	f.remote = entity.CloneRecords(records)
	return nil
}

func (f *fakeTradeStore) remoteIDs() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return ids(f.remote)
}

type fakePortfolioStore struct {
	mu        sync.Mutex
	summary   *entity.PortfolioSummary
	txs       []entity.PortfolioTransaction
	updates   []entity.PortfolioSummary
	updateErr error
	listErr   error
	nextID    int
}

func (f *fakePortfolioStore) GetSummary(ctx context.Context) (*entity.PortfolioSummary, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.summary == nil {
		return nil, nil
	}
	s := *f.summary
	return &s, nil
}

func (f *fakePortfolioStore) UpdateSummary(ctx context.Context, summary entity.PortfolioSummary) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.updateErr != nil {
		return f.updateErr
	}
	f.updates = append(f.updates, summary)
	f.summary = &summary
	return nil
}

func (f *fakePortfolioStore) ListTransactions(ctx context.Context) ([]entity.PortfolioTransaction, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.listErr != nil {
		return nil, f.listErr
	}
	return append([]entity.PortfolioTransaction(nil), f.txs...), nil
}

func (f *fakePortfolioStore) AddTransaction(ctx context.Context, tx entity.PortfolioTransaction) (entity.PortfolioTransaction, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.updateErr != nil {
		return entity.PortfolioTransaction{}, f.updateErr
	}
	f.nextID++
	tx.ID = fmt.Sprintf("PTX-%d", f.nextID)
	f.txs = append(f.txs, tx)
	return tx, nil
}

func (f *fakePortfolioStore) DeleteTransaction(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, tx := range f.txs {
		if tx.ID == id {
			f.txs = append(f.txs[:i], f.txs[i+1:]...)
			return nil
		}
	}
	return apperror.NewNotFoundError("portfolio transaction", id)
}

type recordingNotifier struct {
	mu    sync.Mutex
	notes []Notification
}

func (r *recordingNotifier) Notify(_ context.Context, n Notification) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.notes = append(r.notes, n)
}

func (r *recordingNotifier) titles() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.notes))
	for i, n := range r.notes {
		out[i] = n.Title
	}
	return out
}

func (r *recordingNotifier) sticky() []Notification {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []Notification
	for _, n := range r.notes {
		if n.Sticky {
			out = append(out, n)
		}
	}
	return out
}

func newMemoryQueue(t *testing.T, key, prefix string) repository.PendingQueueRepository {
	t.Helper()
	store, err := localstore.Open(localstore.Config{})
	require.NoError(t, err)
	return repository.NewPendingQueueRepository(store, key, prefix, nil)
}

func newTradeQueue(t *testing.T) repository.PendingQueueRepository {
	return newMemoryQueue(t, common.StorageKeyPendingTrades, common.PendingIDPrefixTrade)
}

func newPortfolioQueue(t *testing.T) repository.PendingQueueRepository {
	return newMemoryQueue(t, common.StorageKeyPendingPortfolio, common.PendingIDPrefixPortfolio)
}

func trade(id, symbol string, pl float64) entity.TradeRecord {
	return entity.TradeRecord{ID: id, EntryDate: "2024-01-02", Symbol: symbol, EntryPrice: 1000, ExitPrice: 1100, Lot: 1, ProfitLoss: pl}
}
