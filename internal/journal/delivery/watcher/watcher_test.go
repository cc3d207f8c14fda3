package watcher

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"trading-journal/internal/entity"
	"trading-journal/internal/journal/service"
	"trading-journal/pkg/apperror"
	"trading-journal/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubSync struct {
	service.SyncService

	mu       sync.Mutex
	calls    []string
	drained  int
	drainErr error
}

func (s *stubSync) record(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, name)
}

func (s *stubSync) HandleConnectivityRestored(context.Context) { s.record("restored") }
func (s *stubSync) HandleConnectivityLost(context.Context)     { s.record("lost") }

func (s *stubSync) ProcessPendingSync(context.Context) (int, error) {
	s.record("drain")
	return s.drained, s.drainErr
}

func (s *stubSync) history() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.calls...)
}

type stubPortfolio struct {
	service.PortfolioService

	mu    sync.Mutex
	calls int
	err   error
}

func (p *stubPortfolio) ProcessPendingPortfolioSync(context.Context) (bool, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.calls++
	return p.err == nil, p.err
}

func (p *stubPortfolio) count() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.calls
}

func TestConnectivityWatcherCheck(t *testing.T) {
	ctx := context.Background()
	conn := service.NewStaticConnectivity(true)
	syncSvc := &stubSync{}
	portfolio := &stubPortfolio{}
	w := NewConnectivityWatcher(conn, syncSvc, portfolio, logger.NewNop(), time.Minute, true)

	assert.True(t, w.Check(ctx))
	assert.Empty(t, syncSvc.history(), "no transition, no callback")

	conn.SetOnline(false)
	assert.False(t, w.Check(ctx))
	assert.False(t, w.Check(ctx))
	assert.Equal(t, []string{"lost"}, syncSvc.history())
	assert.Zero(t, portfolio.count())

	conn.SetOnline(true)
	assert.True(t, w.Check(ctx))
	assert.True(t, w.Online())
	assert.Equal(t, []string{"lost", "restored"}, syncSvc.history())
	assert.Equal(t, 1, portfolio.count())
}

func TestConnectivityWatcherStartStops(t *testing.T) {
	conn := service.NewStaticConnectivity(false)
	syncSvc := &stubSync{}
	w := NewConnectivityWatcher(conn, syncSvc, nil, logger.NewNop(), 5*time.Millisecond, false)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		w.Start(ctx)
		close(done)
	}()

	conn.SetOnline(true)
	assert.Eventually(t, func() bool {
		h := syncSvc.history()
		return len(h) == 1 && h[0] == "restored"
	}, time.Second, 5*time.Millisecond)

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("watcher did not stop")
	}
}

func TestNewRetrySchedulerRejectsBadSpec(t *testing.T) {
	_, err := NewRetryScheduler("every now and then", time.Second, service.NewStaticConnectivity(true), &stubSync{}, nil, logger.NewNop())
	require.Error(t, err)
	assert.True(t, apperror.IsValidation(err))
}

func TestRetrySchedulerRunOnce(t *testing.T) {
	ctx := context.Background()

	t.Run("offline skips both queues", func(t *testing.T) {
		syncSvc := &stubSync{drained: 3}
		portfolio := &stubPortfolio{}
		s, err := NewRetryScheduler("@every 1m", time.Second, service.NewStaticConnectivity(false), syncSvc, portfolio, logger.NewNop())
		require.NoError(t, err)

		assert.Zero(t, s.RunOnce(ctx))
		assert.Empty(t, syncSvc.history())
		assert.Zero(t, portfolio.count())
	})

	t.Run("online drains trades then portfolio", func(t *testing.T) {
		syncSvc := &stubSync{drained: 2}
		portfolio := &stubPortfolio{}
		s, err := NewRetryScheduler("*/5 * * * *", time.Second, service.NewStaticConnectivity(true), syncSvc, portfolio, logger.NewNop())
		require.NoError(t, err)

		assert.Equal(t, 2, s.RunOnce(ctx))
		assert.Equal(t, []string{"drain"}, syncSvc.history())
		assert.Equal(t, 1, portfolio.count())
	})

	t.Run("trade failure still tries portfolio", func(t *testing.T) {
		syncSvc := &stubSync{drainErr: errors.New("boom")}
		portfolio := &stubPortfolio{err: apperror.ErrOffline}
		s, err := NewRetryScheduler("@hourly", time.Second, service.NewStaticConnectivity(true), syncSvc, portfolio, logger.NewNop())
		require.NoError(t, err)

		assert.Zero(t, s.RunOnce(ctx))
		assert.Equal(t, 1, portfolio.count())
	})
}

func TestRetrySchedulerStartStops(t *testing.T) {
	s, err := NewRetryScheduler("@every 1h", time.Second, service.NewStaticConnectivity(true), &stubSync{}, nil, logger.NewNop())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		s.Start(ctx)
		close(done)
	}()
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("scheduler did not stop")
	}
}

type stubJournal struct {
	service.JournalService
	open []*entity.Position
}

func (j *stubJournal) Positions(_ context.Context, status entity.PositionStatus) []*entity.Position {
	if status != entity.PositionStatusOpen {
		return nil
	}
	return j.open
}

type summaryPortfolio struct {
	stubPortfolio
	summary entity.PortfolioSummary
}

func (p *summaryPortfolio) Summary() entity.PortfolioSummary { return p.summary }

type capturingTelegram struct {
	messages []string
	err      error
}

func (c *capturingTelegram) SendMessage(_ context.Context, text string) error {
	c.messages = append(c.messages, text)
	return c.err
}

func TestPortfolioReporterSend(t *testing.T) {
	portfolio := &summaryPortfolio{summary: entity.PortfolioSummary{TotalTopUp: 5000000, TotalPL: 125000, TotalEquity: 5125000, GrowthPercent: 2.5}}
	journal := &stubJournal{open: []*entity.Position{{Symbol: "TLKM", RemainingLot: 2, AveragePrice: 3500}}}
	tg := &capturingTelegram{}

	r, err := NewPortfolioReporter("0 16 * * 1-5", portfolio, journal, tg, logger.NewNop())
	require.NoError(t, err)
	require.NoError(t, r.Send(context.Background()))

	require.Len(t, tg.messages, 1)
	assert.Contains(t, tg.messages[0], "Rp 5.125.000")
	assert.Contains(t, tg.messages[0], "TLKM: 2 lot @ Rp 3.500")

	tg.err = errors.New("chat not found")
	assert.EqualError(t, r.Send(context.Background()), "chat not found")
}

func TestNewPortfolioReporterRejectsBadSpec(t *testing.T) {
	_, err := NewPortfolioReporter("weekly-ish", &summaryPortfolio{}, &stubJournal{}, &capturingTelegram{}, logger.NewNop())
	assert.True(t, apperror.IsValidation(err))
}
