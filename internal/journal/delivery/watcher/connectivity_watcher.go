package watcher

import (
	"context"
	"errors"
	"sync"
	"time"

	"trading-journal/internal/journal/service"
	"trading-journal/pkg/apperror"
	"trading-journal/pkg/logger"
)

// ConnectivityWatcher polls the remote store and hands online/offline
// transitions to the sync engine.
type ConnectivityWatcher struct {
	conn      service.ConnectivityChecker
	sync      service.SyncService
	portfolio service.PortfolioService
	logger    *logger.Logger
	interval  time.Duration

	mu     sync.Mutex
	online bool
}

// NewConnectivityWatcher creates a watcher. initialOnline is the state the
// sync engine bootstrapped with.
func NewConnectivityWatcher(
	conn service.ConnectivityChecker,
	syncService service.SyncService,
	portfolio service.PortfolioService,
	log *logger.Logger,
	interval time.Duration,
	initialOnline bool,
) *ConnectivityWatcher {
	if interval <= 0 {
		interval = 15 * time.Second
	}
	return &ConnectivityWatcher{
		conn:      conn,
		sync:      syncService,
		portfolio: portfolio,
		logger:    log,
		interval:  interval,
		online:    initialOnline,
	}
}

// Start polls until ctx is cancelled.
func (w *ConnectivityWatcher) Start(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	w.logger.Info("Connectivity watcher started", logger.Field("interval", w.interval.String()))
	for {
		select {
		case <-ctx.Done():
			w.logger.Info("Connectivity watcher stopping")
			return
		case <-ticker.C:
			w.Check(ctx)
		}
	}
}

// Check probes once and reacts to a state change. It reports the current state.
func (w *ConnectivityWatcher) Check(ctx context.Context) bool {
	online := w.conn.IsOnline(ctx)

	w.mu.Lock()
	changed := online != w.online
	w.online = online
	w.mu.Unlock()

	if !changed {
		return online
	}

	if !online {
		w.logger.Warn("Remote store unreachable")
		w.sync.HandleConnectivityLost(ctx)
		return online
	}

	w.logger.Info("Remote store reachable again")
	w.sync.HandleConnectivityRestored(ctx)
	if w.portfolio != nil {
		if _, err := w.portfolio.ProcessPendingPortfolioSync(ctx); err != nil && !errors.Is(err, apperror.ErrOffline) {
			w.logger.Error("Failed to push pending portfolio summary", logger.ErrorField(err))
		}
	}
	return online
}

// Online reports the last observed state.
func (w *ConnectivityWatcher) Online() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.online
}
