package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"trading-journal/internal/entity"
	"trading-journal/internal/journal/repository"
	"trading-journal/pkg/apperror"
	"trading-journal/pkg/logger"
)

type SyncState string

const (
	SyncStateIdle          SyncState = "idle"
	SyncStateSaving        SyncState = "saving"
	SyncStateOfflineQueued SyncState = "offline_queued"
	SyncStateOnlineSyncing SyncState = "online_syncing"
	SyncStateFailed        SyncState = "failed"
)

// SaveOutcome reports where a saved record ended up.
type SaveOutcome struct {
	Record    entity.TradeRecord
	Queued    bool
	PendingID string
	State     SyncState
}

// SyncStatus is a snapshot of the sync engine.
type SyncStatus struct {
	State           SyncState
	Online          bool
	PendingCount    int
	LastSyncAttempt *time.Time
	LastError       string
	LogSize         int
}

// LogMutation changes the transaction log and returns a function undoing the change.
type LogMutation func(log *TradeLog) (undo func(), err error)

// LogListener is called after the transaction log changed.
type LogListener func(ctx context.Context, records []entity.TradeRecord)

// SyncService keeps the in-memory log, the pending queue and the remote store consistent.
type SyncService interface {
	Bootstrap(ctx context.Context) error
	Save(ctx context.Context, record entity.TradeRecord) (SaveOutcome, error)
	Mutate(ctx context.Context, mutation LogMutation) error
	ProcessPendingSync(ctx context.Context) (int, error)
	HandleConnectivityRestored(ctx context.Context)
	HandleConnectivityLost(ctx context.Context)
	Status(ctx context.Context) SyncStatus
	Records() []entity.TradeRecord
	FindRecord(id string) (entity.TradeRecord, error)
	OnLogChanged(listener LogListener)
}

// SyncOptions tunes the sync engine.
type SyncOptions struct {
	Timeout        time.Duration
	ReconnectDelay time.Duration
}

type syncService struct {
	mu       sync.Mutex
	log      *TradeLog
	store    TradeStore
	pending  repository.PendingQueueRepository
	conn     ConnectivityChecker
	notifier Notifier
	logger   *logger.Logger
	opts     SyncOptions
	// loaded is set once the log holds the remote copy. Until then the log may
	// only contain queued records and must not overwrite the remote store.
	loaded    bool
	stateMu   sync.RWMutex
	state     SyncState
	lastError string

	listenersMu sync.RWMutex
	listeners   []LogListener
	// dispatchMu orders snapshot and delivery so listeners never see an older log after a newer one.
	dispatchMu sync.Mutex
}

// NewSyncService creates a SyncService over an empty transaction log.
func NewSyncService(
	store TradeStore,
	pending repository.PendingQueueRepository,
	conn ConnectivityChecker,
	notifier Notifier,
	log *logger.Logger,
	opts SyncOptions,
) SyncService {
	if opts.Timeout <= 0 {
		opts.Timeout = 10 * time.Second
	}
	if notifier == nil {
		notifier = NopNotifier{}
	}
	return &syncService{
		log:      NewTradeLog(nil),
		store:    store,
		pending:  pending,
		conn:     conn,
		notifier: notifier,
		logger:   log,
		opts:     opts,
		state:    SyncStateIdle,
	}
}

func (s *syncService) OnLogChanged(listener LogListener) {
	s.listenersMu.Lock()
	defer s.listenersMu.Unlock()
	s.listeners = append(s.listeners, listener)
}

func (s *syncService) fireChanged(ctx context.Context) {
	s.dispatchMu.Lock()
	defer s.dispatchMu.Unlock()

	s.listenersMu.RLock()
	listeners := append([]LogListener(nil), s.listeners...)
	s.listenersMu.RUnlock()

	records := s.log.All()
	for _, l := range listeners {
		l(ctx, records)
	}
}

func (s *syncService) setState(state SyncState, err error) {
	s.stateMu.Lock()
	defer s.stateMu.Unlock()
	s.state = state
	if err != nil {
		s.lastError = err.Error()
	} else if state == SyncStateIdle {
		s.lastError = ""
	}
}

func (s *syncService) Records() []entity.TradeRecord {
	return s.log.All()
}

func (s *syncService) FindRecord(id string) (entity.TradeRecord, error) {
	return s.log.Find(id)
}

func (s *syncService) Status(ctx context.Context) SyncStatus {
	s.stateMu.RLock()
	status := SyncStatus{State: s.state, LastError: s.lastError}
	s.stateMu.RUnlock()

	status.Online = s.conn.IsOnline(ctx)
	status.LogSize = s.log.Len()
	if snap, err := s.pending.Snapshot(ctx); err == nil {
		status.PendingCount = len(snap.Records)
		status.LastSyncAttempt = snap.LastSyncAttempt
	} else {
		s.logger.ErrorContext(ctx, "Failed to read pending queue", logger.ErrorField(err))
	}
	return status
}

// Bootstrap loads the remote log. Online with pending records it drains them;
// otherwise pending records are merged into the in-memory log.
func (s *syncService) Bootstrap(ctx context.Context) error {
	s.mu.Lock()
	err := s.bootstrapLocked(ctx)
	s.mu.Unlock()

	s.fireChanged(ctx)
	return err
}

func (s *syncService) bootstrapLocked(ctx context.Context) error {
	pendingRecords, err := s.pending.PeekAll(ctx)
	if err != nil {
		return err
	}

	if s.conn.IsOnline(ctx) {
		if len(pendingRecords) > 0 {
			if _, err := s.drainLocked(ctx); err == nil {
				return nil
			}
		} else {
			remote, err := s.loadRemote(ctx)
			if err == nil {
				s.log.Replace(remote)
				s.loaded = true
				s.setState(SyncStateIdle, nil)
				s.logger.InfoContext(ctx, "Transaction log loaded", logger.IntField("records", len(remote)))
				return nil
			}
			s.logger.ErrorContext(ctx, "Failed to load transaction log from remote store", logger.ErrorField(err))
			s.setState(SyncStateFailed, err)
			return err
		}
	}

	// Offline, or the drain failed: show queued records locally.
	var remote []entity.TradeRecord
	if s.conn.IsOnline(ctx) {
		if remote, err = s.loadRemote(ctx); err != nil {
			s.logger.WarnContext(ctx, "Remote store unavailable at startup, using pending records only", logger.ErrorField(err))
			remote = nil
		} else {
			s.loaded = true
		}
	}
	merged, _ := mergePending(remote, pendingRecords, s.logger)
	s.log.Replace(merged)
	if len(pendingRecords) > 0 {
		s.setState(SyncStateOfflineQueued, nil)
	}
	return nil
}

// Save appends a record and persists it, falling back to the pending queue.
func (s *syncService) Save(ctx context.Context, record entity.TradeRecord) (SaveOutcome, error) {
	s.mu.Lock()
	outcome, changed, err := s.saveLocked(ctx, record)
	s.mu.Unlock()

	if changed {
		s.fireChanged(ctx)
	}
	return outcome, err
}

func (s *syncService) saveLocked(ctx context.Context, record entity.TradeRecord) (SaveOutcome, bool, error) {
	s.setState(SyncStateSaving, nil)
	outcome := SaveOutcome{Record: record}

	if !s.conn.IsOnline(ctx) {
		s.log.Append(record)
		pid, err := s.pending.Enqueue(ctx, record)
		if err != nil {
			s.log.RemoveLast(record.ID)
			s.setState(SyncStateFailed, err)
			s.notifyStorageFailure(ctx, err)
			return outcome, false, err
		}
		s.setState(SyncStateOfflineQueued, nil)
		s.notifier.Notify(ctx, Notification{
			Level:   NotificationWarning,
			Title:   "Mode offline",
			Message: fmt.Sprintf("Transaksi %s disimpan lokal dan akan disinkronkan saat online.", record.Symbol),
		})
		s.logger.InfoContext(ctx, "Trade saved offline", logger.StringField("record_id", record.ID), logger.StringField("pending_id", pid))
		outcome.Queued, outcome.PendingID, outcome.State = true, pid, SyncStateOfflineQueued
		return outcome, true, nil
	}

	count, err := s.pending.Count(ctx)
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to read pending queue", logger.ErrorField(err))
	}
	drained := false
	if count > 0 {
		if _, err := s.drainLocked(ctx); err != nil {
			// Keep ordering: the new record goes behind the queued ones.
			return s.queueAfterFailure(ctx, record, true, err)
		}
		drained = true
	}
	reloaded, err := s.ensureLoadedLocked(ctx)
	if err != nil {
		return s.queueAfterFailure(ctx, record, true, err)
	}
	drained = drained || reloaded

	s.log.Append(record)
	if err := s.push(ctx, s.log.All()); err != nil {
		s.log.RemoveLast(record.ID)
		queued, _, qerr := s.queueAfterFailure(ctx, record, false, err)
		return queued, drained, qerr
	}

	s.setState(SyncStateIdle, nil)
	s.notifier.Notify(ctx, Notification{
		Level:   NotificationSuccess,
		Title:   "Tersimpan",
		Message: fmt.Sprintf("Transaksi %s tersimpan ke server.", record.Symbol),
	})
	s.logger.InfoContext(ctx, "Trade saved to remote store", logger.StringField("record_id", record.ID))
	outcome.State = SyncStateIdle
	return outcome, true, nil
}

// queueAfterFailure enqueues a record whose online save failed. keepInLog
// leaves the record visible in memory next to the other queued records.
func (s *syncService) queueAfterFailure(ctx context.Context, record entity.TradeRecord, keepInLog bool, cause error) (SaveOutcome, bool, error) {
	outcome := SaveOutcome{Record: record}
	s.setState(SyncStateFailed, cause)
	s.logger.ErrorContext(ctx, "Online save failed, falling back to pending queue",
		logger.StringField("record_id", record.ID), logger.ErrorField(cause))

	pid, err := s.pending.Enqueue(ctx, record)
	if err != nil {
		s.notifyStorageFailure(ctx, err)
		return outcome, false, fmt.Errorf("save failed (%v) and could not be queued: %w", cause, err)
	}
	if keepInLog {
		s.log.Append(record)
	}

	s.setState(SyncStateOfflineQueued, cause)
	s.notifier.Notify(ctx, Notification{
		Level:   NotificationError,
		Title:   "Gagal menyimpan ke server",
		Message: fmt.Sprintf("Transaksi %s masuk antrean dan akan dicoba lagi: %v", record.Symbol, cause),
	})
	outcome.Queued, outcome.PendingID, outcome.State = true, pid, SyncStateOfflineQueued
	return outcome, keepInLog, nil
}

func (s *syncService) notifyStorageFailure(ctx context.Context, err error) {
	s.logger.ErrorContext(ctx, "Failed to write pending queue", logger.ErrorField(err))
	s.notifier.Notify(ctx, Notification{
		Level:   NotificationError,
		Title:   "Penyimpanan lokal penuh",
		Message: err.Error(),
		Sticky:  true,
	})
}

// Mutate applies a destructive change (edit, delete) and overwrites the
// remote log. It requires connectivity and undoes the change if the push fails.
func (s *syncService) Mutate(ctx context.Context, mutation LogMutation) error {
	s.mu.Lock()
	changed, err := s.mutateLocked(ctx, mutation)
	s.mu.Unlock()

	if changed {
		s.fireChanged(ctx)
	}
	return err
}

func (s *syncService) mutateLocked(ctx context.Context, mutation LogMutation) (bool, error) {
	if !s.conn.IsOnline(ctx) {
		s.notifyDestructiveFailure(ctx, apperror.ErrOffline)
		return false, apperror.ErrOffline
	}

	drained := false
	if count, _ := s.pending.Count(ctx); count > 0 {
		if _, err := s.drainLocked(ctx); err != nil {
			s.notifyDestructiveFailure(ctx, err)
			return false, err
		}
		drained = true
	}
	reloaded, err := s.ensureLoadedLocked(ctx)
	if err != nil {
		s.setState(SyncStateFailed, err)
		s.notifyDestructiveFailure(ctx, err)
		return false, err
	}
	drained = drained || reloaded

	undo, err := mutation(s.log)
	if err != nil {
		return drained, err
	}

	s.setState(SyncStateSaving, nil)
	if err := s.push(ctx, s.log.All()); err != nil {
		if undo != nil {
			undo()
		}
		s.setState(SyncStateFailed, err)
		s.logger.ErrorContext(ctx, "Full log overwrite failed", logger.ErrorField(err))
		s.notifyDestructiveFailure(ctx, err)
		return drained, err
	}
	s.setState(SyncStateIdle, nil)
	return true, nil
}

func (s *syncService) notifyDestructiveFailure(ctx context.Context, err error) {
	s.notifier.Notify(ctx, Notification{
		Level:   NotificationError,
		Title:   "Gagal menyimpan data ke server",
		Message: "Error: " + err.Error(),
		Sticky:  true,
	})
}

// ProcessPendingSync drains the pending queue: the latest remote log plus
// every queued payload is pushed, and the queue is cleared only afterwards.
func (s *syncService) ProcessPendingSync(ctx context.Context) (int, error) {
	s.mu.Lock()
	n, err := s.drainLocked(ctx)
	s.mu.Unlock()

	if n > 0 {
		s.fireChanged(ctx)
	}
	return n, err
}

func (s *syncService) drainLocked(ctx context.Context) (int, error) {
	queued, err := s.pending.PeekAll(ctx)
	if err != nil {
		return 0, err
	}
	if len(queued) == 0 {
		return 0, nil
	}
	if !s.conn.IsOnline(ctx) {
		return 0, apperror.ErrOffline
	}

	s.setState(SyncStateOnlineSyncing, nil)
	if err := s.pending.MarkSyncAttempt(ctx); err != nil {
		s.logger.ErrorContext(ctx, "Failed to mark sync attempt", logger.ErrorField(err))
	}
	s.logger.InfoContext(ctx, "Syncing pending records", logger.IntField("pending_count", len(queued)))

	remote, err := s.loadRemote(ctx)
	if err != nil {
		s.setState(SyncStateOfflineQueued, err)
		s.logger.ErrorContext(ctx, "Pending sync failed to load remote log", logger.ErrorField(err))
		return 0, err
	}

	combined, added := mergePending(remote, queued, s.logger)
	if err := s.push(ctx, combined); err != nil {
		s.setState(SyncStateOfflineQueued, err)
		s.logger.ErrorContext(ctx, "Pending sync failed to push", logger.ErrorField(err), logger.IntField("pending_count", len(queued)))
		s.notifier.Notify(ctx, Notification{
			Level:   NotificationError,
			Title:   "Sinkronisasi gagal",
			Message: fmt.Sprintf("%d transaksi tetap di antrean: %v", len(queued), err),
		})
		return 0, err
	}

	if err := s.pending.Clear(ctx); err != nil {
		// The next drain skips records already present remotely.
		s.logger.ErrorContext(ctx, "Failed to clear pending queue after sync", logger.ErrorField(err))
	}
	s.log.Replace(combined)
	s.loaded = true
	s.setState(SyncStateIdle, nil)
	s.notifier.Notify(ctx, Notification{
		Level:   NotificationSuccess,
		Title:   "Sinkronisasi berhasil",
		Message: fmt.Sprintf("%d transaksi tertunda berhasil disinkronkan.", added),
	})
	s.logger.InfoContext(ctx, "Pending records synced", logger.IntField("synced", added))
	return added, nil
}

// ensureLoadedLocked replaces a log that never received the remote copy with
// the remote log plus the queued records. It reports whether the log changed.
func (s *syncService) ensureLoadedLocked(ctx context.Context) (bool, error) {
	if s.loaded {
		return false, nil
	}
	remote, err := s.loadRemote(ctx)
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to load remote log before overwrite", logger.ErrorField(err))
		return false, err
	}
	queued, err := s.pending.PeekAll(ctx)
	if err != nil {
		return false, err
	}
	merged, _ := mergePending(remote, queued, s.logger)
	s.log.Replace(merged)
	s.loaded = true
	if len(queued) == 0 {
		s.setState(SyncStateIdle, nil)
	}
	s.logger.InfoContext(ctx, "Transaction log loaded", logger.IntField("records", len(remote)), logger.IntField("pending_count", len(queued)))
	return true, nil
}

// mergePending appends queued payloads to base, skipping ids already present.
func mergePending(base []entity.TradeRecord, queued []entity.PendingRecord, log *logger.Logger) ([]entity.TradeRecord, int) {
	out := entity.CloneRecords(base)
	seen := make(map[string]struct{}, len(out))
	for _, r := range out {
		seen[r.ID] = struct{}{}
	}
	added := 0
	for _, p := range queued {
		var rec entity.TradeRecord
		if err := json.Unmarshal(p.Data, &rec); err != nil {
			log.Warn("Skipping undecodable pending record", logger.StringField("pending_id", p.ID), logger.ErrorField(err))
			continue
		}
		if _, dup := seen[rec.ID]; dup {
			continue
		}
		seen[rec.ID] = struct{}{}
		out = append(out, rec)
		added++
	}
	return out, added
}

func (s *syncService) loadRemote(ctx context.Context) ([]entity.TradeRecord, error) {
	ctx, cancel := context.WithTimeout(ctx, s.opts.Timeout)
	defer cancel()
	return s.store.LoadAll(ctx)
}

func (s *syncService) push(ctx context.Context, records []entity.TradeRecord) error {
	ctx, cancel := context.WithTimeout(ctx, s.opts.Timeout)
	defer cancel()
	return s.store.SaveAll(ctx, records)
}

// HandleConnectivityRestored drains the queue after the reconnect delay.
func (s *syncService) HandleConnectivityRestored(ctx context.Context) {
	count, err := s.pending.Count(ctx)
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to read pending queue", logger.ErrorField(err))
		return
	}
	if count == 0 {
		s.notifier.Notify(ctx, Notification{Level: NotificationSuccess, Title: "Kembali online"})
		s.mu.Lock()
		reloaded, err := s.ensureLoadedLocked(ctx)
		s.mu.Unlock()
		if err != nil {
			s.logger.ErrorContext(ctx, "Failed to load transaction log after reconnect", logger.ErrorField(err))
		} else if reloaded {
			s.fireChanged(ctx)
		}
		return
	}

	s.notifier.Notify(ctx, Notification{
		Level:   NotificationInfo,
		Title:   "Kembali online",
		Message: fmt.Sprintf("Menyinkronkan %d transaksi tertunda...", count),
	})

	if s.opts.ReconnectDelay > 0 {
		select {
		case <-ctx.Done():
			return
		case <-time.After(s.opts.ReconnectDelay):
		}
	}

	if _, err := s.ProcessPendingSync(ctx); err != nil && !errors.Is(err, context.Canceled) {
		s.logger.ErrorContext(ctx, "Automatic sync after reconnect failed", logger.ErrorField(err))
	}
}

// HandleConnectivityLost only informs the user.
func (s *syncService) HandleConnectivityLost(ctx context.Context) {
	s.logger.WarnContext(ctx, "Remote store unreachable, switching to offline mode")
	s.notifier.Notify(ctx, Notification{
		Level:   NotificationWarning,
		Title:   "Offline",
		Message: "Transaksi baru akan disimpan lokal sampai koneksi kembali.",
	})
}
