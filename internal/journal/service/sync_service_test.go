package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"trading-journal/internal/entity"
	"trading-journal/internal/journal/repository"
	"trading-journal/pkg/apperror"
	"trading-journal/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type syncFixture struct {
	store    *fakeTradeStore
	queue    repository.PendingQueueRepository
	conn     *StaticConnectivity
	notifier *recordingNotifier
	svc      SyncService
}

func newSyncFixture(t *testing.T, online bool, remote ...entity.TradeRecord) *syncFixture {
	t.Helper()
	f := &syncFixture{
		store:    &fakeTradeStore{remote: remote},
		queue:    newTradeQueue(t),
		conn:     NewStaticConnectivity(online),
		notifier: &recordingNotifier{},
	}
	f.svc = NewSyncService(f.store, f.queue, f.conn, f.notifier, logger.NewNop(), SyncOptions{Timeout: time.Second})
	return f
}

func (f *syncFixture) pendingCount(t *testing.T) int {
	t.Helper()
	n, err := f.queue.Count(context.Background())
	require.NoError(t, err)
	return n
}

func TestSyncSaveOffline(t *testing.T) {
	ctx := context.Background()
	f := newSyncFixture(t, false)

	out, err := f.svc.Save(ctx, trade("TRX-1", "BBCA", 100))
	require.NoError(t, err)

	assert.True(t, out.Queued)
	assert.NotEmpty(t, out.PendingID)
	assert.Equal(t, SyncStateOfflineQueued, out.State)
	assert.Equal(t, []string{"TRX-1"}, ids(f.svc.Records()))
	assert.Equal(t, 1, f.pendingCount(t))
	assert.Zero(t, f.store.loads, "no network call while offline")
	assert.Empty(t, f.store.saves)
	assert.Equal(t, SyncStateOfflineQueued, f.svc.Status(ctx).State)
}

func TestSyncSaveOnline(t *testing.T) {
	ctx := context.Background()
	f := newSyncFixture(t, true, trade("TRX-0", "TLKM", 0))
	require.NoError(t, f.svc.Bootstrap(ctx))

	out, err := f.svc.Save(ctx, trade("TRX-1", "BBCA", 100))
	require.NoError(t, err)
	assert.False(t, out.Queued)
	assert.Equal(t, SyncStateIdle, out.State)
	assert.Equal(t, []string{"TRX-0", "TRX-1"}, f.store.remoteIDs())
	assert.Zero(t, f.pendingCount(t))
	assert.Contains(t, f.notifier.titles(), "Tersimpan")
}

func TestSyncSaveOnlineDrainsPendingFirst(t *testing.T) {
	ctx := context.Background()
	f := newSyncFixture(t, true, trade("TRX-0", "TLKM", 0))
	_, err := f.queue.Enqueue(ctx, trade("TRX-P1", "BBRI", 10))
	require.NoError(t, err)
	_, err = f.queue.Enqueue(ctx, trade("TRX-P2", "BMRI", 20))
	require.NoError(t, err)

	_, err = f.svc.Save(ctx, trade("TRX-NEW", "BBCA", 30))
	require.NoError(t, err)

	require.Len(t, f.store.saves, 2, "one combined drain push, then the save push")
	assert.Equal(t, []string{"TRX-0", "TRX-P1", "TRX-P2"}, ids(f.store.saves[0]))
	assert.Equal(t, []string{"TRX-0", "TRX-P1", "TRX-P2", "TRX-NEW"}, ids(f.store.saves[1]))
	assert.Zero(t, f.pendingCount(t))
	assert.Equal(t, []string{"TRX-0", "TRX-P1", "TRX-P2", "TRX-NEW"}, ids(f.svc.Records()))
}

func TestSyncSaveOnlineFailureRollsBackAndQueues(t *testing.T) {
	ctx := context.Background()
	f := newSyncFixture(t, true, trade("TRX-0", "TLKM", 0))
	require.NoError(t, f.svc.Bootstrap(ctx))
	f.store.saveErr = &apperror.NetworkError{Op: "saveAllData", StatusCode: 500}

	out, err := f.svc.Save(ctx, trade("TRX-1", "BBCA", 100))
	require.NoError(t, err, "network failures degrade to the pending queue")

	assert.True(t, out.Queued)
	assert.Equal(t, SyncStateOfflineQueued, out.State)
	assert.Equal(t, []string{"TRX-0"}, ids(f.svc.Records()), "optimistic append is rolled back")
	assert.Equal(t, 1, f.pendingCount(t))

	status := f.svc.Status(ctx)
	assert.Equal(t, SyncStateOfflineQueued, status.State)
	assert.Contains(t, status.LastError, "unexpected status 500")
}

func TestSyncSaveWhenDrainFailsQueuesBehindPending(t *testing.T) {
	ctx := context.Background()
	f := newSyncFixture(t, true)
	_, err := f.queue.Enqueue(ctx, trade("TRX-P1", "BBRI", 10))
	require.NoError(t, err)
	f.store.loadErr = &apperror.NetworkError{Op: "getData", Timeout: true}

	out, err := f.svc.Save(ctx, trade("TRX-NEW", "BBCA", 30))
	require.NoError(t, err)
	assert.True(t, out.Queued)

	records, err := f.queue.PeekAll(ctx)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Contains(t, string(records[1].Data), "TRX-NEW")
	assert.Empty(t, f.store.saves)
}

func TestSyncSaveKeepsRemoteLogNeverLoaded(t *testing.T) {
	ctx := context.Background()

	t.Run("after offline bootstrap and reconnect", func(t *testing.T) {
		f := newSyncFixture(t, false, trade("TRX-A", "TLKM", 0), trade("TRX-B", "TLKM", 0))
		require.NoError(t, f.svc.Bootstrap(ctx))
		assert.Empty(t, f.svc.Records())

		f.conn.SetOnline(true)
		f.svc.HandleConnectivityRestored(ctx)
		assert.Equal(t, []string{"TRX-A", "TRX-B"}, ids(f.svc.Records()), "reconnect loads the remote log")

		_, err := f.svc.Save(ctx, trade("TRX-NEW", "BBCA", 1))
		require.NoError(t, err)
		assert.Equal(t, []string{"TRX-A", "TRX-B", "TRX-NEW"}, f.store.remoteIDs())
	})

	t.Run("after offline bootstrap without reconnect callback", func(t *testing.T) {
		f := newSyncFixture(t, false, trade("TRX-A", "TLKM", 0))
		require.NoError(t, f.svc.Bootstrap(ctx))
		f.conn.SetOnline(true)

		_, err := f.svc.Save(ctx, trade("TRX-NEW", "BBCA", 1))
		require.NoError(t, err)
		assert.Equal(t, []string{"TRX-A", "TRX-NEW"}, f.store.remoteIDs())
		assert.Equal(t, []string{"TRX-A", "TRX-NEW"}, ids(f.svc.Records()))
	})

	t.Run("after failed online bootstrap", func(t *testing.T) {
		f := newSyncFixture(t, true, trade("TRX-A", "TLKM", 0), trade("TRX-B", "TLKM", 0))
		f.store.loadErr = &apperror.NetworkError{Op: "getData", StatusCode: 503}
		require.Error(t, f.svc.Bootstrap(ctx))
		f.store.loadErr = nil

		_, err := f.svc.Save(ctx, trade("TRX-NEW", "BBCA", 1))
		require.NoError(t, err)
		assert.Equal(t, []string{"TRX-A", "TRX-B", "TRX-NEW"}, f.store.remoteIDs())
		assert.Equal(t, SyncStateIdle, f.svc.Status(ctx).State)
	})

	t.Run("load still failing queues instead of overwriting", func(t *testing.T) {
		f := newSyncFixture(t, true, trade("TRX-A", "TLKM", 0))
		f.store.loadErr = &apperror.NetworkError{Op: "getData", Timeout: true}
		require.Error(t, f.svc.Bootstrap(ctx))

		out, err := f.svc.Save(ctx, trade("TRX-NEW", "BBCA", 1))
		require.NoError(t, err)
		assert.True(t, out.Queued)
		assert.Empty(t, f.store.saves)
		assert.Equal(t, []string{"TRX-A"}, f.store.remoteIDs())
		assert.Equal(t, 1, f.pendingCount(t))
	})

	t.Run("queued records survive the first load", func(t *testing.T) {
		f := newSyncFixture(t, false, trade("TRX-A", "TLKM", 0))
		require.NoError(t, f.svc.Bootstrap(ctx))
		_, err := f.svc.Save(ctx, trade("TRX-P", "BBRI", 1))
		require.NoError(t, err)
		f.conn.SetOnline(true)

		_, err = f.svc.Save(ctx, trade("TRX-NEW", "BBCA", 1))
		require.NoError(t, err)
		assert.Equal(t, []string{"TRX-A", "TRX-P", "TRX-NEW"}, f.store.remoteIDs())
		assert.Zero(t, f.pendingCount(t))
	})
}

func TestSyncMutateLoadsRemoteLogFirst(t *testing.T) {
	ctx := context.Background()
	f := newSyncFixture(t, true, trade("TRX-A", "TLKM", 0), trade("TRX-B", "TLKM", 0))
	f.store.loadErr = errors.New("timeout")
	require.Error(t, f.svc.Bootstrap(ctx))

	err := f.svc.Mutate(ctx, func(l *TradeLog) (func(), error) {
		rec, idx, err := l.Remove("TRX-A")
		if err != nil {
			return nil, err
		}
		return func() { l.Insert(idx, rec) }, nil
	})
	require.Error(t, err, "no overwrite while the remote log is unknown")
	assert.Empty(t, f.store.saves)
	require.Len(t, f.notifier.sticky(), 1)

	f.store.loadErr = nil
	err = f.svc.Mutate(ctx, func(l *TradeLog) (func(), error) {
		rec, idx, err := l.Remove("TRX-A")
		if err != nil {
			return nil, err
		}
		return func() { l.Insert(idx, rec) }, nil
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"TRX-B"}, f.store.remoteIDs())
}

func TestSyncProcessPendingIsIdempotent(t *testing.T) {
	ctx := context.Background()
	f := newSyncFixture(t, true, trade("TRX-A", "TLKM", 0), trade("TRX-B", "TLKM", 0))
	for _, id := range []string{"TRX-1", "TRX-2", "TRX-3"} {
		_, err := f.queue.Enqueue(ctx, trade(id, "BBCA", 1))
		require.NoError(t, err)
	}

	n, err := f.svc.ProcessPendingSync(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, n)
	assert.Equal(t, []string{"TRX-A", "TRX-B", "TRX-1", "TRX-2", "TRX-3"}, f.store.remoteIDs())
	assert.Zero(t, f.pendingCount(t))

	n, err = f.svc.ProcessPendingSync(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
	assert.Len(t, f.store.saves, 1, "empty queue does not push")
}

func TestSyncProcessPendingSkipsRecordsAlreadyRemote(t *testing.T) {
	ctx := context.Background()
	f := newSyncFixture(t, true, trade("TRX-1", "BBCA", 1))
	_, err := f.queue.Enqueue(ctx, trade("TRX-1", "BBCA", 1))
	require.NoError(t, err)
	_, err = f.queue.Enqueue(ctx, trade("TRX-2", "BBCA", 1))
	require.NoError(t, err)

	n, err := f.svc.ProcessPendingSync(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Equal(t, []string{"TRX-1", "TRX-2"}, f.store.remoteIDs())
}

func TestSyncProcessPendingFailureKeepsQueue(t *testing.T) {
	ctx := context.Background()
	f := newSyncFixture(t, true)
	_, err := f.queue.Enqueue(ctx, trade("TRX-1", "BBCA", 1))
	require.NoError(t, err)
	f.store.saveErr = &apperror.RemoteError{Op: "saveAllData", Message: "locked"}

	_, err = f.svc.ProcessPendingSync(ctx)
	require.Error(t, err)
	assert.Equal(t, 1, f.pendingCount(t))

	snap, err := f.queue.Snapshot(ctx)
	require.NoError(t, err)
	assert.NotNil(t, snap.LastSyncAttempt)
	assert.Equal(t, 1, snap.Records[0].RetryCount)
	assert.Contains(t, f.notifier.titles(), "Sinkronisasi gagal")
}

func TestSyncMutate(t *testing.T) {
	ctx := context.Background()
	remove := func(id string) LogMutation {
		return func(l *TradeLog) (func(), error) {
			rec, idx, err := l.Remove(id)
			if err != nil {
				return nil, err
			}
			return func() { l.Insert(idx, rec) }, nil
		}
	}

	t.Run("online", func(t *testing.T) {
		f := newSyncFixture(t, true, trade("TRX-1", "BBCA", 1), trade("TRX-2", "BBCA", 1))
		require.NoError(t, f.svc.Bootstrap(ctx))
		require.NoError(t, f.svc.Mutate(ctx, remove("TRX-1")))
		assert.Equal(t, []string{"TRX-2"}, f.store.remoteIDs())
	})

	t.Run("offline is refused without mutating", func(t *testing.T) {
		f := newSyncFixture(t, true, trade("TRX-1", "BBCA", 1))
		require.NoError(t, f.svc.Bootstrap(ctx))
		f.conn.SetOnline(false)

		err := f.svc.Mutate(ctx, remove("TRX-1"))
		assert.ErrorIs(t, err, apperror.ErrOffline)
		assert.Equal(t, []string{"TRX-1"}, ids(f.svc.Records()))
		require.Len(t, f.notifier.sticky(), 1)
	})

	t.Run("push failure is undone", func(t *testing.T) {
		f := newSyncFixture(t, true, trade("TRX-1", "BBCA", 1), trade("TRX-2", "BBCA", 1))
		require.NoError(t, f.svc.Bootstrap(ctx))
		f.store.saveErr = errors.New("boom")

		err := f.svc.Mutate(ctx, remove("TRX-1"))
		require.Error(t, err)
		assert.Equal(t, []string{"TRX-1", "TRX-2"}, ids(f.svc.Records()))
		sticky := f.notifier.sticky()
		require.Len(t, sticky, 1)
		assert.Contains(t, sticky[0].Message, "boom")
	})

	t.Run("mutation error is returned as is", func(t *testing.T) {
		f := newSyncFixture(t, true)
		require.NoError(t, f.svc.Bootstrap(ctx))
		err := f.svc.Mutate(ctx, remove("TRX-404"))
		assert.True(t, apperror.IsNotFound(err))
		assert.Empty(t, f.store.saves)
	})

	t.Run("pending records are drained first", func(t *testing.T) {
		f := newSyncFixture(t, true, trade("TRX-1", "BBCA", 1))
		require.NoError(t, f.svc.Bootstrap(ctx))
		_, err := f.queue.Enqueue(ctx, trade("TRX-P", "BBCA", 1))
		require.NoError(t, err)

		require.NoError(t, f.svc.Mutate(ctx, remove("TRX-1")))
		assert.Equal(t, []string{"TRX-P"}, f.store.remoteIDs())
		assert.Zero(t, f.pendingCount(t))
	})
}

func TestSyncBootstrap(t *testing.T) {
	ctx := context.Background()

	t.Run("offline merges pending records", func(t *testing.T) {
		f := newSyncFixture(t, false, trade("TRX-1", "BBCA", 1))
		_, err := f.queue.Enqueue(ctx, trade("TRX-P", "BBCA", 1))
		require.NoError(t, err)

		require.NoError(t, f.svc.Bootstrap(ctx))
		assert.Equal(t, []string{"TRX-P"}, ids(f.svc.Records()))
		assert.Equal(t, 1, f.pendingCount(t))
		assert.Zero(t, f.store.loads)
	})

	t.Run("online drains pending records", func(t *testing.T) {
		f := newSyncFixture(t, true, trade("TRX-1", "BBCA", 1))
		_, err := f.queue.Enqueue(ctx, trade("TRX-P", "BBCA", 1))
		require.NoError(t, err)

		require.NoError(t, f.svc.Bootstrap(ctx))
		assert.Equal(t, []string{"TRX-1", "TRX-P"}, f.store.remoteIDs())
		assert.Zero(t, f.pendingCount(t))
	})

	t.Run("online load failure", func(t *testing.T) {
		f := newSyncFixture(t, true)
		f.store.loadErr = &apperror.NetworkError{Op: "getData", StatusCode: 503}
		assert.Error(t, f.svc.Bootstrap(ctx))
		assert.Equal(t, SyncStateFailed, f.svc.Status(ctx).State)
	})
}

func TestSyncConnectivityRestored(t *testing.T) {
	ctx := context.Background()
	f := newSyncFixture(t, false)
	_, err := f.svc.Save(ctx, trade("TRX-1", "BBCA", 1))
	require.NoError(t, err)

	f.conn.SetOnline(true)
	f.svc.HandleConnectivityRestored(ctx)

	assert.Equal(t, []string{"TRX-1"}, f.store.remoteIDs())
	assert.Zero(t, f.pendingCount(t))
	titles := f.notifier.titles()
	assert.Equal(t, []string{"Mode offline", "Kembali online", "Sinkronisasi berhasil"}, titles)
}

func TestSyncConnectivityLostIsInformational(t *testing.T) {
	ctx := context.Background()
	f := newSyncFixture(t, true)
	f.svc.HandleConnectivityLost(ctx)
	assert.Equal(t, []string{"Offline"}, f.notifier.titles())
	assert.Equal(t, SyncStateIdle, f.svc.Status(ctx).State)
}

func TestSyncListenersSeeChanges(t *testing.T) {
	ctx := context.Background()
	f := newSyncFixture(t, false)
	var seen [][]string
	f.svc.OnLogChanged(func(_ context.Context, records []entity.TradeRecord) {
		seen = append(seen, ids(records))
	})

	_, err := f.svc.Save(ctx, trade("TRX-1", "BBCA", 1))
	require.NoError(t, err)
	require.Len(t, seen, 1)
	assert.Equal(t, []string{"TRX-1"}, seen[0])
}

func TestSyncListenersSeeLogInOrder(t *testing.T) {
	ctx := context.Background()
	f := newSyncFixture(t, false)
	var sizes []int
	f.svc.OnLogChanged(func(_ context.Context, records []entity.TradeRecord) {
		sizes = append(sizes, len(records))
	})

	const saves = 20
	var wg sync.WaitGroup
	for i := 0; i < saves; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := f.svc.Save(ctx, trade(fmt.Sprintf("TRX-%d", i), "BBCA", 1))
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	require.Len(t, sizes, saves)
	assert.IsNonDecreasing(t, sizes)
	assert.Equal(t, saves, sizes[len(sizes)-1])
}
