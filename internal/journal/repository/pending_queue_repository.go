package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"trading-journal/internal/entity"
)

// PendingQueueRepository is a durable FIFO of payloads waiting for the remote store.
// The whole queue is one blob under a fixed key.
type PendingQueueRepository interface {
	Enqueue(ctx context.Context, payload interface{}) (string, error)
	PeekAll(ctx context.Context) ([]entity.PendingRecord, error)
	Count(ctx context.Context) (int, error)
	Snapshot(ctx context.Context) (entity.PendingQueue, error)
	MarkSyncAttempt(ctx context.Context) error
	Clear(ctx context.Context) error
}

type pendingQueueRepository struct {
	mu       sync.Mutex
	store    KeyValueStore
	key      string
	idPrefix string
	now      func() time.Time
}

// NewPendingQueueRepository creates a queue stored under key. Pending ids start with idPrefix.
func NewPendingQueueRepository(store KeyValueStore, key, idPrefix string, now func() time.Time) PendingQueueRepository {
	if now == nil {
		now = time.Now
	}
	return &pendingQueueRepository{store: store, key: key, idPrefix: idPrefix, now: now}
}

func (r *pendingQueueRepository) Enqueue(ctx context.Context, payload interface{}) (string, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("encode pending payload: %w", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	q, err := r.load(ctx)
	if err != nil {
		return "", err
	}
	now := r.now()
	rec := entity.PendingRecord{
		ID:        entity.NewPendingID(r.idPrefix, now),
		Timestamp: now,
		Data:      data,
		Status:    entity.PendingStatusPending,
	}
	q.Records = append(q.Records, rec)
	if err := r.save(ctx, q); err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (r *pendingQueueRepository) PeekAll(ctx context.Context) ([]entity.PendingRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	q, err := r.load(ctx)
	if err != nil {
		return nil, err
	}
	return q.Records, nil
}

func (r *pendingQueueRepository) Count(ctx context.Context) (int, error) {
	records, err := r.PeekAll(ctx)
	if err != nil {
		return 0, err
	}
	return len(records), nil
}

func (r *pendingQueueRepository) Snapshot(ctx context.Context) (entity.PendingQueue, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	q, err := r.load(ctx)
	if err != nil {
		return entity.PendingQueue{}, err
	}
	q.PendingCount = len(q.Records)
	return q, nil
}

// MarkSyncAttempt stamps the queue and bumps every record's retry count.
func (r *pendingQueueRepository) MarkSyncAttempt(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	q, err := r.load(ctx)
	if err != nil {
		return err
	}
	if len(q.Records) == 0 {
		return nil
	}
	now := r.now()
	q.LastSyncAttempt = &now
	for i := range q.Records {
		q.Records[i].RetryCount++
	}
	return r.save(ctx, q)
}

func (r *pendingQueueRepository) Clear(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.store.Delete(ctx, r.key)
}

func (r *pendingQueueRepository) load(ctx context.Context) (entity.PendingQueue, error) {
	var q entity.PendingQueue
	raw, ok, err := r.store.Get(ctx, r.key)
	if err != nil {
		return q, fmt.Errorf("read pending queue %s: %w", r.key, err)
	}
	if !ok || len(raw) == 0 {
		return q, nil
	}
	if err := json.Unmarshal(raw, &q); err != nil {
		return q, fmt.Errorf("decode pending queue %s: %w", r.key, err)
	}
	return q, nil
}

func (r *pendingQueueRepository) save(ctx context.Context, q entity.PendingQueue) error {
	q.PendingCount = len(q.Records)
	q.LastUpdate = r.now()
	raw, err := json.Marshal(q)
	if err != nil {
		return fmt.Errorf("encode pending queue %s: %w", r.key, err)
	}
	return r.store.Set(ctx, r.key, raw)
}
