package entity

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

const PendingStatusPending = "pending"

// PendingRecord wraps a payload that the remote store has not confirmed yet.
type PendingRecord struct {
	ID         string          `json:"id"`
	Timestamp  time.Time       `json:"timestamp"`
	Data       json.RawMessage `json:"data"`
	Status     string          `json:"status"`
	RetryCount int             `json:"retryCount"`
}

// PendingQueue is the blob persisted under one storage key.
type PendingQueue struct {
	Records         []PendingRecord `json:"pending_records"`
	LastSyncAttempt *time.Time      `json:"last_sync_attempt"`
	PendingCount    int             `json:"pending_count"`
	LastUpdate      time.Time       `json:"last_update"`
}

// NewPendingID returns "<prefix>-<unix ms>-<random>".
func NewPendingID(prefix string, now time.Time) string {
	return fmt.Sprintf("%s-%d-%s", prefix, now.UnixMilli(), strings.ReplaceAll(uuid.NewString(), "-", "")[:9])
}
