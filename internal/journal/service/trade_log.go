package service

import (
	"sync"

	"trading-journal/internal/entity"
	"trading-journal/pkg/apperror"
)

// TradeLog is the in-memory, ordered transaction log. All reads return copies.
type TradeLog struct {
	mu      sync.RWMutex
	records []entity.TradeRecord
}

// NewTradeLog creates a TradeLog seeded with records.
func NewTradeLog(records []entity.TradeRecord) *TradeLog {
	return &TradeLog{records: entity.CloneRecords(records)}
}

// All returns a copy of every record in log order.
func (l *TradeLog) All() []entity.TradeRecord {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return entity.CloneRecords(l.records)
}

// Len returns the number of records.
func (l *TradeLog) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.records)
}

// Find returns the record with the given id.
func (l *TradeLog) Find(id string) (entity.TradeRecord, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	for _, r := range l.records {
		if r.ID == id {
			return r.Clone(), nil
		}
	}
	return entity.TradeRecord{}, apperror.NewNotFoundError("trade", id)
}

// Append adds records to the end of the log.
func (l *TradeLog) Append(records ...entity.TradeRecord) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, r := range records {
		l.records = append(l.records, r.Clone())
	}
}

// Replace swaps the whole log.
func (l *TradeLog) Replace(records []entity.TradeRecord) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.records = entity.CloneRecords(records)
}

// Update overwrites the record with the same id and returns the previous value.
func (l *TradeLog) Update(record entity.TradeRecord) (entity.TradeRecord, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for i, r := range l.records {
		if r.ID == record.ID {
			l.records[i] = record.Clone()
			return r, nil
		}
	}
	return entity.TradeRecord{}, apperror.NewNotFoundError("trade", record.ID)
}

// Remove deletes the record with the given id and returns it with its former index.
func (l *TradeLog) Remove(id string) (entity.TradeRecord, int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for i, r := range l.records {
		if r.ID == id {
			l.records = append(l.records[:i:i], l.records[i+1:]...)
			return r, i, nil
		}
	}
	return entity.TradeRecord{}, -1, apperror.NewNotFoundError("trade", id)
}

// Insert puts record at index, clamped to the log bounds.
func (l *TradeLog) Insert(index int, record entity.TradeRecord) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if index < 0 {
		index = 0
	}
	if index > len(l.records) {
		index = len(l.records)
	}
	l.records = append(l.records[:index:index], append([]entity.TradeRecord{record.Clone()}, l.records[index:]...)...)
}

// RemoveLast drops the last record if it has the given id. It undoes an optimistic Append.
func (l *TradeLog) RemoveLast(id string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	n := len(l.records)
	if n == 0 || l.records[n-1].ID != id {
		for i := n - 1; i >= 0; i-- {
			if l.records[i].ID == id {
				l.records = append(l.records[:i:i], l.records[i+1:]...)
				return true
			}
		}
		return false
	}
	l.records = l.records[:n-1]
	return true
}
