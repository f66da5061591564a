package storage

import (
	"context"
	"sync"

	"flaskr/internal/models"
)

// MemoryList keeps entries in process memory. Nothing survives a restart.
type MemoryList struct {
	mu      sync.RWMutex
	entries []models.Entry
}

func NewMemoryList() *MemoryList {
	return &MemoryList{}
}

func (l *MemoryList) Append(_ context.Context, e models.Entry) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = append(l.entries, models.Entry{Title: e.Title, Text: e.Text})
	return nil
}

func (l *MemoryList) All(_ context.Context) ([]models.Entry, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]models.Entry, len(l.entries))
	copy(out, l.entries)
	return out, nil
}

func (l *MemoryList) Close() error { return nil }
