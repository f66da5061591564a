// Package storage holds the entry list adapters. Every adapter appends to
// and iterates a single ordered list addressed by a fixed key.
package storage

import (
	"context"
	"fmt"

	"flaskr/internal/config"
	"flaskr/internal/models"
)

type EntryList interface {
	// Append adds e after every entry already in the list.
	Append(ctx context.Context, e models.Entry) error
	// All returns the entries in append order.
	All(ctx context.Context) ([]models.Entry, error)
	Close() error
}

// Open builds the list adapter selected by cfg.StoreDriver.
func Open(ctx context.Context, cfg config.Config) (EntryList, error) {
	switch cfg.StoreDriver {
	case config.DriverRedis:
		return DialRedis(ctx, cfg.RedisURL, cfg.EntriesKey)
	case config.DriverSQLite, config.DriverPostgres:
		return OpenGorm(cfg.StoreDriver, cfg.DatabaseDSN, cfg.EntriesKey)
	case config.DriverMemory:
		return NewMemoryList(), nil
	}
	return nil, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
}
