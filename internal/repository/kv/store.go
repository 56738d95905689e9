// Package kv provides the key-value media that calculation history is persisted in.
// Every backend stores whole values: a Put replaces the previous value in one step.
package kv

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/mamadbah2/onionprice/internal/config"
)

// ErrNotFound is returned by Get when the key holds no value.
var ErrNotFound = errors.New("kv: key not found")

// Store is a same-device key-value medium holding opaque blobs.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, value []byte) error
	Close(ctx context.Context) error
}

// Open builds the backend selected in the configuration.
func Open(ctx context.Context, cfg config.StoreConfig, logger *zap.Logger) (Store, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	switch cfg.Backend {
	case config.BackendFile:
		logger.Info("using file store", zap.String("dir", cfg.Dir))
		return NewFileStore(cfg.Dir), nil
	case config.BackendRedis:
		logger.Info("using redis store", zap.String("addr", cfg.Redis.Addr), zap.Int("db", cfg.Redis.DB))
		return NewRedisStore(ctx, cfg.Redis)
	case config.BackendMongoDB:
		logger.Info("using mongodb store", zap.String("db", cfg.MongoDB.DBName))
		return NewMongoStore(ctx, cfg.MongoDB.URI, cfg.MongoDB.DBName)
	case config.BackendMemory:
		logger.Warn("using in-memory store, history will not survive restarts")
		return NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("unsupported store backend %q", cfg.Backend)
	}
}
