// Package storage provides the string-keyed byte stores the board is persisted in.
//
// Every backend stores opaque values under string keys. Get returns ErrNotFound
// when a key has never been written.
package storage

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

var ErrNotFound = errors.New("storage: key not found")

// Store is a durable string-keyed byte store.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, value []byte) error
	Close() error
}

// Options selects and configures a backend for Open.
type Options struct {
	Driver     string // file, bolt, redis, sqlite, memory
	Dir        string // file
	BoltPath   string // bolt
	Bucket     string // bolt
	RedisURL   string // redis
	RedisKey   string // redis key prefix
	SQLitePath string // sqlite
}

// Open builds the backend named by opts.Driver.
func Open(ctx context.Context, opts Options) (Store, error) {
	switch opts.Driver {
	case "", "file":
		return NewFileStore(opts.Dir)
	case "bolt":
		return OpenBolt(opts.BoltPath, opts.Bucket)
	case "redis":
		return OpenRedis(ctx, opts.RedisURL, opts.RedisKey)
	case "sqlite":
		return OpenSQLite(ctx, opts.SQLitePath)
	case "memory":
		return NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("unknown storage driver %q", opts.Driver)
	}
}

// MemoryStore keeps values in process memory.
type MemoryStore struct {
	mu     sync.RWMutex
	values map[string][]byte
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{values: make(map[string][]byte)}
}

func (m *MemoryStore) Get(_ context.Context, key string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.values[key]
	if !ok {
		return nil, ErrNotFound
	}
	return append([]byte(nil), v...), nil
}

func (m *MemoryStore) Put(_ context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = append([]byte(nil), value...)
	return nil
}

func (m *MemoryStore) Close() error {
	return nil
}
