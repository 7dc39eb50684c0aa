// Package memory is a map-backed key/value store. Nothing survives the
// process; it backs the ephemeral storage mode and tests.
package memory

import (
	"context"
	"sync"
)

type KV struct {
	mu   sync.RWMutex
	data map[string][]byte
}

func NewKV() *KV {
	return &KV{data: make(map[string][]byte)}
}

func (k *KV) Get(_ context.Context, key string) ([]byte, bool, error) {
	k.mu.RLock()
	defer k.mu.RUnlock()

	v, ok := k.data[key]
	if !ok {
		return nil, false, nil
	}
	out := make([]byte, len(v))
	copy(out, v)
	return out, true, nil
}

func (k *KV) Set(_ context.Context, key string, value []byte) error {
	k.mu.Lock()
	defer k.mu.Unlock()

	v := make([]byte, len(value))
	copy(v, value)
	k.data[key] = v
	return nil
}

func (k *KV) Ping(context.Context) error { return nil }

func (k *KV) Close() error { return nil }
