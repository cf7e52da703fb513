package storage

import (
	"time"

	gocache "github.com/patrickmn/go-cache"
)

const memoryCleanupInterval = 10 * time.Minute

// Memory keeps values in process; nothing survives a restart
type Memory struct {
	cache *gocache.Cache
}

// NewMemory creates an empty in-memory store
func NewMemory() *Memory {
	return &Memory{cache: gocache.New(gocache.NoExpiration, memoryCleanupInterval)}
}

func (m *Memory) Get(key string) (string, bool, error) {
	v, ok := m.cache.Get(key)
	if !ok {
		return "", false, nil
	}
	s, ok := v.(string)
	return s, ok, nil
}

func (m *Memory) Set(key, value string) error {
	m.cache.Set(key, value, gocache.NoExpiration)
	return nil
}

func (m *Memory) Remove(key string) error {
	m.cache.Delete(key)
	return nil
}

func (m *Memory) Close() error {
	m.cache.Flush()
	return nil
}
