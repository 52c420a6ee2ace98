package cache

import (
	"context"
	"sync"
	"time"

	"acnemap/internal/domain/entity"
	"acnemap/internal/domain/port"
)

// DefaultMaxEntries предел записей в MemoryCache
const DefaultMaxEntries = 512

type memoryEntry struct {
	result  *entity.ScanResult
	stored  time.Time
	expires time.Time
}

// MemoryCache in-memory кэш результатов сканирования с TTL и пределом размера.
// Устаревшие записи вычищаются в Set не чаще раза за ttl; при переполнении
// вытесняется самая старая запись.
type MemoryCache struct {
	mu         sync.RWMutex
	entries    map[string]memoryEntry
	ttl        time.Duration
	maxEntries int
	lastSweep  time.Time
	now        func() time.Time
}

// NewMemoryCache создаёт кэш. ttl <= 0: записи не устаревают, размер ограничен только пределом.
func NewMemoryCache(ttl time.Duration) *MemoryCache {
	return &MemoryCache{
		entries:    make(map[string]memoryEntry),
		ttl:        ttl,
		maxEntries: DefaultMaxEntries,
		now:        time.Now,
	}
}

// WithMaxEntries меняет предел числа записей
func (c *MemoryCache) WithMaxEntries(n int) *MemoryCache {
	c.maxEntries = n
	return c
}

// Get возвращает результат или nil, если записи нет или она устарела
func (c *MemoryCache) Get(ctx context.Context, key string) (*entity.ScanResult, error) {
	c.mu.RLock()
	e, ok := c.entries[key]
	c.mu.RUnlock()

	if !ok {
		return nil, nil
	}
	if c.expired(e, c.now()) {
		c.mu.Lock()
		delete(c.entries, key)
		c.mu.Unlock()
		return nil, nil
	}
	return e.result, nil
}

// Set сохраняет результат
func (c *MemoryCache) Set(ctx context.Context, key string, result *entity.ScanResult) error {
	now := c.now()
	e := memoryEntry{result: result, stored: now}
	if c.ttl > 0 {
		e.expires = now.Add(c.ttl)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.ttl > 0 && now.Sub(c.lastSweep) >= c.ttl {
		c.sweepLocked(now)
	}
	if _, exists := c.entries[key]; !exists && c.maxEntries > 0 {
		for len(c.entries) >= c.maxEntries {
			c.evictOldestLocked()
		}
	}
	c.entries[key] = e
	return nil
}

// Len число записей, включая ещё не вычищенные устаревшие
func (c *MemoryCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

func (c *MemoryCache) expired(e memoryEntry, now time.Time) bool {
	return !e.expires.IsZero() && now.After(e.expires)
}

func (c *MemoryCache) sweepLocked(now time.Time) {
	for key, e := range c.entries {
		if c.expired(e, now) {
			delete(c.entries, key)
		}
	}
	c.lastSweep = now
}

func (c *MemoryCache) evictOldestLocked() {
	var (
		oldestKey string
		oldest    time.Time
		found     bool
	)
	for key, e := range c.entries {
		if !found || e.stored.Before(oldest) {
			oldestKey, oldest, found = key, e.stored, true
		}
	}
	if found {
		delete(c.entries, oldestKey)
	}
}

// Проверка реализации интерфейса
var _ port.ScanCache = (*MemoryCache)(nil)
