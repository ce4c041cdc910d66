package repository

import (
	"context"
	"sync"
	"time"
)

// MemoryRateLimiter — локальный счетчик запросов, используется как
// резерв при недоступном Redis.
type MemoryRateLimiter struct {
	mu         sync.Mutex
	rateLimits map[int64]*rateLimitEntry
}

func NewMemoryRateLimiter() *MemoryRateLimiter {
	return &MemoryRateLimiter{rateLimits: make(map[int64]*rateLimitEntry)}
}

type rateLimitEntry struct {
	count     int
	expiresAt time.Time
}

func (r *MemoryRateLimiter) CheckRateLimit(ctx context.Context, userID int64, limit int, window time.Duration) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now()
	entry, ok := r.rateLimits[userID]
	if !ok || now.After(entry.expiresAt) {
		entry = &rateLimitEntry{count: 1, expiresAt: now.Add(window)}
	} else {
		entry.count++
	}

	r.rateLimits[userID] = entry
	return entry.count <= limit, nil
}
