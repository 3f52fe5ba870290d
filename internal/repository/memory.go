package repository

import (
	"context"
	"sync"
	"time"

	"lapgate/internal/models"
)

type MemoryStateRepository struct {
	states     sync.Map
	rateLimits sync.Map
	ttl        time.Duration
}

func NewMemoryStateRepository(ttl time.Duration) *MemoryStateRepository {
	return &MemoryStateRepository{
		ttl: ttl,
	}
}

func (r *MemoryStateRepository) GetState(ctx context.Context, adminID int64) (*models.AdminState, error) {
	val, ok := r.states.Load(adminID)
	if !ok {
		return nil, nil
	}
	return val.(*models.AdminState), nil
}

func (r *MemoryStateRepository) SetState(ctx context.Context, state *models.AdminState) error {
	r.states.Store(state.AdminID, state)
	return nil
}

func (r *MemoryStateRepository) ClearState(ctx context.Context, adminID int64) error {
	r.states.Delete(adminID)
	return nil
}

type rateLimitEntry struct {
	count     int
	expiresAt time.Time
}

func (r *MemoryStateRepository) CheckRateLimit(ctx context.Context, userID int64, limit int, window time.Duration) (bool, error) {
	now := time.Now()
	val, ok := r.rateLimits.Load(userID)

	var entry *rateLimitEntry
	if !ok {
		entry = &rateLimitEntry{
			count:     1,
			expiresAt: now.Add(window),
		}
	} else {
		entry = val.(*rateLimitEntry)
		if now.After(entry.expiresAt) {
			entry.count = 1
			entry.expiresAt = now.Add(window)
		} else {
			entry.count++
		}
	}

	r.rateLimits.Store(userID, entry)
	return entry.count <= limit, nil
}
