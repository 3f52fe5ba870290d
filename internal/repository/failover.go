package repository

import (
	"context"
	"sync/atomic"
	"time"

	"lapgate/internal/domain"
	"lapgate/internal/models"

	"github.com/rs/zerolog"
)

// FailoverStateRepository пишет состояние в primary (Redis), а при
// его недоступности переключается на fallback в памяти. Раз в минуту
// пробует вернуться на primary.
type FailoverStateRepository struct {
	primary   domain.StateRepository
	fallback  domain.StateRepository
	logger    *zerolog.Logger
	isDown    atomic.Bool
	lastCheck time.Time
}

func NewFailoverStateRepository(primary, fallback domain.StateRepository, logger *zerolog.Logger) *FailoverStateRepository {
	return &FailoverStateRepository{
		primary:  primary,
		fallback: fallback,
		logger:   logger,
	}
}

func (r *FailoverStateRepository) GetState(ctx context.Context, adminID int64) (*models.AdminState, error) {
	if !r.isDown.Load() {
		state, err := r.primary.GetState(ctx, adminID)
		if err == nil {
			return state, nil
		}
		r.logger.Error().Err(err).Msg("Primary state repository failed, falling back to memory")
		r.isDown.Store(true)
		r.lastCheck = time.Now()
	}

	// Пробуем восстановиться через минуту
	if r.isDown.Load() && time.Since(r.lastCheck) > time.Minute {
		state, err := r.primary.GetState(ctx, adminID)
		if err == nil {
			r.isDown.Store(false)
			return state, nil
		}
		r.lastCheck = time.Now()
	}

	return r.fallback.GetState(ctx, adminID)
}

func (r *FailoverStateRepository) SetState(ctx context.Context, state *models.AdminState) error {
	if !r.isDown.Load() {
		err := r.primary.SetState(ctx, state)
		if err == nil {
			return nil
		}
		r.logger.Error().Err(err).Msg("Primary state repository failed, falling back to memory")
		r.isDown.Store(true)
		r.lastCheck = time.Now()
	}

	return r.fallback.SetState(ctx, state)
}

func (r *FailoverStateRepository) ClearState(ctx context.Context, adminID int64) error {
	if !r.isDown.Load() {
		err := r.primary.ClearState(ctx, adminID)
		if err == nil {
			return nil
		}
		r.logger.Error().Err(err).Msg("Primary state repository failed, falling back to memory")
		r.isDown.Store(true)
		r.lastCheck = time.Now()
	}

	return r.fallback.ClearState(ctx, adminID)
}

func (r *FailoverStateRepository) CheckRateLimit(ctx context.Context, userID int64, limit int, window time.Duration) (bool, error) {
	if !r.isDown.Load() {
		allowed, err := r.primary.CheckRateLimit(ctx, userID, limit, window)
		if err == nil {
			return allowed, nil
		}
		r.logger.Error().Err(err).Msg("Primary state repository failed, falling back to memory")
		r.isDown.Store(true)
		r.lastCheck = time.Now()
	}

	return r.fallback.CheckRateLimit(ctx, userID, limit, window)
}
