package service

import (
	"context"
	"time"

	"lapgate/internal/domain"
	"lapgate/internal/models"

	"github.com/rs/zerolog"
)

// StateService управляет многошаговыми сценариями администраторов
// (ожидание id для бана/разбана).
type StateService struct {
	stateRepo domain.StateRepository
	logger    *zerolog.Logger
}

func NewStateService(stateRepo domain.StateRepository, logger *zerolog.Logger) *StateService {
	return &StateService{
		stateRepo: stateRepo,
		logger:    logger,
	}
}

func (s *StateService) GetAdminState(ctx context.Context, adminID int64) (*models.AdminState, error) {
	state, err := s.stateRepo.GetState(ctx, adminID)
	if err != nil {
		s.logger.Error().Err(err).Int64("admin_id", adminID).Msg("failed to get admin state")
		return nil, err
	}

	return state, nil
}

func (s *StateService) SetAdminState(ctx context.Context, adminID int64, step string) error {
	state := &models.AdminState{
		AdminID: adminID,
		Step:    step,
	}
	return s.stateRepo.SetState(ctx, state)
}

func (s *StateService) ClearAdminState(ctx context.Context, adminID int64) error {
	return s.stateRepo.ClearState(ctx, adminID)
}

func (s *StateService) CheckRateLimit(ctx context.Context, userID int64, limit int, window time.Duration) (bool, error) {
	return s.stateRepo.CheckRateLimit(ctx, userID, limit, window)
}
