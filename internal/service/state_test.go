package service

import (
	"context"
	"io"
	"testing"
	"time"

	"lapgate/internal/models"
	"lapgate/internal/repository"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStateService(t *testing.T) {
	logger := zerolog.New(io.Discard)
	repo := repository.NewMemoryStateRepository(time.Hour)
	svc := NewStateService(repo, &logger)
	ctx := context.Background()

	t.Run("SetGetClear", func(t *testing.T) {
		require.NoError(t, svc.SetAdminState(ctx, 1, models.StateAwaitingBanID))

		state, err := svc.GetAdminState(ctx, 1)
		require.NoError(t, err)
		require.NotNil(t, state)
		assert.Equal(t, models.StateAwaitingBanID, state.Step)

		require.NoError(t, svc.ClearAdminState(ctx, 1))

		state, err = svc.GetAdminState(ctx, 1)
		require.NoError(t, err)
		assert.Nil(t, state)
	})

	t.Run("RateLimit", func(t *testing.T) {
		allowed, err := svc.CheckRateLimit(ctx, 2, 1, time.Minute)
		require.NoError(t, err)
		assert.True(t, allowed)

		allowed, err = svc.CheckRateLimit(ctx, 2, 1, time.Minute)
		require.NoError(t, err)
		assert.False(t, allowed)
	})
}
