package memory

import (
	"context"
	"testing"
	"time"

	"lapgate/internal/models"
	"lapgate/internal/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()

	t.Run("CreateAndGet", func(t *testing.T) {
		store := New()
		user := &models.User{
			TelegramID:  123,
			PhoneNumber: "79991234567",
			FullName:    "Иван Иванов",
			Username:    "ivan",
			Status:      models.StatusPending,
		}

		err := store.CreateUser(ctx, user)
		require.NoError(t, err)
		assert.False(t, user.CreatedAt.IsZero())

		got, err := store.GetUser(ctx, 123)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, user.FullName, got.FullName)
		assert.Equal(t, models.StatusPending, got.Status)
	})

	t.Run("CreateDuplicate", func(t *testing.T) {
		store := New()
		user := &models.User{TelegramID: 123, Status: models.StatusPending}
		require.NoError(t, store.CreateUser(ctx, user))

		err := store.CreateUser(ctx, &models.User{TelegramID: 123, Status: models.StatusPending})
		assert.ErrorIs(t, err, storage.ErrAlreadyExists)

		// Первоначальная запись не изменилась
		got, err := store.GetUser(ctx, 123)
		require.NoError(t, err)
		assert.Equal(t, models.StatusPending, got.Status)
	})

	t.Run("GetAbsent", func(t *testing.T) {
		store := New()
		got, err := store.GetUser(ctx, 999)
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("SetStatus", func(t *testing.T) {
		store := New()
		require.NoError(t, store.CreateUser(ctx, &models.User{TelegramID: 1, Status: models.StatusPending}))

		updated, err := store.SetStatus(ctx, 1, models.StatusApproved)
		require.NoError(t, err)
		assert.True(t, updated)

		got, _ := store.GetUser(ctx, 1)
		assert.Equal(t, models.StatusApproved, got.Status)
	})

	t.Run("SetStatusAbsent", func(t *testing.T) {
		store := New()
		updated, err := store.SetStatus(ctx, 404, models.StatusBanned)
		require.NoError(t, err)
		assert.False(t, updated)
	})

	t.Run("ListByStatus", func(t *testing.T) {
		store := New()
		now := time.Now()
		require.NoError(t, store.CreateUser(ctx, &models.User{TelegramID: 1, Status: models.StatusPending, CreatedAt: now.Add(-2 * time.Hour)}))
		require.NoError(t, store.CreateUser(ctx, &models.User{TelegramID: 2, Status: models.StatusApproved, CreatedAt: now.Add(-time.Hour)}))
		require.NoError(t, store.CreateUser(ctx, &models.User{TelegramID: 3, Status: models.StatusPending, CreatedAt: now}))

		pending, err := store.ListByStatus(ctx, models.StatusPending)
		require.NoError(t, err)
		require.Len(t, pending, 2)
		// Новые записи первыми
		assert.Equal(t, int64(3), pending[0].TelegramID)
		assert.Equal(t, int64(1), pending[1].TelegramID)
	})

	t.Run("ListAllOrdering", func(t *testing.T) {
		store := New()
		now := time.Now()
		require.NoError(t, store.CreateUser(ctx, &models.User{TelegramID: 10, Status: models.StatusPending, CreatedAt: now.Add(-time.Minute)}))
		require.NoError(t, store.CreateUser(ctx, &models.User{TelegramID: 20, Status: models.StatusBanned, CreatedAt: now}))

		all, err := store.ListAll(ctx)
		require.NoError(t, err)
		require.Len(t, all, 2)
		assert.Equal(t, int64(20), all[0].TelegramID)
	})

	t.Run("ReturnsCopies", func(t *testing.T) {
		store := New()
		require.NoError(t, store.CreateUser(ctx, &models.User{TelegramID: 5, Status: models.StatusPending}))

		got, _ := store.GetUser(ctx, 5)
		got.Status = models.StatusBanned

		again, _ := store.GetUser(ctx, 5)
		assert.Equal(t, models.StatusPending, again.Status)
	})

	t.Run("Ping", func(t *testing.T) {
		store := New()
		assert.NoError(t, store.Ping(ctx))
		assert.Equal(t, "memory", store.Name())
	})
}
