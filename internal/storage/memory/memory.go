package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"lapgate/internal/models"
	"lapgate/internal/storage"
)

// Store — резервный справочник в памяти. Используется когда
// Postgres недоступен на старте. Данные живут до перезапуска.
type Store struct {
	mu    sync.RWMutex
	users map[int64]*models.User
}

func New() *Store {
	return &Store{users: make(map[int64]*models.User)}
}

func (s *Store) Name() string { return "memory" }

func (s *Store) Ping(_ context.Context) error { return nil }

func (s *Store) Close() {}

func (s *Store) CreateUser(_ context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[user.TelegramID]; ok {
		return storage.ErrAlreadyExists
	}
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now()
	}
	clone := *user
	s.users[user.TelegramID] = &clone
	return nil
}

func (s *Store) GetUser(_ context.Context, telegramID int64) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, ok := s.users[telegramID]
	if !ok {
		return nil, nil
	}
	clone := *user
	return &clone, nil
}

func (s *Store) SetStatus(_ context.Context, telegramID int64, status string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.users[telegramID]
	if !ok {
		return false, nil
	}
	user.Status = status
	return true, nil
}

func (s *Store) ListByStatus(_ context.Context, status string) ([]*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var users []*models.User
	for _, u := range s.users {
		if u.Status == status {
			clone := *u
			users = append(users, &clone)
		}
	}
	sortNewestFirst(users)
	return users, nil
}

func (s *Store) ListAll(_ context.Context) ([]*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	users := make([]*models.User, 0, len(s.users))
	for _, u := range s.users {
		clone := *u
		users = append(users, &clone)
	}
	sortNewestFirst(users)
	return users, nil
}

func sortNewestFirst(users []*models.User) {
	sort.Slice(users, func(i, j int) bool {
		if users[i].CreatedAt.Equal(users[j].CreatedAt) {
			return users[i].TelegramID > users[j].TelegramID
		}
		return users[i].CreatedAt.After(users[j].CreatedAt)
	})
}
