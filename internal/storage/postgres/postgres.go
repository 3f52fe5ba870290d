package postgres

import (
	"context"
	"errors"

	"lapgate/internal/config"
	"lapgate/internal/models"
	"lapgate/internal/storage"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

const schema = `
CREATE TABLE IF NOT EXISTS users (
    telegram_id  BIGINT PRIMARY KEY,
    phone_number TEXT NOT NULL,
    full_name    TEXT NOT NULL,
    username     TEXT NOT NULL DEFAULT '',
    status       TEXT NOT NULL DEFAULT 'pending',
    created_at   TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS idx_users_status ON users (status);
`

const userColumns = "telegram_id, phone_number, full_name, username, status, created_at"

// Store хранит справочник пользователей в Postgres.
type Store struct {
	pool   *pgxpool.Pool
	logger *zerolog.Logger
}

func New(ctx context.Context, cfg config.PostgresConfig, logger *zerolog.Logger) (*Store, error) {
	poolConfig, err := pgxpool.ParseConfig(cfg.DSN())
	if err != nil {
		return nil, err
	}
	if cfg.MaxConnections > 0 {
		poolConfig.MaxConns = int32(cfg.MaxConnections)
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, err
	}

	store := &Store{pool: pool, logger: logger}
	if err := store.createTables(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	return store, nil
}

func (s *Store) createTables(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, schema)
	return err
}

func (s *Store) Name() string { return "postgres" }

func (s *Store) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

func (s *Store) Close() {
	s.pool.Close()
}

func (s *Store) CreateUser(ctx context.Context, user *models.User) error {
	query := `
		INSERT INTO users (telegram_id, phone_number, full_name, username, status, created_at)
		VALUES ($1, $2, $3, $4, $5, NOW())
		ON CONFLICT (telegram_id) DO NOTHING
		RETURNING created_at
	`
	err := s.pool.QueryRow(ctx, query,
		user.TelegramID, user.PhoneNumber, user.FullName, user.Username, user.Status,
	).Scan(&user.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// Конфликт по первичному ключу: запись уже есть
			return storage.ErrAlreadyExists
		}
		s.logger.Error().Err(err).Int64("telegram_id", user.TelegramID).Msg("Ошибка создания пользователя")
		return err
	}
	return nil
}

func (s *Store) GetUser(ctx context.Context, telegramID int64) (*models.User, error) {
	var user models.User
	query := `SELECT ` + userColumns + ` FROM users WHERE telegram_id = $1`
	err := s.pool.QueryRow(ctx, query, telegramID).Scan(
		&user.TelegramID, &user.PhoneNumber, &user.FullName, &user.Username, &user.Status, &user.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		s.logger.Error().Err(err).Int64("telegram_id", telegramID).Msg("Ошибка чтения пользователя")
		return nil, err
	}
	return &user, nil
}

func (s *Store) SetStatus(ctx context.Context, telegramID int64, status string) (bool, error) {
	tag, err := s.pool.Exec(ctx,
		`UPDATE users SET status = $1 WHERE telegram_id = $2`, status, telegramID)
	if err != nil {
		s.logger.Error().Err(err).Int64("telegram_id", telegramID).Str("status", status).Msg("Ошибка смены статуса")
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (s *Store) ListByStatus(ctx context.Context, status string) ([]*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE status = $1 ORDER BY created_at DESC`
	return s.list(ctx, query, status)
}

func (s *Store) ListAll(ctx context.Context) ([]*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users ORDER BY created_at DESC`
	return s.list(ctx, query)
}

func (s *Store) list(ctx context.Context, query string, args ...interface{}) ([]*models.User, error) {
	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []*models.User
	for rows.Next() {
		var u models.User
		if err := rows.Scan(&u.TelegramID, &u.PhoneNumber, &u.FullName, &u.Username, &u.Status, &u.CreatedAt); err != nil {
			return nil, err
		}
		users = append(users, &u)
	}
	return users, rows.Err()
}
