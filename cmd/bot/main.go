package main

import (
	"context"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"lapgate/internal/api"
	"lapgate/internal/bot"
	"lapgate/internal/config"
	"lapgate/internal/domain"
	"lapgate/internal/events"
	"lapgate/internal/logging"
	"lapgate/internal/models"
	"lapgate/internal/repository"
	"lapgate/internal/service"
	"lapgate/internal/storage/memory"
	"lapgate/internal/storage/postgres"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	cfg, logger, closer, err := loadConfigAndLogger()
	if err != nil {
		return err
	}
	if closer != nil {
		defer (func(c io.Closer) { _ = c.Close() })(closer)
	}

	if err := os.MkdirAll(cfg.Exports.Path, 0o755); err != nil {
		logger.Error().Err(err).Msg("Ошибка создания директории для экспорта")
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store := initStorage(ctx, cfg, &logger)
	defer store.Close()

	redisClient, stateService := initStateService(ctx, cfg, &logger)
	defer func() { _ = repository.Close(redisClient) }()

	eventBus := events.NewBus(&logger)
	defer eventBus.Wait()

	directory := service.NewDirectoryService(store, eventBus, cfg.Admins, &logger)
	metrics := bot.NewMetrics()

	if cfg.Monitoring.Enabled {
		opsServer := api.NewHTTPServer(cfg.Monitoring, directory, &logger)
		go func() {
			if err := opsServer.Start(); err != nil {
				logger.Error().Err(err).Msg("HTTP server error")
			}
		}()
		defer func() {
			_ = opsServer.Shutdown(context.Background())
		}()
	}

	return startBot(ctx, cfg, stateService, directory, eventBus, metrics, &logger)
}

func loadConfigAndLogger() (*config.Config, zerolog.Logger, io.Closer, error) {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "configs/config.yaml"
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, zerolog.Logger{}, nil, err
	}

	baseLogger, closer, err := logging.New(cfg.Logging, cfg.App)
	if err != nil {
		return nil, zerolog.Logger{}, nil, err
	}
	logger := baseLogger.With().Str("component", "bot-main").Logger()

	return cfg, logger, closer, nil
}

// initStorage выбирает хранилище на старте: Postgres, а при его
// недоступности справочник в памяти. Выбор логируется и виден в /healthz.
func initStorage(ctx context.Context, cfg *config.Config, logger *zerolog.Logger) domain.Directory {
	if cfg.Database.Postgres.Host != "" {
		connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
		defer cancel()

		store, err := postgres.New(connectCtx, cfg.Database.Postgres, logger)
		if err == nil {
			logger.Info().Str("backend", store.Name()).Msg("Хранилище подключено")
			return store
		}
		logger.Warn().Err(err).Msg("Postgres недоступен, переходим на хранилище в памяти")
	} else {
		logger.Warn().Msg("Postgres не сконфигурирован, используется хранилище в памяти")
	}

	return memory.New()
}

func initStateService(ctx context.Context, cfg *config.Config, logger *zerolog.Logger) (*redis.Client, *service.StateService) {
	var redisClient *redis.Client
	if cfg.Redis.Address != "" {
		redisClient = repository.NewRedisClient(cfg.Redis)
		if errPing := repository.Ping(ctx, redisClient); errPing != nil {
			logger.Warn().Err(errPing).Msg("Redis unavailable")
		}
	}

	ttl := time.Duration(cfg.Bot.StateTTL) * time.Second
	if ttl <= 0 {
		ttl = time.Duration(models.DefaultStateTTL) * time.Second
	}

	primaryRepo := repository.NewRedisStateRepository(redisClient, ttl)
	fallbackRepo := repository.NewMemoryStateRepository(ttl)
	stateRepo := repository.NewFailoverStateRepository(primaryRepo, fallbackRepo, logger)
	return redisClient, service.NewStateService(stateRepo, logger)
}

func startBot(
	ctx context.Context,
	cfg *config.Config,
	stateService *service.StateService,
	directory domain.DirectoryService,
	eventBus *events.Bus,
	metrics *bot.Metrics,
	logger *zerolog.Logger,
) error {
	botAPI, err := tgbotapi.NewBotAPI(cfg.Telegram.BotToken)
	if err != nil {
		logger.Error().Err(err).Msg("Ошибка создания BotAPI")
		return err
	}
	botAPI.Debug = cfg.Telegram.Debug

	botWrapper := bot.NewBotWrapper(botAPI)
	tgService := service.NewTelegramService(botWrapper)

	notifier := bot.NewNotifier(tgService, directory, logger)
	notifier.Register(eventBus)

	telegramBot, err := bot.NewBot(tgService, cfg, stateService, directory, metrics, logger)
	if err != nil {
		logger.Error().Err(err).Msg("Ошибка создания бота")
		return err
	}

	logger.Info().Msg("Бот запущен...")
	telegramBot.Start(ctx)

	logger.Info().Msg("Shutdown complete.")
	return nil
}
