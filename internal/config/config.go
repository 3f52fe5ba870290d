package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	App        AppConfig        `yaml:"app"`
	Telegram   TelegramConfig   `yaml:"telegram"`
	Database   DatabaseConfig   `yaml:"database"`
	Redis      RedisConfig      `yaml:"redis"`
	Monitoring MonitoringConfig `yaml:"monitoring"`
	Logging    LoggingConfig    `yaml:"logging"`
	Admins     []int64          `yaml:"admins"`
	Exports    ExportConfig     `yaml:"exports"`
	Bot        BotConfig        `yaml:"bot"`
}

type AppConfig struct {
	Name        string `yaml:"name"`
	Environment string `yaml:"environment"`
	Version     string `yaml:"version"`
}

type TelegramConfig struct {
	BotToken string `yaml:"bot_token"`
	Debug    bool   `yaml:"debug"`
}

type DatabaseConfig struct {
	Postgres PostgresConfig `yaml:"postgres"`
}

type PostgresConfig struct {
	Host           string `yaml:"host"`
	Port           int    `yaml:"port"`
	User           string `yaml:"user"`
	Password       string `yaml:"password"`
	DBName         string `yaml:"dbname"`
	SSLMode        string `yaml:"sslmode"`
	MaxConnections int    `yaml:"max_connections"`
}

// DSN собирает строку подключения для pgx.
func (p PostgresConfig) DSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		p.User, p.Password, p.Host, p.Port, p.DBName, p.SSLMode)
}

type RedisConfig struct {
	Address  string `yaml:"address"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
	PoolSize int    `yaml:"pool_size"`
}

type MonitoringConfig struct {
	Enabled bool    `yaml:"enabled"`
	Port    int     `yaml:"port"`
	RPS     float64 `yaml:"rps"`
	Burst   int     `yaml:"burst"`
}

type LoggingConfig struct {
	Level    string `yaml:"level"`
	Format   string `yaml:"format"`
	Output   string `yaml:"output"`
	FilePath string `yaml:"file_path"`
}

type ExportConfig struct {
	Path string `yaml:"path"`
}

type BotConfig struct {
	StateTTL          int `yaml:"state_ttl"`
	RateLimitMessages int `yaml:"rate_limit_messages"`
	RateLimitWindow   int `yaml:"rate_limit_window"`
}

func Load(configPath string) (*Config, error) {
	// Загружаем .env файл если существует
	if err := godotenv.Load(".env"); err != nil && !os.IsNotExist(err) {
		return nil, err
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, err
	}

	// Предварительная замена переменных окружения в YAML
	expandedData := []byte(os.ExpandEnv(string(data)))

	var config Config
	if err := yaml.Unmarshal(expandedData, &config); err != nil {
		return nil, err
	}

	// ADMIN_IDS из окружения имеет приоритет над списком в YAML
	if raw := os.Getenv("ADMIN_IDS"); raw != "" {
		admins, err := ParseAdminIDs(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid ADMIN_IDS: %w", err)
		}
		config.Admins = admins
	}

	config.applyDefaults()

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &config, nil
}

// ParseAdminIDs разбирает список id администраторов через запятую.
func ParseAdminIDs(raw string) ([]int64, error) {
	var ids []int64
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := strconv.ParseInt(part, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("bad admin id %q: %w", part, err)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func (c *Config) Validate() error {
	if c.Telegram.BotToken == "" || c.Telegram.BotToken == "YOUR_BOT_TOKEN_HERE" {
		return errors.New("telegram bot token is required")
	}

	if len(c.Admins) == 0 {
		return errors.New("at least one admin id is required")
	}

	seen := make(map[int64]bool)
	for _, id := range c.Admins {
		if id == 0 {
			return errors.New("admin id 0 is invalid")
		}
		if seen[id] {
			return fmt.Errorf("duplicate admin id: %d", id)
		}
		seen[id] = true
	}

	if c.Database.Postgres.Host != "" && c.Database.Postgres.DBName == "" {
		return errors.New("database.postgres.dbname is required when host is set")
	}

	return nil
}

func (c *Config) applyDefaults() {
	if c.Database.Postgres.Port == 0 {
		c.Database.Postgres.Port = 5432
	}
	if c.Database.Postgres.SSLMode == "" {
		c.Database.Postgres.SSLMode = "disable"
	}
	if c.Monitoring.Enabled && c.Monitoring.Port == 0 {
		c.Monitoring.Port = 8080
	}
	if c.Monitoring.RPS == 0 {
		c.Monitoring.RPS = 5
	}
	if c.Monitoring.Burst == 0 {
		c.Monitoring.Burst = 10
	}
	if c.Exports.Path == "" {
		c.Exports.Path = "exports"
	}

	// Bot defaults
	if c.Bot.StateTTL == 0 {
		c.Bot.StateTTL = 600
	}
	if c.Bot.RateLimitMessages == 0 {
		c.Bot.RateLimitMessages = 20
	}
	if c.Bot.RateLimitWindow == 0 {
		c.Bot.RateLimitWindow = 60
	}
}
