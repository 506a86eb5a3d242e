package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

// TelegramConfig holds Telegram bot credentials.
type TelegramConfig struct {
	Token string `yaml:"token" envconfig:"BOT_TOKEN"`
}

// WebhookConfig specifies the inbound webhook listener.
type WebhookConfig struct {
	Listen string `yaml:"listen" envconfig:"WEBHOOK_LISTEN"`
	Port   int    `yaml:"port" envconfig:"WEBHOOK_PORT"`
	// Path is the URL path Telegram posts updates to.
	Path string `yaml:"path" envconfig:"WEBHOOK_PATH"`
	// SecretToken, when set, is compared against the
	// X-Telegram-Bot-Api-Secret-Token header of inbound requests.
	SecretToken string `yaml:"secret_token" envconfig:"WEBHOOK_SECRET_TOKEN"`
}

// LoggingConfig defines logging related configuration.
type LoggingConfig struct {
	Level  string `yaml:"level" envconfig:"LOG_LEVEL"`
	Format string `yaml:"format" envconfig:"LOG_FORMAT"`
	Dir    string `yaml:"dir" envconfig:"LOG_DIR"`
	File   string `yaml:"file" envconfig:"LOG_FILE"`
	// Profile indicates environment profile such as "debug" or "prod".
	Profile string `yaml:"profile" envconfig:"LOG_PROFILE"`
}

// DatabaseConfig holds Postgres connection settings.
type DatabaseConfig struct {
	Host           string `yaml:"host" envconfig:"DB_HOST"`
	Port           string `yaml:"port" envconfig:"DB_PORT"`
	User           string `yaml:"user" envconfig:"DB_USER"`
	Password       string `yaml:"password" envconfig:"DB_PASSWORD"`
	Name           string `yaml:"name" envconfig:"DB_NAME"`
	SSLMode        string `yaml:"sslmode" envconfig:"DB_SSLMODE"`
	MaxConnections int    `yaml:"max_connections" envconfig:"DB_MAX_CONNECTIONS"`
}

// ContentConfig holds upload and delivery settings.
type ContentConfig struct {
	// BackupChannelID is the operator channel media is copied into for
	// durable storage. Accepts a numeric id or @username.
	BackupChannelID string `yaml:"backup_channel_id" envconfig:"BACKUP_CHANNEL_ID"`
	// LinkBaseURL is the prefix share links are built from,
	// e.g. "https://t.me/serialbox_bot?start=".
	LinkBaseURL string `yaml:"link_base_url" envconfig:"LINK_BASE_URL"`
	// ExtraCaption, when set, is appended to the original caption of every
	// media copied into the backup channel. "\n" escapes are honored.
	ExtraCaption string `yaml:"extra_caption" envconfig:"EXTRA_CAPTION"`
	// AutoDeleteSeconds is how long delivered content stays in the user's
	// chat before the scheduled delete fires. 0 disables deletion.
	AutoDeleteSeconds int `yaml:"autodelete_seconds" envconfig:"AUTODELETE_SECONDS"`
}

// Config aggregates the full application configuration.
type Config struct {
	Telegram TelegramConfig `yaml:"telegram"`
	Webhook  WebhookConfig  `yaml:"webhook"`
	Database DatabaseConfig `yaml:"database"`
	Logging  LoggingConfig  `yaml:"logging"`
	Content  ContentConfig  `yaml:"content"`
}

// Load reads configuration from a YAML file and environment variables.
func Load(path string) (*Config, error) {
	var cfg Config

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse YAML config: %w", err)
	}
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process env: %w", err)
	}

	if err := Normalize(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Normalize performs basic validation of required configuration fields and adjusts defaults.
func Normalize(cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("nil config")
	}

	if cfg.Telegram.Token == "" {
		return fmt.Errorf("telegram token is required")
	}

	if strings.TrimSpace(cfg.Webhook.Listen) == "" {
		cfg.Webhook.Listen = "0.0.0.0"
	}
	if cfg.Webhook.Port <= 0 {
		return fmt.Errorf("webhook.port must be > 0")
	}
	if strings.TrimSpace(cfg.Webhook.Path) == "" {
		cfg.Webhook.Path = "/bot/webhook/"
	}
	if !strings.HasPrefix(cfg.Webhook.Path, "/") {
		cfg.Webhook.Path = "/" + cfg.Webhook.Path
	}

	if strings.TrimSpace(cfg.Content.BackupChannelID) == "" {
		return fmt.Errorf("content.backup_channel_id is required")
	}
	if cfg.Content.AutoDeleteSeconds < 0 {
		return fmt.Errorf("content.autodelete_seconds must be >= 0")
	}
	cfg.Content.ExtraCaption = strings.ReplaceAll(cfg.Content.ExtraCaption, `\n`, "\n")

	if cfg.Database.SSLMode == "" {
		cfg.Database.SSLMode = "disable"
	}
	if cfg.Database.MaxConnections <= 0 {
		cfg.Database.MaxConnections = 10
	}

	return nil
}
