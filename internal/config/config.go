package config

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"

	"github.com/Skotchmaster/inventory_cart/pkg/config"
	"github.com/Skotchmaster/inventory_cart/pkg/hash"
)

type Config struct {
	ServiceName string
	Port        string
	LogLevel    string

	ProductsPath string
	CartsPath    string
	SessionPath  string

	Username     string
	PasswordHash string

	AccessSecret  []byte
	RefreshSecret []byte
	AccessTTL     time.Duration
	RefreshTTL    time.Duration

	KafkaBrokers       []string
	KafkaProductsTopic string
	KafkaFaultsTopic   string
}

// LoadEnvFile loads envFile into the process environment without
// overriding variables that are already set. A missing file is not an
// error.
func LoadEnvFile(envFile string) error {
	if envFile == "" {
		return nil
	}
	if err := godotenv.Load(envFile); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			slog.Info("env_file_not_found", "path", envFile)
			return nil
		}
		return fmt.Errorf("load %s: %w", envFile, err)
	}
	return nil
}

// Load reads the configuration from the environment. The configured
// password is kept only as a bcrypt hash.
func Load() (*Config, error) {
	dataDir := config.EnvDefault("DATA_DIR", "data")

	cfg := &Config{
		ServiceName: config.EnvDefault("SERVICE_NAME", "inventory_cart"),
		Port:        config.EnvDefault("SERVER_PORT", "8080"),
		LogLevel:    config.EnvDefault("LOG_LEVEL", "info"),

		ProductsPath: dataPath(dataDir, config.EnvDefault("PRODUCTS_FILE", "products.json")),
		CartsPath:    dataPath(dataDir, config.EnvDefault("CARTS_FILE", "carts.json")),
		SessionPath:  dataPath(dataDir, config.EnvDefault("SESSION_FILE", "auth_tokens.json")),

		Username: config.EnvDefault("APP_USER", "admin"),

		AccessSecret:  []byte(os.Getenv("JWT_ACCESS_SECRET")),
		RefreshSecret: []byte(os.Getenv("JWT_REFRESH_SECRET")),
		AccessTTL:     config.EnvDurationDefault("JWT_ACCESS_EXPIRES", 15*time.Minute),
		RefreshTTL:    config.EnvDurationDefault("JWT_REFRESH_EXPIRES", 24*time.Hour),

		KafkaBrokers:       config.CSV(os.Getenv("KAFKA_BROKERS")),
		KafkaProductsTopic: config.EnvDefault("KAFKA_PRODUCTS_TOPIC", "product_events"),
		KafkaFaultsTopic:   config.EnvDefault("KAFKA_FAULTS_TOPIC", "fault_events"),
	}

	if err := config.RequireNonEmptyBytes(cfg.AccessSecret, "JWT_ACCESS_SECRET"); err != nil {
		return nil, err
	}
	if err := config.RequireNonEmptyBytes(cfg.RefreshSecret, "JWT_REFRESH_SECRET"); err != nil {
		return nil, err
	}
	if bytes.Equal(cfg.AccessSecret, cfg.RefreshSecret) {
		return nil, errors.New("JWT_ACCESS_SECRET and JWT_REFRESH_SECRET must differ")
	}

	pwHash, err := hash.HashPassword(config.EnvDefault("APP_PASS", "admin123"))
	if err != nil {
		if errors.Is(err, hash.ErrPasswordTooLong) {
			return nil, fmt.Errorf("APP_PASS must be at most %d bytes: %w", hash.MaxPasswordBytes, err)
		}
		return nil, fmt.Errorf("hash APP_PASS: %w", err)
	}
	cfg.PasswordHash = pwHash

	return cfg, nil
}

// dataPath joins name onto dir unless name is already absolute.
func dataPath(dir, name string) string {
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(dir, name)
}
