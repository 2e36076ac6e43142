package config

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	. "cediflow/common/logger"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

type AppConfig struct {
	Name     string   `envconfig:"APP_NAME" required:"true"`
	LogLevel string   `envconfig:"LOG_LEVEL" default:"WARN"`
	Service  *Service `envconfig:"SERVICE"`

	HTTPServer *HTTPServer `envconfig:"HTTP_SERVER"`

	Postgres   *Postgres   `envconfig:"POSTGRES_DB"`
	RateSource *RateSource `envconfig:"RATE_SOURCE"`
}

type Service struct {
	BaseCurrency           string        `envconfig:"BASE_CURRENCY" default:"GHS"`
	RatePollingInterval    time.Duration `envconfig:"RATE_POLLING_INTERVAL" default:"60s"`
	CatalogPollingInterval time.Duration `envconfig:"CATALOG_POLLING_INTERVAL" default:"5s"`
	RefreshTimeout         time.Duration `envconfig:"REFRESH_TIMEOUT" default:"30s"`
}

type RateSource struct {
	BaseURL        string        `envconfig:"BASE_URL" required:"true"`
	ApiKey         string        `envconfig:"API_KEY" required:"true"`
	RequestTimeout time.Duration `envconfig:"REQUEST_TIMEOUT" default:"30s"`
	RetriesCount   int           `envconfig:"RETRIES_COUNT" default:"3"`
}

func getEnvFilenames() []string {
	return []string{".env.local", ".env"}
}

func LoadConfig(ctx context.Context) (*AppConfig, error) {
	for _, fileName := range getEnvFilenames() {
		err := godotenv.Load(fileName)
		if err != nil {
			JSONLogger.Error("error loading env file", slog.String("filename", fileName), err)
		}
	}

	var cfg AppConfig
	if err := envconfig.Process("", &cfg); err != nil {
		JSONLogger.Error("cannot process envs", err)
		return nil, fmt.Errorf("cannot process envs: %w", err)
	} else {
		JSONLogger.Info("Config initialized")
	}

	return &cfg, nil
}
