package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const (
	AppEnvDev  = "development"
	AppEnvProd = "production"
)

type Config struct {
	App   AppConfig
	Yampi YampiConfig
	CORS  CORSConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Yampi.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env      string `envconfig:"APP_ENV" default:"production"`
	Port     string `envconfig:"APP_PORT" default:"3000"`
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

// YampiConfig holds the credentials sent on every outbound Yampi call.
type YampiConfig struct {
	BaseURL     string        `envconfig:"YAMPI_BASE_URL" default:"https://api.yampi.com.br"`
	Alias       string        `envconfig:"YAMPI_ALIAS"`
	UserToken   string        `envconfig:"YAMPI_USER_TOKEN"`
	SecretKey   string        `envconfig:"YAMPI_SECRET_KEY"`
	HTTPTimeout time.Duration `envconfig:"YAMPI_HTTP_TIMEOUT" default:"15s"`
}

func (y YampiConfig) validate() error {
	var missing []string
	if strings.TrimSpace(y.BaseURL) == "" {
		missing = append(missing, "YAMPI_BASE_URL")
	}
	if strings.TrimSpace(y.Alias) == "" {
		missing = append(missing, "YAMPI_ALIAS")
	}
	if strings.TrimSpace(y.UserToken) == "" {
		missing = append(missing, "YAMPI_USER_TOKEN")
	}
	if strings.TrimSpace(y.SecretKey) == "" {
		missing = append(missing, "YAMPI_SECRET_KEY")
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required configuration: %s", strings.Join(missing, ", "))
	}
	return nil
}

type CORSConfig struct {
	AllowedOrigins []string `envconfig:"ALLOWED_ORIGINS"`
}
