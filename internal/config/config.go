// Package config собирает настройки клиента из флагов и переменных окружения.
// Переменные окружения имеют приоритет над флагами.
package config

import (
	"errors"
	"flag"
	"fmt"
	"net/url"
	"time"

	"github.com/caarlos0/env/v10"
)

// DefaultEndpoint - адрес serverless-функции сокращения по умолчанию
const DefaultEndpoint = "https://bul2u9q6ld.execute-api.ap-south-1.amazonaws.com/default/"

type Config struct {
	ServerAddress  string        `env:"SERVER_ADDRESS"`
	Endpoint       string        `env:"SHORTEN_ENDPOINT"`
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
	CopyResetAfter time.Duration `env:"COPY_RESET_AFTER"`
	LogLevel       string        `env:"LOG_LEVEL"`
}

// Load разбирает аргументы командной строки и окружение процесса
func Load(name string, args []string) (*Config, error) {
	return load(name, args, nil)
}

func load(name string, args []string, environment map[string]string) (*Config, error) {
	cfg := &Config{}

	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.StringVar(&cfg.ServerAddress, "a", "localhost:8080", "address to run the UI server on")
	fs.StringVar(&cfg.Endpoint, "e", DefaultEndpoint, "shorten endpoint URL")
	fs.DurationVar(&cfg.RequestTimeout, "t", 10*time.Second, "shorten request timeout")
	fs.DurationVar(&cfg.CopyResetAfter, "r", 2*time.Second, "how long the copy button shows Copied!")
	fs.StringVar(&cfg.LogLevel, "l", "info", "log level")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	if err := env.ParseWithOptions(cfg, env.Options{Environment: environment}); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate проверяет корректность конфигурации
func (cfg *Config) Validate() error {
	if cfg.ServerAddress == "" {
		return errors.New("server address must not be empty")
	}
	u, err := url.Parse(cfg.Endpoint)
	if err != nil {
		return fmt.Errorf("invalid endpoint: %w", err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("endpoint %q must be an absolute http(s) URL", cfg.Endpoint)
	}
	if cfg.RequestTimeout <= 0 {
		return errors.New("request timeout must be positive")
	}
	if cfg.CopyResetAfter <= 0 {
		return errors.New("copy reset duration must be positive")
	}
	return nil
}
