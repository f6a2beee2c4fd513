// Package config loads process configuration from the environment.
package config

import (
	"errors"
	"log/slog"
	"sync"

	"cache-manager/internal/store/policy"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

var (
	// ErrNilPointer is returned when Load is given a nil target.
	ErrNilPointer = errors.New("config: nil pointer")

	// ErrParsingConfig wraps failures of the environment parser.
	ErrParsingConfig = errors.New("config: failed to parse environment")

	dotenvOnce sync.Once
)

// Server holds the settings of the cache server.
type Server struct {
	Capacity         int         `env:"CACHE_CAPACITY" envDefault:"256"`
	Policy           policy.Kind `env:"CACHE_POLICY" envDefault:"fifo"`
	Overwrite        bool        `env:"CACHE_OVERWRITE" envDefault:"false"`
	HTTPAddr         string      `env:"HTTP_ADDR" envDefault:":8080"`
	GRPCAddr         string      `env:"GRPC_ADDR" envDefault:":50051"`
	LogLevel         slog.Level  `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat        string      `env:"LOG_FORMAT" envDefault:"text"`
	MetricsNamespace string      `env:"METRICS_NAMESPACE" envDefault:"cache"`
}

// Load parses environment variables into v based on its struct tags.
// A .env file in the working directory is read once, if present; variables
// already set in the environment win.
//
// Example:
//
//	var cfg config.Server
//	if err := config.Load(&cfg); err != nil {
//		// Handle error
//	}
func Load[T any](v *T) error {
	dotenvOnce.Do(func() {
		// Ignore errors - the .env file might not exist and that's ok
		_ = godotenv.Load()
	})
	if v == nil {
		return ErrNilPointer
	}
	if err := env.Parse(v); err != nil {
		return errors.Join(ErrParsingConfig, err)
	}
	return nil
}

// Validate checks values the parser cannot.
func (s Server) Validate() error {
	var errs []error
	if s.Capacity <= 0 {
		errs = append(errs, errors.New("CACHE_CAPACITY must be positive"))
	}
	if _, err := policy.ParseKind(string(s.Policy)); err != nil {
		errs = append(errs, err)
	}
	if s.LogFormat != "text" && s.LogFormat != "json" {
		errs = append(errs, errors.New("LOG_FORMAT must be text or json"))
	}
	return errors.Join(errs...)
}
