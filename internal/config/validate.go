package config

import (
	"strings"

	"github.com/bryan-cox/taskboard/internal/errors"
)

// Validate checks the configuration for invalid or inconsistent values and
// returns the first failure found.
func Validate(cfg *Config) error {
	if cfg == nil {
		return errors.ErrConfigNil
	}

	cfg.Source.Kind = strings.ToLower(strings.TrimSpace(cfg.Source.Kind))
	switch cfg.Source.Kind {
	case SourceFirebase:
		if cfg.Firebase.DatabaseURL == "" {
			return errors.Wrap(errors.ErrInvalidConfig, "firebase.database_url must be set")
		}
	case SourceFile:
		if cfg.Source.File == "" {
			return errors.Wrap(errors.ErrInvalidConfig, "source.file must be set")
		}
	case SourceSQLite:
		if cfg.Source.SQLite == "" {
			return errors.Wrap(errors.ErrInvalidConfig, "source.sqlite must be set")
		}
	default:
		return errors.Wrapf(errors.ErrUnknownSource, "source.kind %q", cfg.Source.Kind)
	}

	if cfg.Firebase.Timeout <= 0 {
		return errors.Wrapf(errors.ErrInvalidConfig, "firebase.timeout must be positive, got %s", cfg.Firebase.Timeout)
	}
	if cfg.Server.Addr == "" {
		return errors.Wrap(errors.ErrInvalidConfig, "server.addr must be set")
	}
	if cfg.Server.ReadTimeout <= 0 {
		return errors.Wrapf(errors.ErrInvalidConfig, "server.read_timeout must be positive, got %s", cfg.Server.ReadTimeout)
	}
	if cfg.Server.ShutdownTimeout <= 0 {
		return errors.Wrapf(errors.ErrInvalidConfig, "server.shutdown_timeout must be positive, got %s", cfg.Server.ShutdownTimeout)
	}
	if cfg.Log.MaxSizeMB < 0 || cfg.Log.MaxBackups < 0 {
		return errors.Wrap(errors.ErrInvalidConfig, "log rotation settings must not be negative")
	}
	return nil
}
