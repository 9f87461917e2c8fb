// Package config handles configuration loading for TaskBoard.
//
// Precedence, highest first: explicit overrides (CLI flags), environment
// variables (TASKBOARD_* plus FIREBASE_SERVICE_ACCOUNT_BASE64), a .env file,
// the config file, built-in defaults.
package config

import "time"

// Dataset source kinds.
const (
	SourceFirebase = "firebase"
	SourceFile     = "file"
	SourceSQLite   = "sqlite"
)

// Config holds all configuration for TaskBoard.
type Config struct {
	Source   SourceConfig   `mapstructure:"source"`
	Firebase FirebaseConfig `mapstructure:"firebase"`
	Server   ServerConfig   `mapstructure:"server"`
	Log      LogConfig      `mapstructure:"log"`
}

// SourceConfig selects where the dataset is read from.
type SourceConfig struct {
	// Kind is one of firebase, file, sqlite.
	Kind string `mapstructure:"kind"`
	// File is a JSON or YAML dataset, used when Kind is file.
	File string `mapstructure:"file"`
	// SQLite is the snapshot database, read when Kind is sqlite and written
	// by the snapshot command.
	SQLite string `mapstructure:"sqlite"`
}

// FirebaseConfig holds Firebase Realtime Database settings.
type FirebaseConfig struct {
	DatabaseURL string `mapstructure:"database_url"`
	// Node is the database path holding the dataset.
	Node string `mapstructure:"node"`
	// ServiceAccountBase64 is the base64-encoded service account JSON.
	ServiceAccountBase64 string        `mapstructure:"service_account_base64"`
	Timeout              time.Duration `mapstructure:"timeout"`
}

// ServerConfig holds HTTP dashboard settings.
type ServerConfig struct {
	Addr            string        `mapstructure:"addr"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// LogConfig holds log file settings. Console logging is controlled by flags.
type LogConfig struct {
	// File enables a rotating log file when non-empty.
	File       string `mapstructure:"file"`
	MaxSizeMB  int    `mapstructure:"max_size_mb"`
	MaxBackups int    `mapstructure:"max_backups"`
}
