package config

import (
	"time"

	"github.com/spf13/viper"
)

// Default values.
const (
	DefaultDatabaseURL     = "https://propclean-default-rtdb.firebaseio.com/"
	DefaultNode            = "backup"
	DefaultFirebaseTimeout = 15 * time.Second
	DefaultAddr            = "127.0.0.1:8050"
	DefaultReadTimeout     = 10 * time.Second
	DefaultShutdownTimeout = 5 * time.Second
	DefaultDatasetFile     = "dataset.yaml"
	DefaultSnapshotFile    = "taskboard.db"
)

// DefaultConfig returns a Config populated with the built-in defaults.
func DefaultConfig() *Config {
	return &Config{
		Source: SourceConfig{
			Kind:   SourceFirebase,
			File:   DefaultDatasetFile,
			SQLite: DefaultSnapshotFile,
		},
		Firebase: FirebaseConfig{
			DatabaseURL: DefaultDatabaseURL,
			Node:        DefaultNode,
			Timeout:     DefaultFirebaseTimeout,
		},
		Server: ServerConfig{
			Addr:            DefaultAddr,
			ReadTimeout:     DefaultReadTimeout,
			ShutdownTimeout: DefaultShutdownTimeout,
		},
		Log: LogConfig{
			MaxSizeMB:  10,
			MaxBackups: 3,
		},
	}
}

// setDefaults registers every key with viper. A key must have a default for
// AutomaticEnv to pick it up during Unmarshal.
func setDefaults(v *viper.Viper) {
	d := DefaultConfig()

	v.SetDefault("source.kind", d.Source.Kind)
	v.SetDefault("source.file", d.Source.File)
	v.SetDefault("source.sqlite", d.Source.SQLite)

	v.SetDefault("firebase.database_url", d.Firebase.DatabaseURL)
	v.SetDefault("firebase.node", d.Firebase.Node)
	v.SetDefault("firebase.service_account_base64", "")
	v.SetDefault("firebase.timeout", d.Firebase.Timeout)

	v.SetDefault("server.addr", d.Server.Addr)
	v.SetDefault("server.read_timeout", d.Server.ReadTimeout)
	v.SetDefault("server.shutdown_timeout", d.Server.ShutdownTimeout)

	v.SetDefault("log.file", d.Log.File)
	v.SetDefault("log.max_size_mb", d.Log.MaxSizeMB)
	v.SetDefault("log.max_backups", d.Log.MaxBackups)
}
