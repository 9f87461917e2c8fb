package config

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/rs/zerolog"
	"github.com/spf13/viper"

	"github.com/bryan-cox/taskboard/internal/errors"
)

const (
	envPrefix = "TASKBOARD"

	// ServiceAccountEnv is the well-known variable holding the base64
	// service account JSON. It is honored without the TASKBOARD_ prefix.
	ServiceAccountEnv = "FIREBASE_SERVICE_ACCOUNT_BASE64"

	configName = "taskboard"
)

var envKeyReplacer = strings.NewReplacer(".", "_")

// Options controls where Load looks for configuration.
type Options struct {
	// ConfigFile is an explicit config file. It must exist when set; when
	// empty, taskboard.yaml is searched in the working directory and the
	// user config directory.
	ConfigFile string
	// EnvFile is a dotenv file. A missing file is not an error.
	EnvFile string
	// Overrides are applied above every other source, keyed like
	// "server.addr".
	Overrides map[string]any
}

// newViperInstance creates a viper instance with defaults and environment
// bindings applied.
func newViperInstance() *viper.Viper {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(envKeyReplacer)
	v.AutomaticEnv()
	_ = v.BindEnv("firebase.service_account_base64", envPrefix+"_FIREBASE_SERVICE_ACCOUNT_BASE64", ServiceAccountEnv)
	return v
}

// Load reads configuration from all sources. Missing optional files are
// skipped; unreadable or invalid ones are errors.
func Load(ctx context.Context, opts Options) (*Config, error) {
	v := newViperInstance()

	if err := readConfigFile(v, opts.ConfigFile); err != nil {
		return nil, err
	}
	if err := mergeEnvFile(v, opts.EnvFile); err != nil {
		return nil, err
	}
	for key, value := range opts.Overrides {
		v.Set(key, value)
	}

	cfg, err := unmarshalAndValidate(v)
	if err != nil {
		return nil, err
	}

	zerolog.Ctx(ctx).Debug().
		Str("config_file", v.ConfigFileUsed()).
		Str("source.kind", cfg.Source.Kind).
		Str("firebase.node", cfg.Firebase.Node).
		Bool("firebase.credentials", cfg.Firebase.ServiceAccountBase64 != "").
		Str("server.addr", cfg.Server.Addr).
		Msg("configuration loaded")

	return cfg, nil
}

func readConfigFile(v *viper.Viper, path string) error {
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return errors.Wrapf(err, "failed to read config file %s", path)
		}
		return nil
	}

	v.SetConfigName(configName)
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if dir, err := os.UserConfigDir(); err == nil {
		v.AddConfigPath(filepath.Join(dir, configName))
	}
	if err := v.ReadInConfig(); err != nil && !isConfigNotFoundError(err) {
		return errors.Wrap(err, "failed to read config file")
	}
	return nil
}

// mergeEnvFile merges a dotenv file into the config layer, so real
// environment variables still take precedence over it.
func mergeEnvFile(v *viper.Viper, path string) error {
	if path == "" {
		return nil
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return errors.Wrapf(err, "failed to stat env file %s", path)
	}

	ev := viper.New()
	ev.SetConfigFile(path)
	ev.SetConfigType("env")
	if err := ev.ReadInConfig(); err != nil {
		return errors.Wrapf(err, "failed to read env file %s", path)
	}

	settings := make(map[string]any)
	for name, value := range ev.AllSettings() {
		key, ok := configKeyForEnv(v, name)
		if !ok {
			continue
		}
		setNested(settings, key, value)
	}
	if len(settings) == 0 {
		return nil
	}
	return errors.Wrap(v.MergeConfigMap(settings), "failed to merge env file")
}

// configKeyForEnv maps an environment variable name to the config key it
// sets, if any.
func configKeyForEnv(v *viper.Viper, name string) (string, bool) {
	upper := strings.ToUpper(name)
	if upper == ServiceAccountEnv {
		return "firebase.service_account_base64", true
	}
	for _, key := range v.AllKeys() {
		if upper == envPrefix+"_"+strings.ToUpper(envKeyReplacer.Replace(key)) {
			return key, true
		}
	}
	return "", false
}

func setNested(m map[string]any, key string, value any) {
	parts := strings.Split(key, ".")
	for _, part := range parts[:len(parts)-1] {
		next, ok := m[part].(map[string]any)
		if !ok {
			next = make(map[string]any)
			m[part] = next
		}
		m = next
	}
	m[parts[len(parts)-1]] = value
}

func isConfigNotFoundError(err error) bool {
	var notFound viper.ConfigFileNotFoundError
	return errors.As(err, &notFound)
}

func unmarshalAndValidate(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg, viperDecoderOption()); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal config")
	}
	if err := Validate(&cfg); err != nil {
		return nil, errors.Wrap(err, "invalid configuration")
	}
	return &cfg, nil
}

func viperDecoderOption() viper.DecoderConfigOption {
	return viper.DecodeHook(
		mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
		),
	)
}
