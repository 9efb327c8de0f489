// Package config loads orgchart settings from config.yaml, the environment
// and an optional .env file.
//
// Precedence, highest first: ORGCHART_* environment variables (including
// those set by .env), config.yaml in the resolved config directory, built-in
// defaults. Command-line flags are applied on top by the CLI.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/mesh-intelligence/orgchart/internal/paths"
	"github.com/mesh-intelligence/orgchart/pkg/types"
)

// Config keys.
const (
	KeyDriver    = "store.driver"
	KeyHost      = "store.host"
	KeyPort      = "store.port"
	KeyUser      = "store.user"
	KeyPassword  = "store.password"
	KeyDatabase  = "store.database"
	KeySSLMode   = "store.sslmode"
	KeyPath      = "store.path"
	KeyDataDir   = "data_dir"
	KeyLogLevel  = "log.level"
	KeyLogFormat = "log.format"
	KeyOutput    = "output"
)

const envPrefix = "ORGCHART"

// defaultConfigYAML is written to config.yaml on first run.
const defaultConfigYAML = `# orgchart configuration

store:
  # sqlite, postgres or mysql
  driver: sqlite
  # sqlite database file (default: <data dir>/orgchart.db)
  # path:
  # host: localhost
  # port: 3306
  # user: root
  # password is best supplied as ORGCHART_STORE_PASSWORD
  # database: company_db

# data_dir:

log:
  level: warn
  format: console

# table, json or yaml
output: table
`

// Config is the decoded configuration.
type Config struct {
	Store   Store  `mapstructure:"store"`
	DataDir string `mapstructure:"data_dir"`
	Log     Log    `mapstructure:"log"`
	Output  string `mapstructure:"output" validate:"oneof=table json yaml"`
}

// Store selects and addresses the relational store.
type Store struct {
	Driver   string `mapstructure:"driver" validate:"oneof=sqlite postgres mysql"`
	Host     string `mapstructure:"host" validate:"required_unless=Driver sqlite"`
	Port     int    `mapstructure:"port" validate:"gte=0,lte=65535"`
	User     string `mapstructure:"user" validate:"required_unless=Driver sqlite"`
	Password string `mapstructure:"password"`
	Database string `mapstructure:"database" validate:"required_unless=Driver sqlite"`
	SSLMode  string `mapstructure:"sslmode" validate:"omitempty,oneof=disable allow prefer require verify-ca verify-full"`
	Path     string `mapstructure:"path"`
}

// Log configures the zerolog logger.
type Log struct {
	Level  string `mapstructure:"level" validate:"oneof=trace debug info warn error fatal panic disabled"`
	Format string `mapstructure:"format" validate:"oneof=console json"`
}

// Load reads configuration for configDir. It creates the directory and a
// default config.yaml when missing, loads envFile into the process
// environment when it exists, and validates the result.
func Load(configDir, envFile string) (*Config, *viper.Viper, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, nil, fmt.Errorf("load %s: %w", envFile, err)
		}
	}

	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return nil, nil, fmt.Errorf("ensure config dir: %w", err)
	}
	if err := ensureDefaultConfigFile(paths.ConfigPath(configDir)); err != nil {
		return nil, nil, fmt.Errorf("ensure default config: %w", err)
	}

	v := viper.New()
	setDefaults(v)
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(configDir)
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var (
			notFound viper.ConfigFileNotFoundError
			parse    viper.ConfigParseError
		)
		switch {
		case errors.As(err, &parse):
			return nil, nil, fmt.Errorf("%w: read config: %v", types.ErrInvalidArgument, err)
		case !errors.As(err, &notFound):
			return nil, nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, nil, fmt.Errorf("%w: decode config: %v", types.ErrInvalidArgument, err)
	}
	cfg.Store.Driver = strings.ToLower(cfg.Store.Driver)
	cfg.Log.Level = strings.ToLower(cfg.Log.Level)

	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}
	return &cfg, v, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault(KeyDriver, "sqlite")
	v.SetDefault(KeyLogLevel, "warn")
	v.SetDefault(KeyLogFormat, "console")
	v.SetDefault(KeyOutput, "table")

	// Keys without defaults still need registering so AutomaticEnv can
	// fill them during Unmarshal.
	v.SetDefault(KeyPort, 0)
	for _, key := range []string{KeyHost, KeyUser, KeyPassword, KeyDatabase, KeySSLMode, KeyPath, KeyDataDir} {
		v.SetDefault(key, "")
	}
}

// Validate checks field constraints, reporting every violation.
func (c *Config) Validate() error {
	err := validator.New().Struct(c)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("%w: validate config: %v", types.ErrInvalidArgument, err)
	}
	msgs := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		msgs = append(msgs, fmt.Sprintf("%s: failed %q (got %v)", configKey(fe.Namespace()), fe.Tag(), fe.Value()))
	}
	return fmt.Errorf("%w: invalid config: %s", types.ErrInvalidArgument, strings.Join(msgs, "; "))
}

// configKey turns "Config.Store.Driver" into "store.driver".
func configKey(namespace string) string {
	_, rest, _ := strings.Cut(namespace, ".")
	return strings.ToLower(rest)
}

func ensureDefaultConfigFile(path string) error {
	_, err := os.Stat(path)
	if err == nil {
		return nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("stat config file: %w", err)
	}
	return os.WriteFile(path, []byte(defaultConfigYAML), 0o644)
}
