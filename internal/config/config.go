package config

import (
	"errors"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/ilyakaznacheev/cleanenv"
	"github.com/pelletier/go-toml/v2"

	"github.com/hmans/authors/internal/author"
)

const ConfigFile = "authors.toml"

// Defaults for values left empty in the config file.
const (
	DefaultHost       = ""
	DefaultPort       = 3501
	DefaultIDStrategy = author.IDSequential
	DefaultUpdateMode = "truthy"
	DefaultLogLevel   = "info"
	DefaultLogFormat  = "console"
)

// Config holds the authors server configuration.
//
// Values come from the TOML file first; AUTHORS_* environment variables
// override them.
type Config struct {
	Server  ServerConfig  `toml:"server"`
	Authors AuthorsConfig `toml:"authors"`
	Log     LogConfig     `toml:"log"`
}

// ServerConfig defines the HTTP listener.
type ServerConfig struct {
	Host              string `toml:"host" env:"AUTHORS_HOST"`
	Port              int    `toml:"port" env:"AUTHORS_PORT" validate:"min=1,max=65535"`
	DisablePlayground bool   `toml:"disable_playground,omitempty" env:"AUTHORS_DISABLE_PLAYGROUND"`
}

// AuthorsConfig defines how the author store behaves.
type AuthorsConfig struct {
	IDStrategy string `toml:"id_strategy" env:"AUTHORS_ID_STRATEGY" validate:"oneof=sequential counter nanoid uuid"`
	UpdateMode string `toml:"update_mode" env:"AUTHORS_UPDATE_MODE" validate:"oneof=truthy presence"`
	SeedFile   string `toml:"seed_file,omitempty" env:"AUTHORS_SEED_FILE"`
}

// LogConfig defines logger output.
type LogConfig struct {
	Level  string `toml:"level" env:"AUTHORS_LOG_LEVEL" validate:"oneof=debug info warn error"`
	Format string `toml:"format" env:"AUTHORS_LOG_FORMAT" validate:"oneof=console json"`
}

// Default returns a Config with default values.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Host: DefaultHost,
			Port: DefaultPort,
		},
		Authors: AuthorsConfig{
			IDStrategy: DefaultIDStrategy,
			UpdateMode: DefaultUpdateMode,
		},
		Log: LogConfig{
			Level:  DefaultLogLevel,
			Format: DefaultLogFormat,
		},
	}
}

// Load reads configuration from path, or from ConfigFile in the working
// directory when path is empty. A missing file yields the defaults. In both
// cases environment overrides are applied and the result is validated.
func Load(path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		path = ConfigFile
	}

	cfg := Default()

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		cfg, err = parse(data)
		if err != nil {
			return nil, fmt.Errorf("parsing %s: %w", path, err)
		}
		if cfg.Authors.SeedFile != "" && !filepath.IsAbs(cfg.Authors.SeedFile) {
			cfg.Authors.SeedFile = filepath.Join(filepath.Dir(path), cfg.Authors.SeedFile)
		}
	case errors.Is(err, os.ErrNotExist) && !explicit:
		// no config file, defaults it is
	default:
		return nil, err
	}

	if err := cleanenv.ReadEnv(cfg); err != nil {
		return nil, fmt.Errorf("reading environment: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// parse decodes TOML and fills in defaults for missing values.
func parse(data []byte) (*Config, error) {
	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	if cfg.Server.Port == 0 {
		cfg.Server.Port = DefaultPort
	}
	if cfg.Authors.IDStrategy == "" {
		cfg.Authors.IDStrategy = DefaultIDStrategy
	}
	if cfg.Authors.UpdateMode == "" {
		cfg.Authors.UpdateMode = DefaultUpdateMode
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = DefaultLogLevel
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = DefaultLogFormat
	}

	return &cfg, nil
}

// Validate checks every field against its allowed values.
func (c *Config) Validate() error {
	v := validator.New(validator.WithRequiredStructEnabled())
	if err := v.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			fe := verrs[0]
			return fmt.Errorf("invalid config: %s: %q fails %s=%s", fe.Namespace(), fmt.Sprint(fe.Value()), fe.Tag(), fe.Param())
		}
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// Save writes the configuration to path.
func (c *Config) Save(path string) error {
	data, err := toml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Addr returns the listen address for the HTTP server.
func (c *Config) Addr() string {
	return net.JoinHostPort(c.Server.Host, strconv.Itoa(c.Server.Port))
}
