package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment variable read by Load.
const EnvPrefix = "CINELINGO"

// Config holds application configuration loaded from files, environment
// variables and command-line flags.
type Config struct {
	Env              string        `mapstructure:"env" validate:"oneof=local development production"` // application environment
	FeedbackDuration time.Duration `mapstructure:"feedback_duration" validate:"gt=0"`                 // how long feedback stays visible
	StartActivity    string        `mapstructure:"start_activity"`                                    // activity to open instead of the menu
	ContentFile      string        `mapstructure:"content_file"`                                      // replaces the embedded activities
	Splash           bool          `mapstructure:"splash"`                                            // show the title card before the menu
	Log              Log           `mapstructure:"log"`                                               // logging section
}

// Log contains logging configuration. The TUI owns the terminal, so logs
// go to a file; an empty File disables logging.
type Log struct {
	File  string `mapstructure:"file"`
	Level string `mapstructure:"level" validate:"oneof=debug info warn error"`
}

// IsProduction reports whether production logging should be used.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// Options controls where Load looks for configuration.
type Options struct {
	// ConfigFile is an explicit config file; empty searches ./config.yaml
	// and $HOME/.config/cinelingo/config.yaml.
	ConfigFile string

	// DotEnv is a .env file to load before reading the environment. A
	// missing file is not an error.
	DotEnv string

	// Flags are bound to configuration keys by name; see flagKeys.
	Flags *pflag.FlagSet
}

// flagKeys maps command-line flag names to configuration keys.
var flagKeys = map[string]string{
	"content":   "content_file",
	"log-file":  "log.file",
	"log-level": "log.level",
	"start":     "start_activity",
	"env":       "env",
	"splash":    "splash",
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Load reads configuration. Precedence, highest first: flags, environment,
// config file, defaults.
func Load(opts Options) (*Config, error) {
	dotenv := opts.DotEnv
	if dotenv == "" {
		dotenv = ".env"
	}
	if err := godotenv.Load(dotenv); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("error loading %s: %w", dotenv, err)
	}

	v := viper.New()
	v.SetConfigType("yaml")
	if opts.ConfigFile != "" {
		v.SetConfigFile(opts.ConfigFile)
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.config/cinelingo")
	}

	v.SetDefault("env", "local")
	v.SetDefault("feedback_duration", "2s")
	v.SetDefault("start_activity", "")
	v.SetDefault("content_file", "")
	v.SetDefault("splash", true)
	v.SetDefault("log.file", "")
	v.SetDefault("log.level", "info")

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if opts.Flags != nil {
		for name, key := range flagKeys {
			if f := opts.Flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("bind flag %s: %w", name, err)
				}
			}
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if opts.ConfigFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error loading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshalling config: %w", err)
	}

	cfg.Log.Level = strings.ToLower(cfg.Log.Level)
	if err := validate.Struct(&cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &cfg, nil
}
