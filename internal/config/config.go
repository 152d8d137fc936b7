package config

import (
	"errors"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Config represents the root configuration structure for the application
type Config struct {
	Client ClientConfig `mapstructure:"client"`
	Log    LogConfig    `mapstructure:"log"`
	Replay ReplayConfig `mapstructure:"replay"`
}

// ClientConfig holds the connection settings
type ClientConfig struct {
	Host           string        `mapstructure:"host"`
	Port           string        `mapstructure:"port"`
	DialTimeout    time.Duration `mapstructure:"dial_timeout"`
	ReadTimeout    time.Duration `mapstructure:"read_timeout"`  // 0 disables the per-read deadline
	WriteTimeout   time.Duration `mapstructure:"write_timeout"` // 0 disables the per-write deadline
	ReadBufferSize int           `mapstructure:"read_buffer_size"`
}

// LogConfig defines logging verbosity and output style
type LogConfig struct {
	Level  string `mapstructure:"level"`  // debug, info, warn, error
	Format string `mapstructure:"format"` // json, console
}

// ReplayConfig defines how a command file is sent to the server
type ReplayConfig struct {
	BatchSize int `mapstructure:"batch_size"` // commands per pipeline round trip
}

// DefaultReadBufferSize is the size of a single transport read
const DefaultReadBufferSize = 16 * 1024

// Load reads the configuration from a file and overrides it with environment variables
// and, when flags is not nil, with every flag the user set explicitly
func Load(path string, flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigName("lunar")
	v.SetConfigType("yaml")
	v.AddConfigPath(path)
	v.AddConfigPath(".")

	v.SetEnvPrefix("LUNAR")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if !errors.As(err, &configFileNotFoundError) {
			return nil, err
		}
	}

	if flags != nil {
		if err := bindFlags(v, flags); err != nil {
			return nil, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	if cfg.Client.ReadBufferSize <= 0 {
		cfg.Client.ReadBufferSize = DefaultReadBufferSize
	}
	if cfg.Replay.BatchSize <= 0 {
		return nil, errors.New("replay.batch_size must be positive")
	}

	return &cfg, nil
}

// bindFlags maps flag names to config keys, e.g. --read-timeout to client.read_timeout
func bindFlags(v *viper.Viper, flags *pflag.FlagSet) error {
	keys := map[string]string{
		"host":          "client.host",
		"port":          "client.port",
		"dial-timeout":  "client.dial_timeout",
		"read-timeout":  "client.read_timeout",
		"write-timeout": "client.write_timeout",
		"log-level":     "log.level",
		"log-format":    "log.format",
		"batch-size":    "replay.batch_size",
	}

	for name, key := range keys {
		f := flags.Lookup(name)
		if f == nil {
			continue
		}
		if err := v.BindPFlag(key, f); err != nil {
			return err
		}
	}

	return nil
}

// setDefaults populates viper with fallback values if they are not provided via file or ENV
func setDefaults(v *viper.Viper) {
	// Client
	v.SetDefault("client.host", "127.0.0.1")
	v.SetDefault("client.port", "6379")
	v.SetDefault("client.dial_timeout", "5s")
	v.SetDefault("client.read_timeout", "0s")
	v.SetDefault("client.write_timeout", "0s")
	v.SetDefault("client.read_buffer_size", DefaultReadBufferSize)

	// Logger
	v.SetDefault("log.level", "warn")
	v.SetDefault("log.format", "console")

	// Replay
	v.SetDefault("replay.batch_size", 1000)
}
