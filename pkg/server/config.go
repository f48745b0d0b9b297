package server

import (
	"fmt"
	"log/slog"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

type Config struct {
	Debug bool `mapstructure:"debug" validate:"-"`
	// DbURL is the path of the sqlite database.
	DbURL      string `mapstructure:"db_url" validate:"required"`
	ListenAddr string `mapstructure:"listen_addr" validate:"omitempty,hostname_port"`
	// LogDir is where the daemon's own log goes; empty means stderr.
	LogDir string `mapstructure:"log_dir" validate:"-"`
	// FileConfigDir lists the directories holding YAML file definitions.
	FileConfigDir []string `mapstructure:"file_config_dir" validate:"required"`
	LogLevel      string   `mapstructure:"log_level" validate:"omitempty,eq=debug|eq=info|eq=warn|eq=error"`

	// StatRefreshInterval accepts anything robfig/cron parses, including
	// "@every" descriptors, so it is validated at scheduling time.
	StatRefreshInterval string `mapstructure:"stat_refresh_interval" validate:"-"`
	MaxTailLines        int    `mapstructure:"max_tail_lines" validate:"omitempty,gt=0"`
	TailBlockSize       int    `mapstructure:"tail_block_size" validate:"omitempty,gt=0"`
}

func (c *Config) slogLevel() slog.Level {
	switch c.LogLevel {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func LoadConfig(configPath string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(configPath)
	v.SetDefault("db_url", "/var/lib/taild/taild.db")
	v.SetDefault("listen_addr", "127.0.0.1:9998")
	v.SetDefault("stat_refresh_interval", "@every 10m")
	v.SetDefault("max_tail_lines", 10000)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	cfg := new(Config)
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := validator.New().Struct(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
