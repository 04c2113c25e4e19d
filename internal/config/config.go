package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config holds runtime configuration. Everything the user edits inside
// the app (theme, owner name) lives in the persisted preferences store
// instead.
type Config struct {
	DataDir       string              `mapstructure:"data_dir"`
	Scheduler     SchedulerConfig     `mapstructure:"scheduler"`
	Notifications NotificationsConfig `mapstructure:"notifications"`
	Logger        LoggerConfig        `mapstructure:"logger"`
}

type SchedulerConfig struct {
	Buffer int `mapstructure:"buffer"`
}

type NotificationsConfig struct {
	Desktop bool `mapstructure:"desktop"`
}

type LoggerConfig struct {
	Level string `mapstructure:"level"`
	File  string `mapstructure:"file"`
}

// DatabasePath is the sqlite file shared by the app and its widget
// readers.
func (c Config) DatabasePath() string {
	return filepath.Join(c.DataDir, "plandeck.db")
}

func (c Config) LogPath() string {
	if c.Logger.File != "" {
		return c.Logger.File
	}
	return filepath.Join(c.DataDir, "plandeck.log")
}

// Load reads config.yaml from dir (or the default config directory),
// applies PLANDECK_* environment overrides, and falls back to defaults
// for everything unset. A missing file is not an error.
func Load(dir string) (Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	if dir != "" {
		v.AddConfigPath(dir)
	} else if userDir, err := defaultConfigDir(); err == nil {
		v.AddConfigPath(userDir)
	}

	v.SetEnvPrefix("PLANDECK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	if cfg.DataDir == "" {
		dataDir, err := defaultDataDir()
		if err != nil {
			return Config{}, err
		}
		cfg.DataDir = dataDir
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("scheduler.buffer", 64)
	v.SetDefault("notifications.desktop", true)
	v.SetDefault("logger.level", "info")
}

func defaultConfigDir() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve config dir: %w", err)
	}
	return filepath.Join(base, "plandeck"), nil
}

func defaultDataDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home dir: %w", err)
	}
	return filepath.Join(home, ".local", "share", "plandeck"), nil
}
