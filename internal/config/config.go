package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override, e.g. SKIBLO_PORT.
const EnvPrefix = "SKIBLO"

type Config struct {
	Mode           string        `mapstructure:"mode"`
	Port           int           `mapstructure:"port"`
	StaticPath     string        `mapstructure:"static_path"`
	ReadLimit      int64         `mapstructure:"read_limit"`
	PingPeriod     time.Duration `mapstructure:"ping_period"`
	WriteWait      time.Duration `mapstructure:"write_wait"`
	Secret         string        `mapstructure:"secret"`
	AllowedOrigins []string      `mapstructure:"allowed_origins"`
	WordsFile      string        `mapstructure:"words_file"`
	RNGSeed        int64         `mapstructure:"rng_seed"`
	ChatRate       float64       `mapstructure:"chat_rate"`
	ChatBurst      int           `mapstructure:"chat_burst"`
	SendBuffer     int           `mapstructure:"send_buffer"`
	MaxRooms       int           `mapstructure:"max_rooms"`
	TickInterval   time.Duration `mapstructure:"tick_interval"`
	IdleTimeout    time.Duration `mapstructure:"idle_timeout"`
	LogLevel       string        `mapstructure:"log_level"`
}

// Load reads .env, then config/config.<CONFIG_ENV>.yaml, then SKIBLO_*
// environment variables. Missing files fall back to defaults.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	env := os.Getenv("CONFIG_ENV")
	if env == "" {
		env = "dev"
	}
	return LoadFile(fmt.Sprintf("config/config.%s.yaml", env))
}

// LoadFile reads the given YAML file on top of the defaults. Environment
// variables still win.
func LoadFile(fileName string) (*Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetConfigFile(fileName)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("mode", "release")
	v.SetDefault("port", 8080)
	v.SetDefault("static_path", "./web")
	v.SetDefault("read_limit", 65536)
	v.SetDefault("ping_period", "54s")
	v.SetDefault("write_wait", "10s")
	v.SetDefault("secret", "skiblo-dev-secret")
	v.SetDefault("allowed_origins", []string{"http://localhost:5173", "http://localhost:8080"})
	v.SetDefault("words_file", "")
	v.SetDefault("rng_seed", 0)
	v.SetDefault("chat_rate", 2.0)
	v.SetDefault("chat_burst", 5)
	v.SetDefault("send_buffer", 256)
	v.SetDefault("max_rooms", 1000)
	v.SetDefault("tick_interval", "1s")
	v.SetDefault("idle_timeout", "10m")
	v.SetDefault("log_level", "info")

	if err := v.ReadInConfig(); err != nil {
		log.Warn().Str("module", "config").Str("file", fileName).Msg("config file not found, using defaults")
	} else {
		log.Info().Str("module", "config").Str("file", fileName).Msg("loaded config")
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects settings the server cannot run with.
func (c *Config) Validate() error {
	switch {
	case c.Port <= 0 || c.Port > 65535:
		return fmt.Errorf("invalid port %d", c.Port)
	case c.TickInterval <= 0:
		return fmt.Errorf("tick_interval must be positive, got %s", c.TickInterval)
	case c.IdleTimeout < 0:
		return fmt.Errorf("idle_timeout must not be negative, got %s", c.IdleTimeout)
	case c.ChatRate <= 0 || c.ChatBurst <= 0:
		return fmt.Errorf("chat_rate and chat_burst must be positive")
	case c.Secret == "":
		return fmt.Errorf("secret must not be empty")
	}
	return nil
}

// Addr is the listen address.
func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}
