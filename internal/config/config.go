package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/pelletier/go-toml/v2"
)

// Duration is a time.Duration that reads from strings such as "30s" in
// both the TOML file and the environment.
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalText(text []byte) error {
	parsed, err := time.ParseDuration(string(text))
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", string(text), err)
	}
	d.Duration = parsed
	return nil
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

type ServerConfig struct {
	Port            string   `toml:"port" envconfig:"PORT"`
	ReadTimeout     Duration `toml:"read_timeout" envconfig:"READ_TIMEOUT"`
	WriteTimeout    Duration `toml:"write_timeout" envconfig:"WRITE_TIMEOUT"`
	ShutdownTimeout Duration `toml:"shutdown_timeout" envconfig:"SHUTDOWN_TIMEOUT"`
}

type PokeAPIConfig struct {
	BaseURL   string   `toml:"base_url" envconfig:"BASE_URL"`
	ListLimit int      `toml:"list_limit" envconfig:"LIST_LIMIT"`
	BatchSize int      `toml:"batch_size" envconfig:"BATCH_SIZE"`
	Timeout   Duration `toml:"timeout" envconfig:"TIMEOUT"`
}

type LLMConfig struct {
	Provider string `toml:"provider" envconfig:"PROVIDER"`
	Model    string `toml:"model" envconfig:"MODEL"`
	APIKey   string `toml:"api_key" envconfig:"API_KEY"`
	BaseURL  string `toml:"base_url" envconfig:"BASE_URL"`
}

type ChatConfig struct {
	SessionTTL Duration `toml:"session_ttl" envconfig:"SESSION_TTL"`
}

type RefreshConfig struct {
	Enabled  bool     `toml:"enabled" envconfig:"ENABLED"`
	Interval Duration `toml:"interval" envconfig:"INTERVAL"`
}

type LogConfig struct {
	Level  string `toml:"level" envconfig:"LEVEL"`
	Format string `toml:"format" envconfig:"FORMAT"`
}

type Config struct {
	Server  ServerConfig  `toml:"server" envconfig:"SERVER"`
	PokeAPI PokeAPIConfig `toml:"pokeapi" envconfig:"POKEAPI"`
	LLM     LLMConfig     `toml:"llm" envconfig:"LLM"`
	Chat    ChatConfig    `toml:"chat" envconfig:"CHAT"`
	Refresh RefreshConfig `toml:"refresh" envconfig:"REFRESH"`
	Log     LogConfig     `toml:"log" envconfig:"LOG"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port:            "8080",
			ReadTimeout:     Duration{10 * time.Second},
			WriteTimeout:    Duration{60 * time.Second},
			ShutdownTimeout: Duration{10 * time.Second},
		},
		PokeAPI: PokeAPIConfig{
			BaseURL:   "https://pokeapi.co/api/v2",
			ListLimit: 1025,
			BatchSize: 20,
			Timeout:   Duration{30 * time.Second},
		},
		LLM: LLMConfig{
			Provider: "gemini",
			Model:    "gemini-2.0-flash",
		},
		Chat: ChatConfig{
			SessionTTL: Duration{30 * time.Minute},
		},
		Refresh: RefreshConfig{
			Enabled:  true,
			Interval: Duration{5 * time.Second},
		},
		Log: LogConfig{
			Level:  "info",
			Format: "json",
		},
	}
}

// Load reads the TOML file at path on top of the defaults and then applies
// environment overrides. A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := toml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse TOML: %w", err)
		}
	case errors.Is(err, fs.ErrNotExist):
	default:
		return nil, fmt.Errorf("failed to read config file '%s': %w", path, err)
	}

	if err := envconfig.Process("", cfg); err != nil {
		return nil, fmt.Errorf("failed to process environment overrides: %w", err)
	}

	if cfg.LLM.APIKey == "" {
		cfg.LLM.APIKey = os.Getenv("GEMINI_API_KEY")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if c.PokeAPI.BaseURL == "" {
		return errors.New("config: pokeapi.base_url must be set")
	}
	if c.PokeAPI.ListLimit < 1 {
		return fmt.Errorf("config: pokeapi.list_limit must be positive, got %d", c.PokeAPI.ListLimit)
	}
	if c.PokeAPI.BatchSize < 1 {
		return fmt.Errorf("config: pokeapi.batch_size must be positive, got %d", c.PokeAPI.BatchSize)
	}
	if c.Refresh.Enabled && c.Refresh.Interval.Duration <= 0 {
		return errors.New("config: refresh.interval must be positive when refresh is enabled")
	}
	if c.Chat.SessionTTL.Duration <= 0 {
		return errors.New("config: chat.session_ttl must be positive")
	}
	return nil
}
