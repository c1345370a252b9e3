package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/joeshaw/envdecode"
	"gopkg.in/yaml.v3"
)

// PathVar names the environment variable holding the optional YAML config file
const PathVar = "KLONDIKE_CONFIG"

var ErrInvalidConfig = errors.New("invalid config")

type Config struct {
	Port           int      `yaml:"port" env:"KLONDIKE_PORT"`
	StorePath      string   `yaml:"store_path" env:"KLONDIKE_STORE_PATH"`
	AllowedOrigins []string `yaml:"allowed_origins" env:"KLONDIKE_ALLOWED_ORIGINS"`
	AutoFlip       bool     `yaml:"auto_flip" env:"KLONDIKE_AUTO_FLIP"`
	LogRequests    bool     `yaml:"log_requests" env:"KLONDIKE_LOG_REQUESTS"`
}

func Default() Config {
	return Config{
		Port:        8000,
		StorePath:   "solitaire_games.json",
		AutoFlip:    true,
		LogRequests: true,
	}
}

// Load starts from Default, applies the YAML file at path (or at $KLONDIKE_CONFIG
// when path is empty) and then any KLONDIKE_* environment variables.
func Load(path string) (Config, error) {
	cfg := Default()

	if path == "" {
		path = os.Getenv(PathVar)
	}
	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("reading config: %w", err)
		}
		if err := yaml.Unmarshal(raw, &cfg); err != nil {
			return Config{}, fmt.Errorf("%w: %s: %v", ErrInvalidConfig, path, err)
		}
	}

	if err := envdecode.Decode(&cfg); err != nil && !errors.Is(err, envdecode.ErrNoTargetFieldsAreSet) {
		return Config{}, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("%w: port %d out of range", ErrInvalidConfig, c.Port)
	}
	if c.StorePath == "" {
		return fmt.Errorf("%w: missing store path", ErrInvalidConfig)
	}
	return nil
}

// Addr is the listen address for the server
func (c Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}
