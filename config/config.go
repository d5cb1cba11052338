package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config represents the complete raffle service configuration
type Config struct {
	Database DatabaseConfig `json:"database" yaml:"database"`
	Raffle   RaffleConfig   `json:"raffle" yaml:"raffle"`
	Web      WebConfig      `json:"web" yaml:"web"`
}

// DatabaseConfig contains persistence parameters
type DatabaseConfig struct {
	Path string `json:"path" yaml:"path"`
}

// RaffleConfig contains drawing and leaderboard parameters
type RaffleConfig struct {
	GuildID         int64  `json:"guild_id" yaml:"guild_id"`
	LeaderboardSize int    `json:"leaderboard_size" yaml:"leaderboard_size"`
	MaxAmount       int64  `json:"max_amount" yaml:"max_amount"`
	RevealSteps     int    `json:"reveal_steps" yaml:"reveal_steps"`
	RevealDelay     string `json:"reveal_delay" yaml:"reveal_delay"` // e.g., "600ms", "1s"
}

// WebConfig contains the recovery web server parameters
type WebConfig struct {
	Addr string `json:"addr,omitempty" yaml:"addr,omitempty"`
}

// ParseRevealDelay converts the reveal delay string to time.Duration
func (r RaffleConfig) ParseRevealDelay() (time.Duration, error) {
	if r.RevealDelay == "" {
		return 0, nil
	}
	return time.ParseDuration(r.RevealDelay)
}

// LoadFromFile loads configuration from a file (JSON or YAML based on content)
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	cfg := &Config{}

	// Try YAML first, fall back to JSON
	err = yaml.Unmarshal(data, cfg)
	if err != nil {
		err = json.Unmarshal(data, cfg)
		if err != nil {
			return nil, fmt.Errorf("parse config (tried YAML and JSON): %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// SaveToFile saves configuration to a file (JSON or YAML based on extension)
func (c *Config) SaveToFile(path string) error {
	var data []byte
	var err error

	if (len(path) > 5 && path[len(path)-5:] == ".yaml") || (len(path) > 4 && path[len(path)-4:] == ".yml") {
		data, err = yaml.Marshal(c)
	} else {
		data, err = json.MarshalIndent(c, "", "  ")
	}

	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}

	return nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Database.Path == "" {
		return fmt.Errorf("database.path is required")
	}
	if c.Raffle.LeaderboardSize < 1 {
		return fmt.Errorf("raffle.leaderboard_size must be at least 1")
	}
	if c.Raffle.MaxAmount < 1 {
		return fmt.Errorf("raffle.max_amount must be at least 1")
	}
	if c.Raffle.RevealSteps < 0 {
		return fmt.Errorf("raffle.reveal_steps must not be negative")
	}
	if _, err := c.Raffle.ParseRevealDelay(); err != nil {
		return fmt.Errorf("raffle.reveal_delay: %w", err)
	}
	return nil
}

// Default returns a configuration with sensible defaults
func Default() *Config {
	return &Config{
		Database: DatabaseConfig{
			Path: "./raffle.db",
		},
		Raffle: RaffleConfig{
			LeaderboardSize: 5,
			MaxAmount:       1000,
			RevealSteps:     8,
			RevealDelay:     "600ms",
		},
		Web: WebConfig{
			Addr: ":10000",
		},
	}
}
