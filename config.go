package main

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v2"

	"doorctl/door"
	"doorctl/eventpipe"
	"doorctl/hal"
	"doorctl/indicator"
	"doorctl/mqtt"
	"doorctl/remote"
)

// Config is the main configuration structure for doorctl.
type Config struct {
	// GPIO backend
	GPIO hal.Config `yaml:"gpio"`

	// Door opener configuration
	Door door.Config `yaml:"door"`

	// Indicator configuration
	Indicator indicator.Config `yaml:"indicator"`

	// MQTT connection settings
	MQTT mqtt.Config `yaml:"mqtt"`

	// Remote-control inputs
	Remote remote.Config `yaml:"remote"`

	// Named pipe command input
	EventPipe eventpipe.Config `yaml:"event_pipe"`

	// General settings
	ClientID string `yaml:"client_id"`
	QueueLen int    `yaml:"queue_len"` // pending commands accepted while a move runs
}

// LoadConfig reads and validates the config file at path.
func LoadConfig(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open config: %w", err)
	}
	defer f.Close()

	var cfg Config
	if err := yaml.NewDecoder(f).Decode(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	if cfg.ClientID == "" {
		return nil, errors.New("client_id missing in config file")
	}
	if cfg.GPIO.Type == "" {
		cfg.GPIO.Type = "vattu"
	}
	if cfg.Door.Type == "" {
		cfg.Door.Type = "actuator"
	}
	if cfg.Door.HoldMillis < 0 {
		return nil, fmt.Errorf("door.hold_millis must not be negative, got %d", cfg.Door.HoldMillis)
	}

	return &cfg, nil
}
