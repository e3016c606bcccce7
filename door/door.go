package door

import (
	"fmt"

	"doorctl/actuator"
)

// DoorOpener is the interface for all door control implementations.
type DoorOpener interface {
	// Open drives the door open.
	Open() error

	// Close drives the door closed.
	Close() error

	// Release releases any hardware resources.
	Release() error
}

// Config holds configuration for door opener implementations.
type Config struct {
	Type string `yaml:"type"` // "actuator", "latch_high", "latch_low", "none"

	// Actuator lines. Missing entries stay actuator.Unset.
	OpenPin    *int `yaml:"open_pin"`
	ClosePin   *int `yaml:"close_pin"`
	EnablePin  *int `yaml:"enable_pin"`
	HoldMillis int  `yaml:"hold_millis"` // how long enable stays high per move

	// Strict rejects an actuator with unset or shared pins at startup.
	Strict bool `yaml:"strict"`

	// Latch line.
	Pin *int `yaml:"pin"`
}

// New creates a DoorOpener based on the provided configuration.
// drv is not released by the opener.
func New(cfg Config, drv actuator.Driver) (DoorOpener, error) {
	switch cfg.Type {
	case "actuator":
		return NewActuator(drv, cfg)
	case "latch_high", "openhigh":
		if cfg.Pin == nil {
			return nil, fmt.Errorf("door type %s: pin missing", cfg.Type)
		}
		return NewLatch(drv, *cfg.Pin, true), nil
	case "latch_low", "openlow":
		if cfg.Pin == nil {
			return nil, fmt.Errorf("door type %s: pin missing", cfg.Type)
		}
		return NewLatch(drv, *cfg.Pin, false), nil
	case "", "none":
		return &Noop{}, nil
	default:
		return nil, fmt.Errorf("unknown door type %q", cfg.Type)
	}
}
