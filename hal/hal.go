// Package hal provides actuator.Driver backends for the GPIO libraries
// doorctl can run on.
package hal

import (
	"errors"
	"fmt"
	"time"

	"doorctl/actuator"
)

var (
	// ErrNotSupported is returned for backends not built for this platform.
	ErrNotSupported = errors.New("gpio backend not supported on this platform")

	// ErrUnknownType is returned for an unrecognised backend type.
	ErrUnknownType = errors.New("unknown gpio backend")
)

// Backend is an actuator.Driver holding hardware resources.
type Backend interface {
	actuator.Driver

	// Release releases any hardware resources.
	Release() error
}

// Config holds configuration for the GPIO backend.
type Config struct {
	Type     string `yaml:"type"`     // "vattu", "gpiocdev", "gpiomem", "rpio", "periph", "none"
	Chip     string `yaml:"chip"`     // gpiocdev only, e.g. "gpiochip0"
	Consumer string `yaml:"consumer"` // gpiocdev only, label shown by gpioinfo
}

// New creates a Backend based on the provided configuration.
func New(cfg Config) (Backend, error) {
	switch cfg.Type {
	case "", "vattu":
		return NewVattu()
	case "gpiocdev":
		return NewGPIOCdev(cfg.Chip, cfg.Consumer)
	case "gpiomem":
		return NewGPIOMem()
	case "rpio":
		return NewRPIO()
	case "periph":
		return NewPeriph()
	case "none":
		return &None{}, nil
	default:
		return nil, fmt.Errorf("%w %q", ErrUnknownType, cfg.Type)
	}
}

// sleep implements Driver.Delay for every hardware backend.
func sleep(ms int) {
	if ms <= 0 {
		return
	}
	time.Sleep(time.Duration(ms) * time.Millisecond)
}

// maxBCMPin is the highest BCM2835 GPIO number.
const maxBCMPin = 53

func bcmPin(pin int) (uint8, bool) {
	if pin < 0 || pin > maxBCMPin {
		return 0, false
	}
	return uint8(pin), true
}
