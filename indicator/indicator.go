package indicator

import "doorctl/actuator"

// Indicator is the interface for status indicator implementations (LEDs, neopixels).
type Indicator interface {
	// Idle sets the indicator to idle/ready state.
	Idle()

	// Opening sets the indicator to door opening state.
	Opening()

	// Closing sets the indicator to door closing state.
	Closing()

	// Fault shows that the last move reported an error.
	Fault()

	// ConnectionLost sets the indicator to connection lost state.
	ConnectionLost()

	// Shutdown sets the indicator to shutdown state.
	Shutdown()

	// Release releases any hardware resources.
	Release() error
}

// Config holds configuration for indicator implementations.
type Config struct {
	// GPIO LED pins (nil = not configured)
	GreenPin  *int `yaml:"green_pin"`
	YellowPin *int `yaml:"yellow_pin"`
	RedPin    *int `yaml:"red_pin"`

	// Neopixel pipe path (empty = not configured)
	NeopixelPipe string `yaml:"neopixel_pipe"`
}

// New creates an Indicator based on the provided configuration.
// LEDs are driven through drv. Returns a Multi indicator if both GPIO and
// Neopixel are configured.
func New(cfg Config, drv actuator.Driver) (Indicator, error) {
	var indicators []Indicator

	if cfg.GreenPin != nil || cfg.YellowPin != nil || cfg.RedPin != nil {
		indicators = append(indicators, NewGPIO(drv, cfg.GreenPin, cfg.YellowPin, cfg.RedPin))
	}

	if cfg.NeopixelPipe != "" {
		neo, err := NewNeopixel(cfg.NeopixelPipe)
		if err != nil {
			return nil, err
		}
		indicators = append(indicators, neo)
	}

	switch len(indicators) {
	case 0:
		return &Noop{}, nil
	case 1:
		return indicators[0], nil
	default:
		return &Multi{indicators: indicators}, nil
	}
}
