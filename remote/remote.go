// Package remote turns physical remote-control inputs into door commands.
package remote

import (
	"errors"

	"doorctl/dispatch"
)

// ErrNotSupported is returned when an input is configured on a platform
// that cannot serve it.
var ErrNotSupported = errors.New("remote input not supported on this platform")

// Submitter accepts door commands. *dispatch.Dispatcher implements it.
type Submitter interface {
	Submit(cmd dispatch.Command) error
}

// Config holds configuration for remote inputs.
type Config struct {
	Buttons  ButtonConfig   `yaml:"buttons"`
	Serial   SerialConfig   `yaml:"serial"`
	Keyboard KeyboardConfig `yaml:"keyboard"`
}

// ButtonConfig holds configuration for open/close push buttons.
// A nil pin disables that button; line 0 is a valid offset.
type ButtonConfig struct {
	Chip      string `yaml:"chip"`
	OpenPin   *int   `yaml:"open_pin"`
	ClosePin  *int   `yaml:"close_pin"`
	ActiveLow *bool  `yaml:"active_low"` // default true: buttons pull the line to ground
}

func (c ButtonConfig) enabled() bool {
	return c.OpenPin != nil || c.ClosePin != nil
}

func (c ButtonConfig) activeLow() bool {
	return c.ActiveLow == nil || *c.ActiveLow
}
