// Package actuator drives a two-direction door actuator through three
// digital lines: an open line, a close line and an enable line.
//
// A move selects the direction, asserts enable for a fixed hold duration and
// then releases it. Nothing reports whether the door actually reached the end
// of its travel.
package actuator

import (
	"errors"
	"fmt"
)

var (
	// ErrPinUnset is returned by Validate when a pin still holds Unset.
	ErrPinUnset = errors.New("pin not set")

	// ErrPinConflict is returned by Validate when two roles share a pin.
	ErrPinConflict = errors.New("pin assigned twice")

	// ErrNotSetup is returned by Validate before Setup has run.
	ErrNotSetup = errors.New("actuator not set up")
)

// Actuator holds the pin assignment and hold duration of one actuator.
// It is not safe for concurrent use.
type Actuator struct {
	drv        Driver
	openPin    int
	closePin   int
	enablePin  int
	holdMillis int
	setup      bool
}

// New returns an Actuator with every pin Unset and a zero hold duration.
func New(drv Driver) *Actuator {
	return &Actuator{
		drv:       drv,
		openPin:   Unset,
		closePin:  Unset,
		enablePin: Unset,
	}
}

// SetOpenPin sets the pin which selects the open direction.
func (a *Actuator) SetOpenPin(pin int) {
	a.openPin = pin
}

// OpenPin returns the pin which selects the open direction.
func (a *Actuator) OpenPin() int {
	return a.openPin
}

// SetClosePin sets the pin which selects the close direction.
func (a *Actuator) SetClosePin(pin int) {
	a.closePin = pin
}

// ClosePin returns the pin which selects the close direction.
func (a *Actuator) ClosePin() int {
	return a.closePin
}

// SetEnablePin sets the pin which powers the actuator.
func (a *Actuator) SetEnablePin(pin int) {
	a.enablePin = pin
}

// EnablePin returns the pin which powers the actuator.
func (a *Actuator) EnablePin() int {
	return a.enablePin
}

// HoldMillis returns the time enable stays asserted during a move.
func (a *Actuator) HoldMillis() int {
	return a.holdMillis
}

// Setup configures all three pins as outputs driven low and stores the hold
// duration used by Open and Close.
func (a *Actuator) Setup(holdMillis int) {
	for _, pin := range a.pins() {
		a.drv.PinMode(pin, Output)
		a.drv.DigitalWrite(pin, Low)
	}
	a.holdMillis = holdMillis
	a.setup = true
}

// Open drives the actuator in the open direction for the hold duration.
// It blocks until enable is released.
func (a *Actuator) Open() {
	a.move(a.openPin, a.closePin)
}

// Close drives the actuator in the close direction for the hold duration.
// It blocks until enable is released.
func (a *Actuator) Close() {
	a.move(a.closePin, a.openPin)
}

// move deselects off before enable goes high so both direction lines are
// never high together.
func (a *Actuator) move(on, off int) {
	a.drv.DigitalWrite(on, High)
	a.drv.DigitalWrite(off, Low)

	a.drv.DigitalWrite(a.enablePin, High)
	a.drv.Delay(a.holdMillis)
	a.drv.DigitalWrite(a.enablePin, Low)
}

// Validate reports whether the actuator is ready to move: every pin set,
// no pin shared between roles, and Setup already run.
// Open and Close never call it.
func (a *Actuator) Validate() error {
	roles := []struct {
		name string
		pin  int
	}{
		{"open", a.openPin},
		{"close", a.closePin},
		{"enable", a.enablePin},
	}

	seen := make(map[int]string, len(roles))
	for _, r := range roles {
		if r.pin == Unset {
			return fmt.Errorf("%s %w", r.name, ErrPinUnset)
		}
		if other, ok := seen[r.pin]; ok {
			return fmt.Errorf("%s and %s: %w", other, r.name, ErrPinConflict)
		}
		seen[r.pin] = r.name
	}

	if !a.setup {
		return ErrNotSetup
	}
	return nil
}

func (a *Actuator) pins() []int {
	return []int{a.openPin, a.closePin, a.enablePin}
}
