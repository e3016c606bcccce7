package door

import "doorctl/actuator"

// Latch implements DoorOpener with a single output line, such as an
// electric strike.
type Latch struct {
	drv      actuator.Driver
	pin      int
	openHigh bool // true = set pin high to open, false = set pin low to open
}

// NewLatch creates a new latch on pin.
func NewLatch(drv actuator.Driver, pin int, openHigh bool) *Latch {
	drv.PinMode(pin, actuator.Output)

	l := &Latch{
		drv:      drv,
		pin:      pin,
		openHigh: openHigh,
	}

	// Start in closed state
	l.Close()
	return l
}

// Open implements DoorOpener.Open.
func (l *Latch) Open() error {
	l.drv.DigitalWrite(l.pin, actuator.Level(l.openHigh))
	return nil
}

// Close implements DoorOpener.Close.
func (l *Latch) Close() error {
	l.drv.DigitalWrite(l.pin, actuator.Level(!l.openHigh))
	return nil
}

// Release implements DoorOpener.Release. The latch is left closed.
func (l *Latch) Release() error {
	return l.Close()
}
