package hal

import (
	"log"

	"doorctl/actuator"
)

// None implements Backend without hardware. Every call is logged.
// Used when no GPIO is available, e.g. on a development machine.
type None struct{}

// PinMode implements actuator.Driver.PinMode.
func (n *None) PinMode(pin int, mode actuator.Mode) {
	log.Printf("gpio: pinMode(%d, %s)", pin, mode)
}

// DigitalWrite implements actuator.Driver.DigitalWrite.
func (n *None) DigitalWrite(pin int, level actuator.Level) {
	log.Printf("gpio: write(%d, %s)", pin, level)
}

// Delay implements actuator.Driver.Delay.
func (n *None) Delay(ms int) {
	sleep(ms)
}

// Release implements Backend.Release.
func (n *None) Release() error {
	return nil
}
