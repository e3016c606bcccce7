//go:build linux

package hal

import (
	"fmt"
	"log"

	rpio "github.com/stianeikeland/go-rpio"

	"doorctl/actuator"
)

// RPIO implements Backend with go-rpio.
type RPIO struct{}

// NewRPIO maps the GPIO registers.
func NewRPIO() (*RPIO, error) {
	if err := rpio.Open(); err != nil {
		return nil, fmt.Errorf("open rpio: %w", err)
	}
	return &RPIO{}, nil
}

// PinMode implements actuator.Driver.PinMode.
func (r *RPIO) PinMode(pin int, mode actuator.Mode) {
	p, ok := bcmPin(pin)
	if !ok {
		log.Printf("gpio: pinMode on invalid pin %d ignored", pin)
		return
	}
	if mode == actuator.Input {
		rpio.Pin(p).Input()
		return
	}
	rpio.Pin(p).Output()
}

// DigitalWrite implements actuator.Driver.DigitalWrite.
func (r *RPIO) DigitalWrite(pin int, level actuator.Level) {
	p, ok := bcmPin(pin)
	if !ok {
		log.Printf("gpio: write on invalid pin %d ignored", pin)
		return
	}
	if level == actuator.High {
		rpio.Pin(p).High()
	} else {
		rpio.Pin(p).Low()
	}
}

// Delay implements actuator.Driver.Delay.
func (r *RPIO) Delay(ms int) {
	sleep(ms)
}

// Release implements Backend.Release.
func (r *RPIO) Release() error {
	return rpio.Close()
}
