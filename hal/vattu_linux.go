//go:build linux

package hal

import (
	"fmt"
	"log"

	"github.com/hjkoskel/govattu"

	"doorctl/actuator"
)

// Vattu implements Backend with direct BCM2835 register access.
type Vattu struct {
	hw govattu.Vattu
}

// NewVattu maps the GPIO registers.
func NewVattu() (*Vattu, error) {
	hw, err := govattu.Open()
	if err != nil {
		return nil, fmt.Errorf("open gpio: %w", err)
	}
	return &Vattu{hw: hw}, nil
}

// PinMode implements actuator.Driver.PinMode.
func (v *Vattu) PinMode(pin int, mode actuator.Mode) {
	p, ok := bcmPin(pin)
	if !ok {
		log.Printf("gpio: pinMode on invalid pin %d ignored", pin)
		return
	}
	if mode == actuator.Input {
		log.Printf("gpio: input mode not supported by vattu backend, pin %d", pin)
		return
	}
	v.hw.PinMode(p, govattu.ALToutput)
}

// DigitalWrite implements actuator.Driver.DigitalWrite.
func (v *Vattu) DigitalWrite(pin int, level actuator.Level) {
	p, ok := bcmPin(pin)
	if !ok {
		log.Printf("gpio: write on invalid pin %d ignored", pin)
		return
	}
	if level == actuator.High {
		v.hw.PinSet(p)
	} else {
		v.hw.PinClear(p)
	}
}

// Delay implements actuator.Driver.Delay.
func (v *Vattu) Delay(ms int) {
	sleep(ms)
}

// Release implements Backend.Release.
func (v *Vattu) Release() error {
	return v.hw.Close()
}
