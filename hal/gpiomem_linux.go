//go:build linux

package hal

import (
	"fmt"
	"log"
	"sync"

	"github.com/warthog618/gpio"

	"doorctl/actuator"
)

// GPIOMem implements Backend through /dev/gpiomem.
type GPIOMem struct {
	mu   sync.Mutex
	pins map[int]*gpio.Pin
}

// NewGPIOMem maps /dev/gpiomem.
func NewGPIOMem() (*GPIOMem, error) {
	if err := gpio.Open(); err != nil {
		return nil, fmt.Errorf("open gpiomem: %w", err)
	}
	return &GPIOMem{pins: make(map[int]*gpio.Pin)}, nil
}

func (g *GPIOMem) pin(n int) *gpio.Pin {
	g.mu.Lock()
	defer g.mu.Unlock()
	if p, ok := g.pins[n]; ok {
		return p
	}
	p := gpio.NewPin(n)
	g.pins[n] = p
	return p
}

// PinMode implements actuator.Driver.PinMode.
func (g *GPIOMem) PinMode(pin int, mode actuator.Mode) {
	if _, ok := bcmPin(pin); !ok {
		log.Printf("gpio: pinMode on invalid pin %d ignored", pin)
		return
	}
	if mode == actuator.Input {
		g.pin(pin).Input()
		return
	}
	g.pin(pin).Output()
}

// DigitalWrite implements actuator.Driver.DigitalWrite.
func (g *GPIOMem) DigitalWrite(pin int, level actuator.Level) {
	if _, ok := bcmPin(pin); !ok {
		log.Printf("gpio: write on invalid pin %d ignored", pin)
		return
	}
	g.pin(pin).Write(gpio.Level(level))
}

// Delay implements actuator.Driver.Delay.
func (g *GPIOMem) Delay(ms int) {
	sleep(ms)
}

// Release implements Backend.Release.
func (g *GPIOMem) Release() error {
	return gpio.Close()
}
