package hal

import (
	"fmt"
	"log"
	"strconv"
	"sync"

	"periph.io/x/periph/conn/gpio"
	"periph.io/x/periph/conn/gpio/gpioreg"
	"periph.io/x/periph/host"

	"doorctl/actuator"
)

// Periph implements Backend with periph.io. Pins are looked up by their
// number in the gpioreg registry.
type Periph struct {
	mu   sync.Mutex
	pins map[int]gpio.PinIO
}

// NewPeriph loads the periph host drivers.
func NewPeriph() (*Periph, error) {
	if _, err := host.Init(); err != nil {
		return nil, fmt.Errorf("init periph host: %w", err)
	}
	return &Periph{pins: make(map[int]gpio.PinIO)}, nil
}

func (p *Periph) lookup(n int) gpio.PinIO {
	p.mu.Lock()
	defer p.mu.Unlock()
	if pin, ok := p.pins[n]; ok {
		return pin
	}
	pin := gpioreg.ByName(strconv.Itoa(n))
	if pin == nil {
		log.Printf("gpio: no pin %d in registry", n)
		return nil
	}
	p.pins[n] = pin
	return pin
}

// PinMode implements actuator.Driver.PinMode. Output pins start low.
func (p *Periph) PinMode(pin int, mode actuator.Mode) {
	io := p.lookup(pin)
	if io == nil {
		return
	}
	var err error
	if mode == actuator.Input {
		err = io.In(gpio.PullNoChange, gpio.NoEdge)
	} else {
		err = io.Out(gpio.Low)
	}
	if err != nil {
		log.Printf("gpio: pinMode(%d, %s): %v", pin, mode, err)
	}
}

// DigitalWrite implements actuator.Driver.DigitalWrite.
func (p *Periph) DigitalWrite(pin int, level actuator.Level) {
	io := p.lookup(pin)
	if io == nil {
		return
	}
	if err := io.Out(gpio.Level(level)); err != nil {
		log.Printf("gpio: write(%d, %s): %v", pin, level, err)
	}
}

// Delay implements actuator.Driver.Delay.
func (p *Periph) Delay(ms int) {
	sleep(ms)
}

// Release implements Backend.Release.
func (p *Periph) Release() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	var lastErr error
	for n, pin := range p.pins {
		if err := pin.Halt(); err != nil {
			lastErr = err
		}
		delete(p.pins, n)
	}
	return lastErr
}
