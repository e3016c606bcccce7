//go:build linux

package hal

import (
	"log"
	"sync"

	"github.com/warthog618/go-gpiocdev"

	"doorctl/actuator"
)

// GPIOCdev implements Backend on the Linux GPIO character device.
// A line is requested by PinMode and held until Release.
type GPIOCdev struct {
	chip     string
	consumer string

	mu    sync.Mutex
	lines map[int]*gpiocdev.Line
	modes map[int]actuator.Mode
}

// NewGPIOCdev creates a backend for the given chip.
func NewGPIOCdev(chip, consumer string) (*GPIOCdev, error) {
	if chip == "" {
		chip = "gpiochip0"
	}
	if consumer == "" {
		consumer = "doorctl"
	}
	return &GPIOCdev{
		chip:     chip,
		consumer: consumer,
		lines:    make(map[int]*gpiocdev.Line),
		modes:    make(map[int]actuator.Mode),
	}, nil
}

// PinMode implements actuator.Driver.PinMode. Output lines start low.
func (g *GPIOCdev) PinMode(pin int, mode actuator.Mode) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if l, ok := g.lines[pin]; ok {
		l.Close()
		delete(g.lines, pin)
		delete(g.modes, pin)
	}

	var l *gpiocdev.Line
	var err error
	if mode == actuator.Input {
		l, err = gpiocdev.RequestLine(g.chip, pin, gpiocdev.AsInput, gpiocdev.WithConsumer(g.consumer))
	} else {
		l, err = gpiocdev.RequestLine(g.chip, pin, gpiocdev.AsOutput(0), gpiocdev.WithConsumer(g.consumer))
	}
	if err != nil {
		log.Printf("gpio: request %s:%d: %v", g.chip, pin, err)
		return
	}
	g.lines[pin] = l
	g.modes[pin] = mode
}

// DigitalWrite implements actuator.Driver.DigitalWrite.
func (g *GPIOCdev) DigitalWrite(pin int, level actuator.Level) {
	g.mu.Lock()
	defer g.mu.Unlock()

	v := 0
	if level == actuator.High {
		v = 1
	}

	l, ok := g.lines[pin]
	if !ok || g.modes[pin] != actuator.Output {
		log.Printf("gpio: write to %s:%d which is not an output", g.chip, pin)
		return
	}
	if err := l.SetValue(v); err != nil {
		log.Printf("gpio: set %s:%d: %v", g.chip, pin, err)
	}
}

// Delay implements actuator.Driver.Delay.
func (g *GPIOCdev) Delay(ms int) {
	sleep(ms)
}

// Release implements Backend.Release.
func (g *GPIOCdev) Release() error {
	g.mu.Lock()
	defer g.mu.Unlock()

	var lastErr error
	for pin, l := range g.lines {
		if err := l.Close(); err != nil {
			lastErr = err
		}
		delete(g.lines, pin)
		delete(g.modes, pin)
	}
	return lastErr
}
