package indicator

import "doorctl/actuator"

// GPIO implements Indicator using discrete LED lines.
// Green is idle, yellow is moving, red is a fault.
type GPIO struct {
	drv  actuator.Driver
	pins map[string]int
}

// NewGPIO configures the given LED pins as outputs, all off.
// A nil pin is not used.
func NewGPIO(drv actuator.Driver, greenPin, yellowPin, redPin *int) *GPIO {
	g := &GPIO{drv: drv, pins: make(map[string]int, 3)}
	for name, pin := range map[string]*int{"green": greenPin, "yellow": yellowPin, "red": redPin} {
		if pin == nil {
			continue
		}
		g.pins[name] = *pin
		drv.PinMode(*pin, actuator.Output)
		drv.DigitalWrite(*pin, actuator.Low)
	}
	return g
}

// Idle implements Indicator.Idle.
func (g *GPIO) Idle() {
	g.show("green")
}

// Opening implements Indicator.Opening.
func (g *GPIO) Opening() {
	g.show("yellow")
}

// Closing implements Indicator.Closing.
func (g *GPIO) Closing() {
	g.show("yellow")
}

// Fault implements Indicator.Fault.
func (g *GPIO) Fault() {
	g.show("red")
}

// ConnectionLost implements Indicator.ConnectionLost.
func (g *GPIO) ConnectionLost() {
	g.show("yellow", "red")
}

// Shutdown implements Indicator.Shutdown.
func (g *GPIO) Shutdown() {
	g.show()
}

// Release implements Indicator.Release.
func (g *GPIO) Release() error {
	g.show()
	return nil
}

// show turns on exactly the named LEDs.
func (g *GPIO) show(on ...string) {
	for name, pin := range g.pins {
		level := actuator.Low
		for _, o := range on {
			if o == name {
				level = actuator.High
			}
		}
		g.drv.DigitalWrite(pin, level)
	}
}
