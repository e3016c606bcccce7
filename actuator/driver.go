package actuator

// Unset marks a pin that has not been assigned yet.
const Unset = -1

// Level is a logical line level.
type Level bool

const (
	Low  Level = false
	High Level = true
)

func (l Level) String() string {
	if l {
		return "HIGH"
	}
	return "LOW"
}

// Mode is a pin direction.
type Mode int

const (
	Output Mode = iota
	Input
)

func (m Mode) String() string {
	if m == Input {
		return "INPUT"
	}
	return "OUTPUT"
}

// Driver is the digital I/O layer an Actuator drives.
//
// Calls are synchronous and report nothing back; a backend that hits an
// error logs it. Pins are passed through unchecked, including Unset.
type Driver interface {
	// PinMode sets the direction of pin.
	PinMode(pin int, mode Mode)

	// DigitalWrite drives pin to level.
	DigitalWrite(pin int, level Level)

	// Delay blocks the caller for ms milliseconds.
	Delay(ms int)
}
