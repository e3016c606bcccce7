// Package actuatortest provides a recording actuator.Driver for tests.
package actuatortest

import (
	"fmt"
	"sync"

	"doorctl/actuator"
)

// Op names a Driver call.
type Op string

const (
	OpPinMode Op = "pinMode"
	OpWrite   Op = "write"
	OpDelay   Op = "delay"
)

// Call is one recorded Driver call. Value holds the mode, the level
// (0 or 1) or the delay in milliseconds, depending on Op.
type Call struct {
	Op    Op
	Pin   int
	Value int
}

func (c Call) String() string {
	switch c.Op {
	case OpDelay:
		return fmt.Sprintf("delay(%d)", c.Value)
	case OpPinMode:
		return fmt.Sprintf("pinMode(%d,%s)", c.Pin, actuator.Mode(c.Value))
	default:
		return fmt.Sprintf("write(%d,%s)", c.Pin, actuator.Level(c.Value == 1))
	}
}

// PinMode returns the Call recorded for Driver.PinMode.
func PinMode(pin int, mode actuator.Mode) Call {
	return Call{Op: OpPinMode, Pin: pin, Value: int(mode)}
}

// Write returns the Call recorded for Driver.DigitalWrite.
func Write(pin int, level actuator.Level) Call {
	v := 0
	if level {
		v = 1
	}
	return Call{Op: OpWrite, Pin: pin, Value: v}
}

// Delay returns the Call recorded for Driver.Delay.
func Delay(ms int) Call {
	return Call{Op: OpDelay, Value: ms}
}

// Recorder implements actuator.Driver by recording calls. Delay returns
// immediately.
type Recorder struct {
	mu    sync.Mutex
	calls []Call

	// OnDelay, when set, runs inside Delay. Tests use it to observe
	// the line levels while a move is in progress.
	OnDelay func(ms int)
}

// PinMode implements actuator.Driver.
func (r *Recorder) PinMode(pin int, mode actuator.Mode) {
	r.record(PinMode(pin, mode))
}

// DigitalWrite implements actuator.Driver.
func (r *Recorder) DigitalWrite(pin int, level actuator.Level) {
	r.record(Write(pin, level))
}

// Delay implements actuator.Driver.
func (r *Recorder) Delay(ms int) {
	r.record(Delay(ms))
	if r.OnDelay != nil {
		r.OnDelay(ms)
	}
}

// Calls returns a copy of the calls recorded so far.
func (r *Recorder) Calls() []Call {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Call(nil), r.calls...)
}

// Level returns the last level written to pin and whether any was written.
func (r *Recorder) Level(pin int) (actuator.Level, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := len(r.calls) - 1; i >= 0; i-- {
		c := r.calls[i]
		if c.Op == OpWrite && c.Pin == pin {
			return c.Value == 1, true
		}
	}
	return actuator.Low, false
}

// Reset forgets all recorded calls.
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = nil
}

func (r *Recorder) record(c Call) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, c)
}
