// Package dispatch serializes door commands from every input source onto a
// single goroutine, so the door is only ever driven by one move at a time.
package dispatch

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"

	"doorctl/door"
)

var (
	// ErrBusy is returned by Submit when the queue is full.
	ErrBusy = errors.New("dispatcher busy")

	// ErrStopped is returned by Submit once Run has returned.
	ErrStopped = errors.New("dispatcher stopped")
)

// Action is a door move.
type Action int

const (
	Open Action = iota + 1
	Close
)

func (a Action) String() string {
	switch a {
	case Open:
		return "open"
	case Close:
		return "close"
	default:
		return fmt.Sprintf("action(%d)", int(a))
	}
}

// ParseAction parses "open" or "close", ignoring case and surrounding space.
func ParseAction(s string) (Action, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "open":
		return Open, nil
	case "close":
		return Close, nil
	default:
		return 0, fmt.Errorf("unknown command: %q", s)
	}
}

// Command is a move request and where it came from.
type Command struct {
	Action Action
	Source string // "mqtt", "pipe", "button", "serial", "cli"
}

// Hooks holds callbacks run on the dispatcher goroutine around each move.
type Hooks struct {
	OnStart func(Command)
	OnDone  func(Command, error)
}

// Dispatcher runs queued commands against a DoorOpener one at a time.
type Dispatcher struct {
	door  door.DoorOpener
	queue chan Command
	hooks Hooks

	mu      sync.Mutex
	stopped bool
	done    chan struct{}
}

// DefaultQueueLen is used when New is given a non-positive length.
const DefaultQueueLen = 4

// New creates a Dispatcher. Nothing runs until Run is called.
func New(d door.DoorOpener, queueLen int, hooks Hooks) *Dispatcher {
	if queueLen <= 0 {
		queueLen = DefaultQueueLen
	}
	return &Dispatcher{
		door:  d,
		queue: make(chan Command, queueLen),
		hooks: hooks,
		done:  make(chan struct{}),
	}
}

// Submit queues cmd without blocking.
func (d *Dispatcher) Submit(cmd Command) error {
	if cmd.Action != Open && cmd.Action != Close {
		return fmt.Errorf("submit: invalid %v", cmd.Action)
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	if d.stopped {
		return ErrStopped
	}

	select {
	case d.queue <- cmd:
		return nil
	default:
		return ErrBusy
	}
}

// Run executes queued commands until ctx is cancelled. A move already in
// progress runs to completion. Commands still queued are dropped.
// Run must be called at most once.
func (d *Dispatcher) Run(ctx context.Context) {
	defer func() {
		d.mu.Lock()
		d.stopped = true
		d.mu.Unlock()
		close(d.done)
	}()

	for {
		select {
		case <-ctx.Done():
			return
		case cmd := <-d.queue:
			d.execute(cmd)
		}
	}
}

// Done is closed once Run has returned, i.e. after the last move has
// released the door.
func (d *Dispatcher) Done() <-chan struct{} {
	return d.done
}

func (d *Dispatcher) execute(cmd Command) {
	if d.hooks.OnStart != nil {
		d.hooks.OnStart(cmd)
	}

	log.Printf("Door %s (from %s)", cmd.Action, cmd.Source)
	var err error
	switch cmd.Action {
	case Open:
		err = d.door.Open()
	case Close:
		err = d.door.Close()
	}
	if err != nil {
		log.Printf("Door %s: %v", cmd.Action, err)
	}

	if d.hooks.OnDone != nil {
		d.hooks.OnDone(cmd, err)
	}
}
