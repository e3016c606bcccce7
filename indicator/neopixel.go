package indicator

import (
	"fmt"
	"log"
	"os"
	"sync"
)

// Neopixel command strings for the external neopixel tool.
const (
	neoConnectionLost = "@2 !150000 001010"
	neoNormalIdle     = "@3 !150000 400000"
	neoMoving         = "@1 !50000 8000"
	neoFault          = "@2 !10000 ff"
	neoTerminated     = "@0 010101"
)

// Neopixel implements Indicator using an external neopixel tool via named pipe.
type Neopixel struct {
	mu         sync.Mutex
	pipe       *os.File
	idleString string
}

// NewNeopixel opens the tool's pipe.
func NewNeopixel(pipePath string) (*Neopixel, error) {
	f, err := os.OpenFile(pipePath, os.O_RDWR, 0644)
	if err != nil {
		return nil, fmt.Errorf("open neopixel pipe %s: %w", pipePath, err)
	}

	return &Neopixel{
		pipe:       f,
		idleString: neoConnectionLost, // until SetConnected
	}, nil
}

// Idle implements Indicator.Idle.
func (n *Neopixel) Idle() {
	n.mu.Lock()
	s := n.idleString
	n.mu.Unlock()
	n.write(s)
}

// Opening implements Indicator.Opening.
func (n *Neopixel) Opening() {
	n.write(neoMoving)
}

// Closing implements Indicator.Closing.
func (n *Neopixel) Closing() {
	n.write(neoMoving)
}

// Fault implements Indicator.Fault.
func (n *Neopixel) Fault() {
	n.write(neoFault)
}

// ConnectionLost implements Indicator.ConnectionLost.
func (n *Neopixel) ConnectionLost() {
	n.mu.Lock()
	n.idleString = neoConnectionLost
	n.mu.Unlock()
	n.write(neoConnectionLost)
}

// Shutdown implements Indicator.Shutdown.
func (n *Neopixel) Shutdown() {
	n.write(neoTerminated)
}

// Release implements Indicator.Release.
func (n *Neopixel) Release() error {
	if n.pipe == nil {
		return nil
	}
	return n.pipe.Close()
}

// SetConnected makes Idle show the normal idle pattern.
func (n *Neopixel) SetConnected() {
	n.mu.Lock()
	n.idleString = neoNormalIdle
	n.mu.Unlock()
}

func (n *Neopixel) write(s string) {
	if n.pipe == nil {
		return
	}
	if _, err := n.pipe.Write([]byte(s + "\n")); err != nil {
		log.Printf("Neopixel write: %v", err)
	}
}
