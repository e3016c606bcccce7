package door

import "log"

// Noop implements DoorOpener without hardware; moves are only logged.
// Used when no door control is configured.
type Noop struct{}

// Open implements DoorOpener.Open.
func (n *Noop) Open() error {
	log.Println("door: open requested, no opener configured")
	return nil
}

// Close implements DoorOpener.Close.
func (n *Noop) Close() error {
	log.Println("door: close requested, no opener configured")
	return nil
}

// Release implements DoorOpener.Release.
func (n *Noop) Release() error {
	return nil
}
