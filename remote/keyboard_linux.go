//go:build linux

package remote

import (
	"context"
	"fmt"
	"log"

	"github.com/kenshaw/evdev"
)

// Keyboard submits door commands from key presses on an input device.
type Keyboard struct {
	cfg    KeyboardConfig
	sink   Submitter
	device *evdev.Evdev
}

// NewKeyboard opens the input device. Returns nil if no device is set.
func NewKeyboard(cfg KeyboardConfig, sink Submitter) (*Keyboard, error) {
	if cfg.Device == "" {
		return nil, nil
	}

	dev, err := evdev.OpenFile(cfg.Device)
	if err != nil {
		return nil, fmt.Errorf("open evdev %s: %w", cfg.Device, err)
	}

	log.Printf("Opened keyboard remote: %s", dev.Name())
	log.Printf("Vendor: 0x%04x, Product: 0x%04x", dev.ID().Vendor, dev.ID().Product)

	return &Keyboard{cfg: cfg.withDefaults(), sink: sink, device: dev}, nil
}

// Start reads key events until ctx is cancelled or the device goes away.
// This should be called as a goroutine.
func (k *Keyboard) Start(ctx context.Context) {
	ch := k.device.Poll(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case event := <-ch:
			if event == nil {
				log.Printf("Keyboard remote closed")
				return
			}
			if _, ok := event.Type.(evdev.KeyType); ok {
				keyEvent(k.cfg, k.sink, int(event.Code), int(event.Value))
			}
		}
	}
}

// Close closes the input device.
func (k *Keyboard) Close() error {
	return k.device.Close()
}
