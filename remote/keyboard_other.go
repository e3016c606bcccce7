//go:build !linux

package remote

import "context"

// Keyboard is a stub for non-linux platforms.
type Keyboard struct{}

// NewKeyboard returns an error on non-linux platforms.
func NewKeyboard(cfg KeyboardConfig, sink Submitter) (*Keyboard, error) {
	if cfg.Device == "" {
		return nil, nil
	}
	return nil, ErrNotSupported
}

func (k *Keyboard) Start(ctx context.Context) {}

func (k *Keyboard) Close() error { return nil }
