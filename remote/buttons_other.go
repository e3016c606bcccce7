//go:build !linux

package remote

// Buttons is a stub for non-linux platforms.
type Buttons struct{}

// NewButtons returns an error on non-linux platforms.
func NewButtons(cfg ButtonConfig, sink Submitter) (*Buttons, error) {
	if !cfg.enabled() {
		return nil, nil
	}
	return nil, ErrNotSupported
}

func (b *Buttons) Release() error { return nil }
