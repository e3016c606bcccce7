package indicator

// Multi combines multiple Indicator implementations.
type Multi struct {
	indicators []Indicator
}

func (m *Multi) each(f func(Indicator)) {
	for _, ind := range m.indicators {
		f(ind)
	}
}

// Idle implements Indicator.Idle.
func (m *Multi) Idle() { m.each(Indicator.Idle) }

// Opening implements Indicator.Opening.
func (m *Multi) Opening() { m.each(Indicator.Opening) }

// Closing implements Indicator.Closing.
func (m *Multi) Closing() { m.each(Indicator.Closing) }

// Fault implements Indicator.Fault.
func (m *Multi) Fault() { m.each(Indicator.Fault) }

// ConnectionLost implements Indicator.ConnectionLost.
func (m *Multi) ConnectionLost() { m.each(Indicator.ConnectionLost) }

// Shutdown implements Indicator.Shutdown.
func (m *Multi) Shutdown() { m.each(Indicator.Shutdown) }

// SetConnected forwards to every indicator that tracks the connection.
func (m *Multi) SetConnected() {
	for _, ind := range m.indicators {
		if c, ok := ind.(interface{ SetConnected() }); ok {
			c.SetConnected()
		}
	}
}

// Release implements Indicator.Release.
func (m *Multi) Release() error {
	var lastErr error
	for _, ind := range m.indicators {
		if err := ind.Release(); err != nil {
			lastErr = err
		}
	}
	return lastErr
}
