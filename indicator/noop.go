package indicator

// Noop implements Indicator but does nothing.
// Used when no indicators are configured.
type Noop struct{}

func (n *Noop) Idle()           {}
func (n *Noop) Opening()        {}
func (n *Noop) Closing()        {}
func (n *Noop) Fault()          {}
func (n *Noop) ConnectionLost() {}
func (n *Noop) Shutdown()       {}
func (n *Noop) Release() error  { return nil }
