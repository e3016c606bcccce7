package door

import (
	"errors"
	"fmt"

	"doorctl/actuator"
)

// Actuator implements DoorOpener with a two-direction actuator.
// Open and Close block for the configured hold duration.
type Actuator struct {
	act    *actuator.Actuator
	strict bool
}

// NewActuator assigns the configured pins and runs Setup.
func NewActuator(drv actuator.Driver, cfg Config) (*Actuator, error) {
	act := actuator.New(drv)
	if cfg.OpenPin != nil {
		act.SetOpenPin(*cfg.OpenPin)
	}
	if cfg.ClosePin != nil {
		act.SetClosePin(*cfg.ClosePin)
	}
	if cfg.EnablePin != nil {
		act.SetEnablePin(*cfg.EnablePin)
	}

	if cfg.Strict {
		if err := checkPins(act); err != nil {
			return nil, err
		}
	}
	act.Setup(cfg.HoldMillis)

	return &Actuator{act: act, strict: cfg.Strict}, nil
}

// checkPins runs the pin checks of Validate before Setup touches hardware.
func checkPins(act *actuator.Actuator) error {
	err := act.Validate()
	if err == nil || errors.Is(err, actuator.ErrNotSetup) {
		return nil
	}
	return fmt.Errorf("actuator config: %w", err)
}

// Open implements DoorOpener.Open.
func (a *Actuator) Open() error {
	if a.strict {
		if err := a.act.Validate(); err != nil {
			return fmt.Errorf("open: %w", err)
		}
	}
	a.act.Open()
	return nil
}

// Close implements DoorOpener.Close.
func (a *Actuator) Close() error {
	if a.strict {
		if err := a.act.Validate(); err != nil {
			return fmt.Errorf("close: %w", err)
		}
	}
	a.act.Close()
	return nil
}

// Release implements DoorOpener.Release.
func (a *Actuator) Release() error {
	return nil
}

// Controller returns the underlying actuator.
func (a *Actuator) Controller() *actuator.Actuator {
	return a.act
}
