package remote

import (
	"log"

	"doorctl/dispatch"
)

// Linux input key codes used when no keys are configured.
const (
	keyO    = 24
	keyC    = 46
	keyUp   = 103
	keyDown = 108
)

// KeyboardConfig holds configuration for a USB keypad or keyboard remote.
type KeyboardConfig struct {
	Device    string `yaml:"device"`     // e.g. "/dev/input/event0"; empty disables
	OpenKeys  []int  `yaml:"open_keys"`  // input key codes, default O and Up
	CloseKeys []int  `yaml:"close_keys"` // default C and Down
}

func (c KeyboardConfig) withDefaults() KeyboardConfig {
	if len(c.OpenKeys) == 0 {
		c.OpenKeys = []int{keyO, keyUp}
	}
	if len(c.CloseKeys) == 0 {
		c.CloseKeys = []int{keyC, keyDown}
	}
	return c
}

// action maps a key code to a door action.
// Open wins when a code is listed for both.
func (c KeyboardConfig) action(code int) (dispatch.Action, bool) {
	for _, k := range c.OpenKeys {
		if k == code {
			return dispatch.Open, true
		}
	}
	for _, k := range c.CloseKeys {
		if k == code {
			return dispatch.Close, true
		}
	}
	return 0, false
}

// keyEvent submits the action bound to code. Only presses (value 1)
// count; releases and autorepeat are ignored.
func keyEvent(cfg KeyboardConfig, sink Submitter, code, value int) {
	if value != 1 {
		return
	}
	action, ok := cfg.action(code)
	if !ok {
		return
	}
	if err := sink.Submit(dispatch.Command{Action: action, Source: "keyboard"}); err != nil {
		log.Printf("Keyboard remote %s: %v", action, err)
	}
}
