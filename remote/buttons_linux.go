//go:build linux

package remote

import (
	"log"
	"time"

	"github.com/warthog618/go-gpiocdev"

	"doorctl/dispatch"
)

const buttonDebounce = 2 * time.Millisecond

// Buttons submits Open or Close when the matching push button is pressed.
type Buttons struct {
	sink      Submitter
	openLine  *gpiocdev.Line
	closeLine *gpiocdev.Line
}

// NewButtons requests the configured button lines.
// Returns nil if no button pin is configured.
func NewButtons(cfg ButtonConfig, sink Submitter) (*Buttons, error) {
	if !cfg.enabled() {
		return nil, nil
	}
	if cfg.Chip == "" {
		cfg.Chip = "gpiochip0"
	}

	b := &Buttons{sink: sink}

	var err error
	if cfg.OpenPin != nil {
		b.openLine, err = requestButton(cfg, *cfg.OpenPin, b.handler(dispatch.Open))
		if err != nil {
			return nil, err
		}
	}
	if cfg.ClosePin != nil {
		b.closeLine, err = requestButton(cfg, *cfg.ClosePin, b.handler(dispatch.Close))
		if err != nil {
			b.Release()
			return nil, err
		}
	}

	return b, nil
}

func requestButton(cfg ButtonConfig, pin int, h gpiocdev.EventHandler) (*gpiocdev.Line, error) {
	if cfg.activeLow() {
		return gpiocdev.RequestLine(cfg.Chip, pin,
			gpiocdev.WithPullUp,
			gpiocdev.WithFallingEdge,
			gpiocdev.WithDebounce(buttonDebounce),
			gpiocdev.WithConsumer("doorctl-button"),
			gpiocdev.WithEventHandler(h))
	}
	return gpiocdev.RequestLine(cfg.Chip, pin,
		gpiocdev.WithPullDown,
		gpiocdev.WithRisingEdge,
		gpiocdev.WithDebounce(buttonDebounce),
		gpiocdev.WithConsumer("doorctl-button"),
		gpiocdev.WithEventHandler(h))
}

func (b *Buttons) handler(action dispatch.Action) gpiocdev.EventHandler {
	return func(evt gpiocdev.LineEvent) {
		b.press(action)
	}
}

func (b *Buttons) press(action dispatch.Action) {
	if err := b.sink.Submit(dispatch.Command{Action: action, Source: "button"}); err != nil {
		log.Printf("Button %s: %v", action, err)
	}
}

// Release releases GPIO resources.
func (b *Buttons) Release() error {
	if b.openLine != nil {
		b.openLine.Close()
	}
	if b.closeLine != nil {
		b.closeLine.Close()
	}
	return nil
}
