package remote

import (
	"context"
	"fmt"
	"io"
	"log"
	"time"

	"github.com/tarm/serial"

	"doorctl/dispatch"
)

// SerialConfig holds configuration for a serial remote-control receiver.
type SerialConfig struct {
	Device string `yaml:"device"` // e.g. "/dev/ttyUSB0"; empty disables
	Baud   int    `yaml:"baud"`
}

// Serial reads single-byte commands from a remote-control receiver:
// 'o' or 'O' opens, 'c' or 'C' closes. Other bytes are ignored.
type Serial struct {
	port io.ReadCloser
	sink Submitter
}

// NewSerial opens the receiver's port. Returns nil if no device is set.
func NewSerial(cfg SerialConfig, sink Submitter) (*Serial, error) {
	if cfg.Device == "" {
		return nil, nil
	}
	if cfg.Baud == 0 {
		cfg.Baud = 9600
	}

	port, err := serial.OpenPort(&serial.Config{
		Name:        cfg.Device,
		Baud:        cfg.Baud,
		ReadTimeout: time.Second,
	})
	if err != nil {
		return nil, fmt.Errorf("open serial %s: %w", cfg.Device, err)
	}
	return &Serial{port: port, sink: sink}, nil
}

// Start reads commands until ctx is cancelled or the port fails.
// This should be called as a goroutine.
func (s *Serial) Start(ctx context.Context) {
	buf := make([]byte, 16)
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		n, err := s.port.Read(buf)
		if err != nil && err != io.EOF {
			if ctx.Err() != nil {
				return
			}
			log.Printf("Serial remote read: %v", err)
			time.Sleep(time.Second)
			continue
		}
		for _, c := range buf[:n] {
			action, ok := decodeByte(c)
			if !ok {
				continue
			}
			if err := s.sink.Submit(dispatch.Command{Action: action, Source: "serial"}); err != nil {
				log.Printf("Serial remote %s: %v", action, err)
			}
		}
	}
}

func decodeByte(c byte) (dispatch.Action, bool) {
	switch c {
	case 'o', 'O':
		return dispatch.Open, true
	case 'c', 'C':
		return dispatch.Close, true
	default:
		return 0, false
	}
}

// Close closes the port.
func (s *Serial) Close() error {
	return s.port.Close()
}
