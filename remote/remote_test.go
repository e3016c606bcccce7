package remote

import (
	"context"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"doorctl/dispatch"
)

type fakeSink struct {
	mu   sync.Mutex
	cmds []dispatch.Command
}

func (f *fakeSink) Submit(cmd dispatch.Command) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.cmds = append(f.cmds, cmd)
	return nil
}

func (f *fakeSink) Commands() []dispatch.Command {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]dispatch.Command(nil), f.cmds...)
}

func TestDecodeByte(t *testing.T) {
	cases := []struct {
		in   byte
		want dispatch.Action
		ok   bool
	}{
		{'o', dispatch.Open, true},
		{'O', dispatch.Open, true},
		{'c', dispatch.Close, true},
		{'C', dispatch.Close, true},
		{'\n', 0, false},
		{'x', 0, false},
	}
	for _, tc := range cases {
		got, ok := decodeByte(tc.in)
		if got != tc.want || ok != tc.ok {
			t.Fatalf("decodeByte(%q)=%v,%v want %v,%v", tc.in, got, ok, tc.want, tc.ok)
		}
	}
}

// scriptedPort returns its data once, then blocks on EOF until closed.
type scriptedPort struct {
	r io.Reader
}

func (p *scriptedPort) Read(b []byte) (int, error) {
	n, err := p.r.Read(b)
	if err == io.EOF {
		time.Sleep(time.Millisecond)
	}
	return n, err
}

func (p *scriptedPort) Close() error { return nil }

func TestSerial_SubmitsCommands(t *testing.T) {
	sink := &fakeSink{}
	s := &Serial{port: &scriptedPort{r: strings.NewReader("o\r\nxC")}, sink: sink}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		s.Start(ctx)
		close(done)
	}()

	deadline := time.After(time.Second)
	for len(sink.Commands()) < 2 {
		select {
		case <-deadline:
			t.Fatalf("got %d commands, want 2", len(sink.Commands()))
		case <-time.After(time.Millisecond):
		}
	}
	cancel()
	<-done

	cmds := sink.Commands()
	if cmds[0].Action != dispatch.Open || cmds[1].Action != dispatch.Close {
		t.Fatalf("commands=%+v want open, close", cmds)
	}
	if cmds[0].Source != "serial" {
		t.Fatalf("source=%q want serial", cmds[0].Source)
	}
}

func TestNewSerial_DisabledWithoutDevice(t *testing.T) {
	s, err := NewSerial(SerialConfig{}, &fakeSink{})
	if err != nil || s != nil {
		t.Fatalf("NewSerial()=%v,%v want nil,nil", s, err)
	}
}

func TestNewButtons_DisabledWithoutPins(t *testing.T) {
	b, err := NewButtons(ButtonConfig{}, &fakeSink{})
	if err != nil || b != nil {
		t.Fatalf("NewButtons()=%v,%v want nil,nil", b, err)
	}
}

func TestButtonConfig_Enabled(t *testing.T) {
	zero, five := 0, 5
	tests := []struct {
		name string
		cfg  ButtonConfig
		want bool
	}{
		{"none", ButtonConfig{}, false},
		{"open on line 0", ButtonConfig{OpenPin: &zero}, true},
		{"close only", ButtonConfig{ClosePin: &five}, true},
		{"both", ButtonConfig{OpenPin: &zero, ClosePin: &five}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.cfg.enabled(); got != tt.want {
				t.Fatalf("enabled()=%v want %v", got, tt.want)
			}
		})
	}
}

func TestButtonConfig_ActiveLowDefault(t *testing.T) {
	if !(ButtonConfig{}).activeLow() {
		t.Fatalf("active_low should default to true")
	}
	f := false
	if (ButtonConfig{ActiveLow: &f}).activeLow() {
		t.Fatalf("active_low=false ignored")
	}
}

func TestKeyEvent(t *testing.T) {
	cfg := KeyboardConfig{}.withDefaults()
	tests := []struct {
		name  string
		code  int
		value int
		want  []dispatch.Action
	}{
		{"O pressed", keyO, 1, []dispatch.Action{dispatch.Open}},
		{"Up pressed", keyUp, 1, []dispatch.Action{dispatch.Open}},
		{"C pressed", keyC, 1, []dispatch.Action{dispatch.Close}},
		{"Down pressed", keyDown, 1, []dispatch.Action{dispatch.Close}},
		{"O released", keyO, 0, nil},
		{"O repeat", keyO, 2, nil},
		{"unbound key", 30, 1, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sink := &fakeSink{}
			keyEvent(cfg, sink, tt.code, tt.value)

			var got []dispatch.Action
			for _, c := range sink.Commands() {
				if c.Source != "keyboard" {
					t.Fatalf("source=%q want keyboard", c.Source)
				}
				got = append(got, c.Action)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("actions=%v want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Fatalf("actions=%v want %v", got, tt.want)
				}
			}
		})
	}
}

func TestKeyboardConfig_CustomKeys(t *testing.T) {
	cfg := KeyboardConfig{OpenKeys: []int{2}, CloseKeys: []int{3}}.withDefaults()
	if a, ok := cfg.action(2); !ok || a != dispatch.Open {
		t.Fatalf("action(2)=%v,%v want open", a, ok)
	}
	if a, ok := cfg.action(3); !ok || a != dispatch.Close {
		t.Fatalf("action(3)=%v,%v want close", a, ok)
	}
	if _, ok := cfg.action(keyO); ok {
		t.Fatalf("default open key still bound after override")
	}
}

func TestNewKeyboard_DisabledWithoutDevice(t *testing.T) {
	k, err := NewKeyboard(KeyboardConfig{}, &fakeSink{})
	if err != nil || k != nil {
		t.Fatalf("NewKeyboard()=%v,%v want nil,nil", k, err)
	}
}
