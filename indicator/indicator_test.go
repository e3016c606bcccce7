package indicator

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"doorctl/actuator"
	"doorctl/actuator/actuatortest"
)

func intp(v int) *int { return &v }

func requireLevels(t *testing.T, rec *actuatortest.Recorder, want map[int]actuator.Level) {
	t.Helper()
	for pin, lvl := range want {
		got, ok := rec.Level(pin)
		if !ok {
			t.Fatalf("pin %d never written", pin)
		}
		if got != lvl {
			t.Fatalf("pin %d=%s want %s", pin, got, lvl)
		}
	}
}

func TestNew_NoopWhenUnconfigured(t *testing.T) {
	ind, err := New(Config{}, &actuatortest.Recorder{})
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	if _, ok := ind.(*Noop); !ok {
		t.Fatalf("indicator=%T want *Noop", ind)
	}
}

func TestGPIO_States(t *testing.T) {
	rec := &actuatortest.Recorder{}
	ind, err := New(Config{GreenPin: intp(5), YellowPin: intp(6), RedPin: intp(13)}, rec)
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	requireLevels(t, rec, map[int]actuator.Level{5: actuator.Low, 6: actuator.Low, 13: actuator.Low})

	cases := []struct {
		name string
		set  func()
		want map[int]actuator.Level
	}{
		{"idle", ind.Idle, map[int]actuator.Level{5: actuator.High, 6: actuator.Low, 13: actuator.Low}},
		{"opening", ind.Opening, map[int]actuator.Level{5: actuator.Low, 6: actuator.High, 13: actuator.Low}},
		{"closing", ind.Closing, map[int]actuator.Level{5: actuator.Low, 6: actuator.High, 13: actuator.Low}},
		{"fault", ind.Fault, map[int]actuator.Level{5: actuator.Low, 6: actuator.Low, 13: actuator.High}},
		{"connection lost", ind.ConnectionLost, map[int]actuator.Level{5: actuator.Low, 6: actuator.High, 13: actuator.High}},
		{"shutdown", ind.Shutdown, map[int]actuator.Level{5: actuator.Low, 6: actuator.Low, 13: actuator.Low}},
	}
	for _, tc := range cases {
		tc.set()
		requireLevels(t, rec, tc.want)
	}
}

func TestGPIO_PartialPins(t *testing.T) {
	rec := &actuatortest.Recorder{}
	g := NewGPIO(rec, nil, nil, intp(13))
	g.Idle()
	g.Fault()
	for _, c := range rec.Calls() {
		if c.Pin != 13 {
			t.Fatalf("unexpected call %v", c)
		}
	}
	requireLevels(t, rec, map[int]actuator.Level{13: actuator.High})
}

func TestMulti_WithNeopixel(t *testing.T) {
	// A regular file stands in for the neopixel tool's pipe.
	path := filepath.Join(t.TempDir(), "neo")
	if err := os.WriteFile(path, nil, 0o644); err != nil {
		t.Fatalf("WriteFile() error: %v", err)
	}

	rec := &actuatortest.Recorder{}
	ind, err := New(Config{GreenPin: intp(5), NeopixelPipe: path}, rec)
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	m, ok := ind.(*Multi)
	if !ok {
		t.Fatalf("indicator=%T want *Multi", ind)
	}

	m.Idle()
	m.SetConnected()
	m.Idle()
	m.Opening()
	if err := m.Release(); err != nil {
		t.Fatalf("Release() error: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error: %v", err)
	}
	want := []string{neoConnectionLost, neoNormalIdle, neoMoving}
	if got := strings.Split(strings.TrimSpace(string(data)), "\n"); strings.Join(got, "|") != strings.Join(want, "|") {
		t.Fatalf("neopixel writes=%q want %q", got, want)
	}
	requireLevels(t, rec, map[int]actuator.Level{5: actuator.Low})
}

func TestNewNeopixel_MissingPipe(t *testing.T) {
	if _, err := NewNeopixel(filepath.Join(t.TempDir(), "missing")); err == nil {
		t.Fatalf("expected error for missing pipe")
	}
}
