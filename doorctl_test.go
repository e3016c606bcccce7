package main

import (
	"errors"
	"reflect"
	"testing"
	"time"

	"doorctl/actuator"
	"doorctl/actuator/actuatortest"
	"doorctl/dispatch"
	"doorctl/door"
)

type recordingBackend struct {
	actuatortest.Recorder
	released bool

	// callsAtRelease is the number of driver calls made before Release.
	callsAtRelease int
}

func (b *recordingBackend) Release() error {
	b.released = true
	b.callsAtRelease = len(b.Calls())
	return nil
}

func intp(v int) *int { return &v }

func testConfig() *Config {
	return &Config{
		ClientID: "frontdoor",
		Door: door.Config{
			Type:       "actuator",
			OpenPin:    intp(2),
			ClosePin:   intp(3),
			EnablePin:  intp(4),
			HoldMillis: 500,
		},
	}
}

func waitForCalls(t *testing.T, b *recordingBackend, n int) []actuatortest.Call {
	t.Helper()
	deadline := time.After(2 * time.Second)
	for {
		calls := b.Calls()
		if len(calls) >= n {
			return calls
		}
		select {
		case <-deadline:
			t.Fatalf("got %d driver calls, want %d: %v", len(calls), n, calls)
		case <-time.After(5 * time.Millisecond):
		}
	}
}

func TestApp_MQTTOpenDrivesActuator(t *testing.T) {
	b := &recordingBackend{}
	app, err := newApp(testConfig(), b)
	if err != nil {
		t.Fatalf("newApp() error: %v", err)
	}
	defer app.shutdown()

	// Setup is 6 calls.
	waitForCalls(t, b, 6)
	b.Reset()

	app.onMQTTCommand("open")
	calls := waitForCalls(t, b, 5)

	want := []actuatortest.Call{
		actuatortest.Write(2, actuator.High),
		actuatortest.Write(3, actuator.Low),
		actuatortest.Write(4, actuator.High),
		actuatortest.Delay(500),
		actuatortest.Write(4, actuator.Low),
	}
	if !reflect.DeepEqual(calls[:5], want) {
		t.Fatalf("calls=%v want %v", calls, want)
	}
}

func TestApp_IgnoresUnknownCommands(t *testing.T) {
	b := &recordingBackend{}
	app, err := newApp(testConfig(), b)
	if err != nil {
		t.Fatalf("newApp() error: %v", err)
	}
	defer app.shutdown()
	b.Reset()

	app.onMQTTCommand("wiggle")
	app.onMQTTCommand("")
	time.Sleep(20 * time.Millisecond)

	if calls := b.Calls(); len(calls) != 0 {
		t.Fatalf("unexpected driver calls: %v", calls)
	}
}

func TestApp_ShutdownReleasesBackend(t *testing.T) {
	b := &recordingBackend{}
	app, err := newApp(testConfig(), b)
	if err != nil {
		t.Fatalf("newApp() error: %v", err)
	}
	app.shutdown()
	if !b.released {
		t.Fatalf("backend not released")
	}
}

func TestNewApp_StrictRejectsConfig(t *testing.T) {
	cfg := testConfig()
	cfg.Door.Strict = true
	cfg.Door.ClosePin = nil

	if _, err := newApp(cfg, &recordingBackend{}); err == nil {
		t.Fatalf("expected error for unset close pin")
	}
}

func TestRunOnce_Close(t *testing.T) {
	b := &recordingBackend{}
	if err := runOnce(testConfig(), b, false); err != nil {
		t.Fatalf("runOnce() error: %v", err)
	}
	calls := b.Calls()
	if len(calls) != 11 {
		t.Fatalf("calls=%v want setup plus close", calls)
	}
	if calls[6] != actuatortest.Write(2, actuator.Low) || calls[7] != actuatortest.Write(3, actuator.High) {
		t.Fatalf("close direction wrong: %v", calls[6:])
	}
	if !b.released {
		t.Fatalf("backend not released")
	}
}

func waitForLevel(t *testing.T, b *recordingBackend, pin int, want actuator.Level) {
	t.Helper()
	deadline := time.After(2 * time.Second)
	for {
		if got, ok := b.Level(pin); ok && got == want {
			return
		}
		select {
		case <-deadline:
			t.Fatalf("pin %d never went %s: %v", pin, want, b.Calls())
		case <-time.After(time.Millisecond):
		}
	}
}

func TestApp_ShutdownWaitsForMoveInProgress(t *testing.T) {
	b := &recordingBackend{}
	b.OnDelay = func(ms int) { time.Sleep(100 * time.Millisecond) }

	app, err := newApp(testConfig(), b)
	if err != nil {
		t.Fatalf("newApp() error: %v", err)
	}

	app.onMQTTCommand("open")
	waitForLevel(t, b, 4, actuator.High)

	app.shutdown()

	if got, _ := b.Level(4); got != actuator.Low {
		t.Fatalf("enable=%s after shutdown, want LOW", got)
	}

	// Give a stray worker the chance to write after Release.
	time.Sleep(150 * time.Millisecond)
	if calls := b.Calls(); len(calls) != b.callsAtRelease {
		t.Fatalf("driver calls after Release: %v", calls[b.callsAtRelease:])
	}
}

func indicatorConfig() *Config {
	cfg := testConfig()
	cfg.Indicator.GreenPin = intp(5)
	cfg.Indicator.YellowPin = intp(6)
	cfg.Indicator.RedPin = intp(13)
	return cfg
}

func assertLEDs(t *testing.T, b *recordingBackend, green, yellow, red actuator.Level) {
	t.Helper()
	for _, led := range []struct {
		name string
		pin  int
		want actuator.Level
	}{
		{"green", 5, green},
		{"yellow", 6, yellow},
		{"red", 13, red},
	} {
		if got, _ := b.Level(led.pin); got != led.want {
			t.Fatalf("%s=%s want %s", led.name, got, led.want)
		}
	}
}

func TestApp_ConnectDuringMoveKeepsMovingIndicator(t *testing.T) {
	b := &recordingBackend{}
	app, err := newApp(indicatorConfig(), b)
	if err != nil {
		t.Fatalf("newApp() error: %v", err)
	}
	defer app.shutdown()

	open := dispatch.Command{Action: dispatch.Open, Source: "test"}

	app.onMoveStart(open)
	app.onMQTTConnect()
	assertLEDs(t, b, actuator.Low, actuator.High, actuator.Low)

	app.onMoveDone(open, nil)
	assertLEDs(t, b, actuator.High, actuator.Low, actuator.Low)
}

func TestApp_DisconnectDuringMove(t *testing.T) {
	b := &recordingBackend{}
	app, err := newApp(indicatorConfig(), b)
	if err != nil {
		t.Fatalf("newApp() error: %v", err)
	}
	defer app.shutdown()

	closeCmd := dispatch.Command{Action: dispatch.Close, Source: "test"}

	app.onMQTTConnect()
	app.onMoveStart(closeCmd)
	app.onMQTTDisconnect()
	assertLEDs(t, b, actuator.Low, actuator.High, actuator.Low)

	// The move ends while offline: show the lost connection.
	app.onMoveDone(closeCmd, nil)
	assertLEDs(t, b, actuator.Low, actuator.High, actuator.High)

	app.onMoveStart(closeCmd)
	app.onMoveDone(closeCmd, errors.New("stuck"))
	assertLEDs(t, b, actuator.Low, actuator.Low, actuator.High)
}
