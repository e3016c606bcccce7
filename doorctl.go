package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"doorctl/dispatch"
	"doorctl/door"
	"doorctl/eventpipe"
	"doorctl/hal"
	"doorctl/indicator"
	"doorctl/mqtt"
	"doorctl/remote"
)

var myBuild string

const pingInterval = 120 * time.Second

// App holds the application state and dependencies.
type App struct {
	cfg       *Config
	gpio      hal.Backend
	door      door.DoorOpener
	indicator indicator.Indicator
	mqtt      *mqtt.Client
	disp      *dispatch.Dispatcher
	buttons   *remote.Buttons
	serial    *remote.Serial
	keyboard  *remote.Keyboard
	pipe      *eventpipe.EventPipe
	ctx       context.Context
	cancel    context.CancelFunc

	// stateMu serialises indicator changes from the dispatcher and
	// from paho's callbacks.
	stateMu   sync.Mutex
	moving    bool
	connected bool
}

// MoveStatus is published after every move.
type MoveStatus struct {
	Command string `json:"command"`
	Source  string `json:"source"`
	Error   string `json:"error,omitempty"`
}

func main() {
	fmt.Printf("doorctl build %s\n", myBuild)

	cfgfile := flag.String("cfg", "doorctl.cfg", "Config file")
	openflag := flag.Bool("open", false, "Open the door once and exit")
	closeflag := flag.Bool("close", false, "Close the door once and exit")
	flag.Parse()

	cfg, err := LoadConfig(*cfgfile)
	if err != nil {
		log.Fatalf("Load config: %v", err)
	}

	gpio, err := hal.New(cfg.GPIO)
	if err != nil {
		log.Fatalf("Init gpio: %v", err)
	}

	if *openflag || *closeflag {
		if err := runOnce(cfg, gpio, *openflag); err != nil {
			log.Fatal(err)
		}
		return
	}

	app, err := newApp(cfg, gpio)
	if err != nil {
		gpio.Release()
		log.Fatal(err)
	}
	if err := app.startInputs(); err != nil {
		app.shutdown()
		log.Fatal(err)
	}

	// Wait for shutdown signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	fmt.Println("Shutting down...")
	app.shutdown()
	fmt.Println("Shutdown complete")
}

// runOnce performs a single move without starting any input.
func runOnce(cfg *Config, gpio hal.Backend, open bool) error {
	defer gpio.Release()

	d, err := door.New(cfg.Door, gpio)
	if err != nil {
		return fmt.Errorf("init door: %w", err)
	}
	defer d.Release()

	if open {
		return d.Open()
	}
	return d.Close()
}

// newApp wires the door, indicator, MQTT client and dispatcher on gpio.
// Nothing talks to the outside world until startInputs.
func newApp(cfg *Config, gpio hal.Backend) (*App, error) {
	ctx, cancel := context.WithCancel(context.Background())
	app := &App{
		cfg:    cfg,
		gpio:   gpio,
		ctx:    ctx,
		cancel: cancel,
	}

	var err error
	app.indicator, err = indicator.New(cfg.Indicator, gpio)
	if err != nil {
		cancel()
		return nil, fmt.Errorf("init indicator: %w", err)
	}
	app.indicator.ConnectionLost()

	app.door, err = door.New(cfg.Door, gpio)
	if err != nil {
		app.indicator.Release()
		cancel()
		return nil, fmt.Errorf("init door: %w", err)
	}

	app.disp = dispatch.New(app.door, cfg.QueueLen, dispatch.Hooks{
		OnStart: app.onMoveStart,
		OnDone:  app.onMoveDone,
	})
	go app.disp.Run(ctx)

	app.mqtt, err = mqtt.New(cfg.MQTT, cfg.ClientID, mqtt.Handlers{
		OnConnect:    app.onMQTTConnect,
		OnDisconnect: app.onMQTTDisconnect,
		OnCommand:    app.onMQTTCommand,
	})
	if err != nil {
		app.door.Release()
		app.indicator.Release()
		cancel()
		return nil, fmt.Errorf("init MQTT: %w", err)
	}

	return app, nil
}

func (app *App) startInputs() error {
	var err error

	app.buttons, err = remote.NewButtons(app.cfg.Remote.Buttons, app.disp)
	if err != nil {
		return fmt.Errorf("init buttons: %w", err)
	}
	if app.buttons != nil {
		log.Println("Remote buttons initialized")
	}

	app.keyboard, err = remote.NewKeyboard(app.cfg.Remote.Keyboard, app.disp)
	if err != nil {
		return fmt.Errorf("init keyboard remote: %w", err)
	}
	if app.keyboard != nil {
		go app.keyboard.Start(app.ctx)
	}

	app.serial, err = remote.NewSerial(app.cfg.Remote.Serial, app.disp)
	if err != nil {
		return fmt.Errorf("init serial remote: %w", err)
	}
	if app.serial != nil {
		go app.serial.Start(app.ctx)
	}

	app.pipe, err = eventpipe.New(app.cfg.EventPipe, app.submit)
	if err != nil {
		return fmt.Errorf("init event pipe: %w", err)
	}
	if app.pipe != nil {
		go app.pipe.Start()
	}

	go func() {
		if err := app.mqtt.Connect(); err != nil {
			log.Printf("MQTT connect: %v", err)
		}
	}()
	go app.pingSender()

	return nil
}

func (app *App) shutdown() {
	app.cancel()

	if app.pipe != nil {
		app.pipe.Close()
	}
	if app.serial != nil {
		app.serial.Close()
	}
	if app.keyboard != nil {
		app.keyboard.Close()
	}
	if app.buttons != nil {
		app.buttons.Release()
	}

	// A move in progress must drop enable before the backend goes away.
	<-app.disp.Done()

	app.mqtt.Disconnect()
	app.door.Release()
	app.indicator.Shutdown()
	app.indicator.Release()
	app.gpio.Release()
}

func (app *App) submit(cmd dispatch.Command) {
	if err := app.disp.Submit(cmd); err != nil {
		log.Printf("Door %s from %s: %v", cmd.Action, cmd.Source, err)
	}
}

func (app *App) onMoveStart(cmd dispatch.Command) {
	app.stateMu.Lock()
	defer app.stateMu.Unlock()

	app.moving = true
	switch cmd.Action {
	case dispatch.Open:
		app.indicator.Opening()
	case dispatch.Close:
		app.indicator.Closing()
	}
}

func (app *App) onMoveDone(cmd dispatch.Command, err error) {
	status := MoveStatus{Command: cmd.Action.String(), Source: cmd.Source}

	app.stateMu.Lock()
	app.moving = false
	switch {
	case err != nil:
		status.Error = err.Error()
		app.indicator.Fault()
	case app.connected:
		app.indicator.Idle()
	default:
		app.indicator.ConnectionLost()
	}
	app.stateMu.Unlock()

	msg, jerr := json.Marshal(status)
	if jerr != nil {
		log.Printf("Encode move status: %v", jerr)
		return
	}
	app.mqtt.PublishStatus("move", string(msg))
}

func (app *App) onMQTTConnect() {
	app.stateMu.Lock()
	defer app.stateMu.Unlock()

	app.connected = true
	if c, ok := app.indicator.(interface{ SetConnected() }); ok {
		c.SetConnected()
	}
	// A running move owns the indicator until onMoveDone.
	if !app.moving {
		app.indicator.Idle()
	}
}

func (app *App) onMQTTDisconnect() {
	app.stateMu.Lock()
	defer app.stateMu.Unlock()

	app.connected = false
	if !app.moving {
		app.indicator.ConnectionLost()
	}
}

func (app *App) onMQTTCommand(name string) {
	action, err := dispatch.ParseAction(name)
	if err != nil {
		log.Printf("MQTT command %q: %v", name, err)
		return
	}
	app.submit(dispatch.Command{Action: action, Source: "mqtt"})
}

func (app *App) pingSender() {
	ticker := time.NewTicker(pingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-app.ctx.Done():
			return
		case <-ticker.C:
			app.mqtt.PublishStatus("ping", `{"status":"ok"}`)
		}
	}
}
