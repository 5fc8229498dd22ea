package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"keylock/access"
	"keylock/button"
	"keylock/buzzer"
	"keylock/clock"
	"keylock/controller"
	"keylock/display"
	"keylock/eventpipe"
	"keylock/feedback"
	"keylock/indicator"
	"keylock/joystick"
	"keylock/keypad"
	"keylock/latch"
	"keylock/mqtt"
	"keylock/panel"
	"keylock/platform"
)

// App holds the application state and dependencies.
type App struct {
	cfg     *Config
	clk     clock.Clock
	mqtt    *mqtt.Client
	status  *mqtt.Status
	pipe    *eventpipe.EventPipe
	sim     *eventpipe.Sim
	reader  *joystick.Reader
	enter   *button.Button
	service *button.Button
	display display.Display
	leds    indicator.LEDs
	panel   panel.Panel
	buzzer  buzzer.Tone
	latch   latch.Latch
	session *controller.Session
}

// newApp opens every configured device and builds the session. On error
// anything already opened is released.
func newApp(cfg *Config, clk clock.Clock) (*App, error) {
	app := &App{cfg: cfg, clk: clk}
	if err := app.init(); err != nil {
		app.Close()
		return nil, err
	}
	return app, nil
}

func (app *App) init() error {
	cfg := app.cfg
	var err error

	if cfg.usesPipe() {
		app.sim = eventpipe.NewSim(cfg.EventPipe, cfg.Joystick.Midpoint(), app.clk)
		app.pipe, err = eventpipe.New(cfg.EventPipe, app.sim.Handle)
		if err != nil {
			return fmt.Errorf("init event pipe: %w", err)
		}
	}

	var analog joystick.Analog
	if cfg.Joystick.Type == "pipe" {
		analog = app.sim.Joystick(cfg.Joystick.XChannel, cfg.Joystick.YChannel)
	} else if analog, err = joystick.New(cfg.Joystick); err != nil {
		return fmt.Errorf("init joystick: %w", err)
	}
	app.reader = joystick.NewReader(analog, cfg.Joystick)

	var enterPin, servicePin button.Pin
	if cfg.Button.Type == "pipe" {
		enterPin, servicePin = app.sim.Button("a"), app.sim.Button("b")
	} else if enterPin, servicePin, err = button.New(cfg.Button); err != nil {
		return fmt.Errorf("init buttons: %w", err)
	}
	app.enter = button.NewButton("enter", enterPin, app.clk, cfg.Button)
	app.service = button.NewButton("service", servicePin, app.clk, cfg.Button)

	if app.display, err = display.New(cfg.Display); err != nil {
		return fmt.Errorf("init display: %w", err)
	}
	if app.leds, err = indicator.New(cfg.Indicator); err != nil {
		return fmt.Errorf("init indicator: %w", err)
	}
	if app.panel, err = panel.New(cfg.Panel); err != nil {
		return fmt.Errorf("init panel: %w", err)
	}
	// The latch goes first: its servo setup resets the shared PWM mode.
	if app.latch, err = latch.New(cfg.Latch, app.clk); err != nil {
		return fmt.Errorf("init latch: %w", err)
	}
	if app.buzzer, err = buzzer.New(cfg.Buzzer, app.clk); err != nil {
		return fmt.Errorf("init buzzer: %w", err)
	}
	maint, err := platform.New(cfg.Maintenance)
	if err != nil {
		return fmt.Errorf("init maintenance: %w", err)
	}

	app.mqtt, err = mqtt.New(cfg.MQTT, cfg.ClientID, mqtt.Handlers{
		OnConnect:    func() { log.Printf("Status: publishing as %s", cfg.ClientID) },
		OnDisconnect: func() { log.Printf("Status: broker lost, events dropped until reconnect") },
	})
	if err != nil {
		return fmt.Errorf("init MQTT: %w", err)
	}
	app.status = mqtt.NewStatus(app.mqtt, cfg.ClientID)

	sink := feedback.NewDispatcher(feedback.Outputs{
		Display: app.display,
		LEDs:    app.leds,
		Panel:   app.panel,
		Buzzer:  app.buzzer,
		Latch:   app.latch,
		Status:  app.status,
	}, app.clk)

	app.session = controller.New(cfg.Controller, cfg.Access, controller.Deps{
		Clock:       app.clk,
		Reader:      app.reader,
		Navigator:   keypad.NewNavigator(cfg.Keypad),
		Layout:      keypad.Default,
		Policy:      access.NewPolicy(cfg.Access),
		Enter:       app.enter,
		Service:     app.service,
		Sink:        sink,
		Maintenance: maint,
	})
	return nil
}

// Run starts the background publishers and runs the control loop until ctx
// is cancelled.
func (app *App) Run(ctx context.Context) error {
	go func() {
		if err := app.mqtt.Connect(); err != nil {
			log.Printf("MQTT connect: %v", err)
		}
	}()
	if app.mqtt.IsEnabled() {
		go app.status.RunPing(ctx, time.Duration(app.cfg.MQTT.PingSecs)*time.Second)
	}
	if app.pipe != nil {
		go app.pipe.Start()
	}
	return app.session.Run(ctx)
}

// HoldOpen opens the latch and keeps it open until ctx is cancelled.
func (app *App) HoldOpen(ctx context.Context) error {
	fmt.Println("Holding latch open")
	if err := app.latch.Open(); err != nil {
		return fmt.Errorf("open latch: %w", err)
	}
	app.setGreen(true)
	<-ctx.Done()
	app.setGreen(false)
	return app.latch.Close()
}

func (app *App) setGreen(on bool) {
	if err := app.leds.Set(indicator.Green, on); err != nil {
		log.Printf("Hold open: %s LED: %v", indicator.Green, err)
	}
}

// Close releases every device that was opened.
func (app *App) Close() {
	if app.mqtt != nil {
		app.mqtt.Disconnect()
	}
	if app.pipe != nil {
		app.pipe.Close()
	}
	release := func(name string, fn func() error) {
		if err := fn(); err != nil {
			log.Printf("Release %s: %v", name, err)
		}
	}
	if app.reader != nil {
		release("joystick", app.reader.Close)
	}
	if app.enter != nil {
		release("enter button", app.enter.Close)
	}
	if app.service != nil {
		release("service button", app.service.Close)
	}
	if app.latch != nil {
		release("latch", app.latch.Release)
	}
	if app.buzzer != nil {
		release("buzzer", app.buzzer.Release)
	}
	if app.panel != nil {
		release("panel", app.panel.Release)
	}
	if app.leds != nil {
		release("indicator", app.leds.Release)
	}
	if app.display != nil {
		release("display", app.display.Release)
	}
}
