// Package eventpipe drives a simulated joystick and buttons from commands
// written to a named pipe.
package eventpipe

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"syscall"
)

// Config holds configuration for the event pipe.
type Config struct {
	Path    string `yaml:"path"`     // Path to named pipe (e.g., "/tmp/keylock-events")
	PressMs int    `yaml:"press_ms"` // how long "press" holds a button down
}

// DefaultConfig has no pipe.
var DefaultConfig = Config{PressMs: 120}

// EventType identifies a command read from the pipe.
type EventType int

const (
	EventAxis EventType = iota
	EventCenter
	EventPress
	EventHold
	EventRelease
)

// Event is one parsed command.
type Event struct {
	Type   EventType
	Axis   string // "x" or "y" for EventAxis
	Value  uint16 // raw sample for EventAxis
	Button string // "a" or "b" for button events
}

// EventHandler is called when an event is received from the pipe.
type EventHandler func(Event)

// EventPipe listens for events on a named pipe.
type EventPipe struct {
	path    string
	handler EventHandler
	ctx     context.Context
	cancel  context.CancelFunc
}

// New creates a new EventPipe. Returns nil if path is empty.
func New(cfg Config, handler EventHandler) (*EventPipe, error) {
	if cfg.Path == "" {
		return nil, nil
	}

	// Remove existing pipe if it exists
	os.Remove(cfg.Path)

	if err := syscall.Mkfifo(cfg.Path, 0666); err != nil {
		return nil, fmt.Errorf("create named pipe %s: %w", cfg.Path, err)
	}

	ctx, cancel := context.WithCancel(context.Background())

	ep := &EventPipe{
		path:    cfg.Path,
		handler: handler,
		ctx:     ctx,
		cancel:  cancel,
	}

	return ep, nil
}

// Start begins listening for events on the pipe.
// This should be called as a goroutine.
func (ep *EventPipe) Start() {
	log.Printf("Event pipe listening on %s", ep.path)

	for {
		select {
		case <-ep.ctx.Done():
			return
		default:
		}

		// Blocks until a writer connects; Close wakes it.
		file, err := os.OpenFile(ep.path, os.O_RDONLY, 0)
		if err != nil {
			if ep.ctx.Err() != nil {
				return
			}
			log.Printf("Event pipe open error: %v", err)
			continue
		}

		scanner := bufio.NewScanner(file)
		for scanner.Scan() {
			select {
			case <-ep.ctx.Done():
				file.Close()
				return
			default:
			}

			line := strings.TrimSpace(scanner.Text())
			if line == "" || strings.HasPrefix(line, "#") {
				continue
			}

			event, err := parseLine(line)
			if err != nil {
				log.Printf("Event pipe parse error: %v", err)
				continue
			}

			if ep.handler != nil {
				ep.handler(event)
			}
		}

		file.Close()
		// Writer closed the pipe, loop back to wait for next writer
	}
}

// Close stops the event pipe listener and removes the pipe.
func (ep *EventPipe) Close() error {
	ep.cancel()
	// Unblock a Start waiting in open.
	if f, err := os.OpenFile(ep.path, os.O_WRONLY|syscall.O_NONBLOCK, 0); err == nil {
		f.Close()
	}
	return os.Remove(ep.path)
}

// parseLine parses a command line into an Event.
// Command format:
//
//	axis <x|y> <raw>     - Set a joystick axis to a raw sample
//	center               - Return both axes to the midpoint
//	press <a|b>          - Press and release a button
//	hold <a|b>           - Press a button until released
//	release <a|b>        - Release a held button
func parseLine(line string) (Event, error) {
	parts := strings.Fields(line)
	if len(parts) == 0 {
		return Event{}, fmt.Errorf("empty command")
	}

	cmd := strings.ToLower(parts[0])

	switch cmd {
	case "axis":
		if len(parts) < 3 {
			return Event{}, fmt.Errorf("axis requires <x|y> <raw>")
		}
		axis := strings.ToLower(parts[1])
		if axis != "x" && axis != "y" {
			return Event{}, fmt.Errorf("unknown axis: %s", parts[1])
		}
		v, err := strconv.ParseUint(parts[2], 10, 16)
		if err != nil {
			return Event{}, fmt.Errorf("invalid axis value: %s", parts[2])
		}
		return Event{Type: EventAxis, Axis: axis, Value: uint16(v)}, nil

	case "center", "centre":
		return Event{Type: EventCenter}, nil

	case "press", "hold", "release":
		if len(parts) < 2 {
			return Event{}, fmt.Errorf("%s requires a button", cmd)
		}
		b, err := parseButton(parts[1])
		if err != nil {
			return Event{}, err
		}
		t := map[string]EventType{"press": EventPress, "hold": EventHold, "release": EventRelease}[cmd]
		return Event{Type: t, Button: b}, nil

	default:
		return Event{}, fmt.Errorf("unknown command: %s", cmd)
	}
}

// parseButton normalizes a button name to "a" or "b".
func parseButton(name string) (string, error) {
	switch strings.ToLower(name) {
	case "a", "enter", "button1", "btn1":
		return "a", nil
	case "b", "service", "button2", "btn2":
		return "b", nil
	default:
		return "", fmt.Errorf("unknown button: %s", name)
	}
}
