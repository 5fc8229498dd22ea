// Package feedback turns lock events into display, LED, buzzer, LED matrix,
// latch and status output.
package feedback

import (
	"fmt"
	"log"

	"keylock/buzzer"
	"keylock/clock"
	"keylock/display"
	"keylock/indicator"
	"keylock/keypad"
	"keylock/latch"
	"keylock/panel"
)

// Messages shown on the display.
const (
	MsgGranted     = "ACCESS GRANTED"
	MsgDenied      = "WRONG CODE"
	MsgLocked      = "LOCKED!"
	MsgMaintenance = "Entering maintenance mode..."
)

// Sink receives lock events. Calls block until the feedback for the event
// has been produced; Granted and Denied include their melody.
type Sink interface {
	Keypad(layout keypad.Layout, cursor keypad.Cursor)
	DigitEntered(code string)
	Granted()
	Closed()
	Denied()
	Cleared()
	Locked()
	Unlocked()
	Maintenance()
}

// Reporter publishes named events such as "granted" to a remote observer.
type Reporter interface {
	Event(name string)
}

// Outputs are the capabilities a Dispatcher drives. Nil fields are skipped.
type Outputs struct {
	Display display.Display
	LEDs    indicator.LEDs
	Panel   panel.Panel
	Buzzer  buzzer.Tone
	Latch   latch.Latch
	Status  Reporter
}

// Dispatcher implements Sink on a set of Outputs. Output failures are
// logged and never interrupt the sequence.
type Dispatcher struct {
	out Outputs
	clk clock.Clock
}

// NewDispatcher returns a Dispatcher. clk times the gaps in melodies.
func NewDispatcher(out Outputs, clk clock.Clock) *Dispatcher {
	return &Dispatcher{out: out, clk: clk}
}

// Keypad implements Sink.Keypad.
func (d *Dispatcher) Keypad(layout keypad.Layout, cursor keypad.Cursor) {
	if d.out.Display != nil {
		d.check("render keypad", d.out.Display.RenderKeypad(layout, cursor))
	}
}

// DigitEntered implements Sink.DigitEntered.
func (d *Dispatcher) DigitEntered(code string) {
	d.show(fmt.Sprintf("Code: %s", code))
}

// Granted implements Sink.Granted.
func (d *Dispatcher) Granted() {
	d.show(MsgGranted)
	d.led(indicator.Green, true)
	d.color(panel.Green)
	if d.out.Latch != nil {
		d.check("open latch", d.out.Latch.Open())
	}
	d.report("granted")
	d.melody(buzzer.Success)
}

// Closed implements Sink.Closed.
func (d *Dispatcher) Closed() {
	d.led(indicator.Green, false)
	d.color(panel.Off)
	if d.out.Latch != nil {
		d.check("close latch", d.out.Latch.Close())
	}
	d.report("closed")
}

// Denied implements Sink.Denied.
func (d *Dispatcher) Denied() {
	d.show(MsgDenied)
	d.led(indicator.Red, true)
	d.color(panel.Red)
	d.report("denied")
	d.melody(buzzer.Error)
}

// Cleared implements Sink.Cleared.
func (d *Dispatcher) Cleared() {
	d.led(indicator.Red, false)
	d.color(panel.Off)
}

// Locked implements Sink.Locked.
func (d *Dispatcher) Locked() {
	d.show(MsgLocked)
	d.led(indicator.Red, true)
	d.color(panel.Red)
	d.report("locked")
}

// Unlocked implements Sink.Unlocked.
func (d *Dispatcher) Unlocked() {
	d.led(indicator.Red, false)
	d.color(panel.Off)
	d.report("unlocked")
}

// Maintenance implements Sink.Maintenance.
func (d *Dispatcher) Maintenance() {
	d.show(MsgMaintenance)
	d.report("maintenance")
}

func (d *Dispatcher) show(msg string) {
	if d.out.Display != nil {
		d.check("show", d.out.Display.Show(msg))
	}
}

func (d *Dispatcher) led(id indicator.LED, on bool) {
	if d.out.LEDs != nil {
		d.check("set "+id.String()+" led", d.out.LEDs.Set(id, on))
	}
}

func (d *Dispatcher) color(rgb uint32) {
	if d.out.Panel != nil {
		d.check("set panel", d.out.Panel.SetColor(rgb))
	}
}

func (d *Dispatcher) melody(notes []buzzer.Note) {
	if d.out.Buzzer != nil {
		d.check("melody", buzzer.Melody(d.out.Buzzer, d.clk, notes))
	}
}

func (d *Dispatcher) report(event string) {
	if d.out.Status != nil {
		d.out.Status.Event(event)
	}
}

func (d *Dispatcher) check(what string, err error) {
	if err != nil {
		log.Printf("Feedback: %s: %v", what, err)
	}
}
