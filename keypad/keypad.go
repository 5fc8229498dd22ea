// Package keypad models the on-screen 4x3 keypad and the joystick-driven
// cursor that selects a cell on it.
package keypad

import (
	"fmt"
	"time"

	"golang.org/x/time/rate"
)

// Keypad dimensions.
const (
	Rows = 4
	Cols = 3
)

// Layout is the fixed character grid, indexed [row][col].
type Layout [Rows][Cols]byte

// Default is the telephone-style layout drawn on the display.
var Default = Layout{
	{'1', '2', '3'},
	{'4', '5', '6'},
	{'7', '8', '9'},
	{'*', '0', '#'},
}

// At returns the character under the cursor.
func (l Layout) At(c Cursor) byte {
	return l[c.Row][c.Col]
}

// Contains reports whether ch appears on the keypad.
func (l Layout) Contains(ch byte) bool {
	for _, row := range l {
		for _, k := range row {
			if k == ch {
				return true
			}
		}
	}
	return false
}

// Cursor is a keypad cell. Col is in [0,2] and Row in [0,3].
type Cursor struct {
	Col int
	Row int
}

func (c Cursor) String() string {
	return fmt.Sprintf("(%d,%d)", c.Col, c.Row)
}

// Config holds the joystick thresholds used for cursor movement.
type Config struct {
	LowThreshold  uint16 `yaml:"low_threshold"`  // below this moves toward the negative direction
	HighThreshold uint16 `yaml:"high_threshold"` // above this moves toward the positive direction
	MoveMs        int    `yaml:"move_ms"`        // minimum interval between accepted moves
	InvertY       bool   `yaml:"invert_y"`       // high Y moves up instead of down
}

// DefaultConfig matches the reference wiring: a 12-bit joystick whose Y
// axis reads high when pushed up.
var DefaultConfig = Config{
	LowThreshold:  1000,
	HighThreshold: 3000,
	MoveMs:        200,
	InvertY:       true,
}

// Navigator moves a Cursor in response to debounced joystick readings.
type Navigator struct {
	cfg     Config
	cursor  Cursor
	limiter *rate.Limiter
}

// NewNavigator returns a Navigator with the cursor on the top-left cell.
func NewNavigator(cfg Config) *Navigator {
	every := time.Duration(cfg.MoveMs) * time.Millisecond
	return &Navigator{
		cfg:     cfg,
		limiter: rate.NewLimiter(rate.Every(every), 1),
	}
}

// Cursor returns the current cursor position.
func (n *Navigator) Cursor() Cursor {
	return n.cursor
}

// Move applies one pair of axis readings taken at now. The returned bool is
// true when the cursor changed. Moves closer together than the configured
// interval are ignored; a call that moves both axes counts as one move.
func (n *Navigator) Move(x, y uint16, now time.Time) (Cursor, bool) {
	if n.limiter.TokensAt(now) < 1 {
		return n.cursor, false
	}

	next := n.cursor

	switch {
	case x < n.cfg.LowThreshold && next.Col > 0:
		next.Col--
	case x > n.cfg.HighThreshold && next.Col < Cols-1:
		next.Col++
	}

	up, down := y < n.cfg.LowThreshold, y > n.cfg.HighThreshold
	if n.cfg.InvertY {
		up, down = down, up
	}
	switch {
	case up && next.Row > 0:
		next.Row--
	case down && next.Row < Rows-1:
		next.Row++
	}

	if next == n.cursor {
		return n.cursor, false
	}

	n.limiter.AllowN(now, 1)
	n.cursor = next
	return n.cursor, true
}
