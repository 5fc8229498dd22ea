package keypad

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	center = 2048
	low    = 200
	high   = 3900
)

var t0 = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

func TestLayout(t *testing.T) {
	assert.Equal(t, byte('1'), Default.At(Cursor{0, 0}))
	assert.Equal(t, byte('5'), Default.At(Cursor{1, 1}))
	assert.Equal(t, byte('#'), Default.At(Cursor{2, 3}))
	assert.Equal(t, byte('0'), Default.At(Cursor{1, 3}))

	assert.True(t, Default.Contains('*'))
	assert.True(t, Default.Contains('9'))
	assert.False(t, Default.Contains('A'))
}

func TestMoveDirections(t *testing.T) {
	tests := []struct {
		name string
		x, y uint16
		from Cursor
		want Cursor
	}{
		{"left", low, center, Cursor{1, 1}, Cursor{0, 1}},
		{"right", high, center, Cursor{1, 1}, Cursor{2, 1}},
		{"up (high y)", center, high, Cursor{1, 1}, Cursor{1, 0}},
		{"down (low y)", center, low, Cursor{1, 1}, Cursor{1, 2}},
		{"diagonal", high, low, Cursor{1, 1}, Cursor{2, 2}},
		{"neutral", center, center, Cursor{1, 1}, Cursor{1, 1}},
		{"threshold is exclusive", 1000, 3000, Cursor{1, 1}, Cursor{1, 1}},
		{"clamp left", low, center, Cursor{0, 2}, Cursor{0, 2}},
		{"clamp right", high, center, Cursor{2, 2}, Cursor{2, 2}},
		{"clamp top", center, high, Cursor{1, 0}, Cursor{1, 0}},
		{"clamp bottom", center, low, Cursor{1, 3}, Cursor{1, 3}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := NewNavigator(DefaultConfig)
			n.cursor = tt.from

			got, moved := n.Move(tt.x, tt.y, t0)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.want != tt.from, moved)
		})
	}
}

func TestMoveNotInverted(t *testing.T) {
	cfg := DefaultConfig
	cfg.InvertY = false
	n := NewNavigator(cfg)
	n.cursor = Cursor{1, 1}

	got, moved := n.Move(center, low, t0)
	require.True(t, moved)
	assert.Equal(t, Cursor{1, 0}, got)
}

func TestMoveRateLimited(t *testing.T) {
	n := NewNavigator(DefaultConfig)

	_, moved := n.Move(high, center, t0)
	require.True(t, moved)

	_, moved = n.Move(high, center, t0.Add(100*time.Millisecond))
	assert.False(t, moved, "second move inside the interval")

	_, moved = n.Move(high, center, t0.Add(199*time.Millisecond))
	assert.False(t, moved)

	got, moved := n.Move(center, low, t0.Add(250*time.Millisecond))
	assert.True(t, moved)
	assert.Equal(t, Cursor{1, 1}, got)
}

func TestMoveBlockedDoesNotConsumeInterval(t *testing.T) {
	n := NewNavigator(DefaultConfig)

	// Pushing into the wall is not a move, so the next real move is not delayed.
	_, moved := n.Move(low, center, t0)
	require.False(t, moved)

	_, moved = n.Move(high, center, t0.Add(10*time.Millisecond))
	assert.True(t, moved)
}

func TestCursorAlwaysInBounds(t *testing.T) {
	r := rand.New(rand.NewSource(42))
	n := NewNavigator(DefaultConfig)
	now := t0

	for i := 0; i < 5000; i++ {
		now = now.Add(time.Duration(r.Intn(400)) * time.Millisecond)
		c, _ := n.Move(uint16(r.Intn(4096)), uint16(r.Intn(4096)), now)
		require.GreaterOrEqual(t, c.Col, 0)
		require.Less(t, c.Col, Cols)
		require.GreaterOrEqual(t, c.Row, 0)
		require.Less(t, c.Row, Rows)
	}
}

func TestAtMostOneMovePerInterval(t *testing.T) {
	r := rand.New(rand.NewSource(7))
	n := NewNavigator(DefaultConfig)
	now := t0
	var last time.Time

	for i := 0; i < 2000; i++ {
		now = now.Add(time.Duration(1+r.Intn(60)) * time.Millisecond)
		_, moved := n.Move(uint16(r.Intn(4096)), uint16(r.Intn(4096)), now)
		if moved {
			if !last.IsZero() {
				require.GreaterOrEqual(t, now.Sub(last), 200*time.Millisecond)
			}
			last = now
		}
	}
}
