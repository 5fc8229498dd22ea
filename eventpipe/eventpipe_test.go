package eventpipe

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"keylock/clock"
)

func TestParseLine(t *testing.T) {
	tests := []struct {
		line string
		want Event
	}{
		{"axis x 100", Event{Type: EventAxis, Axis: "x", Value: 100}},
		{"AXIS Y 4095", Event{Type: EventAxis, Axis: "y", Value: 4095}},
		{"center", Event{Type: EventCenter}},
		{"press a", Event{Type: EventPress, Button: "a"}},
		{"hold service", Event{Type: EventHold, Button: "b"}},
		{"release btn1", Event{Type: EventRelease, Button: "a"}},
	}
	for _, tt := range tests {
		got, err := parseLine(tt.line)
		require.NoError(t, err, tt.line)
		assert.Equal(t, tt.want, got, tt.line)
	}

	for _, bad := range []string{"axis z 1", "axis x", "axis x 70000", "axis x -1", "press", "press c", "beep 1234"} {
		_, err := parseLine(bad)
		assert.Error(t, err, bad)
	}
}

func TestSimAxes(t *testing.T) {
	s := NewSim(DefaultConfig, 2048, clock.NewFake(time.Unix(0, 0)))
	j := s.Joystick(1, 0)

	x, err := j.ReadAxis(1)
	require.NoError(t, err)
	assert.Equal(t, uint16(2048), x)

	s.Handle(Event{Type: EventAxis, Axis: "x", Value: 10})
	s.Handle(Event{Type: EventAxis, Axis: "y", Value: 4000})
	x, _ = j.ReadAxis(1)
	y, _ := j.ReadAxis(0)
	assert.Equal(t, uint16(10), x)
	assert.Equal(t, uint16(4000), y)

	s.Handle(Event{Type: EventCenter})
	x, _ = j.ReadAxis(1)
	assert.Equal(t, uint16(2048), x)

	_, err = j.ReadAxis(3)
	assert.Error(t, err)
}

func TestSimPressExpires(t *testing.T) {
	clk := clock.NewFake(time.Unix(0, 0))
	s := NewSim(DefaultConfig, 2048, clk)
	a, b := s.Button("a"), s.Button("b")

	s.Handle(Event{Type: EventPress, Button: "a"})
	on, _ := a.Active()
	assert.True(t, on)
	on, _ = b.Active()
	assert.False(t, on)

	clk.Advance(50 * time.Millisecond)
	on, _ = a.Active()
	assert.True(t, on, "still pressed after settle delay")

	clk.Advance(80 * time.Millisecond)
	on, _ = a.Active()
	assert.False(t, on)
}

func TestSimHoldRelease(t *testing.T) {
	clk := clock.NewFake(time.Unix(0, 0))
	s := NewSim(DefaultConfig, 2048, clk)
	b := s.Button("b")

	s.Handle(Event{Type: EventHold, Button: "b"})
	clk.Advance(time.Hour)
	on, _ := b.Active()
	assert.True(t, on)

	s.Handle(Event{Type: EventRelease, Button: "b"})
	on, _ = b.Active()
	assert.False(t, on)
}

func TestPipeDrivesSim(t *testing.T) {
	path := filepath.Join(t.TempDir(), "events")
	s := NewSim(DefaultConfig, 2048, clock.Real{})
	ep, err := New(Config{Path: path}, s.Handle)
	require.NoError(t, err)
	go ep.Start()

	w, err := os.OpenFile(path, os.O_WRONLY, 0)
	require.NoError(t, err)
	_, err = w.WriteString("# comment\naxis x 5\nbogus\nhold a\n")
	require.NoError(t, err)
	require.NoError(t, w.Close())

	a := s.Button("a")
	require.Eventually(t, func() bool {
		on, _ := a.Active()
		return on
	}, 2*time.Second, 5*time.Millisecond)
	x, _ := s.Joystick(1, 0).ReadAxis(1)
	assert.Equal(t, uint16(5), x)

	require.NoError(t, ep.Close())
}

func TestNewWithoutPath(t *testing.T) {
	ep, err := New(Config{}, nil)
	require.NoError(t, err)
	assert.Nil(t, ep)
}
