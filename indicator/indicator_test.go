package indicator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWithoutPins(t *testing.T) {
	leds, err := New(Config{})
	require.NoError(t, err)
	assert.IsType(t, &Noop{}, leds)
	assert.NoError(t, leds.Set(Green, true))
	assert.NoError(t, leds.Release())
}

func TestLEDString(t *testing.T) {
	assert.Equal(t, "green", Green.String())
	assert.Equal(t, "red", Red.String())
	assert.Equal(t, "led(7)", LED(7).String())
}
