package entry

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPressAccumulates(t *testing.T) {
	var e Entry

	code, done := e.Press('1')
	assert.Equal(t, "1", code)
	assert.False(t, done)

	e.Press('2')
	code, done = e.Press('3')
	assert.Equal(t, "123", code)
	assert.False(t, done)
	assert.Equal(t, 3, e.Len())
}

func TestPressCompletesAndClears(t *testing.T) {
	var e Entry
	for _, ch := range []byte("987") {
		e.Press(ch)
	}

	code, done := e.Press('#')
	assert.True(t, done)
	assert.Equal(t, "987#", code)
	assert.Equal(t, 0, e.Len())
	assert.Equal(t, "", e.Code())
}

func TestNeverExceedsLength(t *testing.T) {
	var e Entry
	completions := 0
	for i := 0; i < 40; i++ {
		_, done := e.Press(byte('0' + i%10))
		assert.LessOrEqual(t, e.Len(), Length)
		if done {
			completions++
		}
	}
	assert.Equal(t, 10, completions)
}

func TestReset(t *testing.T) {
	var e Entry
	e.Press('5')
	e.Press('5')
	e.Reset()
	assert.Equal(t, 0, e.Len())

	code, _ := e.Press('7')
	assert.Equal(t, "7", code)
}
