package display

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"keylock/keypad"
)

func lit(img *image.Gray, x, y int) bool {
	return img.GrayAt(x, y).Y != 0
}

func countLit(img *image.Gray, r image.Rectangle) int {
	n := 0
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			if lit(img, x, y) {
				n++
			}
		}
	}
	return n
}

func TestGridMatchesOLEDGeometry(t *testing.T) {
	g := Grid{Bounds: image.Rect(0, 0, 128, 64)}
	assert.Equal(t, image.Rect(0, 0, 42, 16), g.Cell(keypad.Cursor{}))
	assert.Equal(t, image.Rect(84, 48, 126, 64), g.Cell(keypad.Cursor{Col: 2, Row: 3}))
	assert.Equal(t, image.Rect(42, 32, 82, 47), g.Highlight(keypad.Cursor{Col: 1, Row: 2}))
}

func TestDrawKeypadHighlightsCursor(t *testing.T) {
	img := image.NewGray(image.Rect(0, 0, 128, 64))
	g := Grid{Bounds: img.Bounds()}
	cursor := keypad.Cursor{Col: 1, Row: 2}

	DrawKeypad(img, color.White, color.Black, keypad.Default, cursor)

	h := g.Highlight(cursor)
	assert.True(t, lit(img, h.Min.X, h.Min.Y))
	assert.True(t, lit(img, h.Max.X-1, h.Max.Y-1))

	// No outline on an unselected cell away from the frame.
	other := g.Highlight(keypad.Cursor{Col: 2, Row: 1})
	assert.False(t, lit(img, other.Min.X, other.Min.Y+2))

	// Frame.
	assert.True(t, lit(img, 0, 0))
	assert.True(t, lit(img, 1, 30))
	assert.True(t, lit(img, 127, 63))

	// Every cell has a glyph inside it.
	for row := 0; row < keypad.Rows; row++ {
		for col := 0; col < keypad.Cols; col++ {
			inner := g.Cell(keypad.Cursor{Col: col, Row: row}).Inset(3)
			assert.Greater(t, countLit(img, inner), 0, "cell %d,%d", col, row)
		}
	}
}

func TestDrawKeypadFullRedraw(t *testing.T) {
	img := image.NewGray(image.Rect(0, 0, 128, 64))
	g := Grid{Bounds: img.Bounds()}
	first := keypad.Cursor{Col: 1, Row: 1}

	DrawKeypad(img, color.White, color.Black, keypad.Default, first)
	DrawKeypad(img, color.White, color.Black, keypad.Default, keypad.Cursor{Col: 2, Row: 3})

	h := g.Highlight(first)
	assert.False(t, lit(img, h.Min.X, h.Min.Y+1))
}

func TestDrawMessage(t *testing.T) {
	img := image.NewGray(image.Rect(0, 0, 128, 64))
	DrawKeypad(img, color.White, color.Black, keypad.Default, keypad.Cursor{})

	DrawMessage(img, color.White, color.Black, "Code: 12")

	// Text sits in the first line; the rest of the screen is cleared.
	assert.Greater(t, countLit(img, image.Rect(0, 0, 128, 13)), 0)
	assert.Equal(t, 0, countLit(img, image.Rect(0, 20, 128, 64)))
}

func TestWrap(t *testing.T) {
	tests := []struct {
		msg  string
		cols int
		want []string
	}{
		{"ACCESS GRANTED", 18, []string{"ACCESS GRANTED"}},
		{"Entering maintenance mode...", 18, []string{"Entering", "maintenance", "mode..."}},
		{"Entering maintenance mode...", 20, []string{"Entering maintenance", "mode..."}},
		{"abcdefghij", 4, []string{"abcd", "efgh", "ij"}},
		{"a bb", 4, []string{"a bb"}},
		{"", 18, nil},
		{"x", 0, nil},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Wrap(tt.msg, tt.cols), "%q", tt.msg)
	}
}

func TestASCII(t *testing.T) {
	got := ASCII(keypad.Default, keypad.Cursor{Col: 2, Row: 3})
	assert.Equal(t, " 1  2  3 \n 4  5  6 \n 7  8  9 \n *  0 [#]\n", got)
}

func TestNew(t *testing.T) {
	d, err := New(DefaultConfig)
	require.NoError(t, err)
	assert.IsType(t, &Log{}, d)
	assert.NoError(t, d.Show("hello"))
	assert.NoError(t, d.RenderKeypad(keypad.Default, keypad.Cursor{}))

	d, err = New(Config{Type: "none"})
	require.NoError(t, err)
	assert.IsType(t, &Noop{}, d)

	_, err = New(Config{Type: "eink"})
	assert.Error(t, err)

	if !ScreenSupported() {
		_, err = New(Config{Type: "framebuffer"})
		assert.ErrorIs(t, err, ErrScreenNotCompiled)
	}
}

func TestValidate(t *testing.T) {
	assert.NoError(t, DefaultConfig.Validate())
	assert.Error(t, Config{Type: "ssd1306"}.Validate())
	assert.NoError(t, Config{Type: "ssd1306", Width: 128, Height: 32}.Validate())
}
