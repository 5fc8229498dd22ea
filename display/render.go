package display

import (
	"image"
	"image/color"
	"image/draw"
	"strings"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"keylock/keypad"
)

// borderWidth is the frame drawn around the keypad, in pixels.
const borderWidth = 2

var face = basicfont.Face7x13

// Grid is the pixel geometry of the keypad on a screen.
type Grid struct {
	Bounds image.Rectangle
}

// Cell returns the rectangle of the keypad cell at c.
func (g Grid) Cell(c keypad.Cursor) image.Rectangle {
	w := g.Bounds.Dx() / keypad.Cols
	h := g.Bounds.Dy() / keypad.Rows
	x := g.Bounds.Min.X + c.Col*w
	y := g.Bounds.Min.Y + c.Row*h
	return image.Rect(x, y, x+w, y+h)
}

// Highlight returns the outline drawn around the selected cell. It leaves a
// gap to the neighbouring cells.
func (g Grid) Highlight(c keypad.Cursor) image.Rectangle {
	r := g.Cell(c)
	return image.Rect(r.Min.X, r.Min.Y, r.Max.X-2, r.Max.Y-1)
}

// DrawKeypad paints layout onto dst with a frame and the cursor cell
// outlined.
func DrawKeypad(dst draw.Image, fg, bg color.Color, layout keypad.Layout, cursor keypad.Cursor) {
	b := dst.Bounds()
	draw.Draw(dst, b, image.NewUniform(bg), image.Point{}, draw.Src)
	for i := 0; i < borderWidth; i++ {
		outline(dst, b.Inset(i), fg)
	}

	g := Grid{Bounds: b}
	d := &font.Drawer{Dst: dst, Src: image.NewUniform(fg), Face: face}
	for row := 0; row < keypad.Rows; row++ {
		for col := 0; col < keypad.Cols; col++ {
			c := keypad.Cursor{Col: col, Row: row}
			cell := g.Cell(c)
			glyph := string(layout.At(c))
			adv := d.MeasureString(glyph).Ceil()
			asc := face.Metrics().Ascent.Ceil()
			x := cell.Min.X + (cell.Dx()-adv)/2
			y := cell.Min.Y + (cell.Dy()+asc)/2 - 1
			d.Dot = fixed.P(x, y)
			d.DrawString(glyph)
			if c == cursor {
				outline(dst, g.Highlight(c), fg)
			}
		}
	}
}

// DrawMessage paints msg onto dst from the top-left corner, wrapping at word
// boundaries to fit the width.
func DrawMessage(dst draw.Image, fg, bg color.Color, msg string) {
	b := dst.Bounds()
	draw.Draw(dst, b, image.NewUniform(bg), image.Point{}, draw.Src)

	d := &font.Drawer{Dst: dst, Src: image.NewUniform(fg), Face: face}
	cols := b.Dx() / face.Advance
	lineH := face.Metrics().Height.Ceil()
	y := b.Min.Y + face.Metrics().Ascent.Ceil()
	for _, line := range Wrap(msg, cols) {
		if y > b.Max.Y {
			break
		}
		d.Dot = fixed.P(b.Min.X, y)
		d.DrawString(line)
		y += lineH
	}
}

// Wrap splits msg into lines of at most cols characters, breaking at spaces
// where possible.
func Wrap(msg string, cols int) []string {
	if cols <= 0 {
		return nil
	}
	var lines []string
	var cur string
	for _, word := range strings.Fields(msg) {
		for len(word) > cols {
			if cur != "" {
				lines = append(lines, cur)
				cur = ""
			}
			lines = append(lines, word[:cols])
			word = word[cols:]
		}
		switch {
		case cur == "":
			cur = word
		case len(cur)+1+len(word) <= cols:
			cur += " " + word
		default:
			lines = append(lines, cur)
			cur = word
		}
	}
	if cur != "" {
		lines = append(lines, cur)
	}
	return lines
}

func outline(dst draw.Image, r image.Rectangle, c color.Color) {
	if r.Empty() {
		return
	}
	for x := r.Min.X; x < r.Max.X; x++ {
		dst.Set(x, r.Min.Y, c)
		dst.Set(x, r.Max.Y-1, c)
	}
	for y := r.Min.Y; y < r.Max.Y; y++ {
		dst.Set(r.Min.X, y, c)
		dst.Set(r.Max.X-1, y, c)
	}
}
