//go:build screen

package display

import (
	"encoding/binary"
	"fmt"
	"image"
	"io"
	"log"
	"os"

	"github.com/d21d3q/framebuffer"
	"github.com/fogleman/gg"
	"golang.org/x/image/font/basicfont"

	"keylock/keypad"
)

// ScreenSupported returns whether screen support is compiled in.
func ScreenSupported() bool {
	return true
}

// Framebuffer implements Display on a 16 bpp Linux framebuffer.
type Framebuffer struct {
	device          any
	dc              *gg.Context
	pixBuffer       []byte
	backBuffer      []byte
	rgbaImage       *image.RGBA
	width           int
	height          int
	lineLengthBytes int
	font            string
}

// NewFramebuffer opens the framebuffer device.
func NewFramebuffer(cfg Config) (*Framebuffer, error) {
	fbLowLevel, err := framebuffer.OpenFrameBuffer(cfg.Device, os.O_RDWR)
	if err != nil {
		return nil, fmt.Errorf("open framebuffer: %w", err)
	}

	varInfo, err := fbLowLevel.VarScreenInfo()
	if err != nil {
		closeDevice(fbLowLevel)
		return nil, fmt.Errorf("get variable screen info: %w", err)
	}
	fixedInfo, err := fbLowLevel.FixScreenInfo()
	if err != nil {
		closeDevice(fbLowLevel)
		return nil, fmt.Errorf("get fixed screen info: %w", err)
	}

	f := &Framebuffer{device: fbLowLevel, font: cfg.Font}
	f.pixBuffer, err = fbLowLevel.Pixels()
	if err != nil {
		closeDevice(fbLowLevel)
		return nil, fmt.Errorf("get pixel data: %w", err)
	}

	f.width = int(varInfo.XRes)
	f.height = int(varInfo.YRes)
	f.lineLengthBytes = int(fixedInfo.LineLength)
	f.backBuffer = make([]byte, f.height*f.lineLengthBytes)

	log.Printf("Display: framebuffer %dx%d, %d bpp, stride %d bytes",
		f.width, f.height, varInfo.BitsPerPixel, f.lineLengthBytes)

	f.rgbaImage = image.NewRGBA(image.Rect(0, 0, f.width, f.height))
	f.dc = gg.NewContextForRGBA(f.rgbaImage)
	f.clear()
	return f, nil
}

// Show implements Display.Show.
func (f *Framebuffer) Show(msg string) error {
	f.dc.SetRGB(0, 0, 0)
	f.dc.Clear()
	f.setFontSize(f.height / 8)
	f.dc.SetRGB(1, 1, 1)
	f.dc.DrawStringWrapped(msg, float64(f.width/2), float64(f.height/2), 0.5, 0.5,
		float64(f.width)*0.9, 1.3, gg.AlignCenter)
	f.update()
	return nil
}

// RenderKeypad implements Display.RenderKeypad.
func (f *Framebuffer) RenderKeypad(layout keypad.Layout, cursor keypad.Cursor) error {
	f.dc.SetRGB(0, 0, 0)
	f.dc.Clear()

	g := Grid{Bounds: f.rgbaImage.Bounds()}
	f.setFontSize(g.Cell(cursor).Dy() / 2)
	for row := 0; row < keypad.Rows; row++ {
		for col := 0; col < keypad.Cols; col++ {
			c := keypad.Cursor{Col: col, Row: row}
			cell := g.Cell(c)
			if c == cursor {
				f.dc.SetRGB(0, 0.5, 0)
				f.dc.DrawRectangle(float64(cell.Min.X+2), float64(cell.Min.Y+2),
					float64(cell.Dx()-4), float64(cell.Dy()-4))
				f.dc.Fill()
			}
			f.dc.SetRGB(1, 1, 1)
			f.dc.DrawStringAnchored(string(layout.At(c)),
				float64(cell.Min.X+cell.Dx()/2), float64(cell.Min.Y+cell.Dy()/2), 0.5, 0.5)
		}
	}
	f.update()
	return nil
}

// Release implements Display.Release.
func (f *Framebuffer) Release() error {
	f.clear()
	return closeDevice(f.device)
}

// closeDevice closes dev whether its Close reports an error or not.
func closeDevice(dev any) error {
	switch c := dev.(type) {
	case io.Closer:
		return c.Close()
	case interface{ Close() }:
		c.Close()
	}
	return nil
}

func (f *Framebuffer) setFontSize(size int) {
	if err := f.dc.LoadFontFace(f.font, float64(size)); err != nil {
		log.Printf("Display: failed to load font: %v", err)
		f.dc.SetFontFace(basicfont.Face7x13)
	}
}

func (f *Framebuffer) clear() {
	for i := range f.pixBuffer {
		f.pixBuffer[i] = 0
	}
}

// update converts the RGBA canvas to RGB565 and copies it to the screen.
func (f *Framebuffer) update() {
	for y := 0; y < f.height; y++ {
		for x := 0; x < f.width; x++ {
			r, g, b, _ := f.rgbaImage.At(x, y).RGBA()
			r5 := uint16(r >> (16 - 5))
			g6 := uint16(g >> (16 - 6))
			b5 := uint16(b >> (16 - 5))
			pixel16 := (r5 << 11) | (g6 << 5) | b5
			fbIdx := (y * f.lineLengthBytes) + (x * 2)
			if fbIdx+1 < len(f.backBuffer) {
				binary.LittleEndian.PutUint16(f.backBuffer[fbIdx:], pixel16)
			}
		}
	}
	copy(f.pixBuffer, f.backBuffer)
}
