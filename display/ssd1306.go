package display

import (
	"fmt"
	"image"
	"log"

	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/devices/v3/ssd1306"
	"periph.io/x/devices/v3/ssd1306/image1bit"
	"periph.io/x/host/v3"

	"keylock/keypad"
)

// SSD1306 implements Display on a monochrome SSD1306 OLED over I2C.
type SSD1306 struct {
	bus i2c.BusCloser
	dev *ssd1306.Dev
	img *image1bit.VerticalLSB
}

// NewSSD1306 opens the I2C bus and initializes the panel.
func NewSSD1306(cfg Config) (*SSD1306, error) {
	if _, err := host.Init(); err != nil {
		return nil, fmt.Errorf("init periph: %w", err)
	}
	bus, err := i2creg.Open(cfg.I2C)
	if err != nil {
		return nil, fmt.Errorf("open i2c %q: %w", cfg.I2C, err)
	}

	opts := ssd1306.DefaultOpts
	opts.W = cfg.Width
	opts.H = cfg.Height
	opts.Rotated = cfg.Rotated
	dev, err := ssd1306.NewI2C(bus, &opts)
	if err != nil {
		bus.Close()
		return nil, fmt.Errorf("open ssd1306: %w", err)
	}
	log.Printf("Display: ssd1306 %dx%d on %v", cfg.Width, cfg.Height, bus)

	return &SSD1306{
		bus: bus,
		dev: dev,
		img: image1bit.NewVerticalLSB(dev.Bounds()),
	}, nil
}

// Show implements Display.Show.
func (s *SSD1306) Show(msg string) error {
	DrawMessage(s.img, image1bit.On, image1bit.Off, msg)
	return s.flush()
}

// RenderKeypad implements Display.RenderKeypad.
func (s *SSD1306) RenderKeypad(layout keypad.Layout, cursor keypad.Cursor) error {
	DrawKeypad(s.img, image1bit.On, image1bit.Off, layout, cursor)
	return s.flush()
}

// Release implements Display.Release.
func (s *SSD1306) Release() error {
	if err := s.dev.Halt(); err != nil {
		log.Printf("Display: halt: %v", err)
	}
	return s.bus.Close()
}

func (s *SSD1306) flush() error {
	if err := s.dev.Draw(s.dev.Bounds(), s.img, image.Point{}); err != nil {
		return fmt.Errorf("ssd1306 draw: %w", err)
	}
	return nil
}
