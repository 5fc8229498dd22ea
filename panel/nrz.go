package panel

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"

	"periph.io/x/conn/v3/spi"
	"periph.io/x/conn/v3/spi/spireg"
	"periph.io/x/devices/v3/nrzled"
	"periph.io/x/host/v3"
)

// NRZ implements Panel on a WS2812 chain driven from an SPI port.
type NRZ struct {
	port spi.PortCloser
	dev  *nrzled.Dev
	img  *image.NRGBA
	gain Gain
}

// NewNRZ opens the SPI port and the LED chain.
func NewNRZ(port string, pixels int, gain Gain) (*NRZ, error) {
	if _, err := host.Init(); err != nil {
		return nil, fmt.Errorf("init periph: %w", err)
	}
	p, err := spireg.Open(port)
	if err != nil {
		return nil, fmt.Errorf("open spi %q: %w", port, err)
	}

	opts := nrzled.DefaultOpts
	opts.NumPixels = pixels
	opts.Channels = 3
	dev, err := nrzled.NewSPI(p, &opts)
	if err != nil {
		p.Close()
		return nil, fmt.Errorf("open nrzled: %w", err)
	}

	n := &NRZ{
		port: p,
		dev:  dev,
		img:  image.NewNRGBA(image.Rect(0, 0, pixels, 1)),
		gain: gain,
	}
	if err := n.SetColor(Off); err != nil {
		n.Release()
		return nil, err
	}
	return n, nil
}

// SetColor implements Panel.SetColor.
func (n *NRZ) SetColor(rgb uint32) error {
	r, g, b := Scale(rgb, n.gain)
	draw.Draw(n.img, n.img.Bounds(), &image.Uniform{color.NRGBA{r, g, b, 0xFF}}, image.Point{}, draw.Src)
	if err := n.dev.Draw(n.img.Bounds(), n.img, image.Point{}); err != nil {
		return fmt.Errorf("nrzled draw: %w", err)
	}
	return nil
}

// Release implements Panel.Release.
func (n *NRZ) Release() error {
	n.dev.Halt()
	return n.port.Close()
}
