package joystick

import (
	"fmt"
	"log"

	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/devices/v3/ads1x15"
	"periph.io/x/host/v3"
)

// ADS implements Analog using an ADS1x15 I2C converter. The board's
// joystick potentiometers feed single-ended channels 0-3.
type ADS struct {
	bus  i2c.BusCloser
	pins map[int]ads1x15.PinADC
	full uint16
	max  int32
}

var adsChannels = []ads1x15.Channel{
	ads1x15.Channel0,
	ads1x15.Channel1,
	ads1x15.Channel2,
	ads1x15.Channel3,
}

// NewADS opens the converter on cfg.Device (empty selects the first bus).
func NewADS(cfg Config) (*ADS, error) {
	if _, err := host.Init(); err != nil {
		return nil, fmt.Errorf("host init: %w", err)
	}

	bus, err := i2creg.Open(cfg.Device)
	if err != nil {
		return nil, fmt.Errorf("open i2c %q: %w", cfg.Device, err)
	}

	var dev *ads1x15.Dev
	// Single-ended readings only use the positive half of the signed range.
	max := int32(32767)
	if cfg.Type == "ads1015" {
		max = 2047
		dev, err = ads1x15.NewADS1015(bus, &ads1x15.DefaultOpts)
	} else {
		dev, err = ads1x15.NewADS1115(bus, &ads1x15.DefaultOpts)
	}
	if err != nil {
		bus.Close()
		return nil, fmt.Errorf("open ads1x15: %w", err)
	}

	a := &ADS{
		bus:  bus,
		pins: make(map[int]ads1x15.PinADC),
		full: cfg.FullScale,
		max:  max,
	}

	for _, ch := range []int{cfg.XChannel, cfg.YChannel} {
		if ch < 0 || ch >= len(adsChannels) {
			a.Close()
			return nil, fmt.Errorf("ads1x15: channel %d out of range", ch)
		}
		if _, ok := a.pins[ch]; ok {
			continue
		}
		pin, err := dev.PinForChannel(adsChannels[ch], 4096*physic.MilliVolt, 860*physic.Hertz, ads1x15.BestQuality)
		if err != nil {
			a.Close()
			return nil, fmt.Errorf("ads1x15 channel %d: %w", ch, err)
		}
		a.pins[ch] = pin
	}

	log.Printf("Joystick: %s on %s (X=ch%d, Y=ch%d)", dev, bus, cfg.XChannel, cfg.YChannel)
	return a, nil
}

// ReadAxis implements Analog.ReadAxis.
func (a *ADS) ReadAxis(channel int) (uint16, error) {
	pin, ok := a.pins[channel]
	if !ok {
		return 0, fmt.Errorf("ads1x15: channel %d not configured", channel)
	}
	s, err := pin.Read()
	if err != nil {
		return 0, err
	}
	return scale(s.Raw, 0, a.max, a.full), nil
}

// Close implements Analog.Close.
func (a *ADS) Close() error {
	for _, pin := range a.pins {
		pin.Halt()
	}
	return a.bus.Close()
}
