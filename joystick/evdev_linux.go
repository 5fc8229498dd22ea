//go:build linux

package joystick

import (
	"context"
	"fmt"
	"log"
	"sync/atomic"

	"github.com/kenshaw/evdev"
)

// Evdev implements Analog for a USB gamepad or joystick exposed as an input
// event device. ABS_X answers on XChannel and ABS_Y on YChannel; values are
// rescaled from [AxisMin, AxisMax] to [0, FullScale].
type Evdev struct {
	device   *evdev.Evdev
	cancel   context.CancelFunc
	xch, ych int
	x, y     atomic.Uint32
}

// NewEvdev opens cfg.Device and starts tracking its absolute axes.
func NewEvdev(cfg Config) (*Evdev, error) {
	dev, err := evdev.OpenFile(cfg.Device)
	if err != nil {
		return nil, fmt.Errorf("open evdev %s: %w", cfg.Device, err)
	}

	log.Printf("Joystick: opened %s (vendor 0x%04x, product 0x%04x)", dev.Name(), dev.ID().Vendor, dev.ID().Product)

	ctx, cancel := context.WithCancel(context.Background())
	e := &Evdev{device: dev, cancel: cancel, xch: cfg.XChannel, ych: cfg.YChannel}
	mid := uint32(cfg.Midpoint())
	e.x.Store(mid)
	e.y.Store(mid)

	go e.listen(ctx, cfg)
	return e, nil
}

func (e *Evdev) listen(ctx context.Context, cfg Config) {
	ch := e.device.Poll(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case event := <-ch:
			if event == nil {
				log.Printf("Joystick: evdev device closed")
				return
			}
			abs, ok := event.Type.(evdev.AbsoluteType)
			if !ok {
				continue
			}
			e.record(abs, uint32(scale(event.Value, cfg.AxisMin, cfg.AxisMax, cfg.FullScale)))
		}
	}
}

func (e *Evdev) record(abs evdev.AbsoluteType, v uint32) {
	switch abs {
	case evdev.AbsoluteX:
		e.x.Store(v)
	case evdev.AbsoluteY:
		e.y.Store(v)
	}
}

// ReadAxis implements Analog.ReadAxis.
func (e *Evdev) ReadAxis(channel int) (uint16, error) {
	switch channel {
	case e.xch:
		return uint16(e.x.Load()), nil
	case e.ych:
		return uint16(e.y.Load()), nil
	default:
		return 0, fmt.Errorf("evdev: axis %d not supported", channel)
	}
}

// Close implements Analog.Close.
func (e *Evdev) Close() error {
	e.cancel()
	return e.device.Close()
}
