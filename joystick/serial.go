package joystick

import (
	"bufio"
	"fmt"
	"log"
	"strconv"
	"strings"
	"sync/atomic"

	"github.com/tarm/serial"
)

// Serial implements Analog for a microcontroller bridge that streams
// samples over a serial line, one "x y" pair of decimal values per line.
// Channel XChannel maps to the first field, YChannel to the second.
type Serial struct {
	port   *serial.Port
	xch    int
	x, y   atomic.Uint32
	done   chan struct{}
	closed atomic.Bool
}

// NewSerial opens the bridge on cfg.Device and starts the line reader.
func NewSerial(cfg Config) (*Serial, error) {
	baud := cfg.Baud
	if baud == 0 {
		baud = 115200
	}
	port, err := serial.OpenPort(&serial.Config{Name: cfg.Device, Baud: baud})
	if err != nil {
		return nil, fmt.Errorf("open serial %s: %w", cfg.Device, err)
	}

	s := &Serial{port: port, xch: cfg.XChannel, done: make(chan struct{})}
	mid := uint32(cfg.Midpoint())
	s.x.Store(mid)
	s.y.Store(mid)

	go s.listen(cfg.FullScale)
	return s, nil
}

func (s *Serial) listen(full uint16) {
	defer close(s.done)
	scanner := bufio.NewScanner(s.port)
	for scanner.Scan() {
		x, y, err := parseSample(scanner.Text(), full)
		if err != nil {
			log.Printf("Joystick: serial: %v", err)
			continue
		}
		s.x.Store(uint32(x))
		s.y.Store(uint32(y))
	}
	if err := scanner.Err(); err != nil && !s.closed.Load() {
		log.Printf("Joystick: serial read: %v", err)
	}
}

func parseSample(line string, full uint16) (uint16, uint16, error) {
	parts := strings.Fields(line)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("bad sample line %q", line)
	}
	x, err := strconv.ParseUint(parts[0], 10, 16)
	if err != nil {
		return 0, 0, fmt.Errorf("bad x in %q: %w", line, err)
	}
	y, err := strconv.ParseUint(parts[1], 10, 16)
	if err != nil {
		return 0, 0, fmt.Errorf("bad y in %q: %w", line, err)
	}
	if x > uint64(full) || y > uint64(full) {
		return 0, 0, fmt.Errorf("sample %q above full scale %d", line, full)
	}
	return uint16(x), uint16(y), nil
}

// ReadAxis implements Analog.ReadAxis.
func (s *Serial) ReadAxis(channel int) (uint16, error) {
	if channel == s.xch {
		return uint16(s.x.Load()), nil
	}
	return uint16(s.y.Load()), nil
}

// Close implements Analog.Close.
func (s *Serial) Close() error {
	s.closed.Store(true)
	return s.port.Close()
}
