package sensor

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"go.bug.st/serial"
)

const DefaultBaud = 115200

// SerialSource reads "gx,gy,gz[,mx,my,mz]" lines from an accelerometer
// attached to a serial port.
type SerialSource struct {
	Port   string
	Baud   int
	Logger *slog.Logger

	open func(name string, mode *serial.Mode) (io.ReadCloser, error)
}

func NewSerialSource(port string, baud int, logger *slog.Logger) *SerialSource {
	if baud <= 0 {
		baud = DefaultBaud
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &SerialSource{Port: port, Baud: baud, Logger: logger, open: openPort}
}

func openPort(name string, mode *serial.Mode) (io.ReadCloser, error) {
	return serial.Open(name, mode)
}

func (s *SerialSource) Run(ctx context.Context, emit func(Sample)) error {
	mode := &serial.Mode{
		BaudRate: s.Baud,
		DataBits: 8,
		Parity:   serial.NoParity,
		StopBits: serial.OneStopBit,
	}
	port, err := s.open(s.Port, mode)
	if err != nil {
		return fmt.Errorf("open %s: %w", s.Port, err)
	}
	s.Logger.Info("sensor connected", "port", s.Port, "baud", s.Baud)

	// Closing the port is the only way to unblock a pending read.
	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
		case <-done:
		}
		port.Close()
	}()

	return scanLines(ctx, port, ParseSample, emit, s.Logger)
}

// Ports lists serial devices that could carry a sensor.
func Ports() ([]string, error) {
	return serial.GetPortsList()
}
