package monitor

import (
	"context"
	"errors"
	"fmt"
	"io"

	"siren/host/serial"
)

// ErrNotConnected is returned when a Session is used before Connect
var ErrNotConnected = errors.New("not connected to board")

// Session is a connection to a siren board's console
type Session struct {
	port      serial.Port
	connected bool
}

// NewSession creates a new session (not yet connected)
func NewSession() *Session {
	return &Session{}
}

// Connect connects to a board via serial port
func (s *Session) Connect(device string) error {
	return s.ConnectWithConfig(serial.DefaultConfig(device))
}

// ConnectWithConfig connects to a board with a custom serial config
func (s *Session) ConnectWithConfig(cfg *serial.Config) error {
	port, err := serial.Open(cfg)
	if err != nil {
		return fmt.Errorf("failed to open serial port: %w", err)
	}
	s.Attach(port)

	// Drop whatever the board printed before we were listening
	if err := port.Flush(); err != nil {
		return fmt.Errorf("failed to flush serial port: %w", err)
	}
	return nil
}

// Attach uses an already open port
func (s *Session) Attach(port serial.Port) {
	s.port = port
	s.connected = true
}

// Close closes the connection to the board
func (s *Session) Close() error {
	if !s.connected {
		return nil
	}
	s.connected = false
	return s.port.Close()
}

// IsConnected returns whether the board is connected
func (s *Session) IsConnected() bool {
	return s.connected
}

// Watch checks reports from the board until ctx is cancelled. Read timeouts
// on an idle line are not treated as the end of the stream.
func (s *Session) Watch(ctx context.Context, c *Checker, fn ReportFunc) error {
	if !s.connected {
		return ErrNotConnected
	}
	return c.Run(ctx, idleReader{s.port}, fn)
}

// idleReader turns the (0, io.EOF) of a read timeout into an empty read
type idleReader struct {
	r io.Reader
}

func (r idleReader) Read(p []byte) (int, error) {
	n, err := r.r.Read(p)
	if n == 0 && errors.Is(err, io.EOF) {
		return 0, nil
	}
	return n, err
}
