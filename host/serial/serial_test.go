package serial

import (
	"errors"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig("/dev/ttyACM0")

	if cfg.Device != "/dev/ttyACM0" {
		t.Errorf("Expected device /dev/ttyACM0, got %s", cfg.Device)
	}
	if cfg.Baud != DefaultBaud {
		t.Errorf("Expected baud %d, got %d", DefaultBaud, cfg.Baud)
	}
	if cfg.ReadTimeout <= 0 {
		t.Errorf("Expected a read timeout so monitors can be cancelled, got %d", cfg.ReadTimeout)
	}
}

func TestOpenRejectsBadConfig(t *testing.T) {
	if _, err := Open(nil); !errors.Is(err, ErrNilConfig) {
		t.Errorf("Expected ErrNilConfig, got %v", err)
	}

	cfg := DefaultConfig("/dev/null")
	cfg.Baud = 0
	if _, err := Open(cfg); err == nil {
		t.Error("Expected error for zero baud rate")
	}
}
