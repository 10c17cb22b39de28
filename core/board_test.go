package core

import (
	"errors"
	"testing"
)

func TestTakeBoardOnce(t *testing.T) {
	boardTaken.Store(false)
	defer boardTaken.Store(false)

	if err := TakeBoard(); err != nil {
		t.Fatalf("Expected first TakeBoard to succeed, got %v", err)
	}
	if err := TakeBoard(); !errors.Is(err, ErrBoardTaken) {
		t.Errorf("Expected ErrBoardTaken on second call, got %v", err)
	}
	expectPanic(t, "MustTakeBoard after TakeBoard", MustTakeBoard)
}
