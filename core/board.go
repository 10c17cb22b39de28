package core

import (
	"errors"
	"sync/atomic"
)

// ErrBoardTaken is returned when the board peripherals were already claimed
var ErrBoardTaken = errors.New("board already taken")

var boardTaken atomic.Bool

// TakeBoard claims the board peripherals for the caller. Only the first call
// succeeds; targets treat a failure as fatal before any interrupt is unmasked.
func TakeBoard() error {
	if !boardTaken.CompareAndSwap(false, true) {
		return ErrBoardTaken
	}
	return nil
}

// MustTakeBoard is TakeBoard for startup code that cannot continue without it
func MustTakeBoard() {
	if err := TakeBoard(); err != nil {
		panic("core: " + err.Error())
	}
}
