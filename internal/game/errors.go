package game

import (
	"errors"
	"fmt"
)

// ErrBadRequest is the parent of every caller-usage error. Such errors never
// leave state modified and are safe to retry with corrected input.
var ErrBadRequest = errors.New("bad request")

var (
	ErrInactiveGame   = fmt.Errorf("%w: no active game", ErrBadRequest)
	ErrGameOver       = fmt.Errorf("%w: game is over", ErrBadRequest)
	ErrInvalidPowerup = fmt.Errorf("%w: powerup not in inventory", ErrBadRequest)
	ErrNotReady       = fmt.Errorf("%w: not enough questions to start", ErrBadRequest)
	ErrNoQuestions    = fmt.Errorf("%w: no questions available", ErrBadRequest)
)

// NotReadyError reports how far a document is from the readiness gate.
type NotReadyError struct {
	Have int
	Need int
}

func (e *NotReadyError) Error() string {
	return fmt.Sprintf("need at least %d questions, currently have %d", e.Need, e.Have)
}

func (e *NotReadyError) Unwrap() error { return ErrNotReady }
