package battle

import "github.com/abhisek/quizrogue/internal/game"

// gameReadyMsg is sent once a new or loaded run is available.
type gameReadyMsg struct {
	State *game.State
	Err   error
}

// questionReadyMsg is sent when the next question has been selected.
type questionReadyMsg struct {
	Question *game.SafeQuestion
	Err      error
}

// answeredMsg carries the resolved answer. State is the committed copy
// the answer was applied to.
type answeredMsg struct {
	State         *game.State
	Outcome       *game.Outcome
	CorrectAnswer string
	Explanation   string
	Err           error
}

// savedMsg reports the result of a save.
type savedMsg struct {
	SaveID int64
	Err    error
}
