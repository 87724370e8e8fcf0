// Package battle is the screen where a run is played: one question per
// turn against the current enemy.
package battle

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/quizrogue/internal/game"
	"github.com/abhisek/quizrogue/internal/router"
	"github.com/abhisek/quizrogue/internal/screen"
	"github.com/abhisek/quizrogue/internal/screens/summary"
	"github.com/abhisek/quizrogue/internal/ui/components"
	"github.com/abhisek/quizrogue/internal/ui/layout"
)

// Deps are the services a battle needs.
type Deps struct {
	Engine *game.Engine

	// Questions resolves the correct answer of a question after the
	// player commits to one.
	Questions game.QuestionStore

	Logger *slog.Logger
}

type mode int

const (
	modeLoading mode = iota
	modeQuestion
	modeAnswering
	modeFeedback
	modePowerups
	modeSaving
	modeQuitConfirm
)

// BattleScreen implements screen.Screen for an active run.
type BattleScreen struct {
	deps       Deps
	documentID int64
	saveID     int64

	state    *game.State
	question *game.SafeQuestion
	choice   components.MultiChoice
	result   *answeredMsg

	mode       mode
	back       mode // mode to return to from an overlay
	powerupSel int
	saveInput  components.TextInput
	notice     string
	errMsg     string
}

var _ screen.Screen = (*BattleScreen)(nil)
var _ screen.KeyHintProvider = (*BattleScreen)(nil)

// New creates a screen that starts a fresh run on the document.
func New(deps Deps, documentID int64) *BattleScreen {
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}
	return &BattleScreen{deps: deps, documentID: documentID}
}

// Resume creates a screen that continues a saved run.
func Resume(deps Deps, saveID int64) *BattleScreen {
	b := New(deps, 0)
	b.saveID = saveID
	return b
}

func (b *BattleScreen) Init() tea.Cmd {
	if b.state != nil {
		return nil
	}
	return b.startGame()
}

func (b *BattleScreen) Title() string {
	if b.state != nil && b.state.Enemy != nil && b.state.Enemy.IsBoss {
		return "Boss Battle"
	}
	return "Battle"
}

// HeaderStatus shows encounter progress and score in the header.
func (b *BattleScreen) HeaderStatus() string {
	if b.state == nil {
		return ""
	}
	enc := min(b.state.CurrentEncounter, b.state.TotalEncounters)
	return fmt.Sprintf("⚔ %d/%d   ★ %d", enc, b.state.TotalEncounters, b.state.Player.Score)
}

func (b *BattleScreen) KeyHints() []layout.KeyHint {
	switch b.mode {
	case modeQuitConfirm:
		return []layout.KeyHint{
			{Key: "Y", Description: "Leave run"},
			{Key: "N", Description: "Keep fighting"},
		}
	case modeFeedback:
		return []layout.KeyHint{{Key: "any key", Description: "Continue"}}
	case modePowerups:
		return []layout.KeyHint{
			{Key: "↑↓", Description: "Choose"},
			{Key: "Enter", Description: "Use"},
			{Key: "Esc", Description: "Close"},
		}
	case modeSaving:
		return []layout.KeyHint{
			{Key: "Enter", Description: "Save"},
			{Key: "Esc", Description: "Cancel"},
		}
	case modeQuestion:
		return []layout.KeyHint{
			{Key: "A-D", Description: "Answer"},
			{Key: "P", Description: "Powerups"},
			{Key: "S", Description: "Save"},
			{Key: "Esc", Description: "Quit"},
		}
	}
	return nil
}

func (b *BattleScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case gameReadyMsg:
		return b.handleGameReady(msg)
	case questionReadyMsg:
		return b.handleQuestionReady(msg)
	case answeredMsg:
		return b.handleAnswered(msg)
	case savedMsg:
		return b.handleSaved(msg)
	case tea.KeyMsg:
		return b.handleKey(msg)
	}

	if b.mode == modeSaving {
		var cmd tea.Cmd
		b.saveInput, cmd = b.saveInput.Update(msg)
		return b, cmd
	}
	return b, nil
}

func (b *BattleScreen) startGame() tea.Cmd {
	engine, docID, saveID := b.deps.Engine, b.documentID, b.saveID
	return func() tea.Msg {
		ctx := context.Background()
		if saveID > 0 {
			s, err := engine.LoadGame(ctx, saveID)
			if err == nil && s == nil {
				err = fmt.Errorf("save %d not found", saveID)
			}
			return gameReadyMsg{State: s, Err: err}
		}
		if err := engine.ValidateReady(ctx, docID); err != nil {
			return gameReadyMsg{Err: err}
		}
		s, err := engine.NewGame(ctx, docID)
		return gameReadyMsg{State: s, Err: err}
	}
}

func (b *BattleScreen) nextQuestion() tea.Cmd {
	engine, s := b.deps.Engine, b.state.Clone()
	return func() tea.Msg {
		q, err := engine.NextQuestion(context.Background(), s)
		return questionReadyMsg{Question: q, Err: err}
	}
}

// submit resolves the chosen answer on a copy of the run so rendering
// never races the engine.
func (b *BattleScreen) submit(answer string) tea.Cmd {
	deps, next, q := b.deps, b.state.Clone(), b.question
	return func() tea.Msg {
		ctx := context.Background()
		full, err := deps.Questions.GetQuestion(ctx, q.ID)
		if err != nil {
			return answeredMsg{Err: err}
		}
		if full == nil {
			return answeredMsg{Err: fmt.Errorf("question %d disappeared", q.ID)}
		}
		out, err := deps.Engine.AnswerQuestion(ctx, next, q.ID, answer, full.CorrectAnswer)
		if err != nil {
			return answeredMsg{Err: err}
		}
		return answeredMsg{
			State:         next,
			Outcome:       out,
			CorrectAnswer: full.CorrectAnswer,
			Explanation:   full.Explanation,
		}
	}
}

func (b *BattleScreen) save(name string) tea.Cmd {
	engine, s := b.deps.Engine, b.state.Clone()
	return func() tea.Msg {
		id, err := engine.SaveGame(context.Background(), s, name)
		return savedMsg{SaveID: id, Err: err}
	}
}

func (b *BattleScreen) handleGameReady(msg gameReadyMsg) (screen.Screen, tea.Cmd) {
	if msg.Err != nil {
		var notReady *game.NotReadyError
		if errors.As(msg.Err, &notReady) {
			b.errMsg = fmt.Sprintf("Not enough questions yet: %d of %d. Generate more first.", notReady.Have, notReady.Need)
		} else {
			b.errMsg = msg.Err.Error()
		}
		return b, nil
	}
	b.state = msg.State
	b.documentID = msg.State.DocumentID
	if b.state.Over() {
		return b, b.finish()
	}
	return b, b.nextQuestion()
}

func (b *BattleScreen) handleQuestionReady(msg questionReadyMsg) (screen.Screen, tea.Cmd) {
	if msg.Err != nil {
		if errors.Is(msg.Err, game.ErrNoQuestions) {
			b.errMsg = "No questions available for this document."
		} else {
			b.errMsg = msg.Err.Error()
		}
		return b, nil
	}
	b.question = msg.Question
	b.choice = components.NewMultiChoice(optionsFor(msg.Question))
	b.result = nil
	b.mode = modeQuestion
	return b, nil
}

func (b *BattleScreen) handleAnswered(msg answeredMsg) (screen.Screen, tea.Cmd) {
	if msg.Err != nil {
		b.deps.Logger.Error("answer failed", "error", msg.Err)
		b.errMsg = msg.Err.Error()
		return b, nil
	}
	b.state = msg.State
	b.result = &msg
	b.choice.Reveal(msg.CorrectAnswer)
	b.mode = modeFeedback
	return b, nil
}

func (b *BattleScreen) handleSaved(msg savedMsg) (screen.Screen, tea.Cmd) {
	if msg.Err != nil {
		b.notice = "Save failed: " + msg.Err.Error()
	} else {
		b.notice = fmt.Sprintf("Saved as #%d", msg.SaveID)
	}
	return b, nil
}

// finish swaps the battle for the run summary.
func (b *BattleScreen) finish() tea.Cmd {
	view := b.deps.Engine.Status(b.state)
	return func() tea.Msg {
		return router.ReplaceScreenMsg{Screen: summary.New(view)}
	}
}

func (b *BattleScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()

	if b.errMsg != "" {
		return b, func() tea.Msg { return router.PopScreenMsg{} }
	}

	switch b.mode {
	case modeQuitConfirm:
		switch key {
		case "y", "Y":
			return b, func() tea.Msg { return router.PopScreenMsg{} }
		case "n", "N", "esc":
			b.mode = b.back
		}
		return b, nil

	case modeFeedback:
		if b.state.Over() {
			return b, b.finish()
		}
		b.mode = modeLoading
		return b, b.nextQuestion()

	case modePowerups:
		return b.handlePowerupKey(key)

	case modeSaving:
		switch key {
		case "esc":
			b.mode = b.back
			return b, nil
		case "enter":
			b.mode = b.back
			b.notice = "Saving..."
			return b, b.save(b.saveInput.Value())
		}
		var cmd tea.Cmd
		b.saveInput, cmd = b.saveInput.Update(msg)
		return b, cmd

	case modeQuestion:
		switch key {
		case "esc":
			b.back, b.mode = b.mode, modeQuitConfirm
			return b, nil
		case "p", "P":
			b.back, b.mode = b.mode, modePowerups
			b.powerupSel = 0
			b.notice = ""
			return b, nil
		case "s", "S":
			b.back, b.mode = b.mode, modeSaving
			b.saveInput = components.NewTextInput("Save name (optional)", 64)
			return b, b.saveInput.Init()
		}
		b.choice, _ = b.choice.Update(msg)
		if b.choice.Submitted {
			b.mode = modeAnswering
			b.notice = ""
			return b, b.submit(b.choice.Chosen())
		}
		return b, nil
	}

	if key == "esc" {
		return b, func() tea.Msg { return router.PopScreenMsg{} }
	}
	return b, nil
}

func (b *BattleScreen) handlePowerupKey(key string) (screen.Screen, tea.Cmd) {
	inv := b.state.Inventory
	switch key {
	case "esc", "p", "P":
		b.mode = b.back
	case "up", "k":
		if b.powerupSel > 0 {
			b.powerupSel--
		}
	case "down", "j":
		if b.powerupSel < len(inv)-1 {
			b.powerupSel++
		}
	case "enter":
		if len(inv) == 0 {
			b.mode = b.back
			return b, nil
		}
		id := inv[b.powerupSel]
		if _, err := b.deps.Engine.UsePowerup(b.state, id); err != nil {
			b.notice = err.Error()
		} else {
			b.notice = "Used " + powerupName(b.deps.Engine.Config(), id)
		}
		b.mode = b.back
	}
	return b, nil
}

// optionsFor returns the options to offer. True/false questions stored
// without options get the canonical pair.
func optionsFor(q *game.SafeQuestion) []string {
	if len(q.Options) > 0 {
		return q.Options
	}
	if q.Type == "true_false" {
		return []string{"true", "false"}
	}
	return nil
}

func powerupName(cfg game.Config, id game.PowerupID) string {
	if spec, ok := cfg.Powerup(id); ok {
		return spec.Name
	}
	return string(id)
}
