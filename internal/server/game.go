package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/abhisek/quizrogue/internal/game"
	"github.com/abhisek/quizrogue/internal/session"
)

type answerRequest struct {
	QuestionID int64   `json:"question_id" binding:"required"`
	Answer     *string `json:"answer" binding:"required"`
}

type powerupRequest struct {
	PowerupID string `json:"powerup_id" binding:"required"`
}

type saveRequest struct {
	SaveName string `json:"save_name"`
}

type gameResponse struct {
	Success    bool            `json:"success"`
	DocumentID int64           `json:"document_id,omitempty"`
	GameStatus game.StatusView `json:"game_status"`
	Message    string          `json:"message"`
}

type answerResponse struct {
	*game.Outcome
	CorrectAnswer string          `json:"correct_answer"`
	Explanation   string          `json:"explanation"`
	GameStatus    game.StatusView `json:"game_status"`
}

type powerupResponse struct {
	*game.Outcome
	GameStatus game.StatusView `json:"game_status"`
}

// withRun runs fn on the player's stored run under the per-run lock and
// stores the result when fn succeeds.
func (h *Handler) withRun(ctx context.Context, key string, fn func(*game.State) error) (*game.State, error) {
	unlock := h.locks.Lock(key)
	defer unlock()

	s, err := h.loadRun(ctx, key)
	if err != nil {
		return nil, err
	}
	if err := fn(s); err != nil {
		return nil, err
	}
	if err := h.sessions.Put(ctx, key, s); err != nil {
		return nil, fmt.Errorf("store session: %w", err)
	}
	return s, nil
}

func (h *Handler) loadRun(ctx context.Context, key string) (*game.State, error) {
	s, err := h.sessions.Get(ctx, key)
	if errors.Is(err, session.ErrNotFound) {
		return nil, game.ErrInactiveGame
	}
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}
	return s, nil
}

func (h *Handler) requireDocument(ctx context.Context, id int64) error {
	doc, err := h.documents.Get(ctx, id)
	if err != nil {
		return fmt.Errorf("get document: %w", err)
	}
	if doc == nil {
		return fmt.Errorf("document %d: %w", id, errNotFound)
	}
	return nil
}

// NewGame starts a run, replacing any run the player had on the document.
// POST /api/game/new/:doc
func (h *Handler) NewGame(c *gin.Context) {
	docID, ok := idParam(c, "doc")
	if !ok {
		return
	}
	ctx := c.Request.Context()

	if err := h.requireDocument(ctx, docID); err != nil {
		h.respondError(c, err)
		return
	}
	if err := h.engine.ValidateReady(ctx, docID); err != nil {
		h.respondError(c, err)
		return
	}

	s, err := h.engine.NewGame(ctx, docID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	key := session.Key(docID, playerID(c))
	unlock := h.locks.Lock(key)
	err = h.sessions.Put(ctx, key, s)
	unlock()
	if err != nil {
		h.respondError(c, fmt.Errorf("store session: %w", err))
		return
	}

	c.JSON(http.StatusOK, gameResponse{
		Success:    true,
		GameStatus: h.engine.Status(s),
		Message:    "New game started!",
	})
}

// Status reports the player's run, or {"active": false} when there is none.
// GET /api/game/status/:doc
func (h *Handler) Status(c *gin.Context) {
	docID, ok := idParam(c, "doc")
	if !ok {
		return
	}
	s, err := h.loadRun(c.Request.Context(), session.Key(docID, playerID(c)))
	if errors.Is(err, game.ErrInactiveGame) {
		c.JSON(http.StatusOK, game.StatusView{})
		return
	}
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, h.engine.Status(s))
}

// Question picks the next question without revealing its answer.
// GET /api/game/question/:doc
func (h *Handler) Question(c *gin.Context) {
	docID, ok := idParam(c, "doc")
	if !ok {
		return
	}
	ctx := c.Request.Context()

	s, err := h.loadRun(ctx, session.Key(docID, playerID(c)))
	if err != nil {
		h.respondError(c, err)
		return
	}
	q, err := h.engine.NextQuestion(ctx, s)
	if errors.Is(err, game.ErrNoQuestions) {
		fail(c, http.StatusNotFound, "No questions available")
		return
	}
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, q)
}

// Answer resolves an answer. The correct answer comes from the question
// store, never from the client.
// POST /api/game/answer/:doc
func (h *Handler) Answer(c *gin.Context) {
	docID, ok := idParam(c, "doc")
	if !ok {
		return
	}
	var req answerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "Missing question_id or answer")
		return
	}
	ctx := c.Request.Context()

	q, err := h.questions.GetQuestion(ctx, req.QuestionID)
	if err != nil {
		h.respondError(c, err)
		return
	}
	if q == nil || q.DocumentID != docID {
		fail(c, http.StatusNotFound, "Question not found")
		return
	}

	var out *game.Outcome
	s, err := h.withRun(ctx, session.Key(docID, playerID(c)), func(s *game.State) error {
		var err error
		out, err = h.engine.AnswerQuestion(ctx, s, q.ID, *req.Answer, q.CorrectAnswer)
		return err
	})
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, answerResponse{
		Outcome:       out,
		CorrectAnswer: q.CorrectAnswer,
		Explanation:   q.Explanation,
		GameStatus:    h.engine.Status(s),
	})
}

// UsePowerup consumes a held powerup.
// POST /api/game/use-powerup/:doc
func (h *Handler) UsePowerup(c *gin.Context) {
	docID, ok := idParam(c, "doc")
	if !ok {
		return
	}
	var req powerupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "Missing powerup_id")
		return
	}
	ctx := c.Request.Context()

	var out *game.Outcome
	s, err := h.withRun(ctx, session.Key(docID, playerID(c)), func(s *game.State) error {
		var err error
		out, err = h.engine.UsePowerup(s, game.PowerupID(req.PowerupID))
		return err
	})
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, powerupResponse{Outcome: out, GameStatus: h.engine.Status(s)})
}

// Save snapshots the player's run into the save store.
// POST /api/game/save/:doc
func (h *Handler) Save(c *gin.Context) {
	docID, ok := idParam(c, "doc")
	if !ok {
		return
	}
	var req saveRequest
	// The body is optional.
	_ = c.ShouldBindJSON(&req)
	ctx := c.Request.Context()

	key := session.Key(docID, playerID(c))
	unlock := h.locks.Lock(key)
	defer unlock()

	s, err := h.loadRun(ctx, key)
	if err != nil {
		h.respondError(c, err)
		return
	}
	id, err := h.engine.SaveGame(ctx, s, req.SaveName)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"save_id": id,
		"message": "Game saved successfully",
	})
}

// Load restores a save as the player's run on its document.
// POST /api/game/load/:save
func (h *Handler) Load(c *gin.Context) {
	saveID, ok := idParam(c, "save")
	if !ok {
		return
	}
	ctx := c.Request.Context()

	s, err := h.engine.LoadGame(ctx, saveID)
	if err != nil {
		h.respondError(c, err)
		return
	}
	if s == nil {
		fail(c, http.StatusNotFound, "Save not found")
		return
	}

	key := session.Key(s.DocumentID, playerID(c))
	unlock := h.locks.Lock(key)
	err = h.sessions.Put(ctx, key, s)
	unlock()
	if err != nil {
		h.respondError(c, fmt.Errorf("store session: %w", err))
		return
	}

	c.JSON(http.StatusOK, gameResponse{
		Success:    true,
		DocumentID: s.DocumentID,
		GameStatus: h.engine.Status(s),
		Message:    "Game loaded successfully",
	})
}

// DeleteSave soft-deletes a save.
// DELETE /api/game/saves/:save
func (h *Handler) DeleteSave(c *gin.Context) {
	saveID, ok := idParam(c, "save")
	if !ok {
		return
	}
	ctx := c.Request.Context()

	rec, err := h.saves.GetSave(ctx, saveID)
	if err != nil {
		h.respondError(c, err)
		return
	}
	if rec == nil {
		fail(c, http.StatusNotFound, "Save not found")
		return
	}
	if err := h.saves.DeleteSave(ctx, saveID); err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Save deleted successfully"})
}
