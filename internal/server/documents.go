package server

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/abhisek/quizrogue/internal/game"
	"github.com/abhisek/quizrogue/internal/store"
)

const (
	weakAreaMinAnswers = 3
	recentActivityDays = 7
)

type documentView struct {
	ID            int64     `json:"id"`
	Filename      string    `json:"filename"`
	Title         string    `json:"title"`
	TotalChars    int       `json:"total_chars"`
	Processed     bool      `json:"processed"`
	CreatedAt     time.Time `json:"created_at"`
	QuestionCount int       `json:"question_count"`
	ReadyToPlay   bool      `json:"ready_to_play"`
}

type saveView struct {
	ID               int64     `json:"id"`
	DocumentID       int64     `json:"document_id"`
	Name             string    `json:"save_name"`
	PlayerHP         int       `json:"player_hp"`
	PlayerMaxHP      int       `json:"player_max_hp"`
	PlayerLevel      int       `json:"player_level"`
	CurrentEncounter int       `json:"current_encounter"`
	Score            int       `json:"score"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

type statsResponse struct {
	Overall        *store.OverallStats   `json:"overall"`
	Topics         []store.TopicStats    `json:"topics"`
	WeakAreas      []store.TopicStats    `json:"weak_areas"`
	RecentActivity []store.DailyActivity `json:"recent_activity"`
}

// ListDocuments lists registered documents with their readiness.
// GET /api/documents
func (h *Handler) ListDocuments(c *gin.Context) {
	ctx := c.Request.Context()
	docs, err := h.documents.List(ctx)
	if err != nil {
		h.respondError(c, err)
		return
	}

	minQuestions := h.engine.Config().MinQuestionsToStart
	out := make([]documentView, 0, len(docs))
	for _, d := range docs {
		n, err := h.questions.QuestionCount(ctx, d.ID)
		if err != nil {
			h.respondError(c, err)
			return
		}
		out = append(out, documentView{
			ID:            d.ID,
			Filename:      d.Filename,
			Title:         d.Title,
			TotalChars:    d.TotalChars,
			Processed:     d.Processed,
			CreatedAt:     d.CreatedAt,
			QuestionCount: n,
			ReadyToPlay:   n >= minQuestions,
		})
	}
	c.JSON(http.StatusOK, out)
}

// ListSaves lists the active saves of a document, newest first.
// GET /api/documents/:doc/saves
func (h *Handler) ListSaves(c *gin.Context) {
	docID, ok := idParam(c, "doc")
	if !ok {
		return
	}
	ctx := c.Request.Context()
	if err := h.requireDocument(ctx, docID); err != nil {
		h.respondError(c, err)
		return
	}

	recs, err := h.saves.ListSaves(ctx, docID)
	if err != nil {
		h.respondError(c, err)
		return
	}
	out := make([]saveView, 0, len(recs))
	for _, r := range recs {
		out = append(out, toSaveView(r))
	}
	c.JSON(http.StatusOK, out)
}

func toSaveView(r game.SaveRecord) saveView {
	return saveView{
		ID:               r.ID,
		DocumentID:       r.DocumentID,
		Name:             r.Name,
		PlayerHP:         r.PlayerHP,
		PlayerMaxHP:      r.PlayerMaxHP,
		PlayerLevel:      r.PlayerLevel,
		CurrentEncounter: r.CurrentEncounter,
		Score:            r.Score,
		CreatedAt:        r.CreatedAt,
		UpdatedAt:        r.UpdatedAt,
	}
}

// DocumentStats reports play statistics for a document.
// GET /api/documents/:doc/stats
func (h *Handler) DocumentStats(c *gin.Context) {
	docID, ok := idParam(c, "doc")
	if !ok {
		return
	}
	ctx := c.Request.Context()
	if err := h.requireDocument(ctx, docID); err != nil {
		h.respondError(c, err)
		return
	}

	var (
		resp statsResponse
		err  error
	)
	if resp.Overall, err = h.stats.Overall(ctx, docID); err != nil {
		h.respondError(c, err)
		return
	}
	if resp.Topics, err = h.stats.TopicPerformance(ctx, docID); err != nil {
		h.respondError(c, err)
		return
	}
	if resp.WeakAreas, err = h.stats.WeakAreas(ctx, docID, weakAreaMinAnswers); err != nil {
		h.respondError(c, err)
		return
	}
	if resp.RecentActivity, err = h.stats.RecentActivity(ctx, docID, recentActivityDays); err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// GameConfig exposes the balance parameters clients display.
// GET /api/config
func (h *Handler) GameConfig(c *gin.Context) {
	cfg := h.engine.Config()

	powerups := make([]gin.H, 0, len(cfg.Powerups))
	for _, p := range cfg.Powerups {
		powerups = append(powerups, gin.H{
			"id":     p.ID,
			"name":   p.Name,
			"effect": p.Effect,
			"value":  p.Value,
			"chance": p.Chance,
		})
	}
	c.JSON(http.StatusOK, gin.H{
		"player_max_hp":          cfg.PlayerMaxHP,
		"player_base_damage":     cfg.PlayerBaseDamage,
		"total_encounters":       cfg.TotalEncounters,
		"min_questions_to_start": cfg.MinQuestionsToStart,
		"minimum_questions":      h.engine.MinimumQuestionsNeeded(),
		"powerups":               powerups,
	})
}
