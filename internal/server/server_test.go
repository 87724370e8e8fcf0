package server

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"math/rand/v2"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/quizrogue/internal/game"
	"github.com/abhisek/quizrogue/internal/session"
	"github.com/abhisek/quizrogue/internal/store"
)

type testEnv struct {
	router *gin.Engine
	store  *store.Store
	doc    int64
	other  int64
}

func seed(t *testing.T, s *store.Store, name string, n int) int64 {
	t.Helper()
	ctx := context.Background()
	docID, err := s.Documents().Create(ctx, store.Document{Filename: name, Path: "/docs/" + t.Name() + "/" + name, Title: name})
	require.NoError(t, err)

	qs := make([]game.Question, n)
	for i := range qs {
		qs[i] = game.Question{
			Text:          fmt.Sprintf("%s question %d?", name, i),
			Type:          "multiple_choice",
			Options:       []string{"A", "B", "C", "D"},
			CorrectAnswer: "A",
			Explanation:   "A is right.",
			Difficulty:    []string{"easy", "medium", "hard"}[i%3],
			Topic:         "cells",
		}
	}
	_, err = s.Questions().Insert(ctx, docID, qs)
	require.NoError(t, err)
	return docID
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	s, err := store.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", name))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	engine := game.NewEngine(game.DefaultConfig(), s.Questions(), s.Saves(), s.Stats(),
		game.WithRand(rand.New(rand.NewPCG(1, 2))),
		game.WithLogger(logger))

	h := NewHandler(Deps{
		Engine:    engine,
		Sessions:  session.NewMemoryStore(time.Hour),
		Documents: s.Documents(),
		Questions: s.Questions(),
		Saves:     s.Saves(),
		Stats:     s.Stats(),
		Logger:    logger,
	})
	return &testEnv{
		router: NewRouter(gin.TestMode, h),
		store:  s,
		doc:    seed(t, s, "biology.md", 12),
		other:  seed(t, s, "tiny.md", 3),
	}
}

func (e *testEnv) do(t *testing.T, method, path, player string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var r io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, r)
	req.Header.Set("Content-Type", "application/json")
	if player != "" {
		req.Header.Set(playerHeader, player)
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

type statusBody struct {
	Active bool   `json:"active"`
	Phase  string `json:"phase"`
	Player struct {
		HP    int `json:"hp"`
		Score int `json:"score"`
	} `json:"player"`
	Stats struct {
		Answered int `json:"questions_answered"`
		Correct  int `json:"questions_correct"`
	} `json:"stats"`
}

type answerBody struct {
	IsCorrect      bool       `json:"is_correct"`
	DamageDealt    int        `json:"damage_dealt"`
	DamageReceived int        `json:"damage_received"`
	CorrectAnswer  string     `json:"correct_answer"`
	Explanation    string     `json:"explanation"`
	GameStatus     statusBody `json:"game_status"`
}

func (e *testEnv) path(format string, id int64) string {
	return fmt.Sprintf(format, id)
}

func TestNewGameGate(t *testing.T) {
	env := newTestEnv(t)

	tests := []struct {
		name       string
		path       string
		wantStatus int
		wantError  string
	}{
		{"unknown document", "/api/game/new/999", http.StatusNotFound, "not found"},
		{"not enough questions", env.path("/api/game/new/%d", env.other), http.StatusBadRequest, "need at least 10 questions, currently have 3"},
		{"bad id", "/api/game/new/abc", http.StatusBadRequest, "invalid doc id"},
		{"ready", env.path("/api/game/new/%d", env.doc), http.StatusOK, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := env.do(t, http.MethodPost, tt.path, "p1", nil)
			assert.Equal(t, tt.wantStatus, w.Code)
			if tt.wantError != "" {
				body := decode[errorResponse](t, w)
				assert.Contains(t, body.Error, tt.wantError)
			}
		})
	}
}

func TestGameFlow(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodPost, env.path("/api/game/new/%d", env.doc), "p1", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	started := decode[struct {
		Success    bool       `json:"success"`
		GameStatus statusBody `json:"game_status"`
	}](t, w)
	assert.True(t, started.Success)
	assert.Equal(t, "in_progress", started.GameStatus.Phase)
	assert.Equal(t, 100, started.GameStatus.Player.HP)

	w = env.do(t, http.MethodGet, env.path("/api/game/question/%d", env.doc), "p1", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.NotContains(t, w.Body.String(), "correct_answer")
	assert.NotContains(t, w.Body.String(), "explanation")
	q := decode[game.SafeQuestion](t, w)
	require.NotZero(t, q.ID)

	w = env.do(t, http.MethodPost, env.path("/api/game/answer/%d", env.doc), "p1",
		map[string]any{"question_id": q.ID, "answer": " a "})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	hit := decode[answerBody](t, w)
	assert.True(t, hit.IsCorrect)
	assert.Equal(t, 20, hit.DamageDealt)
	assert.Equal(t, "A", hit.CorrectAnswer)
	assert.Equal(t, "A is right.", hit.Explanation)

	w = env.do(t, http.MethodPost, env.path("/api/game/answer/%d", env.doc), "p1",
		map[string]any{"question_id": q.ID, "answer": "B"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	miss := decode[answerBody](t, w)
	assert.False(t, miss.IsCorrect)
	assert.Positive(t, miss.DamageReceived)
	assert.Equal(t, 100-miss.DamageReceived, miss.GameStatus.Player.HP)

	w = env.do(t, http.MethodGet, env.path("/api/game/status/%d", env.doc), "p1", nil)
	status := decode[statusBody](t, w)
	assert.True(t, status.Active)
	assert.Equal(t, 2, status.Stats.Answered)
	assert.Equal(t, 1, status.Stats.Correct)

	// Another player on the same document has no run.
	w = env.do(t, http.MethodGet, env.path("/api/game/status/%d", env.doc), "p2", nil)
	assert.False(t, decode[statusBody](t, w).Active)
}

func TestNoActiveGame(t *testing.T) {
	env := newTestEnv(t)

	for _, tc := range []struct{ method, path string }{
		{http.MethodGet, "/api/game/question/%d"},
		{http.MethodPost, "/api/game/save/%d"},
	} {
		w := env.do(t, tc.method, env.path(tc.path, env.doc), "p1", nil)
		assert.Equal(t, http.StatusBadRequest, w.Code, tc.path)
		assert.Contains(t, decode[errorResponse](t, w).Error, "no active game")
	}

	w := env.do(t, http.MethodPost, env.path("/api/game/use-powerup/%d", env.doc), "p1",
		map[string]string{"powerup_id": "shield"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAnswerValidation(t *testing.T) {
	env := newTestEnv(t)
	require.Equal(t, http.StatusOK, env.do(t, http.MethodPost, env.path("/api/game/new/%d", env.doc), "p1", nil).Code)

	otherQs, err := env.store.Questions().List(context.Background(), env.other)
	require.NoError(t, err)

	tests := []struct {
		name       string
		body       any
		wantStatus int
	}{
		{"missing answer", map[string]any{"question_id": 1}, http.StatusBadRequest},
		{"missing question", map[string]any{"answer": "A"}, http.StatusBadRequest},
		{"unknown question", map[string]any{"question_id": 9999, "answer": "A"}, http.StatusNotFound},
		{"question of another document", map[string]any{"question_id": otherQs[0].ID, "answer": "A"}, http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := env.do(t, http.MethodPost, env.path("/api/game/answer/%d", env.doc), "p1", tt.body)
			assert.Equal(t, tt.wantStatus, w.Code, w.Body.String())
		})
	}

	w := env.do(t, http.MethodGet, env.path("/api/game/status/%d", env.doc), "p1", nil)
	assert.Equal(t, 0, decode[statusBody](t, w).Stats.Answered, "rejected answers must not change the run")
}

func TestUsePowerupNotHeld(t *testing.T) {
	env := newTestEnv(t)
	require.Equal(t, http.StatusOK, env.do(t, http.MethodPost, env.path("/api/game/new/%d", env.doc), "p1", nil).Code)

	w := env.do(t, http.MethodPost, env.path("/api/game/use-powerup/%d", env.doc), "p1",
		map[string]string{"powerup_id": "health_potion"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, decode[errorResponse](t, w).Error, "powerup not in inventory")

	w = env.do(t, http.MethodPost, env.path("/api/game/use-powerup/%d", env.doc), "p1", map[string]string{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSaveLoadDelete(t *testing.T) {
	env := newTestEnv(t)
	require.Equal(t, http.StatusOK, env.do(t, http.MethodPost, env.path("/api/game/new/%d", env.doc), "p1", nil).Code)

	w := env.do(t, http.MethodPost, env.path("/api/game/save/%d", env.doc), "p1", map[string]string{"save_name": "before boss"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	saveID := decode[struct {
		SaveID int64 `json:"save_id"`
	}](t, w).SaveID
	require.NotZero(t, saveID)

	w = env.do(t, http.MethodGet, env.path("/api/documents/%d/saves", env.doc), "p1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	saves := decode[[]saveView](t, w)
	require.Len(t, saves, 1)
	assert.Equal(t, "before boss", saves[0].Name)
	assert.Equal(t, 100, saves[0].PlayerHP)

	// A different player can pick the save up.
	w = env.do(t, http.MethodPost, env.path("/api/game/load/%d", saveID), "p2", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	loaded := decode[struct {
		DocumentID int64      `json:"document_id"`
		GameStatus statusBody `json:"game_status"`
	}](t, w)
	assert.Equal(t, env.doc, loaded.DocumentID)
	assert.True(t, loaded.GameStatus.Active)

	w = env.do(t, http.MethodGet, env.path("/api/game/status/%d", env.doc), "p2", nil)
	assert.True(t, decode[statusBody](t, w).Active)

	assert.Equal(t, http.StatusOK, env.do(t, http.MethodDelete, env.path("/api/game/saves/%d", saveID), "p1", nil).Code)
	assert.Equal(t, http.StatusNotFound, env.do(t, http.MethodDelete, env.path("/api/game/saves/%d", saveID), "p1", nil).Code)
	assert.Equal(t, http.StatusNotFound, env.do(t, http.MethodPost, env.path("/api/game/load/%d", saveID), "p1", nil).Code)
}

func TestPlayerIdentity(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodGet, env.path("/api/game/status/%d", env.doc), "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var issued *http.Cookie
	for _, c := range w.Result().Cookies() {
		if c.Name == playerCookie {
			issued = c
		}
	}
	require.NotNil(t, issued, "expected a player cookie")
	assert.Len(t, issued.Value, 36)

	// The issued cookie identifies the player on later requests.
	req := httptest.NewRequest(http.MethodPost, env.path("/api/game/new/%d", env.doc), nil)
	req.AddCookie(issued)
	w = httptest.NewRecorder()
	env.router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	req = httptest.NewRequest(http.MethodGet, env.path("/api/game/status/%d", env.doc), nil)
	req.AddCookie(issued)
	w = httptest.NewRecorder()
	env.router.ServeHTTP(w, req)
	assert.True(t, decode[statusBody](t, w).Active)
	assert.Empty(t, w.Result().Cookies(), "no new cookie when one is presented")

	w = env.do(t, http.MethodGet, env.path("/api/game/status/%d", env.doc), strings.Repeat("x", 200), nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDocumentsAndStats(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodGet, "/api/documents", "p1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	docs := decode[[]documentView](t, w)
	require.Len(t, docs, 2)
	ready := map[int64]bool{}
	for _, d := range docs {
		ready[d.ID] = d.ReadyToPlay
	}
	assert.True(t, ready[env.doc])
	assert.False(t, ready[env.other])

	require.Equal(t, http.StatusOK, env.do(t, http.MethodPost, env.path("/api/game/new/%d", env.doc), "p1", nil).Code)
	q := decode[game.SafeQuestion](t, env.do(t, http.MethodGet, env.path("/api/game/question/%d", env.doc), "p1", nil))
	env.do(t, http.MethodPost, env.path("/api/game/answer/%d", env.doc), "p1", map[string]any{"question_id": q.ID, "answer": "A"})

	w = env.do(t, http.MethodGet, env.path("/api/documents/%d/stats", env.doc), "p1", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	stats := decode[statsResponse](t, w)
	require.NotNil(t, stats.Overall)
	assert.Equal(t, 12, stats.Overall.TotalQuestions)
	assert.Equal(t, 1, stats.Overall.TotalAnswers)
	assert.Equal(t, 1, stats.Overall.GamesPlayed)
	require.Len(t, stats.Topics, 1)
	assert.Equal(t, "cells", stats.Topics[0].Topic)

	assert.Equal(t, http.StatusNotFound, env.do(t, http.MethodGet, "/api/documents/404/stats", "p1", nil).Code)
	assert.Equal(t, http.StatusNotFound, env.do(t, http.MethodGet, "/api/documents/404/saves", "p1", nil).Code)
}

func TestConfigEndpoint(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodGet, "/api/config", "p1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	cfg := decode[struct {
		PlayerMaxHP     int `json:"player_max_hp"`
		TotalEncounters int `json:"total_encounters"`
		Powerups        []struct {
			ID string `json:"id"`
		} `json:"powerups"`
	}](t, w)
	assert.Equal(t, 100, cfg.PlayerMaxHP)
	assert.Equal(t, 5, cfg.TotalEncounters)
	require.Len(t, cfg.Powerups, 4)
	assert.Equal(t, "health_potion", cfg.Powerups[0].ID)
}
