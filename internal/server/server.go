// Package server exposes the game engine over HTTP.
package server

import (
	"log/slog"

	"github.com/gin-gonic/gin"

	"github.com/abhisek/quizrogue/internal/game"
	"github.com/abhisek/quizrogue/internal/session"
	"github.com/abhisek/quizrogue/internal/store"
)

// Deps are the collaborators the handlers need.
type Deps struct {
	Engine    *game.Engine
	Sessions  session.Store
	Documents *store.DocumentRepo
	Questions *store.QuestionRepo
	Saves     *store.SaveRepo
	Stats     *store.StatsRepo
	Logger    *slog.Logger
}

// Handler serves the game and document API.
type Handler struct {
	engine    *game.Engine
	sessions  session.Store
	locks     *session.KeyedMutex
	documents *store.DocumentRepo
	questions *store.QuestionRepo
	saves     *store.SaveRepo
	stats     *store.StatsRepo
	logger    *slog.Logger
}

// NewHandler wires the handlers. A nil logger uses slog.Default.
func NewHandler(d Deps) *Handler {
	logger := d.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{
		engine:    d.Engine,
		sessions:  d.Sessions,
		locks:     session.NewKeyedMutex(),
		documents: d.Documents,
		questions: d.Questions,
		saves:     d.Saves,
		stats:     d.Stats,
		logger:    logger,
	}
}

// NewRouter builds the gin engine with middleware and routes.
func NewRouter(mode string, h *Handler) *gin.Engine {
	gin.SetMode(mode)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(requestLogger(h.logger))

	api := r.Group("/api")
	api.Use(playerIdentity())
	{
		g := api.Group("/game")
		{
			g.POST("/new/:doc", h.NewGame)
			g.GET("/status/:doc", h.Status)
			g.GET("/question/:doc", h.Question)
			g.POST("/answer/:doc", h.Answer)
			g.POST("/use-powerup/:doc", h.UsePowerup)
			g.POST("/save/:doc", h.Save)
			g.POST("/load/:save", h.Load)
			g.DELETE("/saves/:save", h.DeleteSave)
		}

		docs := api.Group("/documents")
		{
			docs.GET("", h.ListDocuments)
			docs.GET("/:doc/saves", h.ListSaves)
			docs.GET("/:doc/stats", h.DocumentStats)
		}

		api.GET("/config", h.GameConfig)
	}
	return r
}
