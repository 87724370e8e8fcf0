package server

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	playerHeader    = "X-Player-ID"
	playerCookie    = "player_id"
	playerCtxKey    = "player_id"
	maxPlayerIDLen  = 128
	playerCookieAge = 365 * 24 * 60 * 60
)

// playerIdentity resolves the player from the X-Player-ID header or the
// player_id cookie, issuing a new id in the cookie when neither is set.
func playerIdentity() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(playerHeader)
		if id == "" {
			id, _ = c.Cookie(playerCookie)
		}
		if len(id) > maxPlayerIDLen {
			fail(c, http.StatusBadRequest, "player id too long")
			c.Abort()
			return
		}
		if id == "" {
			id = uuid.NewString()
			c.SetCookie(playerCookie, id, playerCookieAge, "/", "", false, true)
		}
		c.Set(playerCtxKey, id)
		c.Next()
	}
}

func playerID(c *gin.Context) string {
	return c.GetString(playerCtxKey)
}

// requestLogger logs one line per request.
func requestLogger(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		if q := c.Request.URL.RawQuery; q != "" {
			path += "?" + q
		}

		c.Next()

		status := c.Writer.Status()
		level := slog.LevelInfo
		if status >= 500 {
			level = slog.LevelError
		}
		logger.Log(c.Request.Context(), level, "http request",
			"method", c.Request.Method,
			"path", path,
			"status", status,
			"latency", time.Since(start),
			"client_ip", c.ClientIP(),
			"player", playerID(c))
	}
}
