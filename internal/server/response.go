package server

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/abhisek/quizrogue/internal/game"
	"github.com/abhisek/quizrogue/internal/store"
)

var errNotFound = errors.New("not found")

type errorResponse struct {
	Error string `json:"error"`
}

func fail(c *gin.Context, status int, msg string) {
	c.JSON(status, errorResponse{Error: msg})
}

// respondError maps err to a status: caller mistakes are 400, missing
// records 404, anything else 500 with the detail only in the log.
func (h *Handler) respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, game.ErrBadRequest):
		fail(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, errNotFound), errors.Is(err, store.ErrNotFound):
		fail(c, http.StatusNotFound, err.Error())
	default:
		h.logger.Error("request failed", "path", c.FullPath(), "error", err)
		fail(c, http.StatusInternalServerError, "internal server error")
	}
}

// idParam parses a positive integer path parameter.
func idParam(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		fail(c, http.StatusBadRequest, "invalid "+name+" id")
		return 0, false
	}
	return id, true
}
