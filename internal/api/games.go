package api

import (
	"net/http"

	"github.com/boardcamp/boardcamp-api/internal/storage"
	"github.com/boardcamp/boardcamp-api/telemetry"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func (h *Handlers) ListGames(c *gin.Context) {
	rows, err := h.Games.ListGames(c.Query("name"))
	if err != nil {
		h.Log.Error("list games failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list"})
		return
	}
	if len(rows) == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "no games found"})
		return
	}
	out := make([]GameResponse, 0, len(rows))
	for _, g := range rows {
		out = append(out, GameResponse{
			ID:           g.ID,
			Name:         g.Name,
			Image:        g.Image,
			StockTotal:   g.StockTotal,
			CategoryID:   g.CategoryID,
			PricePerDay:  g.PricePerDay,
			CategoryName: g.CategoryName,
		})
	}
	c.JSON(http.StatusOK, out)
}

func (h *Handlers) CreateGame(c *gin.Context) {
	var req CreateGameRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid JSON"})
		return
	}
	if err := h.V.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// The category must exist at creation time.
	cat, err := h.Categories.GetCategory(req.CategoryID)
	if err != nil {
		if err == storage.ErrCategoryNotFound {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		h.Log.Error("category lookup failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to persist"})
		return
	}

	g, err := h.Games.CreateGame(storage.Game{
		Name:        req.Name,
		Image:       req.Image,
		StockTotal:  req.StockTotal,
		CategoryID:  req.CategoryID,
		PricePerDay: req.PricePerDay,
	})
	if err != nil {
		if err == storage.ErrGameExists {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
			return
		}
		h.Log.Error("create game failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to persist"})
		return
	}
	telemetry.IncGamesCreated()
	c.JSON(http.StatusCreated, GameResponse{
		ID:           g.ID,
		Name:         g.Name,
		Image:        g.Image,
		StockTotal:   g.StockTotal,
		CategoryID:   g.CategoryID,
		PricePerDay:  g.PricePerDay,
		CategoryName: cat.Name,
	})
}
