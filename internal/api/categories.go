package api

import (
	"net/http"

	"github.com/boardcamp/boardcamp-api/internal/storage"
	"github.com/boardcamp/boardcamp-api/telemetry"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func (h *Handlers) ListCategories(c *gin.Context) {
	cats, err := h.Categories.ListCategories()
	if err != nil {
		h.Log.Error("list categories failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list"})
		return
	}
	if len(cats) == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "no categories registered"})
		return
	}
	out := make([]CategoryResponse, 0, len(cats))
	for _, cat := range cats {
		out = append(out, CategoryResponse{ID: cat.ID, Name: cat.Name})
	}
	c.JSON(http.StatusOK, out)
}

func (h *Handlers) CreateCategory(c *gin.Context) {
	var req CreateCategoryRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid JSON"})
		return
	}
	if err := h.V.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if _, err := h.Categories.CreateCategory(req.Name); err != nil {
		if err == storage.ErrCategoryExists {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
			return
		}
		h.Log.Error("create category failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to persist"})
		return
	}
	telemetry.IncCategoriesCreated()
	c.Status(http.StatusOK)
}
