package api

import (
	"context"
	"net/http"
	"time"

	"github.com/boardcamp/boardcamp-api/internal/events"
	"github.com/boardcamp/boardcamp-api/internal/storage"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

type Handlers struct {
	Log        *zap.Logger
	Categories storage.CategoryRepo
	Games      storage.GameRepo
	Customers  storage.CustomerRepo
	Rentals    storage.RentalRepo
	V          *validator.Validate
	DBPing     func(ctx context.Context) error

	// Publish hands a domain event to the dispatcher (nil when Kafka is off).
	Publish func(events.Event)

	// Now supplies "today" for rent and return dates; nil means time.Now.
	Now func() time.Time
}

// today returns the current date truncated to UTC midnight.
func (h *Handlers) today() time.Time {
	now := time.Now
	if h.Now != nil {
		now = h.Now
	}
	t := now().UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// health handler
func (h *Handlers) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), time.Second)
	defer cancel()

	db := "ok"
	if h.DBPing != nil {
		if err := h.DBPing(ctx); err != nil {
			db = "down"
		}
	}
	c.JSON(http.StatusOK, gin.H{
		"status":         "ok",
		"db":             db,
		"events_enabled": h.Publish != nil,
	})
}
