package api

import (
	"net/http"
	"strconv"

	"github.com/boardcamp/boardcamp-api/internal/events"
	"github.com/boardcamp/boardcamp-api/internal/storage"
	"github.com/boardcamp/boardcamp-api/telemetry"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func rentalResponse(r storage.Rental) RentalResponse {
	return RentalResponse{
		ID:            r.ID,
		CustomerID:    r.CustomerID,
		GameID:        r.GameID,
		RentDate:      formatDate(r.RentDate),
		DaysRented:    r.DaysRented,
		ReturnDate:    formatDatePtr(r.ReturnDate),
		OriginalPrice: r.OriginalPrice,
		DelayFee:      r.DelayFee,
	}
}

func queryID(c *gin.Context, name string) (int64, bool) {
	raw := c.Query(name)
	if raw == "" {
		return 0, true
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// ListRentals godoc
// @Summary      List rentals
// @Description  Rentals joined with customer and game data. Both filters may be combined.
// @Tags         rentals
// @Produce      json
// @Param        customerId  query  int  false  "restrict to one customer"
// @Param        gameId      query  int  false  "restrict to one game"
// @Success      200  {array}   RentalListItem
// @Failure      404  {object}  map[string]string
// @Router       /rentals [get]
func (h *Handlers) ListRentals(c *gin.Context) {
	customerID, ok := queryID(c, "customerId")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid customerId"})
		return
	}
	gameID, ok := queryID(c, "gameId")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid gameId"})
		return
	}

	rows, err := h.Rentals.ListRentals(storage.RentalFilter{CustomerID: customerID, GameID: gameID})
	if err != nil {
		h.Log.Error("list rentals failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list"})
		return
	}
	if len(rows) == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "no rentals found"})
		return
	}
	out := make([]RentalListItem, 0, len(rows))
	for _, r := range rows {
		out = append(out, RentalListItem{
			RentalResponse: rentalResponse(r.Rental),
			Customer:       RentalCustomer{ID: r.CustomerID, Name: r.CustomerName},
			Game: RentalGame{
				ID:           r.GameID,
				Name:         r.GameName,
				CategoryID:   r.CategoryID,
				CategoryName: r.CategoryName,
			},
		})
	}
	c.JSON(http.StatusOK, out)
}

// CreateRental godoc
// @Summary      Open a rental
// @Description  Prices the rental at daysRented times the game's daily price and checks stock.
// @Tags         rentals
// @Accept       json
// @Produce      json
// @Param        payload  body      CreateRentalRequest  true  "Rental payload"
// @Success      201      {object}  RentalResponse
// @Failure      400      {object}  map[string]string
// @Router       /rentals [post]
func (h *Handlers) CreateRental(c *gin.Context) {
	var req CreateRentalRequest
	if err := c.BindJSON(&req); err != nil {
		telemetry.IncRentalsCreateFailed("validation")
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid JSON"})
		return
	}
	if err := h.V.Struct(req); err != nil {
		telemetry.IncRentalsCreateFailed("validation")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if _, err := h.Customers.GetCustomer(req.CustomerID); err != nil {
		if err == storage.ErrCustomerNotFound {
			telemetry.IncRentalsCreateFailed("not_found")
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		h.Log.Error("customer lookup failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to persist"})
		return
	}
	game, err := h.Games.GetGame(req.GameID)
	if err != nil {
		if err == storage.ErrGameNotFound {
			telemetry.IncRentalsCreateFailed("not_found")
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		h.Log.Error("game lookup failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to persist"})
		return
	}

	// Read-then-insert: the window between the count and the insert is an
	// accepted limitation, matching the store's non-transactional contract.
	open, err := h.Rentals.CountOpenRentals(req.GameID)
	if err != nil {
		h.Log.Error("open rental count failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to persist"})
		return
	}
	if open >= game.StockTotal {
		telemetry.IncRentalsCreateFailed("out_of_stock")
		c.JSON(http.StatusBadRequest, gin.H{"error": "out of stock"})
		return
	}

	r, err := h.Rentals.CreateRental(storage.Rental{
		CustomerID:    req.CustomerID,
		GameID:        req.GameID,
		RentDate:      h.today(),
		DaysRented:    req.DaysRented,
		OriginalPrice: req.DaysRented * game.PricePerDay,
	})
	if err != nil {
		telemetry.IncRentalsCreateFailed("db")
		h.Log.Error("create rental failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to persist"})
		return
	}
	telemetry.IncRentalsCreated()

	if h.Publish != nil {
		h.Publish(events.Event{
			Type: events.TypeRentalCreated,
			Key:  strconv.FormatInt(r.ID, 10),
			Payload: events.RentalCreated{
				RentalID:      r.ID,
				CustomerID:    r.CustomerID,
				GameID:        r.GameID,
				RentDate:      formatDate(r.RentDate),
				DaysRented:    r.DaysRented,
				OriginalPrice: r.OriginalPrice,
			},
		})
	}

	c.JSON(http.StatusCreated, rentalResponse(r))
}

// ReturnRental godoc
// @Summary      Close a rental
// @Description  Sets the return date to today and charges a delay fee for days held past daysRented.
// @Tags         rentals
// @Produce      json
// @Param        id  path  int  true  "rental id"
// @Success      200  {object}  RentalResponse
// @Failure      400  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /rentals/{id}/return [post]
func (h *Handlers) ReturnRental(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	r, err := h.Rentals.GetRental(id)
	if err != nil {
		if err == storage.ErrRentalNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		h.Log.Error("get rental failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch"})
		return
	}
	if r.ReturnDate != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "rental already returned"})
		return
	}

	today := h.today()
	delayDays := int(today.Sub(r.RentDate).Hours()/24) - r.DaysRented
	fee := 0
	if delayDays > 0 {
		// originalPrice / daysRented is the per-day price fixed at creation.
		fee = delayDays * (r.OriginalPrice / r.DaysRented)
	}

	if err := h.Rentals.CloseRental(id, today, fee); err != nil {
		h.Log.Error("close rental failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to persist"})
		return
	}
	telemetry.IncRentalsReturned()
	telemetry.AddDelayFeesCharged(fee)

	if h.Publish != nil {
		h.Publish(events.Event{
			Type: events.TypeRentalReturned,
			Key:  strconv.FormatInt(id, 10),
			Payload: events.RentalReturned{
				RentalID:   id,
				ReturnDate: formatDate(today),
				DelayFee:   fee,
			},
		})
	}

	r.ReturnDate = &today
	r.DelayFee = &fee
	c.JSON(http.StatusOK, rentalResponse(r))
}

func (h *Handlers) DeleteRental(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	r, err := h.Rentals.GetRental(id)
	if err != nil {
		if err == storage.ErrRentalNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		h.Log.Error("get rental failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch"})
		return
	}
	if r.ReturnDate != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "rental already returned"})
		return
	}

	if err := h.Rentals.DeleteRental(id); err != nil {
		if err == storage.ErrRentalNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		h.Log.Error("delete rental failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to persist"})
		return
	}
	telemetry.IncRentalsDeleted()
	c.Status(http.StatusOK)
}
