package api

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/boardcamp/boardcamp-api/internal/events"
	"github.com/boardcamp/boardcamp-api/internal/storage"
)

func rentalBody(customerID, gameID int64, days int) map[string]any {
	return map[string]any{
		"customerId": customerID,
		"gameId":     gameID,
		"daysRented": days,
	}
}

func TestListRentalsEmpty(t *testing.T) {
	r, _, _ := setupTest(t)
	w := doRequest(t, r, http.MethodGet, "/rentals", nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d; want 404", w.Code)
	}
}

func TestCreateRentalPricing(t *testing.T) {
	r, store, _ := setupTest(t)
	cu := seedCustomer(t, store)
	g := seedGame(t, store, "Catan", 3, 10)

	w := doRequest(t, r, http.MethodPost, "/rentals", rentalBody(cu.ID, g.ID, 3))
	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d; want 201: %s", w.Code, w.Body.String())
	}
	var out RentalResponse
	decodeJSON(t, w, &out)
	if out.OriginalPrice != 30 {
		t.Fatalf("originalPrice = %d; want 30", out.OriginalPrice)
	}
	if out.ReturnDate != nil || out.DelayFee != nil {
		t.Fatalf("new rental must have null returnDate/delayFee: %+v", out)
	}
	if out.RentDate != "2026-08-01" {
		t.Fatalf("rentDate = %q; want 2026-08-01", out.RentDate)
	}
}

func TestCreateRentalValidation(t *testing.T) {
	r, store, _ := setupTest(t)
	cu := seedCustomer(t, store)
	g := seedGame(t, store, "Catan", 3, 10)

	cases := []map[string]any{
		{"customerId": cu.ID, "gameId": g.ID},                     // daysRented missing
		{"customerId": cu.ID, "gameId": g.ID, "daysRented": 0},    // zero days
		{"customerId": cu.ID, "gameId": g.ID, "daysRented": -2},   // negative days
		{"customerId": 0, "gameId": g.ID, "daysRented": 3},        // missing customer
		rentalBody(cu.ID+99, g.ID, 3),                             // unknown customer
		rentalBody(cu.ID, g.ID+99, 3),                             // unknown game
	}
	for i, body := range cases {
		w := doRequest(t, r, http.MethodPost, "/rentals", body)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("case %d status = %d; want 400", i, w.Code)
		}
	}
	if rows, _ := store.ListRentals(storage.RentalFilter{}); len(rows) != 0 {
		t.Fatalf("rejected payloads inserted %d rentals", len(rows))
	}
}

func TestCreateRentalOutOfStock(t *testing.T) {
	r, store, _ := setupTest(t)
	cu := seedCustomer(t, store)
	g := seedGame(t, store, "Catan", 1, 10)

	w := doRequest(t, r, http.MethodPost, "/rentals", rentalBody(cu.ID, g.ID, 3))
	if w.Code != http.StatusCreated {
		t.Fatalf("first rental status = %d", w.Code)
	}
	var first RentalResponse
	decodeJSON(t, w, &first)

	// open count equals stockTotal: reject
	w = doRequest(t, r, http.MethodPost, "/rentals", rentalBody(cu.ID, g.ID, 3))
	if w.Code != http.StatusBadRequest {
		t.Fatalf("out-of-stock status = %d; want 400", w.Code)
	}

	// returning the copy frees the stock
	w = doRequest(t, r, http.MethodPost, fmt.Sprintf("/rentals/%d/return", first.ID), nil)
	if w.Code != http.StatusOK {
		t.Fatalf("return status = %d", w.Code)
	}
	w = doRequest(t, r, http.MethodPost, "/rentals", rentalBody(cu.ID, g.ID, 3))
	if w.Code != http.StatusCreated {
		t.Fatalf("post-return rental status = %d; want 201", w.Code)
	}
}

func TestReturnRentalLate(t *testing.T) {
	r, store, h := setupTest(t)
	cu := seedCustomer(t, store)
	g := seedGame(t, store, "Catan", 3, 10)

	w := doRequest(t, r, http.MethodPost, "/rentals", rentalBody(cu.ID, g.ID, 3))
	var created RentalResponse
	decodeJSON(t, w, &created)

	// rented for 3 days, returned 5 days after the rent date: 2 days late
	h.Now = func() time.Time { return testToday.AddDate(0, 0, 5) }
	w = doRequest(t, r, http.MethodPost, fmt.Sprintf("/rentals/%d/return", created.ID), nil)
	if w.Code != http.StatusOK {
		t.Fatalf("return status = %d: %s", w.Code, w.Body.String())
	}
	var out RentalResponse
	decodeJSON(t, w, &out)
	if out.DelayFee == nil || *out.DelayFee != 20 {
		t.Fatalf("delayFee = %v; want 20", out.DelayFee)
	}
	if out.ReturnDate == nil || *out.ReturnDate != "2026-08-06" {
		t.Fatalf("returnDate = %v; want 2026-08-06", out.ReturnDate)
	}
}

func TestReturnRentalOnTimeOrEarly(t *testing.T) {
	for _, daysHeld := range []int{1, 3} {
		r, store, h := setupTest(t)
		cu := seedCustomer(t, store)
		g := seedGame(t, store, "Catan", 3, 10)

		w := doRequest(t, r, http.MethodPost, "/rentals", rentalBody(cu.ID, g.ID, 3))
		var created RentalResponse
		decodeJSON(t, w, &created)

		h.Now = func() time.Time { return testToday.AddDate(0, 0, daysHeld) }
		w = doRequest(t, r, http.MethodPost, fmt.Sprintf("/rentals/%d/return", created.ID), nil)
		if w.Code != http.StatusOK {
			t.Fatalf("return after %d days status = %d", daysHeld, w.Code)
		}
		var out RentalResponse
		decodeJSON(t, w, &out)
		if out.DelayFee == nil || *out.DelayFee != 0 {
			t.Fatalf("return after %d days delayFee = %v; want 0", daysHeld, out.DelayFee)
		}
	}
}

func TestReturnRentalTwice(t *testing.T) {
	r, store, h := setupTest(t)
	cu := seedCustomer(t, store)
	g := seedGame(t, store, "Catan", 3, 10)

	w := doRequest(t, r, http.MethodPost, "/rentals", rentalBody(cu.ID, g.ID, 3))
	var created RentalResponse
	decodeJSON(t, w, &created)

	h.Now = func() time.Time { return testToday.AddDate(0, 0, 5) }
	if w := doRequest(t, r, http.MethodPost, fmt.Sprintf("/rentals/%d/return", created.ID), nil); w.Code != http.StatusOK {
		t.Fatalf("first return status = %d", w.Code)
	}

	// a later second return must not recompute the fee
	h.Now = func() time.Time { return testToday.AddDate(0, 0, 30) }
	w = doRequest(t, r, http.MethodPost, fmt.Sprintf("/rentals/%d/return", created.ID), nil)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("second return status = %d; want 400", w.Code)
	}
	got, _ := store.GetRental(created.ID)
	if got.DelayFee == nil || *got.DelayFee != 20 {
		t.Fatalf("delayFee changed on second return: %v", got.DelayFee)
	}
}

func TestReturnRentalUnknown(t *testing.T) {
	r, _, _ := setupTest(t)
	w := doRequest(t, r, http.MethodPost, "/rentals/42/return", nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d; want 404", w.Code)
	}
}

func TestDeleteRental(t *testing.T) {
	r, store, h := setupTest(t)
	cu := seedCustomer(t, store)
	g := seedGame(t, store, "Catan", 3, 10)

	w := doRequest(t, r, http.MethodDelete, "/rentals/42", nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("unknown id status = %d; want 404", w.Code)
	}

	w = doRequest(t, r, http.MethodPost, "/rentals", rentalBody(cu.ID, g.ID, 3))
	var created RentalResponse
	decodeJSON(t, w, &created)

	// open rental deletes fine and disappears from listings
	w = doRequest(t, r, http.MethodDelete, fmt.Sprintf("/rentals/%d", created.ID), nil)
	if w.Code != http.StatusOK {
		t.Fatalf("delete status = %d; want 200", w.Code)
	}
	if w := doRequest(t, r, http.MethodGet, "/rentals", nil); w.Code != http.StatusNotFound {
		t.Fatalf("deleted rental still listed: status = %d", w.Code)
	}

	// closed rentals cannot be deleted
	w = doRequest(t, r, http.MethodPost, "/rentals", rentalBody(cu.ID, g.ID, 3))
	decodeJSON(t, w, &created)
	h.Now = func() time.Time { return testToday.AddDate(0, 0, 3) }
	if w := doRequest(t, r, http.MethodPost, fmt.Sprintf("/rentals/%d/return", created.ID), nil); w.Code != http.StatusOK {
		t.Fatalf("return status = %d", w.Code)
	}
	w = doRequest(t, r, http.MethodDelete, fmt.Sprintf("/rentals/%d", created.ID), nil)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("delete closed rental status = %d; want 400", w.Code)
	}
}

func TestListRentalsJoinsAndFilters(t *testing.T) {
	r, store, _ := setupTest(t)
	c1 := seedCustomer(t, store)
	c2, _ := store.CreateCustomer(seedOther())
	g1 := seedGame(t, store, "Catan", 3, 10)
	g2 := seedGame(t, store, "Targi", 3, 5)

	for _, body := range []map[string]any{
		rentalBody(c1.ID, g1.ID, 3),
		rentalBody(c1.ID, g2.ID, 3),
		rentalBody(c2.ID, g1.ID, 3),
	} {
		if w := doRequest(t, r, http.MethodPost, "/rentals", body); w.Code != http.StatusCreated {
			t.Fatalf("seed rental status = %d", w.Code)
		}
	}

	w := doRequest(t, r, http.MethodGet, "/rentals", nil)
	var out []RentalListItem
	decodeJSON(t, w, &out)
	if len(out) != 3 {
		t.Fatalf("unfiltered = %d; want 3", len(out))
	}
	if out[0].Customer.Name != "Joana" || out[0].Game.Name != "Catan" || out[0].Game.CategoryName == "" {
		t.Fatalf("nested objects wrong: %+v", out[0])
	}

	// both query filters apply together
	w = doRequest(t, r, http.MethodGet, fmt.Sprintf("/rentals?customerId=%d&gameId=%d", c1.ID, g2.ID), nil)
	if w.Code != http.StatusOK {
		t.Fatalf("filtered status = %d", w.Code)
	}
	decodeJSON(t, w, &out)
	if len(out) != 1 || out[0].CustomerID != c1.ID || out[0].GameID != g2.ID {
		t.Fatalf("combined filter = %+v", out)
	}

	w = doRequest(t, r, http.MethodGet, fmt.Sprintf("/rentals?customerId=%d&gameId=%d", c2.ID, g2.ID), nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("disjoint filter status = %d; want 404", w.Code)
	}
}

func TestCreateRentalPublishesEvent(t *testing.T) {
	r, store, h := setupTest(t)
	cu := seedCustomer(t, store)
	g := seedGame(t, store, "Catan", 3, 10)

	var published []events.Event
	h.Publish = func(e events.Event) { published = append(published, e) }

	w := doRequest(t, r, http.MethodPost, "/rentals", rentalBody(cu.ID, g.ID, 3))
	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d", w.Code)
	}
	if len(published) != 1 || published[0].Type != events.TypeRentalCreated {
		t.Fatalf("published = %+v", published)
	}
	payload, ok := published[0].Payload.(events.RentalCreated)
	if !ok || payload.OriginalPrice != 30 || payload.RentDate != "2026-08-01" {
		t.Fatalf("payload = %+v", published[0].Payload)
	}
}
