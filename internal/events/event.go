package events

// Event types match the embedded schema filenames (minus the .json suffix).
const (
	TypeRentalCreated  = "rental_created.v1"
	TypeRentalReturned = "rental_returned.v1"
)

// Event is one domain event queued for publication, keyed for partitioning.
type Event struct {
	Type    string
	Key     string
	Payload any
}

type RentalCreated struct {
	RentalID      int64  `json:"rentalId"`
	CustomerID    int64  `json:"customerId"`
	GameID        int64  `json:"gameId"`
	RentDate      string `json:"rentDate"` // YYYY-MM-DD
	DaysRented    int    `json:"daysRented"`
	OriginalPrice int    `json:"originalPrice"`
}

type RentalReturned struct {
	RentalID   int64  `json:"rentalId"`
	ReturnDate string `json:"returnDate"` // YYYY-MM-DD
	DelayFee   int    `json:"delayFee"`
}
