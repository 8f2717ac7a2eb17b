package api

import "time"

const dateLayout = "2006-01-02"

func formatDate(t time.Time) string { return t.Format(dateLayout) }

func formatDatePtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(dateLayout)
	return &s
}

type CreateCategoryRequest struct {
	Name string `json:"name" validate:"required,min=1,max=30,alphanum"`
}

type CategoryResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type CreateGameRequest struct {
	Name        string `json:"name"        validate:"required,min=1,max=30"`
	Image       string `json:"image"       validate:"required,url"`
	StockTotal  int    `json:"stockTotal"  validate:"required,gt=0"`
	CategoryID  int64  `json:"categoryId"  validate:"required,gt=0"`
	PricePerDay int    `json:"pricePerDay" validate:"required,gt=0"`
}

type GameResponse struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	Image        string `json:"image"`
	StockTotal   int    `json:"stockTotal"`
	CategoryID   int64  `json:"categoryId"`
	PricePerDay  int    `json:"pricePerDay"`
	CategoryName string `json:"categoryName"`
}

// CustomerRequest is shared by create and update (full replacement).
type CustomerRequest struct {
	Name     string `json:"name"     validate:"required,min=1,max=30"`
	Phone    string `json:"phone"    validate:"required,digits,min=10,max=11"`
	CPF      string `json:"cpf"      validate:"required,digits,len=11"`
	Birthday string `json:"birthday" validate:"required,datetime=2006-01-02"`
}

type CustomerResponse struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Phone    string `json:"phone"`
	CPF      string `json:"cpf"`
	Birthday string `json:"birthday"` // YYYY-MM-DD
}

type CreateRentalRequest struct {
	CustomerID int64 `json:"customerId" validate:"required,gt=0"`
	GameID     int64 `json:"gameId"     validate:"required,gt=0"`
	DaysRented int   `json:"daysRented" validate:"required,gt=0"`
}

type RentalResponse struct {
	ID            int64   `json:"id"`
	CustomerID    int64   `json:"customerId"`
	GameID        int64   `json:"gameId"`
	RentDate      string  `json:"rentDate"`
	DaysRented    int     `json:"daysRented"`
	ReturnDate    *string `json:"returnDate"`
	OriginalPrice int     `json:"originalPrice"`
	DelayFee      *int    `json:"delayFee"`
}

type RentalCustomer struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type RentalGame struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	CategoryID   int64  `json:"categoryId"`
	CategoryName string `json:"categoryName"`
}

// RentalListItem nests customer and game data under the joined rental.
type RentalListItem struct {
	RentalResponse
	Customer RentalCustomer `json:"customer"`
	Game     RentalGame     `json:"game"`
}
