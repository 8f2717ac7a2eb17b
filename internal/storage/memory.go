package storage

import (
	"errors"
	"sort"
	"strings"
	"sync"
	"time"
)

var (
	ErrCategoryExists   = errors.New("category already exists")
	ErrCategoryNotFound = errors.New("category not found")
	ErrGameExists       = errors.New("game already exists")
	ErrGameNotFound     = errors.New("game not found")
	ErrCPFExists        = errors.New("cpf already registered")
	ErrCustomerNotFound = errors.New("customer not found")
	ErrRentalNotFound   = errors.New("rental not found")
)

type Category struct {
	ID   int64
	Name string
}

type Game struct {
	ID          int64
	Name        string
	Image       string
	StockTotal  int
	CategoryID  int64
	PricePerDay int
}

// GameRow is a Game joined with its category name.
type GameRow struct {
	Game
	CategoryName string
}

type Customer struct {
	ID       int64
	Name     string
	Phone    string
	CPF      string
	Birthday time.Time
}

type Rental struct {
	ID            int64
	CustomerID    int64
	GameID        int64
	RentDate      time.Time
	DaysRented    int
	ReturnDate    *time.Time
	OriginalPrice int
	DelayFee      *int
}

// RentalRow is a Rental joined with customer and game/category data.
type RentalRow struct {
	Rental
	CustomerName string
	GameName     string
	CategoryID   int64
	CategoryName string
}

// RentalFilter restricts ListRentals; zero fields mean "no filter".
// When both ids are set the filters are ANDed.
type RentalFilter struct {
	CustomerID int64
	GameID     int64
}

type CategoryRepo interface {
	ListCategories() ([]Category, error)
	GetCategory(id int64) (Category, error)
	CreateCategory(name string) (Category, error)
}

type GameRepo interface {
	// ListGames returns games joined with their category name; namePrefix
	// restricts to names starting with the prefix, case-insensitively.
	ListGames(namePrefix string) ([]GameRow, error)
	GetGame(id int64) (Game, error)
	CreateGame(g Game) (Game, error)
}

type CustomerRepo interface {
	ListCustomers(cpfPrefix string) ([]Customer, error)
	GetCustomer(id int64) (Customer, error)
	CreateCustomer(cu Customer) (Customer, error)
	UpdateCustomer(cu Customer) error
}

type RentalRepo interface {
	ListRentals(f RentalFilter) ([]RentalRow, error)
	GetRental(id int64) (Rental, error)
	CreateRental(r Rental) (Rental, error)
	// CountOpenRentals counts rentals for the game whose return date is unset.
	CountOpenRentals(gameID int64) (int, error)
	CloseRental(id int64, returnDate time.Time, delayFee int) error
	DeleteRental(id int64) error
}

// MemoryStore implements every repo interface. It backs tests and DSN-less
// local runs.
type MemoryStore struct {
	mu         sync.RWMutex
	categories map[int64]Category
	games      map[int64]Game
	customers  map[int64]Customer
	rentals    map[int64]Rental
	nextID     map[string]int64
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		categories: make(map[int64]Category),
		games:      make(map[int64]Game),
		customers:  make(map[int64]Customer),
		rentals:    make(map[int64]Rental),
		nextID:     make(map[string]int64),
	}
}

func (s *MemoryStore) seq(table string) int64 {
	s.nextID[table]++
	return s.nextID[table]
}

func (s *MemoryStore) ListCategories() ([]Category, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Category, 0, len(s.categories))
	for _, c := range s.categories {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *MemoryStore) GetCategory(id int64) (Category, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.categories[id]
	if !ok {
		return Category{}, ErrCategoryNotFound
	}
	return c, nil
}

func (s *MemoryStore) CreateCategory(name string) (Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, c := range s.categories {
		if strings.EqualFold(c.Name, name) {
			return Category{}, ErrCategoryExists
		}
	}
	c := Category{ID: s.seq("categories"), Name: name}
	s.categories[c.ID] = c
	return c, nil
}

func (s *MemoryStore) ListGames(namePrefix string) ([]GameRow, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	prefix := strings.ToLower(namePrefix)
	var out []GameRow
	for _, g := range s.games {
		if prefix != "" && !strings.HasPrefix(strings.ToLower(g.Name), prefix) {
			continue
		}
		out = append(out, GameRow{Game: g, CategoryName: s.categories[g.CategoryID].Name})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *MemoryStore) GetGame(id int64) (Game, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	g, ok := s.games[id]
	if !ok {
		return Game{}, ErrGameNotFound
	}
	return g, nil
}

func (s *MemoryStore) CreateGame(g Game) (Game, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.games {
		if strings.EqualFold(existing.Name, g.Name) {
			return Game{}, ErrGameExists
		}
	}
	g.ID = s.seq("games")
	s.games[g.ID] = g
	return g, nil
}

func (s *MemoryStore) ListCustomers(cpfPrefix string) ([]Customer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []Customer
	for _, cu := range s.customers {
		if cpfPrefix != "" && !strings.HasPrefix(cu.CPF, cpfPrefix) {
			continue
		}
		out = append(out, cu)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *MemoryStore) GetCustomer(id int64) (Customer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	cu, ok := s.customers[id]
	if !ok {
		return Customer{}, ErrCustomerNotFound
	}
	return cu, nil
}

func (s *MemoryStore) CreateCustomer(cu Customer) (Customer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.customers {
		if existing.CPF == cu.CPF {
			return Customer{}, ErrCPFExists
		}
	}
	cu.ID = s.seq("customers")
	s.customers[cu.ID] = cu
	return cu, nil
}

func (s *MemoryStore) UpdateCustomer(cu Customer) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.customers[cu.ID]; !ok {
		return ErrCustomerNotFound
	}
	for id, existing := range s.customers {
		if id != cu.ID && existing.CPF == cu.CPF {
			return ErrCPFExists
		}
	}
	s.customers[cu.ID] = cu
	return nil
}

func (s *MemoryStore) ListRentals(f RentalFilter) ([]RentalRow, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []RentalRow
	for _, r := range s.rentals {
		if f.CustomerID != 0 && r.CustomerID != f.CustomerID {
			continue
		}
		if f.GameID != 0 && r.GameID != f.GameID {
			continue
		}
		g := s.games[r.GameID]
		out = append(out, RentalRow{
			Rental:       r,
			CustomerName: s.customers[r.CustomerID].Name,
			GameName:     g.Name,
			CategoryID:   g.CategoryID,
			CategoryName: s.categories[g.CategoryID].Name,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *MemoryStore) GetRental(id int64) (Rental, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.rentals[id]
	if !ok {
		return Rental{}, ErrRentalNotFound
	}
	return r, nil
}

func (s *MemoryStore) CreateRental(r Rental) (Rental, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r.ID = s.seq("rentals")
	s.rentals[r.ID] = r
	return r, nil
}

func (s *MemoryStore) CountOpenRentals(gameID int64) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	n := 0
	for _, r := range s.rentals {
		if r.GameID == gameID && r.ReturnDate == nil {
			n++
		}
	}
	return n, nil
}

func (s *MemoryStore) CloseRental(id int64, returnDate time.Time, delayFee int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.rentals[id]
	if !ok {
		return ErrRentalNotFound
	}
	r.ReturnDate = &returnDate
	r.DelayFee = &delayFee
	s.rentals[id] = r
	return nil
}

func (s *MemoryStore) DeleteRental(id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.rentals[id]; !ok {
		return ErrRentalNotFound
	}
	delete(s.rentals, id)
	return nil
}
