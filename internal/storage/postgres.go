package storage

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	_ "github.com/jackc/pgx/v5/stdlib"
)

type PostgresStore struct {
	DB *sql.DB
}

func NewPostgres(dsn string) (*PostgresStore, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(15)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(1 * time.Hour)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		return nil, err
	}
	return &PostgresStore{DB: db}, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505" // unique_violation
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// escapeLike neutralizes LIKE metacharacters so a user-supplied prefix
// matches literally instead of acting as a wildcard.
func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

// Categories

func (p *PostgresStore) ListCategories() ([]Category, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	rows, err := p.DB.QueryContext(ctx, `SELECT id, name FROM categories ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Category
	for rows.Next() {
		var c Category
		if err := rows.Scan(&c.ID, &c.Name); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (p *PostgresStore) GetCategory(id int64) (Category, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	var c Category
	err := p.DB.QueryRowContext(ctx,
		`SELECT id, name FROM categories WHERE id = $1`, id).
		Scan(&c.ID, &c.Name)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Category{}, ErrCategoryNotFound
		}
		return Category{}, err
	}
	return c, nil
}

func (p *PostgresStore) CreateCategory(name string) (Category, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	c := Category{Name: name}
	err := p.DB.QueryRowContext(ctx,
		`INSERT INTO categories (name) VALUES ($1) RETURNING id`, name).
		Scan(&c.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return Category{}, ErrCategoryExists
		}
		return Category{}, err
	}
	return c, nil
}

// Games

func (p *PostgresStore) ListGames(namePrefix string) ([]GameRow, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	// Prefix filter is a bound parameter, never interpolated.
	rows, err := p.DB.QueryContext(ctx, `
		SELECT g.id, g.name, g.image, g."stockTotal", g."categoryId", g."pricePerDay",
		       c.name AS "categoryName"
		FROM games g
		JOIN categories c ON g."categoryId" = c.id
		WHERE $1 = '' OR g.name ILIKE $2 || '%'
		ORDER BY g.id`, namePrefix, escapeLike(namePrefix))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []GameRow
	for rows.Next() {
		var g GameRow
		if err := rows.Scan(&g.ID, &g.Name, &g.Image, &g.StockTotal, &g.CategoryID, &g.PricePerDay, &g.CategoryName); err != nil {
			return nil, err
		}
		out = append(out, g)
	}
	return out, rows.Err()
}

func (p *PostgresStore) GetGame(id int64) (Game, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	var g Game
	err := p.DB.QueryRowContext(ctx, `
		SELECT id, name, image, "stockTotal", "categoryId", "pricePerDay"
		FROM games WHERE id = $1`, id).
		Scan(&g.ID, &g.Name, &g.Image, &g.StockTotal, &g.CategoryID, &g.PricePerDay)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Game{}, ErrGameNotFound
		}
		return Game{}, err
	}
	return g, nil
}

func (p *PostgresStore) CreateGame(g Game) (Game, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	err := p.DB.QueryRowContext(ctx, `
		INSERT INTO games (name, image, "stockTotal", "categoryId", "pricePerDay")
		VALUES ($1, $2, $3, $4, $5) RETURNING id`,
		g.Name, g.Image, g.StockTotal, g.CategoryID, g.PricePerDay).
		Scan(&g.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return Game{}, ErrGameExists
		}
		return Game{}, err
	}
	return g, nil
}

// Customers

func (p *PostgresStore) ListCustomers(cpfPrefix string) ([]Customer, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	rows, err := p.DB.QueryContext(ctx, `
		SELECT id, name, phone, cpf, birthday
		FROM customers
		WHERE $1 = '' OR cpf LIKE $2 || '%'
		ORDER BY id`, cpfPrefix, escapeLike(cpfPrefix))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Customer
	for rows.Next() {
		var cu Customer
		if err := rows.Scan(&cu.ID, &cu.Name, &cu.Phone, &cu.CPF, &cu.Birthday); err != nil {
			return nil, err
		}
		out = append(out, cu)
	}
	return out, rows.Err()
}

func (p *PostgresStore) GetCustomer(id int64) (Customer, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	var cu Customer
	err := p.DB.QueryRowContext(ctx,
		`SELECT id, name, phone, cpf, birthday FROM customers WHERE id = $1`, id).
		Scan(&cu.ID, &cu.Name, &cu.Phone, &cu.CPF, &cu.Birthday)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Customer{}, ErrCustomerNotFound
		}
		return Customer{}, err
	}
	return cu, nil
}

func (p *PostgresStore) CreateCustomer(cu Customer) (Customer, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	err := p.DB.QueryRowContext(ctx, `
		INSERT INTO customers (name, phone, cpf, birthday)
		VALUES ($1, $2, $3, $4) RETURNING id`,
		cu.Name, cu.Phone, cu.CPF, cu.Birthday).
		Scan(&cu.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return Customer{}, ErrCPFExists
		}
		return Customer{}, err
	}
	return cu, nil
}

func (p *PostgresStore) UpdateCustomer(cu Customer) error {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	res, err := p.DB.ExecContext(ctx, `
		UPDATE customers SET name = $1, phone = $2, cpf = $3, birthday = $4
		WHERE id = $5`,
		cu.Name, cu.Phone, cu.CPF, cu.Birthday, cu.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrCPFExists
		}
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return ErrCustomerNotFound
	}
	return nil
}

// Rentals

func (p *PostgresStore) ListRentals(f RentalFilter) ([]RentalRow, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	rows, err := p.DB.QueryContext(ctx, `
		SELECT r.id, r."customerId", r."gameId", r."rentDate", r."daysRented",
		       r."returnDate", r."originalPrice", r."delayFee",
		       cu.name AS "customerName",
		       g.name AS "gameName", g."categoryId",
		       c.name AS "categoryName"
		FROM rentals r
		JOIN customers cu ON r."customerId" = cu.id
		JOIN games g ON r."gameId" = g.id
		JOIN categories c ON g."categoryId" = c.id
		WHERE ($1 = 0 OR r."customerId" = $1)
		  AND ($2 = 0 OR r."gameId" = $2)
		ORDER BY r.id`, f.CustomerID, f.GameID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []RentalRow
	for rows.Next() {
		var r RentalRow
		if err := rows.Scan(
			&r.ID, &r.CustomerID, &r.GameID, &r.RentDate, &r.DaysRented,
			&r.ReturnDate, &r.OriginalPrice, &r.DelayFee,
			&r.CustomerName, &r.GameName, &r.CategoryID, &r.CategoryName,
		); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func (p *PostgresStore) GetRental(id int64) (Rental, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	var r Rental
	err := p.DB.QueryRowContext(ctx, `
		SELECT id, "customerId", "gameId", "rentDate", "daysRented",
		       "returnDate", "originalPrice", "delayFee"
		FROM rentals WHERE id = $1`, id).
		Scan(&r.ID, &r.CustomerID, &r.GameID, &r.RentDate, &r.DaysRented,
			&r.ReturnDate, &r.OriginalPrice, &r.DelayFee)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Rental{}, ErrRentalNotFound
		}
		return Rental{}, err
	}
	return r, nil
}

func (p *PostgresStore) CreateRental(r Rental) (Rental, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	err := p.DB.QueryRowContext(ctx, `
		INSERT INTO rentals ("customerId", "gameId", "rentDate", "daysRented",
		                     "returnDate", "originalPrice", "delayFee")
		VALUES ($1, $2, $3, $4, NULL, $5, NULL) RETURNING id`,
		r.CustomerID, r.GameID, r.RentDate, r.DaysRented, r.OriginalPrice).
		Scan(&r.ID)
	if err != nil {
		return Rental{}, err
	}
	return r, nil
}

func (p *PostgresStore) CountOpenRentals(gameID int64) (int, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	var n int
	err := p.DB.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM rentals
		WHERE "gameId" = $1 AND "returnDate" IS NULL`, gameID).
		Scan(&n)
	return n, err
}

func (p *PostgresStore) CloseRental(id int64, returnDate time.Time, delayFee int) error {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	res, err := p.DB.ExecContext(ctx, `
		UPDATE rentals SET "returnDate" = $2, "delayFee" = $3
		WHERE id = $1`, id, returnDate, delayFee)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return ErrRentalNotFound
	}
	return nil
}

func (p *PostgresStore) DeleteRental(id int64) error {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	res, err := p.DB.ExecContext(ctx, `DELETE FROM rentals WHERE id = $1`, id)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return ErrRentalNotFound
	}
	return nil
}
