// Command seed-products populates a marketplace database with an owner
// account and a batch of sample products for local development.
package main

import (
	"database/sql"
	"flag"
	"fmt"
	"os"
	"time"

	_ "github.com/lib/pq"

	"github.com/mercato/mercato/internal/auth"
)

type sampleProduct struct {
	name        string
	description string
	price       float64
	quantity    int
}

var samples = []sampleProduct{
	{"Espresso Beans 1kg", "Dark roast arabica beans from a single estate.", 18.50, 40},
	{"Ceramic Pour-Over Set", "Dripper, carafe and filter holder in matte white.", 34.00, 15},
	{"Walnut Desk Organizer", "Five-compartment organizer, oiled walnut.", 42.90, 8},
	{"Linen Tote Bag", "Heavyweight linen tote with internal pocket.", 21.00, 60},
	{"Mechanical Pencil 0.5", "Knurled aluminium body, retractable tip.", 12.75, 120},
	{"Travel French Press", "Insulated 350ml press, stainless steel.", 27.30, 25},
	{"Beeswax Candle Pair", "Hand-dipped taper candles, unscented.", 9.99, 80},
	{"Cast Iron Skillet 26cm", "Pre-seasoned skillet with pour spouts.", 39.00, 12},
	{"Notebook A5 Dotted", "180gsm paper, lay-flat binding, 160 pages.", 14.20, 200},
	{"Wool Throw Blanket", "Lambswool throw, herringbone weave.", 74.50, 6},
}

func main() {
	var (
		databaseURL   = flag.String("database-url", os.Getenv("DATABASE_URL"), "PostgreSQL connection string")
		ownerEmail    = flag.String("owner-email", "seller@mercato.local", "Email of the account that owns the seeded products")
		ownerPassword = flag.String("owner-password", "changeme-seed", "Password for the owner account")
		count         = flag.Int("count", len(samples), "Number of products to insert (cycles through the sample set)")
	)
	flag.Parse()

	if *databaseURL == "" {
		fmt.Fprintln(os.Stderr, "DATABASE_URL is required")
		os.Exit(1)
	}
	if *count < 1 {
		fmt.Fprintln(os.Stderr, "count must be at least 1")
		os.Exit(1)
	}

	db, err := sql.Open("postgres", *databaseURL)
	if err != nil {
		fmt.Fprintln(os.Stderr, "open database:", err)
		os.Exit(1)
	}
	defer db.Close()

	db.SetConnMaxLifetime(time.Minute)

	if err := db.Ping(); err != nil {
		fmt.Fprintln(os.Stderr, "connect database:", err)
		os.Exit(1)
	}

	ownerID, err := ensureOwner(db, *ownerEmail, *ownerPassword)
	if err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(1)
	}

	inserted, err := seedProducts(db, ownerID, *count)
	if err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(1)
	}

	fmt.Printf("owner:    %s (id %d)\n", *ownerEmail, ownerID)
	fmt.Printf("products: %d inserted\n", inserted)
}

// ensureOwner creates the seed account if it does not exist and returns
// its id either way.
func ensureOwner(db *sql.DB, email, password string) (int64, error) {
	var id int64
	err := db.QueryRow(`SELECT id FROM users WHERE email = $1`, email).Scan(&id)
	if err == nil {
		return id, nil
	}
	if err != sql.ErrNoRows {
		return 0, fmt.Errorf("look up owner: %w", err)
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return 0, fmt.Errorf("hash owner password: %w", err)
	}

	err = db.QueryRow(
		`INSERT INTO users (first_name, last_name, email, password_hash, full_address)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id`,
		"Seed", "Seller", email, hash, "1 Sample Street",
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("create owner: %w", err)
	}

	return id, nil
}

func seedProducts(db *sql.DB, ownerID int64, count int) (int, error) {
	tx, err := db.Begin()
	if err != nil {
		return 0, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(
		`INSERT INTO products (name, description, price, quantity, owner_id)
		 VALUES ($1, $2, $3, $4, $5)`,
	)
	if err != nil {
		return 0, fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for i := 0; i < count; i++ {
		p := samples[i%len(samples)]
		name := p.name
		if i >= len(samples) {
			// Keep names distinct when cycling past the sample set.
			name = fmt.Sprintf("%s #%d", p.name, i/len(samples)+1)
		}
		if _, err := stmt.Exec(name, p.description, p.price, p.quantity, ownerID); err != nil {
			return 0, fmt.Errorf("insert product %q: %w", name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit: %w", err)
	}

	return count, nil
}
