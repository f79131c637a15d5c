package repos

import (
	"log"

	"github.com/jmoiron/sqlx"
	"golang.org/x/crypto/bcrypt"
	_ "modernc.org/sqlite"
)

func OpenDB(dsn string) (*sqlx.DB, error) {
	db, err := sqlx.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	// sqlite serializes writers anyway, and a pooled :memory: DSN would
	// hand every new conn its own empty database.
	db.SetMaxOpenConns(1)
	if err = db.Ping(); err != nil {
		return nil, err
	}

	if err := ensureSchema(db); err != nil {
		return nil, err
	}
	// Seed baseline data if DB is empty (users/listings/coupons)
	if err := seedUsers(db); err != nil {
		return nil, err
	}
	if err := seedIfEmpty(db); err != nil {
		return nil, err
	}
	if err := seedCoupons(db); err != nil {
		return nil, err
	}

	return db, nil
}

func ensureSchema(db *sqlx.DB) error {
	schema := `
PRAGMA foreign_keys = ON;

-- Users & Sessions
CREATE TABLE IF NOT EXISTS users(
  id TEXT PRIMARY KEY,
  email TEXT NOT NULL UNIQUE,
  name TEXT NOT NULL,
  password_hash TEXT NOT NULL,
  role TEXT NOT NULL CHECK (role IN ('USER','ADMIN')),
  created_at TEXT DEFAULT CURRENT_TIMESTAMP,
  updated_at TEXT
);
CREATE UNIQUE INDEX IF NOT EXISTS idx_users_email ON users(LOWER(email));

CREATE TABLE IF NOT EXISTS sessions(
  id TEXT PRIMARY KEY,               -- same value as the 'sid' cookie
  user_id TEXT NULL REFERENCES users(id) ON DELETE SET NULL,
  created_at TEXT DEFAULT CURRENT_TIMESTAMP,
  last_seen  TEXT
);
CREATE INDEX IF NOT EXISTS idx_sessions_user ON sessions(user_id);

-- Listings: one row per item offered by a seller.
-- size applies only to clothes, genre only to books.
CREATE TABLE IF NOT EXISTS listings(
  id TEXT PRIMARY KEY,
  seller_id TEXT NOT NULL REFERENCES users(id) ON DELETE RESTRICT,
  title TEXT NOT NULL DEFAULT '',
  description TEXT NOT NULL DEFAULT '',
  price NUMERIC NOT NULL DEFAULT 0 CHECK (price >= 0),
  image_url TEXT NULL,
  support_images_json TEXT NOT NULL DEFAULT '[]',
  category TEXT NOT NULL CHECK (category IN ('clothes','miscellaneous','gadgets','stationary','books','other')),
  size TEXT NULL,
  genre TEXT NULL,
  quantity INTEGER NOT NULL DEFAULT 1 CHECK (quantity >= 0),
  created_at TEXT DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_listings_seller     ON listings(seller_id);
CREATE INDEX IF NOT EXISTS idx_listings_category   ON listings(category);
CREATE INDEX IF NOT EXISTS idx_listings_title      ON listings(LOWER(title));
CREATE INDEX IF NOT EXISTS idx_listings_created_at ON listings(created_at);

-- Coupons: code -> flat discount amount
CREATE TABLE IF NOT EXISTS coupons(
  code TEXT PRIMARY KEY,
  discount NUMERIC NOT NULL CHECK (discount >= 0)
);

-- Purchases: one row per confirmed checkout
CREATE TABLE IF NOT EXISTS purchases(
  id TEXT PRIMARY KEY,
  listing_id TEXT NOT NULL REFERENCES listings(id),
  buyer_session TEXT,
  base_price NUMERIC NOT NULL,
  transaction_fee NUMERIC NOT NULL,
  discount NUMERIC NOT NULL DEFAULT 0,
  coupon_code TEXT NOT NULL DEFAULT '',
  total NUMERIC NOT NULL,
  status TEXT NOT NULL DEFAULT 'CONFIRMED',
  created_at TEXT DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_purchases_session ON purchases(buyer_session);

-- Saved items per browsing session
CREATE TABLE IF NOT EXISTS saved_items(
  session_id TEXT NOT NULL,
  listing_id TEXT NOT NULL REFERENCES listings(id) ON DELETE CASCADE,
  created_at TEXT DEFAULT CURRENT_TIMESTAMP,
  PRIMARY KEY (session_id, listing_id)
);
`
	_, err := db.Exec(schema)
	return err
}

func seedIfEmpty(db *sqlx.DB) error {
	var n int
	if err := db.Get(&n, `SELECT COUNT(*) FROM listings`); err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	log.Println("[seed] inserting demo listings")

	tx := db.MustBegin()
	tx.MustExec(`INSERT INTO listings(id,seller_id,title,description,price,image_url,category,size,quantity) VALUES
	  ('lst-pe-shirt','u-alice','Pe shirt','High-quality PE shirt, perfect condition.',150,NULL,'clothes','M',3),
	  ('lst-uc-vest','u-bob','UC VEST','UC branded vest in excellent condition.',250,NULL,'clothes','L',1),
	  ('lst-calc','u-alice','Scientific Calculator','Barely used, all keys working.',320,NULL,'gadgets',NULL,2)`)
	tx.MustExec(`INSERT INTO listings(id,seller_id,title,description,price,category,genre,quantity) VALUES
	  ('lst-stats-book','u-bob','Intro to Statistics','Light highlighting in chapters 1-3.',90,'books','Textbook',1)`)

	return tx.Commit()
}

// seedCoupons loads the static coupon table (idempotent; safe to run
// on every start).
func seedCoupons(db *sqlx.DB) error {
	tx := db.MustBegin()
	defer func() { _ = tx.Rollback() }()

	coupons := map[string]float64{
		"SAVE10":   20,
		"WELCOME5": 5,
		"CAMPUS15": 15,
	}
	for code, amount := range coupons {
		if _, err := tx.Exec(`
			INSERT INTO coupons(code, discount) VALUES(?, ?)
			ON CONFLICT(code) DO NOTHING
		`, code, amount); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// seedUsers ensures demo USERs and one ADMIN exist (idempotent).
func seedUsers(db *sqlx.DB) error {
	type u struct {
		ID, Email, Name, Role, Hash string
	}
	mk := func(id, email, name, role, raw string) u {
		h, _ := bcrypt.GenerateFromPassword([]byte(raw), 12)
		return u{ID: id, Email: email, Name: name, Role: role, Hash: string(h)}
	}

	users := []u{
		mk("u-alice", "alice@unimart.test", "Alice", "USER", "Passw0rd!"),
		mk("u-bob", "bob@unimart.test", "Bob", "USER", "Passw0rd!"),
		mk("u-admin", "admin@unimart.test", "Admin", "ADMIN", "Passw0rd!"),
	}

	tx := db.MustBegin()
	defer func() { _ = tx.Rollback() }()

	for _, x := range users {
		if _, err := tx.Exec(`
			INSERT INTO users(id,email,name,password_hash,role)
			VALUES(?,?,?,?,?)
			ON CONFLICT(email) DO NOTHING
		`, x.ID, x.Email, x.Name, x.Hash, x.Role); err != nil {
			return err
		}
	}

	return tx.Commit()
}
