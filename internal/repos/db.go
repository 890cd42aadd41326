package repos

import (
	"log"
	"time"

	"github.com/jmoiron/sqlx"
	"golang.org/x/crypto/bcrypt"
	_ "modernc.org/sqlite"
)

// TimeLayout is how timestamps are stored in sqlite TEXT columns. It matches
// CURRENT_TIMESTAMP so string comparison and date-window filters line up.
const TimeLayout = "2006-01-02 15:04:05"

// Now returns the current UTC time formatted for storage.
func Now() string { return time.Now().UTC().Format(TimeLayout) }

func OpenDB(dsn string) (*sqlx.DB, error) {
	db, err := sqlx.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	if err = db.Ping(); err != nil {
		return nil, err
	}

	if err := ensureSchema(db); err != nil {
		return nil, err
	}
	// Seed baseline shop data if DB is empty (categories/items/alerts)
	if err := seedIfEmpty(db); err != nil {
		return nil, err
	}
	// Ensure users exist (idempotent; safe to run every start)
	if err := seedUsers(db); err != nil {
		return nil, err
	}

	return db, nil
}

func ensureSchema(db *sqlx.DB) error {
	schema := `
PRAGMA foreign_keys = ON;

-- Categories
CREATE TABLE IF NOT EXISTS categories(
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  created_at TEXT DEFAULT CURRENT_TIMESTAMP
);
CREATE UNIQUE INDEX IF NOT EXISTS idx_categories_name_nocase ON categories(LOWER(name));

-- Inventory items
CREATE TABLE IF NOT EXISTS items(
  id TEXT PRIMARY KEY,
  category_id TEXT NOT NULL REFERENCES categories(id) ON DELETE CASCADE,
  name TEXT NOT NULL,
  buying_price NUMERIC NOT NULL CHECK (buying_price >= 0),
  selling_price NUMERIC NOT NULL CHECK (selling_price >= 0),
  quantity INTEGER NOT NULL DEFAULT 0 CHECK (quantity >= 0),
  low_stock_threshold INTEGER NOT NULL DEFAULT 5 CHECK (low_stock_threshold >= 0),
  created_at TEXT DEFAULT CURRENT_TIMESTAMP,
  updated_at TEXT
);
CREATE INDEX IF NOT EXISTS idx_items_category ON items(category_id);
CREATE INDEX IF NOT EXISTS idx_items_name     ON items(LOWER(name));

-- Sales (prices snapshotted at sale time)
CREATE TABLE IF NOT EXISTS sales(
  id TEXT PRIMARY KEY,
  item_id TEXT NOT NULL REFERENCES items(id) ON DELETE CASCADE,
  quantity_sold INTEGER NOT NULL CHECK (quantity_sold > 0),
  selling_price NUMERIC NOT NULL,
  buying_price NUMERIC NOT NULL,
  sold_at TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_sales_item    ON sales(item_id);
CREATE INDEX IF NOT EXISTS idx_sales_sold_at ON sales(sold_at);

-- Low-stock alerts, one row per item
CREATE TABLE IF NOT EXISTS stock_alerts(
  item_id TEXT PRIMARY KEY REFERENCES items(id) ON DELETE CASCADE,
  is_alert_active INTEGER NOT NULL DEFAULT 0
);

-- Repair tickets
CREATE TABLE IF NOT EXISTS repairs(
  id TEXT PRIMARY KEY,
  owner_name TEXT NOT NULL,
  owner_phone TEXT NOT NULL,
  phone_name TEXT NOT NULL,
  phone_model TEXT NOT NULL,
  issue_description TEXT NOT NULL,
  charges NUMERIC NOT NULL CHECK (charges >= 0),
  status TEXT NOT NULL DEFAULT 'IN_PROGRESS' CHECK (status IN ('IN_PROGRESS','COMPLETED','COLLECTED')),
  created_at TEXT DEFAULT CURRENT_TIMESTAMP,
  updated_at TEXT,
  collected_at TEXT
);
CREATE INDEX IF NOT EXISTS idx_repairs_status       ON repairs(status);
CREATE INDEX IF NOT EXISTS idx_repairs_collected_at ON repairs(collected_at);

-- Revenue, recognized once per collected repair
CREATE TABLE IF NOT EXISTS revenues(
  repair_id TEXT PRIMARY KEY REFERENCES repairs(id) ON DELETE CASCADE,
  amount NUMERIC NOT NULL,
  collected_at TEXT NOT NULL
);

-- Users & Sessions
CREATE TABLE IF NOT EXISTS users(
  id TEXT PRIMARY KEY,
  email TEXT NOT NULL UNIQUE,
  name TEXT NOT NULL,
  phone TEXT NOT NULL DEFAULT '',
  password_hash TEXT NOT NULL,
  role TEXT NOT NULL CHECK (role IN ('USER','ADMIN')),
  created_at TEXT DEFAULT CURRENT_TIMESTAMP
);
CREATE UNIQUE INDEX IF NOT EXISTS idx_users_email ON users(LOWER(email));

CREATE TABLE IF NOT EXISTS sessions(
  id TEXT PRIMARY KEY,               -- same value as the 'sid' cookie
  user_id TEXT NULL REFERENCES users(id) ON DELETE SET NULL,
  created_at TEXT DEFAULT CURRENT_TIMESTAMP,
  last_seen  TEXT
);
CREATE INDEX IF NOT EXISTS idx_sessions_user ON sessions(user_id);
`
	_, err := db.Exec(schema)
	return err
}

func seedIfEmpty(db *sqlx.DB) error {
	var n int
	if err := db.Get(&n, `SELECT COUNT(*) FROM categories`); err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	log.Println("[seed] inserting demo categories/items/alerts")

	tx := db.MustBegin()
	tx.MustExec(`INSERT INTO categories(id,name) VALUES
	  ('cat-phones','Phones'),
	  ('cat-chargers','Chargers'),
	  ('cat-screens','Screens'),
	  ('cat-accessories','Accessories')`)

	tx.MustExec(`INSERT INTO items(id,category_id,name,buying_price,selling_price,quantity,low_stock_threshold) VALUES
	  ('itm-usb-c','cat-chargers','USB-C Fast Charger',4.50,9.99,40,10),
	  ('itm-scr-a52','cat-screens','Galaxy A52 Screen',32.00,55.00,6,5),
	  ('itm-case-13','cat-accessories','iPhone 13 Case',2.10,7.50,25,5)`)

	tx.MustExec(`INSERT INTO stock_alerts(item_id,is_alert_active)
	  SELECT id, CASE WHEN quantity <= low_stock_threshold THEN 1 ELSE 0 END FROM items`)

	return tx.Commit()
}

// seedUsers ensures one clerk and one ADMIN exist (idempotent).
func seedUsers(db *sqlx.DB) error {
	type u struct {
		ID, Email, Name, Phone, Role, Hash string
	}
	mk := func(id, email, name, phone, role, raw string) u {
		h, _ := bcrypt.GenerateFromPassword([]byte(raw), 12)
		return u{ID: id, Email: email, Name: name, Phone: phone, Role: role, Hash: string(h)}
	}

	users := []u{
		mk("u-clerk", "clerk@shoptrack.test", "Clerk", "0700000001", "USER", "Passw0rd!"),
		mk("u-admin", "admin@shoptrack.test", "Admin", "0700000000", "ADMIN", "Passw0rd!"),
	}

	tx := db.MustBegin()
	defer func() { _ = tx.Rollback() }()

	for _, x := range users {
		if _, err := tx.Exec(`
			INSERT INTO users(id,email,name,phone,password_hash,role)
			VALUES(?,?,?,?,?,?)
			ON CONFLICT(email) DO NOTHING
		`, x.ID, x.Email, x.Name, x.Phone, x.Hash, x.Role); err != nil {
			return err
		}
	}

	return tx.Commit()
}
