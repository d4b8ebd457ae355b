package database

import (
	"database/sql"
	"fmt"
	"log"
	"os"
	"time"

	"golang.org/x/crypto/bcrypt"

	_ "github.com/lib/pq" // PostgreSQL driver

	"github.com/google/uuid"
)

var DB *sql.DB

// InitDB initializes the database connection and optionally applies the schema.
func InitDB(host, port, user, password, dbname, sslmode, dbSchemaPath string) {
	connStr := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		host, port, user, password, dbname, sslmode)

	var err error
	DB, err = sql.Open("postgres", connStr)
	if err != nil {
		log.Fatalf("Error opening database: %q", err)
	}

	err = DB.Ping()
	if err != nil {
		log.Fatalf("Error connecting to database: %q", err)
	}

	if err = applySchema(DB, dbSchemaPath); err != nil {
		log.Fatalf("Error applying database schema: %q", err)
	}
}

// applySchema reads and executes the schema file. The schema uses
// IF NOT EXISTS statements throughout, so re-applying is harmless.
func applySchema(db *sql.DB, schemaPath string) error {
	if schemaPath == "" {
		log.Println("No schema path provided, skipping schema application.")
		return nil
	}
	content, err := os.ReadFile(schemaPath)
	if err != nil {
		return fmt.Errorf("could not read schema file %s: %w", schemaPath, err)
	}

	_, err = db.Exec(string(content))
	if err != nil {
		return fmt.Errorf("could not execute schema script: %w", err)
	}
	return nil
}

// SeedDefaultParent inserts a demo parent account when the parents table is
// empty. It is an idempotent bootstrap step: a populated table makes it a no-op.
func SeedDefaultParent(db *sql.DB, email, name, password string) error {
	var count int
	if err := db.QueryRow(`SELECT COUNT(*) FROM parents`).Scan(&count); err != nil {
		return fmt.Errorf("could not count parents for seeding: %w", err)
	}
	if count > 0 {
		return nil
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("could not hash seed password: %w", err)
	}

	_, err = db.Exec(
		`INSERT INTO parents (id, name, email, password_hash, created_at) VALUES ($1, $2, $3, $4, $5)`,
		uuid.NewString(), name, email, string(hashed), time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("could not insert seed parent: %w", err)
	}
	log.Printf("Seeded default parent account %s", email)
	return nil
}

// GetDB returns the database connection pool.
func GetDB() *sql.DB {
	return DB
}
