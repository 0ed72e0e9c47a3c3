package database

import (
	"crypto/rand"
	"database/sql"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/bctala/OPSIGHT/config"
	"github.com/bctala/OPSIGHT/internal/database/schema"
	"github.com/bctala/OPSIGHT/internal/domain"
	"github.com/bctala/OPSIGHT/pkg/crypto"
)

// InitializeDatabase creates all necessary database tables if they don't
// exist, then seeds the reference rows. Safe to run on every start.
func InitializeDatabase(db *sql.DB, cfg *config.Config) error {
	// Run all table creation queries
	for _, query := range schema.TableDefinitions {
		if _, err := db.Exec(query); err != nil {
			return fmt.Errorf("failed to create table: %w", err)
		}
	}

	if err := SeedShiftDefinitions(db); err != nil {
		return err
	}

	// Create root user if it doesn't exist
	if cfg.RootEmail != "" {
		if err := seedRootUser(db, cfg.RootEmail, cfg.RootPassword); err != nil {
			return err
		}
	}

	return nil
}

// SeedShiftDefinitions inserts the reference DAY and NIGHT shifts.
// Re-running neither duplicates nor errors on existing shift_id values.
func SeedShiftDefinitions(db *sql.DB) error {
	_, err := db.Exec(`
		INSERT INTO shift_definitions (shift_id, shift_name, duration_hours)
		VALUES ($1, $2, $3), ($4, $5, $6)
		ON CONFLICT (shift_id) DO NOTHING
	`, domain.DayShiftID, "DAY", 6, domain.NightShiftID, "NIGHT", 6)
	if err != nil {
		return fmt.Errorf("failed to seed shift definitions: %w", err)
	}

	// The reference rows carry explicit IDs, so move the sequence past them
	_, err = db.Exec(`SELECT setval('shift_definitions_shift_id_seq', (SELECT MAX(shift_id) FROM shift_definitions))`)
	if err != nil {
		return fmt.Errorf("failed to advance shift_definitions sequence: %w", err)
	}

	return nil
}

// seedRootUser creates the admin account when it's missing. Without a
// configured password the account gets an unrecoverable random hash.
func seedRootUser(db *sql.DB, email, password string) error {
	var exists bool
	err := db.QueryRow("SELECT EXISTS(SELECT 1 FROM users WHERE email = $1)", email).Scan(&exists)
	if err != nil {
		return fmt.Errorf("failed to check root user existence: %w", err)
	}

	if exists {
		return nil
	}

	if password == "" {
		random := make([]byte, 32)
		if _, err := rand.Read(random); err != nil {
			return fmt.Errorf("failed to generate root password: %w", err)
		}
		password = hex.EncodeToString(random)
	}

	passwordHash, err := crypto.HashPassword(password)
	if err != nil {
		return fmt.Errorf("failed to hash root password: %w", err)
	}

	_, err = db.Exec(`
		INSERT INTO users (username, email, password_hash, role, is_active, created_at)
		VALUES ($1, $2, $3, $4, TRUE, $5)
	`, "root", email, passwordHash, domain.UserRoleAdmin, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("failed to create root user: %w", err)
	}

	return nil
}

// CleanDatabase drops all tables in reverse order
func CleanDatabase(db *sql.DB) error {
	// Drop tables in reverse order to handle dependencies
	for i := len(schema.TableNames) - 1; i >= 0; i-- {
		query := fmt.Sprintf("DROP TABLE IF EXISTS %s CASCADE", schema.TableNames[i])
		if _, err := db.Exec(query); err != nil {
			return fmt.Errorf("failed to drop table %s: %w", schema.TableNames[i], err)
		}
	}
	return nil
}
