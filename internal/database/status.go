package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lib/pq"

	"github.com/bctala/OPSIGHT/config"
	"github.com/bctala/OPSIGHT/internal/database/schema"
)

// Status reports the health of the OPSIGHT database, mirroring the manual
// checks an operator would run: server reachable, database present,
// credentials valid, schema complete, reference rows seeded.
type Status struct {
	ServerReachable bool
	DatabaseExists  bool
	CredentialsOK   bool
	MissingTables   []string
	DBVersion       string
	ShiftsSeeded    bool
	OperatorCount   int64
	SessionCount    int64
	EventCount      int64
}

// pq error codes worth telling apart in diagnostics.
const (
	pqInvalidCatalog  = "3D000" // database does not exist
	pqInvalidPassword = "28P01"
	pqInvalidAuth     = "28000"
)

// CheckStatus probes the configured database and classifies failures so the
// CLI can report which of the setup steps is broken.
func CheckStatus(ctx context.Context, cfg *config.Config) (*Status, error) {
	status := &Status{
		ServerReachable: true,
		DatabaseExists:  true,
		CredentialsOK:   true,
	}

	db, err := sql.Open("postgres", GetSystemDSN(&cfg.Database))
	if err != nil {
		return nil, fmt.Errorf("failed to open database connection: %w", err)
	}
	defer db.Close()

	if err := db.PingContext(ctx); err != nil {
		return status, classifyConnectError(err, cfg, status)
	}

	return collectStatus(ctx, db, status)
}

// classifyConnectError maps a failed ping onto the setup checklist: missing
// database, bad credentials, or server down.
func classifyConnectError(err error, cfg *config.Config, status *Status) error {
	if pqErr, ok := err.(*pq.Error); ok {
		switch string(pqErr.Code) {
		case pqInvalidCatalog:
			status.DatabaseExists = false
			return fmt.Errorf("database %q does not exist on %s:%d: %w",
				cfg.Database.DBName, cfg.Database.Host, cfg.Database.Port, err)
		case pqInvalidPassword, pqInvalidAuth:
			status.CredentialsOK = false
			return fmt.Errorf("authentication failed for user %q: %w",
				cfg.Database.User, err)
		}
	}
	status.ServerReachable = false
	return fmt.Errorf("PostgreSQL server unreachable at %s:%d: %w",
		cfg.Database.Host, cfg.Database.Port, err)
}

// collectStatus fills in the schema, seed and row-count fields on an
// established connection
func collectStatus(ctx context.Context, db *sql.DB, status *Status) (*Status, error) {
	// Schema completeness
	for _, table := range schema.TableNames {
		var exists bool
		err := db.QueryRowContext(ctx,
			"SELECT EXISTS(SELECT 1 FROM information_schema.tables WHERE table_name = $1)",
			table,
		).Scan(&exists)
		if err != nil {
			return status, fmt.Errorf("failed to check table %s: %w", table, err)
		}
		if !exists {
			status.MissingTables = append(status.MissingTables, table)
		}
	}

	if len(status.MissingTables) > 0 {
		return status, nil
	}

	// Schema version
	err := db.QueryRowContext(ctx, "SELECT value FROM settings WHERE key = 'db_version'").Scan(&status.DBVersion)
	if err != nil && err != sql.ErrNoRows {
		return status, fmt.Errorf("failed to read db_version: %w", err)
	}

	// Reference rows
	var seeded int
	err = db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM shift_definitions WHERE shift_id IN ($1, $2)", 1, 2,
	).Scan(&seeded)
	if err != nil {
		return status, fmt.Errorf("failed to count seeded shifts: %w", err)
	}
	status.ShiftsSeeded = seeded == 2

	// Row counts
	counts := []struct {
		table string
		dest  *int64
	}{
		{"operators", &status.OperatorCount},
		{"sessions", &status.SessionCount},
		{"events", &status.EventCount},
	}
	for _, c := range counts {
		if err := db.QueryRowContext(ctx, "SELECT COUNT(*) FROM "+c.table).Scan(c.dest); err != nil {
			return status, fmt.Errorf("failed to count %s: %w", c.table, err)
		}
	}

	return status, nil
}
