package store

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
	_ "modernc.org/sqlite"
)

// Supported database drivers
const (
	DriverSQLite     = "sqlite3"
	DriverSQLitePure = "sqlite"
	DriverPostgres   = "postgres"
)

func init() {
	// modernc registers as "sqlite", which sqlx does not know binds with '?'.
	sqlx.BindDriver(DriverSQLitePure, sqlx.QUESTION)
}

type DB struct {
	*sqlx.DB
}

// Open connects to the configured database and creates the tables.
func Open(ctx context.Context, driver, dsn string) (*DB, error) {
	switch driver {
	case DriverSQLite, DriverSQLitePure, DriverPostgres:
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}

	conn, err := sqlx.ConnectContext(ctx, driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("connect %s: %w", driver, err)
	}

	if driver == DriverPostgres {
		conn.SetMaxOpenConns(25)
		conn.SetMaxIdleConns(5)
		conn.SetConnMaxLifetime(30 * time.Minute)
	} else {
		// one writer keeps sqlite transactions from tripping over each other
		conn.SetMaxOpenConns(1)
	}

	db := &DB{DB: conn}
	if err := db.Migrate(ctx); err != nil {
		conn.Close()
		return nil, err
	}

	log.Printf("🗄️ Store: connected to %s database", driver)
	return db, nil
}

// New wraps an existing connection.
func New(conn *sqlx.DB) *DB {
	return &DB{DB: conn}
}

const (
	createKVTable = `CREATE TABLE IF NOT EXISTS kv_entries (key TEXT PRIMARY KEY, value TEXT NOT NULL, updated_at TIMESTAMP NOT NULL)`

	createBlobTable = `CREATE TABLE IF NOT EXISTS blobs (key TEXT PRIMARY KEY, data TEXT NOT NULL, created_at TIMESTAMP NOT NULL)`
)

// Migrate creates the tables if they do not exist.
func (db *DB) Migrate(ctx context.Context) error {
	for _, stmt := range []string{createKVTable, createBlobTable} {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return nil
}

func (db *DB) HealthCheck(ctx context.Context) error {
	if db == nil || db.DB == nil {
		return fmt.Errorf("database connection not initialized")
	}
	return db.PingContext(ctx)
}
