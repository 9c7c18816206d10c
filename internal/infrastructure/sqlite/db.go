// Package sqlite persists navigation locations in a local SQLite database.
package sqlite

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/golang-migrate/migrate/v4"
	migratesqlite "github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"

	"github.com/zjrosen/spherenav/internal/log"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// busyTimeoutMs is how long a writer waits on a locked database.
const busyTimeoutMs = 5000

// DB owns the SQLite connection.
type DB struct {
	conn *sql.DB
}

// NewDB opens (creating if needed) the database at path and runs pending
// migrations. An existing file is copied to path+".bak" first.
func NewDB(path string) (*DB, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, fmt.Errorf("create database directory: %w", err)
	}

	if err := backup(path); err != nil {
		return nil, fmt.Errorf("backup database: %w", err)
	}

	dsn := fmt.Sprintf("file:%s?_pragma=busy_timeout(%d)&_pragma=journal_mode(wal)&_pragma=foreign_keys(1)", path, busyTimeoutMs)
	conn, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := conn.Ping(); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("connect database: %w", err)
	}

	if err := runMigrations(conn); err != nil {
		_ = conn.Close()
		return nil, err
	}

	log.Debug(log.CatDB, "database ready", "path", path)
	return &DB{conn: conn}, nil
}

func runMigrations(conn *sql.DB) error {
	src, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("load migrations: %w", err)
	}
	defer src.Close()

	drv, err := migratesqlite.WithInstance(conn, &migratesqlite.Config{})
	if err != nil {
		return fmt.Errorf("init migration driver: %w", err)
	}

	// m.Close would close conn as well, so it is never called.
	m, err := migrate.NewWithInstance("iofs", src, "sqlite", drv)
	if err != nil {
		return fmt.Errorf("init migrations: %w", err)
	}
	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("run migrations: %w", err)
	}
	return nil
}

// backup copies an existing database file to path+".bak".
func backup(path string) error {
	src, err := os.Open(path) // #nosec G304 -- path comes from config
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return err
	}
	defer src.Close()

	dst, err := os.OpenFile(path+".bak", os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0600)
	if err != nil {
		return err
	}
	if _, err := io.Copy(dst, src); err != nil {
		_ = dst.Close()
		return err
	}
	return dst.Close()
}

// Close closes the connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

// Connection returns the underlying *sql.DB.
func (db *DB) Connection() *sql.DB {
	return db.conn
}

// LocationRepository returns the location store backed by this database.
func (db *DB) LocationRepository() *LocationRepository {
	return NewLocationRepository(db.conn)
}
