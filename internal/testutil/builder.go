// Package testutil seeds the location store for tests.
package testutil

import (
	"database/sql"
	"testing"

	"github.com/stretchr/testify/require"
)

// Builder accumulates location rows and inserts them in order.
type Builder struct {
	t         *testing.T
	db        *sql.DB
	locations []locationData
}

// NewBuilder creates a builder for a migrated location store connection.
func NewBuilder(t *testing.T, db *sql.DB) *Builder {
	t.Helper()
	return &Builder{t: t, db: db}
}

// WithLocation adds a location row for path with optional configuration.
// Rows are inserted in call order, so the last one added is the newest.
func (b *Builder) WithLocation(path string, opts ...LocationOption) *Builder {
	loc := defaultLocation(path, len(b.locations))
	for _, opt := range opts {
		opt(&loc)
	}
	b.locations = append(b.locations, loc)
	return b
}

// Build inserts all accumulated rows.
func (b *Builder) Build() {
	b.t.Helper()
	for _, loc := range b.locations {
		b.insertLocation(loc)
	}
}

func (b *Builder) insertLocation(loc locationData) {
	b.t.Helper()
	_, err := b.db.Exec(
		`INSERT INTO locations (session_id, path, view, domain, section, action, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		loc.sessionID, loc.path, loc.view, loc.domain, loc.section, loc.action, loc.createdAt.Unix(),
	)
	require.NoError(b.t, err)
}
