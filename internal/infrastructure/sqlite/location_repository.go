package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/zjrosen/spherenav/internal/log"
	"github.com/zjrosen/spherenav/internal/navigator"
)

// ErrNoLocation is returned when nothing has been stored yet.
var ErrNoLocation = errors.New("no stored location")

const locationColumns = `id, session_id, path, view, domain, section, action, created_at`

// LocationRepository records every settled location and serves the most
// recent one back for restoring.
type LocationRepository struct {
	db  *sql.DB
	now func() time.Time
}

var (
	_ navigator.AddressBar   = (*LocationRepository)(nil)
	_ navigator.LastLocation = (*LocationRepository)(nil)
)

// NewLocationRepository creates a repository over db.
func NewLocationRepository(db *sql.DB) *LocationRepository {
	return &LocationRepository{db: db, now: time.Now}
}

func scanLocation(scanner interface{ Scan(...any) error }) (*LocationModel, error) {
	var m LocationModel
	err := scanner.Scan(&m.ID, &m.SessionID, &m.Path, &m.View, &m.Domain, &m.Section, &m.Action, &m.CreatedAt)
	return &m, err
}

// ReplaceAddress appends change as the newest location.
func (r *LocationRepository) ReplaceAddress(ctx context.Context, change navigator.LocationChange) error {
	m := toLocationModel(change, r.now())
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO locations (session_id, path, view, domain, section, action, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		m.SessionID, m.Path, m.View, m.Domain, m.Section, m.Action, m.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert location: %w", err)
	}
	log.Debug(log.CatDB, "location stored", "session", m.SessionID, "path", m.Path)
	return nil
}

// Last returns the path of the newest location across all sessions.
// Returns ErrNoLocation when the table is empty.
func (r *LocationRepository) Last(ctx context.Context) (string, error) {
	loc, err := r.LastLocation(ctx)
	if err != nil {
		return "", err
	}
	return loc.Path, nil
}

// LastLocation returns the newest location across all sessions.
func (r *LocationRepository) LastLocation(ctx context.Context) (Location, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+locationColumns+` FROM locations ORDER BY id DESC LIMIT 1`)
	m, err := scanLocation(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Location{}, ErrNoLocation
	}
	if err != nil {
		return Location{}, fmt.Errorf("failed to find last location: %w", err)
	}
	return m.toLocation(), nil
}

// Recent returns up to limit locations, newest first. An empty sessionID
// matches every session.
func (r *LocationRepository) Recent(ctx context.Context, sessionID string, limit int) ([]Location, error) {
	if limit <= 0 {
		limit = 20
	}
	query := `SELECT ` + locationColumns + ` FROM locations`
	args := []any{}
	if sessionID != "" {
		query += ` WHERE session_id = ?`
		args = append(args, sessionID)
	}
	query += ` ORDER BY id DESC LIMIT ?`
	args = append(args, limit)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list locations: %w", err)
	}
	defer rows.Close()

	var out []Location
	for rows.Next() {
		m, err := scanLocation(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan location: %w", err)
		}
		out = append(out, m.toLocation())
	}
	return out, rows.Err()
}

// Prune keeps the newest keep rows and deletes the rest.
func (r *LocationRepository) Prune(ctx context.Context, keep int) (int64, error) {
	if keep < 0 {
		keep = 0
	}
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM locations WHERE id NOT IN (SELECT id FROM locations ORDER BY id DESC LIMIT ?)`, keep)
	if err != nil {
		return 0, fmt.Errorf("failed to prune locations: %w", err)
	}
	return res.RowsAffected()
}
