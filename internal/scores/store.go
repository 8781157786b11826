// Package scores keeps the high-score table in a SQLite database.
package scores

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // pure-Go SQLite driver
)

// TableSize is the number of entries kept on the board.
const TableSize = 10

// MaxNameLen bounds player names, in runes.
const MaxNameLen = 10

var ErrEmptyName = errors.New("empty player name")

type Record struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Points    int       `json:"points"`
	Level     int       `json:"level"`
	Mode      string    `json:"mode"`
	TimeLeft  int       `json:"time_left"`
	CreatedAt time.Time `json:"created_at"`
}

type Store struct {
	db  *sql.DB
	now func() time.Time
}

// DefaultPath returns the database location inside dir.
func DefaultPath(dir string) string {
	return filepath.Join(dir, "scores.db")
}

// Open opens/creates the database at path and runs migrations. Pass
// ":memory:" for a throwaway store.
func Open(path string) (*Store, error) {
	dsn := path
	if path != ":memory:" {
		dsn = fmt.Sprintf("file:%s?_pragma=busy_timeout(5000)", path)
	}
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open scores db: %w", err)
	}
	db.SetMaxOpenConns(1) // one connection keeps :memory: databases alive
	s := &Store{db: db, now: time.Now}
	if err := s.migrate(context.Background()); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate scores db: %w", err)
	}
	return s, nil
}

func (s *Store) Close() error { return s.db.Close() }

func (s *Store) migrate(ctx context.Context) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS high_scores (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			points INTEGER NOT NULL,
			level INTEGER NOT NULL,
			mode TEXT NOT NULL,
			time_left INTEGER NOT NULL DEFAULT 0,
			created_at TIMESTAMP NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_high_scores_points ON high_scores(points DESC, created_at ASC);`,
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	for _, q := range stmts {
		if _, err := tx.ExecContext(ctx, q); err != nil {
			tx.Rollback()
			return err
		}
	}
	if err := addColumn(ctx, tx, "high_scores", "time_left", "INTEGER NOT NULL DEFAULT 0"); err != nil {
		tx.Rollback()
		return err
	}
	return tx.Commit()
}

// addColumn upgrades tables created before the column existed.
func addColumn(ctx context.Context, tx *sql.Tx, table, column, decl string) error {
	rows, err := tx.QueryContext(ctx, fmt.Sprintf("SELECT name FROM pragma_table_info('%s')", table))
	if err != nil {
		return err
	}
	found := false
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			rows.Close()
			return err
		}
		if name == column {
			found = true
		}
	}
	if err := rows.Close(); err != nil {
		return err
	}
	if found {
		return nil
	}
	_, err = tx.ExecContext(ctx, fmt.Sprintf("ALTER TABLE %s ADD COLUMN %s %s", table, column, decl))
	return err
}

// Add stores a new entry and trims the table to TableSize rows. timeLeft is
// the whole seconds remaining on the clock when the run ended.
func (s *Store) Add(ctx context.Context, name string, points, level, timeLeft int, mode string) (Record, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Record{}, ErrEmptyName
	}
	if r := []rune(name); len(r) > MaxNameLen {
		name = string(r[:MaxNameLen])
	}
	rec := Record{
		ID:        uuid.New(),
		Name:      name,
		Points:    points,
		Level:     level,
		Mode:      mode,
		TimeLeft:  timeLeft,
		CreatedAt: s.now().UTC(),
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return Record{}, err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `INSERT INTO high_scores (id, name, points, level, mode, time_left, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		rec.ID.String(), rec.Name, rec.Points, rec.Level, rec.Mode, rec.TimeLeft, rec.CreatedAt)
	if err != nil {
		return Record{}, fmt.Errorf("insert score: %w", err)
	}
	_, err = tx.ExecContext(ctx, `DELETE FROM high_scores WHERE id NOT IN (
		SELECT id FROM high_scores ORDER BY points DESC, created_at ASC LIMIT ?)`, TableSize)
	if err != nil {
		return Record{}, fmt.Errorf("trim scores: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return Record{}, err
	}
	return rec, nil
}

// Top returns up to limit entries, best first. Ties go to the older entry.
func (s *Store) Top(ctx context.Context, limit int) ([]Record, error) {
	if limit <= 0 || limit > TableSize {
		limit = TableSize
	}
	rows, err := s.db.QueryContext(ctx, `SELECT id, name, points, level, mode, time_left, created_at
		FROM high_scores ORDER BY points DESC, created_at ASC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query scores: %w", err)
	}
	defer rows.Close()

	var out []Record
	for rows.Next() {
		var (
			r     Record
			idStr string
		)
		if err := rows.Scan(&idStr, &r.Name, &r.Points, &r.Level, &r.Mode, &r.TimeLeft, &r.CreatedAt); err != nil {
			return nil, err
		}
		id, err := uuid.Parse(idStr)
		if err != nil {
			return nil, fmt.Errorf("parse score id %q: %w", idStr, err)
		}
		r.ID = id
		out = append(out, r)
	}
	return out, rows.Err()
}

// IsHighScore reports whether points would make it onto the table.
func (s *Store) IsHighScore(ctx context.Context, points int) (bool, error) {
	if points <= 0 {
		return false, nil
	}
	var count int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM high_scores`).Scan(&count); err != nil {
		return false, err
	}
	if count < TableSize {
		return true, nil
	}
	var lowest int
	err := s.db.QueryRowContext(ctx, `SELECT points FROM high_scores
		ORDER BY points DESC, created_at ASC LIMIT 1 OFFSET ?`, TableSize-1).Scan(&lowest)
	if err != nil {
		return false, err
	}
	return points > lowest, nil
}
