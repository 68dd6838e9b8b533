package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/weareasocialyazilim/travelmatch-moderation/interfaces"
)

// SQLAdapter is a generic SQL word storage implementation. It issues
// driver-agnostic statements so any database/sql driver will do.
type SQLAdapter struct {
	db    *sql.DB
	table string
}

// NewSQLAdapter creates an adapter over *sql.DB.
func NewSQLAdapter(db *sql.DB, table string) (*SQLAdapter, error) {
	if db == nil {
		return nil, errors.New("storage: db is nil")
	}
	if strings.TrimSpace(table) == "" {
		table = "moderation_words"
	}
	return &SQLAdapter{db: db, table: table}, nil
}

// EnsureSchema creates the word table if missing.
func (s *SQLAdapter) EnsureSchema(ctx context.Context) error {
	q := fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (word TEXT PRIMARY KEY)`, s.table)
	_, err := s.db.ExecContext(ctx, q)
	return err
}

func (s *SQLAdapter) AddWord(ctx context.Context, word string) error {
	q := fmt.Sprintf(`INSERT INTO %s (word) VALUES (?)`, s.table)
	_, err := s.db.ExecContext(ctx, q, word)
	if err == nil {
		return nil
	}
	if strings.Contains(strings.ToLower(err.Error()), "duplicate") || strings.Contains(strings.ToLower(err.Error()), "unique") {
		return nil
	}
	return err
}

func (s *SQLAdapter) RemoveWord(ctx context.Context, word string) error {
	q := fmt.Sprintf(`DELETE FROM %s WHERE word = ?`, s.table)
	_, err := s.db.ExecContext(ctx, q, word)
	return err
}

func (s *SQLAdapter) GetWords(ctx context.Context) ([]string, error) {
	q := fmt.Sprintf(`SELECT word FROM %s`, s.table)
	rows, err := s.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]string, 0, 256)
	for rows.Next() {
		var word string
		if scanErr := rows.Scan(&word); scanErr != nil {
			return nil, scanErr
		}
		out = append(out, word)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *SQLAdapter) WordExists(ctx context.Context, word string) (bool, error) {
	q := fmt.Sprintf(`SELECT 1 FROM %s WHERE word = ? LIMIT 1`, s.table)
	var v int
	err := s.db.QueryRowContext(ctx, q, word).Scan(&v)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

var _ interfaces.Storage = (*SQLAdapter)(nil)
