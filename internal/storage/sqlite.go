package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	// sqlite driver registration
	_ "github.com/mattn/go-sqlite3"
	"go.uber.org/zap"

	"github.com/shiptrain/portal/pkg/logger"
)

const schema = `
CREATE TABLE IF NOT EXISTS local_storage (
	origin TEXT NOT NULL,
	key    TEXT NOT NULL,
	value  TEXT NOT NULL,
	PRIMARY KEY (origin, key)
)`

// SQLite persists values in a single table shared by all deployments, one origin each
type SQLite struct {
	db     *sql.DB
	origin string
}

// NewSQLite opens (creating if needed) the database at path
func NewSQLite(path, origin string) (*SQLite, error) {
	if path != ":memory:" {
		if dir := filepath.Dir(path); dir != "." {
			if err := os.MkdirAll(dir, 0o700); err != nil {
				return nil, fmt.Errorf("failed to create storage directory: %w", err)
			}
		}
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open storage: %w", err)
	}
	// a single connection keeps ":memory:" databases coherent
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to initialize storage schema: %w", err)
	}

	logger.Debug("Storage opened", zap.String("path", path), zap.String("origin", origin))
	return &SQLite{db: db, origin: origin}, nil
}

func (s *SQLite) Get(key string) (string, bool, error) {
	var value string
	err := s.db.QueryRow(
		`SELECT value FROM local_storage WHERE origin = ? AND key = ?`,
		s.origin, key,
	).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to read %s: %w", key, err)
	}
	return value, true, nil
}

func (s *SQLite) Set(key, value string) error {
	_, err := s.db.Exec(
		`INSERT INTO local_storage (origin, key, value) VALUES (?, ?, ?)
		 ON CONFLICT(origin, key) DO UPDATE SET value = excluded.value`,
		s.origin, key, value,
	)
	if err != nil {
		return fmt.Errorf("failed to write %s: %w", key, err)
	}
	return nil
}

func (s *SQLite) Remove(key string) error {
	if _, err := s.db.Exec(`DELETE FROM local_storage WHERE origin = ? AND key = ?`, s.origin, key); err != nil {
		return fmt.Errorf("failed to remove %s: %w", key, err)
	}
	return nil
}

func (s *SQLite) Close() error {
	return s.db.Close()
}
