// Package tokenstore persists issued session tokens per server URL, so CLI
// invocations reuse a session until its token expires instead of logging in
// on every call.
package tokenstore

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// Store is a sqlite-backed token store.
type Store struct {
	db *sql.DB
}

// DefaultPath returns the platform-appropriate store location.
func DefaultPath() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to locate user config dir: %w", err)
	}
	return filepath.Join(configDir, "skiff", "session.db"), nil
}

// Open opens (creating if necessary) the token store at path.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return nil, fmt.Errorf("failed to create token store directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open token store: %w", err)
	}

	const schema = `CREATE TABLE IF NOT EXISTS sessions (
		server_url TEXT PRIMARY KEY,
		token      TEXT NOT NULL,
		updated_at INTEGER NOT NULL
	)`
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize token store schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Load returns the stored token for a server URL, "" when none is stored.
func (s *Store) Load(serverURL string) (string, error) {
	var token string
	err := s.db.QueryRow(`SELECT token FROM sessions WHERE server_url = ?`, serverURL).Scan(&token)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to load token: %w", err)
	}
	return token, nil
}

// Save stores or replaces the token for a server URL.
func (s *Store) Save(serverURL, token string) error {
	_, err := s.db.Exec(
		`INSERT INTO sessions (server_url, token, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(server_url) DO UPDATE SET token = excluded.token, updated_at = excluded.updated_at`,
		serverURL, token, time.Now().Unix(),
	)
	if err != nil {
		return fmt.Errorf("failed to save token: %w", err)
	}
	return nil
}

// Delete removes the stored token for a server URL. Absence is not an error.
func (s *Store) Delete(serverURL string) error {
	if _, err := s.db.Exec(`DELETE FROM sessions WHERE server_url = ?`, serverURL); err != nil {
		return fmt.Errorf("failed to delete token: %w", err)
	}
	return nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}
