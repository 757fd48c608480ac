// Package draft stages notification-preference edits between CLI runs.
//
// A draft is keyed by the preference it edits. Key 0 holds a preference that
// has not been created yet.
package draft

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/evcraddock/house-market/internal/preference"
)

// NewKey is the key of a draft for a preference not yet created.
const NewKey int64 = 0

// ErrNotFound is returned when no draft exists for a key.
var ErrNotFound = errors.New("no draft")

// Entry is a stored draft.
type Entry struct {
	ID           int64
	PreferenceID int64
	UserID       int64
	Draft        preference.Draft
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IsNew reports whether the draft creates a preference.
func (e *Entry) IsNew() bool {
	return e.PreferenceID == NewKey
}

// Store persists drafts in SQLite.
type Store struct {
	db *sql.DB
}

// NewStore creates a draft store.
func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// Save writes d as the draft for preferenceID, replacing any earlier one.
func (s *Store) Save(preferenceID int64, d preference.Draft) (*Entry, error) {
	if preferenceID < 0 {
		return nil, fmt.Errorf("invalid preference id %d", preferenceID)
	}
	body, err := json.Marshal(d)
	if err != nil {
		return nil, fmt.Errorf("encoding draft: %w", err)
	}

	_, err = s.db.Exec(
		`INSERT INTO preference_drafts (preference_id, user_id, body) VALUES (?, ?, ?)
		 ON CONFLICT(preference_id) DO UPDATE SET
			body = excluded.body,
			user_id = excluded.user_id,
			updated_at = CURRENT_TIMESTAMP`,
		preferenceID, d.UserID, string(body),
	)
	if err != nil {
		return nil, fmt.Errorf("saving draft: %w", err)
	}

	return s.Get(preferenceID)
}

// Get returns the draft for preferenceID.
func (s *Store) Get(preferenceID int64) (*Entry, error) {
	row := s.db.QueryRow(
		"SELECT id, preference_id, user_id, body, created_at, updated_at FROM preference_drafts WHERE preference_id = ?",
		preferenceID,
	)
	e, err := scanEntry(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("reading draft: %w", err)
	}
	return e, nil
}

// List returns all drafts, most recently updated first.
func (s *Store) List() (entries []*Entry, err error) {
	rows, err := s.db.Query(
		"SELECT id, preference_id, user_id, body, created_at, updated_at FROM preference_drafts ORDER BY updated_at DESC, id DESC",
	)
	if err != nil {
		return nil, fmt.Errorf("listing drafts: %w", err)
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			slog.Warn("closing rows", "error", cerr)
		}
	}()

	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning draft: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating drafts: %w", err)
	}
	return entries, nil
}

// Delete removes the draft for preferenceID.
func (s *Store) Delete(preferenceID int64) error {
	res, err := s.db.Exec("DELETE FROM preference_drafts WHERE preference_id = ?", preferenceID)
	if err != nil {
		return fmt.Errorf("deleting draft: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking rows affected: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanEntry(row scanner) (*Entry, error) {
	var e Entry
	var body string
	if err := row.Scan(&e.ID, &e.PreferenceID, &e.UserID, &body, &e.CreatedAt, &e.UpdatedAt); err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(body), &e.Draft); err != nil {
		return nil, fmt.Errorf("decoding draft %d: %w", e.ID, err)
	}
	return &e, nil
}
