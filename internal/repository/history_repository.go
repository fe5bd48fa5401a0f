package repository

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/driftlab/drift-backend-go/internal/models"
)

// ErrNotFound is returned when a history entry does not exist
var ErrNotFound = errors.New("history entry not found")

// DefaultMaxEntries caps history size; oldest non-favorite entries are
// pruned first
const DefaultMaxEntries = 100

// HistoryRepository handles database operations for generation history
type HistoryRepository struct {
	db         *sql.DB
	maxEntries int
}

// NewHistoryRepository creates a new history repository. maxEntries <= 0
// falls back to DefaultMaxEntries.
func NewHistoryRepository(db *sql.DB, maxEntries int) *HistoryRepository {
	if maxEntries <= 0 {
		maxEntries = DefaultMaxEntries
	}
	return &HistoryRepository{db: db, maxEntries: maxEntries}
}

// Insert stores a new history entry and prunes the history to the configured
// maximum, removing oldest non-favorite entries first
func (r *HistoryRepository) Insert(entry *models.HistoryEntry) error {
	responseJSON, err := json.Marshal(entry.Response)
	if err != nil {
		return fmt.Errorf("failed to serialize response: %w", err)
	}

	createdAt := entry.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	query := `
		INSERT INTO generations (id, created_at, lat, lng, radius, points, backend, mode, name, notes, favorite, response)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	req := entry.Response.Request
	_, err = r.db.Exec(query,
		entry.Response.ID,
		createdAt.Format(time.RFC3339),
		req.Lat, req.Lng, req.Radius, req.Points, req.Backend, string(req.Mode),
		nullIfEmpty(entry.Name), nullIfEmpty(entry.Notes), entry.Favorite,
		string(responseJSON),
	)
	if err != nil {
		return fmt.Errorf("failed to insert history entry: %w", err)
	}

	return r.prune()
}

// prune deletes entries beyond the maximum, oldest non-favorites first, then
// oldest favorites if everything is a favorite
func (r *HistoryRepository) prune() error {
	count, err := r.Count()
	if err != nil {
		return err
	}

	for count > r.maxEntries {
		res, err := r.db.Exec(`
			DELETE FROM generations WHERE id = (
				SELECT id FROM generations
				ORDER BY favorite ASC, created_at ASC
				LIMIT 1
			)
		`)
		if err != nil {
			return fmt.Errorf("failed to prune history: %w", err)
		}
		deleted, _ := res.RowsAffected()
		if deleted == 0 {
			break
		}
		count--
	}

	return nil
}

// List retrieves history entries, most recent first
func (r *HistoryRepository) List(limit, offset int) ([]*models.HistoryEntry, error) {
	if limit <= 0 {
		limit = r.maxEntries
	}
	if offset < 0 {
		offset = 0
	}

	query := `
		SELECT name, notes, favorite, response, created_at
		FROM generations
		ORDER BY created_at DESC
		LIMIT ? OFFSET ?
	`
	rows, err := r.db.Query(query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query history: %w", err)
	}
	defer rows.Close()

	var entries []*models.HistoryEntry
	for rows.Next() {
		entry, err := scanEntry(rows.Scan)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}

	return entries, rows.Err()
}

// GetByID retrieves a single history entry
func (r *HistoryRepository) GetByID(id string) (*models.HistoryEntry, error) {
	query := `
		SELECT name, notes, favorite, response, created_at
		FROM generations
		WHERE id = ?
	`
	entry, err := scanEntry(r.db.QueryRow(query, id).Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	return entry, err
}

// Update applies annotation changes to an existing entry
func (r *HistoryRepository) Update(id string, update models.HistoryUpdate) error {
	entry, err := r.GetByID(id)
	if err != nil {
		return err
	}

	if update.Name != nil {
		entry.Name = *update.Name
	}
	if update.Notes != nil {
		entry.Notes = *update.Notes
	}
	if update.Favorite != nil {
		entry.Favorite = *update.Favorite
	}

	_, err = r.db.Exec(
		"UPDATE generations SET name = ?, notes = ?, favorite = ? WHERE id = ?",
		nullIfEmpty(entry.Name), nullIfEmpty(entry.Notes), entry.Favorite, id,
	)
	if err != nil {
		return fmt.Errorf("failed to update history entry: %w", err)
	}
	return nil
}

// Delete removes an entry by id
func (r *HistoryRepository) Delete(id string) error {
	res, err := r.db.Exec("DELETE FROM generations WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete history entry: %w", err)
	}
	affected, _ := res.RowsAffected()
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// Clear removes all history entries
func (r *HistoryRepository) Clear() error {
	if _, err := r.db.Exec("DELETE FROM generations"); err != nil {
		return fmt.Errorf("failed to clear history: %w", err)
	}
	return nil
}

// Count returns the number of stored entries
func (r *HistoryRepository) Count() (int, error) {
	var count int
	if err := r.db.QueryRow("SELECT COUNT(*) FROM generations").Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count history entries: %w", err)
	}
	return count, nil
}

func scanEntry(scan func(dest ...any) error) (*models.HistoryEntry, error) {
	var entry models.HistoryEntry
	var name, notes sql.NullString
	var responseJSON, createdAt string

	if err := scan(&name, &notes, &entry.Favorite, &responseJSON, &createdAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan history entry: %w", err)
	}

	entry.Name = name.String
	entry.Notes = notes.String

	if ts, err := time.Parse(time.RFC3339, createdAt); err == nil {
		entry.CreatedAt = ts
	}

	if err := json.Unmarshal([]byte(responseJSON), &entry.Response); err != nil {
		return nil, fmt.Errorf("failed to parse stored response: %w", err)
	}

	return &entry, nil
}

func nullIfEmpty(s string) any {
	if s == "" {
		return nil
	}
	return s
}
