// Package repo contains all storage access logic for the Doodle Diary.
// The history is persisted the way the product stores it client-side: one
// serialized blob holding the entire entry sequence, kept under a fixed key.
// No business logic lives here, only SQL and (de)serialization.
package repo

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/pkordes/doodle-diary/internal/domain"
)

// historyKey is the fixed storage key the full history blob lives under.
const historyKey = "doodle-history"

// HistoryRepo defines the persistence operations for the entry history.
// The service layer depends on this interface, not the concrete SQLite
// implementation, which allows the service to be unit-tested with a mock.
type HistoryRepo interface {
	// Load reads the persisted history blob and returns the full entry
	// sequence in stored order (newest first). A missing blob yields an
	// empty sequence. A corrupt blob also yields an empty sequence and a
	// nil error: corruption is logged and swallowed, never surfaced.
	Load(ctx context.Context) ([]domain.DoodleEntry, error)

	// Save serializes the full entry sequence and overwrites the stored
	// blob. There is no partial or incremental persistence.
	Save(ctx context.Context, entries []domain.DoodleEntry) error
}

// sqliteHistoryRepo is the SQLite implementation of HistoryRepo.
type sqliteHistoryRepo struct {
	db     *sql.DB
	logger *slog.Logger
}

// NewHistoryRepo constructs a HistoryRepo backed by the provided database.
// The logger is used only to record swallowed corruption on load.
func NewHistoryRepo(db *sql.DB, logger *slog.Logger) HistoryRepo {
	if logger == nil {
		logger = slog.Default()
	}
	return &sqliteHistoryRepo{db: db, logger: logger}
}

// Load reads and decodes the single history row.
func (r *sqliteHistoryRepo) Load(ctx context.Context) ([]domain.DoodleEntry, error) {
	const q = `SELECT payload FROM history WHERE key = ?`

	var payload []byte
	err := r.db.QueryRowContext(ctx, q, historyKey).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return []domain.DoodleEntry{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("repo.HistoryRepo.Load: %w", err)
	}

	var entries []domain.DoodleEntry
	if err := json.Unmarshal(payload, &entries); err != nil {
		// A corrupt blob must never break startup. Reset to empty and
		// keep the app usable; the cause goes to the log only.
		r.logger.Warn("repo: corrupt history blob, resetting to empty history",
			"key", historyKey,
			"error", err,
		)
		return []domain.DoodleEntry{}, nil
	}
	if entries == nil {
		entries = []domain.DoodleEntry{}
	}
	return entries, nil
}

// Save serializes the full sequence and upserts it under the fixed key.
func (r *sqliteHistoryRepo) Save(ctx context.Context, entries []domain.DoodleEntry) error {
	const q = `
		INSERT INTO history (key, payload, updated_at)
		VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT (key) DO UPDATE SET
			payload    = excluded.payload,
			updated_at = CURRENT_TIMESTAMP`

	if entries == nil {
		entries = []domain.DoodleEntry{}
	}
	payload, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("repo.HistoryRepo.Save: marshal: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, q, historyKey, payload); err != nil {
		return fmt.Errorf("repo.HistoryRepo.Save: %w", err)
	}
	return nil
}
