package store

import (
	"database/sql"
	"errors"
)

// Sync watermarks record how far each vendor feed has been pulled, so
// an incremental sync resumes where the previous run stopped. The
// Strava path stores an RFC3339 timestamp under "last_strava_sync";
// historical backfill ignores watermarks and walks the full range.

// GetSyncWatermark returns the stored watermark for a vendor feed, or
// the empty string when that feed has never synced.
func (db *DB) GetSyncWatermark(key string) (string, error) {
	var value string
	err := db.QueryRow(`
		SELECT value FROM sync_state WHERE key = ?
	`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	return value, err
}

// SetSyncWatermark records the watermark for a vendor feed,
// overwriting any previous value.
func (db *DB) SetSyncWatermark(key, value string) error {
	_, err := db.Exec(`
		INSERT INTO sync_state (key, value, updated_at)
		VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(key) DO UPDATE SET
			value = excluded.value,
			updated_at = CURRENT_TIMESTAMP
	`, key, value)
	return err
}
