package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// JournalEntry is one recorded save attempt.
type JournalEntry struct {
	ID          int64     `json:"id"`
	SavedAt     time.Time `json:"saved_at"`
	Status      string    `json:"status"`
	Remote      string    `json:"remote"`
	Rows        int       `json:"rows"`
	RemoteError string    `json:"remote_error,omitempty"`
	LocalError  string    `json:"local_error,omitempty"`
}

// Journal keeps a history of save outcomes so degraded saves remain visible
// after the interaction that produced them.
type Journal struct {
	DB *sql.DB
}

func (j *Journal) Record(ctx context.Context, remote string, rows int, res SaveResult) error {
	_, err := j.DB.ExecContext(ctx, `
INSERT INTO saves(saved_at, status, remote, rows, remote_error, local_error)
VALUES(?,?,?,?,?,?);`,
		time.Now().UTC().Format(time.RFC3339Nano),
		res.Status.String(),
		remote,
		rows,
		errString(res.RemoteErr),
		errString(res.LocalErr),
	)
	if err != nil {
		return fmt.Errorf("record save: %w", err)
	}
	return nil
}

// Recent returns the newest entries first.
func (j *Journal) Recent(ctx context.Context, limit int) ([]JournalEntry, error) {
	if limit <= 0 || limit > 500 {
		limit = 50
	}
	rows, err := j.DB.QueryContext(ctx, `
SELECT id, saved_at, status, remote, rows, remote_error, local_error
FROM saves
ORDER BY id DESC
LIMIT ?;`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []JournalEntry{}
	for rows.Next() {
		var e JournalEntry
		var savedAt string
		if err := rows.Scan(&e.ID, &savedAt, &e.Status, &e.Remote, &e.Rows, &e.RemoteError, &e.LocalError); err != nil {
			return nil, err
		}
		e.SavedAt, _ = time.Parse(time.RFC3339Nano, savedAt)
		out = append(out, e)
	}
	return out, rows.Err()
}

func errString(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
