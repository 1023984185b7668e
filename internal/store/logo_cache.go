package store

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"errors"
	"time"
)

// Logo is a cached company logo.
type Logo struct {
	Key         string
	ContentType string
	Bytes       []byte
	FetchedAt   time.Time
}

// LogoKeyFromURL is the cache key for a logo fetched from u.
func LogoKeyFromURL(u string) string {
	h := sha256.Sum256([]byte(u))
	return hex.EncodeToString(h[:])
}

func (d *DB) HasLogo(ctx context.Context, key string) (bool, error) {
	var one int
	err := d.Pool.QueryRowContext(ctx, `SELECT 1 FROM logos WHERE key = ? LIMIT 1;`, key).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// GetLogo returns nil when the key is not cached.
func (d *DB) GetLogo(ctx context.Context, key string) (*Logo, error) {
	l := Logo{Key: key}
	var fetched string
	err := d.Pool.QueryRowContext(ctx,
		`SELECT content_type, bytes, fetched_at FROM logos WHERE key = ?;`, key,
	).Scan(&l.ContentType, &l.Bytes, &fetched)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	l.FetchedAt, _ = time.Parse(time.RFC3339, fetched)
	return &l, nil
}

func (d *DB) PutLogo(ctx context.Context, key, contentType string, b []byte) error {
	_, err := d.Pool.ExecContext(ctx, `
INSERT OR REPLACE INTO logos(key, content_type, bytes, fetched_at)
VALUES(?,?,?,?);`,
		key,
		contentType,
		b,
		time.Now().UTC().Format(time.RFC3339),
	)
	return err
}
