package store

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"
)

// Domain sources recorded alongside a cached company domain.
const (
	DomainSourceEmail  = "email"
	DomainSourceSearch = "search"
)

// CompanyDomain returns the cached domain for company, or "" if missing.
func (d *DB) CompanyDomain(ctx context.Context, company string) (string, error) {
	key := NormalizeCompanyKey(company)
	if key == "" {
		return "", nil
	}

	var domain string
	err := d.Pool.QueryRowContext(ctx,
		`SELECT domain FROM company_domains WHERE company = ?;`, key,
	).Scan(&domain)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return "", nil
	case err != nil:
		return "", err
	}
	return domain, nil
}

// UpsertCompanyDomain caches domain for company. Blank input is ignored.
func (d *DB) UpsertCompanyDomain(ctx context.Context, company, domain, source string) error {
	key := NormalizeCompanyKey(company)
	domain = strings.ToLower(strings.TrimSpace(domain))
	if key == "" || domain == "" {
		return nil
	}

	_, err := d.Pool.ExecContext(ctx, `
INSERT INTO company_domains(company, domain, source, fetched_at)
VALUES(?,?,?,?)
ON CONFLICT(company) DO UPDATE SET
  domain = excluded.domain,
  source = excluded.source,
  fetched_at = excluded.fetched_at;`,
		key, domain, source, time.Now().UTC().Format(time.RFC3339))
	return err
}

// NormalizeCompanyKey folds case and whitespace so "Acme  Corp" and
// "acme corp" share one cache entry.
func NormalizeCompanyKey(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}
