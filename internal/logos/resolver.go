// Package logos resolves company logos for the tracker. A company's domain
// comes from its contact email when that is an employer address, otherwise
// from a web search. The icon is then fetched and cached in SQLite.
package logos

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"jobtracker-engine/internal/domain"
	"jobtracker-engine/internal/store"
)

const maxLogoBytes = 512 * 1024

var ErrNoDomain = errors.New("company domain not found")

// Cache is the persistent side of the resolver; *store.DB implements it.
type Cache interface {
	HasLogo(ctx context.Context, key string) (bool, error)
	PutLogo(ctx context.Context, key, contentType string, b []byte) error
	CompanyDomain(ctx context.Context, company string) (string, error)
	UpsertCompanyDomain(ctx context.Context, company, domain, source string) error
}

type Options struct {
	RequestsPerSecond float64
	Burst             int
	Concurrency       int
	Timeout           time.Duration
}

type Resolver struct {
	Cache   Cache
	Client  *http.Client
	Limiter *HostLimiter
	Logger  *zap.Logger

	SearchURL   string
	HomepageURL func(domain string) string
	FaviconURL  func(domain string) string
	Concurrency int
}

func NewResolver(cache Cache, opts Options, logger *zap.Logger) *Resolver {
	if logger == nil {
		logger = zap.NewNop()
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 12 * time.Second
	}
	if opts.Concurrency <= 0 {
		opts.Concurrency = 4
	}
	return &Resolver{
		Cache:       cache,
		Client:      &http.Client{Timeout: opts.Timeout},
		Limiter:     NewHostLimiter(opts.RequestsPerSecond, opts.Burst),
		Logger:      logger,
		SearchURL:   "https://duckduckgo.com/html/",
		HomepageURL: func(d string) string { return "https://" + d + "/" },
		FaviconURL:  FaviconURLForDomain,
		Concurrency: opts.Concurrency,
	}
}

// KeyForCompany is the logo cache key served under /logo/{key}.
func KeyForCompany(company string) string {
	return store.LogoKeyFromURL("company:" + store.NormalizeCompanyKey(company))
}

// FaviconURLForDomain uses Google's favicon service.
func FaviconURLForDomain(domain string) string {
	domain = strings.TrimSpace(strings.ToLower(domain))
	domain = strings.TrimPrefix(domain, "http://")
	domain = strings.TrimPrefix(domain, "https://")
	domain = strings.TrimPrefix(domain, "www.")
	domain = strings.Trim(domain, "/")
	if domain == "" {
		return ""
	}
	// sz can be 16/32/64/128
	return "https://www.google.com/s2/favicons?domain=" + url.QueryEscape(domain) + "&sz=64"
}

// Resolve caches a logo for company and returns its key. Already cached
// companies cost one lookup.
func (r *Resolver) Resolve(ctx context.Context, company, contactEmail string) (string, error) {
	key := KeyForCompany(company)
	if ok, err := r.Cache.HasLogo(ctx, key); err != nil || ok {
		return key, err
	}

	d, err := r.companyDomain(ctx, company, contactEmail)
	if err != nil {
		return "", err
	}

	var lastErr error
	for _, u := range r.iconCandidates(ctx, d) {
		ct, b, err := r.fetchImage(ctx, u)
		if err != nil {
			lastErr = err
			continue
		}
		if err := r.Cache.PutLogo(ctx, key, ct, b); err != nil {
			return "", err
		}
		return key, nil
	}
	if lastErr == nil {
		lastErr = errors.New("no icon candidates")
	}
	return "", fmt.Errorf("logo for %s: %w", d, lastErr)
}

func (r *Resolver) companyDomain(ctx context.Context, company, contactEmail string) (string, error) {
	d, err := r.Cache.CompanyDomain(ctx, company)
	if err != nil || d != "" {
		return d, err
	}

	source := store.DomainSourceEmail
	d = DomainFromEmail(contactEmail)
	if d == "" {
		source = store.DomainSourceSearch
		if d, err = r.findCompanyDomain(ctx, company); err != nil {
			return "", err
		}
	}
	if d == "" {
		return "", fmt.Errorf("%w: %s", ErrNoDomain, company)
	}
	if err := r.Cache.UpsertCompanyDomain(ctx, company, d, source); err != nil {
		return "", err
	}
	return d, nil
}

// iconCandidates lists the homepage's declared icons before the favicon
// service.
func (r *Resolver) iconCandidates(ctx context.Context, domain string) []string {
	var out []string
	if r.HomepageURL != nil {
		out = append(out, r.declaredIcons(ctx, r.HomepageURL(domain))...)
	}
	if r.FaviconURL != nil {
		if u := r.FaviconURL(domain); u != "" {
			out = append(out, u)
		}
	}
	return out
}

func (r *Resolver) declaredIcons(ctx context.Context, page string) []string {
	base, err := url.Parse(page)
	if err != nil {
		return nil
	}
	resp, err := r.get(ctx, page)
	if err != nil {
		r.Logger.Debug("homepage fetch failed", zap.String("url", page), zap.Error(err))
		return nil
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil
	}

	doc, err := goquery.NewDocumentFromReader(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil
	}

	var out []string
	doc.Find("link[rel][href]").Each(func(_ int, s *goquery.Selection) {
		rel, _ := s.Attr("rel")
		if !strings.Contains(strings.ToLower(rel), "icon") {
			return
		}
		href, _ := s.Attr("href")
		ref, err := url.Parse(strings.TrimSpace(href))
		if err != nil || href == "" {
			return
		}
		out = append(out, base.ResolveReference(ref).String())
	})
	return out
}

func (r *Resolver) fetchImage(ctx context.Context, u string) (string, []byte, error) {
	resp, err := r.get(ctx, u)
	if err != nil {
		return "", nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", nil, fmt.Errorf("fetch %s: %s", u, resp.Status)
	}

	b, err := io.ReadAll(io.LimitReader(resp.Body, maxLogoBytes+1))
	if err != nil {
		return "", nil, err
	}
	if len(b) == 0 || len(b) > maxLogoBytes {
		return "", nil, fmt.Errorf("fetch %s: bad size %d", u, len(b))
	}

	ct := resp.Header.Get("Content-Type")
	if !strings.HasPrefix(ct, "image/") {
		// sniff as fallback
		ct = http.DetectContentType(b)
		if !strings.HasPrefix(ct, "image/") {
			return "", nil, fmt.Errorf("fetch %s: not an image", u)
		}
	}
	return ct, b, nil
}

type WarmResult struct {
	// Keys maps each resolved company to its logo key.
	Keys   map[string]string `json:"keys"`
	Failed []string          `json:"failed"`
}

// Warm resolves logos for every distinct company in the table. Per-company
// failures are collected, not returned.
func (r *Resolver) Warm(ctx context.Context, t domain.Table) (WarmResult, error) {
	type target struct{ company, email string }
	seen := map[string]int{}
	var targets []target
	for _, a := range t {
		k := store.NormalizeCompanyKey(a.Company)
		if k == "" {
			continue
		}
		if i, ok := seen[k]; ok {
			if targets[i].email == "" {
				targets[i].email = a.ContactEmail
			}
			continue
		}
		seen[k] = len(targets)
		targets = append(targets, target{company: a.Company, email: a.ContactEmail})
	}

	res := WarmResult{Keys: map[string]string{}, Failed: []string{}}
	var mu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.Concurrency)
	for _, tg := range targets {
		g.Go(func() error {
			key, err := r.Resolve(gctx, tg.company, tg.email)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				r.Logger.Info("logo not resolved", zap.String("company", tg.company), zap.Error(err))
				res.Failed = append(res.Failed, tg.company)
				return nil
			}
			res.Keys[tg.company] = key
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return res, err
	}
	return res, ctx.Err()
}
