package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"jobtracker-engine/internal/domain"
)

// SaveStatus is the outcome of a two-tier save.
type SaveStatus int

const (
	RemoteOK SaveStatus = iota
	RemoteFailedLocalOK
	BothFailed
)

func (s SaveStatus) String() string {
	switch s {
	case RemoteOK:
		return "remote_ok"
	case RemoteFailedLocalOK:
		return "remote_failed_local_ok"
	default:
		return "both_failed"
	}
}

func (s SaveStatus) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

type SaveResult struct {
	Status    SaveStatus
	RemoteErr error
	// LocalErr may be set even when Status is RemoteOK.
	LocalErr error
}

// OK reports whether the table reached at least one tier.
func (r SaveResult) OK() bool { return r.Status != BothFailed }

type Source string

const (
	SourceRemote Source = "remote"
	SourceLocal  Source = "local"
	SourceEmpty  Source = "empty"
)

type LoadResult struct {
	Table  domain.Table
	Source Source
	// Warning is a user-visible problem with the local file. The table is
	// empty when it is set.
	Warning error
}

var errRemoteDisabled = errors.New("remote disabled")

// Repository loads and saves the full table: remote first, local files as
// fallback and backup.
type Repository struct {
	Remote  Remote // nil means local only
	Local   *LocalFiles
	Journal *Journal // optional
	Timeout time.Duration
	Logger  *zap.Logger
}

func NewRepository(remote Remote, local *LocalFiles, journal *Journal, timeout time.Duration, logger *zap.Logger) *Repository {
	if logger == nil {
		logger = zap.NewNop()
	}
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &Repository{
		Remote:  remote,
		Local:   local,
		Journal: journal,
		Timeout: timeout,
		Logger:  logger,
	}
}

func (r *Repository) Load(ctx context.Context) LoadResult {
	if r.Remote != nil {
		t, err := r.fetchRemote(ctx)
		switch {
		case err != nil:
			r.Logger.Warn("remote load failed, using local files",
				zap.String("remote", r.Remote.Name()), zap.Error(err))
		case len(t) > 0:
			return LoadResult{Table: t, Source: SourceRemote}
		}
	}

	t, err := r.Local.Read(ctx)
	switch {
	case errors.Is(err, ErrNoLocalData):
		return LoadResult{Table: domain.Table{}, Source: SourceEmpty}
	case err != nil:
		r.Logger.Error("local load failed", zap.String("path", r.Local.CSVPath), zap.Error(err))
		return LoadResult{Table: domain.Table{}, Source: SourceLocal, Warning: err}
	}
	if t == nil {
		t = domain.Table{}
	}
	return LoadResult{Table: t, Source: SourceLocal}
}

func (r *Repository) fetchRemote(ctx context.Context) (domain.Table, error) {
	ctx, cancel := context.WithTimeout(ctx, r.Timeout)
	defer cancel()

	raws, err := r.Remote.Fetch(ctx)
	if err != nil {
		return nil, err
	}
	if len(raws) == 0 {
		return nil, nil
	}
	t, err := DecodeRows(raws)
	if err != nil {
		return nil, fmt.Errorf("decode remote: %w", err)
	}
	return t, nil
}

func (r *Repository) Save(ctx context.Context, t domain.Table) SaveResult {
	var res SaveResult

	res.RemoteErr = r.putRemote(ctx, t)
	res.LocalErr = r.Local.Write(ctx, t)

	switch {
	case res.RemoteErr == nil:
		res.Status = RemoteOK
		if res.LocalErr != nil {
			r.Logger.Warn("local backup failed after remote save", zap.Error(res.LocalErr))
		}
	case res.LocalErr == nil:
		res.Status = RemoteFailedLocalOK
		if !errors.Is(res.RemoteErr, errRemoteDisabled) {
			r.Logger.Warn("remote save failed, saved locally", zap.Error(res.RemoteErr))
		}
	default:
		res.Status = BothFailed
		r.Logger.Error("save failed",
			zap.NamedError("remote_error", res.RemoteErr),
			zap.NamedError("local_error", res.LocalErr))
	}

	if r.Journal != nil {
		if err := r.Journal.Record(ctx, r.remoteName(), len(t), res); err != nil {
			r.Logger.Warn("save journal", zap.Error(err))
		}
	}
	return res
}

func (r *Repository) putRemote(ctx context.Context, t domain.Table) error {
	if r.Remote == nil {
		return errRemoteDisabled
	}
	ctx, cancel := context.WithTimeout(ctx, r.Timeout)
	defer cancel()
	return r.Remote.Put(ctx, RowsOf(t))
}

func (r *Repository) remoteName() string {
	if r.Remote == nil {
		return "none"
	}
	return r.Remote.Name()
}
