// Package service runs one interaction cycle over the application table:
// load, compute a view, and for mutations save and publish a change event.
package service

import (
	"context"
	"errors"
	"io"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"jobtracker-engine/internal/apperr"
	"jobtracker-engine/internal/domain"
	"jobtracker-engine/internal/events"
	"jobtracker-engine/internal/store"
	"jobtracker-engine/internal/views"
)

// Repository is the persistence the service needs; *store.Repository
// implements it.
type Repository interface {
	Load(ctx context.Context) store.LoadResult
	Save(ctx context.Context, t domain.Table) store.SaveResult
}

type Options struct {
	Windows       views.Windows
	CalendarLimit int

	// Settings, when set, overrides Windows and CalendarLimit on every cycle.
	Settings  func() Settings
	Publisher events.Publisher
	Logger    *zap.Logger

	Now       func() time.Time
	NewID     func() string
	RequestID func(ctx context.Context) string
}

type Service struct {
	repo    Repository
	windows views.Windows
	limit   int
	live    func() Settings
	pub     events.Publisher
	log     *zap.Logger

	now       func() time.Time
	newID     func() string
	requestID func(ctx context.Context) string

	// serializes load-mutate-save cycles within the process
	mu sync.Mutex
}

func New(repo Repository, opts Options) *Service {
	s := &Service{
		repo:      repo,
		windows:   opts.Windows,
		limit:     opts.CalendarLimit,
		live:      opts.Settings,
		pub:       opts.Publisher,
		log:       opts.Logger,
		now:       opts.Now,
		newID:     opts.NewID,
		requestID: opts.RequestID,
	}
	if s.pub == nil {
		s.pub = events.Nop{}
	}
	if s.log == nil {
		s.log = zap.NewNop()
	}
	if s.now == nil {
		s.now = time.Now
	}
	if s.newID == nil {
		s.newID = func() string { return uuid.NewString() }
	}
	if s.requestID == nil {
		s.requestID = func(context.Context) string { return "" }
	}
	return s
}

// LoadInfo tells the caller where the table came from.
type LoadInfo struct {
	Source  store.Source `json:"source"`
	Warning string       `json:"warning,omitempty"`
}

type SaveInfo struct {
	Status      string `json:"status"`
	OK          bool   `json:"ok"`
	RemoteError string `json:"remote_error,omitempty"`
	LocalError  string `json:"local_error,omitempty"`
}

func saveInfo(r store.SaveResult) SaveInfo {
	info := SaveInfo{Status: r.Status.String(), OK: r.OK()}
	if r.RemoteErr != nil {
		info.RemoteError = r.RemoteErr.Error()
	}
	if r.LocalErr != nil {
		info.LocalError = r.LocalErr.Error()
	}
	return info
}

// Mutation is the outcome of a write cycle.
type Mutation struct {
	Record *domain.Application `json:"record,omitempty"`
	Rows   int                 `json:"rows"`
	Save   SaveInfo            `json:"save"`
}

func (s *Service) Today() domain.Date { return domain.DateOf(s.now()) }

func (s *Service) load(ctx context.Context) (domain.Table, LoadInfo) {
	res := s.repo.Load(ctx)
	info := LoadInfo{Source: res.Source}
	if res.Warning != nil {
		info.Warning = res.Warning.Error()
	}
	return res.Table, info
}

// Table returns the current table.
func (s *Service) Table(ctx context.Context) (domain.Table, LoadInfo) {
	return s.load(ctx)
}

func (s *Service) Dashboard(ctx context.Context) (views.Dashboard, LoadInfo) {
	t, info := s.load(ctx)
	return views.BuildDashboard(t, s.Today(), s.settings().Windows), info
}

// Tracker filters the table; a nil filter selects every present value.
func (s *Service) Tracker(ctx context.Context, f *views.Filter) (views.TrackerView, LoadInfo) {
	t, info := s.load(ctx)
	filter := views.DefaultFilter(t)
	if f != nil {
		filter = *f
	}
	return views.Track(t, filter), info
}

func (s *Service) Insights(ctx context.Context) (views.Insights, LoadInfo) {
	t, info := s.load(ctx)
	return views.BuildInsights(t), info
}

func (s *Service) Calendar(ctx context.Context) (views.Calendar, LoadInfo) {
	t, info := s.load(ctx)
	return views.BuildCalendar(t, s.Today(), s.settings().CalendarLimit), info
}

// Export writes the filtered rows as CSV and returns the download name.
func (s *Service) Export(ctx context.Context, f *views.Filter, w io.Writer) (string, int, error) {
	v, _ := s.Tracker(ctx, f)
	if err := views.WriteCSV(w, v.Rows); err != nil {
		return "", 0, apperr.Internal("export failed", err)
	}
	return views.ExportFilename(s.now()), len(v.Rows), nil
}

func (s *Service) Add(ctx context.Context, form domain.Form) (Mutation, error) {
	a, err := domain.NewApplication(form, s.newID)
	if err != nil {
		return Mutation{}, invalid(err)
	}
	return s.mutate(ctx, events.TypeApplicationAdded, func(t domain.Table) (domain.Table, *domain.Application, error) {
		return append(t, a), &a, nil
	})
}

// Update replaces the record in place and keeps its id.
func (s *Service) Update(ctx context.Context, id string, form domain.Form) (Mutation, error) {
	a, err := domain.NewApplication(form, func() string { return id })
	if err != nil {
		return Mutation{}, invalid(err)
	}
	return s.mutate(ctx, events.TypeApplicationUpdated, func(t domain.Table) (domain.Table, *domain.Application, error) {
		i := t.IndexOf(id)
		if i < 0 {
			return nil, nil, notFound(id)
		}
		t[i] = a
		return t, &a, nil
	})
}

func (s *Service) Delete(ctx context.Context, id string) (Mutation, error) {
	return s.mutate(ctx, events.TypeApplicationDeleted, func(t domain.Table) (domain.Table, *domain.Application, error) {
		i := t.IndexOf(id)
		if i < 0 {
			return nil, nil, notFound(id)
		}
		gone := t[i]
		return append(t[:i], t[i+1:]...), &gone, nil
	})
}

func (s *Service) Duplicate(ctx context.Context, id string) (Mutation, error) {
	return s.mutate(ctx, events.TypeApplicationDuplicated, func(t domain.Table) (domain.Table, *domain.Application, error) {
		i := t.IndexOf(id)
		if i < 0 {
			return nil, nil, notFound(id)
		}
		dup := domain.Duplicate(t[i], s.Today(), s.newID)
		return append(t, dup), &dup, nil
	})
}

var ErrNotEmpty = errors.New("store already has applications")

// Seed writes the starter table, only into an empty store.
func (s *Service) Seed(ctx context.Context) (Mutation, error) {
	return s.mutate(ctx, events.TypeTableSeeded, func(t domain.Table) (domain.Table, *domain.Application, error) {
		if len(t) > 0 {
			return nil, nil, apperr.InvalidInput(ErrNotEmpty.Error(), ErrNotEmpty)
		}
		return domain.SampleTable(s.Today(), s.newID), nil, nil
	})
}

type change func(t domain.Table) (domain.Table, *domain.Application, error)

func (s *Service) mutate(ctx context.Context, eventType string, fn change) (Mutation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, info := s.load(ctx)
	if info.Warning != "" {
		// saving now would replace the unreadable file with a partial table
		return Mutation{}, apperr.Unavailable("local data file could not be read: "+info.Warning, nil)
	}

	next, rec, err := fn(t.Clone())
	if err != nil {
		return Mutation{}, err
	}

	res := s.repo.Save(ctx, next)
	m := Mutation{Record: rec, Rows: len(next), Save: saveInfo(res)}

	log := s.log.With(zap.String("event", eventType), zap.String("save", m.Save.Status), zap.Int("rows", m.Rows))
	if !res.OK() {
		log.Error("mutation not persisted")
		return m, apperr.Unavailable("changes could not be saved", errors.Join(res.RemoteErr, res.LocalErr))
	}
	log.Info("mutation saved")

	s.pub.Publish(events.MakeEvent(s.requestID(ctx), eventType, 1, m))
	return m, nil
}

func invalid(err error) error {
	return apperr.InvalidInput(err.Error(), err)
}

func notFound(id string) error {
	return apperr.NotFound("application "+id+" not found", domain.ErrNotFound)
}
