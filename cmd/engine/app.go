package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sync/atomic"

	"go.uber.org/zap"

	"jobtracker-engine/internal/config"
	"jobtracker-engine/internal/events"
	"jobtracker-engine/internal/httpapi"
	"jobtracker-engine/internal/logging"
	"jobtracker-engine/internal/logos"
	"jobtracker-engine/internal/secrets"
	"jobtracker-engine/internal/service"
	"jobtracker-engine/internal/store"
)

// app is everything one process needs, built from config.
type app struct {
	cfg     config.Config
	cfgPath string
	cfgVal  *atomic.Value

	log   *zap.Logger
	db    *store.DB
	svc   *service.Service
	hub   *events.Hub
	pub   events.Publisher
	logos *logos.Resolver

	closers []func()
}

// loadConfig resolves the data dir and config file, then overlays env and
// flags.
func loadConfig(opts *rootOptions) (config.Config, string, error) {
	dataDir := opts.dataDir
	if dataDir == "" {
		dataDir = os.Getenv("JOBTRACKER_DATA_DIR")
	}
	if dataDir == "" {
		dataDir = "."
	}

	path := opts.configPath
	if path == "" {
		p, err := config.EnsureUserConfig(dataDir)
		if err != nil {
			return config.Config{}, "", fmt.Errorf("config bootstrap failed: %w", err)
		}
		path = p
	}

	cfg, err := config.Load(path)
	if err != nil {
		return cfg, path, fmt.Errorf("config load failed (%s): %w", path, err)
	}
	config.ApplyEnv(&cfg)
	if opts.dataDir != "" || cfg.App.DataDir == "" || cfg.App.DataDir == "." {
		cfg.App.DataDir = dataDir
	}
	if opts.logLevel != "" {
		cfg.App.LogLevel = opts.logLevel
	}
	return cfg, path, nil
}

type logTarget int

const (
	logStderr logTarget = iota
	logFile
)

func newApp(opts *rootOptions, target logTarget) (*app, error) {
	cfg, path, err := loadConfig(opts)
	if err != nil {
		return nil, err
	}
	cfg, res := config.NormalizeAndValidate(cfg)
	if !res.OK() {
		return nil, fmt.Errorf("invalid config %s: %v", path, res.Errors)
	}
	if err := os.MkdirAll(cfg.App.DataDir, 0o755); err != nil {
		return nil, err
	}

	var log *zap.Logger
	if target == logFile {
		log, err = logging.NewFile(cfg.App.LogLevel, filepath.Join(cfg.App.DataDir, "jobtracker.log"))
	} else {
		log, err = logging.New(cfg.App.LogLevel, opts.dev)
	}
	if err != nil {
		return nil, fmt.Errorf("logger: %w", err)
	}
	for _, w := range res.Warnings {
		log.Warn("config", zap.String("warning", w))
	}

	a := &app{cfg: cfg, cfgPath: path, cfgVal: &atomic.Value{}, log: log}
	a.cfgVal.Store(cfg)
	a.closers = append(a.closers, func() { _ = log.Sync() })

	dbPath := cfg.Path(cfg.Storage.JournalDB)
	db, err := store.Open(dbPath)
	if err != nil {
		// the journal and logo cache are optional; the table still works
		log.Warn("database unavailable", zap.String("path", dbPath), zap.Error(err))
	} else {
		a.db = db
		a.closers = append(a.closers, func() { _ = db.Close() })
	}

	remote, err := a.remote()
	if err != nil {
		a.Close()
		return nil, err
	}
	local := store.NewLocalFiles(cfg.Path(cfg.Storage.CSVFile), cfg.Path(cfg.Storage.BackupFile))
	var journal *store.Journal
	if a.db != nil {
		journal = &store.Journal{DB: a.db.Pool}
	}
	repo := store.NewRepository(remote, local, journal, cfg.RemoteTimeout(), log.Named("store"))

	a.hub = events.NewHub()
	fan := events.Fanout{a.hub}
	if cfg.Events.NATSURL != "" {
		np, err := events.NewNATSPublisher(cfg.Events.NATSURL, cfg.Events.Subject, log.Named("events"))
		if err != nil {
			log.Warn("nats unavailable, events stay local", zap.Error(err))
		} else {
			fan = append(fan, np)
			a.closers = append(a.closers, np.Close)
		}
	}
	a.pub = fan

	a.svc = service.New(repo, service.Options{
		Settings:  service.LiveSettings(a.cfgVal),
		Publisher: a.pub,
		Logger:    log.Named("service"),
		RequestID: httpapi.RequestIDFrom,
	})

	if cfg.Logos.Enabled && a.db != nil {
		a.logos = logos.NewResolver(a.db, logos.Options{
			RequestsPerSecond: cfg.Logos.RequestsPerSecond,
			Burst:             cfg.Logos.Burst,
			Concurrency:       cfg.Logos.Concurrency,
		}, log.Named("logos"))
	}

	log.Info("engine ready",
		zap.String("data_dir", cfg.App.DataDir),
		zap.String("remote", cfg.Remote.Kind),
		zap.Bool("journal", a.db != nil),
		zap.Bool("logos", a.logos != nil),
	)
	return a, nil
}

func (a *app) remote() (store.Remote, error) {
	c := a.cfg.Remote
	switch c.Kind {
	case "http":
		return store.NewHTTPRemote(c.URL, a.cfg.RemoteTimeout(), secrets.RemoteKeyFunc(c.KeyringAccount)), nil
	case "redis":
		r := store.NewRedisRemote(c.Redis.Addr, c.Redis.Password, c.Redis.DB, c.Redis.Key)
		a.closers = append(a.closers, func() { _ = r.Close() })
		return r, nil
	case "none":
		return nil, nil
	default:
		return nil, fmt.Errorf("unknown remote.kind %q", c.Kind)
	}
}

func (a *app) deps() httpapi.Deps {
	return httpapi.Deps{
		Service:     a.svc,
		Hub:         a.hub,
		Publisher:   a.pub,
		DB:          a.db,
		Logos:       a.logos,
		CfgVal:      a.cfgVal,
		UserCfgPath: a.cfgPath,
		LoadCfg:     func() (config.Config, error) { return config.Load(a.cfgPath) },
		Logger:      a.log.Named("http"),
	}
}

// Close releases resources in reverse order of acquisition.
func (a *app) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
	a.closers = nil
}
