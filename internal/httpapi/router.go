package httpapi

import "net/http"

// NewMux returns the raw mux so main() can still attach /shutdown (needs srv+token).
func NewMux(d Deps) *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("/health", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: HealthHandler{Hub: d.Hub, DB: d.DB}.Health,
	}))

	// Views
	vh := ViewsHandler{Svc: d.Service}
	mux.HandleFunc("/dashboard", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: vh.Dashboard,
	}))
	mux.HandleFunc("/insights", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: vh.Insights,
	}))
	mux.HandleFunc("/calendar", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: vh.Calendar,
	}))

	// Applications
	ah := ApplicationsHandler{Svc: d.Service}
	mux.HandleFunc("/applications", methodMux(map[string]http.HandlerFunc{
		http.MethodGet:  ah.List,
		http.MethodPost: ah.Create,
	}))
	mux.HandleFunc("/applications/", ah.Item)
	mux.HandleFunc("/seed", methodMux(map[string]http.HandlerFunc{
		http.MethodPost: ah.Seed,
	}))

	// Config
	ch := ConfigHandler{
		CfgVal:      d.CfgVal,
		UserCfgPath: d.UserCfgPath,
		LoadCfg:     d.LoadCfg,
		Publisher:   d.Publisher,
	}
	mux.HandleFunc("/config", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: ch.Get,
		http.MethodPut: ch.Put,
	}))
	mux.HandleFunc("/config/path", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: ch.Path,
	}))
	mux.HandleFunc("/config/validate", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: ch.Validate,
	}))

	// Secrets (use cfgVal, NOT a snapshot cfg)
	sh := SecretsHandler{CfgVal: d.CfgVal}
	mux.HandleFunc("/api/secrets/remote", methodMux(map[string]http.HandlerFunc{
		http.MethodPost:   sh.SetRemoteKey,
		http.MethodDelete: sh.DeleteRemoteKey,
	}))

	// Store
	sth := StoreHandler{DB: d.DB}
	mux.HandleFunc("/store/history", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: sth.History,
	}))
	mux.HandleFunc("/db/checkpoint", methodMux(map[string]http.HandlerFunc{
		http.MethodPost: sth.Checkpoint,
	}))

	// SSE events
	eh := EventsHandler{Hub: d.Hub}
	mux.HandleFunc("/events", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: eh.ServeSSE,
	}))

	// Logos
	lh := LogosHandler{
		DB:        d.DB,
		Resolver:  d.Logos,
		Svc:       d.Service,
		Publisher: d.Publisher,
		Logger:    d.Logger,
	}
	mux.HandleFunc("/logo/", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: lh.GetByPath,
	}))
	mux.HandleFunc("/logos/refresh", methodMux(map[string]http.HandlerFunc{
		http.MethodPost: lh.Refresh,
	}))

	return mux
}
