package httpapi

import (
	"net/http"
	"path/filepath"
	"sync/atomic"

	"jobtracker-engine/internal/config"
	"jobtracker-engine/internal/events"
)

type ConfigHandler struct {
	CfgVal      *atomic.Value // stores config.Config
	UserCfgPath string
	LoadCfg     func() (config.Config, error)
	Publisher   events.Publisher
}

func (h ConfigHandler) current() config.Config {
	return h.CfgVal.Load().(config.Config)
}

func (h ConfigHandler) Get(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, h.current())
}

type configSaved struct {
	Config   config.Config `json:"config"`
	Warnings []string      `json:"warnings"`
	// Restart lists changed sections the running engine only reads at start.
	Restart []string `json:"restart_required"`
}

// Put validates, saves and reloads the config file.
func (h ConfigHandler) Put(w http.ResponseWriter, r *http.Request) {
	var incoming config.Config
	if err := decodeStrict(r, &incoming); err != nil {
		WriteError(w, r, http.StatusBadRequest, "invalid_json", "invalid JSON: "+err.Error())
		return
	}

	normalized, vr := config.NormalizeAndValidate(incoming)
	if !vr.OK() {
		// the UI shows these per field
		WriteJSON(w, http.StatusBadRequest, vr)
		return
	}

	prev := h.current()
	if err := config.SaveAtomic(h.UserCfgPath, normalized); err != nil {
		WriteError(w, r, http.StatusInternalServerError, "save_failed", err.Error())
		return
	}
	saved, err := h.LoadCfg()
	if err != nil {
		WriteError(w, r, http.StatusInternalServerError, "reload_failed", "saved but reload failed: "+err.Error())
		return
	}
	h.CfgVal.Store(saved)

	out := configSaved{
		Config:   saved,
		Warnings: vr.Warnings,
		Restart:  config.RestartRequired(prev, saved),
	}
	if out.Warnings == nil {
		out.Warnings = []string{}
	}
	if h.Publisher != nil {
		h.Publisher.Publish(events.MakeEvent(RequestIDFrom(r.Context()), events.TypeConfigUpdated, 1,
			map[string]any{"restart_required": out.Restart}))
	}
	writeJSON(w, out)
}

func (h ConfigHandler) Path(w http.ResponseWriter, r *http.Request) {
	abs, err := filepath.Abs(h.UserCfgPath)
	if err != nil {
		abs = h.UserCfgPath
	}
	writeJSON(w, map[string]string{"path": abs})
}

func (h ConfigHandler) Validate(w http.ResponseWriter, r *http.Request) {
	_, vr := config.NormalizeAndValidate(h.current())
	if vr.Errors == nil {
		vr.Errors = []string{}
	}
	if vr.Warnings == nil {
		vr.Warnings = []string{}
	}
	writeJSON(w, vr)
}
