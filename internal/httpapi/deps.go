package httpapi

import (
	"sync/atomic"

	"go.uber.org/zap"

	"jobtracker-engine/internal/config"
	"jobtracker-engine/internal/events"
	"jobtracker-engine/internal/logos"
	"jobtracker-engine/internal/service"
	"jobtracker-engine/internal/store"
)

type Deps struct {
	Service *service.Service

	Hub *events.Hub
	// Publisher receives events raised outside the service (config, logos).
	Publisher events.Publisher

	// DB holds the save journal and logo caches; optional.
	DB *store.DB
	// Logos is nil when logo resolution is disabled.
	Logos *logos.Resolver

	// Atomic store of config.Config
	CfgVal *atomic.Value

	// Config persistence
	UserCfgPath string
	LoadCfg     func() (config.Config, error)

	Logger *zap.Logger
}
