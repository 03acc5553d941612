package providers

import (
	"go.uber.org/zap"

	"github.com/km-arc/go-ioc/framework/config"
	"github.com/km-arc/go-ioc/framework/ioc"
	"github.com/km-arc/go-ioc/framework/logging"
	"github.com/km-arc/go-ioc/framework/routing"
)

// ── ConfigServiceProvider ─────────────────────────────────────────────────────

// ConfigServiceProvider loads the application configuration from .env and
// places it in the container.
//
// Beans:
//   - "config" → *config.Config
type ConfigServiceProvider struct {
	ioc.BaseProvider
	EnvFiles []string
}

func (p *ConfigServiceProvider) Register(app *ioc.Container) error {
	app.Instance("config", config.Load(p.EnvFiles...))
	return nil
}

// ── LoggingServiceProvider ────────────────────────────────────────────────────

// LoggingServiceProvider builds the zap logger from "config" and hands a
// named child to the container. Components receive it through a field
// named logger.
//
// Beans:
//   - "logger" → *zap.Logger
type LoggingServiceProvider struct {
	ioc.BaseProvider
	// Logger, when set, is used instead of building one from config.
	Logger *zap.Logger
}

func (p *LoggingServiceProvider) Register(app *ioc.Container) error {
	logger := p.Logger
	if logger == nil {
		cfg, err := ioc.Resolve[*config.Config](app, "config")
		if err != nil {
			return err
		}
		if logger, err = logging.New(cfg); err != nil {
			return err
		}
	}
	app.Instance("logger", logger)
	app.SetLogger(logger.Named("ioc"))
	return nil
}

// ── RoutingServiceProvider ────────────────────────────────────────────────────

// RoutingServiceProvider registers the HTTP router.
//
// Beans:
//   - "router" → *routing.Router
type RoutingServiceProvider struct {
	ioc.BaseProvider
}

func (p *RoutingServiceProvider) Register(app *ioc.Container) error {
	logger, err := ioc.Resolve[*zap.Logger](app, "logger")
	if err != nil {
		return err
	}
	app.Instance("router", routing.New(logger))
	return nil
}
