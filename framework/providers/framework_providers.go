// Package providers holds the service providers every application registers.
package providers

import (
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/km-arc/autowire/framework/config"
	"github.com/km-arc/autowire/framework/container"
	"github.com/km-arc/autowire/framework/logging"
	"github.com/km-arc/autowire/framework/manifest"
	"github.com/km-arc/autowire/framework/reflection"
	"github.com/km-arc/autowire/framework/routing"
)

// Abstracts bound by the framework providers.
var (
	ConfigKey   = reflection.Key[config.Config]()
	LoggerKey   = reflection.Key[zap.Logger]()
	ManifestKey = reflection.Key[manifest.Manifest]()
	RouterKey   = reflection.Key[routing.Router]()
)

// ── ConfigServiceProvider ─────────────────────────────────────────────────────

// ConfigServiceProvider loads configuration from the environment and the
// given .env files.
//
// Bound abstracts:
//   - ConfigKey → *config.Config (singleton)
type ConfigServiceProvider struct {
	container.BaseProvider
	EnvFiles []string
}

func (p *ConfigServiceProvider) Register(app *container.Container) {
	envFiles := p.EnvFiles
	app.Singleton(ConfigKey, container.Factory(func() *config.Config {
		return config.Load(envFiles...)
	}))
}

// ── LoggingServiceProvider ────────────────────────────────────────────────────

// LoggingServiceProvider builds the zap logger from the log configuration and
// hands it to the container for resolution tracing.
//
// Bound abstracts:
//   - LoggerKey → *zap.Logger (singleton)
type LoggingServiceProvider struct {
	container.BaseProvider
}

func (p *LoggingServiceProvider) Register(app *container.Container) {
	app.Singleton(LoggerKey, container.Factory(func(cfg *config.Config) (*zap.Logger, error) {
		return logging.New(cfg.Log)
	}, reflection.Arg("cfg")))
}

func (p *LoggingServiceProvider) Boot(app *container.Container) error {
	logger, err := container.Resolve[*zap.Logger](app, LoggerKey, nil)
	if err != nil {
		return errors.Wrap(err, "logging provider")
	}
	app.SetLogger(logger.Named("container"))
	return nil
}

// ── ManifestServiceProvider ───────────────────────────────────────────────────

// ManifestServiceProvider applies the YAML bindings file named by
// CONTAINER_MANIFEST. Classes the manifest names but the table lacks are
// logged as warnings; they fail only when resolved.
//
// Bound abstracts (when a manifest is configured):
//   - ManifestKey → *manifest.Manifest
type ManifestServiceProvider struct {
	container.BaseProvider
}

func (p *ManifestServiceProvider) Register(app *container.Container) {}

func (p *ManifestServiceProvider) Boot(app *container.Container) error {
	cfg, err := container.Resolve[*config.Config](app, ConfigKey, nil)
	if err != nil {
		return errors.Wrap(err, "manifest provider")
	}
	if cfg.Container.Manifest == "" {
		return nil
	}

	m, err := manifest.Load(cfg.Container.Manifest)
	if err != nil {
		return err
	}
	m.Apply(app)
	app.Instance(ManifestKey, m)

	logger := loggerOf(app)
	for _, e := range m.Missing(app.Classes()) {
		logger.Warn("manifest: unknown class",
			zap.String("abstract", e.Abstract),
			zap.String("class", e.Class),
		)
	}
	logger.Info("manifest applied",
		zap.String("path", cfg.Container.Manifest),
		zap.Int("entries", len(m.Entries())),
	)
	return nil
}

// ── RoutingServiceProvider ────────────────────────────────────────────────────

// RoutingServiceProvider registers the HTTP router.
//
// Bound abstracts:
//   - RouterKey → *routing.Router (singleton)
type RoutingServiceProvider struct {
	container.BaseProvider
}

func (p *RoutingServiceProvider) Register(app *container.Container) {
	app.Singleton(RouterKey, container.Factory(func(app *container.Container, logger *zap.Logger) *routing.Router {
		if logger != nil {
			logger = logger.Named("http")
		}
		return routing.New(app, logger)
	}, reflection.Arg("app"), reflection.Arg("logger", reflection.Nullable())))
}

// loggerOf returns the bound logger, or a no-op one when none resolves.
func loggerOf(app *container.Container) *zap.Logger {
	l, err := container.Resolve[*zap.Logger](app, LoggerKey, nil)
	if err != nil {
		return zap.NewNop()
	}
	return l
}
