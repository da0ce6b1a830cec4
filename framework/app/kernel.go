package app

import (
	"context"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/km-arc/autowire/framework/config"
	"github.com/km-arc/autowire/framework/container"
	"github.com/km-arc/autowire/framework/providers"
	"github.com/km-arc/autowire/framework/reflection"
	"github.com/km-arc/autowire/framework/routing"
)

// Version is reported by the CLI.
const Version = "0.1.0"

const shutdownTimeout = 10 * time.Second

// Application is the top-level container. It embeds the Container and the
// ProviderRegistry so user code can call app.Bind(), app.Singleton() and
// app.Register() directly.
type Application struct {
	*container.Container
	Providers *container.ProviderRegistry
}

// New creates the application over classes and registers the framework
// providers: config, logging, manifest and routing, in that order.
//
//	application := app.New(demo.Classes())
//	application.Register(&demo.ServiceProvider{})
//	application.Run(ctx)
func New(classes *reflection.Table, envFiles ...string) *Application {
	c := container.Create(classes, nil, nil)
	registry := container.NewProviderRegistry(c)

	application := &Application{
		Container: c,
		Providers: registry,
	}

	// Registration before Boot cannot fail.
	_ = registry.Register(&providers.ConfigServiceProvider{EnvFiles: envFiles})
	_ = registry.Register(&providers.LoggingServiceProvider{})
	_ = registry.Register(&providers.ManifestServiceProvider{})
	_ = registry.Register(&providers.RoutingServiceProvider{})

	return application
}

// Register adds a ServiceProvider to the application.
func (a *Application) Register(provider container.ServiceProvider) error {
	return a.Providers.Register(provider)
}

// Boot runs the Boot phase on all providers once.
func (a *Application) Boot() error {
	return a.Providers.Boot()
}

// Config resolves *config.Config from the container.
func (a *Application) Config() (*config.Config, error) {
	return container.Resolve[*config.Config](a.Container, providers.ConfigKey, nil)
}

// Logger resolves the application logger.
func (a *Application) Logger() (*zap.Logger, error) {
	return container.Resolve[*zap.Logger](a.Container, providers.LoggerKey, nil)
}

// Router resolves *routing.Router from the container.
func (a *Application) Router() (*routing.Router, error) {
	return container.Resolve[*routing.Router](a.Container, providers.RouterKey, nil)
}

// Server boots the application if needed and returns an HTTP server for the
// router, listening on APP_PORT.
func (a *Application) Server() (*http.Server, error) {
	if err := a.Boot(); err != nil {
		return nil, errors.Wrap(err, "app: boot")
	}
	cfg, err := a.Config()
	if err != nil {
		return nil, err
	}
	router, err := a.Router()
	if err != nil {
		return nil, err
	}
	return &http.Server{
		Addr:              ":" + cfg.App.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}, nil
}

// Run serves HTTP until ctx is cancelled or SIGINT/SIGTERM arrives, then
// shuts down gracefully.
func (a *Application) Run(ctx context.Context) error {
	srv, err := a.Server()
	if err != nil {
		return err
	}
	cfg, err := a.Config()
	if err != nil {
		return err
	}
	logger, err := a.Logger()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server starting",
			zap.String("app", cfg.App.Name),
			zap.String("addr", srv.Addr),
			zap.String("env", cfg.App.Env),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return errors.Wrap(err, "app: serve")
	case <-ctx.Done():
	}

	logger.Info("server shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return errors.Wrap(err, "app: shutdown")
	}
	return nil
}

// Environment returns APP_ENV, or "" before configuration resolves.
func (a *Application) Environment() string {
	cfg, err := a.Config()
	if err != nil {
		return ""
	}
	return cfg.App.Env
}

func (a *Application) IsLocal() bool      { return a.Environment() == "local" }
func (a *Application) IsProduction() bool { return a.Environment() == "production" }
func (a *Application) IsTesting() bool    { return a.Environment() == "testing" }
