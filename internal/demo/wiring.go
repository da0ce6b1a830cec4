package demo

import (
	"github.com/km-arc/autowire/framework/config"
	"github.com/km-arc/autowire/framework/container"
	"github.com/km-arc/autowire/framework/providers"
	"github.com/km-arc/autowire/framework/reflection"
	"github.com/km-arc/autowire/framework/routing"
)

// Class identifiers of the demo domain.
var (
	UserRepositoryKey = reflection.Key[UserRepository]()
	MemoryRepoKey     = reflection.Key[MemoryUserRepository]()
	MailerKey         = reflection.Key[Mailer]()
	LogMailerKey      = reflection.Key[LogMailer]()
	UserControllerKey = reflection.Key[UserController]()
)

// SeedUsers is the default content of a new MemoryUserRepository.
var SeedUsers = []User{
	{Name: "Ada Lovelace", Email: "ada@example.com"},
	{Name: "Alan Turing", Email: "alan@example.com"},
}

// Classes declares every demo type the container can build.
func Classes() *reflection.Table {
	return reflection.NewTable(
		reflection.MustClass[UserRepository](),
		reflection.MustClass[*MemoryUserRepository](
			reflection.Constructor(NewMemoryUserRepository,
				reflection.Arg("seed", reflection.Default(SeedUsers)),
			),
		),
		reflection.MustClass[Mailer](),
		reflection.MustClass[*LogMailer](
			reflection.Constructor(NewLogMailer, reflection.Arg("logger", reflection.Nullable())),
		),
		reflection.MustClass[*UserController](
			reflection.Constructor(NewUserController, reflection.Arg("repo"), reflection.Arg("mailer")),
			reflection.Method("Index"),
			reflection.Method("Show", reflection.Arg("w"), reflection.Arg("id")),
			reflection.Method("Store", reflection.Arg("input"), reflection.Arg("w")),
		),
	)
}

// Routes mounts the demo endpoints.
//
//	GET  /                 → app name and environment
//	GET  /api/users        → UserController.Index
//	POST /api/users        → UserController.Store
//	GET  /api/users/{id}   → UserController.Show
func Routes(r *routing.Router) {
	r.Get("/", container.Func(func(cfg *config.Config) map[string]string {
		return map[string]string{"app": cfg.App.Name, "env": cfg.App.Env}
	}, reflection.Arg("cfg")))

	r.Prefix("/api", func(api *routing.Router) {
		api.Resource("/users", UserControllerKey)
	})
}

// ── ServiceProvider ───────────────────────────────────────────────────────────

// ServiceProvider binds the demo abstracts and mounts its routes.
//
// Bound abstracts:
//   - UserRepositoryKey → MemoryUserRepository (singleton)
//   - MailerKey         → LogMailer (singleton)
type ServiceProvider struct {
	container.BaseProvider
}

func (p *ServiceProvider) Register(app *container.Container) {
	app.Singleton(UserRepositoryKey, container.Class(MemoryRepoKey))
	app.Singleton(MailerKey, container.Class(LogMailerKey))
}

func (p *ServiceProvider) Boot(app *container.Container) error {
	router, err := container.Resolve[*routing.Router](app, providers.RouterKey, nil)
	if err != nil {
		return err
	}
	Routes(router)
	return nil
}
