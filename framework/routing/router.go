package routing

import (
	"net/http"
	"reflect"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/km-arc/autowire/framework/container"
	gohttp "github.com/km-arc/autowire/framework/http"
)

// Router wraps chi.Router and dispatches requests to container callables.
//
// Every action is called through the container with these overrides:
//
//	w, writer    http.ResponseWriter
//	r, request   *http.Request
//	input        *gohttp.Request
//	<name>       each URL parameter, as a string
//
// Anything else the action declares is autowired.
type Router struct {
	mux chi.Router
	d   *dispatcher
}

// dispatcher is shared by a router and all its groups. Calls are serialised
// because container resolution is single-threaded.
type dispatcher struct {
	mu  sync.Mutex
	app *container.Container
	log *zap.Logger
}

// New creates a Router over app with request logging and panic recovery.
func New(app *container.Container, logger *zap.Logger) *Router {
	if logger == nil {
		logger = zap.NewNop()
	}
	d := &dispatcher{app: app, log: logger}

	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(middleware.RequestID)
	r.Use(d.requestLogger)
	r.Use(middleware.Recoverer)
	return &Router{mux: r, d: d}
}

// ── HTTP verbs ───────────────────────────────────────────────────────────────

func (r *Router) Get(pattern string, action container.Callable)    { r.mux.Get(pattern, r.d.handle(action)) }
func (r *Router) Post(pattern string, action container.Callable)   { r.mux.Post(pattern, r.d.handle(action)) }
func (r *Router) Put(pattern string, action container.Callable)    { r.mux.Put(pattern, r.d.handle(action)) }
func (r *Router) Patch(pattern string, action container.Callable)  { r.mux.Patch(pattern, r.d.handle(action)) }
func (r *Router) Delete(pattern string, action container.Callable) { r.mux.Delete(pattern, r.d.handle(action)) }

// Handle registers a plain handler, bypassing the container.
func (r *Router) Handle(method, pattern string, h http.HandlerFunc) {
	r.mux.MethodFunc(method, pattern, h)
}

// ── Groups & Prefixes ────────────────────────────────────────────────────────

// Group creates an inline group sharing the current prefix.
func (r *Router) Group(fn func(r *Router)) {
	r.mux.Group(func(mx chi.Router) {
		fn(&Router{mux: mx, d: r.d})
	})
}

// Prefix creates a sub-router mounted at pattern.
func (r *Router) Prefix(pattern string, fn func(r *Router)) {
	r.mux.Route(pattern, func(mx chi.Router) {
		fn(&Router{mux: mx, d: r.d})
	})
}

// Middleware adds middleware to the router. Call it before registering routes.
func (r *Router) Middleware(mw ...func(http.Handler) http.Handler) {
	r.mux.Use(mw...)
}

// ── Resource routes ──────────────────────────────────────────────────────────

// Resource registers RESTful routes for the controller bound to abstract.
// The controller is made on every request; only the methods its class has
// are routed.
//
//	GET    /photos       → Index
//	POST   /photos       → Store
//	GET    /photos/{id}  → Show
//	PUT    /photos/{id}  → Update
//	PATCH  /photos/{id}  → Update
//	DELETE /photos/{id}  → Destroy
func (r *Router) Resource(pattern, abstract string) {
	item := pattern + "/{id}"
	routes := []struct {
		method, pattern, action string
	}{
		{http.MethodGet, pattern, "Index"},
		{http.MethodPost, pattern, "Store"},
		{http.MethodGet, item, "Show"},
		{http.MethodPut, item, "Update"},
		{http.MethodPatch, item, "Update"},
		{http.MethodDelete, item, "Destroy"},
	}
	for _, rt := range routes {
		if !r.d.hasMethod(abstract, rt.action) {
			continue
		}
		r.mux.Method(rt.method, rt.pattern, r.d.handle(container.Action(abstract, rt.action)))
	}
}

// ── Params ───────────────────────────────────────────────────────────────────

// Param extracts a URL parameter.
func Param(r *http.Request, key string) string {
	return chi.URLParam(r, key)
}

// ── Serve ────────────────────────────────────────────────────────────────────

// ServeHTTP implements http.Handler.
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.mux.ServeHTTP(w, req)
}

// Handler returns the underlying http.Handler.
func (r *Router) Handler() http.Handler {
	return r.mux
}

// Routes lists registered routes as "METHOD pattern".
func (r *Router) Routes() []string {
	var out []string
	_ = chi.Walk(r.mux, func(method, route string, _ http.Handler, _ ...func(http.Handler) http.Handler) error {
		out = append(out, method+" "+route)
		return nil
	})
	return out
}

// ── Dispatch ─────────────────────────────────────────────────────────────────

// handle adapts action to an http.HandlerFunc. A non-nil result is written
// as {"data": result}; a nil result means the action wrote the response.
func (d *dispatcher) handle(action container.Callable) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		args := container.Args{
			"w":       w,
			"writer":  w,
			"r":       req,
			"request": req,
			"input":   gohttp.NewRequest(req),
		}
		if rctx := chi.RouteContext(req.Context()); rctx != nil {
			for i, key := range rctx.URLParams.Keys {
				args[key] = rctx.URLParams.Values[i]
			}
		}

		out, err := d.call(action, args)

		res := gohttp.NewResponse(w)
		if err != nil {
			d.log.Error("routing: action failed",
				zap.String("method", req.Method),
				zap.String("path", req.URL.Path),
				zap.Error(err),
			)
			res.ServerError()
			return
		}
		if out != nil {
			res.Success(out)
		}
	}
}

// call runs action under the dispatcher lock. The lock is released even when
// the action panics, so Recoverer can answer and later requests proceed.
func (d *dispatcher) call(action container.Callable, args container.Args) (any, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.app.Call(action, args)
}

func (d *dispatcher) hasMethod(abstract, name string) bool {
	class, err := d.app.Classes().Class(abstract)
	if err != nil {
		// Unknown classes fail at request time with the resolution error.
		return true
	}
	t := class.Type()
	if t.Kind() != reflect.Interface {
		t = reflect.PointerTo(t)
	}
	_, ok := t.MethodByName(name)
	return ok
}

func (d *dispatcher) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, req.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, req)
		d.log.Info("request",
			zap.String("method", req.Method),
			zap.String("path", req.URL.Path),
			zap.Int("status", ww.Status()),
			zap.Int("bytes", ww.BytesWritten()),
			zap.Duration("duration", time.Since(start)),
			zap.String("request_id", middleware.GetReqID(req.Context())),
		)
	})
}
