package app

import (
	"fmt"
	"net/http"
	"reflect"
	"time"

	"go.uber.org/zap"

	"github.com/km-arc/go-ioc/framework/config"
	gohttp "github.com/km-arc/go-ioc/framework/http"
	"github.com/km-arc/go-ioc/framework/ioc"
	"github.com/km-arc/go-ioc/framework/providers"
	"github.com/km-arc/go-ioc/framework/routing"
)

// Application is the top-level application object. It embeds the IoC
// container so user code can call app.GetBean() and app.Instance() directly,
// and owns the ProviderRegistry that seeds it.
type Application struct {
	*ioc.Container
	Providers *ioc.ProviderRegistry

	booted bool
}

// New creates the application and registers the framework providers:
// config, logger and router, in that order.
func New(envFiles ...string) (*Application, error) {
	c := ioc.New()
	app := &Application{
		Container: c,
		Providers: ioc.NewProviderRegistry(c),
	}

	core := []ioc.ServiceProvider{
		&providers.ConfigServiceProvider{EnvFiles: envFiles},
		&providers.LoggingServiceProvider{},
		&providers.RoutingServiceProvider{},
	}
	for _, p := range core {
		if err := app.Register(p); err != nil {
			return nil, fmt.Errorf("app: registering %T: %w", p, err)
		}
	}
	return app, nil
}

// Register adds a ServiceProvider to the application.
func (a *Application) Register(provider ioc.ServiceProvider) error {
	return a.Providers.Register(provider)
}

// Boot scans IOC_SCAN_PACKAGE, boots every provider and mounts the bean
// inspection routes. Calling it again is a no-op.
func (a *Application) Boot() error {
	if a.booted {
		return nil
	}
	if err := a.Scan(a.Config().IoC.ScanPackage); err != nil {
		return err
	}
	if err := a.Providers.Boot(); err != nil {
		return err
	}
	a.mountInspector(a.Router())
	a.booted = true
	return nil
}

// Config resolves *config.Config from the container.
func (a *Application) Config() *config.Config {
	return ioc.MustResolve[*config.Config](a.Container, "config")
}

// Logger resolves *zap.Logger from the container.
func (a *Application) Logger() *zap.Logger {
	return ioc.MustResolve[*zap.Logger](a.Container, "logger")
}

// Router resolves *routing.Router from the container.
func (a *Application) Router() *routing.Router {
	return ioc.MustResolve[*routing.Router](a.Container, "router")
}

// Run boots the application (if needed) and starts the HTTP server.
func (a *Application) Run() error {
	if err := a.Boot(); err != nil {
		return err
	}
	cfg := a.Config()
	addr := ":" + cfg.App.Port
	a.Logger().Info("server listening",
		zap.String("addr", addr),
		zap.String("env", cfg.App.Env),
	)
	srv := &http.Server{
		Addr:              addr,
		Handler:           a.Router().Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	return srv.ListenAndServe()
}

// Environment returns APP_ENV value.
func (a *Application) Environment() string { return a.Config().App.Env }
func (a *Application) IsLocal() bool       { return a.Environment() == "local" }
func (a *Application) IsProduction() bool  { return a.Environment() == "production" }
func (a *Application) IsTesting() bool     { return a.Environment() == "testing" }
func (a *Application) IsDebug() bool       { return a.Config().App.Debug }

// ── Bean inspection ───────────────────────────────────────────────────────────

// BeanInfo describes one bean for the inspection endpoints.
type BeanInfo struct {
	Name         string   `json:"name" yaml:"name"`
	Type         string   `json:"type" yaml:"type"`
	Package      string   `json:"package,omitempty" yaml:"package,omitempty"`
	Dependencies []string `json:"dependencies,omitempty" yaml:"dependencies,omitempty"`
	Resolved     bool     `json:"resolved" yaml:"resolved"`
}

// Describe returns the BeanInfo for name, or false when nothing is bound
// under it. Describing a bean never constructs it.
func (a *Application) Describe(name string) (BeanInfo, bool) {
	info := BeanInfo{Name: name, Resolved: a.Resolved(name)}
	if d, ok := a.Definition(name); ok {
		t := d.Type()
		if t.Kind() == reflect.Struct {
			t = reflect.PointerTo(t)
		}
		info.Type = t.String()
		info.Package = d.Package()
		info.Dependencies = d.Dependencies()
	}
	if info.Type == "" && info.Resolved {
		if inst, err := a.GetBean(name); err == nil {
			info.Type = fmt.Sprintf("%T", inst)
		}
	}
	return info, info.Type != ""
}

// Beans describes every registered or cached bean, sorted by name.
func (a *Application) Beans() []BeanInfo {
	names := a.Names()
	beans := make([]BeanInfo, 0, len(names))
	for _, name := range names {
		if info, ok := a.Describe(name); ok {
			beans = append(beans, info)
		}
	}
	return beans
}

func (a *Application) mountInspector(r *routing.Router) {
	r.Group(func(r *routing.Router) {
		r.Middleware(noStore)
		r.Get("/_ioc/beans", a.listBeans)
		r.Get("/_ioc/beans/{name}", a.showBean)
	})
}

// noStore marks inspection responses as not cacheable.
func noStore(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Cache-Control", "no-store")
		next.ServeHTTP(w, r)
	})
}

// GET /_ioc/beans[?format=yaml]
func (a *Application) listBeans(w http.ResponseWriter, r *http.Request) {
	req, res := gohttp.NewRequest(r), gohttp.NewResponse(w)
	res.Negotiate(http.StatusOK, req.Query("format"), map[string]any{"beans": a.Beans()})
}

// GET /_ioc/beans/{name}[?format=yaml]
func (a *Application) showBean(w http.ResponseWriter, r *http.Request) {
	req, res := gohttp.NewRequest(r), gohttp.NewResponse(w)
	name := req.RouteParam("name")
	info, ok := a.Describe(name)
	if !ok {
		res.NotFound((&ioc.NotFoundError{Name: name}).Error())
		return
	}
	res.Negotiate(http.StatusOK, req.Query("format"), info)
}
