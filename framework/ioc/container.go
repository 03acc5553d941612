package ioc

import (
	"fmt"
	"reflect"
	"slices"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"
)

// Initializer is implemented by beans that need to run code once all of
// their dependencies are injected and before the bean is cached.
//
// Initialize, like a Factory function, may resolve other beans from the
// container. It must not resolve, directly or through other beans, the bean
// it is initializing: that bean is not cached yet and the lookup waits for it.
type Initializer interface {
	Initialize() error
}

// ── Container ─────────────────────────────────────────────────────────────────

// Container owns the bean registry (name → component type) and the instance
// cache (name → singleton). Beans are created lazily on first lookup.
//
// Each bean under construction has one in-flight entry. Concurrent first
// lookups of the same name wait on it, so the bean is constructed exactly
// once. No lock is held while factories or Initialize run.
type Container struct {
	catalog  *Catalog
	log      atomic.Pointer[zap.Logger]
	registry *registry

	mu        sync.RWMutex
	instances map[string]any
	flights   map[string]*flight

	// resolved callbacks: []func(name, instance)
	afterResolving []func(string, any)
}

// flight is a bean under construction. done is closed once bean or err is
// final.
type flight struct {
	done  chan struct{}
	bean  any
	err   error
	owner *resolution
}

// resolution is one top-level GetBean call.
type resolution struct {
	created []resolved

	// waitingOn is the bean whose flight this resolution is blocked on,
	// guarded by Container.mu.
	waitingOn string
}

type resolved struct {
	name     string
	instance any
}

// ContainerOption configures a Container.
type ContainerOption func(*Container)

// WithCatalog scans cat instead of DefaultCatalog.
func WithCatalog(cat *Catalog) ContainerOption {
	return func(c *Container) { c.catalog = cat }
}

// WithLogger sets the logger used for scan and construction events.
func WithLogger(log *zap.Logger) ContainerOption {
	return func(c *Container) { c.SetLogger(log) }
}

// New creates an empty container. Nothing is registered until Scan.
func New(opts ...ContainerOption) *Container {
	c := &Container{
		catalog:   DefaultCatalog,
		registry:  newRegistry(),
		instances: make(map[string]any),
		flights:   make(map[string]*flight),
	}
	c.SetLogger(nil)
	for _, opt := range opts {
		opt(c)
	}
	if c.catalog == nil {
		c.catalog = DefaultCatalog
	}
	return c
}

// Instance stores a pre-built value as the singleton for name. It takes
// precedence over any component registered under the same name.
//
//	c.Instance("logger", logger)
func (c *Container) Instance(name string, instance any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.instances[name] = instance
}

// SetLogger replaces the logger used for scan and construction events. A
// nil logger discards them.
func (c *Container) SetLogger(log *zap.Logger) {
	if log == nil {
		log = zap.NewNop()
	}
	c.log.Store(log)
}

func (c *Container) logger() *zap.Logger { return c.log.Load() }

// AfterResolving registers a callback fired once for every bean the
// container constructs. Callbacks run once the lookup that built the bean
// returns and may resolve other beans.
func (c *Container) AfterResolving(cb func(name string, instance any)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.afterResolving = append(c.afterResolving, cb)
}

// ── Resolution ────────────────────────────────────────────────────────────────

// GetBean returns the singleton registered under name, constructing it and
// its dependencies on first use.
//
// Errors: *NotFoundError when name is neither cached nor registered,
// *ConstructionError, *InjectionError, and *CycleError when name depends on
// itself, including cycles closed by two concurrent lookups. Errors raised
// while resolving a dependency are wrapped with the path that led to them.
// A failed bean is never cached.
func (c *Container) GetBean(name string) (any, error) {
	if inst, ok := c.cached(name); ok {
		return inst, nil
	}

	res := &resolution{}
	bean, err := c.getBean(name, nil, res)

	c.fireAfterResolving(res.created)
	return bean, err
}

// getBean is the recursive resolver. chain holds the names res is
// constructing on the current path.
func (c *Container) getBean(name string, chain []string, res *resolution) (any, error) {
	if i := slices.Index(chain, name); i >= 0 {
		cycle := append(slices.Clone(chain[i:]), name)
		return nil, &CycleError{Chain: cycle}
	}

	c.mu.Lock()
	if inst, ok := c.instances[name]; ok {
		c.mu.Unlock()
		return inst, nil
	}
	if f, ok := c.flights[name]; ok {
		return c.await(name, f, chain, res)
	}
	d, ok := c.registry.get(name)
	if !ok {
		c.mu.Unlock()
		return nil, &NotFoundError{Name: name}
	}
	f := &flight{done: make(chan struct{}), owner: res}
	c.flights[name] = f
	c.mu.Unlock()

	f.bean, f.err = c.createBean(name, d, append(slices.Clone(chain), name), res)

	c.mu.Lock()
	delete(c.flights, name)
	if f.err == nil {
		c.instances[name] = f.bean
	}
	c.mu.Unlock()
	close(f.done)

	if f.err != nil {
		return nil, f.err
	}
	res.created = append(res.created, resolved{name: name, instance: f.bean})
	c.logger().Debug("bean created", zap.String("bean", name), zap.Stringer("type", d.typ))
	return f.bean, nil
}

// await blocks until another resolution finishes building name. The caller
// holds c.mu; await releases it.
func (c *Container) await(name string, f *flight, chain []string, res *resolution) (any, error) {
	if cycle := c.waitCycle(name, f, chain, res); cycle != nil {
		c.mu.Unlock()
		return nil, &CycleError{Chain: cycle}
	}
	res.waitingOn = name
	c.mu.Unlock()

	<-f.done

	c.mu.Lock()
	res.waitingOn = ""
	c.mu.Unlock()
	return f.bean, f.err
}

// waitCycle follows the resolutions that f's owner is waiting on. If they
// lead back to res, waiting would never end and the returned chain is the
// cycle. The caller holds c.mu.
func (c *Container) waitCycle(name string, f *flight, chain []string, res *resolution) []string {
	path := []string{name}
	for owner := f.owner; owner != res; {
		if owner.waitingOn == "" {
			return nil
		}
		next, ok := c.flights[owner.waitingOn]
		if !ok {
			return nil
		}
		path = append(path, owner.waitingOn)
		owner = next.owner
	}

	i := slices.Index(chain, path[len(path)-1])
	if i < 0 {
		return path
	}
	return append(slices.Clone(chain[i:]), path...)
}

// createBean instantiates d and injects every declared dependency.
func (c *Container) createBean(name string, d *Descriptor, chain []string, res *resolution) (any, error) {
	v, err := d.instantiate()
	if err != nil {
		return nil, &ConstructionError{Name: name, Type: d.typ.String(), Err: err}
	}

	for _, dep := range d.deps {
		inst, err := c.getBean(dep.name, chain, res)
		if err != nil {
			return nil, fmt.Errorf("ioc: resolving %s.%s: %w", name, dep.field, err)
		}
		if err := dep.assign(v, inst); err != nil {
			return nil, &InjectionError{Bean: name, Field: dep.field, Err: err}
		}
	}

	bean := v.Interface()
	if init, ok := bean.(Initializer); ok {
		if err := init.Initialize(); err != nil {
			return nil, &ConstructionError{Name: name, Type: d.typ.String(), Err: err}
		}
	}
	return bean, nil
}

func (c *Container) cached(name string) (any, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	inst, ok := c.instances[name]
	return inst, ok
}

func (c *Container) fireAfterResolving(created []resolved) {
	if len(created) == 0 {
		return
	}
	c.mu.RLock()
	cbs := c.afterResolving
	c.mu.RUnlock()
	for _, r := range created {
		for _, cb := range cbs {
			cb(r.name, r.instance)
		}
	}
}

// ── Helpers ───────────────────────────────────────────────────────────────────

// Bound reports whether name is cached or registered.
func (c *Container) Bound(name string) bool {
	if _, ok := c.cached(name); ok {
		return true
	}
	_, ok := c.registry.get(name)
	return ok
}

// Resolved reports whether a singleton for name exists in the cache.
func (c *Container) Resolved(name string) bool {
	_, ok := c.cached(name)
	return ok
}

// Definition returns the component registered under name.
func (c *Container) Definition(name string) (*Descriptor, bool) {
	return c.registry.get(name)
}

// Names returns every registered or cached bean name, sorted.
func (c *Container) Names() []string {
	names := c.registry.names()
	c.mu.RLock()
	for name := range c.instances {
		names = append(names, name)
	}
	c.mu.RUnlock()

	slices.Sort(names)
	return slices.Compact(names)
}

// ── Generics helper ───────────────────────────────────────────────────────────

// Resolve calls GetBean and type-asserts the result.
//
//	svc, err := ioc.Resolve[*services.UserService](c, "userService")
func Resolve[T any](c *Container, name string) (T, error) {
	var zero T
	inst, err := c.GetBean(name)
	if err != nil {
		return zero, err
	}
	typed, ok := inst.(T)
	if !ok {
		return zero, fmt.Errorf("ioc: bean %q is %T, not %s", name, inst, reflect.TypeFor[T]())
	}
	return typed, nil
}

// MustResolve is like Resolve but panics on error. Use it in bootstrap code
// where a missing bean is a programming error.
func MustResolve[T any](c *Container, name string) T {
	typed, err := Resolve[T](c, name)
	if err != nil {
		panic(err)
	}
	return typed
}
