package ioc

import (
	"errors"
	"fmt"
	"reflect"
	"unsafe"
)

// InjectTag is the struct tag that marks a field for injection. The field's
// own identifier is the name of the bean injected into it.
//
//	type UserService struct {
//	    userRepository *repository.UserRepository `inject:""`
//	}
const InjectTag = "inject"

var errNilDependency = errors.New("resolved dependency is nil")

// Option configures a component at registration time.
type Option func(d *Descriptor)

// Descriptor identifies a registered component type. It is immutable once
// registration returns.
type Descriptor struct {
	typ      reflect.Type
	declared string
	pkg      string
	factory  func() (reflect.Value, error)
	deps     []dependency
	setters  []dependency
	err      error
}

// dependency is one inject point: a tagged field or a typed setter.
type dependency struct {
	name   string       // bean name to resolve
	field  string       // field identifier or setter label, for errors
	typ    reflect.Type // declared type of the inject point
	assign func(bean reflect.Value, dep any) error
}

// ── Registration ──────────────────────────────────────────────────────────────

// Component registers T in DefaultCatalog. Call it from the declaring
// package's init function.
//
//	func init() {
//	    ioc.Component[UserRepository]()
//	    ioc.Component[UserController](ioc.Named("userHandler"))
//	}
func Component[T any](opts ...Option) *Descriptor {
	return Register[T](DefaultCatalog, opts...)
}

// Register records T as a component in cat. A pointer type is registered as
// its element type. Registration never fails; a malformed registration is
// kept and reported as a DiscoveryError by the first scan that reaches it.
func Register[T any](cat *Catalog, opts ...Option) *Descriptor {
	t := reflect.TypeFor[T]()
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}

	d := &Descriptor{typ: t, pkg: t.PkgPath()}
	for _, opt := range opts {
		opt(d)
	}
	if d.err == nil {
		d.deps, d.err = fieldDependencies(t)
	}
	d.deps = append(d.deps, d.setters...)
	d.setters = nil
	if d.err == nil {
		d.err = d.validate()
	}

	cat.add(d)
	return d
}

// Named sets the explicit bean name. An empty name keeps the derived one.
func Named(name string) Option {
	return func(d *Descriptor) { d.declared = name }
}

// InPackage overrides the package path the component is scanned under.
func InPackage(path string) Option {
	return func(d *Descriptor) { d.pkg = normalizePackage(path) }
}

// Factory replaces the zero-value initializer. fn may return T or *T for the
// registered type T; a struct value is copied into a fresh pointer so that
// field injection still applies.
func Factory[P any](fn func() (P, error)) Option {
	return func(d *Descriptor) {
		pt := reflect.TypeFor[P]()
		if pt != d.typ && (pt.Kind() != reflect.Pointer || pt.Elem() != d.typ) {
			d.fail(fmt.Errorf("factory returns %s, not %s", pt, d.typ))
			return
		}
		if fn == nil {
			d.fail(errors.New("nil factory"))
			return
		}
		d.factory = func() (reflect.Value, error) {
			v, err := fn()
			if err != nil {
				return reflect.Value{}, err
			}
			return reflect.ValueOf(&v).Elem(), nil
		}
	}
}

// Setter declares a dependency assigned through set instead of a tagged
// field. name is the bean resolved for it.
//
//	ioc.Component[Mailer](ioc.Setter("transport", func(m *Mailer, t Transport) {
//	    m.SetTransport(t)
//	}))
func Setter[T, D any](name string, set func(*T, D)) Option {
	return func(d *Descriptor) {
		if tt := reflect.TypeFor[T](); tt != d.typ {
			d.fail(fmt.Errorf("setter %q targets %s, not %s", name, tt, d.typ))
			return
		}
		if name == "" || set == nil {
			d.fail(fmt.Errorf("setter %q: name and function are required", name))
			return
		}
		dt := reflect.TypeFor[D]()
		d.setters = append(d.setters, dependency{
			name:  name,
			field: name,
			typ:   dt,
			assign: func(bean reflect.Value, dep any) error {
				target, ok := bean.Interface().(*T)
				if !ok {
					return fmt.Errorf("bean is %s, not *%s", bean.Type(), d.typ)
				}
				if dep == nil {
					return errNilDependency
				}
				v, ok := dep.(D)
				if !ok {
					return fmt.Errorf("%T is not assignable to %s", dep, dt)
				}
				set(target, v)
				return nil
			},
		})
	}
}

func (d *Descriptor) fail(err error) {
	if d.err == nil {
		d.err = err
	}
}

func (d *Descriptor) validate() error {
	if d.declared == "" && d.typ.Name() == "" {
		return fmt.Errorf("unnamed type %s needs an explicit name", d.typ)
	}
	if d.pkg == "" {
		return fmt.Errorf("type %s has no package path", d.typ)
	}
	return nil
}

// fieldDependencies collects the inject-tagged fields of a struct type.
func fieldDependencies(t reflect.Type) ([]dependency, error) {
	if t.Kind() != reflect.Struct {
		return nil, nil
	}

	var deps []dependency
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if _, ok := f.Tag.Lookup(InjectTag); !ok {
			continue
		}
		if f.Name == "_" {
			return nil, fmt.Errorf("blank field %d of %s cannot be injected", i, t)
		}
		deps = append(deps, dependency{
			name:   f.Name,
			field:  f.Name,
			typ:    f.Type,
			assign: fieldAssigner(t, f.Index),
		})
	}
	return deps, nil
}

// fieldAssigner sets a possibly unexported field of *t.
func fieldAssigner(t reflect.Type, index []int) func(reflect.Value, any) error {
	return func(bean reflect.Value, dep any) error {
		if bean.Kind() != reflect.Pointer || bean.Elem().Type() != t {
			return fmt.Errorf("bean is %s, not *%s", bean.Type(), t)
		}
		target := bean.Elem().FieldByIndex(index)
		if !target.CanSet() {
			target = reflect.NewAt(target.Type(), unsafe.Pointer(target.UnsafeAddr())).Elem()
		}

		dv := reflect.ValueOf(dep)
		if !dv.IsValid() {
			return errNilDependency
		}
		if !dv.Type().AssignableTo(target.Type()) {
			return fmt.Errorf("%s is not assignable to %s", dv.Type(), target.Type())
		}
		target.Set(dv)
		return nil
	}
}

// ── Accessors ─────────────────────────────────────────────────────────────────

// Type returns the registered type. Beans of struct types are *Type().
func (d *Descriptor) Type() reflect.Type { return d.typ }

// DeclaredName returns the explicit name, or "" when the name is derived.
func (d *Descriptor) DeclaredName() string { return d.declared }

// Name returns the bean name the component is registered under.
func (d *Descriptor) Name() string { return BeanName(d.declared, d.typ.Name()) }

// Package returns the package path the component is scanned under.
func (d *Descriptor) Package() string { return d.pkg }

// Dependencies returns the bean names injected into this component, tagged
// fields first, in declaration order.
func (d *Descriptor) Dependencies() []string {
	names := make([]string, len(d.deps))
	for i, dep := range d.deps {
		names[i] = dep.name
	}
	return names
}

// Err returns the registration error, if any.
func (d *Descriptor) Err() error { return d.err }

// ── Instantiation ─────────────────────────────────────────────────────────────

// instantiate returns a new, uninjected bean. Struct types always yield a
// pointer.
func (d *Descriptor) instantiate() (v reflect.Value, err error) {
	if d.factory == nil {
		if d.typ.Kind() != reflect.Struct {
			return reflect.Value{}, ErrNoInitializer
		}
		return reflect.New(d.typ), nil
	}

	defer func() {
		if r := recover(); r != nil {
			v, err = reflect.Value{}, fmt.Errorf("factory panicked: %v", r)
		}
	}()

	v, err = d.factory()
	if err != nil {
		return reflect.Value{}, err
	}
	if isNil(v) {
		return reflect.Value{}, errors.New("factory returned nil")
	}
	if v.Type() == d.typ && d.typ.Kind() == reflect.Struct {
		p := reflect.New(d.typ)
		p.Elem().Set(v)
		v = p
	}
	return v, nil
}

func isNil(v reflect.Value) bool {
	if !v.IsValid() {
		return true
	}
	switch v.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
		return v.IsNil()
	}
	return false
}
