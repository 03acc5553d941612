// Package ioc provides a small name-based IoC container.
//
// # Overview
//
// Component types are registered in a Catalog, usually from the declaring
// package's init function. Scan copies the components found under a package
// path into the container's registry. GetBean then builds beans lazily, one
// singleton per name, injecting tagged fields by name.
//
// # Components
//
//	type UserRepository struct{}
//
//	type UserService struct {
//	    // resolved as the bean "userRepository"
//	    userRepository *UserRepository `inject:""`
//	}
//
//	func init() {
//	    ioc.Component[UserRepository]()                   // "userRepository"
//	    ioc.Component[UserService]()                      // "userService"
//	    ioc.Component[Mailer](ioc.Named("mailer"),        // explicit name
//	        ioc.Factory(NewMailer),                       // custom initializer
//	        ioc.Setter("transport", (*Mailer).SetTransport))
//	}
//
// The bean name is the explicit name when one is given, otherwise the type
// name with its first letter lower-cased. Names are not checked for
// uniqueness: when two scanned components share a name, the one scanned last
// wins.
//
// # Resolving
//
//	c := ioc.New(ioc.WithLogger(logger))
//	if err := c.Scan("github.com/acme/shop/app"); err != nil { ... }
//
//	raw, err := c.GetBean("userService")
//	svc, err := ioc.Resolve[*UserService](c, "userService")
//
// Pre-built values can be placed in the cache directly:
//
//	c.Instance("logger", logger)
//
// # Concurrency
//
// A Container is safe for concurrent use. The first lookup of a name builds
// the bean and later lookups, concurrent or not, receive the same instance.
// Factory functions and Initialize hooks run without container locks held
// and may call GetBean, as long as they do not need the bean being built.
//
//	func (w *Warmer) Initialize() error {
//	    repo, err := w.container.GetBean("userRepository")
//	    ...
//	}
//
// # Errors
//
// Scan returns a *DiscoveryError. GetBean returns a *NotFoundError,
// *ConstructionError, *InjectionError or *CycleError, possibly wrapped with
// the dependency path that led to it. Match them with errors.Is against
// ErrNotFound, ErrConstruction, ErrInjection and ErrCycleDetected, or with
// errors.As.
package ioc
