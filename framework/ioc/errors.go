package ioc

import (
	"errors"
	"strconv"
	"strings"
)

var (
	// ErrDiscovery is matched by every *DiscoveryError.
	ErrDiscovery = errors.New("ioc: discovery failed")

	// ErrNotFound is matched by every *NotFoundError.
	ErrNotFound = errors.New("ioc: bean not found")

	// ErrConstruction is matched by every *ConstructionError.
	ErrConstruction = errors.New("ioc: bean construction failed")

	// ErrInjection is matched by every *InjectionError.
	ErrInjection = errors.New("ioc: dependency injection failed")

	// ErrCycleDetected is matched by every *CycleError.
	ErrCycleDetected = errors.New("ioc: circular dependency detected")

	// ErrPackageNotFound is wrapped by a DiscoveryError when no component is
	// registered at or below the scanned package path.
	ErrPackageNotFound = errors.New("no components registered under package")

	// ErrNoInitializer is wrapped by a ConstructionError when a type has
	// neither a factory nor a usable zero value.
	ErrNoInitializer = errors.New("no zero-argument initializer")
)

// ── Typed errors ──────────────────────────────────────────────────────────────

// DiscoveryError reports a scan that could not be completed.
type DiscoveryError struct {
	Package string
	Type    string // empty when the package itself could not be resolved
	Err     error
}

func (e *DiscoveryError) Error() string {
	var b strings.Builder
	b.WriteString("ioc: scan ")
	b.WriteString(strconv.Quote(e.Package))
	if e.Type != "" {
		b.WriteString(": component ")
		b.WriteString(e.Type)
	}
	b.WriteString(": ")
	b.WriteString(e.Err.Error())
	return b.String()
}

func (e *DiscoveryError) Unwrap() error        { return e.Err }
func (e *DiscoveryError) Is(target error) bool { return target == ErrDiscovery }

// NotFoundError reports a lookup of a name that is neither cached nor
// registered.
type NotFoundError struct {
	Name string
}

func (e *NotFoundError) Error() string {
	return "ioc: no component registered under " + strconv.Quote(e.Name)
}

func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }

// ConstructionError reports a bean that could not be instantiated or whose
// Initialize hook failed.
type ConstructionError struct {
	Name string
	Type string
	Err  error
}

func (e *ConstructionError) Error() string {
	return "ioc: constructing " + strconv.Quote(e.Name) + " (" + e.Type + "): " + e.Err.Error()
}

func (e *ConstructionError) Unwrap() error        { return e.Err }
func (e *ConstructionError) Is(target error) bool { return target == ErrConstruction }

// InjectionError reports a resolved dependency that could not be assigned.
type InjectionError struct {
	Bean  string
	Field string
	Err   error
}

func (e *InjectionError) Error() string {
	return "ioc: injecting " + e.Bean + "." + e.Field + ": " + e.Err.Error()
}

func (e *InjectionError) Unwrap() error        { return e.Err }
func (e *InjectionError) Is(target error) bool { return target == ErrInjection }

// CycleError reports a bean that transitively depends on itself. Chain starts
// and ends with the repeated name.
type CycleError struct {
	Chain []string
}

func (e *CycleError) Error() string {
	return "ioc: circular dependency detected: " + strings.Join(e.Chain, " -> ")
}

func (e *CycleError) Is(target error) bool { return target == ErrCycleDetected }
