package ioc

// ── ServiceProvider interface ─────────────────────────────────────────────────

// ServiceProvider seeds a container with pre-built beans that cannot be
// created by scanning, such as configuration or a logger.
//
// Register is called as soon as the provider is added. Boot is called after
// every provider is registered and the component scan has run, so it may
// resolve beans.
//
//	type LoggingServiceProvider struct{ ioc.BaseProvider }
//
//	func (p *LoggingServiceProvider) Register(app *ioc.Container) error {
//	    logger, err := zap.NewProduction()
//	    if err != nil {
//	        return err
//	    }
//	    app.Instance("logger", logger)
//	    return nil
//	}
type ServiceProvider interface {
	// Register binds pre-built beans into the container.
	// Do NOT resolve components here, use Boot() for that.
	Register(app *Container) error

	// Boot is called after all providers are registered.
	Boot(app *Container) error
}

// ── BaseProvider ──────────────────────────────────────────────────────────────

// BaseProvider is an embeddable struct with a no-op Boot.
type BaseProvider struct{}

func (p *BaseProvider) Boot(_ *Container) error { return nil }

// ── ProviderRegistry ──────────────────────────────────────────────────────────

// ProviderRegistry manages registration and booting of ServiceProviders.
type ProviderRegistry struct {
	app        *Container
	providers  []ServiceProvider
	booted     bool
	registered map[ServiceProvider]bool
}

// NewProviderRegistry creates a registry bound to app.
func NewProviderRegistry(app *Container) *ProviderRegistry {
	return &ProviderRegistry{
		app:        app,
		registered: make(map[ServiceProvider]bool),
	}
}

// Register adds a provider and calls its Register method. Registering the
// same provider twice is a no-op. A provider added after Boot is booted
// immediately.
func (r *ProviderRegistry) Register(provider ServiceProvider) error {
	if r.registered[provider] {
		return nil
	}
	if err := provider.Register(r.app); err != nil {
		return err
	}
	r.registered[provider] = true
	r.providers = append(r.providers, provider)

	if r.booted {
		return provider.Boot(r.app)
	}
	return nil
}

// Boot calls Boot on every registered provider, in registration order, and
// stops at the first error. Calling it again is a no-op.
func (r *ProviderRegistry) Boot() error {
	if r.booted {
		return nil
	}
	r.booted = true
	for _, provider := range r.providers {
		if err := provider.Boot(r.app); err != nil {
			return err
		}
	}
	return nil
}

// Booted returns true if Boot() has been called.
func (r *ProviderRegistry) Booted() bool { return r.booted }

// Providers returns all registered providers.
func (r *ProviderRegistry) Providers() []ServiceProvider { return r.providers }
