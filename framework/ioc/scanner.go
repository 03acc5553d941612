package ioc

import (
	"go.uber.org/zap"
)

// Scan registers every component of the container's catalog that lives at
// basePackage or below it. Each component is stored under its bean name,
// replacing any earlier registration with the same name. Scanning again adds
// to the registry.
//
// Scan fails with a *DiscoveryError when nothing is registered under
// basePackage, or when a component found there is malformed. A failed scan
// leaves the registry untouched.
//
//	c := ioc.New()
//	if err := c.Scan("github.com/acme/shop/app"); err != nil { ... }
func (c *Container) Scan(basePackage string) error {
	base := normalizePackage(basePackage)
	found := c.catalog.Lookup(base)
	if len(found) == 0 {
		return &DiscoveryError{Package: basePackage, Err: ErrPackageNotFound}
	}

	for _, d := range found {
		if d.err != nil {
			return &DiscoveryError{Package: basePackage, Type: d.typ.String(), Err: d.err}
		}
	}

	log := c.logger()
	for _, d := range found {
		name := d.Name()
		if prev := c.registry.put(name, d); prev != nil && prev != d {
			log.Warn("bean name collision, later component wins",
				zap.String("bean", name),
				zap.Stringer("previous", prev.typ),
				zap.Stringer("current", d.typ),
			)
		}
		log.Debug("component registered",
			zap.String("bean", name),
			zap.String("package", d.pkg),
			zap.Strings("dependencies", d.Dependencies()),
		)
	}

	log.Info("package scanned",
		zap.String("package", base),
		zap.Int("components", len(found)),
		zap.Int("registered", c.registry.len()),
	)
	return nil
}
