package ioc

import (
	"slices"
	"strings"
	"sync"
)

// DefaultCatalog receives the registrations made through Component.
var DefaultCatalog = NewCatalog()

// Catalog is the table of registered component types, keyed by the package
// they live in. It plays the role of the class path for Scan.
type Catalog struct {
	mu      sync.RWMutex
	entries []*Descriptor
}

// NewCatalog returns an empty catalog.
func NewCatalog() *Catalog {
	return &Catalog{}
}

func (c *Catalog) add(d *Descriptor) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = append(c.entries, d)
}

// Len returns the number of registrations, malformed ones included.
func (c *Catalog) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Lookup returns the components registered at basePackage or any package
// nested below it.
func (c *Catalog) Lookup(basePackage string) []*Descriptor {
	base := normalizePackage(basePackage)

	c.mu.RLock()
	defer c.mu.RUnlock()

	var out []*Descriptor
	for _, d := range c.entries {
		if underPackage(d.pkg, base) {
			out = append(out, d)
		}
	}
	return out
}

// Packages returns the sorted, distinct package paths in the catalog.
func (c *Catalog) Packages() []string {
	c.mu.RLock()
	pkgs := make([]string, 0, len(c.entries))
	for _, d := range c.entries {
		pkgs = append(pkgs, d.pkg)
	}
	c.mu.RUnlock()

	slices.Sort(pkgs)
	return slices.Compact(pkgs)
}

// normalizePackage trims whitespace, a trailing slash and a trailing "/..."
// wildcard.
func normalizePackage(path string) string {
	path = strings.TrimSpace(path)
	path = strings.TrimSuffix(path, "/...")
	return strings.TrimRight(path, "/")
}

// underPackage reports whether pkg is base or nested below it, comparing
// whole path segments.
func underPackage(pkg, base string) bool {
	if base == "" {
		return false
	}
	return pkg == base || strings.HasPrefix(pkg, base+"/")
}
