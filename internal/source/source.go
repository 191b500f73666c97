package source

import (
	"fmt"

	"SectorPulse/internal/ports"
)

// Registry keeps a mapping from provider names to their implementations so
// the active upstream can be selected from configuration.
type Registry struct {
	providers map[string]ports.NewsProvider
}

// NewRegistry builds an empty registry.
func NewRegistry() *Registry {
	return &Registry{providers: map[string]ports.NewsProvider{}}
}

// Register adds or replaces a provider implementation.
func (r *Registry) Register(provider ports.NewsProvider) {
	if r.providers == nil {
		r.providers = map[string]ports.NewsProvider{}
	}
	r.providers[provider.Name()] = provider
}

// Resolve returns a provider by name or an error if it is absent.
func (r *Registry) Resolve(name string) (ports.NewsProvider, error) {
	if provider, ok := r.providers[name]; ok {
		return provider, nil
	}
	return nil, fmt.Errorf("news provider %s is not registered", name)
}
