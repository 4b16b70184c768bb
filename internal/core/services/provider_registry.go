package services

import (
	"fmt"

	"github.com/custodia-labs/jobradar-cli/internal/core/domain"
	"github.com/custodia-labs/jobradar-cli/internal/core/ports/driven"
)

// ProviderRegistry holds constructed search providers, built once at
// startup from configuration. It replaces any runtime string-based module
// lookup with an explicit mapping from provider ID to implementation.
//
// Iteration order is registration order. The aggregator keeps the first
// occurrence of a duplicate link, so registration order decides which
// provider's copy wins; it is part of the contract, not an accident.
type ProviderRegistry struct {
	ids       []string
	providers map[string]driven.Provider
}

// NewProviderRegistry creates an empty provider registry.
func NewProviderRegistry() *ProviderRegistry {
	return &ProviderRegistry{
		providers: make(map[string]driven.Provider),
	}
}

// Register adds a provider under its ID. Registering the same ID twice is
// an error.
func (r *ProviderRegistry) Register(p driven.Provider) error {
	id := p.ID()
	if id == "" {
		return fmt.Errorf("%w: provider ID must not be empty", domain.ErrInvalidInput)
	}
	if _, ok := r.providers[id]; ok {
		return fmt.Errorf("%w: provider %q", domain.ErrAlreadyExists, id)
	}
	r.ids = append(r.ids, id)
	r.providers[id] = p
	return nil
}

// Get returns the provider registered under id.
func (r *ProviderRegistry) Get(id string) (driven.Provider, error) {
	p, ok := r.providers[id]
	if !ok {
		return nil, fmt.Errorf("%w: provider %q", domain.ErrNotFound, id)
	}
	return p, nil
}

// IDs returns all registered provider IDs in registration order.
func (r *ProviderRegistry) IDs() []string {
	out := make([]string, len(r.ids))
	copy(out, r.ids)
	return out
}

// List returns all registered providers in registration order.
func (r *ProviderRegistry) List() []driven.Provider {
	out := make([]driven.Provider, 0, len(r.ids))
	for _, id := range r.ids {
		out = append(out, r.providers[id])
	}
	return out
}
