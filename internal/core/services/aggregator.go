package services

import (
	"context"
	"fmt"

	"github.com/custodia-labs/jobradar-cli/internal/core/domain"
	"github.com/custodia-labs/jobradar-cli/internal/core/ports/driven"
	"github.com/custodia-labs/jobradar-cli/internal/core/ports/driving"
	"github.com/custodia-labs/jobradar-cli/internal/logger"
)

// Ensure Aggregator implements the interface.
var _ driving.SearchService = (*Aggregator)(nil)

// Aggregator runs one role against all enabled providers and locations,
// deduplicating results by link. A failing provider contributes zero
// results; it never fails the overall call.
type Aggregator struct {
	registry *ProviderRegistry
	settings map[string]domain.ProviderSettings
}

// NewAggregator creates an aggregator over the given registry and
// per-provider settings.
func NewAggregator(registry *ProviderRegistry, settings map[string]domain.ProviderSettings) *Aggregator {
	return &Aggregator{
		registry: registry,
		settings: settings,
	}
}

// Search queries every enabled provider for the role in every location.
// The outer loop is over locations, the inner over providers in
// registration order; the first occurrence of a link wins and later
// duplicates are dropped, even when they come from a different provider or
// location.
func (a *Aggregator) Search(
	ctx context.Context,
	role string,
	locations []string,
	filters domain.SearchFilters,
) ([]domain.Posting, error) {
	enabled, err := a.enabledProviders()
	if err != nil {
		return nil, err
	}

	var aggregated []domain.Posting
	seen := make(map[string]struct{})

	for _, location := range locations {
		for _, ep := range enabled {
			results, err := ep.provider.Search(ctx, role, location, ep.settings.Limit, filters)
			if err != nil {
				logger.Warn("provider %s failed: %v", ep.provider.ID(), err)
				continue
			}

			for _, item := range results {
				if item.Link == "" {
					continue
				}
				if _, dup := seen[item.Link]; dup {
					continue
				}
				seen[item.Link] = struct{}{}
				aggregated = append(aggregated, a.fillDefaults(item, ep, location))
			}
		}
	}

	logger.Info("aggregated %d postings for role %q", len(aggregated), role)
	return aggregated, nil
}

type enabledProvider struct {
	provider driven.Provider
	settings domain.ProviderSettings
}

// enabledProviders resolves the enabled provider set in registration order
// and validates required settings before any network call is made.
func (a *Aggregator) enabledProviders() ([]enabledProvider, error) {
	// An enabled settings entry that names no registered provider is a
	// configuration error, not a skippable warning.
	for id, cfg := range a.settings {
		if !cfg.Enabled {
			continue
		}
		if _, err := a.registry.Get(id); err != nil {
			return nil, fmt.Errorf("%w: provider %q is enabled but not registered", domain.ErrInvalidConfig, id)
		}
		if cfg.Limit <= 0 {
			return nil, fmt.Errorf("%w: provider %q missing required result limit", domain.ErrInvalidConfig, id)
		}
	}

	var enabled []enabledProvider
	for _, p := range a.registry.List() {
		cfg, ok := a.settings[p.ID()]
		if !ok || !cfg.Enabled {
			continue
		}
		enabled = append(enabled, enabledProvider{provider: p, settings: cfg})
	}
	return enabled, nil
}

// fillDefaults stamps source, provider, and search location onto a posting
// when the provider did not supply them. Provider-supplied location
// metadata is never overwritten.
func (a *Aggregator) fillDefaults(item domain.Posting, ep enabledProvider, location string) domain.Posting {
	if item.Source == "" {
		if ep.settings.Label != "" {
			item.Source = ep.settings.Label
		} else {
			item.Source = ep.provider.Label()
		}
	}
	if item.Provider == "" {
		item.Provider = ep.provider.ID()
	}
	if item.Metadata == nil {
		item.Metadata = make(map[string]string)
	}
	if _, ok := item.Metadata["location"]; !ok {
		item.Metadata["location"] = location
	}
	return item
}
