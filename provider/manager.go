/*
manager.go - Provider registry and fan-out queries

PURPOSE:

	Collaborators register providers under an optional alias. A provider
	registered without an alias is referenced by its registration
	position instead; aliases and positions share one reference
	namespace, and registration order is preserved for fan-out.

QUERY SEMANTICS:

	FindEvents asks every provider in registration order and concatenates
	the results. A failing provider aborts the query with an error naming
	the provider's reference.
*/
package provider

import (
	"context"
	"fmt"
	"strconv"

	"github.com/meridian/calendar-engine/calendar"
)

// Manager holds registered providers and fans event queries out to them.
type Manager struct {
	providers []registration
	byRef     map[string]int
}

type registration struct {
	ref      string
	provider Provider
}

// NewManager creates an empty manager.
func NewManager() *Manager {
	return &Manager{byRef: make(map[string]int)}
}

// Register adds a provider. When alias is empty the provider is referenced
// by its registration position (as a decimal string) instead. A duplicate
// reference overwrites the earlier lookup entry but both providers keep
// their fan-out slots.
func (m *Manager) Register(p Provider, alias string) {
	ref := alias
	if ref == "" {
		ref = strconv.Itoa(len(m.providers))
	}
	m.byRef[ref] = len(m.providers)
	m.providers = append(m.providers, registration{ref: ref, provider: p})
}

// Lookup resolves a provider by alias or, for unaliased providers, by
// registration position.
func (m *Manager) Lookup(ref string) (Provider, bool) {
	i, ok := m.byRef[ref]
	if !ok {
		return nil, false
	}
	return m.providers[i].provider, true
}

// Len returns the number of registered providers.
func (m *Manager) Len() int {
	return len(m.providers)
}

// FindEvents queries every provider in registration order and merges the
// results. The first provider error aborts the query.
func (m *Manager) FindEvents(ctx context.Context, p calendar.Period) ([]calendar.Event, error) {
	var merged []calendar.Event
	for _, reg := range m.providers {
		events, err := reg.provider.FindEvents(ctx, p)
		if err != nil {
			return nil, fmt.Errorf("provider %s: %w", reg.ref, err)
		}
		merged = append(merged, events...)
	}
	return merged, nil
}
