// Package store provides Store implementations.
package store

import (
	"context"
	"sync"

	"github.com/warp/kennel-engine/booking"
)

// =============================================================================
// MEMORY STORE - In-memory implementation (for testing/dev)
// =============================================================================

type Memory struct {
	mu           sync.RWMutex
	reservations map[string]booking.Reservation
	facility     booking.Facility
}

func NewMemory(facility booking.Facility) *Memory {
	return &Memory{
		reservations: make(map[string]booking.Reservation),
		facility:     facility,
	}
}

func (m *Memory) List(_ context.Context) ([]booking.Reservation, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]booking.Reservation, 0, len(m.reservations))
	for _, r := range m.reservations {
		out = append(out, r)
	}
	return out, nil
}

func (m *Memory) Get(_ context.Context, id string) (*booking.Reservation, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	r, ok := m.reservations[id]
	if !ok {
		return nil, booking.ErrNotFound
	}
	return &r, nil
}

func (m *Memory) Upsert(_ context.Context, r booking.Reservation) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.reservations[r.ID] = r
	return nil
}

func (m *Memory) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.reservations[id]; !ok {
		return booking.ErrNotFound
	}
	delete(m.reservations, id)
	return nil
}

func (m *Memory) Facility(_ context.Context) (booking.Facility, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.facility, nil
}

func (m *Memory) SaveFacility(_ context.Context, f booking.Facility) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.facility = f
	return nil
}

// Compile-time interface checks.
var (
	_ booking.Store         = (*Memory)(nil)
	_ booking.SettingsStore = (*Memory)(nil)
)
