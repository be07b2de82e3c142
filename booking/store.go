/*
store.go - Persistence interface for reservations and facility settings

PURPOSE:
  Defines the interface between the scheduling engine and the shared
  reservation store. The engine itself is pure; every calculation runs
  over a snapshot fetched through this interface, and the snapshot may
  already be stale by the time a write is issued.

SNAPSHOT CONTRACT:
  List returns the full unordered reservation set. There is no
  cross-request lock: callers re-fetch and re-validate availability
  immediately before committing a status change or a new reservation
  (read-then-validate-then-write). The store is expected to serialize
  concurrent writes on its own.

IMPLEMENTATIONS:
  - store/sqlite/sqlite.go: SQLite-backed production store
  - booking/store/memory.go: In-memory store for tests and dev

SEE ALSO:
  - kennel/service.go: The workflow layer driving this interface
*/
package booking

import "context"

// Store persists reservations. List is a snapshot read; Upsert covers
// both create and full-record update.
type Store interface {
	// List returns every reservation, in no particular order.
	List(ctx context.Context) ([]Reservation, error)

	// Get returns one reservation, or ErrNotFound.
	Get(ctx context.Context, id string) (*Reservation, error)

	// Upsert inserts or replaces a reservation by id.
	Upsert(ctx context.Context, r Reservation) error

	// Delete removes a reservation record. The engine itself never
	// deletes; this exists for the external workflow.
	Delete(ctx context.Context, id string) error
}

// SettingsStore persists the facility configuration. Capacity and rates
// are still passed explicitly into every calculation; this only answers
// "what is the configuration right now".
type SettingsStore interface {
	Facility(ctx context.Context) (Facility, error)
	SaveFacility(ctx context.Context, f Facility) error
}
