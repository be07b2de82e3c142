/*
Package sqlite provides a SQLite-backed implementation of the storage interfaces.

PURPOSE:
  Implements booking.Store and booking.SettingsStore using SQLite. In
  production the same patterns apply to PostgreSQL - only minor SQL
  dialect differences.

KEY TABLES:
  reservations:  One row per reservation; expenses, tags and checklist
                 are stored as JSON columns (they have no relational
                 queries against them)
  facility:      Single-row table holding max capacity and the rate card

CONCURRENCY:
  Uses sync.RWMutex for thread-safety on top of SQLite's own locking.
  SQLite is opened in WAL mode so readers do not block the writer. The
  engine treats every read as a snapshot that may be stale by write
  time; the service layer re-validates before each write.

USAGE:
  store, err := sqlite.New("./data/kennel.db")
  if err != nil {
      log.Fatal(err)
  }
  defer store.Close()

MIGRATION:
  Schema is auto-migrated on New(). For production, use a proper
  migration tool (golang-migrate, goose) with versioned migrations.

SEE ALSO:
  - booking/store.go: Interface definitions
  - booking/store/memory.go: In-memory implementation for testing
*/
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/shopspring/decimal"
	"github.com/warp/kennel-engine/booking"
)

// Store implements the storage interfaces using SQLite.
type Store struct {
	db *sql.DB
	mu sync.RWMutex
}

// New creates a new SQLite store with the given database path.
// Use ":memory:" for an in-memory database.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return store, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// migrate creates the database schema.
func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS reservations (
		id TEXT PRIMARY KEY,
		pet_name TEXT NOT NULL,
		breed TEXT,
		size TEXT NOT NULL,
		check_in TEXT NOT NULL,
		check_out TEXT NOT NULL,
		price_per_day TEXT NOT NULL,
		expenses_json TEXT,
		vet_fee TEXT NOT NULL DEFAULT '0',
		grooming_fee TEXT NOT NULL DEFAULT '0',
		status TEXT NOT NULL,
		created_at TEXT NOT NULL,
		tags_json TEXT,
		checklist_json TEXT
	);

	-- Occupancy is rebuilt from full snapshots, but the range scan and
	-- status filter benefit from these on larger datasets.
	CREATE INDEX IF NOT EXISTS idx_reservations_status
		ON reservations(status);
	CREATE INDEX IF NOT EXISTS idx_reservations_dates
		ON reservations(check_in, check_out);

	CREATE TABLE IF NOT EXISTS facility (
		id INTEGER PRIMARY KEY CHECK (id = 1),
		max_capacity INTEGER NOT NULL,
		rates_json TEXT NOT NULL,
		updated_at TEXT NOT NULL
	);
	`

	if _, err := s.db.Exec(schema); err != nil {
		return err
	}

	// Seed the facility row so first boot has a working configuration.
	seed := booking.DefaultFacility(10)
	ratesJSON, err := json.Marshal(seed.Rates)
	if err != nil {
		return err
	}
	_, err = s.db.Exec(`
		INSERT INTO facility (id, max_capacity, rates_json, updated_at)
		VALUES (1, ?, ?, ?)
		ON CONFLICT(id) DO NOTHING`,
		seed.MaxCapacity, string(ratesJSON), time.Now().UTC().Format(time.RFC3339))
	return err
}

// =============================================================================
// RESERVATIONS
// =============================================================================

const reservationColumns = `id, pet_name, breed, size, check_in, check_out,
	price_per_day, expenses_json, vet_fee, grooming_fee, status, created_at,
	tags_json, checklist_json`

func (s *Store) List(ctx context.Context) ([]booking.Reservation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, `SELECT `+reservationColumns+` FROM reservations`)
	if err != nil {
		return nil, fmt.Errorf("list reservations: %w", err)
	}
	defer rows.Close()

	var out []booking.Reservation
	for rows.Next() {
		r, err := scanReservation(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *r)
	}
	return out, rows.Err()
}

func (s *Store) Get(ctx context.Context, id string) (*booking.Reservation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRowContext(ctx,
		`SELECT `+reservationColumns+` FROM reservations WHERE id = ?`, id)
	r, err := scanReservation(row)
	if err == sql.ErrNoRows {
		return nil, booking.ErrNotFound
	}
	return r, err
}

func (s *Store) Upsert(ctx context.Context, r booking.Reservation) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	expensesJSON, err := json.Marshal(r.Expenses)
	if err != nil {
		return fmt.Errorf("encode expenses: %w", err)
	}
	tagsJSON, err := json.Marshal(r.Tags)
	if err != nil {
		return fmt.Errorf("encode tags: %w", err)
	}
	checklistJSON, err := json.Marshal(r.Checklist)
	if err != nil {
		return fmt.Errorf("encode checklist: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO reservations (`+reservationColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			pet_name = excluded.pet_name,
			breed = excluded.breed,
			size = excluded.size,
			check_in = excluded.check_in,
			check_out = excluded.check_out,
			price_per_day = excluded.price_per_day,
			expenses_json = excluded.expenses_json,
			vet_fee = excluded.vet_fee,
			grooming_fee = excluded.grooming_fee,
			status = excluded.status,
			tags_json = excluded.tags_json,
			checklist_json = excluded.checklist_json`,
		r.ID, r.PetName, r.Breed, string(r.Size),
		r.CheckIn.String(), r.CheckOut.String(),
		r.PricePerDay.String(), string(expensesJSON),
		r.VetFee.String(), r.GroomingFee.String(),
		string(r.Status), r.CreatedAt.UTC().Format(time.RFC3339Nano),
		string(tagsJSON), string(checklistJSON))
	if err != nil {
		return fmt.Errorf("upsert reservation: %w", err)
	}
	return nil
}

func (s *Store) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.ExecContext(ctx, `DELETE FROM reservations WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete reservation: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return booking.ErrNotFound
	}
	return nil
}

// scanner covers both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanReservation(row scanner) (*booking.Reservation, error) {
	var (
		r                                 booking.Reservation
		size, checkIn, checkOut           string
		pricePerDay, vetFee, groomingFee  string
		status, createdAt                 string
		expensesJSON, tagsJSON, checklist sql.NullString
	)

	err := row.Scan(&r.ID, &r.PetName, &r.Breed, &size, &checkIn, &checkOut,
		&pricePerDay, &expensesJSON, &vetFee, &groomingFee, &status, &createdAt,
		&tagsJSON, &checklist)
	if err != nil {
		return nil, err
	}

	r.Size = booking.SizeClass(size)
	r.Status = booking.Status(status)

	if r.CheckIn, err = booking.ParseDate(checkIn); err != nil {
		return nil, fmt.Errorf("reservation %s: bad check_in %q", r.ID, checkIn)
	}
	if r.CheckOut, err = booking.ParseDate(checkOut); err != nil {
		return nil, fmt.Errorf("reservation %s: bad check_out %q", r.ID, checkOut)
	}
	if r.PricePerDay, err = decimal.NewFromString(pricePerDay); err != nil {
		return nil, fmt.Errorf("reservation %s: bad price_per_day %q", r.ID, pricePerDay)
	}
	if r.VetFee, err = decimal.NewFromString(vetFee); err != nil {
		return nil, fmt.Errorf("reservation %s: bad vet_fee %q", r.ID, vetFee)
	}
	if r.GroomingFee, err = decimal.NewFromString(groomingFee); err != nil {
		return nil, fmt.Errorf("reservation %s: bad grooming_fee %q", r.ID, groomingFee)
	}
	if r.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt); err != nil {
		return nil, fmt.Errorf("reservation %s: bad created_at %q", r.ID, createdAt)
	}

	if expensesJSON.Valid && expensesJSON.String != "" {
		if err := json.Unmarshal([]byte(expensesJSON.String), &r.Expenses); err != nil {
			return nil, fmt.Errorf("reservation %s: bad expenses_json: %w", r.ID, err)
		}
	}
	if tagsJSON.Valid && tagsJSON.String != "" {
		if err := json.Unmarshal([]byte(tagsJSON.String), &r.Tags); err != nil {
			return nil, fmt.Errorf("reservation %s: bad tags_json: %w", r.ID, err)
		}
	}
	if checklist.Valid && checklist.String != "" {
		if err := json.Unmarshal([]byte(checklist.String), &r.Checklist); err != nil {
			return nil, fmt.Errorf("reservation %s: bad checklist_json: %w", r.ID, err)
		}
	}

	return &r, nil
}

// =============================================================================
// FACILITY SETTINGS
// =============================================================================

func (s *Store) Facility(ctx context.Context) (booking.Facility, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var (
		f         booking.Facility
		ratesJSON string
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT max_capacity, rates_json FROM facility WHERE id = 1`).
		Scan(&f.MaxCapacity, &ratesJSON)
	if err != nil {
		return booking.Facility{}, fmt.Errorf("load facility: %w", err)
	}
	if err := json.Unmarshal([]byte(ratesJSON), &f.Rates); err != nil {
		return booking.Facility{}, fmt.Errorf("bad rates_json: %w", err)
	}
	return f, nil
}

func (s *Store) SaveFacility(ctx context.Context, f booking.Facility) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	ratesJSON, err := json.Marshal(f.Rates)
	if err != nil {
		return fmt.Errorf("encode rates: %w", err)
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO facility (id, max_capacity, rates_json, updated_at)
		VALUES (1, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			max_capacity = excluded.max_capacity,
			rates_json = excluded.rates_json,
			updated_at = excluded.updated_at`,
		f.MaxCapacity, string(ratesJSON), time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("save facility: %w", err)
	}
	return nil
}

// Compile-time interface checks.
var (
	_ booking.Store         = (*Store)(nil)
	_ booking.SettingsStore = (*Store)(nil)
)
