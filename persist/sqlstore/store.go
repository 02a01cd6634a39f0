// Package sqlstore persists board state in Postgres via sqlx. It is the
// adapter for deployments whose booking system of record is relational:
// items load from the bookings table, assignments write back to it, and
// lock/binding records live in a dedicated board_locks table.
//
// The bookings and resources tables belong to the booking system; this
// package only reads them and updates bookings.resource_id. The
// board_locks table belongs to boardkit; see Schema for its DDL. A
// deployment that never ran the migration still works: lock writes report
// types.ErrLockStoreMissing and the board keeps lock state local.
package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/cruisedesk/boardkit/types"
)

// Schema is the DDL for the table this package owns. Run it once per
// deployment (or ship it through the migration tool of the host app).
const Schema = `
CREATE TABLE IF NOT EXISTS board_locks (
    company_id     TEXT NOT NULL,
    resource_id    TEXT NOT NULL,
    date           DATE NOT NULL,
    locked         BOOLEAN NOT NULL DEFAULT FALSE,
    program_key    TEXT NOT NULL DEFAULT '',
    guide_id       TEXT NOT NULL DEFAULT '',
    restaurant_id  TEXT NOT NULL DEFAULT '',
    PRIMARY KEY (company_id, resource_id, date)
);
`

// Config adjusts the load-time exclusion rules.
type Config struct {
	// ExcludeSelfArranged drops bookings flagged as self-arranged (no
	// pickup needed). Driver-style deployments set this; boat-style
	// deployments keep such bookings on the board.
	ExcludeSelfArranged bool
}

// Store implements types.Loader and types.Saver over Postgres.
type Store struct {
	db  *sqlx.DB
	cfg Config
}

var (
	_ types.Loader = (*Store)(nil)
	_ types.Saver  = (*Store)(nil)
)

// New wraps an established sqlx connection.
func New(db *sqlx.DB, cfg Config) *Store {
	return &Store{db: db, cfg: cfg}
}

type itemRow struct {
	ID         string         `db:"id"`
	Adults     int            `db:"adults"`
	Children   int            `db:"children"`
	Infants    int            `db:"infants"`
	ResourceID sql.NullString `db:"resource_id"`
	GroupKey   sql.NullString `db:"group_key"`
	ProgramKey sql.NullString `db:"program_key"`
}

type resourceRow struct {
	ID       string `db:"id"`
	Name     string `db:"name"`
	Capacity int    `db:"capacity"`
	Kind     string `db:"kind"`
}

type lockRow struct {
	ResourceID   string `db:"resource_id"`
	Date         string `db:"date"`
	Locked       bool   `db:"locked"`
	ProgramKey   string `db:"program_key"`
	GuideID      string `db:"guide_id"`
	RestaurantID string `db:"restaurant_id"`
}

// LoadBoard implements types.Loader.
//
// Voided and cancelled bookings never load. A missing board_locks table is
// not an error: the board simply starts with no lock records and later
// save attempts trigger the local-only degrade.
func (s *Store) LoadBoard(ctx context.Context, companyID, date string) (*types.BoardData, error) {
	items, err := s.loadItems(ctx, companyID, date)
	if err != nil {
		return nil, err
	}

	resources, err := s.MasterResources(ctx, companyID)
	if err != nil {
		return nil, err
	}

	locks, err := s.loadLocks(ctx, companyID, date)
	if err != nil {
		if !types.IsLockStoreMissingError(err) {
			return nil, err
		}
		locks = nil
	}

	return &types.BoardData{Items: items, Resources: resources, Locks: locks}, nil
}

func (s *Store) loadItems(ctx context.Context, companyID, date string) ([]types.Item, error) {
	query := `
		SELECT id, adults, children, infants, resource_id, group_key, program_key
		FROM bookings
		WHERE company_id = $1
		  AND activity_date = $2
		  AND status NOT IN ('voided', 'cancelled')`
	if s.cfg.ExcludeSelfArranged {
		query += `
		  AND NOT self_arranged`
	}
	query += `
		ORDER BY created_at, id`

	var rows []itemRow
	if err := s.db.SelectContext(ctx, &rows, query, companyID, date); err != nil {
		return nil, fmt.Errorf("load bookings %s/%s: %w", companyID, date, err)
	}

	items := make([]types.Item, 0, len(rows))
	for _, row := range rows {
		items = append(items, types.Item{
			ID: row.ID,
			Guests: types.GuestCount{
				Adults:   row.Adults,
				Children: row.Children,
				Infants:  row.Infants,
			},
			Committed:  types.ResourceID(row.ResourceID.String),
			GroupKey:   row.GroupKey.String,
			ProgramKey: row.ProgramKey.String,
		})
	}

	return items, nil
}

// MasterResources implements types.Loader.
func (s *Store) MasterResources(ctx context.Context, companyID string) ([]types.Resource, error) {
	const query = `
		SELECT id, name, capacity, kind
		FROM resources
		WHERE company_id = $1 AND NOT retired
		ORDER BY sort_order, id`

	var rows []resourceRow
	if err := s.db.SelectContext(ctx, &rows, query, companyID); err != nil {
		return nil, fmt.Errorf("load resources %s: %w", companyID, err)
	}

	resources := make([]types.Resource, 0, len(rows))
	for _, row := range rows {
		resources = append(resources, types.Resource{
			ID:       types.ResourceID(row.ID),
			Name:     row.Name,
			Capacity: row.Capacity,
			Kind:     kindFromString(row.Kind),
		})
	}

	return resources, nil
}

func (s *Store) loadLocks(ctx context.Context, companyID, date string) ([]types.LockRecord, error) {
	const query = `
		SELECT resource_id, to_char(date, 'YYYY-MM-DD') AS date, locked, program_key, guide_id, restaurant_id
		FROM board_locks
		WHERE company_id = $1 AND date = $2`

	var rows []lockRow
	if err := s.db.SelectContext(ctx, &rows, query, companyID, date); err != nil {
		return nil, classify(fmt.Errorf("load locks %s/%s: %w", companyID, date, err))
	}

	locks := make([]types.LockRecord, 0, len(rows))
	for _, row := range rows {
		locks = append(locks, types.LockRecord{
			ResourceID:     types.ResourceID(row.ResourceID),
			Date:           row.Date,
			Locked:         row.Locked,
			ProgramBinding: row.ProgramKey,
			Bindings: types.SecondaryBindings{
				GuideID:      row.GuideID,
				RestaurantID: row.RestaurantID,
			},
		})
	}

	return locks, nil
}

// SaveAssignment implements types.Saver. An Unassigned target nulls the
// booking's resource column. A booking that no longer exists is not an
// error: the batch has upsert semantics and the next load drops the item.
func (s *Store) SaveAssignment(ctx context.Context, companyID, date, itemID string, target types.ResourceID) error {
	const query = `
		UPDATE bookings
		SET resource_id = $1
		WHERE company_id = $2 AND activity_date = $3 AND id = $4`

	var resource any
	if target != types.Unassigned {
		resource = string(target)
	}

	if _, err := s.db.ExecContext(ctx, query, resource, companyID, date, itemID); err != nil {
		return fmt.Errorf("save assignment %s: %w", itemID, err)
	}

	return nil
}

// SaveLock implements types.Saver. A zero record deletes the row; an
// undefined board_locks table maps to types.ErrLockStoreMissing.
func (s *Store) SaveLock(ctx context.Context, companyID string, rec types.LockRecord) error {
	if rec.IsZero() {
		const query = `
			DELETE FROM board_locks
			WHERE company_id = $1 AND resource_id = $2 AND date = $3`

		if _, err := s.db.ExecContext(ctx, query, companyID, string(rec.ResourceID), rec.Date); err != nil {
			return classify(fmt.Errorf("delete lock %s: %w", rec.ResourceID, err))
		}

		return nil
	}

	const query = `
		INSERT INTO board_locks (company_id, resource_id, date, locked, program_key, guide_id, restaurant_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (company_id, resource_id, date) DO UPDATE
		SET locked = EXCLUDED.locked,
		    program_key = EXCLUDED.program_key,
		    guide_id = EXCLUDED.guide_id,
		    restaurant_id = EXCLUDED.restaurant_id`

	_, err := s.db.ExecContext(ctx, query,
		companyID,
		string(rec.ResourceID),
		rec.Date,
		rec.Locked,
		rec.ProgramBinding,
		rec.Bindings.GuideID,
		rec.Bindings.RestaurantID,
	)
	if err != nil {
		return classify(fmt.Errorf("save lock %s: %w", rec.ResourceID, err))
	}

	return nil
}

func kindFromString(kind string) types.ResourceKind {
	if kind == "boat" {
		return types.KindBoat
	}

	return types.KindDriver
}

// classify maps the Postgres undefined-table condition (42P01) on
// board_locks to the sentinel the core degrades on.
func classify(err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == "42P01" {
		return fmt.Errorf("%w: %w", types.ErrLockStoreMissing, err)
	}

	return err
}
