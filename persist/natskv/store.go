// Package natskv persists board state in NATS JetStream KeyValue buckets.
//
// Two buckets are used: one mirroring item assignments, one holding
// lock/binding records. Keys are laid out as
//
//	<companyID>.<date>.<itemID>      (assignment bucket)
//	<companyID>.<date>.<resourceID>  (lock bucket)
//
// so one ListKeys filter selects a whole board. Writes are plain upserts;
// clearing an assignment or zeroing a lock record deletes the key, which
// keeps retried batches harmless.
//
// The lock bucket is opened, not created: deployments share it with other
// back-office tools that provision it. When it is absent, SaveLock returns
// an error satisfying types.IsLockStoreMissingError and the board keeps
// lock state local. Set Config.ProvisionLockBucket for standalone
// deployments that own the bucket.
package natskv

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"

	"github.com/cruisedesk/boardkit/internal/kvutil"
	"github.com/cruisedesk/boardkit/internal/natsutil"
	"github.com/cruisedesk/boardkit/types"
)

// Config configures the KV store.
type Config struct {
	// AssignmentBucket is the bucket mirroring item assignments.
	AssignmentBucket string

	// LockBucket is the bucket holding lock/binding records.
	LockBucket string

	// ProvisionLockBucket creates the lock bucket when absent instead of
	// degrading to local-only lock state.
	ProvisionLockBucket bool

	// Replicas for created buckets (default 1).
	Replicas int
}

// Store persists assignments and lock records in JetStream KV. It
// implements types.Saver; pair it with a Loader for the booking system of
// record and use LoadLocks to merge the lock records into its BoardData.
type Store struct {
	assignments jetstream.KeyValue

	// locks is nil when the bucket is not provisioned; every lock write
	// then reports the store as missing.
	locks jetstream.KeyValue
}

var _ types.Saver = (*Store)(nil)

// New connects the store to JetStream, creating the assignment bucket if
// needed and opening the lock bucket.
//
// Parameters:
//   - ctx: Context for bucket setup
//   - nc: Established NATS connection
//   - cfg: Bucket configuration
//
// Returns:
//   - *Store: Ready store; a missing lock bucket is not an error
//   - error: JetStream or bucket-creation failure
func New(ctx context.Context, nc *nats.Conn, cfg Config) (*Store, error) {
	js, err := jetstream.New(nc)
	if err != nil {
		return nil, fmt.Errorf("jetstream context: %w", err)
	}

	replicas := cfg.Replicas
	if replicas <= 0 {
		replicas = 1
	}

	assignments, err := kvutil.EnsureBucket(ctx, js, jetstream.KeyValueConfig{
		Bucket:      cfg.AssignmentBucket,
		Description: "boardkit assignment mirror",
		Replicas:    replicas,
		TTL:         30 * 24 * time.Hour,
	}, 3)
	if err != nil {
		return nil, fmt.Errorf("assignment bucket %s: %w", cfg.AssignmentBucket, err)
	}

	var locks jetstream.KeyValue
	if cfg.ProvisionLockBucket {
		locks, err = kvutil.EnsureBucket(ctx, js, jetstream.KeyValueConfig{
			Bucket:      cfg.LockBucket,
			Description: "boardkit lock records",
			Replicas:    replicas,
		}, 3)
		if err != nil {
			return nil, fmt.Errorf("lock bucket %s: %w", cfg.LockBucket, err)
		}
	} else {
		locks, err = js.KeyValue(ctx, cfg.LockBucket)
		if err != nil {
			if !natsutil.IsBucketMissingError(err) {
				return nil, fmt.Errorf("lock bucket %s: %w", cfg.LockBucket, err)
			}
			locks = nil
		}
	}

	return &Store{assignments: assignments, locks: locks}, nil
}

// boardKey builds the flat KV key for one entry of a board.
func boardKey(companyID, date, id string) string {
	return fmt.Sprintf("%s.%s.%s", companyID, date, id)
}

// SaveAssignment implements types.Saver. An Unassigned target deletes the
// mirror entry.
func (s *Store) SaveAssignment(ctx context.Context, companyID, date, itemID string, target types.ResourceID) error {
	key := boardKey(companyID, date, itemID)

	if target == types.Unassigned {
		err := s.assignments.Delete(ctx, key)
		if err != nil && !errors.Is(err, jetstream.ErrKeyNotFound) {
			return classify(fmt.Errorf("delete assignment %s: %w", key, err))
		}

		return nil
	}

	if _, err := s.assignments.Put(ctx, key, []byte(target)); err != nil {
		return classify(fmt.Errorf("put assignment %s: %w", key, err))
	}

	return nil
}

// SaveLock implements types.Saver. A zero record deletes the entry; a
// missing lock bucket reports types.ErrLockStoreMissing.
func (s *Store) SaveLock(ctx context.Context, companyID string, rec types.LockRecord) error {
	if s.locks == nil {
		return fmt.Errorf("lock bucket not provisioned: %w", types.ErrLockStoreMissing)
	}

	key := boardKey(companyID, rec.Date, string(rec.ResourceID))

	if rec.IsZero() {
		err := s.locks.Delete(ctx, key)
		if err != nil && !errors.Is(err, jetstream.ErrKeyNotFound) {
			return classify(fmt.Errorf("delete lock %s: %w", key, err))
		}

		return nil
	}

	payload, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("marshal lock %s: %w", key, err)
	}

	if _, err := s.locks.Put(ctx, key, payload); err != nil {
		return classify(fmt.Errorf("put lock %s: %w", key, err))
	}

	return nil
}

// LoadAssignments reads the assignment mirror for one board.
//
// Returns:
//   - map[string]types.ResourceID: item id to assigned resource
//   - error: KV failure
func (s *Store) LoadAssignments(ctx context.Context, companyID, date string) (map[string]types.ResourceID, error) {
	prefix := fmt.Sprintf("%s.%s.", companyID, date)

	lister, err := s.assignments.ListKeysFiltered(ctx, prefix+"*")
	if err != nil {
		return nil, classify(fmt.Errorf("list assignments %s: %w", prefix, err))
	}

	out := make(map[string]types.ResourceID)
	for key := range lister.Keys() {
		entry, err := s.assignments.Get(ctx, key)
		if err != nil {
			if errors.Is(err, jetstream.ErrKeyNotFound) {
				continue
			}

			return nil, classify(fmt.Errorf("get assignment %s: %w", key, err))
		}

		out[strings.TrimPrefix(key, prefix)] = types.ResourceID(entry.Value())
	}

	return out, nil
}

// LoadLocks reads every lock record for one board. Compose this with the
// booking-system Loader to populate BoardData.Locks.
//
// Returns:
//   - []types.LockRecord: Stored records, unordered
//   - error: types.ErrLockStoreMissing when the bucket is absent
func (s *Store) LoadLocks(ctx context.Context, companyID, date string) ([]types.LockRecord, error) {
	if s.locks == nil {
		return nil, fmt.Errorf("lock bucket not provisioned: %w", types.ErrLockStoreMissing)
	}

	prefix := fmt.Sprintf("%s.%s.", companyID, date)

	lister, err := s.locks.ListKeysFiltered(ctx, prefix+"*")
	if err != nil {
		return nil, classify(fmt.Errorf("list locks %s: %w", prefix, err))
	}

	var out []types.LockRecord
	for key := range lister.Keys() {
		entry, err := s.locks.Get(ctx, key)
		if err != nil {
			if errors.Is(err, jetstream.ErrKeyNotFound) {
				continue
			}

			return nil, classify(fmt.Errorf("get lock %s: %w", key, err))
		}

		var rec types.LockRecord
		if err := json.Unmarshal(entry.Value(), &rec); err != nil {
			return nil, fmt.Errorf("unmarshal lock %s: %w", key, err)
		}
		out = append(out, rec)
	}

	return out, nil
}

// classify wraps connectivity failures with types.ErrConnectivity so the
// board core can report them without importing NATS.
func classify(err error) error {
	if natsutil.IsConnectivityError(err) && !errors.Is(err, types.ErrConnectivity) {
		return fmt.Errorf("%w: %w", types.ErrConnectivity, err)
	}

	return err
}
