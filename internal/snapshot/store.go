package snapshot

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/zarlcorp/core/pkg/zfilesystem"
	"github.com/zarlcorp/core/pkg/zstore"
)

const (
	// Key is the record the snapshot is stored under.
	Key = "credupiData"

	collectionName = "snapshots"
)

// envelope keeps the snapshot as raw JSON inside the collection so it can be
// validated before it is parsed.
type envelope struct {
	Data json.RawMessage `json:"data"`
}

// Store reads and writes the single persisted snapshot.
type Store struct {
	col *zstore.Collection[envelope]
}

// NewStore binds a snapshot store to an open zstore.
func NewStore(s *zstore.Store) (*Store, error) {
	col, err := zstore.NewCollection[envelope](s, collectionName)
	if err != nil {
		return nil, fmt.Errorf("snapshot collection: %w", err)
	}
	return &Store{col: col}, nil
}

// Open opens the encrypted store in dir, creating it on first use, and binds
// a snapshot store to it. The caller closes the returned zstore.
func Open(dir, password string) (*zstore.Store, *Store, error) {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, nil, fmt.Errorf("create data dir: %w", err)
	}

	fsys := zfilesystem.NewOSFileSystem(dir)
	zs, err := zstore.Open(fsys, []byte(password))
	if err != nil {
		return nil, nil, err
	}

	st, err := NewStore(zs)
	if err != nil {
		zs.Close()
		return nil, nil, err
	}

	return zs, st, nil
}

// Load returns the saved snapshot, or an empty one when nothing usable is
// stored.
func (s *Store) Load() Snapshot {
	snap, err := s.LoadStrict()
	if err != nil {
		return Snapshot{}
	}
	return snap
}

// LoadStrict is Load with the reason for an empty result: ErrNotFound or
// ErrCorrupt.
func (s *Store) LoadStrict() (Snapshot, error) {
	env, err := s.col.Get(Key)
	if errors.Is(err, zstore.ErrNotFound) {
		return Snapshot{}, ErrNotFound
	}
	if err != nil {
		return Snapshot{}, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	return Decode(env.Data)
}

// Save replaces the stored snapshot. Saving an empty snapshot clears it.
func (s *Store) Save(snap Snapshot) error {
	if snap.Empty() {
		return s.Clear()
	}

	data, err := Encode(snap)
	if err != nil {
		return fmt.Errorf("save snapshot: %w", err)
	}

	if err := s.col.Put(Key, envelope{Data: data}); err != nil {
		return fmt.Errorf("save snapshot: %w", err)
	}
	return nil
}

// Clear removes the stored snapshot, readable or not. Clearing an absent
// snapshot is a no-op.
func (s *Store) Clear() error {
	err := s.col.Delete(Key)
	if errors.Is(err, zstore.ErrNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("clear snapshot: %w", err)
	}
	return nil
}
