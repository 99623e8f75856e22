// Package backup keeps snapshots of game files in a local pebble database so
// an edit can be undone.
//
// Each snapshot is stored under "snap/<ksuid>" as a checksummed envelope,
// optionally zstd compressed. The store is synchronous and not safe for use
// by more than one process at a time.
package backup

import (
	"bytes"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/cockroachdb/pebble"
	"github.com/klauspost/compress/zstd"
	"github.com/segmentio/ksuid"

	"github.com/ssargent/savekit/pkg/savefile"
)

// ErrNotFound is returned for an unknown snapshot ID.
var ErrNotFound = errors.New("backup: snapshot not found")

var keyPrefix = []byte("snap/")

// Options configures a Store.
type Options struct {
	// Compress stores new snapshots zstd compressed. Reading handles both
	// forms regardless of this setting.
	Compress bool
}

// Snapshot describes one stored file.
type Snapshot struct {
	ID         ksuid.KSUID
	Kind       savefile.Kind
	Name       string
	Time       time.Time
	Size       int
	Compressed bool
}

// Store is a snapshot database.
type Store struct {
	db   *pebble.DB
	opts Options
	enc  *zstd.Encoder
	dec  *zstd.Decoder
	last int64
	now  func() time.Time
}

// Open opens or creates the store in dir.
func Open(dir string, opts Options) (*Store, error) {
	db, err := pebble.Open(dir, &pebble.Options{})
	if err != nil {
		return nil, fmt.Errorf("failed to open backup store: %w", err)
	}

	enc, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedBetterCompression))
	if err != nil {
		db.Close()
		return nil, err
	}
	dec, err := zstd.NewReader(nil)
	if err != nil {
		enc.Close()
		db.Close()
		return nil, err
	}

	return &Store{db: db, opts: opts, enc: enc, dec: dec, now: time.Now}, nil
}

// Close releases the database.
func (s *Store) Close() error {
	s.dec.Close()
	if err := s.enc.Close(); err != nil {
		s.db.Close()
		return err
	}
	return s.db.Close()
}

func snapshotKey(id ksuid.KSUID) []byte {
	return append(bytes.Clone(keyPrefix), id.String()...)
}

// stamp returns a strictly increasing timestamp so List order is stable for
// snapshots taken within one clock tick.
func (s *Store) stamp() time.Time {
	t := s.now()
	if n := t.UnixNano(); n <= s.last {
		t = time.Unix(0, s.last+1)
	}
	s.last = t.UnixNano()
	return t
}

// Put stores data as a new snapshot and returns its ID.
func (s *Store) Put(kind savefile.Kind, name string, data []byte) (ksuid.KSUID, error) {
	t := s.stamp()
	id, err := ksuid.NewRandomWithTime(t)
	if err != nil {
		return ksuid.Nil, err
	}

	e := &envelope{Name: name, Payload: data}
	e.Kind = uint8(kind)
	e.Size = uint32(len(data))
	e.Timestamp = uint64(t.UnixNano())
	if s.opts.Compress {
		e.Flags |= flagZstd
		e.Payload = s.enc.EncodeAll(data, nil)
	}

	rec, err := e.encode()
	if err != nil {
		return ksuid.Nil, err
	}
	if err := s.db.Set(snapshotKey(id), rec, pebble.Sync); err != nil {
		return ksuid.Nil, fmt.Errorf("failed to store snapshot: %w", err)
	}
	return id, nil
}

func (s *Store) load(id ksuid.KSUID) (*envelope, error) {
	data, closer, err := s.db.Get(snapshotKey(id))
	if errors.Is(err, pebble.ErrNotFound) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err != nil {
		return nil, err
	}
	defer closer.Close()

	return decodeEnvelope(bytes.Clone(data))
}

// Get returns a snapshot and its original bytes.
func (s *Store) Get(id ksuid.KSUID) (Snapshot, []byte, error) {
	e, err := s.load(id)
	if err != nil {
		return Snapshot{}, nil, err
	}

	data := e.Payload
	if e.Flags&flagZstd != 0 {
		data, err = s.dec.DecodeAll(e.Payload, nil)
		if err != nil {
			return Snapshot{}, nil, fmt.Errorf("%w: %v", ErrCorruption, err)
		}
	}
	if len(data) != int(e.Size) {
		return Snapshot{}, nil, fmt.Errorf("%w: size %d, expected %d", ErrCorruption, len(data), e.Size)
	}
	return snapshotOf(id, e), data, nil
}

func snapshotOf(id ksuid.KSUID, e *envelope) Snapshot {
	return Snapshot{
		ID:         id,
		Kind:       e.kind(),
		Name:       e.Name,
		Time:       e.created(),
		Size:       int(e.Size),
		Compressed: e.Flags&flagZstd != 0,
	}
}

// List returns every snapshot, newest first.
func (s *Store) List() ([]Snapshot, error) {
	iter, err := s.db.NewIter(&pebble.IterOptions{
		LowerBound: keyPrefix,
		UpperBound: []byte("snap0"),
	})
	if err != nil {
		return nil, err
	}
	defer iter.Close()

	var out []Snapshot
	for iter.First(); iter.Valid(); iter.Next() {
		id, err := ksuid.Parse(string(iter.Key()[len(keyPrefix):]))
		if err != nil {
			return nil, fmt.Errorf("%w: bad key %q", ErrCorruption, iter.Key())
		}
		e, err := decodeEnvelope(bytes.Clone(iter.Value()))
		if err != nil {
			return nil, fmt.Errorf("snapshot %s: %w", id, err)
		}
		out = append(out, snapshotOf(id, e))
	}
	if err := iter.Error(); err != nil {
		return nil, err
	}

	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].Time.Equal(out[j].Time) {
			return out[i].Time.After(out[j].Time)
		}
		return ksuid.Compare(out[i].ID, out[j].ID) > 0
	})
	return out, nil
}

// Prune deletes all but the newest keep snapshots and returns how many were
// removed.
func (s *Store) Prune(keep int) (int, error) {
	if keep < 0 {
		return 0, fmt.Errorf("keep must not be negative: %d", keep)
	}
	all, err := s.List()
	if err != nil {
		return 0, err
	}
	if len(all) <= keep {
		return 0, nil
	}

	batch := s.db.NewBatch()
	defer batch.Close()
	for _, snap := range all[keep:] {
		if err := batch.Delete(snapshotKey(snap.ID), nil); err != nil {
			return 0, err
		}
	}
	if err := batch.Commit(pebble.Sync); err != nil {
		return 0, fmt.Errorf("failed to prune snapshots: %w", err)
	}
	return len(all) - keep, nil
}

// Latest returns the newest snapshot with the given name.
func (s *Store) Latest(name string) (Snapshot, error) {
	all, err := s.List()
	if err != nil {
		return Snapshot{}, err
	}
	for _, snap := range all {
		if snap.Name == name {
			return snap, nil
		}
	}
	return Snapshot{}, fmt.Errorf("%w: no snapshot of %s", ErrNotFound, name)
}
