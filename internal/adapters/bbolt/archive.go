// Package bbolt implements the ports.Archive interface using bbolt
// (embedded B+ tree). Each data directory gets its own top-level bucket
// keyed by its absolute path; snapshots live under sequence-numbered keys.
// Writes are transactional — a crash mid-write cannot corrupt previously
// committed snapshots.
package bbolt

import (
	"encoding/binary"
	"encoding/json"
	"fmt"
	"time"

	"github.com/marten/simbridge/internal/ports"
	bolt "go.etcd.io/bbolt"
)

var bucketSnapshots = []byte("snapshots")

// Archive implements ports.Archive backed by bbolt.
type Archive struct {
	db *bolt.DB
}

// NewArchive opens (or creates) a bbolt database at the given path.
func NewArchive(path string) (*Archive, error) {
	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("bbolt open: %w", err)
	}
	return &Archive{db: db}, nil
}

// Close closes the underlying bbolt database.
func (a *Archive) Close() error {
	return a.db.Close()
}

// seqKey encodes a bucket sequence number as a big-endian key so that
// cursor order equals append order.
func seqKey(n uint64) []byte {
	var k [8]byte
	binary.BigEndian.PutUint64(k[:], n)
	return k[:]
}

// Append stores one snapshot under the namespace's next sequence number.
func (a *Archive) Append(namespace string, snap ports.Snapshot) error {
	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}

	return a.db.Update(func(tx *bolt.Tx) error {
		ns, err := tx.CreateBucketIfNotExists([]byte(namespace))
		if err != nil {
			return err
		}
		sb, err := ns.CreateBucketIfNotExists(bucketSnapshots)
		if err != nil {
			return err
		}
		seq, err := sb.NextSequence()
		if err != nil {
			return err
		}
		return sb.Put(seqKey(seq), data)
	})
}

// Recent returns up to n snapshots, newest first.
// Returns nil, nil when the namespace holds nothing.
func (a *Archive) Recent(namespace string, n int) ([]ports.Snapshot, error) {
	if n <= 0 {
		return nil, nil
	}

	var raw [][]byte
	err := a.db.View(func(tx *bolt.Tx) error {
		ns := tx.Bucket([]byte(namespace))
		if ns == nil {
			return nil
		}
		sb := ns.Bucket(bucketSnapshots)
		if sb == nil {
			return nil
		}
		c := sb.Cursor()
		for k, v := c.Last(); k != nil && len(raw) < n; k, v = c.Prev() {
			// Copy bytes out of the transaction (bbolt slices are only
			// valid within tx)
			buf := make([]byte, len(v))
			copy(buf, v)
			raw = append(raw, buf)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if len(raw) == 0 {
		return nil, nil
	}

	out := make([]ports.Snapshot, 0, len(raw))
	for _, data := range raw {
		var snap ports.Snapshot
		if err := json.Unmarshal(data, &snap); err != nil {
			return nil, fmt.Errorf("unmarshal snapshot: %w", err)
		}
		out = append(out, snap)
	}
	return out, nil
}

// Wipe removes all snapshots for a namespace. Idempotent.
func (a *Archive) Wipe(namespace string) error {
	return a.db.Update(func(tx *bolt.Tx) error {
		if err := tx.DeleteBucket([]byte(namespace)); err == bolt.ErrBucketNotFound {
			return nil // idempotent
		} else {
			return err
		}
	})
}
