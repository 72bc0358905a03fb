package ports

import "time"

// Snapshot is one archived observation of the status document: the parsed
// document plus the consumer-local capture time. Archived snapshots are
// consumer-owned derived data; the producer never reads them.
type Snapshot struct {
	CapturedAt time.Time `json:"captured_at"`
	Doc        Document  `json:"doc"`
}

// Archive persists observed status snapshots to durable storage so behavior
// can be compared across producer restarts and reloads. The backing store
// (bbolt) is data-dir-scoped: each data directory gets its own namespace.
//
// Crash safety: Append must be transactional. A crash mid-write must not
// corrupt previously committed snapshots.
type Archive interface {
	// Append stores one snapshot under the given namespace, assigning it
	// the next sequence number.
	Append(namespace string, snap Snapshot) error

	// Recent returns up to n snapshots in reverse chronological order
	// (newest first). Returns nil, nil when the namespace is empty.
	Recent(namespace string, n int) ([]Snapshot, error)

	// Wipe removes all snapshots for a namespace. Idempotent.
	Wipe(namespace string) error
}
