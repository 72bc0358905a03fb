package ports

// DocumentStore reads and writes whole-file JSON documents on the shared
// data directory. It is the only transport between producer and consumer:
// no shared memory, no sockets, no locks.
//
// Consistency is best-effort eventual. Writers overwrite documents
// wholesale to keep the torn-read window small; readers must treat any
// load failure as "no data yet" and retry on the next poll.
type DocumentStore interface {
	// Load reads and parses the document at path.
	// Returns (nil, nil) when the file does not exist. A read or parse
	// failure returns a non-nil error that callers log and otherwise
	// treat exactly like missing data — it is never fatal.
	Load(path string) (Document, error)

	// Save overwrites the document at path in a single whole-file write.
	// Parent directories must already exist.
	Save(path string, doc Document) error
}
