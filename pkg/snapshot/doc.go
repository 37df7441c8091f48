// Package snapshot provides durable jar.SnapshotStore implementations.
//
// # FileStore
//
// FileStore writes snapshots as framed files: a 4-byte magic ("CJS1"), one
// flags byte describing how the payload is wrapped, then the payload — a
// CBOR-encoded record of the jar's flags and cookie list. The record schema
// is explicit and versioned rather than a language-generic object dump, so
// snapshots stay portable across implementations. The payload can
// optionally be gzip-compressed and encrypted at rest with AES-GCM.
//
// File access goes through github.com/spf13/afero, so tests run against an
// in-memory filesystem and callers can redirect storage the same way.
//
//	store, err := snapshot.NewFileStore(
//	    snapshot.WithCompression(),
//	    snapshot.WithEncryptionKey(key), // 16, 24 or 32 bytes
//	)
//
// # RedisStore
//
// RedisStore keeps the same CBOR record as a Redis value keyed by the
// snapshot path under a configurable prefix, with an optional TTL. It
// implements the identical save/load contract, including the overwrite
// guard (SETNX) and the not-found/corrupt error distinction.
//
// # Error Handling
//
// ErrAlreadyExists, ErrNotFound and ErrCorrupt are sentinel errors matching
// the three failure kinds of the persistence contract; use errors.Is.
package snapshot
