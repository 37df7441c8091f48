package snapshot

import "errors"

var (
	// ErrAlreadyExists is returned by Save when the target exists and overwrite is disabled.
	ErrAlreadyExists = errors.New("snapshot.already_exists")

	// ErrNotFound is returned by Load when no snapshot exists at the given path.
	ErrNotFound = errors.New("snapshot.not_found")

	// ErrCorrupt is returned by Load when the snapshot data cannot be decoded.
	ErrCorrupt = errors.New("snapshot.corrupt")

	// ErrInvalidKeySize is returned when an encryption key is not 16, 24 or 32 bytes.
	ErrInvalidKeySize = errors.New("snapshot.invalid_key_size")

	// ErrKeyRequired is returned by Load when the snapshot is encrypted and no key is configured.
	ErrKeyRequired = errors.New("snapshot.key_required")

	// ErrNoClient is returned when a RedisStore is constructed without a client.
	ErrNoClient = errors.New("snapshot.no_redis_client")
)
