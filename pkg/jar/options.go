package jar

import "log/slog"

type Option func(*Jar)

// WithExpireBeforeSet toggles the replace policy. When disabled, storing a
// cookie no longer expires the existing same-(domain, name) cookie and
// duplicate slots can accumulate.
func WithExpireBeforeSet(enabled bool) Option {
	return func(j *Jar) {
		j.expireBeforeSet = enabled
	}
}

// WithLocked sets the advisory locked flag. The jar does not enforce it;
// response-processing pipelines read it to decide whether to apply
// server-sent cookies at all.
func WithLocked(locked bool) Option {
	return func(j *Jar) {
		j.locked = locked
	}
}

// WithFilter replaces the sanitizer applied to raw Set-Cookie text before
// parsing. A nil filter is ignored.
func WithFilter(f FilterFunc) Option {
	return func(j *Jar) {
		if f != nil {
			j.filter = f
		}
	}
}

// WithSnapshotStore configures the store used by Save and Load.
func WithSnapshotStore(store SnapshotStore) Option {
	return func(j *Jar) {
		j.store = store
	}
}

// WithLogger sets the logger for debug output. Logging is discarded by
// default.
func WithLogger(log *slog.Logger) Option {
	return func(j *Jar) {
		if log != nil {
			j.log = log
		}
	}
}
