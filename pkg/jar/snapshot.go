package jar

import "context"

// Snapshot returns a point-in-time copy of the jar's flags and cookies,
// expired ones included, so a restored jar reproduces the full state.
func (j *Jar) Snapshot() Snapshot {
	all := j.set.All()
	cookies := make([]Cookie, len(all))
	for i, c := range all {
		cookies[i] = *c
	}

	return Snapshot{
		Locked:          j.locked,
		ExpireBeforeSet: j.expireBeforeSet,
		Cookies:         cookies,
	}
}

// Save persists the full jar state through the configured snapshot store.
// With overwrite disabled the store refuses to replace an existing
// snapshot.
func (j *Jar) Save(ctx context.Context, path string, overwrite bool) error {
	if j.store == nil {
		return ErrNoSnapshotStore
	}

	return j.store.Save(ctx, path, j.Snapshot(), overwrite)
}

// Load restores a jar previously written by Save into set, which should be
// empty. The snapshot's policy flags override the defaults; opts are
// applied afterwards and may override both. The store is retained for
// subsequent Save calls.
func Load(ctx context.Context, store SnapshotStore, path string, set CookieSet, opts ...Option) (*Jar, error) {
	if store == nil {
		return nil, ErrNoSnapshotStore
	}

	snap, err := store.Load(ctx, path)
	if err != nil {
		return nil, err
	}

	j, err := New(set, WithSnapshotStore(store))
	if err != nil {
		return nil, err
	}
	j.locked = snap.Locked
	j.expireBeforeSet = snap.ExpireBeforeSet
	for _, opt := range opts {
		opt(j)
	}

	cookies := make([]*Cookie, len(snap.Cookies))
	for i := range snap.Cookies {
		c := snap.Cookies[i]
		cookies[i] = &c
	}
	j.set.AddAll(cookies)

	return j, nil
}
