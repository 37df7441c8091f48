package snapshot

import (
	"fmt"
	"time"

	"github.com/fxamacker/cbor/v2"

	"github.com/dmitrymomot/jarkit/pkg/jar"
)

// recordVersion is bumped when the record schema changes incompatibly.
const recordVersion = 1

// record is the on-disk schema: explicit fields only, no language-specific
// object dump, so snapshots stay readable by other implementations.
type record struct {
	Version         int            `cbor:"version"`
	Locked          bool           `cbor:"locked"`
	ExpireBeforeSet bool           `cbor:"expire_before_set"`
	Cookies         []cookieRecord `cbor:"cookies"`
}

type cookieRecord struct {
	Name        string `cbor:"name"`
	Value       string `cbor:"value"`
	Domain      string `cbor:"domain,omitempty"`
	Path        string `cbor:"path,omitempty"`
	ExpiresUnix int64  `cbor:"expires,omitempty"`
	Secure      bool   `cbor:"secure,omitempty"`
	HttpOnly    bool   `cbor:"http_only,omitempty"`
	Expired     bool   `cbor:"expired,omitempty"`
}

func encode(snap jar.Snapshot) ([]byte, error) {
	rec := record{
		Version:         recordVersion,
		Locked:          snap.Locked,
		ExpireBeforeSet: snap.ExpireBeforeSet,
		Cookies:         make([]cookieRecord, len(snap.Cookies)),
	}
	for i, c := range snap.Cookies {
		cr := cookieRecord{
			Name:     c.Name,
			Value:    c.Value,
			Domain:   c.Domain,
			Path:     c.Path,
			Secure:   c.Secure,
			HttpOnly: c.HttpOnly,
			Expired:  c.Expired,
		}
		if !c.Expires.IsZero() {
			cr.ExpiresUnix = c.Expires.Unix()
		}
		rec.Cookies[i] = cr
	}

	data, err := cbor.Marshal(rec)
	if err != nil {
		return nil, fmt.Errorf("encode snapshot: %w", err)
	}

	return data, nil
}

func decode(data []byte) (jar.Snapshot, error) {
	var rec record
	if err := cbor.Unmarshal(data, &rec); err != nil {
		return jar.Snapshot{}, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	if rec.Version != recordVersion {
		return jar.Snapshot{}, fmt.Errorf("%w: unsupported record version %d", ErrCorrupt, rec.Version)
	}

	snap := jar.Snapshot{
		Locked:          rec.Locked,
		ExpireBeforeSet: rec.ExpireBeforeSet,
	}
	if len(rec.Cookies) > 0 {
		snap.Cookies = make([]jar.Cookie, len(rec.Cookies))
	}
	for i, cr := range rec.Cookies {
		c := jar.Cookie{
			Name:     cr.Name,
			Value:    cr.Value,
			Domain:   cr.Domain,
			Path:     cr.Path,
			Secure:   cr.Secure,
			HttpOnly: cr.HttpOnly,
			Expired:  cr.Expired,
		}
		if cr.ExpiresUnix != 0 {
			c.Expires = time.Unix(cr.ExpiresUnix, 0)
		}
		snap.Cookies[i] = c
	}

	return snap, nil
}
