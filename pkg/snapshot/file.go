package snapshot

import (
	"bytes"
	"context"
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/klauspost/compress/gzip"
	"github.com/spf13/afero"

	"github.com/dmitrymomot/jarkit/pkg/jar"
)

// fileMagic identifies a jarkit snapshot file; the byte after it records
// how the payload is wrapped.
var fileMagic = []byte("CJS1")

const (
	flagGzip byte = 1 << iota
	flagEncrypted
)

// FileStore persists snapshots as framed CBOR files on an afero filesystem.
type FileStore struct {
	fs       afero.Fs
	perm     os.FileMode
	compress bool
	key      []byte
}

var _ jar.SnapshotStore = (*FileStore)(nil)

type FileOption func(*FileStore)

// WithFs redirects file access, e.g. to afero.NewMemMapFs in tests. The
// default is the OS filesystem.
func WithFs(fsys afero.Fs) FileOption {
	return func(s *FileStore) {
		if fsys != nil {
			s.fs = fsys
		}
	}
}

// WithFileMode sets the permission bits for created snapshot files. The
// default is 0600; snapshots hold live cookie values.
func WithFileMode(perm os.FileMode) FileOption {
	return func(s *FileStore) {
		s.perm = perm
	}
}

// WithCompression enables gzip compression of the payload.
func WithCompression() FileOption {
	return func(s *FileStore) {
		s.compress = true
	}
}

// WithEncryptionKey enables AES-GCM encryption of the payload at rest. The
// key must be 16, 24 or 32 bytes.
func WithEncryptionKey(key []byte) FileOption {
	return func(s *FileStore) {
		s.key = key
	}
}

// NewFileStore creates a file-backed snapshot store.
func NewFileStore(opts ...FileOption) (*FileStore, error) {
	s := &FileStore{
		fs:   afero.NewOsFs(),
		perm: 0o600,
	}
	for _, opt := range opts {
		opt(s)
	}

	switch len(s.key) {
	case 0, 16, 24, 32:
	default:
		return nil, fmt.Errorf("%w: %d bytes", ErrInvalidKeySize, len(s.key))
	}

	return s, nil
}

// Save writes snap to path, creating or truncating the file. With
// overwrite disabled an existing file fails with ErrAlreadyExists.
func (s *FileStore) Save(ctx context.Context, path string, snap jar.Snapshot, overwrite bool) error {
	if !overwrite {
		exists, err := afero.Exists(s.fs, path)
		if err != nil {
			return err
		}
		if exists {
			return fmt.Errorf("%w: %s", ErrAlreadyExists, path)
		}
	}

	payload, err := encode(snap)
	if err != nil {
		return err
	}

	var flags byte
	if s.compress {
		flags |= flagGzip
		payload, err = gzipCompress(payload)
		if err != nil {
			return err
		}
	}
	if len(s.key) > 0 {
		flags |= flagEncrypted
		payload, err = encrypt(payload, s.key)
		if err != nil {
			return err
		}
	}

	buf := make([]byte, 0, len(fileMagic)+1+len(payload))
	buf = append(buf, fileMagic...)
	buf = append(buf, flags)
	buf = append(buf, payload...)

	return afero.WriteFile(s.fs, path, buf, s.perm)
}

// Load reads the snapshot at path. A missing file fails with ErrNotFound;
// anything that cannot be unframed, decrypted, decompressed or decoded
// fails with ErrCorrupt.
func (s *FileStore) Load(ctx context.Context, path string) (jar.Snapshot, error) {
	data, err := afero.ReadFile(s.fs, path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return jar.Snapshot{}, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return jar.Snapshot{}, err
	}

	if len(data) < len(fileMagic)+1 || !bytes.Equal(data[:len(fileMagic)], fileMagic) {
		return jar.Snapshot{}, fmt.Errorf("%w: bad file header", ErrCorrupt)
	}
	flags := data[len(fileMagic)]
	payload := data[len(fileMagic)+1:]

	if flags&flagEncrypted != 0 {
		if len(s.key) == 0 {
			return jar.Snapshot{}, fmt.Errorf("%w: %s", ErrKeyRequired, path)
		}
		payload, err = decrypt(payload, s.key)
		if err != nil {
			return jar.Snapshot{}, fmt.Errorf("%w: %v", ErrCorrupt, err)
		}
	}
	if flags&flagGzip != 0 {
		payload, err = gzipDecompress(payload)
		if err != nil {
			return jar.Snapshot{}, fmt.Errorf("%w: %v", ErrCorrupt, err)
		}
	}

	return decode(payload)
}

func gzipCompress(payload []byte) ([]byte, error) {
	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	if _, err := zw.Write(payload); err != nil {
		return nil, err
	}
	if err := zw.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func gzipDecompress(payload []byte) ([]byte, error) {
	zr, err := gzip.NewReader(bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	defer zr.Close()
	return io.ReadAll(zr)
}

// encrypt seals payload with AES-GCM, prepending the random nonce so the
// output is self-contained.
func encrypt(payload, key []byte) ([]byte, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}

	nonce := make([]byte, gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, err
	}

	return gcm.Seal(nonce, nonce, payload, nil), nil
}

func decrypt(payload, key []byte) ([]byte, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}

	if len(payload) < gcm.NonceSize() {
		return nil, errors.New("ciphertext too short")
	}
	nonce, data := payload[:gcm.NonceSize()], payload[gcm.NonceSize():]

	return gcm.Open(nil, nonce, data, nil)
}
