package keystore

import (
	"crypto/ed25519"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"kexd/internal/hostkey"
	"kexd/internal/util/memzero"
)

const hostKeyFile = "hostkey.enc"

// FileStore keeps the passphrase-protected host key on disk.
type FileStore struct {
	dir string
	mu  sync.Mutex
}

func NewFileStore(dir string) *FileStore { return &FileStore{dir: dir} }

// SaveHostKey seals the host private key under the passphrase and writes
// it with owner-only permissions.
func (s *FileStore) SaveHostKey(passphrase string, key *hostkey.HostKey) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw := append([]byte(nil), key.Ed25519()...)
	defer memzero.Zero(raw)

	b, err := seal(passphrase, raw, defaultRounds())
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(s.dir, hostKeyFile), b, 0o600)
}

// LoadHostKey decrypts and returns the stored host key.
func (s *FileStore) LoadHostKey(passphrase string) (*hostkey.HostKey, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, err := os.ReadFile(filepath.Join(s.dir, hostKeyFile))
	if err != nil {
		return nil, err
	}
	raw, err := open(passphrase, b)
	if err != nil {
		return nil, err
	}
	defer memzero.Zero(raw)

	if len(raw) != ed25519.PrivateKeySize {
		return nil, fmt.Errorf("keystore: corrupt host key length %d", len(raw))
	}
	return hostkey.FromEd25519(append(ed25519.PrivateKey(nil), raw...))
}

// HasHostKey reports whether a host key has been initialized.
func (s *FileStore) HasHostKey() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := os.Stat(filepath.Join(s.dir, hostKeyFile))
	return err == nil
}
