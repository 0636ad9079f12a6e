package store

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sync"

	"meshkeys/internal/materials"
)

const materialsFile = "materials.enc"

var (
	// ErrWrongPassphrase is returned when the passphrase is incorrect or
	// the stored blob has been modified or corrupted.
	ErrWrongPassphrase = errors.New("wrong passphrase or corrupted materials")

	// ErrNoMaterials is returned when the device has no stored materials.
	ErrNoMaterials = errors.New("no stored security materials")
)

// FileStore persists a device's entire SecurityMaterials aggregate in one
// passphrase-encrypted file, so the node can restart without being
// re-provisioned.
type FileStore struct {
	dir string
	mu  sync.Mutex
}

// NewFileStore returns a store rooted at dir.
func NewFileStore(dir string) *FileStore { return &FileStore{dir: dir} }

// Save serializes m field-for-field and writes it encrypted under the
// passphrase, atomically replacing any previous state.
func (s *FileStore) Save(passphrase string, m *materials.SecurityMaterials) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, err := json.Marshal(m)
	if err != nil {
		return err
	}
	N, r, p := scryptParamsDefault()
	blob, err := seal(passphrase, raw, N, r, p)
	if err != nil {
		return err
	}
	return writeFile(filepath.Join(s.dir, materialsFile), blob, 0o600)
}

// Load decrypts and restores the stored aggregate. A device that was never
// initialized reports ErrNoMaterials.
func (s *FileStore) Load(passphrase string) (*materials.SecurityMaterials, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	blob, err := os.ReadFile(filepath.Join(s.dir, materialsFile))
	if errors.Is(err, os.ErrNotExist) {
		return nil, ErrNoMaterials
	}
	if err != nil {
		return nil, err
	}
	raw, err := open(passphrase, blob)
	if err != nil {
		return nil, err
	}
	var m materials.SecurityMaterials
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, err
	}
	return &m, nil
}

// writeFile writes bytes via a temp file, then atomically replaces the
// target.
func writeFile(path string, b []byte, mode os.FileMode) error {
	f, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".tmp-*")
	if err != nil {
		return err
	}
	tmp := f.Name()

	// Best-effort cleanup if anything fails before rename.
	defer func() { _ = os.Remove(tmp) }()

	if _, err := f.Write(b); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Chmod(mode); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}
