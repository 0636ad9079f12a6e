package keyring

import (
	"crypto/rand"
	"errors"
	"fmt"
	"unicode"

	"meshkeys/internal/domain"
	"meshkeys/internal/materials"
	"meshkeys/internal/util/memzero"
)

const (
	// minPassphraseLength defines the minimum number of characters required
	// for the passphrase protecting the stored materials.
	minPassphraseLength = 12
)

var (
	// ErrWeakPassphrase is returned when the passphrase fails the strength policy.
	ErrWeakPassphrase = fmt.Errorf(
		"passphrase is too weak (must be at least %d characters and include upper, lower, "+
			"number, and symbol)",
		minPassphraseLength,
	)

	// ErrBadKeyLength is returned when raw key material is not 16 bytes.
	ErrBadKeyLength = fmt.Errorf("key material must be %d bytes", domain.KeyBytes)

	// ErrNoSuchKey is returned when an index has no stored key.
	ErrNoSuchKey = errors.New("no key stored at that index")

	// ErrAlreadyRefreshing is returned when a refresh is begun on a slot
	// that already holds an old/new pair.
	ErrAlreadyRefreshing = errors.New("key refresh already in progress for that index")

	// ErrNotRefreshing is returned when a refresh step is applied to a slot
	// in the normal phase.
	ErrNotRefreshing = errors.New("no key refresh in progress for that index")

	// ErrWrongPhase is returned when a refresh step does not follow the
	// phase1 -> phase2 -> normal order.
	ErrWrongPhase = errors.New("refresh step out of order")
)

// MaterialsStore persists the device's aggregate across restarts.
type MaterialsStore interface {
	Save(passphrase string, m *materials.SecurityMaterials) error
	Load(passphrase string) (*materials.SecurityMaterials, error)
}

// Service manages the device's security materials through a backing store:
// creation at provisioning time, key distribution and revocation, and the
// local phase bookkeeping of the Key Refresh Procedure. Every mutation is
// load-modify-save, so the store's lock is the single-writer discipline
// the materials layer itself does not provide.
type Service struct {
	store MaterialsStore
}

// New returns a keyring service backed by the given store.
func New(s MaterialsStore) *Service { return &Service{store: s} }

// Create provisions fresh materials: a random device key, IV state at
// zero, both repositories empty. The aggregate is saved encrypted under
// the passphrase, which must satisfy the strength policy.
func (s *Service) Create(passphrase string) (*materials.SecurityMaterials, error) {
	if !isSecurePassphrase(passphrase) {
		return nil, ErrWeakPassphrase
	}
	raw := make([]byte, domain.KeyBytes)
	if _, err := rand.Read(raw); err != nil {
		return nil, err
	}
	m := materials.NewSecurityMaterials(domain.MustDevKey(raw))
	memzero.Zero(raw)

	if err := s.store.Save(passphrase, m); err != nil {
		return nil, err
	}
	return m, nil
}

// Load decrypts and returns the stored aggregate.
func (s *Service) Load(passphrase string) (*materials.SecurityMaterials, error) {
	return s.store.Load(passphrase)
}

// AddNetKey stores a distributed network key at index, deriving its full
// materials bundle. It reports whether an existing key was replaced.
func (s *Service) AddNetKey(passphrase string, index domain.NetKeyIndex, raw []byte) (bool, error) {
	if len(raw) != domain.KeyBytes {
		return false, ErrBadKeyLength
	}
	m, err := s.store.Load(passphrase)
	if err != nil {
		return false, err
	}
	prev := m.NetKeys.Insert(index, domain.MustNetKey(raw))
	memzero.Zero(raw)
	return prev != nil, s.store.Save(passphrase, m)
}

// RemoveNetKey revokes the network key at index. Removing an absent index
// is not an error; the return reports whether anything was removed.
func (s *Service) RemoveNetKey(passphrase string, index domain.NetKeyIndex) (bool, error) {
	m, err := s.store.Load(passphrase)
	if err != nil {
		return false, err
	}
	removed := m.NetKeys.Remove(index)
	return removed != nil, s.store.Save(passphrase, m)
}

// AddAppKey stores a distributed application key at appIndex, bound to the
// network-key slot netIndex. It reports whether an existing key was
// replaced; replacement is atomic, with no dual-key window.
func (s *Service) AddAppKey(passphrase string, netIndex domain.NetKeyIndex, appIndex domain.AppKeyIndex, raw []byte) (bool, error) {
	if len(raw) != domain.KeyBytes {
		return false, ErrBadKeyLength
	}
	m, err := s.store.Load(passphrase)
	if err != nil {
		return false, err
	}
	prev := m.AppKeys.Insert(netIndex, appIndex, domain.MustAppKey(raw))
	memzero.Zero(raw)
	return prev != nil, s.store.Save(passphrase, m)
}

// RemoveAppKey revokes the application key at index.
func (s *Service) RemoveAppKey(passphrase string, index domain.AppKeyIndex) (bool, error) {
	m, err := s.store.Load(passphrase)
	if err != nil {
		return false, err
	}
	removed := m.AppKeys.Remove(index)
	return removed != nil, s.store.Save(passphrase, m)
}

// BeginRefresh moves the slot at index from normal into phase1, deriving
// materials for the distributed replacement key. The old key keeps
// transmitting; both keys now decrypt.
func (s *Service) BeginRefresh(passphrase string, index domain.NetKeyIndex, rawNew []byte) error {
	if len(rawNew) != domain.KeyBytes {
		return ErrBadKeyLength
	}
	m, err := s.store.Load(passphrase)
	if err != nil {
		return err
	}
	phase := m.NetKeys.Get(index)
	if phase == nil {
		return ErrNoSuchKey
	}
	if phase.Phase() != domain.PhaseNormal {
		return ErrAlreadyRefreshing
	}
	old := phase.TxKey()
	next := materials.NewNetworkSecurityMaterials(domain.MustNetKey(rawNew))
	memzero.Zero(rawNew)
	m.NetKeys.Put(index, materials.Phase1(old, next))
	return s.store.Save(passphrase, m)
}

// CommitRefresh moves a phase1 slot to phase2 once the new key has
// propagated: transmission switches to the new key.
func (s *Service) CommitRefresh(passphrase string, index domain.NetKeyIndex) error {
	return s.stepRefresh(passphrase, index, domain.Phase1, func(pair materials.KeyPair[materials.NetworkSecurityMaterials]) materials.KeyPhase[materials.NetworkSecurityMaterials] {
		return materials.Phase2(pair.Old, pair.New)
	})
}

// FinalizeRefresh completes the rotation: the phase2 slot returns to
// normal holding only the new key, and the old key is revoked.
func (s *Service) FinalizeRefresh(passphrase string, index domain.NetKeyIndex) error {
	return s.stepRefresh(passphrase, index, domain.Phase2, func(pair materials.KeyPair[materials.NetworkSecurityMaterials]) materials.KeyPhase[materials.NetworkSecurityMaterials] {
		return materials.Normal(pair.New)
	})
}

// RevertRefresh abandons an in-flight rotation from either phase,
// restoring the old key as the only live one.
func (s *Service) RevertRefresh(passphrase string, index domain.NetKeyIndex) error {
	m, err := s.store.Load(passphrase)
	if err != nil {
		return err
	}
	phase := m.NetKeys.Get(index)
	if phase == nil {
		return ErrNoSuchKey
	}
	pair, ok := phase.Pair()
	if !ok {
		return ErrNotRefreshing
	}
	m.NetKeys.Put(index, materials.Normal(pair.Old))
	return s.store.Save(passphrase, m)
}

// stepRefresh applies a forward transition that is only legal from one
// phase.
func (s *Service) stepRefresh(
	passphrase string,
	index domain.NetKeyIndex,
	from domain.KeyRefreshPhase,
	next func(materials.KeyPair[materials.NetworkSecurityMaterials]) materials.KeyPhase[materials.NetworkSecurityMaterials],
) error {
	m, err := s.store.Load(passphrase)
	if err != nil {
		return err
	}
	phase := m.NetKeys.Get(index)
	if phase == nil {
		return ErrNoSuchKey
	}
	pair, ok := phase.Pair()
	if !ok {
		return ErrNotRefreshing
	}
	if phase.Phase() != from {
		return ErrWrongPhase
	}
	m.NetKeys.Put(index, next(pair))
	return s.store.Save(passphrase, m)
}

// isSecurePassphrase enforces a basic strength policy.
func isSecurePassphrase(passphrase string) bool {
	var hasUpper, hasLower, hasDigit, hasSymbol bool
	if len(passphrase) < minPassphraseLength {
		return false
	}
	for _, r := range passphrase {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r):
			hasDigit = true
		case unicode.IsPunct(r), unicode.IsSymbol(r):
			hasSymbol = true
		}
	}
	return hasUpper && hasLower && hasDigit && hasSymbol
}
