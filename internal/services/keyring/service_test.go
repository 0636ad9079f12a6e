package keyring_test

import (
	"encoding/json"
	"errors"
	"testing"

	"meshkeys/internal/domain"
	"meshkeys/internal/materials"
	"meshkeys/internal/services/keyring"
	"meshkeys/internal/store"
)

const testPassphrase = "Horse-Battery-Staple-99!"

// memStore keeps the serialized aggregate in memory, round-tripping
// through JSON like the file store does.
type memStore struct {
	blob []byte
}

func (s *memStore) Save(_ string, m *materials.SecurityMaterials) error {
	b, err := json.Marshal(m)
	if err != nil {
		return err
	}
	s.blob = b
	return nil
}

func (s *memStore) Load(_ string) (*materials.SecurityMaterials, error) {
	if s.blob == nil {
		return nil, store.ErrNoMaterials
	}
	var m materials.SecurityMaterials
	if err := json.Unmarshal(s.blob, &m); err != nil {
		return nil, err
	}
	return &m, nil
}

func newService(t *testing.T) *keyring.Service {
	t.Helper()
	svc := keyring.New(&memStore{})
	if _, err := svc.Create(testPassphrase); err != nil {
		t.Fatalf("Create: %v", err)
	}
	return svc
}

func rawKey(fill byte) []byte {
	b := make([]byte, domain.KeyBytes)
	for i := range b {
		b[i] = fill
	}
	return b
}

func TestCreateRejectsWeakPassphrase(t *testing.T) {
	svc := keyring.New(&memStore{})
	if _, err := svc.Create("short"); !errors.Is(err, keyring.ErrWeakPassphrase) {
		t.Fatalf("Create(weak): err = %v, want ErrWeakPassphrase", err)
	}
}

func TestAddNetKeyReportsReplacement(t *testing.T) {
	svc := newService(t)

	replaced, err := svc.AddNetKey(testPassphrase, 1, rawKey(0x01))
	if err != nil {
		t.Fatalf("AddNetKey: %v", err)
	}
	if replaced {
		t.Fatal("fresh insertion reported a replacement")
	}
	replaced, err = svc.AddNetKey(testPassphrase, 1, rawKey(0x02))
	if err != nil {
		t.Fatalf("AddNetKey (overwrite): %v", err)
	}
	if !replaced {
		t.Fatal("overwrite not reported as a replacement")
	}
}

func TestAddNetKeyValidatesLength(t *testing.T) {
	svc := newService(t)
	if _, err := svc.AddNetKey(testPassphrase, 1, []byte{0x01, 0x02}); !errors.Is(err, keyring.ErrBadKeyLength) {
		t.Fatalf("short key: err = %v, want ErrBadKeyLength", err)
	}
}

func TestRefreshHappyPath(t *testing.T) {
	svc := newService(t)
	if _, err := svc.AddNetKey(testPassphrase, 3, rawKey(0x0a)); err != nil {
		t.Fatalf("AddNetKey: %v", err)
	}

	if err := svc.BeginRefresh(testPassphrase, 3, rawKey(0x0b)); err != nil {
		t.Fatalf("BeginRefresh: %v", err)
	}
	m, err := svc.Load(testPassphrase)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	phase := m.NetKeys.Get(3)
	if phase.Phase() != domain.Phase1 {
		t.Fatalf("after begin: phase = %v, want phase1", phase.Phase())
	}
	oldKey := domain.MustNetKey(rawKey(0x0a))
	if phase.TxKey().NetKey != oldKey {
		t.Fatal("phase1 must keep transmitting with the old key")
	}

	if err := svc.CommitRefresh(testPassphrase, 3); err != nil {
		t.Fatalf("CommitRefresh: %v", err)
	}
	m, _ = svc.Load(testPassphrase)
	phase = m.NetKeys.Get(3)
	newKey := domain.MustNetKey(rawKey(0x0b))
	if phase.Phase() != domain.Phase2 || phase.TxKey().NetKey != newKey {
		t.Fatal("phase2 must transmit with the new key")
	}

	if err := svc.FinalizeRefresh(testPassphrase, 3); err != nil {
		t.Fatalf("FinalizeRefresh: %v", err)
	}
	m, _ = svc.Load(testPassphrase)
	phase = m.NetKeys.Get(3)
	if phase.Phase() != domain.PhaseNormal || phase.TxKey().NetKey != newKey {
		t.Fatal("finalize must leave only the new key")
	}
	if _, ok := phase.Pair(); ok {
		t.Fatal("finalized slot still reports an old/new pair")
	}
}

func TestRefreshRevert(t *testing.T) {
	svc := newService(t)
	svc.AddNetKey(testPassphrase, 0, rawKey(0x0a))
	if err := svc.BeginRefresh(testPassphrase, 0, rawKey(0x0b)); err != nil {
		t.Fatalf("BeginRefresh: %v", err)
	}

	if err := svc.RevertRefresh(testPassphrase, 0); err != nil {
		t.Fatalf("RevertRefresh: %v", err)
	}
	m, _ := svc.Load(testPassphrase)
	phase := m.NetKeys.Get(0)
	if phase.Phase() != domain.PhaseNormal || phase.TxKey().NetKey != domain.MustNetKey(rawKey(0x0a)) {
		t.Fatal("revert must restore the old key alone")
	}
}

func TestRefreshStepOrdering(t *testing.T) {
	svc := newService(t)
	svc.AddNetKey(testPassphrase, 5, rawKey(0x0a))

	if err := svc.CommitRefresh(testPassphrase, 5); !errors.Is(err, keyring.ErrNotRefreshing) {
		t.Fatalf("commit from normal: err = %v, want ErrNotRefreshing", err)
	}
	if err := svc.BeginRefresh(testPassphrase, 5, rawKey(0x0b)); err != nil {
		t.Fatalf("BeginRefresh: %v", err)
	}
	if err := svc.BeginRefresh(testPassphrase, 5, rawKey(0x0c)); !errors.Is(err, keyring.ErrAlreadyRefreshing) {
		t.Fatalf("begin twice: err = %v, want ErrAlreadyRefreshing", err)
	}
	if err := svc.FinalizeRefresh(testPassphrase, 5); !errors.Is(err, keyring.ErrWrongPhase) {
		t.Fatalf("finalize from phase1: err = %v, want ErrWrongPhase", err)
	}
	if err := svc.BeginRefresh(testPassphrase, 9, rawKey(0x0d)); !errors.Is(err, keyring.ErrNoSuchKey) {
		t.Fatalf("refresh on empty slot: err = %v, want ErrNoSuchKey", err)
	}
}
