package store_test

import (
	"errors"
	"testing"

	"meshkeys/internal/domain"
	"meshkeys/internal/materials"
	"meshkeys/internal/store"
)

const testPassphrase = "correct horse battery staple"

func testMaterials() *materials.SecurityMaterials {
	var devKey domain.DevKey
	devKey[15] = 0x42

	m := materials.NewSecurityMaterials(devKey)
	m.IVIndex = 7
	var netKey domain.NetKey
	netKey[0] = 0x01
	m.NetKeys.Insert(0, netKey)
	var appKey domain.AppKey
	appKey[0] = 0x02
	m.AppKeys.Insert(0, 1, appKey)
	return m
}

func TestSaveLoadRoundTrip(t *testing.T) {
	s := store.NewFileStore(t.TempDir())
	in := testMaterials()

	if err := s.Save(testPassphrase, in); err != nil {
		t.Fatalf("Save: %v", err)
	}
	out, err := s.Load(testPassphrase)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if out.DevKey != in.DevKey || out.IVIndex != in.IVIndex {
		t.Fatal("device state changed across save/load")
	}
	if out.NetKeys.Len() != 1 || out.AppKeys.Len() != 1 {
		t.Fatalf("repository sizes changed: %d net, %d app", out.NetKeys.Len(), out.AppKeys.Len())
	}
	if got := out.NetKeys.Get(0); got == nil || got.TxKey() != in.NetKeys.Get(0).TxKey() {
		t.Fatal("network materials changed across save/load")
	}
}

func TestLoadMidRefreshSlot(t *testing.T) {
	s := store.NewFileStore(t.TempDir())
	in := testMaterials()
	pair, _ := in.NetKeys.Get(0).RxKeys()
	var newKey domain.NetKey
	newKey[0] = 0x03
	in.NetKeys.Put(0, materials.Phase2(pair, materials.NewNetworkSecurityMaterials(newKey)))

	if err := s.Save(testPassphrase, in); err != nil {
		t.Fatalf("Save: %v", err)
	}
	out, err := s.Load(testPassphrase)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	phase := out.NetKeys.Get(0)
	if phase == nil || phase.Phase() != domain.Phase2 {
		t.Fatal("phase2 slot did not survive a restart")
	}
	if phase.TxKey().NetKey != newKey {
		t.Fatal("phase2 transmit key changed across save/load")
	}
}

func TestLoadWrongPassphrase(t *testing.T) {
	s := store.NewFileStore(t.TempDir())
	if err := s.Save(testPassphrase, testMaterials()); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if _, err := s.Load("not the passphrase"); !errors.Is(err, store.ErrWrongPassphrase) {
		t.Fatalf("Load with wrong passphrase: err = %v, want ErrWrongPassphrase", err)
	}
}

func TestLoadBeforeInit(t *testing.T) {
	s := store.NewFileStore(t.TempDir())
	if _, err := s.Load(testPassphrase); !errors.Is(err, store.ErrNoMaterials) {
		t.Fatalf("Load on empty dir: err = %v, want ErrNoMaterials", err)
	}
}

func TestSaveOverwritesAtomically(t *testing.T) {
	s := store.NewFileStore(t.TempDir())
	in := testMaterials()
	if err := s.Save(testPassphrase, in); err != nil {
		t.Fatalf("Save: %v", err)
	}

	in.IVIndex = 99
	if err := s.Save(testPassphrase, in); err != nil {
		t.Fatalf("second Save: %v", err)
	}
	out, err := s.Load(testPassphrase)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if out.IVIndex != 99 {
		t.Fatalf("IVIndex = %d after overwrite, want 99", out.IVIndex)
	}
}
