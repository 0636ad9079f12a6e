package materials_test

import (
	"encoding/hex"
	"testing"

	"meshkeys/internal/domain"
	"meshkeys/internal/materials"
)

// sampleNetKey is the mesh-profile sample network key; it derives NID 0x68.
func sampleNetKey(t *testing.T) domain.NetKey {
	t.Helper()
	b, err := hex.DecodeString("7dd7364cd842ad18c17c2b820c84c3d6")
	if err != nil {
		t.Fatalf("hex.DecodeString: %v", err)
	}
	return domain.MustNetKey(b)
}

// fakeNetMaterials fabricates a bundle with a chosen NID. Engineering raw
// key bytes to hit a target NID is infeasible, so collision tests build
// the derived form directly and store it with Put.
func fakeNetMaterials(nid domain.NID, seed byte) materials.NetworkSecurityMaterials {
	var m materials.NetworkSecurityMaterials
	for i := range m.NetKey {
		m.NetKey[i] = seed
	}
	m.NetworkKeys.NID = nid
	m.NetworkKeys.Encryption[0] = seed
	m.NetworkKeys.Privacy[0] = ^seed
	m.NetworkID[0] = seed
	return m
}

func TestInsertDerivesOnceAndWrapsNormal(t *testing.T) {
	m := materials.NewNetKeyMap()

	if prev := m.Insert(4, sampleNetKey(t)); prev != nil {
		t.Fatalf("insert at a free index displaced %v", prev)
	}
	phase := m.Get(4)
	if phase == nil {
		t.Fatal("Get(4) = nil after insert")
	}
	if got := phase.Phase(); got != domain.PhaseNormal {
		t.Fatalf("fresh slot phase = %v, want %v", got, domain.PhaseNormal)
	}
	if got := phase.TxKey().NetworkKeys.NID; got != 0x68 {
		t.Fatalf("sample key NID = %#02x, want 0x68", uint8(got))
	}
}

func TestInsertOverwriteReturnsDisplacedValue(t *testing.T) {
	m := materials.NewNetKeyMap()
	key := sampleNetKey(t)

	m.Insert(9, key)
	prev := m.Insert(9, key)
	if prev == nil {
		t.Fatal("overwriting an occupied index returned nil")
	}
	if prev.TxKey().NetKey != key {
		t.Fatal("displaced value does not hold the original key")
	}
	if m.Len() != 1 {
		t.Fatalf("Len() = %d after overwrite, want 1", m.Len())
	}
}

func TestRemove(t *testing.T) {
	m := materials.NewNetKeyMap()
	m.Insert(2, sampleNetKey(t))

	if got := m.Remove(5); got != nil {
		t.Fatalf("removing a free index returned %v", got)
	}
	if m.Len() != 1 {
		t.Fatalf("removing a free index changed the repository: Len() = %d", m.Len())
	}
	if got := m.Remove(2); got == nil {
		t.Fatal("removing an occupied index returned nil")
	}
	if m.Get(2) != nil || m.Len() != 0 {
		t.Fatal("slot still present after removal")
	}
}

func TestMatchingNIDAcrossSlots(t *testing.T) {
	m := materials.NewNetKeyMap()
	a := fakeNetMaterials(0x05, 0xaa)
	b := fakeNetMaterials(0x05, 0xbb)

	// Ascending order must hold regardless of insertion order.
	m.Put(2, materials.Normal(b))
	m.Put(1, materials.Normal(a))
	m.Put(3, materials.Normal(fakeNetMaterials(0x06, 0xcc)))

	got := m.MatchingNID(0x05)
	if len(got) != 2 {
		t.Fatalf("MatchingNID(0x05) yielded %d candidates, want 2", len(got))
	}
	if got[0].Index != 1 || got[0].Materials != a {
		t.Fatalf("candidate 0 = (%v, %v), want (1, materials A)", got[0].Index, got[0].Materials)
	}
	if got[1].Index != 2 || got[1].Materials != b {
		t.Fatalf("candidate 1 = (%v, %v), want (2, materials B)", got[1].Index, got[1].Materials)
	}
}

func TestMatchingNIDDualPhaseSlotYieldsTwice(t *testing.T) {
	old := fakeNetMaterials(0x11, 0x01)
	new := fakeNetMaterials(0x11, 0x02)

	m := materials.NewNetKeyMap()
	m.Put(7, materials.Phase1(old, new))

	got := m.MatchingNID(0x11)
	if len(got) != 2 {
		t.Fatalf("dual collision yielded %d candidates, want 2", len(got))
	}
	// Adjacent, primary first: Phase1 receives with old as primary.
	if got[0].Index != 7 || got[0].Materials != old {
		t.Fatalf("candidate 0 = (%v, seed %#02x), want (7, old)", got[0].Index, got[0].Materials.NetworkID[0])
	}
	if got[1].Index != 7 || got[1].Materials != new {
		t.Fatalf("candidate 1 = (%v, seed %#02x), want (7, new)", got[1].Index, got[1].Materials.NetworkID[0])
	}

	// Phase2 flips the primary.
	m.Put(7, materials.Phase2(old, new))
	got = m.MatchingNID(0x11)
	if len(got) != 2 || got[0].Materials != new || got[1].Materials != old {
		t.Fatalf("phase2 dual collision order wrong: %v", got)
	}
}

func TestMatchingNIDSecondaryOnly(t *testing.T) {
	old := fakeNetMaterials(0x20, 0x01)
	new := fakeNetMaterials(0x21, 0x02)

	m := materials.NewNetKeyMap()
	m.Put(3, materials.Phase1(old, new))

	got := m.MatchingNID(0x21)
	if len(got) != 1 {
		t.Fatalf("secondary-only collision yielded %d candidates, want 1", len(got))
	}
	if got[0].Index != 3 || got[0].Materials != new {
		t.Fatalf("candidate = (%v, %v), want the new bundle at 3", got[0].Index, got[0].Materials)
	}
}

func TestMatchingNIDExhaustionIsNotAnError(t *testing.T) {
	m := materials.NewNetKeyMap()
	m.Insert(1, sampleNetKey(t))

	if got := m.MatchingNID(0x00); len(got) != 0 {
		t.Fatalf("MatchingNID on a non-colliding value yielded %v", got)
	}
}
