package materials

import (
	"encoding/json"
	"maps"
	"slices"

	"meshkeys/internal/domain"
)

// AppKeyMap is the ordered repository of application security materials,
// keyed by the provisioner-assigned application-key index. Application
// keys carry no phase wrapper: a replacement key overwrites its slot
// atomically rather than rotating through a dual-key window.
type AppKeyMap struct {
	m map[domain.AppKeyIndex]*ApplicationSecurityMaterials
}

// NewAppKeyMap returns an empty repository.
func NewAppKeyMap() *AppKeyMap {
	return &AppKeyMap{m: make(map[domain.AppKeyIndex]*ApplicationSecurityMaterials)}
}

// Insert derives the AID for key, binds it to netKeyIndex and stores it at
// appKeyIndex. If the index was occupied the displaced value is returned,
// otherwise nil; overwriting is not an error.
func (m *AppKeyMap) Insert(netKeyIndex domain.NetKeyIndex, appKeyIndex domain.AppKeyIndex, key domain.AppKey) *ApplicationSecurityMaterials {
	prev := m.m[appKeyIndex]
	sm := NewApplicationSecurityMaterials(key, netKeyIndex)
	m.m[appKeyIndex] = &sm
	return prev
}

// Get returns the materials stored at index for reading or in-place
// mutation, or nil.
func (m *AppKeyMap) Get(index domain.AppKeyIndex) *ApplicationSecurityMaterials {
	return m.m[index]
}

// Remove deletes the slot at index, returning the removed value or nil.
// Removing an absent index leaves the repository unchanged.
func (m *AppKeyMap) Remove(index domain.AppKeyIndex) *ApplicationSecurityMaterials {
	prev := m.m[index]
	delete(m.m, index)
	return prev
}

// Len reports the number of stored slots.
func (m *AppKeyMap) Len() int { return len(m.m) }

// Indices returns the stored indexes in ascending order.
func (m *AppKeyMap) Indices() []domain.AppKeyIndex {
	return slices.Sorted(maps.Keys(m.m))
}

// AppKeyCandidate pairs a slot index with its decrypt candidate.
type AppKeyCandidate struct {
	Index     domain.AppKeyIndex
	Materials ApplicationSecurityMaterials
}

// MatchingAID returns every stored slot whose derived AID equals aid, each
// exactly once, in ascending index order. AID is only 6 bits, so multiple
// unrelated application keys may legitimately share one; as with NID
// matching, only the caller's authenticated decrypt confirms a candidate,
// and an empty result is a normal outcome.
func (m *AppKeyMap) MatchingAID(aid domain.AID) []AppKeyCandidate {
	var out []AppKeyCandidate
	for _, index := range m.Indices() {
		if sm := m.m[index]; sm.AID == aid {
			out = append(out, AppKeyCandidate{Index: index, Materials: *sm})
		}
	}
	return out
}

// MarshalJSON serializes the repository keyed by decimal index.
func (m *AppKeyMap) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.m)
}

// UnmarshalJSON restores the repository written by MarshalJSON.
func (m *AppKeyMap) UnmarshalJSON(b []byte) error {
	m.m = make(map[domain.AppKeyIndex]*ApplicationSecurityMaterials)
	return json.Unmarshal(b, &m.m)
}
