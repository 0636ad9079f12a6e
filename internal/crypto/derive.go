package crypto

import (
	"crypto/aes"

	"github.com/aead/cmac"

	"meshkeys/internal/domain"
)

// Salt labels and info strings fixed by the mesh security model.
var (
	saltSMK2 = S1([]byte("smk2"))
	saltSMK3 = S1([]byte("smk3"))
	saltNKIK = S1([]byte("nkik"))
	saltNKBK = S1([]byte("nkbk"))
	saltSMK4 = S1([]byte("smk4"))

	infoID128 = []byte("id128\x01")
	infoID64  = []byte("id64\x01")
	infoID6   = []byte("id6\x01")
)

// aesCMAC computes AES-128-CMAC of msg under key.
func aesCMAC(key, msg []byte) [16]byte {
	block, err := aes.NewCipher(key)
	if err != nil {
		// Only reachable with a wrong-length key, a programmer error.
		panic(err)
	}
	sum, err := cmac.Sum(msg, block, aes.BlockSize)
	if err != nil {
		panic(err)
	}
	var out [16]byte
	copy(out[:], sum)
	return out
}

// S1 is the salt-generation function: AES-CMAC of m under the zero key.
func S1(m []byte) [16]byte {
	var zero [16]byte
	return aesCMAC(zero[:], m)
}

// K1 derives a sub-key from key material n, a salt, and an info string p.
func K1(n, salt, p []byte) [16]byte {
	t := aesCMAC(salt, n)
	return aesCMAC(t[:], p)
}

// K2 is the network-key material derivation. It maps a NetKey and a provider
// string p (0x00 for the master credentials) to the 7-bit NID plus the
// encryption and privacy keys: the low 263 bits of T1 || T2 || T3.
func K2(n domain.NetKey, p []byte) (domain.NID, domain.EncryptionKey, domain.PrivacyKey) {
	t := aesCMAC(saltSMK2[:], n.Slice())

	t1 := aesCMAC(t[:], append(append([]byte{}, p...), 0x01))
	t2 := aesCMAC(t[:], append(append(append([]byte{}, t1[:]...), p...), 0x02))
	t3 := aesCMAC(t[:], append(append(append([]byte{}, t2[:]...), p...), 0x03))

	nid := domain.NID(t1[15] & 0x7f)
	return nid, domain.EncryptionKey(t2), domain.PrivacyKey(t3)
}

// K3 derives the public 64-bit NetworkID from a NetKey.
func K3(n domain.NetKey) domain.NetworkID {
	t := aesCMAC(saltSMK3[:], n.Slice())
	out := aesCMAC(t[:], infoID64)
	var id domain.NetworkID
	copy(id[:], out[8:])
	return id
}

// K4 derives the 6-bit AID from an AppKey.
func K4(a domain.AppKey) domain.AID {
	t := aesCMAC(saltSMK4[:], a.Slice())
	out := aesCMAC(t[:], infoID6)
	return domain.AID(out[15] & 0x3f)
}

// IdentityKey derives the node-identity key from a NetKey.
func IdentityKey(n domain.NetKey) domain.IdentityKey {
	return domain.IdentityKey(K1(n.Slice(), saltNKIK[:], infoID128))
}

// BeaconKey derives the secure-beacon key from a NetKey.
func BeaconKey(n domain.NetKey) domain.BeaconKey {
	return domain.BeaconKey(K1(n.Slice(), saltNKBK[:], infoID128))
}
