package project

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
)

// Digest is a fixed 256-bit fingerprint of a Description.
type Digest [32]byte

func (d Digest) String() string {
	return hex.EncodeToString(d[:])
}

// Digest fingerprints every field that influences a resolution. Strings are
// length-prefixed so that {"ab","c"} and {"a","bc"} never collide.
func (d Description) Digest() Digest {
	h := sha256.New()
	var buf [8]byte
	writeString := func(s string) {
		binary.LittleEndian.PutUint64(buf[:], uint64(len(s)))
		_, _ = h.Write(buf[:])
		_, _ = h.Write([]byte(s))
	}
	writeList := func(list []string) {
		if list == nil {
			// absent and empty lists hash differently
			binary.LittleEndian.PutUint64(buf[:], ^uint64(0))
			_, _ = h.Write(buf[:])
			return
		}
		binary.LittleEndian.PutUint64(buf[:], uint64(len(list)))
		_, _ = h.Write(buf[:])
		for _, s := range list {
			writeString(s)
		}
	}
	writeString(d.ConfigName)
	_, _ = h.Write([]byte{byte(d.Kind)})
	writeList(d.Targets)
	writeList(d.CompilerOptions)
	writeString(d.AdditionalOptions)
	writeList(d.Files)

	var out Digest
	copy(out[:], h.Sum(nil))
	return out
}

// Combine derives a key from a digest and extra context such as the
// framework path. Order of parts matters.
func Combine(base Digest, parts ...string) Digest {
	h := sha256.New()
	_, _ = h.Write(base[:])
	var buf [8]byte
	for _, p := range parts {
		binary.LittleEndian.PutUint64(buf[:], uint64(len(p)))
		_, _ = h.Write(buf[:])
		_, _ = h.Write([]byte(p))
	}
	var out Digest
	copy(out[:], h.Sum(nil))
	return out
}
