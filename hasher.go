package strintern

import (
	"fmt"
	"hash/maphash"
	"sort"

	"github.com/cespare/xxhash/v2"

	"github.com/hupe1980/strintern/internal/hash"
)

// Hasher computes the hash the interner uses to find strings.
//
// Hash must be deterministic for the lifetime of the instance. The choice of
// hasher affects performance only, never which symbol a string receives.
type Hasher interface {
	Hash(s string) uint64
}

// MapHasher hashes with hash/maphash. It is the default hasher.
type MapHasher struct {
	seed maphash.Seed
}

// NewMapHasher returns a MapHasher with a random seed.
func NewMapHasher() *MapHasher {
	return &MapHasher{seed: maphash.MakeSeed()}
}

// NewSeededMapHasher returns a MapHasher using seed. Two hashers with the
// same seed produce the same hashes within one process.
func NewSeededMapHasher(seed maphash.Seed) *MapHasher {
	return &MapHasher{seed: seed}
}

// Hash implements Hasher.
func (h *MapHasher) Hash(s string) uint64 {
	return maphash.String(h.seed, s)
}

// XXHasher hashes with xxHash64. Its output is stable across processes.
type XXHasher struct{}

// Hash implements Hasher.
func (XXHasher) Hash(s string) uint64 {
	return xxhash.Sum64String(s)
}

// FNVHasher hashes with 64-bit FNV-1a.
type FNVHasher struct{}

const (
	fnvOffset64 = 14695981039346656037
	fnvPrime64  = 1099511628211
)

// Hash implements Hasher.
func (FNVHasher) Hash(s string) uint64 {
	h := uint64(fnvOffset64)
	for i := 0; i < len(s); i++ {
		h ^= uint64(s[i])
		h *= fnvPrime64
	}
	return h
}

// CRC32CHasher hashes with hardware-accelerated CRC32C, widened to 64 bits.
type CRC32CHasher struct{}

// Hash implements Hasher.
func (CRC32CHasher) Hash(s string) uint64 {
	return hash.Mix64(hash.CRC32CString(s))
}

var hasherFactories = map[string]func() Hasher{
	"maphash": func() Hasher { return NewMapHasher() },
	"xxhash":  func() Hasher { return XXHasher{} },
	"fnv":     func() Hasher { return FNVHasher{} },
	"crc32c":  func() Hasher { return CRC32CHasher{} },
}

// HasherByName returns a new hasher for name: "maphash", "xxhash", "fnv"
// or "crc32c".
func HasherByName(name string) (Hasher, error) {
	f, ok := hasherFactories[name]
	if !ok {
		return nil, fmt.Errorf("unknown hasher %q (available: %v)", name, HasherNames())
	}
	return f(), nil
}

// HasherNames returns the names accepted by HasherByName, sorted.
func HasherNames() []string {
	names := make([]string, 0, len(hasherFactories))
	for name := range hasherFactories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
