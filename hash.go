package zdict

import "hash/maphash"

// globalSeed is shared by every table so that equal immutable dicts hash
// equal within a process. Tables can still be seeded explicitly via
// WithSeed.
var globalSeed = maphash.MakeSeed()

// hashSplit decomposes a key hash into the starting probe index (H1, the
// full hash; callers mask it) and the one-byte short hash stored in the
// metadata array (H2, the top byte forced into [2,255] so it never
// collides with the slotEmpty/slotTombstone sentinels).
func hashSplit(hash uint64) (uintptr, uint8) {
	h1 := uintptr(hash)
	h2 := uint8(hash>>56) | 2

	return h1, h2
}

// mix64 folds two digests into one.
func mix64(a, b uint64) uint64 {
	x := a ^ (b * 0x9e3779b97f4a7c15)
	x ^= x >> 32

	return x * 0xbf58476d1ce4e5b9
}
