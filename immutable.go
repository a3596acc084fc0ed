package zdict

import (
	"cmp"
	"encoding/binary"
	"hash/maphash"
	"slices"
)

// HashValue returns the dict's hash. Only immutable dicts are hashable.
// The hash is that of the sequence of per-pair digests sorted by key
// digest, computed lazily on first call and cached for the dict's
// lifetime: mutation is forbidden in immutable mode, so the cache can
// never go stale.
func (d *ZDict) HashValue() (uint64, error) {
	if !d.mode.hashable() {
		return 0, &UnhashableError{Mode: d.mode}
	}

	if d.hashValid {
		return d.cachedHash, nil
	}

	type pairDigest struct {
		k, v uint64
	}

	var (
		digests = make([]pairDigest, 0, d.Len())
		err     error
	)

	d.tbl.scan(func(_ uintptr, k, v Value) bool {
		var kh, vh uint64

		if kh, err = k.Hash(globalSeed); err != nil {
			return false
		}

		if vh, err = v.Hash(globalSeed); err != nil {
			return false
		}

		digests = append(digests, pairDigest{k: kh, v: vh})

		return true
	})

	if err != nil {
		return 0, err
	}

	slices.SortFunc(digests, func(a, b pairDigest) int {
		if a.k != b.k {
			return cmp.Compare(a.k, b.k)
		}

		return cmp.Compare(a.v, b.v)
	})

	var (
		h   maphash.Hash
		buf [16]byte
	)

	h.SetSeed(globalSeed)

	for _, dg := range digests {
		binary.LittleEndian.PutUint64(buf[:8], dg.k)
		binary.LittleEndian.PutUint64(buf[8:], mix64(dg.k, dg.v))
		h.Write(buf[:])
	}

	d.cachedHash = h.Sum64()
	d.hashValid = true

	return d.cachedHash, nil
}

// Hash implements Value, so an immutable dict can itself be stored as a
// key. The seed argument is ignored: dict hashes always use the process
// seed so that equal immutable dicts hash equal.
func (d *ZDict) Hash(maphash.Seed) (uint64, error) {
	return d.HashValue()
}

// Equals implements Value.
func (d *ZDict) Equals(other Value) (bool, error) {
	o, ok := other.(*ZDict)
	if !ok {
		return false, nil
	}

	return d.equalDict(o)
}
