package attrio

import (
	"hash/fnv"
	"math/rand"
)

// SizeRange bounds a generated collection length (inclusive).
type SizeRange struct {
	Min int
	Max int
}

// exampleRand returns the random source for example generation at the given
// context path. A non-empty path seeds the source from a stable FNV-1a hash
// of the path, so identical contexts always produce identical examples.
func exampleRand(path string) *rand.Rand {
	if path == "" {
		return rand.New(rand.NewSource(rand.Int63()))
	}
	h := fnv.New64a()
	h.Write([]byte(path))
	return rand.New(rand.NewSource(int64(h.Sum64())))
}
