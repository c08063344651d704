package distance

import (
	"github.com/halvardlie/spellwright/internal/cache"
)

// separator joins the two operands of a memoized Damerau call into a single
// cache key. It must not be able to appear as a normal word character for
// the key to stay unambiguous; \x00 (NUL) satisfies that for any realistic
// dictionary word.
const separator = "\x00"

// Memoized wraps a DamerauScratch with a bounded LRU keyed by the two
// operands, ordered lexicographically so Distance(a, b) and Distance(b, a)
// share a cache entry. The cache is a pure-function cache (Damerau is
// symmetric and total), so unlike the suggestion cache it never needs
// invalidating on dictionary mutation — only eviction, to bound memory.
type Memoized struct {
	scratch *DamerauScratch
	cache   *cache.LRU
}

// NewMemoized returns a Memoized Damerau distance with a cache bounded to
// capacity entries (the source recommends ~10^5).
func NewMemoized(capacity int) *Memoized {
	return &Memoized{
		scratch: NewScratch(),
		cache:   cache.New(capacity),
	}
}

// Distance returns the memoized Damerau-Levenshtein distance between a and b.
func (m *Memoized) Distance(a, b string) int {
	key := a + separator + b
	if a > b {
		key = b + separator + a
	}
	if v, ok := m.cache.Get(key); ok {
		return v.(int)
	}
	d := m.scratch.Distance(a, b)
	m.cache.Put(key, d)
	return d
}

// Clear empties the memoization cache.
func (m *Memoized) Clear() {
	m.cache.Clear()
}
