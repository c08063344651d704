package distance

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMemoizedMatchesUnmemoizedDistance(t *testing.T) {
	m := NewMemoized(10)
	raw := NewScratch()

	require.Equal(t, raw.Distance("kitten", "sitting"), m.Distance("kitten", "sitting"))
}

func TestMemoizedSharesCacheAcrossOperandOrder(t *testing.T) {
	m := NewMemoized(1)
	require.Equal(t, 1, m.Distance("ab", "ba"))
	// Capacity 1: if Distance(a,b) and Distance(b,a) didn't share a key,
	// this second call would evict-and-recompute rather than hit.
	require.Equal(t, 1, m.Distance("ba", "ab"))
}

func TestMemoizedClear(t *testing.T) {
	m := NewMemoized(10)
	m.Distance("a", "b")
	m.Clear()
	// Still correct after clearing, just recomputed.
	require.Equal(t, 1, m.Distance("a", "b"))
}
