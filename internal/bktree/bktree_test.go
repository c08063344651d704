package bktree

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/halvardlie/spellwright/internal/distance"
)

func wordsOf(cands []Candidate) []string {
	out := make([]string, len(cands))
	for i, c := range cands {
		out[i] = c.Word
	}
	sort.Strings(out)
	return out
}

func TestEmptyTreeQuery(t *testing.T) {
	tree := New()
	require.Empty(t, tree.Query("anything", 5))
}

func TestInsertAndExactQuery(t *testing.T) {
	tree := New()
	tree.Insert("hello")
	cands := tree.Query("hello", 0)
	require.Len(t, cands, 1)
	require.Equal(t, "hello", cands[0].Word)
	require.Equal(t, 0, cands[0].Dist)
}

func TestInsertDuplicateIsNoop(t *testing.T) {
	tree := New()
	tree.Insert("hello")
	tree.Insert("hello")
	cands := tree.Query("hello", 0)
	require.Len(t, cands, 1)
}

func TestQueryFindsWithinRadius(t *testing.T) {
	tree := New()
	for _, w := range []string{"hello", "hallo", "hullo", "world", "kitten"} {
		tree.Insert(w)
	}
	got := wordsOf(tree.Query("hello", 1))
	require.ElementsMatch(t, []string{"hello", "hallo", "hullo"}, got)
}

func TestQueryExcludesBeyondRadius(t *testing.T) {
	tree := New()
	for _, w := range []string{"hello", "world"} {
		tree.Insert(w)
	}
	got := tree.Query("hello", 1)
	require.Len(t, got, 1)
	require.Equal(t, "hello", got[0].Word)
}

func TestQueryNegativeRadiusReturnsNothing(t *testing.T) {
	tree := New()
	tree.Insert("hello")
	require.Empty(t, tree.Query("hello", -1))
}

func TestNewFromWordsMatchesInsertOneByOne(t *testing.T) {
	words := []string{"cat", "bat", "rat", "mat", "hat"}
	fromBuilder := NewFromWords(words)

	incremental := New()
	for _, w := range words {
		incremental.Insert(w)
	}

	for _, q := range words {
		require.ElementsMatch(t, wordsOf(fromBuilder.Query(q, 2)), wordsOf(incremental.Query(q, 2)))
	}
}

func TestQueryDistancesAreExact(t *testing.T) {
	tree := New()
	words := []string{"kitten", "sitting", "mitten", "bitten", "kitchen"}
	for _, w := range words {
		tree.Insert(w)
	}
	for _, c := range tree.Query("kitten", 4) {
		require.Equal(t, distance.Levenshtein("kitten", c.Word), c.Dist)
	}
}

func TestQueryOnLargerTreeFindsAllCandidatesBruteForceWould(t *testing.T) {
	words := []string{
		"apple", "ample", "amble", "apply", "app", "axle", "angle",
		"banana", "band", "bandana", "bane", "cane", "candy", "candle",
	}
	tree := NewFromWords(words)

	query := "apple"
	radius := 2

	var expected []string
	for _, w := range words {
		if distance.Levenshtein(query, w) <= radius {
			expected = append(expected, w)
		}
	}
	sort.Strings(expected)

	require.Equal(t, expected, wordsOf(tree.Query(query, radius)))
}
