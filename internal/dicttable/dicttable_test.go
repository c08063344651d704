package dicttable

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAdmitWithoutFlagsIsNoFlagsState(t *testing.T) {
	tbl := New()
	tbl.Admit("hello", nil)

	entry, ok := tbl.Lookup("hello")
	require.True(t, ok)
	require.Nil(t, entry.Groups)
}

func TestAdmitWithFlagsLiftsToListOfGroups(t *testing.T) {
	tbl := New()
	tbl.Admit("cat", []string{"S", "M"})

	entry, ok := tbl.Lookup("cat")
	require.True(t, ok)
	require.Equal(t, [][]string{{"S", "M"}}, entry.Groups)
}

func TestAdmitTwiceAppendsAdditionalGroup(t *testing.T) {
	tbl := New()
	tbl.Admit("run", []string{"S"})
	tbl.Admit("run", []string{"D"})

	entry, _ := tbl.Lookup("run")
	require.Equal(t, [][]string{{"S"}, {"D"}}, entry.Groups)
}

func TestAdmitNoFlagsThenFlagsLiftsFromNilToPopulated(t *testing.T) {
	tbl := New()
	tbl.Admit("walk", nil)
	tbl.Admit("walk", []string{"S"})

	entry, _ := tbl.Lookup("walk")
	require.Equal(t, [][]string{{"S"}}, entry.Groups)
}

func TestHasReflectsMembership(t *testing.T) {
	tbl := New()
	require.False(t, tbl.Has("ghost"))
	tbl.Admit("ghost", nil)
	require.True(t, tbl.Has("ghost"))
}

func TestDeleteRemovesWord(t *testing.T) {
	tbl := New()
	tbl.Admit("temp", nil)
	tbl.Delete("temp")
	require.False(t, tbl.Has("temp"))
	require.Equal(t, 0, tbl.Len())
}

func TestDeleteOfAbsentWordIsNoop(t *testing.T) {
	tbl := New()
	tbl.Delete("nonexistent")
	require.Equal(t, 0, tbl.Len())
}

func TestLenCountsDistinctWordsOnly(t *testing.T) {
	tbl := New()
	tbl.Admit("cat", []string{"S"})
	tbl.Admit("cat", []string{"D"})
	tbl.Admit("dog", nil)
	require.Equal(t, 2, tbl.Len())
}

func TestWordsEnumeratesAllAdmitted(t *testing.T) {
	tbl := New()
	for _, w := range []string{"cat", "dog", "bird"} {
		tbl.Admit(w, nil)
	}
	require.ElementsMatch(t, []string{"cat", "dog", "bird"}, tbl.Words())
}

func TestWordsWithPrefixFiltersBySharedPrefix(t *testing.T) {
	tbl := New()
	for _, w := range []string{"cat", "catalog", "car", "dog"} {
		tbl.Admit(w, nil)
	}
	require.ElementsMatch(t, []string{"cat", "catalog"}, tbl.WordsWithPrefix("cat"))
}

func TestWordsWithPrefixNoMatchesReturnsEmpty(t *testing.T) {
	tbl := New()
	tbl.Admit("cat", nil)
	require.Empty(t, tbl.WordsWithPrefix("xyz"))
}
