package checker

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/halvardlie/spellwright/internal/affix"
	"github.com/halvardlie/spellwright/internal/dicttable"
)

func newRuleSet(directives map[string]string) *affix.RuleSet {
	rs := &affix.RuleSet{
		Rules:      make(map[string]*affix.Rule),
		Directives: make(map[string]string),
	}
	for k, v := range directives {
		rs.Directives[k] = v
	}
	return rs
}

func TestCheckExactKnownWord(t *testing.T) {
	table := dicttable.New()
	table.Admit("hello", nil)
	c := New(table, newRuleSet(nil), nil)

	require.True(t, c.CheckExact("hello"))
	require.False(t, c.CheckExact("goodbye"))
}

func TestCheckTrimsWhitespace(t *testing.T) {
	table := dicttable.New()
	table.Admit("hello", nil)
	c := New(table, newRuleSet(nil), nil)

	require.True(t, c.Check("  hello  "))
	require.False(t, c.Check("   "))
}

func TestCheckAllCapsTriesTitleCase(t *testing.T) {
	table := dicttable.New()
	table.Admit("Hello", nil)
	c := New(table, newRuleSet(nil), nil)

	require.True(t, c.Check("HELLO"))
}

func TestCheckAllCapsTriesLowercase(t *testing.T) {
	table := dicttable.New()
	table.Admit("hello", nil)
	c := New(table, newRuleSet(nil), nil)

	require.True(t, c.Check("HELLO"))
}

func TestCheckAllCapsRespectsKeepCaseOnTitleVariant(t *testing.T) {
	// "Example" is KEEPCASE-flagged; typing it in all caps must not fall
	// back to the title-case variant since that variant is itself
	// case-locked, and no lowercase form exists either.
	table := dicttable.New()
	table.Admit("Example", []string{"K"})
	c := New(table, newRuleSet(map[string]string{"KEEPCASE": "K"}), nil)

	require.True(t, c.CheckExact("Example"))
	require.False(t, c.Check("EXAMPLE"))
}

func TestCheckLowerFirstFallback(t *testing.T) {
	table := dicttable.New()
	table.Admit("iphone", nil)
	c := New(table, newRuleSet(nil), nil)

	require.True(t, c.Check("Iphone"))
}

func TestCheckExactCompoundFallback(t *testing.T) {
	table := dicttable.New()
	re := regexp.MustCompile(`(?i)^(?:foobar)$`)
	c := New(table, newRuleSet(map[string]string{"COMPOUNDMIN": "3"}), []*regexp.Regexp{re})

	require.True(t, c.CheckExact("foobar"))
	require.False(t, c.CheckExact("bazqux"))
}

func TestCheckExactCompoundFallbackRespectsCompoundMin(t *testing.T) {
	table := dicttable.New()
	re := regexp.MustCompile(`(?i)^(?:ab)$`)
	c := New(table, newRuleSet(map[string]string{"COMPOUNDMIN": "5"}), []*regexp.Regexp{re})

	// "ab" is shorter than COMPOUNDMIN, so the compound fallback never runs.
	require.False(t, c.CheckExact("ab"))
}

func TestCheckExactOnlyInCompoundRejectsStandaloneUse(t *testing.T) {
	table := dicttable.New()
	table.Admit("mini", []string{"O"})
	c := New(table, newRuleSet(map[string]string{"ONLYINCOMPOUND": "O"}), nil)

	require.False(t, c.CheckExact("mini"))
}

func TestCheckExactOnlyInCompoundAcceptsWordWithAnUnflaggedGroup(t *testing.T) {
	table := dicttable.New()
	table.Admit("mini", []string{"O"})
	table.Admit("mini", []string{"S"}) // second group without the ONLYINCOMPOUND flag: standalone-acceptable

	c := New(table, newRuleSet(map[string]string{"ONLYINCOMPOUND": "O"}), nil)
	require.True(t, c.CheckExact("mini"))
}

func TestHasFlagWithGroupOverride(t *testing.T) {
	table := dicttable.New()
	c := New(table, newRuleSet(map[string]string{"KEEPCASE": "K"}), nil)

	require.True(t, c.HasFlag("anything", "KEEPCASE", []string{"K", "X"}))
	require.False(t, c.HasFlag("anything", "KEEPCASE", []string{"X"}))
}

func TestHasFlagWithoutDirectiveConfigured(t *testing.T) {
	table := dicttable.New()
	table.Admit("word", []string{"K"})
	c := New(table, newRuleSet(nil), nil)

	require.False(t, c.HasFlag("word", "KEEPCASE", nil))
}

func TestHasFlagLooksUpWordsGroupsWhenNoOverride(t *testing.T) {
	table := dicttable.New()
	table.Admit("nasa", []string{"K"})
	c := New(table, newRuleSet(map[string]string{"KEEPCASE": "K"}), nil)

	require.True(t, c.HasFlag("nasa", "KEEPCASE", nil))
	require.False(t, c.HasFlag("unknown", "KEEPCASE", nil))
}
