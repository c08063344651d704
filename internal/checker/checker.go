// Package checker implements the membership checker (§4.3, component C5):
// exact and capitalization-tolerant acceptance, with compound-rule fallback
// for words absent from the dictionary table outright.
package checker

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"github.com/halvardlie/spellwright/internal/affix"
	"github.com/halvardlie/spellwright/internal/dicttable"
)

// Checker answers membership queries against a dictionary table, a
// directives map, and a compiled compound-regex list. It holds no mutable
// state of its own; all state lives in the table it was built against.
type Checker struct {
	table           *dicttable.Table
	rules           *affix.RuleSet
	compoundRegexes []*regexp.Regexp
}

// New returns a Checker over table, consulting rules' directives (FLAG,
// COMPOUNDMIN, ONLYINCOMPOUND, KEEPCASE, NEEDAFFIX) and compoundRegexes for
// the compound fallback.
func New(table *dicttable.Table, rules *affix.RuleSet, compoundRegexes []*regexp.Regexp) *Checker {
	return &Checker{table: table, rules: rules, compoundRegexes: compoundRegexes}
}

// Check implements §4.3's check(word): trims whitespace, then tries exact
// membership, then (for all-caps input) title-case and lowercase variants
// respecting KEEPCASE, then the variant with only its first letter
// lowercased.
func (c *Checker) Check(word string) bool {
	word = strings.TrimSpace(word)
	if word == "" {
		return false
	}

	if c.CheckExact(word) {
		return true
	}

	if word == strings.ToUpper(word) {
		title := titleCase(word)
		if c.hasFlagFor(title, "KEEPCASE", nil) {
			return false
		}
		if c.CheckExact(title) {
			return true
		}
		if c.CheckExact(strings.ToLower(word)) {
			return true
		}
	}

	lower := lowerFirst(word)
	if lower != word && !c.hasFlagFor(lower, "KEEPCASE", nil) {
		if c.CheckExact(lower) {
			return true
		}
	}

	return false
}

// CheckExact implements §4.3's checkExact(word): no case folding, just
// table membership plus the compound-rule fallback for unknown words.
func (c *Checker) CheckExact(word string) bool {
	entry, ok := c.table.Lookup(word)
	if !ok {
		min, set := c.compoundMin()
		if set && len(word) >= min {
			return c.matchesCompound(word)
		}
		return false
	}

	if entry.Groups == nil {
		return true
	}

	onlyInCompound, hasFlag := c.rules.Directives["ONLYINCOMPOUND"]
	if !hasFlag {
		return true
	}
	for _, group := range entry.Groups {
		if !containsFlag(group, onlyInCompound) {
			return true
		}
	}
	return false
}

// HasFlag reports whether directive resolves to a configured flag value and
// that flag appears in groupOverride (if non-nil) or, absent an override,
// in the union of word's flag groups.
func (c *Checker) HasFlag(word, directive string, groupOverride []string) bool {
	return c.hasFlagFor(word, directive, groupOverride)
}

func (c *Checker) hasFlagFor(word, directive string, groupOverride []string) bool {
	flag, ok := c.rules.Directives[directive]
	if !ok {
		return false
	}
	if groupOverride != nil {
		return containsFlag(groupOverride, flag)
	}
	entry, ok := c.table.Lookup(word)
	if !ok || entry.Groups == nil {
		return false
	}
	for _, group := range entry.Groups {
		if containsFlag(group, flag) {
			return true
		}
	}
	return false
}

func (c *Checker) compoundMin() (int, bool) {
	val, ok := c.rules.Directives["COMPOUNDMIN"]
	if !ok {
		return 0, false
	}
	n, err := strconv.Atoi(val)
	if err != nil {
		return 0, false
	}
	return n, true
}

func (c *Checker) matchesCompound(word string) bool {
	for _, re := range c.compoundRegexes {
		if re.MatchString(word) {
			return true
		}
	}
	return false
}

func containsFlag(group []string, flag string) bool {
	for _, f := range group {
		if f == flag {
			return true
		}
	}
	return false
}

func titleCase(word string) string {
	r := []rune(word)
	if len(r) == 0 {
		return word
	}
	r[0] = unicode.ToUpper(r[0])
	for i := 1; i < len(r); i++ {
		r[i] = unicode.ToLower(r[i])
	}
	return string(r)
}

func lowerFirst(word string) string {
	r := []rune(word)
	if len(r) == 0 {
		return word
	}
	r[0] = unicode.ToLower(r[0])
	return string(r)
}
