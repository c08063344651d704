// Package expand implements the dictionary expander (§4.2, component C4):
// it consumes .dic text plus a parsed affix.RuleSet and materializes the
// DictionaryTable of every surface form the rules generate, along with the
// compiled compound-word regexes.
package expand

import (
	"regexp"
	"strings"

	"github.com/halvardlie/spellwright/internal/affix"
	"github.com/halvardlie/spellwright/internal/dicttable"
	"github.com/halvardlie/spellwright/internal/logger"
)

var log = logger.Default("expand")

// Result bundles the expander's two outputs: the dictionary table and the
// compiled compound-word regexes.
type Result struct {
	Table           *dicttable.Table
	CompoundRegexes []*regexp.Regexp
}

// Expand runs the full §4.2 expansion over dicText using rules.
func Expand(dicText string, rules *affix.RuleSet) *Result {
	table := dicttable.New()

	compoundCodes := seedCompoundCodes(rules)

	for _, line := range dicLines(dicText) {
		word, ruleCodes := parseDicLine(line, rules)
		if word == "" {
			continue
		}

		excluded := false
		if needFlag, ok := rules.Directives["NEEDAFFIX"]; ok {
			excluded = containsFlag(ruleCodes, needFlag)
		}
		if !excluded {
			table.Admit(word, ruleCodes)
		}

		for i, code := range ruleCodes {
			directForms := applyRuleOnce(table, rules, code, word)

			for _, pf := range directForms {
				applyContinuations(table, rules, pf.form, pf.entry.Continuation, nil)
			}

			if rule, ok := rules.Rules[code]; ok && rule.Combineable {
				for j := i + 1; j < len(ruleCodes); j++ {
					other, ok := rules.Rules[ruleCodes[j]]
					if !ok || !other.Combineable || other.Type == rule.Type {
						continue
					}
					for _, dfForm := range directForms {
						for _, pf := range applyEntries(other, dfForm.form) {
							table.Admit(pf.form, nil)
						}
					}
				}
			}

			if _, isCompoundFlag := compoundCodes[code]; isCompoundFlag {
				compoundCodes[code] = append(compoundCodes[code], word)
			}
		}
	}

	for code, words := range compoundCodes {
		if len(words) == 0 {
			delete(compoundCodes, code)
		}
	}

	return &Result{
		Table:           table,
		CompoundRegexes: compileCompoundRegexes(rules.CompoundRuleSources, compoundCodes),
	}
}

// producedForm pairs a generated surface form with the specific entry that
// produced it, so continuation chaining (§4.2 step 2) can recurse only that
// entry's own continuation classes instead of the whole rule's.
type producedForm struct {
	form  string
	entry affix.Entry
}

// applyRuleOnce is step 1: apply `code`'s rule (if it names one) to word, a
// single level, admitting each produced surface form with an empty rule
// list. It returns the direct forms produced (used as the seed for
// continuation chaining and for the combineable cross-chain in step 3).
func applyRuleOnce(table *dicttable.Table, rules *affix.RuleSet, code, word string) []producedForm {
	rule, ok := rules.Rules[code]
	if !ok {
		return nil
	}
	forms := applyEntries(rule, word)
	for _, f := range forms {
		table.Admit(f.form, nil)
	}
	return forms
}

// applyEntries runs every entry of rule against word and returns the
// surface forms whose condition matched, paired with their producing entry,
// without touching the table.
func applyEntries(rule *affix.Rule, word string) []producedForm {
	var out []producedForm
	for _, e := range rule.Entries {
		if e.ConditionRegex != nil && !e.ConditionRegex.MatchString(word) {
			continue
		}
		out = append(out, producedForm{form: applyEntry(rule.Type, e, word), entry: e})
	}
	return out
}

func applyEntry(ruleType affix.RuleType, e affix.Entry, word string) string {
	stem := word
	if ruleType == affix.SFX {
		if e.Remove != "" && e.RemoveRegex != nil {
			if m := e.RemoveRegex.FindString(stem); m != "" {
				stem = stem[:len(stem)-len(m)]
			}
		}
		return stem + e.Add
	}
	// PFX: removal is a literal prefix trim.
	if e.Remove != "" && strings.HasPrefix(stem, e.Remove) {
		stem = stem[len(e.Remove):]
	}
	return e.Add + stem
}

// applyContinuations is step 2: recursively apply every rule named in
// continuation (the specific entry that produced `form`'s own continuation
// classes — never a sibling entry's), admitting each further produced form
// with an empty rule list. `visited` guards against the cyclic continuation
// graphs §9 warns real dictionaries don't have but permits hardening
// against.
func applyContinuations(table *dicttable.Table, rules *affix.RuleSet, form string, continuation []string, visited map[string]bool) {
	if len(continuation) == 0 {
		return
	}
	if visited == nil {
		visited = make(map[string]bool)
	}
	for _, cont := range continuation {
		if visited[cont] {
			continue
		}
		rule, ok := rules.Rules[cont]
		if !ok {
			log.Debugf("unresolved continuation class %q, ignoring", cont)
			continue
		}
		visited[cont] = true
		for _, pf := range applyEntries(rule, form) {
			table.Admit(pf.form, nil)
			applyContinuations(table, rules, pf.form, pf.entry.Continuation, visited)
		}
		visited[cont] = false
	}
}

func containsFlag(flags []string, target string) bool {
	for _, f := range flags {
		if f == target {
			return true
		}
	}
	return false
}

// seedCompoundCodes pre-seeds CompoundRuleCodes with every character that
// appears in any compound-rule source (plus ONLYINCOMPOUND's flag, if
// set), per §4.2's bookkeeping step.
func seedCompoundCodes(rules *affix.RuleSet) map[string][]string {
	codes := make(map[string][]string)
	for _, src := range rules.CompoundRuleSources {
		for _, r := range src {
			codes[string(r)] = []string{}
		}
	}
	if flag, ok := rules.Directives["ONLYINCOMPOUND"]; ok {
		codes[flag] = []string{}
	}
	return codes
}

// dicLines applies the .dic preprocessing of §4.2: CR?LF splitting,
// stripping tab-prefixed comment lines, and discarding the first non-empty
// line (the untrusted count hint).
func dicLines(dicText string) []string {
	dicText = strings.ReplaceAll(dicText, "\r\n", "\n")
	dicText = strings.ReplaceAll(dicText, "\r", "\n")

	var out []string
	skippedCountHint := false
	for _, line := range strings.Split(dicText, "\n") {
		if strings.HasPrefix(line, "\t") {
			continue
		}
		if strings.TrimSpace(line) == "" {
			continue
		}
		if !skippedCountHint {
			skippedCountHint = true
			continue
		}
		out = append(out, line)
	}
	return out
}

// parseDicLine parses a "word" or "word/flags" .dic line into the headword
// and its rule codes (nil if the line carried no /flags).
func parseDicLine(line string, rules *affix.RuleSet) (string, []string) {
	line = strings.TrimSpace(line)
	if line == "" {
		return "", nil
	}
	idx := strings.IndexByte(line, '/')
	if idx < 0 {
		return line, nil
	}
	word := line[:idx]
	flagsText := line[idx+1:]
	return word, rules.ParseFlags(flagsText)
}

// compileCompoundRegexes replaces each flag character in each source with
// an alternation over its collected headwords, passes other characters
// through verbatim, and compiles the whole pattern, anchored and
// case-insensitive.
func compileCompoundRegexes(sources []string, codes map[string][]string) []*regexp.Regexp {
	var out []*regexp.Regexp
	for _, src := range sources {
		var b strings.Builder
		for _, r := range src {
			if words, ok := codes[string(r)]; ok {
				b.WriteByte('(')
				for i, w := range words {
					if i > 0 {
						b.WriteByte('|')
					}
					b.WriteString(regexp.QuoteMeta(w))
				}
				b.WriteByte(')')
			} else {
				b.WriteRune(r)
			}
		}
		pattern := "(?i)^(?:" + b.String() + ")$"
		re, err := regexp.Compile(pattern)
		if err != nil {
			log.Warnf("failed to compile compound rule %q: %v", src, err)
			continue
		}
		out = append(out, re)
	}
	return out
}
