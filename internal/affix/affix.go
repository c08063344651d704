// Package affix implements the Hunspell .aff parser (§4.1, component C3):
// it converts .aff text into a rule table keyed by flag, a flag-directives
// map, compound-rule pattern sources, and a replacement table.
//
// Grounded on the teacher's tolerant-parsing idiom (pkg/config.tryPartialParse:
// never fail the whole parse over one bad line, log and move on) and on the
// shape of the real Go Hunspell readers in the pack
// (sikso1892-kospell/hunspell.go, az-ai-labs-az-lang-nlp/spell.go) for what a
// line-oriented affix/dictionary reader looks like in idiomatic Go.
package affix

import (
	"regexp"
	"strings"

	"github.com/halvardlie/spellwright/internal/logger"
)

var log = logger.Default("affix")

// RuleType distinguishes prefix rules from suffix rules.
type RuleType int

const (
	PFX RuleType = iota
	SFX
)

func (t RuleType) String() string {
	if t == SFX {
		return "SFX"
	}
	return "PFX"
}

// FlagMode controls how a "/flags" suffix is split into individual flags,
// selected by the .aff file's FLAG directive.
type FlagMode int

const (
	FlagDefault FlagMode = iota // one flag per code point
	FlagLong                    // two-character fixed-width flags
	FlagNum                     // comma-separated numeric flags
	FlagUTF8                    // one flag per Unicode scalar
)

// Entry is one line inside a PFX/SFX block.
type Entry struct {
	Remove         string
	Add            string
	Continuation   []string
	ConditionRegex *regexp.Regexp // nil means match-anything ("." condition)
	RemoveRegex    *regexp.Regexp // only set for SFX entries, where remove is anchored
}

// Rule is keyed by flag and carries every entry parsed for it.
type Rule struct {
	Code        string
	Type        RuleType
	Combineable bool
	Entries     []Entry
}

// Replacement is one (from, to) pair from a REP line.
type Replacement struct {
	From, To string
}

// RuleSet is the parsed output of an .aff file: the rule table, the flag
// directives, compound-rule sources, and the replacement table.
type RuleSet struct {
	Rules               map[string]*Rule
	Directives          map[string]string
	CompoundRuleSources []string
	Replacements        []Replacement
	FlagMode            FlagMode
}

// Parse converts affText into a RuleSet. Malformed lines are tolerated:
// missing fields propagate as empty tokens, nothing here returns an error
// (per §7, the core surfaces no error values for tolerated malformed
// input).
func Parse(affText string, seedDirectives map[string]string) *RuleSet {
	rs := &RuleSet{
		Rules:      make(map[string]*Rule),
		Directives: make(map[string]string),
	}
	for k, v := range seedDirectives {
		rs.Directives[k] = v
	}

	lines := splitLines(affText)
	i := 0
	for i < len(lines) {
		line := strings.TrimSpace(lines[i])
		i++
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		fields := strings.Fields(line)
		directive := fields[0]

		switch directive {
		case "PFX", "SFX":
			ruleType := PFX
			if directive == "SFX" {
				ruleType = SFX
			}
			if len(fields) < 4 {
				log.Warnf("malformed %s header line, skipping: %q", directive, line)
				continue
			}
			code := fields[1]
			combineable := fields[2] == "Y"
			count := parseIntTolerant(fields[3])

			rule, ok := rs.Rules[code]
			if !ok {
				rule = &Rule{Code: code, Type: ruleType, Combineable: combineable}
				rs.Rules[code] = rule
			}

			for n := 0; n < count && i < len(lines); n++ {
				entryLine := strings.TrimSpace(lines[i])
				i++
				if entryLine == "" || strings.HasPrefix(entryLine, "#") {
					continue
				}
				ef := strings.Fields(entryLine)
				if len(ef) < 5 {
					log.Warnf("malformed %s entry line, skipping: %q", directive, entryLine)
					continue
				}
				rule.Entries = append(rule.Entries, rs.parseEntry(ruleType, ef[2], ef[3], ef[4]))
			}

		case "COMPOUNDRULE":
			if len(fields) < 2 {
				log.Warnf("malformed COMPOUNDRULE header, skipping: %q", line)
				continue
			}
			count := parseIntTolerant(fields[1])
			for n := 0; n < count && i < len(lines); n++ {
				srcLine := strings.TrimSpace(lines[i])
				i++
				sf := strings.Fields(srcLine)
				if len(sf) < 2 {
					continue
				}
				rs.CompoundRuleSources = append(rs.CompoundRuleSources, sf[1])
			}

		case "REP":
			if len(fields) < 2 {
				log.Warnf("malformed REP header, skipping: %q", line)
				continue
			}
			count := parseIntTolerant(fields[1])
			for n := 0; n < count && i < len(lines); n++ {
				repLine := strings.TrimSpace(lines[i])
				i++
				rf := strings.Fields(repLine)
				if len(rf) == 3 {
					rs.Replacements = append(rs.Replacements, Replacement{From: rf[1], To: rf[2]})
				}
			}

		case "FLAG":
			if len(fields) >= 2 {
				rs.Directives[directive] = fields[1]
				rs.FlagMode = parseFlagMode(fields[1])
			}

		default:
			if len(fields) >= 2 {
				rs.Directives[directive] = fields[1]
			}
		}
	}

	return rs
}

// parseEntry builds one AffixEntry from its remove/add/condition fields.
// For SFX, condition compiles as "condition$" and remove as "remove$"
// (both regex-anchored at the word's end); for PFX, condition compiles as
// "^condition" and remove is kept literal (applied as a plain prefix trim).
func (rs *RuleSet) parseEntry(ruleType RuleType, removeField, addField, conditionField string) Entry {
	e := Entry{}

	if removeField != "0" {
		e.Remove = removeField
		if ruleType == SFX {
			if re, err := regexp.Compile(removeField + "$"); err == nil {
				e.RemoveRegex = re
			} else {
				log.Warnf("bad SFX remove pattern %q: %v", removeField, err)
			}
		}
	}

	add := addField
	if add == "0" {
		add = ""
	}
	if idx := strings.Index(add, "/"); idx >= 0 {
		e.Add = add[:idx]
		e.Continuation = rs.ParseFlags(add[idx+1:])
	} else {
		e.Add = add
	}

	if conditionField != "." && conditionField != "" {
		pattern := conditionField
		if ruleType == SFX {
			pattern = conditionField + "$"
		} else {
			pattern = "^" + conditionField
		}
		if re, err := regexp.Compile(pattern); err == nil {
			e.ConditionRegex = re
		} else {
			log.Warnf("bad %v condition pattern %q: %v", ruleType, conditionField, err)
		}
	}
	return e
}

// ParseFlags splits a "/flags" payload into individual flag tokens
// according to the RuleSet's current FLAG mode.
func (rs *RuleSet) ParseFlags(flagsText string) []string {
	return splitFlags(flagsText, rs.FlagMode)
}

func splitFlags(flagsText string, mode FlagMode) []string {
	if flagsText == "" {
		return nil
	}
	switch mode {
	case FlagLong:
		var out []string
		runes := []rune(flagsText)
		for i := 0; i+1 < len(runes); i += 2 {
			out = append(out, string(runes[i:i+2]))
		}
		if len(runes)%2 == 1 {
			out = append(out, string(runes[len(runes)-1]))
		}
		return out
	case FlagNum:
		parts := strings.Split(flagsText, ",")
		out := make([]string, 0, len(parts))
		for _, p := range parts {
			p = strings.TrimSpace(p)
			if p != "" {
				out = append(out, p)
			}
		}
		return out
	case FlagUTF8, FlagDefault:
		fallthrough
	default:
		out := make([]string, 0, len(flagsText))
		for _, r := range flagsText {
			out = append(out, string(r))
		}
		return out
	}
}

func parseFlagMode(val string) FlagMode {
	switch strings.ToLower(val) {
	case "long":
		return FlagLong
	case "num":
		return FlagNum
	case "utf-8", "utf8":
		return FlagUTF8
	default:
		return FlagDefault
	}
}

func parseIntTolerant(s string) int {
	n := 0
	for _, r := range s {
		if r < '0' || r > '9' {
			return n
		}
		n = n*10 + int(r-'0')
	}
	return n
}

// splitLines splits on CR?LF (and bare LF), per §4.1.
func splitLines(text string) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	return strings.Split(text, "\n")
}
