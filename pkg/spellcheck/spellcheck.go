// Package spellcheck is the public glue/lifecycle surface (§4.7, component
// C7): it wires the affix parser, dictionary expander, checker, and
// suggester into a single Dictionary, exposing the operations listed in
// §6 (check, checkExact, suggest, addWord, removeWord, initBkTree, words).
package spellcheck

import (
	"sync"

	"github.com/halvardlie/spellwright/internal/affix"
	"github.com/halvardlie/spellwright/internal/bktree"
	"github.com/halvardlie/spellwright/internal/checker"
	"github.com/halvardlie/spellwright/internal/dicttable"
	"github.com/halvardlie/spellwright/internal/expand"
	"github.com/halvardlie/spellwright/internal/logger"
	"github.com/halvardlie/spellwright/internal/suggest"
)

var log = logger.Default("spellcheck")

// Dictionary is a single spell-checking instance: one parsed affix rule
// set, one expanded dictionary table, one (lazily built) BK-tree, and the
// checker/suggester built over them. Per §5, an instance is not safe for
// concurrent mutation racing concurrent queries; the mutex here only
// serializes the lifecycle operations against each other and against
// lazy BK-tree construction, it does not make concurrent Check/Suggest
// calls safe while AddWord/RemoveWord run.
type Dictionary struct {
	mu sync.Mutex

	rules         *affix.RuleSet
	table         *dicttable.Table
	compoundRules int

	tree      *bktree.Tree
	treeBuilt bool

	checker   *checker.Checker
	suggester *suggest.Suggester
}

// New parses aff and dic text, expands the dictionary, and returns a ready
// Dictionary. seedFlags pre-seeds the flag-directives map (§6's
// construction option), merged with and overridden by directives the .aff
// text itself defines.
func New(affText, dicText string, seedFlags map[string]string) *Dictionary {
	rules := affix.Parse(affText, seedFlags)
	result := expand.Expand(dicText, rules)

	log.Debugf("expanded dictionary: %d surface forms, %d compound patterns", result.Table.Len(), len(result.CompoundRegexes))

	d := &Dictionary{
		rules:         rules,
		table:         result.Table,
		compoundRules: len(result.CompoundRegexes),
	}
	d.checker = checker.New(result.Table, rules, result.CompoundRegexes)
	d.suggester = suggest.New(bktree.New(), result.Table)
	return d
}

// Check implements §6's check(word).
func (d *Dictionary) Check(word string) bool {
	return d.checker.Check(word)
}

// CheckExact implements §6's checkExact(word).
func (d *Dictionary) CheckExact(word string) bool {
	return d.checker.CheckExact(word)
}

// Suggest implements §6's suggest(word, options); it builds the BK-tree on
// first call if InitBkTree hasn't been called explicitly yet.
func (d *Dictionary) Suggest(word string, opts suggest.Options) []string {
	d.ensureTree()
	return d.suggester.Suggest(word, opts)
}

// InitBkTree builds the BK-tree explicitly, ahead of the first Suggest
// call, from the dictionary table's current contents.
func (d *Dictionary) InitBkTree() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.buildTreeLocked()
}

func (d *Dictionary) ensureTree() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if !d.treeBuilt {
		d.buildTreeLocked()
	}
}

func (d *Dictionary) buildTreeLocked() {
	tree := bktree.NewFromWords(d.table.Words())
	d.tree = tree
	d.treeBuilt = true
	d.suggester = suggest.New(tree, d.table)
}

// AddWord implements §6's addWord(word, flagGroups). Per §9's open
// question, flagGroups are stored verbatim — no re-expansion through the
// affix rules runs over an explicitly added word. It writes to the
// dictionary table, inserts into the BK-tree if already built, and clears
// the suggestion cache.
func (d *Dictionary) AddWord(word string, flagGroups [][]string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if len(flagGroups) == 0 {
		d.table.Admit(word, nil)
	} else {
		for _, group := range flagGroups {
			d.table.Admit(word, group)
		}
	}
	if d.treeBuilt {
		d.tree.Insert(word)
	}
	d.suggester.InvalidateCache()
}

// RemoveWord implements §6's removeWord(word): deletes from the dictionary
// table and clears the suggestion cache. The BK-tree is not pruned (§9);
// Suggest filters removed words out via table membership at query time.
func (d *Dictionary) RemoveWord(word string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.table.Delete(word)
	d.suggester.InvalidateCache()
}

// Words implements §6's words(): enumeration of current dictionary keys.
func (d *Dictionary) Words() []string {
	return d.table.Words()
}

// WordsWithPrefix is a supplemented feature (SPEC_FULL.md) exposing the
// dictionary table's cheap prefix enumeration directly.
func (d *Dictionary) WordsWithPrefix(prefix string) []string {
	return d.table.WordsWithPrefix(prefix)
}

// Replacements exposes the REP table parsed from the .aff file. §9 leaves
// consulting it for suggestions up to the implementer; this Dictionary
// stores it but does not fold it into Suggest.
func (d *Dictionary) Replacements() []affix.Replacement {
	return d.rules.Replacements
}

// Stats is a supplemented feature: a small operational snapshot useful for
// the CLI debug harness and for tests, without exposing internal types.
type Stats struct {
	WordCount     int
	CompoundRules int
	BkTreeBuilt   bool
}

// Stats returns a snapshot of the dictionary's current size.
func (d *Dictionary) Stats() Stats {
	d.mu.Lock()
	defer d.mu.Unlock()
	return Stats{
		WordCount:     d.table.Len(),
		CompoundRules: d.compoundRules,
		BkTreeBuilt:   d.treeBuilt,
	}
}
