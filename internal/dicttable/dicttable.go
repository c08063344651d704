// Package dicttable implements the DictionaryTable of §3: a mapping from a
// surface-form string to either absent (unknown), "no flags" (known,
// simple), or a list of flag-group lists (known, possibly flagged per
// group, preserving the fact that a headword can appear more than once in
// a .dic with different flag sets).
//
// Backed by the teacher's own data structure: github.com/tchap/go-patricia/v2
// (github.com/bastiangx/typr-lib/pkg/suggest/trie.go used it to index
// completions by frequency; here it indexes dictionary membership by flag
// groups, same trie, new item type), which also gives cheap prefix
// enumeration for free (WordsWithPrefix).
package dicttable

import "github.com/tchap/go-patricia/v2/patricia"

// Entry is the value stored per surface form. Groups == nil means "no
// flags" (case (b) of §3's DictionaryTable); Groups != nil means "list of
// flag-group lists" (case (c)), even when that list is empty (case (c)
// with zero groups is equivalent to case (b) for acceptance purposes, per
// the §3 invariant).
type Entry struct {
	Groups [][]string
}

// Table is the DictionaryTable.
type Table struct {
	trie *patricia.Trie
	size int
}

// New returns an empty table.
func New() *Table {
	return &Table{trie: patricia.NewTrie()}
}

// Lookup returns the entry for word and whether it is present at all.
func (t *Table) Lookup(word string) (*Entry, bool) {
	item := t.trie.Get(patricia.Prefix(word))
	if item == nil {
		return nil, false
	}
	return item.(*Entry), true
}

// Has reports membership regardless of flag content (absent vs present).
func (t *Table) Has(word string) bool {
	_, ok := t.Lookup(word)
	return ok
}

// Admit implements the addWord(w, ruleList) admission semantics of §4.2:
//   - if w is not yet present, its value starts as "no flags";
//   - if ruleList is non-empty, the value is lifted to list-of-lists
//     (starting from [] if it was "no flags") and ruleList is appended.
//
// Called once per (word, rule-code-list) pair during dictionary expansion,
// and once per explicit flag group when the public AddWord API (with
// flagGroups) stores verbatim groups (§9 Open Question: no re-expansion).
func (t *Table) Admit(word string, ruleList []string) {
	entry, ok := t.Lookup(word)
	if !ok {
		entry = &Entry{}
		t.trie.Insert(patricia.Prefix(word), entry)
		t.size++
	}
	if len(ruleList) > 0 {
		if entry.Groups == nil {
			entry.Groups = [][]string{}
		}
		entry.Groups = append(entry.Groups, ruleList)
	}
}

// Delete removes word from the table entirely (§4.7 removeWord). The
// caller is responsible for also clearing any suggestion cache; the
// BK-tree, per §9, is intentionally not pruned.
func (t *Table) Delete(word string) {
	if t.trie.Delete(patricia.Prefix(word)) {
		t.size--
	}
}

// Words returns every surface form currently admitted, in trie order.
func (t *Table) Words() []string {
	out := make([]string, 0, t.size)
	t.trie.Visit(func(p patricia.Prefix, _ patricia.Item) error {
		out = append(out, string(p))
		return nil
	})
	return out
}

// WordsWithPrefix returns every admitted surface form beginning with
// prefix. [ADDED per SPEC_FULL.md's supplemented-features section.]
func (t *Table) WordsWithPrefix(prefix string) []string {
	var out []string
	t.trie.VisitSubtree(patricia.Prefix(prefix), func(p patricia.Prefix, _ patricia.Item) error {
		out = append(out, string(p))
		return nil
	})
	return out
}

// Len returns the number of admitted surface forms.
func (t *Table) Len() int {
	return t.size
}
