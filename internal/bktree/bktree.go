// Package bktree implements a Burkhard-Keller tree: a metric-space index
// over strings keyed by Levenshtein distance, supporting insertion and
// bounded-radius queries. Grounded on the pack's similarity.BKTree
// (sinanm89-ditong/bktree.go). The distance is not pluggable: the tree
// always calls distance.Levenshtein, so it never gets built with Damerau
// (which isn't a metric and would break the pruning guarantee below).
package bktree

import "github.com/halvardlie/spellwright/internal/distance"

// Candidate is one BK-tree query result: a term within the query radius and
// its exact distance from the query.
type Candidate struct {
	Word string
	Dist int
}

type node struct {
	root     string
	children map[int]*node
}

// Tree is a BK-tree over a fixed metric (plain Levenshtein). It is not safe
// for concurrent mutation; concurrent read-only queries are safe.
type Tree struct {
	root *node
}

// New returns an empty tree.
func New() *Tree {
	return &Tree{}
}

// NewFromWords builds a tree from an initial word list: the last element
// becomes the root of the (until-then empty) tree, and the rest are
// inserted in order, per §4.5.
func NewFromWords(words []string) *Tree {
	t := New()
	if len(words) == 0 {
		return t
	}
	last := len(words) - 1
	t.Insert(words[last])
	for _, w := range words[:last] {
		t.Insert(w)
	}
	return t
}

// Insert adds term to the tree. If the tree is empty, term becomes the
// root. Otherwise it walks from the root along edges labeled with the
// Levenshtein distance to term, creating a new one-node child when no edge
// at that distance exists yet. Re-inserting an existing term is a no-op.
func (t *Tree) Insert(term string) {
	if t.root == nil {
		t.root = &node{root: term, children: make(map[int]*node)}
		return
	}

	cur := t.root
	for {
		d := distance.Levenshtein(cur.root, term)
		if d == 0 {
			return // already present
		}
		child, ok := cur.children[d]
		if !ok {
			cur.children[d] = &node{root: term, children: make(map[int]*node)}
			return
		}
		cur = child
	}
}

// Query returns every term in the tree within Levenshtein distance r of q,
// each paired with its exact distance. Order is unspecified — ranking is
// the caller's job (see internal/suggest).
func (t *Tree) Query(q string, r int) []Candidate {
	if t.root == nil || r < 0 {
		return nil
	}
	var out []Candidate
	t.queryNode(t.root, q, r, &out)
	return out
}

func (t *Tree) queryNode(n *node, q string, r int, out *[]Candidate) {
	d := distance.Levenshtein(n.root, q)
	if d <= r {
		*out = append(*out, Candidate{Word: n.root, Dist: d})
	}

	// Triangle inequality: any candidate under a child reachable via edge
	// distance e satisfies |e - d| <= dist(q, child-subtree), so only edges
	// within [d-r, d+r] can contain a match.
	lo, hi := d-r, d+r
	for edge, child := range n.children {
		if edge >= lo && edge <= hi {
			t.queryNode(child, q, r, out)
		}
	}
}
