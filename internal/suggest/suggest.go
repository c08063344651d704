// Package suggest implements the suggester (§4.6, component C6): it drives
// a BK-tree radius query, filters against the live dictionary table, ranks
// candidates with the deterministic comparator of §4.6, and memoizes the
// whole pipeline by (word, options).
package suggest

import (
	"math"
	"sort"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/halvardlie/spellwright/internal/bktree"
	"github.com/halvardlie/spellwright/internal/cache"
	"github.com/halvardlie/spellwright/internal/dicttable"
	"github.com/halvardlie/spellwright/internal/distance"
)

// Options controls a single Suggest call. The zero value is not the
// default — use DefaultOptions, or rely on Suggester.Suggest filling in
// zero fields with the documented defaults.
type Options struct {
	MaxDist float64 // fraction of word length if < 1, literal radius otherwise
	Limit   int     // 0 means unbounded
}

// DefaultOptions mirrors §6's default option values.
var DefaultOptions = Options{MaxDist: 0.2, Limit: 0}

// Suggester wraps a BK-tree and dictionary table with the ranking,
// normalization, and Damerau caches the source treats as load-bearing for
// latency, not mere optimizations (§9).
type Suggester struct {
	tree  *bktree.Tree
	table *dicttable.Table

	damerau         *distance.Memoized
	normCache       *cache.LRU
	suggestionCache *cache.LRU
}

// New returns a Suggester over tree and table. Neither is copied; mutating
// the table (via AddWord/RemoveWord) requires calling InvalidateCache.
func New(tree *bktree.Tree, table *dicttable.Table) *Suggester {
	return &Suggester{
		tree:            tree,
		table:           table,
		damerau:         distance.NewMemoized(100000),
		normCache:       cache.New(100000),
		suggestionCache: cache.New(10000),
	}
}

// InvalidateCache clears the suggestion cache. Callers must invoke this
// after any dictionary table mutation (§3's invariant); the Damerau and
// normalization caches are pure-function caches and need not be cleared.
func (s *Suggester) InvalidateCache() {
	s.suggestionCache.Clear()
}

// Suggest implements §4.6's suggest(word, options).
func (s *Suggester) Suggest(word string, opts Options) []string {
	if word == "" {
		return nil
	}
	if opts.MaxDist == 0 {
		opts.MaxDist = DefaultOptions.MaxDist
	}

	key := cacheKey(word, opts)
	if v, ok := s.suggestionCache.Get(key); ok {
		return v.([]string)
	}

	r := effectiveRadius(word, opts.MaxDist)
	candidates := s.tree.Query(word, r)

	var present []string
	for _, c := range candidates {
		if s.table.Has(c.Word) {
			present = append(present, c.Word)
		}
	}

	sort.Slice(present, func(i, j int) bool {
		return s.compare(present[i], present[j], word) < 0
	})

	if opts.Limit > 0 && len(present) > opts.Limit {
		present = present[:opts.Limit]
	}

	s.suggestionCache.Put(key, present)
	return present
}

func effectiveRadius(word string, maxDist float64) int {
	n := utf8.RuneCountInString(word)
	if n == 1 {
		return 1
	}
	if maxDist < 1 {
		r := int(math.Ceil(float64(n) * maxDist))
		if r > n-1 {
			r = n - 1
		}
		return r
	}
	return int(maxDist)
}

func cacheKey(word string, opts Options) string {
	return word + "\x00" + strconv.FormatFloat(opts.MaxDist, 'g', -1, 64) + "\x00" + strconv.Itoa(opts.Limit)
}

// compare implements the §4.6 ranking comparator: negative means a ranks
// before b.
func (s *Suggester) compare(a, b, q string) int {
	aExact, bExact := a == q, b == q
	if aExact != bExact {
		if aExact {
			return -1
		}
		return 1
	}

	for stage := 0; stage < 2; stage++ {
		aN, bN, qN := s.normalize(a, stage), s.normalize(b, stage), s.normalize(q, stage)
		aEq, bEq := aN == qN, bN == qN
		if aEq != bEq {
			if aEq {
				return -1
			}
			return 1
		}
	}

	for stage := 0; stage < 2; stage++ {
		aN, bN, qN := s.normalize(a, stage), s.normalize(b, stage), s.normalize(q, stage)
		da, db := s.damerau.Distance(aN, qN), s.damerau.Distance(bN, qN)
		if da != db {
			if da < db {
				return -1
			}
			return 1
		}
	}

	if c := comparePrefix(a, b, q); c != 0 {
		return c
	}

	return strings.Compare(a, b)
}

// comparePrefix implements §4.6 step 4: the first index where a[i]==q[i]
// disagrees in truth value with b[i]==q[i] decides, the true side winning.
func comparePrefix(a, b, q string) int {
	ra, rb, rq := []rune(a), []rune(b), []rune(q)
	n := len(ra)
	if len(rb) > n {
		n = len(rb)
	}
	if len(rq) > n {
		n = len(rq)
	}
	for i := 0; i < n; i++ {
		matchA := i < len(ra) && i < len(rq) && ra[i] == rq[i]
		matchB := i < len(rb) && i < len(rq) && rb[i] == rq[i]
		if matchA != matchB {
			if matchA {
				return -1
			}
			return 1
		}
	}
	return 0
}

// normalize applies the cumulative normalizer chain up to and including
// stage (0 = lowercase, 1 = lowercase then collapse-repeated-runes),
// memoizing every intermediate result.
func (s *Suggester) normalize(str string, stage int) string {
	lowerKey := "L\x00" + str
	var lower string
	if v, ok := s.normCache.Get(lowerKey); ok {
		lower = v.(string)
	} else {
		lower = strings.ToLower(str)
		s.normCache.Put(lowerKey, lower)
	}
	if stage == 0 {
		return lower
	}

	collapseKey := "C\x00" + lower
	if v, ok := s.normCache.Get(collapseKey); ok {
		return v.(string)
	}
	collapsed := collapseAdjacentPairs(lower)
	s.normCache.Put(collapseKey, collapsed)
	return collapsed
}

// collapseAdjacentPairs reproduces the pairwise /(.)\1/g -> $1 collapse
// (drop the second rune of each adjacent equal pair, non-overlapping, left
// to right) with a manual scan since RE2 has no backreference support.
func collapseAdjacentPairs(str string) string {
	runes := []rune(str)
	out := make([]rune, 0, len(runes))
	for i := 0; i < len(runes); i++ {
		out = append(out, runes[i])
		if i+1 < len(runes) && runes[i+1] == runes[i] {
			i++
		}
	}
	return string(out)
}
