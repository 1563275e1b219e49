// Package table implements the NL* observation table: the prefix/suffix
// bookkeeping, membership-query cache, and the RFSA-closedness /
// RFSA-consistency predicates that drive the learner's main loop.
package table

import (
	"github.com/federico-m-lopez/inferrer/automaton"
	"github.com/federico-m-lopez/inferrer/automaton/word"
	"github.com/federico-m-lopez/inferrer/nlstar/row"
)

// MembershipOracle is the subset of the oracle contract the table needs:
// a pure function of a word to {0,1}.
type MembershipOracle interface {
	Membership(w word.Word) int
}

// Table is the tuple <U, L, V, T, cache>. U is the set of upper (access)
// prefixes, L their one-letter extensions, V the suffix experiments, T
// the cell values, and cache the memoized oracle answers keyed by the
// full concatenated string. U, V and the row set only ever grow.
type Table struct {
	alphabet    []string
	alphabetSet map[string]bool

	upperOrder []word.Word
	upperSet   map[string]bool

	lowerOrder []word.Word
	lowerSet   map[string]bool

	suffixOrder []word.Word
	suffixSet   map[string]bool

	rows  map[string]*row.Row    // keyed by prefix.Key()
	cache map[string]cacheEntry // keyed by (prefix+suffix).Key()

	oracle MembershipOracle
}

// cacheEntry pairs a memoized membership answer with the word it
// answers for, so the learner can replay every query it has made so far
// (CacheEntries) when double-checking an oracle's equivalence claim.
type cacheEntry struct {
	word word.Word
	val  int
}

// CacheEntry is one memoized membership answer.
type CacheEntry struct {
	Word  word.Word
	Value int
}

// CacheEntries returns every membership query answered so far, in no
// particular order. It exists so a learner can replay cached answers
// against a hypothesis before trusting an oracle's claim of equivalence.
func (t *Table) CacheEntries() []CacheEntry {
	out := make([]CacheEntry, 0, len(t.cache))
	for _, e := range t.cache {
		out = append(out, CacheEntry{Word: e.word, Value: e.val})
	}
	return out
}

// New creates an empty, uninitialized table over alphabet. Call
// Initialize before using it.
func New(alphabet []string, oracle MembershipOracle) *Table {
	alphaSet := make(map[string]bool, len(alphabet))
	for _, a := range alphabet {
		alphaSet[a] = true
	}
	return &Table{
		alphabet:    append([]string(nil), alphabet...),
		alphabetSet: alphaSet,
		upperSet:    map[string]bool{},
		lowerSet:    map[string]bool{},
		suffixSet:   map[string]bool{},
		rows:        map[string]*row.Row{},
		cache:       map[string]cacheEntry{},
		oracle:      oracle,
	}
}

// Initialize sets U = {epsilon}, V = {epsilon}, L = {a | a in Sigma},
// fills every cell via the oracle, and checks the resulting invariants.
func (t *Table) Initialize() error {
	t.addUpper(word.Empty())
	t.addSuffix(word.Empty())
	for _, a := range t.alphabet {
		t.addLower(word.New(a))
	}
	for _, p := range t.allPrefixes() {
		t.fillAllSuffixes(p)
	}
	return t.CheckInvariants()
}

// Alphabet returns Sigma in its fixed iteration order.
func (t *Table) Alphabet() []string {
	return append([]string(nil), t.alphabet...)
}

// Upper returns U in insertion order.
func (t *Table) Upper() []word.Word {
	return append([]word.Word(nil), t.upperOrder...)
}

// Lower returns L in insertion order.
func (t *Table) Lower() []word.Word {
	return append([]word.Word(nil), t.lowerOrder...)
}

// Suffixes returns V in insertion order.
func (t *Table) Suffixes() []word.Word {
	return append([]word.Word(nil), t.suffixOrder...)
}

// Row returns the row for prefix, or nil if prefix is not in U union L.
func (t *Table) Row(prefix word.Word) *row.Row {
	return t.rows[prefix.Key()]
}

func (t *Table) addUpper(u word.Word) {
	key := u.Key()
	if t.upperSet[key] {
		return
	}
	t.upperSet[key] = true
	t.upperOrder = append(t.upperOrder, u)
	t.ensureRow(u)
}

func (t *Table) addLower(u word.Word) {
	key := u.Key()
	if t.lowerSet[key] {
		return
	}
	t.lowerSet[key] = true
	t.lowerOrder = append(t.lowerOrder, u)
	t.ensureRow(u)
}

func (t *Table) ensureRow(prefix word.Word) *row.Row {
	key := prefix.Key()
	if r, ok := t.rows[key]; ok {
		return r
	}
	r := row.New(prefix)
	t.rows[key] = r
	return r
}

func (t *Table) allPrefixes() []word.Word {
	out := make([]word.Word, 0, len(t.upperOrder)+len(t.lowerOrder))
	out = append(out, t.upperOrder...)
	out = append(out, t.lowerOrder...)
	return out
}

func (t *Table) allRows() []*row.Row {
	out := make([]*row.Row, 0, len(t.upperOrder)+len(t.lowerOrder))
	for _, u := range t.upperOrder {
		out = append(out, t.rows[u.Key()])
	}
	for _, l := range t.lowerOrder {
		out = append(out, t.rows[l.Key()])
	}
	return out
}

// fillCell computes (or retrieves from cache) T(prefix, suffix) and
// records it in prefix's row.
func (t *Table) fillCell(prefix, suffix word.Word) int {
	full := prefix.Concat(suffix)
	key := full.Key()
	entry, ok := t.cache[key]
	if !ok {
		entry = cacheEntry{word: full, val: t.oracle.Membership(full)}
		t.cache[key] = entry
	}
	t.ensureRow(prefix).Set(suffix, entry.val)
	return entry.val
}

func (t *Table) fillAllSuffixes(prefix word.Word) {
	for _, v := range t.suffixOrder {
		t.fillCell(prefix, v)
	}
}

func (t *Table) fillSuffixForAllPrefixes(v word.Word) {
	for _, p := range t.allPrefixes() {
		t.fillCell(p, v)
	}
}

func (t *Table) addSuffix(v word.Word) bool {
	key := v.Key()
	if t.suffixSet[key] {
		return false
	}
	t.suffixSet[key] = true
	t.suffixOrder = append(t.suffixOrder, v)
	return true
}

// IsPrimeRow reports whether r is prime relative to the table's current
// rows (upper union lower) and suffix domain.
func (t *Table) IsPrimeRow(r *row.Row) bool {
	return r.IsPrime(t.allRows(), t.suffixOrder)
}

// PrimeRowsUpper returns the prime rows among U, in upper-prefix
// insertion order.
func (t *Table) PrimeRowsUpper() []*row.Row {
	candidates := t.allRows()
	var out []*row.Row
	for _, u := range t.upperOrder {
		r := t.rows[u.Key()]
		if r.IsPrime(candidates, t.suffixOrder) {
			out = append(out, r)
		}
	}
	return out
}

// IsClosed reports whether every prime lower row equals some upper row's
// columns. If not, it also returns the first (in L's insertion order)
// offending lower prefix.
func (t *Table) IsClosed() (witness word.Word, closed bool) {
	for _, l := range t.lowerOrder {
		r := t.rows[l.Key()]
		if !t.IsPrimeRow(r) {
			continue
		}
		found := false
		for _, u := range t.upperOrder {
			if t.rows[u.Key()].Equal(r) {
				found = true
				break
			}
		}
		if !found {
			return l, false
		}
	}
	return nil, true
}

// IsConsistent reports whether row order is preserved under one-symbol
// extension: for every u1, u2 in U with row(u1) <= row(u2), and every
// symbol a, row(u1.a) <= row(u2.a) must also hold. If it finds a
// violation, it returns the new suffix (a followed by the disagreeing
// experiment) that must be added to V to repair it.
func (t *Table) IsConsistent() (witness word.Word, consistent bool) {
	for _, u1 := range t.upperOrder {
		r1 := t.rows[u1.Key()]
		for _, u2 := range t.upperOrder {
			if u1.Equal(u2) {
				continue
			}
			r2 := t.rows[u2.Key()]
			if !r1.LessEqual(r2) {
				continue
			}
			for _, a := range t.alphabet {
				ra1 := t.rows[u1.Concat(word.New(a)).Key()]
				ra2 := t.rows[u2.Concat(word.New(a)).Key()]
				if ra1 == nil || ra2 == nil {
					continue
				}
				for _, v := range t.suffixOrder {
					if ra1.Get(v) > ra2.Get(v) {
						return word.New(a).Concat(v), false
					}
				}
			}
		}
	}
	return nil, true
}

// Close promotes witness from L to U, extends it by every alphabet
// symbol into new lower prefixes (skipping ones already present in
// either region), and fills their cells.
func (t *Table) Close(witness word.Word) error {
	key := witness.Key()
	if !t.lowerSet[key] {
		return &InvariantViolation{Op: "Close", Detail: "witness prefix is not in L: " + witness.String()}
	}
	t.removeLower(key)
	t.addUpper(witness)
	t.fillAllSuffixes(witness)

	for _, a := range t.alphabet {
		ext := witness.Concat(word.New(a))
		ek := ext.Key()
		if t.upperSet[ek] || t.lowerSet[ek] {
			continue
		}
		t.addLower(ext)
		t.fillAllSuffixes(ext)
	}
	return t.CheckInvariants()
}

func (t *Table) removeLower(key string) {
	delete(t.lowerSet, key)
	for i, l := range t.lowerOrder {
		if l.Key() == key {
			t.lowerOrder = append(t.lowerOrder[:i], t.lowerOrder[i+1:]...)
			break
		}
	}
}

// AddSuffix adds v to V (a no-op if v is already present) and fills the
// new column for every existing prefix.
func (t *Table) AddSuffix(v word.Word) {
	if !t.addSuffix(v) {
		return
	}
	t.fillSuffixForAllPrefixes(v)
}

// AddCounterexample absorbs w using the all-suffixes strategy: every
// suffix of w not already in V is added as a new experiment. w must be
// composed entirely of symbols in Sigma, or an *automaton.AlphabetError
// is returned. Absorbing the same counterexample twice is a no-op after
// the first absorption, since AddSuffix already is.
func (t *Table) AddCounterexample(w word.Word) error {
	for _, sym := range w {
		if !t.alphabetSet[sym] {
			return &automaton.AlphabetError{Op: "Table.AddCounterexample", Symbol: sym}
		}
	}
	for _, suf := range w.Suffixes() {
		t.AddSuffix(suf)
	}
	return t.CheckInvariants()
}

// UpdateMetaData re-runs CheckInvariants after a batch of mutations. It
// recomputes nothing: the prime row set has no stored copy and is
// computed on demand by PrimeRowsUpper and IsPrimeRow.
func (t *Table) UpdateMetaData() error {
	return t.CheckInvariants()
}

// CheckInvariants asserts: epsilon is in U and V; for every u in U and
// every symbol a, u.a is in U union L; and every row's column domain
// equals V. It returns an *InvariantViolation wrapping ErrInvariant on
// the first violation found.
func (t *Table) CheckInvariants() error {
	if !t.upperSet[word.Empty().Key()] {
		return &InvariantViolation{Op: "CheckInvariants", Detail: "epsilon is not in U"}
	}
	if !t.suffixSet[word.Empty().Key()] {
		return &InvariantViolation{Op: "CheckInvariants", Detail: "epsilon is not in V"}
	}
	for _, u := range t.upperOrder {
		for _, a := range t.alphabet {
			ext := u.Concat(word.New(a))
			ek := ext.Key()
			if !t.upperSet[ek] && !t.lowerSet[ek] {
				return &InvariantViolation{Op: "CheckInvariants", Detail: "missing one-letter extension " + ext.String() + " of " + u.String()}
			}
		}
	}
	for _, p := range t.allPrefixes() {
		r := t.rows[p.Key()]
		if r == nil {
			return &InvariantViolation{Op: "CheckInvariants", Detail: "no row for prefix " + p.String()}
		}
		if len(r.Columns) != len(t.suffixOrder) {
			return &InvariantViolation{Op: "CheckInvariants", Detail: "row domain for " + p.String() + " diverged from V"}
		}
		for _, v := range t.suffixOrder {
			if !r.Has(v) {
				return &InvariantViolation{Op: "CheckInvariants", Detail: "row for " + p.String() + " missing column " + v.String()}
			}
		}
	}
	return nil
}
