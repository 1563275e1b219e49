// Package row implements the observation-table row algebra: a bit-vector
// indexed by suffix experiments, plus the partial order and "composed-of"
// (join) relation over rows that the NL* closure/consistency checks and
// RFSA construction are built from.
package row

import (
	"sort"
	"strings"

	"github.com/federico-m-lopez/inferrer/automaton/word"
)

// Row is one row of the observation table: the function v -> T(u, v) for
// a fixed prefix u. Columns is keyed by suffix.Key() rather than by the
// word.Word itself, since slices aren't comparable and can't be map keys.
type Row struct {
	Prefix  word.Word
	Columns map[string]int
}

// New creates an empty row for the given prefix. Columns must be
// populated with Set before the row is used in any comparison.
func New(prefix word.Word) *Row {
	return &Row{Prefix: prefix, Columns: map[string]int{}}
}

// Set records the table cell T(r.Prefix, suffix) = bit.
func (r *Row) Set(suffix word.Word, bit int) {
	r.Columns[suffix.Key()] = bit
}

// Get returns the table cell T(r.Prefix, suffix). It returns 0 if suffix
// is outside the row's current domain, which should never happen once the
// observation table's invariant (every row's domain equals V) holds.
func (r *Row) Get(suffix word.Word) int {
	return r.Columns[suffix.Key()]
}

// Has reports whether suffix is in the row's column domain.
func (r *Row) Has(suffix word.Word) bool {
	_, ok := r.Columns[suffix.Key()]
	return ok
}

// domainKeys returns the row's suffix keys in sorted order, giving a
// canonical iteration order independent of map internals.
func (r *Row) domainKeys() []string {
	keys := make([]string, 0, len(r.Columns))
	for k := range r.Columns {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Key returns a canonical string encoding of the row's columns, suitable
// for use as a map key and for row-equality comparisons that don't want to
// walk both column maps by hand. Two rows with the same domain have equal
// Key() iff they have equal Columns.
func (r *Row) Key() string {
	var b strings.Builder
	for _, k := range r.domainKeys() {
		b.WriteString(k)
		b.WriteByte('=')
		if r.Columns[k] != 0 {
			b.WriteByte('1')
		} else {
			b.WriteByte('0')
		}
		b.WriteByte(';')
	}
	return b.String()
}

// Equal reports whether r and o have identical column maps (same key set,
// same values).
func (r *Row) Equal(o *Row) bool {
	return r.Key() == o.Key()
}

// LessEqual reports whether r <= o: for every suffix in r's domain,
// r.columns[v] <= o.columns[v]. Rows being compared are expected to share
// a domain (the table's invariant guarantees this for any two rows drawn
// from the same table).
func (r *Row) LessEqual(o *Row) bool {
	for k, v := range r.Columns {
		if v > o.Columns[k] {
			return false
		}
	}
	return true
}

// Less reports the strict partial order: r <= o and r != o.
func (r *Row) Less(o *Row) bool {
	return r.LessEqual(o) && !r.Equal(o)
}

// IsZero reports whether every column of r is 0.
func (r *Row) IsZero() bool {
	for _, v := range r.Columns {
		if v != 0 {
			return false
		}
	}
	return true
}

// Join returns the componentwise join (max) of rows over domain: the row
// r such that r.columns[v] = max(rows[i].columns[v]) for every v in
// domain. The returned row has no single prefix, since a join generally
// isn't the row of any one access string; its Prefix is left as nil.
func Join(rows []*Row, domain []word.Word) *Row {
	j := New(nil)
	for _, v := range domain {
		j.Set(v, 0)
	}
	for _, r := range rows {
		for _, v := range domain {
			if bit := r.Get(v); bit > j.Get(v) {
				j.Set(v, bit)
			}
		}
	}
	return j
}

// IsCoveredBy reports whether r <= join(rows), i.e. every 1-cell in r is
// witnessed by some row in rows (the "composed-of" relation, r subset-of
// rows[0] OR rows[1] OR ...).
func (r *Row) IsCoveredBy(rows []*Row, domain []word.Word) bool {
	return r.LessEqual(Join(rows, domain))
}

// IsPrime reports whether r is prime among candidates: r is not the
// all-zero row, and cannot be written as the componentwise join of rows
// strictly below it drawn from candidates. This is computed directly per
// the definition: join every row in candidates that is strictly less than
// r, and check whether that join equals r; if it does, r is composed, not
// prime. (When no candidate is strictly below r, the join is the all-zero
// row, which can only equal r if r itself is zero — already excluded.)
func (r *Row) IsPrime(candidates []*Row, domain []word.Word) bool {
	if r.IsZero() {
		return false
	}
	var below []*Row
	for _, c := range candidates {
		if c.Less(r) {
			below = append(below, c)
		}
	}
	return !Join(below, domain).Equal(r)
}
