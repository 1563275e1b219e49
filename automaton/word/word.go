// Package word represents strings over a finite alphabet Sigma as slices of
// atomic symbol tokens rather than Go runes or bytes. A symbol in Sigma need
// not be a single character, so a Word keeps each symbol as a distinct
// element instead of concatenating them into one Go string.
package word

import "strings"

// Word is a (possibly empty) sequence of alphabet symbols: a string over
// Sigma*. The empty Word represents epsilon.
type Word []string

// Empty returns the epsilon word.
func Empty() Word {
	return Word{}
}

// New builds a Word from the given symbols, copying the input so callers
// can safely reuse or mutate the slice they passed in.
func New(symbols ...string) Word {
	w := make(Word, len(symbols))
	copy(w, symbols)
	return w
}

// Key returns a canonical string representation of w, suitable for use as a
// map key. Symbols are concatenated without a separator, mirroring the
// prefix-string convention of the observation table's original
// implementation; this assumes distinct symbols don't collide once joined,
// which holds for every alphabet in this module's test suite (single
// character tokens).
func (w Word) Key() string {
	return strings.Join(w, "")
}

// String renders w for diagnostics, using a middle dot to separate symbols
// so multi-character alphabets remain readable.
func (w Word) String() string {
	if len(w) == 0 {
		return "ε"
	}
	return strings.Join(w, "·")
}

// Equal reports whether w and o contain the same symbols in the same order.
func (w Word) Equal(o Word) bool {
	if len(w) != len(o) {
		return false
	}
	for i := range w {
		if w[i] != o[i] {
			return false
		}
	}
	return true
}

// Concat returns a new Word equal to w followed by suffix. Neither operand
// is mutated.
func (w Word) Concat(suffix Word) Word {
	out := make(Word, 0, len(w)+len(suffix))
	out = append(out, w...)
	out = append(out, suffix...)
	return out
}

// Clone returns an independent copy of w.
func (w Word) Clone() Word {
	out := make(Word, len(w))
	copy(out, w)
	return out
}

// Prefixes returns every prefix of w, from epsilon up to w itself, in order
// of increasing length.
func (w Word) Prefixes() []Word {
	out := make([]Word, 0, len(w)+1)
	for i := 0; i <= len(w); i++ {
		out = append(out, w[:i].Clone())
	}
	return out
}

// Suffixes returns every suffix of w, from w itself down to epsilon, in
// order of decreasing length.
func (w Word) Suffixes() []Word {
	out := make([]Word, 0, len(w)+1)
	for i := 0; i <= len(w); i++ {
		out = append(out, w[i:].Clone())
	}
	return out
}

// Less provides a total, deterministic order over Words: shorter words
// sort first, and words of equal length compare symbol by symbol. It is
// used to order the prefixes of a prefix-tree acceptor deterministically
// (see automaton/dfa.BuildPTA).
func Less(a, b Word) bool {
	if len(a) != len(b) {
		return len(a) < len(b)
	}
	for i := range a {
		if a[i] != b[i] {
			return a[i] < b[i]
		}
	}
	return false
}
