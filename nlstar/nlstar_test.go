package nlstar

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/federico-m-lopez/inferrer/automaton/nfa"
	"github.com/federico-m-lopez/inferrer/automaton/word"
	"github.com/federico-m-lopez/inferrer/oracle"
)

// repeat builds a Word of n copies of sym.
func repeat(sym string, n int) word.Word {
	syms := make([]string, n)
	for i := range syms {
		syms[i] = sym
	}
	return word.New(syms...)
}

// allWords enumerates every Word over alphabet with length in
// [minLen, maxLen], inclusive.
func allWords(alphabet []string, minLen, maxLen int) []word.Word {
	var out []word.Word
	var rec func(prefix []string, depth int)
	rec = func(prefix []string, depth int) {
		if depth >= minLen {
			out = append(out, word.New(prefix...))
		}
		if depth == maxLen {
			return
		}
		for _, a := range alphabet {
			next := make([]string, len(prefix)+1)
			copy(next, prefix)
			next[len(prefix)] = a
			rec(next, depth+1)
		}
	}
	rec(nil, 0)
	return out
}

func countSymbol(w word.Word, sym string) int {
	n := 0
	for _, s := range w {
		if s == sym {
			n++
		}
	}
	return n
}

func containsSubstring(w word.Word, sub []string) bool {
	if len(sub) > len(w) {
		return false
	}
	for i := 0; i+len(sub) <= len(w); i++ {
		match := true
		for j := range sub {
			if w[i+j] != sub[j] {
				match = false
				break
			}
		}
		if match {
			return true
		}
	}
	return false
}

func acceptCount(h *nfa.NFA) int {
	n := 0
	for _, q := range h.States() {
		if h.IsAccept(q) {
			n++
		}
	}
	return n
}

// TestNLStar_E1_KleeneStar: Sigma = {a}, S+ = {a^i : 0 <= i <= 24}, S- = {}.
func TestNLStar_E1_KleeneStar(t *testing.T) {
	var positive []word.Word
	for i := 0; i <= 24; i++ {
		positive = append(positive, repeat("a", i))
	}
	o := oracle.New(positive, nil)

	h, err := New([]string{"a"}, o).Learn()
	require.NoError(t, err)

	assert.Len(t, h.States(), 1)
	assert.Equal(t, 1, acceptCount(h))
	_, accepted := h.Parse(repeat("a", 1000))
	assert.True(t, accepted)
}

// TestNLStar_E2_KleenePlus: Sigma = {a}, S+ = {a,aa,aaa,aaaa,a^8}, S- = {eps}.
func TestNLStar_E2_KleenePlus(t *testing.T) {
	positive := []word.Word{repeat("a", 1), repeat("a", 2), repeat("a", 3), repeat("a", 4), repeat("a", 8)}
	negative := []word.Word{word.Empty()}
	o := oracle.New(positive, negative)

	h, err := New([]string{"a"}, o).Learn()
	require.NoError(t, err)

	assert.Len(t, h.States(), 2)
	assert.Equal(t, 1, acceptCount(h))
}

// TestNLStar_E3_AllStringsUpToLengthFour: Sigma = {a,b}, S+ = every
// non-empty string of length <= 4, S- = {eps}.
func TestNLStar_E3_AllStringsUpToLengthFour(t *testing.T) {
	positive := allWords([]string{"a", "b"}, 1, 4)
	negative := []word.Word{word.Empty()}
	o := oracle.New(positive, negative)

	h, err := New([]string{"a", "b"}, o).Learn()
	require.NoError(t, err)

	assert.Len(t, h.States(), 2)
	assert.Equal(t, 1, acceptCount(h))
}

// TestNLStar_E4_OddNumberOfAs: Sigma = {a}, S+ = odd-length runs of a up
// to 19, S- = even-length runs up to 18.
func TestNLStar_E4_OddNumberOfAs(t *testing.T) {
	var positive, negative []word.Word
	for i := 1; i <= 19; i += 2 {
		positive = append(positive, repeat("a", i))
	}
	for i := 0; i <= 18; i += 2 {
		negative = append(negative, repeat("a", i))
	}
	o := oracle.New(positive, negative)

	h, err := New([]string{"a"}, o).Learn()
	require.NoError(t, err)

	assert.Len(t, h.States(), 2)
	assert.Equal(t, 1, acceptCount(h))

	for _, w := range append(append([]word.Word{}, positive...), negative...) {
		_, accepted := h.Parse(w)
		assert.Equal(t, o.Membership(w) == 1, accepted, "parser disagrees with oracle on training string %q", w)
	}
}

// TestNLStar_E5_OddNumberOfOnes: Sigma = {0,1}, strings up to length 7,
// classified by parity of the count of "1".
func TestNLStar_E5_OddNumberOfOnes(t *testing.T) {
	all := allWords([]string{"0", "1"}, 0, 7)
	var positive, negative []word.Word
	for _, w := range all {
		if countSymbol(w, "1")%2 == 1 {
			positive = append(positive, w)
		} else {
			negative = append(negative, w)
		}
	}
	o := oracle.New(positive, negative)

	h, err := New([]string{"0", "1"}, o).Learn()
	require.NoError(t, err)

	for _, w := range negative {
		_, accepted := h.Parse(w)
		assert.False(t, accepted, "hypothesis should reject negative example %q", w)
	}
}

// TestNLStar_E6_Contains101: Sigma = {0,1}, strings of length 3..10,
// classified by whether "101" occurs as a substring.
func TestNLStar_E6_Contains101(t *testing.T) {
	all := allWords([]string{"0", "1"}, 3, 10)
	sub := []string{"1", "0", "1"}
	var positive, negative []word.Word
	for _, w := range all {
		if containsSubstring(w, sub) {
			positive = append(positive, w)
		} else {
			negative = append(negative, w)
		}
	}
	o := oracle.New(positive, negative)

	h, err := New([]string{"0", "1"}, o).Learn()
	require.NoError(t, err)

	for _, w := range negative {
		_, accepted := h.Parse(w)
		assert.False(t, accepted, "hypothesis should reject negative example %q", strings.Join(w, ""))
	}
}
