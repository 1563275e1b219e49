package dfa

import (
	"sort"

	"github.com/federico-m-lopez/inferrer/automaton/state"
	"github.com/federico-m-lopez/inferrer/automaton/word"
)

// BuildPTA builds a prefix-tree acceptor from example strings
// S = sPlus union sMinus: one state per prefix of a sample, delta(u, a) =
// u.a, F = sPlus, R = sMinus. It is an external utility used to seed
// learners other than NL* (the PTA itself plays no role in NL*'s
// observation-table bookkeeping); it is kept here because the L*/RPNI
// family of learners that share this repository's domain all start from
// the same construction.
func BuildPTA(sPlus, sMinus []word.Word) *DFA {
	alphabetSet := map[string]struct{}{}
	samples := make([]word.Word, 0, len(sPlus)+len(sMinus))
	samples = append(samples, sPlus...)
	samples = append(samples, sMinus...)
	for _, s := range samples {
		for _, a := range s {
			alphabetSet[a] = struct{}{}
		}
	}

	alphabet := make([]string, 0, len(alphabetSet))
	for a := range alphabetSet {
		alphabet = append(alphabet, a)
	}
	sort.Strings(alphabet)

	pta := New(alphabet)

	prefixes := prefixSet(samples)
	known := make(map[string]bool, len(prefixes))
	for _, p := range prefixes {
		known[p.Key()] = true
	}

	for _, u := range prefixes {
		uState := state.New(u.Key())
		for _, a := range alphabet {
			ua := u.Concat(word.New(a))
			if !known[ua.Key()] {
				continue
			}
			_ = pta.AddTransition(uState, state.New(ua.Key()), a)
		}
	}

	for _, s := range sPlus {
		pta.SetAccept(state.New(s.Key()))
	}
	for _, s := range sMinus {
		pta.SetReject(state.New(s.Key()))
	}

	return pta
}

// prefixSet returns every distinct prefix (including epsilon and the
// samples themselves) of the given sample words, in a deterministic order
// (shortest first, lexicographic by key within a length).
func prefixSet(samples []word.Word) []word.Word {
	seen := map[string]word.Word{}
	for _, s := range samples {
		for _, p := range s.Prefixes() {
			seen[p.Key()] = p
		}
	}

	out := make([]word.Word, 0, len(seen))
	for _, p := range seen {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return word.Less(out[i], out[j]) })
	return out
}
