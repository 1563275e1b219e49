// Package oracle provides the sampling oracle collaborator: an Oracle
// implementation backed by finite positive and negative example sets,
// used to drive the learner in tests and in any embedding that already
// has a labeled corpus instead of a live membership/equivalence source.
package oracle

import (
	"github.com/federico-m-lopez/inferrer/automaton/nfa"
	"github.com/federico-m-lopez/inferrer/automaton/word"
)

// SamplingOracle answers membership by set lookup (out-of-sample strings
// are rejected by default) and equivalence by scanning its examples,
// negative ones first and then positive ones, each in the order they were
// supplied, for the first one the hypothesis misclassifies.
type SamplingOracle struct {
	labels map[string]int // word.Key() -> 0 or 1
	order  []word.Word    // negative then positive, first-seen order
}

// New builds a SamplingOracle from positive and negative example sets.
// A string present in both is resolved in favor of its positive
// classification, since the oracle contract gives no way to report a
// contradictory sample; callers should not construct overlapping sets.
func New(positive, negative []word.Word) *SamplingOracle {
	o := &SamplingOracle{labels: map[string]int{}}
	for _, w := range negative {
		o.labels[w.Key()] = 0
		o.order = append(o.order, w)
	}
	for _, w := range positive {
		if _, ok := o.labels[w.Key()]; !ok {
			o.order = append(o.order, w)
		}
		o.labels[w.Key()] = 1
	}
	return o
}

// Membership reports whether w is one of the oracle's positive examples.
// Strings outside both example sets are rejected, matching the
// reference collaborator's documented default.
func (o *SamplingOracle) Membership(w word.Word) int {
	return o.labels[w.Key()]
}

// Equivalence reports h equivalent to the target language restricted to
// this oracle's examples: it scans them (negatives, then positives, each
// in supply order) for the first one h misclassifies. With no examples at all, any hypothesis is
// reported equivalent, since the oracle has nothing to disagree on.
func (o *SamplingOracle) Equivalence(h *nfa.NFA) (equivalent bool, counterexample word.Word) {
	if len(o.order) == 0 {
		return true, nil
	}
	for _, w := range o.order {
		_, accepted := h.Parse(w)
		want := o.labels[w.Key()]
		if accepted != (want == 1) {
			return false, w
		}
	}
	return true, nil
}
