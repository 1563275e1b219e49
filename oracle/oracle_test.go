package oracle

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/federico-m-lopez/inferrer/automaton/nfa"
	"github.com/federico-m-lopez/inferrer/automaton/state"
	"github.com/federico-m-lopez/inferrer/automaton/word"
)

func TestSamplingOracle_MembershipLooksUpExamples(t *testing.T) {
	o := New(
		[]word.Word{word.New("a"), word.New("a", "a")},
		[]word.Word{word.Empty()},
	)

	assert.Equal(t, 1, o.Membership(word.New("a")))
	assert.Equal(t, 1, o.Membership(word.New("a", "a")))
	assert.Equal(t, 0, o.Membership(word.Empty()))
	assert.Equal(t, 0, o.Membership(word.New("b")), "out-of-sample strings are rejected by default")
}

func TestSamplingOracle_EquivalenceWithNoExamplesAlwaysHolds(t *testing.T) {
	o := New(nil, nil)

	n := nfa.New([]string{"a"})
	equivalent, cex := o.Equivalence(n)
	assert.True(t, equivalent)
	assert.Nil(t, cex)
}

// aPlus builds an NFA recognizing a+ over {a}.
func aPlus() *nfa.NFA {
	n := nfa.New([]string{"a"})
	q0, q1 := state.New("0"), state.New("1")
	n.AddStartState(q0)
	n.AddAcceptState(q1)
	_ = n.AddTransition(q0, q1, "a")
	_ = n.AddTransition(q1, q1, "a")
	return n
}

func TestSamplingOracle_EquivalenceReturnsFirstMisclassifiedExample(t *testing.T) {
	// a+ misclassifies epsilon if epsilon is claimed positive.
	o := New([]word.Word{word.Empty(), word.New("a")}, nil)

	equivalent, cex := o.Equivalence(aPlus())
	assert.False(t, equivalent)
	assert.Equal(t, word.Empty(), cex)
}

func TestSamplingOracle_EquivalenceHoldsWhenHypothesisAgreesOnAllExamples(t *testing.T) {
	o := New([]word.Word{word.New("a"), word.New("a", "a")}, []word.Word{word.Empty()})

	equivalent, cex := o.Equivalence(aPlus())
	assert.True(t, equivalent)
	assert.Nil(t, cex)
}
