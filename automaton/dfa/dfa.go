// Package dfa implements a deterministic finite automaton: the shape of the
// prefix-tree acceptor built by BuildPTA and of the result of
// nfa.NFA.ToDFA's subset construction and reachability-minimization.
package dfa

import (
	"sort"

	"github.com/federico-m-lopez/inferrer/automaton"
	"github.com/federico-m-lopez/inferrer/automaton/state"
	"github.com/federico-m-lopez/inferrer/automaton/word"
)

// DFA is the tuple <Sigma, q0, Q, F, R, delta>: a deterministic automaton
// with an optional reject set R used only by partial automata such as the
// prefix-tree acceptor (strings in neither F nor R are "unknown").
type DFA struct {
	alphabet      map[string]struct{}
	alphabetOrder []string

	start state.State

	states map[state.State]struct{}
	order  []state.State // insertion order, kept for deterministic iteration

	accept map[state.State]struct{}
	reject map[state.State]struct{}

	trans map[state.State]map[string]state.State // delta: Q x Sigma -> Q (partial)
}

// New creates an empty DFA over alphabet with the conventional epsilon
// start state.
func New(alphabet []string) *DFA {
	return NewWithStart(alphabet, state.Start)
}

// NewWithStart creates an empty DFA over alphabet with a caller-chosen
// start state.
func NewWithStart(alphabet []string, start state.State) *DFA {
	alphabetSet := make(map[string]struct{}, len(alphabet))
	for _, a := range alphabet {
		alphabetSet[a] = struct{}{}
	}

	d := &DFA{
		alphabet:      alphabetSet,
		alphabetOrder: append([]string(nil), alphabet...),
		start:         start,
		states:        map[state.State]struct{}{},
		accept:        map[state.State]struct{}{},
		reject:        map[state.State]struct{}{},
		trans:         map[state.State]map[string]state.State{},
	}
	d.addState(start)
	return d
}

func (d *DFA) addState(q state.State) {
	if _, ok := d.states[q]; ok {
		return
	}
	d.states[q] = struct{}{}
	d.order = append(d.order, q)
}

// AddTransition sets delta(q1, a) = q2, overwriting any previous target.
// It fails with an *automaton.AlphabetError if a is not in Sigma.
func (d *DFA) AddTransition(q1, q2 state.State, a string) error {
	if _, ok := d.alphabet[a]; !ok {
		return &automaton.AlphabetError{Op: "DFA.AddTransition", Symbol: a}
	}
	d.addState(q1)
	d.addState(q2)
	if d.trans[q1] == nil {
		d.trans[q1] = map[string]state.State{}
	}
	d.trans[q1][a] = q2
	return nil
}

// TransitionExists reports whether delta(q1, a) is defined.
func (d *DFA) TransitionExists(q1 state.State, a string) bool {
	_, ok := d.Transition(q1, a)
	return ok
}

// Transition performs delta(q1, a) and reports whether it was defined.
func (d *DFA) Transition(q1 state.State, a string) (state.State, bool) {
	m, ok := d.trans[q1]
	if !ok {
		return state.State{}, false
	}
	q2, ok := m[a]
	return q2, ok
}

// Parse feeds s through delta from the start state. It stops at the first
// undefined transition, returning the state reached so far and false. On
// full consumption it returns the final state and whether it is accepting.
func (d *DFA) Parse(s word.Word) (state.State, bool) {
	q := d.start
	for _, a := range s {
		next, ok := d.Transition(q, a)
		if !ok {
			return q, false
		}
		q = next
	}
	_, accepted := d.accept[q]
	return q, accepted
}

// Start returns the DFA's start state q0.
func (d *DFA) Start() state.State {
	return d.start
}

// Alphabet returns Sigma in its fixed iteration order.
func (d *DFA) Alphabet() []string {
	return append([]string(nil), d.alphabetOrder...)
}

// States returns every state in Q, in insertion order.
func (d *DFA) States() []state.State {
	return append([]state.State(nil), d.order...)
}

// SetAccept adds q to F, the accept set, creating it if necessary.
func (d *DFA) SetAccept(q state.State) {
	d.addState(q)
	d.accept[q] = struct{}{}
}

// SetReject adds q to R, the reject set used only by partial DFAs such as
// the prefix-tree acceptor.
func (d *DFA) SetReject(q state.State) {
	d.addState(q)
	d.reject[q] = struct{}{}
}

// IsAccept reports whether q is in F.
func (d *DFA) IsAccept(q state.State) bool {
	_, ok := d.accept[q]
	return ok
}

// IsReject reports whether q is in R.
func (d *DFA) IsReject(q state.State) bool {
	_, ok := d.reject[q]
	return ok
}

// Minimize returns a DFA restricted to states reachable from q0 by
// depth-first exploration over Sigma. Accept/reject classifications are
// preserved; unreachable states and their transitions are dropped. This is
// reachability-minimization only, not Hopcroft-style equivalence
// minimization.
func (d *DFA) Minimize() *DFA {
	m := NewWithStart(d.alphabetOrder, d.start)

	stack := []state.State{d.start}
	visited := map[state.State]struct{}{d.start: {}}

	for len(stack) > 0 {
		q := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		m.addState(q)

		for _, a := range d.alphabetOrder {
			to, ok := d.Transition(q, a)
			if !ok {
				continue
			}
			// Symbol a is guaranteed to be in m's alphabet since m shares
			// d's alphabet, so the error return is unreachable here.
			_ = m.AddTransition(q, to, a)
			if _, seen := visited[to]; !seen {
				visited[to] = struct{}{}
				stack = append(stack, to)
			}
		}

		switch {
		case d.IsAccept(q):
			m.SetAccept(q)
		case d.IsReject(q):
			m.SetReject(q)
		}
	}

	return m
}

// FindPredecessor returns some (q', a) with delta(q', a) = q, or false if
// q has no predecessor. Candidates are sorted by (from-label, symbol)
// before the first is returned, giving a deterministic tie-break for a
// given insertion order, matching the original implementation's reliance
// on sorted transition-table iteration.
func (d *DFA) FindPredecessor(q state.State) (state.State, string, bool) {
	type candidate struct {
		from state.State
		sym  string
	}

	var candidates []candidate
	for from, m := range d.trans {
		for sym, to := range m {
			if to == q {
				candidates = append(candidates, candidate{from, sym})
			}
		}
	}
	if len(candidates) == 0 {
		return state.State{}, "", false
	}

	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].from.Label() != candidates[j].from.Label() {
			return candidates[i].from.Label() < candidates[j].from.Label()
		}
		return candidates[i].sym < candidates[j].sym
	})

	best := candidates[0]
	return best.from, best.sym, true
}
