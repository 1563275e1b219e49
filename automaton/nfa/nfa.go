// Package nfa implements a non-deterministic finite automaton with
// epsilon-transitions: the shape every NL* hypothesis takes before it is
// handed to the oracle.
package nfa

import (
	"github.com/federico-m-lopez/inferrer/automaton"
	"github.com/federico-m-lopez/inferrer/automaton/state"
	"github.com/federico-m-lopez/inferrer/automaton/word"
)

// Epsilon is the empty-transition label, distinct from every symbol in any
// alphabet (no alphabet may contain the empty string as a token, per the
// data model).
const Epsilon = ""

// transitions holds, for one source state, the ordered list of symbols it
// has outgoing edges on (insertion order) plus the ordered list of targets
// per symbol (also insertion order, deduplicated). Keeping both orders
// explicit is what makes Parse's search order reproducible: Go map
// iteration order is randomized, but this module's reproducibility
// requirement (spec's "Alphabet iteration order must be stable across a
// run") demands a fixed search order.
type transitions struct {
	symbolOrder []string
	targets     map[string][]state.State
}

// NFA is the tuple <Sigma, S, Q, F, delta>: S is a non-empty set of start
// states, delta: Q x (Sigma U {epsilon}) -> 2^Q.
type NFA struct {
	alphabet      map[string]struct{}
	alphabetOrder []string

	starts     map[state.State]struct{}
	startOrder []state.State

	states map[state.State]struct{}
	order  []state.State

	accept map[state.State]struct{}

	trans map[state.State]*transitions
}

// New creates an empty NFA over alphabet, with no states, starts, or
// accepts yet.
func New(alphabet []string) *NFA {
	alphabetSet := make(map[string]struct{}, len(alphabet))
	for _, a := range alphabet {
		alphabetSet[a] = struct{}{}
	}
	return &NFA{
		alphabet:      alphabetSet,
		alphabetOrder: append([]string(nil), alphabet...),
		starts:        map[state.State]struct{}{},
		states:        map[state.State]struct{}{},
		accept:        map[state.State]struct{}{},
		trans:         map[state.State]*transitions{},
	}
}

func (n *NFA) addState(q state.State) {
	if _, ok := n.states[q]; ok {
		return
	}
	n.states[q] = struct{}{}
	n.order = append(n.order, q)
}

// AddState registers q as a member of Q without giving it any transitions,
// starts, or accepts. States referenced by AddTransition/AddStartState/
// AddAcceptState are registered automatically; this exists for states
// that have none of those relations yet (for example a lone accepting
// state with no outgoing edges).
func (n *NFA) AddState(q state.State) {
	n.addState(q)
}

// AddStartState adds q to S, the set of start states.
func (n *NFA) AddStartState(q state.State) {
	n.addState(q)
	if _, ok := n.starts[q]; ok {
		return
	}
	n.starts[q] = struct{}{}
	n.startOrder = append(n.startOrder, q)
}

// AddAcceptState adds q to F, the accept set.
func (n *NFA) AddAcceptState(q state.State) {
	n.addState(q)
	n.accept[q] = struct{}{}
}

// AddTransition adds q2 to delta(q1, a). a must be in Sigma or Epsilon;
// otherwise an *automaton.AlphabetError is returned. Adding the same
// (q1, a, q2) triple twice is a no-op.
func (n *NFA) AddTransition(q1, q2 state.State, a string) error {
	if a != Epsilon {
		if _, ok := n.alphabet[a]; !ok {
			return &automaton.AlphabetError{Op: "NFA.AddTransition", Symbol: a}
		}
	}
	n.addState(q1)
	n.addState(q2)

	tm := n.trans[q1]
	if tm == nil {
		tm = &transitions{targets: map[string][]state.State{}}
		n.trans[q1] = tm
	}
	for _, to := range tm.targets[a] {
		if to == q2 {
			return nil
		}
	}
	if _, seen := tm.targets[a]; !seen {
		tm.symbolOrder = append(tm.symbolOrder, a)
	}
	tm.targets[a] = append(tm.targets[a], q2)
	return nil
}

// Transition performs delta(q1, a) and returns the (possibly empty) list
// of reachable states.
func (n *NFA) Transition(q1 state.State, a string) []state.State {
	tm := n.trans[q1]
	if tm == nil {
		return nil
	}
	return tm.targets[a]
}

// Alphabet returns Sigma in its fixed iteration order.
func (n *NFA) Alphabet() []string {
	return append([]string(nil), n.alphabetOrder...)
}

// States returns Q in insertion order.
func (n *NFA) States() []state.State {
	return append([]state.State(nil), n.order...)
}

// StartStates returns S in insertion order.
func (n *NFA) StartStates() []state.State {
	return append([]state.State(nil), n.startOrder...)
}

// IsAccept reports whether q is in F.
func (n *NFA) IsAccept(q state.State) bool {
	_, ok := n.accept[q]
	return ok
}

// EpsilonClosure returns the standard fixed-point set of states reachable
// from q via zero or more epsilon-transitions (including q itself).
func (n *NFA) EpsilonClosure(q state.State) []state.State {
	closure := map[state.State]struct{}{q: {}}
	order := []state.State{q}
	stack := []state.State{q}

	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, to := range n.Transition(cur, Epsilon) {
			if _, seen := closure[to]; seen {
				continue
			}
			closure[to] = struct{}{}
			order = append(order, to)
			stack = append(stack, to)
		}
	}

	return order
}

// Parse searches for a run of the NFA that consumes exactly s and ends in
// F. It uses an explicit work-stack of (state, input-index) pairs;
// epsilon-transitions advance state without advancing the index. It
// returns the first accepting state found, in the deterministic order
// given by start-state insertion order and, within a state, transition
// insertion order. If no accepting run exists, it returns
// (some start state, false); the NFA must have at least one start state.
func (n *NFA) Parse(s word.Word) (state.State, bool) {
	type frame struct {
		q   state.State
		idx int
	}

	for _, start := range n.startOrder {
		stack := []frame{{start, 0}}
		for len(stack) > 0 {
			f := stack[len(stack)-1]
			stack = stack[:len(stack)-1]

			if f.idx == len(s) && n.IsAccept(f.q) {
				return f.q, true
			}

			tm := n.trans[f.q]
			if tm == nil {
				continue
			}
			for _, sym := range tm.symbolOrder {
				if sym == Epsilon {
					for _, to := range tm.targets[sym] {
						stack = append(stack, frame{to, f.idx})
					}
				} else if f.idx < len(s) && sym == s[f.idx] {
					for _, to := range tm.targets[sym] {
						stack = append(stack, frame{to, f.idx + 1})
					}
				}
			}
		}
	}

	if len(n.startOrder) == 0 {
		return state.State{}, false
	}
	return n.startOrder[0], false
}
