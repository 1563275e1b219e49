package nfa

import (
	"sort"
	"strings"

	"github.com/federico-m-lopez/inferrer/automaton/dfa"
	"github.com/federico-m-lopez/inferrer/automaton/state"
	"github.com/federico-m-lopez/inferrer/internal/sparse"
)

// ToDFA converts the NFA to an equivalent DFA by subset construction. If
// the NFA has more than one start state, a fresh start state with
// epsilon-transitions to every original start is introduced first. Rather
// than materializing the full 2^|Q| power set, subsets are discovered by
// BFS from the epsilon-closure of the start set, using a sparse.Set-backed
// worklist to test and record visited state IDs in O(1); only reachable
// subsets ever become DFA states. Each subset is canonicalized as its
// sorted vector of state labels, which doubles as both the memoization
// key and the resulting DFA state's label. The result is then
// reachability-minimized.
func (n *NFA) ToDFA() *dfa.DFA {
	work := n
	if len(n.startOrder) > 1 {
		work = n.withFreshStart()
	}

	ids := make(map[state.State]uint32, len(work.order))
	for i, q := range work.order {
		ids[q] = uint32(i)
	}
	universe := uint32(len(work.order))

	startClosure := work.closureSet(toIDSet(work.startOrder, ids, universe), ids, universe)
	startKey, startLabel := canonicalize(startClosure, work.order)

	out := dfa.NewWithStart(work.alphabetOrder, state.New(startLabel))
	if work.anyAccept(startClosure, work.order) {
		out.SetAccept(out.Start())
	}

	type queued struct {
		key string
		set *sparse.Set
		q   state.State
	}

	visited := map[string]bool{startKey: true}
	queue := []queued{{startKey, startClosure, out.Start()}}

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]

		for _, a := range work.alphabetOrder {
			moved := sparse.New(universe)
			cur.set.Each(func(id uint32) {
				q := work.order[id]
				for _, to := range work.Transition(q, a) {
					moved.Insert(ids[to])
				}
			})
			if moved.IsEmpty() {
				continue // delta undefined for this subset/symbol: partial DFA
			}

			closure := work.closureSet(moved, ids, universe)
			key, label := canonicalize(closure, work.order)
			target := state.New(label)

			if !visited[key] {
				visited[key] = true
				queue = append(queue, queued{key, closure, target})
				if work.anyAccept(closure, work.order) {
					out.SetAccept(target)
				}
			}

			_ = out.AddTransition(cur.q, target, a) // a is always in Sigma here
		}
	}

	return out.Minimize()
}

// withFreshStart returns a copy of n with one additional state that has
// epsilon-transitions to every one of n's original start states, and that
// new state as the sole start state. The top-level transition map is
// copied so the new edge doesn't alias n's storage, but existing states'
// *transitions values are shared since they are never mutated in place.
func (n *NFA) withFreshStart() *NFA {
	fresh := state.New("__q0__")

	newTrans := make(map[state.State]*transitions, len(n.trans)+1)
	for q, tm := range n.trans {
		newTrans[q] = tm
	}
	newTrans[fresh] = &transitions{
		symbolOrder: []string{Epsilon},
		targets:     map[string][]state.State{Epsilon: append([]state.State(nil), n.startOrder...)},
	}

	newStates := make(map[state.State]struct{}, len(n.states)+1)
	for q := range n.states {
		newStates[q] = struct{}{}
	}
	newStates[fresh] = struct{}{}

	return &NFA{
		alphabet:      n.alphabet,
		alphabetOrder: n.alphabetOrder,
		starts:        map[state.State]struct{}{fresh: {}},
		startOrder:    []state.State{fresh},
		states:        newStates,
		order:         append(append([]state.State(nil), n.order...), fresh),
		accept:        n.accept,
		trans:         newTrans,
	}
}

func toIDSet(states []state.State, ids map[state.State]uint32, universe uint32) *sparse.Set {
	s := sparse.New(universe)
	for _, q := range states {
		s.Insert(ids[q])
	}
	return s
}

// closureSet returns the epsilon-closure of every state in frontier,
// including frontier itself.
func (n *NFA) closureSet(frontier *sparse.Set, ids map[state.State]uint32, universe uint32) *sparse.Set {
	closure := sparse.New(universe)
	var stack []uint32
	frontier.Each(func(id uint32) {
		closure.Insert(id)
		stack = append(stack, id)
	})

	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		q := n.order[id]
		for _, to := range n.Transition(q, Epsilon) {
			toID := ids[to]
			if !closure.Contains(toID) {
				closure.Insert(toID)
				stack = append(stack, toID)
			}
		}
	}
	return closure
}

func (n *NFA) anyAccept(subset *sparse.Set, order []state.State) bool {
	found := false
	subset.Each(func(id uint32) {
		if n.IsAccept(order[id]) {
			found = true
		}
	})
	return found
}

// canonicalize returns a memoization key and a DFA-state label for subset,
// both built from the sorted labels of its member states. Sorting gives
// subset construction a canonical representative regardless of discovery
// order, as required for the worklist to converge on a minimal number of
// distinct DFA states.
func canonicalize(subset *sparse.Set, order []state.State) (key, label string) {
	labels := make([]string, 0, subset.Len())
	subset.Each(func(id uint32) {
		labels = append(labels, order[id].Label())
	})
	sort.Strings(labels)
	joined := strings.Join(labels, ",")
	return joined, joined
}
