package nlstar

import (
	"github.com/federico-m-lopez/inferrer/automaton/nfa"
	"github.com/federico-m-lopez/inferrer/automaton/state"
	"github.com/federico-m-lopez/inferrer/automaton/word"
	"github.com/federico-m-lopez/inferrer/nlstar/row"
	"github.com/federico-m-lopez/inferrer/nlstar/table"
)

// buildHypothesis materializes an NFA from t's prime upper rows: one
// state per distinct prime row (two access prefixes with equal rows
// collapse onto the same RFSA state), start states are the prime rows
// dominated by row(epsilon), accept states are the prime rows that
// accept epsilon, and a —a→ b is added whenever prime row b is
// dominated by row(a.Prefix + symbol).
func buildHypothesis(t *table.Table) *nfa.NFA {
	h := nfa.New(t.Alphabet())

	primes := t.PrimeRowsUpper()
	unique := map[string]*row.Row{}
	var order []string
	for _, r := range primes {
		k := r.Key()
		if _, ok := unique[k]; !ok {
			unique[k] = r
			order = append(order, k)
		}
	}

	stateFor := make(map[string]state.State, len(order))
	for _, k := range order {
		q := state.New(unique[k].Prefix.String())
		stateFor[k] = q
		h.AddState(q)
	}

	epsilonRow := t.Row(word.Empty())
	for _, k := range order {
		r := unique[k]
		q := stateFor[k]
		if r.LessEqual(epsilonRow) {
			h.AddStartState(q)
		}
		if r.Get(word.Empty()) == 1 {
			h.AddAcceptState(q)
		}
	}

	for _, k := range order {
		r := unique[k]
		q := stateFor[k]
		for _, a := range t.Alphabet() {
			ext := r.Prefix.Concat(word.New(a))
			extRow := t.Row(ext)
			if extRow == nil {
				continue
			}
			for _, k2 := range order {
				if unique[k2].LessEqual(extRow) {
					_ = h.AddTransition(q, stateFor[k2], a)
				}
			}
		}
	}

	return h
}
