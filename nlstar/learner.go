// Package nlstar implements the NL* active-learning outer loop: close
// and consistify the observation table, build an NFA hypothesis from
// its prime rows, submit it to the oracle, and fold counterexamples back
// in until the oracle reports equivalence.
package nlstar

import (
	"context"

	"github.com/google/uuid"

	"github.com/federico-m-lopez/inferrer/automaton/nfa"
	"github.com/federico-m-lopez/inferrer/automaton/word"
	"github.com/federico-m-lopez/inferrer/nlstar/table"
)

// Oracle is the learner's only external dependency: a pure membership
// function and an equivalence check against a hypothesis NFA.
type Oracle interface {
	// Membership answers whether w is in the target language.
	Membership(w word.Word) int
	// Equivalence reports whether h recognizes the target language. If
	// not, it returns a counterexample w such that
	// h.Parse(w) disagrees with Membership(w).
	Equivalence(h *nfa.NFA) (equivalent bool, counterexample word.Word)
}

// Learner runs NL* to convergence against an Oracle. A Learner is
// single-use and single-threaded: it owns its observation table
// exclusively for the lifetime of one Learn call, and Learn must not be
// called concurrently or more than once on the same Learner.
type Learner struct {
	// RunID correlates this learner's log lines and diagnostics across
	// a run; it has no bearing on learning behavior.
	RunID uuid.UUID

	alphabet      []string
	oracle        Oracle
	table         *table.Table
	maxIterations int
	logger        Logger
}

// New creates a Learner over alphabet, querying oracle for membership
// and equivalence answers.
func New(alphabet []string, oracle Oracle, opts ...Option) *Learner {
	l := &Learner{
		RunID:    uuid.New(),
		alphabet: append([]string(nil), alphabet...),
		oracle:   oracle,
		logger:   noopLogger{},
	}
	for _, opt := range opts {
		opt(l)
	}
	l.table = table.New(l.alphabet, membershipAdapter{oracle})
	return l
}

// membershipAdapter lets the table call an Oracle's Membership method
// without the table package depending on the NFA-shaped Equivalence
// method.
type membershipAdapter struct {
	oracle Oracle
}

func (m membershipAdapter) Membership(w word.Word) int {
	return m.oracle.Membership(w)
}

// Learn runs the algorithm to convergence and returns the learned NFA.
func (l *Learner) Learn() (*nfa.NFA, error) {
	return l.LearnContext(context.Background())
}

// LearnContext is Learn with cooperative cancellation: ctx is checked
// immediately before each equivalence query, the only natural
// suspension point in an otherwise synchronous loop.
func (l *Learner) LearnContext(ctx context.Context) (*nfa.NFA, error) {
	if err := l.table.Initialize(); err != nil {
		return nil, err
	}

	iterations := 0
	for {
		if err := l.closeAndConsistify(); err != nil {
			return nil, err
		}

		if err := ctx.Err(); err != nil {
			return nil, err
		}

		iterations++
		if l.maxIterations > 0 && iterations > l.maxIterations {
			return nil, ErrMaxIterations
		}

		h := buildHypothesis(l.table)

		equivalent, cex := l.oracle.Equivalence(h)
		l.logger.Printf("nlstar[%s]: equivalence query #%d -> %v", l.RunID, iterations, equivalent)
		if equivalent {
			if err := l.verifyAgainstCache(h); err != nil {
				return nil, err
			}
			return h, nil
		}

		if err := l.absorbCounterexample(h, cex); err != nil {
			return nil, err
		}
	}
}

// closeAndConsistify repairs closedness and consistency defects until
// both predicates hold, which is the precondition for building a
// hypothesis.
func (l *Learner) closeAndConsistify() error {
	for {
		witness, closed := l.table.IsClosed()
		if !closed {
			l.logger.Printf("nlstar[%s]: closing on witness %s", l.RunID, witness)
			if err := l.table.Close(witness); err != nil {
				return err
			}
			continue
		}

		suffix, consistent := l.table.IsConsistent()
		if !consistent {
			l.logger.Printf("nlstar[%s]: adding consistency suffix %s", l.RunID, suffix)
			l.table.AddSuffix(suffix)
			continue
		}

		return nil
	}
}

// absorbCounterexample rejects cex as spurious if h already classifies
// it the same way the oracle does, then folds every suffix of cex into
// the table.
func (l *Learner) absorbCounterexample(h *nfa.NFA, cex word.Word) error {
	accepted := parseAccepts(h, cex)
	if accepted == (l.oracle.Membership(cex) == 1) {
		return &OracleInconsistentError{
			Op:             "Learner.Learn",
			Detail:         "counterexample is already correctly classified by the hypothesis",
			Counterexample: cex,
		}
	}
	return l.table.AddCounterexample(cex)
}

// verifyAgainstCache replays every membership answer seen so far against
// h, the hypothesis the oracle just claimed equivalence for. Any
// disagreement means the oracle contradicted itself.
func (l *Learner) verifyAgainstCache(h *nfa.NFA) error {
	for _, entry := range l.table.CacheEntries() {
		if parseAccepts(h, entry.Word) != (entry.Value == 1) {
			return &OracleInconsistentError{
				Op:             "Learner.Learn",
				Detail:         "oracle reported equivalence but hypothesis disagrees with a cached membership answer",
				Counterexample: entry.Word,
			}
		}
	}
	return nil
}

func parseAccepts(h *nfa.NFA, w word.Word) bool {
	_, accepted := h.Parse(w)
	return accepted
}
