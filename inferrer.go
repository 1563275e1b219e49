// Package inferrer learns a regular language from an oracle that
// answers membership and equivalence queries, using the NL* active
// learning algorithm to produce a residual finite-state automaton (an
// NFA whose states are the prime residual languages of the target).
//
// Basic usage:
//
//	o := oracle.New(positiveExamples, negativeExamples)
//	h, err := inferrer.Learn([]string{"a", "b"}, o)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	_, accepted := h.Parse(word.New("a", "b", "a"))
package inferrer

import (
	"context"

	"github.com/federico-m-lopez/inferrer/automaton/nfa"
	"github.com/federico-m-lopez/inferrer/nlstar"
)

// Oracle is re-exported so callers don't need to import nlstar directly
// to implement or reference the learner's external contract.
type Oracle = nlstar.Oracle

// Option configures a learning run.
type Option = nlstar.Option

// WithMaxIterations caps the number of equivalence queries a run will
// issue before failing with nlstar.ErrMaxIterations.
func WithMaxIterations(n int) Option {
	return nlstar.WithMaxIterations(n)
}

// WithLogger installs a logger the learner writes progress lines to.
func WithLogger(logger nlstar.Logger) Option {
	return nlstar.WithLogger(logger)
}

// Learn runs NL* to convergence over alphabet against oracle and
// returns the learned NFA.
func Learn(alphabet []string, oracle Oracle, opts ...Option) (*nfa.NFA, error) {
	return nlstar.New(alphabet, oracle, opts...).Learn()
}

// LearnContext is Learn with cooperative cancellation via ctx, checked
// immediately before each equivalence query.
func LearnContext(ctx context.Context, alphabet []string, oracle Oracle, opts ...Option) (*nfa.NFA, error) {
	return nlstar.New(alphabet, oracle, opts...).LearnContext(ctx)
}

// MustLearn is Learn but panics on error; it exists for callers (tests,
// small tools) that would just as soon crash as handle a learner
// failure, mirroring the Must-prefixed helpers common in the standard
// library (e.g. regexp.MustCompile).
func MustLearn(alphabet []string, oracle Oracle, opts ...Option) *nfa.NFA {
	h, err := Learn(alphabet, oracle, opts...)
	if err != nil {
		panic(err)
	}
	return h
}
