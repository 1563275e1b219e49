package nlstar

import (
	"errors"
	"fmt"

	"github.com/federico-m-lopez/inferrer/automaton/word"
)

// ErrOracleInconsistent is the sentinel wrapped by every
// OracleInconsistentError.
var ErrOracleInconsistent = errors.New("oracle contradicts itself")

// OracleInconsistentError reports how the oracle violated its contract:
// either it reported equivalence while disagreeing with a cached
// membership answer, or it returned a counterexample the hypothesis
// already classified correctly.
type OracleInconsistentError struct {
	Op             string
	Detail         string
	Counterexample word.Word
}

func (e *OracleInconsistentError) Error() string {
	if e.Counterexample == nil {
		return fmt.Sprintf("%s: %s", e.Op, e.Detail)
	}
	return fmt.Sprintf("%s: %s (counterexample %s)", e.Op, e.Detail, e.Counterexample.String())
}

func (e *OracleInconsistentError) Unwrap() error {
	return ErrOracleInconsistent
}

// ErrMaxIterations is returned when the learner exceeds its configured
// iteration budget without the oracle ever reporting equivalence.
var ErrMaxIterations = errors.New("learner exceeded its iteration budget")
