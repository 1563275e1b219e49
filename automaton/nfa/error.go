package nfa

import "github.com/federico-m-lopez/inferrer/automaton"

// AlphabetError is re-exported so callers don't need to import the
// automaton package directly to type-switch on it.
type AlphabetError = automaton.AlphabetError
