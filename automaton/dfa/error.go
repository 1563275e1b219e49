package dfa

import "github.com/federico-m-lopez/inferrer/automaton"

// AlphabetError is re-exported so callers can type-switch on it without
// importing the automaton package directly.
type AlphabetError = automaton.AlphabetError
