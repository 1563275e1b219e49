package table

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/federico-m-lopez/inferrer/automaton"
	"github.com/federico-m-lopez/inferrer/automaton/word"
)

// aStarOracle answers membership for the language a* over {a}.
type aStarOracle struct{}

func (aStarOracle) Membership(w word.Word) int {
	for _, s := range w {
		if s != "a" {
			return 0
		}
	}
	return 1
}

func newAStarTable(t *testing.T) *Table {
	t.Helper()
	tb := New([]string{"a"}, aStarOracle{})
	require.NoError(t, tb.Initialize())
	return tb
}

func TestTable_InitializeSetsUpBaseStructure(t *testing.T) {
	tb := newAStarTable(t)

	assert.ElementsMatch(t, []word.Word{word.Empty()}, tb.Upper())
	assert.ElementsMatch(t, []word.Word{word.New("a")}, tb.Lower())
	assert.ElementsMatch(t, []word.Word{word.Empty()}, tb.Suffixes())

	assert.Equal(t, 1, tb.Row(word.Empty()).Get(word.Empty()))
	assert.Equal(t, 1, tb.Row(word.New("a")).Get(word.Empty()))
	require.NoError(t, tb.CheckInvariants())
}

func TestTable_CloseMovesPrefixFromLowerToUpper(t *testing.T) {
	tb := newAStarTable(t)

	require.NoError(t, tb.Close(word.New("a")))

	assert.Contains(t, tb.Upper(), word.New("a"))
	assert.NotContains(t, tb.Lower(), word.New("a"))
	// a's one-letter extension "aa" must now be in L.
	assert.Contains(t, tb.Lower(), word.New("a", "a"))
	require.NoError(t, tb.CheckInvariants())
}

func TestTable_CloseRejectsPrefixNotInLower(t *testing.T) {
	tb := newAStarTable(t)

	err := tb.Close(word.New("a", "a"))
	var inv *InvariantViolation
	require.True(t, errors.As(err, &inv))
	assert.True(t, errors.Is(err, ErrInvariant))
}

func TestTable_AddSuffixExtendsAllRows(t *testing.T) {
	tb := newAStarTable(t)

	tb.AddSuffix(word.New("a"))

	for _, p := range append(tb.Upper(), tb.Lower()...) {
		assert.True(t, tb.Row(p).Has(word.New("a")), "row for %v missing new column", p)
	}
	require.NoError(t, tb.CheckInvariants())
}

func TestTable_AddSuffixIsIdempotent(t *testing.T) {
	tb := newAStarTable(t)

	before := len(tb.Suffixes())
	tb.AddSuffix(word.Empty())
	assert.Len(t, tb.Suffixes(), before)
}

func TestTable_AddCounterexampleAbsorbsAllSuffixes(t *testing.T) {
	tb := newAStarTable(t)

	require.NoError(t, tb.AddCounterexample(word.New("a", "a", "a")))

	want := word.New("a", "a", "a").Suffixes()
	for _, v := range want {
		assert.Contains(t, tb.Suffixes(), v)
	}
}

func TestTable_AddCounterexampleIsIdempotent(t *testing.T) {
	tb := newAStarTable(t)

	require.NoError(t, tb.AddCounterexample(word.New("a", "a")))
	before := len(tb.Suffixes())
	require.NoError(t, tb.AddCounterexample(word.New("a", "a")))
	assert.Len(t, tb.Suffixes(), before)
}

func TestTable_AddCounterexampleRejectsOffAlphabetSymbol(t *testing.T) {
	tb := newAStarTable(t)

	err := tb.AddCounterexample(word.New("b"))
	var alphaErr *automaton.AlphabetError
	require.True(t, errors.As(err, &alphaErr))
}

func TestTable_IsClosedInitiallyTrueForAStar(t *testing.T) {
	tb := newAStarTable(t)
	witness, closed := tb.IsClosed()
	assert.True(t, closed)
	assert.Nil(t, witness)
}

func TestTable_IsConsistentInitiallyTrueForAStar(t *testing.T) {
	tb := newAStarTable(t)
	witness, consistent := tb.IsConsistent()
	assert.True(t, consistent)
	assert.Nil(t, witness)
}

func TestTable_PrimeRowsUpperContainsStartRow(t *testing.T) {
	tb := newAStarTable(t)
	primes := tb.PrimeRowsUpper()
	require.Len(t, primes, 1)
	assert.True(t, primes[0].Prefix.Equal(word.Empty()))
}
