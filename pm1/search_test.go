package pm1

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ints(vs ...int64) []*big.Int {
	out := make([]*big.Int, len(vs))
	for i, v := range vs {
		out[i] = big.NewInt(v)
	}
	return out
}

func assertBigs(t *testing.T, want []int64, got []*big.Int) {
	t.Helper()
	require.Len(t, got, len(want))
	for i := range want {
		assert.Equal(t, want[i], got[i].Int64(), "index %d", i)
	}
}

// ──────── transitions ────────

func TestNext_FactorFound(t *testing.T) {
	start := NewSearch(big.NewInt(15))
	s := Next(start)

	assert.Equal(t, FactorFound, s.State)
	assert.Equal(t, int64(5), s.Target.Int64())
	assertBigs(t, []int64{3}, s.Factors)
	assert.Equal(t, 0, s.Iteration)
	assert.Equal(t, 1, s.Steps)

	assert.Equal(t, 3, s.Last.Bound)
	assert.Equal(t, 2, s.Last.Primes)
	assert.Equal(t, 2, s.Last.Base)
	assert.Equal(t, int64(3), s.Last.Factor.Int64())
	assert.Equal(t, int64(15), s.Last.Target.Int64())

	// the input snapshot is untouched
	assert.Equal(t, int64(15), start.Target.Int64())
	assert.Empty(t, start.Factors)
	assert.Equal(t, Searching, start.State)
}

func TestNext_GCDEqualsTargetAdvancesBase(t *testing.T) {
	s := Next(NewSearch(big.NewInt(8051)))

	assert.Equal(t, Searching, s.State)
	assert.Equal(t, 1, s.Iteration)
	assert.Equal(t, int64(8051), s.Target.Int64())
	assert.Empty(t, s.Factors)
	assert.Equal(t, 2, s.Last.Base)
	assert.Equal(t, int64(8051), s.Last.GCD.Int64())
	assert.Nil(t, s.Last.Factor)
}

func TestNext_Exhausted(t *testing.T) {
	s := NewSearch(big.NewInt(8051))
	s.Iteration = 22 // primes <= 89 put 83 at index 22

	s = Next(s)
	assert.Equal(t, Exhausted, s.State)
	assertBigs(t, []int64{97, 83}, s.Factors)
	assert.Equal(t, int64(1), s.Target.Int64())
	assert.Equal(t, 83, s.Last.Base)
	assert.Nil(t, s.Reason)
}

func TestNext_GCDOneGivesUp(t *testing.T) {
	s := Next(NewSearch(big.NewInt(97)))

	assert.Equal(t, GivenUp, s.State)
	assert.ErrorIs(t, s.Reason, ErrNoSmoothFactor)
	assert.ErrorIs(t, s.Reason, ErrSearchExhausted)
	assert.Equal(t, int64(1), s.Last.GCD.Int64())
}

func TestNext_BaseIndexExhausted(t *testing.T) {
	s := NewSearch(big.NewInt(8051))
	s.Iteration = 24

	s = Next(s)
	assert.Equal(t, GivenUp, s.State)
	assert.ErrorIs(t, s.Reason, ErrBasesExhausted)
	assert.ErrorIs(t, s.Reason, ErrSearchExhausted)
	assert.Equal(t, 24, s.Last.Primes)
	assert.Zero(t, s.Last.Base)
}

func TestNext_EmptyPrimeListGivesUp(t *testing.T) {
	s := Next(NewSearch(big.NewInt(3)))
	assert.Equal(t, GivenUp, s.State)
	assert.ErrorIs(t, s.Reason, ErrBasesExhausted)
	assert.Equal(t, 1, s.Last.Bound)
}

func TestNext_FactorFoundResetsIteration(t *testing.T) {
	s := Search{Target: big.NewInt(5), Factors: ints(3), State: FactorFound, Iteration: 3}

	s = Next(s)
	assert.Equal(t, 0, s.Last.Iteration)
	assert.Equal(t, 2, s.Last.Base)
	assert.Equal(t, GivenUp, s.State)
	assertBigs(t, []int64{3}, s.Factors)
}

func TestNext_TerminalIsFixedPoint(t *testing.T) {
	done := Next(NewSearch(big.NewInt(97)))
	again := Next(done)
	assert.Equal(t, done, again)
}

func TestState_String(t *testing.T) {
	assert.Equal(t, "searching", Searching.String())
	assert.Equal(t, "factor_found", FactorFound.String())
	assert.Equal(t, "exhausted", Exhausted.String())
	assert.Equal(t, "given_up", GivenUp.String())
	assert.Equal(t, "State(9)", State(9).String())

	text, err := GivenUp.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "given_up", string(text))

	assert.True(t, Exhausted.Terminal())
	assert.True(t, GivenUp.Terminal())
	assert.False(t, Searching.Terminal())
	assert.False(t, FactorFound.Terminal())
}

func TestNext_ReusesPrimesWhileBoundHolds(t *testing.T) {
	first := Next(NewSearch(big.NewInt(8051)))
	require.Equal(t, Searching, first.State)
	second := Next(first)
	require.Equal(t, Searching, second.State)

	assert.Same(t, first.k, second.k)
	assert.Equal(t, 89, second.bound)
	assert.Len(t, second.primes, 24)
	assert.Equal(t, 0, second.k.Cmp(SmoothExponent(MaxPrimePowers(89, Sieve(89)))))
}

func TestNext_RebuildsAfterBoundChanges(t *testing.T) {
	s := Next(NewSearch(big.NewInt(15)))
	require.Equal(t, FactorFound, s.State)
	cached := s.k

	s = Next(s)
	assert.Equal(t, 2, s.bound)
	assert.NotSame(t, cached, s.k)
	assert.Equal(t, int64(2), s.k.Int64())
}
