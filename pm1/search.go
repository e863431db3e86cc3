package pm1

import (
	"errors"
	"fmt"
	"math"
	"math/big"
)

var (
	ErrInvalidInput    = errors.New("number must be a positive integer")
	ErrBoundTooLarge   = errors.New("smoothness bound too large")
	ErrSearchExhausted = errors.New("no further factors found")
	ErrNoSmoothFactor  = fmt.Errorf("%w: gcd is 1 at the current bound", ErrSearchExhausted)
	ErrBasesExhausted  = fmt.Errorf("%w: every prime base up to the bound was tried", ErrSearchExhausted)
)

type State int

const (
	Searching State = iota
	FactorFound
	Exhausted
	GivenUp
)

var stateNames = [...]string{
	Searching:   "searching",
	FactorFound: "factor_found",
	Exhausted:   "exhausted",
	GivenUp:     "given_up",
}

func (s State) String() string {
	if s < 0 || int(s) >= len(stateNames) {
		return fmt.Sprintf("State(%d)", int(s))
	}
	return stateNames[s]
}

func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Terminal reports whether no further transition can change the search.
func (s State) Terminal() bool {
	return s == Exhausted || s == GivenUp
}

// Event describes one transition of the search. Target, Bound and Primes
// refer to the values the step started from.
type Event struct {
	Step      int      `json:"step"`
	State     State    `json:"state"`
	Target    *big.Int `json:"target"`
	Bound     int      `json:"bound"`
	Primes    int      `json:"primes"`
	Iteration int      `json:"iteration"`
	Base      int      `json:"base,omitempty"`
	GCD       *big.Int `json:"gcd,omitempty"`
	Factor    *big.Int `json:"factor,omitempty"`
}

// Search is one snapshot of the p-1 search. Values are never modified in
// place: Next returns a fresh snapshot.
type Search struct {
	Target    *big.Int
	Factors   []*big.Int
	Iteration int
	State     State
	Steps     int
	Reason    error
	Last      Event

	// primes and k belong to bound; they are shared read-only between
	// snapshots and rebuilt once the target, and so the bound, changes.
	bound  int
	primes []int
	k      *big.Int
}

// NewSearch returns the initial Searching snapshot for number.
func NewSearch(number *big.Int) Search {
	return Search{
		Target:  new(big.Int).Set(number),
		Factors: []*big.Int{},
		State:   Searching,
	}
}

// Next performs a single transition of the search.
func Next(s Search) Search {
	if s.State.Terminal() {
		return s
	}

	next := Search{
		Target:    new(big.Int).Set(s.Target),
		Factors:   append(make([]*big.Int, 0, len(s.Factors)+2), s.Factors...),
		Iteration: s.Iteration,
		Steps:     s.Steps + 1,
	}
	if s.State == FactorFound {
		next.Iteration = 0
	}

	bound := isqrt(next.Target)
	primes, k := s.primes, s.k
	if k == nil || s.bound != bound {
		primes = Sieve(bound)
		k = SmoothExponent(MaxPrimePowers(bound, primes))
	}
	next.bound, next.primes, next.k = bound, primes, k

	ev := Event{
		Step:      next.Steps,
		Target:    new(big.Int).Set(next.Target),
		Bound:     bound,
		Primes:    len(primes),
		Iteration: next.Iteration,
	}

	if next.Iteration >= len(primes) {
		next.State, next.Reason = GivenUp, ErrBasesExhausted
		ev.State = next.State
		next.Last = ev
		return next
	}

	base := primes[next.Iteration]
	a := PowMod(big.NewInt(int64(base)), k, next.Target)
	a.Sub(a, one).Mod(a, next.Target)
	g, _, _ := ExtGCD(a, next.Target)

	ev.Base, ev.GCD = base, g

	switch {
	case g.Cmp(one) == 0:
		next.State, next.Reason = GivenUp, ErrNoSmoothFactor
	case g.Cmp(next.Target) == 0:
		next.State = Searching
		next.Iteration++
	default:
		next.Factors = append(next.Factors, g)
		next.Target.Quo(next.Target, g)
		ev.Factor = g
		if next.Target.IsInt64() && next.Target.Int64() <= int64(bound) &&
			containsPrime(primes, int(next.Target.Int64())) {
			next.Factors = append(next.Factors, new(big.Int).Set(next.Target))
			next.Target.SetInt64(1)
			next.State = Exhausted
		} else {
			next.State = FactorFound
			next.Iteration = 0
		}
	}

	ev.State = next.State
	next.Last = ev
	return next
}

var one = big.NewInt(1)

// isqrt returns floor(sqrt(n)) as an int. The caller guarantees it fits.
func isqrt(n *big.Int) int {
	r := new(big.Int).Sqrt(n)
	if !r.IsInt64() || r.Int64() > math.MaxInt {
		panic(fmt.Sprintf("pm1: bound for %s is not representable", n))
	}
	return int(r.Int64())
}
