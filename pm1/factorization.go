package pm1

import (
	"fmt"
	"math/big"
)

const (
	// DefaultMaxBound caps the sieve size; sqrt(number) beyond it is rejected.
	DefaultMaxBound = 1 << 24
	// DefaultServeMaxBound is the cap for network-facing callers, where one
	// request must not pin a core for long.
	DefaultServeMaxBound = 1 << 16
	// MaxBoundCeiling is the largest MaxBound honoured; larger values are
	// clamped so the sieve allocation stays bounded.
	MaxBoundCeiling = 1 << 28
)

// Plugin observes a running search. A non-nil error aborts FindFactors.
type Plugin interface {
	OnStart(number *big.Int) error
	OnStep(ev Event) error
	OnFinish(res *Result) error
}

// Aborter is implemented by plugins that hold resources. When a hook fails
// FindFactors calls OnAbort on every plugin instead of OnFinish.
type Aborter interface {
	OnAbort(err error)
}

type Config struct {
	MaxBound int
	Plugins  []Plugin
}

// Result is the outcome of FindFactors. On Exhausted the factors multiply to
// Number and Cofactor is 1; on GivenUp, Cofactor holds the part that could
// not be split.
type Result struct {
	Number   *big.Int   `json:"number"`
	Factors  []*big.Int `json:"factors"`
	Cofactor *big.Int   `json:"cofactor"`
	State    State      `json:"state"`
	Steps    int        `json:"steps"`
	Reason   error      `json:"-"`
}

// Complete reports whether the search ended in Exhausted.
func (r *Result) Complete() bool {
	return r.State == Exhausted
}

// Err returns nil for a complete factorization, otherwise the reason the
// search gave up. It always matches ErrSearchExhausted via errors.Is.
func (r *Result) Err() error {
	if r.Complete() {
		return nil
	}
	return r.Reason
}

// Split returns the factors followed by the unsplit cofactor (if any). Its
// product always equals Number.
func (r *Result) Split() []*big.Int {
	out := append(make([]*big.Int, 0, len(r.Factors)+1), r.Factors...)
	if r.Cofactor != nil && r.Cofactor.Cmp(one) > 0 {
		out = append(out, r.Cofactor)
	}
	return out
}

// FindFactors runs Pollard's p-1 search on number until it either splits the
// number completely or gives up. Giving up is reported in the Result, not as
// an error; errors are reserved for invalid input, an oversized bound and
// plugin failures.
func FindFactors(number *big.Int, conf Config) (*Result, error) {
	if number == nil || number.Sign() <= 0 {
		return nil, ErrInvalidInput
	}
	maxBound := conf.MaxBound
	if maxBound <= 0 {
		maxBound = DefaultMaxBound
	}
	if maxBound > MaxBoundCeiling {
		maxBound = MaxBoundCeiling
	}
	root := new(big.Int).Sqrt(number)
	if root.Cmp(big.NewInt(int64(maxBound))) > 0 {
		return nil, fmt.Errorf("%w: sqrt(%s) exceeds %d", ErrBoundTooLarge, number, maxBound)
	}

	for _, p := range conf.Plugins {
		if err := p.OnStart(number); err != nil {
			return nil, abort(conf.Plugins, fmt.Errorf("plugin start: %w", err))
		}
	}

	s := NewSearch(number)
	if number.Cmp(one) == 0 {
		s.State = Exhausted
	}
	for !s.State.Terminal() {
		s = Next(s)
		for _, p := range conf.Plugins {
			if err := p.OnStep(s.Last); err != nil {
				return nil, abort(conf.Plugins, fmt.Errorf("plugin step %d: %w", s.Steps, err))
			}
		}
	}

	res := &Result{
		Number:   new(big.Int).Set(number),
		Factors:  s.Factors,
		Cofactor: s.Target,
		State:    s.State,
		Steps:    s.Steps,
		Reason:   s.Reason,
	}
	for _, p := range conf.Plugins {
		if err := p.OnFinish(res); err != nil {
			return nil, abort(conf.Plugins, fmt.Errorf("plugin finish: %w", err))
		}
	}
	return res, nil
}

func abort(plugins []Plugin, err error) error {
	for _, p := range plugins {
		if a, ok := p.(Aborter); ok {
			a.OnAbort(err)
		}
	}
	return err
}
