package wsfolio

import (
	"fmt"
	"math"
	"maps"
	"slices"
)

// Policy is the static target allocation: a mapping from symbol to the
// fraction of the portfolio it should represent. A Policy is built once at
// startup and passed explicitly into the builders; it is never ambient state.
type Policy struct {
	targets        map[string]float64
	cashEquivalent string
}

// NewPolicy validates and returns a policy table. The target fractions,
// summed and rounded to 2 decimals, must equal exactly 1; anything else is a
// fatal configuration error. cashEquivalent designates the symbol treated as
// cash when computing invested totals (e.g. a money-market ETF); it may be
// empty.
func NewPolicy(targets map[string]float64, cashEquivalent string) (Policy, error) {
	var sum float64
	for _, f := range targets {
		sum += f
	}
	if math.Round(sum*100)/100 != 1 {
		return Policy{}, fmt.Errorf("%w: got %v", ErrBadPolicy, sum)
	}
	return Policy{targets: maps.Clone(targets), cashEquivalent: cashEquivalent}, nil
}

// Target returns the target fraction for a symbol, or 0 if the policy does
// not mention it.
func (p Policy) Target(symbol string) float64 { return p.targets[symbol] }

// CashEquivalent returns the designated cash-equivalent symbol, or "".
func (p Policy) CashEquivalent() string { return p.cashEquivalent }

// Symbols returns the symbols the policy mentions, sorted.
func (p Policy) Symbols() []string { return slices.Sorted(maps.Keys(p.targets)) }
