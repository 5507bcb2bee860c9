package wsfolio

import (
	"math"
	"testing"
)

// almost reports whether two derived values are equal within floating-point
// tolerance.
func almost(got, want float64) bool { return math.Abs(got-want) < 1e-9 }

func checkAlmost(t *testing.T, name string, got, want float64) {
	t.Helper()
	if !almost(got, want) {
		t.Errorf("%s = %v, want %v", name, got, want)
	}
}

// testPolicy returns a valid policy for tests: X 30%, Y 70%.
func testPolicy(t *testing.T, cashEquivalent string) Policy {
	t.Helper()
	p, err := NewPolicy(map[string]float64{"X": 0.30, "Y": 0.70}, cashEquivalent)
	if err != nil {
		t.Fatalf("NewPolicy() error = %v", err)
	}
	return p
}

var testQuotes = MarketData{
	"X":    {Last: 120, Bid: 119, Ask: 121},
	"Y":    {Last: 100, Bid: 99, Ask: 101},
	"CSAV": {Last: 50, Bid: 49.9, Ask: 50.1},
}
