package wsfolio

// Quote is the market data snapshot for one security, in CAD. It is
// immutable for the duration of one computation run.
type Quote struct {
	Last float64
	Bid  float64
	Ask  float64
}

// MarketData maps a symbol to its quote snapshot. All accounts of one run
// observe the same snapshot.
type MarketData map[string]Quote
