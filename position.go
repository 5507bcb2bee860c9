package wsfolio

import (
	"fmt"
	"math"
)

// LockInSymbol is the pseudo-security the brokerage uses to report a
// locked-in, non-tradable cash balance. It never becomes a position row and
// is never traded; its book value is carried as the account's lock-in amount.
const LockInSymbol = "CASH"

// dollarImpactNotional is the fixed amount whose hypothetical purchase at
// the ask price defines the dollar-impact metric.
const dollarImpactNotional = 250

// Position is one held security in one account, as reported by the
// brokerage.
type Position struct {
	SecurityID string
	Symbol     string
	Name       string
	Quantity   float64 // may be fractional
	BookValue  float64
}

// Row holds the derived metrics of one non-cash position relative to one
// account. Rows are recomputed from scratch on every run and never persisted.
type Row struct {
	Symbol string
	Name   string

	Quantity    float64
	BookAverage float64 // average cost per share
	MarketValue float64
	Share       float64 // fraction of the account's effective NLV, rounded to 4 decimals

	Last float64
	Bid  float64
	Ask  float64

	GainPct   float64 // fraction: Last/BookAverage - 1
	TotalGain float64

	// DollarImpact is the fractional change of the average cost that buying
	// dollarImpactNotional worth at the ask would cause.
	DollarImpact float64

	Target        float64 // policy target fraction, 0 when not in policy
	GuidanceDelta float64 // currency amount to reach Target; positive means buy

	GuidanceDailyBuy float64 // daily buy that closes GuidanceDelta by the target date
	DailyBuy         float64 // yesterday's filled recurring buy
	DailyBuyFix      float64 // GuidanceDailyBuy - DailyBuy

	TradingDaysLeft int
}

// RowInput gathers everything NewRow needs. All values are snapshots: the
// builder has no other source of data.
type RowInput struct {
	Position     Position
	Quote        Quote
	EffectiveNLV float64 // account net liquidation value minus lock-in
	Target       float64 // policy target fraction for the symbol, 0 if absent
	DailyBuy     float64 // yesterday's filled recurring buy for the symbol, 0 if none
	DailyDeposit float64 // the account's standing daily cash deposit

	// TradingDaysLeft is the trading-day count until the funding plan's
	// target completion date (see date.TradingDays). It must be positive.
	TradingDaysLeft int
}

// NewRow derives the metrics of one position. It is a pure function: calling
// it twice on the same input yields identical output.
func NewRow(in RowInput) (Row, error) {
	p, q := in.Position, in.Quote
	if p.Quantity == 0 {
		return Row{}, fmt.Errorf("%w: %s has zero quantity, average cost undefined", ErrInvalidPosition, p.Symbol)
	}
	if in.TradingDaysLeft <= 0 {
		return Row{}, fmt.Errorf("%w: %d", ErrNoTradingDays, in.TradingDaysLeft)
	}

	marketValue := q.Last * p.Quantity
	bookAverage := p.BookValue / p.Quantity
	share := round4(marketValue / in.EffectiveNLV)
	guidanceDelta := (in.Target - share) * in.EffectiveNLV
	// Daily buy that keeps the allocation on target: the share of the steady
	// deposit, plus whatever closes the gap by the target date. The clamp
	// keeps this channel from recommending a net sell.
	guidanceDailyBuy := in.Target*in.DailyDeposit + math.Max(0, guidanceDelta/float64(in.TradingDaysLeft))

	return Row{
		Symbol:           p.Symbol,
		Name:             p.Name,
		Quantity:         p.Quantity,
		BookAverage:      bookAverage,
		MarketValue:      marketValue,
		Share:            share,
		Last:             q.Last,
		Bid:              q.Bid,
		Ask:              q.Ask,
		GainPct:          q.Last/bookAverage - 1,
		TotalGain:        marketValue - p.BookValue,
		DollarImpact:     dollarImpact(p.BookValue, bookAverage, q.Ask, p.Quantity),
		Target:           in.Target,
		GuidanceDelta:    guidanceDelta,
		GuidanceDailyBuy: guidanceDailyBuy,
		DailyBuy:         in.DailyBuy,
		DailyBuyFix:      guidanceDailyBuy - in.DailyBuy,
		TradingDaysLeft:  in.TradingDaysLeft,
	}, nil
}

// dollarImpact simulates buying dollarImpactNotional worth of the security
// at the ask price and reports the resulting fractional change of the
// average cost.
func dollarImpact(bookValue, bookAverage, ask, quantity float64) float64 {
	addedQuantity := math.Round(dollarImpactNotional / ask)
	addedValue := addedQuantity * ask
	return (bookValue+addedValue)/(addedQuantity+quantity)/bookAverage - 1
}

func round4(v float64) float64 { return math.Round(v*1e4) / 1e4 }
