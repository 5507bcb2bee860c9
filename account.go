package wsfolio

import "fmt"

// AccountSummary is the raw account-level totals reported by the brokerage.
type AccountSummary struct {
	ID                  string
	NetDeposits         float64
	NetLiquidationValue float64
}

// AccountTable is the derived view of one account: a position row per
// non-cash symbol held, plus account-level aggregates.
//
// Invariants: EffectiveNetLiquidationValue = NetLiquidationValue - LockInAmount,
// and TotalInvested = EffectiveNetLiquidationValue - TotalCashEquivalents.
type AccountTable struct {
	Summary AccountSummary

	// Rows maps symbol to its position row; Order preserves the position
	// input order for deterministic iteration.
	Rows  map[string]Row
	Order []string

	TotalMarketValue             float64
	Cash                         float64
	TotalCashEquivalents         float64 // cash plus the cash-equivalent position, if held
	TotalInvested                float64
	EffectiveNetLiquidationValue float64
	LockInAmount                 float64
	DailyDeposit                 float64
}

// AccountInput gathers everything NewAccountTable needs for one account.
type AccountInput struct {
	Summary   AccountSummary
	Positions []Position
	Quotes    MarketData
	Policy    Policy

	// DailyBuys holds yesterday's filled recurring-buy amounts keyed by
	// security id. Missing entries mean no recurring buy.
	DailyBuys map[string]float64

	DailyDeposit    float64
	TradingDaysLeft int
}

// NewAccountTable builds the derived table for one account. A symbol without
// a quote aborts the whole computation: there are no partial tables.
func NewAccountTable(in AccountInput) (*AccountTable, error) {
	if in.TradingDaysLeft <= 0 {
		return nil, fmt.Errorf("%w: %d (account %s)", ErrNoTradingDays, in.TradingDaysLeft, in.Summary.ID)
	}

	// The lock-in pseudo-position is not tradable: remove its book value
	// from the net liquidation value instead of making it a row.
	var lockInAmount float64
	for _, p := range in.Positions {
		if p.Symbol == LockInSymbol {
			lockInAmount = p.BookValue
		}
	}
	effectiveNLV := in.Summary.NetLiquidationValue - lockInAmount

	t := &AccountTable{
		Summary:                      in.Summary,
		Rows:                         make(map[string]Row, len(in.Positions)),
		EffectiveNetLiquidationValue: effectiveNLV,
		LockInAmount:                 lockInAmount,
		DailyDeposit:                 in.DailyDeposit,
	}

	for _, p := range in.Positions {
		if p.Symbol == LockInSymbol {
			continue
		}
		quote, ok := in.Quotes[p.Symbol]
		if !ok {
			return nil, fmt.Errorf("%w: %s (account %s)", ErrQuoteNotFound, p.Symbol, in.Summary.ID)
		}
		row, err := NewRow(RowInput{
			Position:        p,
			Quote:           quote,
			EffectiveNLV:    effectiveNLV,
			Target:          in.Policy.Target(p.Symbol),
			DailyBuy:        in.DailyBuys[p.SecurityID],
			DailyDeposit:    in.DailyDeposit,
			TradingDaysLeft: in.TradingDaysLeft,
		})
		if err != nil {
			return nil, err
		}
		t.Rows[p.Symbol] = row
		t.Order = append(t.Order, p.Symbol)
		t.TotalMarketValue += row.MarketValue
	}

	t.Cash = effectiveNLV - t.TotalMarketValue
	t.TotalCashEquivalents = t.Cash
	if ce, ok := t.Rows[in.Policy.CashEquivalent()]; ok {
		t.TotalCashEquivalents += ce.MarketValue
	}
	t.TotalInvested = effectiveNLV - t.TotalCashEquivalents
	return t, nil
}

// CashEquivalentShare returns the cash-equivalent total as a fraction of the
// effective net liquidation value.
func (t *AccountTable) CashEquivalentShare() float64 {
	return t.TotalCashEquivalents / t.EffectiveNetLiquidationValue
}
