package wsfolio

import (
	"fmt"
	"strings"
)

// AccountShare is one account's contribution to a combined table.
type AccountShare struct {
	NetLiquidationValue float64
	Share               float64 // this account's effective NLV over the combined effective NLV
}

// CombinedTable consolidates several account tables of one investor into a
// single view.
type CombinedTable struct {
	AccountTable

	// Accounts lists the contributing account ids in input order; Breakdown
	// holds each account's balance and share of the combined portfolio.
	Accounts  []string
	Breakdown map[string]AccountShare
}

// NewCombinedTable merges the given account tables. Each symbol held in any
// account gets one combined row; accounts that do not hold a symbol simply
// do not contribute to it.
func NewCombinedTable(tables []*AccountTable) (*CombinedTable, error) {
	var combinedNLV, combinedEffectiveNLV float64
	for _, t := range tables {
		combinedNLV += t.Summary.NetLiquidationValue
		combinedEffectiveNLV += t.EffectiveNetLiquidationValue
	}

	c := &CombinedTable{
		AccountTable: AccountTable{
			Rows:                         make(map[string]Row),
			EffectiveNetLiquidationValue: combinedEffectiveNLV,
		},
		Breakdown: make(map[string]AccountShare, len(tables)),
	}

	ids := make([]string, 0, len(tables))
	for _, t := range tables {
		ids = append(ids, t.Summary.ID)
		c.Accounts = append(c.Accounts, t.Summary.ID)
		c.Breakdown[t.Summary.ID] = AccountShare{
			NetLiquidationValue: t.Summary.NetLiquidationValue,
			Share:               t.EffectiveNetLiquidationValue / combinedEffectiveNLV,
		}

		c.Summary.NetDeposits += t.Summary.NetDeposits
		c.Cash += t.Cash
		c.TotalCashEquivalents += t.TotalCashEquivalents
		c.TotalMarketValue += t.TotalMarketValue
		c.LockInAmount += t.LockInAmount
		c.DailyDeposit += t.DailyDeposit

		for _, symbol := range t.Order {
			if _, seen := c.Rows[symbol]; !seen {
				c.Order = append(c.Order, symbol)
			}
			c.Rows[symbol] = Row{} // placeholder, filled below
		}
	}
	c.Summary.ID = strings.Join(ids, "+")
	c.Summary.NetLiquidationValue = combinedNLV
	c.TotalInvested = combinedEffectiveNLV - c.TotalCashEquivalents

	for _, symbol := range c.Order {
		var rows []Row
		for _, t := range tables {
			if row, ok := t.Rows[symbol]; ok {
				rows = append(rows, row)
			}
		}
		combined, err := combineRows(rows, combinedEffectiveNLV)
		if err != nil {
			return nil, fmt.Errorf("combining %s: %w", symbol, err)
		}
		c.Rows[symbol] = combined
	}
	return c, nil
}

// combineRows merges the contributing rows for one symbol: quantities,
// market values and gains sum, the book average is quantity-weighted, and
// the last price is taken from the first contributing row (all accounts
// observe the same quote snapshot).
func combineRows(rows []Row, combinedEffectiveNLV float64) (Row, error) {
	if len(rows) == 0 {
		return Row{}, ErrEmptyCombine
	}
	// Non-combining fields (names, prices, guidance) carry over from the
	// last contributing row.
	combined := rows[len(rows)-1]
	combined.Last = rows[0].Last

	var quantity, marketValue, totalGain, weightedBook float64
	for _, r := range rows {
		quantity += r.Quantity
		marketValue += r.MarketValue
		totalGain += r.TotalGain
		weightedBook += r.BookAverage * r.Quantity
	}
	bookAverage := weightedBook / quantity

	combined.Quantity = quantity
	combined.MarketValue = marketValue
	combined.TotalGain = totalGain
	combined.BookAverage = bookAverage
	combined.GainPct = (combined.Last - bookAverage) / bookAverage
	combined.Share = marketValue / combinedEffectiveNLV
	return combined, nil
}
