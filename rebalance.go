package wsfolio

import "math"

// Trade is one executable rebalancing order. Quantity is signed: positive
// buys, negative sells. The limit price crosses the spread in the direction
// likely to fill (ask for buys, bid for sells).
type Trade struct {
	Symbol     string
	Name       string
	Quantity   float64
	LimitPrice float64
}

// RebalanceTrades converts a mirror table into the trade list that closes
// its deltas. The lock-in pseudo-security is never traded, and rows whose
// delta quantity rounds to zero produce no trade. Trades come out in the
// table's row order.
func RebalanceTrades(t *MirrorTable) []Trade {
	var trades []Trade
	for _, symbol := range t.Order {
		if symbol == LockInSymbol {
			continue
		}
		row := t.Rows[symbol]
		if math.Round(row.DeltaQuantity) == 0 {
			continue
		}
		limit := row.Ask
		if row.DeltaQuantity < 0 {
			limit = row.Bid
		}
		trades = append(trades, Trade{
			Symbol:     symbol,
			Name:       row.Name,
			Quantity:   row.DeltaQuantity,
			LimitPrice: limit,
		})
	}
	return trades
}
