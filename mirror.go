package wsfolio

// MirrorRow extends a position row with the delta between the mirror
// account's actual allocation and the primary account's actual allocation,
// which acts as the target.
type MirrorRow struct {
	Row

	TargetShare   float64 // the primary account's actual share for this symbol
	DeltaShare    float64 // TargetShare - the mirror's actual share
	DeltaAmount   float64 // currency amount to close the gap; positive means buy
	DeltaQuantity float64 // DeltaAmount at the ask (buys) or bid (sells)
}

// MirrorTable is the mirror account's table with per-symbol deltas against
// the primary account. Account-level aggregates are the mirror's, unchanged:
// only positions carry deltas.
type MirrorTable struct {
	Summary AccountSummary

	// Rows covers the union of symbols held in either account; Order lists
	// the mirror's symbols first, then symbols held only in the primary.
	Rows  map[string]MirrorRow
	Order []string

	TotalMarketValue             float64
	Cash                         float64
	TotalCashEquivalents         float64
	TotalInvested                float64
	EffectiveNetLiquidationValue float64
	LockInAmount                 float64
	DailyDeposit                 float64
}

// NewMirrorTable compares the mirror account against the primary account's
// actual allocation. Symbols in the ignored set (e.g. legacy lock-in
// holdings) keep their rows but get a zero delta. A symbol held only in the
// primary account gets a synthesized zero-quantity mirror row, so the delta
// is the primary's full share.
func NewMirrorTable(primary, mirror *AccountTable, ignored map[string]bool) *MirrorTable {
	t := &MirrorTable{
		Summary:                      mirror.Summary,
		Rows:                         make(map[string]MirrorRow, len(mirror.Rows)),
		TotalMarketValue:             mirror.TotalMarketValue,
		Cash:                         mirror.Cash,
		TotalCashEquivalents:         mirror.TotalCashEquivalents,
		TotalInvested:                mirror.TotalInvested,
		EffectiveNetLiquidationValue: mirror.EffectiveNetLiquidationValue,
		LockInAmount:                 mirror.LockInAmount,
		DailyDeposit:                 mirror.DailyDeposit,
	}

	for _, symbol := range mirror.Order {
		row := mirror.Rows[symbol]
		targetShare := primary.Rows[symbol].Share // zero value when primary doesn't hold it
		t.set(symbol, MirrorRow{
			Row:         row,
			TargetShare: targetShare,
			DeltaShare:  targetShare - row.Share,
		}, ignored)
	}

	for _, symbol := range primary.Order {
		if _, held := mirror.Rows[symbol]; held {
			continue
		}
		// Synthesize an empty mirror-side row: the delta is the primary's
		// full share.
		row := primary.Rows[symbol]
		row.Quantity = 0
		row.BookAverage = 0
		row.MarketValue = 0
		row.Share = 0
		row.GainPct = 0
		row.TotalGain = 0
		t.set(symbol, MirrorRow{
			Row:         row,
			TargetShare: primary.Rows[symbol].Share,
			DeltaShare:  primary.Rows[symbol].Share,
		}, ignored)
	}
	return t
}

// set completes the delta amounts of a row and records it.
func (t *MirrorTable) set(symbol string, row MirrorRow, ignored map[string]bool) {
	row.DeltaAmount = t.EffectiveNetLiquidationValue * row.DeltaShare
	if ignored[symbol] {
		row.DeltaAmount = 0
	}
	if row.DeltaAmount >= 0 {
		row.DeltaQuantity = row.DeltaAmount / row.Ask
	} else {
		row.DeltaQuantity = row.DeltaAmount / row.Bid
	}
	t.Rows[symbol] = row
	t.Order = append(t.Order, symbol)
}
