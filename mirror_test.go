package wsfolio

import "testing"

func testMirrorTables(t *testing.T) (primary, mirror *AccountTable) {
	t.Helper()
	tables := testCombinedTables(t)
	return tables[0], tables[1]
}

func TestNewMirrorTable(t *testing.T) {
	primary, mirror := testMirrorTables(t)
	m := NewMirrorTable(primary, mirror, nil)

	if m.Summary.ID != "rrsp" {
		t.Errorf("Summary.ID = %q, want %q", m.Summary.ID, "rrsp")
	}
	// Union of holdings: the mirror's X first, then the primary-only Y.
	if len(m.Order) != 2 || m.Order[0] != "X" || m.Order[1] != "Y" {
		t.Fatalf("Order = %v, want [X Y]", m.Order)
	}

	// Mirror holds 30% X against the primary's 15%: sell down at the bid.
	x := m.Rows["X"]
	checkAlmost(t, "X.TargetShare", x.TargetShare, 0.15)
	checkAlmost(t, "X.DeltaShare", x.DeltaShare, -0.15)
	checkAlmost(t, "X.DeltaAmount", x.DeltaAmount, -300)
	checkAlmost(t, "X.DeltaQuantity", x.DeltaQuantity, -300.0/119)

	// Y is held only in the primary: a synthesized empty row whose delta is
	// the primary's full share, bought at the ask.
	y := m.Rows["Y"]
	checkAlmost(t, "Y.Quantity", y.Quantity, 0)
	checkAlmost(t, "Y.MarketValue", y.MarketValue, 0)
	checkAlmost(t, "Y.TargetShare", y.TargetShare, 0.25)
	checkAlmost(t, "Y.DeltaShare", y.DeltaShare, 0.25)
	checkAlmost(t, "Y.DeltaAmount", y.DeltaAmount, 500)
	checkAlmost(t, "Y.DeltaQuantity", y.DeltaQuantity, 500.0/101)
	if y.Symbol != "Y" || y.Name != "Y Fund" {
		t.Errorf("synthesized row identity = %q/%q, want Y/Y Fund", y.Symbol, y.Name)
	}
}

func TestNewMirrorTableIgnored(t *testing.T) {
	primary, mirror := testMirrorTables(t)
	m := NewMirrorTable(primary, mirror, map[string]bool{"X": true})

	x := m.Rows["X"]
	// Ignored symbols keep their row but never generate a trade.
	checkAlmost(t, "X.DeltaAmount", x.DeltaAmount, 0)
	checkAlmost(t, "X.DeltaQuantity", x.DeltaQuantity, 0)
	checkAlmost(t, "X.DeltaShare", x.DeltaShare, -0.15)

	y := m.Rows["Y"]
	checkAlmost(t, "Y.DeltaAmount", y.DeltaAmount, 500)
}

func TestNewMirrorTableAggregates(t *testing.T) {
	primary, mirror := testMirrorTables(t)
	m := NewMirrorTable(primary, mirror, nil)

	// Account-level aggregates are the mirror's own, untouched by deltas.
	checkAlmost(t, "EffectiveNetLiquidationValue", m.EffectiveNetLiquidationValue, mirror.EffectiveNetLiquidationValue)
	checkAlmost(t, "TotalMarketValue", m.TotalMarketValue, mirror.TotalMarketValue)
	checkAlmost(t, "Cash", m.Cash, mirror.Cash)
	checkAlmost(t, "TotalInvested", m.TotalInvested, mirror.TotalInvested)
}
